// Package stdmodules provides the illustrative host modules a cmd/rivet
// embedding installs: std::io, std::random and std::bytes. Each is a thin
// wrapper turning a module.Module into a concrete set of host functions,
// the same shape the teacher's own `evaluator.IOBuiltins()`-style
// `map[string]*Builtin` registries take, adapted to this runtime's
// Module/Function types.
package stdmodules

import (
	"fmt"
	"sync"

	"github.com/rivetlang/rivet/internal/function"
	"github.com/rivetlang/rivet/internal/hashid"
	"github.com/rivetlang/rivet/internal/module"
	"github.com/rivetlang/rivet/internal/value"
)

// CaptureIO is an in-memory sink for print/println/dbg, mirroring
// original_source's CaptureIo: an Arc<Mutex<Vec<u8>>> in Rust becomes a
// *sync.Mutex-guarded []byte here, letting a host embedder capture a
// script's console output for tests instead of writing to a real stdout.
type CaptureIO struct {
	mu  sync.Mutex
	buf []byte
}

// NewCaptureIO allocates an empty capture buffer.
func NewCaptureIO() *CaptureIO {
	return &CaptureIO{}
}

func (c *CaptureIO) write(s string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.buf = append(c.buf, s...)
}

// Drain removes and returns every byte written so far.
func (c *CaptureIO) Drain() []byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := c.buf
	c.buf = nil
	return out
}

// DrainInto drains into dst, appending, and returns the new slice — the
// allocation-reuse variant of Drain.
func (c *CaptureIO) DrainInto(dst []byte) []byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	dst = append(dst, c.buf...)
	c.buf = nil
	return dst
}

// DrainUTF8 drains the buffer and decodes it as UTF-8, the common case for
// a test asserting on a script's printed output.
func (c *CaptureIO) DrainUTF8() string {
	return string(c.Drain())
}

// IOModule installs print, println and dbg against cap, matching
// original_source's `std::io` module surface.
func IOModule(cap *CaptureIO) *module.Module {
	m := module.New(hashid.NewNamed("std", "io"))

	mustInstall(m, "print", function.NewHandler(hashid.Empty, func(args []value.Value) (value.Value, error) {
		for _, a := range args {
			cap.write(a.String())
		}
		return value.Unit(), nil
	}))

	mustInstall(m, "println", function.NewHandler(hashid.Empty, func(args []value.Value) (value.Value, error) {
		for _, a := range args {
			cap.write(a.String())
		}
		cap.write("\n")
		return value.Unit(), nil
	}))

	mustInstall(m, "dbg", function.NewHandler(hashid.Empty, func(args []value.Value) (value.Value, error) {
		for _, a := range args {
			cap.write(fmt.Sprintf("%#v\n", a))
		}
		return value.Unit(), nil
	}))

	return m
}

func mustInstall(m *module.Module, name string, fn *function.Function) {
	if err := m.Function(name, fn); err != nil {
		panic(fmt.Sprintf("stdmodules: %v", err))
	}
}
