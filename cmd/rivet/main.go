// Command rivet is a minimal embedding: it builds a Context the way a host
// program would, installs the standard modules, disassembles a small
// hand-assembled Unit, and drives a couple of stdlib functions through
// RuntimeContext.LookupFunction + Function.Call end to end. It exists to
// give the packages in internal/ a realistic caller, the way the teacher's
// cmd/funxy ties its own lexer/parser/evaluator stack together — the
// opcode interpreter body itself remains an external collaborator
// (spec.md §1), so "running" a Unit here means invoking the native
// handlers a host installs, not decoding the Instructions bytes.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/rivetlang/rivet/internal/config"
	"github.com/rivetlang/rivet/internal/context"
	"github.com/rivetlang/rivet/internal/hashid"
	"github.com/rivetlang/rivet/internal/introspect"
	"github.com/rivetlang/rivet/internal/stackvm"
	"github.com/rivetlang/rivet/internal/value"
)

func main() {
	configPath := flag.String("config", "", "path to a RuntimeConfig YAML file (default: every standard module, no introspection)")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "rivet:", err)
		os.Exit(1)
	}

	ctx, err := context.WithConfig(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "rivet: building context:", err)
		os.Exit(1)
	}
	fmt.Println(ctx.DebugSummary())

	rt := ctx.Runtime()

	unit := stackvm.NewUnit("cmd/rivet-demo", []byte{0x01, 0x02, 0x03, 0xff})
	disassemble(unit)

	if err := runDemo(rt, ctx); err != nil {
		fmt.Fprintln(os.Stderr, "rivet:", err)
		os.Exit(1)
	}

	if cfg.Introspect != nil && cfg.Introspect.Enabled {
		fmt.Println("rivet: introspection service listening on", cfg.Introspect.Addr)
		if err := introspect.Serve(rt, cfg.Introspect.Addr); err != nil {
			fmt.Fprintln(os.Stderr, "rivet: introspect:", err)
			os.Exit(1)
		}
	}
}

func loadConfig(path string) (*config.RuntimeConfig, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

// runDemo exercises the standard modules a bare WithConfig(Default())
// context installs: std::random::int_range and std::io::println, the same
// two call shapes (Handler arity-checked call, capture-buffer write) the
// function and stdmodules test suites already assert in isolation.
func runDemo(rt *context.RuntimeContext, ctx *context.Context) error {
	rangeFn, ok := rt.LookupFunction(hashid.TypeHash(hashid.NewNamed("std", "random", "int_range")))
	if ok {
		n, err := rangeFn.Call([]value.Value{value.Integer(0), value.Integer(10)})
		if err != nil {
			return fmt.Errorf("std::random::int_range: %w", err)
		}
		fmt.Println("std::random::int_range(0, 10) =", n.String())
	}

	printlnFn, ok := rt.LookupFunction(hashid.TypeHash(hashid.NewNamed("std", "io", "println")))
	if ok {
		if _, err := printlnFn.Call([]value.Value{value.NewString("hello from a hand-built Context")}); err != nil {
			return fmt.Errorf("std::io::println: %w", err)
		}
		if cap := ctx.CaptureIO(); cap != nil {
			fmt.Print(cap.DrainUTF8())
		}
	}
	return nil
}

// disassemble prints a Unit's raw instruction bytes. Opcode decoding
// belongs to the external interpreter body (spec.md §1); this is the hex
// dump a host's debugger would show before that body is wired in, colored
// when stdout is a real terminal the way the teacher's debugger_cli.go
// gates ANSI output on isatty.
func disassemble(u *stackvm.Unit) {
	colorize := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	fmt.Printf("unit %q (build %s), %d byte(s):\n", u.Name, u.BuildID, len(u.Instructions))
	for i, b := range u.Instructions {
		if colorize {
			fmt.Printf("  \x1b[36m%04x\x1b[0m  \x1b[33m%02x\x1b[0m\n", i, b)
		} else {
			fmt.Printf("  %04x  %02x\n", i, b)
		}
	}
}
