package stdmodules

import (
	"fmt"

	"github.com/funvibe/funbit/pkg/funbit"

	"github.com/rivetlang/rivet/internal/function"
	"github.com/rivetlang/rivet/internal/hashid"
	"github.com/rivetlang/rivet/internal/module"
	"github.com/rivetlang/rivet/internal/value"
)

// BytesModule installs `view` and `match` against the Bytes value
// category, giving the runtime's byte-array value genuine binary
// pattern-matching behavior (Erlang-style bit syntax) instead of being a
// bare synonym for []byte. The teacher declares funbit in go.mod but never
// imports it; this is where this expansion gives it a real caller.
func BytesModule() *module.Module {
	m := module.New(hashid.NewNamed("std", "bytes"))

	// view(bytes, width_bits) -> integer: reads a single big-endian,
	// unsigned field of width_bits bits from the start of bytes.
	mustInstall(m, "view", function.NewHandler(hashid.Empty, func(args []value.Value) (value.Value, error) {
		if len(args) != 2 {
			return value.Value{}, fmt.Errorf("stdmodules: view expects 2 arguments, got %d", len(args))
		}
		raw, ok := args[0].Cell().AsBytes()
		if !ok {
			return value.Value{}, fmt.Errorf("stdmodules: view's first argument must be a byte array")
		}
		width := int(args[1].AsInteger())

		var field uint64
		matcher := funbit.NewMatcher()
		matcher.Integer(&field, funbit.WithSize(width), funbit.WithSigned(false))
		if _, err := funbit.Match(matcher, raw); err != nil {
			return value.Value{}, fmt.Errorf("stdmodules: view: %w", err)
		}
		return value.Integer(int64(field)), nil
	}))

	// match(a_bits, b_bits) -> bytes: builds a new byte array out of two
	// integer fields, the construction half of the same bit-syntax the
	// teacher's builtins_bytes.go exposes for manual byte assembly.
	mustInstall(m, "match", function.NewHandler(hashid.Empty, func(args []value.Value) (value.Value, error) {
		if len(args) != 2 {
			return value.Value{}, fmt.Errorf("stdmodules: match expects 2 arguments, got %d", len(args))
		}
		a := uint64(args[0].AsInteger())
		b := uint64(args[1].AsInteger())

		builder := funbit.NewBuilder()
		builder.AddInteger(a, funbit.WithSize(32), funbit.WithSigned(false))
		builder.AddInteger(b, funbit.WithSize(32), funbit.WithSigned(false))
		out, err := funbit.Build(builder)
		if err != nil {
			return value.Value{}, fmt.Errorf("stdmodules: match: %w", err)
		}
		return value.NewBytes(out), nil
	}))

	return m
}
