package stdmodules

import (
	"fmt"
	"math/rand/v2"

	"github.com/rivetlang/rivet/internal/function"
	"github.com/rivetlang/rivet/internal/hashid"
	"github.com/rivetlang/rivet/internal/module"
	"github.com/rivetlang/rivet/internal/value"
)

// RangeError reports int_range being called with upper <= lower. The
// original rand.rs computes generate_range(0..(upper-lower) as u64),
// which silently underflows into a near-u64::MAX range rather than
// erroring; this module has no sandboxing non-goal to hide that behind,
// so it surfaces the misuse instead of reproducing the underflow.
type RangeError struct {
	Lower, Upper int64
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("stdmodules: int_range(%d, %d): upper must be greater than lower", e.Lower, e.Upper)
}

// RandomModule installs int and int_range, matching original_source's
// `std::random` module (WyRand-backed in the original; math/rand/v2's
// default source here, since this runtime declares no determinism
// guarantee across builds — spec.md's non-goals exclude a stable PRNG
// sequence the way they exclude a stable bytecode format).
func RandomModule() *module.Module {
	m := module.New(hashid.NewNamed("std", "random"))

	mustInstall(m, "int", function.NewHandler(hashid.Empty, func(args []value.Value) (value.Value, error) {
		return value.Integer(rand.Int64()), nil
	}))

	mustInstall(m, "int_range", function.NewHandler(hashid.Empty, func(args []value.Value) (value.Value, error) {
		if len(args) != 2 {
			return value.Value{}, fmt.Errorf("stdmodules: int_range expects 2 arguments, got %d", len(args))
		}
		lower, upper := args[0].AsInteger(), args[1].AsInteger()
		if upper <= lower {
			return value.Value{}, &RangeError{Lower: lower, Upper: upper}
		}
		span := uint64(upper - lower)
		return value.Integer(lower + int64(rand.Uint64N(span))), nil
	}))

	return m
}
