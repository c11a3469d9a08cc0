package function

import (
	"testing"

	"github.com/rivetlang/rivet/internal/hashid"
	"github.com/rivetlang/rivet/internal/stackvm"
	"github.com/rivetlang/rivet/internal/value"
)

func TestHandlerWithoutDeclaredArityReturnsResult(t *testing.T) {
	f := NewHandler(hashid.TypeHash(hashid.NewNamed("double")), func(args []value.Value) (value.Value, error) {
		return value.Integer(args[0].AsInteger() * 2), nil
	})

	got, err := f.Call([]value.Value{value.Integer(21)})
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	if got.AsInteger() != 42 {
		t.Fatalf("Call result = %d, want 42", got.AsInteger())
	}
}

func TestHandlerWithArityEnforcesBadArgumentCount(t *testing.T) {
	f := NewHandlerWithArity(hashid.TypeHash(hashid.NewNamed("double")), func(args []value.Value) (value.Value, error) {
		return value.Integer(args[0].AsInteger() * 2), nil
	}, 1)

	if _, err := f.Call(nil); err == nil {
		t.Fatalf("expected an arity error calling a 1-arity handler with 0 args")
	}
	got, err := f.Call([]value.Value{value.Integer(21)})
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	if got.AsInteger() != 42 {
		t.Fatalf("Call result = %d, want 42", got.AsInteger())
	}

	if arity, ok := f.KnownArity(); !ok || arity != 1 {
		t.Fatalf("KnownArity() = (%d, %v), want (1, true)", arity, ok)
	}
}

func TestAsyncSendCallReleasesCapturedBorrow(t *testing.T) {
	cell := value.NewCell(value.CategoryString, nil, "hello")
	captured := value.Shared(cell)
	f := NewClosureOffset(hashid.Empty, stackvm.NewUnit("main", nil), 0, 0, stackvm.Async, []value.Value{captured})

	// AsyncSendCall runs runOffline under the hood, which has no
	// interpreter attached and always errors; what matters here is that
	// the borrow it takes on the captured cell to check send-safety is
	// released afterward rather than leaked.
	if _, err := f.AsyncSendCall(nil); err == nil {
		t.Fatalf("expected AsyncSendCall to surface the no-interpreter error")
	}

	guard, err := cell.BorrowMut()
	if err != nil {
		t.Fatalf("BorrowMut after AsyncSendCall: %v, want success (borrow should have been released)", err)
	}
	guard.Release()
}

func TestTupleStructConstructorChecksArity(t *testing.T) {
	rtti := value.NewRtti(hashid.NewNamed("geo", "Point"), []string{"x", "y"})
	ctor := NewTupleStructConstructor(rtti)

	if _, err := ctor.Call([]value.Value{value.Integer(1)}); err == nil {
		t.Fatalf("expected arity error calling with 1 arg for a 2-field struct")
	}

	v, err := ctor.Call([]value.Value{value.Integer(1), value.Integer(2)})
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	s, ok := v.Cell().AsStruct()
	if !ok || s.Values[0].AsInteger() != 1 || s.Values[1].AsInteger() != 2 {
		t.Fatalf("constructed struct = %+v", s)
	}
}

func TestUnitVariantConstructorIsZeroArity(t *testing.T) {
	enumItem := hashid.NewNamed("geo", "Shape")
	rtti := value.NewVariantRtti(enumItem, "Empty", 0, value.VariantUnit, nil)
	ctor := NewUnitVariantConstructor(rtti)

	if _, err := ctor.Call([]value.Value{value.Integer(1)}); err == nil {
		t.Fatalf("expected arity error calling a unit variant with an argument")
	}
	v, err := ctor.Call(nil)
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	variant, ok := v.Cell().AsVariant()
	if !ok || variant.Rtti != rtti {
		t.Fatalf("constructed variant = %+v", variant)
	}
}

func TestIntoSyncAcceptsConstructorsRejectsOffset(t *testing.T) {
	rtti := value.NewRtti(hashid.NewNamed("geo", "Origin"), nil)
	ctor := NewUnitStructConstructor(rtti)
	if _, err := ctor.IntoSync(); err != nil {
		t.Fatalf("IntoSync on unit-struct constructor: %v", err)
	}

	unit := stackvm.NewUnit("main", nil)
	off := NewOffset(hashid.Empty, unit, 0, 0, stackvm.Immediate)
	if _, err := off.IntoSync(); err == nil {
		t.Fatalf("expected IntoSync to reject an Offset function")
	}
}

func TestCallWithVMFusesOntoSameUnit(t *testing.T) {
	unit := stackvm.NewUnit("main", nil)
	vm := stackvm.New(unit)
	f := NewOffset(hashid.TypeHash(hashid.NewNamed("helper")), unit, 10, 1, stackvm.Immediate)

	// The fast path pushes a frame and reports it has no interpreter to
	// finish the call; the important assertion is that it fused in place
	// (depth 1, same VM) rather than standing up a second VM.
	_, err := f.CallWithVM(vm, []value.Value{value.Integer(7)})
	if err == nil {
		t.Fatalf("expected an error reporting no attached interpreter")
	}
	if vm.Depth() != 1 {
		t.Fatalf("CallWithVM fast path did not push a frame: depth = %d", vm.Depth())
	}
}

func TestCallWithVMFallsBackAcrossDifferentUnits(t *testing.T) {
	unitA := stackvm.NewUnit("a", nil)
	unitB := stackvm.NewUnit("b", nil)
	vm := stackvm.New(unitA)

	f := NewOffset(hashid.Empty, unitB, 0, 0, stackvm.Immediate)
	if _, err := f.CallWithVM(vm, nil); err == nil {
		t.Fatalf("expected an error from the out-of-line fallback path")
	}
	if vm.Depth() != 0 {
		t.Fatalf("fallback across units must not push a frame onto the caller's vm: depth = %d", vm.Depth())
	}
}
