package stackvm

import (
	"testing"

	"github.com/rivetlang/rivet/internal/value"
)

func TestStackPushPopOrder(t *testing.T) {
	s := NewStack(4)
	s.Push(value.Integer(1))
	s.Push(value.Integer(2))

	v, err := s.Pop()
	if err != nil || v.AsInteger() != 2 {
		t.Fatalf("Pop() = %v, %v", v, err)
	}
	v, err = s.Pop()
	if err != nil || v.AsInteger() != 1 {
		t.Fatalf("Pop() = %v, %v", v, err)
	}
	if _, err := s.Pop(); err == nil {
		t.Fatalf("expected underflow error on empty stack")
	}
}

func TestStackDrainCollectsArguments(t *testing.T) {
	s := NewStack(4)
	s.Push(value.Integer(10))
	base := s.Len()
	s.Push(value.Integer(1))
	s.Push(value.Integer(2))
	s.Push(value.Integer(3))

	args, err := s.Drain(base)
	if err != nil {
		t.Fatalf("Drain: %v", err)
	}
	if len(args) != 3 || args[0].AsInteger() != 1 || args[2].AsInteger() != 3 {
		t.Fatalf("Drain returned %v", args)
	}
	if s.Len() != base {
		t.Fatalf("Drain left stack at %d, want %d", s.Len(), base)
	}
}

func TestPushPopFrameRestoresStackBase(t *testing.T) {
	unit := NewUnit("main", nil)
	vm := New(unit)
	vm.Stack.Push(value.Integer(1))
	vm.Stack.Push(value.Integer(2))

	vm.PushFrame(unit, 0)
	vm.Stack.Push(value.Integer(3))
	vm.Stack.Push(value.Integer(4))
	if vm.Depth() != 1 {
		t.Fatalf("Depth() = %d, want 1", vm.Depth())
	}

	frame, err := vm.PopFrame()
	if err != nil {
		t.Fatalf("PopFrame: %v", err)
	}
	if frame.Base != 2 {
		t.Fatalf("frame.Base = %d, want 2", frame.Base)
	}
	if vm.Stack.Len() != 2 {
		t.Fatalf("stack not truncated to frame base: len = %d", vm.Stack.Len())
	}
	if vm.Depth() != 0 {
		t.Fatalf("Depth() after pop = %d, want 0", vm.Depth())
	}
}

func TestSameUnitGuardsTheFastPath(t *testing.T) {
	a := NewUnit("a", nil)
	b := NewUnit("b", nil)
	vm := New(a)

	if !vm.SameUnit(a) {
		t.Fatalf("SameUnit(a) = false, want true")
	}
	if vm.SameUnit(b) {
		t.Fatalf("SameUnit(b) = true, want false")
	}
}
