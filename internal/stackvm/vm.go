package stackvm

import (
	"fmt"

	"github.com/google/uuid"
)

// Convention is the calling convention a function value invokes under.
// Immediate runs to completion before returning to its caller; the other
// three all suspend at some point and hand back a Value wrapping a
// Future/Generator/Stream cell instead of a final result.
type Convention uint8

const (
	Immediate Convention = iota
	Async
	Generator
	Stream
)

func (c Convention) String() string {
	switch c {
	case Immediate:
		return "immediate"
	case Async:
		return "async"
	case Generator:
		return "generator"
	case Stream:
		return "stream"
	default:
		return "unknown"
	}
}

// Unit is a compiled program: the artifact codegen produces and the VM
// executes. The opcode body itself is an external collaborator (spec.md
// §1); Unit is the handle this module's Offset/ClosureOffset function
// variants close over, and Instructions is left as an opaque placeholder
// for whatever byte/word encoding that external codegen emits.
type Unit struct {
	BuildID      uuid.UUID
	Name         string
	Instructions []byte
}

// NewUnit constructs a Unit with a fresh build identity.
func NewUnit(name string, instructions []byte) *Unit {
	return &Unit{BuildID: uuid.New(), Name: name, Instructions: instructions}
}

// Frame is one call's activation record: a base offset into the shared
// Stack and the instruction offset to resume at on return.
type Frame struct {
	Unit     *Unit
	Base     int
	ReturnIP int
	Offset   int
}

// VM is the cooperative, single-threaded execution shell: one operand
// Stack and a stack of call Frames. It does not itself decode opcodes —
// that belongs to the external interpreter body — but it is the thing
// call_with_vm pushes a frame onto. It has no run or resume method of its
// own.
type VM struct {
	Stack  *Stack
	Frames []Frame
	Unit   *Unit
}

// New constructs a VM with an empty stack and no active frames.
func New(unit *Unit) *VM {
	return &VM{Stack: NewStack(64), Unit: unit}
}

// PushFrame records a new activation at the current stack top and makes it
// the active frame. This is the operation function.Function.CallWithVM's
// fast path performs in place of a full call: no new Stack is allocated,
// no Go-level recursion, just a Frame pushed onto the same VM.
func (vm *VM) PushFrame(unit *Unit, offset int) {
	vm.Frames = append(vm.Frames, Frame{
		Unit:     unit,
		Base:     vm.Stack.Len(),
		ReturnIP: vm.currentOffset(),
		Offset:   offset,
	})
	vm.Unit = unit
}

func (vm *VM) currentOffset() int {
	if len(vm.Frames) == 0 {
		return 0
	}
	return vm.Frames[len(vm.Frames)-1].Offset
}

// PopFrame unwinds the most recent frame, truncating the stack back to its
// base so no callee-local state leaks into the caller's view.
func (vm *VM) PopFrame() (Frame, error) {
	if len(vm.Frames) == 0 {
		return Frame{}, fmt.Errorf("stackvm: pop frame on empty call stack")
	}
	last := len(vm.Frames) - 1
	frame := vm.Frames[last]
	vm.Frames = vm.Frames[:last]
	vm.Stack.Truncate(frame.Base)
	if len(vm.Frames) > 0 {
		vm.Unit = vm.Frames[len(vm.Frames)-1].Unit
	}
	return frame, nil
}

// Depth reports the current call-frame depth, used by tests asserting
// call_with_vm's fast path avoids growing Go's own call stack.
func (vm *VM) Depth() int { return len(vm.Frames) }

// SameUnit reports whether unit is the VM's currently executing unit — the
// guard call_with_vm's fast path checks before pushing a frame in place of
// a full out-of-line call.
func (vm *VM) SameUnit(unit *Unit) bool {
	return vm.Unit != nil && unit != nil && vm.Unit == unit
}
