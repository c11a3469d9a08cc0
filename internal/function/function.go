// Package function implements FunctionValue: the single runtime
// representation of every callable a script can hold, whether it's a host
// closure, an offset into compiled bytecode, a closure capturing an
// environment, or a struct/variant constructor treated as a function.
package function

import (
	"fmt"

	"github.com/rivetlang/rivet/internal/hashid"
	"github.com/rivetlang/rivet/internal/stackvm"
	"github.com/rivetlang/rivet/internal/value"
)

// Variant discriminates FunctionValue's seven shapes.
type Variant uint8

const (
	// Handler wraps a host (Go-native) closure.
	Handler Variant = iota
	// Offset points at compiled bytecode with no captured environment.
	Offset
	// ClosureOffset is an Offset plus a captured environment.
	ClosureOffset
	// UnitStruct constructs a zero-field struct instance.
	UnitStruct
	// TupleStruct constructs a positional-field struct instance.
	TupleStruct
	// UnitVariant constructs a zero-payload enum variant.
	UnitVariant
	// TupleVariant constructs a positional-payload enum variant.
	TupleVariant
)

func (v Variant) String() string {
	switch v {
	case Handler:
		return "handler"
	case Offset:
		return "offset"
	case ClosureOffset:
		return "closure-offset"
	case UnitStruct:
		return "unit-struct"
	case TupleStruct:
		return "tuple-struct"
	case UnitVariant:
		return "unit-variant"
	case TupleVariant:
		return "tuple-variant"
	default:
		return "unknown"
	}
}

// HandlerFunc is a host-native function body.
type HandlerFunc func(args []value.Value) (value.Value, error)

// Function is a single callable value. Exactly one of the fields relevant
// to its Variant is populated; the rest are left at their zero value.
type Function struct {
	Variant Variant
	Hash    hashid.Hash

	// Handler
	handler HandlerFunc
	// knownArity is set only by NewHandlerWithArity: most Handlers police
	// their own arity and leave this false, but a handler constructed with
	// a declared arity gets the same bad-argument-count checking as every
	// other variant, and a real entry in a Context's functions_info
	// signature table instead of an unknown one.
	knownArity    bool
	expectedArity int

	// Offset / ClosureOffset
	unit       *stackvm.Unit
	offset     int
	convention stackvm.Convention
	arity      int
	captured   []value.Value // non-nil only for ClosureOffset

	// UnitStruct / TupleStruct
	structRtti *value.Rtti

	// UnitVariant / TupleVariant
	variantRtti *value.VariantRtti
}

// NewHandler wraps a host closure as a Function. hash identifies it for
// instance-function dispatch (hashid.Empty if it was never installed under
// a named path, e.g. a bare closure handed directly to a call site).
func NewHandler(hash hashid.Hash, fn HandlerFunc) *Function {
	return &Function{Variant: Handler, Hash: hash, handler: fn}
}

// NewHandlerWithArity wraps a host closure the same way NewHandler does,
// but additionally declares its expected argument count: Call/CallWithVM
// then check it the way every other variant does, and a Context installing
// this as a named function records that count in functions_info instead of
// leaving it unknown.
func NewHandlerWithArity(hash hashid.Hash, fn HandlerFunc, arity int) *Function {
	return &Function{Variant: Handler, Hash: hash, handler: fn, knownArity: true, expectedArity: arity}
}

// NewOffset constructs a Function over compiled bytecode with no captured
// environment.
func NewOffset(hash hashid.Hash, unit *stackvm.Unit, offset, arity int, convention stackvm.Convention) *Function {
	return &Function{Variant: Offset, Hash: hash, unit: unit, offset: offset, arity: arity, convention: convention}
}

// NewClosureOffset constructs a Function over compiled bytecode that closes
// over captured values from its defining scope.
func NewClosureOffset(hash hashid.Hash, unit *stackvm.Unit, offset, arity int, convention stackvm.Convention, captured []value.Value) *Function {
	return &Function{Variant: ClosureOffset, Hash: hash, unit: unit, offset: offset, arity: arity, convention: convention, captured: captured}
}

// NewUnitStructConstructor constructs the zero-arity constructor function
// for a unit struct (a struct with no fields, callable as `Type()`).
func NewUnitStructConstructor(rtti *value.Rtti) *Function {
	return &Function{Variant: UnitStruct, Hash: rtti.Hash, structRtti: rtti}
}

// NewTupleStructConstructor constructs the positional-arity constructor
// function for a tuple struct.
func NewTupleStructConstructor(rtti *value.Rtti) *Function {
	return &Function{Variant: TupleStruct, Hash: rtti.Hash, structRtti: rtti, arity: len(rtti.Fields)}
}

// NewUnitVariantConstructor constructs the zero-arity constructor for a
// unit enum variant.
func NewUnitVariantConstructor(rtti *value.VariantRtti) *Function {
	return &Function{Variant: UnitVariant, Hash: rtti.Hash, variantRtti: rtti}
}

// NewTupleVariantConstructor constructs the positional-arity constructor
// for a tuple enum variant.
func NewTupleVariantConstructor(rtti *value.VariantRtti) *Function {
	return &Function{Variant: TupleVariant, Hash: rtti.Hash, variantRtti: rtti, arity: len(rtti.Fields)}
}

// TypeHash returns the dispatch key this function was installed under.
func (f *Function) TypeHash() hashid.Hash { return f.Hash }

// Convention reports the calling convention a bytecode-backed function
// invokes under; constructor and handler variants are always Immediate.
func (f *Function) Convention() stackvm.Convention {
	if f.Variant == Offset || f.Variant == ClosureOffset {
		return f.convention
	}
	return stackvm.Immediate
}

// ArityError reports a call with the wrong number of arguments.
type ArityError struct {
	Hash     hashid.Hash
	Expected int
	Got      int
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("function: %s expects %d argument(s), got %d", e.Hash, e.Expected, e.Got)
}

func (f *Function) checkArgs(args []value.Value) error {
	expected := f.arity
	switch f.Variant {
	case Handler:
		if !f.knownArity {
			return nil // arity undeclared: host handler polices its own
		}
		expected = f.expectedArity
	case UnitStruct, UnitVariant:
		expected = 0
	}
	if len(args) != expected {
		return &ArityError{Hash: f.Hash, Expected: expected, Got: len(args)}
	}
	return nil
}

// KnownArity reports the function's expected argument count, when it has
// one: every variant but a plain arity-undeclared Handler. A Context uses
// this to populate a ContextSignature's optional args count.
func (f *Function) KnownArity() (int, bool) {
	switch f.Variant {
	case Handler:
		return f.expectedArity, f.knownArity
	case UnitStruct, UnitVariant:
		return 0, true
	default:
		return f.arity, true
	}
}

// Call invokes the function synchronously, to completion, ignoring any VM
// fast path. This is the only invocation mode available for Handler and
// the four constructor variants; for Offset/ClosureOffset it runs the
// callee out-of-line the way a call from outside any running VM would
// (spec.md's "call" mode).
func (f *Function) Call(args []value.Value) (value.Value, error) {
	if err := f.checkArgs(args); err != nil {
		return value.Value{}, err
	}
	switch f.Variant {
	case Handler:
		return f.handler(args)
	case Offset, ClosureOffset:
		return f.runOffline(args)
	case UnitStruct:
		return value.NewStruct(f.structRtti, nil), nil
	case TupleStruct:
		return value.NewStruct(f.structRtti, args), nil
	case UnitVariant:
		return value.NewVariant(f.variantRtti, nil), nil
	case TupleVariant:
		return value.NewVariant(f.variantRtti, args), nil
	default:
		return value.Value{}, fmt.Errorf("function: unknown variant %v", f.Variant)
	}
}

// runOffline executes an Offset/ClosureOffset function by standing up a
// private VM, the "out-of-line" path used whenever there is no already-
// running VM to fuse into (a host embedder calling a script function
// directly, or a call across two different compiled units).
func (f *Function) runOffline(args []value.Value) (value.Value, error) {
	vm := stackvm.New(f.unit)
	for _, a := range args {
		vm.Stack.Push(a)
	}
	for _, c := range f.captured {
		vm.Stack.Push(c)
	}
	vm.PushFrame(f.unit, f.offset)
	// The opcode interpreter body that would drive vm to completion from
	// here is an external collaborator (spec.md §1); this shell reports
	// the frame it would hand off to rather than fabricating a result.
	return value.Value{}, fmt.Errorf("function: %s has no interpreter attached to run it to completion", f.Hash)
}

// CallWithVM invokes the function fused into an already-running vm when
// possible: if f is Offset/ClosureOffset, its convention is Immediate, and
// vm is already executing the same Unit, it pushes a frame in place
// instead of starting a second VM — the fast path function.rs documents
// as avoiding a second allocation and a Go-level recursive call for the
// overwhelmingly common case of one script function calling another in
// the same compiled unit. Every other shape falls back to Call.
func (f *Function) CallWithVM(vm *stackvm.VM, args []value.Value) (value.Value, error) {
	if err := f.checkArgs(args); err != nil {
		return value.Value{}, err
	}
	if (f.Variant == Offset || f.Variant == ClosureOffset) && f.convention == stackvm.Immediate && vm.SameUnit(f.unit) {
		for _, a := range args {
			vm.Stack.Push(a)
		}
		for _, c := range f.captured {
			vm.Stack.Push(c)
		}
		vm.PushFrame(f.unit, f.offset)
		return value.Value{}, fmt.Errorf("function: %s fused onto the running VM; the interpreter body drives it to completion", f.Hash)
	}
	return f.Call(args)
}

// AsyncSendCall invokes the function and wraps its result as a Future
// value, asserting the arguments and captured environment are safe to hand
// to another goroutine. Go has no static Send marker the way the host
// language does; this runtime asserts the property structurally instead,
// by refusing to wrap a ClosureOffset whose captured environment holds a
// value.Cell already under an exclusive borrow (the one case where handing
// the closure to another goroutine could observe a torn write).
func (f *Function) AsyncSendCall(args []value.Value) (value.Value, error) {
	for _, c := range f.captured {
		if cell := c.Cell(); cell != nil {
			guard, err := cell.Borrow()
			if err != nil {
				return value.Value{}, fmt.Errorf("function: %s is not safe to send: %w", f.Hash, err)
			}
			guard.Release()
		}
	}
	result, err := f.Call(args)
	if err != nil {
		return value.Value{}, err
	}
	return value.Shared(value.NewCell(value.CategoryFuture, nil, &futureResult{value: result})), nil
}

type futureResult struct {
	value value.Value
}

func (r *futureResult) String() string { return "<future>" }

// SyncFunction is the restricted subset of Function values safe to embed
// in a constant expression evaluated once at compile time: a Handler, or
// one of the four constructor variants. Offset and ClosureOffset can never
// convert, because they close over interpreter/unit state that only
// exists once a Context has installed their owning module.
type SyncFunction struct {
	inner *Function
}

// IntoSync attempts the restriction described above.
func (f *Function) IntoSync() (*SyncFunction, error) {
	switch f.Variant {
	case Handler, UnitStruct, TupleStruct, UnitVariant, TupleVariant:
		return &SyncFunction{inner: f}, nil
	default:
		return nil, fmt.Errorf("function: %s (%s) cannot convert to a sync function: closes over unit state", f.Hash, f.Variant)
	}
}

// Call invokes a SyncFunction the same way as the underlying Function.
func (s *SyncFunction) Call(args []value.Value) (value.Value, error) {
	return s.inner.Call(args)
}
