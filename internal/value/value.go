// Package value implements the runtime's Value representation: a
// stack-sized tagged union over primitives, with heap categories boxed
// behind a shared, reference-counted Cell that tracks interior borrows.
package value

import (
	"fmt"
	"math"

	"github.com/rivetlang/rivet/internal/hashid"
	"github.com/rivetlang/rivet/internal/statictype"
)

// Kind discriminates the variant held by a Value.
type Kind uint8

const (
	KindUnit Kind = iota
	KindBool
	KindByte
	KindChar
	KindInteger
	KindFloat
	KindType
	KindShared // heap category: holds a *Cell
)

// Value is the runtime's tagged union, sized to fit in a register slot for
// every primitive category; heap categories (String, Bytes, Vec, Tuple,
// Object, Struct, Variant, Function, Future, Generator, Stream, Result,
// Option, Range) are boxed through Shared and carry a *Cell pointer.
type Value struct {
	kind   Kind
	bits   uint64
	shared *Cell
}

func Unit() Value                 { return Value{kind: KindUnit} }
func Bool(b bool) Value           { if b { return Value{kind: KindBool, bits: 1} }; return Value{kind: KindBool} }
func Byte(b byte) Value           { return Value{kind: KindByte, bits: uint64(b)} }
func Char(r rune) Value           { return Value{kind: KindChar, bits: uint64(r)} }
func Integer(i int64) Value       { return Value{kind: KindInteger, bits: uint64(i)} }
func Float(f float64) Value       { return Value{kind: KindFloat, bits: math.Float64bits(f)} }
func TypeValue(h hashid.Hash) Value { return Value{kind: KindType, bits: uint64(h)} }

// Shared wraps a heap category's Cell into a Value.
func Shared(c *Cell) Value {
	if c == nil {
		panic("value: Shared called with nil cell")
	}
	return Value{kind: KindShared, shared: c}
}

func (v Value) Kind() Kind { return v.kind }
func (v Value) IsUnit() bool   { return v.kind == KindUnit }
func (v Value) IsShared() bool { return v.kind == KindShared }

func (v Value) AsBool() bool       { return v.bits == 1 }
func (v Value) AsByte() byte       { return byte(v.bits) }
func (v Value) AsChar() rune       { return rune(v.bits) }
func (v Value) AsInteger() int64   { return int64(v.bits) }
func (v Value) AsFloat() float64   { return math.Float64frombits(v.bits) }
func (v Value) AsTypeHash() hashid.Hash { return hashid.Hash(v.bits) }

// Cell returns the shared cell for a heap-category value, or nil.
func (v Value) Cell() *Cell {
	if v.kind != KindShared {
		return nil
	}
	return v.shared
}

// StaticType reports the category this value's Rtti reports under, for the
// primitive kinds; heap categories resolve through their Cell's Rtti.
func (v Value) StaticType() *statictype.StaticType {
	switch v.kind {
	case KindUnit:
		return statictype.Unit
	case KindBool:
		return statictype.Bool
	case KindByte:
		return statictype.Byte
	case KindChar:
		return statictype.Char
	case KindInteger:
		return statictype.Integer
	case KindFloat:
		return statictype.Float
	case KindType:
		return statictype.Type
	case KindShared:
		return v.shared.StaticType()
	default:
		return nil
	}
}

// TypeHash returns the identity hash a protocol/associated-function lookup
// dispatches on for this value.
func (v Value) TypeHash() hashid.Hash {
	if v.kind == KindShared {
		return v.shared.TypeHash()
	}
	if st := v.StaticType(); st != nil {
		return st.Hash
	}
	return hashid.Empty
}

func (v Value) String() string {
	switch v.kind {
	case KindUnit:
		return "()"
	case KindBool:
		return fmt.Sprintf("%t", v.AsBool())
	case KindByte:
		return fmt.Sprintf("%d", v.AsByte())
	case KindChar:
		return fmt.Sprintf("%q", v.AsChar())
	case KindInteger:
		return fmt.Sprintf("%d", v.AsInteger())
	case KindFloat:
		return fmt.Sprintf("%g", v.AsFloat())
	case KindType:
		return fmt.Sprintf("<type %s>", v.AsTypeHash())
	case KindShared:
		return v.shared.String()
	default:
		return "<invalid value>"
	}
}
