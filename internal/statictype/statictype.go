// Package statictype holds the canonical, build-independent identity of
// every built-in value category. The hashes below are part of this
// runtime's ABI with compiled units: once published they must never change.
package statictype

import "github.com/rivetlang/rivet/internal/hashid"

// StaticType is one module-level instance per built-in category. Two
// StaticType values are interchangeable if and only if their Hash fields
// are equal; Hash is authoritative, pointer identity is only a shortcut.
type StaticType struct {
	Name string
	Hash hashid.Hash
}

// Equal compares two static types by hash, not identity.
func (t *StaticType) Equal(other *StaticType) bool {
	if t == other {
		return true
	}
	if t == nil || other == nil {
		return false
	}
	return t.Hash == other.Hash
}

// The built-in static types, with ABI-fixed hashes (spec.md §6.2).
var (
	Unit           = &StaticType{Name: "unit", Hash: 0x9de148b05752dbb3}
	Byte           = &StaticType{Name: "byte", Hash: 0x190cacf7c7187189}
	Bool           = &StaticType{Name: "bool", Hash: 0xbe6bff4422d0c759}
	Char           = &StaticType{Name: "char", Hash: 0xc56a31d061187c8b}
	Integer        = &StaticType{Name: "integer", Hash: 0xbb378867da3981e2}
	Float          = &StaticType{Name: "float", Hash: 0x13e40c27462ed8fc}
	String         = &StaticType{Name: "String", Hash: 0x823ede4114ff8de6}
	Bytes          = &StaticType{Name: "Bytes", Hash: 0x957fa73126817683}
	Vec            = &StaticType{Name: "Vec", Hash: 0x6c129752545b4223}
	Tuple          = &StaticType{Name: "Tuple", Hash: 0x6da74f62cfa5cc1f}
	Object         = &StaticType{Name: "Object", Hash: 0x65f4e1cf10b1f34c}
	Range          = &StaticType{Name: "Range", Hash: 0xde6d8aadf191516b}
	Future         = &StaticType{Name: "Future", Hash: 0xafab4a2797436aee}
	Generator      = &StaticType{Name: "Generator", Hash: 0x50deff8c6ef7532c}
	GeneratorState = &StaticType{Name: "GeneratorState", Hash: 0xdd4141d4d8a3ac31}
	Stream         = &StaticType{Name: "Stream", Hash: 0xd94133730d02c3ea}
	Result         = &StaticType{Name: "Result", Hash: 0xecec15e1363240ac}
	Option         = &StaticType{Name: "Option", Hash: 0x5e08dc3f663c72db}
	Function       = &StaticType{Name: "Function", Hash: 0x45b788b02e7f231c}
	Format         = &StaticType{Name: "Format", Hash: 0x8d6bddd19f58e97a}
	Iterator       = &StaticType{Name: "Iterator", Hash: 0xe08fbd4d99f308e9}
	Type           = &StaticType{Name: "Type", Hash: 0x3cb9320f24bf56f0}
)

// All lists every registered static type, in declaration order.
// Context.WithConfig seeds every entry into its types table before
// installing the standard modules (Testable Property 5).
var All = []*StaticType{
	Unit, Byte, Bool, Char, Integer, Float, String, Bytes, Vec, Tuple, Object,
	Range, Future, Generator, GeneratorState, Stream, Result, Option, Function,
	Format, Iterator, Type,
}

// PrimitiveCategory names the host-primitive categories the registry knows
// how to map onto a StaticType (spec.md §4.4): "integers of any width" all
// collapse onto Integer, both float widths onto Float, and so on.
type PrimitiveCategory int

const (
	CategoryInt8 PrimitiveCategory = iota
	CategoryInt16
	CategoryInt32
	CategoryInt64
	CategoryUint8
	CategoryUint16
	CategoryUint32
	CategoryUint64
	CategoryFloat32
	CategoryFloat64
	CategoryBool
	CategoryChar
	CategoryString
	CategoryBytes
	CategorySlice
	CategoryMap
	CategoryUnit
)

var primitiveMap = map[PrimitiveCategory]*StaticType{
	CategoryInt8:    Integer,
	CategoryInt16:   Integer,
	CategoryInt32:   Integer,
	CategoryInt64:   Integer,
	CategoryUint8:   Byte,
	CategoryUint16:  Integer,
	CategoryUint32:  Integer,
	CategoryUint64:  Integer,
	CategoryFloat32: Float,
	CategoryFloat64: Float,
	CategoryBool:    Bool,
	CategoryChar:    Char,
	CategoryString:  String,
	CategoryBytes:   Bytes,
	CategorySlice:   Vec,
	CategoryMap:     Object,
	CategoryUnit:    Unit,
}

// ForPrimitive maps a host primitive/composite category to its StaticType.
// Reports ok=false for a category with no mapping (there is none today; the
// table is closed over PrimitiveCategory).
func ForPrimitive(category PrimitiveCategory) (*StaticType, bool) {
	t, ok := primitiveMap[category]
	return t, ok
}

// ByHash looks up a registered static type by hash; Context.StaticTypeByHash
// forwards to it.
func ByHash(h hashid.Hash) (*StaticType, bool) {
	for _, t := range All {
		if t.Hash == h {
			return t, true
		}
	}
	return nil, false
}
