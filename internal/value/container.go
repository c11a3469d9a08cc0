package value

import (
	"strings"

	"github.com/rivetlang/rivet/internal/hashid"
)

// Vector is a growable sequence, the backing store for the Vec category.
type Vector struct {
	Items []Value
}

// NewVector boxes a Vector into a Value.
func NewVector(items []Value) Value {
	return Shared(NewCell(CategoryVec, nil, &Vector{Items: items}))
}

func (c *Cell) AsVector() (*Vector, bool) {
	v, ok := c.data.(*Vector)
	return v, ok
}

func (v *Vector) String() string {
	parts := make([]string, len(v.Items))
	for i, it := range v.Items {
		parts[i] = it.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Tuple is a fixed-size, anonymous positional sequence.
type Tuple struct {
	Items []Value
}

func NewTuple(items []Value) Value {
	return Shared(NewCell(CategoryTuple, nil, &Tuple{Items: items}))
}

func (c *Cell) AsTuple() (*Tuple, bool) {
	t, ok := c.data.(*Tuple)
	return t, ok
}

func (t *Tuple) String() string {
	parts := make([]string, len(t.Items))
	for i, it := range t.Items {
		parts[i] = it.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// Object is the built-in, dynamically-keyed map category (distinct from a
// user-defined Struct, which has a fixed field layout recorded in Rtti).
type Object struct {
	Entries map[string]Value
}

func NewObject(entries map[string]Value) Value {
	if entries == nil {
		entries = make(map[string]Value)
	}
	return Shared(NewCell(CategoryObject, nil, &Object{Entries: entries}))
}

func (c *Cell) AsObject() (*Object, bool) {
	o, ok := c.data.(*Object)
	return o, ok
}

func (o *Object) String() string {
	parts := make([]string, 0, len(o.Entries))
	for k, v := range o.Entries {
		parts = append(parts, k+": "+v.String())
	}
	return "#{" + strings.Join(parts, ", ") + "}"
}

// Struct is a user-defined type's instance: a fixed field layout, named by
// its Rtti, with values addressed positionally to match field declaration
// order (spec.md component D).
type Struct struct {
	Rtti   *Rtti
	Values []Value
}

// NewStruct boxes a Struct instance into a Value. The cell's Rtti is the
// struct's own, so TypeHash/StaticType resolve without a second lookup.
func NewStruct(rtti *Rtti, values []Value) Value {
	return Shared(NewCell(CategoryStruct, rtti, &Struct{Rtti: rtti, Values: values}))
}

func (c *Cell) AsStruct() (*Struct, bool) {
	s, ok := c.data.(*Struct)
	return s, ok
}

// Field looks up a struct field by name, using the Rtti's recorded field
// order to find the matching positional value.
func (s *Struct) Field(name string) (Value, bool) {
	for i, f := range s.Rtti.Fields {
		if f == name {
			return s.Values[i], true
		}
	}
	return Value{}, false
}

func (s *Struct) String() string {
	parts := make([]string, len(s.Values))
	for i, v := range s.Values {
		name := ""
		if i < len(s.Rtti.Fields) {
			name = s.Rtti.Fields[i]
		}
		parts[i] = name + ": " + v.String()
	}
	return s.Rtti.Item.String() + "{" + strings.Join(parts, ", ") + "}"
}

// Variant is a single constructed enum value: its VariantRtti plus whatever
// payload its shape carries (empty for unit, positional for tuple, named
// for struct-shaped variants).
type Variant struct {
	Rtti   *VariantRtti
	Values []Value
}

func NewVariant(rtti *VariantRtti, values []Value) Value {
	return Shared(NewCell(CategoryVariant, nil, &Variant{Rtti: rtti, Values: values}))
}

func (c *Cell) AsVariant() (*Variant, bool) {
	v, ok := c.data.(*Variant)
	return v, ok
}

// TypeHash for a Variant is its own variant hash, not the enclosing enum's;
// IsVariant protocol dispatch compares against VariantRtti.EnumHash instead.
func (v *Variant) TypeHash() hashid.Hash { return v.Rtti.Hash }

func (v *Variant) String() string {
	switch v.Rtti.Shape {
	case VariantUnit:
		return v.Rtti.Item.String()
	case VariantTuple:
		parts := make([]string, len(v.Values))
		for i, it := range v.Values {
			parts[i] = it.String()
		}
		return v.Rtti.Item.String() + "(" + strings.Join(parts, ", ") + ")"
	default:
		parts := make([]string, len(v.Values))
		for i, it := range v.Values {
			name := ""
			if i < len(v.Rtti.Fields) {
				name = v.Rtti.Fields[i]
			}
			parts[i] = name + ": " + it.String()
		}
		return v.Rtti.Item.String() + "{" + strings.Join(parts, ", ") + "}"
	}
}
