package value

import (
	"github.com/google/uuid"

	"github.com/rivetlang/rivet/internal/hashid"
	"github.com/rivetlang/rivet/internal/statictype"
)

// Rtti is the runtime type metadata attached to every user-defined struct
// or enum-variant cell: enough to recover a type's path, its field layout,
// and which build installed it, without walking back through the Context
// that installed it.
type Rtti struct {
	Hash       hashid.Hash
	Item       hashid.Item
	StaticType *statictype.StaticType
	Fields     []string

	// BuildID distinguishes two Rtti values that happen to share a Hash
	// because they were installed by separate Context builds (e.g. hot
	// reload during a REPL session); it plays no part in equality or
	// dispatch, only in diagnostics that must tell "recompiled" apart
	// from "this is genuinely the same type".
	BuildID uuid.UUID
}

// NewRtti derives an Rtti for a struct type and stamps it with a fresh
// build identity.
func NewRtti(item hashid.Item, fields []string) *Rtti {
	return &Rtti{
		Hash:       hashid.TypeHash(item),
		Item:       item,
		StaticType: statictype.Object,
		Fields:     fields,
		BuildID:    uuid.New(),
	}
}

// VariantShape distinguishes a unit variant (no payload) from a tuple
// variant (positional payload) from a struct variant (named fields).
type VariantShape uint8

const (
	VariantUnit VariantShape = iota
	VariantTuple
	VariantStruct
)

// VariantRtti is the per-variant counterpart for enum types: each variant
// of an enum gets its own Hash (type_hash(enum_item) combined with the
// variant's own component), but they all share one EnumHash for is_variant
// probing against the enum as a whole.
type VariantRtti struct {
	Hash     hashid.Hash
	EnumHash hashid.Hash
	Item     hashid.Item
	Index    uint32
	Shape    VariantShape
	Fields   []string // field names for VariantStruct, empty otherwise
	BuildID  uuid.UUID
}

// NewVariantRtti derives a VariantRtti for one variant of an enum declared
// at enumItem, identified by its ordinal index within the enum.
func NewVariantRtti(enumItem hashid.Item, variantName string, index uint32, shape VariantShape, fields []string) *VariantRtti {
	variantItem := enumItem.Extended(variantName)
	return &VariantRtti{
		Hash:     hashid.TypeHash(variantItem),
		EnumHash: hashid.TypeHash(enumItem),
		Item:     variantItem,
		Index:    index,
		Shape:    shape,
		Fields:   fields,
		BuildID:  uuid.New(),
	}
}
