// Package module implements Module, the write-only builder a host
// embedder populates with types, functions, macros and constants before
// handing it to a Context to install. Module itself never validates
// anything beyond local duplicate-name detection within its own
// collections; cross-module conflict detection belongs to Context.Install.
package module

import (
	"fmt"

	"github.com/rivetlang/rivet/internal/function"
	"github.com/rivetlang/rivet/internal/hashid"
	"github.com/rivetlang/rivet/internal/value"
)

// TypeEntry records one type a module declares: a struct, an enum (with
// its variants), or an opaque (external, no-field) type.
type TypeEntry struct {
	Item     hashid.Item
	Rtti     *value.Rtti           // for struct / opaque types
	Variants []*value.VariantRtti  // non-nil for an enum
}

// MacroFunc is a host-native compile-time expansion hook.
type MacroFunc func(args []value.Value) (value.Value, error)

// AssociatedFunction records a function installed against a receiver type
// hash, e.g. `String::len`.
type AssociatedFunction struct {
	Receiver hashid.Hash
	Name     string
	Fn       *function.Function
}

// Module accumulates the declarations a single host crate/package wants
// installed into a Context. Construction order within a Module does not
// matter; Context.Install is what imposes an ordering across Modules.
type Module struct {
	item hashid.Item

	types     map[string]*TypeEntry
	functions map[string]*function.Function
	macros    map[string]MacroFunc
	constants map[string]value.Value
	assoc     []*AssociatedFunction
	unitType  *value.Rtti
}

// New starts a Module builder rooted at item (e.g. hashid.NewNamed("std", "io")).
func New(item hashid.Item) *Module {
	return &Module{
		item:      item,
		types:     make(map[string]*TypeEntry),
		functions: make(map[string]*function.Function),
		macros:    make(map[string]MacroFunc),
		constants: make(map[string]value.Value),
	}
}

// Item returns the module's own path, the prefix every declared name is
// installed under once a Context installs this module.
func (m *Module) Item() hashid.Item { return m.item }

// DuplicateError reports an attempt to declare the same local name twice
// within one Module.
type DuplicateError struct {
	Kind string
	Name string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("module: duplicate %s %q", e.Kind, e.Name)
}

// Type declares a struct or opaque type under name.
func (m *Module) Type(name string, rtti *value.Rtti) error {
	if _, exists := m.types[name]; exists {
		return &DuplicateError{Kind: "type", Name: name}
	}
	m.types[name] = &TypeEntry{Item: m.item.Extended(name), Rtti: rtti}
	return nil
}

// Enum declares an enum type with its variants under name.
func (m *Module) Enum(name string, variants []*value.VariantRtti) error {
	if _, exists := m.types[name]; exists {
		return &DuplicateError{Kind: "type", Name: name}
	}
	m.types[name] = &TypeEntry{Item: m.item.Extended(name), Variants: variants}
	return nil
}

// Function declares a free function under name.
func (m *Module) Function(name string, fn *function.Function) error {
	if _, exists := m.functions[name]; exists {
		return &DuplicateError{Kind: "function", Name: name}
	}
	m.functions[name] = fn
	return nil
}

// Macro declares a compile-time macro under name.
func (m *Module) Macro(name string, fn MacroFunc) error {
	if _, exists := m.macros[name]; exists {
		return &DuplicateError{Kind: "macro", Name: name}
	}
	m.macros[name] = fn
	return nil
}

// Constant declares a named constant value.
func (m *Module) Constant(name string, v value.Value) error {
	if _, exists := m.constants[name]; exists {
		return &DuplicateError{Kind: "constant", Name: name}
	}
	m.constants[name] = v
	return nil
}

// AssociatedFunction declares a function installed against receiver (e.g.
// `String::len`). Unlike Type/Function/Macro/Constant, repeated
// registration is not rejected here: two modules commonly extend the same
// receiver type, so duplicate detection for associated functions happens
// at Context.Install, which sees the full receiver hash space at once.
func (m *Module) AssociatedFunction(receiver hashid.Hash, name string, fn *function.Function) {
	m.assoc = append(m.assoc, &AssociatedFunction{Receiver: receiver, Name: name, Fn: fn})
}

// UnitType declares the module's own "unit type" marker (spec.md's
// install_unit_type), a zero-field type representing the module itself as
// a value, used by modules that want `Module` to be nameable as a type.
func (m *Module) UnitType(rtti *value.Rtti) {
	m.unitType = rtti
}

// Types returns the declared types, keyed by local name.
func (m *Module) Types() map[string]*TypeEntry { return m.types }

// Functions returns the declared free functions, keyed by local name.
func (m *Module) Functions() map[string]*function.Function { return m.functions }

// Macros returns the declared macros, keyed by local name.
func (m *Module) Macros() map[string]MacroFunc { return m.macros }

// Constants returns the declared constants, keyed by local name.
func (m *Module) Constants() map[string]value.Value { return m.constants }

// AssociatedFunctions returns every associated-function declaration, in
// declaration order.
func (m *Module) AssociatedFunctions() []*AssociatedFunction { return m.assoc }

// UnitTypeRtti returns the module's unit-type marker, or nil if UnitType
// was never called.
func (m *Module) UnitTypeRtti() *value.Rtti { return m.unitType }
