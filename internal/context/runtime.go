package context

import (
	"github.com/rivetlang/rivet/internal/function"
	"github.com/rivetlang/rivet/internal/hashid"
	"github.com/rivetlang/rivet/internal/protocol"
	"github.com/rivetlang/rivet/internal/value"
)

// RuntimeContext is the read-only, VM-facing projection of a Context. It
// never changes after Context.Runtime() produces it, so it requires no
// locking: any number of goroutines may hold a RuntimeContext and call
// Lookup* concurrently (spec.md §5's concurrent-readers guarantee).
type RuntimeContext struct {
	functions map[hashid.Hash]*function.Function
	assoc     map[hashid.Hash]*function.Function
	constants map[hashid.Hash]value.Value
	types     map[hashid.Hash]*typeRecord

	// functionNames and typeNames retain the textual path each hash was
	// installed under, dropped from the dispatch tables themselves (the VM
	// never needs them) but kept here for internal/introspect, which is
	// handed a RuntimeContext rather than a *Context.
	functionNames map[hashid.Hash]string
	typeNames     map[hashid.Hash]string
}

// LookupFunction resolves a free function by its path hash.
func (rt *RuntimeContext) LookupFunction(h hashid.Hash) (*function.Function, bool) {
	fn, ok := rt.functions[h]
	return fn, ok
}

// LookupAssociatedFunction resolves a function installed against receiver
// under nameHash (typically hashid.TypeHash(hashid.NewNamed(name))).
func (rt *RuntimeContext) LookupAssociatedFunction(receiver, nameHash hashid.Hash) (*function.Function, bool) {
	fn, ok := rt.assoc[hashid.InstanceFunction(receiver, nameHash)]
	return fn, ok
}

// LookupProtocol resolves the implementation of p for receiver, the single
// probe every arithmetic/indexing/iteration/formatting/conversion opcode
// performs (spec.md §4.3): instance_function(receiver, p.Hash).
func (rt *RuntimeContext) LookupProtocol(receiver hashid.Hash, p *protocol.Protocol) (*function.Function, bool) {
	fn, ok := rt.assoc[hashid.InstanceFunction(receiver, p.Hash)]
	return fn, ok
}

// LookupConstant resolves a named constant by its path hash.
func (rt *RuntimeContext) LookupConstant(h hashid.Hash) (value.Value, bool) {
	v, ok := rt.constants[h]
	return v, ok
}

// LookupType resolves a type's Rtti (for a struct/opaque type) or variant
// list (for an enum) by its path hash.
func (rt *RuntimeContext) LookupType(h hashid.Hash) (*value.Rtti, []*value.VariantRtti, bool) {
	r, ok := rt.types[h]
	if !ok {
		return nil, nil, false
	}
	return r.rtti, r.variants, true
}

// FunctionCount, TypeCount and ConstantCount back internal/introspect's
// metadata RPCs without handing out the underlying maps.
func (rt *RuntimeContext) FunctionCount() int { return len(rt.functions) }
func (rt *RuntimeContext) TypeCount() int     { return len(rt.types) }
func (rt *RuntimeContext) ConstantCount() int { return len(rt.constants) }

// FunctionHashes returns every installed free-function hash, in map
// iteration order (no ordering guarantee), for introspection/listing.
func (rt *RuntimeContext) FunctionHashes() []hashid.Hash {
	out := make([]hashid.Hash, 0, len(rt.functions))
	for h := range rt.functions {
		out = append(out, h)
	}
	return out
}

// TypeHashes returns every installed type hash (built-in and user), for
// internal/introspect's ListTypes RPC.
func (rt *RuntimeContext) TypeHashes() []hashid.Hash {
	out := make([]hashid.Hash, 0, len(rt.types))
	for h := range rt.types {
		out = append(out, h)
	}
	return out
}

// FunctionName resolves the textual path a free function was installed
// under, for diagnostics and introspection; ok is false for a function
// handed to a VM directly without ever going through a Module (hashid.Empty).
func (rt *RuntimeContext) FunctionName(h hashid.Hash) (string, bool) {
	name, ok := rt.functionNames[h]
	return name, ok
}

// TypeName resolves the textual path a type was installed under.
func (rt *RuntimeContext) TypeName(h hashid.Hash) (string, bool) {
	name, ok := rt.typeNames[h]
	return name, ok
}
