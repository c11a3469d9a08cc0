// Package context implements Context, the build-time registry a host
// embedder assembles by installing one or more Modules, and
// RuntimeContext, the read-only projection of a Context a VM actually
// dispatches against. Construction (Context) and execution (RuntimeContext)
// are deliberately different types: a Context is still being mutated while
// modules install into it, a RuntimeContext never changes after
// Context.Runtime() returns it.
package context

import (
	"fmt"

	"github.com/rivetlang/rivet/internal/config"
	"github.com/rivetlang/rivet/internal/function"
	"github.com/rivetlang/rivet/internal/hashid"
	"github.com/rivetlang/rivet/internal/module"
	"github.com/rivetlang/rivet/internal/protocol"
	"github.com/rivetlang/rivet/internal/statictype"
	"github.com/rivetlang/rivet/internal/stdmodules"
	"github.com/rivetlang/rivet/internal/value"
)

type typeRecord struct {
	item     hashid.Item
	rtti     *value.Rtti
	variants []*value.VariantRtti
	fromMod  *module.Module
	static   *statictype.StaticType // non-nil for a built-in seeded by WithConfig
}

type functionRecord struct {
	item hashid.Item
	fn   *function.Function
}

type assocRecord struct {
	receiver hashid.Hash
	name     string
	fn       *function.Function
}

// Context accumulates every declaration from every installed Module into a
// single, flat, hash-addressed set of tables. Installation order is fixed
// (§4.1): crate-prefix registration, then types, functions, macros,
// constants, the module's own unit type, and finally associated functions
// — associated functions are installed last because they reference
// receiver hashes that must already exist. There is no internal-enum
// install step (see Install).
type Context struct {
	modules   map[string]*module.Module // keyed by module item's String()
	types     map[hashid.Hash]*typeRecord
	functions map[hashid.Hash]*functionRecord
	macros    map[hashid.Hash]*functionRecord
	constants map[hashid.Hash]value.Value
	assoc     map[hashid.Hash]*assocRecord

	// meta records what kind of thing lives at each installed path
	// (function, struct, enum, variant, const), independent of which of
	// the tables above actually backs it.
	meta map[hashid.Hash]*ContextMeta
	// functionsInfo carries the call shape for every entry in functions
	// (Free) and every entry in assoc (Instance): every functions entry
	// has a matching functionsInfo entry.
	functionsInfo map[hashid.Hash]*ContextSignature
	// typesRev is the injective reverse of a type's native hash (the ABI-
	// fixed hash a receiver is dispatched by, e.g. statictype.StaticType's
	// own Hash for a built-in) back to the item-path hash types is keyed
	// on for everything else. For a user-declared type the two coincide.
	typesRev map[hashid.Hash]hashid.Hash
	// names is the prefix tree over every installed path's component
	// sequence, backing ContainsPrefix and child-name iteration.
	names *nameTrie
	// crates is the set of top-level crate/package name prefixes that
	// have installed at least one module.
	crates map[string]bool

	io *stdmodules.CaptureIO // non-nil once WithConfig installs std::io
}

// New constructs an empty Context: every table starts empty, including
// types. Built-in static types are still resolvable through
// StaticTypeByHash, which does not consult the types table; WithConfig is
// what seeds statictype.All into the types table itself.
func New() *Context {
	return &Context{
		modules:       make(map[string]*module.Module),
		types:         make(map[hashid.Hash]*typeRecord),
		functions:     make(map[hashid.Hash]*functionRecord),
		macros:        make(map[hashid.Hash]*functionRecord),
		constants:     make(map[hashid.Hash]value.Value),
		assoc:         make(map[hashid.Hash]*assocRecord),
		meta:          make(map[hashid.Hash]*ContextMeta),
		functionsInfo: make(map[hashid.Hash]*ContextSignature),
		typesRev:      make(map[hashid.Hash]hashid.Hash),
		names:         newNameTrie(),
		crates:        make(map[string]bool),
	}
}

// WithConfig builds a Context the way a host embedder normally would:
// every built-in static type pre-registered (Testable Property 5 — after
// this call, every hash in statictype.All resolves through the types
// table even though no user Module ever declares unit/integer/Vec/…), plus
// whichever standard modules cfg selects installed on top. A nil cfg is
// equivalent to config.Default().
func WithConfig(cfg *config.RuntimeConfig) (*Context, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	c := New()
	for _, st := range statictype.All {
		item := hashid.NewNamed(st.Name)
		c.types[st.Hash] = &typeRecord{item: item, static: st}
		if err := c.recordTypeHashRev(st.Hash, hashid.TypeHash(item), item); err != nil {
			return nil, err
		}
		c.names.insert(item)
	}
	if cfg.Random {
		if err := c.Install(stdmodules.RandomModule()); err != nil {
			return nil, err
		}
	}
	if cfg.Bytes {
		if err := c.Install(stdmodules.BytesModule()); err != nil {
			return nil, err
		}
	}
	if cfg.Stdio {
		c.io = stdmodules.NewCaptureIO()
		if err := c.Install(stdmodules.IOModule(c.io)); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// CaptureIO returns the std::io capture buffer WithConfig installed, or
// nil if cfg.Stdio was false.
func (c *Context) CaptureIO() *stdmodules.CaptureIO {
	return c.io
}

// Install merges m into c, in the fixed order described on Context.
func (c *Context) Install(m *module.Module) error {
	prefix := m.Item().String()
	if existing, ok := c.modules[prefix]; ok && existing != m {
		return newError(ConflictingModule, m.Item(), hashid.TypeHash(m.Item()))
	}
	c.modules[prefix] = m
	c.recordCrate(m.Item())
	c.names.insert(m.Item())

	if err := c.installTypes(m); err != nil {
		return err
	}
	if err := c.installFunctions(m); err != nil {
		return err
	}
	if err := c.installMacros(m); err != nil {
		return err
	}
	if err := c.installConstants(m); err != nil {
		return err
	}
	if rtti := m.UnitTypeRtti(); rtti != nil {
		c.installTypeRecord(m.Item(), rtti, nil, m)
	}
	// Internal enums (Option, Result, and friends) are pre-seeded by the
	// static-type registry itself (statictype.All is complete regardless
	// of which modules install); nothing in a host Module ever re-declares
	// them, so there is no corresponding install step here.
	if err := c.installAssociatedFunctions(m); err != nil {
		return err
	}
	return nil
}

// recordCrate records the top-level component of item as an installed
// crate prefix (§4.1 step 1). Anonymous-component items (block/closure/
// generator scopes never appear as a module's own path) are ignored.
func (c *Context) recordCrate(item hashid.Item) {
	first, ok := item.First()
	if !ok || first.Kind != hashid.ComponentNamed {
		return
	}
	c.crates[first.Name] = true
}

// recordTypeHashRev writes the typesRev[nativeHash] = itemHash mapping,
// failing with ConflictingTypeHash if nativeHash was already bound to a
// different itemHash (Testable Property 7: the mapping is injective).
func (c *Context) recordTypeHashRev(nativeHash, itemHash hashid.Hash, item hashid.Item) error {
	if existing, ok := c.typesRev[nativeHash]; ok && existing != itemHash {
		return newError(ConflictingTypeHash, item, nativeHash)
	}
	c.typesRev[nativeHash] = itemHash
	return nil
}

// setMeta records what kind of thing lives at hash, failing with
// ConflictingMeta if a different kind was already recorded there.
// Reinstalling the identical module (the no-op case installTypeRecord
// already allows) re-sets the same kind, which is never a conflict.
func (c *Context) setMeta(hash hashid.Hash, item hashid.Item, meta *ContextMeta) error {
	if existing, ok := c.meta[hash]; ok && existing.Kind != meta.Kind {
		return newError(ConflictingMeta, item, hash)
	}
	c.meta[hash] = meta
	return nil
}

func (c *Context) installTypes(m *module.Module) error {
	for name, entry := range m.Types() {
		item := m.Item().Extended(name)
		h := hashid.TypeHash(item)
		if entry.Variants != nil {
			if err := c.installTypeRecord(item, nil, entry.Variants, m); err != nil {
				return err
			}
			c.installTypeName(item, h)
			if err := c.setMeta(h, item, &ContextMeta{Kind: MetaEnum}); err != nil {
				return err
			}
			if err := c.installEnumVariants(entry.Variants); err != nil {
				return err
			}
			continue
		}
		if err := c.installTypeRecord(item, entry.Rtti, nil, m); err != nil {
			return err
		}
		c.installTypeName(item, h)
		if entry.Rtti != nil {
			if err := c.setMeta(h, item, &ContextMeta{Kind: MetaStruct, Fields: entry.Rtti.Fields}); err != nil {
				return err
			}
		} else if err := c.setMeta(h, item, &ContextMeta{Kind: MetaUnknown}); err != nil {
			return err
		}
	}
	return nil
}

// installEnumVariants registers each variant's ordinal meta and, for every
// shape this runtime can represent as a FunctionValue constructor (unit or
// tuple — a VariantStruct shape has no FunctionValue variant to build one
// from), its constructor as a free function under the variant's own hash.
func (c *Context) installEnumVariants(variants []*value.VariantRtti) error {
	for _, v := range variants {
		c.installTypeName(v.Item, v.Hash)
		if err := c.setMeta(v.Hash, v.Item, &ContextMeta{Kind: MetaVariant, VariantIndex: v.Index}); err != nil {
			return err
		}
		if v.Shape == value.VariantStruct {
			continue
		}
		if _, ok := c.functions[v.Hash]; ok {
			// A fresh constructor is built per call, so there is no stable
			// pointer to compare against the way installFunctions compares
			// a Module's own stored *function.Function; reinstalling the
			// same enum twice (Context.Install's documented no-op case)
			// just leaves the existing constructor in place.
			continue
		}
		var fn *function.Function
		if v.Shape == value.VariantUnit {
			fn = function.NewUnitVariantConstructor(v)
		} else {
			fn = function.NewTupleVariantConstructor(v)
		}
		c.functions[v.Hash] = &functionRecord{item: v.Item, fn: fn}
		arity, _ := fn.KnownArity()
		c.functionsInfo[v.Hash] = &ContextSignature{Kind: SignatureFree, TypeHash: v.Hash, Item: v.Item, Args: knownArity(arity)}
		c.names.insert(v.Item)
	}
	return nil
}

func (c *Context) installTypeRecord(item hashid.Item, rtti *value.Rtti, variants []*value.VariantRtti, m *module.Module) error {
	h := hashid.TypeHash(item)
	if existing, ok := c.types[h]; ok {
		if existing.fromMod == m {
			return nil
		}
		return newError(ConflictingType, item, h)
	}
	c.types[h] = &typeRecord{item: item, rtti: rtti, variants: variants, fromMod: m}
	if err := c.recordTypeHashRev(h, h, item); err != nil {
		return err
	}
	c.names.insert(item)
	return nil
}

// installTypeName records the INTO_TYPE_NAME bookkeeping constant (spec.md
// §4.1): a constant under instance_function(hash, protocol.IntoTypeName.Hash)
// mapping to item's textual form, installed for every type, free function
// and associated function. The original runtime's install_type_info and its
// siblings call self.constants.insert(..) unconditionally — Rust
// HashMap::insert silently discards whatever was there before — so this is
// always a plain overwrite, never a conflict, regardless of whether the new
// name is byte-equal to the old one (see SPEC_FULL.md's Open Question on
// INTO_TYPE_NAME re-insertion).
func (c *Context) installTypeName(item hashid.Item, hash hashid.Hash) {
	slot := hashid.InstanceFunction(hash, protocol.IntoTypeName.Hash)
	c.constants[slot] = value.NewString(item.String())
}

func (c *Context) installFunctions(m *module.Module) error {
	for name, fn := range m.Functions() {
		item := m.Item().Extended(name)
		h := hashid.TypeHash(item)
		if existing, ok := c.functions[h]; ok && existing.fn != fn {
			return newError(ConflictingFunction, item, h)
		}
		c.functions[h] = &functionRecord{item: item, fn: fn}
		c.installTypeName(item, h)
		sig := &ContextSignature{Kind: SignatureFree, TypeHash: h, Item: item}
		if arity, ok := fn.KnownArity(); ok {
			sig.Args = knownArity(arity)
		}
		c.functionsInfo[h] = sig
		// A function at a struct's own path is that struct's constructor;
		// the path keeps its MetaStruct entry.
		if existing, ok := c.meta[h]; !ok || existing.Kind != MetaStruct {
			if err := c.setMeta(h, item, &ContextMeta{Kind: MetaFunction}); err != nil {
				return err
			}
		}
		c.names.insert(item)
	}
	return nil
}

func (c *Context) installMacros(m *module.Module) error {
	for name := range m.Macros() {
		item := m.Item().Extended(name)
		h := hashid.TypeHash(item)
		if _, ok := c.macros[h]; ok {
			return newError(ConflictingMacro, item, h)
		}
		c.macros[h] = &functionRecord{item: item}
	}
	return nil
}

func (c *Context) installConstants(m *module.Module) error {
	for name, v := range m.Constants() {
		item := m.Item().Extended(name)
		h := hashid.TypeHash(item)
		if existing, ok := c.constants[h]; ok && existing.String() != v.String() {
			return newError(ConflictingConstant, item, h)
		}
		c.constants[h] = v
		if err := c.setMeta(h, item, &ContextMeta{Kind: MetaConst}); err != nil {
			return err
		}
		c.names.insert(item)
	}
	return nil
}

// installAssociatedFunctions binds every Module.AssociatedFunction
// declaration to its instance-function slot (spec.md §4.1
// install_associated_function). Every function reaching this path is a
// plain named instance function — protocol implementations go through
// InstallProtocol instead, and this runtime has no separate field-accessor
// declaration — so every one of them also gets the free-path re-exposure
// (receiver-item ++ name, callable without an explicit receiver) and an
// INTO_TYPE_NAME constant, per §4.1 step 4.
func (c *Context) installAssociatedFunctions(m *module.Module) error {
	for _, a := range m.AssociatedFunctions() {
		if _, ok := c.typesRev[a.Receiver]; !ok {
			return newError(MissingInstance, hashid.NewNamed(a.Name), a.Receiver)
		}
		receiverType, ok := c.types[a.Receiver]
		if !ok {
			return newError(MissingInstance, hashid.NewNamed(a.Name), a.Receiver)
		}

		nameHash := hashid.TypeHash(hashid.NewNamed(a.Name))
		slot := hashid.InstanceFunction(a.Receiver, nameHash)
		if existing, ok := c.assoc[slot]; ok && existing.fn != a.Fn {
			return newError(ConflictingAssociatedFunction, hashid.NewNamed(a.Name), slot)
		}
		c.assoc[slot] = &assocRecord{receiver: a.Receiver, name: a.Name, fn: a.Fn}
		var argsPtr *int
		if arity, ok := a.Fn.KnownArity(); ok {
			argsPtr = knownArity(arity)
		}
		c.functionsInfo[slot] = &ContextSignature{
			Kind:         SignatureInstance,
			TypeHash:     a.Receiver,
			Item:         receiverType.item,
			Name:         a.Name,
			Args:         argsPtr,
			SelfTypeInfo: a.Receiver,
		}

		freeItem := receiverType.item.Extended(a.Name)
		freeHash := hashid.TypeHash(freeItem)
		if existing, ok := c.functions[freeHash]; ok && existing.fn != a.Fn {
			return newError(ConflictingFunction, freeItem, freeHash)
		}
		c.functions[freeHash] = &functionRecord{item: freeItem, fn: a.Fn}
		c.installTypeName(freeItem, freeHash)
		c.functionsInfo[freeHash] = &ContextSignature{Kind: SignatureFree, TypeHash: freeHash, Item: freeItem, Args: argsPtr}
		if err := c.setMeta(freeHash, freeItem, &ContextMeta{Kind: MetaFunction}); err != nil {
			return err
		}
		c.names.insert(freeItem)
	}
	return nil
}

// InstallProtocol installs fn as the implementation of protocol p for the
// receiver type hash. This goes through the same instance-function slot an
// AssociatedFunction would (InstanceFunction(receiver, p.Hash)), but is
// exposed directly because protocol implementations are usually wired by
// host glue code rather than discovered from a Module's declared name
// table — a Vec's "+" protocol is Go code, not a user-nameable function.
func (c *Context) InstallProtocol(receiver hashid.Hash, p *protocol.Protocol, fn *function.Function) error {
	slot := hashid.InstanceFunction(receiver, p.Hash)
	if existing, ok := c.assoc[slot]; ok && existing.fn != fn {
		return newError(ConflictingProtocol, hashid.NewNamed(p.Name), slot)
	}
	c.assoc[slot] = &assocRecord{receiver: receiver, name: p.Name, fn: fn}
	sig := &ContextSignature{Kind: SignatureInstance, TypeHash: receiver, Name: p.Name, SelfTypeInfo: receiver}
	if r, ok := c.types[receiver]; ok {
		sig.Item = r.item
	}
	if arity, ok := fn.KnownArity(); ok {
		sig.Args = knownArity(arity)
	}
	c.functionsInfo[slot] = sig
	return nil
}

// StaticTypeByHash resolves one of the built-in categories; it never
// depends on which modules were installed (§4.4).
func (c *Context) StaticTypeByHash(h hashid.Hash) (*statictype.StaticType, bool) {
	return statictype.ByHash(h)
}

// Meta reports what kind of thing lives at the given path hash.
func (c *Context) Meta(h hashid.Hash) (*ContextMeta, bool) {
	m, ok := c.meta[h]
	return m, ok
}

// Signature reports the call shape recorded for a functions or assoc slot.
func (c *Context) Signature(h hashid.Hash) (*ContextSignature, bool) {
	s, ok := c.functionsInfo[h]
	return s, ok
}

// ContainsPrefix reports whether prefix names an installed path or an
// ancestor of one.
func (c *Context) ContainsPrefix(prefix hashid.Item) bool {
	return c.names.containsPrefix(prefix)
}

// Children lists the immediate child path components under prefix.
func (c *Context) Children(prefix hashid.Item) []string {
	return c.names.children(prefix)
}

// Crates lists every top-level crate/package prefix that has installed at
// least one module.
func (c *Context) Crates() []string {
	out := make([]string, 0, len(c.crates))
	for name := range c.crates {
		out = append(out, name)
	}
	return out
}

// Runtime snapshots the Context into an immutable RuntimeContext. After
// this call, further mutation of c through Install does not affect any
// RuntimeContext already handed out — each is a frozen copy of the tables
// at the moment Runtime was called.
func (c *Context) Runtime() *RuntimeContext {
	rt := &RuntimeContext{
		functions:     make(map[hashid.Hash]*function.Function, len(c.functions)),
		assoc:         make(map[hashid.Hash]*function.Function, len(c.assoc)),
		constants:     make(map[hashid.Hash]value.Value, len(c.constants)),
		types:         make(map[hashid.Hash]*typeRecord, len(c.types)),
		functionNames: make(map[hashid.Hash]string, len(c.functions)),
		typeNames:     make(map[hashid.Hash]string, len(c.types)),
	}
	for h, r := range c.functions {
		rt.functions[h] = r.fn
		rt.functionNames[h] = r.item.String()
	}
	for h, r := range c.assoc {
		rt.assoc[h] = r.fn
	}
	for h, v := range c.constants {
		rt.constants[h] = v
	}
	for h, r := range c.types {
		rt.types[h] = r
		rt.typeNames[h] = r.item.String()
	}
	return rt
}

// DebugSummary renders a short, human-readable count of every table; cmd/rivet
// prints it after building its Context.
func (c *Context) DebugSummary() string {
	return fmt.Sprintf("types=%d functions=%d macros=%d constants=%d associated=%d crates=%d",
		len(c.types), len(c.functions), len(c.macros), len(c.constants), len(c.assoc), len(c.crates))
}
