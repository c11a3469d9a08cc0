package context

import "github.com/rivetlang/rivet/internal/hashid"

// MetaKind discriminates what got installed at a given path (spec.md §3's
// `meta: path → ContextMeta`).
type MetaKind uint8

const (
	MetaFunction MetaKind = iota
	MetaStruct
	MetaEnum
	MetaVariant
	MetaConst
	MetaUnknown
)

func (k MetaKind) String() string {
	switch k {
	case MetaFunction:
		return "function"
	case MetaStruct:
		return "struct"
	case MetaEnum:
		return "enum"
	case MetaVariant:
		return "variant"
	case MetaConst:
		return "const"
	default:
		return "unknown"
	}
}

// ContextMeta records what kind of thing lives at an installed path,
// independent of the function/type/constant table that actually backs it.
// A Struct meta carries its declared field names; a Variant meta carries
// its ordinal index within the enclosing enum.
type ContextMeta struct {
	Kind         MetaKind
	Fields       []string // MetaStruct only
	VariantIndex uint32   // MetaVariant only
}

// SignatureKind discriminates a free function/constructor signature from
// one bound to a receiver instance.
type SignatureKind uint8

const (
	SignatureFree SignatureKind = iota
	SignatureInstance
)

// ContextSignature is the call-shape recorded for every entry in
// `functions` (Free) and every entry in the associated-function table
// (Instance), per spec.md §3. Args is the declared argument count when
// known; nil means the callee polices its own arity (an arity-undeclared
// host Handler).
type ContextSignature struct {
	Kind SignatureKind

	// TypeHash/Item: for Free, the function's own path and hash; for
	// Instance, the receiver's.
	TypeHash hashid.Hash
	Item     hashid.Item

	Name         string      // Instance only: the instance-function's name
	Args         *int        // declared arity, nil if the callee polices its own
	SelfTypeInfo hashid.Hash // Instance only: receiver's native type hash
}

func knownArity(n int) *int { return &n }

// nameNode is one node of the prefix tree backing Context.names.
type nameNode struct {
	children map[string]*nameNode
	terminal bool
}

func newNameNode() *nameNode {
	return &nameNode{children: make(map[string]*nameNode)}
}

// nameTrie indexes every installed path by its component sequence, giving
// Context.ContainsPrefix and Context.Children a prefix-tree lookup instead
// of a linear scan over every table (spec.md §3's `names` table).
type nameTrie struct {
	root *nameNode
}

func newNameTrie() *nameTrie {
	return &nameTrie{root: newNameNode()}
}

func (t *nameTrie) insert(item hashid.Item) {
	n := t.root
	for _, c := range item {
		key := c.String()
		child, ok := n.children[key]
		if !ok {
			child = newNameNode()
			n.children[key] = child
		}
		n = child
	}
	n.terminal = true
}

func (t *nameTrie) walk(prefix hashid.Item) (*nameNode, bool) {
	n := t.root
	for _, c := range prefix {
		child, ok := n.children[c.String()]
		if !ok {
			return nil, false
		}
		n = child
	}
	return n, true
}

func (t *nameTrie) containsPrefix(prefix hashid.Item) bool {
	_, ok := t.walk(prefix)
	return ok
}

// children returns the immediate child names under prefix, or nil if
// prefix was never installed.
func (t *nameTrie) children(prefix hashid.Item) []string {
	n, ok := t.walk(prefix)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(n.children))
	for k := range n.children {
		out = append(out, k)
	}
	return out
}
