package hashid

import (
	"fmt"
	"strconv"
	"strings"
)

// ComponentKind discriminates a named path segment from the anonymous
// markers introduced by block, closure and generator expressions.
type ComponentKind uint8

const (
	ComponentNamed ComponentKind = iota
	ComponentBlock
	ComponentClosure
	ComponentGenerator
)

func (k ComponentKind) marker() string {
	switch k {
	case ComponentBlock:
		return "$block"
	case ComponentClosure:
		return "$closure"
	case ComponentGenerator:
		return "$generator"
	default:
		return ""
	}
}

// Component is one segment of an Item: either a named identifier or an
// anonymous index scoped to its kind (the Nth block/closure/generator
// encountered during compilation of its enclosing item).
type Component struct {
	Kind  ComponentKind
	Name  string
	Index uint32
}

// Named constructs a named path segment.
func Named(name string) Component {
	return Component{Kind: ComponentNamed, Name: name}
}

// Block constructs an anonymous block-scope marker.
func Block(index uint32) Component {
	return Component{Kind: ComponentBlock, Index: index}
}

// Closure constructs an anonymous closure-scope marker.
func Closure(index uint32) Component {
	return Component{Kind: ComponentClosure, Index: index}
}

// Generator constructs an anonymous generator-scope marker.
func Generator(index uint32) Component {
	return Component{Kind: ComponentGenerator, Index: index}
}

func (c Component) String() string {
	if c.Kind == ComponentNamed {
		return c.Name
	}
	return fmt.Sprintf("%s%d", c.Kind.marker(), c.Index)
}

// Item is a borrowed view over an ordered sequence of path components. Go
// slices already behave as borrowed views over a backing array, so Item and
// ItemBuf share a single underlying representation: ItemBuf is the type used
// while a path is still being built up (append-only); Item is the same type
// used read-only as a map key and comparison target once interned.
type Item []Component

// ItemBuf is Item's owning counterpart, used during construction.
type ItemBuf = Item

// New builds an Item from a sequence of components.
func New(components ...Component) ItemBuf {
	buf := make(ItemBuf, len(components))
	copy(buf, components)
	return buf
}

// NewNamed builds an Item from plain name segments, a shorthand for the
// common case of a fully-named path.
func NewNamed(names ...string) ItemBuf {
	buf := make(ItemBuf, len(names))
	for i, n := range names {
		buf[i] = Named(n)
	}
	return buf
}

// Extended returns a new Item with a single named component appended.
func (it Item) Extended(name string) ItemBuf {
	buf := make(ItemBuf, len(it)+1)
	copy(buf, it)
	buf[len(it)] = Named(name)
	return buf
}

// Join returns a new Item with another Item's components appended.
func (it Item) Join(other Item) ItemBuf {
	buf := make(ItemBuf, len(it)+len(other))
	copy(buf, it)
	copy(buf[len(it):], other)
	return buf
}

// First returns the first component, and false if the item is empty.
func (it Item) First() (Component, bool) {
	if len(it) == 0 {
		return Component{}, false
	}
	return it[0], true
}

// Equal reports whether two items have identical component sequences.
func (it Item) Equal(other Item) bool {
	if len(it) != len(other) {
		return false
	}
	for i := range it {
		if it[i] != other[i] {
			return false
		}
	}
	return true
}

// String renders the canonical textual form of the path: named segments
// joined by "::", anonymous markers rendered as "$kindN".
func (it Item) String() string {
	parts := make([]string, len(it))
	for i, c := range it {
		parts[i] = c.String()
	}
	return strings.Join(parts, "::")
}

// Parse parses the canonical textual form produced by String back into an
// Item. Parsing-then-printing an Item expressible through this grammar
// yields a textually equal path (Testable Property 1).
func Parse(s string) (ItemBuf, error) {
	if s == "" {
		return ItemBuf{}, nil
	}
	segments := strings.Split(s, "::")
	buf := make(ItemBuf, 0, len(segments))
	for _, seg := range segments {
		c, err := parseComponent(seg)
		if err != nil {
			return nil, err
		}
		buf = append(buf, c)
	}
	return buf, nil
}

func parseComponent(seg string) (Component, error) {
	for _, kind := range []ComponentKind{ComponentBlock, ComponentClosure, ComponentGenerator} {
		marker := kind.marker()
		if strings.HasPrefix(seg, marker) {
			rest := seg[len(marker):]
			index, err := strconv.ParseUint(rest, 10, 32)
			if err != nil {
				return Component{}, fmt.Errorf("hashid: invalid anonymous marker %q: %w", seg, err)
			}
			return Component{Kind: kind, Index: uint32(index)}, nil
		}
	}
	if seg == "" {
		return Component{}, fmt.Errorf("hashid: empty path segment")
	}
	return Named(seg), nil
}
