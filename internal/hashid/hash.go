// Package hashid implements the 64-bit identity space used to address every
// installed item in a Context: types, functions, constants, macros, and the
// instance-function slots that protocols and associated functions dispatch
// through.
package hashid

import (
	"encoding/binary"
	"hash/fnv"
)

// Hash is an opaque 64-bit identifier. Two hashes derived from identical
// inputs are always equal, in this process or any other: derivation is a
// pure function of its inputs, never of address or allocation order.
type Hash uint64

// Empty is the zero hash (not TypeHash of the empty path, which is the
// FNV-1a offset basis); used as a placeholder for handlers
// that were not constructed from a named item (e.g. a bare host closure
// wrapped directly into a Function without going through a Module).
const Empty Hash = 0

// String renders the hash in the canonical hex form used in diagnostics.
func (h Hash) String() string {
	const hexdigits = "0123456789abcdef"
	buf := [18]byte{'0', 'x'}
	for i := 0; i < 16; i++ {
		shift := uint(60 - 4*i)
		buf[2+i] = hexdigits[(uint64(h)>>shift)&0xf]
	}
	return string(buf[:])
}

func sum64(parts ...[]byte) Hash {
	h := fnv.New64a()
	for _, p := range parts {
		h.Write(p)
	}
	return Hash(h.Sum64())
}

// TypeHash derives the canonical hash for a path. Identical component
// sequences always produce identical hashes (Testable Property 3).
func TypeHash(item Item) Hash {
	h := fnv.New64a()
	for _, c := range item {
		encodeComponent(h, c)
	}
	return Hash(h.Sum64())
}

// encodeComponent writes a self-delimiting encoding of one path component
// into the running hash so that no sequence of components can collide with
// a different sequence by concatenation alone.
func encodeComponent(h interface{ Write([]byte) (int, error) }, c Component) {
	var tag [1]byte
	tag[0] = byte(c.Kind)
	h.Write(tag[:])

	switch c.Kind {
	case ComponentNamed:
		var length [8]byte
		binary.BigEndian.PutUint64(length[:], uint64(len(c.Name)))
		h.Write(length[:])
		h.Write([]byte(c.Name))
	default:
		var index [8]byte
		binary.BigEndian.PutUint64(index[:], uint64(c.Index))
		h.Write(index[:])
	}
}

// InstanceFunction combines a receiver type hash with a name/protocol hash
// into one instance-function slot key; the Context keys its associated-
// function table and its INTO_TYPE_NAME constants on it.
func InstanceFunction(typeHash, nameHash Hash) Hash {
	var buf [16]byte
	binary.BigEndian.PutUint64(buf[0:8], uint64(typeHash))
	binary.BigEndian.PutUint64(buf[8:16], uint64(nameHash))
	return sum64(buf[:])
}

// WithParameters folds a generic-instantiation hash into an existing hash,
// producing a distinct key per set of type parameters without affecting the
// unparameterized hash (passing Empty is a no-op).
func (h Hash) WithParameters(extra Hash) Hash {
	if extra == Empty {
		return h
	}
	var buf [16]byte
	binary.BigEndian.PutUint64(buf[0:8], uint64(h))
	binary.BigEndian.PutUint64(buf[8:16], uint64(extra))
	return sum64(buf[:])
}
