package context

import (
	"fmt"

	"github.com/rivetlang/rivet/internal/hashid"
)

// ErrorKind closes the set of ways Context.Install can fail. Each variant
// corresponds to one conflict the installer detects by probing an existing
// table entry before writing a new one.
type ErrorKind uint8

const (
	// ConflictingModule: two modules declared the same path prefix but are
	// not the same Module value (reinstalling the identical Module is not
	// an error; it is a no-op, matching a host embedder that calls
	// WithConfig twice with the same options).
	ConflictingModule ErrorKind = iota
	// ConflictingType: a type path was already installed by a different
	// Module than the one now installing it.
	ConflictingType
	// ConflictingFunction: a free-function path collides with an existing
	// entry that is not the same *function.Function.
	ConflictingFunction
	// ConflictingMacro: a macro path collides with an existing entry.
	ConflictingMacro
	// ConflictingConstant: a user-declared constant path collides with an
	// existing entry whose value differs. This is distinct from the
	// INTO_TYPE_NAME bookkeeping entry, which is never an error (see
	// Context.installTypeName).
	ConflictingConstant
	// ConflictingAssociatedFunction: the same (receiver, name) instance-
	// function slot was installed twice with different functions. Two
	// modules extending the same receiver with *different* names never
	// collide; this only fires on the exact same slot.
	ConflictingAssociatedFunction
	// ConflictingProtocol: two different functions were installed against
	// the same (receiver, protocol) slot.
	ConflictingProtocol
	// MissingInstance: an associated function named a receiver type hash
	// that was never installed via install_type (spec.md §4.1 step 1).
	MissingInstance
	// ConflictingTypeHash: types_rev's injective mapping (native type hash
	// -> item hash) would have been violated: the same native hash was
	// about to resolve to two different item hashes.
	ConflictingTypeHash
	// ConflictingMeta: two installs disagree about what kind of thing
	// lives at the same path (e.g. a function re-declared as a struct).
	ConflictingMeta
)

func (k ErrorKind) String() string {
	switch k {
	case ConflictingModule:
		return "conflicting module"
	case ConflictingType:
		return "conflicting type"
	case ConflictingFunction:
		return "conflicting function"
	case ConflictingMacro:
		return "conflicting macro"
	case ConflictingConstant:
		return "conflicting constant"
	case ConflictingAssociatedFunction:
		return "conflicting associated function"
	case ConflictingProtocol:
		return "conflicting protocol implementation"
	case MissingInstance:
		return "missing instance for associated function"
	case ConflictingTypeHash:
		return "conflicting type-hash reverse mapping"
	case ConflictingMeta:
		return "conflicting meta"
	default:
		return "unknown context error"
	}
}

// Error reports an installation conflict.
type Error struct {
	Kind ErrorKind
	Item hashid.Item
	Hash hashid.Hash
}

func (e *Error) Error() string {
	return fmt.Sprintf("context: %s at %q (%s)", e.Kind, e.Item, e.Hash)
}

func newError(kind ErrorKind, item hashid.Item, hash hashid.Hash) error {
	return &Error{Kind: kind, Item: item, Hash: hash}
}
