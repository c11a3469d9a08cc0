// Package protocol defines the closed table of dispatch hooks a type can
// implement: arithmetic, indexing, iteration, formatting and conversion.
// Protocols are not a per-type vtable; each is a well-known Hash looked up
// through hashid.InstanceFunction(typeHash, protocol.Hash) against a
// Context's associated-function table.
package protocol

import "github.com/rivetlang/rivet/internal/hashid"

// Protocol is a named dispatch hook. Two protocols are equal and hash alike
// by their inner Hash alone (spec.md §4.3); Name exists for diagnostics.
type Protocol struct {
	Name string
	Hash hashid.Hash
}

// Equal compares two protocols by hash.
func (p *Protocol) Equal(other *Protocol) bool {
	if p == other {
		return true
	}
	if p == nil || other == nil {
		return false
	}
	return p.Hash == other.Hash
}

// The closed set of protocols, with ABI-fixed hashes reproduced from the
// original runtime's protocol table.
var (
	Eq = &Protocol{Name: "eq", Hash: 0x418f5becbf885806}

	FallbackGet = &Protocol{Name: "fallback_get", Hash: 0x6dda58b140dfeaf9}
	FallbackSet = &Protocol{Name: "fallback_set", Hash: 0xbe28c02896ca0b64}

	Get = &Protocol{Name: "get", Hash: 0x504007af1a8485a4}
	Set = &Protocol{Name: "set", Hash: 0x7d13d47fd8efef5a}

	IndexGet = &Protocol{Name: "index_get", Hash: 0xadb5b27e2a4d2dec}
	IndexSet = &Protocol{Name: "index_set", Hash: 0x162943f7bd03ad36}

	Add    = &Protocol{Name: "+", Hash: 0xe4ecf51fa0bf1076}
	AddAssign = &Protocol{Name: "+=", Hash: 0x42451ccb0a2071a9}
	Sub    = &Protocol{Name: "-", Hash: 0x6fa86a5f18d0bf71}
	SubAssign = &Protocol{Name: "-=", Hash: 0x5939bb56a1415284}
	Mul    = &Protocol{Name: "*", Hash: 0xb09e99dc94091d1c}
	MulAssign = &Protocol{Name: "*=", Hash: 0x29a54b727f980ebf}
	Div    = &Protocol{Name: "/", Hash: 0xf26d6eea1afca6e8}
	DivAssign = &Protocol{Name: "/=", Hash: 0x4dd087a8281c04e6}
	Rem    = &Protocol{Name: "%", Hash: 0x5c6293639c74e671}
	RemAssign = &Protocol{Name: "%=", Hash: 0x3a8695980e77baf4}

	BitAnd    = &Protocol{Name: "&", Hash: 0x0e11f20d940eebe8}
	BitAndAssign = &Protocol{Name: "&=", Hash: 0x95cb1ba235dfb5ec}
	BitXor    = &Protocol{Name: "^", Hash: 0xa3099c54e1de4cbf}
	BitXorAssign = &Protocol{Name: "^=", Hash: 0x01fa9706738f9867}
	BitOr     = &Protocol{Name: "|", Hash: 0x05010afceb4a03d0}
	BitOrAssign = &Protocol{Name: "|=", Hash: 0x606d79ff1750a7ec}
	Shl       = &Protocol{Name: "<<", Hash: 0x6845f7d0cc9e002d}
	ShlAssign = &Protocol{Name: "<<=", Hash: 0xdc4702d0307ba27b}
	Shr       = &Protocol{Name: ">>", Hash: 0x6b485e8e6e58fbc8}
	ShrAssign = &Protocol{Name: ">>=", Hash: 0x61ff7c46ff00e74a}

	StringDisplay = &Protocol{Name: "string_display", Hash: 0x811b62957ea9d9f9}
	StringDebug   = &Protocol{Name: "string_debug", Hash: 0x4064e3867aaa0717}

	IntoIter = &Protocol{Name: "into_iter", Hash: 0x15a85c8d774b4065}
	Next     = &Protocol{Name: "next", Hash: 0xc3cde069de2ba320}

	IntoFuture = &Protocol{Name: "into_future", Hash: 0x596e6428deabfda2}

	IntoTypeName = &Protocol{Name: "into_type_name", Hash: 0xbffd08b816c24682}
	IsVariant    = &Protocol{Name: "is_variant", Hash: 0xc030d82bbd4dabe8}
)

// All lists every protocol, in declaration order. ByHash searches it.
var All = []*Protocol{
	Eq,
	FallbackGet, FallbackSet,
	Get, Set,
	IndexGet, IndexSet,
	Add, AddAssign, Sub, SubAssign, Mul, MulAssign, Div, DivAssign, Rem, RemAssign,
	BitAnd, BitAndAssign, BitXor, BitXorAssign, BitOr, BitOrAssign, Shl, ShlAssign, Shr, ShrAssign,
	StringDisplay, StringDebug,
	IntoIter, Next,
	IntoFuture,
	IntoTypeName, IsVariant,
}

// ByHash looks up a protocol by hash, reporting ok=false for a hash that
// names no protocol.
func ByHash(h hashid.Hash) (*Protocol, bool) {
	for _, p := range All {
		if p.Hash == h {
			return p, true
		}
	}
	return nil, false
}
