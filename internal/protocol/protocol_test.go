package protocol

import "testing"

func TestTableIsClosedAndHashesMatchABI(t *testing.T) {
	want := map[string]uint64{
		"eq":             0x418f5becbf885806,
		"fallback_get":   0x6dda58b140dfeaf9,
		"fallback_set":   0xbe28c02896ca0b64,
		"get":            0x504007af1a8485a4,
		"set":            0x7d13d47fd8efef5a,
		"index_get":      0xadb5b27e2a4d2dec,
		"index_set":      0x162943f7bd03ad36,
		"+":              0xe4ecf51fa0bf1076,
		"+=":             0x42451ccb0a2071a9,
		"-":              0x6fa86a5f18d0bf71,
		"-=":             0x5939bb56a1415284,
		"*":              0xb09e99dc94091d1c,
		"*=":             0x29a54b727f980ebf,
		"/":              0xf26d6eea1afca6e8,
		"/=":             0x4dd087a8281c04e6,
		"%":              0x5c6293639c74e671,
		"%=":             0x3a8695980e77baf4,
		"&":              0x0e11f20d940eebe8,
		"&=":             0x95cb1ba235dfb5ec,
		"^":              0xa3099c54e1de4cbf,
		"^=":             0x01fa9706738f9867,
		"|":              0x05010afceb4a03d0,
		"|=":             0x606d79ff1750a7ec,
		"<<":             0x6845f7d0cc9e002d,
		"<<=":            0xdc4702d0307ba27b,
		">>":             0x6b485e8e6e58fbc8,
		">>=":            0x61ff7c46ff00e74a,
		"string_display": 0x811b62957ea9d9f9,
		"string_debug":   0x4064e3867aaa0717,
		"into_iter":      0x15a85c8d774b4065,
		"next":           0xc3cde069de2ba320,
		"into_future":    0x596e6428deabfda2,
		"into_type_name": 0xbffd08b816c24682,
		"is_variant":     0xc030d82bbd4dabe8,
	}

	if len(want) != len(All) {
		t.Fatalf("protocol table has %d entries, expected %d", len(All), len(want))
	}

	seen := make(map[uint64]string, len(All))
	for _, p := range All {
		expect, ok := want[p.Name]
		if !ok {
			t.Fatalf("unexpected protocol %q", p.Name)
		}
		if uint64(p.Hash) != expect {
			t.Fatalf("protocol %q: hash = 0x%x, want 0x%x", p.Name, uint64(p.Hash), expect)
		}
		if other, dup := seen[uint64(p.Hash)]; dup {
			t.Fatalf("protocols %q and %q collide on hash 0x%x", p.Name, other, p.Hash)
		}
		seen[uint64(p.Hash)] = p.Name
	}
}

func TestByHash(t *testing.T) {
	p, ok := ByHash(Add.Hash)
	if !ok || p != Add {
		t.Fatalf("ByHash(Add.Hash) = %v, %v", p, ok)
	}
	if _, ok := ByHash(0); ok {
		t.Fatalf("ByHash(0) unexpectedly resolved")
	}
}

func TestEqualIsHashBased(t *testing.T) {
	clone := &Protocol{Name: "different-name-same-hash", Hash: Eq.Hash}
	if !Eq.Equal(clone) {
		t.Fatalf("protocols with equal hashes must compare equal regardless of name")
	}
	if Eq.Equal(Add) {
		t.Fatalf("distinct protocols must not compare equal")
	}
}
