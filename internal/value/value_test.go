package value

import (
	"testing"

	"github.com/rivetlang/rivet/internal/hashid"
	"github.com/rivetlang/rivet/internal/statictype"
)

func TestPrimitiveKindsRoundTrip(t *testing.T) {
	if v := Integer(42); v.AsInteger() != 42 {
		t.Fatalf("Integer round-trip: got %d", v.AsInteger())
	}
	if v := Float(3.5); v.AsFloat() != 3.5 {
		t.Fatalf("Float round-trip: got %v", v.AsFloat())
	}
	if v := Bool(true); !v.AsBool() {
		t.Fatalf("Bool(true) round-trip failed")
	}
	if v := Bool(false); v.AsBool() {
		t.Fatalf("Bool(false) round-trip failed")
	}
	if v := Byte(200); v.AsByte() != 200 {
		t.Fatalf("Byte round-trip: got %d", v.AsByte())
	}
	if v := Char('x'); v.AsChar() != 'x' {
		t.Fatalf("Char round-trip: got %q", v.AsChar())
	}
	if !Unit().IsUnit() {
		t.Fatalf("Unit().IsUnit() = false")
	}
}

func TestPrimitiveStaticTypes(t *testing.T) {
	cases := []struct {
		v    Value
		want *statictype.StaticType
	}{
		{Unit(), statictype.Unit},
		{Bool(true), statictype.Bool},
		{Byte(1), statictype.Byte},
		{Char('a'), statictype.Char},
		{Integer(1), statictype.Integer},
		{Float(1), statictype.Float},
	}
	for _, c := range cases {
		if got := c.v.StaticType(); got != c.want {
			t.Fatalf("StaticType() = %v, want %v", got, c.want)
		}
		if c.v.TypeHash() != c.want.Hash {
			t.Fatalf("TypeHash() = %v, want %v", c.v.TypeHash(), c.want.Hash)
		}
	}
}

func TestSharedCategoriesBoxThroughCell(t *testing.T) {
	s := NewString("hello")
	if !s.IsShared() {
		t.Fatalf("NewString did not produce a shared value")
	}
	cell := s.Cell()
	if cell.StaticType() != statictype.String {
		t.Fatalf("string cell static type = %v, want String", cell.StaticType())
	}
	got, ok := cell.AsString()
	if !ok || got != "hello" {
		t.Fatalf("AsString() = %q, %v", got, ok)
	}
}

func TestCellCloneAndDropRefcounting(t *testing.T) {
	v := NewVector([]Value{Integer(1), Integer(2)})
	cell := v.Cell()
	if cell.RefCount() != 1 {
		t.Fatalf("fresh cell refcount = %d, want 1", cell.RefCount())
	}
	cell.Clone()
	if cell.RefCount() != 2 {
		t.Fatalf("after Clone refcount = %d, want 2", cell.RefCount())
	}
	if cell.Drop() {
		t.Fatalf("Drop reported last reference too early")
	}
	if !cell.Drop() {
		t.Fatalf("Drop did not report the final reference")
	}
}

func TestBorrowExcludesMutBorrow(t *testing.T) {
	v := NewObject(map[string]Value{"x": Integer(1)})
	cell := v.Cell()

	g1, err := cell.Borrow()
	if err != nil {
		t.Fatalf("first shared borrow failed: %v", err)
	}
	g2, err := cell.Borrow()
	if err != nil {
		t.Fatalf("second shared borrow failed: %v", err)
	}

	if _, err := cell.BorrowMut(); err == nil {
		t.Fatalf("expected BorrowMut to fail while shared borrows are outstanding")
	}

	g1.Release()
	g2.Release()

	mg, err := cell.BorrowMut()
	if err != nil {
		t.Fatalf("BorrowMut after release failed: %v", err)
	}
	if _, err := cell.Borrow(); err == nil {
		t.Fatalf("expected shared Borrow to fail while an exclusive borrow is outstanding")
	}
	mg.Release()
}

func TestBorrowGuardDoubleReleasePanics(t *testing.T) {
	v := NewString("x")
	g, err := v.Cell().Borrow()
	if err != nil {
		t.Fatalf("Borrow failed: %v", err)
	}
	g.Release()

	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic on double release")
		}
	}()
	g.Release()
}

func TestStructFieldLookupByRttiOrder(t *testing.T) {
	rtti := NewRtti(hashid.NewNamed("geo", "Point"), []string{"x", "y"})
	v := NewStruct(rtti, []Value{Integer(3), Integer(4)})
	s, ok := v.Cell().AsStruct()
	if !ok {
		t.Fatalf("AsStruct failed")
	}
	x, ok := s.Field("x")
	if !ok || x.AsInteger() != 3 {
		t.Fatalf("Field(x) = %v, %v", x, ok)
	}
	if _, ok := s.Field("z"); ok {
		t.Fatalf("Field(z) unexpectedly found")
	}
	if v.TypeHash() != rtti.Hash {
		t.Fatalf("struct value TypeHash does not match its Rtti hash")
	}
}

func TestVariantDistinguishesEnumFromVariantHash(t *testing.T) {
	enumItem := hashid.NewNamed("geo", "Shape")
	circle := NewVariantRtti(enumItem, "Circle", 0, VariantTuple, nil)
	square := NewVariantRtti(enumItem, "Square", 1, VariantTuple, nil)

	if circle.EnumHash != square.EnumHash {
		t.Fatalf("variants of the same enum must share EnumHash")
	}
	if circle.Hash == square.Hash {
		t.Fatalf("distinct variants must have distinct Hash")
	}

	v := NewVariant(circle, []Value{Float(2.0)})
	variant, ok := v.Cell().AsVariant()
	if !ok {
		t.Fatalf("AsVariant failed")
	}
	if variant.TypeHash() != circle.Hash {
		t.Fatalf("variant TypeHash = %v, want %v", variant.TypeHash(), circle.Hash)
	}
}

func TestOptionResultRoundTrip(t *testing.T) {
	some, ok := NewSome(Integer(9)).Cell().AsOption()
	if !ok || !some.Some || some.Value.AsInteger() != 9 {
		t.Fatalf("Some round-trip failed: %+v", some)
	}
	none, ok := NewNone().Cell().AsOption()
	if !ok || none.Some {
		t.Fatalf("None round-trip failed: %+v", none)
	}

	okResult, ok := NewOk(Integer(1)).Cell().AsResult()
	if !ok || !okResult.Ok {
		t.Fatalf("Ok round-trip failed: %+v", okResult)
	}
	errResult, ok := NewErr(NewString("boom")).Cell().AsResult()
	if !ok || errResult.Ok {
		t.Fatalf("Err round-trip failed: %+v", errResult)
	}
}
