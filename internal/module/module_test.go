package module

import (
	"testing"

	"github.com/rivetlang/rivet/internal/function"
	"github.com/rivetlang/rivet/internal/hashid"
	"github.com/rivetlang/rivet/internal/value"
)

func TestDuplicateLocalNamesRejected(t *testing.T) {
	m := New(hashid.NewNamed("geo"))

	rtti := value.NewRtti(hashid.NewNamed("geo", "Point"), []string{"x", "y"})
	if err := m.Type("Point", rtti); err != nil {
		t.Fatalf("first Type call: %v", err)
	}
	if err := m.Type("Point", rtti); err == nil {
		t.Fatalf("expected duplicate type error")
	}

	fn := function.NewHandler(hashid.Empty, func(args []value.Value) (value.Value, error) {
		return value.Unit(), nil
	})
	if err := m.Function("origin", fn); err != nil {
		t.Fatalf("first Function call: %v", err)
	}
	if err := m.Function("origin", fn); err == nil {
		t.Fatalf("expected duplicate function error")
	}
}

func TestAssociatedFunctionsAllowRepeats(t *testing.T) {
	m := New(hashid.NewNamed("geo"))
	receiver := hashid.TypeHash(hashid.NewNamed("geo", "Point"))
	fn := function.NewHandler(hashid.Empty, nil)

	m.AssociatedFunction(receiver, "len", fn)
	m.AssociatedFunction(receiver, "len", fn)

	if got := len(m.AssociatedFunctions()); got != 2 {
		t.Fatalf("AssociatedFunctions() len = %d, want 2 (no local dedup)", got)
	}
}

func TestEnumDeclaresVariants(t *testing.T) {
	m := New(hashid.NewNamed("geo"))
	enumItem := hashid.NewNamed("geo", "Shape")
	variants := []*value.VariantRtti{
		value.NewVariantRtti(enumItem, "Circle", 0, value.VariantTuple, nil),
		value.NewVariantRtti(enumItem, "Square", 1, value.VariantTuple, nil),
	}
	if err := m.Enum("Shape", variants); err != nil {
		t.Fatalf("Enum: %v", err)
	}
	entry := m.Types()["Shape"]
	if entry == nil || len(entry.Variants) != 2 {
		t.Fatalf("Types()[Shape] = %+v", entry)
	}
}
