package stdmodules

import (
	"testing"

	"github.com/rivetlang/rivet/internal/hashid"
	"github.com/rivetlang/rivet/internal/value"
)

func TestIOModulePrintAndPrintlnWriteToCapture(t *testing.T) {
	cap := NewCaptureIO()
	m := IOModule(cap)

	print := m.Functions()["print"]
	println_ := m.Functions()["println"]

	if _, err := print.Call([]value.Value{value.NewString("a")}); err != nil {
		t.Fatalf("print: %v", err)
	}
	if _, err := println_.Call([]value.Value{value.NewString("b")}); err != nil {
		t.Fatalf("println: %v", err)
	}

	got := cap.DrainUTF8()
	want := "ab\n"
	if got != want {
		t.Fatalf("captured output = %q, want %q", got, want)
	}
	if remaining := cap.DrainUTF8(); remaining != "" {
		t.Fatalf("Drain should empty the buffer, got %q", remaining)
	}
}

func TestIOModuleIsInstallableUnderStdIO(t *testing.T) {
	m := IOModule(NewCaptureIO())
	if got := m.Item().String(); got != "std::io" {
		t.Fatalf("module item = %q, want std::io", got)
	}
}

// TestIntRangeStaysWithinBounds grounds spec.md Testable Property 12: the
// result of int_range(lower, upper) always satisfies lower <= result <
// upper.
func TestIntRangeStaysWithinBounds(t *testing.T) {
	m := RandomModule()
	intRange := m.Functions()["int_range"]

	for i := 0; i < 200; i++ {
		v, err := intRange.Call([]value.Value{value.Integer(5), value.Integer(10)})
		if err != nil {
			t.Fatalf("int_range: %v", err)
		}
		got := v.AsInteger()
		if got < 5 || got >= 10 {
			t.Fatalf("int_range(5, 10) = %d, out of bounds", got)
		}
	}
}

// TestIntRangeRejectsEmptyAndReversedBounds grounds spec.md Testable
// Properties 13-14, and this module's deliberate departure from rand.rs:
// upper <= lower is a typed error, not a silently underflowed range.
func TestIntRangeRejectsEmptyAndReversedBounds(t *testing.T) {
	m := RandomModule()
	intRange := m.Functions()["int_range"]

	if _, err := intRange.Call([]value.Value{value.Integer(5), value.Integer(5)}); err == nil {
		t.Fatalf("expected an error for int_range(5, 5) (empty range)")
	}
	if _, err := intRange.Call([]value.Value{value.Integer(10), value.Integer(5)}); err == nil {
		t.Fatalf("expected an error for int_range(10, 5) (reversed bounds)")
	}
}

func TestModuleItemsResolveHashes(t *testing.T) {
	io := IOModule(NewCaptureIO())
	h := hashid.TypeHash(io.Item().Extended("print"))
	if _, ok := io.Functions()["print"]; !ok {
		t.Fatalf("print not found in io module")
	}
	if h == hashid.Empty {
		t.Fatalf("computed hash for std::io::print must not be Empty")
	}
}
