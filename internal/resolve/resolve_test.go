package resolve

import "testing"

func span(raw string) Span { return Span{Start: 0, End: len(raw)} }

func TestSyntheticPassesThroughUnchanged(t *testing.T) {
	lit := LitStr{Kind: SourceSynthetic, Raw: "already \\n resolved"}
	got, err := Resolve(lit)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got != lit.Raw {
		t.Fatalf("Resolve(synthetic) = %q, want unchanged %q", got, lit.Raw)
	}
}

func TestDirectResolvesCommonEscapes(t *testing.T) {
	raw := `"a\nb\tc\\d\"e"`
	lit := LitStr{Kind: SourceDirect, Raw: raw, Span: span(raw)}
	got, err := Resolve(lit)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	want := "a\nb\tc\\d\"e"
	if got != want {
		t.Fatalf("Resolve() = %q, want %q", got, want)
	}
}

func TestHexAndUnicodeEscapes(t *testing.T) {
	raw := `"\x41\u{1F600}"`
	lit := LitStr{Kind: SourceDirect, Raw: raw, Span: span(raw)}
	got, err := Resolve(lit)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	want := "A\U0001F600"
	if got != want {
		t.Fatalf("Resolve() = %q, want %q", got, want)
	}
}

func TestRawNewlineRejectedOutsideTemplate(t *testing.T) {
	raw := "\"a\nb\""
	lit := LitStr{Kind: SourceDirect, Raw: raw, Span: span(raw)}
	if _, err := Resolve(lit); err == nil {
		t.Fatalf("expected an error for a raw newline in a non-template literal")
	}
}

func TestRawNewlineAllowedInTemplate(t *testing.T) {
	raw := "\"a\nb\""
	lit := LitStr{Kind: SourceDirect, Raw: raw, Span: span(raw), InTemplate: true}
	got, err := Resolve(lit)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got != "a\nb" {
		t.Fatalf("Resolve() = %q", got)
	}
}

func TestLineContinuationSplicesAndTrimsIndent(t *testing.T) {
	raw := "\"a\\\n    b\""
	lit := LitStr{Kind: SourceDirect, Raw: raw, Span: span(raw), AllowLineContinuation: true}
	got, err := Resolve(lit)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got != "ab" {
		t.Fatalf("Resolve() = %q, want %q", got, "ab")
	}
}

func TestLineContinuationRejectedWhenNotAllowed(t *testing.T) {
	raw := "\"a\\\nb\""
	lit := LitStr{Kind: SourceDirect, Raw: raw, Span: span(raw)}
	if _, err := Resolve(lit); err == nil {
		t.Fatalf("expected an error: line continuation not permitted for this literal")
	}
}

func TestSpanIsNarrowedPastQuotes(t *testing.T) {
	raw := `"ab"`
	_, narrowed, err := narrow(raw, Span{Start: 10, End: 14})
	if err != nil {
		t.Fatalf("narrow: %v", err)
	}
	if narrowed != (Span{Start: 11, End: 13}) {
		t.Fatalf("narrow span = %v, want {11 13}", narrowed)
	}
}

func TestUnquotedLiteralRejected(t *testing.T) {
	lit := LitStr{Kind: SourceDirect, Raw: "not-quoted", Span: span("not-quoted")}
	if _, err := Resolve(lit); err == nil {
		t.Fatalf("expected an error for a literal missing its surrounding quotes")
	}
}
