package dryc_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/reoring/dryc"
)

func TestUnwrap(t *testing.T) {
	v, line := dryc.Unwrap(dryc.Span("hello", 3))
	if v != "hello" || line != 3 {
		t.Fatalf("unexpected: %v %d", v, line)
	}
	v, line = dryc.Unwrap(42)
	if v != 42 || line != 0 {
		t.Fatalf("bare values have no line: %v %d", v, line)
	}
	if dryc.LineOf(dryc.Span(map[string]any{}, 5)) != 5 {
		t.Fatalf("LineOf mismatch")
	}
	if s, ok := dryc.AsString(dryc.Span("x", 1)); !ok || s != "x" {
		t.Fatalf("AsString failed")
	}
	if _, ok := dryc.AsString(dryc.Span(1, 1)); ok {
		t.Fatalf("ints are not strings")
	}
}

func TestStrip_Deep(t *testing.T) {
	in := map[string]any{
		"id":      "root",
		"content": dryc.Span("Hello.", 2),
		"sections": []any{
			dryc.Span(map[string]any{"id": dryc.Span("forest", 4)}, 4),
		},
	}
	want := map[string]any{
		"id":       "root",
		"content":  "Hello.",
		"sections": []any{map[string]any{"id": "forest"}},
	}
	if diff := cmp.Diff(want, dryc.Strip(in)); diff != "" {
		t.Fatalf("unexpected strip (-want +got):\n%s", diff)
	}
	if _, ok := in["content"].(dryc.Spanned[string]); !ok {
		t.Fatalf("Strip must not modify its input")
	}
}
