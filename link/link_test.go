package link_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/reoring/dryc"
	"github.com/reoring/dryc/document"
	"github.com/reoring/dryc/link"
)

func scene(id string, tags ...string) *document.Scene {
	return &document.Scene{Section: document.Section{ID: id, Tags: tags}}
}

var info = &document.Info{Title: "A Tale", Author: "Someone"}

func TestCompile_TagLookup(t *testing.T) {
	g, err := link.Compile(info, []*document.Scene{
		scene("root", "alpha", "bravo"),
		scene("foo", "alpha", "charlie"),
		scene("plain"),
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	want := map[string]map[string]bool{
		"alpha":   {"root": true, "foo": true},
		"bravo":   {"root": true},
		"charlie": {"foo": true},
	}
	if diff := cmp.Diff(want, g.TagLookup); diff != "" {
		t.Fatalf("unexpected tag lookup (-want +got):\n%s", diff)
	}
	if g.Title != "A Tale" || g.Author != "Someone" || len(g.Scenes) != 3 {
		t.Fatalf("unexpected game: %#v", g)
	}
	if diff := cmp.Diff([]string{"foo", "root"}, g.Tagged("alpha")); diff != "" {
		t.Fatalf("unexpected tagged (-want +got):\n%s", diff)
	}
	if got := g.Tagged("missing"); len(got) != 0 {
		t.Fatalf("expected no scenes, got %v", got)
	}
}

func TestCompile_DuplicateScene(t *testing.T) {
	_, err := link.Compile(info, []*document.Scene{
		scene("root"), scene("foo"), scene("root"), scene("foo"),
	})
	if err == nil || err.Error() != "Duplicate scenes with id 'root' found." {
		t.Fatalf("unexpected error: %v", err)
	}
	if e, ok := dryc.AsError(err); !ok || e.Code != dryc.CodeDuplicateScene {
		t.Fatalf("unexpected error value: %#v", err)
	}
}

func TestGame_Lookup(t *testing.T) {
	root := scene("root")
	root.Sections = []*document.Section{{
		ID:       "forest",
		Sections: []*document.Section{{ID: "clearing", Title: "A Clearing"}},
	}}
	g, err := link.Compile(info, []*document.Scene{root})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if s, ok := g.Lookup("root"); !ok || s.ID != "root" {
		t.Fatalf("root lookup failed")
	}
	if s, ok := g.Lookup("root.forest.clearing"); !ok || s.Title != "A Clearing" {
		t.Fatalf("nested lookup failed")
	}
	for _, path := range []string{"nope", "root.nope", "root.forest.clearing.deeper"} {
		if _, ok := g.Lookup(path); ok {
			t.Fatalf("lookup of %q should fail", path)
		}
	}
}
