package document_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/reoring/dryc/document"
	"github.com/reoring/dryc/dry"
)

const rootScene = `title: The Beginning
tags: start, #intro
max-visits: 1
new-page: yes
order: 2.5

You wake up.

It is dark.

- @forest if visits > 0 : Walk into the forest
- #shop: Browse the shops
- max-choices: 2

@forest
title: The Forest
go-to: ..root

Trees everywhere.
`

func intp(n int) *int { return &n }

func TestValidateScene(t *testing.T) {
	raw, err := dry.ParseDocument("root.scene.dry", rootScene)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	scene, err := document.ValidateScene(raw)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	want := &document.Scene{
		Type: "scene",
		Section: document.Section{
			ID:        "root",
			Title:     "The Beginning",
			Content:   "You wake up.\n\nIt is dark.",
			Tags:      []string{"start", "intro"},
			Order:     intp(2),
			MaxVisits: intp(1),
			NewPage:   true,
			Options: &document.OptionsBlock{
				Options: []document.Option{
					{ID: "@forest", ViewIf: "visits > 0", Title: "Walk into the forest"},
					{ID: "#shop", Title: "Browse the shops"},
				},
				MaxChoices: intp(2),
			},
			Sections: []*document.Section{
				{ID: "forest", Title: "The Forest", GoTo: "..root", Content: "Trees everywhere."},
			},
		},
	}
	if diff := cmp.Diff(want, scene); diff != "" {
		t.Fatalf("unexpected scene (-want +got):\n%s", diff)
	}
	if !scene.Options.Options[1].IsTag() || scene.Options.Options[0].IsTag() {
		t.Fatalf("IsTag mismatch")
	}
	if c, ok := scene.Child("forest"); !ok || c.Title != "The Forest" {
		t.Fatalf("child lookup failed")
	}
}

func TestValidateScene_Errors(t *testing.T) {
	cases := []struct {
		name     string
		filename string
		text     string
		want     string
	}{
		{"wrong type", "foo.dry", "type: quality", "Line 1: Type must be 'scene', not 'quality'."},
		{"negative visits", "foo.scene.dry", "title: x\nmax-visits: -1", "Line 2: -1 is not in range 0+."},
		{"bad flag", "foo.scene.dry", "game-over: perhaps", "Line 1: Not a valid yes/no value."},
		{"unknown", "foo.scene.dry", "title: x\ncolour: red\nflavour: salt", "Unknown properties: 'colour' (line 2), 'flavour' (line 3)."},
		{"section unknown", "foo.scene.dry", "title: x\n@bar\nshape: round", "Unknown properties: 'shape' (line 3)."},
		{"bad tag", "foo.scene.dry", "tags: a b c!", "Line 1: Tag 3 ('c!') is not valid."},
		{"bad go-to", "foo.scene.dry", "go-to: a b", "Line 1: 'a b' is not a valid relative id."},
		{"options property", "foo.scene.dry", "\n- @a\n- min-choices: x", "Line 3: Not a valid whole number."},
		{"options unknown", "foo.scene.dry", "\n- @a\n- bogus: 1", "Unknown properties: 'bogus' (line 3)."},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			raw, err := dry.ParseDocument(tc.filename, tc.text)
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			_, err = document.ValidateScene(raw)
			if err == nil {
				t.Fatalf("expected error %q", tc.want)
			}
			if err.Error() != tc.want {
				t.Fatalf("unexpected error:\n got: %s\nwant: %s", err.Error(), tc.want)
			}
		})
	}
}

func TestValidateInfo(t *testing.T) {
	raw, err := dry.ParseDocument("info.dry", "title: A Tale\nauthor: Someone\nfirst-scene: @root\n\nAbout this game.")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	info, err := document.ValidateInfo(raw)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	want := &document.Info{Title: "A Tale", Author: "Someone", FirstScene: "root", Content: "About this game."}
	if diff := cmp.Diff(want, info); diff != "" {
		t.Fatalf("unexpected info (-want +got):\n%s", diff)
	}
}

func TestValidateInfo_MissingAuthor(t *testing.T) {
	raw, err := dry.ParseDocument("info.dry", "title: A Tale")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	_, err = document.ValidateInfo(raw)
	if err == nil || err.Error() != "Missing required property 'author'." {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSceneSchema_Idempotent(t *testing.T) {
	raw, err := dry.ParseDocument("root.scene.dry", rootScene)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	first, err := document.SceneSchema.Validate(raw)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	second, err := document.SceneSchema.Validate(first)
	if err != nil {
		t.Fatalf("revalidate: %v", err)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("revalidation changed the object (-first +second):\n%s", diff)
	}
}

func TestJSONSchema(t *testing.T) {
	scene, ok := document.JSONSchema("scene")
	if !ok {
		t.Fatalf("scene schema missing")
	}
	if scene.Properties["type"].Const != "scene" {
		t.Fatalf("type should be const scene: %#v", scene.Properties["type"])
	}
	if scene.Properties["sections"].Items.Ref != "#/$defs/section" {
		t.Fatalf("sections should refer to the section definition")
	}
	if _, ok := scene.Defs["option"]; !ok {
		t.Fatalf("option definition missing")
	}
	info, _ := document.JSONSchema("info")
	if diff := cmp.Diff([]string{"title", "author"}, info.Required); diff != "" {
		t.Fatalf("unexpected info required (-want +got):\n%s", diff)
	}
	if _, ok := document.JSONSchema("quality"); ok {
		t.Fatalf("unknown kinds have no schema")
	}
}
