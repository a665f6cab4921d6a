// Package link merges validated documents into a single game graph.
package link

import (
	"sort"
	"strings"

	"github.com/reoring/dryc"
	"github.com/reoring/dryc/document"
)

// Game is the linked project. It is built once by Compile and not modified
// afterwards.
type Game struct {
	Title      string                     `json:"title"`
	Author     string                     `json:"author"`
	FirstScene string                     `json:"firstScene,omitempty"`
	Content    string                     `json:"content,omitempty"`
	Scenes     map[string]*document.Scene `json:"scenes"`
	// TagLookup maps each tag to the set of scene ids carrying it.
	TagLookup map[string]map[string]bool `json:"tagLookup"`
}

// Resolver expands an option reference (@id or #tag) seen in the scene
// contextID into the absolute scene ids to try, in order. Resolution order is
// not part of linking; Compile leaves option targets untouched.
type Resolver interface {
	Candidates(ref, contextID string) []string
}

// Compile links one info document and the scene documents, in order. The
// first scene whose id was already seen aborts the link.
func Compile(info *document.Info, scenes []*document.Scene) (*Game, error) {
	g := &Game{
		Title:      info.Title,
		Author:     info.Author,
		FirstScene: info.FirstScene,
		Content:    info.Content,
		Scenes:     make(map[string]*document.Scene, len(scenes)),
		TagLookup:  map[string]map[string]bool{},
	}
	for _, s := range scenes {
		if _, dup := g.Scenes[s.ID]; dup {
			return nil, dryc.Errorf(dryc.CodeDuplicateScene, "Duplicate scenes with id '%s' found", s.ID)
		}
		g.Scenes[s.ID] = s
		for _, tag := range s.Tags {
			set, ok := g.TagLookup[tag]
			if !ok {
				set = map[string]bool{}
				g.TagLookup[tag] = set
			}
			set[s.ID] = true
		}
	}
	return g, nil
}

// Lookup finds a scene or nested section by its dotted path, such as
// "root.forest.clearing".
func (g *Game) Lookup(path string) (*document.Section, bool) {
	parts := strings.Split(path, ".")
	scene, ok := g.Scenes[parts[0]]
	if !ok {
		return nil, false
	}
	cur := &scene.Section
	for _, id := range parts[1:] {
		if cur, ok = cur.Child(id); !ok {
			return nil, false
		}
	}
	return cur, true
}

// Tagged returns the ids of the scenes carrying tag, sorted.
func (g *Game) Tagged(tag string) []string {
	set := g.TagLookup[tag]
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
