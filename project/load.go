package project

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/reoring/dryc"
	"github.com/reoring/dryc/document"
	"github.com/reoring/dryc/dry"
	"github.com/reoring/dryc/internal/ctxlog"
	"github.com/reoring/dryc/link"
	"github.com/reoring/dryc/schema"
)

// Extension is the file extension of DRY documents.
const Extension = ".dry"

var (
	// ErrNoDocuments is returned when the source tree holds no .dry files.
	ErrNoDocuments = errors.New("no .dry documents found")
	// ErrNoInfo is returned when no info document exists.
	ErrNoInfo = errors.New("no info.dry document found")
	// ErrMultipleInfo is returned when more than one info document exists.
	ErrMultipleInfo = errors.New("more than one info document found")
)

// Kind classifies a parsed document.
type Kind string

const (
	KindInfo  Kind = "info"
	KindScene Kind = "scene"
)

// Discover returns the .dry files under root, sorted by path.
func Discover(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && filepath.Ext(path) == Extension {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("discover %s: %w", root, err)
	}
	sort.Strings(files)
	return files, nil
}

// ParseFile reads and parses a single document.
func ParseFile(path string) (map[string]any, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	doc, err := dry.ParseDocument(filepath.Base(path), string(b))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Classify decides what a parsed document is from its id and type: a
// document with id "info" and no type is the info document, a document of
// type "scene" is a scene. Anything else is not supported.
func Classify(doc map[string]any) (Kind, error) {
	id, _ := dryc.AsString(doc["id"])
	typ, hasType := dryc.AsString(doc["type"])
	switch {
	case !hasType && id == "info":
		return KindInfo, nil
	case typ == "scene":
		return KindScene, nil
	case !hasType:
		return "", dryc.Errorf(dryc.CodeFilename, "Document '%s' has no type", id)
	default:
		return "", dryc.Errorf(dryc.CodeFilename, "Unsupported document type '%s'", typ)
	}
}

// NormalizeFile parses, classifies and validates one document, returning the
// normalized object.
func NormalizeFile(path string) (map[string]any, error) {
	doc, err := ParseFile(path)
	if err != nil {
		return nil, err
	}
	kind, err := Classify(doc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	s := document.SceneSchema
	if kind == KindInfo {
		s = document.InfoSchema
	}
	m, err := s.Validate(doc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// Load discovers, parses, validates and links every document under
// cfg.Source. Files are processed concurrently, at most cfg.Workers at a
// time; when several fail, the error of the first file in path order wins.
func Load(ctx context.Context, cfg Config) (*link.Game, error) {
	log := ctxlog.FromContext(ctx)

	files, err := Discover(cfg.Source)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%s: %w", cfg.Source, ErrNoDocuments)
	}
	log.Debug("discovered documents", "source", cfg.Source, "count", len(files))

	docs := make([]map[string]any, len(files))
	err = schema.Each(ctx, len(files), cfg.Workers, func(ctx context.Context, i int) error {
		doc, err := ParseFile(files[i])
		if err != nil {
			return err
		}
		docs[i] = doc
		log.Debug("parsed document", "path", files[i])
		return nil
	})
	if err != nil {
		return nil, err
	}

	infoIndex := -1
	var sceneIndexes []int
	for i, doc := range docs {
		kind, err := Classify(doc)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", files[i], err)
		}
		switch kind {
		case KindInfo:
			if infoIndex >= 0 {
				return nil, fmt.Errorf("%s, %s: %w", files[infoIndex], files[i], ErrMultipleInfo)
			}
			infoIndex = i
		case KindScene:
			sceneIndexes = append(sceneIndexes, i)
		}
	}
	if infoIndex < 0 {
		return nil, fmt.Errorf("%s: %w", cfg.Source, ErrNoInfo)
	}

	info, err := document.ValidateInfo(docs[infoIndex])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", files[infoIndex], err)
	}

	scenes := make([]*document.Scene, len(sceneIndexes))
	err = schema.Each(ctx, len(sceneIndexes), cfg.Workers, func(ctx context.Context, i int) error {
		idx := sceneIndexes[i]
		scene, err := document.ValidateScene(docs[idx])
		if err != nil {
			return fmt.Errorf("%s: %w", files[idx], err)
		}
		scenes[i] = scene
		return nil
	})
	if err != nil {
		return nil, err
	}

	game, err := link.Compile(info, scenes)
	if err != nil {
		return nil, err
	}
	log.Info("compiled project", "title", game.Title, "scenes", len(game.Scenes), "tags", len(game.TagLookup))
	return game, nil
}
