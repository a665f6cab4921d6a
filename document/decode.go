package document

import (
	"fmt"

	json "github.com/goccy/go-json"
)

// ValidateInfo validates a raw info document and decodes it.
func ValidateInfo(raw map[string]any) (*Info, error) {
	m, err := InfoSchema.Validate(raw)
	if err != nil {
		return nil, err
	}
	return DecodeInfo(m)
}

// ValidateScene validates a raw scene document and decodes it.
func ValidateScene(raw map[string]any) (*Scene, error) {
	m, err := SceneSchema.Validate(raw)
	if err != nil {
		return nil, err
	}
	return DecodeScene(m)
}

// DecodeInfo converts a normalized info object into an Info.
func DecodeInfo(m map[string]any) (*Info, error) {
	var info Info
	if err := decode(m, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// DecodeScene converts a normalized scene object into a Scene.
func DecodeScene(m map[string]any) (*Scene, error) {
	var scene Scene
	if err := decode(m, &scene); err != nil {
		return nil, err
	}
	return &scene, nil
}

// decode moves a normalized map into a typed value through its JSON form;
// the map's keys already match the json tags.
func decode(m map[string]any, dst any) error {
	b, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("document: encode normalized object: %w", err)
	}
	if err := json.Unmarshal(b, dst); err != nil {
		return fmt.Errorf("document: decode normalized object: %w", err)
	}
	return nil
}
