package schema

import (
	"context"

	"github.com/reoring/dryc"
)

// DefaultID selects the fallback schema in ValidateListByID.
const DefaultID = "$default"

// ValidateList validates every object in raw against s. raw may be a spanned
// or bare []any (or []map[string]any). Errors are tagged with the failing
// item's line, falling back to the list's line.
func ValidateList(s *Schema, raw any) ([]any, error) {
	return validateList(raw, func(int, map[string]any) (*Schema, error) { return s, nil })
}

// ValidateListByID validates each object against the schema selected by its
// id field, or the DefaultID entry when no schema is registered for that id.
func ValidateListByID(byID map[string]*Schema, raw any) ([]any, error) {
	return validateList(raw, func(line int, item map[string]any) (*Schema, error) {
		return pick(byID, line, item)
	})
}

func pick(byID map[string]*Schema, line int, item map[string]any) (*Schema, error) {
	id, _ := dryc.AsString(item["id"])
	if s, ok := byID[id]; ok {
		return s, nil
	}
	if s, ok := byID[DefaultID]; ok {
		return s, nil
	}
	return nil, dryc.ErrorAt(line, dryc.CodeUnknownID, "Unknown id '%s'", id)
}

type selector func(line int, item map[string]any) (*Schema, error)

func validateList(raw any, sel selector) ([]any, error) {
	items, listLine, err := listItems(raw)
	if err != nil {
		return nil, err
	}
	out := make([]any, len(items))
	for i, it := range items {
		nv, err := validateItem(it, listLine, sel)
		if err != nil {
			return nil, err
		}
		out[i] = nv
	}
	return out, nil
}

func listItems(raw any) ([]any, int, error) {
	val, line := dryc.Unwrap(raw)
	switch t := val.(type) {
	case nil:
		return nil, line, nil
	case []any:
		return t, line, nil
	case []map[string]any:
		items := make([]any, len(t))
		for i := range t {
			items[i] = t[i]
		}
		return items, line, nil
	default:
		return nil, line, dryc.ErrorAt(line, dryc.CodeInvalidValue, "Not a valid list").WithValue(raw)
	}
}

// validateItem validates one list entry. The entry's own span wins over the
// list's span for error positions.
func validateItem(it any, listLine int, sel selector) (any, error) {
	obj, line := dryc.Unwrap(it)
	if line == 0 {
		line = listLine
	}
	m, ok := obj.(map[string]any)
	if !ok {
		return nil, dryc.ErrorAt(line, dryc.CodeInvalidValue, "Not a valid object").WithValue(it)
	}
	s, err := sel(line, m)
	if err != nil {
		return nil, err
	}
	nv, err := s.validate(m, line)
	if err != nil {
		return nil, attachLine(err, line)
	}
	return nv, nil
}

// ValidateListConcurrent is ValidateList with items validated by up to
// workers goroutines. When several items fail, the error of the lowest index
// is returned, exactly as the sequential variant would.
func ValidateListConcurrent(ctx context.Context, s *Schema, raw any, workers int) ([]any, error) {
	items, listLine, err := listItems(raw)
	if err != nil {
		return nil, err
	}
	sel := func(int, map[string]any) (*Schema, error) { return s, nil }
	out := make([]any, len(items))
	err = Each(ctx, len(items), workers, func(_ context.Context, i int) error {
		nv, err := validateItem(items[i], listLine, sel)
		if err != nil {
			return err
		}
		out[i] = nv
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// List lifts ValidateList into a field validator.
func List(s *Schema) Validator {
	return func(v any) (any, error) { return ValidateList(s, v) }
}

// ListByID lifts ValidateListByID into a field validator.
func ListByID(byID map[string]*Schema) Validator {
	return func(v any) (any, error) { return ValidateListByID(byID, v) }
}

// Object validates a single nested object against s.
func Object(s *Schema) Validator {
	return func(v any) (any, error) {
		obj, line := dryc.Unwrap(v)
		m, ok := obj.(map[string]any)
		if !ok {
			return nil, dryc.ErrorAt(line, dryc.CodeInvalidValue, "Not a valid object").WithValue(v)
		}
		return s.validate(m, line)
	}
}
