package schema

import (
	js "github.com/reoring/dryc/jsonschema"
)

// JSONSchema projects the schema into a JSON Schema object. Fields without a
// JSON hint accept any value; removed fields are still listed because they
// are accepted on input.
func (s *Schema) JSONSchema() *js.Schema {
	out := &js.Schema{
		Type:                 "object",
		Properties:           make(map[string]*js.Schema, len(s.fields)),
		AdditionalProperties: false,
	}
	for _, f := range s.fields {
		prop := f.JSON
		if prop == nil {
			prop = &js.Schema{}
		}
		out.Properties[f.Name] = prop
		if f.Required {
			out.Required = append(out.Required, f.Name)
		}
	}
	return out
}
