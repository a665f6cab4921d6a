package jsonschema

// Schema is a minimal JSON Schema representation used to export document
// schemas. It covers only what the document tables need.
type Schema struct {
	// Core
	Ref         string `json:"$ref,omitempty"`
	Type        string `json:"type,omitempty"`
	Description string `json:"description,omitempty"`
	Const       any    `json:"const,omitempty"`
	Pattern     string `json:"pattern,omitempty"`
	Minimum     *int   `json:"minimum,omitempty"`
	Maximum     *int   `json:"maximum,omitempty"`

	// Object
	Properties           map[string]*Schema `json:"properties,omitempty"`
	Required             []string           `json:"required,omitempty"`
	AdditionalProperties any                `json:"additionalProperties,omitempty"`

	// Array
	Items *Schema `json:"items,omitempty"`

	// Reusable definitions referenced with "#/$defs/<name>".
	Defs map[string]*Schema `json:"$defs,omitempty"`
}

// Ref returns a schema that points at a named definition.
func Ref(name string) *Schema { return &Schema{Ref: "#/$defs/" + name} }

// Int returns p as a pointer, for Minimum and Maximum.
func Int(p int) *int { return &p }
