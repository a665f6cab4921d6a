// Package schema validates and normalizes raw parsed objects against
// declarative field tables.
//
// A Schema is an ordered list of Field descriptors. Validation walks the
// descriptors (not the raw object) in declared order and stops at the first
// failing validator. Fields the schema does not name are collected and
// reported together in one unknown-properties error. Surviving values are
// returned with their dryc.Spanned wrappers removed.
package schema

import (
	"fmt"
	"sort"
	"strings"

	"github.com/reoring/dryc"
	js "github.com/reoring/dryc/jsonschema"
)

// Validator converts a raw (possibly spanned) value into its normalized form.
type Validator func(v any) (any, error)

// Field describes one property of an object.
type Field struct {
	Name     string
	Required bool
	Validate Validator // optional
	Remove   bool      // validate, then drop from the result
	// JSON optionally describes the normalized value for JSON Schema export.
	JSON *js.Schema
}

// Schema is an immutable, ordered set of fields. It is safe to share across
// goroutines once built.
type Schema struct {
	fields []Field
	byName map[string]int
}

// New builds a schema from fields in declared order. It panics when two
// fields share a name, which is a programming error.
func New(fields ...Field) *Schema {
	s := &Schema{}
	s.init(fields)
	return s
}

// Recursive builds a schema whose fields may refer to the schema itself, as
// nested sections do.
func Recursive(build func(self *Schema) []Field) *Schema {
	s := &Schema{}
	s.init(build(s))
	return s
}

func (s *Schema) init(fields []Field) {
	s.fields = append([]Field(nil), fields...)
	s.byName = make(map[string]int, len(fields))
	for i, f := range s.fields {
		if _, dup := s.byName[f.Name]; dup {
			panic(fmt.Sprintf("schema: duplicate field %q", f.Name))
		}
		s.byName[f.Name] = i
	}
}

// Extend returns a new schema with the receiver's fields followed by more.
func (s *Schema) Extend(more ...Field) *Schema {
	return New(append(s.Fields(), more...)...)
}

// Fields returns a copy of the field descriptors in declared order.
func (s *Schema) Fields() []Field { return append([]Field(nil), s.fields...) }

// Field looks up a descriptor by name.
func (s *Schema) Field(name string) (Field, bool) {
	i, ok := s.byName[name]
	if !ok {
		return Field{}, false
	}
	return s.fields[i], true
}

// Validate checks raw against the schema and returns the normalized object.
// raw is not modified.
func (s *Schema) Validate(raw map[string]any) (map[string]any, error) {
	return s.validate(raw, 0)
}

// validate runs the schema; line is the object's own position, used for
// errors that belong to the object as a whole.
func (s *Schema) validate(raw map[string]any, line int) (map[string]any, error) {
	out := make(map[string]any, len(raw))
	for _, f := range s.fields {
		v, present := raw[f.Name]
		if !present {
			if f.Required {
				return nil, dryc.ErrorAt(line, dryc.CodeRequired, "Missing required property '%s'", f.Name)
			}
			continue
		}
		if f.Validate != nil {
			nv, err := f.Validate(v)
			if err != nil {
				if vl := dryc.LineOf(v); vl > 0 {
					return nil, attachLine(err, vl)
				}
				return nil, attachLine(err, line)
			}
			v = nv
		}
		if f.Remove {
			continue
		}
		out[f.Name] = dryc.Strip(v)
	}
	if err := s.checkUnknown(raw); err != nil {
		return nil, err
	}
	return out, nil
}

// attachLine fills in the line of err. Unknown-properties errors are left
// alone since they already name the line of each property.
func attachLine(err error, line int) error {
	if e, ok := dryc.AsError(err); ok && e.Code == dryc.CodeUnknownProperty {
		return err
	}
	return dryc.AttachLine(err, line)
}

type unknownKey struct {
	name string
	line int
}

// checkUnknown reports every property the schema does not name in a single
// error, ordered by source line.
func (s *Schema) checkUnknown(raw map[string]any) error {
	var unknown []unknownKey
	for k, v := range raw {
		if _, known := s.byName[k]; !known {
			unknown = append(unknown, unknownKey{name: k, line: dryc.LineOf(v)})
		}
	}
	if len(unknown) == 0 {
		return nil
	}
	sort.Slice(unknown, func(i, j int) bool {
		a, b := unknown[i], unknown[j]
		if (a.line == 0) != (b.line == 0) {
			return a.line != 0
		}
		if a.line != b.line {
			return a.line < b.line
		}
		return a.name < b.name
	})
	parts := make([]string, len(unknown))
	for i, u := range unknown {
		if u.line > 0 {
			parts[i] = fmt.Sprintf("'%s' (line %d)", u.name, u.line)
		} else {
			parts[i] = fmt.Sprintf("'%s'", u.name)
		}
	}
	return dryc.Errorf(dryc.CodeUnknownProperty, "Unknown properties: %s", strings.Join(parts, ", "))
}
