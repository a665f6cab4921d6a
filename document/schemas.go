package document

import (
	js "github.com/reoring/dryc/jsonschema"
	"github.com/reoring/dryc/schema"
	"github.com/reoring/dryc/validate"
)

var (
	jsString  = &js.Schema{Type: "string"}
	jsInteger = &js.Schema{Type: "integer"}
	jsCount   = &js.Schema{Type: "integer", Minimum: js.Int(0)}
	jsBool    = &js.Schema{Type: "boolean"}
	jsID      = &js.Schema{Type: "string", Pattern: `^[A-Za-z0-9_-]+$`}
	jsTags    = &js.Schema{Type: "array", Items: jsID}

	nonNegative = validate.RangedInteger(validate.Bounded(0), validate.Unbounded)
)

// InfoSchema validates info documents. The filename-derived id and type are
// checked for presence only and dropped from the result.
var InfoSchema = schema.New(
	schema.Field{Name: "id", Remove: true},
	schema.Field{Name: "type", Remove: true},
	schema.Field{Name: "title", Required: true, JSON: jsString},
	schema.Field{Name: "author", Required: true, JSON: jsString},
	schema.Field{Name: "firstScene", Validate: validate.Identifier, JSON: jsID},
	schema.Field{Name: "content", JSON: jsString},
)

// OptionSchema validates one entry of an options block.
var OptionSchema = schema.New(
	schema.Field{Name: "id", Required: true, Validate: validate.OptionRef, JSON: &js.Schema{
		Type:    "string",
		Pattern: `^(@[A-Za-z0-9_.-]+|#[A-Za-z0-9_-]+)$`,
	}},
	schema.Field{Name: "viewIf", JSON: jsString},
	schema.Field{Name: "title", JSON: jsString},
)

// OptionsSchema validates an options block and its options.
var OptionsSchema = schema.New(
	schema.Field{Name: "options", Validate: schema.List(OptionSchema), JSON: &js.Schema{Type: "array", Items: js.Ref("option")}},
	schema.Field{Name: "minChoices", Validate: nonNegative, JSON: jsCount},
	schema.Field{Name: "maxChoices", Validate: nonNegative, JSON: jsCount},
)

// SectionSchema validates sections; its sections field recurses into itself.
var SectionSchema = schema.Recursive(func(self *schema.Schema) []schema.Field {
	return []schema.Field{
		{Name: "id", Required: true, Validate: validate.Identifier, JSON: jsID},
		{Name: "content", Required: true, JSON: jsString},
		{Name: "title", JSON: jsString},
		{Name: "subtitle", JSON: jsString},
		{Name: "unavailableSubtitle", JSON: jsString},
		{Name: "tags", Validate: validate.TagList, JSON: jsTags},
		{Name: "order", Validate: validate.Integer, JSON: jsInteger},
		{Name: "priority", Validate: validate.Integer, JSON: jsInteger},
		{Name: "maxVisits", Validate: nonNegative, JSON: jsCount},
		{Name: "minChoices", Validate: nonNegative, JSON: jsCount},
		{Name: "maxChoices", Validate: nonNegative, JSON: jsCount},
		{Name: "gameOver", Validate: validate.Boolean, JSON: jsBool},
		{Name: "newPage", Validate: validate.Boolean, JSON: jsBool},
		{Name: "setRoot", Validate: validate.Boolean, JSON: jsBool},
		{Name: "isSpecial", Validate: validate.Boolean, JSON: jsBool},
		{Name: "goTo", Validate: validate.RelativeID, JSON: jsString},
		{Name: "viewIf", JSON: jsString},
		{Name: "chooseIf", JSON: jsString},
		{Name: "onArrival", JSON: jsString},
		{Name: "onDeparture", JSON: jsString},
		{Name: "onDisplay", JSON: jsString},
		{Name: "style", JSON: jsString},
		{Name: "options", Validate: schema.Object(OptionsSchema), JSON: js.Ref("options")},
		{Name: "sections", Validate: schema.List(self), JSON: &js.Schema{Type: "array", Items: js.Ref("section")}},
	}
})

// SceneSchema validates scene documents: a section that may also declare its
// type, which must be "scene".
var SceneSchema = SectionSchema.Extend(
	schema.Field{Name: "type", Validate: validate.Equal("Type", "scene"), JSON: &js.Schema{Type: "string", Const: "scene"}},
)

// JSONSchema exports the schema of a document kind ("info" or "scene").
func JSONSchema(kind string) (*js.Schema, bool) {
	switch kind {
	case "info":
		return InfoSchema.JSONSchema(), true
	case "scene":
		out := SceneSchema.JSONSchema()
		out.Defs = map[string]*js.Schema{
			"section": SectionSchema.JSONSchema(),
			"options": OptionsSchema.JSONSchema(),
			"option":  OptionSchema.JSONSchema(),
		}
		return out, true
	}
	return nil, false
}
