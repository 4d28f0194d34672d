package jsonschema

// Draft is the JSON Schema dialect emitted by the exporters.
const Draft = "https://json-schema.org/draft/2020-12/schema"

// Schema is a minimal JSON Schema representation used for export.
type Schema struct {
	Schema      string `json:"$schema,omitempty"`
	ID          string `json:"$id,omitempty"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`

	// Core
	Type   string `json:"type,omitempty"`
	Format string `json:"format,omitempty"`

	// Object
	Properties           map[string]*Schema `json:"properties,omitempty"`
	Required             []string           `json:"required,omitempty"`
	AdditionalProperties any                `json:"additionalProperties,omitempty"`
	MinProperties        *int               `json:"minProperties,omitempty"`
	MaxProperties        *int               `json:"maxProperties,omitempty"`

	// Union
	OneOf []*Schema `json:"oneOf,omitempty"`
}

// Object returns an empty object schema.
func Object() *Schema {
	return &Schema{Type: "object", Properties: map[string]*Schema{}}
}

// Envelope wraps body as the only allowed property name of an object, the
// shape of a polymorphic envelope.
func Envelope(name string, body *Schema) *Schema {
	one := 1
	return &Schema{
		Type:                 "object",
		Title:                name,
		Properties:           map[string]*Schema{name: body},
		Required:             []string{name},
		AdditionalProperties: false,
		MinProperties:        &one,
		MaxProperties:        &one,
	}
}
