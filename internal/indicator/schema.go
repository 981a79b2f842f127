package indicator

// Schema describes the stored meta field: an object with one boolean
// property per catalog slug, each defaulting to false. Default repeats the
// per-property defaults as the object's default value. Properties outside
// the catalog are tolerated so legacy flags survive a round trip.
type Schema struct {
	Type                 string                    `json:"type"`
	Properties           map[string]SchemaProperty `json:"properties"`
	AdditionalProperties bool                      `json:"additionalProperties"`
	Default              map[string]bool           `json:"default"`
}

// SchemaProperty is the schema of a single flag.
type SchemaProperty struct {
	Type        string `json:"type"`
	Default     bool   `json:"default"`
	Description string `json:"description,omitempty"`
}

// SchemaFor builds the meta field schema for defs.
func SchemaFor(defs []Definition) Schema {
	s := Schema{
		Type:                 "object",
		Properties:           make(map[string]SchemaProperty, len(defs)),
		AdditionalProperties: true,
		Default:              make(map[string]bool, len(defs)),
	}
	for _, d := range defs {
		s.Properties[d.Slug] = SchemaProperty{Type: "boolean", Description: d.Label}
		s.Default[d.Slug] = false
	}
	return s
}
