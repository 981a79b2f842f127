// Package indicator holds the credibility indicator catalog and the rules
// that turn a document's stored flags into a complete selection state.
package indicator

// MetaKey is the document metadata field that stores indicator flags.
const MetaKey = "credibility_indicators"

// Definition describes one credibility indicator.
type Definition struct {
	Slug        string `json:"slug" yaml:"slug"`
	Label       string `json:"label" yaml:"label"`
	Description string `json:"description" yaml:"description"`
	// Icon is an inline SVG fragment. It is untrusted and must be sanitized
	// before it is written to a page.
	Icon string `json:"icon,omitempty" yaml:"icon,omitempty"`
}

// State maps each catalog slug to whether the indicator is asserted for a
// document.
type State map[string]bool

// Clone returns a copy of s.
func (s State) Clone() State {
	out := make(State, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Selected returns the slugs set to true, in catalog order.
func (s State) Selected(defs []Definition) []string {
	var out []string
	for _, d := range defs {
		if s[d.Slug] {
			out = append(out, d.Slug)
		}
	}
	return out
}

// Any reports whether at least one indicator is selected.
func (s State) Any() bool {
	for _, v := range s {
		if v {
			return true
		}
	}
	return false
}

// Slugs returns the slug of every definition, in order.
func Slugs(defs []Definition) []string {
	out := make([]string, 0, len(defs))
	for _, d := range defs {
		out = append(out, d.Slug)
	}
	return out
}
