package indicator

import (
	"encoding/json"
	"strings"
)

// Resolve merges the catalog with a document's stored flags. The result has
// exactly one entry per catalog slug: the coerced stored value when present,
// false otherwise. Stored flags for slugs outside the catalog are ignored.
// stored is never modified.
func Resolve[V any](defs []Definition, stored map[string]V) State {
	state := make(State, len(defs))
	for _, d := range defs {
		v, ok := stored[d.Slug]
		state[d.Slug] = ok && CoerceBool(v)
	}
	return state
}

// falsy lists the string spellings that coerce to false. Any other
// non-empty string is true.
var falsy = map[string]bool{
	"":      true,
	"0":     true,
	"false": true,
	"off":   true,
	"no":    true,
	"null":  true,
}

// CoerceBool interprets a loosely typed stored value as a boolean.
func CoerceBool(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return !falsy[strings.ToLower(strings.TrimSpace(x))]
	case json.Number:
		f, err := x.Float64()
		return err == nil && f != 0
	case float64:
		return x != 0
	case float32:
		return x != 0
	case int:
		return x != 0
	case int8:
		return x != 0
	case int16:
		return x != 0
	case int32:
		return x != 0
	case int64:
		return x != 0
	case uint:
		return x != 0
	case uint8:
		return x != 0
	case uint16:
		return x != 0
	case uint32:
		return x != 0
	case uint64:
		return x != 0
	case []any:
		return len(x) > 0
	case map[string]any:
		return len(x) > 0
	default:
		return true
	}
}
