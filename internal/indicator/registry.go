package indicator

import "sync"

// Filter receives the ordered catalog and returns a possibly modified one.
// Filters may add, remove or reorder definitions.
type Filter func(defs []Definition) []Definition

// Registry is the process-wide indicator catalog. The default definitions
// are fixed at construction; filters registered with AddFilter are applied,
// in registration order, on every call to Indicators.
type Registry struct {
	mu       sync.RWMutex
	defaults []Definition
	filters  []Filter
}

// NewRegistry creates a Registry seeded with the given default definitions.
func NewRegistry(defaults []Definition) *Registry {
	return &Registry{defaults: cloneDefs(defaults)}
}

// AddFilter registers an extension that runs on every catalog access.
func (r *Registry) AddFilter(f Filter) {
	if f == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.filters = append(r.filters, f)
}

// Indicators returns the current ordered catalog. Each call re-runs the
// filters and returns a fresh slice; callers may modify it freely.
// Definitions without a slug are dropped, and for duplicated slugs only the
// first occurrence is kept.
func (r *Registry) Indicators() []Definition {
	r.mu.RLock()
	defs := cloneDefs(r.defaults)
	filters := make([]Filter, len(r.filters))
	copy(filters, r.filters)
	r.mu.RUnlock()

	for _, f := range filters {
		defs = f(defs)
	}
	return normalize(defs)
}

// Indicator looks up a definition by slug.
func (r *Registry) Indicator(slug string) (Definition, bool) {
	for _, d := range r.Indicators() {
		if d.Slug == slug {
			return d, true
		}
	}
	return Definition{}, false
}

func normalize(defs []Definition) []Definition {
	seen := make(map[string]bool, len(defs))
	out := make([]Definition, 0, len(defs))
	for _, d := range defs {
		if d.Slug == "" || seen[d.Slug] {
			continue
		}
		seen[d.Slug] = true
		out = append(out, d)
	}
	return out
}

func cloneDefs(defs []Definition) []Definition {
	out := make([]Definition, len(defs))
	copy(out, defs)
	return out
}
