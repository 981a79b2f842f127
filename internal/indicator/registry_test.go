package indicator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDefs() []Definition {
	return []Definition{
		{Slug: "original_reporting", Label: "Original Reporting", Description: "firsthand"},
		{Slug: "on_the_ground", Label: "On the Ground", Description: "present"},
		{Slug: "sources_cited", Label: "References", Description: "sources"},
	}
}

func TestRegistryIndicatorsReturnsDefaultsInOrder(t *testing.T) {
	r := NewRegistry(sampleDefs())
	got := r.Indicators()
	assert.Equal(t, []string{"original_reporting", "on_the_ground", "sources_cited"}, Slugs(got))
}

func TestRegistryEmptyCatalog(t *testing.T) {
	r := NewRegistry(nil)
	assert.Empty(t, r.Indicators())
	_, ok := r.Indicator("original_reporting")
	assert.False(t, ok)
}

func TestRegistryFiltersRunOnEveryAccess(t *testing.T) {
	r := NewRegistry(sampleDefs())
	calls := 0
	r.AddFilter(func(defs []Definition) []Definition {
		calls++
		return defs
	})

	r.Indicators()
	r.Indicators()
	assert.Equal(t, 2, calls)
}

func TestRegistryFilterCanAddRemoveReorder(t *testing.T) {
	r := NewRegistry(sampleDefs())
	r.AddFilter(func(defs []Definition) []Definition {
		// Drop on_the_ground, put sources_cited first, append a new one.
		return []Definition{defs[2], defs[0], {Slug: "subject_specialist", Label: "Subject Specialist"}}
	})
	assert.Equal(t, []string{"sources_cited", "original_reporting", "subject_specialist"}, Slugs(r.Indicators()))
}

func TestRegistryReturnsFreshSlices(t *testing.T) {
	r := NewRegistry(sampleDefs())
	first := r.Indicators()
	first[0].Label = "mutated"

	second := r.Indicators()
	assert.Equal(t, "Original Reporting", second[0].Label)
}

func TestRegistryDropsDuplicateAndEmptySlugs(t *testing.T) {
	r := NewRegistry(sampleDefs())
	r.AddFilter(func(defs []Definition) []Definition {
		return append(defs,
			Definition{Slug: "original_reporting", Label: "Shadow"},
			Definition{Label: "No slug"},
		)
	})
	got := r.Indicators()
	require.Len(t, got, 3)
	assert.Equal(t, "Original Reporting", got[0].Label)
}

func TestRegistryIndicatorLookup(t *testing.T) {
	r := NewRegistry(sampleDefs())

	d, ok := r.Indicator("on_the_ground")
	require.True(t, ok)
	assert.Equal(t, "On the Ground", d.Label)

	_, ok = r.Indicator("legacy_slug")
	assert.False(t, ok)
}

func TestDefaultDefinitions(t *testing.T) {
	defs := DefaultDefinitions(nil)
	assert.Equal(t, []string{"original_reporting", "on_the_ground", "sources_cited", "subject_specialist"}, Slugs(defs))
	for _, d := range defs {
		assert.NotEmpty(t, d.Label, d.Slug)
		assert.NotEmpty(t, d.Description, d.Slug)
		assert.Contains(t, d.Icon, "<svg", d.Slug)
	}
	assert.Contains(t, Trustmark(), "<svg")
}

func TestSchemaFor(t *testing.T) {
	s := SchemaFor([]Definition{{Slug: "a", Label: "A"}, {Slug: "b"}})

	assert.Equal(t, "object", s.Type)
	require.Len(t, s.Properties, 2)
	assert.Equal(t, SchemaProperty{Type: "boolean", Default: false, Description: "A"}, s.Properties["a"])
	assert.Equal(t, "boolean", s.Properties["b"].Type)
	assert.Equal(t, map[string]bool{"a": false, "b": false}, s.Default)

	empty := SchemaFor(nil)
	assert.NotNil(t, empty.Default, "default serializes as {} rather than null")
	assert.Empty(t, empty.Default)
}
