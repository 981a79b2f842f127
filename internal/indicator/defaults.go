package indicator

import (
	"embed"
	"strings"

	"golang.org/x/text/message"

	"github.com/ziadkadry99/credind/internal/i18n"
)

//go:embed assets/svg/*.svg
var iconFS embed.FS

func embeddedIcon(name string) string {
	data, err := iconFS.ReadFile("assets/svg/" + name + ".svg")
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// Trustmark returns the program mark shown next to the badge title.
func Trustmark() string {
	return embeddedIcon("trustmark")
}

// DefaultDefinitions returns the built-in catalog, translated with p.
// A nil printer yields the English source strings.
func DefaultDefinitions(p *message.Printer) []Definition {
	tr := func(key string) string {
		if p == nil {
			return key
		}
		return p.Sprintf(key)
	}
	return []Definition{
		{
			Slug:        "original_reporting",
			Label:       tr(i18n.OriginalReportingLabel),
			Description: tr(i18n.OriginalReportingDescription),
			Icon:        embeddedIcon("original-reporting"),
		},
		{
			Slug:        "on_the_ground",
			Label:       tr(i18n.OnTheGroundLabel),
			Description: tr(i18n.OnTheGroundDescription),
			Icon:        embeddedIcon("on-the-ground"),
		},
		{
			Slug:        "sources_cited",
			Label:       tr(i18n.SourcesCitedLabel),
			Description: tr(i18n.SourcesCitedDescription),
			Icon:        embeddedIcon("sources-cited"),
		},
		{
			Slug:        "subject_specialist",
			Label:       tr(i18n.SubjectSpecialistLabel),
			Description: tr(i18n.SubjectSpecialistDescription),
			Icon:        embeddedIcon("subject-specialist"),
		},
	}
}
