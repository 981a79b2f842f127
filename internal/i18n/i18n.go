// Package i18n registers the translatable strings shipped with the default
// indicator catalog and resolves message printers for a requested language.
package i18n

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Message keys. The English source text doubles as the key.
const (
	BadgeTitle = "THE TRUST PROJECT"
	PanelTitle = "Credibility Indicators"

	OriginalReportingLabel       = "Original Reporting"
	OriginalReportingDescription = "This article contains firsthand information gathered by reporters. This includes directly interviewing sources and analyzing primary source documents."
	OnTheGroundLabel             = "On the Ground"
	OnTheGroundDescription       = "A journalist was physically present to report the article from some or all of the locations it concerns."
	SourcesCitedLabel            = "References"
	SourcesCitedDescription      = "This article includes a list of source material, including documents and people, so you can follow the story further."
	SubjectSpecialistLabel       = "Subject Specialist"
	SubjectSpecialistDescription = "The journalist and/or newsroom have/has a deep knowledge of the topic, location or community group covered in this article."
)

var supported = []language.Tag{
	language.English,
	language.Spanish,
}

var matcher = language.NewMatcher(supported)

var translations = map[language.Tag]map[string]string{
	language.Spanish: {
		BadgeTitle:                   "THE TRUST PROJECT",
		PanelTitle:                   "Indicadores de credibilidad",
		OriginalReportingLabel:       "Reportaje original",
		OriginalReportingDescription: "Este artículo contiene información de primera mano recopilada por periodistas. Incluye entrevistas directas con fuentes y el análisis de documentos originales.",
		OnTheGroundLabel:             "Sobre el terreno",
		OnTheGroundDescription:       "Un periodista estuvo presente físicamente para informar desde algunos o todos los lugares que trata el artículo.",
		SourcesCitedLabel:            "Referencias",
		SourcesCitedDescription:      "Este artículo incluye una lista del material de origen, incluidos documentos y personas, para que pueda seguir la historia.",
		SubjectSpecialistLabel:       "Especialista en la materia",
		SubjectSpecialistDescription: "El periodista o la redacción tienen un conocimiento profundo del tema, el lugar o el grupo comunitario que trata este artículo.",
	},
}

func init() {
	for tag, messages := range translations {
		for key, value := range messages {
			_ = message.SetString(tag, key, value)
		}
	}
}

// Supported returns the language tags that have registered translations.
func Supported() []language.Tag {
	out := make([]language.Tag, len(supported))
	copy(out, supported)
	return out
}

// Match returns the best supported tag for a language preference such as
// "es", "es-MX" or an Accept-Language header value. Unknown input falls back
// to English.
func Match(pref string) language.Tag {
	pref = strings.TrimSpace(pref)
	if pref == "" {
		return language.English
	}
	tags, _, err := language.ParseAcceptLanguage(pref)
	if err != nil || len(tags) == 0 {
		return language.English
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return language.English
	}
	return supported[idx]
}

// Printer returns a message printer for the given language preference.
func Printer(pref string) *message.Printer {
	return message.NewPrinter(Match(pref))
}
