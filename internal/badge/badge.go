// Package badge composes the credibility badge markup for a document from
// the catalog and the document's resolved indicator state.
package badge

import (
	"bytes"
	"html/template"

	"github.com/ziadkadry99/credind/internal/indicator"
	"github.com/ziadkadry99/credind/internal/sanitize"
)

// Fragments holds the two halves of a badge.
type Fragments struct {
	// Closed is the compact summary container: one list item per selected
	// indicator followed by the badge title.
	Closed template.HTML
	// Open is the detail container: one table row per selected indicator.
	Open template.HTML
	// Slugs lists the rendered indicators in catalog order.
	Slugs []string
}

// Options configures a Composer.
type Options struct {
	// Title is shown in the closed container, e.g. "THE TRUST PROJECT".
	Title string
	// Trustmark is an optional SVG shown before the title.
	Trustmark string
}

// Composer builds badge markup.
type Composer struct {
	title     string
	trustmark template.HTML
}

// NewComposer creates a Composer. The trustmark is sanitized once here.
func NewComposer(opts Options) *Composer {
	return &Composer{
		title:     opts.Title,
		trustmark: template.HTML(sanitize.SVG(opts.Trustmark)),
	}
}

type item struct {
	Slug        string
	Label       string
	Description string
	Icon        template.HTML
}

type fragmentData struct {
	Items     []item
	Title     string
	Trustmark template.HTML
}

type wrapperData struct {
	Closed template.HTML
	Open   template.HTML
}

var tmpl = template.Must(template.New("badge").Parse(`
{{- define "closed" -}}
<div class="credibility-indicators__closed"><ul>
{{- range .Items}}<li data-indicator="{{.Slug}}">{{.Icon}} <span>{{.Label}}</span></li>{{end -}}
</ul><h4 class="credibility-indicators__closed__label">{{.Trustmark}}{{.Title}}</h4></div>
{{- end -}}

{{- define "open" -}}
<div class="credibility-indicators__open"><table>
{{- range .Items}}<tr data-indicator="{{.Slug}}"><td class="credibility-indicators__open__icon">{{.Icon}}</td><td class="credibility-indicators__open__label">{{.Label}}</td><td class="credibility-indicators__open__description">{{.Description}}</td></tr>{{end -}}
</table></div>
{{- end -}}

{{- define "wrapper" -}}
<div class="credibility-indicators__wrapper">{{.Closed}}{{.Open}}</div>
{{- end -}}
`))

// Compose returns the closed and open fragments for the selected
// indicators, in catalog order. The second result is false when nothing is
// selected; callers must then render nothing at all.
func (c *Composer) Compose(defs []indicator.Definition, state indicator.State) (Fragments, bool) {
	var items []item
	for _, d := range defs {
		if !state[d.Slug] {
			continue
		}
		items = append(items, item{
			Slug:        d.Slug,
			Label:       d.Label,
			Description: d.Description,
			Icon:        template.HTML(sanitize.SVG(d.Icon)),
		})
	}
	if len(items) == 0 {
		return Fragments{}, false
	}

	data := fragmentData{Items: items, Title: c.title, Trustmark: c.trustmark}
	closed, err := execute("closed", data)
	if err != nil {
		return Fragments{}, false
	}
	open, err := execute("open", data)
	if err != nil {
		return Fragments{}, false
	}

	slugs := make([]string, len(items))
	for i, it := range items {
		slugs[i] = it.Slug
	}
	return Fragments{Closed: closed, Open: open, Slugs: slugs}, true
}

// Render returns the complete badge wrapper, or "" when nothing is selected.
func (c *Composer) Render(defs []indicator.Definition, state indicator.State) template.HTML {
	frags, ok := c.Compose(defs, state)
	if !ok {
		return ""
	}
	out, err := execute("wrapper", wrapperData{Closed: frags.Closed, Open: frags.Open})
	if err != nil {
		return ""
	}
	return out
}

func execute(name string, data any) (template.HTML, error) {
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}
