// Package site serves documents as HTML pages with their credibility badge.
package site

import (
	"bytes"
	"context"
	"errors"
	"html/template"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/ziadkadry99/credind/internal/badge"
	"github.com/ziadkadry99/credind/internal/disclosure"
	"github.com/ziadkadry99/credind/internal/editor"
	"github.com/ziadkadry99/credind/internal/meta"
	"github.com/ziadkadry99/credind/internal/metrics"
)

// Options configures a Renderer.
type Options struct {
	Lang    string
	Metrics *metrics.Metrics
	Logger  zerolog.Logger
}

// Renderer turns stored documents into badge fragments and full pages.
type Renderer struct {
	editor   *editor.Editor
	composer *badge.Composer
	metrics  *metrics.Metrics
	md       goldmark.Markdown
	page     *template.Template
	lang     string
	logger   zerolog.Logger
}

type pageData struct {
	ID      string
	Lang    string
	Title   string
	Content template.HTML
	Badge   template.HTML
}

// NewRenderer creates a Renderer. Document content is markdown; raw HTML in
// it is passed through as authored.
func NewRenderer(ed *editor.Editor, composer *badge.Composer, opts Options) *Renderer {
	if opts.Lang == "" {
		opts.Lang = "en"
	}
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(html.WithUnsafe()),
	)
	return &Renderer{
		editor:   ed,
		composer: composer,
		metrics:  opts.Metrics,
		md:       md,
		page:     template.Must(template.New("page").Parse(pageTemplate)),
		lang:     opts.Lang,
		logger:   opts.Logger.With().Str("component", "site").Logger(),
	}
}

// Badge renders the badge for a document. It returns an empty fragment when
// nothing is selected.
func (rd *Renderer) Badge(ctx context.Context, docID string) (template.HTML, error) {
	start := time.Now()
	state, defs, err := rd.editor.State(ctx, docID)
	if err != nil {
		return "", err
	}
	out := rd.composer.Render(defs, state)
	rd.metrics.ObserveRender(out == "", time.Since(start))
	return out, nil
}

// Page renders a complete HTML page for a document.
func (rd *Renderer) Page(ctx context.Context, docID string) ([]byte, error) {
	doc, err := rd.editor.Store().GetDocument(ctx, docID)
	if err != nil {
		return nil, err
	}

	var content bytes.Buffer
	if err := rd.md.Convert([]byte(doc.Content), &content); err != nil {
		// Content is author-controlled; show the page without it.
		rd.logger.Warn().Err(err).Str("doc_id", docID).Msg("converting content")
		content.Reset()
	}

	badgeHTML, err := rd.Badge(ctx, docID)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	err = rd.page.Execute(&buf, pageData{
		ID:      doc.ID,
		Lang:    rd.lang,
		Title:   doc.Title,
		Content: template.HTML(content.String()),
		Badge:   badgeHTML,
	})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// RegisterRoutes mounts the page, fragment and asset endpoints.
func RegisterRoutes(r chi.Router, rd *Renderer) {
	r.Get("/documents/{id}", rd.handlePage)
	r.Get("/documents/{id}/badge", rd.handleBadge)
	r.Get("/assets/frontend.js", disclosure.ServeScript)
	r.Get("/assets/frontend.css", disclosure.ServeStyles)
	r.Get("/assets/site.css", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/css; charset=utf-8")
		w.Write([]byte(cssContent))
	})
}

func (rd *Renderer) handlePage(w http.ResponseWriter, r *http.Request) {
	body, err := rd.Page(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		rd.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(body)
}

func (rd *Renderer) handleBadge(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := rd.editor.Store().GetDocument(r.Context(), id); err != nil {
		rd.writeError(w, err)
		return
	}
	out, err := rd.Badge(r.Context(), id)
	if err != nil {
		rd.writeError(w, err)
		return
	}
	if out == "" {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(out))
}

func (rd *Renderer) writeError(w http.ResponseWriter, err error) {
	if errors.Is(err, meta.ErrNotFound) {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	rd.logger.Error().Err(err).Msg("rendering document")
	http.Error(w, "internal error", http.StatusInternalServerError)
}
