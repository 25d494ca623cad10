// Package assessoria is the top-level entry point: it loads the embedded
// site content and contact form and returns a ready page renderer.
package assessoria

import (
	"context"
	"fmt"
	"io/fs"

	"github.com/goliatone/go-assessoria/pkg/openapi"
	"github.com/goliatone/go-assessoria/pkg/render"
	"github.com/goliatone/go-assessoria/pkg/site"
)

// RenderOptions describes per-request overrides such as the open
// disclosures, the theme variant, and the contact form state.
type RenderOptions = render.RenderOptions

// NewPages loads the embedded content and the contact form model and builds
// the page renderer.
func NewPages(ctx context.Context, options ...render.Option) (*render.Pages, error) {
	content, err := site.Load(site.EmbeddedFS())
	if err != nil {
		return nil, fmt.Errorf("assessoria: load content: %w", err)
	}
	form, err := openapi.ContactForm(ctx)
	if err != nil {
		return nil, fmt.Errorf("assessoria: load contact form: %w", err)
	}
	return render.NewPages(content, form, options...)
}

// RenderPage renders one page with a throwaway renderer. Callers rendering
// more than once should keep the result of NewPages instead.
func RenderPage(ctx context.Context, slug string, opts RenderOptions, options ...render.Option) ([]byte, error) {
	pages, err := NewPages(ctx, options...)
	if err != nil {
		return nil, err
	}
	return pages.Render(ctx, slug, opts)
}

// EmbeddedTemplates exposes the built-in page templates so callers can copy
// or extend them and load the result through render.WithTemplatesFS.
func EmbeddedTemplates() fs.FS {
	return render.TemplatesFS()
}

// AssetsFS exposes the stylesheets and the progressive enhancement script.
//
// Typical mount:
//
//	mux.Handle("/static/",
//	  http.StripPrefix("/static/",
//	    http.FileServerFS(assessoria.AssetsFS()),
//	  ),
//	)
func AssetsFS() fs.FS {
	return render.AssetsFS()
}
