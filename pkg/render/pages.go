package render

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strings"
	"time"

	gotheme "github.com/goliatone/go-theme"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/goliatone/go-assessoria/pkg/model"
	rendertemplate "github.com/goliatone/go-assessoria/pkg/render/template"
	"github.com/goliatone/go-assessoria/pkg/render/template/gotemplate"
	"github.com/goliatone/go-assessoria/pkg/site"
	"github.com/goliatone/go-assessoria/pkg/theme"
)

// Page slugs. Each one maps to a "page.<slug>" template in the theme.
const (
	SlugHome     = "home"
	SlugServicos = "servicos"
	SlugEquipe   = "equipe"
	SlugFAQ      = "faq"
	SlugContato  = "contato"
	SlugNotFound = "404"
)

// VariantParam is the query parameter that selects a theme variant.
const VariantParam = "tema"

// DefaultLiveURL is where the contact page script opens its live session.
const DefaultLiveURL = "/contato/ao-vivo"

// ErrUnknownPage is returned for slugs that have no content.
var ErrUnknownPage = errors.New("render: unknown page")

// Slugs lists the routable pages in navigation order.
func Slugs() []string {
	return []string{SlugHome, SlugServicos, SlugEquipe, SlugFAQ, SlugContato}
}

// Option configures Pages.
type Option func(*config)

type config struct {
	templateFS       fs.FS
	templatesDir     string
	templateRenderer rendertemplate.TemplateRenderer
	selector         *theme.Selector
	now              func() time.Time
	liveURL          string
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk. Files there
// shadow the bundled templates of the same name, so a directory may override
// a single page and keep the shared layout and partials.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		cfg.templatesDir = strings.TrimSpace(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithSelector sets the theme selector.
func WithSelector(selector *theme.Selector) Option {
	return func(cfg *config) {
		if selector != nil {
			cfg.selector = selector
		}
	}
}

// WithClock overrides the clock used for the footer year.
func WithClock(now func() time.Time) Option {
	return func(cfg *config) {
		if now != nil {
			cfg.now = now
		}
	}
}

// WithLiveURL overrides the live contact session endpoint.
func WithLiveURL(u string) Option {
	return func(cfg *config) {
		cfg.liveURL = strings.TrimSpace(u)
	}
}

// Pages renders the site pages inside the shared shell.
type Pages struct {
	templates rendertemplate.TemplateRenderer
	content   *site.Site
	form      model.FormModel
	themes    *theme.Selector
	now       func() time.Time
	liveURL   string
}

var _ Renderer = (*Pages)(nil)

// NewPages constructs the page renderer for the given content and contact
// form model.
func NewPages(content *site.Site, form model.FormModel, options ...Option) (*Pages, error) {
	if content == nil {
		return nil, errors.New("render: site content is required")
	}

	cfg := config{
		templateFS: TemplatesFS(),
		now:        time.Now,
		liveURL:    DefaultLiveURL,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithBaseDir(cfg.templatesDir),
			gotemplate.WithFS(cfg.templateFS),
		)
		if err != nil {
			return nil, fmt.Errorf("render: configure template renderer: %w", err)
		}
		renderer = engine
	}

	selector := cfg.selector
	if selector == nil {
		var err error
		selector, err = theme.NewSelector("")
		if err != nil {
			return nil, fmt.Errorf("render: configure theme: %w", err)
		}
	}

	return &Pages{
		templates: renderer,
		content:   content,
		form:      form,
		themes:    selector,
		now:       cfg.now,
		liveURL:   cfg.liveURL,
	}, nil
}

func (p *Pages) Name() string {
	return "pages"
}

func (p *Pages) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render renders the page registered under slug.
func (p *Pages) Render(ctx context.Context, slug string, options RenderOptions) ([]byte, error) {
	_, span := otel.Tracer("github.com/goliatone/go-assessoria/pkg/render").Start(ctx, "render.page")
	defer span.End()
	span.SetAttributes(attribute.String("page.slug", slug))

	data, tpl, err := p.Data(slug, options)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	out, err := p.templates.RenderTemplate(tpl, data)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("render: page %s: %w", slug, err)
	}
	return []byte(out), nil
}

// Data builds the template context for slug and resolves the template that
// renders it.
func (p *Pages) Data(slug string, options RenderOptions) (PageData, string, error) {
	page, ok := p.page(slug)
	if !ok {
		return PageData{}, "", fmt.Errorf("%w: %s", ErrUnknownPage, slug)
	}

	sel, err := p.themes.Select("", options.Variant)
	if errors.Is(err, theme.ErrUnknownVariant) {
		sel, err = p.themes.Select("", "")
	}
	if err != nil {
		return PageData{}, "", fmt.Errorf("render: select theme: %w", err)
	}
	cfg := theme.RendererConfig(sel)
	stylesheets := theme.Stylesheets(sel)

	tpl := cfg.Partials["page."+slug]
	if tpl == "" {
		return PageData{}, "", fmt.Errorf("render: theme %s has no template for page %s", cfg.Theme, slug)
	}

	path := options.Path
	if path == "" || slug != SlugNotFound {
		path = page.Path
	}

	data := PageData{
		Slug:      slug,
		Path:      path,
		Brand:     p.content.Brand,
		Page:      page,
		Nav:       p.nav(page.Path),
		Social:    p.social(),
		Copyright: p.content.Brand.CopyrightFor(p.now().Year()),
		Theme:     p.themeView(cfg, stylesheets, path),
		LiveURL:   p.liveURL,
	}

	var keep url.Values
	if cfg.Variant != "" && cfg.Variant != theme.VariantDefault {
		keep = url.Values{VariantParam: {cfg.Variant}}
	}

	switch slug {
	case SlugHome:
		data.Home = &HomeView{
			Hero:  p.content.Home.Hero,
			About: p.content.Home.About,
			CTA:   ctaView(p.content, p.content.Home.CTA),
		}
	case SlugServicos:
		open := site.ParseDisclosure(options.Disclosure, len(p.content.Services.Items))
		data.Services = servicesView(p.content, page.Path, keep, open)
	case SlugEquipe:
		data.Team = teamView(p.content)
	case SlugFAQ:
		open := site.ParseDisclosure(options.Disclosure, len(p.content.FAQ.Items))
		data.FAQ = faqView(p.content, page.Path, keep, open)
	case SlugContato:
		data.Contact = contactView(p.content, p.form, options)
	}
	return data, tpl, nil
}

func (p *Pages) page(slug string) (site.Page, bool) {
	if slug == SlugNotFound {
		nf := p.content.NotFound
		nf.Slug = SlugNotFound
		return nf, true
	}
	return p.content.Page(slug)
}

func (p *Pages) nav(active string) []NavItem {
	out := make([]NavItem, 0, len(p.content.Nav))
	for _, link := range p.content.Nav {
		out = append(out, NavItem{
			Path:   link.Path,
			Label:  link.Label,
			Active: link.Path == active,
		})
	}
	return out
}

func (p *Pages) social() []SocialItem {
	out := make([]SocialItem, 0, len(p.content.Social))
	for _, link := range p.content.Social {
		out = append(out, SocialItem{
			Href:  link.Href,
			Label: link.AriaLabel(),
			Icon:  p.content.Icon(link.Icon),
		})
	}
	return out
}

func (p *Pages) themeView(cfg *gotheme.RendererConfig, stylesheets []string, path string) ThemeView {
	view := ThemeView{
		Name:        cfg.Theme,
		Variant:     cfg.Variant,
		Style:       theme.CSSVarsStyle(cfg.CSSVars),
		Stylesheets: stylesheets,
		Script:      cfg.AssetURL(theme.AssetScript),
	}
	for _, name := range p.themes.Variants(cfg.Theme) {
		href := path
		if name != theme.VariantDefault {
			href = path + "?" + url.Values{VariantParam: {name}}.Encode()
		}
		view.Variants = append(view.Variants, VariantLink{
			Name:   name,
			Href:   href,
			Active: name == cfg.Variant,
		})
	}
	return view
}
