// Package theme describes the brand palette as a go-theme manifest and
// resolves a selection into the renderer configuration consumed by the page
// templates (tokens, CSS variables, template partials and asset URLs).
package theme

import (
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"

	gotheme "github.com/goliatone/go-theme"
)

const (
	DefaultName     = "assessoria"
	VariantDefault  = "default"
	VariantContrast = "contraste"
	AssetPrefix     = "/static"
)

// Asset keys of the manifest.
const (
	AssetStylesheet        = "stylesheet"
	AssetVariantStylesheet = "stylesheet.variant"
	AssetScript            = "script"
)

var (
	ErrUnknownTheme   = errors.New("theme: unknown theme")
	ErrUnknownVariant = errors.New("theme: unknown variant")
)

// Manifest returns the brand manifest.
func Manifest() *gotheme.Manifest {
	return &gotheme.Manifest{
		Name:    DefaultName,
		Version: "1.0.0",
		Tokens: map[string]string{
			"azul":           "#0a192f",
			"azul-profundo":  "#0f2746",
			"dourado":        "#cda434",
			"dourado-escuro": "#b9932d",
			"dourado-hover":  "#a08026",
			"font-display":   "'Playfair Display', serif",
			"font-body":      "'Inter', sans-serif",
		},
		Templates: map[string]string{
			"layout":        "layout.tpl",
			"page.home":     "home.tpl",
			"page.servicos": "servicos.tpl",
			"page.equipe":   "equipe.tpl",
			"page.faq":      "faq.tpl",
			"page.contato":  "contato.tpl",
			"page.404":      "404.tpl",
		},
		Assets: gotheme.Assets{
			Prefix: AssetPrefix,
			Files: map[string]string{
				AssetStylesheet: "css/site.css",
				AssetScript:     "js/site.js",
			},
		},
		Variants: map[string]gotheme.Variant{
			VariantContrast: {
				Tokens: map[string]string{
					"azul":           "#000000",
					"azul-profundo":  "#111111",
					"dourado":        "#ffd54a",
					"dourado-escuro": "#ffcc00",
					"dourado-hover":  "#ffe082",
				},
				Assets: gotheme.Assets{
					Files: map[string]string{
						AssetVariantStylesheet: "css/contraste.css",
					},
				},
			},
		},
	}
}

// Selector implements gotheme.ThemeSelector over a fixed set of manifests.
type Selector struct {
	manifests      map[string]*gotheme.Manifest
	defaultTheme   string
	defaultVariant string
}

var _ gotheme.ThemeSelector = (*Selector)(nil)

// NewSelector registers manifests (the brand manifest when none are given)
// and uses defaultVariant when a request does not name one.
func NewSelector(defaultVariant string, manifests ...*gotheme.Manifest) (*Selector, error) {
	if len(manifests) == 0 {
		manifests = []*gotheme.Manifest{Manifest()}
	}
	registry := gotheme.NewRegistry()
	s := &Selector{manifests: make(map[string]*gotheme.Manifest, len(manifests))}
	for _, m := range manifests {
		if m == nil {
			continue
		}
		if err := registry.Register(m); err != nil {
			return nil, fmt.Errorf("theme: register %s: %w", m.Name, err)
		}
		s.manifests[m.Name] = m
		if s.defaultTheme == "" {
			s.defaultTheme = m.Name
		}
	}
	if s.defaultTheme == "" {
		return nil, fmt.Errorf("%w: no manifests", ErrUnknownTheme)
	}
	if defaultVariant == "" {
		defaultVariant = VariantDefault
	}
	if !hasVariant(s.manifests[s.defaultTheme], defaultVariant) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownVariant, defaultVariant)
	}
	s.defaultVariant = defaultVariant
	return s, nil
}

// Select implements gotheme.ThemeSelector.
func (s *Selector) Select(name, variant string, _ ...gotheme.QueryOption) (*gotheme.Selection, error) {
	if name == "" {
		name = s.defaultTheme
	}
	manifest, ok := s.manifests[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTheme, name)
	}
	if variant == "" {
		variant = s.defaultVariant
	}
	if !hasVariant(manifest, variant) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownVariant, variant)
	}
	return &gotheme.Selection{Theme: name, Variant: variant, Manifest: manifest}, nil
}

// Variants lists the variants a theme accepts, default first.
func (s *Selector) Variants(name string) []string {
	if name == "" {
		name = s.defaultTheme
	}
	m, ok := s.manifests[name]
	if !ok {
		return nil
	}
	out := []string{VariantDefault}
	var extra []string
	for v := range m.Variants {
		if v != VariantDefault {
			extra = append(extra, v)
		}
	}
	sort.Strings(extra)
	return append(out, extra...)
}

func hasVariant(m *gotheme.Manifest, variant string) bool {
	if m == nil {
		return false
	}
	if variant == VariantDefault {
		return true
	}
	_, ok := m.Variants[variant]
	return ok
}

// RendererConfig flattens a selection: variant tokens, templates and asset
// files override the base manifest, and every token becomes a --name CSS
// variable.
func RendererConfig(sel *gotheme.Selection) *gotheme.RendererConfig {
	if sel == nil || sel.Manifest == nil {
		return nil
	}
	m := sel.Manifest
	tokens := mergeMaps(m.Tokens, nil)
	partials := mergeMaps(m.Templates, nil)
	files := mergeMaps(m.Assets.Files, nil)
	prefix := m.Assets.Prefix

	if v, ok := m.Variants[sel.Variant]; ok {
		tokens = mergeMaps(tokens, v.Tokens)
		partials = mergeMaps(partials, v.Templates)
		files = mergeMaps(files, v.Assets.Files)
		if v.Assets.Prefix != "" {
			prefix = v.Assets.Prefix
		}
	}

	vars := make(map[string]string, len(tokens))
	for key, value := range tokens {
		vars["--"+key] = value
	}

	return &gotheme.RendererConfig{
		Theme:    sel.Theme,
		Variant:  sel.Variant,
		Partials: partials,
		Tokens:   tokens,
		CSSVars:  vars,
		AssetURL: assetResolver(prefix, files),
	}
}

func assetResolver(prefix string, files map[string]string) func(string) string {
	return func(key string) string {
		if key == "" {
			return ""
		}
		file, ok := files[key]
		if !ok {
			file = key
		}
		if strings.HasPrefix(file, "http://") || strings.HasPrefix(file, "https://") {
			return file
		}
		return path.Join("/", prefix, file)
	}
}

// Stylesheets lists the stylesheet URLs of a selection in load order: the
// base stylesheet, then the variant one when the variant declares it.
func Stylesheets(sel *gotheme.Selection) []string {
	cfg := RendererConfig(sel)
	if cfg == nil {
		return nil
	}
	out := []string{cfg.AssetURL(AssetStylesheet)}
	if v, ok := sel.Manifest.Variants[sel.Variant]; ok {
		if _, declared := v.Assets.Files[AssetVariantStylesheet]; declared {
			out = append(out, cfg.AssetURL(AssetVariantStylesheet))
		}
	}
	return out
}

// CSSVarsStyle renders vars as a sorted declaration list for a style
// attribute or a :root block.
func CSSVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	var b strings.Builder
	for i, key := range keys {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(vars[key])
		b.WriteByte(';')
	}
	return b.String()
}

func mergeMaps(base, override map[string]string) map[string]string {
	out := make(map[string]string, len(base)+len(override))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range override {
		out[k] = v
	}
	return out
}
