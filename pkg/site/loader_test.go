package site_test

import (
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-assessoria/pkg/site"
)

func TestLoad_EmbeddedContent(t *testing.T) {
	s, err := site.Load(nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	var navPaths []string
	for _, link := range s.Nav {
		navPaths = append(navPaths, link.Path)
	}
	if diff := cmp.Diff([]string{"/", "/servicos", "/equipe", "/faq", "/contato"}, navPaths); diff != "" {
		t.Fatalf("nav mismatch (-want +got):\n%s", diff)
	}

	if got := len(s.Services.Items); got != 4 {
		t.Fatalf("services = %d, want 4", got)
	}
	if got := len(s.Services.Panel.Actions); got != 3 {
		t.Fatalf("actions = %d, want 3", got)
	}
	if got := len(s.Team); got != 3 {
		t.Fatalf("team = %d, want 3", got)
	}
	if got := len(s.FAQ.Items); got != 5 {
		t.Fatalf("faq = %d, want 5", got)
	}
	if diff := cmp.Diff([]string{"Seus Dados", "Envio", "Contato"}, s.Contact.Steps); diff != "" {
		t.Fatalf("steps mismatch (-want +got):\n%s", diff)
	}

	page, ok := s.Page("contato")
	if !ok || page.Heading != "Fale Conosco" || page.Subtitle == "" {
		t.Fatalf("contato page = %+v, %v", page, ok)
	}
	if byPath, ok := s.PageByPath("/faq"); !ok || byPath.Slug != "faq" {
		t.Fatalf("PageByPath(/faq) = %+v, %v", byPath, ok)
	}

	if got := s.Brand.CopyrightFor(2026); got != "© 2026 Assessoria Parlamentar — Todos os direitos reservados." {
		t.Fatalf("copyright = %q", got)
	}
	if got := s.Social[0].AriaLabel(); got != "Siga-nos no LinkedIn" {
		t.Fatalf("aria label = %q", got)
	}
	if got := s.Team[1].PhotoAlt(); got != "Foto de João Pereira" {
		t.Fatalf("photo alt = %q", got)
	}
	if !strings.Contains(s.Home.About.Body, "<strong>Assessoria Parlamentar</strong>") {
		t.Fatalf("inline emphasis should survive sanitizing: %q", s.Home.About.Body)
	}
	if s.Services.ToggleLabel(false) != "Saiba mais" || s.Services.ToggleLabel(true) != "Mostrar menos" {
		t.Fatalf("toggle labels wrong")
	}
}

func TestLoad_IconsAreSanitized(t *testing.T) {
	s := site.MustLoad()
	for name, markup := range s.Icons {
		if !strings.HasPrefix(markup, "<svg") {
			t.Fatalf("icon %q lost its svg root: %q", name, markup)
		}
	}

	doc := minimalContent(`
icons:
  law: <svg viewBox="0 0 24 24" onload="alert(1)"><script>alert('x')</script><path d="M0 0h24v24H0z"/></svg>
`)
	parsed, err := site.Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	got := parsed.Icon("law")
	if strings.Contains(got, "script") || strings.Contains(got, "onload") {
		t.Fatalf("unsafe markup kept: %q", got)
	}
	if !strings.Contains(got, "<path") {
		t.Fatalf("path element dropped: %q", got)
	}
}

func TestParse_ReportsInvalidContent(t *testing.T) {
	cases := map[string]string{
		"empty":         "",
		"unknown icon":  minimalContent("") + "\nsocial:\n  - { name: X, href: '#', icon: nope }\n",
		"nav dead link": strings.Replace(minimalContent(""), "path: /servicos, label: Serviços", "path: /nada, label: Nada", 1),
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := site.Parse([]byte(doc))
			if !errors.Is(err, site.ErrInvalidContent) {
				t.Fatalf("expected ErrInvalidContent, got %v", err)
			}
		})
	}
}

func TestLoad_FromFS(t *testing.T) {
	fsys := fstest.MapFS{
		site.ContentFile: &fstest.MapFile{Data: []byte(minimalContent(""))},
	}
	s, err := site.Load(fsys)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Brand.Name != "Assessoria" {
		t.Fatalf("brand = %+v", s.Brand)
	}

	if _, err := site.Load(fstest.MapFS{}); err == nil {
		t.Fatalf("expected error for missing content file")
	}
}

func minimalContent(extra string) string {
	return `brand:
  name: Assessoria
  copyright: "© %d Assessoria"
nav:
  - { path: /, label: Home }
  - { path: /servicos, label: Serviços }
pages:
  - { slug: home, path: /, title: Home }
  - { slug: servicos, path: /servicos, title: Serviços }
services:
  expandLabel: Saiba mais
  collapseLabel: Mostrar menos
` + extra
}
