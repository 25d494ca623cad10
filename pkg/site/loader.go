package site

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalidContent reports content that parsed but is incomplete or
// inconsistent.
var ErrInvalidContent = errors.New("site: invalid content")

// Load reads ContentFile from fsys, validates it and sanitizes the icon and
// inline markup. A nil fsys loads the embedded content.
func Load(fsys fs.FS) (*Site, error) {
	if fsys == nil {
		fsys = EmbeddedFS()
	}
	data, err := fs.ReadFile(fsys, ContentFile)
	if err != nil {
		return nil, fmt.Errorf("site: read %s: %w", ContentFile, err)
	}
	return Parse(data)
}

// Parse decodes a YAML content document.
func Parse(data []byte) (*Site, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, fmt.Errorf("%w: document is empty", ErrInvalidContent)
	}

	var s Site
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("site: parse %s: %w", ContentFile, err)
	}
	if err := normalise(&s); err != nil {
		return nil, err
	}
	return &s, nil
}

// MustLoad loads the embedded content and panics on error. Useful for tests.
func MustLoad() *Site {
	s, err := Load(nil)
	if err != nil {
		panic(err)
	}
	return s
}

func normalise(s *Site) error {
	var problems []string
	fail := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	if strings.TrimSpace(s.Brand.Name) == "" {
		fail("brand.name is required")
	}
	if !strings.Contains(s.Brand.Copyright, "%d") {
		fail("brand.copyright must contain a %%d year placeholder")
	}

	icons := make(map[string]string, len(s.Icons))
	for name, markup := range s.Icons {
		cleaned := sanitizeIconMarkup(markup)
		if cleaned == "" {
			fail("icon %q is empty after sanitizing", name)
			continue
		}
		icons[name] = cleaned
	}
	s.Icons = icons
	requireIcon := func(where, name string) {
		if name == "" {
			return
		}
		if _, ok := icons[name]; !ok {
			fail("%s references unknown icon %q", where, name)
		}
	}

	seenSlug := make(map[string]struct{}, len(s.Pages))
	seenPath := make(map[string]struct{}, len(s.Pages))
	for i, p := range s.Pages {
		if p.Slug == "" || p.Path == "" || p.Title == "" {
			fail("pages[%d] needs slug, path and title", i)
			continue
		}
		if _, dup := seenSlug[p.Slug]; dup {
			fail("duplicate page slug %q", p.Slug)
		}
		if _, dup := seenPath[p.Path]; dup {
			fail("duplicate page path %q", p.Path)
		}
		seenSlug[p.Slug] = struct{}{}
		seenPath[p.Path] = struct{}{}
	}
	if len(s.Nav) == 0 {
		fail("nav must list at least one link")
	}
	for _, link := range s.Nav {
		if _, ok := seenPath[link.Path]; !ok {
			fail("nav link %q points to unknown page %q", link.Label, link.Path)
		}
	}

	for _, link := range s.Social {
		requireIcon("social "+link.Name, link.Icon)
	}
	for i, svc := range s.Services.Items {
		if svc.Title == "" || svc.Description == "" {
			fail("services.items[%d] needs title and description", i)
		}
		requireIcon("service "+svc.Title, svc.Icon)
	}
	if s.Services.ExpandLabel == "" || s.Services.CollapseLabel == "" {
		fail("services needs expand and collapse labels")
	}
	for _, act := range s.Services.Panel.Actions {
		requireIcon("action "+act.Title, act.Icon)
	}
	requireIcon("faq cta", s.FAQ.CTA.Icon)
	for i, q := range s.FAQ.Items {
		if strings.TrimSpace(q.Question) == "" || strings.TrimSpace(q.Answer) == "" {
			fail("faq.items[%d] needs question and answer", i)
		}
	}
	for i, m := range s.Team {
		if m.Name == "" || m.Role == "" {
			fail("team[%d] needs name and role", i)
		}
	}

	s.Home.About.Body = sanitizeInlineMarkup(s.Home.About.Body)

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidContent, strings.Join(problems, "; "))
	}
	return nil
}
