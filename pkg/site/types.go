package site

import "fmt"

// Site is the complete brochure content.
type Site struct {
	Brand    Brand             `yaml:"brand" json:"brand"`
	Nav      []NavLink         `yaml:"nav" json:"nav"`
	Social   []SocialLink      `yaml:"social" json:"social"`
	Pages    []Page            `yaml:"pages" json:"pages"`
	Home     Home              `yaml:"home" json:"home"`
	Services Services          `yaml:"services" json:"services"`
	Team     []Member          `yaml:"team" json:"team"`
	FAQ      FAQ               `yaml:"faq" json:"faq"`
	Contact  Contact           `yaml:"contact" json:"contact"`
	NotFound Page              `yaml:"notFound" json:"notFound"`
	Icons    map[string]string `yaml:"icons" json:"-"`
}

// Brand is the wordmark and footer copy.
type Brand struct {
	Name      string `yaml:"name" json:"name"`
	Accent    string `yaml:"accent" json:"accent"`
	Title     string `yaml:"title" json:"title"`
	Copyright string `yaml:"copyright" json:"copyright"`
	MenuLabel string `yaml:"menuLabel" json:"menuLabel"`
}

// CopyrightFor formats the footer line for year.
func (b Brand) CopyrightFor(year int) string {
	return fmt.Sprintf(b.Copyright, year)
}

// NavLink is one entry of the top navigation.
type NavLink struct {
	Path  string `yaml:"path" json:"path"`
	Label string `yaml:"label" json:"label"`
}

// SocialLink is a footer icon link.
type SocialLink struct {
	Name string `yaml:"name" json:"name"`
	Href string `yaml:"href" json:"href"`
	Icon string `yaml:"icon" json:"icon"`
}

// AriaLabel is the accessible name of the link.
func (s SocialLink) AriaLabel() string {
	return "Siga-nos no " + s.Name
}

// Page is the per-route document title and header copy.
type Page struct {
	Slug     string   `yaml:"slug" json:"slug"`
	Path     string   `yaml:"path" json:"path"`
	Title    string   `yaml:"title" json:"title"`
	Heading  string   `yaml:"heading" json:"heading,omitempty"`
	Subtitle string   `yaml:"subtitle" json:"subtitle,omitempty"`
	Link     *NavLink `yaml:"link" json:"link,omitempty"`
}

// Home is the landing page copy.
type Home struct {
	Hero  Hero    `yaml:"hero" json:"hero"`
	About Section `yaml:"about" json:"about"`
	CTA   CTA     `yaml:"cta" json:"cta"`
}

// Hero is the full-height banner of the home page.
type Hero struct {
	Lines    []string `yaml:"lines" json:"lines"`
	Subtitle string   `yaml:"subtitle" json:"subtitle"`
	Image    string   `yaml:"image" json:"image"`
	Link     NavLink  `yaml:"link" json:"link"`
}

// Section is a titled block of copy. Body may carry inline emphasis markup.
type Section struct {
	Title string  `yaml:"title" json:"title"`
	Body  string  `yaml:"body" json:"body"`
	Link  NavLink `yaml:"link" json:"link"`
}

// CTA is a call-to-action band.
type CTA struct {
	Title string  `yaml:"title" json:"title"`
	Text  string  `yaml:"text" json:"text,omitempty"`
	Image string  `yaml:"image" json:"image,omitempty"`
	Icon  string  `yaml:"icon" json:"icon,omitempty"`
	Link  NavLink `yaml:"link" json:"link"`
}

// Services is the services page content.
type Services struct {
	ExpandLabel   string    `yaml:"expandLabel" json:"expandLabel"`
	CollapseLabel string    `yaml:"collapseLabel" json:"collapseLabel"`
	Items         []Service `yaml:"items" json:"items"`
	Panel         Panel     `yaml:"panel" json:"panel"`
	CTA           CTA       `yaml:"cta" json:"cta"`
}

// ToggleLabel is the details button text for the given state.
func (s Services) ToggleLabel(open bool) string {
	if open {
		return s.CollapseLabel
	}
	return s.ExpandLabel
}

// Service is one service card.
type Service struct {
	Title       string `yaml:"title" json:"title"`
	Icon        string `yaml:"icon" json:"icon"`
	Description string `yaml:"description" json:"description"`
	Details     string `yaml:"details" json:"details"`
}

// Panel is the results panel with its action cards.
type Panel struct {
	Title   string   `yaml:"title" json:"title"`
	Text    string   `yaml:"text" json:"text"`
	Actions []Action `yaml:"actions" json:"actions"`
}

// Action is a card linking to the contact page.
type Action struct {
	Title       string `yaml:"title" json:"title"`
	Icon        string `yaml:"icon" json:"icon"`
	Description string `yaml:"description" json:"description"`
}

// Member is a team member card.
type Member struct {
	Name        string `yaml:"name" json:"name"`
	Role        string `yaml:"role" json:"role"`
	Photo       string `yaml:"photo" json:"photo"`
	Description string `yaml:"description" json:"description"`
}

// PhotoAlt is the alt text of the member photo.
func (m Member) PhotoAlt() string {
	return "Foto de " + m.Name
}

// FAQ is the FAQ page content.
type FAQ struct {
	Items []Question `yaml:"items" json:"items"`
	CTA   CTA        `yaml:"cta" json:"cta"`
}

// Question is one FAQ entry.
type Question struct {
	Question string `yaml:"question" json:"question"`
	Answer   string `yaml:"answer" json:"answer"`
}

// Contact is the contact page copy around the form.
type Contact struct {
	Intro string   `yaml:"intro" json:"intro"`
	Steps []string `yaml:"steps" json:"steps"`
}

// Page returns the page registered under slug.
func (s *Site) Page(slug string) (Page, bool) {
	if s == nil {
		return Page{}, false
	}
	for _, p := range s.Pages {
		if p.Slug == slug {
			return p, true
		}
	}
	return Page{}, false
}

// PageByPath returns the page served at path.
func (s *Site) PageByPath(path string) (Page, bool) {
	if s == nil {
		return Page{}, false
	}
	for _, p := range s.Pages {
		if p.Path == path {
			return p, true
		}
	}
	return Page{}, false
}

// Icon returns the sanitized SVG markup registered under name.
func (s *Site) Icon(name string) string {
	if s == nil {
		return ""
	}
	return s.Icons[name]
}
