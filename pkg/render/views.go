package render

import (
	"fmt"
	"net/url"

	"github.com/goliatone/go-assessoria/pkg/contact"
	"github.com/goliatone/go-assessoria/pkg/model"
	"github.com/goliatone/go-assessoria/pkg/reveal"
	"github.com/goliatone/go-assessoria/pkg/site"
)

// PageData is the template context of every page. Templates receive it
// after a JSON round trip, so every value a template needs is computed here.
type PageData struct {
	Slug      string       `json:"slug"`
	Path      string       `json:"path"`
	Brand     site.Brand   `json:"brand"`
	Page      site.Page    `json:"page"`
	Nav       []NavItem    `json:"nav"`
	Social    []SocialItem `json:"social"`
	Copyright string       `json:"copyright"`
	Theme     ThemeView    `json:"theme"`
	LiveURL   string       `json:"liveUrl"`

	Home     *HomeView     `json:"home,omitempty"`
	Services *ServicesView `json:"services,omitempty"`
	Team     []MemberView  `json:"team,omitempty"`
	FAQ      *FAQView      `json:"faq,omitempty"`
	Contact  *ContactView  `json:"contact,omitempty"`
}

// NavItem is a navigation link with its active flag resolved.
type NavItem struct {
	Path   string `json:"path"`
	Label  string `json:"label"`
	Active bool   `json:"active"`
}

// SocialItem is a footer link with its icon markup.
type SocialItem struct {
	Href  string `json:"href"`
	Label string `json:"label"`
	Icon  string `json:"icon"`
}

// ThemeView carries the resolved theme for the layout.
type ThemeView struct {
	Name        string        `json:"name"`
	Variant     string        `json:"variant"`
	Style       string        `json:"style"`
	Stylesheets []string      `json:"stylesheets"`
	Script      string        `json:"script"`
	Variants    []VariantLink `json:"variants"`
}

// VariantLink switches the theme variant for the current page.
type VariantLink struct {
	Name   string `json:"name"`
	Href   string `json:"href"`
	Active bool   `json:"active"`
}

// CTAView is a call to action with its icon markup resolved.
type CTAView struct {
	Title string       `json:"title"`
	Text  string       `json:"text,omitempty"`
	Image string       `json:"image,omitempty"`
	Icon  string       `json:"icon,omitempty"`
	Link  site.NavLink `json:"link"`
}

// HomeView is the landing page content.
type HomeView struct {
	Hero  site.Hero    `json:"hero"`
	About site.Section `json:"about"`
	CTA   CTAView      `json:"cta"`
}

// ServicesView is the services page content.
type ServicesView struct {
	ExpandLabel   string        `json:"expandLabel"`
	CollapseLabel string        `json:"collapseLabel"`
	Items         []ServiceView `json:"items"`
	Panel         PanelView     `json:"panel"`
	CTA           CTAView       `json:"cta"`
}

// ServiceView is a service card with its disclosure state.
type ServiceView struct {
	ID           string `json:"id"`
	PanelID      string `json:"panelId"`
	Title        string `json:"title"`
	Icon         string `json:"icon"`
	Description  string `json:"description"`
	Details      string `json:"details"`
	Open         bool   `json:"open"`
	AriaExpanded string `json:"ariaExpanded"`
	ToggleLabel  string `json:"toggleLabel"`
	ToggleHref   string `json:"toggleHref"`
	Reveal       string `json:"reveal"`
}

// PanelView is the results panel.
type PanelView struct {
	Title   string       `json:"title"`
	Text    string       `json:"text"`
	Actions []ActionView `json:"actions"`
}

// ActionView is one results panel card.
type ActionView struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Icon        string `json:"icon"`
	Description string `json:"description"`
	Href        string `json:"href"`
	Reveal      string `json:"reveal"`
}

// MemberView is a team card.
type MemberView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Role        string `json:"role"`
	Photo       string `json:"photo"`
	PhotoAlt    string `json:"photoAlt"`
	Description string `json:"description"`
	Reveal      string `json:"reveal"`
}

// FAQView is the FAQ page content.
type FAQView struct {
	Items []QuestionView `json:"items"`
	CTA   CTAView        `json:"cta"`
}

// QuestionView is an FAQ entry with its disclosure state.
type QuestionView struct {
	ID           string `json:"id"`
	PanelID      string `json:"panelId"`
	Question     string `json:"question"`
	Answer       string `json:"answer"`
	Open         bool   `json:"open"`
	AriaExpanded string `json:"ariaExpanded"`
	ToggleHref   string `json:"toggleHref"`
	IconOpen     string `json:"iconOpen"`
	IconClosed   string `json:"iconClosed"`
	Reveal       string `json:"reveal"`
}

// ContactView is the contact page form.
type ContactView struct {
	Intro       string       `json:"intro"`
	Steps       []StepView   `json:"steps"`
	Action      string       `json:"action"`
	Method      string       `json:"method"`
	Fields      []FieldView  `json:"fields"`
	FormErrors  []string     `json:"formErrors,omitempty"`
	Feedback    FeedbackView `json:"feedback"`
	Submitting  bool         `json:"submitting"`
	SubmitLabel string       `json:"submitLabel"`
	Labels      SubmitLabels `json:"labels"`
	Reveal      string       `json:"reveal"`
}

// SubmitLabels are both texts of the submit control, for client-side swaps.
type SubmitLabels struct {
	Idle string `json:"idle"`
	Busy string `json:"busy"`
}

// StepView is one marker of the progress strip.
type StepView struct {
	Number int    `json:"number"`
	Label  string `json:"label"`
	Active bool   `json:"active"`
	Last   bool   `json:"last"`
}

// FieldView is one form control.
type FieldView struct {
	Name        string `json:"name"`
	ID          string `json:"id"`
	Label       string `json:"label"`
	Multiline   bool   `json:"multiline"`
	InputType   string `json:"inputType"`
	Placeholder string `json:"placeholder,omitempty"`
	Required    bool   `json:"required"`
	MaxLength   int    `json:"maxLength,omitempty"`
	Rows        int    `json:"rows,omitempty"`
	Mask        string `json:"mask,omitempty"`
	Value       string `json:"value"`
	Error       string `json:"error,omitempty"`
	ErrorID     string `json:"errorId"`
	Invalid     bool   `json:"invalid"`
}

// FeedbackView is the status line under the form.
type FeedbackView struct {
	Message string `json:"message"`
	Kind    string `json:"kind"`
	Visible bool   `json:"visible"`
	Role    string `json:"role"`
}

func ctaView(s *site.Site, cta site.CTA) CTAView {
	return CTAView{
		Title: cta.Title,
		Text:  cta.Text,
		Image: cta.Image,
		Icon:  s.Icon(cta.Icon),
		Link:  cta.Link,
	}
}

func revealAt(index int) string {
	delay := index
	if delay > reveal.MaxDelay {
		delay = reveal.MaxDelay
	}
	return reveal.Classes(reveal.Up, delay, false)
}

func servicesView(s *site.Site, path string, keep url.Values, open site.Disclosure) *ServicesView {
	view := &ServicesView{
		ExpandLabel:   s.Services.ExpandLabel,
		CollapseLabel: s.Services.CollapseLabel,
		CTA:           ctaView(s, s.Services.CTA),
	}
	for i, svc := range s.Services.Items {
		expanded := open.Expanded(i)
		view.Items = append(view.Items, ServiceView{
			ID:           fmt.Sprintf("servico-%d", i),
			PanelID:      fmt.Sprintf("servico-%d-detalhes", i),
			Title:        svc.Title,
			Icon:         s.Icon(svc.Icon),
			Description:  svc.Description,
			Details:      svc.Details,
			Open:         expanded,
			AriaExpanded: open.AriaExpanded(i),
			ToggleLabel:  s.Services.ToggleLabel(expanded),
			ToggleHref:   open.ToggleHref(path, keep, i),
			Reveal:       revealAt(i),
		})
	}
	view.Panel = PanelView{Title: s.Services.Panel.Title, Text: s.Services.Panel.Text}
	for i, act := range s.Services.Panel.Actions {
		view.Panel.Actions = append(view.Panel.Actions, ActionView{
			ID:          fmt.Sprintf("acao-%d", i),
			Title:       act.Title,
			Icon:        s.Icon(act.Icon),
			Description: act.Description,
			Href:        "/contato",
			Reveal:      revealAt(i),
		})
	}
	return view
}

func teamView(s *site.Site) []MemberView {
	out := make([]MemberView, 0, len(s.Team))
	for i, m := range s.Team {
		out = append(out, MemberView{
			ID:          fmt.Sprintf("membro-%d", i),
			Name:        m.Name,
			Role:        m.Role,
			Photo:       m.Photo,
			PhotoAlt:    m.PhotoAlt(),
			Description: m.Description,
			Reveal:      revealAt(i),
		})
	}
	return out
}

func faqView(s *site.Site, path string, keep url.Values, open site.Disclosure) *FAQView {
	view := &FAQView{CTA: ctaView(s, s.FAQ.CTA)}
	for i, q := range s.FAQ.Items {
		view.Items = append(view.Items, QuestionView{
			ID:           fmt.Sprintf("faq-%d", i),
			PanelID:      fmt.Sprintf("faq-%d-resposta", i),
			Question:     q.Question,
			Answer:       q.Answer,
			Open:         open.Expanded(i),
			AriaExpanded: open.AriaExpanded(i),
			ToggleHref:   open.ToggleHref(path, keep, i),
			IconOpen:     s.Icon("minus"),
			IconClosed:   s.Icon("plus"),
			Reveal:       revealAt(i),
		})
	}
	return view
}

func contactView(s *site.Site, form model.FormModel, opts RenderOptions) *ContactView {
	mapped := MapErrors(form, opts.Errors)

	view := &ContactView{
		Intro:        s.Contact.Intro,
		Action:       form.Endpoint,
		Method:       form.Method,
		FormErrors:   mapped.Form,
		Submitting:   opts.Submitting,
		SubmitLabel:  contact.State{Submitting: opts.Submitting}.SubmitLabel(),
		Labels:       SubmitLabels{Idle: contact.LabelSubmit, Busy: contact.LabelSubmitting},
		Reveal:       reveal.Classes(reveal.Up, 2, false),
		Feedback: FeedbackView{
			Message: opts.Feedback.Message,
			Kind:    string(opts.Feedback.Kind),
			Visible: opts.Feedback.Visible(),
			Role:    feedbackRole(opts.Feedback.Kind),
		},
	}
	if label := form.Metadata["submit-label"]; label != "" && !opts.Submitting {
		view.SubmitLabel = label
		view.Labels.Idle = label
	}

	active := 1
	switch {
	case opts.Submitting:
		active = 2
	case opts.Feedback.Kind == contact.FeedbackSuccess:
		active = 3
	}
	for i, label := range s.Contact.Steps {
		view.Steps = append(view.Steps, StepView{
			Number: i + 1,
			Label:  label,
			Active: i+1 <= active,
			Last:   i == len(s.Contact.Steps)-1,
		})
	}

	for _, f := range form.Fields {
		fv := FieldView{
			Name:        f.Name,
			ID:          f.Name,
			Label:       f.Label,
			Multiline:   f.Multiline(),
			InputType:   f.InputType(),
			Placeholder: f.Placeholder,
			Required:    f.Required,
			MaxLength:   f.MaxLength,
			Rows:        f.Rows,
			Value:       opts.Values[f.Name],
			Error:       mapped.Fields[f.Name],
			ErrorID:     f.Name + "-error",
		}
		if f.Control == model.ControlTel {
			fv.Mask = "phone"
		}
		fv.Invalid = fv.Error != ""
		view.Fields = append(view.Fields, fv)
	}
	return view
}

func feedbackRole(kind contact.FeedbackKind) string {
	if kind == contact.FeedbackError {
		return "alert"
	}
	return "status"
}
