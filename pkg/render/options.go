package render

import "github.com/goliatone/go-assessoria/pkg/contact"

// RenderOptions describe per-request data that renderers use to customise
// their output without mutating the loaded content.
type RenderOptions struct {
	// Path is the request path. It drives the active nav link and is echoed
	// on the not-found page.
	Path string
	// Disclosure is the raw open-index list for the collapsible entries of
	// the page (see site.DisclosureParam).
	Disclosure string
	// Variant selects a theme variant; empty uses the configured default.
	Variant string

	// Values pre-populates the contact controls keyed by field name.
	Values map[string]string
	// Errors surfaces validation messages keyed by field name.
	Errors map[string]string
	// Feedback is the status line under the form.
	Feedback contact.Feedback
	// Submitting disables the submit control and swaps its label.
	Submitting bool
}

// ContactOptions copies a controller state into render options.
func ContactOptions(state contact.State) RenderOptions {
	return RenderOptions{
		Path:       "/contato",
		Values:     state.Form.Values(),
		Errors:     state.Errors.Map(),
		Feedback:   state.Feedback,
		Submitting: state.Submitting,
	}
}
