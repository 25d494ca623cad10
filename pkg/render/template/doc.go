// Package template defines the engine-agnostic template contract used by the
// page renderer. The pongo2 implementation lives in the gotemplate
// subpackage.
package template
