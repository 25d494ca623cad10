// Package model defines the typed contact form model consumed by the page
// renderer and the terminal form. Models are built from the contact OpenAPI
// operation (see pkg/openapi): property titles become labels, and the
// `x-placeholder`, `x-control`, `x-rows` and `x-order` extensions become
// renderer-facing attributes. Validation rules expose canonical identifiers
// (required, maxLength, email) with string parameters so renderers can map
// them onto HTML attributes without sacrificing deterministic JSON snapshots.
package model
