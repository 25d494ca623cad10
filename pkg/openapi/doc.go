// Package openapi loads the embedded contact operation document with
// kin-openapi and turns its request body into a model.FormModel. The
// document doubles as the public description of the no-JS contact endpoint
// and is served verbatim at /openapi.yaml.
package openapi
