package openapi

import (
	_ "embed"
	"errors"
)

//go:embed contact.yaml
var contactDocument []byte

// ContactOperationID identifies the contact submission operation.
const ContactOperationID = "submitContact"

// Document wraps a raw OpenAPI payload and the name it was loaded under.
type Document struct {
	name string
	raw  []byte
}

// NewDocument constructs a Document while validating the inputs.
func NewDocument(name string, raw []byte) (Document, error) {
	if name == "" {
		return Document{}, errors.New("openapi: document name is required")
	}
	if len(raw) == 0 {
		return Document{}, errors.New("openapi: raw document is empty")
	}
	clone := append([]byte(nil), raw...)
	return Document{name: name, raw: clone}, nil
}

// ContactDocument returns the embedded contact operation document.
func ContactDocument() Document {
	return Document{name: "contact.yaml", raw: contactDocument}
}

// Name returns the document name.
func (d Document) Name() string {
	return d.name
}

// Raw returns a copy of the payload.
func (d Document) Raw() []byte {
	return append([]byte(nil), d.raw...)
}
