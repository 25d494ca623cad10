package openapi

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-assessoria/pkg/model"
)

// ErrOperationNotFound is returned when the document has no operation with
// the requested id.
var ErrOperationNotFound = errors.New("openapi: operation not found")

var preferredMediaTypes = []string{
	"application/x-www-form-urlencoded",
	"multipart/form-data",
	"application/json",
}

// Parse loads and validates doc.
func Parse(ctx context.Context, doc Document) (*openapi3.T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(doc.raw) == 0 {
		return nil, errors.New("openapi: document payload is empty")
	}

	loader := &openapi3.Loader{Context: ctx}
	spec, err := loader.LoadFromData(doc.raw)
	if err != nil {
		return nil, fmt.Errorf("openapi: load %s: %w", doc.name, err)
	}
	if spec.Paths == nil || spec.Paths.Len() == 0 {
		return nil, fmt.Errorf("openapi: %s does not contain any paths", doc.name)
	}
	if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
		return nil, fmt.Errorf("openapi: validate %s: %w", doc.name, err)
	}
	return spec, nil
}

// BuildForm converts the request body of operationID into a FormModel.
func BuildForm(spec *openapi3.T, operationID string) (model.FormModel, error) {
	if spec == nil || spec.Paths == nil {
		return model.FormModel{}, errors.New("openapi: spec is nil")
	}

	for path, item := range spec.Paths.Map() {
		if item == nil {
			continue
		}
		for method, op := range item.Operations() {
			if op == nil || op.OperationID != operationID {
				continue
			}
			return buildFromOperation(strings.ToUpper(method), path, op)
		}
	}
	return model.FormModel{}, fmt.Errorf("%w: %s", ErrOperationNotFound, operationID)
}

// ContactForm parses the embedded contact document and builds its form.
func ContactForm(ctx context.Context) (model.FormModel, error) {
	spec, err := Parse(ctx, ContactDocument())
	if err != nil {
		return model.FormModel{}, err
	}
	return BuildForm(spec, ContactOperationID)
}

func buildFromOperation(method, path string, op *openapi3.Operation) (model.FormModel, error) {
	form := model.FormModel{
		OperationID: op.OperationID,
		Endpoint:    path,
		Method:      method,
		Summary:     op.Summary,
		Description: op.Description,
		Metadata:    model.MetadataFromExtensions(op.Extensions),
	}

	mediaType, schemaRef := requestSchema(op.RequestBody)
	if schemaRef == nil || schemaRef.Value == nil {
		return model.FormModel{}, fmt.Errorf("openapi: operation %s has no request body schema", op.OperationID)
	}
	form.ContentType = mediaType

	schema := schemaRef.Value
	if schema.Type != nil && !schema.Type.Is(openapi3.TypeObject) {
		return model.FormModel{}, fmt.Errorf("openapi: operation %s body must be an object", op.OperationID)
	}

	required := make(map[string]struct{}, len(schema.Required))
	for _, name := range schema.Required {
		required[name] = struct{}{}
	}

	fields := make([]model.Field, 0, len(schema.Properties))
	for name, prop := range schema.Properties {
		if prop == nil || prop.Value == nil {
			continue
		}
		_, isRequired := required[name]
		fields = append(fields, fieldFromSchema(name, prop.Value, isRequired))
	}
	model.SortFields(fields)
	form.Fields = fields
	return form, nil
}

func requestSchema(body *openapi3.RequestBodyRef) (string, *openapi3.SchemaRef) {
	if body == nil || body.Value == nil {
		return "", nil
	}
	content := body.Value.Content
	for _, mediaType := range preferredMediaTypes {
		if mt, ok := content[mediaType]; ok && mt != nil {
			return mediaType, mt.Schema
		}
	}
	for mediaType, mt := range content {
		if mt != nil {
			return mediaType, mt.Schema
		}
	}
	return "", nil
}

func fieldFromSchema(name string, schema *openapi3.Schema, required bool) model.Field {
	field := model.Field{
		Name:        name,
		Label:       schema.Title,
		Control:     model.ParseControl(model.ExtensionString(schema.Extensions, model.ExtensionControl)),
		Format:      schema.Format,
		Placeholder: model.ExtensionString(schema.Extensions, model.ExtensionPlaceholder),
		Description: schema.Description,
		Required:    required,
		Metadata:    model.MetadataFromExtensions(schema.Extensions),
	}
	if field.Label == "" {
		field.Label = name
	}
	if schema.MaxLength != nil {
		field.MaxLength = int(*schema.MaxLength)
	}
	if rows, ok := model.ExtensionInt(schema.Extensions, model.ExtensionRows); ok {
		field.Rows = rows
	}
	if order, ok := model.ExtensionInt(schema.Extensions, model.ExtensionOrder); ok {
		field.Order = order
	}
	field.Validations = field.DeriveValidations()
	return field
}
