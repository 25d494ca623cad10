package openapi_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/goliatone/go-assessoria/pkg/contact"
	"github.com/goliatone/go-assessoria/pkg/model"
	"github.com/goliatone/go-assessoria/pkg/openapi"
)

func TestContactForm(t *testing.T) {
	form, err := openapi.ContactForm(context.Background())
	if err != nil {
		t.Fatalf("ContactForm: %v", err)
	}

	if form.OperationID != openapi.ContactOperationID || form.Method != "POST" || form.Endpoint != "/contato" {
		t.Fatalf("unexpected operation: %+v", form)
	}
	if form.ContentType != "application/x-www-form-urlencoded" {
		t.Fatalf("content type = %q", form.ContentType)
	}
	if form.Metadata["submit-label"] != contact.LabelSubmit {
		t.Fatalf("submit label metadata = %q", form.Metadata["submit-label"])
	}

	want := []model.Field{
		{Name: "name", Label: "Nome", Control: model.ControlText, Placeholder: "Seu nome", Required: true, MaxLength: 120, Order: 1},
		{Name: "email", Label: "E-mail", Control: model.ControlEmail, Format: "email", Placeholder: "Seu e-mail", Required: true, MaxLength: 254, Order: 2},
		{Name: "phone", Label: "Telefone", Control: model.ControlTel, Placeholder: "Seu telefone (opcional)", MaxLength: contact.MaxPhoneLength, Order: 3},
		{Name: "subject", Label: "Assunto", Control: model.ControlText, Placeholder: "Assunto", MaxLength: 160, Order: 4},
		{Name: "message", Label: "Mensagem", Control: model.ControlTextarea, Placeholder: "Sua mensagem", Required: true, MaxLength: 5000, Rows: 6, Order: 5},
	}
	opts := cmpopts.IgnoreFields(model.Field{}, "Description", "Validations", "Metadata")
	if diff := cmp.Diff(want, form.Fields, opts); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
}

func TestContactForm_MatchesValidatorRules(t *testing.T) {
	form, err := openapi.ContactForm(context.Background())
	if err != nil {
		t.Fatalf("ContactForm: %v", err)
	}

	var required []string
	for _, f := range contact.RequiredFields() {
		required = append(required, string(f))
	}
	if diff := cmp.Diff(required, form.RequiredNames()); diff != "" {
		t.Fatalf("required set drifted from the validator (-want +got):\n%s", diff)
	}

	var names []string
	for _, f := range contact.Fields() {
		names = append(names, string(f))
	}
	if diff := cmp.Diff(names, form.Names()); diff != "" {
		t.Fatalf("field set drifted (-want +got):\n%s", diff)
	}
}

func TestBuildForm_UnknownOperation(t *testing.T) {
	spec, err := openapi.Parse(context.Background(), openapi.ContactDocument())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	_, err = openapi.BuildForm(spec, "missing")
	if !errors.Is(err, openapi.ErrOperationNotFound) {
		t.Fatalf("expected ErrOperationNotFound, got %v", err)
	}
}

func TestParse_RejectsInvalidDocuments(t *testing.T) {
	cases := map[string]string{
		"no paths": "openapi: 3.0.3\ninfo: {title: x, version: '1'}\npaths: {}\n",
		"garbage":  "openapi: [unterminated\n",
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			doc, err := openapi.NewDocument(name, []byte(raw))
			if err != nil {
				t.Fatalf("NewDocument: %v", err)
			}
			if _, err := openapi.Parse(context.Background(), doc); err == nil {
				t.Fatalf("expected parse error")
			}
		})
	}

	if _, err := openapi.NewDocument("empty", nil); err == nil {
		t.Fatalf("expected error for empty payload")
	}
}

func TestParse_HonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := openapi.Parse(ctx, openapi.ContactDocument()); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
