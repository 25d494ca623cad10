package model_test

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-assessoria/pkg/model"
)

func TestMetadataFromExtensions(t *testing.T) {
	ext := map[string]any{
		"x-placeholder": "Seu nome",
		"x-order":       float64(1),
		"x-rows":        json.Number("6"),
		"x-empty":       "",
		"x-flag":        true,
		"description":   "ignored",
	}

	got := model.MetadataFromExtensions(ext)
	want := map[string]string{
		"placeholder": "Seu nome",
		"order":       "1",
		"rows":        "6",
		"flag":        "true",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("metadata mismatch (-want +got):\n%s", diff)
	}

	if model.MetadataFromExtensions(map[string]any{"title": "x"}) != nil {
		t.Fatalf("expected nil metadata when no extensions are present")
	}
}

func TestExtensionInt(t *testing.T) {
	ext := map[string]any{"x-rows": float64(6), "x-order": "3", "x-bad": "six"}

	if got, ok := model.ExtensionInt(ext, "x-rows"); !ok || got != 6 {
		t.Fatalf("x-rows = %d, %v", got, ok)
	}
	if got, ok := model.ExtensionInt(ext, "x-order"); !ok || got != 3 {
		t.Fatalf("x-order = %d, %v", got, ok)
	}
	if _, ok := model.ExtensionInt(ext, "x-bad"); ok {
		t.Fatalf("expected non-numeric value to be rejected")
	}
	if _, ok := model.ExtensionInt(ext, "x-missing"); ok {
		t.Fatalf("expected missing key to be rejected")
	}
}

func TestFormModelHelpers(t *testing.T) {
	fields := []model.Field{
		{Name: "message", Order: 5, Required: true, Control: model.ControlTextarea},
		{Name: "email", Order: 2, Required: true, Control: model.ControlEmail, MaxLength: 120},
		{Name: "name", Order: 1, Required: true},
		{Name: "phone", Order: 3, Control: model.ControlTel},
	}
	model.SortFields(fields)
	form := model.FormModel{Fields: fields}

	if diff := cmp.Diff([]string{"name", "email", "phone", "message"}, form.Names()); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"name", "email", "message"}, form.RequiredNames()); diff != "" {
		t.Fatalf("required mismatch (-want +got):\n%s", diff)
	}

	email, ok := form.Field("email")
	if !ok {
		t.Fatalf("email field missing")
	}
	want := []model.ValidationRule{
		{Kind: model.ValidationRuleRequired},
		{Kind: model.ValidationRuleEmail},
		{Kind: model.ValidationRuleMaxLength, Params: map[string]string{"value": "120"}},
	}
	if diff := cmp.Diff(want, email.DeriveValidations()); diff != "" {
		t.Fatalf("validations mismatch (-want +got):\n%s", diff)
	}

	message, _ := form.Field("message")
	if !message.Multiline() || message.InputType() != "text" {
		t.Fatalf("textarea helpers wrong: %v %q", message.Multiline(), message.InputType())
	}
	phone, _ := form.Field("phone")
	if phone.InputType() != "tel" {
		t.Fatalf("phone input type = %q", phone.InputType())
	}
	if model.ParseControl("select") != model.ControlText {
		t.Fatalf("unknown controls should fall back to text")
	}
}
