package theme_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-assessoria/pkg/theme"
)

func TestSelector_DefaultSelection(t *testing.T) {
	selector, err := theme.NewSelector("")
	if err != nil {
		t.Fatalf("NewSelector: %v", err)
	}
	sel, err := selector.Select("", "")
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if sel.Theme != theme.DefaultName || sel.Variant != theme.VariantDefault {
		t.Fatalf("selection = %s/%s", sel.Theme, sel.Variant)
	}

	cfg := theme.RendererConfig(sel)
	if cfg.CSSVars["--azul"] != "#0a192f" || cfg.CSSVars["--dourado"] != "#cda434" || cfg.CSSVars["--dourado-escuro"] != "#b9932d" {
		t.Fatalf("brand css vars missing: %v", cfg.CSSVars)
	}
	if got := cfg.AssetURL("stylesheet"); got != "/static/css/site.css" {
		t.Fatalf("stylesheet url = %q", got)
	}
	if got := cfg.AssetURL("img/logo.svg"); got != "/static/img/logo.svg" {
		t.Fatalf("raw asset url = %q", got)
	}
	if got := cfg.AssetURL("variant.stylesheet"); got != "/static/variant.stylesheet" {
		t.Fatalf("unknown keys resolve as paths, got %q", got)
	}
	if cfg.Partials["page.faq"] != "faq.tpl" {
		t.Fatalf("partials = %v", cfg.Partials)
	}
}

func TestSelector_ContrastVariantOverridesTokens(t *testing.T) {
	selector, err := theme.NewSelector(theme.VariantContrast)
	if err != nil {
		t.Fatalf("NewSelector: %v", err)
	}
	sel, err := selector.Select(theme.DefaultName, "")
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	cfg := theme.RendererConfig(sel)
	if cfg.Tokens["azul"] != "#000000" {
		t.Fatalf("variant token not applied: %v", cfg.Tokens)
	}
	if cfg.Tokens["font-display"] == "" {
		t.Fatalf("base tokens should survive the merge")
	}
	if got := cfg.AssetURL("stylesheet.variant"); got != "/static/css/contraste.css" {
		t.Fatalf("variant stylesheet = %q", got)
	}
	if diff := cmp.Diff([]string{"default", "contraste"}, selector.Variants("")); diff != "" {
		t.Fatalf("variants mismatch (-want +got):\n%s", diff)
	}
}

func TestSelector_Errors(t *testing.T) {
	if _, err := theme.NewSelector("neon"); !errors.Is(err, theme.ErrUnknownVariant) {
		t.Fatalf("expected ErrUnknownVariant, got %v", err)
	}
	selector, err := theme.NewSelector("")
	if err != nil {
		t.Fatalf("NewSelector: %v", err)
	}
	if _, err := selector.Select("other", ""); !errors.Is(err, theme.ErrUnknownTheme) {
		t.Fatalf("expected ErrUnknownTheme, got %v", err)
	}
	if _, err := selector.Select("", "neon"); !errors.Is(err, theme.ErrUnknownVariant) {
		t.Fatalf("expected ErrUnknownVariant, got %v", err)
	}
}

func TestCSSVarsStyle(t *testing.T) {
	got := theme.CSSVarsStyle(map[string]string{"--b": "2", "--a": "1"})
	if got != "--a: 1; --b: 2;" {
		t.Fatalf("style = %q", got)
	}
	if theme.CSSVarsStyle(nil) != "" {
		t.Fatalf("empty vars should render empty")
	}
}
