package main

import (
	"context"
	"fmt"

	"github.com/goliatone/go-assessoria"
	"github.com/goliatone/go-assessoria/internal/config"
	"github.com/goliatone/go-assessoria/pkg/model"
	"github.com/goliatone/go-assessoria/pkg/openapi"
	"github.com/goliatone/go-assessoria/pkg/render"
)

// app is the wiring shared by every command.
type app struct {
	cfg   config.Config
	form  model.FormModel
	pages *render.Pages
}

func loadApp(ctx context.Context, configPath string) (*app, error) {
	cfg, err := config.Load(configPath, nil)
	if err != nil {
		return nil, err
	}

	form, err := openapi.ContactForm(ctx)
	if err != nil {
		return nil, fmt.Errorf("load contact form: %w", err)
	}
	pages, err := assessoria.NewPages(ctx, render.WithTemplatesDir(cfg.TemplatesDir))
	if err != nil {
		return nil, err
	}
	return &app{cfg: cfg, form: form, pages: pages}, nil
}
