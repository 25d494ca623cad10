package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-assessoria/pkg/render"
)

func checkCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Load the content and render every page once",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd.Context(), *configPath)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			slugs := append(render.Slugs(), render.SlugNotFound)
			for _, slug := range slugs {
				body, err := a.pages.Render(cmd.Context(), slug, render.RenderOptions{Variant: a.cfg.ThemeVariant})
				if err != nil {
					return fmt.Errorf("page %s: %w", slug, err)
				}
				fmt.Fprintf(out, "\033[32m✓\033[0m %-10s %6d bytes\n", slug, len(body))
			}
			fmt.Fprintf(out, "\033[32m✓\033[0m contact form: %d fields, %s %s\n", len(a.form.Fields), a.form.Method, a.form.Endpoint)
			return nil
		},
	}
}
