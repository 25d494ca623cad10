package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-assessoria/internal/terminal"
)

func contatoCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "contato",
		Short: "Fill in the contact form from the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd.Context(), *configPath)
			if err != nil {
				return err
			}

			form, err := terminal.New(
				terminal.NewSurveyDriver(cmd.OutOrStdout()),
				a.form,
				terminal.WithTiming(a.cfg.Timing()),
			)
			if err != nil {
				return err
			}

			state, err := form.Run(cmd.Context())
			if errors.Is(err, terminal.ErrAborted) {
				fmt.Fprintln(cmd.OutOrStdout(), "Envio cancelado.")
				return nil
			}
			if err != nil {
				return err
			}
			if state.Errors.Any() {
				return errors.New("contact form rejected")
			}
			return nil
		},
	}
}
