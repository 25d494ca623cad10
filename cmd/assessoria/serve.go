package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-assessoria/internal/logging"
	"github.com/goliatone/go-assessoria/internal/metrics"
	"github.com/goliatone/go-assessoria/internal/server"
)

func serveCmd(configPath *string) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the site over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a, err := loadApp(ctx, *configPath)
			if err != nil {
				return err
			}
			if addr != "" {
				a.cfg.Addr = addr
			}

			logger := logging.New(a.cfg.LogLevel, a.cfg.LogFormat, cmd.ErrOrStderr())
			opts := []server.Option{
				server.WithLogger(logger),
				server.WithTiming(a.cfg.Timing()),
				server.WithDefaultVariant(a.cfg.ThemeVariant),
			}
			if a.cfg.Metrics {
				opts = append(opts, server.WithMetrics(metrics.New()))
			}

			srv, err := server.New(a.pages, opts...)
			if err != nil {
				return err
			}
			logger.Info().
				Str("addr", a.cfg.Addr).
				Bool("metrics", a.cfg.Metrics).
				Str("variant", a.cfg.ThemeVariant).
				Msg("server_starting")
			return srv.ListenAndServe(ctx, a.cfg.Addr)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "listen address (overrides config)")
	return cmd
}
