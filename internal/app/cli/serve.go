package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/rivol/flightsearch/internal/app/endpoints"
	"github.com/rivol/flightsearch/internal/app/transport"
	"github.com/spf13/cobra"
)

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Expose the round-trip search as an HTTP JSON API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			endpts := endpoints.Endpoints{
				SearchEndpoint: endpoints.MakeSearchEndpoint(a.planner),
			}

			server := &http.Server{
				Handler:      transport.MakeHTTPRouter(endpts),
				Addr:         fmt.Sprintf(":%d", a.cfg.HTTP.Port),
				WriteTimeout: a.cfg.HTTP.Timeout,
				ReadTimeout:  a.cfg.HTTP.Timeout,
			}

			ctx := cmd.Context()

			errChannel := make(chan error, 1)
			go func() {
				slog.Info("running HTTP server...", slog.Int("port", a.cfg.HTTP.Port))

				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errChannel <- err
				}
			}()

			select {
			case err := <-errChannel:
				return fmt.Errorf("failed to start HTTP server: %w", err)
			case <-ctx.Done():
			}

			if err := server.Shutdown(context.Background()); err != nil {
				return fmt.Errorf("failed to shutdown HTTP server: %w", err)
			}

			slog.Info("HTTP server shutdown gracefully")

			return nil
		},
	}
}
