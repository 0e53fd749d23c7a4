package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/acorntide/shelfd/internal/handlers"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the catalog over HTTP",
		Long: `Starts the shelfd JSON API on the specified port.

The API exposes the browsing surface (processed book lists, tag index,
metadata lookup, favorite toggling) plus a cover image proxy for hosts
that block cross-origin loads. State shared between requests lives in a
single in-memory store; loading and error flags are per store, not per
request, so concurrent mutations can stomp each other's flags.`,
		Example: `  # Start server on default port 8888
  shelfd serve

  # Start server on custom port
  shelfd serve --port 3000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, acts := newSession()

			// Set up routes
			mux := http.NewServeMux()
			handlers.New(st, acts, os.Getenv("SHELFD_PROXY_BASE")).Register(mux)
			mux.HandleFunc("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
				if _, err := w.Write([]byte("OK")); err != nil {
					slog.Error("Unable to write healthcheck", "err", err)
				}
			})

			addr := ":" + port
			server := &http.Server{
				Addr:    addr,
				Handler: mux,
			}

			// Start server in goroutine
			serverErr := make(chan error, 1)
			go func() {
				slog.Info("Shelfd catalog API available", "addr", addr, "url", "http://localhost"+addr)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serverErr <- err
				}
			}()

			// Wait for context cancellation (Ctrl+C) or server error
			select {
			case <-cmd.Context().Done():
				slog.Info("Shutting down server...")
				// Give server 5 seconds to shut down gracefully
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := server.Shutdown(shutdownCtx); err != nil {
					slog.Error("Server shutdown failed", "err", err)
					return err
				}
				slog.Info("Server stopped")
				return nil
			case err := <-serverErr:
				return err
			}
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "8888", "Port to listen on")

	return cmd
}
