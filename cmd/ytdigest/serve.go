package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/gauthierbraillon/ytdigest/internal/config"
	"github.com/gauthierbraillon/ytdigest/internal/logging"
	"github.com/gauthierbraillon/ytdigest/internal/metrics"
	"github.com/gauthierbraillon/ytdigest/internal/server"
	"github.com/gauthierbraillon/ytdigest/pkg/browser"
)

const shutdownTimeout = 10 * time.Second

// newServeCmd creates the serve subcommand.
func newServeCmd() *cobra.Command {
	var (
		addr string
		open bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the report page and API",
		Long: `Start a local web server with a page for pasting links, a JSON/CSV
report API on POST /api/reports, live progress on /ws/reports and
Prometheus metrics on /metrics.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if err := cfg.Validate(); err != nil {
				return err
			}

			logger, closer, err := logging.New(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFile)
			if err != nil {
				return err
			}
			defer closer.Close()

			m := metrics.New()
			srv := server.New(newPipeline(cfg, logger, m), server.WithLogger(logger), server.WithMetrics(m))

			listener, err := net.Listen("tcp", addr)
			if err != nil {
				return errors.Wrapf(err, "listen on %s", addr)
			}

			httpServer := &http.Server{
				Handler:           srv.Handler(),
				ReadHeaderTimeout: 10 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() { errCh <- httpServer.Serve(listener) }()

			pageURL := "http://" + listener.Addr().String() + "/"
			fmt.Fprintf(cmd.OutOrStdout(), "Serving ytdigest on %s\n", pageURL)
			if open {
				if err := browser.Open(pageURL); err != nil {
					fmt.Fprintf(cmd.OutOrStdout(), "Could not open browser. Please visit:\n%s\n", pageURL)
				}
			}

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return errors.Wrap(err, "server stopped")
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			logger.Info("Shutting down server")
			return errors.Wrap(httpServer.Shutdown(shutdownCtx), "shutdown")
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "127.0.0.1:8080", "Address to listen on")
	cmd.Flags().BoolVar(&open, "open", false, "Open the report page in the browser")

	return cmd
}
