package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/signaltower/internal/server"
	"github.com/matzehuels/signaltower/pkg/config"
)

const shutdownTimeout = 10 * time.Second

// serveCommand creates the serve command for the HTTP plan API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr     string
		redis    bool
		noCache  bool
		maxCells int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the plan API over HTTP",
		Long: `Serve the plan API over HTTP.

  POST /v1/plans                    plan a city (JSON options, same fields as 'plan')
  GET  /v1/plans                    list recorded runs
  GET  /v1/plans/{id}               fetch a recorded plan
  GET  /v1/plans/{id}/render/{fmt}  render a recorded plan
  GET  /healthz                     liveness probe

Use --redis to share the cache between server instances.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.scenario()
			if err != nil {
				return err
			}
			if redis {
				s.Cache.Backend = config.BackendRedis
			}
			// Plans can only be fetched back from the history store.
			s.Store.Enabled = true
			return c.runServe(cmd.Context(), s, addr, noCache, maxCells)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:8080", "listen address")
	cmd.Flags().BoolVar(&redis, "redis", false, "use the Redis cache backend")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().IntVar(&maxCells, "max-cells", server.DefaultMaxCells, "largest accepted rows*cols (0 for no limit)")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, s *config.Scenario, addr string, noCache bool, maxCells int) error {
	runner, err := c.newRunner(ctx, s, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	api := server.New(runner, c.Logger)
	api.SetMaxCells(maxCells)

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	srv := &http.Server{
		Handler:           api.Router(),
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	printSuccess("Listening on %s", StyleLink.Render("http://"+ln.Addr().String()))
	printDetail("Cache: %s", s.Cache.Backend)

	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	p := newProgress(loggerFromContext(ctx))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	p.done("Server stopped")
	return nil
}
