package cli

import (
	"context"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/sharepoint-lookup/internal/adapters/driving/httpapi"
	"github.com/custodia-labs/sharepoint-lookup/internal/logger"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve lookups over HTTP",
	Long: `Starts an HTTP server exposing:

  POST /lookup     {"values": ["acme.com"]} or {"entities": [{"type": "domain", "value": "acme.com"}]}
  POST /validate   checks the configured (or supplied) connection options
  GET  /healthz    liveness probe

The config file is watched; edits take effect on the next lookup.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "address to listen on")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if err := ensureServices(); err != nil {
		return err
	}

	server, err := httpapi.NewServer(lookupService, optionsStore)
	if err != nil {
		return err
	}

	cmd.Printf("Listening on %s\n", serveAddr)
	return runWithWatch(cmd.Context(), func(ctx context.Context) error {
		return server.Run(ctx, serveAddr)
	})
}

// runWithWatch runs serve alongside the options watcher. The watcher
// stops when serve returns.
func runWithWatch(ctx context.Context, serve func(ctx context.Context) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return watchOptions(ctx)
	})
	g.Go(func() error {
		defer cancel()
		return serve(ctx)
	})
	return g.Wait()
}

// concurrencySetter is implemented by lookup services with a tunable fan-out.
type concurrencySetter interface {
	SetConcurrency(n int)
}

// watchOptions keeps the options store in sync with its file until ctx
// is done. Connection changes are picked up by the next lookup.
func watchOptions(ctx context.Context) error {
	return optionsStore.Watch(ctx, func() {
		if setter, ok := lookupService.(concurrencySetter); ok {
			setter.SetConcurrency(optionsStore.Concurrency())
		}
		logger.Trace("Options reloaded: %+v", optionsStore.Options().Redacted())
	})
}
