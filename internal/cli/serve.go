package cli

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/taaha3244/quicktools/internal/catalog"
	"github.com/taaha3244/quicktools/internal/server"
)

func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the catalog and tools over HTTP",
		Long: `Start the HTTP API. Tools whose permission is "ask" are refused, since
there is nobody to ask.

Examples:
  quicktools serve
  quicktools serve --addr 127.0.0.1:9000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(appOptions{metrics: true})
			if err != nil {
				return err
			}
			defer a.log.Sync()

			if addr != "" {
				a.cfg.Server.Addr = addr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if a.cfg.Catalog.Watch {
				if a.cfg.Catalog.Path == "" {
					a.log.Warn("catalog.watch is set without catalog.path, nothing to watch")
				} else if err := catalog.Watch(ctx, a.cfg.Catalog.Path, a.store, a.log); err != nil {
					return fmt.Errorf("failed to watch catalog: %w", err)
				}
			}

			a.log.Info("starting server",
				zap.String("addr", a.cfg.Server.Addr),
				zap.Int("tools", a.store.Len()),
				zap.String("provider", a.generator.ProviderName()),
				zap.String("model", a.generator.Model()))

			srv := server.New(a.cfg.Server, a.store, a.dispatcher,
				server.WithLogger(a.log),
				server.WithMetrics(a.metrics, a.registry))
			return srv.ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides server.addr)")
	return cmd
}
