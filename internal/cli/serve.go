package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/viewgraph/internal/config"
	"github.com/leapstack-labs/viewgraph/internal/importer"
	"github.com/leapstack-labs/viewgraph/internal/server"
	"github.com/leapstack-labs/viewgraph/internal/state"
	"github.com/leapstack-labs/viewgraph/pkg/core"
)

// ServeOptions holds options for the serve command.
type ServeOptions struct {
	Port int
}

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	opts := &ServeOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the viewgraph API server",
		Example: `  # Start with defaults (mongo on localhost)
  viewgraph serve

  # Start on a custom port with an in-memory store
  VIEWGRAPH_STORE=memory viewgraph serve --port 3000`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, opts)
		},
	}

	cmd.Flags().IntVar(&opts.Port, "port", 0, fmt.Sprintf("Port to serve on (default: %d)", config.DefaultPort))

	return cmd
}

func runServe(cmd *cobra.Command, opts *ServeOptions) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	if opts.Port != 0 {
		cfg.Port = opts.Port
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := newLogger(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(context.Background()); err != nil {
			logger.Error("failed to close store", "error", err)
		}
	}()

	srv := server.NewServer(server.Config{
		Store:       store,
		Importer:    importer.New(store, logger),
		Port:        cfg.Port,
		CORSOrigins: cfg.Origins(),
		Logger:      logger,
	})

	return srv.Serve(ctx)
}

// openStore builds the configured store backend. The store is the only
// stateful dependency; it is acquired here and released when serve returns.
func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (core.Store, error) {
	switch cfg.Store {
	case "memory":
		logger.Warn("using in-memory store, data will not survive restarts")
		return state.NewMemoryStore(), nil
	default:
		logger.Info("connecting to mongodb", "db", cfg.DBName)
		store, err := state.NewMongoStore(ctx, cfg.MongoURL, cfg.DBName)
		if err != nil {
			return nil, fmt.Errorf("failed to open store: %w", err)
		}
		return store, nil
	}
}
