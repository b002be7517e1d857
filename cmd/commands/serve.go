package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/scanlog/scanlog/internal/logging"
	"github.com/scanlog/scanlog/pkg/server"
	"github.com/scanlog/scanlog/pkg/store"
)

const shutdownTimeout = 10 * time.Second

var (
	serveAddr     string
	serveDatabase string
)

// NewServeCommand creates the serve command
func NewServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the scan API backed by SQLite",
		Long: `Run the HTTP API that records, lists, exports and deletes scans.

The schema is migrated on startup. The server stops gracefully on
SIGINT or SIGTERM.

Examples:
  # Listen on the configured address (default :8000)
  scanlog serve

  # Custom address and database file
  scanlog serve --addr 127.0.0.1:9000 --db /var/lib/scanlog/scans.db`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}

	cmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (overrides listen_addr)")
	cmd.Flags().StringVar(&serveDatabase, "db", "", "SQLite database path (overrides database_path)")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	settings, err := commandContext(cmd).LoadSettings()
	if err != nil {
		return err
	}
	if serveAddr != "" {
		settings.ListenAddr = serveAddr
	}
	if serveDatabase != "" {
		settings.DatabasePath = serveDatabase
	}

	log, err := logging.New(cmd.ErrOrStderr(), settings.LogLevel)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := store.Open(ctx, settings.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	srv := server.New(store.NewSQLiteRepository(db), log)
	log.Info(ctx, "scan API starting", "addr", settings.ListenAddr, "database", settings.DatabasePath)

	if err := srv.ListenAndServe(ctx, settings.ListenAddr, shutdownTimeout); err != nil {
		return err
	}
	log.Info(ctx, "scan API stopped")
	return nil
}
