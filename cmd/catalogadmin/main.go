package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"catalogadmin/internal/apis/catalog"
	"catalogadmin/internal/bootstrap"
	"catalogadmin/internal/config"
	"catalogadmin/internal/logger"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:           "catalogadmin",
	Short:         "Browse and export a remote product catalog",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath, "path to config.yaml")

	rootCmd.AddCommand(inventoryCmd, catalogueCmd, productCmd, exportCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// runtimeDeps is what every subcommand needs.
type runtimeDeps struct {
	cfg     *config.Config
	log     *slog.Logger
	catalog catalog.Service
	close   func() error
}

// setup loads config and wires the catalog client. Logs go to stderr so
// stdout stays clean for command output; tui routes them to the configured
// file instead, or drops them.
func setup(tui bool) (*runtimeDeps, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	opts := logger.Options{
		Level:     cfg.Log.Level,
		Format:    cfg.Log.Format,
		AddSource: cfg.Log.AddSource,
		Env:       cfg.Env,
		Output:    os.Stderr,
	}

	closeLog := func() error { return nil }
	var log *slog.Logger
	switch {
	case tui && cfg.Log.File != "":
		log, closeLog, err = logger.NewFile(opts, cfg.Log.File)
		if err != nil {
			return nil, err
		}
	case tui:
		log = logger.Discard()
	default:
		log = logger.New(opts)
	}
	slog.SetDefault(log)

	svc, err := bootstrap.BuildCatalog(cfg, log)
	if err != nil {
		_ = closeLog()
		return nil, fmt.Errorf("build catalog client: %w", err)
	}

	return &runtimeDeps{cfg: cfg, log: log, catalog: svc, close: closeLog}, nil
}
