package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"catalogadmin/internal/apis/catalog/usecases"
	"catalogadmin/internal/bootstrap"
	"catalogadmin/internal/config"
	httpserver "catalogadmin/internal/http-server"
	"catalogadmin/internal/logger"
)

func main() {
	var (
		configPath = flag.String("config", config.DefaultPath, "path to config.yaml")
		host       = flag.String("host", "", "override host")
		port       = flag.Int("port", 0, "override port")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("load config failed", "err", err)
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Level:     cfg.Log.Level,
		Format:    cfg.Log.Format,
		AddSource: cfg.Log.AddSource,
		Env:       cfg.Env,
	})
	slog.SetDefault(log)

	if *host != "" {
		cfg.Server.Host = *host
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}

	catalogSvc, err := bootstrap.BuildCatalog(cfg, log)
	if err != nil {
		log.Error("build catalog client failed", "err", err)
		os.Exit(1)
	}

	api := httpserver.New(log)
	api.RegisterRoutes(httpserver.Deps{
		Categories: catalogSvc,
		Catalogue:  usecases.NewCatalogueService(catalogSvc, log, cfg.Catalogue.ThumbnailWorkers),
		Products:   catalogSvc,
		Details: usecases.NewProductDetailsService(
			catalogSvc, log, cfg.Listing.RelatedLimit, cfg.Listing.RelatedCount,
		),
		// Overview fans out one request per category, so allow it more than
		// a single upstream round trip.
		Timeout:       3 * cfg.Timeout(),
		PageSize:      cfg.Listing.PageSize,
		CategoryLimit: cfg.Listing.CategoryLimit,
		SearchLimit:   cfg.Listing.SearchLimit,
	})

	addr := net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port))

	srv := &http.Server{
		Addr:              addr,
		Handler:           api.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		log.Info("api started", "addr", addr, "upstream", cfg.Catalog.BaseURL)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case sig := <-stop:
		log.Info("shutdown signal received", "signal", sig.String())

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("graceful shutdown failed", "err", err)
			_ = srv.Close()
		}
		log.Info("server stopped gracefully")

	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			log.Info("server closed")
			return
		}
		log.Error("server stopped with error", "err", err)
		os.Exit(1)
	}
}
