package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"mortalidad/internal/dashboard"
	"mortalidad/internal/dataset"
	"mortalidad/internal/enrich"
	"mortalidad/internal/platform/config"
	"mortalidad/internal/platform/httpserver"
	"mortalidad/internal/platform/logger"
	"mortalidad/internal/platform/metrics"
	"mortalidad/internal/report"
)

// main wires high-level dependencies and keeps the server lifecycle small.
// The whole pipeline runs once at startup; a load failure is fatal with a
// non-zero exit.
func main() {
	log := logger.New()

	cfg, err := config.FromEnv()
	if err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	tables, err := dataset.Load(log, dataset.Sources{
		Deaths:   cfg.DeathsPath(),
		Divipola: cfg.DivipolaPath(),
		Causes:   cfg.CausesPath(),
		Boundary: cfg.BoundaryPath(),
	})
	if err != nil {
		log.Error("loading input sources failed", "error", err)
		os.Exit(1)
	}

	records := enrich.Records(tables.Deaths, tables.Locations, tables.Causes)
	snapshot := report.Build(records, tables.Boundaries, cfg.HomicidePrefixes)

	m := metrics.New()
	handler := dashboard.New(snapshot, tables.Boundaries.Raw(), log, m)

	router := chi.NewRouter()
	router.Method(http.MethodGet, "/metrics", promhttp.Handler())
	handler.Register(router)

	srv := httpserver.New(cfg.Addr(), router)

	summary := snapshot.Summary()
	log.Info("starting mortality dashboard",
		"addr", cfg.Addr(),
		"records", summary.TotalRecords,
		"departments", summary.Departments,
		"municipalities", summary.Municipalities,
	)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}
