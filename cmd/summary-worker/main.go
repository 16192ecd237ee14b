// summary-worker periodically reports every doctor's slot counts per
// display category. Expiry is derived at read time, so there is nothing to
// rewrite in the store; the worker exists so dashboards and operators get a
// recurring availability picture without hitting the API.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/clinicdesk/clinic-scheduling/internal/bus"
	"github.com/clinicdesk/clinic-scheduling/internal/clinic"
	"github.com/clinicdesk/clinic-scheduling/internal/config"
	"github.com/clinicdesk/clinic-scheduling/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fallback := zerolog.New(os.Stderr)
		fallback.Fatal().Err(err).Msg("config load error")
	}

	log := zerolog.New(os.Stderr).With().Timestamp().Str("component", "summary-worker").Logger()
	log.Info().
		Str("env", cfg.Env).
		Dur("interval", cfg.SummaryInterval).
		Msg("summary-worker starting up")

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	openCtx, cancelOpen := context.WithTimeout(rootCtx, 10*time.Second)
	store, closeStore, err := storage.Open(openCtx, cfg)
	cancelOpen()
	if err != nil {
		log.Fatal().Err(err).Msg("store connection error")
	}
	defer closeStore()
	log.Info().Str("backend", cfg.StoreBackend).Msg("connected to store")

	svc := clinic.NewService(store, bus.New(), log)

	// Run once at startup
	runOnce(rootCtx, svc, log)

	ticker := time.NewTicker(cfg.SummaryInterval)
	defer ticker.Stop()

	for {
		select {
		case <-rootCtx.Done():
			log.Info().Msg("shutdown signal received, stopping summary worker")
			return
		case <-ticker.C:
			runOnce(rootCtx, svc, log)
		}
	}
}

func runOnce(ctx context.Context, svc *clinic.Service, log zerolog.Logger) {
	runCtx, cancel := context.WithTimeout(ctx, 20*time.Second)
	defer cancel()

	start := time.Now()
	doctors, err := svc.ListDoctors(runCtx)
	if err != nil {
		log.Error().Err(err).Msg("summary run error")
		return
	}

	for _, doc := range doctors {
		sum, err := svc.SlotSummary(runCtx, doc.ID)
		if err != nil {
			log.Error().Err(err).Str("doctor_id", doc.ID).Msg("summary error")
			continue
		}
		log.Info().
			Str("doctor_id", doc.ID).
			Str("doctor", doc.Name).
			Int("available", sum.Available).
			Int("booked", sum.Booked).
			Int("expired", sum.Expired).
			Int("completed", sum.Completed).
			Int("total", sum.Total()).
			Msg("slot summary")
	}

	log.Info().Dur("took", time.Since(start)).Int("doctors", len(doctors)).Msg("summary run complete")
}
