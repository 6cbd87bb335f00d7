package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mercadoscope/mercadoscope/internal/analysis"
	"github.com/mercadoscope/mercadoscope/internal/httpapi"
	"github.com/mercadoscope/mercadoscope/internal/report"
	"github.com/mercadoscope/mercadoscope/internal/store"
	"github.com/mercadoscope/mercadoscope/internal/telemetry"
)

func main() {
	addr := flag.String("addr", ":8080", "HTTP listen address")
	dbPath := flag.String("db", "mercadoscope.db", "SQLite database path")
	narrativeTimeout := flag.Duration("narrative-timeout", 120*time.Second, "deadline for the narrative producer")
	cacheSize := flag.Int("keyword-cache", 100, "max niches held in the keyword cache")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	shutdownTelemetry, err := telemetry.Setup(ctx, "mercadoscope")
	if err != nil {
		log.Fatal(err)
	}
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		_ = shutdownTelemetry(shutdownCtx)
	}()

	st, err := store.NewSQLiteStore(*dbPath)
	if err != nil {
		log.Fatal(err)
	}
	defer st.Close()

	var narrative analysis.NarrativeGenerator
	if gen, err := analysis.NewAnthropicGeneratorFromEnv(); err != nil {
		log.Printf("narrative generator disabled: %v (all analyses will use synthetic projections)", err)
	} else {
		narrative = gen
	}

	estimator := analysis.NewKeywordEstimator(analysis.NewKeywordCache(*cacheSize))
	analyzer := analysis.NewCompetitorAnalyzer()
	orchestrator := analysis.NewOrchestrator(estimator, analyzer, narrative, *narrativeTimeout)
	handler := httpapi.NewServer(st, orchestrator, estimator, analyzer, report.NewChromiumPDFRenderer())

	server := &http.Server{
		Addr:              *addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	log.Printf("mercadoscope listening on %s (db=%s)", *addr, *dbPath)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}
