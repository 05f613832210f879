package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/GriffinCanCode/framedata/internal/dataset"
	"github.com/GriffinCanCode/framedata/internal/infrastructure/config"
	"github.com/GriffinCanCode/framedata/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/framedata/internal/loader"
	"github.com/GriffinCanCode/framedata/internal/logging"
	"go.uber.org/zap"
)

func main() {
	character := flag.String("character", "", "Character name, e.g. ryu or \"chun li\"")
	input := flag.String("input", "", "Move input, e.g. 5MP or j.HK (requires -character)")
	stats := flag.Bool("stats", false, "Print startup statistics (requires -character)")
	format := flag.String("format", "json", "Output format: json or yaml")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.New(logging.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Logging.Development,
	})
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	q := newQuery(*character, *input, *stats)
	if err := q.validate(); err != nil {
		logger.Fatal("Invalid flags", zap.Error(err))
	}

	reg, err := loader.Registry(cfg)
	if err != nil {
		logger.Fatal("Failed to build roster", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	metrics := monitoring.NewMetrics()
	report := loader.NewFromConfig(cfg, logger, metrics).LoadRoster(ctx, reg)
	logSummary(logger, report, metrics.Snapshot())

	result, err := q.run(report)
	if err != nil {
		logger.Error("Query failed", zap.Error(err))
		os.Exit(1)
	}

	out, err := render(result, *format)
	if err != nil {
		logger.Error("Failed to render result", zap.Error(err))
		os.Exit(1)
	}
	if _, err := os.Stdout.Write(out); err != nil {
		logger.Error("Failed to write result", zap.Error(err))
		os.Exit(1)
	}
}

func logSummary(logger *logging.Logger, report *loader.Report, snap monitoring.MetricsSnapshot) {
	fingerprint, err := report.Dataset.Fingerprint()
	if err != nil {
		logger.Warn("Failed to fingerprint dataset", zap.Error(err))
	}

	logger.Info("Load summary",
		zap.String("load_id", report.LoadID.String()),
		zap.String("fingerprint", dataset.ShortFingerprint(fingerprint)),
		zap.Duration("duration", report.Duration),
		zap.Int64("characters_loaded", snap.CharactersLoaded),
		zap.Int64("characters_failed", snap.CharactersFailed),
		zap.Int64("fetches", snap.Fetches),
		zap.Int64("fetch_errors", snap.FetchErrors),
		zap.Int64("moves_parsed", snap.MovesParsed),
		zap.Int64("moves_skipped", snap.MovesSkipped),
		zap.Int64("default_images", snap.DefaultImages),
		zap.Int64("layout_shortfall", snap.LayoutShortfall))
}
