package loader

import (
	"context"
	"fmt"

	"github.com/GriffinCanCode/framedata/internal/fetch"
	"github.com/GriffinCanCode/framedata/internal/infrastructure/config"
	"github.com/GriffinCanCode/framedata/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/framedata/internal/infrastructure/resilience"
	"github.com/GriffinCanCode/framedata/internal/logging"
	"github.com/GriffinCanCode/framedata/internal/roster"
	"github.com/GriffinCanCode/framedata/internal/scraper"
	"go.uber.org/zap"
)

// Registry builds the roster named by cfg: the ROSTER_FILE override if set,
// the built-in roster otherwise
func Registry(cfg *config.Config) (*roster.Registry, error) {
	site := roster.Site{BaseURL: cfg.Wiki.BaseURL, Game: cfg.Wiki.Game}
	if cfg.Load.RosterFile != "" {
		return roster.LoadFile(cfg.Load.RosterFile, site)
	}
	return roster.New(site, roster.DefaultEntries())
}

// NewFromConfig wires a fetch client, block parser and loader from cfg
func NewFromConfig(cfg *config.Config, logger *logging.Logger, metrics *monitoring.Metrics) *Loader {
	if logger == nil {
		logger = logging.NewNop()
	}

	client := fetch.NewClient(fetch.Options{
		Timeout:   cfg.Fetch.Timeout,
		Retries:   cfg.Fetch.Retries,
		RateLimit: cfg.Fetch.RateLimit,
		UserAgent: cfg.Fetch.UserAgent,
		OnBreakerChange: func(name string, from, to resilience.State) {
			logger.Warn("Circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	})

	parser := scraper.NewParser(scraper.Options{
		BaseURL:      cfg.Wiki.BaseURL,
		DefaultImage: cfg.Wiki.DefaultImage,
	})

	return New(client, parser, logger.Named("loader"), metrics, Options{
		Timeout:     cfg.Fetch.Timeout,
		Concurrency: cfg.Load.Concurrency,
	})
}

// Load builds the roster from cfg and loads it
func Load(ctx context.Context, cfg *config.Config, logger *logging.Logger) (*Report, error) {
	reg, err := Registry(cfg)
	if err != nil {
		return nil, fmt.Errorf("build roster: %w", err)
	}
	return NewFromConfig(cfg, logger, nil).LoadRoster(ctx, reg), nil
}
