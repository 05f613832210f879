package loader

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/GriffinCanCode/framedata/internal/fetch"
	"github.com/GriffinCanCode/framedata/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/framedata/internal/infrastructure/resilience"
	"github.com/GriffinCanCode/framedata/internal/logging"
	"github.com/GriffinCanCode/framedata/internal/scraper"
	"github.com/GriffinCanCode/framedata/internal/shared/types"
	"go.uber.org/zap"
)

var (
	// ErrFetch wraps every reason a character page could not be loaded
	ErrFetch = errors.New("character page unavailable")

	// ErrPanic is returned for a character task that panicked
	ErrPanic = errors.New("character load panicked")
)

// Fetch outcome labels
const (
	outcomeOK          = "ok"
	outcomeStatus      = "status"
	outcomeTimeout     = "timeout"
	outcomeCanceled    = "canceled"
	outcomeCircuitOpen = "circuit_open"
	outcomeNotHTML     = "not_html"
	outcomeError       = "error"
)

// Options tunes a Loader
type Options struct {
	// Timeout bounds each page fetch; 0 leaves it to the fetcher
	Timeout time.Duration

	// Concurrency caps simultaneous character loads; 0 means one per character
	Concurrency int
}

// Loader loads characters from their data pages
type Loader struct {
	fetcher fetch.Fetcher
	parser  *scraper.Parser
	logger  *logging.Logger
	metrics *monitoring.Metrics
	opts    Options
}

// New creates a loader. A nil parser, logger or metrics gets a default.
func New(fetcher fetch.Fetcher, parser *scraper.Parser, logger *logging.Logger, metrics *monitoring.Metrics, opts Options) *Loader {
	if parser == nil {
		parser = scraper.NewParser(scraper.Options{})
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	if metrics == nil {
		metrics = monitoring.NewMetrics()
	}
	return &Loader{
		fetcher: fetcher,
		parser:  parser,
		logger:  logger,
		metrics: metrics,
		opts:    opts,
	}
}

// Metrics returns the collector the loader records into
func (l *Loader) Metrics() *monitoring.Metrics {
	return l.metrics
}

// LoadCharacter fetches and parses one character's data page. Only page-level
// failures return an error, always wrapping ErrFetch; broken move blocks are
// logged and skipped.
func (l *Loader) LoadCharacter(ctx context.Context, ident types.Identity) (*types.Character, error) {
	log := l.logger.ForCharacter(ident.Name)

	body, err := l.fetchPage(ctx, ident.DataURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrFetch, ident.Name, err)
	}

	doc, err := scraper.LoadDocument(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrFetch, ident.Name, err)
	}

	blocks := scraper.Blocks(doc)
	moves := make([]types.Move, 0, blocks.Length())
	skipped, shortfall := 0, 0

	for i := range blocks.Nodes {
		parsed, err := l.parser.Parse(blocks.Eq(i))
		if err != nil {
			reason := scraper.Reason(err)
			skipped++
			l.metrics.RecordMoveSkipped(ident.Name, reason)
			log.Warn("Skipping move block",
				zap.Int("block", i),
				zap.String("reason", reason),
				zap.Error(err))
			continue
		}

		if parsed.DefaultImage {
			l.metrics.RecordDefaultImage(ident.Name)
			log.Info("Using default hitbox image",
				zap.String("input", parsed.Move.Input))
		}
		if parsed.MissingFields > 0 {
			shortfall++
			l.metrics.RecordLayoutShortfall(ident.Name)
		}

		l.metrics.RecordMoveParsed(ident.Name)
		moves = append(moves, parsed.Move)
	}

	if shortfall > 0 {
		log.Warn("Moves missing trailing columns, page layout may have changed",
			zap.Int("moves", shortfall),
			zap.Int("parsed", len(moves)))
	}

	log.Debug("Character loaded",
		zap.Int("blocks", blocks.Length()),
		zap.Int("moves", len(moves)),
		zap.Int("skipped", skipped))

	return &types.Character{Identity: ident, Moves: moves}, nil
}

// fetchPage fetches a page under the per-fetch deadline and records the outcome
func (l *Loader) fetchPage(ctx context.Context, url string) ([]byte, error) {
	if l.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.opts.Timeout)
		defer cancel()
	}

	start := time.Now()
	body, err := l.fetcher.Fetch(ctx, url)
	if err == nil && !scraper.IsHTML(body) {
		err = scraper.ErrNotHTML
	}
	l.metrics.RecordFetch(outcome(err), time.Since(start))
	return body, err
}

// outcome labels a fetch result for metrics
func outcome(err error) string {
	switch {
	case err == nil:
		return outcomeOK
	case errors.Is(err, fetch.ErrStatus):
		return outcomeStatus
	case errors.Is(err, context.DeadlineExceeded):
		return outcomeTimeout
	case errors.Is(err, context.Canceled):
		return outcomeCanceled
	case errors.Is(err, resilience.ErrCircuitOpen), errors.Is(err, resilience.ErrTooManyRequests):
		return outcomeCircuitOpen
	case errors.Is(err, scraper.ErrNotHTML):
		return outcomeNotHTML
	default:
		return outcomeError
	}
}
