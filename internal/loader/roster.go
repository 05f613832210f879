package loader

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/GriffinCanCode/framedata/internal/dataset"
	"github.com/GriffinCanCode/framedata/internal/fetch"
	"github.com/GriffinCanCode/framedata/internal/roster"
	"github.com/GriffinCanCode/framedata/internal/shared/id"
	"github.com/GriffinCanCode/framedata/internal/shared/types"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Result is the outcome of one character task
type Result struct {
	Identity  types.Identity
	Character *types.Character
	Err       error
}

// Failure records a character left out of the dataset
type Failure struct {
	Identity types.Identity
	Err      error
}

func (f Failure) Error() string {
	return fmt.Sprintf("%s: %v", f.Identity.Name, f.Err)
}

func (f Failure) Unwrap() error {
	return f.Err
}

// Report is the outcome of a roster load
type Report struct {
	LoadID   id.LoadID
	Dataset  *dataset.Dataset
	Failed   []Failure
	Duration time.Duration
}

// Loaded returns how many characters made it into the dataset
func (r *Report) Loaded() int {
	return r.Dataset.Len()
}

// Err joins every failure, or returns nil when the whole roster loaded
func (r *Report) Err() error {
	if len(r.Failed) == 0 {
		return nil
	}
	errs := make([]error, len(r.Failed))
	for i, f := range r.Failed {
		errs[i] = f
	}
	return errors.Join(errs...)
}

// LoadRoster loads every identity in reg concurrently. It always returns a
// report: failed characters are listed there and absent from the dataset.
// Fetcher health state from an earlier load is reset first.
func (l *Loader) LoadRoster(ctx context.Context, reg *roster.Registry) *Report {
	start := time.Now()
	if r, ok := l.fetcher.(fetch.Resetter); ok {
		r.Reset()
	}

	loadID := id.NewLoadID()
	log := l.logger.With(zap.String("load_id", loadID.String()))

	identities := reg.Identities()
	results := make([]Result, len(identities))

	limit := l.opts.Concurrency
	if limit <= 0 {
		limit = len(identities)
	}

	log.Info("Loading roster",
		zap.Int("characters", len(identities)),
		zap.Int("concurrency", limit))

	var g errgroup.Group
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, ident := range identities {
		i, ident := i, ident
		g.Go(func() error {
			results[i] = l.loadOne(ctx, ident)
			return nil
		})
	}
	_ = g.Wait()

	chars := make([]types.Character, 0, len(results))
	var failed []Failure
	for _, res := range results {
		if res.Err != nil {
			failed = append(failed, Failure{Identity: res.Identity, Err: res.Err})
			log.Error("Character load failed",
				zap.String("character", res.Identity.Name),
				zap.Error(res.Err))
			continue
		}
		chars = append(chars, *res.Character)
	}

	report := &Report{
		LoadID:   loadID,
		Dataset:  dataset.New(loadID, chars),
		Failed:   failed,
		Duration: time.Since(start),
	}
	l.metrics.RecordRosterLoad(report.Loaded(), len(failed), report.Duration)

	log.Info("Roster loaded",
		zap.Int("loaded", report.Loaded()),
		zap.Int("failed", len(failed)),
		zap.Duration("duration", report.Duration))

	return report
}

// loadOne runs one character task, turning a panic into a failed result
func (l *Loader) loadOne(ctx context.Context, ident types.Identity) (res Result) {
	res.Identity = ident
	defer func() {
		if r := recover(); r != nil {
			res.Character = nil
			res.Err = fmt.Errorf("%w: %v", ErrPanic, r)
		}
	}()

	res.Character, res.Err = l.LoadCharacter(ctx, ident)
	return res
}
