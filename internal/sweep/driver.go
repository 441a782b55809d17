package sweep

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/flight-search/offer-sweeper/internal/domain"
	"github.com/flight-search/offer-sweeper/internal/infrastructure/logger"
	"github.com/flight-search/offer-sweeper/internal/infrastructure/timeutil"
)

// Runner performs one sweep over the configured tuples.
type Runner interface {
	// Run visits every tuple once. Search failures are counted and skipped;
	// filesystem failures and cancellation stop the run and are returned
	// together with the partial report.
	Run(ctx context.Context) (*domain.RunReport, error)
}

// Config contains the sweep parameters and the fixed part of every request.
type Config struct {
	Params    domain.SweepParameters
	Itinerary domain.Itinerary
	Options   domain.SearchOptions

	// Mode is reported in logs and in the run report.
	Mode string

	// DryRun logs the tuples that would be fetched without calling the API
	// or writing files.
	DryRun bool

	// Clock defaults to the real clock.
	Clock timeutil.Clock
}

// Driver is the sequential sweep-and-cache loop.
type Driver struct {
	searcher domain.OfferSearcher
	store    domain.ResultStore
	cfg      Config
	clock    timeutil.Clock
	log      *logger.Logger
}

// NewDriver creates a Driver. A nil logger discards output.
func NewDriver(searcher domain.OfferSearcher, store domain.ResultStore, cfg Config, log *logger.Logger) *Driver {
	clock := cfg.Clock
	if clock == nil {
		clock = timeutil.NewRealClock()
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Driver{
		searcher: searcher,
		store:    store,
		cfg:      cfg,
		clock:    clock,
		log:      log,
	}
}

// Run implements Runner.
func (d *Driver) Run(ctx context.Context) (*domain.RunReport, error) {
	start := d.clock.Now()
	report := &domain.RunReport{
		RunID:     uuid.NewString(),
		Mode:      d.cfg.Mode,
		DryRun:    d.cfg.DryRun,
		Total:     d.cfg.Params.Size(),
		StartedAt: start,
	}
	log := d.log.WithRunID(report.RunID)
	defer func() {
		report.Duration = d.clock.Now().Sub(start)
	}()

	log.Info().
		Str(logger.FieldMode, d.cfg.Mode).
		Bool("dry_run", d.cfg.DryRun).
		Int("tuples", report.Total).
		Msg("Sweep started")

	for _, date := range timeutil.PastDates(d.cfg.Params.Dates(), start) {
		log.Warn().Str("date", date).Msg("Sweep date is in the past")
	}

	for t := range Tuples(d.cfg.Params) {
		if err := ctx.Err(); err != nil {
			log.Warn().Err(err).Int("processed", report.Processed()).Msg("Sweep interrupted")
			return report, err
		}

		status, err := d.visit(ctx, t, log.WithTuple(t.Key()))
		if err != nil {
			return report, err
		}
		report.Record(status)
	}

	log.Info().
		Int("skipped", report.Skipped).
		Int("saved", report.Saved).
		Int("failed", report.Failed).
		Int("planned", report.Planned).
		Msg("Sweep finished")
	return report, nil
}

// visit handles a single tuple and returns its status. A non-nil error halts
// the sweep.
func (d *Driver) visit(ctx context.Context, t domain.Tuple, log *logger.Logger) (string, error) {
	if err := d.store.EnsureDir(); err != nil {
		return "", fmt.Errorf("prepare output for %s: %w", t, err)
	}

	path := d.store.Path(t)
	cached, err := d.store.Exists(t)
	if err != nil {
		return "", fmt.Errorf("check cache for %s: %w", t, err)
	}
	if cached {
		log.Info().Str(logger.FieldStatus, domain.StatusSkipped).Str("path", path).Msg("Skip because cached")
		return domain.StatusSkipped, nil
	}

	if d.cfg.DryRun {
		log.Info().Str(logger.FieldStatus, domain.StatusPlanned).Str("path", path).Msg("Would fetch")
		return domain.StatusPlanned, nil
	}

	req := domain.BuildSearchRequest(t, d.cfg.Itinerary, d.cfg.Options)
	result, err := d.searcher.Search(ctx, req)
	if err != nil {
		event := log.Warn()
		if !domain.IsUpstreamFailure(err) {
			// Not one of the searcher's typed failures.
			event = log.Error()
		}
		event.Err(err).Str(logger.FieldStatus, domain.StatusNoResult).Msg("No result")
		return domain.StatusNoResult, nil
	}
	if !result.HasOffers() {
		log.Warn().Str(logger.FieldStatus, domain.StatusNoResult).Msg("No result: empty response")
		return domain.StatusNoResult, nil
	}

	if err := d.store.Save(t, result.Payload); err != nil {
		if errors.Is(err, domain.ErrInvalidPayload) {
			log.Warn().Err(err).Str(logger.FieldStatus, domain.StatusNoResult).Msg("No result")
			return domain.StatusNoResult, nil
		}
		return "", fmt.Errorf("save %s: %w", t, err)
	}

	log.Info().Str(logger.FieldStatus, domain.StatusSaved).Str("path", path).Msg("Saved")
	return domain.StatusSaved, nil
}

var _ Runner = (*Driver)(nil)
