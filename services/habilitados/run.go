package habilitados

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"habilitados-backend/lib/driver"
	"habilitados-backend/lib/timezone"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("services/habilitados")

type Options struct {
	Headless bool
	// per-operation bound, zero means driver.DefaultTimeout
	Timeout time.Duration
}

// RunFullScrape is the engine's sole entry point: one sequential pass
// over every configured system. systems are processed one at a time on
// purpose, portal sessions are heavyweight and some portals lock
// accounts on concurrent logins. a failed system is recorded and the
// run moves on, the retry unit is the next scheduled run.
func RunFullScrape(ctx context.Context, drv driver.Driver, configs []SystemConfig, opts Options) (*RunReport, UnifiedDataset, error) {
	ctx, span := tracer.Start(ctx, "RunFullScrape")
	defer span.End()

	if err := ValidateRegistry(configs); err != nil {
		span.SetStatus(codes.Error, "invalid registry")
		return nil, nil, err
	}

	report := &RunReport{StartedAt: timezone.Now()}
	agg := NewAggregator(report.StartedAt)

	for _, cfg := range configs {
		// cancellation is honored between systems, the in-flight
		// system still tears its session down
		if ctx.Err() != nil {
			slog.WarnContext(ctx, "run cancelled", "remaining_after", cfg.Name)
			break
		}
		result := scrapeSystem(ctx, drv, cfg, opts, agg)
		report.PerSystem = append(report.PerSystem, result)
	}

	dataset := agg.Finalize()
	report.FinishedAt = timezone.Now()
	report.TotalRecords = len(dataset)

	span.SetAttributes(
		attribute.Int("systems", len(report.PerSystem)),
		attribute.Int("total_records", report.TotalRecords),
	)
	return report, dataset, nil
}

func scrapeSystem(ctx context.Context, drv driver.Driver, cfg SystemConfig, opts Options, agg *Aggregator) SystemRunResult {
	ctx, span := tracer.Start(ctx, "scrapeSystem")
	defer span.End()
	span.SetAttributes(attribute.String("system", cfg.Name))

	fail := func(err error, fallback Outcome) SystemRunResult {
		outcome := fallback
		if isTimeout(err) {
			outcome = OutcomeTimeout
		}
		slog.ErrorContext(ctx, "system failed",
			"system", cfg.Name, "outcome", outcome, "err", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, string(outcome))
		return SystemRunResult{
			SystemName:  cfg.Name,
			Outcome:     outcome,
			ErrorDetail: err.Error(),
		}
	}

	session, err := drv.Open(ctx, driver.Options{
		Headless: opts.Headless,
		Timeout:  opts.Timeout,
	})
	if err != nil {
		return fail(err, OutcomeLoginFailed)
	}
	defer func() {
		err := session.Close()
		if err != nil {
			slog.WarnContext(ctx, "session close failed", "system", cfg.Name, "err", err)
		}
	}()

	err = login(ctx, session, cfg)
	if err != nil {
		return fail(err, OutcomeLoginFailed)
	}

	rows, err := extract(ctx, session, cfg)
	if err != nil {
		return fail(err, OutcomeExtractionFailed)
	}

	count := agg.Merge(cfg.Name, rows)
	slog.InfoContext(ctx, "system scraped", "system", cfg.Name, "records", count)
	return SystemRunResult{
		SystemName:  cfg.Name,
		Outcome:     OutcomeSuccess,
		RecordCount: count,
	}
}

func isTimeout(err error) bool {
	var derr *driver.Error
	if errors.As(err, &derr) && derr.Timeout() {
		return true
	}
	return errors.Is(err, context.DeadlineExceeded)
}
