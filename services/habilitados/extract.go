package habilitados

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"habilitados-backend/lib/driver"

	"go.opentelemetry.io/otel/codes"
)

// mappedRow is a table row after column mapping but before provenance
// stamping, which is the aggregator's job.
type mappedRow struct {
	Name       string
	Contractor string
	Status     Status
}

// extract applies required filters, paginates the results table and
// maps raw rows into the unified shape. filters change result
// correctness, so a filter that cannot be applied fails the whole
// system instead of silently reading the unfiltered table.
func extract(ctx context.Context, session driver.Session, cfg SystemConfig) ([]mappedRow, error) {
	ctx, span := tracer.Start(ctx, "extract")
	defer span.End()

	for _, filter := range cfg.RequiredFilters {
		selector := cfg.FilterSelectors[filter]
		if selector == "" {
			err := &ExtractionError{System: cfg.Name, Filter: filter, Err: fmt.Errorf("no selector configured")}
			span.SetStatus(codes.Error, "filter not configured")
			return nil, err
		}
		if err := session.Click(ctx, selector); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "filter failed")
			return nil, &ExtractionError{System: cfg.Name, Filter: filter, Err: err}
		}
	}

	raw, err := readAllPages(ctx, session, cfg)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "table read failed")
		return nil, err
	}

	var rows []mappedRow
	for _, cells := range raw {
		row := mappedRow{
			Name:       strings.TrimSpace(cell(cells, cfg.ColumnMap.Name)),
			Contractor: strings.TrimSpace(cell(cells, cfg.ColumnMap.Contractor)),
			Status:     NormalizeStatus(cell(cells, cfg.ColumnMap.Status)),
		}
		if row.Name == "" {
			slog.DebugContext(ctx, "dropping row without a resource name",
				"system", cfg.Name, "cells", len(cells))
			continue
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func cell(cells []string, idx int) string {
	if idx >= len(cells) {
		return ""
	}
	return cells[idx]
}

// readAllPages accumulates table rows page by page. two end
// conditions guard against paginators without a reliable "last page"
// signal: a page identical to the previous one means the next-page
// control went inert, and MaxPages bounds the loop no matter what the
// portal does.
func readAllPages(ctx context.Context, session driver.Session, cfg SystemConfig) ([][]string, error) {
	maxPages := cfg.MaxPages
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}

	var all [][]string
	var prev [][]string
	for page := 0; page < maxPages; page++ {
		if err := ctx.Err(); err != nil {
			return nil, &ExtractionError{System: cfg.Name, Page: page, Err: err}
		}

		rows, err := session.ReadTable(ctx, cfg.Selectors.Table, nil)
		if err != nil {
			return nil, &ExtractionError{System: cfg.Name, Page: page, Err: err}
		}
		if page > 0 && samePage(rows, prev) {
			break
		}
		all = append(all, rows...)
		prev = rows

		if cfg.Selectors.NextPage == "" {
			break
		}
		if err := session.Click(ctx, cfg.Selectors.NextPage); err != nil {
			return nil, &ExtractionError{System: cfg.Name, Page: page, Err: err}
		}
	}
	return all, nil
}

func samePage(a, b [][]string) bool {
	return slices.EqualFunc(a, b, slices.Equal)
}
