package habilitados

import (
	"context"
	"testing"
	"time"

	"habilitados-backend/lib/testutil"
	"habilitados-backend/services/habilitados/db"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func testDataset(system string, names ...string) UnifiedDataset {
	agg := NewAggregator(time.Unix(1700000000, 0).UTC())
	rows := make([]mappedRow, len(names))
	for i, name := range names {
		rows[i] = mappedRow{Name: name, Contractor: "ACME SA", Status: StatusEnabled}
	}
	agg.Merge(system, rows)
	return agg.Finalize()
}

func TestStoreRoundTrip(t *testing.T) {
	res, cleanup := testutil.SetupService(t, testutil.ServiceParams{
		Name:     "services/habilitados",
		DbSchema: db.Schema,
	})
	defer cleanup()
	ctx := context.Background()
	store := NewStore(res.DB)

	report := &RunReport{
		StartedAt:  time.Unix(1700000000, 0).UTC(),
		FinishedAt: time.Unix(1700000060, 0).UTC(),
		PerSystem: []SystemRunResult{
			{SystemName: "sys1", Outcome: OutcomeSuccess, RecordCount: 2},
			{SystemName: "sys2", Outcome: OutcomeLoginFailed, ErrorDetail: "bad credentials"},
		},
		TotalRecords: 2,
	}
	dataset := testDataset("sys1", "Grúa 21", "Camión 7")

	require.NoError(t, store.SaveRun(ctx, report, dataset))

	loaded, err := store.LatestDataset(ctx)
	require.NoError(t, err)
	require.Empty(t, cmp.Diff(dataset, loaded))

	last, err := store.LastReport(ctx)
	require.NoError(t, err)
	require.Equal(t, report.TotalRecords, last.TotalRecords)
	require.Equal(t, report.PerSystem, last.PerSystem)
}

func TestStoreFullRefresh(t *testing.T) {
	res, cleanup := testutil.SetupService(t, testutil.ServiceParams{
		Name:     "services/habilitados",
		DbSchema: db.Schema,
	})
	defer cleanup()
	ctx := context.Background()
	store := NewStore(res.DB)

	first := &RunReport{
		StartedAt:    time.Unix(1700000000, 0).UTC(),
		FinishedAt:   time.Unix(1700000060, 0).UTC(),
		TotalRecords: 2,
	}
	require.NoError(t, store.SaveRun(ctx, first, testDataset("sys1", "A", "B")))

	// the second run drops record B, it must not linger
	second := &RunReport{
		StartedAt:    time.Unix(1700003600, 0).UTC(),
		FinishedAt:   time.Unix(1700003660, 0).UTC(),
		TotalRecords: 1,
	}
	require.NoError(t, store.SaveRun(ctx, second, testDataset("sys1", "A")))

	loaded, err := store.LatestDataset(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 1)

	history, err := store.RunHistory(ctx, 10)
	require.NoError(t, err)
	require.Len(t, history, 2)
	require.Equal(t, second.FinishedAt, history[0].FinishedAt)

	last, err := store.LastReport(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, last.TotalRecords)
}

func TestStoreLastReportEmpty(t *testing.T) {
	res, cleanup := testutil.SetupService(t, testutil.ServiceParams{
		Name:     "services/habilitados",
		DbSchema: db.Schema,
	})
	defer cleanup()

	last, err := NewStore(res.DB).LastReport(context.Background())
	require.NoError(t, err)
	require.Nil(t, last)
}
