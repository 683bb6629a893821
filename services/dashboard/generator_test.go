package dashboard

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"habilitados-backend/lib/telemetry"
	"habilitados-backend/services/habilitados"

	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	cleanup := telemetry.SetupForTesting("test:services/dashboard")
	defer cleanup()

	report := &habilitados.RunReport{
		StartedAt:  time.Unix(1700000000, 0).UTC(),
		FinishedAt: time.Unix(1700000060, 0).UTC(),
		PerSystem: []habilitados.SystemRunResult{
			{SystemName: "sys1", Outcome: habilitados.OutcomeSuccess, RecordCount: 2},
			{SystemName: "sys2", Outcome: habilitados.OutcomeLoginFailed, ErrorDetail: "no table"},
		},
		TotalRecords: 2,
	}
	snapshot := habilitados.Snapshot{
		UpdatedAt:    report.FinishedAt,
		TotalRecords: 2,
		Records: []habilitados.ResourceRecord{
			record("sys1", "Grúa 21", "ACME SA", habilitados.StatusEnabled),
			record("sys1", "Camión 7", "Transportes del Sur", habilitados.StatusExpired),
		},
	}

	dir := filepath.Join(t.TempDir(), "web_output")
	require.NoError(t, Generate(context.Background(), dir, snapshot, report))

	contents, err := os.ReadFile(filepath.Join(dir, "index.html"))
	require.NoError(t, err)
	page := string(contents)
	require.Contains(t, page, "Grúa 21")
	require.Contains(t, page, "Transportes del Sur")
	require.Contains(t, page, "EXPIRED")
	require.Contains(t, page, "login_failed")
}
