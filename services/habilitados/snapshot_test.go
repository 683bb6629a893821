package habilitados

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestSnapshotRoundTrip(t *testing.T) {
	report := &RunReport{
		StartedAt:    time.Unix(1700000000, 0).UTC(),
		FinishedAt:   time.Unix(1700000060, 0).UTC(),
		TotalRecords: 2,
	}
	dataset := testDataset("sys1", "Grúa 21", "Camión 7")
	snapshot := BuildSnapshot(dataset, report)

	require.Equal(t, 2, snapshot.TotalRecords)
	require.Equal(t, report.FinishedAt, snapshot.UpdatedAt)
	// records are sorted, map order must not leak into the file
	require.Equal(t, "Camión 7", snapshot.Records[0].ResourceName)
	require.Equal(t, "Grúa 21", snapshot.Records[1].ResourceName)

	path := filepath.Join(t.TempDir(), "recursos_data.json")
	require.NoError(t, WriteSnapshot(path, snapshot))

	loaded, err := ReadSnapshot(path)
	require.NoError(t, err)
	require.Empty(t, cmp.Diff(snapshot, loaded))
}
