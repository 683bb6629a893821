package habilitados

import (
	"encoding/json"
	"os"
	"sort"
	"time"
)

// Snapshot is the flat, serializable form of a run's dataset handed to
// the dashboard and anything else downstream. the file is overwritten
// wholesale every run, readers always see exactly the latest portal
// state.
type Snapshot struct {
	UpdatedAt    time.Time        `json:"updated_at"`
	TotalRecords int              `json:"total_records"`
	Records      []ResourceRecord `json:"records"`
}

func BuildSnapshot(dataset UnifiedDataset, report *RunReport) Snapshot {
	records := make([]ResourceRecord, 0, len(dataset))
	for _, record := range dataset {
		records = append(records, record)
	}
	// map iteration order is not a stable output contract
	sort.Slice(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if a.SourceSystem != b.SourceSystem {
			return a.SourceSystem < b.SourceSystem
		}
		return a.ResourceName < b.ResourceName
	})

	return Snapshot{
		UpdatedAt:    report.FinishedAt,
		TotalRecords: len(records),
		Records:      records,
	}
}

func WriteSnapshot(path string, snapshot Snapshot) error {
	contents, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, contents, 0644)
}

func ReadSnapshot(path string) (Snapshot, error) {
	var snapshot Snapshot
	contents, err := os.ReadFile(path)
	if err != nil {
		return snapshot, err
	}
	err = json.Unmarshal(contents, &snapshot)
	return snapshot, err
}
