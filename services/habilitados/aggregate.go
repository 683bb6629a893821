package habilitados

import (
	"log/slog"
	"time"
)

// Aggregator folds per-system extraction results into one dataset.
// it lives for exactly one run, a fresh run gets a fresh aggregator.
type Aggregator struct {
	dataset     UnifiedDataset
	extractedAt time.Time
	finalized   bool
}

func NewAggregator(runTimestamp time.Time) *Aggregator {
	return &Aggregator{
		dataset:     UnifiedDataset{},
		extractedAt: runTimestamp,
	}
}

// Merge stamps provenance on each row and upserts it. duplicate keys
// within one system mean a duplicate row in the source table,
// last write wins and nobody gets upset.
func (a *Aggregator) Merge(systemName string, rows []mappedRow) int {
	if a.finalized {
		panic("aggregator used after Finalize")
	}

	for _, row := range rows {
		record := ResourceRecord{
			ResourceName: row.Name,
			Contractor:   row.Contractor,
			Status:       row.Status,
			SourceSystem: systemName,
			ExtractedAt:  a.extractedAt,
		}
		key := record.Key()
		if _, dup := a.dataset[key]; dup {
			slog.Debug("duplicate record key, overwriting",
				"system", systemName, "key", key)
		}
		a.dataset[key] = record
	}
	return len(rows)
}

// Finalize hands the dataset off, after which the aggregator is done.
func (a *Aggregator) Finalize() UnifiedDataset {
	a.finalized = true
	return a.dataset
}
