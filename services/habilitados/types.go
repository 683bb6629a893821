package habilitados

import (
	"fmt"
	"time"

	"habilitados-backend/lib/textutil"
)

type ResourceRecord struct {
	ResourceName string    `json:"resource_name"`
	Contractor   string    `json:"contractor"`
	Status       Status    `json:"status"`
	SourceSystem string    `json:"source_system"`
	ExtractedAt  time.Time `json:"extracted_at"`
}

// Key is stable across runs: the same resource in the same system
// always lands on the same dataset entry. names may repeat across
// systems, which is why the system is part of the key.
func (r ResourceRecord) Key() string {
	return fmt.Sprintf("%s|%s", r.SourceSystem, textutil.NormalizeKey(r.ResourceName))
}

// UnifiedDataset holds one run's worth of records, keyed by
// ResourceRecord.Key. it is replaced wholesale every run, never merged
// across runs, so silently-removed portal rows cannot linger.
type UnifiedDataset map[string]ResourceRecord

type Outcome string

const (
	OutcomeSuccess          Outcome = "success"
	OutcomeLoginFailed      Outcome = "login_failed"
	OutcomeExtractionFailed Outcome = "extraction_failed"
	OutcomeTimeout          Outcome = "timeout"
)

type SystemRunResult struct {
	SystemName  string  `json:"system_name"`
	Outcome     Outcome `json:"outcome"`
	RecordCount int     `json:"record_count"`
	ErrorDetail string  `json:"error_detail,omitempty"`
}

type RunReport struct {
	StartedAt    time.Time         `json:"started_at"`
	FinishedAt   time.Time         `json:"finished_at"`
	PerSystem    []SystemRunResult `json:"per_system"`
	TotalRecords int               `json:"total_records"`
}
