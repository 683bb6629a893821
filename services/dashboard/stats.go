package dashboard

import (
	"sort"

	"habilitados-backend/lib/textutil"
	"habilitados-backend/services/habilitados"
)

// ConsolidatedRecord is a dashboard row. portals overlap, the same
// resource can come back from several systems with identical identity
// fields, showing it once with its provenance list beats showing the
// same line N times.
type ConsolidatedRecord struct {
	ResourceName string
	Contractor   string
	Status       habilitados.Status
	Sources      []string
}

// Consolidate collapses records that agree on every identity field
// (normalized name, contractor, status), accumulating their source
// systems. records that differ in any field stay separate rows.
func Consolidate(records []habilitados.ResourceRecord) []ConsolidatedRecord {
	type identity struct {
		name       string
		contractor string
		status     habilitados.Status
	}

	index := map[identity]int{}
	var out []ConsolidatedRecord
	for _, record := range records {
		id := identity{
			name:       textutil.NormalizeKey(record.ResourceName),
			contractor: textutil.NormalizeKey(record.Contractor),
			status:     record.Status,
		}
		at, seen := index[id]
		if !seen {
			index[id] = len(out)
			out = append(out, ConsolidatedRecord{
				ResourceName: record.ResourceName,
				Contractor:   record.Contractor,
				Status:       record.Status,
				Sources:      []string{record.SourceSystem},
			})
			continue
		}
		if !contains(out[at].Sources, record.SourceSystem) {
			out[at].Sources = append(out[at].Sources, record.SourceSystem)
		}
	}
	return out
}

func contains(list []string, v string) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}

type Stats struct {
	Total        int
	BySystem     map[string]int
	ByStatus     map[habilitados.Status]int
	ByContractor map[string]int
}

func ComputeStats(records []habilitados.ResourceRecord) Stats {
	stats := Stats{
		Total:        len(records),
		BySystem:     map[string]int{},
		ByStatus:     map[habilitados.Status]int{},
		ByContractor: map[string]int{},
	}
	for _, record := range records {
		stats.BySystem[record.SourceSystem]++
		stats.ByStatus[record.Status]++
		if record.Contractor != "" {
			stats.ByContractor[record.Contractor]++
		}
	}
	return stats
}

// TopContractors returns up to n contractors ordered by record count,
// ties broken alphabetically so output is stable.
func (s Stats) TopContractors(n int) []string {
	names := make([]string, 0, len(s.ByContractor))
	for name := range s.ByContractor {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		a, b := names[i], names[j]
		if s.ByContractor[a] != s.ByContractor[b] {
			return s.ByContractor[a] > s.ByContractor[b]
		}
		return a < b
	})
	if len(names) > n {
		names = names[:n]
	}
	return names
}
