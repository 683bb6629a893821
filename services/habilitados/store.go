package habilitados

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"habilitados-backend/services/habilitados/db"

	_ "modernc.org/sqlite"
)

// OpenDB opens (and if needed initializes) the run-history database.
func OpenDB(path string) (*sql.DB, error) {
	database, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	_, err = database.Exec(db.Schema)
	if err != nil && !strings.Contains(err.Error(), "already exists") {
		database.Close()
		return nil, err
	}
	return database, nil
}

// Store persists run history and the latest dataset snapshot. records
// go in as json payloads, the schema only indexes what queries filter
// on, same trade-off as the rest of our sqlite stores.
type Store struct {
	db *sql.DB
}

func NewStore(database *sql.DB) Store {
	return Store{db: database}
}

func (s Store) SaveRun(ctx context.Context, report *RunReport, dataset UnifiedDataset) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	reportJson, err := json.Marshal(report)
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(
		ctx,
		`INSERT INTO run (started_at, finished_at, total_records, report) VALUES (?, ?, ?, ?)`,
		report.StartedAt.Unix(),
		report.FinishedAt.Unix(),
		report.TotalRecords,
		string(reportJson),
	)
	if err != nil {
		return err
	}

	// each run is a full refresh, stale keys must not survive
	_, err = tx.ExecContext(ctx, `DELETE FROM latest_record`)
	if err != nil {
		return err
	}
	for key, record := range dataset {
		payload, err := json.Marshal(record)
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(
			ctx,
			`INSERT INTO latest_record (key, record) VALUES (?, ?)`,
			key,
			string(payload),
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (s Store) LatestDataset(ctx context.Context) (UnifiedDataset, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key, record FROM latest_record`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	dataset := UnifiedDataset{}
	for rows.Next() {
		var key, payload string
		err = rows.Scan(&key, &payload)
		if err != nil {
			return nil, err
		}
		var record ResourceRecord
		err = json.Unmarshal([]byte(payload), &record)
		if err != nil {
			return nil, err
		}
		dataset[key] = record
	}
	return dataset, rows.Err()
}

// LastReport returns the most recent run's report, or nil when no run
// has been persisted yet.
func (s Store) LastReport(ctx context.Context) (*RunReport, error) {
	var payload string
	err := s.db.QueryRowContext(
		ctx,
		`SELECT report FROM run ORDER BY finished_at DESC, id DESC LIMIT 1`,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var report RunReport
	err = json.Unmarshal([]byte(payload), &report)
	if err != nil {
		return nil, err
	}
	return &report, nil
}

// RunHistory returns up to `limit` past reports, newest first.
func (s Store) RunHistory(ctx context.Context, limit int) ([]RunReport, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT report FROM run ORDER BY finished_at DESC, id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reports []RunReport
	for rows.Next() {
		var payload string
		err = rows.Scan(&payload)
		if err != nil {
			return nil, err
		}
		var report RunReport
		err = json.Unmarshal([]byte(payload), &report)
		if err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}
	return reports, rows.Err()
}

// PruneRuns deletes run rows older than `keep`.
func (s Store) PruneRuns(ctx context.Context, keep time.Duration) error {
	cutoff := time.Now().Add(-keep).Unix()
	_, err := s.db.ExecContext(ctx, `DELETE FROM run WHERE finished_at < ?`, cutoff)
	return err
}
