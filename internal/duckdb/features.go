package duckdb

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"

	goduckdb "github.com/marcboeker/go-duckdb"

	"github.com/inodb/utrfx/internal/uorf"
)

// featureKey is the primary key of a feature row within a run.
type featureKey struct {
	transcriptID string
	start        int
}

// WriteFeatures batch-inserts uORF features of a run using the Appender API.
// Duplicate (transcript_id, uorf_start) entries are written once.
func (s *Store) WriteFeatures(runID string, features []uorf.Features) error {
	if len(features) == 0 {
		return nil
	}

	seen := make(map[featureKey]bool, len(features))
	deduped := make([]uorf.Features, 0, len(features))
	for _, f := range features {
		k := featureKey{f.TranscriptID, f.Start}
		if !seen[k] {
			seen[k] = true
			deduped = append(deduped, f)
		}
	}

	conn, err := s.db.Conn(context.Background())
	if err != nil {
		return fmt.Errorf("get connection: %w", err)
	}
	defer conn.Close()

	var appender *goduckdb.Appender
	if err := conn.Raw(func(driverConn any) error {
		var err error
		appender, err = goduckdb.NewAppenderFromConn(driverConn.(driver.Conn), "", "uorf_features")
		return err
	}); err != nil {
		return fmt.Errorf("create appender: %w", err)
	}
	defer appender.Close()

	for _, f := range deduped {
		// NULL kozak means no scorer ran.
		var kozak any
		if f.Kozak != uorf.KozakNotComputed {
			kozak = f.Kozak
		}
		if err := appender.AppendRow(
			runID, f.TranscriptID,
			int64(f.Start), int64(f.End), int64(f.Length),
			f.GCContent, f.GCDownstream, int64(f.IntercistonicDistance),
			kozak, f.Context,
		); err != nil {
			return fmt.Errorf("append uORF features: %w", err)
		}
	}

	return appender.Flush()
}

// ClearFeatures removes all stored features.
func (s *Store) ClearFeatures() error {
	_, err := s.db.Exec("DELETE FROM uorf_features")
	return err
}

// LookupTranscript returns the stored features of a transcript across all
// runs, ordered by run and uORF start.
func (s *Store) LookupTranscript(transcriptID string) ([]uorf.Features, error) {
	rows, err := s.db.Query(`SELECT
		transcript_id, uorf_start, uorf_end, length,
		gc_content, gc_downstream, intercistonic_distance, kozak, context
		FROM uorf_features
		WHERE transcript_id=?
		ORDER BY run_id, uorf_start`, transcriptID)
	if err != nil {
		return nil, fmt.Errorf("query transcript: %w", err)
	}
	defer rows.Close()

	return scanFeatures(rows)
}

// FeaturesByRun returns all features written by a run.
func (s *Store) FeaturesByRun(runID string) ([]uorf.Features, error) {
	rows, err := s.db.Query(`SELECT
		transcript_id, uorf_start, uorf_end, length,
		gc_content, gc_downstream, intercistonic_distance, kozak, context
		FROM uorf_features
		WHERE run_id=?
		ORDER BY transcript_id, uorf_start`, runID)
	if err != nil {
		return nil, fmt.Errorf("query run: %w", err)
	}
	defer rows.Close()

	return scanFeatures(rows)
}

// CountByRun returns the number of uORFs stored for a run.
func (s *Store) CountByRun(runID string) (int, error) {
	var n int64
	if err := s.db.QueryRow("SELECT COUNT(*) FROM uorf_features WHERE run_id=?", runID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count features: %w", err)
	}
	return int(n), nil
}

// scanFeatures scans rows into Features slices.
func scanFeatures(rows *sql.Rows) ([]uorf.Features, error) {
	var features []uorf.Features
	for rows.Next() {
		var (
			f                        uorf.Features
			start, end, length, dist int64
			kozak                    sql.NullFloat64
		)
		if err := rows.Scan(
			&f.TranscriptID, &start, &end, &length,
			&f.GCContent, &f.GCDownstream, &dist, &kozak, &f.Context,
		); err != nil {
			return nil, fmt.Errorf("scan uORF features: %w", err)
		}
		f.Start, f.End, f.Length, f.IntercistonicDistance = int(start), int(end), int(length), int(dist)
		f.Kozak = uorf.KozakNotComputed
		if kozak.Valid {
			f.Kozak = kozak.Float64
		}
		features = append(features, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate uORF features: %w", err)
	}
	return features, nil
}
