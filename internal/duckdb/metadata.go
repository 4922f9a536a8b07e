package duckdb

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"time"
)

// FileFingerprint holds stat-based identity for a file.
type FileFingerprint struct {
	Path    string
	Size    int64
	ModTime time.Time
}

// StatFile creates a FileFingerprint from an on-disk file.
func StatFile(path string) (FileFingerprint, error) {
	info, err := os.Stat(path)
	if err != nil {
		return FileFingerprint{}, err
	}
	return FileFingerprint{
		Path:    path,
		Size:    info.Size(),
		ModTime: info.ModTime().UTC().Truncate(time.Microsecond), // TIMESTAMP precision
	}, nil
}

// Run describes one extraction run and the inputs it read.
type Run struct {
	ID              string
	StartedAt       time.Time
	Assembly        string
	GTF             FileFingerprint
	SequenceSource  string // FASTA path or REST base URL
	DownstreamBases int
	ContextBases    int
	KozakMethod     string
}

// RecordRun stores the metadata of a run.
func (s *Store) RecordRun(r Run) error {
	_, err := s.db.Exec(`INSERT INTO runs VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.StartedAt.UTC(), r.Assembly,
		r.GTF.Path, r.GTF.Size, r.GTF.ModTime.UTC(),
		r.SequenceSource, int64(r.DownstreamBases), int64(r.ContextBases), r.KozakMethod)
	if err != nil {
		return fmt.Errorf("record run %s: %w", r.ID, err)
	}
	return nil
}

// LookupRun returns the metadata of a run, or nil if it was never recorded.
func (s *Store) LookupRun(id string) (*Run, error) {
	var (
		r                  Run
		downstream, ctxLen int64
	)
	err := s.db.QueryRow(`SELECT
		run_id, started_at, assembly, gtf_path, gtf_size, gtf_mtime,
		sequence_source, downstream_bases, context_bases, kozak_method
		FROM runs WHERE run_id=?`, id).Scan(
		&r.ID, &r.StartedAt, &r.Assembly, &r.GTF.Path, &r.GTF.Size, &r.GTF.ModTime,
		&r.SequenceSource, &downstream, &ctxLen, &r.KozakMethod,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("query run %s: %w", id, err)
	}
	r.DownstreamBases = int(downstream)
	r.ContextBases = int(ctxLen)
	return &r, nil
}

// SameGTF reports whether the GTF file a run was built from is unchanged
// on disk.
func (r *Run) SameGTF(current FileFingerprint) bool {
	return r.GTF.Path == current.Path &&
		r.GTF.Size == current.Size &&
		r.GTF.ModTime.Equal(current.ModTime)
}
