package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/roach88/termfixture/internal/harness"
	"github.com/roach88/termfixture/internal/ir"
)

// Run is one recorded generation run.
type Run struct {
	ID            string    `json:"id"`
	Seq           int64     `json:"seq"`
	SourceVersion string    `json:"source_version"`
	GeneratedAt   time.Time `json:"generated_at"`
	Cases         int       `json:"cases"`
}

// CaseDigest is one case of a recorded run.
type CaseDigest struct {
	Position       int    `json:"position"`
	ScenarioID     string `json:"scenario_id"`
	Kind           string `json:"kind"`
	ScenarioDigest string `json:"scenario_digest"`
	CaptureDigest  string `json:"capture_digest"`
}

// DigestDocument computes the per-case digests of doc in case order.
func DigestDocument(doc *harness.Document) ([]CaseDigest, error) {
	out := make([]CaseDigest, len(doc.Cases))
	for i, c := range doc.Cases {
		sd, err := c.Scenario.Digest()
		if err != nil {
			return nil, fmt.Errorf("case %s: %w", c.Scenario.ID, err)
		}
		cd, err := ir.CaptureDigest(c.Expected.Plain, c.Expected.ANSI)
		if err != nil {
			return nil, fmt.Errorf("case %s: %w", c.Scenario.ID, err)
		}
		out[i] = CaseDigest{
			Position:       i,
			ScenarioID:     c.Scenario.ID,
			Kind:           string(c.Scenario.Kind),
			ScenarioDigest: sd,
			CaptureDigest:  cd,
		}
	}
	return out, nil
}

// RecordRun stores doc as a new run and returns it. The run and all of its
// cases are written in one transaction.
func (s *Store) RecordRun(ctx context.Context, doc *harness.Document) (Run, error) {
	digests, err := DigestDocument(doc)
	if err != nil {
		return Run{}, fmt.Errorf("record run: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Run{}, fmt.Errorf("record run: begin: %w", err)
	}
	defer tx.Rollback()

	var seq int64
	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(seq), 0) + 1 FROM runs`).Scan(&seq); err != nil {
		return Run{}, fmt.Errorf("record run: next seq: %w", err)
	}

	run := Run{
		ID:            s.ids.Generate(),
		Seq:           seq,
		SourceVersion: doc.SourceVersion,
		GeneratedAt:   doc.GeneratedAt.UTC(),
		Cases:         len(digests),
	}
	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, seq, source_version, generated_at, case_count)
		VALUES (?, ?, ?, ?, ?)
	`, run.ID, run.Seq, run.SourceVersion, run.GeneratedAt.Format(time.RFC3339Nano), run.Cases)
	if err != nil {
		return Run{}, fmt.Errorf("record run: insert run: %w", err)
	}

	if err := insertCases(ctx, tx, run.ID, digests); err != nil {
		return Run{}, err
	}

	if err := tx.Commit(); err != nil {
		return Run{}, fmt.Errorf("record run: commit: %w", err)
	}
	return run, nil
}

func insertCases(ctx context.Context, tx *sql.Tx, runID string, digests []CaseDigest) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO cases (run_id, position, scenario_id, kind, scenario_digest, capture_digest)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("record run: prepare: %w", err)
	}
	defer stmt.Close()

	for _, d := range digests {
		if _, err := stmt.ExecContext(ctx, runID, d.Position, d.ScenarioID, d.Kind, d.ScenarioDigest, d.CaptureDigest); err != nil {
			return fmt.Errorf("record run: insert case %s: %w", d.ScenarioID, err)
		}
	}
	return nil
}
