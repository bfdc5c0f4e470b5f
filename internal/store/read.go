package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ErrRunNotFound is returned when a run id is not in the ledger.
var ErrRunNotFound = errors.New("run not found")

// ListRuns returns up to limit runs, newest first. A limit <= 0 returns all
// runs.
//
// Returns an empty slice (not nil) if the ledger is empty.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	query := `
		SELECT id, seq, source_version, generated_at, case_count
		FROM runs
		ORDER BY seq DESC
	`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// GetRun returns the run with the given id. A run id may be abbreviated to
// any unique prefix.
func (s *Store) GetRun(ctx context.Context, id string) (Run, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, seq, source_version, generated_at, case_count
		FROM runs
		WHERE id = ? OR id LIKE ? ESCAPE '\'
		ORDER BY (id = ?) DESC, seq DESC
		LIMIT 2
	`, id, escapeLike(id)+"%", id)
	if err != nil {
		return Run{}, fmt.Errorf("query run: %w", err)
	}
	defer rows.Close()

	var found []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return Run{}, err
		}
		if run.ID == id {
			return run, nil
		}
		found = append(found, run)
	}
	if err := rows.Err(); err != nil {
		return Run{}, fmt.Errorf("iterate run: %w", err)
	}

	switch len(found) {
	case 0:
		return Run{}, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	case 1:
		return found[0], nil
	}
	return Run{}, fmt.Errorf("run id prefix %q is ambiguous", id)
}

// CaseDigests returns the cases of a run in catalog order.
func (s *Store) CaseDigests(ctx context.Context, runID string) ([]CaseDigest, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT position, scenario_id, kind, scenario_digest, capture_digest
		FROM cases
		WHERE run_id = ?
		ORDER BY position ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("query cases: %w", err)
	}
	defer rows.Close()

	cases := []CaseDigest{}
	for rows.Next() {
		var c CaseDigest
		if err := rows.Scan(&c.Position, &c.ScenarioID, &c.Kind, &c.ScenarioDigest, &c.CaptureDigest); err != nil {
			return nil, fmt.Errorf("scan case: %w", err)
		}
		cases = append(cases, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cases: %w", err)
	}
	return cases, nil
}

func scanRun(rows *sql.Rows) (Run, error) {
	var run Run
	var generatedAt string
	if err := rows.Scan(&run.ID, &run.Seq, &run.SourceVersion, &generatedAt, &run.Cases); err != nil {
		return Run{}, fmt.Errorf("scan run: %w", err)
	}
	t, err := time.Parse(time.RFC3339Nano, generatedAt)
	if err != nil {
		return Run{}, fmt.Errorf("scan run %s: generated_at: %w", run.ID, err)
	}
	run.GeneratedAt = t
	return run, nil
}

func escapeLike(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '%', '_', '\\':
			out = append(out, '\\')
		}
		out = append(out, s[i])
	}
	return string(out)
}
