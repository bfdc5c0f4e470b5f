package store

import (
	"context"
	"fmt"
)

// Change classifies how a scenario differs between two runs.
type Change string

const (
	// ChangeAdded marks a scenario only present in the newer run.
	ChangeAdded Change = "added"
	// ChangeRemoved marks a scenario only present in the older run.
	ChangeRemoved Change = "removed"
	// ChangeScenario marks a scenario whose inputs were edited.
	ChangeScenario Change = "scenario"
	// ChangeOutput marks unchanged inputs that produced different output.
	ChangeOutput Change = "output"
)

// Drift is one scenario that differs between two runs.
type Drift struct {
	ScenarioID string      `json:"scenario_id"`
	Change     Change      `json:"change"`
	From       *CaseDigest `json:"from,omitempty"`
	To         *CaseDigest `json:"to,omitempty"`
}

// Drift compares two runs. Entries follow the order of the newer run, with
// removed scenarios last in the order of the older run. An edited scenario
// is reported as ChangeScenario even if its output also changed. Position
// changes alone are not drift.
func (s *Store) Drift(ctx context.Context, fromRun, toRun string) ([]Drift, error) {
	from, err := s.CaseDigests(ctx, fromRun)
	if err != nil {
		return nil, fmt.Errorf("drift: %w", err)
	}
	to, err := s.CaseDigests(ctx, toRun)
	if err != nil {
		return nil, fmt.Errorf("drift: %w", err)
	}
	return Diff(from, to), nil
}

// Diff compares two case lists.
func Diff(from, to []CaseDigest) []Drift {
	old := make(map[string]*CaseDigest, len(from))
	for i := range from {
		old[from[i].ScenarioID] = &from[i]
	}

	out := []Drift{}
	seen := make(map[string]bool, len(to))
	for i := range to {
		cur := &to[i]
		seen[cur.ScenarioID] = true
		prev, ok := old[cur.ScenarioID]
		var change Change
		switch {
		case !ok:
			change = ChangeAdded
		case prev.ScenarioDigest != cur.ScenarioDigest:
			change = ChangeScenario
		case prev.CaptureDigest != cur.CaptureDigest:
			change = ChangeOutput
		default:
			continue
		}
		out = append(out, Drift{ScenarioID: cur.ScenarioID, Change: change, From: prev, To: cur})
	}
	for i := range from {
		if !seen[from[i].ScenarioID] {
			out = append(out, Drift{ScenarioID: from[i].ScenarioID, Change: ChangeRemoved, From: &from[i]})
		}
	}
	return out
}
