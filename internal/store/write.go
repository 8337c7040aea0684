package store

import (
	"context"
	"encoding/json"
	"fmt"
)

// RecordRun stores a run and its steps in one transaction.
// The ID and Seq fields of run are ignored; the recorded run is returned
// with both assigned.
func (s *Store) RecordRun(ctx context.Context, run Run) (Run, error) {
	errorsJSON, err := marshalStrings(run.Errors)
	if err != nil {
		return Run{}, fmt.Errorf("record run: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Run{}, fmt.Errorf("record run: begin tx: %w", err)
	}
	defer tx.Rollback()

	// The logical clock advances inside the transaction; the single
	// connection keeps it race-free.
	var seq int64
	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(seq), 0) + 1 FROM runs`).Scan(&seq); err != nil {
		return Run{}, fmt.Errorf("record run: next seq: %w", err)
	}

	run.ID = s.ids.Generate()
	run.Seq = seq

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, seq, scenario, pass, errors)
		VALUES (?, ?, ?, ?, ?)
	`, run.ID, run.Seq, run.Scenario, run.Pass, errorsJSON)
	if err != nil {
		return Run{}, fmt.Errorf("record run: insert run: %w", err)
	}

	for _, step := range run.Trace {
		argsJSON, err := marshalStrings(step.Args)
		if err != nil {
			return Run{}, fmt.Errorf("record run: step %d: %w", step.Seq, err)
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO steps (run_id, seq, op, args, kind, text, error)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, run.ID, step.Seq, step.Op, argsJSON, step.Kind, step.Text, step.Error)
		if err != nil {
			return Run{}, fmt.Errorf("record run: insert step %d: %w", step.Seq, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return Run{}, fmt.Errorf("record run: commit: %w", err)
	}
	return run, nil
}

// marshalStrings stores a string list as a JSON array. nil becomes [].
func marshalStrings(values []string) (string, error) {
	if values == nil {
		values = []string{}
	}
	data, err := json.Marshal(values)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func unmarshalStrings(data string) ([]string, error) {
	values := []string{}
	if data == "" {
		return values, nil
	}
	if err := json.Unmarshal([]byte(data), &values); err != nil {
		return nil, err
	}
	return values, nil
}
