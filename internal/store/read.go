package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/realnum/internal/harness"
)

// ListRuns returns recorded runs without their traces, oldest first.
// An empty scenario lists every run.
//
// Returns an empty slice (not nil) if nothing has been recorded.
func (s *Store) ListRuns(ctx context.Context, scenario string) ([]Run, error) {
	query := `
		SELECT id, seq, scenario, pass, errors
		FROM runs
		ORDER BY seq ASC, id COLLATE BINARY ASC
	`
	var args []any
	if scenario != "" {
		query = `
			SELECT id, seq, scenario, pass, errors
			FROM runs
			WHERE scenario = ?
			ORDER BY seq ASC, id COLLATE BINARY ASC
		`
		args = append(args, scenario)
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

// ReadRun returns a run and its trace by ID.
// Returns ErrRunNotFound if no such run exists.
func (s *Store) ReadRun(ctx context.Context, id string) (Run, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, seq, scenario, pass, errors
		FROM runs
		WHERE id = ?
	`, id)
	return s.readRunRow(ctx, row, id)
}

// LastRun returns the most recently recorded run of a scenario, with its
// trace. Returns ErrRunNotFound if the scenario was never recorded.
func (s *Store) LastRun(ctx context.Context, scenario string) (Run, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, seq, scenario, pass, errors
		FROM runs
		WHERE scenario = ?
		ORDER BY seq DESC
		LIMIT 1
	`, scenario)
	return s.readRunRow(ctx, row, scenario)
}

func (s *Store) readRunRow(ctx context.Context, row *sql.Row, key string) (Run, error) {
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("%w: %s", ErrRunNotFound, key)
	}
	if err != nil {
		return Run{}, err
	}

	run.Trace, err = s.readSteps(ctx, run.ID)
	if err != nil {
		return Run{}, err
	}
	return run, nil
}

// readSteps returns a run's trace ordered by step seq.
func (s *Store) readSteps(ctx context.Context, runID string) ([]harness.TraceEvent, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT seq, op, args, kind, text, error
		FROM steps
		WHERE run_id = ?
		ORDER BY seq ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("query steps: %w", err)
	}
	defer rows.Close()

	trace := []harness.TraceEvent{}
	for rows.Next() {
		var (
			event    harness.TraceEvent
			argsJSON string
		)
		if err := rows.Scan(&event.Seq, &event.Op, &argsJSON, &event.Kind, &event.Text, &event.Error); err != nil {
			return nil, fmt.Errorf("scan step: %w", err)
		}
		if event.Args, err = unmarshalStrings(argsJSON); err != nil {
			return nil, fmt.Errorf("unmarshal step args: %w", err)
		}
		trace = append(trace, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate steps: %w", err)
	}
	return trace, nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (Run, error) {
	var (
		run        Run
		errorsJSON string
	)
	if err := row.Scan(&run.ID, &run.Seq, &run.Scenario, &run.Pass, &errorsJSON); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Run{}, err
		}
		return Run{}, fmt.Errorf("scan run: %w", err)
	}

	var err error
	if run.Errors, err = unmarshalStrings(errorsJSON); err != nil {
		return Run{}, fmt.Errorf("unmarshal run errors: %w", err)
	}
	return run, nil
}
