package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/realnum/internal/harness"
	"github.com/roach88/realnum/internal/store"
)

// seedHistory records a passing "halves" run and a failing "wrong" run.
func seedHistory(t *testing.T) string {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "runs.db")
	history, err := store.Open(dbPath, store.WithIDGenerator(store.NewFixedGenerator("run-a", "run-b")))
	require.NoError(t, err)
	defer history.Close()

	passing := harness.NewResult()
	passing.AddTrace(harness.TraceEvent{Seq: 1, Op: "add", Args: []string{"1/2", "1/2"}, Kind: "rational", Text: "1/1"})
	_, err = history.RecordRun(context.Background(), store.NewRun("halves", passing))
	require.NoError(t, err)

	failing := harness.NewResult()
	failing.AddTrace(harness.TraceEvent{Seq: 1, Op: "div", Args: []string{"1", "0"}, Error: "DIVISION_BY_ZERO"})
	failing.AddError("step 1 (div): result: expected success, got DIVISION_BY_ZERO")
	_, err = history.RecordRun(context.Background(), store.NewRun("wrong", failing))
	require.NoError(t, err)

	return dbPath
}

func executeHistory(t *testing.T, format string, args ...string) (string, error) {
	t.Helper()

	buf := &bytes.Buffer{}
	cmd := NewHistoryCommand(&RootOptions{Format: format})
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)

	err := cmd.Execute()
	return buf.String(), err
}

func TestHistoryCommandList(t *testing.T) {
	dbPath := seedHistory(t)

	out, err := executeHistory(t, "text", "--db", dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, "   1  run-a  pass  halves")
	assert.Contains(t, out, "   2  run-b  FAIL  wrong")
}

func TestHistoryCommandListFiltered(t *testing.T) {
	dbPath := seedHistory(t)

	out, err := executeHistory(t, "json", "--db", dbPath, "--scenario", "wrong")
	require.NoError(t, err)

	var resp struct {
		Status string      `json:"status"`
		Data   []store.Run `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "run-b", resp.Data[0].ID)
	assert.False(t, resp.Data[0].Pass)
}

func TestHistoryCommandShowRun(t *testing.T) {
	dbPath := seedHistory(t)

	out, err := executeHistory(t, "text", "--db", dbPath, "run-b")
	require.NoError(t, err)
	assert.Contains(t, out, "run run-b (seq 2): wrong FAIL")
	assert.Contains(t, out, "$1 div 1 0 -> error DIVISION_BY_ZERO")

	out, err = executeHistory(t, "text", "--db", dbPath, "run-a")
	require.NoError(t, err)
	assert.Contains(t, out, "$1 add 1/2 1/2 -> 1/1 (rational)")
}

func TestHistoryCommandUnknownRun(t *testing.T) {
	dbPath := seedHistory(t)

	out, err := executeHistory(t, "json", "--db", dbPath, "missing")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, CodeNotFound, resp.Error.Code)
}

func TestHistoryCommandMissingDatabase(t *testing.T) {
	_, err := executeHistory(t, "text", "--db", filepath.Join(t.TempDir(), "none.db"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "run history not found")

	_, err = executeHistory(t, "text")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required flag")
}

func TestRunListEmpty(t *testing.T) {
	assert.Equal(t, "No runs recorded.", RunList{}.String())
}
