// Package store provides SQLite-backed history of scenario runs.
//
// Each recorded run keeps the scenario name, the pass/fail outcome, the
// expectation failures and the full step trace, so that a later run can be
// compared against the last recorded one.
//
// # Ordering
//
// Runs are ordered by seq, a logical clock assigned inside the insert
// transaction. Wall-clock time is never stored; two databases fed the same
// runs in the same order hold identical rows apart from run IDs.
//
// All queries order by seq ASC, id ASC COLLATE BINARY.
package store
