package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/realnum/internal/store"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Database string
	Scenario string
}

// RunList is the history listing output.
type RunList []store.Run

// String renders one run per line, oldest first.
func (l RunList) String() string {
	if len(l) == 0 {
		return "No runs recorded."
	}
	var b strings.Builder
	for i, run := range l {
		if i > 0 {
			b.WriteByte('\n')
		}
		status := "pass"
		if !run.Pass {
			status = "FAIL"
		}
		fmt.Fprintf(&b, "%4d  %s  %-4s  %s", run.Seq, run.ID, status, run.Scenario)
	}
	return b.String()
}

// RunDetail is the output for a single run.
type RunDetail store.Run

// String renders the run header followed by its trace.
func (d RunDetail) String() string {
	var b strings.Builder
	status := "pass"
	if !d.Pass {
		status = "FAIL"
	}
	fmt.Fprintf(&b, "run %s (seq %d): %s %s", d.ID, d.Seq, d.Scenario, status)
	for _, e := range d.Errors {
		fmt.Fprintf(&b, "\n  %s", e)
	}
	for _, step := range d.Trace {
		result := step.Text
		switch {
		case step.Error != "":
			result = "error " + step.Error
		case step.Kind != "":
			result = fmt.Sprintf("%s (%s)", step.Text, step.Kind)
		}
		fmt.Fprintf(&b, "\n  $%d %s %s -> %s", step.Seq, step.Op, strings.Join(step.Args, " "), result)
	}
	return b.String()
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history [run-id]",
		Short: "Show recorded scenario runs",
		Long: `Show scenario runs recorded by "realnum test --db".

Without arguments, lists runs oldest first. With a run ID, prints that
run's trace.

Examples:
  realnum history --db runs.db
  realnum history --db runs.db --scenario roots
  realnum history --db runs.db 01927c8e-...`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(opts, args, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "run history database (required)")
	cmd.Flags().StringVar(&opts.Scenario, "scenario", "", "only list runs of this scenario")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runHistory(opts *HistoryOptions, args []string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:  opts.Format,
		Writer:  cmd.OutOrStdout(),
		Verbose: opts.Verbose,
	}

	// Opening creates the file, so a missing database is reported instead.
	if _, err := os.Stat(opts.Database); err != nil {
		return NewExitError(ExitCommandError, fmt.Sprintf("run history not found: %s", opts.Database))
	}

	history, err := store.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open run history", err)
	}
	defer history.Close()

	ctx := cmd.Context()

	if len(args) == 1 {
		run, err := history.ReadRun(ctx, args[0])
		if errors.Is(err, store.ErrRunNotFound) {
			_ = formatter.Error(CodeNotFound, err.Error(), nil)
			return WrapExitError(ExitFailure, "run not found", err)
		}
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to read run", err)
		}
		return formatter.Success(RunDetail(run))
	}

	runs, err := history.ListRuns(ctx, opts.Scenario)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to list runs", err)
	}
	opts.logger().Debug("listed runs", "count", len(runs), "scenario", opts.Scenario)
	return formatter.Success(RunList(runs))
}
