package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/realnum/internal/harness"
	"github.com/roach88/realnum/internal/realnum"
)

// EvalOptions holds flags for the eval command.
type EvalOptions struct {
	*RootOptions
	Tolerance float64 // relative tolerance for approx_equal
}

// EvalResult is the outcome of a single evaluation.
type EvalResult struct {
	Op   string   `json:"op"`
	Args []string `json:"args"`
	Kind string   `json:"kind,omitempty"`
	Text string   `json:"text"`
}

// String renders the result for text output.
func (r EvalResult) String() string {
	if r.Kind == "" {
		return r.Text
	}
	return fmt.Sprintf("%s (%s)", r.Text, r.Kind)
}

// NewEvalCommand creates the eval command.
func NewEvalCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &EvalOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "eval <op> <args...>",
		Short: "Apply one operation to literal values",
		Long: `Apply one operation to Real literals and print the result.

Literals are integers (-12), fractions (7/2), mixed numbers ("1 1/2"),
decimals (1.25) or "unset". Flags must come before the operation so that
negative literals are not read as flags.

Exit codes:
  0 - Operation succeeded
  1 - Operation failed (division by zero, negative even root, ...)
  2 - Command error (unknown op, bad literal, wrong argument count)

Examples:
  realnum eval add 1 1/2
  realnum eval pow 8 -2/3
  realnum eval --tolerance 1e-3 approx_equal 1.414 1.41421356
  realnum --format json eval sqrt 2`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEval(opts, args[0], args[1:], cmd)
		},
	}

	cmd.Flags().SetInterspersed(false)
	cmd.Flags().Float64Var(&opts.Tolerance, "tolerance", realnum.DefaultTolerance, "relative tolerance for approx_equal")

	return cmd
}

func runEval(opts *EvalOptions, op string, rawArgs []string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:  opts.Format,
		Writer:  cmd.OutOrStdout(),
		Verbose: opts.Verbose,
	}
	log := opts.logger()

	arity, ok := harness.Arity(op)
	if !ok {
		msg := fmt.Sprintf("unknown operation %q (available: %s)", op, strings.Join(harness.Operations(), ", "))
		_ = formatter.Error(CodeUsage, msg, nil)
		return NewExitError(ExitCommandError, msg)
	}
	if len(rawArgs) != arity {
		msg := fmt.Sprintf("%s takes %d argument(s), got %d", op, arity, len(rawArgs))
		_ = formatter.Error(CodeUsage, msg, nil)
		return NewExitError(ExitCommandError, msg)
	}
	if opts.Tolerance <= 0 {
		msg := fmt.Sprintf("tolerance must be positive, got %v", opts.Tolerance)
		_ = formatter.Error(CodeUsage, msg, nil)
		return NewExitError(ExitCommandError, msg)
	}

	args := make([]realnum.Real, len(rawArgs))
	for i, raw := range rawArgs {
		if raw == harness.UnsetArg {
			continue
		}
		v, err := realnum.Parse(raw)
		if err != nil {
			_ = formatter.Error(CodeParse, err.Error(), map[string]any{"arg": i, "literal": raw})
			return WrapExitError(ExitCommandError, "invalid literal", err)
		}
		log.Debug("parsed literal", "arg", i, "literal", raw, "kind", v.Kind())
		args[i] = v
	}

	out, err := harness.Apply(op, args, opts.Tolerance)
	if err != nil {
		code := harness.ErrorCode(err)
		log.Debug("operation failed", "op", op, "code", code, "error", err)

		var details any
		var re *realnum.InvalidRealError
		if errors.As(err, &re) {
			details = map[string]string{"op": re.Op, "operand": re.Operand}
		}
		_ = formatter.Error(code, err.Error(), details)

		if code == harness.CodeInvalidArgument {
			return WrapExitError(ExitCommandError, "invalid argument", err)
		}
		return WrapExitError(ExitFailure, "operation failed", err)
	}

	log.Debug("operation succeeded", "op", op, "kind", out.Kind, "text", out.Text)
	return formatter.Success(EvalResult{
		Op:   op,
		Args: rawArgs,
		Kind: out.Kind,
		Text: out.Text,
	})
}
