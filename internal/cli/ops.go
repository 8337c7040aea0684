package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/realnum/internal/harness"
)

// OpInfo describes one operation available to eval and scenarios.
type OpInfo struct {
	Name  string `json:"name"`
	Arity int    `json:"arity"`
}

// OpList is the ops command output.
type OpList []OpInfo

// String renders one operation per line.
func (l OpList) String() string {
	var b strings.Builder
	for i, op := range l {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%-14s %d", op.Name, op.Arity)
	}
	return b.String()
}

// NewOpsCommand creates the ops command.
func NewOpsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:          "ops",
		Short:        "List available operations and their arity",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := &OutputFormatter{
				Format:  rootOpts.Format,
				Writer:  cmd.OutOrStdout(),
				Verbose: rootOpts.Verbose,
			}
			return formatter.Success(listOperations())
		},
	}
}

func listOperations() OpList {
	names := harness.Operations()
	list := make(OpList, 0, len(names))
	for _, name := range names {
		arity, _ := harness.Arity(name)
		list = append(list, OpInfo{Name: name, Arity: arity})
	}
	return list
}
