package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/henderiw/rangeset/pkg/rangeset"
	"github.com/henderiw/rangeset/pkg/script"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const demoScript = `add [1, 5)
print
add [10, 20)
print
add [20, 20)
print
add [20, 21)
print
add [2, 4)
print
add [3, 8)
print
remove [10, 10)
print
remove [10, 11)
print
remove [15, 17)
print
remove [3, 19)
print
`

func newDemoCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Run the documented add/remove example",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runScript(cmd, "demo", strings.NewReader(demoScript))
		},
	}
}

func newRunCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "run <script|->",
		Short: "Run a script of add, remove and print operations",
		Long: `Run a script of operations, one per line:

  add [1, 5)      union
  remove 10 11    difference (alias: del)
  print           print the current set
  # comment

Use "-" to read the script from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			var in io.Reader = cmd.InOrStdin()
			if name != "-" {
				f, err := os.Open(name)
				if err != nil {
					return fmt.Errorf("opening script: %w", err)
				}
				defer f.Close()
				in = f
			}
			return a.runScript(cmd, name, in)
		},
	}
}

func (a *app) runScript(cmd *cobra.Command, name string, in io.Reader) error {
	ops, err := script.Parse(in)
	if err != nil {
		a.log.Error("invalid script", zap.String("script", name), zap.Error(err))
		return err
	}
	a.log.Debug("running script", zap.String("script", name), zap.Int("ops", len(ops)))

	set := &rangeset.Set{}
	if err := script.Run(cmd.Context(), set, ops, cmd.OutOrStdout(), script.Options{EchoEach: a.cfg.Echo}); err != nil {
		a.log.Error("script failed", zap.String("script", name), zap.Error(err))
		return err
	}
	a.log.Debug("script done", zap.Int("ranges", set.Len()), zap.Uint64("size", set.Size()))
	return nil
}
