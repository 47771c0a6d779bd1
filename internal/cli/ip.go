package cli

import (
	"fmt"

	"github.com/henderiw/rangeset/pkg/iprangeset"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newIPCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ip (add|remove) <addr|prefix|range> ...",
		Short: "Apply IPv4 address operations and print the resulting ranges",
		Example: `  rangeset ip add 10.0.0.0/24 remove 10.0.0.10-10.0.0.19
  rangeset ip add 192.168.0.1 add 192.168.0.2`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 || len(args)%2 != 0 {
				return fmt.Errorf("expects pairs of operation and address, received %d arg(s)", len(args))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			var set iprangeset.Set
			for i := 0; i < len(args); i += 2 {
				verb, arg := args[i], args[i+1]
				var err error
				switch verb {
				case "add":
					err = set.AddString(arg)
				case "remove", "del":
					err = set.RemoveString(arg)
				default:
					err = fmt.Errorf("unknown operation %q", verb)
				}
				if err != nil {
					a.log.Error("ip operation failed", zap.String("op", verb), zap.String("arg", arg), zap.Error(err))
					return err
				}
				if a.cfg.Echo {
					fmt.Fprintln(cmd.OutOrStdout(), set.String())
				}
			}
			if !a.cfg.Echo {
				fmt.Fprintln(cmd.OutOrStdout(), set.String())
			}
			return nil
		},
	}
}
