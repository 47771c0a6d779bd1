package cli

import (
	"fmt"

	"github.com/henderiw/rangeset/internal/config"
	"github.com/henderiw/rangeset/internal/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// app is the state shared by all subcommands once flags and configuration
// are resolved.
type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     *config.Config
	log     *zap.Logger
}

func NewRootCommand(version, commit, buildDate string) *cobra.Command {
	a := &app{v: viper.New(), log: zap.NewNop()}

	rootCmd := &cobra.Command{
		Use:   "rangeset",
		Short: "rangeset maintains sets of half-open integer ranges",
		Long: `rangeset maintains a canonical set of disjoint half-open integer ranges
[start, end). Ranges are added (union) and removed (difference) and the
set is always printed in its merged, sorted form, e.g. "[1, 8) [11, 21)".`,
		Version:       fmt.Sprintf("%s (commit %s, built %s)", version, commit, buildDate),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.v, a.cfgFile)
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.log = logger.NewLogger(cfg.Debug)
			a.log.Debug("configuration loaded", zap.String("file", a.v.ConfigFileUsed()), zap.Bool("echo", cfg.Echo))
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.log.Sync()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default is .rangeset.yaml in the working or home directory)")
	flags.Bool("debug", false, "enable debug logging")
	flags.Bool("echo", false, "print the set after every add and remove")
	_ = a.v.BindPFlag("debug", flags.Lookup("debug"))
	_ = a.v.BindPFlag("echo", flags.Lookup("echo"))

	rootCmd.AddCommand(
		newDemoCommand(a),
		newRunCommand(a),
		newIPCommand(a),
	)
	return rootCmd
}
