package main

import (
	"os"

	"github.com/henderiw/rangeset/internal/cli"
	"github.com/henderiw/rangeset/internal/logger"
	"go.uber.org/zap"
)

var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

func main() {
	log := logger.NewLogger(false)
	defer func() {
		_ = log.Sync()
	}()

	rootCmd := cli.NewRootCommand(Version, Commit, BuildDate)
	if err := rootCmd.Execute(); err != nil {
		log.Error("command failed", zap.Error(err))
		_ = log.Sync()
		os.Exit(1)
	}
}
