package cmd

import (
	"fmt"
	"os"

	"ordered-sync/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "ordered-sync",
	Short: "Ordered data synchronization",
	Long: `ordered-sync keeps a target data set equal to a source data set.
Both sides are streamed in key order and compared in a single pass, so
neither is ever loaded into memory.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Console format with ISO8601 timestamps to match the rest of the CLI output.
		l, logErr := logger.New(&logger.Config{Level: "debug", Format: "console"})
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Println(err)
		}
		os.Exit(1)
	}
}
