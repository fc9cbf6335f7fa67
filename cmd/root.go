package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"travel-admin/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// version is overridden at build time with -ldflags "-X travel-admin/cmd.version=...".
var version = "dev"

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "travel-admin",
	Short: "Travel Admin Service",
	Long: `Travel Admin keeps the association tables of the travel catalogue in sync.
It serves the link API used by the dashboard and offers the same reconciliation from the command line.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := RootCmd.ExecuteContext(ctx); err != nil {
		// Console encoding at debug level gives ISO8601 timestamps for CLI users
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Println(err)
		}
		stop()
		os.Exit(1)
	}
}
