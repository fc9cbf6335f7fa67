package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// migrateCmd creates or updates the association tables.
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the association tables",
	Long: `Runs the schema migration for every relationship kind and then reports
any table still missing the columns the reconciler needs.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		env, err := newEnvironment(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		if err := env.service.Migrate(ctx); err != nil {
			return err
		}

		statuses, err := env.service.CheckSchema(ctx)
		if err != nil {
			return err
		}
		for _, s := range statuses {
			if s.OK {
				env.logger.Info("Table ready", zap.String("kind", s.Kind), zap.String("table", s.Table))
				continue
			}
			env.logger.Warn("Table incomplete",
				zap.String("kind", s.Kind),
				zap.String("table", s.Table),
				zap.Strings("missing", s.Missing),
			)
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(migrateCmd)
}
