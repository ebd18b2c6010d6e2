package commands

import (
	dbadapter "yatube/internal/adapters/database"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(a *app) error {
			if err := dbadapter.AutoMigrate(a.db); err != nil {
				return err
			}
			a.logger.Info("✅ Database migrations completed")
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
