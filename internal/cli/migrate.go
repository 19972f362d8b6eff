package cli

import (
	"github.com/Tapee2025/TCITapeecement2025-sub000/internal/database"
	"github.com/Tapee2025/TCITapeecement2025-sub000/pkg/logger"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(migrateCmd)
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := bootstrap(false); err != nil {
			return err
		}
		defer logger.Sync()

		if err := database.AutoMigrate(database.DB); err != nil {
			return err
		}
		logger.Log.Info("schema migrated")
		return nil
	},
}
