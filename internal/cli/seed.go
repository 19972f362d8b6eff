package cli

import (
	"errors"
	"fmt"

	"github.com/Tapee2025/TCITapeecement2025-sub000/internal/database"
	"github.com/Tapee2025/TCITapeecement2025-sub000/internal/services"
	"github.com/Tapee2025/TCITapeecement2025-sub000/pkg/logger"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(seedAdminCmd)
	seedAdminCmd.Flags().String("email", "", "Admin email (defaults to ADMIN_EMAIL)")
	seedAdminCmd.Flags().String("password", "", "Admin password (defaults to ADMIN_PASSWORD)")
}

var seedAdminCmd = &cobra.Command{
	Use:   "seed-admin",
	Short: "Create the admin account if it does not exist",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := bootstrap(false)
		if err != nil {
			return err
		}
		defer logger.Sync()

		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")
		if email == "" {
			email = cfg.AdminEmail
		}
		if password == "" {
			password = cfg.AdminPassword
		}
		if email == "" || password == "" {
			return errors.New("admin email and password are required")
		}

		if err := database.AutoMigrate(database.DB); err != nil {
			return err
		}
		created, err := services.EnsureAdminUser(email, password)
		if err != nil {
			return err
		}
		if created {
			fmt.Fprintf(cmd.OutOrStdout(), "admin %s created\n", email)
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "admin %s already exists\n", email)
		}
		return nil
	},
}
