package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"taskhub-backend/services"
)

var fixUserAdminCmd = &cobra.Command{
	Use:   "fix-user-admin",
	Short: "Assign users without a creating admin to the first admin",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDatabase()
		if err != nil {
			return err
		}

		users := services.NewUserService(db, services.NewPasswordService(cfg.BcryptCost), log)
		updated, admin, err := users.AssignOrphansToFirstAdmin(cmd.Context())
		if err != nil {
			return err
		}
		if updated == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "All users already have an assigned admin.")
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Updated %d user(s) to be assigned to %s (ID: %d)\n", updated, admin.Email, admin.ID)
		return nil
	},
}
