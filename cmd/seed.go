package cmd

import (
	"github.com/spf13/cobra"

	"taskhub-backend/config"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed reference data and, when SEED_ADMIN_* is set, a first admin",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDatabase()
		if err != nil {
			return err
		}
		return config.SeedDatabase(cmd.Context(), db, cfg, log)
	},
}
