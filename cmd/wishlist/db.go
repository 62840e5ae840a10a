package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Kerhoff/wishlists/internal/config"
)

var dbCreateCmd = &cobra.Command{
	Use:   "db-create",
	Short: "Create or upgrade the database tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDatabase(cmd, func(db *config.Database) error {
			return db.Migrate()
		})
	},
}

var dbDropCmd = &cobra.Command{
	Use:   "db-drop",
	Short: "Drop every database table",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDatabase(cmd, func(db *config.Database) error {
			return db.Drop()
		})
	},
}

func withDatabase(cmd *cobra.Command, fn func(db *config.Database) error) error {
	cfg, l, err := setup()
	if err != nil {
		return err
	}
	if cfg.Storage != config.StoragePostgres {
		return fmt.Errorf("%s requires STORAGE=%s", cmd.Name(), config.StoragePostgres)
	}

	db, err := config.NewDatabase(cmd.Context(), cfg.DatabaseURL, l)
	if err != nil {
		return err
	}
	defer db.Close()

	return fn(db)
}
