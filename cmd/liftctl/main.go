// Command liftctl runs maintenance tasks against the project database.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/yukikurage/lift-project-api/internal/catalog"
	"github.com/yukikurage/lift-project-api/internal/config"
	"github.com/yukikurage/lift-project-api/internal/database"
	"github.com/yukikurage/lift-project-api/internal/logging"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "liftctl",
		Short:         "Maintenance commands for the lift project database",
		SilenceUsage:  true,
	}
	root.AddCommand(newMigrateCmd(), newSeedCmd())
	return root
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update tables and indexes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withDB(func(db *gorm.DB, log *zap.Logger) error {
				return database.Migrate(db, log)
			})
		},
	}
}

func newSeedCmd() *cobra.Command {
	var catalogFile string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Upsert the reference catalogs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := loadCatalog(catalogFile)
			if err != nil {
				return err
			}
			return withDB(func(db *gorm.DB, log *zap.Logger) error {
				if err := database.SeedCatalogs(db, data); err != nil {
					return err
				}
				for _, k := range catalog.Kinds {
					log.Info("catalog seeded", zap.Stringer("catalog", k), zap.Int("entries", len(data.Entries(k))))
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&catalogFile, "catalog", "", "YAML catalog file (defaults to the built-in catalog)")
	return cmd
}

func loadCatalog(path string) (*catalog.Data, error) {
	if path == "" {
		return catalog.Default()
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return catalog.Parse(raw)
}

func withDB(fn func(*gorm.DB, *zap.Logger) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log, err := logging.New(cfg.GinMode)
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	db, err := database.Connect(cfg, log)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	return fn(db, log)
}
