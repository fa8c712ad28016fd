package database

import (
	"fmt"

	"github.com/yukikurage/lift-project-api/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Models lists every table in dependency order.
var Models = []interface{}{
	&models.User{},
	&models.Project{},
	&models.ModificationType{},
	&models.ApplicableNorm{},
	&models.LegalizationProcess{},
	&models.ProjectModificationType{},
	&models.ProjectApplicableNorm{},
	&models.ProjectLegalizationProcess{},
}

// Migrate creates or updates the schema and makes sure the named indexes exist.
func Migrate(db *gorm.DB, log *zap.Logger) error {
	log.Info("running database migrations")
	if err := db.AutoMigrate(Models...); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	if err := EnsureIndexes(db, log); err != nil {
		return err
	}
	log.Info("database migrations completed")
	return nil
}

// EnsureIndexes creates the indexes the ownership and ordering queries depend on
// when an older schema is missing them.
func EnsureIndexes(db *gorm.DB, log *zap.Logger) error {
	indexes := []struct {
		model interface{}
		name  string
	}{
		// Per-user order number uniqueness
		{&models.Project{}, "idx_projects_user_order"},
		// Reverse lookups from catalog rows
		{&models.ProjectModificationType{}, "idx_pmt_modification_type_id"},
		{&models.ProjectApplicableNorm{}, "idx_pan_applicable_norm_id"},
		{&models.ProjectLegalizationProcess{}, "idx_plp_legalization_process_id"},
	}

	m := db.Migrator()
	for _, idx := range indexes {
		if m.HasIndex(idx.model, idx.name) {
			log.Debug("index already exists, skipping", zap.String("index", idx.name))
			continue
		}
		if err := m.CreateIndex(idx.model, idx.name); err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}
		log.Info("created index", zap.String("index", idx.name))
	}
	return nil
}
