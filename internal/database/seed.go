package database

import (
	"fmt"

	"github.com/yukikurage/lift-project-api/internal/catalog"
	"github.com/yukikurage/lift-project-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SeedCatalogs upserts the reference catalogs by code. Labels of existing codes
// are refreshed; codes missing from data are left in place so that old projects
// keep their associations.
func SeedCatalogs(db *gorm.DB, data *catalog.Data) error {
	upsert := clause.OnConflict{
		Columns:   []clause.Column{{Name: "code"}},
		DoUpdates: clause.AssignmentColumns([]string{"label"}),
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if rows := modificationTypeRows(data.ModificationTypes); len(rows) > 0 {
			if err := tx.Clauses(upsert).Create(&rows).Error; err != nil {
				return fmt.Errorf("seed %s: %w", catalog.ModificationTypes, err)
			}
		}
		if rows := applicableNormRows(data.ApplicableNorms); len(rows) > 0 {
			if err := tx.Clauses(upsert).Create(&rows).Error; err != nil {
				return fmt.Errorf("seed %s: %w", catalog.ApplicableNorms, err)
			}
		}
		if rows := legalizationProcessRows(data.LegalizationProcesses); len(rows) > 0 {
			if err := tx.Clauses(upsert).Create(&rows).Error; err != nil {
				return fmt.Errorf("seed %s: %w", catalog.LegalizationProcesses, err)
			}
		}
		return nil
	})
}

func modificationTypeRows(entries []catalog.Entry) []models.ModificationType {
	rows := make([]models.ModificationType, len(entries))
	for i, e := range entries {
		rows[i] = models.ModificationType{Code: e.Code, Label: e.Label}
	}
	return rows
}

func applicableNormRows(entries []catalog.Entry) []models.ApplicableNorm {
	rows := make([]models.ApplicableNorm, len(entries))
	for i, e := range entries {
		rows[i] = models.ApplicableNorm{Code: e.Code, Label: e.Label}
	}
	return rows
}

func legalizationProcessRows(entries []catalog.Entry) []models.LegalizationProcess {
	rows := make([]models.LegalizationProcess, len(entries))
	for i, e := range entries {
		rows[i] = models.LegalizationProcess{Code: e.Code, Label: e.Label}
	}
	return rows
}
