package repository

import (
	"context"
	"fmt"

	"github.com/yukikurage/lift-project-api/internal/catalog"
	"github.com/yukikurage/lift-project-api/internal/models"
	"gorm.io/gorm"
)

// catalogTables names the tables behind one catalog kind. Values come from a
// closed switch so request input never reaches query text.
type catalogTables struct {
	model      interface{}
	table      string
	joinTable  string
	joinColumn string
}

func tablesFor(kind catalog.Kind) (catalogTables, error) {
	switch kind {
	case catalog.ModificationTypes:
		return catalogTables{&models.ModificationType{}, "modification_types", "project_modification_types", "modification_type_id"}, nil
	case catalog.ApplicableNorms:
		return catalogTables{&models.ApplicableNorm{}, "applicable_norms", "project_applicable_norms", "applicable_norm_id"}, nil
	case catalog.LegalizationProcesses:
		return catalogTables{&models.LegalizationProcess{}, "legalization_processes", "project_legalization_processes", "legalization_process_id"}, nil
	}
	return catalogTables{}, fmt.Errorf("unknown catalog kind %s", kind)
}

type catalogRow struct {
	ID    uint64
	Code  string
	Label string
}

// GormCatalogRepository is a GORM implementation of CatalogRepository
type GormCatalogRepository struct {
	db *gorm.DB
}

// NewCatalogRepository creates a new CatalogRepository
func NewCatalogRepository(db *gorm.DB) CatalogRepository {
	return &GormCatalogRepository{db: db}
}

// Count returns how many rows of the catalog have one of the given codes
func (r *GormCatalogRepository) Count(ctx context.Context, kind catalog.Kind, codes []string) (int64, error) {
	t, err := tablesFor(kind)
	if err != nil {
		return 0, err
	}
	if len(codes) == 0 {
		return 0, nil
	}

	var count int64
	err = r.db.WithContext(ctx).Model(t.model).Where("code IN ?", codes).Count(&count).Error
	return count, err
}

// List returns every entry of the catalog
func (r *GormCatalogRepository) List(ctx context.Context, kind catalog.Kind) ([]catalog.Entry, error) {
	t, err := tablesFor(kind)
	if err != nil {
		return nil, err
	}

	var rows []catalogRow
	if err := r.db.WithContext(ctx).Model(t.model).Select("id, code, label").Order("id").Scan(&rows).Error; err != nil {
		return nil, err
	}
	return toEntries(rows), nil
}

// resolveIDs maps codes to catalog ids with one query
func resolveIDs(tx *gorm.DB, kind catalog.Kind, codes []string) (map[string]uint64, error) {
	ids := make(map[string]uint64, len(codes))
	if len(codes) == 0 {
		return ids, nil
	}
	t, err := tablesFor(kind)
	if err != nil {
		return nil, err
	}

	var rows []catalogRow
	if err := tx.Model(t.model).Select("id, code").Where("code IN ?", codes).Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		ids[row.Code] = row.ID
	}
	return ids, nil
}

// entriesFor loads the catalog entries linked to a project
func entriesFor(tx *gorm.DB, kind catalog.Kind, projectID uint64) ([]catalog.Entry, error) {
	t, err := tablesFor(kind)
	if err != nil {
		return nil, err
	}

	var rows []catalogRow
	err = tx.Table(t.table).
		Select(t.table+".id, "+t.table+".code, "+t.table+".label").
		Joins("JOIN "+t.joinTable+" ON "+t.joinTable+"."+t.joinColumn+" = "+t.table+".id").
		Where(t.joinTable+".project_id = ?", projectID).
		Order(t.table + ".id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return toEntries(rows), nil
}

func toEntries(rows []catalogRow) []catalog.Entry {
	entries := make([]catalog.Entry, len(rows))
	for i, row := range rows {
		entries[i] = catalog.Entry{Code: row.Code, Label: row.Label}
	}
	return entries
}
