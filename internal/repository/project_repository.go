package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/yukikurage/lift-project-api/internal/catalog"
	"github.com/yukikurage/lift-project-api/internal/database"
	"github.com/yukikurage/lift-project-api/internal/models"
	"github.com/yukikurage/lift-project-api/internal/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// summaryColumns are the columns returned by ListByUser.
var summaryColumns = []string{"id", "user_id", "order_number", "rae", "lift_address", "created_at", "updated_at"}

// GormProjectRepository is a GORM implementation of ProjectRepository
type GormProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &GormProjectRepository{db: db}
}

// Create inserts the row, then its association rows
func (r *GormProjectRepository) Create(ctx context.Context, project *models.Project, sel Selection) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(project).Error; err != nil {
			return translateWriteError(err)
		}
		return insertAssociations(tx, project.ID, sel)
	})
}

// Update overwrites every scalar column except ownership and creation time,
// then replaces the association rows
func (r *GormProjectRepository) Update(ctx context.Context, project *models.Project, sel Selection) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Project{}).
			Where("id = ? AND user_id = ?", project.ID, project.UserID).
			Select("*").
			Omit("id", "user_id", "created_at").
			Updates(project)
		if result.Error != nil {
			return translateWriteError(result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrProjectNotFound
		}

		if err := deleteAssociations(tx, project.ID); err != nil {
			return err
		}
		return insertAssociations(tx, project.ID, sel)
	})
}

// Delete removes the association rows, then the project
func (r *GormProjectRepository) Delete(ctx context.Context, projectID, userID uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := findOwned(tx, projectID, userID); err != nil {
			return err
		}
		if err := deleteAssociations(tx, projectID); err != nil {
			return err
		}
		result := tx.Where("id = ? AND user_id = ?", projectID, userID).Delete(&models.Project{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrProjectNotFound
		}
		return nil
	})
}

// FindOwned loads a project row
func (r *GormProjectRepository) FindOwned(ctx context.Context, projectID, userID uint64) (*models.Project, error) {
	return findOwned(r.db.WithContext(ctx), projectID, userID)
}

// GetDetail loads a project row with the entries of each catalog
func (r *GormProjectRepository) GetDetail(ctx context.Context, projectID, userID uint64) (*ProjectDetail, error) {
	db := r.db.WithContext(ctx)

	project, err := findOwned(db, projectID, userID)
	if err != nil {
		return nil, err
	}

	detail := &ProjectDetail{Project: *project}
	for _, kind := range catalog.Kinds {
		entries, err := entriesFor(db, kind, projectID)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", kind, err)
		}
		switch kind {
		case catalog.ModificationTypes:
			detail.ModificationTypes = entries
		case catalog.ApplicableNorms:
			detail.ApplicableNorms = entries
		case catalog.LegalizationProcesses:
			detail.LegalizationProcesses = entries
		}
	}
	return detail, nil
}

// ListByUser returns summary rows of the user's projects
func (r *GormProjectRepository) ListByUser(ctx context.Context, userID uint64, page *utils.PaginationParams) ([]models.Project, int64, error) {
	owned := func() *gorm.DB {
		return r.db.WithContext(ctx).Model(&models.Project{}).Scopes(database.OwnedBy(userID))
	}

	var total int64
	if err := owned().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := owned().Select(summaryColumns).Scopes(database.RecentActivityFirst)
	if page != nil {
		listQuery = listQuery.Scopes(database.Paginate(*page))
	}

	projects := []models.Project{}
	if err := listQuery.Find(&projects).Error; err != nil {
		return nil, 0, err
	}
	return projects, total, nil
}

// OrderNumberTaken reports an order number collision, ignoring excludeID
func (r *GormProjectRepository) OrderNumberTaken(ctx context.Context, userID uint64, orderNumber string, excludeID uint64) (bool, error) {
	query := r.db.WithContext(ctx).Model(&models.Project{}).
		Where("user_id = ? AND order_number = ?", userID, orderNumber)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func findOwned(db *gorm.DB, projectID, userID uint64) (*models.Project, error) {
	var project models.Project
	err := db.Where("id = ? AND user_id = ?", projectID, userID).First(&project).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProjectNotFound
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func deleteAssociations(tx *gorm.DB, projectID uint64) error {
	for _, model := range []interface{}{
		&models.ProjectModificationType{},
		&models.ProjectApplicableNorm{},
		&models.ProjectLegalizationProcess{},
	} {
		if err := tx.Where("project_id = ?", projectID).Delete(model).Error; err != nil {
			return err
		}
	}
	return nil
}

// insertAssociations resolves each catalog's codes in one query and bulk
// inserts the join rows. Every code must resolve.
func insertAssociations(tx *gorm.DB, projectID uint64, sel Selection) error {
	for _, kind := range catalog.Kinds {
		codes := sel.Codes(kind)
		if len(codes) == 0 {
			continue
		}

		ids, err := resolveIDs(tx, kind, codes)
		if err != nil {
			return fmt.Errorf("resolve %s: %w", kind, err)
		}
		resolved := make([]uint64, len(codes))
		for i, code := range codes {
			id, ok := ids[code]
			if !ok {
				return fmt.Errorf("%w: %s %q", ErrUnknownCatalogCode, kind, code)
			}
			resolved[i] = id
		}

		if err := insertJoinRows(tx, kind, projectID, resolved); err != nil {
			return fmt.Errorf("link %s: %w", kind, err)
		}
	}
	return nil
}

func insertJoinRows(tx *gorm.DB, kind catalog.Kind, projectID uint64, ids []uint64) error {
	tx = tx.Omit(clause.Associations)
	switch kind {
	case catalog.ModificationTypes:
		rows := make([]models.ProjectModificationType, len(ids))
		for i, id := range ids {
			rows[i] = models.ProjectModificationType{ProjectID: projectID, ModificationTypeID: id}
		}
		return tx.Create(&rows).Error
	case catalog.ApplicableNorms:
		rows := make([]models.ProjectApplicableNorm, len(ids))
		for i, id := range ids {
			rows[i] = models.ProjectApplicableNorm{ProjectID: projectID, ApplicableNormID: id}
		}
		return tx.Create(&rows).Error
	case catalog.LegalizationProcesses:
		rows := make([]models.ProjectLegalizationProcess, len(ids))
		for i, id := range ids {
			rows[i] = models.ProjectLegalizationProcess{ProjectID: projectID, LegalizationProcessID: id}
		}
		return tx.Create(&rows).Error
	}
	return fmt.Errorf("unknown catalog kind %s", kind)
}

func translateWriteError(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: %v", ErrDuplicateOrderNumber, err)
	}
	return err
}
