package repository

import (
	"context"
	"errors"

	"github.com/yukikurage/lift-project-api/internal/catalog"
	"github.com/yukikurage/lift-project-api/internal/models"
	"github.com/yukikurage/lift-project-api/internal/utils"
)

var (
	// ErrProjectNotFound is returned for missing projects and for projects owned
	// by someone else.
	ErrProjectNotFound = errors.New("project not found")
	// ErrUnknownCatalogCode is returned when a submitted code no longer resolves
	// to a catalog row at write time.
	ErrUnknownCatalogCode = errors.New("unknown catalog code")
	// ErrDuplicateOrderNumber is returned when the per-user order number index
	// rejects a write.
	ErrDuplicateOrderNumber = errors.New("duplicate order number")
)

// Selection holds the catalog codes chosen for a project.
type Selection struct {
	ModificationTypes   []string
	ApplicableNorms     []string
	LegalizationProcess string
}

// Codes returns the codes selected from one catalog.
func (s Selection) Codes(kind catalog.Kind) []string {
	switch kind {
	case catalog.ModificationTypes:
		return s.ModificationTypes
	case catalog.ApplicableNorms:
		return s.ApplicableNorms
	case catalog.LegalizationProcesses:
		if s.LegalizationProcess == "" {
			return nil
		}
		return []string{s.LegalizationProcess}
	}
	return nil
}

// ProjectDetail is a project row with its associated catalog entries.
type ProjectDetail struct {
	Project               models.Project
	ModificationTypes     []catalog.Entry
	ApplicableNorms       []catalog.Entry
	LegalizationProcesses []catalog.Entry
}

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	// Create inserts a project and its associations in one transaction
	Create(ctx context.Context, project *models.Project, sel Selection) error

	// Update replaces the scalar columns and all associations of an owned project
	Update(ctx context.Context, project *models.Project, sel Selection) error

	// Delete removes an owned project and its associations
	Delete(ctx context.Context, projectID, userID uint64) error

	// FindOwned loads a project row if userID owns it
	FindOwned(ctx context.Context, projectID, userID uint64) (*models.Project, error)

	// GetDetail loads an owned project with its catalog entries
	GetDetail(ctx context.Context, projectID, userID uint64) (*ProjectDetail, error)

	// ListByUser returns summary rows, most recent activity first. A nil page
	// returns every row.
	ListByUser(ctx context.Context, userID uint64, page *utils.PaginationParams) ([]models.Project, int64, error)

	// OrderNumberTaken reports whether another project of userID uses orderNumber
	OrderNumberTaken(ctx context.Context, userID uint64, orderNumber string, excludeID uint64) (bool, error)
}

// CatalogRepository defines the interface for reference data access
type CatalogRepository interface {
	// Count returns how many catalog rows match the given codes
	Count(ctx context.Context, kind catalog.Kind, codes []string) (int64, error)

	// List returns every entry of a catalog ordered by id
	List(ctx context.Context, kind catalog.Kind) ([]catalog.Entry, error)
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *models.User) error

	// FindByID finds a user by ID
	FindByID(ctx context.Context, id uint64) (*models.User, error)

	// FindByEmail finds a user by normalized email
	FindByEmail(ctx context.Context, email string) (*models.User, error)

	// EmailExists reports whether a normalized email is registered
	EmailExists(ctx context.Context, email string) (bool, error)
}
