package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/yukikurage/lift-project-api/internal/constants"
	"github.com/yukikurage/lift-project-api/internal/models"
	"github.com/yukikurage/lift-project-api/internal/repository"
	"github.com/yukikurage/lift-project-api/internal/sanitize"
	"github.com/yukikurage/lift-project-api/internal/utils"
	"github.com/yukikurage/lift-project-api/internal/validation"
)

// ErrProjectNotFound is returned for missing projects and projects owned by
// another user.
var ErrProjectNotFound = repository.ErrProjectNotFound

// ProjectService handles project business logic
type ProjectService struct {
	projectRepo repository.ProjectRepository
	validator   *validation.Validator
	now         func() time.Time
}

// NewProjectService creates a new ProjectService
func NewProjectService(projectRepo repository.ProjectRepository, catalogRepo repository.CatalogRepository) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		validator:   validation.New(catalogRepo, projectRepo),
		now:         time.Now,
	}
}

// Create validates the form and stores a new project for userID.
func (s *ProjectService) Create(ctx context.Context, userID uint64, vals *validation.Values) (*models.Project, error) {
	if err := s.validate(ctx, vals, validation.Scope{UserID: userID}); err != nil {
		return nil, err
	}

	project, sel := projectFromValues(vals)
	project.UserID = userID
	project.CreatedAt = models.FormatTimestamp(s.now())

	if err := s.projectRepo.Create(ctx, &project, sel); err != nil {
		return nil, translateProjectWriteError(err)
	}
	return &project, nil
}

// Update validates the form and replaces the stored project. The project keeps
// its creation time.
func (s *ProjectService) Update(ctx context.Context, userID, projectID uint64, vals *validation.Values) (*models.Project, error) {
	existing, err := s.projectRepo.FindOwned(ctx, projectID, userID)
	if err != nil {
		return nil, err
	}

	if err := s.validate(ctx, vals, validation.Scope{UserID: userID, ExcludeProjectID: projectID}); err != nil {
		return nil, err
	}

	project, sel := projectFromValues(vals)
	project.ID = projectID
	project.UserID = userID
	project.CreatedAt = existing.CreatedAt
	updatedAt := models.FormatTimestamp(s.now())
	project.UpdatedAt = &updatedAt

	if err := s.projectRepo.Update(ctx, &project, sel); err != nil {
		return nil, translateProjectWriteError(err)
	}
	return &project, nil
}

// Delete removes a project owned by userID.
func (s *ProjectService) Delete(ctx context.Context, userID, projectID uint64) error {
	return s.projectRepo.Delete(ctx, projectID, userID)
}

// Get returns the project with its catalog entries, text columns escaped.
func (s *ProjectService) Get(ctx context.Context, userID, projectID uint64) (*repository.ProjectDetail, error) {
	detail, err := s.projectRepo.GetDetail(ctx, projectID, userID)
	if err != nil {
		return nil, err
	}
	detail.Project = sanitize.Project(detail.Project)
	return detail, nil
}

// List returns the user's project summaries, most recent activity first.
func (s *ProjectService) List(ctx context.Context, userID uint64, page *utils.PaginationParams) ([]models.Project, int64, error) {
	return s.projectRepo.ListByUser(ctx, userID, page)
}

// ValidateField runs the live check for one project form field. excludeID is
// the project being edited, or zero.
func (s *ProjectService) ValidateField(ctx context.Context, userID uint64, key string, val validation.Value, excludeID uint64) (string, error) {
	field, ok := validation.FieldByKey(key)
	if !ok {
		return constants.MsgInvalidField, nil
	}
	return s.validator.ValidateField(ctx, field, val, validation.Scope{UserID: userID, ExcludeProjectID: excludeID})
}

func (s *ProjectService) validate(ctx context.Context, vals *validation.Values, scope validation.Scope) error {
	fieldErrs, err := s.validator.ValidateProject(ctx, vals, scope)
	if err != nil {
		return fmt.Errorf("failed to validate project: %w", err)
	}
	if len(fieldErrs) > 0 {
		return &validation.ValidationError{Fields: fieldErrs}
	}
	return nil
}

func translateProjectWriteError(err error) error {
	switch {
	case errors.Is(err, repository.ErrProjectNotFound):
		return err
	case errors.Is(err, repository.ErrDuplicateOrderNumber):
		// Another request claimed the number after validation
		return &validation.ValidationError{Fields: validation.Errors{
			validation.FieldOrderNumber.Key(): constants.MsgOrderNumberTaken,
		}}
	default:
		return fmt.Errorf("failed to save project: %w", err)
	}
}
