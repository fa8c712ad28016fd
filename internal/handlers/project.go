package handlers

import (
	"errors"
	"mime"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/lift-project-api/internal/dto"
	apierrors "github.com/yukikurage/lift-project-api/internal/errors"
	"github.com/yukikurage/lift-project-api/internal/middleware"
	"github.com/yukikurage/lift-project-api/internal/repository"
	"github.com/yukikurage/lift-project-api/internal/services"
	"github.com/yukikurage/lift-project-api/internal/utils"
	"github.com/yukikurage/lift-project-api/internal/validation"
	"go.uber.org/zap"
)

// ProjectHandler handles project-related HTTP requests
type ProjectHandler struct {
	projectService  *services.ProjectService
	documentService *services.DocumentService
}

// NewProjectHandler creates a new ProjectHandler
func NewProjectHandler(projectService *services.ProjectService, documentService *services.DocumentService) *ProjectHandler {
	return &ProjectHandler{
		projectService:  projectService,
		documentService: documentService,
	}
}

// ListProjects returns the current user's projects, most recent activity first.
// Pagination applies only when a page is requested.
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	var page *utils.PaginationParams
	if params, requested := utils.GetPaginationParams(c); requested {
		page = &params
	}

	projects, total, err := h.projectService.List(c.Request.Context(), userID, page)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	resp := gin.H{
		"success":  true,
		"projects": dto.ToProjectSummaryDTOs(projects),
	}
	if page != nil {
		resp["pagination"] = utils.PaginationResponse{
			Page:  page.Page,
			Limit: page.Limit,
			Total: total,
		}
	}
	c.JSON(http.StatusOK, resp)
}

// CreateProject validates and stores a new project
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	var req dto.ProjectRequest
	if err := c.ShouldBind(&req); err != nil {
		apierrors.BadRequest(c, "")
		return
	}

	project, err := h.projectService.Create(c.Request.Context(), userID, req.Values())
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"project": dto.ToProjectSummaryDTO(*project),
	})
}

// GetProject returns a project with its catalog entries, text escaped
func (h *ProjectHandler) GetProject(c *gin.Context) {
	project, ok := middleware.GetProject(c)
	if !ok {
		apierrors.NotFound(c, "")
		return
	}

	detail, err := h.projectService.Get(c.Request.Context(), project.UserID, project.ID)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    dto.ToProjectDetailDTO(*detail),
	})
}

// UpdateProject validates and fully replaces a project
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	project, ok := middleware.GetProject(c)
	if !ok {
		apierrors.NotFound(c, "")
		return
	}

	var req dto.ProjectRequest
	if err := c.ShouldBind(&req); err != nil {
		apierrors.BadRequest(c, "")
		return
	}

	updated, err := h.projectService.Update(c.Request.Context(), project.UserID, project.ID, req.Values())
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"project": dto.ToProjectSummaryDTO(*updated),
	})
}

// DeleteProject removes a project and its associations
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	project, ok := middleware.GetProject(c)
	if !ok {
		apierrors.NotFound(c, "")
		return
	}

	if err := h.projectService.Delete(c.Request.Context(), project.UserID, project.ID); err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"id":      project.ID,
	})
}

// ValidateField checks one project form field for the live form. project_id
// names the project being edited so its own order number is not a conflict.
func (h *ProjectHandler) ValidateField(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	var req dto.ValidateFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "")
		return
	}

	msg, err := h.projectService.ValidateField(c.Request.Context(), userID, req.Field, req.FieldValue(), req.ExcludeID())
	if err != nil {
		middleware.Logger(c).Error("failed to validate project field", zap.String("field", req.Field), zap.Error(err))
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, dto.ValidateFieldResponse{
		Success: msg == "",
		Message: msg,
	})
}

// GetDocument prints the project to PDF and serves it inline
func (h *ProjectHandler) GetDocument(c *gin.Context) {
	project, ok := middleware.GetProject(c)
	if !ok {
		apierrors.NotFound(c, "")
		return
	}

	doc, err := h.documentService.Render(c.Request.Context(), project.ID, project.UserID)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.Header("Content-Disposition", contentDisposition("inline", doc.Filename))
	c.Data(http.StatusOK, "application/pdf", doc.Content)
}

// fallbackDisposition is sent when the filename cannot be encoded
const fallbackDisposition = `inline; filename="proyecto.pdf"`

func contentDisposition(disposition, filename string) string {
	if v := mime.FormatMediaType(disposition, map[string]string{"filename": filename}); v != "" {
		return v
	}
	return fallbackDisposition
}

func respondProjectError(c *gin.Context, err error) {
	var fieldErr *validation.ValidationError
	switch {
	case errors.As(err, &fieldErr):
		apierrors.ValidationFailed(c, fieldErr.Fields)
	case errors.Is(err, services.ErrProjectNotFound):
		apierrors.NotFound(c, "")
	case errors.Is(err, repository.ErrUnknownCatalogCode):
		apierrors.BadRequest(c, "")
	default:
		middleware.Logger(c).Error("project request failed", zap.Error(err))
		apierrors.InternalError(c, "")
	}
}
