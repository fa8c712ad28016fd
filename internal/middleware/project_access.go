package middleware

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/lift-project-api/internal/constants"
	apierrors "github.com/yukikurage/lift-project-api/internal/errors"
	"github.com/yukikurage/lift-project-api/internal/models"
	"github.com/yukikurage/lift-project-api/internal/repository"
	"go.uber.org/zap"
)

// RequireProjectAccess loads the project named by the :id parameter and
// aborts unless the current user owns it. Malformed ids, missing projects and
// projects owned by someone else all get the same 404.
func RequireProjectAccess(projects repository.ProjectRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		projectID, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil || projectID == 0 {
			apierrors.NotFound(c, "")
			return
		}

		userID, exists := GetUserID(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			return
		}

		project, err := projects.FindOwned(c.Request.Context(), projectID, userID)
		if err != nil {
			if errors.Is(err, repository.ErrProjectNotFound) {
				apierrors.NotFound(c, "")
				return
			}
			Logger(c).Error("failed to load project", zap.Uint64("project_id", projectID), zap.Error(err))
			apierrors.InternalError(c, "")
			return
		}

		c.Set(constants.ContextKeyProject, *project)
		c.Set(contextKeyLogger, Logger(c).With(zap.Uint64("project_id", projectID)))
		c.Next()
	}
}

// GetProject retrieves the project loaded by RequireProjectAccess
func GetProject(c *gin.Context) (models.Project, bool) {
	v, exists := c.Get(constants.ContextKeyProject)
	if !exists {
		return models.Project{}, false
	}
	project, ok := v.(models.Project)
	return project, ok
}
