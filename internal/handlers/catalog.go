package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/lift-project-api/internal/catalog"
	"github.com/yukikurage/lift-project-api/internal/dto"
	apierrors "github.com/yukikurage/lift-project-api/internal/errors"
	"github.com/yukikurage/lift-project-api/internal/middleware"
	"github.com/yukikurage/lift-project-api/internal/repository"
	"go.uber.org/zap"
)

// CatalogHandler serves the reference data used by the project form
type CatalogHandler struct {
	catalogRepo repository.CatalogRepository
	options     *catalog.Data
}

// NewCatalogHandler creates a new CatalogHandler. Catalog entries come from the
// store; the option lists come from data.
func NewCatalogHandler(catalogRepo repository.CatalogRepository, data *catalog.Data) *CatalogHandler {
	return &CatalogHandler{
		catalogRepo: catalogRepo,
		options:     data,
	}
}

// ListCatalogs returns every catalog and the technical option lists
func (h *CatalogHandler) ListCatalogs(c *gin.Context) {
	entries := make(map[catalog.Kind][]catalog.Entry, len(catalog.Kinds))
	for _, kind := range catalog.Kinds {
		list, err := h.catalogRepo.List(c.Request.Context(), kind)
		if err != nil {
			middleware.Logger(c).Error("failed to list catalog", zap.Stringer("catalog", kind), zap.Error(err))
			apierrors.InternalError(c, "")
			return
		}
		entries[kind] = list
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": dto.CatalogsDTO{
			ModificationTypes:     entries[catalog.ModificationTypes],
			ApplicableNorms:       entries[catalog.ApplicableNorms],
			LegalizationProcesses: entries[catalog.LegalizationProcesses],
			TechnicalSpecs:        h.options.TechnicalSpecs,
			Certificates:          h.options.Certificates,
		},
	})
}
