package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/lift-project-api/internal/constants"
)

// PaginationParams holds the pagination parameters
type PaginationParams struct {
	Page   int
	Limit  int
	Offset int
}

// PaginationResponse represents the pagination metadata in API responses
type PaginationResponse struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
}

// GetPaginationParams extracts pagination parameters from the request. The
// second result is false when the client did not ask for a page, in which case
// callers return the full list.
func GetPaginationParams(c *gin.Context) (PaginationParams, bool) {
	rawPage, ok := c.GetQuery("page")
	if !ok {
		return PaginationParams{}, false
	}
	return NewPaginationParams(rawPage, c.Query("limit")), true
}

// NewPaginationParams parses and clamps raw page and limit values.
func NewPaginationParams(rawPage, rawLimit string) PaginationParams {
	page, _ := strconv.Atoi(rawPage)
	limit, err := strconv.Atoi(rawLimit)
	if err != nil {
		limit = constants.DefaultPageSize
	}

	if page < constants.MinPageSize {
		page = constants.MinPageSize
	}
	if limit < constants.MinPageSize || limit > constants.MaxPageSize {
		limit = constants.DefaultPageSize
	}

	return PaginationParams{
		Page:   page,
		Limit:  limit,
		Offset: (page - 1) * limit,
	}
}
