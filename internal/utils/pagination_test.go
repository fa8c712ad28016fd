package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/yukikurage/lift-project-api/internal/constants"
)

func TestNewPaginationParams(t *testing.T) {
	tests := []struct {
		name       string
		page       string
		limit      string
		wantPage   int
		wantLimit  int
		wantOffset int
	}{
		{"defaults", "", "", 1, constants.DefaultPageSize, 0},
		{"second page", "2", "10", 2, 10, 10},
		{"negative page", "-3", "10", 1, 10, 0},
		{"limit too large", "1", "1000", 1, constants.DefaultPageSize, 0},
		{"garbage", "abc", "xyz", 1, constants.DefaultPageSize, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPaginationParams(tt.page, tt.limit)
			assert.Equal(t, tt.wantPage, p.Page)
			assert.Equal(t, tt.wantLimit, p.Limit)
			assert.Equal(t, tt.wantOffset, p.Offset)
		})
	}
}

func TestGetPaginationParams_Absent(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/api/projects", nil)

	_, ok := GetPaginationParams(c)
	assert.False(t, ok)
}

func TestGetPaginationParams_Present(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/api/projects?page=3&limit=5", nil)

	p, ok := GetPaginationParams(c)
	assert.True(t, ok)
	assert.Equal(t, 10, p.Offset)
}
