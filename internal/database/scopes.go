package database

import (
	"gorm.io/gorm"

	"github.com/yukikurage/lift-project-api/internal/utils"
)

// Paginate applies pagination to a GORM query
func Paginate(params utils.PaginationParams) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(params.Offset).Limit(params.Limit)
	}
}

// OwnedBy restricts a projects query to one user's rows
func OwnedBy(userID uint64) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("projects.user_id = ?", userID)
	}
}

// RecentActivityFirst orders projects by last update, falling back to creation,
// with the id as tie-break for equal timestamps.
func RecentActivityFirst(db *gorm.DB) *gorm.DB {
	return db.Order("COALESCE(projects.updated_at, projects.created_at) DESC").Order("projects.id DESC")
}
