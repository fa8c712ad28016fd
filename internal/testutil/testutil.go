// Package testutil provides database fixtures shared by package tests.
package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/yukikurage/lift-project-api/internal/catalog"
	"github.com/yukikurage/lift-project-api/internal/database"
	"github.com/yukikurage/lift-project-api/internal/models"
	"github.com/yukikurage/lift-project-api/internal/validation"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// TestPassword satisfies every password rule.
const TestPassword = "Abcdef1g!"

var userSeq atomic.Int64

// SetupTestDB creates a migrated in-memory SQLite database seeded with the
// default catalogs. It is closed when the test ends.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	// Every connection to :memory: is a fresh database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := database.Migrate(db, zap.NewNop()); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	data, err := catalog.Default()
	if err != nil {
		t.Fatalf("failed to load catalog: %v", err)
	}
	if err := database.SeedCatalogs(db, data); err != nil {
		t.Fatalf("failed to seed catalogs: %v", err)
	}

	return db
}

// CreateTestUser inserts a user whose password is TestPassword.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	n := userSeq.Add(1)
	user := &models.User{
		Email:        fmt.Sprintf("user%d@example.com", n),
		Name:         fmt.Sprintf("Usuario %d", n),
		PasswordHash: string(hash),
	}
	if err := db.Omit("Projects").Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// NewProject returns an unsaved project with every required column filled.
func NewProject(userID uint64, orderNumber string) *models.Project {
	return &models.Project{
		UserID:        userID,
		OrderNumber:   orderNumber,
		RAE:           "RAE-" + orderNumber,
		ClientName:    "Comunidad de Propietarios",
		ClientNIF:     "H12345678",
		ClientAddress: "Calle Mayor 1",
		ClientCity:    "Madrid",
		ClientZip:     "28001",
		LiftAddress:   "Calle Mayor 1",
		LiftCity:      "Madrid",
		LiftZip:       "28001",
		CreatedAt:     models.FormatTimestamp(time.Now()),
	}
}

// CreateTestProject inserts a project row without associations.
func CreateTestProject(t *testing.T, db *gorm.DB, userID uint64, orderNumber string) *models.Project {
	t.Helper()

	p := NewProject(userID, orderNumber)
	if err := db.Create(p).Error; err != nil {
		t.Fatalf("failed to create test project: %v", err)
	}
	return p
}

// CountRows returns the number of rows in the table of model.
func CountRows(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()

	var n int64
	if err := db.Model(model).Count(&n).Error; err != nil {
		t.Fatalf("failed to count rows: %v", err)
	}
	return n
}

// ProjectValues returns a form that passes validation against the default
// catalogs.
func ProjectValues(orderNumber string) *validation.Values {
	var vs validation.Values
	vs.Set(validation.FieldOrderNumber, validation.Text(orderNumber))
	vs.Set(validation.FieldRAE, validation.Text("RAE-"+orderNumber))
	vs.Set(validation.FieldClientName, validation.Text("Comunidad de Propietarios"))
	vs.Set(validation.FieldClientNIF, validation.Text("H12345678"))
	vs.Set(validation.FieldClientAddress, validation.Text("Calle Mayor 1"))
	vs.Set(validation.FieldClientCity, validation.Text("Madrid"))
	vs.Set(validation.FieldClientZip, validation.Text("28001"))
	vs.Set(validation.FieldLiftAddress, validation.Text("Calle Mayor 1"))
	vs.Set(validation.FieldLiftCity, validation.Text("Madrid"))
	vs.Set(validation.FieldLiftZip, validation.Text("28001"))
	vs.Set(validation.FieldModificationTypes, validation.List("SUST_MAQUINA", "UCM"))
	vs.Set(validation.FieldApplicableNorms, validation.List("EN81-20"))
	vs.Set(validation.FieldLegalizationProcess, validation.Text("MOD_IMPORTANTE"))
	return &vs
}
