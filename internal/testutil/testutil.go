// Package testutil holds fixtures shared by package tests. It is never imported by production code.
package testutil

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/nilehomes/landing/internal/database"
	"github.com/nilehomes/landing/internal/models"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB returns a migrated in-memory SQLite database private to t.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name()) + "_" + uuid.NewString()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=1", name)
	db, err := gorm.Open(sqlite.Open(dsn), database.Config(logger.Silent))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// Logger returns a zap logger that discards output.
func Logger() *zap.Logger {
	return zap.NewNop()
}

// CreateAdmin inserts an admin with the given password hashed at the minimum cost.
func CreateAdmin(t *testing.T, db *gorm.DB, email, password string) *models.AdminUser {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	u := &models.AdminUser{Email: email, PasswordHash: string(hash), Role: models.RoleAdmin}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("create admin: %v", err)
	}
	return u
}

// CreateProject inserts a minimal project row.
func CreateProject(t *testing.T, db *gorm.DB, slug, title string) *models.Project {
	t.Helper()
	p := &models.Project{
		Slug:        slug,
		Title:       title,
		Subtitle:    title + " subtitle",
		Description: title + " description",
		HeroImage:   "/images/" + slug + ".jpg",
	}
	if err := db.Create(p).Error; err != nil {
		t.Fatalf("create project: %v", err)
	}
	return p
}
