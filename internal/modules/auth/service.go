package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/nilehomes/landing/internal/models"
	"github.com/nilehomes/landing/internal/pkg/apperr"
	"github.com/nilehomes/landing/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MinBcryptCost is the lowest cost accepted for stored admin passwords.
const MinBcryptCost = 10

var (
	dummyHashOnce sync.Once
	dummyHash     []byte
)

// equalizeTiming runs one bcrypt comparison so unknown emails cost as much as wrong passwords.
func equalizeTiming(password string) {
	dummyHashOnce.Do(func() {
		dummyHash, _ = bcrypt.GenerateFromPassword([]byte("landing-timing-guard"), MinBcryptCost)
	})
	_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
}

type Service struct {
	db     *gorm.DB
	signer *jwt.Signer
}

func NewService(db *gorm.DB, signer *jwt.Signer) *Service {
	return &Service{db: db, signer: signer}
}

// Login checks the credentials and issues a bearer token.
// Unknown email and wrong password both fail with apperr.ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	var u models.AdminUser
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && u.Email != email) {
		equalizeTiming(password)
		return nil, apperr.ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("find admin: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, apperr.ErrInvalidCredentials
	}

	token, err := s.signer.Sign(u.ID, u.Email, u.Role)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	return &LoginResult{Token: token, User: &u}, nil
}

// HashPassword returns a bcrypt hash of password at the given cost.
func HashPassword(password string, cost int) (string, error) {
	if cost < MinBcryptCost {
		cost = MinBcryptCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// UpsertAdmin creates the admin or replaces the password of an existing one.
func (s *Service) UpsertAdmin(ctx context.Context, email, password string, cost int) (*models.AdminUser, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, apperr.Invalid("email", "is required")
	}
	if len(password) < 8 {
		return nil, apperr.Invalid("password", "must be at least 8 characters")
	}
	hash, err := HashPassword(password, cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := models.AdminUser{Email: email, PasswordHash: hash, Role: models.RoleAdmin}
	err = s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoUpdates: clause.AssignmentColumns([]string{"password_hash", "role", "updated_at"}),
	}).Create(&u).Error
	if err != nil {
		return nil, fmt.Errorf("upsert admin: %w", err)
	}

	var stored models.AdminUser
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&stored).Error; err != nil {
		return nil, fmt.Errorf("reload admin: %w", err)
	}
	return &stored, nil
}
