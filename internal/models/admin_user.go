package models

// RoleAdmin is the only role issued today.
const RoleAdmin = "admin"

// AdminUser is a back-office account. Rows are provisioned by cmd/seed.
type AdminUser struct {
	Base
	Email        string `json:"email" gorm:"size:255;uniqueIndex;not null"`
	PasswordHash string `json:"-"     gorm:"size:255;not null"`
	Role         string `json:"role"  gorm:"size:50;not null"`
}

func (AdminUser) TableName() string { return "admin_users" }
