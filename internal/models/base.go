package models

import "time"

// Base is the surrogate key and timestamps shared by every table.
type Base struct {
	ID        uint      `json:"id"        gorm:"primaryKey"`
	CreatedAt time.Time `json:"createdAt" gorm:"index"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// All returns every persisted model in migration order.
func All() []interface{} {
	return []interface{}{
		&AdminUser{},
		&Project{},
		&ProjectVideo{},
		&Lead{},
	}
}
