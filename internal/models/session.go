package models

import (
	"time"
)

// Session maps an opaque login token to its owner.
type Session struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Token     string     `gorm:"uniqueIndex;type:varchar(255);not null" json:"-"`
	UserID    uint       `gorm:"not null;index" json:"user_id"`
	User      User       `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	ExpiresAt *time.Time `gorm:"index" json:"expires_at"` // nil never expires
	CreatedAt time.Time  `json:"created_at"`
}
