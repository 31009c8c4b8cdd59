package models

import (
	"time"
)

// Vote is keyed on (post_id, user_id); a second vote by the same user overwrites the first.
type Vote struct {
	PostID    uint      `gorm:"primaryKey;autoIncrement:false" json:"post_id"`
	Post      Post      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	UserID    uint      `gorm:"primaryKey;autoIncrement:false;index" json:"user_id"`
	User      User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Value     int       `gorm:"not null;check:value IN (-1, 0, 1)" json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ValidVoteValue reports whether v is an accepted vote: -1, 0 or 1.
func ValidVoteValue(v int) bool {
	return v == -1 || v == 0 || v == 1
}
