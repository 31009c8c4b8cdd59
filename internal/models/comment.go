package models

import (
	"time"
)

type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	User      User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	PostID    uint      `gorm:"not null;index" json:"post_id"`
	Post      Post      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	CommentID *uint     `gorm:"index" json:"comment_id"` // parent, nil for top-level comments
	Parent    *Comment  `gorm:"foreignKey:CommentID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`

	// 非数据库字段，查询时填充
	Username string `gorm:"->;-:migration" json:"username"`
}

// CommentNode is one comment of a thread with its direct replies in creation order.
type CommentNode struct {
	ID        uint           `json:"id"`
	Text      string         `json:"text"`
	UserID    uint           `json:"user_id"`
	Username  string         `json:"username"`
	CreatedAt time.Time      `json:"created_at"`
	Replies   []*CommentNode `json:"replies"`
}
