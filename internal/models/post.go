package models

import (
	"time"
)

type Post struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	UserID      uint       `gorm:"not null;index" json:"user_id"`
	User        User       `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	SubredditID *uint      `gorm:"index" json:"subreddit_id"` // optional
	Subreddit   *Subreddit `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`
	Title       string     `gorm:"size:300;not null" json:"title"`
	URL         string     `gorm:"size:2000;not null" json:"url"`
	CreatedAt   time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// RankedPost is a post together with its vote aggregates, as returned by listings.
type RankedPost struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	UpVotes    int64   `json:"up_votes"`
	DownVotes  int64   `json:"down_votes"`
	TotalVotes int64   `json:"total_votes"`
	VoteScore  int64   `json:"vote_score"`
	Hotness    float64 `json:"hotness"`

	User      UserSummary       `json:"user"`
	Subreddit *SubredditSummary `json:"subreddit,omitempty"`
}
