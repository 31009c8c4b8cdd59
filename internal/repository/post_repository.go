package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"linkhub/internal/models"
	"linkhub/internal/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostSort is an accepted listing order. Only values in orderClauses ever reach SQL.
type PostSort string

const (
	SortHotness PostSort = "hotness"
	SortNew     PostSort = "new"
	SortTop     PostSort = "top"
)

// ErrUnknownSort is returned for a PostSort missing from the allow-list.
var ErrUnknownSort = errors.New("unknown sort order")

var orderClauses = map[PostSort]string{
	SortHotness: "hotness DESC, p.created_at DESC, p.id DESC",
	SortNew:     "p.created_at DESC, p.id DESC",
	SortTop:     "vote_score DESC, p.created_at DESC, p.id DESC",
}

// ParseSort maps user input onto the allow-list.
func ParseSort(s string) (PostSort, bool) {
	sort := PostSort(strings.ToLower(strings.TrimSpace(s)))
	_, ok := orderClauses[sort]
	return sort, ok
}

func orderClause(sort PostSort) (string, error) {
	order, ok := orderClauses[sort]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownSort, string(sort))
	}
	return order, nil
}

// PostQuery selects a page of ranked posts. Zero UserID / SubredditID mean no filter.
type PostQuery struct {
	Sort        PostSort
	Limit       int
	Offset      int
	UserID      uint
	SubredditID uint
}

type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	FindRanked(ctx context.Context, q PostQuery) ([]models.RankedPost, error)
	FindRankedByID(ctx context.Context, id uint) (*models.RankedPost, error)
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

const rankedPostSelect = `
SELECT
	p.id, p.title, p.url, p.created_at, p.updated_at,
	u.id AS user_id, u.username AS user_username,
	s.id AS subreddit_id, s.name AS subreddit_name, s.description AS subreddit_description,
	COALESCE(SUM(CASE WHEN v.value = 1 THEN 1 ELSE 0 END), 0) AS up_votes,
	COALESCE(SUM(CASE WHEN v.value = -1 THEN 1 ELSE 0 END), 0) AS down_votes,
	COALESCE(SUM(CASE WHEN v.value <> 0 THEN 1 ELSE 0 END), 0) AS total_votes,
	COALESCE(SUM(v.value), 0)::bigint AS vote_score,
	` + utils.HotnessSQL + ` AS hotness
FROM posts p
JOIN users u ON u.id = p.user_id
LEFT JOIN subreddits s ON s.id = p.subreddit_id
LEFT JOIN votes v ON v.post_id = p.id`

const rankedPostGroupBy = `GROUP BY p.id, u.id, s.id`

type rankedPostRow struct {
	ID                   uint
	Title                string
	URL                  string
	CreatedAt            time.Time
	UpdatedAt            time.Time
	UserID               uint
	UserUsername         string
	SubredditID          *uint
	SubredditName        *string
	SubredditDescription *string
	UpVotes              int64
	DownVotes            int64
	TotalVotes           int64
	VoteScore            int64
	Hotness              float64
}

func (row rankedPostRow) toModel() models.RankedPost {
	post := models.RankedPost{
		ID:         row.ID,
		Title:      row.Title,
		URL:        row.URL,
		CreatedAt:  row.CreatedAt,
		UpdatedAt:  row.UpdatedAt,
		UpVotes:    row.UpVotes,
		DownVotes:  row.DownVotes,
		TotalVotes: row.TotalVotes,
		VoteScore:  row.VoteScore,
		Hotness:    row.Hotness,
		User:       models.UserSummary{ID: row.UserID, Username: row.UserUsername},
	}
	if row.SubredditID != nil {
		sub := &models.SubredditSummary{ID: *row.SubredditID}
		if row.SubredditName != nil {
			sub.Name = *row.SubredditName
		}
		if row.SubredditDescription != nil {
			sub.Description = *row.SubredditDescription
		}
		post.Subreddit = sub
	}
	return post
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(post).Error; err != nil {
		return fmt.Errorf("create post: %w", err)
	}
	return nil
}

// FindRanked returns one page of posts with vote aggregates in the requested order.
func (r *postRepository) FindRanked(ctx context.Context, q PostQuery) ([]models.RankedPost, error) {
	order, err := orderClause(q.Sort)
	if err != nil {
		return nil, err
	}

	var (
		where []string
		args  []interface{}
	)
	if q.UserID != 0 {
		where = append(where, "p.user_id = ?")
		args = append(args, q.UserID)
	}
	if q.SubredditID != 0 {
		where = append(where, "p.subreddit_id = ?")
		args = append(args, q.SubredditID)
	}

	var sb strings.Builder
	sb.WriteString(rankedPostSelect)
	if len(where) > 0 {
		sb.WriteString("\nWHERE ")
		sb.WriteString(strings.Join(where, " AND "))
	}
	sb.WriteString("\n" + rankedPostGroupBy)
	sb.WriteString("\nORDER BY " + order)
	sb.WriteString("\nLIMIT ? OFFSET ?")
	args = append(args, q.Limit, q.Offset)

	var rows []rankedPostRow
	if err := r.db.WithContext(ctx).Raw(sb.String(), args...).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}

	posts := make([]models.RankedPost, 0, len(rows))
	for _, row := range rows {
		posts = append(posts, row.toModel())
	}
	return posts, nil
}

// FindRankedByID returns nil when the post does not exist.
func (r *postRepository) FindRankedByID(ctx context.Context, id uint) (*models.RankedPost, error) {
	query := rankedPostSelect + "\nWHERE p.id = ?\n" + rankedPostGroupBy

	var rows []rankedPostRow
	if err := r.db.WithContext(ctx).Raw(query, id).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("find post %d: %w", id, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	post := rows[0].toModel()
	return &post, nil
}
