package services

import (
	"linkhub/internal/models"
)

// BuildCommentTree turns comments sorted by creation time into a forest.
// Any depth is supported. A comment whose parent is not in flat becomes a root.
func BuildCommentTree(flat []models.Comment) []*models.CommentNode {
	nodes := make(map[uint]*models.CommentNode, len(flat))
	for _, c := range flat {
		nodes[c.ID] = &models.CommentNode{
			ID:        c.ID,
			Text:      c.Text,
			UserID:    c.UserID,
			Username:  c.Username,
			CreatedAt: c.CreatedAt,
			Replies:   []*models.CommentNode{},
		}
	}

	roots := make([]*models.CommentNode, 0)
	for _, c := range flat {
		node := nodes[c.ID]
		if c.CommentID != nil && *c.CommentID != c.ID {
			if parent, ok := nodes[*c.CommentID]; ok {
				parent.Replies = append(parent.Replies, node)
				continue
			}
		}
		roots = append(roots, node)
	}
	return roots
}
