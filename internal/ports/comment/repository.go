package comment

import (
	"context"
	"time"

	"yatube/internal/core/comment"
	userPort "yatube/internal/ports/user"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *comment.Comment) (*comment.Comment, error)
	// ListByPost returns every comment of the post newest first, with authors.
	ListByPost(ctx context.Context, postID uint) ([]*comment.Comment, error)
}

type CommentDTO struct {
	ID        uint             `json:"id"`
	Text      string           `json:"text"`
	Author    userPort.UserDTO `json:"author"`
	CreatedAt time.Time        `json:"created_at"`
}

func NewCommentDTO(c *comment.Comment) *CommentDTO {
	return &CommentDTO{
		ID:        c.ID,
		Text:      c.Text,
		Author:    userPort.NewUserDTO(&c.Author),
		CreatedAt: c.CreatedAt,
	}
}
