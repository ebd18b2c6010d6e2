package commentapp

import (
	"context"
	"fmt"
	"strings"

	commentEntity "yatube/internal/core/comment"
	commentPort "yatube/internal/ports/comment"
	postPort "yatube/internal/ports/post"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"
)

type CommentService struct {
	CommentRepository commentPort.CommentRepository
	PostRepository    postPort.PostRepository
	logger            *zap.Logger
}

func NewCommentService(commentRepo commentPort.CommentRepository, postRepo postPort.PostRepository, logger *zap.Logger) *CommentService {
	return &CommentService{
		CommentRepository: commentRepo,
		PostRepository:    postRepo,
		logger:            logger,
	}
}

// AddComment attaches a comment by authorID to the post. Blank text is
// rejected before anything is written.
func (s *CommentService) AddComment(ctx context.Context, postID uint, authorID, text string) (*commentPort.CommentDTO, error) {
	uid, err := uuid.FromString(authorID)
	if err != nil {
		return nil, fmt.Errorf("invalid authorID: %w", err)
	}
	if _, err := s.PostRepository.FindByID(ctx, postID); err != nil {
		return nil, err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, postPort.ErrEmptyText
	}

	c, err := s.CommentRepository.Create(ctx, &commentEntity.Comment{
		PostID:   postID,
		AuthorID: uid,
		Text:     text,
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("comment added", zap.Uint("postID", postID), zap.String("authorID", authorID))
	return commentPort.NewCommentDTO(c), nil
}

func (s *CommentService) ListByPost(ctx context.Context, postID uint) ([]*commentPort.CommentDTO, error) {
	comments, err := s.CommentRepository.ListByPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	dtos := make([]*commentPort.CommentDTO, 0, len(comments))
	for _, c := range comments {
		dtos = append(dtos, commentPort.NewCommentDTO(c))
	}
	return dtos, nil
}
