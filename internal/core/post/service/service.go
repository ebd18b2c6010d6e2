package postapp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"yatube/internal/core/paginator"
	postEntity "yatube/internal/core/post"
	groupPort "yatube/internal/ports/group"
	mediaPort "yatube/internal/ports/media"
	postPort "yatube/internal/ports/post"
	userPort "yatube/internal/ports/user"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"
)

type PostService struct {
	PostRepository  postPort.PostRepository
	GroupRepository groupPort.GroupRepository
	UserRepository  userPort.UserRepository
	Media           mediaPort.Storage
	perPage         int
	logger          *zap.Logger
}

func NewPostService(
	postRepo postPort.PostRepository,
	groupRepo groupPort.GroupRepository,
	userRepo userPort.UserRepository,
	media mediaPort.Storage,
	perPage int,
	logger *zap.Logger,
) *PostService {
	return &PostService{
		PostRepository:  postRepo,
		GroupRepository: groupRepo,
		UserRepository:  userRepo,
		Media:           media,
		perPage:         perPage,
		logger:          logger,
	}
}

// Index returns a page of the global feed.
func (s *PostService) Index(ctx context.Context, page string) (*postPort.PostPage, error) {
	return s.feed(ctx, postEntity.Filter{}, page)
}

// GroupFeed returns the group and a page of its posts.
func (s *PostService) GroupFeed(ctx context.Context, slug, page string) (*groupPort.GroupDTO, *postPort.PostPage, error) {
	g, err := s.GroupRepository.FindBySlug(ctx, slug)
	if err != nil {
		return nil, nil, err
	}
	posts, err := s.feed(ctx, postEntity.Filter{GroupID: &g.ID}, page)
	if err != nil {
		return nil, nil, err
	}
	return groupPort.NewGroupDTO(g), posts, nil
}

// ProfileFeed returns the author, their total post count and a page of posts.
func (s *PostService) ProfileFeed(ctx context.Context, username, page string) (*postPort.Profile, error) {
	author, err := s.UserRepository.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	posts, err := s.feed(ctx, postEntity.Filter{AuthorID: &author.ID}, page)
	if err != nil {
		return nil, err
	}
	return &postPort.Profile{
		Author:     userPort.NewUserDTO(author),
		PostsCount: posts.Total,
		Posts:      posts,
	}, nil
}

// FollowFeed returns posts by the authors the user follows.
func (s *PostService) FollowFeed(ctx context.Context, userID, page string) (*postPort.PostPage, error) {
	uid, err := uuid.FromString(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid userID: %w", err)
	}
	return s.feed(ctx, postEntity.Filter{FollowerID: &uid}, page)
}

func (s *PostService) feed(ctx context.Context, filter postEntity.Filter, page string) (*postPort.PostPage, error) {
	total, err := s.PostRepository.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("count posts: %w", err)
	}
	p := paginator.New(total, s.perPage)
	number := p.Number(page)
	offset, limit := p.Bounds(number)

	posts, err := s.PostRepository.List(ctx, filter, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	dtos := make([]*postPort.PostDTO, 0, len(posts))
	for _, post := range posts {
		dtos = append(dtos, postPort.NewPostDTO(post))
	}
	return paginator.NewPage(p, number, dtos), nil
}

func (s *PostService) GetPost(ctx context.Context, id uint) (*postPort.PostDTO, error) {
	post, err := s.PostRepository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return postPort.NewPostDTO(post), nil
}

// CountByAuthor is the "posts" figure shown next to an author.
func (s *PostService) CountByAuthor(ctx context.Context, authorID string) (int64, error) {
	uid, err := uuid.FromString(authorID)
	if err != nil {
		return 0, fmt.Errorf("invalid authorID: %w", err)
	}
	return s.PostRepository.Count(ctx, postEntity.Filter{AuthorID: &uid})
}

// CreatePost validates the input, stores the image and saves the post.
func (s *PostService) CreatePost(ctx context.Context, authorID string, in postPort.PostInput) (*postPort.PostDTO, error) {
	uid, err := uuid.FromString(authorID)
	if err != nil {
		return nil, fmt.Errorf("invalid authorID: %w", err)
	}
	text, err := s.validate(ctx, in)
	if err != nil {
		return nil, err
	}

	post := &postEntity.Post{
		Text:     text,
		AuthorID: uid,
		GroupID:  in.GroupID,
	}
	if in.Image != nil {
		if post.Image, err = s.Media.SaveImage(ctx, in.Image.Filename, in.Image.Data); err != nil {
			return nil, err
		}
	}

	created, err := s.PostRepository.Create(ctx, post)
	if err != nil {
		s.discardImage(ctx, post.Image)
		return nil, fmt.Errorf("failed to create post: %w", err)
	}
	s.logger.Info("post created", zap.Uint("postID", created.ID), zap.String("authorID", authorID))

	return s.GetPost(ctx, created.ID)
}

// UpdatePost edits the post in place. Only its author may do so.
func (s *PostService) UpdatePost(ctx context.Context, id uint, editorID string, in postPort.PostInput) (*postPort.PostDTO, error) {
	post, err := s.PostRepository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post.AuthorID.String() != editorID {
		return nil, postPort.ErrNotPostAuthor
	}
	text, err := s.validate(ctx, in)
	if err != nil {
		return nil, err
	}

	oldImage := post.Image
	post.Text = text
	post.GroupID = in.GroupID
	switch {
	case in.Image != nil:
		if post.Image, err = s.Media.SaveImage(ctx, in.Image.Filename, in.Image.Data); err != nil {
			return nil, err
		}
	case in.ClearImage:
		post.Image = ""
	}

	if err := s.PostRepository.Update(ctx, post); err != nil {
		if post.Image != oldImage {
			s.discardImage(ctx, post.Image)
		}
		return nil, err
	}
	if post.Image != oldImage {
		s.discardImage(ctx, oldImage)
	}
	s.logger.Info("post updated", zap.Uint("postID", id))

	return s.GetPost(ctx, id)
}

func (s *PostService) DeletePost(ctx context.Context, id uint) error {
	post, err := s.PostRepository.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.PostRepository.Delete(ctx, id); err != nil {
		return err
	}
	s.discardImage(ctx, post.Image)
	s.logger.Info("post deleted", zap.Uint("postID", id))
	return nil
}

// validate returns the trimmed text; the group, when set, must exist.
func (s *PostService) validate(ctx context.Context, in postPort.PostInput) (string, error) {
	text := strings.TrimSpace(in.Text)
	if text == "" {
		return "", postPort.ErrEmptyText
	}
	if in.GroupID != nil {
		if _, err := s.GroupRepository.FindByID(ctx, *in.GroupID); err != nil {
			return "", err
		}
	}
	return text, nil
}

func (s *PostService) discardImage(ctx context.Context, path string) {
	if path == "" {
		return
	}
	if err := s.Media.Delete(ctx, path); err != nil && !errors.Is(err, context.Canceled) {
		s.logger.Warn("could not delete image", zap.String("path", path), zap.Error(err))
	}
}
