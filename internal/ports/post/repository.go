package post

import (
	"context"
	"errors"
	"time"

	"yatube/internal/core/paginator"
	"yatube/internal/core/post"
	groupPort "yatube/internal/ports/group"
	userPort "yatube/internal/ports/user"
)

var (
	ErrPostNotFound  = errors.New("post not found")
	ErrNotPostAuthor = errors.New("only the author can edit a post")
	ErrEmptyText     = errors.New("text must not be empty")
)

// PostRepository پورت برای ذخیره‌سازی و بازیابی پست‌ها
type PostRepository interface {
	Create(ctx context.Context, post *post.Post) (*post.Post, error)
	Update(ctx context.Context, post *post.Post) error
	Delete(ctx context.Context, id uint) error
	// FindByID loads the post with its author and group.
	FindByID(ctx context.Context, id uint) (*post.Post, error)
	// List returns posts matching the filter newest first, with author and group.
	List(ctx context.Context, filter post.Filter, offset, limit int) ([]*post.Post, error)
	Count(ctx context.Context, filter post.Filter) (int64, error)
}

// PostPage is one page of a feed.
type PostPage = paginator.Page[*PostDTO]

// Profile is an author with their post count and a page of their posts.
type Profile struct {
	Author     userPort.UserDTO
	PostsCount int64
	Posts      *PostPage
}

type PostDTO struct {
	ID        uint                `json:"id"`
	Text      string              `json:"text"`
	Excerpt   string              `json:"excerpt"`
	Author    userPort.UserDTO    `json:"author"`
	Group     *groupPort.GroupDTO `json:"group,omitempty"`
	Image     string              `json:"image,omitempty"`
	CreatedAt time.Time           `json:"created_at"`
}

func NewPostDTO(p *post.Post) *PostDTO {
	return &PostDTO{
		ID:        p.ID,
		Text:      p.Text,
		Excerpt:   p.String(),
		Author:    userPort.NewUserDTO(&p.Author),
		Group:     groupPort.NewGroupDTO(p.Group),
		Image:     p.Image,
		CreatedAt: p.CreatedAt,
	}
}

// PostInput carries submitted form values. A nil GroupID clears the group.
type PostInput struct {
	Text       string
	GroupID    *uint
	Image      *Upload
	ClearImage bool
}

type Upload struct {
	Filename string
	Data     []byte
}
