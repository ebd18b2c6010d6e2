package group

import (
	"context"
	"errors"

	"yatube/internal/core/group"
)

var (
	ErrGroupNotFound = errors.New("group not found")
	ErrGroupExists   = errors.New("group slug already taken")
)

type GroupRepository interface {
	Create(ctx context.Context, group *group.Group) (*group.Group, error)
	FindBySlug(ctx context.Context, slug string) (*group.Group, error)
	FindByID(ctx context.Context, id uint) (*group.Group, error)
	List(ctx context.Context) ([]*group.Group, error)
	// DeleteBySlug removes the group; its posts stay with a null group.
	DeleteBySlug(ctx context.Context, slug string) error
}

type GroupDTO struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

func NewGroupDTO(g *group.Group) *GroupDTO {
	if g == nil {
		return nil
	}
	return &GroupDTO{
		ID:          g.ID,
		Title:       g.Title,
		Slug:        g.Slug,
		Description: g.Description,
	}
}
