package groupapp

import (
	"context"
	"errors"
	"regexp"
	"strings"

	groupEntity "yatube/internal/core/group"
	groupPort "yatube/internal/ports/group"

	"go.uber.org/zap"
)

var (
	ErrInvalidSlug = errors.New("slug may contain only letters, digits, hyphens and underscores")
	ErrEmptyTitle  = errors.New("title must not be empty")

	slugPattern = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)
)

type GroupService struct {
	GroupRepository groupPort.GroupRepository
	logger          *zap.Logger
}

func NewGroupService(repo groupPort.GroupRepository, logger *zap.Logger) *GroupService {
	return &GroupService{GroupRepository: repo, logger: logger}
}

func (s *GroupService) CreateGroup(ctx context.Context, title, slug, description string) (*groupPort.GroupDTO, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrEmptyTitle
	}
	if !slugPattern.MatchString(slug) {
		return nil, ErrInvalidSlug
	}

	g, err := s.GroupRepository.Create(ctx, &groupEntity.Group{
		Title:       title,
		Slug:        slug,
		Description: strings.TrimSpace(description),
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("group created", zap.String("slug", g.Slug))
	return groupPort.NewGroupDTO(g), nil
}

func (s *GroupService) GetBySlug(ctx context.Context, slug string) (*groupPort.GroupDTO, error) {
	g, err := s.GroupRepository.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return groupPort.NewGroupDTO(g), nil
}

// ListGroups feeds the group select of the post form.
func (s *GroupService) ListGroups(ctx context.Context) ([]*groupPort.GroupDTO, error) {
	groups, err := s.GroupRepository.List(ctx)
	if err != nil {
		return nil, err
	}
	dtos := make([]*groupPort.GroupDTO, 0, len(groups))
	for _, g := range groups {
		dtos = append(dtos, groupPort.NewGroupDTO(g))
	}
	return dtos, nil
}

func (s *GroupService) DeleteGroup(ctx context.Context, slug string) error {
	if err := s.GroupRepository.DeleteBySlug(ctx, slug); err != nil {
		return err
	}
	s.logger.Info("group deleted, posts detached", zap.String("slug", slug))
	return nil
}
