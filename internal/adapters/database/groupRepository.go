package database

import (
	"context"
	"errors"
	"fmt"

	"yatube/internal/core/group"
	"yatube/internal/core/post"
	groupPort "yatube/internal/ports/group"

	"gorm.io/gorm"
)

type GroupRepositoryDatabase struct {
	db *gorm.DB
}

func NewGroupRepositoryDatabase(db *gorm.DB) *GroupRepositoryDatabase {
	return &GroupRepositoryDatabase{db: db}
}

func (repo *GroupRepositoryDatabase) Create(ctx context.Context, g *group.Group) (*group.Group, error) {
	if err := repo.db.WithContext(ctx).Create(g).Error; err != nil {
		if isConstraintViolation(err) {
			return nil, groupPort.ErrGroupExists
		}
		return nil, fmt.Errorf("create group: %w", err)
	}
	return g, nil
}

func (repo *GroupRepositoryDatabase) FindBySlug(ctx context.Context, slug string) (*group.Group, error) {
	var g group.Group
	if err := repo.db.WithContext(ctx).Where("slug = ?", slug).First(&g).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, groupPort.ErrGroupNotFound
		}
		return nil, err
	}
	return &g, nil
}

func (repo *GroupRepositoryDatabase) FindByID(ctx context.Context, id uint) (*group.Group, error) {
	var g group.Group
	if err := repo.db.WithContext(ctx).First(&g, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, groupPort.ErrGroupNotFound
		}
		return nil, err
	}
	return &g, nil
}

func (repo *GroupRepositoryDatabase) List(ctx context.Context) ([]*group.Group, error) {
	var groups []*group.Group
	if err := repo.db.WithContext(ctx).Order("title ASC").Find(&groups).Error; err != nil {
		return nil, err
	}
	return groups, nil
}

func (repo *GroupRepositoryDatabase) DeleteBySlug(ctx context.Context, slug string) error {
	return repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var g group.Group
		if err := tx.Where("slug = ?", slug).First(&g).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return groupPort.ErrGroupNotFound
			}
			return err
		}
		if err := tx.Model(&post.Post{}).Where("group_id = ?", g.ID).Update("group_id", nil).Error; err != nil {
			return fmt.Errorf("detach posts from group: %w", err)
		}
		if err := tx.Delete(&g).Error; err != nil {
			return fmt.Errorf("delete group: %w", err)
		}
		return nil
	})
}
