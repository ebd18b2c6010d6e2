package database

import (
	"context"
	"errors"
	"fmt"

	"yatube/internal/core/comment"
	"yatube/internal/core/follower"
	"yatube/internal/core/post"
	postPort "yatube/internal/ports/post"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostRepositoryDatabase پیاده‌سازی PostRepository برای دیتابیس
type PostRepositoryDatabase struct {
	db *gorm.DB
}

func NewPostRepositoryDatabase(db *gorm.DB) *PostRepositoryDatabase {
	return &PostRepositoryDatabase{db: db}
}

func (repo *PostRepositoryDatabase) Create(ctx context.Context, p *post.Post) (*post.Post, error) {
	if err := repo.db.WithContext(ctx).Omit(clause.Associations).Create(p).Error; err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return p, nil
}

func (repo *PostRepositoryDatabase) Update(ctx context.Context, p *post.Post) error {
	err := repo.db.WithContext(ctx).
		Model(&post.Post{}).
		Where("id = ?", p.ID).
		Updates(map[string]any{
			"text":     p.Text,
			"group_id": p.GroupID,
			"image":    p.Image,
		}).Error
	if err != nil {
		return fmt.Errorf("update post: %w", err)
	}
	return nil
}

func (repo *PostRepositoryDatabase) Delete(ctx context.Context, id uint) error {
	return repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&comment.Comment{}).Error; err != nil {
			return fmt.Errorf("delete post comments: %w", err)
		}
		res := tx.Delete(&post.Post{}, id)
		if res.Error != nil {
			return fmt.Errorf("delete post: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return postPort.ErrPostNotFound
		}
		return nil
	})
}

func (repo *PostRepositoryDatabase) FindByID(ctx context.Context, id uint) (*post.Post, error) {
	var p post.Post
	if err := repo.db.WithContext(ctx).Preload("Author").Preload("Group").First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, postPort.ErrPostNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (repo *PostRepositoryDatabase) List(ctx context.Context, filter post.Filter, offset, limit int) ([]*post.Post, error) {
	var posts []*post.Post
	err := repo.filtered(ctx, filter).
		Preload("Author").
		Preload("Group").
		Order("created_at DESC").
		Order("id DESC").
		Offset(offset).
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (repo *PostRepositoryDatabase) Count(ctx context.Context, filter post.Filter) (int64, error) {
	var count int64
	if err := repo.filtered(ctx, filter).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (repo *PostRepositoryDatabase) filtered(ctx context.Context, filter post.Filter) *gorm.DB {
	q := repo.db.WithContext(ctx).Model(&post.Post{})
	if filter.GroupID != nil {
		q = q.Where("group_id = ?", *filter.GroupID)
	}
	if filter.AuthorID != nil {
		q = q.Where("author_id = ?", *filter.AuthorID)
	}
	if filter.FollowerID != nil {
		followed := repo.db.Model(&follower.Follow{}).Select("author_id").Where("user_id = ?", *filter.FollowerID)
		q = q.Where("author_id IN (?)", followed)
	}
	return q
}
