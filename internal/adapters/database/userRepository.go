package database

import (
	"context"
	"errors"
	"fmt"

	"yatube/internal/core/comment"
	"yatube/internal/core/follower"
	"yatube/internal/core/post"
	"yatube/internal/core/user"
	userPort "yatube/internal/ports/user"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

// UserRepositoryDatabase پیاده‌سازی UserRepository برای دیتابیس
type UserRepositoryDatabase struct {
	db *gorm.DB
}

func NewUserRepositoryDatabase(db *gorm.DB) *UserRepositoryDatabase {
	return &UserRepositoryDatabase{db: db}
}

func (repo *UserRepositoryDatabase) Create(ctx context.Context, u *user.User) (*user.User, error) {
	if err := repo.db.WithContext(ctx).Create(u).Error; err != nil {
		if isConstraintViolation(err) {
			return nil, userPort.ErrUserExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

func (repo *UserRepositoryDatabase) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	return repo.first(ctx, "id = ?", id)
}

func (repo *UserRepositoryDatabase) FindByUsername(ctx context.Context, username string) (*user.User, error) {
	return repo.first(ctx, "username = ?", username)
}

func (repo *UserRepositoryDatabase) FindByUsernameOrEmail(ctx context.Context, username, email string) (*user.User, error) {
	return repo.first(ctx, "username = ? OR email = ?", username, email)
}

func (repo *UserRepositoryDatabase) first(ctx context.Context, query string, args ...any) (*user.User, error) {
	var u user.User
	if err := repo.db.WithContext(ctx).Where(query, args...).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, userPort.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// Delete cascades by hand so the result does not depend on the driver
// enforcing foreign keys: comments on the user's posts, the user's own
// comments, their posts and every follow edge touching them. The files
// behind the returned image paths are left to the caller.
func (repo *UserRepositoryDatabase) Delete(ctx context.Context, id uuid.UUID) ([]string, error) {
	var images []string
	err := repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&post.Post{}).
			Where("author_id = ? AND image <> ''", id).
			Pluck("image", &images).Error; err != nil {
			return fmt.Errorf("collect post images: %w", err)
		}
		authored := tx.Model(&post.Post{}).Select("id").Where("author_id = ?", id)
		if err := tx.Where("post_id IN (?)", authored).Delete(&comment.Comment{}).Error; err != nil {
			return fmt.Errorf("delete comments on user posts: %w", err)
		}
		if err := tx.Where("author_id = ?", id).Delete(&comment.Comment{}).Error; err != nil {
			return fmt.Errorf("delete user comments: %w", err)
		}
		if err := tx.Where("author_id = ?", id).Delete(&post.Post{}).Error; err != nil {
			return fmt.Errorf("delete user posts: %w", err)
		}
		if err := tx.Where("user_id = ? OR author_id = ?", id, id).Delete(&follower.Follow{}).Error; err != nil {
			return fmt.Errorf("delete follow edges: %w", err)
		}
		res := tx.Where("id = ?", id).Delete(&user.User{})
		if res.Error != nil {
			return fmt.Errorf("delete user: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return userPort.ErrUserNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return images, nil
}
