package database

import (
	"context"
	"fmt"

	"yatube/internal/core/follower"
	followerPort "yatube/internal/ports/follower"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FollowerRepositoryDatabase پیاده‌سازی FollowerRepository برای دیتابیس
type FollowerRepositoryDatabase struct {
	db *gorm.DB
}

func NewFollowerRepositoryDatabase(db *gorm.DB) *FollowerRepositoryDatabase {
	return &FollowerRepositoryDatabase{db: db}
}

// FollowUser inserts the edge as is; uniqueness and self-follow are left to
// the database constraints and surface as ErrIntegrity.
func (repo *FollowerRepositoryDatabase) FollowUser(ctx context.Context, f *follower.Follow) (*follower.Follow, error) {
	if err := repo.db.WithContext(ctx).Omit(clause.Associations).Create(f).Error; err != nil {
		if isConstraintViolation(err) {
			return nil, fmt.Errorf("%w: %v", followerPort.ErrIntegrity, err)
		}
		return nil, fmt.Errorf("create follow: %w", err)
	}
	return f, nil
}

func (repo *FollowerRepositoryDatabase) UnfollowUser(ctx context.Context, userID, authorID uuid.UUID) error {
	res := repo.db.WithContext(ctx).Where("user_id = ? AND author_id = ?", userID, authorID).Delete(&follower.Follow{})
	if res.Error != nil {
		return fmt.Errorf("delete follow: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return followerPort.ErrFollowNotFound
	}
	return nil
}

func (repo *FollowerRepositoryDatabase) GetFollowersByUserID(ctx context.Context, authorID uuid.UUID) ([]*follower.Follow, error) {
	var followers []*follower.Follow
	if err := repo.db.WithContext(ctx).Where("author_id = ?", authorID).Find(&followers).Error; err != nil {
		return nil, err
	}
	return followers, nil
}

func (repo *FollowerRepositoryDatabase) GetFollowingByUserID(ctx context.Context, userID uuid.UUID) ([]*follower.Follow, error) {
	var following []*follower.Follow
	if err := repo.db.WithContext(ctx).Where("user_id = ?", userID).Find(&following).Error; err != nil {
		return nil, err
	}
	return following, nil
}

func (repo *FollowerRepositoryDatabase) IsFollowing(ctx context.Context, userID, authorID uuid.UUID) (bool, error) {
	var count int64
	if err := repo.db.WithContext(ctx).Model(&follower.Follow{}).Where("user_id = ? AND author_id = ?", userID, authorID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
