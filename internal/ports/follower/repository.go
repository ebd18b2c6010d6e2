package follower

import (
	"context"
	"errors"

	"yatube/internal/core/follower"

	"github.com/gofrs/uuid"
)

var (
	ErrSelfFollow       = errors.New("cannot follow yourself")
	ErrAlreadyFollowing = errors.New("already following this user")
	ErrFollowNotFound   = errors.New("you are not following this user")
	// ErrIntegrity reports a unique or check constraint violation on follows.
	ErrIntegrity = errors.New("follow integrity violation")
)

// FollowerRepository پورت برای ذخیره‌سازی و بازیابی دنبال‌کنندگان
type FollowerRepository interface {
	FollowUser(ctx context.Context, follow *follower.Follow) (*follower.Follow, error)
	UnfollowUser(ctx context.Context, userID, authorID uuid.UUID) error
	GetFollowersByUserID(ctx context.Context, authorID uuid.UUID) ([]*follower.Follow, error)
	GetFollowingByUserID(ctx context.Context, userID uuid.UUID) ([]*follower.Follow, error)
	IsFollowing(ctx context.Context, userID, authorID uuid.UUID) (bool, error)
}
