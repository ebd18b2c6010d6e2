package followerapp

import (
	"context"
	"fmt"

	followerEntity "yatube/internal/core/follower"
	followerPort "yatube/internal/ports/follower"
	userPort "yatube/internal/ports/user"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"
)

type FollowerService struct {
	FollowerRepository followerPort.FollowerRepository
	UserRepository     userPort.UserRepository
	logger             *zap.Logger
}

func NewFollowerService(repo followerPort.FollowerRepository, userRepo userPort.UserRepository, logger *zap.Logger) *FollowerService {
	return &FollowerService{
		FollowerRepository: repo,
		UserRepository:     userRepo,
		logger:             logger,
	}
}

// FollowUser makes followerID follow the author with the given username.
// Following yourself or following twice is refused before the insert; the
// database constraints catch whatever races past these checks.
func (s *FollowerService) FollowUser(ctx context.Context, followerID, authorUsername string) error {
	uid, err := uuid.FromString(followerID)
	if err != nil {
		return fmt.Errorf("invalid followerID: %w", err)
	}
	author, err := s.UserRepository.FindByUsername(ctx, authorUsername)
	if err != nil {
		return err
	}

	if author.ID == uid {
		s.logger.Warn("⚠️ Cannot follow yourself", zap.String("userID", followerID))
		return followerPort.ErrSelfFollow
	}

	isFollowing, err := s.FollowerRepository.IsFollowing(ctx, uid, author.ID)
	if err != nil {
		return fmt.Errorf("could not check follow status: %w", err)
	}
	if isFollowing {
		return followerPort.ErrAlreadyFollowing
	}

	if _, err := s.FollowerRepository.FollowUser(ctx, &followerEntity.Follow{UserID: uid, AuthorID: author.ID}); err != nil {
		return err
	}
	s.logger.Info("user followed", zap.String("userID", followerID), zap.String("author", authorUsername))
	return nil
}

func (s *FollowerService) UnfollowUser(ctx context.Context, followerID, authorUsername string) error {
	uid, err := uuid.FromString(followerID)
	if err != nil {
		return fmt.Errorf("invalid followerID: %w", err)
	}
	author, err := s.UserRepository.FindByUsername(ctx, authorUsername)
	if err != nil {
		return err
	}
	if err := s.FollowerRepository.UnfollowUser(ctx, uid, author.ID); err != nil {
		return err
	}
	s.logger.Info("user unfollowed", zap.String("userID", followerID), zap.String("author", authorUsername))
	return nil
}

// IsFollowing reports whether followerID follows authorID.
func (s *FollowerService) IsFollowing(ctx context.Context, followerID, authorID string) (bool, error) {
	uid, err := uuid.FromString(followerID)
	if err != nil {
		return false, fmt.Errorf("invalid followerID: %w", err)
	}
	aid, err := uuid.FromString(authorID)
	if err != nil {
		return false, fmt.Errorf("invalid authorID: %w", err)
	}
	return s.FollowerRepository.IsFollowing(ctx, uid, aid)
}

// Counts returns how many users follow userID and how many it follows.
func (s *FollowerService) Counts(ctx context.Context, userID string) (followers, following int, err error) {
	uid, err := uuid.FromString(userID)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid userID: %w", err)
	}
	in, err := s.FollowerRepository.GetFollowersByUserID(ctx, uid)
	if err != nil {
		return 0, 0, err
	}
	out, err := s.FollowerRepository.GetFollowingByUserID(ctx, uid)
	if err != nil {
		return 0, 0, err
	}
	return len(in), len(out), nil
}
