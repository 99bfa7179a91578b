package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/avinash-a11y/insta-clone/internal/domain"
)

// GormFollowRepository implements FollowRepository using GORM.
type GormFollowRepository struct {
	db *gorm.DB
}

// NewGormFollowRepository creates a new GORM-backed follow repository.
func NewGormFollowRepository(db *gorm.DB) *GormFollowRepository {
	return &GormFollowRepository{db: db}
}

// Follow creates the edge from follower to target. The composite unique
// index on (follower_username, following_username) is the serialization
// point: a duplicate insert reports ErrAlreadyFollowing and leaves the graph
// unchanged, which makes retries safe.
func (r *GormFollowRepository) Follow(ctx context.Context, follower, target string) error {
	model := domain.FollowModel{
		FollowerUsername:  follower,
		FollowingUsername: target,
	}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrAlreadyFollowing
		}
		return err
	}
	return nil
}

// Unfollow removes the edge from follower to target.
func (r *GormFollowRepository) Unfollow(ctx context.Context, follower, target string) error {
	result := r.db.WithContext(ctx).
		Where("follower_username = ? AND following_username = ?", follower, target).
		Delete(&domain.FollowModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrFollowNotFound
	}
	return nil
}

// IsFollowing checks whether follower follows target.
func (r *GormFollowRepository) IsFollowing(ctx context.Context, follower, target string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.FollowModel{}).
		Where("follower_username = ? AND following_username = ?", follower, target).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Following returns the usernames that username follows, oldest edge first.
func (r *GormFollowRepository) Following(ctx context.Context, username string) ([]string, error) {
	var usernames []string
	err := r.db.WithContext(ctx).Model(&domain.FollowModel{}).
		Where("follower_username = ?", username).
		Order("id ASC").
		Pluck("following_username", &usernames).Error
	if err != nil {
		return nil, err
	}
	return usernames, nil
}

// Followers returns the usernames that follow username, oldest edge first.
func (r *GormFollowRepository) Followers(ctx context.Context, username string) ([]string, error) {
	var usernames []string
	err := r.db.WithContext(ctx).Model(&domain.FollowModel{}).
		Where("following_username = ?", username).
		Order("id ASC").
		Pluck("follower_username", &usernames).Error
	if err != nil {
		return nil, err
	}
	return usernames, nil
}

// FollowersCount returns the total number of followers for username.
func (r *GormFollowRepository) FollowersCount(ctx context.Context, username string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.FollowModel{}).
		Where("following_username = ?", username).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure interface is satisfied at compile time.
var _ FollowRepository = (*GormFollowRepository)(nil)
