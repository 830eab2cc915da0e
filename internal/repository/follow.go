package repository

import (
	"context"

	"github.com/forumix/backend/internal/entity"
	"github.com/forumix/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type FollowRepository interface {
	Create(ctx context.Context, follow *entity.Follow) error
	Delete(ctx context.Context, followerID, followingID string) error
	Get(ctx context.Context, followerID, followingID string) (*entity.Follow, error)
	GetFollowings(ctx context.Context, followerID string, offset, limit int) ([]entity.Follow, error)
	GetFollowers(ctx context.Context, followingID string, offset, limit int) ([]entity.Follow, error)

	// FollowingSet returns the ids the user follows, computed fresh from the
	// follow table on every call.
	FollowingSet(ctx context.Context, followerID string) (map[string]bool, error)
	FollowerIDs(ctx context.Context, followingID string) ([]string, error)

	CreateBlock(ctx context.Context, block *entity.Blacklist) error
	DeleteBlock(ctx context.Context, userID, targetID string) error
	GetBlock(ctx context.Context, userID, targetID string) (*entity.Blacklist, error)
	GetBlocks(ctx context.Context, userID string, offset, limit int) ([]entity.Blacklist, error)

	// BlockSet returns the ids the user blocked.
	BlockSet(ctx context.Context, userID string) (map[string]bool, error)

	// BlockedBySet returns the ids of users who blocked this user.
	BlockedBySet(ctx context.Context, targetID string) (map[string]bool, error)
}

type followRepository struct{}

func NewFollowRepository() *followRepository {
	return &followRepository{}
}

func (r *followRepository) Create(ctx context.Context, follow *entity.Follow) error {
	return xcontext.DB(ctx).Create(follow).Error
}

func (r *followRepository) Delete(ctx context.Context, followerID, followingID string) error {
	tx := xcontext.DB(ctx).
		Where("follower_id=? AND following_id=?", followerID, followingID).
		Delete(&entity.Follow{})

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *followRepository) Get(ctx context.Context, followerID, followingID string) (*entity.Follow, error) {
	var result entity.Follow
	err := xcontext.DB(ctx).
		Where("follower_id=? AND following_id=?", followerID, followingID).
		Take(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *followRepository) GetFollowings(
	ctx context.Context, followerID string, offset, limit int,
) ([]entity.Follow, error) {
	var result []entity.Follow
	err := xcontext.DB(ctx).
		Where("follower_id=?", followerID).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *followRepository) GetFollowers(
	ctx context.Context, followingID string, offset, limit int,
) ([]entity.Follow, error) {
	var result []entity.Follow
	err := xcontext.DB(ctx).
		Where("following_id=?", followingID).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *followRepository) FollowingSet(
	ctx context.Context, followerID string,
) (map[string]bool, error) {
	var ids []string
	err := xcontext.DB(ctx).
		Model(&entity.Follow{}).
		Where("follower_id=?", followerID).
		Pluck("following_id", &ids).Error
	if err != nil {
		return nil, err
	}

	set := map[string]bool{}
	for _, id := range ids {
		set[id] = true
	}

	return set, nil
}

func (r *followRepository) FollowerIDs(ctx context.Context, followingID string) ([]string, error) {
	var ids []string
	err := xcontext.DB(ctx).
		Model(&entity.Follow{}).
		Where("following_id=?", followingID).
		Pluck("follower_id", &ids).Error
	if err != nil {
		return nil, err
	}

	return ids, nil
}

func (r *followRepository) CreateBlock(ctx context.Context, block *entity.Blacklist) error {
	return xcontext.DB(ctx).Create(block).Error
}

func (r *followRepository) DeleteBlock(ctx context.Context, userID, targetID string) error {
	tx := xcontext.DB(ctx).
		Where("user_id=? AND target_id=?", userID, targetID).
		Delete(&entity.Blacklist{})

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *followRepository) GetBlock(ctx context.Context, userID, targetID string) (*entity.Blacklist, error) {
	var result entity.Blacklist
	err := xcontext.DB(ctx).
		Where("user_id=? AND target_id=?", userID, targetID).
		Take(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *followRepository) GetBlocks(
	ctx context.Context, userID string, offset, limit int,
) ([]entity.Blacklist, error) {
	var result []entity.Blacklist
	err := xcontext.DB(ctx).
		Where("user_id=?", userID).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *followRepository) BlockSet(ctx context.Context, userID string) (map[string]bool, error) {
	var ids []string
	err := xcontext.DB(ctx).
		Model(&entity.Blacklist{}).
		Where("user_id=?", userID).
		Pluck("target_id", &ids).Error
	if err != nil {
		return nil, err
	}

	set := map[string]bool{}
	for _, id := range ids {
		set[id] = true
	}

	return set, nil
}

func (r *followRepository) BlockedBySet(ctx context.Context, targetID string) (map[string]bool, error) {
	var ids []string
	err := xcontext.DB(ctx).
		Model(&entity.Blacklist{}).
		Where("target_id=?", targetID).
		Pluck("user_id", &ids).Error
	if err != nil {
		return nil, err
	}

	set := map[string]bool{}
	for _, id := range ids {
		set[id] = true
	}

	return set, nil
}
