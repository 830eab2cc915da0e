package repository

import (
	"context"

	"github.com/forumix/backend/internal/entity"
	"github.com/forumix/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type VoteRepository interface {
	Create(ctx context.Context, vote *entity.Vote) error
	Get(ctx context.Context, voterID string, ref entity.ContentRef) (*entity.Vote, error)
	UpdateIsUp(ctx context.Context, voterID string, ref entity.ContentRef, isUp bool) error
	Delete(ctx context.Context, voterID string, ref entity.ContentRef) error
}

type voteRepository struct{}

func NewVoteRepository() *voteRepository {
	return &voteRepository{}
}

func (r *voteRepository) Create(ctx context.Context, vote *entity.Vote) error {
	return xcontext.DB(ctx).Create(vote).Error
}

func (r *voteRepository) Get(
	ctx context.Context, voterID string, ref entity.ContentRef,
) (*entity.Vote, error) {
	var result entity.Vote
	err := xcontext.DB(ctx).
		Where("voter_id=? AND origin=? AND target_id=?", voterID, ref.Origin, ref.TargetID).
		Take(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *voteRepository) UpdateIsUp(
	ctx context.Context, voterID string, ref entity.ContentRef, isUp bool,
) error {
	tx := xcontext.DB(ctx).
		Model(&entity.Vote{}).
		Where("voter_id=? AND origin=? AND target_id=?", voterID, ref.Origin, ref.TargetID).
		Update("is_up", isUp)

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *voteRepository) Delete(
	ctx context.Context, voterID string, ref entity.ContentRef,
) error {
	tx := xcontext.DB(ctx).
		Where("voter_id=? AND origin=? AND target_id=?", voterID, ref.Origin, ref.TargetID).
		Delete(&entity.Vote{})

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
