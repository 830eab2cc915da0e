package repository

import (
	"context"

	"github.com/forumix/backend/internal/entity"
	"github.com/forumix/backend/pkg/xcontext"
)

type ViewRepository interface {
	Create(ctx context.Context, view *entity.View) error
	Exists(ctx context.Context, userID string, ref entity.ContentRef) (bool, error)
}

type viewRepository struct{}

func NewViewRepository() *viewRepository {
	return &viewRepository{}
}

func (r *viewRepository) Create(ctx context.Context, view *entity.View) error {
	return xcontext.DB(ctx).Create(view).Error
}

func (r *viewRepository) Exists(
	ctx context.Context, userID string, ref entity.ContentRef,
) (bool, error) {
	var count int64
	err := xcontext.DB(ctx).
		Model(&entity.View{}).
		Where("user_id=? AND origin=? AND target_id=?", userID, ref.Origin, ref.TargetID).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}
