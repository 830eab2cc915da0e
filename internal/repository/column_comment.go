package repository

import (
	"context"

	"github.com/forumix/backend/internal/entity"
	"github.com/forumix/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type ColumnCommentRepository interface {
	Create(ctx context.Context, comment *entity.ColumnComment) error
	GetByID(ctx context.Context, id int64) (*entity.ColumnComment, error)
	GetTopLevel(ctx context.Context, columnID int64, offset, limit int) ([]entity.ColumnComment, error)
	GetReplies(ctx context.Context, parentID int64, offset, limit int) ([]entity.ColumnComment, error)
	GetIDsByColumn(ctx context.Context, columnID int64) ([]int64, error)
	GetReplyIDs(ctx context.Context, parentID int64) ([]int64, error)
	Delete(ctx context.Context, id int64) error
	DeleteReplies(ctx context.Context, parentID int64) error
	DeleteByColumn(ctx context.Context, columnID int64) error
}

type columnCommentRepository struct{}

func NewColumnCommentRepository() *columnCommentRepository {
	return &columnCommentRepository{}
}

func (r *columnCommentRepository) Create(ctx context.Context, comment *entity.ColumnComment) error {
	return xcontext.DB(ctx).Create(comment).Error
}

func (r *columnCommentRepository) GetByID(ctx context.Context, id int64) (*entity.ColumnComment, error) {
	var result entity.ColumnComment
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *columnCommentRepository) GetTopLevel(
	ctx context.Context, columnID int64, offset, limit int,
) ([]entity.ColumnComment, error) {
	var result []entity.ColumnComment
	err := xcontext.DB(ctx).
		Where("column_id=? AND parent_id=0", columnID).
		Order("id ASC").
		Offset(offset).Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *columnCommentRepository) GetReplies(
	ctx context.Context, parentID int64, offset, limit int,
) ([]entity.ColumnComment, error) {
	var result []entity.ColumnComment
	err := xcontext.DB(ctx).
		Where("parent_id=?", parentID).
		Order("id ASC").
		Offset(offset).Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *columnCommentRepository) GetIDsByColumn(
	ctx context.Context, columnID int64,
) ([]int64, error) {
	var ids []int64
	err := xcontext.DB(ctx).
		Model(&entity.ColumnComment{}).
		Where("column_id=?", columnID).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, err
	}

	return ids, nil
}

func (r *columnCommentRepository) GetReplyIDs(
	ctx context.Context, parentID int64,
) ([]int64, error) {
	var ids []int64
	err := xcontext.DB(ctx).
		Model(&entity.ColumnComment{}).
		Where("parent_id=?", parentID).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, err
	}

	return ids, nil
}

func (r *columnCommentRepository) Delete(ctx context.Context, id int64) error {
	tx := xcontext.DB(ctx).Where("id=?", id).Delete(&entity.ColumnComment{})
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *columnCommentRepository) DeleteReplies(ctx context.Context, parentID int64) error {
	return xcontext.DB(ctx).Where("parent_id=?", parentID).Delete(&entity.ColumnComment{}).Error
}

func (r *columnCommentRepository) DeleteByColumn(ctx context.Context, columnID int64) error {
	return xcontext.DB(ctx).Where("column_id=?", columnID).Delete(&entity.ColumnComment{}).Error
}
