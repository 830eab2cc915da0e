package repository

import (
	"context"

	"github.com/forumix/backend/internal/entity"
	"github.com/forumix/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type ColumnFilter struct {
	AuthorID string

	// IncludeDrafts also returns unpublished columns. Only valid when the
	// caller is the author.
	IncludeDrafts bool

	Offset int
	Limit  int
}

type ColumnRepository interface {
	Create(ctx context.Context, column *entity.Column) error
	GetByID(ctx context.Context, id int64) (*entity.Column, error)
	GetList(ctx context.Context, filter ColumnFilter) ([]entity.Column, error)
	UpdateByID(ctx context.Context, id int64, data *entity.Column) error

	// Publish clears the draft flag. It reports gorm.ErrRecordNotFound when
	// the column is already published, so publishing is not repeatable.
	Publish(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
}

type columnRepository struct{}

func NewColumnRepository() *columnRepository {
	return &columnRepository{}
}

func (r *columnRepository) Create(ctx context.Context, column *entity.Column) error {
	return xcontext.DB(ctx).Create(column).Error
}

func (r *columnRepository) GetByID(ctx context.Context, id int64) (*entity.Column, error) {
	var result entity.Column
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *columnRepository) GetList(ctx context.Context, filter ColumnFilter) ([]entity.Column, error) {
	tx := xcontext.DB(ctx).Model(&entity.Column{})
	if filter.AuthorID != "" {
		tx = tx.Where("author_id=?", filter.AuthorID)
	}

	if !filter.IncludeDrafts {
		tx = tx.Where("is_draft=false")
	}

	var result []entity.Column
	err := tx.Order("id DESC").Offset(filter.Offset).Limit(filter.Limit).Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *columnRepository) UpdateByID(ctx context.Context, id int64, data *entity.Column) error {
	return xcontext.DB(ctx).
		Model(&entity.Column{}).
		Where("id=?", id).
		Updates(data).Error
}

func (r *columnRepository) Publish(ctx context.Context, id int64) error {
	tx := xcontext.DB(ctx).
		Model(&entity.Column{}).
		Where("id=? AND is_draft=true", id).
		Update("is_draft", false)

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *columnRepository) Delete(ctx context.Context, id int64) error {
	tx := xcontext.DB(ctx).Where("id=?", id).Delete(&entity.Column{})
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
