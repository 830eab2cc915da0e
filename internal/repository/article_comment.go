package repository

import (
	"context"

	"github.com/forumix/backend/internal/entity"
	"github.com/forumix/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type ArticleCommentRepository interface {
	Create(ctx context.Context, comment *entity.ArticleComment) error
	GetByID(ctx context.Context, id int64) (*entity.ArticleComment, error)
	GetTopLevel(ctx context.Context, articleID int64, offset, limit int) ([]entity.ArticleComment, error)
	GetReplies(ctx context.Context, parentID int64, offset, limit int) ([]entity.ArticleComment, error)
	GetIDsByArticle(ctx context.Context, articleID int64) ([]int64, error)
	GetReplyIDs(ctx context.Context, parentID int64) ([]int64, error)
	Delete(ctx context.Context, id int64) error
	DeleteReplies(ctx context.Context, parentID int64) error
	DeleteByArticle(ctx context.Context, articleID int64) error
}

type articleCommentRepository struct{}

func NewArticleCommentRepository() *articleCommentRepository {
	return &articleCommentRepository{}
}

func (r *articleCommentRepository) Create(ctx context.Context, comment *entity.ArticleComment) error {
	return xcontext.DB(ctx).Create(comment).Error
}

func (r *articleCommentRepository) GetByID(ctx context.Context, id int64) (*entity.ArticleComment, error) {
	var result entity.ArticleComment
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *articleCommentRepository) GetTopLevel(
	ctx context.Context, articleID int64, offset, limit int,
) ([]entity.ArticleComment, error) {
	var result []entity.ArticleComment
	err := xcontext.DB(ctx).
		Where("article_id=? AND parent_id=0", articleID).
		Order("id ASC").
		Offset(offset).Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *articleCommentRepository) GetReplies(
	ctx context.Context, parentID int64, offset, limit int,
) ([]entity.ArticleComment, error) {
	var result []entity.ArticleComment
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

func (r *articleCommentRepository) GetIDsByArticle(
	ctx context.Context, articleID int64,
) ([]int64, error) {
	var ids []int64
	err := xcontext.DB(ctx).
		Model(&entity.ArticleComment{}).
		Where("article_id=?", articleID).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, err
	}

	return ids, nil
}

func (r *articleCommentRepository) GetReplyIDs(
	ctx context.Context, parentID int64,
) ([]int64, error) {
	var ids []int64
	err := xcontext.DB(ctx).
		Model(&entity.ArticleComment{}).
		Where("parent_id=?", parentID).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, err
	}

	return ids, nil
}

func (r *articleCommentRepository) Delete(ctx context.Context, id int64) error {
	tx := xcontext.DB(ctx).Where("id=?", id).Delete(&entity.ArticleComment{})
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *articleCommentRepository) DeleteReplies(ctx context.Context, parentID int64) error {
	return xcontext.DB(ctx).Where("parent_id=?", parentID).Delete(&entity.ArticleComment{}).Error
}

func (r *articleCommentRepository) DeleteByArticle(ctx context.Context, articleID int64) error {
	return xcontext.DB(ctx).Where("article_id=?", articleID).Delete(&entity.ArticleComment{}).Error
}
