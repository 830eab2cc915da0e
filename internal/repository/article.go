package repository

import (
	"context"

	"github.com/forumix/backend/internal/entity"
	"github.com/forumix/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type ArticleOrder string

const (
	ArticleOrderNewest ArticleOrder = "id DESC"
	ArticleOrderActive ArticleOrder = "comment_time DESC"
	ArticleOrderHot    ArticleOrder = "up_num DESC"
)

type ArticleFilter struct {
	Board  string
	Order  ArticleOrder
	Offset int
	Limit  int
}

type ArticleRepository interface {
	Create(ctx context.Context, article *entity.Article) error
	GetByID(ctx context.Context, id int64) (*entity.Article, error)
	GetList(ctx context.Context, filter ArticleFilter) ([]entity.Article, error)
	GetByAuthor(ctx context.Context, authorID string, offset, limit int) ([]entity.Article, error)
	UpdateByID(ctx context.Context, id int64, data *entity.Article) error
	Delete(ctx context.Context, id int64) error

	GetDraft(ctx context.Context, userID string) (*entity.ArticleDraft, error)
	SaveDraft(ctx context.Context, draft *entity.ArticleDraft) error
	DeleteDraft(ctx context.Context, userID string) error
}

type articleRepository struct{}

func NewArticleRepository() *articleRepository {
	return &articleRepository{}
}

func (r *articleRepository) Create(ctx context.Context, article *entity.Article) error {
	return xcontext.DB(ctx).Create(article).Error
}

func (r *articleRepository) GetByID(ctx context.Context, id int64) (*entity.Article, error) {
	var result entity.Article
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *articleRepository) GetList(ctx context.Context, filter ArticleFilter) ([]entity.Article, error) {
	tx := xcontext.DB(ctx).Model(&entity.Article{})
	if filter.Board != "" {
		tx = tx.Where("board=?", filter.Board)
	}

	order := filter.Order
	if order == "" {
		order = ArticleOrderNewest
	}

	var result []entity.Article
	err := tx.Order(string(order)).Offset(filter.Offset).Limit(filter.Limit).Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *articleRepository) GetByAuthor(
	ctx context.Context, authorID string, offset, limit int,
) ([]entity.Article, error) {
	var result []entity.Article
	err := xcontext.DB(ctx).
		Where("author_id=?", authorID).
		Order("id DESC").
		Offset(offset).Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *articleRepository) UpdateByID(ctx context.Context, id int64, data *entity.Article) error {
	return xcontext.DB(ctx).
		Model(&entity.Article{}).
		Where("id=?", id).
		Updates(data).Error
}

func (r *articleRepository) Delete(ctx context.Context, id int64) error {
	tx := xcontext.DB(ctx).Where("id=?", id).Delete(&entity.Article{})
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *articleRepository) GetDraft(ctx context.Context, userID string) (*entity.ArticleDraft, error) {
	var result entity.ArticleDraft
	if err := xcontext.DB(ctx).Take(&result, "user_id=?", userID).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *articleRepository) SaveDraft(ctx context.Context, draft *entity.ArticleDraft) error {
	tx := xcontext.DB(ctx).
		Model(&entity.ArticleDraft{}).
		Where("user_id=?", draft.UserID).
		Updates(map[string]any{
			"board":   draft.Board,
			"title":   draft.Title,
			"content": draft.Content,
		})

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return xcontext.DB(ctx).Create(draft).Error
	}

	return nil
}

func (r *articleRepository) DeleteDraft(ctx context.Context, userID string) error {
	return xcontext.DB(ctx).Where("user_id=?", userID).Delete(&entity.ArticleDraft{}).Error
}
