package repository

import (
	"context"
	"time"

	"github.com/forumix/backend/internal/entity"
	"github.com/forumix/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type IssueRepository interface {
	Create(ctx context.Context, issue *entity.Issue) error
	GetByID(ctx context.Context, id int64) (*entity.Issue, error)
	GetList(ctx context.Context, onlyOpen bool, offset, limit int) ([]entity.Issue, error)
	AddCommentNum(ctx context.Context, id int64, delta int64) error
	AddViewNum(ctx context.Context, id int64, delta int64) error

	// Adopt records the accepted answer on both sides. It reports
	// gorm.ErrRecordNotFound when the issue already adopted an answer.
	Adopt(ctx context.Context, issueID, commentID int64) error
	Delete(ctx context.Context, id int64) error

	CreateComment(ctx context.Context, comment *entity.IssueComment) error
	GetComment(ctx context.Context, id int64) (*entity.IssueComment, error)
	GetComments(ctx context.Context, issueID int64, offset, limit int) ([]entity.IssueComment, error)
	GetCommentIDs(ctx context.Context, issueID int64) ([]int64, error)
	DeleteComment(ctx context.Context, id int64) error
	DeleteCommentsByIssue(ctx context.Context, issueID int64) error
}

type issueRepository struct{}

func NewIssueRepository() *issueRepository {
	return &issueRepository{}
}

func (r *issueRepository) Create(ctx context.Context, issue *entity.Issue) error {
	return xcontext.DB(ctx).Create(issue).Error
}

func (r *issueRepository) GetByID(ctx context.Context, id int64) (*entity.Issue, error) {
	var result entity.Issue
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *issueRepository) GetList(
	ctx context.Context, onlyOpen bool, offset, limit int,
) ([]entity.Issue, error) {
	tx := xcontext.DB(ctx).Model(&entity.Issue{})
	if onlyOpen {
		tx = tx.Where("adopted_comment_id=0")
	}

	var result []entity.Issue
	err := tx.Order("id DESC").Offset(offset).Limit(limit).Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *issueRepository) AddCommentNum(ctx context.Context, id int64, delta int64) error {
	tx := xcontext.DB(ctx).
		Model(&entity.Issue{}).
		Where("id=?", id).
		Updates(map[string]any{
			"comment_num":  gorm.Expr("comment_num+?", delta),
			"comment_time": time.Now(),
		})

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *issueRepository) AddViewNum(ctx context.Context, id int64, delta int64) error {
	tx := xcontext.DB(ctx).
		Model(&entity.Issue{}).
		Where("id=?", id).
		Update("view_num", gorm.Expr("view_num+?", delta))

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *issueRepository) Adopt(ctx context.Context, issueID, commentID int64) error {
	tx := xcontext.DB(ctx).
		Model(&entity.Issue{}).
		Where("id=? AND adopted_comment_id=0", issueID).
		Update("adopted_comment_id", commentID)

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return xcontext.DB(ctx).
		Model(&entity.IssueComment{}).
		Where("id=?", commentID).
		Update("is_adopted", true).Error
}

func (r *issueRepository) Delete(ctx context.Context, id int64) error {
	tx := xcontext.DB(ctx).Where("id=?", id).Delete(&entity.Issue{})
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *issueRepository) CreateComment(ctx context.Context, comment *entity.IssueComment) error {
	return xcontext.DB(ctx).Create(comment).Error
}

func (r *issueRepository) GetComment(ctx context.Context, id int64) (*entity.IssueComment, error) {
	var result entity.IssueComment
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *issueRepository) GetComments(
	ctx context.Context, issueID int64, offset, limit int,
) ([]entity.IssueComment, error) {
	var result []entity.IssueComment
	err := xcontext.DB(ctx).
		Where("issue_id=?", issueID).
		Order("is_adopted DESC, id ASC").
		Offset(offset).Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *issueRepository) GetCommentIDs(ctx context.Context, issueID int64) ([]int64, error) {
	var ids []int64
	err := xcontext.DB(ctx).
		Model(&entity.IssueComment{}).
		Where("issue_id=?", issueID).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, err
	}

	return ids, nil
}

func (r *issueRepository) DeleteComment(ctx context.Context, id int64) error {
	tx := xcontext.DB(ctx).Where("id=?", id).Delete(&entity.IssueComment{})
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *issueRepository) DeleteCommentsByIssue(ctx context.Context, issueID int64) error {
	return xcontext.DB(ctx).Where("issue_id=?", issueID).Delete(&entity.IssueComment{}).Error
}
