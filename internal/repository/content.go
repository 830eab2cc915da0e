package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/forumix/backend/internal/entity"
	"github.com/forumix/backend/pkg/xcontext"
	"gorm.io/gorm"
)

// ContentRepository applies interaction counter updates to any content table
// addressed by an origin. Every update is column-relative so concurrent
// writers cannot lose increments.
type ContentRepository interface {
	Exists(ctx context.Context, ref entity.ContentRef) (bool, error)
	GetAuthorID(ctx context.Context, ref entity.ContentRef) (string, error)

	// GetPreview returns a short text extract of the record, the summary for
	// posts and the body for comments. Deleted records return empty.
	GetPreview(ctx context.Context, ref entity.ContentRef) (string, error)
	AddUpNum(ctx context.Context, ref entity.ContentRef, delta int64) error
	AddDownNum(ctx context.Context, ref entity.ContentRef, delta int64) error

	// AddCommentNum also touches comment_time on tables that track the last
	// comment activity.
	AddCommentNum(ctx context.Context, ref entity.ContentRef, delta int64) error
	AddViewNum(ctx context.Context, ref entity.ContentRef, delta int64) error
}

type contentTable struct {
	model any

	previewColumn string

	hasUpDown      bool
	hasCommentNum  bool
	hasCommentTime bool
	hasViewNum     bool
}

var contentTables = map[entity.Origin]contentTable{
	entity.OriginArticle: {
		model:          &entity.Article{},
		previewColumn:  "summary",
		hasUpDown:      true,
		hasCommentNum:  true,
		hasCommentTime: true,
		hasViewNum:     true,
	},
	entity.OriginArticleComment: {
		model:         &entity.ArticleComment{},
		previewColumn: "content",
		hasUpDown:     true,
		hasCommentNum: true,
	},
	entity.OriginColumn: {
		model:          &entity.Column{},
		previewColumn:  "summary",
		hasUpDown:      true,
		hasCommentNum:  true,
		hasCommentTime: true,
		hasViewNum:     true,
	},
	entity.OriginColumnComment: {
		model:         &entity.ColumnComment{},
		previewColumn: "content",
		hasUpDown:     true,
		hasCommentNum: true,
	},
	entity.OriginIssueComment: {
		model:         &entity.IssueComment{},
		previewColumn: "content",
		hasUpDown:     true,
	},
}

type contentRepository struct{}

func NewContentRepository() *contentRepository {
	return &contentRepository{}
}

func (r *contentRepository) Exists(ctx context.Context, ref entity.ContentRef) (bool, error) {
	table, err := tableOf(ref.Origin)
	if err != nil {
		return false, err
	}

	var count int64
	err = xcontext.DB(ctx).Model(table.model).Where("id=?", ref.TargetID).Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

func (r *contentRepository) GetAuthorID(ctx context.Context, ref entity.ContentRef) (string, error) {
	table, err := tableOf(ref.Origin)
	if err != nil {
		return "", err
	}

	var authorID string
	err = xcontext.DB(ctx).
		Model(table.model).
		Where("id=?", ref.TargetID).
		Pluck("author_id", &authorID).Error
	if err != nil {
		return "", err
	}

	if authorID == "" {
		return "", gorm.ErrRecordNotFound
	}

	return authorID, nil
}

func (r *contentRepository) GetPreview(ctx context.Context, ref entity.ContentRef) (string, error) {
	table, err := tableOf(ref.Origin)
	if err != nil {
		return "", err
	}

	var preview string
	err = xcontext.DB(ctx).
		Model(table.model).
		Where("id=?", ref.TargetID).
		Pluck(table.previewColumn, &preview).Error
	if err != nil {
		return "", err
	}

	return preview, nil
}

func (r *contentRepository) AddUpNum(ctx context.Context, ref entity.ContentRef, delta int64) error {
	table, err := tableOf(ref.Origin)
	if err != nil {
		return err
	}

	if !table.hasUpDown {
		return fmt.Errorf("origin %s does not track votes", ref.Origin)
	}

	return r.update(ctx, table, ref, map[string]any{
		"up_num": gorm.Expr("up_num+?", delta),
	})
}

func (r *contentRepository) AddDownNum(ctx context.Context, ref entity.ContentRef, delta int64) error {
	table, err := tableOf(ref.Origin)
	if err != nil {
		return err
	}

	if !table.hasUpDown {
		return fmt.Errorf("origin %s does not track votes", ref.Origin)
	}

	return r.update(ctx, table, ref, map[string]any{
		"down_num": gorm.Expr("down_num+?", delta),
	})
}

func (r *contentRepository) AddCommentNum(ctx context.Context, ref entity.ContentRef, delta int64) error {
	table, err := tableOf(ref.Origin)
	if err != nil {
		return err
	}

	if !table.hasCommentNum {
		return fmt.Errorf("origin %s does not track comments", ref.Origin)
	}

	updateMap := map[string]any{
		"comment_num": gorm.Expr("comment_num+?", delta),
	}

	if table.hasCommentTime && delta > 0 {
		updateMap["comment_time"] = time.Now()
	}

	return r.update(ctx, table, ref, updateMap)
}

func (r *contentRepository) AddViewNum(ctx context.Context, ref entity.ContentRef, delta int64) error {
	table, err := tableOf(ref.Origin)
	if err != nil {
		return err
	}

	if !table.hasViewNum {
		return fmt.Errorf("origin %s does not track views", ref.Origin)
	}

	return r.update(ctx, table, ref, map[string]any{
		"view_num": gorm.Expr("view_num+?", delta),
	})
}

func (r *contentRepository) update(
	ctx context.Context, table contentTable, ref entity.ContentRef, updateMap map[string]any,
) error {
	// Zero affected rows means the record was deleted meanwhile. Counters
	// on dead content are unobserved, so the race is tolerated silently.
	return xcontext.DB(ctx).
		Model(table.model).
		Where("id=?", ref.TargetID).
		Updates(updateMap).Error
}

func tableOf(origin entity.Origin) (contentTable, error) {
	table, ok := contentTables[origin]
	if !ok {
		return contentTable{}, fmt.Errorf("unknown origin %s", origin)
	}

	return table, nil
}
