package domain

import (
	"context"
	"errors"

	"github.com/forumix/backend/internal/domain/statistic"
	"github.com/forumix/backend/internal/entity"
	"github.com/forumix/backend/internal/model"
	"github.com/forumix/backend/internal/repository"
	"github.com/forumix/backend/pkg/errorx"
	"github.com/forumix/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type StatisticDomain interface {
	GetTrending(ctx context.Context, req *model.GetTrendingRequest) (*model.GetTrendingResponse, error)
}

type statisticDomain struct {
	trending    *statistic.Trending
	articleRepo repository.ArticleRepository
	columnRepo  repository.ColumnRepository
}

func NewStatisticDomain(
	trending *statistic.Trending,
	articleRepo repository.ArticleRepository,
	columnRepo repository.ColumnRepository,
) *statisticDomain {
	return &statisticDomain{
		trending:    trending,
		articleRepo: articleRepo,
		columnRepo:  columnRepo,
	}
}

func (d *statisticDomain) GetTrending(
	ctx context.Context, req *model.GetTrendingRequest,
) (*model.GetTrendingResponse, error) {
	offset := req.Offset
	limit := req.Limit
	if limit <= 0 {
		limit = xcontext.Configs(ctx).Content.TrendingSize
	}

	// The board is advisory, a broken redis degrades to an empty list
	// instead of failing the request.
	entries, err := d.trending.Get(ctx, offset, limit)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot get trending board: %v", err)
		return &model.GetTrendingResponse{Items: []model.TrendingItem{}}, nil
	}

	items := []model.TrendingItem{}
	for i, entry := range entries {
		title, err := d.titleOf(ctx, entry.Ref)
		if err != nil {
			return nil, err
		}

		// Deleted records stay on the board until the week rolls over,
		// skip them instead of rendering an empty row.
		if title == "" {
			continue
		}

		items = append(items, model.TrendingItem{
			Origin:   string(entry.Ref.Origin),
			TargetID: entry.Ref.TargetID,
			Title:    title,
			Score:    entry.Score,
			Rank:     offset + i + 1,
		})
	}

	return &model.GetTrendingResponse{Items: items}, nil
}

func (d *statisticDomain) titleOf(ctx context.Context, ref entity.ContentRef) (string, error) {
	switch ref.Origin {
	case entity.OriginArticle:
		article, err := d.articleRepo.GetByID(ctx, ref.TargetID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return "", nil
			}

			xcontext.Logger(ctx).Errorf("Cannot get article: %v", err)
			return "", errorx.Unknown
		}

		return article.Title, nil

	case entity.OriginColumn:
		column, err := d.columnRepo.GetByID(ctx, ref.TargetID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return "", nil
			}

			xcontext.Logger(ctx).Errorf("Cannot get column: %v", err)
			return "", errorx.Unknown
		}

		return column.Title, nil
	}

	return "", nil
}
