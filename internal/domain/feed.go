package domain

import (
	"context"
	"sort"

	"github.com/forumix/backend/internal/entity"
	"github.com/forumix/backend/internal/model"
	"github.com/forumix/backend/internal/repository"
	"github.com/forumix/backend/pkg/errorx"
	"github.com/forumix/backend/pkg/xcontext"
)

type FeedDomain interface {
	Get(ctx context.Context, req *model.GetFeedRequest) (*model.GetFeedResponse, error)
	GetByUser(ctx context.Context, req *model.GetUserFeedRequest) (*model.GetUserFeedResponse, error)
}

type feedDomain struct {
	articleRepo repository.ArticleRepository
	columnRepo  repository.ColumnRepository
	userRepo    repository.UserRepository
}

func NewFeedDomain(
	articleRepo repository.ArticleRepository,
	columnRepo repository.ColumnRepository,
	userRepo repository.UserRepository,
) *feedDomain {
	return &feedDomain{
		articleRepo: articleRepo,
		columnRepo:  columnRepo,
		userRepo:    userRepo,
	}
}

// Get merges the newest articles and columns into one stream ordered by
// creation time. Both sources are paged with the same window, so the merge
// over-fetches rather than missing entries.
func (d *feedDomain) Get(
	ctx context.Context, req *model.GetFeedRequest,
) (*model.GetFeedResponse, error) {
	offset, limit, err := normalizePagination(ctx, req.Offset, req.Limit)
	if err != nil {
		return nil, err
	}

	articles, err := d.articleRepo.GetList(ctx, repository.ArticleFilter{
		Order:  repository.ArticleOrderNewest,
		Offset: offset,
		Limit:  limit,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get articles: %v", err)
		return nil, errorx.Unknown
	}

	columns, err := d.columnRepo.GetList(ctx, repository.ColumnFilter{
		Offset: offset,
		Limit:  limit,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get columns: %v", err)
		return nil, errorx.Unknown
	}

	items, err := d.merge(ctx, articles, columns, limit)
	if err != nil {
		return nil, err
	}

	return &model.GetFeedResponse{Items: items}, nil
}

// GetByUser returns one user's posts across both kinds. The user sees their
// own column drafts, everyone else only published work.
func (d *feedDomain) GetByUser(
	ctx context.Context, req *model.GetUserFeedRequest,
) (*model.GetUserFeedResponse, error) {
	userID := req.UserID
	if userID == "" {
		userID = xcontext.RequestUserID(ctx)
	}

	if userID == "" {
		return nil, errorx.New(errorx.Unauthenticated, "Not allow anonymous request")
	}

	offset, limit, err := normalizePagination(ctx, req.Offset, req.Limit)
	if err != nil {
		return nil, err
	}

	articles, err := d.articleRepo.GetByAuthor(ctx, userID, offset, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get articles: %v", err)
		return nil, errorx.Unknown
	}

	columns, err := d.columnRepo.GetList(ctx, repository.ColumnFilter{
		AuthorID:      userID,
		IncludeDrafts: userID == xcontext.RequestUserID(ctx),
		Offset:        offset,
		Limit:         limit,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get columns: %v", err)
		return nil, errorx.Unknown
	}

	items, err := d.merge(ctx, articles, columns, limit)
	if err != nil {
		return nil, err
	}

	return &model.GetUserFeedResponse{Items: items}, nil
}

func (d *feedDomain) merge(
	ctx context.Context, articles []entity.Article, columns []entity.Column, limit int,
) ([]model.FeedItem, error) {
	authorIDs := []string{}
	seen := map[string]bool{}
	for _, a := range articles {
		if !seen[a.AuthorID] {
			seen[a.AuthorID] = true
			authorIDs = append(authorIDs, a.AuthorID)
		}
	}

	for _, c := range columns {
		if !seen[c.AuthorID] {
			seen[c.AuthorID] = true
			authorIDs = append(authorIDs, c.AuthorID)
		}
	}

	authors := map[string]*entity.User{}
	if len(authorIDs) > 0 {
		users, err := d.userRepo.GetByIDs(ctx, authorIDs)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot get authors: %v", err)
			return nil, errorx.Unknown
		}

		for i := range users {
			authors[users[i].ID] = &users[i]
		}
	}

	type timedItem struct {
		item model.FeedItem
		id   int64
	}

	items := []timedItem{}
	for i := range articles {
		converted := model.ConvertArticle(&articles[i], authors[articles[i].AuthorID], "")
		converted.Content = ""
		items = append(items, timedItem{
			item: model.FeedItem{Origin: string(entity.OriginArticle), Article: &converted},
			id:   articles[i].ID,
		})
	}

	for i := range columns {
		converted := model.ConvertColumn(&columns[i], authors[columns[i].AuthorID], "")
		converted.Content = ""
		items = append(items, timedItem{
			item: model.FeedItem{Origin: string(entity.OriginColumn), Column: &converted},
			id:   columns[i].ID,
		})
	}

	// Snowflake ids are time ordered, so sorting by id sorts by creation.
	sort.Slice(items, func(i, j int) bool { return items[i].id > items[j].id })

	if len(items) > limit {
		items = items[:limit]
	}

	result := []model.FeedItem{}
	for _, it := range items {
		result = append(result, it.item)
	}

	return result, nil
}
