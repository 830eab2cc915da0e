package domain

import (
	"context"
	"errors"
	"time"

	"github.com/forumix/backend/internal/domain/notify"
	"github.com/forumix/backend/internal/domain/quest"
	"github.com/forumix/backend/internal/domain/statistic"
	"github.com/forumix/backend/internal/domain/vote"
	"github.com/forumix/backend/internal/entity"
	"github.com/forumix/backend/internal/model"
	"github.com/forumix/backend/internal/repository"
	"github.com/forumix/backend/pkg/errorx"
	"github.com/forumix/backend/pkg/htmlutil"
	"github.com/forumix/backend/pkg/idutil"
	"github.com/forumix/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type ArticleDomain interface {
	Create(ctx context.Context, req *model.CreateArticleRequest) (*model.CreateArticleResponse, error)
	Get(ctx context.Context, req *model.GetArticleRequest) (*model.GetArticleResponse, error)
	GetList(ctx context.Context, req *model.GetArticlesRequest) (*model.GetArticlesResponse, error)
	Update(ctx context.Context, req *model.UpdateArticleRequest) (*model.UpdateArticleResponse, error)
	Delete(ctx context.Context, req *model.DeleteArticleRequest) (*model.DeleteArticleResponse, error)
	SaveDraft(ctx context.Context, req *model.SaveArticleDraftRequest) (*model.SaveArticleDraftResponse, error)
	GetDraft(ctx context.Context, req *model.GetArticleDraftRequest) (*model.GetArticleDraftResponse, error)
}

type articleDomain struct {
	articleRepo  repository.ArticleRepository
	commentRepo  repository.ArticleCommentRepository
	userRepo     repository.UserRepository
	viewRepo     repository.ViewRepository
	contentRepo  repository.ContentRepository
	voteLedger   *vote.Ledger
	questLedger  *quest.Ledger
	notifyEngine *notify.Engine
	trending     *statistic.Trending
}

func NewArticleDomain(
	articleRepo repository.ArticleRepository,
	commentRepo repository.ArticleCommentRepository,
	userRepo repository.UserRepository,
	viewRepo repository.ViewRepository,
	contentRepo repository.ContentRepository,
	voteLedger *vote.Ledger,
	questLedger *quest.Ledger,
	notifyEngine *notify.Engine,
	trending *statistic.Trending,
) *articleDomain {
	return &articleDomain{
		articleRepo:  articleRepo,
		commentRepo:  commentRepo,
		userRepo:     userRepo,
		viewRepo:     viewRepo,
		contentRepo:  contentRepo,
		voteLedger:   voteLedger,
		questLedger:  questLedger,
		notifyEngine: notifyEngine,
		trending:     trending,
	}
}

func (d *articleDomain) Create(
	ctx context.Context, req *model.CreateArticleRequest,
) (*model.CreateArticleResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	if req.Title == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty title")
	}

	if req.Content == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty content")
	}

	contentCfg := xcontext.Configs(ctx).Content
	if len(req.Content) > contentCfg.MaxContentLength {
		return nil, errorx.New(errorx.BadRequest, "Content is too long")
	}

	content := htmlutil.Sanitize(req.Content)
	article := &entity.Article{
		SnowFlakeBase: entity.SnowFlakeBase{ID: idutil.NewID()},
		AuthorID:      userID,
		Board:         req.Board,
		Title:         req.Title,
		Content:       content,
		Summary:       htmlutil.Summary(content, contentCfg.SummaryLength),
		CommentTime:   time.Now(),
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.articleRepo.Create(ctx, article); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create article: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.articleRepo.DeleteDraft(ctx, userID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete article draft: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.questLedger.Award(ctx, userID, entity.QuestArticle); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot award article quest: %v", err)
		return nil, errorx.Unknown
	}

	// Fan-out is best effort, a failed notification never loses the article.
	ref := entity.ContentRef{Origin: entity.OriginArticle, TargetID: article.ID}
	if err := d.notifyEngine.SendDynamic(ctx, userID, ref); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot send dynamic notifications: %v", err)
	}

	xcontext.WithCommitDBTransaction(ctx)
	return &model.CreateArticleResponse{ID: article.ID}, nil
}

func (d *articleDomain) Get(
	ctx context.Context, req *model.GetArticleRequest,
) (*model.GetArticleResponse, error) {
	article, err := d.articleRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found article")
		}

		xcontext.Logger(ctx).Errorf("Cannot get article: %v", err)
		return nil, errorx.Unknown
	}

	author, err := d.userRepo.GetByID(ctx, article.AuthorID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get article author: %v", err)
		return nil, errorx.Unknown
	}

	ref := entity.ContentRef{Origin: entity.OriginArticle, TargetID: article.ID}
	userID := xcontext.RequestUserID(ctx)
	myVote := ""
	if userID != "" {
		state, err := d.voteLedger.State(ctx, userID, ref)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot get vote state: %v", err)
			return nil, errorx.Unknown
		}

		myVote = string(state)

		if err := d.recordView(ctx, userID, ref); err != nil {
			return nil, err
		}
	}

	return &model.GetArticleResponse{Article: model.ConvertArticle(article, author, myVote)}, nil
}

func (d *articleDomain) GetList(
	ctx context.Context, req *model.GetArticlesRequest,
) (*model.GetArticlesResponse, error) {
	offset, limit, err := normalizePagination(ctx, req.Offset, req.Limit)
	if err != nil {
		return nil, err
	}

	var order repository.ArticleOrder
	switch req.Order {
	case "", "newest":
		order = repository.ArticleOrderNewest
	case "active":
		order = repository.ArticleOrderActive
	case "hot":
		order = repository.ArticleOrderHot
	default:
		return nil, errorx.New(errorx.BadRequest, "Invalid order %s", req.Order)
	}

	articles, err := d.articleRepo.GetList(ctx, repository.ArticleFilter{
		Board:  req.Board,
		Order:  order,
		Offset: offset,
		Limit:  limit,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get articles: %v", err)
		return nil, errorx.Unknown
	}

	authors, err := d.authorsOf(ctx, articles)
	if err != nil {
		return nil, err
	}

	result := []model.Article{}
	for i := range articles {
		author := authors[articles[i].AuthorID]
		converted := model.ConvertArticle(&articles[i], author, "")
		converted.Content = ""
		result = append(result, converted)
	}

	return &model.GetArticlesResponse{Articles: result}, nil
}

func (d *articleDomain) Update(
	ctx context.Context, req *model.UpdateArticleRequest,
) (*model.UpdateArticleResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	if req.Title == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty title")
	}

	if req.Content == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty content")
	}

	contentCfg := xcontext.Configs(ctx).Content
	if len(req.Content) > contentCfg.MaxContentLength {
		return nil, errorx.New(errorx.BadRequest, "Content is too long")
	}

	article, err := d.articleRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found article")
		}

		xcontext.Logger(ctx).Errorf("Cannot get article: %v", err)
		return nil, errorx.Unknown
	}

	if article.AuthorID != userID {
		return nil, errorx.New(errorx.PermissionDenied, "Only the author can update the article")
	}

	content := htmlutil.Sanitize(req.Content)
	err = d.articleRepo.UpdateByID(ctx, article.ID, &entity.Article{
		Title:   req.Title,
		Content: content,
		Summary: htmlutil.Summary(content, contentCfg.SummaryLength),
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update article: %v", err)
		return nil, errorx.Unknown
	}

	return &model.UpdateArticleResponse{}, nil
}

func (d *articleDomain) Delete(
	ctx context.Context, req *model.DeleteArticleRequest,
) (*model.DeleteArticleResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	article, err := d.articleRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found article")
		}

		xcontext.Logger(ctx).Errorf("Cannot get article: %v", err)
		return nil, errorx.Unknown
	}

	if article.AuthorID != userID {
		return nil, errorx.New(errorx.PermissionDenied, "Only the author can delete the article")
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	commentIDs, err := d.commentRepo.GetIDsByArticle(ctx, article.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get comment ids: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.commentRepo.DeleteByArticle(ctx, article.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete comments: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.articleRepo.Delete(ctx, article.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete article: %v", err)
		return nil, errorx.Unknown
	}

	ref := entity.ContentRef{Origin: entity.OriginArticle, TargetID: article.ID}
	if err := d.notifyEngine.Retract(ctx, ref); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot retract article notifications: %v", err)
		return nil, errorx.Unknown
	}

	for _, commentID := range commentIDs {
		commentRef := entity.ContentRef{Origin: entity.OriginArticleComment, TargetID: commentID}
		if err := d.notifyEngine.Retract(ctx, commentRef); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot retract comment notifications: %v", err)
			return nil, errorx.Unknown
		}
	}

	xcontext.WithCommitDBTransaction(ctx)
	return &model.DeleteArticleResponse{}, nil
}

func (d *articleDomain) SaveDraft(
	ctx context.Context, req *model.SaveArticleDraftRequest,
) (*model.SaveArticleDraftResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	err := d.articleRepo.SaveDraft(ctx, &entity.ArticleDraft{
		UserID:  userID,
		Board:   req.Board,
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot save article draft: %v", err)
		return nil, errorx.Unknown
	}

	return &model.SaveArticleDraftResponse{}, nil
}

func (d *articleDomain) GetDraft(
	ctx context.Context, req *model.GetArticleDraftRequest,
) (*model.GetArticleDraftResponse, error) {
	draft, err := d.articleRepo.GetDraft(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &model.GetArticleDraftResponse{}, nil
		}

		xcontext.Logger(ctx).Errorf("Cannot get article draft: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetArticleDraftResponse{
		Board:   draft.Board,
		Title:   draft.Title,
		Content: draft.Content,
	}, nil
}

// recordView bumps the view counter and the trending board once per user
// per record. Anonymous visits are not counted.
func (d *articleDomain) recordView(ctx context.Context, userID string, ref entity.ContentRef) error {
	viewed, err := d.viewRepo.Exists(ctx, userID, ref)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot check view record: %v", err)
		return errorx.Unknown
	}

	if viewed {
		return nil
	}

	err = d.viewRepo.Create(ctx, &entity.View{
		CreatedAt: time.Now(),
		UserID:    userID,
		Origin:    ref.Origin,
		TargetID:  ref.TargetID,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create view record: %v", err)
		return errorx.Unknown
	}

	if err := d.contentRepo.AddViewNum(ctx, ref, 1); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update view counter: %v", err)
		return errorx.Unknown
	}

	if err := d.trending.Bump(ctx, ref, 1); err != nil {
		// Trending lives in redis and is advisory, a failed bump never
		// fails the page view.
		xcontext.Logger(ctx).Warnf("Cannot bump trending score: %v", err)
	}

	return nil
}

func (d *articleDomain) authorsOf(
	ctx context.Context, articles []entity.Article,
) (map[string]*entity.User, error) {
	ids := []string{}
	seen := map[string]bool{}
	for _, a := range articles {
		if !seen[a.AuthorID] {
			seen[a.AuthorID] = true
			ids = append(ids, a.AuthorID)
		}
	}

	if len(ids) == 0 {
		return map[string]*entity.User{}, nil
	}

	users, err := d.userRepo.GetByIDs(ctx, ids)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get authors: %v", err)
		return nil, errorx.Unknown
	}

	result := map[string]*entity.User{}
	for i := range users {
		result[users[i].ID] = &users[i]
	}

	return result, nil
}
