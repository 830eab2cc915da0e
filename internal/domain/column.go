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

type ColumnDomain interface {
	Create(ctx context.Context, req *model.CreateColumnRequest) (*model.CreateColumnResponse, error)
	Publish(ctx context.Context, req *model.PublishColumnRequest) (*model.PublishColumnResponse, error)
	ShareArticle(ctx context.Context, req *model.ShareArticleRequest) (*model.ShareArticleResponse, error)
	Get(ctx context.Context, req *model.GetColumnRequest) (*model.GetColumnResponse, error)
	GetList(ctx context.Context, req *model.GetColumnsRequest) (*model.GetColumnsResponse, error)
	Delete(ctx context.Context, req *model.DeleteColumnRequest) (*model.DeleteColumnResponse, error)
}

type columnDomain struct {
	columnRepo   repository.ColumnRepository
	commentRepo  repository.ColumnCommentRepository
	articleRepo  repository.ArticleRepository
	userRepo     repository.UserRepository
	viewRepo     repository.ViewRepository
	contentRepo  repository.ContentRepository
	voteLedger   *vote.Ledger
	questLedger  *quest.Ledger
	notifyEngine *notify.Engine
	trending     *statistic.Trending
}

func NewColumnDomain(
	columnRepo repository.ColumnRepository,
	commentRepo repository.ColumnCommentRepository,
	articleRepo repository.ArticleRepository,
	userRepo repository.UserRepository,
	viewRepo repository.ViewRepository,
	contentRepo repository.ContentRepository,
	voteLedger *vote.Ledger,
	questLedger *quest.Ledger,
	notifyEngine *notify.Engine,
	trending *statistic.Trending,
) *columnDomain {
	return &columnDomain{
		columnRepo:   columnRepo,
		commentRepo:  commentRepo,
		articleRepo:  articleRepo,
		userRepo:     userRepo,
		viewRepo:     viewRepo,
		contentRepo:  contentRepo,
		voteLedger:   voteLedger,
		questLedger:  questLedger,
		notifyEngine: notifyEngine,
		trending:     trending,
	}
}

func (d *columnDomain) Create(
	ctx context.Context, req *model.CreateColumnRequest,
) (*model.CreateColumnResponse, error) {
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
	column := &entity.Column{
		SnowFlakeBase: entity.SnowFlakeBase{ID: idutil.NewID()},
		AuthorID:      userID,
		Title:         req.Title,
		Content:       content,
		Summary:       htmlutil.Summary(content, contentCfg.SummaryLength),
		Cover:         req.Cover,
		IsDraft:       req.AsDraft,
		CommentTime:   time.Now(),
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.columnRepo.Create(ctx, column); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create column: %v", err)
		return nil, errorx.Unknown
	}

	if !column.IsDraft {
		if err := d.afterPublish(ctx, column); err != nil {
			return nil, err
		}
	}

	xcontext.WithCommitDBTransaction(ctx)
	return &model.CreateColumnResponse{ID: column.ID}, nil
}

func (d *columnDomain) Publish(
	ctx context.Context, req *model.PublishColumnRequest,
) (*model.PublishColumnResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	column, err := d.columnRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found column")
		}

		xcontext.Logger(ctx).Errorf("Cannot get column: %v", err)
		return nil, errorx.Unknown
	}

	if column.AuthorID != userID {
		return nil, errorx.New(errorx.PermissionDenied, "Only the author can publish the column")
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.columnRepo.Publish(ctx, column.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.AlreadyExists, "Column is already published")
		}

		xcontext.Logger(ctx).Errorf("Cannot publish column: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.afterPublish(ctx, column); err != nil {
		return nil, err
	}

	xcontext.WithCommitDBTransaction(ctx)
	return &model.PublishColumnResponse{}, nil
}

// ShareArticle republishes one of the author's articles as a column.
func (d *columnDomain) ShareArticle(
	ctx context.Context, req *model.ShareArticleRequest,
) (*model.ShareArticleResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	article, err := d.articleRepo.GetByID(ctx, req.ArticleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found article")
		}

		xcontext.Logger(ctx).Errorf("Cannot get article: %v", err)
		return nil, errorx.Unknown
	}

	if article.AuthorID != userID {
		return nil, errorx.New(errorx.PermissionDenied, "Only the author can share the article")
	}

	column := &entity.Column{
		SnowFlakeBase: entity.SnowFlakeBase{ID: idutil.NewID()},
		AuthorID:      userID,
		Title:         article.Title,
		Content:       article.Content,
		Summary:       article.Summary,
		IsShared:      true,
		CommentTime:   time.Now(),
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.columnRepo.Create(ctx, column); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create shared column: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.afterPublish(ctx, column); err != nil {
		return nil, err
	}

	xcontext.WithCommitDBTransaction(ctx)
	return &model.ShareArticleResponse{ColumnID: column.ID}, nil
}

func (d *columnDomain) Get(
	ctx context.Context, req *model.GetColumnRequest,
) (*model.GetColumnResponse, error) {
	column, err := d.columnRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found column")
		}

		xcontext.Logger(ctx).Errorf("Cannot get column: %v", err)
		return nil, errorx.Unknown
	}

	userID := xcontext.RequestUserID(ctx)
	if column.IsDraft && column.AuthorID != userID {
		return nil, errorx.New(errorx.NotFound, "Not found column")
	}

	author, err := d.userRepo.GetByID(ctx, column.AuthorID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get column author: %v", err)
		return nil, errorx.Unknown
	}

	ref := entity.ContentRef{Origin: entity.OriginColumn, TargetID: column.ID}
	myVote := ""
	if userID != "" {
		state, err := d.voteLedger.State(ctx, userID, ref)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot get vote state: %v", err)
			return nil, errorx.Unknown
		}

		myVote = string(state)

		if !column.IsDraft {
			if err := d.recordView(ctx, userID, ref); err != nil {
				return nil, err
			}
		}
	}

	return &model.GetColumnResponse{Column: model.ConvertColumn(column, author, myVote)}, nil
}

func (d *columnDomain) GetList(
	ctx context.Context, req *model.GetColumnsRequest,
) (*model.GetColumnsResponse, error) {
	offset, limit, err := normalizePagination(ctx, req.Offset, req.Limit)
	if err != nil {
		return nil, err
	}

	userID := xcontext.RequestUserID(ctx)
	columns, err := d.columnRepo.GetList(ctx, repository.ColumnFilter{
		AuthorID:      req.AuthorID,
		IncludeDrafts: req.AuthorID != "" && req.AuthorID == userID,
		Offset:        offset,
		Limit:         limit,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get columns: %v", err)
		return nil, errorx.Unknown
	}

	authorIDs := []string{}
	seen := map[string]bool{}
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

	result := []model.Column{}
	for i := range columns {
		converted := model.ConvertColumn(&columns[i], authors[columns[i].AuthorID], "")
		converted.Content = ""
		result = append(result, converted)
	}

	return &model.GetColumnsResponse{Columns: result}, nil
}

func (d *columnDomain) Delete(
	ctx context.Context, req *model.DeleteColumnRequest,
) (*model.DeleteColumnResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	column, err := d.columnRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found column")
		}

		xcontext.Logger(ctx).Errorf("Cannot get column: %v", err)
		return nil, errorx.Unknown
	}

	if column.AuthorID != userID {
		return nil, errorx.New(errorx.PermissionDenied, "Only the author can delete the column")
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	commentIDs, err := d.commentRepo.GetIDsByColumn(ctx, column.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get comment ids: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.commentRepo.DeleteByColumn(ctx, column.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete comments: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.columnRepo.Delete(ctx, column.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete column: %v", err)
		return nil, errorx.Unknown
	}

	ref := entity.ContentRef{Origin: entity.OriginColumn, TargetID: column.ID}
	if err := d.notifyEngine.Retract(ctx, ref); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot retract column notifications: %v", err)
		return nil, errorx.Unknown
	}

	for _, commentID := range commentIDs {
		commentRef := entity.ContentRef{Origin: entity.OriginColumnComment, TargetID: commentID}
		if err := d.notifyEngine.Retract(ctx, commentRef); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot retract comment notifications: %v", err)
			return nil, errorx.Unknown
		}
	}

	xcontext.WithCommitDBTransaction(ctx)
	return &model.DeleteColumnResponse{}, nil
}

// afterPublish runs once a column becomes visible, inside the caller's
// transaction.
func (d *columnDomain) afterPublish(ctx context.Context, column *entity.Column) error {
	if err := d.questLedger.Award(ctx, column.AuthorID, entity.QuestColumn); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot award column quest: %v", err)
		return errorx.Unknown
	}

	// Fan-out is best effort, a failed notification never unpublishes the
	// column.
	ref := entity.ContentRef{Origin: entity.OriginColumn, TargetID: column.ID}
	if err := d.notifyEngine.SendDynamic(ctx, column.AuthorID, ref); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot send dynamic notifications: %v", err)
	}

	return nil
}

func (d *columnDomain) recordView(ctx context.Context, userID string, ref entity.ContentRef) error {
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
		xcontext.Logger(ctx).Warnf("Cannot bump trending score: %v", err)
	}

	return nil
}
