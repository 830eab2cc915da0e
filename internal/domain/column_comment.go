package domain

import (
	"context"
	"errors"

	"github.com/forumix/backend/internal/domain/notify"
	"github.com/forumix/backend/internal/domain/quest"
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

type ColumnCommentDomain interface {
	Create(ctx context.Context, req *model.CreateColumnCommentRequest) (*model.CreateColumnCommentResponse, error)
	GetList(ctx context.Context, req *model.GetColumnCommentsRequest) (*model.GetColumnCommentsResponse, error)
	Delete(ctx context.Context, req *model.DeleteColumnCommentRequest) (*model.DeleteColumnCommentResponse, error)
}

type columnCommentDomain struct {
	commentRepo  repository.ColumnCommentRepository
	columnRepo   repository.ColumnRepository
	userRepo     repository.UserRepository
	contentRepo  repository.ContentRepository
	voteLedger   *vote.Ledger
	questLedger  *quest.Ledger
	notifyEngine *notify.Engine
}

func NewColumnCommentDomain(
	commentRepo repository.ColumnCommentRepository,
	columnRepo repository.ColumnRepository,
	userRepo repository.UserRepository,
	contentRepo repository.ContentRepository,
	voteLedger *vote.Ledger,
	questLedger *quest.Ledger,
	notifyEngine *notify.Engine,
) *columnCommentDomain {
	return &columnCommentDomain{
		commentRepo:  commentRepo,
		columnRepo:   columnRepo,
		userRepo:     userRepo,
		contentRepo:  contentRepo,
		voteLedger:   voteLedger,
		questLedger:  questLedger,
		notifyEngine: notifyEngine,
	}
}

func (d *columnCommentDomain) Create(
	ctx context.Context, req *model.CreateColumnCommentRequest,
) (*model.CreateColumnCommentResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	if req.Content == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty content")
	}

	column, err := d.columnRepo.GetByID(ctx, req.ColumnID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found column")
		}

		xcontext.Logger(ctx).Errorf("Cannot get column: %v", err)
		return nil, errorx.Unknown
	}

	if column.IsDraft {
		return nil, errorx.New(errorx.NotFound, "Not found column")
	}

	comment := &entity.ColumnComment{
		SnowFlakeBase: entity.SnowFlakeBase{ID: idutil.NewID()},
		ColumnID:      column.ID,
		AuthorID:      userID,
		Content:       htmlutil.Sanitize(req.Content),
	}

	replyAuthorID := column.AuthorID
	if req.ParentID != 0 {
		parent, err := d.commentRepo.GetByID(ctx, req.ParentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errorx.New(errorx.NotFound, "Not found parent comment")
			}

			xcontext.Logger(ctx).Errorf("Cannot get parent comment: %v", err)
			return nil, errorx.Unknown
		}

		if parent.ColumnID != column.ID {
			return nil, errorx.New(errorx.BadRequest, "Parent comment belongs to another column")
		}

		comment.ParentID = parent.ID
		if parent.ParentID != 0 {
			comment.ParentID = parent.ParentID
		}

		comment.ReplyToID = parent.AuthorID
		replyAuthorID = parent.AuthorID
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.commentRepo.Create(ctx, comment); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create comment: %v", err)
		return nil, errorx.Unknown
	}

	columnRef := entity.ContentRef{Origin: entity.OriginColumn, TargetID: column.ID}
	if err := d.contentRepo.AddCommentNum(ctx, columnRef, 1); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update column comment counter: %v", err)
		return nil, errorx.Unknown
	}

	if comment.ParentID != 0 {
		parentRef := entity.ContentRef{Origin: entity.OriginColumnComment, TargetID: comment.ParentID}
		if err := d.contentRepo.AddCommentNum(ctx, parentRef, 1); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot update parent comment counter: %v", err)
			return nil, errorx.Unknown
		}
	}

	// Fan-out is best effort, a failed notification never loses the comment.
	commentRef := entity.ContentRef{Origin: entity.OriginColumnComment, TargetID: comment.ID}
	if err := d.notifyEngine.SendReply(ctx, userID, replyAuthorID, commentRef); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot send reply notification: %v", err)
	}

	if err := d.notifyEngine.SendAt(ctx, userID, req.AtNames, commentRef); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot send mention notifications: %v", err)
	}

	if err := d.questLedger.Award(ctx, userID, entity.QuestComment); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot award comment quest: %v", err)
		return nil, errorx.Unknown
	}

	if replyAuthorID != userID {
		if err := d.questLedger.Award(ctx, replyAuthorID, entity.QuestCommented); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot award commented quest: %v", err)
			return nil, errorx.Unknown
		}
	}

	xcontext.WithCommitDBTransaction(ctx)
	return &model.CreateColumnCommentResponse{ID: comment.ID}, nil
}

func (d *columnCommentDomain) GetList(
	ctx context.Context, req *model.GetColumnCommentsRequest,
) (*model.GetColumnCommentsResponse, error) {
	offset, limit, err := normalizePagination(ctx, req.Offset, req.Limit)
	if err != nil {
		return nil, err
	}

	var comments []entity.ColumnComment
	if req.ParentID == 0 {
		comments, err = d.commentRepo.GetTopLevel(ctx, req.ColumnID, offset, limit)
	} else {
		comments, err = d.commentRepo.GetReplies(ctx, req.ParentID, offset, limit)
	}

	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get comments: %v", err)
		return nil, errorx.Unknown
	}

	users, err := d.relatedUsers(ctx, comments)
	if err != nil {
		return nil, err
	}

	userID := xcontext.RequestUserID(ctx)
	result := []model.Comment{}
	for i := range comments {
		c := &comments[i]

		myVote := ""
		if userID != "" {
			ref := entity.ContentRef{Origin: entity.OriginColumnComment, TargetID: c.ID}
			state, err := d.voteLedger.State(ctx, userID, ref)
			if err != nil {
				xcontext.Logger(ctx).Errorf("Cannot get vote state: %v", err)
				return nil, errorx.Unknown
			}

			myVote = string(state)
		}

		converted := model.Comment{
			ID:         c.ID,
			Author:     model.ConvertShortUser(users[c.AuthorID]),
			Content:    c.Content,
			UpNum:      c.UpNum,
			DownNum:    c.DownNum,
			CommentNum: c.CommentNum,
			CreatedAt:  c.CreatedAt.Format(model.DefaultTimeLayout),
			MyVote:     myVote,
		}

		if c.ReplyToID != "" {
			replyTo := model.ConvertShortUser(users[c.ReplyToID])
			converted.ReplyTo = &replyTo
		}

		result = append(result, converted)
	}

	return &model.GetColumnCommentsResponse{Comments: result}, nil
}

func (d *columnCommentDomain) Delete(
	ctx context.Context, req *model.DeleteColumnCommentRequest,
) (*model.DeleteColumnCommentResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	comment, err := d.commentRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found comment")
		}

		xcontext.Logger(ctx).Errorf("Cannot get comment: %v", err)
		return nil, errorx.Unknown
	}

	if comment.AuthorID != userID {
		return nil, errorx.New(errorx.PermissionDenied, "Only the author can delete the comment")
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	columnRef := entity.ContentRef{Origin: entity.OriginColumn, TargetID: comment.ColumnID}
	if comment.ParentID == 0 {
		replyIDs, err := d.commentRepo.GetReplyIDs(ctx, comment.ID)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot get reply ids: %v", err)
			return nil, errorx.Unknown
		}

		if err := d.commentRepo.DeleteReplies(ctx, comment.ID); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot delete replies: %v", err)
			return nil, errorx.Unknown
		}

		if err := d.contentRepo.AddCommentNum(ctx, columnRef, -(1 + comment.CommentNum)); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot update column comment counter: %v", err)
			return nil, errorx.Unknown
		}

		for _, replyID := range replyIDs {
			replyRef := entity.ContentRef{Origin: entity.OriginColumnComment, TargetID: replyID}
			if err := d.notifyEngine.Retract(ctx, replyRef); err != nil {
				xcontext.Logger(ctx).Errorf("Cannot retract reply notifications: %v", err)
				return nil, errorx.Unknown
			}
		}
	} else {
		parentRef := entity.ContentRef{Origin: entity.OriginColumnComment, TargetID: comment.ParentID}
		if err := d.contentRepo.AddCommentNum(ctx, parentRef, -1); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot update parent comment counter: %v", err)
			return nil, errorx.Unknown
		}

		if err := d.contentRepo.AddCommentNum(ctx, columnRef, -1); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot update column comment counter: %v", err)
			return nil, errorx.Unknown
		}
	}

	if err := d.commentRepo.Delete(ctx, comment.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete comment: %v", err)
		return nil, errorx.Unknown
	}

	commentRef := entity.ContentRef{Origin: entity.OriginColumnComment, TargetID: comment.ID}
	if err := d.notifyEngine.Retract(ctx, commentRef); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot retract comment notifications: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)
	return &model.DeleteColumnCommentResponse{}, nil
}

func (d *columnCommentDomain) relatedUsers(
	ctx context.Context, comments []entity.ColumnComment,
) (map[string]*entity.User, error) {
	ids := []string{}
	seen := map[string]bool{}
	for _, c := range comments {
		if !seen[c.AuthorID] {
			seen[c.AuthorID] = true
			ids = append(ids, c.AuthorID)
		}

		if c.ReplyToID != "" && !seen[c.ReplyToID] {
			seen[c.ReplyToID] = true
			ids = append(ids, c.ReplyToID)
		}
	}

	if len(ids) == 0 {
		return map[string]*entity.User{}, nil
	}

	users, err := d.userRepo.GetByIDs(ctx, ids)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get users: %v", err)
		return nil, errorx.Unknown
	}

	result := map[string]*entity.User{}
	for i := range users {
		result[users[i].ID] = &users[i]
	}

	return result, nil
}
