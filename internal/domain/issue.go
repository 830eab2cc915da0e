package domain

import (
	"context"
	"errors"
	"time"

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

type IssueDomain interface {
	Create(ctx context.Context, req *model.CreateIssueRequest) (*model.CreateIssueResponse, error)
	Get(ctx context.Context, req *model.GetIssueRequest) (*model.GetIssueResponse, error)
	GetList(ctx context.Context, req *model.GetIssuesRequest) (*model.GetIssuesResponse, error)
	Delete(ctx context.Context, req *model.DeleteIssueRequest) (*model.DeleteIssueResponse, error)

	CreateComment(ctx context.Context, req *model.CreateIssueCommentRequest) (*model.CreateIssueCommentResponse, error)
	GetComments(ctx context.Context, req *model.GetIssueCommentsRequest) (*model.GetIssueCommentsResponse, error)
	AdoptComment(ctx context.Context, req *model.AdoptIssueCommentRequest) (*model.AdoptIssueCommentResponse, error)
	DeleteComment(ctx context.Context, req *model.DeleteIssueCommentRequest) (*model.DeleteIssueCommentResponse, error)
}

type issueDomain struct {
	issueRepo    repository.IssueRepository
	userRepo     repository.UserRepository
	voteLedger   *vote.Ledger
	questLedger  *quest.Ledger
	notifyEngine *notify.Engine
}

func NewIssueDomain(
	issueRepo repository.IssueRepository,
	userRepo repository.UserRepository,
	voteLedger *vote.Ledger,
	questLedger *quest.Ledger,
	notifyEngine *notify.Engine,
) *issueDomain {
	return &issueDomain{
		issueRepo:    issueRepo,
		userRepo:     userRepo,
		voteLedger:   voteLedger,
		questLedger:  questLedger,
		notifyEngine: notifyEngine,
	}
}

func (d *issueDomain) Create(
	ctx context.Context, req *model.CreateIssueRequest,
) (*model.CreateIssueResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	if req.Title == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty title")
	}

	if req.Content == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty content")
	}

	if len(req.Content) > xcontext.Configs(ctx).Content.MaxContentLength {
		return nil, errorx.New(errorx.BadRequest, "Content is too long")
	}

	issue := &entity.Issue{
		SnowFlakeBase: entity.SnowFlakeBase{ID: idutil.NewID()},
		AuthorID:      userID,
		Title:         req.Title,
		Content:       htmlutil.Sanitize(req.Content),
		CommentTime:   time.Now(),
	}

	if err := d.issueRepo.Create(ctx, issue); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create issue: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CreateIssueResponse{ID: issue.ID}, nil
}

func (d *issueDomain) Get(
	ctx context.Context, req *model.GetIssueRequest,
) (*model.GetIssueResponse, error) {
	issue, err := d.issueRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found issue")
		}

		xcontext.Logger(ctx).Errorf("Cannot get issue: %v", err)
		return nil, errorx.Unknown
	}

	author, err := d.userRepo.GetByID(ctx, issue.AuthorID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get issue author: %v", err)
		return nil, errorx.Unknown
	}

	userID := xcontext.RequestUserID(ctx)
	if userID != "" && userID != issue.AuthorID {
		if err := d.issueRepo.AddViewNum(ctx, issue.ID, 1); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot update view counter: %v", err)
			return nil, errorx.Unknown
		}
	}

	return &model.GetIssueResponse{Issue: model.ConvertIssue(issue, author)}, nil
}

func (d *issueDomain) GetList(
	ctx context.Context, req *model.GetIssuesRequest,
) (*model.GetIssuesResponse, error) {
	offset, limit, err := normalizePagination(ctx, req.Offset, req.Limit)
	if err != nil {
		return nil, err
	}

	issues, err := d.issueRepo.GetList(ctx, req.OnlyOpen, offset, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get issues: %v", err)
		return nil, errorx.Unknown
	}

	authorIDs := []string{}
	seen := map[string]bool{}
	for _, issue := range issues {
		if !seen[issue.AuthorID] {
			seen[issue.AuthorID] = true
			authorIDs = append(authorIDs, issue.AuthorID)
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

	result := []model.Issue{}
	for i := range issues {
		converted := model.ConvertIssue(&issues[i], authors[issues[i].AuthorID])
		converted.Content = ""
		result = append(result, converted)
	}

	return &model.GetIssuesResponse{Issues: result}, nil
}

func (d *issueDomain) Delete(
	ctx context.Context, req *model.DeleteIssueRequest,
) (*model.DeleteIssueResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	issue, err := d.issueRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found issue")
		}

		xcontext.Logger(ctx).Errorf("Cannot get issue: %v", err)
		return nil, errorx.Unknown
	}

	if issue.AuthorID != userID {
		return nil, errorx.New(errorx.PermissionDenied, "Only the author can delete the issue")
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	commentIDs, err := d.issueRepo.GetCommentIDs(ctx, issue.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get comment ids: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.issueRepo.DeleteCommentsByIssue(ctx, issue.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete comments: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.issueRepo.Delete(ctx, issue.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete issue: %v", err)
		return nil, errorx.Unknown
	}

	for _, commentID := range commentIDs {
		ref := entity.ContentRef{Origin: entity.OriginIssueComment, TargetID: commentID}
		if err := d.notifyEngine.Retract(ctx, ref); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot retract comment notifications: %v", err)
			return nil, errorx.Unknown
		}
	}

	xcontext.WithCommitDBTransaction(ctx)
	return &model.DeleteIssueResponse{}, nil
}

func (d *issueDomain) CreateComment(
	ctx context.Context, req *model.CreateIssueCommentRequest,
) (*model.CreateIssueCommentResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	if req.Content == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty content")
	}

	issue, err := d.issueRepo.GetByID(ctx, req.IssueID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found issue")
		}

		xcontext.Logger(ctx).Errorf("Cannot get issue: %v", err)
		return nil, errorx.Unknown
	}

	comment := &entity.IssueComment{
		SnowFlakeBase: entity.SnowFlakeBase{ID: idutil.NewID()},
		IssueID:       issue.ID,
		AuthorID:      userID,
		Content:       htmlutil.Sanitize(req.Content),
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.issueRepo.CreateComment(ctx, comment); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create comment: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.issueRepo.AddCommentNum(ctx, issue.ID, 1); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update issue comment counter: %v", err)
		return nil, errorx.Unknown
	}

	// Fan-out is best effort, a failed notification never loses the answer.
	ref := entity.ContentRef{Origin: entity.OriginIssueComment, TargetID: comment.ID}
	if err := d.notifyEngine.SendReply(ctx, userID, issue.AuthorID, ref); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot send reply notification: %v", err)
	}

	if err := d.notifyEngine.SendAt(ctx, userID, req.AtNames, ref); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot send mention notifications: %v", err)
	}

	if err := d.questLedger.Award(ctx, userID, entity.QuestComment); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot award comment quest: %v", err)
		return nil, errorx.Unknown
	}

	if issue.AuthorID != userID {
		if err := d.questLedger.Award(ctx, issue.AuthorID, entity.QuestCommented); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot award commented quest: %v", err)
			return nil, errorx.Unknown
		}
	}

	xcontext.WithCommitDBTransaction(ctx)
	return &model.CreateIssueCommentResponse{ID: comment.ID}, nil
}

func (d *issueDomain) GetComments(
	ctx context.Context, req *model.GetIssueCommentsRequest,
) (*model.GetIssueCommentsResponse, error) {
	offset, limit, err := normalizePagination(ctx, req.Offset, req.Limit)
	if err != nil {
		return nil, err
	}

	comments, err := d.issueRepo.GetComments(ctx, req.IssueID, offset, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get comments: %v", err)
		return nil, errorx.Unknown
	}

	authorIDs := []string{}
	seen := map[string]bool{}
	for _, c := range comments {
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

	userID := xcontext.RequestUserID(ctx)
	result := []model.IssueComment{}
	for i := range comments {
		c := &comments[i]

		myVote := ""
		if userID != "" {
			ref := entity.ContentRef{Origin: entity.OriginIssueComment, TargetID: c.ID}
			state, err := d.voteLedger.State(ctx, userID, ref)
			if err != nil {
				xcontext.Logger(ctx).Errorf("Cannot get vote state: %v", err)
				return nil, errorx.Unknown
			}

			myVote = string(state)
		}

		result = append(result, model.ConvertIssueComment(c, authors[c.AuthorID], myVote))
	}

	return &model.GetIssueCommentsResponse{Comments: result}, nil
}

func (d *issueDomain) AdoptComment(
	ctx context.Context, req *model.AdoptIssueCommentRequest,
) (*model.AdoptIssueCommentResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	issue, err := d.issueRepo.GetByID(ctx, req.IssueID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found issue")
		}

		xcontext.Logger(ctx).Errorf("Cannot get issue: %v", err)
		return nil, errorx.Unknown
	}

	if issue.AuthorID != userID {
		return nil, errorx.New(errorx.PermissionDenied, "Only the author can adopt an answer")
	}

	comment, err := d.issueRepo.GetComment(ctx, req.CommentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found comment")
		}

		xcontext.Logger(ctx).Errorf("Cannot get comment: %v", err)
		return nil, errorx.Unknown
	}

	if comment.IssueID != issue.ID {
		return nil, errorx.New(errorx.BadRequest, "Comment belongs to another issue")
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.issueRepo.Adopt(ctx, issue.ID, comment.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.AlreadyExists, "Issue already adopted an answer")
		}

		xcontext.Logger(ctx).Errorf("Cannot adopt comment: %v", err)
		return nil, errorx.Unknown
	}

	if comment.AuthorID != userID {
		if err := d.questLedger.Award(ctx, comment.AuthorID, entity.QuestAdopted); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot award adopted quest: %v", err)
			return nil, errorx.Unknown
		}
	}

	xcontext.WithCommitDBTransaction(ctx)
	return &model.AdoptIssueCommentResponse{}, nil
}

func (d *issueDomain) DeleteComment(
	ctx context.Context, req *model.DeleteIssueCommentRequest,
) (*model.DeleteIssueCommentResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	comment, err := d.issueRepo.GetComment(ctx, req.ID)
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

	if comment.IsAdopted {
		return nil, errorx.New(errorx.BadRequest, "Cannot delete an adopted answer")
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.issueRepo.DeleteComment(ctx, comment.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete comment: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.issueRepo.AddCommentNum(ctx, comment.IssueID, -1); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update issue comment counter: %v", err)
		return nil, errorx.Unknown
	}

	ref := entity.ContentRef{Origin: entity.OriginIssueComment, TargetID: comment.ID}
	if err := d.notifyEngine.Retract(ctx, ref); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot retract comment notifications: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)
	return &model.DeleteIssueCommentResponse{}, nil
}
