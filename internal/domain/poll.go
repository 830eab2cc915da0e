package domain

import (
	"context"
	"errors"
	"time"

	"github.com/forumix/backend/internal/entity"
	"github.com/forumix/backend/internal/model"
	"github.com/forumix/backend/internal/repository"
	"github.com/forumix/backend/pkg/errorx"
	"github.com/forumix/backend/pkg/idutil"
	"github.com/forumix/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type PollDomain interface {
	Create(ctx context.Context, req *model.CreatePollRequest) (*model.CreatePollResponse, error)
	Get(ctx context.Context, req *model.GetPollRequest) (*model.GetPollResponse, error)
	SubmitBallot(ctx context.Context, req *model.SubmitBallotRequest) (*model.SubmitBallotResponse, error)
}

type pollDomain struct {
	pollRepo    repository.PollRepository
	articleRepo repository.ArticleRepository
}

func NewPollDomain(
	pollRepo repository.PollRepository,
	articleRepo repository.ArticleRepository,
) *pollDomain {
	return &pollDomain{
		pollRepo:    pollRepo,
		articleRepo: articleRepo,
	}
}

func (d *pollDomain) Create(
	ctx context.Context, req *model.CreatePollRequest,
) (*model.CreatePollResponse, error) {
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
		return nil, errorx.New(errorx.PermissionDenied, "Only the author can attach a poll")
	}

	maxChoices := xcontext.Configs(ctx).Content.MaxPollChoices
	if len(req.Options) < 2 || len(req.Options) > maxChoices {
		return nil, errorx.New(errorx.BadRequest,
			"Polls need between 2 and %d options", maxChoices)
	}

	if req.MinChoices < 1 || req.MinChoices > req.MaxChoices || req.MaxChoices > len(req.Options) {
		return nil, errorx.New(errorx.BadRequest, "Invalid choice bounds")
	}

	deadline, err := time.Parse(model.DefaultTimeLayout, req.Deadline)
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Invalid deadline %s", req.Deadline)
	}

	if deadline.Before(time.Now()) {
		return nil, errorx.New(errorx.BadRequest, "Deadline is in the past")
	}

	poll := &entity.Poll{
		SnowFlakeBase: entity.SnowFlakeBase{ID: idutil.NewID()},
		ArticleID:     article.ID,
		Title:         req.Title,
		MinChoices:    req.MinChoices,
		MaxChoices:    req.MaxChoices,
		Deadline:      deadline,
	}

	options := []*entity.PollOption{}
	for _, content := range req.Options {
		if content == "" {
			return nil, errorx.New(errorx.BadRequest, "Not allow empty option")
		}

		options = append(options, &entity.PollOption{
			ID:      idutil.NewID(),
			Content: content,
		})
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.pollRepo.Create(ctx, poll, options); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create poll: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)
	return &model.CreatePollResponse{ID: poll.ID}, nil
}

func (d *pollDomain) Get(
	ctx context.Context, req *model.GetPollRequest,
) (*model.GetPollResponse, error) {
	poll, err := d.pollRepo.GetByArticleID(ctx, req.ArticleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found poll")
		}

		xcontext.Logger(ctx).Errorf("Cannot get poll: %v", err)
		return nil, errorx.Unknown
	}

	options, err := d.pollRepo.GetOptions(ctx, poll.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get poll options: %v", err)
		return nil, errorx.Unknown
	}

	converted := model.Poll{
		ID:         poll.ID,
		ArticleID:  poll.ArticleID,
		Title:      poll.Title,
		MinChoices: poll.MinChoices,
		MaxChoices: poll.MaxChoices,
		Deadline:   poll.Deadline.Format(model.DefaultTimeLayout),
	}

	for _, option := range options {
		converted.Options = append(converted.Options, model.PollOption{
			ID:      option.ID,
			Content: option.Content,
			VoteNum: option.VoteNum,
		})
	}

	userID := xcontext.RequestUserID(ctx)
	if userID != "" {
		ballot, err := d.pollRepo.GetBallot(ctx, userID, poll.ID)
		if err == nil {
			converted.MyOptionIDs = []int64(ballot.OptionIDs)
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			xcontext.Logger(ctx).Errorf("Cannot get ballot: %v", err)
			return nil, errorx.Unknown
		}
	}

	return &model.GetPollResponse{Poll: converted}, nil
}

func (d *pollDomain) SubmitBallot(
	ctx context.Context, req *model.SubmitBallotRequest,
) (*model.SubmitBallotResponse, error) {
	userID := xcontext.RequestUserID(ctx)

	poll, err := d.pollRepo.GetByID(ctx, req.PollID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found poll")
		}

		xcontext.Logger(ctx).Errorf("Cannot get poll: %v", err)
		return nil, errorx.Unknown
	}

	options, err := d.pollRepo.GetOptions(ctx, poll.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get poll options: %v", err)
		return nil, errorx.Unknown
	}

	if time.Now().After(poll.Deadline) {
		return nil, errorx.New(errorx.BadRequest, "Poll is closed")
	}

	if len(req.OptionIDs) < poll.MinChoices || len(req.OptionIDs) > poll.MaxChoices {
		return nil, errorx.New(errorx.BadRequest,
			"Select between %d and %d options", poll.MinChoices, poll.MaxChoices)
	}

	valid := map[int64]bool{}
	for _, option := range options {
		valid[option.ID] = true
	}

	seen := map[int64]bool{}
	for _, id := range req.OptionIDs {
		if !valid[id] {
			return nil, errorx.New(errorx.BadRequest, "Invalid option %d", id)
		}

		if seen[id] {
			return nil, errorx.New(errorx.BadRequest, "Duplicated option %d", id)
		}

		seen[id] = true
	}

	if _, err := d.pollRepo.GetBallot(ctx, userID, poll.ID); err == nil {
		return nil, errorx.New(errorx.AlreadyExists, "Already voted in this poll")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get ballot: %v", err)
		return nil, errorx.Unknown
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	err = d.pollRepo.CreateBallot(ctx, &entity.PollBallot{
		CreatedAt: time.Now(),
		UserID:    userID,
		PollID:    poll.ID,
		OptionIDs: entity.Array[int64](req.OptionIDs),
	})
	if err != nil {
		// The primary key is the backstop against concurrent double votes.
		return nil, errorx.New(errorx.AlreadyExists, "Already voted in this poll")
	}

	if err := d.pollRepo.AddOptionVotes(ctx, req.OptionIDs, 1); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update option counters: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)
	return &model.SubmitBallotResponse{}, nil
}
