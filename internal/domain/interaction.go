package domain

import (
	"context"

	"github.com/forumix/backend/internal/domain/statistic"
	"github.com/forumix/backend/internal/domain/vote"
	"github.com/forumix/backend/internal/entity"
	"github.com/forumix/backend/internal/model"
	"github.com/forumix/backend/pkg/enum"
	"github.com/forumix/backend/pkg/errorx"
	"github.com/forumix/backend/pkg/xcontext"
)

type InteractionDomain interface {
	Vote(ctx context.Context, req *model.VoteRequest) (*model.VoteResponse, error)
}

type interactionDomain struct {
	voteLedger *vote.Ledger
	trending   *statistic.Trending
}

func NewInteractionDomain(voteLedger *vote.Ledger, trending *statistic.Trending) *interactionDomain {
	return &interactionDomain{
		voteLedger: voteLedger,
		trending:   trending,
	}
}

func (d *interactionDomain) Vote(
	ctx context.Context, req *model.VoteRequest,
) (*model.VoteResponse, error) {
	origin, err := enum.ToEnum[entity.Origin](req.Origin)
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Invalid origin %s", req.Origin)
	}

	ref := entity.ContentRef{Origin: origin, TargetID: req.TargetID}
	state, err := d.voteLedger.Vote(ctx, xcontext.RequestUserID(ctx), ref, req.IsUp)
	if err != nil {
		return nil, err
	}

	if state == vote.VotedUp {
		if err := d.trending.Bump(ctx, ref, 1); err != nil {
			xcontext.Logger(ctx).Warnf("Cannot bump trending score: %v", err)
		}
	}

	return &model.VoteResponse{State: string(state)}, nil
}
