package vote

import (
	"context"
	"errors"
	"time"

	"github.com/forumix/backend/internal/domain/notify"
	"github.com/forumix/backend/internal/domain/quest"
	"github.com/forumix/backend/internal/entity"
	"github.com/forumix/backend/internal/repository"
	"github.com/forumix/backend/pkg/errorx"
	"github.com/forumix/backend/pkg/xcontext"
	"gorm.io/gorm"
)

// Ledger applies the toggle-or-flip vote state machine. Repeating a vote
// cancels it, sending the opposite vote flips it. The vote row, the content
// counters, the author aggregate, and the like notification always change in
// one transaction.
type Ledger struct {
	voteRepo     repository.VoteRepository
	contentRepo  repository.ContentRepository
	userRepo     repository.UserRepository
	notifyEngine *notify.Engine
	questLedger  *quest.Ledger
}

func NewLedger(
	voteRepo repository.VoteRepository,
	contentRepo repository.ContentRepository,
	userRepo repository.UserRepository,
	notifyEngine *notify.Engine,
	questLedger *quest.Ledger,
) *Ledger {
	return &Ledger{
		voteRepo:     voteRepo,
		contentRepo:  contentRepo,
		userRepo:     userRepo,
		notifyEngine: notifyEngine,
		questLedger:  questLedger,
	}
}

// VoteState is the voter's resulting state on the target.
type VoteState string

const (
	VotedUp   VoteState = "up"
	VotedDown VoteState = "down"
	VotedNone VoteState = ""
)

func (l *Ledger) Vote(
	ctx context.Context, voterID string, ref entity.ContentRef, isUp bool,
) (VoteState, error) {
	authorID, err := l.contentRepo.GetAuthorID(ctx, ref)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return VotedNone, errorx.New(errorx.NotFound, "Not found content")
		}

		xcontext.Logger(ctx).Errorf("Cannot get content author: %v", err)
		return VotedNone, errorx.Unknown
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	existing, err := l.voteRepo.Get(ctx, voterID, ref)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get existing vote: %v", err)
		return VotedNone, errorx.Unknown
	}

	var state VoteState
	var upDelta, downDelta int64
	switch {
	case existing == nil:
		err = l.voteRepo.Create(ctx, &entity.Vote{
			CreatedAt: time.Now(),
			VoterID:   voterID,
			Origin:    ref.Origin,
			TargetID:  ref.TargetID,
			IsUp:      isUp,
		})
		upDelta, downDelta = sides(isUp)
		state = stateOf(isUp)

	case existing.IsUp == isUp:
		// Same vote again cancels it.
		err = l.voteRepo.Delete(ctx, voterID, ref)
		upDelta, downDelta = sides(isUp)
		upDelta, downDelta = -upDelta, -downDelta
		state = VotedNone

	default:
		err = l.voteRepo.UpdateIsUp(ctx, voterID, ref, isUp)
		if isUp {
			upDelta, downDelta = 1, -1
		} else {
			upDelta, downDelta = -1, 1
		}
		state = stateOf(isUp)
	}
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot change vote row: %v", err)
		return VotedNone, errorx.Unknown
	}

	if upDelta != 0 {
		if err := l.contentRepo.AddUpNum(ctx, ref, upDelta); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot update up counter: %v", err)
			return VotedNone, errorx.Unknown
		}
	}

	if downDelta != 0 {
		if err := l.contentRepo.AddDownNum(ctx, ref, downDelta); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot update down counter: %v", err)
			return VotedNone, errorx.Unknown
		}
	}

	// The author's received-likes aggregate only counts votes on articles
	// and columns.
	if upDelta != 0 && isPost(ref.Origin) {
		if err := l.userRepo.AddUpNum(ctx, authorID, upDelta); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot update author aggregate: %v", err)
			return VotedNone, errorx.Unknown
		}
	}

	if state == VotedUp {
		// Fan-out is best effort, a failed notification never undoes the
		// vote.
		if err := l.notifyEngine.SendLike(ctx, voterID, authorID, ref); err != nil {
			xcontext.Logger(ctx).Warnf("Cannot send like notification: %v", err)
		}

		if err := l.awardQuests(ctx, voterID, authorID, ref); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot award vote quests: %v", err)
			return VotedNone, errorx.Unknown
		}
	} else {
		if err := l.notifyEngine.RetractLike(ctx, voterID, ref); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot retract like notification: %v", err)
			return VotedNone, errorx.Unknown
		}
	}

	xcontext.WithCommitDBTransaction(ctx)
	return state, nil
}

// State returns the voter's current vote on the target without changing it.
func (l *Ledger) State(ctx context.Context, voterID string, ref entity.ContentRef) (VoteState, error) {
	if voterID == "" {
		return VotedNone, nil
	}

	existing, err := l.voteRepo.Get(ctx, voterID, ref)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return VotedNone, nil
		}

		return VotedNone, err
	}

	return stateOf(existing.IsUp), nil
}

func (l *Ledger) awardQuests(ctx context.Context, voterID, authorID string, ref entity.ContentRef) error {
	if err := l.questLedger.Award(ctx, voterID, entity.QuestLike); err != nil {
		return err
	}

	if voterID == authorID {
		return nil
	}

	received := entity.QuestCommentLiked
	if isPost(ref.Origin) {
		received = entity.QuestArticleLiked
	}

	return l.questLedger.Award(ctx, authorID, received)
}

func sides(isUp bool) (int64, int64) {
	if isUp {
		return 1, 0
	}

	return 0, 1
}

func stateOf(isUp bool) VoteState {
	if isUp {
		return VotedUp
	}

	return VotedDown
}

func isPost(origin entity.Origin) bool {
	return origin == entity.OriginArticle || origin == entity.OriginColumn
}
