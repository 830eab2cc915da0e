package quest

import (
	"context"
	"time"

	"github.com/forumix/backend/internal/entity"
	"github.com/forumix/backend/internal/repository"
	"github.com/forumix/backend/pkg/dateutil"
)

// Ledger grants experience for quest completions, capped per quest per
// calendar day. Completions past the cap are counted as no-ops.
type Ledger struct {
	dailyRepo repository.DailyRepository
	userRepo  repository.UserRepository
}

func NewLedger(
	dailyRepo repository.DailyRepository,
	userRepo repository.UserRepository,
) *Ledger {
	return &Ledger{dailyRepo: dailyRepo, userRepo: userRepo}
}

// Award records one completion of a quest. The reward is granted only while
// the user is below the quest's daily cap. It expects to run inside the
// caller's transaction.
func (l *Ledger) Award(ctx context.Context, userID string, questType entity.QuestType) error {
	reward, ok := entity.QuestRewards[questType]
	if !ok {
		return nil
	}

	day := dateutil.BeginOfDay(time.Now())
	moved, err := l.dailyRepo.Increase(ctx, userID, day, questType, reward.DailyCap)
	if err != nil {
		return err
	}

	if !moved {
		return nil
	}

	return l.userRepo.AddExperience(ctx, userID, reward.Experience)
}
