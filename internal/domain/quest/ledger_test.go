package quest

import (
	"testing"

	"github.com/forumix/backend/internal/entity"
	"github.com/forumix/backend/internal/repository"
	"github.com/forumix/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func Test_Ledger_Award_DailyCap(t *testing.T) {
	ctx := testutil.MockContext()
	user := testutil.SampleUser(ctx, nil)

	ledger := NewLedger(repository.NewDailyRepository(), repository.NewUserRepository())

	// Signing is capped at one reward per day, the second completion is a
	// no-op.
	require.NoError(t, ledger.Award(ctx, user.ID, entity.QuestSign))
	require.NoError(t, ledger.Award(ctx, user.ID, entity.QuestSign))

	got, err := repository.NewUserRepository().GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, entity.QuestRewards[entity.QuestSign].Experience, got.Experience)
}

func Test_Ledger_Award_StacksBelowCap(t *testing.T) {
	ctx := testutil.MockContext()
	user := testutil.SampleUser(ctx, nil)

	ledger := NewLedger(repository.NewDailyRepository(), repository.NewUserRepository())

	reward := entity.QuestRewards[entity.QuestArticle]
	for i := int64(0); i < reward.DailyCap+1; i++ {
		require.NoError(t, ledger.Award(ctx, user.ID, entity.QuestArticle))
	}

	got, err := repository.NewUserRepository().GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, reward.Experience*reward.DailyCap, got.Experience)
}
