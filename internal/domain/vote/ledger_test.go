package vote

import (
	"testing"

	"github.com/forumix/backend/internal/domain/notify"
	"github.com/forumix/backend/internal/domain/quest"
	"github.com/forumix/backend/internal/entity"
	"github.com/forumix/backend/internal/repository"
	"github.com/forumix/backend/pkg/errorx"
	"github.com/forumix/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func newTestLedger() *Ledger {
	userRepo := repository.NewUserRepository()
	return NewLedger(
		repository.NewVoteRepository(),
		repository.NewContentRepository(),
		userRepo,
		notify.NewEngine(
			repository.NewNotificationRepository(),
			repository.NewMessageSettingRepository(),
			repository.NewFollowRepository(),
			userRepo,
		),
		quest.NewLedger(repository.NewDailyRepository(), userRepo),
	)
}

func Test_Ledger_Vote_ToggleAndFlip(t *testing.T) {
	ctx := testutil.MockContext()
	voter := testutil.SampleUser(ctx, nil)
	author := testutil.SampleUser(ctx, nil)
	article := testutil.SampleArticle(ctx, &entity.Article{AuthorID: author.ID})
	ref := entity.ContentRef{Origin: entity.OriginArticle, TargetID: article.ID}

	ledger := newTestLedger()

	state, err := ledger.Vote(ctx, voter.ID, ref, true)
	require.NoError(t, err)
	require.Equal(t, VotedUp, state)

	got, err := repository.NewArticleRepository().GetByID(ctx, article.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), got.UpNum)
	require.Equal(t, int64(0), got.DownNum)

	gotAuthor, err := repository.NewUserRepository().GetByID(ctx, author.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), gotAuthor.UpNum)

	like, err := repository.NewNotificationRepository().GetLike(ctx, voter.ID, ref)
	require.NoError(t, err)
	require.True(t, like.IsActive)
	require.Equal(t, author.ID, like.RecipientID)

	// The same vote again cancels it.
	state, err = ledger.Vote(ctx, voter.ID, ref, true)
	require.NoError(t, err)
	require.Equal(t, VotedNone, state)

	got, err = repository.NewArticleRepository().GetByID(ctx, article.ID)
	require.NoError(t, err)
	require.Equal(t, int64(0), got.UpNum)

	gotAuthor, err = repository.NewUserRepository().GetByID(ctx, author.ID)
	require.NoError(t, err)
	require.Equal(t, int64(0), gotAuthor.UpNum)

	like, err = repository.NewNotificationRepository().GetLike(ctx, voter.ID, ref)
	require.NoError(t, err)
	require.False(t, like.IsActive)

	// The opposite vote flips instead of stacking.
	state, err = ledger.Vote(ctx, voter.ID, ref, false)
	require.NoError(t, err)
	require.Equal(t, VotedDown, state)

	state, err = ledger.Vote(ctx, voter.ID, ref, true)
	require.NoError(t, err)
	require.Equal(t, VotedUp, state)

	got, err = repository.NewArticleRepository().GetByID(ctx, article.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), got.UpNum)
	require.Equal(t, int64(0), got.DownNum)

	state, err = ledger.State(ctx, voter.ID, ref)
	require.NoError(t, err)
	require.Equal(t, VotedUp, state)
}

func Test_Ledger_Vote_CommentSkipsAuthorAggregate(t *testing.T) {
	ctx := testutil.MockContext()
	voter := testutil.SampleUser(ctx, nil)
	author := testutil.SampleUser(ctx, nil)
	comment := testutil.SampleArticleComment(ctx, &entity.ArticleComment{AuthorID: author.ID})
	ref := entity.ContentRef{Origin: entity.OriginArticleComment, TargetID: comment.ID}

	ledger := newTestLedger()

	state, err := ledger.Vote(ctx, voter.ID, ref, true)
	require.NoError(t, err)
	require.Equal(t, VotedUp, state)

	got, err := repository.NewArticleCommentRepository().GetByID(ctx, comment.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), got.UpNum)

	// Received likes on comments do not count toward the author's profile
	// aggregate.
	gotAuthor, err := repository.NewUserRepository().GetByID(ctx, author.ID)
	require.NoError(t, err)
	require.Equal(t, int64(0), gotAuthor.UpNum)
}

func Test_Ledger_Vote_NotFoundContent(t *testing.T) {
	ctx := testutil.MockContext()
	voter := testutil.SampleUser(ctx, nil)

	ledger := newTestLedger()

	_, err := ledger.Vote(ctx, voter.ID, entity.ContentRef{
		Origin:   entity.OriginArticle,
		TargetID: 12345,
	}, true)
	require.Equal(t, errorx.New(errorx.NotFound, "Not found content"), err)
}

func Test_Ledger_State_Anonymous(t *testing.T) {
	ctx := testutil.MockContext()
	article := testutil.SampleArticle(ctx, nil)

	ledger := newTestLedger()

	state, err := ledger.State(ctx, "", entity.ContentRef{
		Origin:   entity.OriginArticle,
		TargetID: article.ID,
	})
	require.NoError(t, err)
	require.Equal(t, VotedNone, state)
}
