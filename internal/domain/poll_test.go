package domain

import (
	"testing"
	"time"

	"github.com/forumix/backend/internal/entity"
	"github.com/forumix/backend/internal/model"
	"github.com/forumix/backend/internal/repository"
	"github.com/forumix/backend/pkg/errorx"
	"github.com/forumix/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func newTestPollDomain() PollDomain {
	return NewPollDomain(repository.NewPollRepository(), repository.NewArticleRepository())
}

func Test_pollDomain_Create(t *testing.T) {
	ctx := testutil.MockContext()
	author := testutil.SampleUser(ctx, nil)
	other := testutil.SampleUser(ctx, nil)
	article := testutil.SampleArticle(ctx, &entity.Article{AuthorID: author.ID})

	domain := newTestPollDomain()
	authorCtx := testutil.MockContextWithUserID(ctx, author.ID)
	deadline := time.Now().Add(24 * time.Hour).Format(model.DefaultTimeLayout)

	_, err := domain.Create(testutil.MockContextWithUserID(ctx, other.ID), &model.CreatePollRequest{
		ArticleID:  article.ID,
		Title:      "Pick one",
		MinChoices: 1,
		MaxChoices: 1,
		Deadline:   deadline,
		Options:    []string{"a", "b"},
	})
	require.Equal(t, errorx.New(errorx.PermissionDenied, "Only the author can attach a poll"), err)

	_, err = domain.Create(authorCtx, &model.CreatePollRequest{
		ArticleID:  article.ID,
		Title:      "Pick one",
		MinChoices: 1,
		MaxChoices: 1,
		Deadline:   deadline,
		Options:    []string{"only"},
	})
	require.Equal(t, errorx.New(errorx.BadRequest, "Polls need between 2 and 10 options"), err)

	_, err = domain.Create(authorCtx, &model.CreatePollRequest{
		ArticleID:  article.ID,
		Title:      "Pick one",
		MinChoices: 2,
		MaxChoices: 1,
		Deadline:   deadline,
		Options:    []string{"a", "b"},
	})
	require.Equal(t, errorx.New(errorx.BadRequest, "Invalid choice bounds"), err)

	_, err = domain.Create(authorCtx, &model.CreatePollRequest{
		ArticleID:  article.ID,
		Title:      "Pick one",
		MinChoices: 1,
		MaxChoices: 1,
		Deadline:   time.Now().Add(-time.Hour).Format(model.DefaultTimeLayout),
		Options:    []string{"a", "b"},
	})
	require.Equal(t, errorx.New(errorx.BadRequest, "Deadline is in the past"), err)

	resp, err := domain.Create(authorCtx, &model.CreatePollRequest{
		ArticleID:  article.ID,
		Title:      "Pick one",
		MinChoices: 1,
		MaxChoices: 2,
		Deadline:   deadline,
		Options:    []string{"a", "b", "c"},
	})
	require.NoError(t, err)
	require.NotZero(t, resp.ID)

	got, err := domain.Get(ctx, &model.GetPollRequest{ArticleID: article.ID})
	require.NoError(t, err)
	require.Equal(t, resp.ID, got.Poll.ID)
	require.Len(t, got.Poll.Options, 3)
}

func Test_pollDomain_SubmitBallot(t *testing.T) {
	ctx := testutil.MockContext()
	author := testutil.SampleUser(ctx, nil)
	voter := testutil.SampleUser(ctx, nil)
	article := testutil.SampleArticle(ctx, &entity.Article{AuthorID: author.ID})

	domain := newTestPollDomain()
	created, err := domain.Create(testutil.MockContextWithUserID(ctx, author.ID), &model.CreatePollRequest{
		ArticleID:  article.ID,
		Title:      "Pick two",
		MinChoices: 1,
		MaxChoices: 2,
		Deadline:   time.Now().Add(24 * time.Hour).Format(model.DefaultTimeLayout),
		Options:    []string{"a", "b", "c"},
	})
	require.NoError(t, err)

	poll, err := domain.Get(ctx, &model.GetPollRequest{ArticleID: article.ID})
	require.NoError(t, err)

	voterCtx := testutil.MockContextWithUserID(ctx, voter.ID)

	_, err = domain.SubmitBallot(voterCtx, &model.SubmitBallotRequest{
		PollID:    created.ID,
		OptionIDs: []int64{},
	})
	require.Equal(t, errorx.New(errorx.BadRequest, "Select between 1 and 2 options"), err)

	_, err = domain.SubmitBallot(voterCtx, &model.SubmitBallotRequest{
		PollID:    created.ID,
		OptionIDs: []int64{12345},
	})
	require.Equal(t, errorx.New(errorx.BadRequest, "Invalid option 12345"), err)

	first := poll.Poll.Options[0].ID
	second := poll.Poll.Options[1].ID

	_, err = domain.SubmitBallot(voterCtx, &model.SubmitBallotRequest{
		PollID:    created.ID,
		OptionIDs: []int64{first, first},
	})
	require.Equal(t, errorx.New(errorx.BadRequest, "Duplicated option %d", first), err)

	_, err = domain.SubmitBallot(voterCtx, &model.SubmitBallotRequest{
		PollID:    created.ID,
		OptionIDs: []int64{first, second},
	})
	require.NoError(t, err)

	// One ballot per user per poll.
	_, err = domain.SubmitBallot(voterCtx, &model.SubmitBallotRequest{
		PollID:    created.ID,
		OptionIDs: []int64{first},
	})
	require.Equal(t, errorx.New(errorx.AlreadyExists, "Already voted in this poll"), err)

	got, err := domain.Get(voterCtx, &model.GetPollRequest{ArticleID: article.ID})
	require.NoError(t, err)
	require.ElementsMatch(t, []int64{first, second}, got.Poll.MyOptionIDs)

	votes := map[int64]int64{}
	for _, option := range got.Poll.Options {
		votes[option.ID] = option.VoteNum
	}

	require.Equal(t, int64(1), votes[first])
	require.Equal(t, int64(1), votes[second])
	require.Equal(t, int64(0), votes[poll.Poll.Options[2].ID])
}
