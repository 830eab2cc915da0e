package domain

import (
	"testing"

	"github.com/forumix/backend/internal/model"
	"github.com/forumix/backend/internal/repository"
	"github.com/forumix/backend/pkg/errorx"
	"github.com/forumix/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func Test_interactionDomain_Vote(t *testing.T) {
	ctx := testutil.MockContext()
	voter := testutil.SampleUser(ctx, nil)
	article := testutil.SampleArticle(ctx, nil)

	_, _, voteLedger := newTestEngines()
	domain := NewInteractionDomain(voteLedger, newTestTrending())
	voterCtx := testutil.MockContextWithUserID(ctx, voter.ID)

	resp, err := domain.Vote(voterCtx, &model.VoteRequest{
		Origin:   "bbs_article",
		TargetID: article.ID,
		IsUp:     true,
	})
	require.NoError(t, err)
	require.Equal(t, "up", resp.State)

	resp, err = domain.Vote(voterCtx, &model.VoteRequest{
		Origin:   "bbs_article",
		TargetID: article.ID,
		IsUp:     false,
	})
	require.NoError(t, err)
	require.Equal(t, "down", resp.State)

	resp, err = domain.Vote(voterCtx, &model.VoteRequest{
		Origin:   "bbs_article",
		TargetID: article.ID,
		IsUp:     false,
	})
	require.NoError(t, err)
	require.Equal(t, "", resp.State)

	got, err := repository.NewArticleRepository().GetByID(ctx, article.ID)
	require.NoError(t, err)
	require.Equal(t, int64(0), got.UpNum)
	require.Equal(t, int64(0), got.DownNum)
}

func Test_interactionDomain_Vote_InvalidOrigin(t *testing.T) {
	ctx := testutil.MockContext()
	voter := testutil.SampleUser(ctx, nil)

	_, _, voteLedger := newTestEngines()
	domain := NewInteractionDomain(voteLedger, newTestTrending())

	_, err := domain.Vote(testutil.MockContextWithUserID(ctx, voter.ID), &model.VoteRequest{
		Origin:   "bbs_post",
		TargetID: 1,
		IsUp:     true,
	})
	require.Equal(t, errorx.New(errorx.BadRequest, "Invalid origin bbs_post"), err)
}
