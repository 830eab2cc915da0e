package domain

import (
	"testing"

	"github.com/forumix/backend/internal/entity"
	"github.com/forumix/backend/internal/model"
	"github.com/forumix/backend/internal/repository"
	"github.com/forumix/backend/pkg/errorx"
	"github.com/forumix/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func newTestFeedDomain() FeedDomain {
	return NewFeedDomain(
		repository.NewArticleRepository(),
		repository.NewColumnRepository(),
		repository.NewUserRepository(),
	)
}

func Test_FeedDomain_Get_MergesByCreationOrder(t *testing.T) {
	ctx := testutil.MockContext()

	oldest := testutil.SampleArticle(ctx, nil)
	column := testutil.SampleColumn(ctx, nil)
	newest := testutil.SampleArticle(ctx, nil)

	resp, err := newTestFeedDomain().Get(ctx, &model.GetFeedRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Items, 3)

	require.Equal(t, string(entity.OriginArticle), resp.Items[0].Origin)
	require.Equal(t, newest.ID, resp.Items[0].Article.ID)

	require.Equal(t, string(entity.OriginColumn), resp.Items[1].Origin)
	require.Equal(t, column.ID, resp.Items[1].Column.ID)

	require.Equal(t, string(entity.OriginArticle), resp.Items[2].Origin)
	require.Equal(t, oldest.ID, resp.Items[2].Article.ID)
}

func Test_FeedDomain_Get_OmitsContentAndDrafts(t *testing.T) {
	ctx := testutil.MockContext()

	testutil.SampleArticle(ctx, nil)
	testutil.SampleColumn(ctx, &entity.Column{IsDraft: true})

	resp, err := newTestFeedDomain().Get(ctx, &model.GetFeedRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	require.Empty(t, resp.Items[0].Article.Content)
	require.NotEmpty(t, resp.Items[0].Article.Summary)
}

func Test_FeedDomain_GetByUser(t *testing.T) {
	ctx := testutil.MockContext()

	author := testutil.SampleUser(ctx, nil)
	stranger := testutil.SampleUser(ctx, nil)

	article := testutil.SampleArticle(ctx, &entity.Article{AuthorID: author.ID})
	draft := testutil.SampleColumn(ctx, &entity.Column{AuthorID: author.ID, IsDraft: true})
	testutil.SampleArticle(ctx, &entity.Article{AuthorID: stranger.ID})

	feedDomain := newTestFeedDomain()

	// Strangers see only published work.
	resp, err := feedDomain.GetByUser(
		testutil.MockContextWithUserID(ctx, stranger.ID),
		&model.GetUserFeedRequest{UserID: author.ID},
	)
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	require.Equal(t, article.ID, resp.Items[0].Article.ID)

	// The author's own stream includes column drafts and defaults to self.
	resp, err = feedDomain.GetByUser(
		testutil.MockContextWithUserID(ctx, author.ID),
		&model.GetUserFeedRequest{},
	)
	require.NoError(t, err)
	require.Len(t, resp.Items, 2)
	require.Equal(t, draft.ID, resp.Items[0].Column.ID)
	require.Equal(t, article.ID, resp.Items[1].Article.ID)

	_, err = feedDomain.GetByUser(ctx, &model.GetUserFeedRequest{})
	require.Equal(t, errorx.New(errorx.Unauthenticated, "Not allow anonymous request"), err)
}

func Test_FeedDomain_Get_InvalidLimit(t *testing.T) {
	ctx := testutil.MockContext()

	_, err := newTestFeedDomain().Get(ctx, &model.GetFeedRequest{Limit: 1000})
	require.Equal(t, errorx.New(errorx.BadRequest, "Exceed the maximum of limit (50)"), err)
}
