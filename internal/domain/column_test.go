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

func Test_columnDomain_DraftLifecycle(t *testing.T) {
	ctx := testutil.MockContext()
	author := testutil.SampleUser(ctx, nil)
	reader := testutil.SampleUser(ctx, nil)

	domain := newTestColumnDomain(newTestTrending())
	authorCtx := testutil.MockContextWithUserID(ctx, author.ID)

	resp, err := domain.Create(authorCtx, &model.CreateColumnRequest{
		Title:   "Draft column",
		Content: "<p>body</p>",
		AsDraft: true,
	})
	require.NoError(t, err)

	// A draft is only visible to its author.
	_, err = domain.Get(testutil.MockContextWithUserID(ctx, reader.ID), &model.GetColumnRequest{ID: resp.ID})
	require.Equal(t, errorx.New(errorx.NotFound, "Not found column"), err)

	got, err := domain.Get(authorCtx, &model.GetColumnRequest{ID: resp.ID})
	require.NoError(t, err)
	require.Equal(t, "Draft column", got.Column.Title)

	_, err = domain.Publish(testutil.MockContextWithUserID(ctx, reader.ID), &model.PublishColumnRequest{ID: resp.ID})
	require.Equal(t, errorx.New(errorx.PermissionDenied, "Only the author can publish the column"), err)

	_, err = domain.Publish(authorCtx, &model.PublishColumnRequest{ID: resp.ID})
	require.NoError(t, err)

	_, err = domain.Publish(authorCtx, &model.PublishColumnRequest{ID: resp.ID})
	require.Equal(t, errorx.New(errorx.AlreadyExists, "Column is already published"), err)

	got, err = domain.Get(testutil.MockContextWithUserID(ctx, reader.ID), &model.GetColumnRequest{ID: resp.ID})
	require.NoError(t, err)
	require.Equal(t, "Draft column", got.Column.Title)
}

func Test_columnDomain_Publish_NotifiesFollowers(t *testing.T) {
	ctx := testutil.MockContext()
	author := testutil.SampleUser(ctx, nil)
	follower := testutil.SampleUser(ctx, nil)

	userDomain := newTestUserDomain()
	_, err := userDomain.Follow(testutil.MockContextWithUserID(ctx, follower.ID), &model.FollowRequest{
		UserID: author.ID,
	})
	require.NoError(t, err)

	domain := newTestColumnDomain(newTestTrending())
	resp, err := domain.Create(testutil.MockContextWithUserID(ctx, author.ID), &model.CreateColumnRequest{
		Title:   "Published",
		Content: "body",
	})
	require.NoError(t, err)

	rows, err := repository.NewNotificationRepository().GetList(ctx, repository.NotificationFilter{
		RecipientID: follower.ID,
		Kind:        entity.NotifyDynamic,
		Limit:       10,
	})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, resp.ID, rows[0].TargetID)
	require.Equal(t, entity.OriginColumn, rows[0].Origin)
}

func Test_columnDomain_ShareArticle(t *testing.T) {
	ctx := testutil.MockContext()
	author := testutil.SampleUser(ctx, nil)
	other := testutil.SampleUser(ctx, nil)
	article := testutil.SampleArticle(ctx, &entity.Article{AuthorID: author.ID})

	domain := newTestColumnDomain(newTestTrending())

	_, err := domain.ShareArticle(testutil.MockContextWithUserID(ctx, other.ID), &model.ShareArticleRequest{
		ArticleID: article.ID,
	})
	require.Equal(t, errorx.New(errorx.PermissionDenied, "Only the author can share the article"), err)

	resp, err := domain.ShareArticle(testutil.MockContextWithUserID(ctx, author.ID), &model.ShareArticleRequest{
		ArticleID: article.ID,
	})
	require.NoError(t, err)

	got, err := repository.NewColumnRepository().GetByID(ctx, resp.ColumnID)
	require.NoError(t, err)
	require.True(t, got.IsShared)
	require.False(t, got.IsDraft)
	require.Equal(t, article.Title, got.Title)
}

func Test_columnDomain_GetList_HidesOthersDrafts(t *testing.T) {
	ctx := testutil.MockContext()
	author := testutil.SampleUser(ctx, nil)
	reader := testutil.SampleUser(ctx, nil)

	domain := newTestColumnDomain(newTestTrending())
	authorCtx := testutil.MockContextWithUserID(ctx, author.ID)

	_, err := domain.Create(authorCtx, &model.CreateColumnRequest{Title: "Public", Content: "x"})
	require.NoError(t, err)

	_, err = domain.Create(authorCtx, &model.CreateColumnRequest{Title: "Hidden", Content: "x", AsDraft: true})
	require.NoError(t, err)

	resp, err := domain.GetList(testutil.MockContextWithUserID(ctx, reader.ID), &model.GetColumnsRequest{
		AuthorID: author.ID,
	})
	require.NoError(t, err)
	require.Len(t, resp.Columns, 1)
	require.Equal(t, "Public", resp.Columns[0].Title)

	resp, err = domain.GetList(authorCtx, &model.GetColumnsRequest{AuthorID: author.ID})
	require.NoError(t, err)
	require.Len(t, resp.Columns, 2)
}
