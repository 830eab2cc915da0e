package domain

import (
	"testing"

	"github.com/forumix/backend/internal/entity"
	"github.com/forumix/backend/internal/model"
	"github.com/forumix/backend/internal/repository"
	"github.com/forumix/backend/pkg/errorx"
	"github.com/forumix/backend/pkg/testutil"
	"github.com/forumix/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func Test_articleDomain_Create(t *testing.T) {
	ctx := testutil.MockContext()
	author := testutil.SampleUser(ctx, nil)

	domain := newTestArticleDomain(newTestTrending())
	authorCtx := testutil.MockContextWithUserID(ctx, author.ID)

	resp, err := domain.Create(authorCtx, &model.CreateArticleRequest{
		Board:   "general",
		Title:   "Hello",
		Content: "<p>body</p><script>alert(1)</script>",
	})
	require.NoError(t, err)

	got, err := repository.NewArticleRepository().GetByID(ctx, resp.ID)
	require.NoError(t, err)
	require.Equal(t, author.ID, got.AuthorID)
	require.NotContains(t, got.Content, "script")
	require.Equal(t, "body", got.Summary)

	_, err = domain.Create(authorCtx, &model.CreateArticleRequest{Board: "general", Content: "x"})
	require.Equal(t, errorx.New(errorx.BadRequest, "Not allow empty title"), err)
}

func Test_articleDomain_Create_ConsumesDraft(t *testing.T) {
	ctx := testutil.MockContext()
	author := testutil.SampleUser(ctx, nil)

	domain := newTestArticleDomain(newTestTrending())
	authorCtx := testutil.MockContextWithUserID(ctx, author.ID)

	_, err := domain.SaveDraft(authorCtx, &model.SaveArticleDraftRequest{
		Board:   "general",
		Title:   "Draft title",
		Content: "draft body",
	})
	require.NoError(t, err)

	draft, err := domain.GetDraft(authorCtx, &model.GetArticleDraftRequest{})
	require.NoError(t, err)
	require.Equal(t, "Draft title", draft.Title)

	_, err = domain.Create(authorCtx, &model.CreateArticleRequest{
		Board:   "general",
		Title:   "Draft title",
		Content: "draft body",
	})
	require.NoError(t, err)

	// Publishing clears the draft.
	draft, err = domain.GetDraft(authorCtx, &model.GetArticleDraftRequest{})
	require.NoError(t, err)
	require.Empty(t, draft.Title)
}

func Test_articleDomain_Get_CountsViewOncePerUser(t *testing.T) {
	ctx := testutil.MockContext()
	reader := testutil.SampleUser(ctx, nil)
	article := testutil.SampleArticle(ctx, nil)

	domain := newTestArticleDomain(newTestTrending())
	readerCtx := testutil.MockContextWithUserID(ctx, reader.ID)

	_, err := domain.Get(readerCtx, &model.GetArticleRequest{ID: article.ID})
	require.NoError(t, err)

	_, err = domain.Get(readerCtx, &model.GetArticleRequest{ID: article.ID})
	require.NoError(t, err)

	got, err := repository.NewArticleRepository().GetByID(ctx, article.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), got.ViewNum)

	// Anonymous visits are not counted.
	_, err = domain.Get(ctx, &model.GetArticleRequest{ID: article.ID})
	require.NoError(t, err)

	got, err = repository.NewArticleRepository().GetByID(ctx, article.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), got.ViewNum)
}

func Test_articleDomain_GetList_InvalidOrder(t *testing.T) {
	ctx := testutil.MockContext()
	domain := newTestArticleDomain(newTestTrending())

	_, err := domain.GetList(ctx, &model.GetArticlesRequest{Order: "rising"})
	require.Equal(t, errorx.New(errorx.BadRequest, "Invalid order rising"), err)
}

func Test_articleDomain_GetList_OmitsContent(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.SampleArticle(ctx, nil)
	testutil.SampleArticle(ctx, nil)

	domain := newTestArticleDomain(newTestTrending())
	resp, err := domain.GetList(ctx, &model.GetArticlesRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Articles, 2)
	for _, a := range resp.Articles {
		require.Empty(t, a.Content)
		require.NotEmpty(t, a.Summary)
	}
}

func Test_articleDomain_Create_SurvivesNotificationFailure(t *testing.T) {
	ctx := testutil.MockContext()
	author := testutil.SampleUser(ctx, nil)
	follower := testutil.SampleUser(ctx, nil)

	userDomain := newTestUserDomain()
	_, err := userDomain.Follow(testutil.MockContextWithUserID(ctx, follower.ID), &model.FollowRequest{
		UserID: author.ID,
	})
	require.NoError(t, err)

	// Break the fan-out target so SendDynamic fails on insert.
	require.NoError(t, xcontext.DB(ctx).Migrator().DropTable(&entity.Notification{}))

	domain := newTestArticleDomain(newTestTrending())
	resp, err := domain.Create(testutil.MockContextWithUserID(ctx, author.ID), &model.CreateArticleRequest{
		Board:   "general",
		Title:   "still published",
		Content: "<p>body</p>",
	})
	require.NoError(t, err)

	stored, err := repository.NewArticleRepository().GetByID(ctx, resp.ID)
	require.NoError(t, err)
	require.Equal(t, "still published", stored.Title)
}

func Test_articleDomain_Update(t *testing.T) {
	ctx := testutil.MockContext()
	author := testutil.SampleUser(ctx, nil)
	stranger := testutil.SampleUser(ctx, nil)
	article := testutil.SampleArticle(ctx, &entity.Article{AuthorID: author.ID})

	domain := newTestArticleDomain(newTestTrending())

	_, err := domain.Update(testutil.MockContextWithUserID(ctx, stranger.ID), &model.UpdateArticleRequest{
		ID:      article.ID,
		Title:   "hijacked",
		Content: "<p>changed</p>",
	})
	require.Equal(t, errorx.New(errorx.PermissionDenied, "Only the author can update the article"), err)

	authorCtx := testutil.MockContextWithUserID(ctx, author.ID)
	_, err = domain.Update(authorCtx, &model.UpdateArticleRequest{
		ID:      article.ID,
		Title:   "revised title",
		Content: "<p>revised body</p><script>alert(1)</script>",
	})
	require.NoError(t, err)

	resp, err := domain.Get(authorCtx, &model.GetArticleRequest{ID: article.ID})
	require.NoError(t, err)
	require.Equal(t, "revised title", resp.Article.Title)
	require.Equal(t, "<p>revised body</p>", resp.Article.Content)
	require.Equal(t, "revised body", resp.Article.Summary)

	_, err = domain.Update(authorCtx, &model.UpdateArticleRequest{ID: article.ID, Content: "<p>x</p>"})
	require.Equal(t, errorx.New(errorx.BadRequest, "Not allow empty title"), err)
}

func Test_articleDomain_Delete(t *testing.T) {
	ctx := testutil.MockContext()
	author := testutil.SampleUser(ctx, nil)
	other := testutil.SampleUser(ctx, nil)
	article := testutil.SampleArticle(ctx, &entity.Article{AuthorID: author.ID})
	comment := testutil.SampleArticleComment(ctx, &entity.ArticleComment{
		ArticleID: article.ID,
		AuthorID:  other.ID,
	})

	notifyEngine, _, _ := newTestEngines()
	commentRef := entity.ContentRef{Origin: entity.OriginArticleComment, TargetID: comment.ID}
	require.NoError(t, notifyEngine.SendReply(ctx, other.ID, author.ID, commentRef))

	domain := newTestArticleDomain(newTestTrending())

	_, err := domain.Delete(testutil.MockContextWithUserID(ctx, other.ID), &model.DeleteArticleRequest{
		ID: article.ID,
	})
	require.Equal(t, errorx.New(errorx.PermissionDenied, "Only the author can delete the article"), err)

	_, err = domain.Delete(testutil.MockContextWithUserID(ctx, author.ID), &model.DeleteArticleRequest{
		ID: article.ID,
	})
	require.NoError(t, err)

	_, err = repository.NewArticleRepository().GetByID(ctx, article.ID)
	require.Error(t, err)

	_, err = repository.NewArticleCommentRepository().GetByID(ctx, comment.ID)
	require.Error(t, err)

	// Notifications pointing at the deleted comments are retracted with them.
	rows, err := repository.NewNotificationRepository().GetList(ctx, repository.NotificationFilter{
		RecipientID: author.ID,
		Kind:        entity.NotifyReply,
		Limit:       10,
	})
	require.NoError(t, err)
	require.Empty(t, rows)
}
