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

func Test_articleCommentDomain_Create_TopLevel(t *testing.T) {
	ctx := testutil.MockContext()
	author := testutil.SampleUser(ctx, nil)
	commenter := testutil.SampleUser(ctx, nil)
	article := testutil.SampleArticle(ctx, &entity.Article{AuthorID: author.ID})

	domain := newTestArticleCommentDomain()

	resp, err := domain.Create(testutil.MockContextWithUserID(ctx, commenter.ID), &model.CreateArticleCommentRequest{
		ArticleID: article.ID,
		Content:   "first",
	})
	require.NoError(t, err)

	gotArticle, err := repository.NewArticleRepository().GetByID(ctx, article.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), gotArticle.CommentNum)

	// The article author gets a reply notification.
	rows, err := repository.NewNotificationRepository().GetList(ctx, repository.NotificationFilter{
		RecipientID: author.ID,
		Kind:        entity.NotifyReply,
		Limit:       10,
	})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, resp.ID, rows[0].TargetID)
	require.Equal(t, entity.OriginArticleComment, rows[0].Origin)
}

func Test_articleCommentDomain_Create_NestedAnchorsToTopLevel(t *testing.T) {
	ctx := testutil.MockContext()
	article := testutil.SampleArticle(ctx, nil)
	topAuthor := testutil.SampleUser(ctx, nil)
	replyAuthor := testutil.SampleUser(ctx, nil)
	deepAuthor := testutil.SampleUser(ctx, nil)

	domain := newTestArticleCommentDomain()

	top, err := domain.Create(testutil.MockContextWithUserID(ctx, topAuthor.ID), &model.CreateArticleCommentRequest{
		ArticleID: article.ID,
		Content:   "top",
	})
	require.NoError(t, err)

	reply, err := domain.Create(testutil.MockContextWithUserID(ctx, replyAuthor.ID), &model.CreateArticleCommentRequest{
		ArticleID: article.ID,
		ParentID:  top.ID,
		Content:   "reply",
	})
	require.NoError(t, err)

	// Answering the nested reply anchors the new comment to the same
	// top-level comment and keeps the answered user in reply_to.
	deep, err := domain.Create(testutil.MockContextWithUserID(ctx, deepAuthor.ID), &model.CreateArticleCommentRequest{
		ArticleID: article.ID,
		ParentID:  reply.ID,
		Content:   "deep",
	})
	require.NoError(t, err)

	gotDeep, err := repository.NewArticleCommentRepository().GetByID(ctx, deep.ID)
	require.NoError(t, err)
	require.Equal(t, top.ID, gotDeep.ParentID)
	require.Equal(t, replyAuthor.ID, gotDeep.ReplyToID)

	gotTop, err := repository.NewArticleCommentRepository().GetByID(ctx, top.ID)
	require.NoError(t, err)
	require.Equal(t, int64(2), gotTop.CommentNum)

	gotArticle, err := repository.NewArticleRepository().GetByID(ctx, article.ID)
	require.NoError(t, err)
	require.Equal(t, int64(3), gotArticle.CommentNum)

	// The nested reply notifies the answered commenter, not the article
	// author.
	rows, err := repository.NewNotificationRepository().GetList(ctx, repository.NotificationFilter{
		RecipientID: replyAuthor.ID,
		Kind:        entity.NotifyReply,
		Limit:       10,
	})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, deep.ID, rows[0].TargetID)
}

func Test_articleCommentDomain_Create_WrongParent(t *testing.T) {
	ctx := testutil.MockContext()
	user := testutil.SampleUser(ctx, nil)
	article := testutil.SampleArticle(ctx, nil)
	otherComment := testutil.SampleArticleComment(ctx, nil)

	domain := newTestArticleCommentDomain()
	_, err := domain.Create(testutil.MockContextWithUserID(ctx, user.ID), &model.CreateArticleCommentRequest{
		ArticleID: article.ID,
		ParentID:  otherComment.ID,
		Content:   "stray",
	})
	require.Equal(t, errorx.New(errorx.BadRequest, "Parent comment belongs to another article"), err)
}

func Test_articleCommentDomain_GetList(t *testing.T) {
	ctx := testutil.MockContext()
	article := testutil.SampleArticle(ctx, nil)
	topAuthor := testutil.SampleUser(ctx, nil)
	replyAuthor := testutil.SampleUser(ctx, nil)

	domain := newTestArticleCommentDomain()

	top, err := domain.Create(testutil.MockContextWithUserID(ctx, topAuthor.ID), &model.CreateArticleCommentRequest{
		ArticleID: article.ID,
		Content:   "top",
	})
	require.NoError(t, err)

	_, err = domain.Create(testutil.MockContextWithUserID(ctx, replyAuthor.ID), &model.CreateArticleCommentRequest{
		ArticleID: article.ID,
		ParentID:  top.ID,
		Content:   "reply",
	})
	require.NoError(t, err)

	resp, err := domain.GetList(ctx, &model.GetArticleCommentsRequest{ArticleID: article.ID})
	require.NoError(t, err)
	require.Len(t, resp.Comments, 1)
	require.Equal(t, top.ID, resp.Comments[0].ID)
	require.Nil(t, resp.Comments[0].ReplyTo)

	resp, err = domain.GetList(ctx, &model.GetArticleCommentsRequest{
		ArticleID: article.ID,
		ParentID:  top.ID,
	})
	require.NoError(t, err)
	require.Len(t, resp.Comments, 1)
	require.NotNil(t, resp.Comments[0].ReplyTo)
	require.Equal(t, topAuthor.ID, resp.Comments[0].ReplyTo.ID)
}

func Test_articleCommentDomain_Delete_ThreadCascade(t *testing.T) {
	ctx := testutil.MockContext()
	article := testutil.SampleArticle(ctx, nil)
	topAuthor := testutil.SampleUser(ctx, nil)
	replyAuthor := testutil.SampleUser(ctx, nil)

	domain := newTestArticleCommentDomain()

	top, err := domain.Create(testutil.MockContextWithUserID(ctx, topAuthor.ID), &model.CreateArticleCommentRequest{
		ArticleID: article.ID,
		Content:   "top",
	})
	require.NoError(t, err)

	reply, err := domain.Create(testutil.MockContextWithUserID(ctx, replyAuthor.ID), &model.CreateArticleCommentRequest{
		ArticleID: article.ID,
		ParentID:  top.ID,
		Content:   "reply",
	})
	require.NoError(t, err)

	_, err = domain.Delete(testutil.MockContextWithUserID(ctx, replyAuthor.ID), &model.DeleteArticleCommentRequest{
		ID: top.ID,
	})
	require.Equal(t, errorx.New(errorx.PermissionDenied, "Only the author can delete the comment"), err)

	// Deleting the top-level comment takes the reply with it and drops the
	// article counter by the whole thread.
	_, err = domain.Delete(testutil.MockContextWithUserID(ctx, topAuthor.ID), &model.DeleteArticleCommentRequest{
		ID: top.ID,
	})
	require.NoError(t, err)

	gotArticle, err := repository.NewArticleRepository().GetByID(ctx, article.ID)
	require.NoError(t, err)
	require.Equal(t, int64(0), gotArticle.CommentNum)

	_, err = repository.NewArticleCommentRepository().GetByID(ctx, reply.ID)
	require.Error(t, err)

	// The reply notification the top author received is retracted.
	rows, err := repository.NewNotificationRepository().GetList(ctx, repository.NotificationFilter{
		RecipientID: topAuthor.ID,
		Kind:        entity.NotifyReply,
		Limit:       10,
	})
	require.NoError(t, err)
	require.Empty(t, rows)
}

func Test_articleCommentDomain_Delete_NestedAdjustsBothCounters(t *testing.T) {
	ctx := testutil.MockContext()
	article := testutil.SampleArticle(ctx, nil)
	topAuthor := testutil.SampleUser(ctx, nil)
	replyAuthor := testutil.SampleUser(ctx, nil)

	domain := newTestArticleCommentDomain()

	top, err := domain.Create(testutil.MockContextWithUserID(ctx, topAuthor.ID), &model.CreateArticleCommentRequest{
		ArticleID: article.ID,
		Content:   "top",
	})
	require.NoError(t, err)

	reply, err := domain.Create(testutil.MockContextWithUserID(ctx, replyAuthor.ID), &model.CreateArticleCommentRequest{
		ArticleID: article.ID,
		ParentID:  top.ID,
		Content:   "reply",
	})
	require.NoError(t, err)

	_, err = domain.Delete(testutil.MockContextWithUserID(ctx, replyAuthor.ID), &model.DeleteArticleCommentRequest{
		ID: reply.ID,
	})
	require.NoError(t, err)

	gotTop, err := repository.NewArticleCommentRepository().GetByID(ctx, top.ID)
	require.NoError(t, err)
	require.Equal(t, int64(0), gotTop.CommentNum)

	gotArticle, err := repository.NewArticleRepository().GetByID(ctx, article.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), gotArticle.CommentNum)
}
