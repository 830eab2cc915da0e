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

func Test_issueDomain_CommentAndAdopt(t *testing.T) {
	ctx := testutil.MockContext()
	asker := testutil.SampleUser(ctx, nil)
	answerer := testutil.SampleUser(ctx, nil)
	issue := testutil.SampleIssue(ctx, &entity.Issue{AuthorID: asker.ID})

	domain := newTestIssueDomain()
	askerCtx := testutil.MockContextWithUserID(ctx, asker.ID)
	answererCtx := testutil.MockContextWithUserID(ctx, answerer.ID)

	comment, err := domain.CreateComment(answererCtx, &model.CreateIssueCommentRequest{
		IssueID: issue.ID,
		Content: "try this",
	})
	require.NoError(t, err)

	gotIssue, err := repository.NewIssueRepository().GetByID(ctx, issue.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), gotIssue.CommentNum)

	// Only the issue author can accept an answer.
	_, err = domain.AdoptComment(answererCtx, &model.AdoptIssueCommentRequest{
		IssueID:   issue.ID,
		CommentID: comment.ID,
	})
	require.Equal(t, errorx.New(errorx.PermissionDenied, "Only the author can adopt an answer"), err)

	_, err = domain.AdoptComment(askerCtx, &model.AdoptIssueCommentRequest{
		IssueID:   issue.ID,
		CommentID: comment.ID,
	})
	require.NoError(t, err)

	gotIssue, err = repository.NewIssueRepository().GetByID(ctx, issue.ID)
	require.NoError(t, err)
	require.Equal(t, comment.ID, gotIssue.AdoptedCommentID)

	// Adoption is one-shot.
	_, err = domain.AdoptComment(askerCtx, &model.AdoptIssueCommentRequest{
		IssueID:   issue.ID,
		CommentID: comment.ID,
	})
	require.Equal(t, errorx.New(errorx.AlreadyExists, "Issue already adopted an answer"), err)

	// The accepted answer rewards its author.
	gotAnswerer, err := repository.NewUserRepository().GetByID(ctx, answerer.ID)
	require.NoError(t, err)
	expected := entity.QuestRewards[entity.QuestComment].Experience +
		entity.QuestRewards[entity.QuestAdopted].Experience
	require.Equal(t, expected, gotAnswerer.Experience)

	// An adopted answer cannot be deleted.
	_, err = domain.DeleteComment(answererCtx, &model.DeleteIssueCommentRequest{ID: comment.ID})
	require.Equal(t, errorx.New(errorx.BadRequest, "Cannot delete an adopted answer"), err)
}

func Test_issueDomain_AdoptComment_WrongIssue(t *testing.T) {
	ctx := testutil.MockContext()
	asker := testutil.SampleUser(ctx, nil)
	issue := testutil.SampleIssue(ctx, &entity.Issue{AuthorID: asker.ID})
	otherIssue := testutil.SampleIssue(ctx, nil)

	domain := newTestIssueDomain()
	answerer := testutil.SampleUser(ctx, nil)
	comment, err := domain.CreateComment(testutil.MockContextWithUserID(ctx, answerer.ID), &model.CreateIssueCommentRequest{
		IssueID: otherIssue.ID,
		Content: "elsewhere",
	})
	require.NoError(t, err)

	_, err = domain.AdoptComment(testutil.MockContextWithUserID(ctx, asker.ID), &model.AdoptIssueCommentRequest{
		IssueID:   issue.ID,
		CommentID: comment.ID,
	})
	require.Equal(t, errorx.New(errorx.BadRequest, "Comment belongs to another issue"), err)
}

func Test_issueDomain_DeleteComment(t *testing.T) {
	ctx := testutil.MockContext()
	issue := testutil.SampleIssue(ctx, nil)
	answerer := testutil.SampleUser(ctx, nil)

	domain := newTestIssueDomain()
	comment, err := domain.CreateComment(testutil.MockContextWithUserID(ctx, answerer.ID), &model.CreateIssueCommentRequest{
		IssueID: issue.ID,
		Content: "answer",
	})
	require.NoError(t, err)

	_, err = domain.DeleteComment(testutil.MockContextWithUserID(ctx, answerer.ID), &model.DeleteIssueCommentRequest{
		ID: comment.ID,
	})
	require.NoError(t, err)

	gotIssue, err := repository.NewIssueRepository().GetByID(ctx, issue.ID)
	require.NoError(t, err)
	require.Equal(t, int64(0), gotIssue.CommentNum)
}

func Test_issueDomain_Delete_RetractsCommentNotifications(t *testing.T) {
	ctx := testutil.MockContext()
	asker := testutil.SampleUser(ctx, nil)
	answerer := testutil.SampleUser(ctx, nil)
	issue := testutil.SampleIssue(ctx, &entity.Issue{AuthorID: asker.ID})

	domain := newTestIssueDomain()
	_, err := domain.CreateComment(testutil.MockContextWithUserID(ctx, answerer.ID), &model.CreateIssueCommentRequest{
		IssueID: issue.ID,
		Content: "answer",
	})
	require.NoError(t, err)

	_, err = domain.Delete(testutil.MockContextWithUserID(ctx, asker.ID), &model.DeleteIssueRequest{ID: issue.ID})
	require.NoError(t, err)

	rows, err := repository.NewNotificationRepository().GetList(ctx, repository.NotificationFilter{
		RecipientID: asker.ID,
		Kind:        entity.NotifyReply,
		Limit:       10,
	})
	require.NoError(t, err)
	require.Empty(t, rows)
}
