package repository_test

import (
	"testing"

	"github.com/forumix/backend/internal/entity"
	"github.com/forumix/backend/internal/repository"
	"github.com/forumix/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func Test_contentRepository_ToleratesDeletedTarget(t *testing.T) {
	ctx := testutil.MockContext()
	article := testutil.SampleArticle(ctx, nil)

	contentRepo := repository.NewContentRepository()
	ref := entity.ContentRef{Origin: entity.OriginArticle, TargetID: article.ID}

	require.NoError(t, repository.NewArticleRepository().Delete(ctx, article.ID))

	// Counter updates racing a delete are silent no-ops.
	require.NoError(t, contentRepo.AddCommentNum(ctx, ref, 1))
	require.NoError(t, contentRepo.AddUpNum(ctx, ref, -1))
	require.NoError(t, contentRepo.AddViewNum(ctx, ref, 1))
}

func Test_contentRepository_CountsLiveTarget(t *testing.T) {
	ctx := testutil.MockContext()
	article := testutil.SampleArticle(ctx, nil)

	contentRepo := repository.NewContentRepository()
	ref := entity.ContentRef{Origin: entity.OriginArticle, TargetID: article.ID}

	require.NoError(t, contentRepo.AddCommentNum(ctx, ref, 2))

	stored, err := repository.NewArticleRepository().GetByID(ctx, article.ID)
	require.NoError(t, err)
	require.Equal(t, int64(2), stored.CommentNum)
}
