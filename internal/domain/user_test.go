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

func newTestUserDomain() UserDomain {
	_, questLedger, _ := newTestEngines()
	return NewUserDomain(repository.NewUserRepository(), repository.NewFollowRepository(), questLedger)
}

func Test_userDomain_FollowUnfollow(t *testing.T) {
	ctx := testutil.MockContext()
	follower := testutil.SampleUser(ctx, nil)
	target := testutil.SampleUser(ctx, nil)

	domain := newTestUserDomain()
	followerCtx := testutil.MockContextWithUserID(ctx, follower.ID)

	_, err := domain.Follow(followerCtx, &model.FollowRequest{UserID: target.ID})
	require.NoError(t, err)

	gotFollower, err := repository.NewUserRepository().GetByID(ctx, follower.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), gotFollower.FollowingNum)

	gotTarget, err := repository.NewUserRepository().GetByID(ctx, target.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), gotTarget.FollowerNum)

	_, err = domain.Follow(followerCtx, &model.FollowRequest{UserID: target.ID})
	require.Equal(t, errorx.New(errorx.AlreadyExists, "Already followed this user"), err)

	_, err = domain.Unfollow(followerCtx, &model.UnfollowRequest{UserID: target.ID})
	require.NoError(t, err)

	gotFollower, err = repository.NewUserRepository().GetByID(ctx, follower.ID)
	require.NoError(t, err)
	require.Equal(t, int64(0), gotFollower.FollowingNum)

	gotTarget, err = repository.NewUserRepository().GetByID(ctx, target.ID)
	require.NoError(t, err)
	require.Equal(t, int64(0), gotTarget.FollowerNum)

	_, err = domain.Unfollow(followerCtx, &model.UnfollowRequest{UserID: target.ID})
	require.Equal(t, errorx.New(errorx.NotFound, "Not followed this user"), err)
}

func Test_userDomain_Follow_Self(t *testing.T) {
	ctx := testutil.MockContext()
	user := testutil.SampleUser(ctx, nil)

	domain := newTestUserDomain()
	_, err := domain.Follow(testutil.MockContextWithUserID(ctx, user.ID), &model.FollowRequest{
		UserID: user.ID,
	})
	require.Equal(t, errorx.New(errorx.BadRequest, "Cannot follow yourself"), err)
}

func Test_userDomain_GetUser_Relations(t *testing.T) {
	ctx := testutil.MockContext()
	viewer := testutil.SampleUser(ctx, nil)
	followed := testutil.SampleUser(ctx, nil)
	blocked := testutil.SampleUser(ctx, nil)

	domain := newTestUserDomain()
	viewerCtx := testutil.MockContextWithUserID(ctx, viewer.ID)

	_, err := domain.Follow(viewerCtx, &model.FollowRequest{UserID: followed.ID})
	require.NoError(t, err)

	_, err = domain.Block(viewerCtx, &model.BlockRequest{UserID: blocked.ID})
	require.NoError(t, err)

	resp, err := domain.GetUser(viewerCtx, &model.GetUserRequest{UserID: followed.ID})
	require.NoError(t, err)
	require.True(t, resp.IsFollowing)
	require.False(t, resp.IsBlocked)

	resp, err = domain.GetUser(viewerCtx, &model.GetUserRequest{UserID: blocked.ID})
	require.NoError(t, err)
	require.False(t, resp.IsFollowing)
	require.True(t, resp.IsBlocked)

	// Without a user id the request resolves to the requester.
	resp, err = domain.GetUser(viewerCtx, &model.GetUserRequest{})
	require.NoError(t, err)
	require.Equal(t, viewer.ID, resp.User.ID)
}

func Test_userDomain_BlockUnblock(t *testing.T) {
	ctx := testutil.MockContext()
	user := testutil.SampleUser(ctx, nil)
	target := testutil.SampleUser(ctx, nil)

	domain := newTestUserDomain()
	userCtx := testutil.MockContextWithUserID(ctx, user.ID)

	_, err := domain.Block(userCtx, &model.BlockRequest{UserID: target.ID})
	require.NoError(t, err)

	_, err = domain.Block(userCtx, &model.BlockRequest{UserID: target.ID})
	require.Equal(t, errorx.New(errorx.AlreadyExists, "Already blocked this user"), err)

	resp, err := domain.GetBlocks(userCtx, &model.GetBlocksRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Users, 1)
	require.Equal(t, target.ID, resp.Users[0].ID)

	_, err = domain.Unblock(userCtx, &model.UnblockRequest{UserID: target.ID})
	require.NoError(t, err)

	_, err = domain.Unblock(userCtx, &model.UnblockRequest{UserID: target.ID})
	require.Equal(t, errorx.New(errorx.NotFound, "Not blocked this user"), err)
}

func Test_userDomain_UpdateUser_NameTaken(t *testing.T) {
	ctx := testutil.MockContext()
	user := testutil.SampleUser(ctx, nil)
	other := testutil.SampleUser(ctx, nil)

	domain := newTestUserDomain()
	userCtx := testutil.MockContextWithUserID(ctx, user.ID)

	_, err := domain.UpdateUser(userCtx, &model.UpdateUserRequest{Name: other.Name})
	require.Equal(t, errorx.New(errorx.AlreadyExists, "Name is already taken"), err)

	// Keeping the own name is not a conflict.
	_, err = domain.UpdateUser(userCtx, &model.UpdateUserRequest{
		Name:         user.Name,
		Introduction: "hello",
	})
	require.NoError(t, err)

	got, err := repository.NewUserRepository().GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, "hello", got.Introduction)
}

func Test_userDomain_Sign(t *testing.T) {
	ctx := testutil.MockContext()
	user := testutil.SampleUser(ctx, nil)

	domain := newTestUserDomain()
	userCtx := testutil.MockContextWithUserID(ctx, user.ID)

	resp, err := domain.Sign(userCtx, &model.SignRequest{})
	require.NoError(t, err)
	require.Equal(t, entity.QuestRewards[entity.QuestSign].Experience, resp.Experience)

	// The second sign of the day grants nothing.
	resp, err = domain.Sign(userCtx, &model.SignRequest{})
	require.NoError(t, err)
	require.Equal(t, entity.QuestRewards[entity.QuestSign].Experience, resp.Experience)
}
