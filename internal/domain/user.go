package domain

import (
	"context"
	"errors"
	"time"

	"github.com/forumix/backend/internal/domain/quest"
	"github.com/forumix/backend/internal/entity"
	"github.com/forumix/backend/internal/model"
	"github.com/forumix/backend/internal/repository"
	"github.com/forumix/backend/pkg/errorx"
	"github.com/forumix/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type UserDomain interface {
	GetUser(ctx context.Context, req *model.GetUserRequest) (*model.GetUserResponse, error)
	UpdateUser(ctx context.Context, req *model.UpdateUserRequest) (*model.UpdateUserResponse, error)
	Follow(ctx context.Context, req *model.FollowRequest) (*model.FollowResponse, error)
	Unfollow(ctx context.Context, req *model.UnfollowRequest) (*model.UnfollowResponse, error)
	GetFollowings(ctx context.Context, req *model.GetFollowingsRequest) (*model.GetFollowingsResponse, error)
	GetFollowers(ctx context.Context, req *model.GetFollowersRequest) (*model.GetFollowersResponse, error)
	Block(ctx context.Context, req *model.BlockRequest) (*model.BlockResponse, error)
	Unblock(ctx context.Context, req *model.UnblockRequest) (*model.UnblockResponse, error)
	GetBlocks(ctx context.Context, req *model.GetBlocksRequest) (*model.GetBlocksResponse, error)
	Sign(ctx context.Context, req *model.SignRequest) (*model.SignResponse, error)
}

type userDomain struct {
	userRepo    repository.UserRepository
	followRepo  repository.FollowRepository
	questLedger *quest.Ledger
}

func NewUserDomain(
	userRepo repository.UserRepository,
	followRepo repository.FollowRepository,
	questLedger *quest.Ledger,
) *userDomain {
	return &userDomain{
		userRepo:    userRepo,
		followRepo:  followRepo,
		questLedger: questLedger,
	}
}

func (d *userDomain) GetUser(
	ctx context.Context, req *model.GetUserRequest,
) (*model.GetUserResponse, error) {
	userID := req.UserID
	if userID == "" {
		userID = xcontext.RequestUserID(ctx)
	}

	if userID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty user id")
	}

	user, err := d.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	resp := &model.GetUserResponse{User: model.ConvertUser(user)}
	requestUserID := xcontext.RequestUserID(ctx)
	if requestUserID != "" && requestUserID != userID {
		if _, err := d.followRepo.Get(ctx, requestUserID, userID); err == nil {
			resp.IsFollowing = true
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			xcontext.Logger(ctx).Errorf("Cannot get follow edge: %v", err)
			return nil, errorx.Unknown
		}

		if _, err := d.followRepo.GetBlock(ctx, requestUserID, userID); err == nil {
			resp.IsBlocked = true
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			xcontext.Logger(ctx).Errorf("Cannot get block edge: %v", err)
			return nil, errorx.Unknown
		}
	}

	return resp, nil
}

func (d *userDomain) UpdateUser(
	ctx context.Context, req *model.UpdateUserRequest,
) (*model.UpdateUserResponse, error) {
	userID := xcontext.RequestUserID(ctx)

	if req.Name != "" {
		existing, err := d.userRepo.GetByName(ctx, req.Name)
		if err == nil && existing.ID != userID {
			return nil, errorx.New(errorx.AlreadyExists, "Name is already taken")
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			xcontext.Logger(ctx).Errorf("Cannot get user by name: %v", err)
			return nil, errorx.Unknown
		}
	}

	err := d.userRepo.UpdateByID(ctx, userID, &entity.User{
		Name:         req.Name,
		Avatar:       req.Avatar,
		Introduction: req.Introduction,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update user: %v", err)
		return nil, errorx.Unknown
	}

	return &model.UpdateUserResponse{}, nil
}

func (d *userDomain) Follow(
	ctx context.Context, req *model.FollowRequest,
) (*model.FollowResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	if req.UserID == userID {
		return nil, errorx.New(errorx.BadRequest, "Cannot follow yourself")
	}

	if _, err := d.userRepo.GetByID(ctx, req.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	if _, err := d.followRepo.Get(ctx, userID, req.UserID); err == nil {
		return nil, errorx.New(errorx.AlreadyExists, "Already followed this user")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get follow edge: %v", err)
		return nil, errorx.Unknown
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	err := d.followRepo.Create(ctx, &entity.Follow{
		CreatedAt:   time.Now(),
		FollowerID:  userID,
		FollowingID: req.UserID,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create follow edge: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.userRepo.AddFollowingNum(ctx, userID, 1); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update following counter: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.userRepo.AddFollowerNum(ctx, req.UserID, 1); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update follower counter: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.questLedger.Award(ctx, req.UserID, entity.QuestFollowed); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot award followed quest: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)
	return &model.FollowResponse{}, nil
}

func (d *userDomain) Unfollow(
	ctx context.Context, req *model.UnfollowRequest,
) (*model.UnfollowResponse, error) {
	userID := xcontext.RequestUserID(ctx)

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.followRepo.Delete(ctx, userID, req.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not followed this user")
		}

		xcontext.Logger(ctx).Errorf("Cannot delete follow edge: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.userRepo.AddFollowingNum(ctx, userID, -1); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update following counter: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.userRepo.AddFollowerNum(ctx, req.UserID, -1); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update follower counter: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)
	return &model.UnfollowResponse{}, nil
}

func (d *userDomain) GetFollowings(
	ctx context.Context, req *model.GetFollowingsRequest,
) (*model.GetFollowingsResponse, error) {
	userID := req.UserID
	if userID == "" {
		userID = xcontext.RequestUserID(ctx)
	}

	offset, limit, err := normalizePagination(ctx, req.Offset, req.Limit)
	if err != nil {
		return nil, err
	}

	follows, err := d.followRepo.GetFollowings(ctx, userID, offset, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get followings: %v", err)
		return nil, errorx.Unknown
	}

	ids := []string{}
	for _, f := range follows {
		ids = append(ids, f.FollowingID)
	}

	users, err := d.shortUsers(ctx, ids)
	if err != nil {
		return nil, err
	}

	return &model.GetFollowingsResponse{Users: users}, nil
}

func (d *userDomain) GetFollowers(
	ctx context.Context, req *model.GetFollowersRequest,
) (*model.GetFollowersResponse, error) {
	userID := req.UserID
	if userID == "" {
		userID = xcontext.RequestUserID(ctx)
	}

	offset, limit, err := normalizePagination(ctx, req.Offset, req.Limit)
	if err != nil {
		return nil, err
	}

	follows, err := d.followRepo.GetFollowers(ctx, userID, offset, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get followers: %v", err)
		return nil, errorx.Unknown
	}

	ids := []string{}
	for _, f := range follows {
		ids = append(ids, f.FollowerID)
	}

	users, err := d.shortUsers(ctx, ids)
	if err != nil {
		return nil, err
	}

	return &model.GetFollowersResponse{Users: users}, nil
}

func (d *userDomain) Block(
	ctx context.Context, req *model.BlockRequest,
) (*model.BlockResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	if req.UserID == userID {
		return nil, errorx.New(errorx.BadRequest, "Cannot block yourself")
	}

	if _, err := d.userRepo.GetByID(ctx, req.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	if _, err := d.followRepo.GetBlock(ctx, userID, req.UserID); err == nil {
		return nil, errorx.New(errorx.AlreadyExists, "Already blocked this user")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get block edge: %v", err)
		return nil, errorx.Unknown
	}

	err := d.followRepo.CreateBlock(ctx, &entity.Blacklist{
		CreatedAt: time.Now(),
		UserID:    userID,
		TargetID:  req.UserID,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create block edge: %v", err)
		return nil, errorx.Unknown
	}

	return &model.BlockResponse{}, nil
}

func (d *userDomain) Unblock(
	ctx context.Context, req *model.UnblockRequest,
) (*model.UnblockResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	if err := d.followRepo.DeleteBlock(ctx, userID, req.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not blocked this user")
		}

		xcontext.Logger(ctx).Errorf("Cannot delete block edge: %v", err)
		return nil, errorx.Unknown
	}

	return &model.UnblockResponse{}, nil
}

func (d *userDomain) GetBlocks(
	ctx context.Context, req *model.GetBlocksRequest,
) (*model.GetBlocksResponse, error) {
	userID := xcontext.RequestUserID(ctx)

	offset, limit, err := normalizePagination(ctx, req.Offset, req.Limit)
	if err != nil {
		return nil, err
	}

	blocks, err := d.followRepo.GetBlocks(ctx, userID, offset, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get blocks: %v", err)
		return nil, errorx.Unknown
	}

	ids := []string{}
	for _, b := range blocks {
		ids = append(ids, b.TargetID)
	}

	users, err := d.shortUsers(ctx, ids)
	if err != nil {
		return nil, err
	}

	return &model.GetBlocksResponse{Users: users}, nil
}

func (d *userDomain) Sign(
	ctx context.Context, req *model.SignRequest,
) (*model.SignResponse, error) {
	userID := xcontext.RequestUserID(ctx)

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.questLedger.Award(ctx, userID, entity.QuestSign); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot award sign quest: %v", err)
		return nil, errorx.Unknown
	}

	user, err := d.userRepo.GetByID(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)
	return &model.SignResponse{Experience: user.Experience}, nil
}

func (d *userDomain) shortUsers(ctx context.Context, ids []string) ([]model.ShortUser, error) {
	if len(ids) == 0 {
		return []model.ShortUser{}, nil
	}

	users, err := d.userRepo.GetByIDs(ctx, ids)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get users: %v", err)
		return nil, errorx.Unknown
	}

	byID := map[string]entity.User{}
	for _, u := range users {
		byID[u.ID] = u
	}

	result := []model.ShortUser{}
	for _, id := range ids {
		if u, ok := byID[id]; ok {
			result = append(result, model.ConvertShortUser(&u))
		}
	}

	return result, nil
}
