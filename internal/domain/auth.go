package domain

import (
	"context"
	"errors"

	"github.com/forumix/backend/internal/entity"
	"github.com/forumix/backend/internal/model"
	"github.com/forumix/backend/internal/repository"
	"github.com/forumix/backend/pkg/crypto"
	"github.com/forumix/backend/pkg/errorx"
	"github.com/forumix/backend/pkg/xcontext"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AuthDomain interface {
	Register(ctx context.Context, req *model.RegisterRequest) (*model.RegisterResponse, error)
	Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error)
}

type authDomain struct {
	userRepo    repository.UserRepository
	settingRepo repository.MessageSettingRepository
}

func NewAuthDomain(
	userRepo repository.UserRepository,
	settingRepo repository.MessageSettingRepository,
) *authDomain {
	return &authDomain{userRepo: userRepo, settingRepo: settingRepo}
}

func (d *authDomain) Register(
	ctx context.Context, req *model.RegisterRequest,
) (*model.RegisterResponse, error) {
	if req.Name == "" || req.Phone == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty name or phone")
	}

	if len(req.Password) < 8 {
		return nil, errorx.New(errorx.BadRequest, "Password must be at least 8 characters")
	}

	if _, err := d.userRepo.GetByName(ctx, req.Name); err == nil {
		return nil, errorx.New(errorx.AlreadyExists, "Name is already taken")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get user by name: %v", err)
		return nil, errorx.Unknown
	}

	if _, err := d.userRepo.GetByPhone(ctx, req.Phone); err == nil {
		return nil, errorx.New(errorx.AlreadyExists, "Phone is already registered")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get user by phone: %v", err)
		return nil, errorx.Unknown
	}

	hashed, err := crypto.HashPassword(req.Password)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot hash password: %v", err)
		return nil, errorx.Unknown
	}

	user := &entity.User{
		Base:           entity.Base{ID: uuid.NewString()},
		Name:           req.Name,
		Phone:          req.Phone,
		HashedPassword: hashed,
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.userRepo.Create(ctx, user); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create user: %v", err)
		return nil, errorx.Unknown
	}

	setting := &entity.MessageSetting{
		UserID:  user.ID,
		Reply:   entity.PreferenceAlert,
		At:      entity.PreferenceAlert,
		Like:    entity.PreferenceAlert,
		Dynamic: entity.PreferenceAlert,
		System:  entity.PreferenceAlert,
		Private: entity.PreferenceAlert,
	}
	if err := d.settingRepo.Upsert(ctx, setting); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create message setting: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)
	return &model.RegisterResponse{User: model.ConvertUser(user)}, nil
}

func (d *authDomain) Login(
	ctx context.Context, req *model.LoginRequest,
) (*model.LoginResponse, error) {
	user, err := d.userRepo.GetByPhone(ctx, req.Phone)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.Unauthenticated, "Invalid phone or password")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user by phone: %v", err)
		return nil, errorx.Unknown
	}

	if !crypto.ComparePassword(user.HashedPassword, req.Password) {
		return nil, errorx.New(errorx.Unauthenticated, "Invalid phone or password")
	}

	token, err := xcontext.TokenEngine(ctx).Generate(user.ID, model.AccessToken{
		ID:   user.ID,
		Name: user.Name,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate access token: %v", err)
		return nil, errorx.Unknown
	}

	return &model.LoginResponse{
		AccessToken: token,
		User:        model.ConvertUser(user),
	}, nil
}
