package testutil

import (
	"context"
	"time"

	"github.com/forumix/backend/config"
	"github.com/forumix/backend/internal/model"
	"github.com/forumix/backend/migration"
	"github.com/forumix/backend/pkg/authenticator"
	"github.com/forumix/backend/pkg/logger"
	"github.com/forumix/backend/pkg/xcontext"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func MockContext() context.Context {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		panic(err)
	}

	cfg := config.Configs{
		Env: "test",
		ApiServer: config.ServerConfigs{
			DefaultLimit: 10,
			MaxLimit:     50,
		},
		Auth: config.AuthConfigs{
			AccessTokenName: "access_token",
		},
		Token: config.TokenConfigs{
			Secret:     "secret",
			Expiration: time.Minute,
		},
		Content: config.ContentConfigs{
			SummaryLength:    100,
			MaxPollChoices:   10,
			TrendingSize:     10,
			MaxContentLength: 10000,
		},
	}

	ctx := context.Background()
	ctx = xcontext.WithConfigs(ctx, cfg)
	ctx = xcontext.WithLogger(ctx, logger.NewLogger(logger.SILENCE))
	ctx = xcontext.WithTokenEngine(ctx, authenticator.NewTokenEngine[model.AccessToken](cfg.Token))
	ctx = xcontext.WithDB(ctx, db)

	if err := migration.AutoMigrate(ctx); err != nil {
		panic(err)
	}

	return ctx
}

// MockContextWithUserID authenticates ctx as the given user. A nil ctx
// starts a fresh database.
func MockContextWithUserID(ctx context.Context, userID string) context.Context {
	if ctx == nil {
		ctx = MockContext()
	}

	return xcontext.WithRequestUserID(ctx, userID)
}
