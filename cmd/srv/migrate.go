package main

import (
	"context"

	"github.com/forumix/backend/migration"
	"github.com/forumix/backend/pkg/xcontext"
	"github.com/urfave/cli/v2"
)

func (s *srv) migrate(ct *cli.Context) error {
	if err := server.loadConfig(ct); err != nil {
		return err
	}

	server.loadLogger()
	if err := server.loadDatabase(); err != nil {
		return err
	}

	ctx := context.Background()
	ctx = xcontext.WithConfigs(ctx, *s.configs)
	ctx = xcontext.WithLogger(ctx, s.logger)
	ctx = xcontext.WithDB(ctx, s.db)

	return migration.AutoMigrate(ctx)
}
