package domain

import (
	"context"

	"github.com/forumix/backend/pkg/errorx"
	"github.com/forumix/backend/pkg/xcontext"
)

// normalizePagination applies the configured default and maximum page size.
func normalizePagination(ctx context.Context, offset, limit int) (int, int, error) {
	apiCfg := xcontext.Configs(ctx).ApiServer
	if limit == 0 {
		limit = apiCfg.DefaultLimit
	}

	if offset < 0 {
		return 0, 0, errorx.New(errorx.BadRequest, "Not allow negative offset")
	}

	if limit < 0 {
		return 0, 0, errorx.New(errorx.BadRequest, "Limit must be positive")
	}

	if limit > apiCfg.MaxLimit {
		return 0, 0, errorx.New(errorx.BadRequest, "Exceed the maximum of limit (%d)", apiCfg.MaxLimit)
	}

	return offset, limit, nil
}
