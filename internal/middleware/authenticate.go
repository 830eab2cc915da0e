package middleware

import (
	"context"

	"github.com/forumix/backend/pkg/errorx"
	"github.com/forumix/backend/pkg/router"
	"github.com/forumix/backend/pkg/xcontext"
)

// MustAuthenticate rejects anonymous requests. It runs after an AuthVerifier
// already resolved the user, so it only checks presence.
func MustAuthenticate() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		if xcontext.RequestUserID(ctx) == "" {
			return nil, errorx.New(errorx.Unauthenticated, "You need to authenticate before")
		}

		return ctx, nil
	}
}
