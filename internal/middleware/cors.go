package middleware

import (
	"context"

	"github.com/forumix/backend/pkg/router"
	"github.com/forumix/backend/pkg/xcontext"
)

func AllowCors() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		req := xcontext.HTTPRequest(ctx)
		writer := xcontext.HTTPWriter(ctx)
		if req == nil || writer == nil {
			return ctx, nil
		}

		if origin := req.Header.Get("Origin"); origin != "" {
			writer.Header().Set("Access-Control-Allow-Origin", "*")
			writer.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE")
			writer.Header().Set("Access-Control-Allow-Headers",
				"Accept, Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization")
		}

		return ctx, nil
	}
}
