package router

import (
	"context"
	"net/http"

	"github.com/forumix/backend/pkg/errorx"
	"github.com/forumix/backend/pkg/xcontext"
	"github.com/gin-gonic/gin"
)

func wrapHandler[Request, Response any](
	r *Router,
	method string,
	handler HandlerFunc[Request, Response],
) gin.HandlerFunc {
	return func(ginCtx *gin.Context) {
		ctx := xcontext.WithDB(ginCtx.Request.Context(), r.db)
		ctx = xcontext.WithConfigs(ctx, r.configs)
		ctx = xcontext.WithLogger(ctx, r.logger)
		ctx = xcontext.WithTokenEngine(ctx, r.tokenEngine)
		ctx = xcontext.WithHTTPRequest(ctx, ginCtx.Request)
		ctx = xcontext.WithHTTPWriter(ctx, ginCtx.Writer)

		ctx, err := handleRequest(ctx, ginCtx, r, method, handler)
		if err != nil {
			ctx = xcontext.WithError(ctx, err)
			writeJSON(ginCtx, newErrorResponse(err))
		} else if resp := xcontext.Response(ctx); resp != nil {
			writeJSON(ginCtx, newResponse(resp))
		}

		for _, closer := range r.closers {
			closer(ctx)
		}
	}
}

func handleRequest[Request, Response any](
	ctx context.Context,
	ginCtx *gin.Context,
	r *Router,
	method string,
	handler HandlerFunc[Request, Response],
) (context.Context, error) {
	for _, before := range r.befores {
		newCtx, err := before(ctx)
		if err != nil {
			return ctx, err
		}

		if newCtx != nil {
			ctx = newCtx
		}
	}

	var req Request
	var err error
	switch method {
	case http.MethodGet:
		err = ginCtx.ShouldBindQuery(&req)
	default:
		err = ginCtx.ShouldBindJSON(&req)
	}
	if err != nil {
		return ctx, errorx.New(errorx.BadRequest, "Cannot bind the request")
	}

	resp, err := handler(ctx, &req)
	if err != nil {
		return ctx, err
	}

	if resp != nil {
		ctx = xcontext.WithResponse(ctx, resp)
	}

	for _, after := range r.afters {
		if err := after(ctx); err != nil {
			return ctx, err
		}
	}

	return ctx, nil
}
