package router

import (
	"context"
	"net/http"

	"github.com/forumix/backend/config"
	"github.com/forumix/backend/internal/model"
	"github.com/forumix/backend/pkg/authenticator"
	"github.com/forumix/backend/pkg/logger"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// HandlerFunc handles a single API. The request object is bound from query
// parameters for GET and from the JSON body for POST.
type HandlerFunc[Request, Response any] func(ctx context.Context, req *Request) (*Response, error)

// MiddlewareFunc runs before the handler. It can replace the request context
// by returning a non-nil one, or abort the request by returning an error.
type MiddlewareFunc func(ctx context.Context) (context.Context, error)

// AfterFunc runs after the handler succeeded, with the response available via
// xcontext.Response.
type AfterFunc func(ctx context.Context) error

// CloserFunc always runs at the end of a request, with the handler error (if
// any) available via xcontext.Error.
type CloserFunc func(ctx context.Context)

type Router struct {
	engine *gin.Engine
	inner  gin.IRouter

	db          *gorm.DB
	configs     config.Configs
	logger      logger.Logger
	tokenEngine authenticator.TokenEngine[model.AccessToken]

	befores []MiddlewareFunc
	afters  []AfterFunc
	closers []CloserFunc
}

func New(db *gorm.DB, cfg config.Configs, logger logger.Logger) *Router {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	return &Router{
		engine:      engine,
		inner:       engine,
		db:          db,
		configs:     cfg,
		logger:      logger,
		tokenEngine: authenticator.NewTokenEngine[model.AccessToken](cfg.Token),
	}
}

// Branch returns a router sharing the same underlying engine but with an
// independent middleware chain. Middlewares registered on the branch do not
// affect the parent.
func (r *Router) Branch() *Router {
	clone := *r
	clone.befores = append([]MiddlewareFunc{}, r.befores...)
	clone.afters = append([]AfterFunc{}, r.afters...)
	clone.closers = append([]CloserFunc{}, r.closers...)
	return &clone
}

func (r *Router) Before(middleware MiddlewareFunc) {
	r.befores = append(r.befores, middleware)
}

func (r *Router) After(after AfterFunc) {
	r.afters = append(r.afters, after)
}

func (r *Router) AddCloser(closer CloserFunc) {
	r.closers = append(r.closers, closer)
}

func (r *Router) Static(relativePath, root string) {
	r.inner.Static(relativePath, root)
}

func (r *Router) Handler() http.Handler {
	return r.engine
}

func GET[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.inner.GET(pattern, wrapHandler(r, http.MethodGet, handler))
}

func POST[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.inner.POST(pattern, wrapHandler(r, http.MethodPost, handler))
}
