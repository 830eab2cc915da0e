package xcontext

import (
	"context"
	"net/http"

	"github.com/forumix/backend/config"
	"github.com/forumix/backend/internal/model"
	"github.com/forumix/backend/pkg/authenticator"
	"github.com/forumix/backend/pkg/logger"
	"gorm.io/gorm"
)

type (
	dbKey          struct{}
	txKey          struct{}
	loggerKey      struct{}
	configsKey     struct{}
	tokenEngineKey struct{}
	userIDKey      struct{}
	httpRequestKey struct{}
	httpWriterKey  struct{}
	errorKey       struct{}
	responseKey    struct{}
)

func WithDB(ctx context.Context, db *gorm.DB) context.Context {
	return context.WithValue(ctx, dbKey{}, db)
}

// DB returns the database handle of this context. If a transaction was opened
// by WithDBTransaction, the transaction takes precedence.
func DB(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*txHolder); ok && tx.db != nil {
		return tx.db
	}

	return ctx.Value(dbKey{}).(*gorm.DB)
}

type txHolder struct {
	db   *gorm.DB
	done bool
}

// WithDBTransaction begins a database transaction and attaches it to the
// returned context. Repositories called with that context operate on the
// transaction until WithCommitDBTransaction or WithRollbackDBTransaction.
func WithDBTransaction(ctx context.Context) context.Context {
	return context.WithValue(ctx, txKey{}, &txHolder{db: DB(ctx).Begin()})
}

// WithCommitDBTransaction commits the transaction attached to ctx. It is a
// no-op if no transaction exists or it already completed.
func WithCommitDBTransaction(ctx context.Context) {
	if tx, ok := ctx.Value(txKey{}).(*txHolder); ok && !tx.done {
		tx.db.Commit()
		tx.done = true
	}
}

// WithRollbackDBTransaction rollbacks the transaction attached to ctx. It is
// a no-op after WithCommitDBTransaction, so it is safe to defer.
func WithRollbackDBTransaction(ctx context.Context) {
	if tx, ok := ctx.Value(txKey{}).(*txHolder); ok && !tx.done {
		tx.db.Rollback()
		tx.done = true
	}
}

func WithLogger(ctx context.Context, l logger.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

func Logger(ctx context.Context) logger.Logger {
	return ctx.Value(loggerKey{}).(logger.Logger)
}

func WithConfigs(ctx context.Context, cfg config.Configs) context.Context {
	return context.WithValue(ctx, configsKey{}, cfg)
}

func Configs(ctx context.Context) config.Configs {
	return ctx.Value(configsKey{}).(config.Configs)
}

func WithTokenEngine(ctx context.Context, engine authenticator.TokenEngine[model.AccessToken]) context.Context {
	return context.WithValue(ctx, tokenEngineKey{}, engine)
}

func TokenEngine(ctx context.Context) authenticator.TokenEngine[model.AccessToken] {
	return ctx.Value(tokenEngineKey{}).(authenticator.TokenEngine[model.AccessToken])
}

func WithRequestUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey{}, userID)
}

// RequestUserID returns the authenticated user of this request, or an empty
// string for an anonymous request.
func RequestUserID(ctx context.Context) string {
	if id, ok := ctx.Value(userIDKey{}).(string); ok {
		return id
	}

	return ""
}

func WithHTTPRequest(ctx context.Context, r *http.Request) context.Context {
	return context.WithValue(ctx, httpRequestKey{}, r)
}

func HTTPRequest(ctx context.Context) *http.Request {
	return ctx.Value(httpRequestKey{}).(*http.Request)
}

func WithHTTPWriter(ctx context.Context, w http.ResponseWriter) context.Context {
	return context.WithValue(ctx, httpWriterKey{}, w)
}

func HTTPWriter(ctx context.Context) http.ResponseWriter {
	return ctx.Value(httpWriterKey{}).(http.ResponseWriter)
}

func WithError(ctx context.Context, err error) context.Context {
	return context.WithValue(ctx, errorKey{}, err)
}

// Error returns the error the handler of this request finished with, or nil.
// It is only available in closers.
func Error(ctx context.Context) error {
	if err, ok := ctx.Value(errorKey{}).(error); ok {
		return err
	}

	return nil
}

func WithResponse(ctx context.Context, resp any) context.Context {
	return context.WithValue(ctx, responseKey{}, resp)
}

// Response returns the response object of this request. It is only available
// in after middlewares and closers.
func Response(ctx context.Context) any {
	return ctx.Value(responseKey{})
}
