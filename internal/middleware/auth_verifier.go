package middleware

import (
	"context"
	"strings"

	"github.com/forumix/backend/pkg/errorx"
	"github.com/forumix/backend/pkg/router"
	"github.com/forumix/backend/pkg/xcontext"
)

// AuthVerifier resolves the requesting user from the access token. With the
// optional flag a missing token leaves the request anonymous instead of
// rejecting it.
type AuthVerifier struct {
	useAccessToken bool
	optional       bool
}

func NewAuthVerifier() *AuthVerifier {
	return &AuthVerifier{}
}

func (v *AuthVerifier) WithAccessToken() *AuthVerifier {
	v.useAccessToken = true
	return v
}

func (v *AuthVerifier) WithOptional() *AuthVerifier {
	v.optional = true
	return v
}

func (v *AuthVerifier) Middleware() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		if !v.useAccessToken {
			return ctx, nil
		}

		token := extractToken(ctx)
		if token == "" {
			if v.optional {
				return ctx, nil
			}

			return nil, errorx.New(errorx.Unauthenticated, "You need to authenticate before")
		}

		accessToken, err := xcontext.TokenEngine(ctx).Verify(token)
		if err != nil {
			xcontext.Logger(ctx).Debugf("Cannot verify access token: %v", err)
			return nil, errorx.New(errorx.TokenExpired, "Token is expired or invalid")
		}

		return xcontext.WithRequestUserID(ctx, accessToken.ID), nil
	}
}

func extractToken(ctx context.Context) string {
	req := xcontext.HTTPRequest(ctx)
	if req == nil {
		return ""
	}

	authorization := req.Header.Get("Authorization")
	if prefix := "Bearer "; strings.HasPrefix(authorization, prefix) {
		return authorization[len(prefix):]
	}

	cookie, err := req.Cookie(xcontext.Configs(ctx).Auth.AccessTokenName)
	if err != nil {
		return ""
	}

	return cookie.Value
}
