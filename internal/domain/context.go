package domain

import (
	"context"
	"log/slog"
)

type contextKey string

const loggerContextKey contextKey = "logger"

func ContextWithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerContextKey, logger)
}

func LoggerFromContext(ctx context.Context) *slog.Logger {
	logger := ctx.Value(loggerContextKey)
	if logger == nil {
		logger = slog.Default()
	}

	return logger.(*slog.Logger)
}

const userContextKey contextKey = "user"

// ContextWithUserID attaches the authenticated user's ID to the context.
// A user ID of 0 means the request is anonymous.
func ContextWithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, userContextKey, userID)
}

func UserIDFromContext(ctx context.Context) int64 {
	userID := ctx.Value(userContextKey)
	if userID == nil {
		return 0
	}
	return userID.(int64)
}

// AuthMethod identifies how a request was authenticated.
type AuthMethod string

const (
	AuthMethodAuth0       AuthMethod = "auth0"
	AuthMethodAccessToken AuthMethod = "access_token"
)

const authMethodContextKey contextKey = "auth_method"

func ContextWithAuthMethod(ctx context.Context, method AuthMethod) context.Context {
	return context.WithValue(ctx, authMethodContextKey, method)
}

func AuthMethodFromContext(ctx context.Context) AuthMethod {
	method := ctx.Value(authMethodContextKey)
	if method == nil {
		return ""
	}
	return method.(AuthMethod)
}
