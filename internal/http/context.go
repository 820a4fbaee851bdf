package http

import (
	"context"
	"log/slog"

	"github.com/example/hr-assistant/internal/application"
	"github.com/example/hr-assistant/internal/logging"
)

type contextKey string

const (
	principalContextKey contextKey = "principal"
	personIDContextKey  contextKey = "person_id"
)

// ContextWithPrincipal returns a derived context containing the authenticated principal.
func ContextWithPrincipal(ctx context.Context, principal application.Principal) context.Context {
	return context.WithValue(ctx, principalContextKey, principal)
}

// PrincipalFromContext extracts the authenticated principal from context if available.
func PrincipalFromContext(ctx context.Context) (application.Principal, bool) {
	principal, ok := ctx.Value(principalContextKey).(application.Principal)
	return principal, ok
}

// ContextWithPersonID injects the person identifier resolved from the request path.
func ContextWithPersonID(ctx context.Context, personID string) context.Context {
	return context.WithValue(ctx, personIDContextKey, personID)
}

// PersonIDFromContext extracts a person identifier previously associated with the context.
func PersonIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(personIDContextKey).(string)
	return id, ok
}

// ContextWithLogger attaches a request scoped logger to the context.
func ContextWithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return logging.ContextWithLogger(ctx, logger)
}

// LoggerFromContext extracts the request scoped logger, if any.
func LoggerFromContext(ctx context.Context) *slog.Logger {
	return logging.FromContext(ctx)
}
