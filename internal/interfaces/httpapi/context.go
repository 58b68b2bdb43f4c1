package httpapi

import (
	"context"

	"github.com/riskibarqy/gutbuster/internal/domain/user"
)

type contextKey string

const callerContextKey contextKey = "caller"

func withCaller(ctx context.Context, u user.User) context.Context {
	return context.WithValue(ctx, callerContextKey, u)
}

func callerFromContext(ctx context.Context) (user.User, bool) {
	u, ok := ctx.Value(callerContextKey).(user.User)
	return u, ok
}
