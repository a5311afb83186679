package domain

import "context"

type accountIDKey struct{}

// WithAccountID attaches the authenticated account id to ctx.
func WithAccountID(ctx context.Context, id int64) context.Context {
	return context.WithValue(ctx, accountIDKey{}, id)
}

// AccountIDFrom returns the authenticated account id, if any.
func AccountIDFrom(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(accountIDKey{}).(int64)
	return id, ok
}
