// Package idempotency carries the confirmation run key through a context.
// The key identifies one workflow run across redeliveries, so step marks
// written under it survive a retry of the same command.
package idempotency

import (
	"context"

	"github.com/google/uuid"
)

type ctxKey struct{}

// WithKey attaches a run key to the context.
func WithKey(ctx context.Context, key string) context.Context {
	return context.WithValue(ctx, ctxKey{}, key)
}

// GetKey returns the run key from the context, or a fresh one when none
// was set. A fresh key means redeliveries of the message cannot be
// deduplicated against earlier runs.
func GetKey(ctx context.Context) string {
	key, ok := ctx.Value(ctxKey{}).(string)
	if !ok {
		return uuid.NewString()
	}

	return key
}
