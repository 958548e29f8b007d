// Package reqid carries the short request id used to correlate log lines
// and audit entries of one request.
package reqid

import (
	"context"

	"github.com/google/uuid"
)

type ctxKey struct{}

// New returns the first 8 hex characters of a random UUID.
func New() string {
	return uuid.NewString()[:8]
}

func WithContext(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

func FromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(ctxKey{}).(string)
	return id, ok && id != ""
}
