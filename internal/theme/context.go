package theme

import (
	"context"
	"errors"
)

// ErrContextMissing means theme state was requested outside an active runtime.
var ErrContextMissing = errors.New("theme runtime missing from context: wrap with theme.WithRuntime")

type runtimeKey struct{}

// WithRuntime returns a context carrying rt.
func WithRuntime(ctx context.Context, rt *Runtime) context.Context {
	return context.WithValue(ctx, runtimeKey{}, rt)
}

// FromContext returns the runtime stored by WithRuntime.
func FromContext(ctx context.Context) (*Runtime, error) {
	if ctx == nil {
		return nil, ErrContextMissing
	}
	rt, ok := ctx.Value(runtimeKey{}).(*Runtime)
	if !ok || rt == nil {
		return nil, ErrContextMissing
	}
	return rt, nil
}

// MustFromContext is FromContext for call sites where a missing runtime is a
// programming error.
func MustFromContext(ctx context.Context) *Runtime {
	rt, err := FromContext(ctx)
	if err != nil {
		panic(err)
	}
	return rt
}
