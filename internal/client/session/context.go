package session

import (
	"context"
	"errors"
)

// ErrConfiguration is returned when the session is looked up from a context
// that was never given one.
var ErrConfiguration = errors.New("session: must be used within the session scope")

type ctxKey struct{}

// WithSession returns a child context carrying s.
func WithSession(ctx context.Context, s *Store) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

func FromContext(ctx context.Context) (*Store, error) {
	s, ok := ctx.Value(ctxKey{}).(*Store)
	if !ok || s == nil {
		return nil, ErrConfiguration
	}
	return s, nil
}

// MustFromContext is FromContext that panics on misuse.
func MustFromContext(ctx context.Context) *Store {
	s, err := FromContext(ctx)
	if err != nil {
		panic(err)
	}
	return s
}
