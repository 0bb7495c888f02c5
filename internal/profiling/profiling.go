// Package profiling provides the device fingerprint session used by the
// payments backend for risk scoring. Obtaining a session id is a network
// operation owned by an external profiling provider; this package wraps it
// so that concurrent callers share a single in-flight fetch.
package profiling

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	apperrors "github.com/yoomoney/checkout/internal/errors"
)

// ErrConnectionFailed indicates the profiling provider was unreachable.
// The tokenization coordinator remaps this kind to ErrNetworkUnavailable
// before surfacing it.
var ErrConnectionFailed = errors.New("profiling provider unreachable")

// SessionProvider yields the device profiling session id.
type SessionProvider interface {
	SessionID(ctx context.Context) (string, error)
}

// FetchFunc obtains a fresh session id from the profiling provider.
type FetchFunc func(ctx context.Context) (string, error)

// Service deduplicates concurrent session fetches: while one fetch is in
// flight, further callers wait for its result instead of starting another.
type Service struct {
	fetch   FetchFunc
	timeout time.Duration
	group   singleflight.Group
}

// NewService creates a session service around the given fetch function.
// A zero timeout leaves the caller's context deadline in force.
func NewService(fetch FetchFunc, timeout time.Duration) *Service {
	return &Service{fetch: fetch, timeout: timeout}
}

// SessionID returns a profiling session id, sharing one fetch between
// concurrent callers.
func (s *Service) SessionID(ctx context.Context) (string, error) {
	result, err, _ := s.group.Do("session", func() (any, error) {
		fetchCtx := ctx
		if s.timeout > 0 {
			var cancel context.CancelFunc
			fetchCtx, cancel = context.WithTimeout(ctx, s.timeout)
			defer cancel()
		}
		return s.fetch(fetchCtx)
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", apperrors.Wrap(ErrConnectionFailed, "session fetch timed out")
		}
		return "", err
	}
	return result.(string), nil
}

// LocalFetch generates session ids locally. Used by the sandbox environment
// where no real profiling provider is available.
func LocalFetch(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return uuid.Must(uuid.NewV7()).String(), nil
}
