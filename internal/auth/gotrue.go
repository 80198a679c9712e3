package auth

import (
	"context"
	"time"

	"github.com/supabase-community/gotrue-go/types"
	supabase "github.com/supabase-community/supabase-go"
)

// DefaultTimeout bounds calls to the identity provider. A verification
// still unfinished at the deadline fails with ErrTimeout instead of
// stalling the request.
const DefaultTimeout = 15 * time.Second

// GoTrueVerifier validates bearer tokens against a Supabase GoTrue server.
type GoTrueVerifier struct {
	client  *supabase.Client
	timeout time.Duration
}

// NewGoTrueVerifier builds a verifier from Supabase project credentials.
// A non-positive timeout falls back to DefaultTimeout.
func NewGoTrueVerifier(url, anonKey string, timeout time.Duration) (*GoTrueVerifier, error) {
	client, err := supabase.NewClient(url, anonKey, nil)
	if err != nil {
		return nil, err
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &GoTrueVerifier{client: client, timeout: timeout}, nil
}

// Verify resolves the user behind a bearer token. The GoTrue SDK call is
// not context-aware, so the deadline is enforced by racing it against a
// timer; a late SDK response is discarded.
func (v *GoTrueVerifier) Verify(ctx context.Context, token string) (Identity, error) {
	if token == "" {
		return Identity{}, ErrUnauthenticated
	}

	type result struct {
		user *types.UserResponse
		err  error
	}
	done := make(chan result, 1)
	go func() {
		user, err := v.client.Auth.WithToken(token).GetUser()
		done <- result{user: user, err: err}
	}()

	timer := time.NewTimer(v.timeout)
	defer timer.Stop()

	select {
	case res := <-done:
		if res.err != nil || res.user == nil {
			return Identity{}, ErrUnauthenticated
		}
		return Identity{ID: res.user.ID, Email: res.user.Email}, nil
	case <-timer.C:
		return Identity{}, ErrTimeout
	case <-ctx.Done():
		return Identity{}, ctx.Err()
	}
}
