// Package auth resolves caller identity. Credential issuance (signup,
// login) is GoTrue's job; this package only verifies bearer tokens.
package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// GuestID is the reserved sentinel identity that owns anonymously created
// resources when guest mode is enabled.
var GuestID = uuid.Nil

// Identity is the resolved caller of a request.
type Identity struct {
	ID    uuid.UUID
	Email string
}

// Guest reports whether this identity is the guest sentinel.
func (i Identity) Guest() bool {
	return i.ID == GuestID
}

// GuestIdentity returns the sentinel identity.
func GuestIdentity() Identity {
	return Identity{ID: GuestID}
}

var (
	// ErrUnauthenticated means the token was absent, malformed, or rejected
	// by the identity provider.
	ErrUnauthenticated = errors.New("missing or invalid credentials")
	// ErrTimeout means the identity provider did not answer within the
	// configured bound. Callers may retry.
	ErrTimeout = errors.New("identity provider timed out")
)

// Verifier turns a bearer token into an Identity.
type Verifier interface {
	Verify(ctx context.Context, token string) (Identity, error)
}
