package auth

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuestIdentity(t *testing.T) {
	g := GuestIdentity()
	assert.True(t, g.Guest())
	assert.Equal(t, "00000000-0000-0000-0000-000000000000", g.ID.String())

	other := Identity{ID: uuid.New()}
	assert.False(t, other.Guest())
}

func TestStaticVerifier(t *testing.T) {
	alice := Identity{ID: uuid.New(), Email: "alice@example.com"}
	v := NewStaticVerifier(map[string]Identity{"token-a": alice})

	got, err := v.Verify(context.Background(), "token-a")
	require.NoError(t, err)
	assert.Equal(t, alice, got)

	_, err = v.Verify(context.Background(), "bogus")
	assert.ErrorIs(t, err, ErrUnauthenticated)
}
