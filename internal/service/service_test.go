package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/promptvault/promptvault/internal/auth"
	"github.com/promptvault/promptvault/internal/domain"
	"github.com/promptvault/promptvault/internal/store/sqlitestore"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	backend, err := sqlitestore.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { backend.Close() })
	return New(backend, nil)
}

func testUser() auth.Identity {
	return auth.Identity{ID: uuid.New(), Email: "owner@example.com"}
}

func guestCaller() auth.Identity {
	return auth.GuestIdentity()
}

func mustCreatePrompt(t *testing.T, s *Service, caller auth.Identity, in CreatePromptInput) *domain.Prompt {
	t.Helper()
	p, err := s.CreatePrompt(context.Background(), caller, in)
	require.NoError(t, err)
	return p
}

func mustCreateSkill(t *testing.T, s *Service, caller auth.Identity, in CreateSkillInput) *domain.Skill {
	t.Helper()
	sk, err := s.CreateSkill(context.Background(), caller, in)
	require.NoError(t, err)
	return sk
}

// seedSystemCategory inserts a platform category directly, bypassing the
// service (which never creates system rows).
func seedSystemCategory(t *testing.T, s *Service, typ domain.CategoryType) *domain.Category {
	t.Helper()
	c, err := s.store.Categories().Insert(context.Background(), &domain.Category{
		Name:     "Built-in",
		Type:     typ,
		Color:    "#888888",
		UserID:   auth.GuestID,
		IsSystem: true,
	})
	require.NoError(t, err)
	return c
}

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }
