package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promptvault/promptvault/internal/domain"
)

func TestCreateSkillValidation(t *testing.T) {
	s := newTestService(t)
	owner := testUser()
	ctx := context.Background()

	_, err := s.CreateSkill(ctx, owner, CreateSkillInput{Title: "T", Description: "", Content: "C"})
	assert.True(t, IsValidation(err))

	// Parameter entries without a name are rejected before persistence.
	_, err = s.CreateSkill(ctx, owner, CreateSkillInput{
		Title: "T", Description: "D", Content: "C",
		Parameters: []domain.SkillParameter{{Name: "", Type: "string"}},
	})
	assert.True(t, IsValidation(err))

	_, err = s.CreateSkill(ctx, owner, CreateSkillInput{
		Title: "T", Description: "D", Content: "C",
		Parameters: []domain.SkillParameter{{Name: "depth", Type: "float"}},
	})
	assert.True(t, IsValidation(err))
}

func TestSkillLifecycle(t *testing.T) {
	s := newTestService(t)
	owner := testUser()
	ctx := context.Background()

	note := "when summarizing research"
	sk := mustCreateSkill(t, s, owner, CreateSkillInput{
		Title:       "Summarizer",
		Description: "Condenses documents",
		Content:     "Read, extract, compress.",
		Parameters: []domain.SkillParameter{
			{Name: "length", Type: "number", Description: "target words", Required: true},
		},
		Examples: []domain.SkillExample{
			{Input: map[string]any{"length": 100}, Output: "short text", Description: &note},
		},
	})
	assert.Equal(t, []string{}, sk.Tags)
	require.Len(t, sk.Parameters, 1)
	require.Len(t, sk.Examples, 1)

	updated, err := s.UpdateSkill(ctx, owner, sk.ID, UpdateSkillInput{
		IsFavorite: boolPtr(true),
	})
	require.NoError(t, err)
	assert.True(t, updated.IsFavorite)
	assert.Equal(t, "Summarizer", updated.Title)
	assert.Len(t, updated.Parameters, 1)

	// Updating parameters re-validates them.
	_, err = s.UpdateSkill(ctx, owner, sk.ID, UpdateSkillInput{
		Parameters: &[]domain.SkillParameter{{Name: "", Type: "string"}},
	})
	assert.True(t, IsValidation(err))

	require.NoError(t, s.DeleteSkill(ctx, owner, sk.ID))
	require.NoError(t, s.DeleteSkill(ctx, owner, sk.ID), "delete is idempotent")
}

func TestPublicSkillRead(t *testing.T) {
	s := newTestService(t)
	owner := testUser()
	ctx := context.Background()

	private := mustCreateSkill(t, s, owner, CreateSkillInput{Title: "S", Description: "D", Content: "C"})
	_, err := s.GetPublicSkill(ctx, private.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	public := mustCreateSkill(t, s, owner, CreateSkillInput{
		Title: "S2", Description: "D", Content: "C", IsPublic: true,
	})
	got, err := s.GetPublicSkill(ctx, public.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.UsageCount)
}
