package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promptvault/promptvault/internal/auth"
	"github.com/promptvault/promptvault/internal/domain"
)

func TestTagVocabularyIsUnionOfSources(t *testing.T) {
	s := newTestService(t)
	owner := testUser()
	ctx := context.Background()

	_, err := s.CreateTag(ctx, owner, "managed")
	require.NoError(t, err)

	mustCreatePrompt(t, s, owner, CreatePromptInput{Title: "T", Content: "C", Tags: []string{"embedded", "shared"}})
	mustCreateSkill(t, s, owner, CreateSkillInput{
		Title: "S", Description: "D", Content: "C", Tags: []string{"skill-only", "shared"},
	})

	all, err := s.ListTags(ctx, "")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"managed", "embedded", "shared", "skill-only"}, all)

	promptTags, err := s.ListTags(ctx, domain.CategoryPrompt)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"managed", "embedded", "shared"}, promptTags)

	skillTags, err := s.ListTags(ctx, domain.CategorySkill)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"managed", "skill-only", "shared"}, skillTags)
}

func TestCreateTagRejectsDuplicatesAndBlanks(t *testing.T) {
	s := newTestService(t)
	owner := testUser()
	ctx := context.Background()

	_, err := s.CreateTag(ctx, owner, "  go  ")
	require.NoError(t, err)

	_, err = s.CreateTag(ctx, owner, "go")
	assert.True(t, IsValidation(err))

	_, err = s.CreateTag(ctx, owner, "   ")
	assert.True(t, IsValidation(err))
}

func TestDeleteTagScrubsAllRecords(t *testing.T) {
	s := newTestService(t)
	owner := testUser()
	other := testUser()
	ctx := context.Background()

	_, err := s.CreateTag(ctx, owner, "doomed")
	require.NoError(t, err)

	p1 := mustCreatePrompt(t, s, owner, CreatePromptInput{Title: "P1", Content: "C", Tags: []string{"doomed", "keep"}})
	p2 := mustCreatePrompt(t, s, other, CreatePromptInput{Title: "P2", Content: "C", Tags: []string{"doomed"}})
	sk := mustCreateSkill(t, s, other, CreateSkillInput{
		Title: "S1", Description: "D", Content: "C", Tags: []string{"keep", "doomed"},
	})

	result, err := s.DeleteTag(ctx, owner, "doomed")
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, 2, result.PromptsScrubbed)
	assert.Equal(t, 1, result.SkillsScrubbed)
	assert.Empty(t, result.Errors)

	// No record of any owner still carries the tag.
	got, err := s.GetPrompt(ctx, owner, p1.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"keep"}, got.Tags)

	got2, err := s.GetPrompt(ctx, other, p2.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{}, got2.Tags)

	gotSkill, err := s.GetSkill(ctx, other, sk.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"keep"}, gotSkill.Tags)

	// Gone from the managed vocabulary, and a second delete is a 404.
	all, err := s.ListTags(ctx, "")
	require.NoError(t, err)
	assert.NotContains(t, all, "doomed")

	_, err = s.DeleteTag(ctx, owner, "doomed")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSystemTagCannotBeDeleted(t *testing.T) {
	s := newTestService(t)
	owner := testUser()
	ctx := context.Background()

	_, err := s.store.Tags().Insert(ctx, &domain.Tag{
		Name: "official", UserID: auth.GuestID, IsSystem: true,
	})
	require.NoError(t, err)

	_, err = s.DeleteTag(ctx, owner, "official")
	assert.ErrorIs(t, err, ErrForbidden)

	all, err := s.ListTags(ctx, "")
	require.NoError(t, err)
	assert.Contains(t, all, "official")
}
