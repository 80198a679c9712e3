package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promptvault/promptvault/internal/domain"
)

func TestSystemCategoryRejectsMutation(t *testing.T) {
	s := newTestService(t)
	owner := testUser()
	sys := seedSystemCategory(t, s, domain.CategoryPrompt)

	_, err := s.UpdateCategory(context.Background(), owner, sys.ID, UpdateCategoryInput{Name: strPtr("renamed")})
	assert.ErrorIs(t, err, ErrForbidden)

	err = s.DeleteCategory(context.Background(), owner, sys.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	// Still rejected for the identity recorded as the row owner: the
	// system check runs before ownership.
	guest := guestCaller()
	_, err = s.UpdateCategory(context.Background(), guest, sys.ID, UpdateCategoryInput{Name: strPtr("renamed")})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestCategoryLifecycle(t *testing.T) {
	s := newTestService(t)
	owner := testUser()

	created, err := s.CreateCategory(context.Background(), owner, CreateCategoryInput{
		Name:  "Demo",
		Type:  domain.CategoryPrompt,
		Color: "#3B82F6",
	})
	require.NoError(t, err)
	assert.False(t, created.IsSystem)
	assert.Equal(t, owner.ID, created.UserID)

	updated, err := s.UpdateCategory(context.Background(), owner, created.ID, UpdateCategoryInput{
		Color: strPtr("#FF0000"),
	})
	require.NoError(t, err)
	assert.Equal(t, "#FF0000", updated.Color)
	assert.Equal(t, "Demo", updated.Name)

	require.NoError(t, s.DeleteCategory(context.Background(), owner, created.ID))
	_, err = s.GetCategory(context.Background(), owner, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCategoryOwnershipEnforced(t *testing.T) {
	s := newTestService(t)
	owner := testUser()
	intruder := testUser()

	created, err := s.CreateCategory(context.Background(), owner, CreateCategoryInput{
		Name: "Private", Type: domain.CategorySkill, Color: "#000000",
	})
	require.NoError(t, err)

	_, err = s.UpdateCategory(context.Background(), intruder, created.ID, UpdateCategoryInput{Name: strPtr("mine now")})
	assert.ErrorIs(t, err, ErrForbidden)

	err = s.DeleteCategory(context.Background(), intruder, created.ID)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestListCategoriesIncludesSystem(t *testing.T) {
	s := newTestService(t)
	owner := testUser()
	seedSystemCategory(t, s, domain.CategoryPrompt)

	_, err := s.CreateCategory(context.Background(), owner, CreateCategoryInput{
		Name: "Mine", Type: domain.CategoryPrompt, Color: "#123456",
	})
	require.NoError(t, err)

	cats, err := s.ListCategories(context.Background(), owner, domain.CategoryPrompt)
	require.NoError(t, err)
	assert.Len(t, cats, 2)

	skillCats, err := s.ListCategories(context.Background(), owner, domain.CategorySkill)
	require.NoError(t, err)
	assert.Empty(t, skillCats)
}

func TestCreateCategoryValidation(t *testing.T) {
	s := newTestService(t)
	owner := testUser()

	_, err := s.CreateCategory(context.Background(), owner, CreateCategoryInput{Name: "", Type: domain.CategoryPrompt})
	assert.True(t, IsValidation(err))

	_, err = s.CreateCategory(context.Background(), owner, CreateCategoryInput{Name: "X", Type: "widget"})
	assert.True(t, IsValidation(err))
}
