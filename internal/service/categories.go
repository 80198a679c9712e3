package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/promptvault/promptvault/internal/auth"
	"github.com/promptvault/promptvault/internal/domain"
)

// CreateCategoryInput carries the fields accepted when creating a category.
// is_system is not accepted: system categories are seeded, never created
// through the API.
type CreateCategoryInput struct {
	Name        string              `json:"name"`
	Type        domain.CategoryType `json:"type"`
	Color       string              `json:"color"`
	Icon        *string             `json:"icon"`
	Description *string             `json:"description"`
}

// UpdateCategoryInput carries a partial update; nil fields are unchanged.
type UpdateCategoryInput struct {
	Name        *string `json:"name"`
	Color       *string `json:"color"`
	Icon        *string `json:"icon"`
	Description *string `json:"description"`
}

// ListCategories returns the caller's categories plus system categories,
// optionally restricted to one category type.
func (s *Service) ListCategories(ctx context.Context, caller auth.Identity, typ domain.CategoryType) ([]domain.Category, error) {
	cats, err := s.store.Categories().List(ctx, caller.ID, typ)
	return cats, fromStore(err)
}

// GetCategory returns a category visible to the caller.
func (s *Service) GetCategory(ctx context.Context, caller auth.Identity, id uuid.UUID) (*domain.Category, error) {
	c, err := s.store.Categories().Get(ctx, id)
	if err != nil {
		return nil, fromStore(err)
	}
	if !c.IsSystem && c.UserID != caller.ID {
		return nil, ErrForbidden
	}
	return c, nil
}

// CreateCategory validates and persists a new user category.
func (s *Service) CreateCategory(ctx context.Context, caller auth.Identity, in CreateCategoryInput) (*domain.Category, error) {
	c := &domain.Category{
		Name:        in.Name,
		Type:        in.Type,
		Color:       in.Color,
		Icon:        in.Icon,
		Description: in.Description,
		UserID:      caller.ID,
		IsSystem:    false,
	}
	if err := domain.ValidateCategory(c); err != nil {
		return nil, validationf("%s", err)
	}

	created, err := s.store.Categories().Insert(ctx, c)
	return created, fromStore(err)
}

// UpdateCategory applies a partial update. System categories reject every
// field mutation; that check runs before ownership, so even a caller who
// somehow owns a system row is refused.
func (s *Service) UpdateCategory(ctx context.Context, caller auth.Identity, id uuid.UUID, in UpdateCategoryInput) (*domain.Category, error) {
	current, err := s.store.Categories().Get(ctx, id)
	if err != nil {
		return nil, fromStore(err)
	}
	if err := authorizeOwner(current.IsSystem, current.UserID, caller.ID); err != nil {
		return nil, err
	}

	payload := map[string]any{}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, validationf("category name cannot be empty")
		}
		payload["name"] = *in.Name
	}
	if in.Color != nil {
		payload["color"] = *in.Color
	}
	if in.Icon != nil {
		payload["icon"] = *in.Icon
	}
	if in.Description != nil {
		payload["description"] = *in.Description
	}

	updated, err := s.store.Categories().Update(ctx, id, payload)
	return updated, fromStore(err)
}

// DeleteCategory removes a non-system category owned by the caller.
func (s *Service) DeleteCategory(ctx context.Context, caller auth.Identity, id uuid.UUID) error {
	current, err := s.store.Categories().Get(ctx, id)
	if err != nil {
		return fromStore(err)
	}
	if err := authorizeOwner(current.IsSystem, current.UserID, caller.ID); err != nil {
		return err
	}
	return fromStore(s.store.Categories().Delete(ctx, id))
}
