package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/promptvault/promptvault/internal/auth"
	"github.com/promptvault/promptvault/internal/domain"
	"github.com/promptvault/promptvault/internal/store"
)

// CreateSkillInput carries the fields accepted when creating a skill.
type CreateSkillInput struct {
	Title       string                  `json:"title"`
	Description string                  `json:"description"`
	Content     string                  `json:"content"`
	CategoryID  *uuid.UUID              `json:"category_id"`
	Tags        []string                `json:"tags"`
	Parameters  []domain.SkillParameter `json:"parameters"`
	Examples    []domain.SkillExample   `json:"examples"`
	IsFavorite  bool                    `json:"is_favorite"`
	IsPublic    bool                    `json:"is_public"`
}

// UpdateSkillInput carries a partial update; nil fields are left unchanged.
type UpdateSkillInput struct {
	Title       *string                  `json:"title"`
	Description *string                  `json:"description"`
	Content     *string                  `json:"content"`
	CategoryID  *uuid.UUID               `json:"category_id"`
	Tags        *[]string                `json:"tags"`
	Parameters  *[]domain.SkillParameter `json:"parameters"`
	Examples    *[]domain.SkillExample   `json:"examples"`
	IsFavorite  *bool                    `json:"is_favorite"`
	IsPublic    *bool                    `json:"is_public"`
}

// ListSkills returns the caller's skills matching the filter.
func (s *Service) ListSkills(ctx context.Context, caller auth.Identity, filter store.ListFilter) (*store.Page[domain.Skill], error) {
	filter.UserID = caller.ID
	filter.Normalize()
	page, err := s.store.Skills().List(ctx, filter)
	return page, fromStore(err)
}

// GetSkill returns one of the caller's skills.
func (s *Service) GetSkill(ctx context.Context, caller auth.Identity, id uuid.UUID) (*domain.Skill, error) {
	sk, err := s.store.Skills().Get(ctx, id)
	if err != nil {
		return nil, fromStore(err)
	}
	if err := authorizeOwner(false, sk.UserID, caller.ID); err != nil {
		return nil, err
	}
	return sk, nil
}

// CreateSkill validates and persists a new skill.
func (s *Service) CreateSkill(ctx context.Context, caller auth.Identity, in CreateSkillInput) (*domain.Skill, error) {
	sk := &domain.Skill{
		Title:       in.Title,
		Description: in.Description,
		Content:     in.Content,
		CategoryID:  in.CategoryID,
		Tags:        in.Tags,
		Parameters:  in.Parameters,
		Examples:    in.Examples,
		IsFavorite:  in.IsFavorite,
		IsPublic:    in.IsPublic,
		UserID:      caller.ID,
	}
	if err := domain.ValidateSkill(sk); err != nil {
		return nil, validationf("%s", err)
	}
	if sk.Tags == nil {
		sk.Tags = []string{}
	}
	if sk.Parameters == nil {
		sk.Parameters = []domain.SkillParameter{}
	}
	if sk.Examples == nil {
		sk.Examples = []domain.SkillExample{}
	}

	created, err := s.store.Skills().Insert(ctx, sk)
	if err != nil {
		return nil, fromStore(err)
	}
	s.logger.Detailedf("created skill %s for user %s", created.ID, caller.ID)
	return created, nil
}

// UpdateSkill applies a partial update to one of the caller's skills.
func (s *Service) UpdateSkill(ctx context.Context, caller auth.Identity, id uuid.UUID, in UpdateSkillInput) (*domain.Skill, error) {
	current, err := s.store.Skills().Get(ctx, id)
	if err != nil {
		return nil, fromStore(err)
	}
	if err := authorizeOwner(false, current.UserID, caller.ID); err != nil {
		return nil, err
	}

	payload := map[string]any{}
	if in.Title != nil {
		if *in.Title == "" {
			return nil, validationf("title cannot be empty")
		}
		payload["title"] = *in.Title
	}
	if in.Description != nil {
		if *in.Description == "" {
			return nil, validationf("description cannot be empty")
		}
		payload["description"] = *in.Description
	}
	if in.Content != nil {
		if *in.Content == "" {
			return nil, validationf("content cannot be empty")
		}
		payload["content"] = *in.Content
	}
	if in.CategoryID != nil {
		payload["category_id"] = *in.CategoryID
	}
	if in.Tags != nil {
		payload["tags"] = *in.Tags
	}
	if in.Parameters != nil {
		if err := domain.ValidateSkillParameters(*in.Parameters); err != nil {
			return nil, validationf("%s", err)
		}
		payload["parameters"] = *in.Parameters
	}
	if in.Examples != nil {
		payload["examples"] = *in.Examples
	}
	if in.IsFavorite != nil {
		payload["is_favorite"] = *in.IsFavorite
	}
	if in.IsPublic != nil {
		payload["is_public"] = *in.IsPublic
	}

	updated, err := s.store.Skills().Update(ctx, id, payload)
	return updated, fromStore(err)
}

// DeleteSkill removes one of the caller's skills; absent skills succeed.
func (s *Service) DeleteSkill(ctx context.Context, caller auth.Identity, id uuid.UUID) error {
	current, err := s.store.Skills().Get(ctx, id)
	if err != nil {
		if fromStore(err) == ErrNotFound {
			return nil
		}
		return err
	}
	if err := authorizeOwner(false, current.UserID, caller.ID); err != nil {
		return err
	}
	return fromStore(s.store.Skills().Delete(ctx, id))
}

// GetPublicSkill fetches a skill for unauthenticated sharing, bumping the
// usage count on success.
func (s *Service) GetPublicSkill(ctx context.Context, id uuid.UUID) (*domain.Skill, error) {
	sk, err := s.store.Skills().Get(ctx, id)
	if err != nil {
		return nil, fromStore(err)
	}
	if !sk.IsPublic {
		return nil, ErrNotFound
	}
	if err := s.store.Skills().IncrementUsage(ctx, id); err != nil {
		return nil, fromStore(err)
	}
	sk.UsageCount++
	return sk, nil
}
