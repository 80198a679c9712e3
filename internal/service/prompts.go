package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/promptvault/promptvault/internal/auth"
	"github.com/promptvault/promptvault/internal/domain"
	"github.com/promptvault/promptvault/internal/log"
	"github.com/promptvault/promptvault/internal/store"
)

// CreatePromptInput carries the fields accepted when creating a prompt.
type CreatePromptInput struct {
	Title       string                         `json:"title"`
	Content     string                         `json:"content"`
	Description *string                        `json:"description"`
	CategoryID  *uuid.UUID                     `json:"category_id"`
	Tags        []string                       `json:"tags"`
	Variables   map[string]domain.VariableSpec `json:"variables"`
	IsFavorite  bool                           `json:"is_favorite"`
	IsPublic    bool                           `json:"is_public"`
}

// UpdatePromptInput carries a partial update. nil means "leave unchanged";
// a present field, even when empty, is applied.
type UpdatePromptInput struct {
	Title       *string                         `json:"title"`
	Content     *string                         `json:"content"`
	Description *string                         `json:"description"`
	CategoryID  *uuid.UUID                      `json:"category_id"`
	Tags        *[]string                       `json:"tags"`
	Variables   *map[string]domain.VariableSpec `json:"variables"`
	IsFavorite  *bool                           `json:"is_favorite"`
	IsPublic    *bool                           `json:"is_public"`
	ChangeNote  *string                         `json:"change_note"`
}

// ListPrompts returns the caller's prompts matching the filter.
func (s *Service) ListPrompts(ctx context.Context, caller auth.Identity, filter store.ListFilter) (*store.Page[domain.Prompt], error) {
	filter.UserID = caller.ID
	filter.Normalize()
	s.logger.Tracef("listing prompts user=%s page=%d limit=%d search=%q", caller.ID, filter.Page, filter.Limit, filter.Search)
	page, err := s.store.Prompts().List(ctx, filter)
	return page, fromStore(err)
}

// GetPrompt returns one of the caller's prompts.
func (s *Service) GetPrompt(ctx context.Context, caller auth.Identity, id uuid.UUID) (*domain.Prompt, error) {
	p, err := s.store.Prompts().Get(ctx, id)
	if err != nil {
		return nil, fromStore(err)
	}
	if err := authorizeOwner(false, p.UserID, caller.ID); err != nil {
		return nil, err
	}
	return p, nil
}

// CreatePrompt validates and persists a new prompt, recording version 1 of
// its content.
func (s *Service) CreatePrompt(ctx context.Context, caller auth.Identity, in CreatePromptInput) (*domain.Prompt, error) {
	p := &domain.Prompt{
		Title:       in.Title,
		Content:     in.Content,
		Description: in.Description,
		CategoryID:  in.CategoryID,
		Tags:        in.Tags,
		Variables:   in.Variables,
		IsFavorite:  in.IsFavorite,
		IsPublic:    in.IsPublic,
		UserID:      caller.ID,
	}
	if err := domain.ValidatePrompt(p); err != nil {
		return nil, validationf("%s", err)
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
	if p.Variables == nil {
		p.Variables = map[string]domain.VariableSpec{}
	}

	created, err := s.store.Prompts().Insert(ctx, p)
	if err != nil {
		return nil, fromStore(err)
	}

	if _, err := s.store.Versions().Append(ctx, created.ID, created.Content, nil); err != nil {
		// History is best-effort at create time; the prompt itself exists.
		s.logger.Basicf("recording initial version for prompt %s: %v", created.ID, err)
	}
	s.logger.Detailedf("created prompt %s for user %s", created.ID, caller.ID)
	return created, nil
}

// UpdatePrompt applies a partial update to one of the caller's prompts.
// A content change appends one entry to the version history.
func (s *Service) UpdatePrompt(ctx context.Context, caller auth.Identity, id uuid.UUID, in UpdatePromptInput) (*domain.Prompt, error) {
	current, err := s.store.Prompts().Get(ctx, id)
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
	if in.Content != nil {
		if *in.Content == "" {
			return nil, validationf("content cannot be empty")
		}
		payload["content"] = *in.Content
	}
	if in.Description != nil {
		payload["description"] = *in.Description
	}
	if in.CategoryID != nil {
		payload["category_id"] = *in.CategoryID
	}
	if in.Tags != nil {
		payload["tags"] = *in.Tags
	}
	if in.Variables != nil {
		payload["variables"] = *in.Variables
	}
	if in.IsFavorite != nil {
		payload["is_favorite"] = *in.IsFavorite
	}
	if in.IsPublic != nil {
		payload["is_public"] = *in.IsPublic
	}

	contentChanged := in.Content != nil && *in.Content != current.Content

	updated, err := s.store.Prompts().Update(ctx, id, payload)
	if err != nil {
		return nil, fromStore(err)
	}

	if contentChanged {
		if _, err := s.store.Versions().Append(ctx, id, *in.Content, in.ChangeNote); err != nil {
			s.logger.Basicf("recording version for prompt %s: %v", id, err)
		}
	}
	return updated, nil
}

// DeletePrompt removes one of the caller's prompts. Deleting an absent
// prompt succeeds; delete is idempotent from the caller's perspective.
func (s *Service) DeletePrompt(ctx context.Context, caller auth.Identity, id uuid.UUID) error {
	current, err := s.store.Prompts().Get(ctx, id)
	if err != nil {
		if fromStore(err) == ErrNotFound {
			return nil
		}
		return err
	}
	if err := authorizeOwner(false, current.UserID, caller.ID); err != nil {
		return err
	}
	return fromStore(s.store.Prompts().Delete(ctx, id))
}

// GetPromptVersions returns the content history of one of the caller's
// prompts, newest first.
func (s *Service) GetPromptVersions(ctx context.Context, caller auth.Identity, id uuid.UUID) ([]domain.PromptVersion, error) {
	p, err := s.store.Prompts().Get(ctx, id)
	if err != nil {
		return nil, fromStore(err)
	}
	if err := authorizeOwner(false, p.UserID, caller.ID); err != nil {
		return nil, err
	}
	versions, err := s.store.Versions().ListByPrompt(ctx, id)
	return versions, fromStore(err)
}

// GetPublicPrompt fetches a prompt for unauthenticated sharing. Private
// prompts are indistinguishable from absent ones. A successful read bumps
// the usage count.
func (s *Service) GetPublicPrompt(ctx context.Context, id uuid.UUID) (*domain.Prompt, error) {
	p, err := s.store.Prompts().Get(ctx, id)
	if err != nil {
		return nil, fromStore(err)
	}
	if !p.IsPublic {
		return nil, ErrNotFound
	}
	if err := s.store.Prompts().IncrementUsage(ctx, id); err != nil {
		return nil, fromStore(err)
	}
	p.UsageCount++
	s.logger.Logf(log.Detailed, "public read of prompt %s (usage now %d)", id, p.UsageCount)
	return p, nil
}
