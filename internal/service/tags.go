package service

import (
	"context"
	"fmt"

	"github.com/samber/lo"

	"github.com/promptvault/promptvault/internal/auth"
	"github.com/promptvault/promptvault/internal/domain"
)

// ScrubResult reports the outcome of a tag deletion, including the scrub
// pass over prompt and skill tag arrays. The scrub is best-effort: Errors
// lists the records it could not rewrite, and re-running a delete of an
// already-removed managed tag is how callers repair a partial pass.
type ScrubResult struct {
	Success         bool     `json:"success"`
	PromptsScrubbed int      `json:"prompts_scrubbed"`
	SkillsScrubbed  int      `json:"skills_scrubbed"`
	Errors          []string `json:"errors"`
}

// ListTags returns the effective tag vocabulary: managed tags plus every
// distinct tag embedded in a prompt or skill, optionally restricted to one
// resource type.
func (s *Service) ListTags(ctx context.Context, typ domain.CategoryType) ([]string, error) {
	managed, err := s.store.Tags().List(ctx)
	if err != nil {
		return nil, fromStore(err)
	}
	names := lo.Map(managed, func(t domain.Tag, _ int) string { return t.Name })

	if typ == "" || typ == domain.CategoryPrompt {
		promptTags, err := s.store.Prompts().AllTags(ctx)
		if err != nil {
			return nil, fromStore(err)
		}
		names = append(names, lo.Flatten(promptTags)...)
	}
	if typ == "" || typ == domain.CategorySkill {
		skillTags, err := s.store.Skills().AllTags(ctx)
		if err != nil {
			return nil, fromStore(err)
		}
		names = append(names, lo.Flatten(skillTags)...)
	}
	return lo.Uniq(names), nil
}

// CreateTag adds a managed tag owned by the caller.
func (s *Service) CreateTag(ctx context.Context, caller auth.Identity, name string) (*domain.Tag, error) {
	trimmed, err := domain.ValidateTagName(name)
	if err != nil {
		return nil, validationf("%s", err)
	}

	if existing, err := s.store.Tags().GetByName(ctx, trimmed); err == nil && existing != nil {
		return nil, validationf("tag %q already exists", trimmed)
	}

	created, err := s.store.Tags().Insert(ctx, &domain.Tag{
		Name:     trimmed,
		UserID:   caller.ID,
		IsSystem: false,
	})
	return created, fromStore(err)
}

// DeleteTag removes a managed tag and scrubs it from every prompt's and
// skill's tags array, regardless of owner. System tags cannot be deleted.
// The scrub is sequential read-then-write per record with no transaction;
// partial failure leaves a mix of scrubbed and unscrubbed records, reported
// per item.
func (s *Service) DeleteTag(ctx context.Context, caller auth.Identity, name string) (*ScrubResult, error) {
	_ = caller // deletion is vocabulary-wide; only system tags are protected

	tag, err := s.store.Tags().GetByName(ctx, name)
	if err != nil {
		return nil, fromStore(err)
	}
	if tag.IsSystem {
		return nil, ErrForbidden
	}

	if err := s.store.Tags().DeleteByName(ctx, name); err != nil {
		return nil, fromStore(err)
	}

	result := &ScrubResult{Success: true, Errors: []string{}}

	prompts, err := s.store.Prompts().ListByTag(ctx, name)
	if err != nil {
		return nil, fromStore(err)
	}
	for _, p := range prompts {
		kept := lo.Filter(p.Tags, func(t string, _ int) bool { return t != name })
		if _, err := s.store.Prompts().Update(ctx, p.ID, map[string]any{"tags": kept}); err != nil {
			result.Success = false
			result.Errors = append(result.Errors, fmt.Sprintf("prompt %s: %v", p.ID, err))
			continue
		}
		result.PromptsScrubbed++
	}

	skills, err := s.store.Skills().ListByTag(ctx, name)
	if err != nil {
		return nil, fromStore(err)
	}
	for _, sk := range skills {
		kept := lo.Filter(sk.Tags, func(t string, _ int) bool { return t != name })
		if _, err := s.store.Skills().Update(ctx, sk.ID, map[string]any{"tags": kept}); err != nil {
			result.Success = false
			result.Errors = append(result.Errors, fmt.Sprintf("skill %s: %v", sk.ID, err))
			continue
		}
		result.SkillsScrubbed++
	}

	s.logger.Detailedf("deleted tag %q, scrubbed %d prompts and %d skills",
		name, result.PromptsScrubbed, result.SkillsScrubbed)
	return result, nil
}
