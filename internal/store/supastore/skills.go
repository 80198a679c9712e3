package supastore

import (
	"context"

	"github.com/google/uuid"
	supabase "github.com/supabase-community/supabase-go"

	"github.com/promptvault/promptvault/internal/domain"
	"github.com/promptvault/promptvault/internal/store"
)

type skillRepository struct {
	client *supabase.Client
}

func (r *skillRepository) List(ctx context.Context, filter store.ListFilter) (*store.Page[domain.Skill], error) {
	_ = ctx
	filter.Normalize()
	var result []domain.Skill
	query := applyListFilter(
		r.client.From("skills").Select("*", "exact", false),
		filter,
		[]string{"title", "description"},
	)
	total, err := query.ExecuteTo(&result)
	if err != nil {
		return nil, err
	}
	return store.NewPage(result, total, filter), nil
}

func (r *skillRepository) Get(ctx context.Context, id uuid.UUID) (*domain.Skill, error) {
	_ = ctx
	var result []domain.Skill
	_, err := r.client.From("skills").Select("*", "", false).Eq("id", id.String()).Limit(1, "").ExecuteTo(&result)
	if err != nil {
		return nil, err
	}
	if len(result) == 0 {
		return nil, store.ErrNotFound
	}
	return &result[0], nil
}

func (r *skillRepository) Insert(ctx context.Context, s *domain.Skill) (*domain.Skill, error) {
	_ = ctx
	payload := map[string]any{
		"title":       s.Title,
		"description": s.Description,
		"content":     s.Content,
		"category_id": s.CategoryID,
		"tags":        s.Tags,
		"parameters":  s.Parameters,
		"examples":    s.Examples,
		"is_favorite": s.IsFavorite,
		"is_public":   s.IsPublic,
		"user_id":     s.UserID.String(),
	}
	var result []domain.Skill
	_, err := r.client.From("skills").Insert(payload, false, "", "representation", "").ExecuteTo(&result)
	if err != nil {
		return nil, err
	}
	if len(result) == 0 {
		return nil, store.ErrNotFound
	}
	return &result[0], nil
}

func (r *skillRepository) Update(ctx context.Context, id uuid.UUID, payload map[string]any) (*domain.Skill, error) {
	_ = ctx
	var result []domain.Skill
	_, err := r.client.From("skills").Update(payload, "representation", "").Eq("id", id.String()).Limit(1, "").ExecuteTo(&result)
	if err != nil {
		return nil, err
	}
	if len(result) == 0 {
		return nil, store.ErrNotFound
	}
	return &result[0], nil
}

func (r *skillRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_ = ctx
	_, _, err := r.client.From("skills").Delete("", "").Eq("id", id.String()).Execute()
	return err
}

func (r *skillRepository) IncrementUsage(ctx context.Context, id uuid.UUID) error {
	current, err := r.Get(ctx, id)
	if err != nil {
		return err
	}
	_, err = r.Update(ctx, id, map[string]any{"usage_count": current.UsageCount + 1})
	return err
}

func (r *skillRepository) ListByTag(ctx context.Context, tag string) ([]domain.Skill, error) {
	_ = ctx
	var result []domain.Skill
	_, err := r.client.From("skills").Select("*", "", false).
		Filter("tags", "cs", "{"+tag+"}").
		ExecuteTo(&result)
	return result, err
}

func (r *skillRepository) FindByTitle(ctx context.Context, userID uuid.UUID, title string) (*domain.Skill, error) {
	_ = ctx
	var result []domain.Skill
	_, err := r.client.From("skills").Select("*", "", false).
		Eq("user_id", userID.String()).Eq("title", title).Limit(1, "").ExecuteTo(&result)
	if err != nil {
		return nil, err
	}
	if len(result) == 0 {
		return nil, store.ErrNotFound
	}
	return &result[0], nil
}

func (r *skillRepository) AllTags(ctx context.Context) ([][]string, error) {
	_ = ctx
	var rows []struct {
		Tags []string `json:"tags"`
	}
	_, err := r.client.From("skills").Select("tags", "", false).ExecuteTo(&rows)
	if err != nil {
		return nil, err
	}
	out := make([][]string, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.Tags)
	}
	return out, nil
}
