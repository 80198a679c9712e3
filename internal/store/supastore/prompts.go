package supastore

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	postgrest "github.com/supabase-community/postgrest-go"
	supabase "github.com/supabase-community/supabase-go"

	"github.com/promptvault/promptvault/internal/domain"
	"github.com/promptvault/promptvault/internal/store"
)

type promptRepository struct {
	client *supabase.Client
}

// applyListFilter translates a store.ListFilter onto a PostgREST query.
// Shared by prompts and skills; searchCols lists the ilike targets.
func applyListFilter(query *postgrest.FilterBuilder, f store.ListFilter, searchCols []string) *postgrest.FilterBuilder {
	query = query.Eq("user_id", f.UserID.String()).
		Order("created_at", &postgrest.OrderOpts{Ascending: false})
	if f.CategoryID != nil {
		query = query.Eq("category_id", f.CategoryID.String())
	}
	if len(f.Tags) > 0 {
		query = query.Filter("tags", "cs", "{"+strings.Join(f.Tags, ",")+"}")
	}
	if f.Favorite != nil {
		query = query.Eq("is_favorite", fmt.Sprintf("%t", *f.Favorite))
	}
	if f.Search != "" {
		conds := make([]string, 0, len(searchCols))
		for _, col := range searchCols {
			conds = append(conds, fmt.Sprintf("%s.ilike.%%%s%%", col, f.Search))
		}
		query = query.Or(strings.Join(conds, ","), "")
	}
	return query.Range(f.Offset(), f.Offset()+f.Limit-1, "")
}

func (r *promptRepository) List(ctx context.Context, filter store.ListFilter) (*store.Page[domain.Prompt], error) {
	_ = ctx
	filter.Normalize()
	var result []domain.Prompt
	query := applyListFilter(
		r.client.From("prompts").Select("*", "exact", false),
		filter,
		[]string{"title", "content", "description"},
	)
	total, err := query.ExecuteTo(&result)
	if err != nil {
		return nil, err
	}
	return store.NewPage(result, total, filter), nil
}

func (r *promptRepository) Get(ctx context.Context, id uuid.UUID) (*domain.Prompt, error) {
	_ = ctx
	var result []domain.Prompt
	_, err := r.client.From("prompts").Select("*", "", false).Eq("id", id.String()).Limit(1, "").ExecuteTo(&result)
	if err != nil {
		return nil, err
	}
	if len(result) == 0 {
		return nil, store.ErrNotFound
	}
	return &result[0], nil
}

func (r *promptRepository) Insert(ctx context.Context, p *domain.Prompt) (*domain.Prompt, error) {
	_ = ctx
	payload := map[string]any{
		"title":       p.Title,
		"content":     p.Content,
		"description": p.Description,
		"category_id": p.CategoryID,
		"tags":        p.Tags,
		"variables":   p.Variables,
		"is_favorite": p.IsFavorite,
		"is_public":   p.IsPublic,
		"user_id":     p.UserID.String(),
	}
	var result []domain.Prompt
	_, err := r.client.From("prompts").Insert(payload, false, "", "representation", "").ExecuteTo(&result)
	if err != nil {
		return nil, err
	}
	if len(result) == 0 {
		return nil, store.ErrNotFound
	}
	return &result[0], nil
}

func (r *promptRepository) Update(ctx context.Context, id uuid.UUID, payload map[string]any) (*domain.Prompt, error) {
	_ = ctx
	var result []domain.Prompt
	_, err := r.client.From("prompts").Update(payload, "representation", "").Eq("id", id.String()).Limit(1, "").ExecuteTo(&result)
	if err != nil {
		return nil, err
	}
	if len(result) == 0 {
		return nil, store.ErrNotFound
	}
	return &result[0], nil
}

func (r *promptRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_ = ctx
	_, _, err := r.client.From("prompts").Delete("", "").Eq("id", id.String()).Execute()
	return err
}

// IncrementUsage is read-then-write: PostgREST has no atomic increment
// without an RPC, and the occasional lost count is acceptable here.
func (r *promptRepository) IncrementUsage(ctx context.Context, id uuid.UUID) error {
	current, err := r.Get(ctx, id)
	if err != nil {
		return err
	}
	_, err = r.Update(ctx, id, map[string]any{"usage_count": current.UsageCount + 1})
	return err
}

func (r *promptRepository) ListByTag(ctx context.Context, tag string) ([]domain.Prompt, error) {
	_ = ctx
	var result []domain.Prompt
	_, err := r.client.From("prompts").Select("*", "", false).
		Filter("tags", "cs", "{"+tag+"}").
		ExecuteTo(&result)
	return result, err
}

func (r *promptRepository) FindByTitle(ctx context.Context, userID uuid.UUID, title string) (*domain.Prompt, error) {
	_ = ctx
	var result []domain.Prompt
	_, err := r.client.From("prompts").Select("*", "", false).
		Eq("user_id", userID.String()).Eq("title", title).Limit(1, "").ExecuteTo(&result)
	if err != nil {
		return nil, err
	}
	if len(result) == 0 {
		return nil, store.ErrNotFound
	}
	return &result[0], nil
}

func (r *promptRepository) AllTags(ctx context.Context) ([][]string, error) {
	_ = ctx
	var rows []struct {
		Tags []string `json:"tags"`
	}
	_, err := r.client.From("prompts").Select("tags", "", false).ExecuteTo(&rows)
	if err != nil {
		return nil, err
	}
	out := make([][]string, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.Tags)
	}
	return out, nil
}
