package supastore

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	postgrest "github.com/supabase-community/postgrest-go"
	supabase "github.com/supabase-community/supabase-go"

	"github.com/promptvault/promptvault/internal/domain"
	"github.com/promptvault/promptvault/internal/store"
)

type categoryRepository struct {
	client *supabase.Client
}

func (r *categoryRepository) List(ctx context.Context, userID uuid.UUID, typ domain.CategoryType) ([]domain.Category, error) {
	_ = ctx
	var result []domain.Category
	query := r.client.From("categories").Select("*", "", false).
		Or(fmt.Sprintf("user_id.eq.%s,is_system.eq.true", userID.String()), "").
		Order("created_at", &postgrest.OrderOpts{Ascending: true})
	if typ != "" {
		query = query.Eq("type", string(typ))
	}
	_, err := query.ExecuteTo(&result)
	return result, err
}

func (r *categoryRepository) Get(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	_ = ctx
	var result []domain.Category
	_, err := r.client.From("categories").Select("*", "", false).Eq("id", id.String()).Limit(1, "").ExecuteTo(&result)
	if err != nil {
		return nil, err
	}
	if len(result) == 0 {
		return nil, store.ErrNotFound
	}
	return &result[0], nil
}

func (r *categoryRepository) Insert(ctx context.Context, c *domain.Category) (*domain.Category, error) {
	_ = ctx
	payload := map[string]any{
		"name":        c.Name,
		"type":        string(c.Type),
		"color":       c.Color,
		"icon":        c.Icon,
		"description": c.Description,
		"user_id":     c.UserID.String(),
		"is_system":   c.IsSystem,
	}
	var result []domain.Category
	_, err := r.client.From("categories").Insert(payload, false, "", "representation", "").ExecuteTo(&result)
	if err != nil {
		return nil, err
	}
	if len(result) == 0 {
		return nil, store.ErrNotFound
	}
	return &result[0], nil
}

func (r *categoryRepository) Update(ctx context.Context, id uuid.UUID, payload map[string]any) (*domain.Category, error) {
	_ = ctx
	var result []domain.Category
	_, err := r.client.From("categories").Update(payload, "representation", "").Eq("id", id.String()).Limit(1, "").ExecuteTo(&result)
	if err != nil {
		return nil, err
	}
	if len(result) == 0 {
		return nil, store.ErrNotFound
	}
	return &result[0], nil
}

func (r *categoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_ = ctx
	_, _, err := r.client.From("categories").Delete("", "").Eq("id", id.String()).Execute()
	return err
}
