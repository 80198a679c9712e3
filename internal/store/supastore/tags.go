package supastore

import (
	"context"

	postgrest "github.com/supabase-community/postgrest-go"
	supabase "github.com/supabase-community/supabase-go"

	"github.com/promptvault/promptvault/internal/domain"
	"github.com/promptvault/promptvault/internal/store"
)

type tagRepository struct {
	client *supabase.Client
}

func (r *tagRepository) List(ctx context.Context) ([]domain.Tag, error) {
	_ = ctx
	var result []domain.Tag
	_, err := r.client.From("tags").Select("*", "", false).
		Order("name", &postgrest.OrderOpts{Ascending: true}).
		ExecuteTo(&result)
	return result, err
}

func (r *tagRepository) GetByName(ctx context.Context, name string) (*domain.Tag, error) {
	_ = ctx
	var result []domain.Tag
	_, err := r.client.From("tags").Select("*", "", false).Eq("name", name).Limit(1, "").ExecuteTo(&result)
	if err != nil {
		return nil, err
	}
	if len(result) == 0 {
		return nil, store.ErrNotFound
	}
	return &result[0], nil
}

func (r *tagRepository) Insert(ctx context.Context, t *domain.Tag) (*domain.Tag, error) {
	_ = ctx
	payload := map[string]any{
		"name":      t.Name,
		"user_id":   t.UserID.String(),
		"is_system": t.IsSystem,
	}
	var result []domain.Tag
	_, err := r.client.From("tags").Insert(payload, false, "", "representation", "").ExecuteTo(&result)
	if err != nil {
		return nil, err
	}
	if len(result) == 0 {
		return nil, store.ErrNotFound
	}
	return &result[0], nil
}

func (r *tagRepository) DeleteByName(ctx context.Context, name string) error {
	_ = ctx
	_, _, err := r.client.From("tags").Delete("", "").Eq("name", name).Execute()
	return err
}
