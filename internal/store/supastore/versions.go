package supastore

import (
	"context"

	"github.com/google/uuid"
	postgrest "github.com/supabase-community/postgrest-go"
	supabase "github.com/supabase-community/supabase-go"

	"github.com/promptvault/promptvault/internal/domain"
	"github.com/promptvault/promptvault/internal/store"
)

type versionRepository struct {
	client *supabase.Client
}

func (r *versionRepository) ListByPrompt(ctx context.Context, promptID uuid.UUID) ([]domain.PromptVersion, error) {
	_ = ctx
	var result []domain.PromptVersion
	_, err := r.client.From("prompt_versions").Select("*", "", false).
		Eq("prompt_id", promptID.String()).
		Order("version_number", &postgrest.OrderOpts{Ascending: false}).
		ExecuteTo(&result)
	return result, err
}

// Append reads the latest version number and inserts the successor. Not
// guarded against concurrent writers; prompt updates are last-writer-wins
// and version history inherits that.
func (r *versionRepository) Append(ctx context.Context, promptID uuid.UUID, content string, changeNote *string) (*domain.PromptVersion, error) {
	_ = ctx
	var latest []domain.PromptVersion
	_, err := r.client.From("prompt_versions").Select("version_number", "", false).
		Eq("prompt_id", promptID.String()).
		Order("version_number", &postgrest.OrderOpts{Ascending: false}).
		Limit(1, "").
		ExecuteTo(&latest)
	if err != nil {
		return nil, err
	}

	next := 1
	if len(latest) > 0 {
		next = latest[0].VersionNumber + 1
	}

	payload := map[string]any{
		"prompt_id":      promptID.String(),
		"content":        content,
		"version_number": next,
		"change_note":    changeNote,
	}
	var result []domain.PromptVersion
	_, err = r.client.From("prompt_versions").Insert(payload, false, "", "representation", "").ExecuteTo(&result)
	if err != nil {
		return nil, err
	}
	if len(result) == 0 {
		return nil, store.ErrNotFound
	}
	return &result[0], nil
}
