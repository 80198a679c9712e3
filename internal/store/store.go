// Package store defines the persistence contract shared by the PostgREST
// and SQLite backends. Partial updates travel as payload maps: a key present
// in the map is applied, a key absent leaves the column untouched.
package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/promptvault/promptvault/internal/domain"
)

// ListFilter narrows and paginates prompt/skill listings. Zero values mean
// "no constraint"; Favorite is a tri-state pointer so false can be filtered
// explicitly.
type ListFilter struct {
	UserID     uuid.UUID
	CategoryID *uuid.UUID
	Tags       []string // record must contain every listed tag
	Favorite   *bool
	Search     string // case-insensitive substring, OR across text fields
	Page       int
	Limit      int
}

// Normalize applies the defaults used by every list endpoint.
func (f *ListFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = 20
	}
}

// Offset converts page/limit into a row offset.
func (f ListFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}

// Page is one window of a listing plus the bookkeeping callers need to
// paginate further.
type Page[T any] struct {
	Items   []T   `json:"data"`
	Total   int64 `json:"total"`
	Page    int   `json:"page"`
	Limit   int   `json:"limit"`
	HasMore bool  `json:"hasMore"`
}

// NewPage assembles a page, computing HasMore from the filter window.
func NewPage[T any](items []T, total int64, f ListFilter) *Page[T] {
	return &Page[T]{
		Items:   items,
		Total:   total,
		Page:    f.Page,
		Limit:   f.Limit,
		HasMore: total > int64(f.Offset()+f.Limit),
	}
}

// CategoryRepository persists categories.
type CategoryRepository interface {
	// List returns the user's categories plus system categories, optionally
	// restricted to one category type. Pass "" for all types.
	List(ctx context.Context, userID uuid.UUID, typ domain.CategoryType) ([]domain.Category, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Category, error)
	Insert(ctx context.Context, c *domain.Category) (*domain.Category, error)
	Update(ctx context.Context, id uuid.UUID, payload map[string]any) (*domain.Category, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// PromptRepository persists prompts.
type PromptRepository interface {
	List(ctx context.Context, filter ListFilter) (*Page[domain.Prompt], error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Prompt, error)
	Insert(ctx context.Context, p *domain.Prompt) (*domain.Prompt, error)
	Update(ctx context.Context, id uuid.UUID, payload map[string]any) (*domain.Prompt, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// IncrementUsage bumps usage_count by one. Public-read side effect only.
	IncrementUsage(ctx context.Context, id uuid.UUID) error
	// ListByTag returns every prompt, regardless of owner, whose tags
	// contain the given tag. Used by the tag-delete scrub.
	ListByTag(ctx context.Context, tag string) ([]domain.Prompt, error)
	// FindByTitle looks up a prompt owned by userID with an exact title.
	FindByTitle(ctx context.Context, userID uuid.UUID, title string) (*domain.Prompt, error)
	// AllTags returns the tag arrays of every prompt row.
	AllTags(ctx context.Context) ([][]string, error)
}

// SkillRepository persists skills.
type SkillRepository interface {
	List(ctx context.Context, filter ListFilter) (*Page[domain.Skill], error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Skill, error)
	Insert(ctx context.Context, s *domain.Skill) (*domain.Skill, error)
	Update(ctx context.Context, id uuid.UUID, payload map[string]any) (*domain.Skill, error)
	Delete(ctx context.Context, id uuid.UUID) error
	IncrementUsage(ctx context.Context, id uuid.UUID) error
	ListByTag(ctx context.Context, tag string) ([]domain.Skill, error)
	FindByTitle(ctx context.Context, userID uuid.UUID, title string) (*domain.Skill, error)
	AllTags(ctx context.Context) ([][]string, error)
}

// TagRepository persists the managed tag vocabulary.
type TagRepository interface {
	List(ctx context.Context) ([]domain.Tag, error)
	GetByName(ctx context.Context, name string) (*domain.Tag, error)
	Insert(ctx context.Context, t *domain.Tag) (*domain.Tag, error)
	DeleteByName(ctx context.Context, name string) error
}

// VersionRepository persists prompt content history.
type VersionRepository interface {
	// ListByPrompt returns versions newest-first.
	ListByPrompt(ctx context.Context, promptID uuid.UUID) ([]domain.PromptVersion, error)
	// Append records a new version with the next version number for the
	// prompt, starting at 1.
	Append(ctx context.Context, promptID uuid.UUID, content string, changeNote *string) (*domain.PromptVersion, error)
}

// Store bundles the repositories behind one backend.
type Store interface {
	Categories() CategoryRepository
	Prompts() PromptRepository
	Skills() SkillRepository
	Tags() TagRepository
	Versions() VersionRepository
	Ping(ctx context.Context) error
	Close() error
}
