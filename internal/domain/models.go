package domain

import (
	"time"

	"github.com/google/uuid"
)

// CategoryType distinguishes prompt categories from skill categories.
type CategoryType string

const (
	CategoryPrompt CategoryType = "prompt"
	CategorySkill  CategoryType = "skill"
)

// Category groups prompts or skills. System categories are seeded by the
// platform and can never be modified or deleted through the API.
type Category struct {
	ID          uuid.UUID    `json:"id"`
	Name        string       `json:"name"`
	Type        CategoryType `json:"type"`
	Color       string       `json:"color"`
	Icon        *string      `json:"icon,omitempty"`
	Description *string      `json:"description,omitempty"`
	UserID      uuid.UUID    `json:"user_id"`
	IsSystem    bool         `json:"is_system"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`

	// Computed on list responses, not stored.
	PromptsCount *int `json:"prompts_count,omitempty"`
	SkillsCount  *int `json:"skills_count,omitempty"`
}

// VariableSpec declares a substitutable {{name}} placeholder in a prompt's
// content. Substitution itself happens client-side.
type VariableSpec struct {
	Type        string   `json:"type"`
	Default     any      `json:"default,omitempty"`
	Description string   `json:"description,omitempty"`
	Required    bool     `json:"required,omitempty"`
	Options     []string `json:"options,omitempty"`
}

// Prompt is a reusable instruction template.
type Prompt struct {
	ID          uuid.UUID               `json:"id"`
	Title       string                  `json:"title"`
	Content     string                  `json:"content"`
	Description *string                 `json:"description,omitempty"`
	CategoryID  *uuid.UUID              `json:"category_id,omitempty"`
	Tags        []string                `json:"tags"`
	Variables   map[string]VariableSpec `json:"variables"`
	IsFavorite  bool                    `json:"is_favorite"`
	IsPublic    bool                    `json:"is_public"`
	UsageCount  int                     `json:"usage_count"`
	UserID      uuid.UUID               `json:"user_id"`
	CreatedAt   time.Time               `json:"created_at"`
	UpdatedAt   time.Time               `json:"updated_at"`
}

// SkillParameter describes one input a skill accepts.
type SkillParameter struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Required    bool   `json:"required"`
	Default     any    `json:"default,omitempty"`
}

// SkillExample pairs a sample invocation with its expected result.
type SkillExample struct {
	Input       map[string]any `json:"input"`
	Output      any            `json:"output"`
	Description *string        `json:"description,omitempty"`
}

// Skill is a packaged capability: instructions plus declared parameters
// and worked examples.
type Skill struct {
	ID          uuid.UUID        `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Content     string           `json:"content"`
	CategoryID  *uuid.UUID       `json:"category_id,omitempty"`
	Tags        []string         `json:"tags"`
	Parameters  []SkillParameter `json:"parameters"`
	Examples    []SkillExample   `json:"examples"`
	IsFavorite  bool             `json:"is_favorite"`
	IsPublic    bool             `json:"is_public"`
	UsageCount  int              `json:"usage_count"`
	UserID      uuid.UUID        `json:"user_id"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// Tag is a managed vocabulary entry. The effective vocabulary is the union
// of managed tags and every string embedded in a prompt or skill tags array.
type Tag struct {
	Name      string    `json:"name"`
	UserID    uuid.UUID `json:"user_id"`
	IsSystem  bool      `json:"is_system"`
	CreatedAt time.Time `json:"created_at"`
}

// PromptVersion is one entry in a prompt's append-only content history.
// Version numbers start at 1 and strictly increase per prompt.
type PromptVersion struct {
	ID            uuid.UUID `json:"id"`
	PromptID      uuid.UUID `json:"prompt_id"`
	Content       string    `json:"content"`
	VersionNumber int       `json:"version_number"`
	ChangeNote    *string   `json:"change_note,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}
