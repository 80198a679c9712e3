package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/promptvault/promptvault/internal/auth"
	"github.com/promptvault/promptvault/internal/domain"
	"github.com/promptvault/promptvault/internal/store"
)

// ExportFormat selects the serialization of an export.
type ExportFormat string

const (
	// FormatJSON is the lossless snapshot; the only format import accepts.
	FormatJSON ExportFormat = "json"
	// FormatCSV is a flat table of prompts only.
	FormatCSV ExportFormat = "csv"
	// FormatMarkdown is a human-readable document; machine fields are dropped.
	FormatMarkdown ExportFormat = "markdown"
)

// ExportScope selects which resource families an export includes.
type ExportScope string

const (
	ScopeAll     ExportScope = "all"
	ScopePrompts ExportScope = "prompts"
	ScopeSkills  ExportScope = "skills"
)

// Snapshot is the lossless export payload.
type Snapshot struct {
	Version    string            `json:"version"`
	ExportedAt time.Time         `json:"exported_at"`
	UserID     uuid.UUID         `json:"user_id"`
	Prompts    []domain.Prompt   `json:"prompts"`
	Skills     []domain.Skill    `json:"skills"`
	Categories []domain.Category `json:"categories"`
}

const snapshotVersion = "1.0"

// ExportResult carries the serialized export plus a suggested filename.
type ExportResult struct {
	Filename string `json:"filename"`
	Data     any    `json:"data"`
}

/// ImportResult reports a bulk import: overall success plus per-item
// messages for everything skipped or failed.
type ImportResult struct {
	Success bool     `json:"success"`
	Prompts int      `json:"prompts"`
	Skills  int      `json:"skills"`
	Errors  []string `json:"errors"`
}

// ExportOptions lists what the export endpoint understands.
func ExportOptions() map[string][]string {
	return map[string][]string{
		"formats": {string(FormatJSON), string(FormatCSV), string(FormatMarkdown)},
		"types":   {string(ScopeAll), string(ScopePrompts), string(ScopeSkills)},
	}
}

// collectPrompts pages through the caller's prompts until exhausted.
func (s *Service) collectPrompts(ctx context.Context, caller auth.Identity) ([]domain.Prompt, error) {
	var all []domain.Prompt
	filter := store.ListFilter{UserID: caller.ID, Page: 1, Limit: 200}
	for {
		page, err := s.store.Prompts().List(ctx, filter)
		if err != nil {
			return nil, fromStore(err)
		}
		all = append(all, page.Items...)
		if !page.HasMore {
			return all, nil
		}
		filter.Page++
	}
}

func (s *Service) collectSkills(ctx context.Context, caller auth.Identity) ([]domain.Skill, error) {
	var all []domain.Skill
	filter := store.ListFilter{UserID: caller.ID, Page: 1, Limit: 200}
	for {
		page, err := s.store.Skills().List(ctx, filter)
		if err != nil {
			return nil, fromStore(err)
		}
		all = append(all, page.Items...)
		if !page.HasMore {
			return all, nil
		}
		filter.Page++
	}
}

// Export serializes the caller's data in the requested format and scope.
func (s *Service) Export(ctx context.Context, caller auth.Identity, format ExportFormat, scope ExportScope) (*ExportResult, error) {
	if scope == "" {
		scope = ScopeAll
	}
	if format == "" {
		format = FormatJSON
	}

	snap := Snapshot{
		Version:    snapshotVersion,
		ExportedAt: time.Now().UTC(),
		UserID:     caller.ID,
		Prompts:    []domain.Prompt{},
		Skills:     []domain.Skill{},
		Categories: []domain.Category{},
	}

	var err error
	if scope == ScopeAll || scope == ScopePrompts {
		if snap.Prompts, err = s.collectPrompts(ctx, caller); err != nil {
			return nil, err
		}
	}
	if scope == ScopeAll || scope == ScopeSkills {
		if snap.Skills, err = s.collectSkills(ctx, caller); err != nil {
			return nil, err
		}
	}
	if scope == ScopeAll {
		if snap.Categories, err = s.ListCategories(ctx, caller, ""); err != nil {
			return nil, err
		}
	}

	stamp := time.Now().UTC().Format("2006-01-02")
	switch format {
	case FormatJSON:
		return &ExportResult{
			Filename: fmt.Sprintf("promptvault-export-%s.json", stamp),
			Data:     snap,
		}, nil
	case FormatCSV:
		csvText, err := promptsCSV(snap.Prompts)
		if err != nil {
			return nil, err
		}
		return &ExportResult{
			Filename: fmt.Sprintf("prompts-export-%s.csv", stamp),
			Data:     csvText,
		}, nil
	case FormatMarkdown:
		return &ExportResult{
			Filename: fmt.Sprintf("promptvault-export-%s.md", stamp),
			Data:     exportMarkdown(snap),
		}, nil
	default:
		return nil, validationf("unknown export format %q", format)
	}
}

// promptsCSV flattens prompts to tabular rows. Lossy: skills, categories,
// variables, and flags are dropped.
func promptsCSV(prompts []domain.Prompt) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"title", "content", "description", "tags", "category_id", "created_at"}); err != nil {
		return "", errors.Wrap(err, "writing csv header")
	}
	for _, p := range prompts {
		desc := ""
		if p.Description != nil {
			desc = *p.Description
		}
		catID := ""
		if p.CategoryID != nil {
			catID = p.CategoryID.String()
		}
		row := []string{p.Title, p.Content, desc, strings.Join(p.Tags, ";"), catID, p.CreatedAt.Format(time.RFC3339)}
		if err := w.Write(row); err != nil {
			return "", errors.Wrap(err, "writing csv row")
		}
	}
	w.Flush()
	return buf.String(), w.Error()
}

// exportMarkdown renders a human-readable document. Lossy by design.
func exportMarkdown(snap Snapshot) string {
	var b strings.Builder
	b.WriteString("# PromptVault Export\n\n")
	fmt.Fprintf(&b, "Exported on: %s\n\n", snap.ExportedAt.Format("2006-01-02"))

	b.WriteString("## Prompts\n\n")
	for _, p := range snap.Prompts {
		fmt.Fprintf(&b, "### %s\n\n", p.Title)
		if p.Description != nil && *p.Description != "" {
			fmt.Fprintf(&b, "%s\n\n", *p.Description)
		}
		fmt.Fprintf(&b, "```\n%s\n```\n\n", p.Content)
		if len(p.Tags) > 0 {
			fmt.Fprintf(&b, "Tags: %s\n\n", strings.Join(p.Tags, ", "))
		}
		b.WriteString("---\n\n")
	}

	b.WriteString("## Skills\n\n")
	for _, sk := range snap.Skills {
		fmt.Fprintf(&b, "### %s\n\n", sk.Title)
		fmt.Fprintf(&b, "%s\n\n", sk.Description)
		fmt.Fprintf(&b, "```\n%s\n```\n\n", sk.Content)
		if len(sk.Tags) > 0 {
			fmt.Fprintf(&b, "Tags: %s\n\n", strings.Join(sk.Tags, ", "))
		}
		b.WriteString("---\n\n")
	}
	return b.String()
}

// Import loads a JSON snapshot into the caller's account. Title collisions
// are skipped with a per-item message; imported records are always private.
// Categories import best-effort, non-system only, duplicates swallowed.
func (s *Service) Import(ctx context.Context, caller auth.Identity, data []byte) (*ImportResult, error) {
	if len(data) == 0 {
		return nil, validationf("import payload is empty")
	}

	// Reject binary uploads before handing them to the JSON parser.
	kind := mimetype.Detect(data)
	if !kind.Is("application/json") && !strings.HasPrefix(kind.String(), "text/") {
		return nil, validationf("unsupported import content type %s", kind)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, validationf("parsing import payload: %v", err)
	}

	result := &ImportResult{Success: true, Errors: []string{}}

	for _, cat := range snap.Categories {
		if cat.IsSystem || cat.UserID == caller.ID {
			continue
		}
		// Duplicate or invalid incoming categories are ignored.
		_, _ = s.CreateCategory(ctx, caller, CreateCategoryInput{
			Name:        cat.Name,
			Type:        cat.Type,
			Color:       cat.Color,
			Icon:        cat.Icon,
			Description: cat.Description,
		})
	}

	for _, p := range snap.Prompts {
		if _, err := s.store.Prompts().FindByTitle(ctx, caller.ID, p.Title); err == nil {
			result.Errors = append(result.Errors, fmt.Sprintf("prompt %q already exists, skipped", p.Title))
			continue
		}
		_, err := s.CreatePrompt(ctx, caller, CreatePromptInput{
			Title:       p.Title,
			Content:     p.Content,
			Description: p.Description,
			CategoryID:  p.CategoryID,
			Tags:        p.Tags,
			Variables:   p.Variables,
			IsFavorite:  p.IsFavorite,
			IsPublic:    false,
		})
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("importing prompt %q: %v", p.Title, err))
			continue
		}
		result.Prompts++
	}

	for _, sk := range snap.Skills {
		if _, err := s.store.Skills().FindByTitle(ctx, caller.ID, sk.Title); err == nil {
			result.Errors = append(result.Errors, fmt.Sprintf("skill %q already exists, skipped", sk.Title))
			continue
		}
		_, err := s.CreateSkill(ctx, caller, CreateSkillInput{
			Title:       sk.Title,
			Description: sk.Description,
			Content:     sk.Content,
			CategoryID:  sk.CategoryID,
			Tags:        sk.Tags,
			Parameters:  sk.Parameters,
			Examples:    sk.Examples,
			IsFavorite:  sk.IsFavorite,
			IsPublic:    false,
		})
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("importing skill %q: %v", sk.Title, err))
			continue
		}
		result.Skills++
	}

	return result, nil
}
