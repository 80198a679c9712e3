package sqlitestore

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/promptvault/promptvault/internal/domain"
	"github.com/promptvault/promptvault/internal/store"
)

type promptsTable struct {
	db *sql.DB
}

const promptColumns = "id, title, content, description, category_id, tags, variables, is_favorite, is_public, usage_count, user_id, created_at, updated_at"

type rowScanner interface {
	Scan(dest ...any) error
}

func hydratePrompt(row rowScanner) (*domain.Prompt, error) {
	var (
		p                    domain.Prompt
		id, userID           string
		description          sql.NullString
		categoryID           sql.NullString
		tagsRaw, varsRaw     string
		createdAt, updatedAt string
	)
	err := row.Scan(&id, &p.Title, &p.Content, &description, &categoryID, &tagsRaw, &varsRaw,
		&p.IsFavorite, &p.IsPublic, &p.UsageCount, &userID, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	p.ID = uuid.MustParse(id)
	p.UserID = uuid.MustParse(userID)
	if description.Valid {
		p.Description = &description.String
	}
	if categoryID.Valid {
		parsed, err := uuid.Parse(categoryID.String)
		if err != nil {
			return nil, errors.Wrap(err, "hydrating category id")
		}
		p.CategoryID = &parsed
	}
	if err := unmarshalColumn(tagsRaw, &p.Tags, "[]"); err != nil {
		return nil, err
	}
	if err := unmarshalColumn(varsRaw, &p.Variables, "{}"); err != nil {
		return nil, err
	}
	p.CreatedAt = parseTime(createdAt)
	p.UpdatedAt = parseTime(updatedAt)
	return &p, nil
}

// listWhere translates a ListFilter into SQL conditions. Tag containment
// uses json_each so multiple tags AND together; search lowercases both
// sides for a case-insensitive substring match across searchCols.
func listWhere(f store.ListFilter, searchCols []string) (string, []any) {
	conds := []string{"user_id = ?"}
	args := []any{f.UserID.String()}

	if f.CategoryID != nil {
		conds = append(conds, "category_id = ?")
		args = append(args, f.CategoryID.String())
	}
	for _, tag := range f.Tags {
		conds = append(conds, "EXISTS (SELECT 1 FROM json_each(tags) WHERE json_each.value = ?)")
		args = append(args, tag)
	}
	if f.Favorite != nil {
		conds = append(conds, "is_favorite = ?")
		args = append(args, *f.Favorite)
	}
	if f.Search != "" {
		like := make([]string, 0, len(searchCols))
		needle := "%" + strings.ToLower(f.Search) + "%"
		for _, col := range searchCols {
			like = append(like, fmt.Sprintf("lower(coalesce(%s, '')) LIKE ?", col))
			args = append(args, needle)
		}
		conds = append(conds, "("+strings.Join(like, " OR ")+")")
	}
	return strings.Join(conds, " AND "), args
}

func (t *promptsTable) List(ctx context.Context, filter store.ListFilter) (*store.Page[domain.Prompt], error) {
	filter.Normalize()
	where, args := listWhere(filter, []string{"title", "content", "description"})

	var total int64
	err := t.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM prompts WHERE "+where, args...).Scan(&total)
	if err != nil {
		return nil, errors.Wrap(err, "counting prompts")
	}

	query := "SELECT " + promptColumns + " FROM prompts WHERE " + where +
		" ORDER BY created_at DESC LIMIT ? OFFSET ?"
	rows, err := t.db.QueryContext(ctx, query, append(args, filter.Limit, filter.Offset())...)
	if err != nil {
		return nil, errors.Wrap(err, "listing prompts")
	}
	defer rows.Close()

	items := []domain.Prompt{}
	for rows.Next() {
		p, err := hydratePrompt(rows)
		if err != nil {
			return nil, errors.Wrap(err, "hydrating prompt")
		}
		items = append(items, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return store.NewPage(items, total, filter), nil
}

func (t *promptsTable) Get(ctx context.Context, id uuid.UUID) (*domain.Prompt, error) {
	row := t.db.QueryRowContext(ctx, "SELECT "+promptColumns+" FROM prompts WHERE id = ?", id.String())
	p, err := hydratePrompt(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "getting prompt %s", id)
	}
	return p, nil
}

func (t *promptsTable) Insert(ctx context.Context, p *domain.Prompt) (*domain.Prompt, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, errors.Wrap(err, "generating prompt id")
	}

	tags, err := marshalColumn(p.Tags, "[]")
	if err != nil {
		return nil, err
	}
	vars, err := marshalColumn(p.Variables, "{}")
	if err != nil {
		return nil, err
	}

	ts := now()
	_, err = t.db.ExecContext(ctx,
		"INSERT INTO prompts ("+promptColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		id.String(), p.Title, p.Content, nullable(p.Description), uuidArg(p.CategoryID),
		tags, vars, p.IsFavorite, p.IsPublic, p.UsageCount, p.UserID.String(), ts, ts)
	if err != nil {
		return nil, errors.Wrap(err, "inserting prompt")
	}
	return t.Get(ctx, id)
}

// promptSet translates one patch key into a SET fragment. Unknown keys are
// rejected so a typo cannot silently drop part of an update.
func promptSet(key string, value any) (string, any, error) {
	switch key {
	case "title", "content":
		return key + " = ?", value, nil
	case "description":
		return "description = ?", nullableAny(value), nil
	case "category_id":
		return "category_id = ?", uuidArg(value), nil
	case "tags":
		raw, err := marshalColumn(value, "[]")
		return "tags = ?", raw, err
	case "variables":
		raw, err := marshalColumn(value, "{}")
		return "variables = ?", raw, err
	case "is_favorite", "is_public":
		return key + " = ?", value, nil
	case "usage_count":
		return "usage_count = ?", value, nil
	default:
		return "", nil, errors.Errorf("prompts: unknown patch column %q", key)
	}
}

func (t *promptsTable) Update(ctx context.Context, id uuid.UUID, payload map[string]any) (*domain.Prompt, error) {
	if len(payload) == 0 {
		return t.Get(ctx, id)
	}

	sets := make([]string, 0, len(payload)+1)
	args := make([]any, 0, len(payload)+2)
	for key, value := range payload {
		frag, arg, err := promptSet(key, value)
		if err != nil {
			return nil, err
		}
		sets = append(sets, frag)
		args = append(args, arg)
	}
	sets = append(sets, "updated_at = ?")
	args = append(args, now(), id.String())

	res, err := t.db.ExecContext(ctx, "UPDATE prompts SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
	if err != nil {
		return nil, errors.Wrapf(err, "updating prompt %s", id)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, store.ErrNotFound
	}
	return t.Get(ctx, id)
}

func (t *promptsTable) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := t.db.ExecContext(ctx, "DELETE FROM prompts WHERE id = ?", id.String())
	return errors.Wrapf(err, "deleting prompt %s", id)
}

func (t *promptsTable) IncrementUsage(ctx context.Context, id uuid.UUID) error {
	res, err := t.db.ExecContext(ctx,
		"UPDATE prompts SET usage_count = usage_count + 1 WHERE id = ?", id.String())
	if err != nil {
		return errors.Wrapf(err, "incrementing usage for prompt %s", id)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (t *promptsTable) ListByTag(ctx context.Context, tag string) ([]domain.Prompt, error) {
	rows, err := t.db.QueryContext(ctx,
		"SELECT "+promptColumns+" FROM prompts WHERE EXISTS (SELECT 1 FROM json_each(tags) WHERE json_each.value = ?)",
		tag)
	if err != nil {
		return nil, errors.Wrap(err, "listing prompts by tag")
	}
	defer rows.Close()

	var items []domain.Prompt
	for rows.Next() {
		p, err := hydratePrompt(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *p)
	}
	return items, rows.Err()
}

func (t *promptsTable) FindByTitle(ctx context.Context, userID uuid.UUID, title string) (*domain.Prompt, error) {
	row := t.db.QueryRowContext(ctx,
		"SELECT "+promptColumns+" FROM prompts WHERE user_id = ? AND title = ? LIMIT 1",
		userID.String(), title)
	p, err := hydratePrompt(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "finding prompt by title")
	}
	return p, nil
}

func (t *promptsTable) AllTags(ctx context.Context) ([][]string, error) {
	return allTags(ctx, t.db, "prompts")
}

func allTags(ctx context.Context, db *sql.DB, table string) ([][]string, error) {
	rows, err := db.QueryContext(ctx, "SELECT tags FROM "+table)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s tags", table)
	}
	defer rows.Close()

	var out [][]string
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		var tags []string
		if err := unmarshalColumn(raw, &tags, "[]"); err != nil {
			return nil, err
		}
		out = append(out, tags)
	}
	return out, rows.Err()
}

// nullable converts an optional string into a driver argument.
func nullable(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

// nullableAny passes strings through and maps nil/other to NULL-friendly
// forms; patch payloads may carry *string or string depending on source.
func nullableAny(v any) any {
	switch s := v.(type) {
	case nil:
		return nil
	case string:
		return s
	case *string:
		return nullable(s)
	default:
		return v
	}
}

// uuidArg normalizes the uuid shapes a patch payload may carry.
func uuidArg(v any) any {
	switch id := v.(type) {
	case nil:
		return nil
	case uuid.UUID:
		return id.String()
	case *uuid.UUID:
		if id == nil {
			return nil
		}
		return id.String()
	case string:
		if id == "" {
			return nil
		}
		return id
	default:
		return v
	}
}
