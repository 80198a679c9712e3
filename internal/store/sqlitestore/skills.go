package sqlitestore

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/promptvault/promptvault/internal/domain"
	"github.com/promptvault/promptvault/internal/store"
)

type skillsTable struct {
	db *sql.DB
}

const skillColumns = "id, title, description, content, category_id, tags, parameters, examples, is_favorite, is_public, usage_count, user_id, created_at, updated_at"

func hydrateSkill(row rowScanner) (*domain.Skill, error) {
	var (
		s                         domain.Skill
		id, userID                string
		categoryID                sql.NullString
		tagsRaw, paramsRaw, exRaw string
		createdAt, updatedAt      string
	)
	err := row.Scan(&id, &s.Title, &s.Description, &s.Content, &categoryID, &tagsRaw, &paramsRaw, &exRaw,
		&s.IsFavorite, &s.IsPublic, &s.UsageCount, &userID, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	s.ID = uuid.MustParse(id)
	s.UserID = uuid.MustParse(userID)
	if categoryID.Valid {
		parsed, err := uuid.Parse(categoryID.String)
		if err != nil {
			return nil, errors.Wrap(err, "hydrating category id")
		}
		s.CategoryID = &parsed
	}
	if err := unmarshalColumn(tagsRaw, &s.Tags, "[]"); err != nil {
		return nil, err
	}
	if err := unmarshalColumn(paramsRaw, &s.Parameters, "[]"); err != nil {
		return nil, err
	}
	if err := unmarshalColumn(exRaw, &s.Examples, "[]"); err != nil {
		return nil, err
	}
	s.CreatedAt = parseTime(createdAt)
	s.UpdatedAt = parseTime(updatedAt)
	return &s, nil
}

func (t *skillsTable) List(ctx context.Context, filter store.ListFilter) (*store.Page[domain.Skill], error) {
	filter.Normalize()
	where, args := listWhere(filter, []string{"title", "description"})

	var total int64
	err := t.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM skills WHERE "+where, args...).Scan(&total)
	if err != nil {
		return nil, errors.Wrap(err, "counting skills")
	}

	query := "SELECT " + skillColumns + " FROM skills WHERE " + where +
		" ORDER BY created_at DESC LIMIT ? OFFSET ?"
	rows, err := t.db.QueryContext(ctx, query, append(args, filter.Limit, filter.Offset())...)
	if err != nil {
		return nil, errors.Wrap(err, "listing skills")
	}
	defer rows.Close()

	items := []domain.Skill{}
	for rows.Next() {
		s, err := hydrateSkill(rows)
		if err != nil {
			return nil, errors.Wrap(err, "hydrating skill")
		}
		items = append(items, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return store.NewPage(items, total, filter), nil
}

func (t *skillsTable) Get(ctx context.Context, id uuid.UUID) (*domain.Skill, error) {
	row := t.db.QueryRowContext(ctx, "SELECT "+skillColumns+" FROM skills WHERE id = ?", id.String())
	s, err := hydrateSkill(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "getting skill %s", id)
	}
	return s, nil
}

func (t *skillsTable) Insert(ctx context.Context, s *domain.Skill) (*domain.Skill, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, errors.Wrap(err, "generating skill id")
	}

	tags, err := marshalColumn(s.Tags, "[]")
	if err != nil {
		return nil, err
	}
	params, err := marshalColumn(s.Parameters, "[]")
	if err != nil {
		return nil, err
	}
	examples, err := marshalColumn(s.Examples, "[]")
	if err != nil {
		return nil, err
	}

	ts := now()
	_, err = t.db.ExecContext(ctx,
		"INSERT INTO skills ("+skillColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		id.String(), s.Title, s.Description, s.Content, uuidArg(s.CategoryID),
		tags, params, examples, s.IsFavorite, s.IsPublic, s.UsageCount, s.UserID.String(), ts, ts)
	if err != nil {
		return nil, errors.Wrap(err, "inserting skill")
	}
	return t.Get(ctx, id)
}

func skillSet(key string, value any) (string, any, error) {
	switch key {
	case "title", "description", "content":
		return key + " = ?", value, nil
	case "category_id":
		return "category_id = ?", uuidArg(value), nil
	case "tags":
		raw, err := marshalColumn(value, "[]")
		return "tags = ?", raw, err
	case "parameters":
		raw, err := marshalColumn(value, "[]")
		return "parameters = ?", raw, err
	case "examples":
		raw, err := marshalColumn(value, "[]")
		return "examples = ?", raw, err
	case "is_favorite", "is_public":
		return key + " = ?", value, nil
	case "usage_count":
		return "usage_count = ?", value, nil
	default:
		return "", nil, errors.Errorf("skills: unknown patch column %q", key)
	}
}

func (t *skillsTable) Update(ctx context.Context, id uuid.UUID, payload map[string]any) (*domain.Skill, error) {
	if len(payload) == 0 {
		return t.Get(ctx, id)
	}

	sets := make([]string, 0, len(payload)+1)
	args := make([]any, 0, len(payload)+2)
	for key, value := range payload {
		frag, arg, err := skillSet(key, value)
		if err != nil {
			return nil, err
		}
		sets = append(sets, frag)
		args = append(args, arg)
	}
	sets = append(sets, "updated_at = ?")
	args = append(args, now(), id.String())

	res, err := t.db.ExecContext(ctx, "UPDATE skills SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
	if err != nil {
		return nil, errors.Wrapf(err, "updating skill %s", id)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, store.ErrNotFound
	}
	return t.Get(ctx, id)
}

func (t *skillsTable) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := t.db.ExecContext(ctx, "DELETE FROM skills WHERE id = ?", id.String())
	return errors.Wrapf(err, "deleting skill %s", id)
}

func (t *skillsTable) IncrementUsage(ctx context.Context, id uuid.UUID) error {
	res, err := t.db.ExecContext(ctx,
		"UPDATE skills SET usage_count = usage_count + 1 WHERE id = ?", id.String())
	if err != nil {
		return errors.Wrapf(err, "incrementing usage for skill %s", id)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (t *skillsTable) ListByTag(ctx context.Context, tag string) ([]domain.Skill, error) {
	rows, err := t.db.QueryContext(ctx,
		"SELECT "+skillColumns+" FROM skills WHERE EXISTS (SELECT 1 FROM json_each(tags) WHERE json_each.value = ?)",
		tag)
	if err != nil {
		return nil, errors.Wrap(err, "listing skills by tag")
	}
	defer rows.Close()

	var items []domain.Skill
	for rows.Next() {
		s, err := hydrateSkill(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *s)
	}
	return items, rows.Err()
}

func (t *skillsTable) FindByTitle(ctx context.Context, userID uuid.UUID, title string) (*domain.Skill, error) {
	row := t.db.QueryRowContext(ctx,
		"SELECT "+skillColumns+" FROM skills WHERE user_id = ? AND title = ? LIMIT 1",
		userID.String(), title)
	s, err := hydrateSkill(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "finding skill by title")
	}
	return s, nil
}

func (t *skillsTable) AllTags(ctx context.Context) ([][]string, error) {
	return allTags(ctx, t.db, "skills")
}
