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

type categoriesTable struct {
	db *sql.DB
}

const categoryColumns = "id, name, type, color, icon, description, user_id, is_system, created_at, updated_at"

func hydrateCategory(row rowScanner) (*domain.Category, error) {
	var (
		c                    domain.Category
		id, typ, userID      string
		icon, description    sql.NullString
		createdAt, updatedAt string
	)
	err := row.Scan(&id, &c.Name, &typ, &c.Color, &icon, &description, &userID, &c.IsSystem, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	c.ID = uuid.MustParse(id)
	c.Type = domain.CategoryType(typ)
	c.UserID = uuid.MustParse(userID)
	if icon.Valid {
		c.Icon = &icon.String
	}
	if description.Valid {
		c.Description = &description.String
	}
	c.CreatedAt = parseTime(createdAt)
	c.UpdatedAt = parseTime(updatedAt)
	return &c, nil
}

func (t *categoriesTable) List(ctx context.Context, userID uuid.UUID, typ domain.CategoryType) ([]domain.Category, error) {
	query := "SELECT " + categoryColumns + " FROM categories WHERE (user_id = ? OR is_system = 1)"
	args := []any{userID.String()}
	if typ != "" {
		query += " AND type = ?"
		args = append(args, string(typ))
	}
	query += " ORDER BY created_at ASC"

	rows, err := t.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "listing categories")
	}
	defer rows.Close()

	items := []domain.Category{}
	for rows.Next() {
		c, err := hydrateCategory(rows)
		if err != nil {
			return nil, errors.Wrap(err, "hydrating category")
		}
		items = append(items, *c)
	}
	return items, rows.Err()
}

func (t *categoriesTable) Get(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	row := t.db.QueryRowContext(ctx, "SELECT "+categoryColumns+" FROM categories WHERE id = ?", id.String())
	c, err := hydrateCategory(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "getting category %s", id)
	}
	return c, nil
}

func (t *categoriesTable) Insert(ctx context.Context, c *domain.Category) (*domain.Category, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, errors.Wrap(err, "generating category id")
	}

	ts := now()
	_, err = t.db.ExecContext(ctx,
		"INSERT INTO categories ("+categoryColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		id.String(), c.Name, string(c.Type), c.Color, nullable(c.Icon), nullable(c.Description),
		c.UserID.String(), c.IsSystem, ts, ts)
	if err != nil {
		return nil, errors.Wrap(err, "inserting category")
	}
	return t.Get(ctx, id)
}

func categorySet(key string, value any) (string, any, error) {
	switch key {
	case "name", "color":
		return key + " = ?", value, nil
	case "icon", "description":
		return key + " = ?", nullableAny(value), nil
	default:
		return "", nil, errors.Errorf("categories: unknown patch column %q", key)
	}
}

func (t *categoriesTable) Update(ctx context.Context, id uuid.UUID, payload map[string]any) (*domain.Category, error) {
	if len(payload) == 0 {
		return t.Get(ctx, id)
	}

	sets := make([]string, 0, len(payload)+1)
	args := make([]any, 0, len(payload)+2)
	for key, value := range payload {
		frag, arg, err := categorySet(key, value)
		if err != nil {
			return nil, err
		}
		sets = append(sets, frag)
		args = append(args, arg)
	}
	sets = append(sets, "updated_at = ?")
	args = append(args, now(), id.String())

	res, err := t.db.ExecContext(ctx, "UPDATE categories SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
	if err != nil {
		return nil, errors.Wrapf(err, "updating category %s", id)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, store.ErrNotFound
	}
	return t.Get(ctx, id)
}

func (t *categoriesTable) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := t.db.ExecContext(ctx, "DELETE FROM categories WHERE id = ?", id.String())
	return errors.Wrapf(err, "deleting category %s", id)
}
