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

type tagsTable struct {
	db *sql.DB
}

func hydrateTag(row rowScanner) (*domain.Tag, error) {
	var (
		t         domain.Tag
		userID    string
		createdAt string
	)
	if err := row.Scan(&t.Name, &userID, &t.IsSystem, &createdAt); err != nil {
		return nil, err
	}
	t.UserID = uuid.MustParse(userID)
	t.CreatedAt = parseTime(createdAt)
	return &t, nil
}

func (t *tagsTable) List(ctx context.Context) ([]domain.Tag, error) {
	rows, err := t.db.QueryContext(ctx,
		"SELECT name, user_id, is_system, created_at FROM tags ORDER BY name ASC")
	if err != nil {
		return nil, errors.Wrap(err, "listing tags")
	}
	defer rows.Close()

	items := []domain.Tag{}
	for rows.Next() {
		tag, err := hydrateTag(rows)
		if err != nil {
			return nil, errors.Wrap(err, "hydrating tag")
		}
		items = append(items, *tag)
	}
	return items, rows.Err()
}

func (t *tagsTable) GetByName(ctx context.Context, name string) (*domain.Tag, error) {
	row := t.db.QueryRowContext(ctx,
		"SELECT name, user_id, is_system, created_at FROM tags WHERE name = ?", name)
	tag, err := hydrateTag(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "getting tag %q", name)
	}
	return tag, nil
}

func (t *tagsTable) Insert(ctx context.Context, tag *domain.Tag) (*domain.Tag, error) {
	_, err := t.db.ExecContext(ctx,
		"INSERT INTO tags (name, user_id, is_system, created_at) VALUES (?, ?, ?, ?)",
		tag.Name, tag.UserID.String(), tag.IsSystem, now())
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return nil, store.ErrDuplicate
		}
		return nil, errors.Wrapf(err, "inserting tag %q", tag.Name)
	}
	return t.GetByName(ctx, tag.Name)
}

func (t *tagsTable) DeleteByName(ctx context.Context, name string) error {
	_, err := t.db.ExecContext(ctx, "DELETE FROM tags WHERE name = ?", name)
	return errors.Wrapf(err, "deleting tag %q", name)
}
