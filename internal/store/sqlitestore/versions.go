package sqlitestore

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/promptvault/promptvault/internal/domain"
)

type versionsTable struct {
	db *sql.DB
}

const versionColumns = "id, prompt_id, content, version_number, change_note, created_at"

func hydrateVersion(row rowScanner) (*domain.PromptVersion, error) {
	var (
		v            domain.PromptVersion
		id, promptID string
		changeNote   sql.NullString
		createdAt    string
	)
	err := row.Scan(&id, &promptID, &v.Content, &v.VersionNumber, &changeNote, &createdAt)
	if err != nil {
		return nil, err
	}
	v.ID = uuid.MustParse(id)
	v.PromptID = uuid.MustParse(promptID)
	if changeNote.Valid {
		v.ChangeNote = &changeNote.String
	}
	v.CreatedAt = parseTime(createdAt)
	return &v, nil
}

func (t *versionsTable) ListByPrompt(ctx context.Context, promptID uuid.UUID) ([]domain.PromptVersion, error) {
	rows, err := t.db.QueryContext(ctx,
		"SELECT "+versionColumns+" FROM prompt_versions WHERE prompt_id = ? ORDER BY version_number DESC",
		promptID.String())
	if err != nil {
		return nil, errors.Wrap(err, "listing prompt versions")
	}
	defer rows.Close()

	items := []domain.PromptVersion{}
	for rows.Next() {
		v, err := hydrateVersion(rows)
		if err != nil {
			return nil, errors.Wrap(err, "hydrating prompt version")
		}
		items = append(items, *v)
	}
	return items, rows.Err()
}

func (t *versionsTable) Append(ctx context.Context, promptID uuid.UUID, content string, changeNote *string) (*domain.PromptVersion, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, errors.Wrap(err, "generating version id")
	}

	// The subselect assigns the next number atomically within the statement;
	// the UNIQUE(prompt_id, version_number) constraint backstops it.
	_, err = t.db.ExecContext(ctx,
		`INSERT INTO prompt_versions (id, prompt_id, content, version_number, change_note, created_at)
		 VALUES (?, ?, ?,
		         (SELECT COALESCE(MAX(version_number), 0) + 1 FROM prompt_versions WHERE prompt_id = ?),
		         ?, ?)`,
		id.String(), promptID.String(), content, promptID.String(), nullable(changeNote), now())
	if err != nil {
		return nil, errors.Wrap(err, "appending prompt version")
	}

	row := t.db.QueryRowContext(ctx, "SELECT "+versionColumns+" FROM prompt_versions WHERE id = ?", id.String())
	v, err := hydrateVersion(row)
	if err != nil {
		return nil, errors.Wrap(err, "reading appended version")
	}
	return v, nil
}
