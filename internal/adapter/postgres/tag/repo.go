// Package tag implements the Tag repository using PostgreSQL.
// It provides CRUD operations for user-defined tags and M2M note linking
// via the note_tags join table.
package tag

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/daybookhq/daybook-backend/internal/adapter/postgres"
	"github.com/daybookhq/daybook-backend/internal/domain"
)

// TagWithNoteID is the batch result type for ListByNoteIDs.
// It embeds domain.Tag and adds NoteID for grouping by the caller.
type TagWithNoteID struct {
	NoteID uuid.UUID
	domain.Tag
}

// qb builds queries with PostgreSQL $N placeholders.
var qb = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// tagColumns is the canonical column list for tag scans.
const tagColumns = "id, user_id, name, color, created_at, updated_at"

// Repo provides tag persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new tag repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// Raw SQL for JOIN and batch queries
// ---------------------------------------------------------------------------

const listByNoteIDSQL = `
SELECT
    t.id, t.user_id, t.name, t.color, t.created_at, t.updated_at
FROM note_tags nt
JOIN tags t ON nt.tag_id = t.id
WHERE nt.note_id = $1
ORDER BY t.name`

const listByNoteIDsSQL = `
SELECT
    nt.note_id,
    t.id, t.user_id, t.name, t.color, t.created_at, t.updated_at
FROM note_tags nt
JOIN tags t ON nt.tag_id = t.id
WHERE nt.note_id = ANY($1::uuid[])
ORDER BY nt.note_id, t.name`

const findByNamesSQL = `
SELECT id, user_id, name, color, created_at, updated_at
FROM tags
WHERE user_id = $1 AND lower(name) = ANY($2::text[])
ORDER BY name`

const replaceDeleteSQL = `DELETE FROM note_tags WHERE note_id = $1`

const replaceInsertSQL = `INSERT INTO note_tags (note_id, tag_id) SELECT $1, unnest($2::uuid[]) ON CONFLICT DO NOTHING`

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns a tag by primary key with user_id filter.
// Returns domain.ErrNotFound if the tag does not exist or belongs to another user.
func (r *Repo) GetByID(ctx context.Context, userID, tagID uuid.UUID) (*domain.Tag, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := qb.Select(tagColumns).
		From("tags").
		Where(squirrel.Eq{"id": tagID, "user_id": userID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get tag: %w", err)
	}

	t, err := scanTag(querier.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, "tag", tagID)
	}

	return t, nil
}

// List returns all tags for a user ordered by name.
// Returns an empty slice (not nil) when the user has no tags.
func (r *Repo) List(ctx context.Context, userID uuid.UUID) ([]*domain.Tag, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := qb.Select(tagColumns).
		From("tags").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("name").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list tags: %w", err)
	}

	rows, err := querier.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	defer rows.Close()

	tags, err := scanTags(rows)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}

	return tags, nil
}

// FindByNamesInsensitive returns the user's tags whose names match any of the
// given names case-insensitively, ordered by name. Names with no match are
// silently absent from the result.
func (r *Repo) FindByNamesInsensitive(ctx context.Context, userID uuid.UUID, names []string) ([]*domain.Tag, error) {
	if len(names) == 0 {
		return []*domain.Tag{}, nil
	}

	lowered := make([]string, len(names))
	for i, name := range names {
		lowered[i] = strings.ToLower(name)
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, findByNamesSQL, userID, lowered)
	if err != nil {
		return nil, fmt.Errorf("find tags by names: %w", err)
	}
	defer rows.Close()

	tags, err := scanTags(rows)
	if err != nil {
		return nil, fmt.Errorf("find tags by names: %w", err)
	}

	return tags, nil
}

// ListByNoteID returns all tags linked to a note via the M2M table,
// ordered by name. Returns an empty slice (not nil) when no tags are linked.
func (r *Repo) ListByNoteID(ctx context.Context, noteID uuid.UUID) ([]*domain.Tag, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listByNoteIDSQL, noteID)
	if err != nil {
		return nil, fmt.Errorf("list tags by note_id: %w", err)
	}
	defer rows.Close()

	tags, err := scanTags(rows)
	if err != nil {
		return nil, fmt.Errorf("list tags by note_id: %w", err)
	}

	return tags, nil
}

// ListByNoteIDs returns tags for multiple notes (batch for list hydration).
// Results include NoteID for grouping by the caller.
func (r *Repo) ListByNoteIDs(ctx context.Context, noteIDs []uuid.UUID) ([]TagWithNoteID, error) {
	if len(noteIDs) == 0 {
		return []TagWithNoteID{}, nil
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listByNoteIDsSQL, noteIDs)
	if err != nil {
		return nil, fmt.Errorf("list tags by note_ids: %w", err)
	}
	defer rows.Close()

	result, err := scanTagsWithNoteID(rows)
	if err != nil {
		return nil, fmt.Errorf("list tags by note_ids: %w", err)
	}

	return result, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a new tag and returns the persisted domain.Tag.
// Returns domain.ErrAlreadyExists if the user already has a tag with the same
// name (case-insensitive).
func (r *Repo) Create(ctx context.Context, userID uuid.UUID, tag *domain.Tag) (*domain.Tag, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := qb.Insert("tags").
		Columns("user_id", "name", "color").
		Values(userID, tag.Name, tag.Color).
		Suffix("RETURNING " + tagColumns).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert tag: %w", err)
	}

	created, err := scanTag(querier.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, "tag", uuid.Nil)
	}

	return created, nil
}

// Update modifies a tag's name and/or color using partial update params.
// Returns domain.ErrNotFound if the tag does not exist or belongs to another
// user, domain.ErrAlreadyExists on a name collision.
func (r *Repo) Update(ctx context.Context, userID, tagID uuid.UUID, params domain.TagUpdateParams) (*domain.Tag, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	update := qb.Update("tags").
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": tagID, "user_id": userID})

	if params.Name != nil {
		update = update.Set("name", *params.Name)
	}
	if params.Color != nil {
		update = update.Set("color", *params.Color)
	}

	sql, args, err := update.Suffix("RETURNING " + tagColumns).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update tag: %w", err)
	}

	t, err := scanTag(querier.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, "tag", tagID)
	}

	return t, nil
}

// Delete removes a tag. CASCADE deletes note_tags; notes are NOT affected.
// Returns domain.ErrNotFound if the tag does not exist or belongs to another user.
func (r *Repo) Delete(ctx context.Context, userID, tagID uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := qb.Delete("tags").
		Where(squirrel.Eq{"id": tagID, "user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete tag: %w", err)
	}

	tag, err := querier.Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, "tag", tagID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("tag %s: %w", tagID, domain.ErrNotFound)
	}

	return nil
}

// ReplaceNoteTags replaces the full tag set linked to a note.
// An empty tagIDs clears all links. Callers wanting atomicity run this
// inside a transaction via TxManager.
func (r *Repo) ReplaceNoteTags(ctx context.Context, noteID uuid.UUID, tagIDs []uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := querier.Exec(ctx, replaceDeleteSQL, noteID); err != nil {
		return postgres.MapError(err, "note_tag", noteID)
	}

	if len(tagIDs) == 0 {
		return nil
	}

	if _, err := querier.Exec(ctx, replaceInsertSQL, noteID, tagIDs); err != nil {
		return postgres.MapError(err, "note_tag", noteID)
	}

	return nil
}

// ---------------------------------------------------------------------------
// Row scanning helpers
// ---------------------------------------------------------------------------

// scanTags scans multiple rows in tagColumns order into []*domain.Tag.
func scanTags(rows pgx.Rows) ([]*domain.Tag, error) {
	var result []*domain.Tag
	for rows.Next() {
		t, err := scanTag(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if result == nil {
		result = []*domain.Tag{}
	}

	return result, nil
}

// scanTag scans a single row in tagColumns order into a domain.Tag.
func scanTag(row pgx.Row) (*domain.Tag, error) {
	var t domain.Tag
	err := row.Scan(
		&t.ID,
		&t.UserID,
		&t.Name,
		&t.Color,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &t, nil
}

// scanTagsWithNoteID scans multiple rows from ListByNoteIDs into TagWithNoteID slices.
func scanTagsWithNoteID(rows pgx.Rows) ([]TagWithNoteID, error) {
	var result []TagWithNoteID
	for rows.Next() {
		var (
			noteID uuid.UUID
			t      domain.Tag
		)
		err := rows.Scan(
			&noteID,
			&t.ID,
			&t.UserID,
			&t.Name,
			&t.Color,
			&t.CreatedAt,
			&t.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}

		result = append(result, TagWithNoteID{NoteID: noteID, Tag: t})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if result == nil {
		result = []TagWithNoteID{}
	}

	return result, nil
}
