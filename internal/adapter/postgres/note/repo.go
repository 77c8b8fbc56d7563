// Package note implements the Note repository using PostgreSQL.
// It provides owner-scoped CRUD with trash handling (soft delete, restore,
// purge) and the bounded recency/search queries used by the command agent.
package note

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/daybookhq/daybook-backend/internal/adapter/postgres"
	"github.com/daybookhq/daybook-backend/internal/domain"
)

// qb builds queries with PostgreSQL $N placeholders.
var qb = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// noteColumns is the canonical column list for note scans.
const noteColumns = "id, user_id, title, content, pinned, created_at, updated_at, deleted_at"

// Repo provides note persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new note repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns a note by primary key with user_id filter, including
// trashed notes (callers check IsDeleted).
// Returns domain.ErrNotFound if the note does not exist or belongs to another user.
func (r *Repo) GetByID(ctx context.Context, userID, noteID uuid.UUID) (*domain.Note, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := qb.Select(noteColumns).
		From("notes").
		Where(squirrel.Eq{"id": noteID, "user_id": userID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get note: %w", err)
	}

	n, err := scanNote(querier.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, "note", noteID)
	}

	return n, nil
}

// List returns all non-trashed notes for a user, pinned first, then most
// recently updated. Returns an empty slice (not nil) when the user has no notes.
func (r *Repo) List(ctx context.Context, userID uuid.UUID) ([]*domain.Note, error) {
	query := qb.Select(noteColumns).
		From("notes").
		Where(squirrel.Eq{"user_id": userID, "deleted_at": nil}).
		OrderBy("pinned DESC", "updated_at DESC")

	notes, err := r.listNotes(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}

	return notes, nil
}

// ListTrashed returns all trashed notes for a user, most recently trashed first.
func (r *Repo) ListTrashed(ctx context.Context, userID uuid.UUID) ([]*domain.Note, error) {
	query := qb.Select(noteColumns).
		From("notes").
		Where(squirrel.Eq{"user_id": userID}).
		Where(squirrel.NotEq{"deleted_at": nil}).
		OrderBy("deleted_at DESC")

	notes, err := r.listNotes(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list trashed notes: %w", err)
	}

	return notes, nil
}

// ListRecent returns up to limit non-trashed notes, most recently updated first.
func (r *Repo) ListRecent(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.Note, error) {
	query := qb.Select(noteColumns).
		From("notes").
		Where(squirrel.Eq{"user_id": userID, "deleted_at": nil}).
		OrderBy("updated_at DESC").
		Limit(uint64(limit))

	notes, err := r.listNotes(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list recent notes: %w", err)
	}

	return notes, nil
}

// FindByText returns up to limit non-trashed notes whose title or content
// contains the query (case-insensitive), most recently updated first.
func (r *Repo) FindByText(ctx context.Context, userID uuid.UUID, text string, limit int) ([]*domain.Note, error) {
	pattern := "%" + postgres.EscapeLike(text) + "%"

	query := qb.Select(noteColumns).
		From("notes").
		Where(squirrel.Eq{"user_id": userID, "deleted_at": nil}).
		Where(squirrel.Or{
			squirrel.ILike{"title": pattern},
			squirrel.ILike{"content": pattern},
		}).
		OrderBy("updated_at DESC").
		Limit(uint64(limit))

	notes, err := r.listNotes(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("find notes by text: %w", err)
	}

	return notes, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a new note and returns the persisted domain.Note.
// ID and timestamps come from database defaults.
func (r *Repo) Create(ctx context.Context, userID uuid.UUID, note *domain.Note) (*domain.Note, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := qb.Insert("notes").
		Columns("user_id", "title", "content", "pinned").
		Values(userID, note.Title, note.Content, note.Pinned).
		Suffix("RETURNING " + noteColumns).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert note: %w", err)
	}

	created, err := scanNote(querier.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, "note", uuid.Nil)
	}

	return created, nil
}

// Update modifies note fields using partial update params. Trashed notes
// cannot be updated.
// Returns domain.ErrNotFound if the note does not exist, is trashed, or
// belongs to another user.
func (r *Repo) Update(ctx context.Context, userID, noteID uuid.UUID, params domain.NoteUpdateParams) (*domain.Note, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	update := qb.Update("notes").
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": noteID, "user_id": userID, "deleted_at": nil})

	if params.Title != nil {
		update = update.Set("title", *params.Title)
	}
	if params.Content != nil {
		update = update.Set("content", *params.Content)
	}
	if params.Pinned != nil {
		update = update.Set("pinned", *params.Pinned)
	}

	sql, args, err := update.Suffix("RETURNING " + noteColumns).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update note: %w", err)
	}

	n, err := scanNote(querier.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, "note", noteID)
	}

	return n, nil
}

// SoftDelete moves a note to trash by setting deleted_at.
// Returns domain.ErrNotFound if the note does not exist, is already trashed,
// or belongs to another user.
func (r *Repo) SoftDelete(ctx context.Context, userID, noteID uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := qb.Update("notes").
		Set("deleted_at", squirrel.Expr("now()")).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": noteID, "user_id": userID, "deleted_at": nil}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build soft delete note: %w", err)
	}

	tag, err := querier.Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, "note", noteID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("note %s: %w", noteID, domain.ErrNotFound)
	}

	return nil
}

// Restore moves a trashed note back into the active set.
// Returns domain.ErrNotFound if the note does not exist, is not trashed,
// or belongs to another user.
func (r *Repo) Restore(ctx context.Context, userID, noteID uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := qb.Update("notes").
		Set("deleted_at", nil).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": noteID, "user_id": userID}).
		Where(squirrel.NotEq{"deleted_at": nil}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build restore note: %w", err)
	}

	tag, err := querier.Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, "note", noteID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("note %s: %w", noteID, domain.ErrNotFound)
	}

	return nil
}

// HardDelete permanently removes a note regardless of trash state.
// CASCADE deletes note_tags links.
// Returns domain.ErrNotFound if the note does not exist or belongs to another user.
func (r *Repo) HardDelete(ctx context.Context, userID, noteID uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := qb.Delete("notes").
		Where(squirrel.Eq{"id": noteID, "user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build hard delete note: %w", err)
	}

	tag, err := querier.Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, "note", noteID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("note %s: %w", noteID, domain.ErrNotFound)
	}

	return nil
}

// PurgeTrashedBefore permanently removes trashed notes whose deleted_at is
// older than cutoff, across all users. Returns the number of notes removed.
func (r *Repo) PurgeTrashedBefore(ctx context.Context, cutoff time.Time) (int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := qb.Delete("notes").
		Where(squirrel.Lt{"deleted_at": cutoff}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build purge trashed notes: %w", err)
	}

	tag, err := querier.Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("purge trashed notes: %w", err)
	}

	return int(tag.RowsAffected()), nil
}

// ---------------------------------------------------------------------------
// Row scanning helpers
// ---------------------------------------------------------------------------

// listNotes executes a select built in noteColumns order and scans all rows.
func (r *Repo) listNotes(ctx context.Context, query squirrel.SelectBuilder) ([]*domain.Note, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := querier.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanNotes(rows)
}

// scanNotes scans multiple rows in noteColumns order into []*domain.Note.
func scanNotes(rows pgx.Rows) ([]*domain.Note, error) {
	var result []*domain.Note
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if result == nil {
		result = []*domain.Note{}
	}

	return result, nil
}

// scanNote scans a single row in noteColumns order into a domain.Note.
func scanNote(row pgx.Row) (*domain.Note, error) {
	var n domain.Note
	err := row.Scan(
		&n.ID,
		&n.UserID,
		&n.Title,
		&n.Content,
		&n.Pinned,
		&n.CreatedAt,
		&n.UpdatedAt,
		&n.DeletedAt,
	)
	if err != nil {
		return nil, err
	}

	return &n, nil
}
