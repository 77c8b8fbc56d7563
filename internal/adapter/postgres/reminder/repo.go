// Package reminder implements the Reminder repository using PostgreSQL.
// Besides owner-scoped CRUD it provides the dispatcher claim query, which
// atomically marks due pending reminders as sent so that concurrent
// dispatcher instances never deliver the same reminder twice.
package reminder

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

// reminderColumns is the canonical column list for reminder scans.
const reminderColumns = "id, user_id, message, remind_at, notify_via, status, recurrence, recurrence_end_date, created_at, updated_at"

// Repo provides reminder persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new reminder repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// Raw SQL for the dispatcher claim query
// ---------------------------------------------------------------------------

// claimDueSQL claims up to $2 due pending reminders by flipping them to sent.
// FOR UPDATE SKIP LOCKED lets concurrent dispatchers partition the due set
// instead of blocking or double-claiming.
const claimDueSQL = `
WITH due AS (
    SELECT id FROM reminders
    WHERE status = 'pending' AND remind_at IS NOT NULL AND remind_at <= $1
    ORDER BY remind_at
    LIMIT $2
    FOR UPDATE SKIP LOCKED
)
UPDATE reminders r
SET status = 'sent', updated_at = now()
FROM due
WHERE r.id = due.id
RETURNING r.id, r.user_id, r.message, r.remind_at, r.notify_via, r.status, r.recurrence, r.recurrence_end_date, r.created_at, r.updated_at`

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns a reminder by primary key with user_id filter.
// Returns domain.ErrNotFound if the reminder does not exist or belongs to another user.
func (r *Repo) GetByID(ctx context.Context, userID, reminderID uuid.UUID) (*domain.Reminder, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := qb.Select(reminderColumns).
		From("reminders").
		Where(squirrel.Eq{"id": reminderID, "user_id": userID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get reminder: %w", err)
	}

	rem, err := scanReminder(querier.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, "reminder", reminderID)
	}

	return rem, nil
}

// List returns all reminders for a user regardless of status, soonest fire
// time first with unscheduled reminders last.
func (r *Repo) List(ctx context.Context, userID uuid.UUID) ([]*domain.Reminder, error) {
	query := qb.Select(reminderColumns).
		From("reminders").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("remind_at ASC NULLS LAST", "created_at DESC")

	reminders, err := r.listReminders(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list reminders: %w", err)
	}

	return reminders, nil
}

// ListRecent returns up to limit reminders of any status, most recently
// created first.
func (r *Repo) ListRecent(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.Reminder, error) {
	query := qb.Select(reminderColumns).
		From("reminders").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC").
		Limit(uint64(limit))

	reminders, err := r.listReminders(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list recent reminders: %w", err)
	}

	return reminders, nil
}

// FindPendingByText returns up to limit pending reminders whose message
// contains the query (case-insensitive), most recently created first.
func (r *Repo) FindPendingByText(ctx context.Context, userID uuid.UUID, text string, limit int) ([]*domain.Reminder, error) {
	pattern := "%" + postgres.EscapeLike(text) + "%"

	query := qb.Select(reminderColumns).
		From("reminders").
		Where(squirrel.Eq{"user_id": userID, "status": domain.ReminderStatusPending.String()}).
		Where(squirrel.ILike{"message": pattern}).
		OrderBy("created_at DESC").
		Limit(uint64(limit))

	reminders, err := r.listReminders(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("find pending reminders by text: %w", err)
	}

	return reminders, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a new reminder and returns the persisted domain.Reminder.
// Status, notify_via and recurrence are taken from the passed struct; ID and
// timestamps come from database defaults.
func (r *Repo) Create(ctx context.Context, userID uuid.UUID, rem *domain.Reminder) (*domain.Reminder, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := qb.Insert("reminders").
		Columns("user_id", "message", "remind_at", "notify_via", "status", "recurrence", "recurrence_end_date").
		Values(userID, rem.Message, rem.RemindAt, rem.NotifyVia.String(), rem.Status.String(), rem.Recurrence.String(), rem.RecurrenceEndDate).
		Suffix("RETURNING " + reminderColumns).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert reminder: %w", err)
	}

	created, err := scanReminder(querier.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, "reminder", uuid.Nil)
	}

	return created, nil
}

// UpdateStatus transitions a reminder from one status to another.
// Returns domain.ErrConflict when no row matches: the reminder is missing,
// belongs to another user, or is no longer in the from status (it may have
// been claimed or cancelled concurrently). Callers wanting to distinguish
// these cases do a GetByID first.
func (r *Repo) UpdateStatus(ctx context.Context, userID, reminderID uuid.UUID, from, to domain.ReminderStatus) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := qb.Update("reminders").
		Set("status", to.String()).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": reminderID, "user_id": userID, "status": from.String()}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update reminder status: %w", err)
	}

	tag, err := querier.Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, "reminder", reminderID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("reminder %s: not %s: %w", reminderID, from, domain.ErrConflict)
	}

	return nil
}

// ClaimDue atomically claims up to limit due pending reminders, marking them
// sent, and returns the claimed reminders ordered by fire time. Safe to call
// from concurrent dispatchers.
func (r *Repo) ClaimDue(ctx context.Context, now time.Time, limit int) ([]*domain.Reminder, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, claimDueSQL, now, limit)
	if err != nil {
		return nil, fmt.Errorf("claim due reminders: %w", err)
	}
	defer rows.Close()

	reminders, err := scanReminders(rows)
	if err != nil {
		return nil, fmt.Errorf("claim due reminders: %w", err)
	}

	return reminders, nil
}

// ---------------------------------------------------------------------------
// Row scanning helpers
// ---------------------------------------------------------------------------

// listReminders executes a select built in reminderColumns order and scans all rows.
func (r *Repo) listReminders(ctx context.Context, query squirrel.SelectBuilder) ([]*domain.Reminder, error) {
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

	return scanReminders(rows)
}

// scanReminders scans multiple rows in reminderColumns order into []*domain.Reminder.
func scanReminders(rows pgx.Rows) ([]*domain.Reminder, error) {
	var result []*domain.Reminder
	for rows.Next() {
		rem, err := scanReminder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, rem)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if result == nil {
		result = []*domain.Reminder{}
	}

	return result, nil
}

// scanReminder scans a single row in reminderColumns order into a domain.Reminder.
func scanReminder(row pgx.Row) (*domain.Reminder, error) {
	var rem domain.Reminder
	err := row.Scan(
		&rem.ID,
		&rem.UserID,
		&rem.Message,
		&rem.RemindAt,
		(*string)(&rem.NotifyVia),
		(*string)(&rem.Status),
		(*string)(&rem.Recurrence),
		&rem.RecurrenceEndDate,
		&rem.CreatedAt,
		&rem.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &rem, nil
}
