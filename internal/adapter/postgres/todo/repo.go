// Package todo implements the Todo repository using PostgreSQL.
// It provides owner-scoped CRUD, matrix position updates, and completion
// transitions guarded by the current status so a todo cannot be completed
// or reopened twice.
package todo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/daybookhq/daybook-backend/internal/adapter/postgres"
	"github.com/daybookhq/daybook-backend/internal/domain"
)

// qb builds queries with PostgreSQL $N placeholders.
var qb = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// todoColumns is the canonical column list for todo scans.
const todoColumns = "id, user_id, title, description, status, position_x, position_y, due_date, completed_at, created_at, updated_at"

// Repo provides todo persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new todo repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns a todo by primary key with user_id filter.
// Returns domain.ErrNotFound if the todo does not exist or belongs to another user.
func (r *Repo) GetByID(ctx context.Context, userID, todoID uuid.UUID) (*domain.Todo, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := qb.Select(todoColumns).
		From("todos").
		Where(squirrel.Eq{"id": todoID, "user_id": userID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get todo: %w", err)
	}

	t, err := scanTodo(querier.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, "todo", todoID)
	}

	return t, nil
}

// List returns all todos for a user regardless of status, most recently
// created first. Returns an empty slice (not nil) when the user has no todos.
func (r *Repo) List(ctx context.Context, userID uuid.UUID) ([]*domain.Todo, error) {
	query := qb.Select(todoColumns).
		From("todos").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC")

	todos, err := r.listTodos(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}

	return todos, nil
}

// ListPending returns up to limit pending todos, most recently created first.
func (r *Repo) ListPending(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.Todo, error) {
	query := qb.Select(todoColumns).
		From("todos").
		Where(squirrel.Eq{"user_id": userID, "status": domain.TodoStatusPending.String()}).
		OrderBy("created_at DESC").
		Limit(uint64(limit))

	todos, err := r.listTodos(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list pending todos: %w", err)
	}

	return todos, nil
}

// FindByText returns up to limit todos of any status whose title or
// description contains the query (case-insensitive), most recently updated first.
func (r *Repo) FindByText(ctx context.Context, userID uuid.UUID, text string, limit int) ([]*domain.Todo, error) {
	query := findByTextQuery(userID, text, limit)

	todos, err := r.listTodos(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("find todos by text: %w", err)
	}

	return todos, nil
}

// FindPendingByText is FindByText restricted to pending todos.
func (r *Repo) FindPendingByText(ctx context.Context, userID uuid.UUID, text string, limit int) ([]*domain.Todo, error) {
	query := findByTextQuery(userID, text, limit).
		Where(squirrel.Eq{"status": domain.TodoStatusPending.String()})

	todos, err := r.listTodos(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("find pending todos by text: %w", err)
	}

	return todos, nil
}

func findByTextQuery(userID uuid.UUID, text string, limit int) squirrel.SelectBuilder {
	pattern := "%" + postgres.EscapeLike(text) + "%"

	return qb.Select(todoColumns).
		From("todos").
		Where(squirrel.Eq{"user_id": userID}).
		Where(squirrel.Or{
			squirrel.ILike{"title": pattern},
			squirrel.ILike{"description": pattern},
		}).
		OrderBy("updated_at DESC").
		Limit(uint64(limit))
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a new todo and returns the persisted domain.Todo.
// Status is taken from the passed struct; ID and timestamps come from
// database defaults.
func (r *Repo) Create(ctx context.Context, userID uuid.UUID, todo *domain.Todo) (*domain.Todo, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := qb.Insert("todos").
		Columns("user_id", "title", "description", "status", "position_x", "position_y", "due_date").
		Values(userID, todo.Title, todo.Description, todo.Status.String(), todo.PositionX, todo.PositionY, todo.DueDate).
		Suffix("RETURNING " + todoColumns).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert todo: %w", err)
	}

	created, err := scanTodo(querier.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, "todo", uuid.Nil)
	}

	return created, nil
}

// Update modifies todo fields using partial update params. Status and
// completed_at are not touched here; see Complete and Reopen.
// Returns domain.ErrNotFound if the todo does not exist or belongs to another user.
func (r *Repo) Update(ctx context.Context, userID, todoID uuid.UUID, params domain.TodoUpdateParams) (*domain.Todo, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	update := qb.Update("todos").
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": todoID, "user_id": userID})

	if params.Title != nil {
		update = update.Set("title", *params.Title)
	}
	if params.Description != nil {
		if *params.Description == "" {
			// ptr("") means clear (set NULL in DB).
			update = update.Set("description", nil)
		} else {
			update = update.Set("description", *params.Description)
		}
	}
	if params.DueDate != nil {
		if params.DueDate.IsZero() {
			// ptr(zero time) means clear (set NULL in DB).
			update = update.Set("due_date", nil)
		} else {
			update = update.Set("due_date", *params.DueDate)
		}
	}
	if params.PositionX != nil {
		update = update.Set("position_x", *params.PositionX)
	}
	if params.PositionY != nil {
		update = update.Set("position_y", *params.PositionY)
	}

	sql, args, err := update.Suffix("RETURNING " + todoColumns).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update todo: %w", err)
	}

	t, err := scanTodo(querier.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, "todo", todoID)
	}

	return t, nil
}

// Complete transitions a pending todo to completed and stamps completed_at.
// Returns domain.ErrNotFound if no pending todo matches (already completed,
// missing, or owned by another user).
func (r *Repo) Complete(ctx context.Context, userID, todoID uuid.UUID) (*domain.Todo, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := qb.Update("todos").
		Set("status", domain.TodoStatusCompleted.String()).
		Set("completed_at", squirrel.Expr("now()")).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": todoID, "user_id": userID, "status": domain.TodoStatusPending.String()}).
		Suffix("RETURNING " + todoColumns).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build complete todo: %w", err)
	}

	t, err := scanTodo(querier.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, "todo", todoID)
	}

	return t, nil
}

// Reopen transitions a completed todo back to pending and clears completed_at.
// Returns domain.ErrNotFound if no completed todo matches.
func (r *Repo) Reopen(ctx context.Context, userID, todoID uuid.UUID) (*domain.Todo, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := qb.Update("todos").
		Set("status", domain.TodoStatusPending.String()).
		Set("completed_at", nil).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": todoID, "user_id": userID, "status": domain.TodoStatusCompleted.String()}).
		Suffix("RETURNING " + todoColumns).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build reopen todo: %w", err)
	}

	t, err := scanTodo(querier.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, "todo", todoID)
	}

	return t, nil
}

// Move updates a todo's matrix position.
// Returns domain.ErrNotFound if the todo does not exist or belongs to another user.
func (r *Repo) Move(ctx context.Context, userID, todoID uuid.UUID, x, y float64) (*domain.Todo, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := qb.Update("todos").
		Set("position_x", x).
		Set("position_y", y).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": todoID, "user_id": userID}).
		Suffix("RETURNING " + todoColumns).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build move todo: %w", err)
	}

	t, err := scanTodo(querier.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, "todo", todoID)
	}

	return t, nil
}

// Delete permanently removes a todo regardless of status.
// Returns domain.ErrNotFound if the todo does not exist or belongs to another user.
func (r *Repo) Delete(ctx context.Context, userID, todoID uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := qb.Delete("todos").
		Where(squirrel.Eq{"id": todoID, "user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete todo: %w", err)
	}

	tag, err := querier.Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, "todo", todoID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("todo %s: %w", todoID, domain.ErrNotFound)
	}

	return nil
}

// ---------------------------------------------------------------------------
// Row scanning helpers
// ---------------------------------------------------------------------------

// listTodos executes a select built in todoColumns order and scans all rows.
func (r *Repo) listTodos(ctx context.Context, query squirrel.SelectBuilder) ([]*domain.Todo, error) {
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

	return scanTodos(rows)
}

// scanTodos scans multiple rows in todoColumns order into []*domain.Todo.
func scanTodos(rows pgx.Rows) ([]*domain.Todo, error) {
	var result []*domain.Todo
	for rows.Next() {
		t, err := scanTodo(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if result == nil {
		result = []*domain.Todo{}
	}

	return result, nil
}

// scanTodo scans a single row in todoColumns order into a domain.Todo.
func scanTodo(row pgx.Row) (*domain.Todo, error) {
	var t domain.Todo
	err := row.Scan(
		&t.ID,
		&t.UserID,
		&t.Title,
		&t.Description,
		(*string)(&t.Status),
		&t.PositionX,
		&t.PositionY,
		&t.DueDate,
		&t.CompletedAt,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &t, nil
}
