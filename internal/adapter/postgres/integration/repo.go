// Package integration implements the Integration repository using PostgreSQL.
package integration

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

// integrationColumns is the canonical column list for integration scans.
const integrationColumns = "id, user_id, provider, connected_account_id, status, created_at, updated_at"

// Repo provides integration persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new integration repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns an integration by primary key with user_id filter.
// Returns domain.ErrNotFound if the integration does not exist or belongs to another user.
func (r *Repo) GetByID(ctx context.Context, userID, integrationID uuid.UUID) (*domain.Integration, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := qb.Select(integrationColumns).
		From("integrations").
		Where(squirrel.Eq{"id": integrationID, "user_id": userID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get integration: %w", err)
	}

	in, err := scanIntegration(querier.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, "integration", integrationID)
	}

	return in, nil
}

// GetByProvider returns the user's integration for a provider slug.
// Returns domain.ErrNotFound if the user has no integration for that provider.
func (r *Repo) GetByProvider(ctx context.Context, userID uuid.UUID, provider string) (*domain.Integration, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := qb.Select(integrationColumns).
		From("integrations").
		Where(squirrel.Eq{"user_id": userID, "provider": provider}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get integration by provider: %w", err)
	}

	in, err := scanIntegration(querier.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, "integration", uuid.Nil)
	}

	return in, nil
}

// List returns all integrations for a user ordered by provider.
// Returns an empty slice (not nil) when the user has none.
func (r *Repo) List(ctx context.Context, userID uuid.UUID) ([]*domain.Integration, error) {
	query := qb.Select(integrationColumns).
		From("integrations").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("provider")

	integrations, err := r.listIntegrations(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list integrations: %w", err)
	}

	return integrations, nil
}

// ListActive returns the user's active integrations ordered by provider.
func (r *Repo) ListActive(ctx context.Context, userID uuid.UUID) ([]*domain.Integration, error) {
	query := qb.Select(integrationColumns).
		From("integrations").
		Where(squirrel.Eq{"user_id": userID, "status": domain.IntegrationStatusActive.String()}).
		OrderBy("provider")

	integrations, err := r.listIntegrations(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list active integrations: %w", err)
	}

	return integrations, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a new integration and returns the persisted domain.Integration.
// Returns domain.ErrAlreadyExists if the user already has an integration for
// the provider.
func (r *Repo) Create(ctx context.Context, userID uuid.UUID, in *domain.Integration) (*domain.Integration, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := qb.Insert("integrations").
		Columns("user_id", "provider", "connected_account_id", "status").
		Values(userID, in.Provider, in.ConnectedAccountID, in.Status.String()).
		Suffix("RETURNING " + integrationColumns).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert integration: %w", err)
	}

	created, err := scanIntegration(querier.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, "integration", uuid.Nil)
	}

	return created, nil
}

// Activate transitions an integration to active and records the connected
// account id reported by the provider.
// Returns domain.ErrNotFound if the integration does not exist or belongs to another user.
func (r *Repo) Activate(ctx context.Context, userID, integrationID uuid.UUID, connectedAccountID *string) (*domain.Integration, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := qb.Update("integrations").
		Set("status", domain.IntegrationStatusActive.String()).
		Set("connected_account_id", connectedAccountID).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": integrationID, "user_id": userID}).
		Suffix("RETURNING " + integrationColumns).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build activate integration: %w", err)
	}

	in, err := scanIntegration(querier.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, "integration", integrationID)
	}

	return in, nil
}

// SetStatus transitions an integration to the given status.
// Returns domain.ErrNotFound if the integration does not exist or belongs to another user.
func (r *Repo) SetStatus(ctx context.Context, userID, integrationID uuid.UUID, status domain.IntegrationStatus) (*domain.Integration, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := qb.Update("integrations").
		Set("status", status.String()).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": integrationID, "user_id": userID}).
		Suffix("RETURNING " + integrationColumns).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build set integration status: %w", err)
	}

	in, err := scanIntegration(querier.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, "integration", integrationID)
	}

	return in, nil
}

// ---------------------------------------------------------------------------
// Row scanning helpers
// ---------------------------------------------------------------------------

// listIntegrations executes a select built in integrationColumns order and scans all rows.
func (r *Repo) listIntegrations(ctx context.Context, query squirrel.SelectBuilder) ([]*domain.Integration, error) {
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

	return scanIntegrations(rows)
}

// scanIntegrations scans multiple rows in integrationColumns order.
func scanIntegrations(rows pgx.Rows) ([]*domain.Integration, error) {
	var result []*domain.Integration
	for rows.Next() {
		in, err := scanIntegration(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, in)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if result == nil {
		result = []*domain.Integration{}
	}

	return result, nil
}

// scanIntegration scans a single row in integrationColumns order.
func scanIntegration(row pgx.Row) (*domain.Integration, error) {
	var in domain.Integration
	err := row.Scan(
		&in.ID,
		&in.UserID,
		&in.Provider,
		&in.ConnectedAccountID,
		(*string)(&in.Status),
		&in.CreatedAt,
		&in.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &in, nil
}
