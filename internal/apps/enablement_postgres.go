package apps

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresEnablement reads app activation from the enabled_apps table.
type PostgresEnablement struct {
	pool *pgxpool.Pool
}

func NewPostgresEnablement(pool *pgxpool.Pool) *PostgresEnablement {
	return &PostgresEnablement{pool: pool}
}

func (e *PostgresEnablement) IsEnabledForUser(ctx context.Context, appID, userID string) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1 FROM enabled_apps
			WHERE user_id = $1 AND app_id = $2
		)`

	var enabled bool
	if err := e.pool.QueryRow(ctx, query, userID, appID).Scan(&enabled); err != nil {
		return false, fmt.Errorf("query app enablement for %q: %w", appID, err)
	}
	return enabled, nil
}
