package account

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore reads account properties from the account_properties and
// account_property_collections tables.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) GetProperty(ctx context.Context, userID, key string) (Property, error) {
	const query = `
		SELECT value, scope
		FROM account_properties
		WHERE user_id = $1 AND key = $2`

	var property Property
	err := s.pool.QueryRow(ctx, query, userID, key).Scan(&property.Value, &property.Scope)
	if errors.Is(err, pgx.ErrNoRows) {
		return Property{}, ErrPropertyNotFound
	}
	if err != nil {
		return Property{}, fmt.Errorf("query account property %q: %w", key, err)
	}
	return property, nil
}

func (s *PostgresStore) GetPropertyCollection(ctx context.Context, userID, key string) ([]Property, error) {
	const query = `
		SELECT value, scope
		FROM account_property_collections
		WHERE user_id = $1 AND key = $2
		ORDER BY position`

	rows, err := s.pool.Query(ctx, query, userID, key)
	if err != nil {
		return nil, fmt.Errorf("query account property collection %q: %w", key, err)
	}
	defer rows.Close()

	var properties []Property
	for rows.Next() {
		var property Property
		if err := rows.Scan(&property.Value, &property.Scope); err != nil {
			return nil, fmt.Errorf("scan account property collection %q: %w", key, err)
		}
		properties = append(properties, property)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate account property collection %q: %w", key, err)
	}
	return properties, nil
}
