//go:build integration

package account_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"facet/internal/account"
	"facet/pkg/testutil/containers"
)

func TestPostgresStore_Integration(t *testing.T) {
	pg := containers.NewPostgresContainer(t)
	ctx := context.Background()
	store := account.NewPostgresStore(pg.Pool)

	t.Run("round-trips a property", func(t *testing.T) {
		require.NoError(t, pg.TruncateAll(ctx))
		_, err := pg.Pool.Exec(ctx, `
			INSERT INTO account_properties (user_id, key, value, scope)
			VALUES ('alice', 'email', 'alice@example.com', 'published')`)
		require.NoError(t, err)

		property, err := store.GetProperty(ctx, "alice", account.PropertyEmail)
		require.NoError(t, err)
		assert.Equal(t, "alice@example.com", property.Value)
		assert.Equal(t, account.ScopePublished, property.Scope)
	})

	t.Run("missing property returns not found", func(t *testing.T) {
		require.NoError(t, pg.TruncateAll(ctx))

		_, err := store.GetProperty(ctx, "alice", account.PropertyBiography)
		require.ErrorIs(t, err, account.ErrPropertyNotFound)
	})

	t.Run("collection preserves position order", func(t *testing.T) {
		require.NoError(t, pg.TruncateAll(ctx))
		_, err := pg.Pool.Exec(ctx, `
			INSERT INTO account_property_collections (user_id, key, position, value, scope) VALUES
			('alice', 'additional_mail', 2, 'second@example.com', 'published'),
			('alice', 'additional_mail', 1, 'first@example.com', 'private')`)
		require.NoError(t, err)

		properties, err := store.GetPropertyCollection(ctx, "alice", account.CollectionEmail)
		require.NoError(t, err)
		require.Len(t, properties, 2)
		assert.Equal(t, "first@example.com", properties[0].Value)
		assert.Equal(t, account.ScopePrivate, properties[0].Scope)
		assert.Equal(t, "second@example.com", properties[1].Value)
	})

	t.Run("empty collection is not an error", func(t *testing.T) {
		require.NoError(t, pg.TruncateAll(ctx))

		properties, err := store.GetPropertyCollection(ctx, "alice", account.CollectionEmail)
		require.NoError(t, err)
		assert.Empty(t, properties)
	})
}
