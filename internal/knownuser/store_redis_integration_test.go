//go:build integration

package knownuser_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"facet/internal/knownuser"
	"facet/pkg/testutil/containers"
)

func TestRedisService_Integration(t *testing.T) {
	rc := containers.NewRedisContainer(t)
	ctx := context.Background()
	service := knownuser.NewRedisService(rc.Client)

	t.Run("mark and lookup", func(t *testing.T) {
		require.NoError(t, rc.FlushAll(ctx))
		require.NoError(t, service.MarkKnown(ctx, "alice", "bob"))

		known, err := service.IsKnownToUser(ctx, "alice", "bob")
		require.NoError(t, err)
		assert.True(t, known)
	})

	t.Run("relation is directional", func(t *testing.T) {
		require.NoError(t, rc.FlushAll(ctx))
		require.NoError(t, service.MarkKnown(ctx, "alice", "bob"))

		known, err := service.IsKnownToUser(ctx, "bob", "alice")
		require.NoError(t, err)
		assert.False(t, known)
	})

	t.Run("forget removes the relation", func(t *testing.T) {
		require.NoError(t, rc.FlushAll(ctx))
		require.NoError(t, service.MarkKnown(ctx, "alice", "bob"))
		require.NoError(t, service.Forget(ctx, "alice", "bob"))

		known, err := service.IsKnownToUser(ctx, "alice", "bob")
		require.NoError(t, err)
		assert.False(t, known)
	})

	t.Run("anonymous visitor is never known", func(t *testing.T) {
		require.NoError(t, rc.FlushAll(ctx))

		known, err := service.IsKnownToUser(ctx, "alice", "")
		require.NoError(t, err)
		assert.False(t, known)
	})
}
