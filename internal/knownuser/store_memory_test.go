package knownuser

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryService_IsKnownToUser(t *testing.T) {
	svc := NewInMemoryService()
	svc.MarkKnown("alice", "bob")

	known, err := svc.IsKnownToUser(context.Background(), "alice", "bob")
	require.NoError(t, err)
	assert.True(t, known)
}

func TestInMemoryService_UnknownVisitor(t *testing.T) {
	svc := NewInMemoryService()

	known, err := svc.IsKnownToUser(context.Background(), "alice", "mallory")
	require.NoError(t, err)
	assert.False(t, known)
}

func TestInMemoryService_RelationIsDirectional(t *testing.T) {
	svc := NewInMemoryService()
	svc.MarkKnown("alice", "bob")

	known, err := svc.IsKnownToUser(context.Background(), "bob", "alice")
	require.NoError(t, err)
	assert.False(t, known)
}
