package ctxutil

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestEnsureTraceID(t *testing.T) {
	ctx, id := EnsureTraceID(context.Background())
	_, err := uuid.Parse(id)
	assert.NoError(t, err)
	assert.Equal(t, id, GetTraceID(ctx))

	same, again := EnsureTraceID(ctx)
	assert.Equal(t, id, again)
	assert.Equal(t, ctx, same)
}

func TestPageURL(t *testing.T) {
	assert.Empty(t, GetPageURL(context.Background()))
	ctx := SetPageURL(context.Background(), "https://api.example/items?page=2")
	assert.Equal(t, "https://api.example/items?page=2", GetPageURL(ctx))
}
