//go:build integration

package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-gin-marketplace-api/internal/domains/orders/ports"
)

func TestIdempotencyStore_Integration(t *testing.T) {
	db, cleanup := setupOrdersPostgresContainer(t)
	defer cleanup()

	store := NewIdempotencyStore(db)
	ctx := context.Background()

	missing, err := store.Get(ctx, "checkout-1")
	require.NoError(t, err)
	require.Nil(t, missing)

	saved, err := store.Save(ctx, ports.IdempotencyRecord{Key: "checkout-1", RequestHash: "h1", OrderID: "order-1"})
	require.NoError(t, err)
	require.Equal(t, "order-1", saved.OrderID)
	require.False(t, saved.CreatedAt.IsZero())

	replayed, err := store.Save(ctx, ports.IdempotencyRecord{Key: "checkout-1", RequestHash: "h1", OrderID: "order-1"})
	require.NoError(t, err)
	require.Equal(t, "order-1", replayed.OrderID)

	conflict, err := store.Save(ctx, ports.IdempotencyRecord{Key: "checkout-1", RequestHash: "h2", OrderID: "order-2"})
	require.ErrorIs(t, err, ports.ErrIdempotencyConflict)
	require.Equal(t, "order-1", conflict.OrderID)

	loaded, err := store.Get(ctx, "checkout-1")
	require.NoError(t, err)
	require.Equal(t, "h1", loaded.RequestHash)
}
