package repositories_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/retailcore/pos-gateway/internal/errors"
	"github.com/retailcore/pos-gateway/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartStore(t *testing.T) {
	ctx := t.Context()

	t.Run("Create and Get round trip", func(t *testing.T) {
		// Arrange
		store := repositories.NewCartStore()

		// Act
		created := store.Create(ctx)
		got, err := store.Get(ctx, created.ID)

		// Assert
		require.NoError(t, err)
		assert.Same(t, created, got, "Get should return the same cart instance")
		assert.Equal(t, 1, store.Len())
	})

	t.Run("Get unknown cart returns not found", func(t *testing.T) {
		// Arrange
		store := repositories.NewCartStore()

		// Act
		_, err := store.Get(ctx, uuid.New())

		// Assert
		require.Error(t, err)

		appErr, ok := errors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, errors.ErrCodeNotFound, appErr.Code)
	})

	t.Run("Delete removes the cart", func(t *testing.T) {
		// Arrange
		store := repositories.NewCartStore()
		created := store.Create(ctx)

		// Act
		store.Delete(ctx, created.ID)

		// Assert
		_, err := store.Get(ctx, created.ID)
		require.Error(t, err)
		assert.Equal(t, 0, store.Len())
	})

	t.Run("Delete unknown cart is a no-op", func(t *testing.T) {
		// Arrange
		store := repositories.NewCartStore()
		store.Create(ctx)

		// Act
		store.Delete(ctx, uuid.New())

		// Assert
		assert.Equal(t, 1, store.Len())
	})
}

func TestDraftStore(t *testing.T) {
	ctx := t.Context()

	t.Run("Create and Get round trip", func(t *testing.T) {
		// Arrange
		store := repositories.NewDraftStore()

		// Act
		created := store.Create(ctx)
		got, err := store.Get(ctx, created.ID)

		// Assert
		require.NoError(t, err)
		assert.Same(t, created, got)
	})

	t.Run("Get unknown draft returns not found", func(t *testing.T) {
		// Arrange
		store := repositories.NewDraftStore()

		// Act
		_, err := store.Get(ctx, uuid.New())

		// Assert
		require.Error(t, err)

		appErr, ok := errors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, errors.ErrCodeNotFound, appErr.Code)
	})

	t.Run("Delete removes the draft", func(t *testing.T) {
		// Arrange
		store := repositories.NewDraftStore()
		created := store.Create(ctx)

		// Act
		store.Delete(ctx, created.ID)

		// Assert
		_, err := store.Get(ctx, created.ID)
		require.Error(t, err)
	})
}
