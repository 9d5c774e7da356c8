package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"correlativos/pkg/platform/sentinel"
)

func TestInMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewInMemory()

	t.Run("GetByID for missing id returns not found", func(t *testing.T) {
		_, err := store.GetByID(ctx, 99)
		require.Error(t, err)
		assert.True(t, errors.Is(err, sentinel.ErrNotFound))
	})

	t.Run("Put then GetByID round-trips", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, ActivityType{ID: 3, Name: "Informe", Sigla: "INF"}))

		at, err := store.GetByID(ctx, 3)
		require.NoError(t, err)
		assert.Equal(t, "Informe", at.Name)
		assert.Equal(t, "INF", at.Sigla)
		assert.True(t, at.HasSigla())
	})

	t.Run("List returns types ordered by id", func(t *testing.T) {
		require.NoError(t, Seed(ctx, store, DefaultTypes()))

		types, err := store.List(ctx)
		require.NoError(t, err)
		require.Len(t, types, 4)
		for i := 1; i < len(types); i++ {
			assert.Less(t, types[i-1].ID, types[i].ID)
		}
	})

	t.Run("type without sigla is detectable", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, ActivityType{ID: 7, Name: "Sin sigla"}))

		at, err := store.GetByID(ctx, 7)
		require.NoError(t, err)
		assert.False(t, at.HasSigla())
	})
}
