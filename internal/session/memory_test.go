package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medagenda/agenda-api/internal/model"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	ctx := context.Background()

	state := model.NewViewModelState(time.Date(2025, 11, 15, 0, 0, 0, 0, time.UTC), []string{"C1"})
	id, err := store.Create(ctx, state)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	got, err := store.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, model.ViewWeek, got.View)
	assert.Equal(t, []string{"C1"}, got.VisibleCalendarIDs)

	got.View = model.ViewMonth
	require.NoError(t, store.Save(ctx, id, got))

	got, err = store.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, model.ViewMonth, got.View)

	require.NoError(t, store.Delete(ctx, id))
	_, err = store.Get(ctx, id)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreUnknownID(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	_, err := store.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}
