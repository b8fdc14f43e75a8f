package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/flow/model/record"
	"github.com/viant/flow/service/dao"
)

func TestService(t *testing.T) {
	ctx := context.Background()
	store := New(0)
	started := time.Now()

	assert.ErrorIs(t, store.Save(ctx, nil), dao.ErrNilEntity)
	assert.ErrorIs(t, store.Save(ctx, &record.Record{}), dao.ErrInvalidID)

	r1 := &record.Record{ID: "r1", Name: "read", Status: "success", StartedAt: started}
	r2 := &record.Record{ID: "r2", Name: "reload", Status: "failure", StartedAt: started.Add(time.Second)}
	require.NoError(t, store.Save(ctx, r2))
	require.NoError(t, store.Save(ctx, r1))

	loaded, err := store.Load(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, r1, loaded)
	loaded.Name = "mutated"
	again, _ := store.Load(ctx, "r1")
	assert.Equal(t, "read", again.Name)

	all, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "r1", all[0].ID)

	failed, err := store.List(ctx, dao.NewParameter(ParamStatus, "failure"))
	require.NoError(t, err)
	require.Len(t, failed, 1)
	assert.Equal(t, "r2", failed[0].ID)

	named, err := store.List(ctx, dao.NewParameter(ParamName, "read", "reload"))
	require.NoError(t, err)
	assert.Len(t, named, 2)

	require.NoError(t, store.Delete(ctx, "r1"))
	_, err = store.Load(ctx, "r1")
	assert.ErrorIs(t, err, dao.ErrNotFound)
	assert.ErrorIs(t, store.Delete(ctx, "r1"), dao.ErrNotFound)
	assert.ErrorIs(t, store.Delete(ctx, ""), dao.ErrInvalidID)
}

func TestService_Limit(t *testing.T) {
	ctx := context.Background()
	store := New(2)
	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, store.Save(ctx, &record.Record{ID: id}))
	}
	_, err := store.Load(ctx, "a")
	assert.ErrorIs(t, err, dao.ErrNotFound)
	list, _ := store.List(ctx)
	assert.Len(t, list, 2)
}
