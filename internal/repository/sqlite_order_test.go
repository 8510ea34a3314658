package repository

import (
	"context"
	"testing"

	"github.com/bakeryops/ovenplan/internal/contract"
	"github.com/bakeryops/ovenplan/internal/domain"
	"github.com/bakeryops/ovenplan/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderRepo_CreateGetUpdateState(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	repo := NewSQLiteOrderRepo(database)

	o := testutil.NewTestOrder("ORD-7", "rye", 250)
	require.NoError(t, repo.Create(ctx, o))

	got, err := repo.GetByKey(ctx, "ORD-7")
	require.NoError(t, err)
	assert.Equal(t, domain.CascadeCommitted, got.State)
	assert.Equal(t, 250, got.Quantity)

	require.NoError(t, repo.UpdateState(ctx, "ORD-7", domain.CascadeDeleted))
	got, err = repo.GetByKey(ctx, "ORD-7")
	require.NoError(t, err)
	assert.Equal(t, domain.CascadeDeleted, got.State)
}

func TestOrderRepo_NotFound(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	repo := NewSQLiteOrderRepo(database)

	_, err := repo.GetByKey(ctx, "MISSING")
	assert.ErrorIs(t, err, contract.ErrOrderNotFound)

	err = repo.UpdateState(ctx, "MISSING", domain.CascadeDeleted)
	assert.ErrorIs(t, err, contract.ErrOrderNotFound)
}

func TestOrderSequenceRepo_Monotonic(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	repo := NewSQLiteOrderSequenceRepo(database)

	first, err := repo.NextOrderNumber(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, first)

	for i := 2; i <= 10; i++ {
		n, err := repo.NextOrderNumber(ctx)
		require.NoError(t, err)
		assert.Equal(t, i, n)
	}
}
