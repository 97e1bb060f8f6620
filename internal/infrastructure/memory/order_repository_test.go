package memory

import (
	"context"
	"testing"
	"time"

	domain "github.com/Zhima-Mochi/minishop-pos/internal/domain/order"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOrder(t *testing.T, id string) *domain.Order {
	t.Helper()
	o, err := domain.New(id, domain.Customer{Name: "Kim"}, time.Now())
	require.NoError(t, err)
	return o
}

func TestOrderRepository_InsertGet(t *testing.T) {
	ctx := context.Background()
	repo := NewOrderRepository()

	o := newOrder(t, "A")
	require.NoError(t, repo.Insert(ctx, o))
	require.ErrorIs(t, repo.Insert(ctx, o), domain.ErrConflict)
	require.Error(t, repo.Insert(ctx, nil))

	// the stored copy does not follow later changes to the caller's order
	require.NoError(t, o.RecordPurchase("P1", 1, "x", decimal.NewFromInt(1)))
	got, err := repo.Get(ctx, "A")
	require.NoError(t, err)
	assert.Equal(t, 0, got.Len())

	_, err = repo.Get(ctx, "B")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestOrderRepository_Update(t *testing.T) {
	ctx := context.Background()
	repo := NewOrderRepository()

	require.ErrorIs(t, repo.Update(ctx, newOrder(t, "A")), domain.ErrNotFound)

	o := newOrder(t, "A")
	require.NoError(t, repo.Insert(ctx, o))
	require.NoError(t, o.Finalize(time.Now()))
	require.NoError(t, repo.Update(ctx, o))

	got, err := repo.Get(ctx, "A")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusFinalized, got.Status())
}

func TestOrderRepository_ListKeepsInsertionOrder(t *testing.T) {
	ctx := context.Background()
	repo := NewOrderRepository()

	for _, id := range []string{"C", "A", "B"} {
		require.NoError(t, repo.Insert(ctx, newOrder(t, id)))
	}

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "C", list[0].ID)
	assert.Equal(t, "A", list[1].ID)
	assert.Equal(t, "B", list[2].ID)
}

func TestOrderRepository_Delete(t *testing.T) {
	ctx := context.Background()
	repo := NewOrderRepository()

	require.NoError(t, repo.Insert(ctx, newOrder(t, "A")))
	require.NoError(t, repo.Insert(ctx, newOrder(t, "B")))

	require.NoError(t, repo.Delete(ctx, "A"))
	require.ErrorIs(t, repo.Delete(ctx, "A"), domain.ErrNotFound)

	_, err := repo.Get(ctx, "A")
	require.ErrorIs(t, err, domain.ErrNotFound)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "B", all[0].ID)
}
