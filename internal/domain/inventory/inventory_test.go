package inventory

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProduct_Validation(t *testing.T) {
	tests := []struct {
		name  string
		id    string
		price string
		stock int
		ok    bool
	}{
		{name: "valid", id: "P1", price: "28.00", stock: 8, ok: true},
		{name: "free item with no stock", id: "P9", price: "0", stock: 0, ok: true},
		{name: "blank id", id: "  ", price: "1.00", stock: 1},
		{name: "negative price", id: "P1", price: "-0.01", stock: 1},
		{name: "negative stock", id: "P1", price: "1.00", stock: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewProduct(tt.id, "desc", decimal.RequireFromString(tt.price), tt.stock)
			if tt.ok {
				require.NoError(t, err)
				assert.Equal(t, tt.stock, p.Stock)
				return
			}
			require.ErrorIs(t, err, ErrInvalidProduct)
			assert.Nil(t, p)
		})
	}
}

func TestProduct_Deduct(t *testing.T) {
	p := Product{ID: "P4", Stock: 2}

	left, err := p.Deduct(0)
	require.ErrorIs(t, err, ErrInvalidQuantity)
	assert.Equal(t, 2, left)

	left, err = p.Deduct(3)
	require.ErrorIs(t, err, ErrInsufficientStock)
	assert.Equal(t, 2, left)

	left, err = p.Deduct(2)
	require.NoError(t, err)
	assert.Equal(t, 0, left)
	assert.Equal(t, 0, p.Stock)
}

func TestProduct_Restock(t *testing.T) {
	p := Product{ID: "P5", Stock: 0}

	_, err := p.Restock(-1)
	require.ErrorIs(t, err, ErrInvalidQuantity)

	level, err := p.Restock(10)
	require.NoError(t, err)
	assert.Equal(t, 10, level)

	level, err = p.Restock(math.MaxInt)
	require.ErrorIs(t, err, ErrStockOverflow)
	assert.Equal(t, 10, level)
	assert.Equal(t, 10, p.Stock)

	level, err = p.Restock(math.MaxInt - 10)
	require.NoError(t, err)
	assert.Equal(t, math.MaxInt, level)
}

func TestNormalizeID(t *testing.T) {
	assert.Equal(t, "P3", NormalizeID(" p3 "))
	assert.Equal(t, "", NormalizeID("   "))
}

func TestSeedProducts(t *testing.T) {
	seed := SeedProducts()
	require.Len(t, seed, 6)

	seen := map[string]bool{}
	for _, p := range seed {
		require.NoError(t, p.Validate())
		assert.False(t, seen[p.ID], "duplicate id %s", p.ID)
		seen[p.ID] = true
	}
	assert.Equal(t, "P1", seed[0].ID)
	assert.True(t, seed[3].UnitPrice.Equal(decimal.RequireFromString("56.99")))
	assert.Equal(t, 1, seed[4].Stock)
}
