package inventory

import (
	"context"

	"github.com/shopspring/decimal"
)

// Catalog is the authoritative source of product metadata and stock counts.
// RemoveStock reports ErrInvalidQuantity before it looks the product up, and
// ErrNotFound before ErrInsufficientStock.
type Catalog interface {
	ProductIDs(ctx context.Context) []string
	Product(ctx context.Context, id string) (Product, error)
	Describe(ctx context.Context, id string) (string, error)
	PriceOf(ctx context.Context, id string) (decimal.Decimal, error)
	StockOf(ctx context.Context, id string) (int, error)
	RemoveStock(ctx context.Context, id string, quantity int) (int, error)
	AddStock(ctx context.Context, id string, quantity int) (int, error)
}
