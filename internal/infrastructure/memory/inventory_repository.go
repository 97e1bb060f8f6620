package memory

import (
	"context"
	"fmt"
	"sync"

	domain "github.com/Zhima-Mochi/minishop-pos/internal/domain/inventory"
	"github.com/shopspring/decimal"
)

var _ domain.Catalog = (*Catalog)(nil)

// Catalog is a map-backed product catalog. Every check-then-mutate happens
// under one lock so stock never goes negative.
type Catalog struct {
	mu       sync.RWMutex
	order    []string
	products map[string]*domain.Product
}

func NewCatalog(seed []domain.Product) (*Catalog, error) {
	c := &Catalog{
		order:    make([]string, 0, len(seed)),
		products: make(map[string]*domain.Product, len(seed)),
	}
	for _, p := range seed {
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("catalog seed: %w", err)
		}
		if _, exists := c.products[p.ID]; exists {
			return nil, fmt.Errorf("catalog seed: %w: duplicate id %q", domain.ErrInvalidProduct, p.ID)
		}
		c.products[p.ID] = cloneProduct(&p)
		c.order = append(c.order, p.ID)
	}
	return c, nil
}

// MustNewCatalog is NewCatalog for seeds known to be valid at startup.
func MustNewCatalog(seed []domain.Product) *Catalog {
	c, err := NewCatalog(seed)
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Catalog) ProductIDs(ctx context.Context) []string {
	_ = ctx

	c.mu.RLock()
	defer c.mu.RUnlock()

	return append([]string(nil), c.order...)
}

func (c *Catalog) Product(ctx context.Context, id string) (domain.Product, error) {
	_ = ctx

	c.mu.RLock()
	defer c.mu.RUnlock()

	p, ok := c.products[id]
	if !ok {
		return domain.Product{}, domain.ErrNotFound
	}
	return *p, nil
}

func (c *Catalog) Describe(ctx context.Context, id string) (string, error) {
	p, err := c.Product(ctx, id)
	if err != nil {
		return "", err
	}
	return p.Description, nil
}

func (c *Catalog) PriceOf(ctx context.Context, id string) (decimal.Decimal, error) {
	p, err := c.Product(ctx, id)
	if err != nil {
		return decimal.Zero, err
	}
	return p.UnitPrice, nil
}

func (c *Catalog) StockOf(ctx context.Context, id string) (int, error) {
	p, err := c.Product(ctx, id)
	if err != nil {
		return 0, err
	}
	return p.Stock, nil
}

func (c *Catalog) RemoveStock(ctx context.Context, id string, quantity int) (int, error) {
	_ = ctx
	if quantity <= 0 {
		return 0, domain.ErrInvalidQuantity
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	p, ok := c.products[id]
	if !ok {
		return 0, domain.ErrNotFound
	}
	return p.Deduct(quantity)
}

func (c *Catalog) AddStock(ctx context.Context, id string, quantity int) (int, error) {
	_ = ctx
	if quantity <= 0 {
		return 0, domain.ErrInvalidQuantity
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	p, ok := c.products[id]
	if !ok {
		return 0, domain.ErrNotFound
	}
	return p.Restock(quantity)
}

func cloneProduct(p *domain.Product) *domain.Product {
	if p == nil {
		return nil
	}
	clone := *p
	return &clone
}
