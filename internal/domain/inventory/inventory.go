package inventory

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound          = errors.New("inventory: product not found")
	ErrInvalidQuantity   = errors.New("inventory: quantity must be greater than zero")
	ErrInsufficientStock = errors.New("inventory: insufficient stock")
	ErrInvalidProduct    = errors.New("inventory: invalid product")
	ErrStockOverflow     = errors.New("inventory: stock level would overflow")
)

// Product is one catalog entry. Stock is only changed through Deduct and Restock.
type Product struct {
	ID          string
	Description string
	UnitPrice   decimal.Decimal
	Stock       int
}

func NewProduct(id, description string, unitPrice decimal.Decimal, stock int) (*Product, error) {
	p := &Product{
		ID:          id,
		Description: description,
		UnitPrice:   unitPrice,
		Stock:       stock,
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p Product) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidProduct)
	}
	if p.UnitPrice.IsNegative() {
		return fmt.Errorf("%w: unit price must be zero or greater", ErrInvalidProduct)
	}
	if p.Stock < 0 {
		return fmt.Errorf("%w: stock must be zero or greater", ErrInvalidProduct)
	}
	return nil
}

// Deduct removes quantity units and returns the remaining stock.
func (p *Product) Deduct(quantity int) (int, error) {
	if quantity <= 0 {
		return p.Stock, ErrInvalidQuantity
	}
	if quantity > p.Stock {
		return p.Stock, ErrInsufficientStock
	}
	p.Stock -= quantity
	return p.Stock, nil
}

// Restock adds quantity units and returns the new stock level. The level is
// left unchanged when the sum would not fit in an int.
func (p *Product) Restock(quantity int) (int, error) {
	if quantity <= 0 {
		return p.Stock, ErrInvalidQuantity
	}
	if quantity > math.MaxInt-p.Stock {
		return p.Stock, ErrStockOverflow
	}
	p.Stock += quantity
	return p.Stock, nil
}

// NormalizeID maps operator input onto the catalog's upper-case ids.
func NormalizeID(id string) string {
	return strings.ToUpper(strings.TrimSpace(id))
}
