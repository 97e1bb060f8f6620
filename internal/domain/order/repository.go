package order

import "context"

// Repository keeps the orders of the running session.
type Repository interface {
	Insert(ctx context.Context, order *Order) error
	Get(ctx context.Context, id string) (*Order, error)
	Update(ctx context.Context, order *Order) error
	List(ctx context.Context) ([]*Order, error)
	Delete(ctx context.Context, id string) error
}
