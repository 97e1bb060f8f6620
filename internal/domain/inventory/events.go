package inventory

import "time"

// StockRemovedEvent is emitted after a sale takes units out of the catalog.
type StockRemovedEvent struct {
	OrderID    string
	ProductID  string
	Quantity   int
	Remaining  int
	OccurredAt time.Time
}

func (StockRemovedEvent) EventName() string { return "inventory.stock_removed" }

func NewStockRemovedEvent(orderID, productID string, quantity, remaining int) StockRemovedEvent {
	return StockRemovedEvent{
		OrderID:    orderID,
		ProductID:  productID,
		Quantity:   quantity,
		Remaining:  remaining,
		OccurredAt: time.Now().UTC(),
	}
}

// StockLowEvent is emitted when remaining stock drops to the reorder threshold.
type StockLowEvent struct {
	ProductID  string
	Remaining  int
	Threshold  int
	OccurredAt time.Time
}

func (StockLowEvent) EventName() string { return "inventory.stock_low" }

func NewStockLowEvent(productID string, remaining, threshold int) StockLowEvent {
	return StockLowEvent{
		ProductID:  productID,
		Remaining:  remaining,
		Threshold:  threshold,
		OccurredAt: time.Now().UTC(),
	}
}

// RestockedEvent is emitted when a reorder adds units back to the catalog.
type RestockedEvent struct {
	ProductID  string
	Quantity   int
	StockLevel int
	OccurredAt time.Time
}

func (RestockedEvent) EventName() string { return "inventory.restocked" }

func NewRestockedEvent(productID string, quantity, level int) RestockedEvent {
	return RestockedEvent{
		ProductID:  productID,
		Quantity:   quantity,
		StockLevel: level,
		OccurredAt: time.Now().UTC(),
	}
}
