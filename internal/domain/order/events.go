package order

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStartedEvent is emitted when the operator opens a new invoice.
type OrderStartedEvent struct {
	OrderID    string
	Customer   string
	Capacity   int
	OccurredAt time.Time
}

func (OrderStartedEvent) EventName() string { return "order.started" }

func NewOrderStartedEvent(o *Order) OrderStartedEvent {
	return OrderStartedEvent{
		OrderID:    o.ID,
		Customer:   o.Customer.Name,
		Capacity:   o.Capacity,
		OccurredAt: time.Now().UTC(),
	}
}

// PurchaseRecordedEvent is emitted after a line item lands on an order.
type PurchaseRecordedEvent struct {
	OrderID    string
	LineNo     int
	ProductID  string
	Quantity   int
	Subtotal   decimal.Decimal
	OccurredAt time.Time
}

func (PurchaseRecordedEvent) EventName() string { return "order.purchase_recorded" }

func NewPurchaseRecordedEvent(o *Order, item LineItem) PurchaseRecordedEvent {
	return PurchaseRecordedEvent{
		OrderID:    o.ID,
		LineNo:     o.Len(),
		ProductID:  item.ProductID,
		Quantity:   item.Quantity,
		Subtotal:   item.Subtotal(),
		OccurredAt: time.Now().UTC(),
	}
}

// OrderFinalizedEvent carries the closing totals of an invoice.
type OrderFinalizedEvent struct {
	OrderID      string
	LineItems    int
	ItemTotal    decimal.Decimal
	DeliveryFee  decimal.Decimal
	InsuranceFee decimal.Decimal
	GrandTotal   decimal.Decimal
	Delivered    bool
	Insured      bool
	OccurredAt   time.Time
}

func (OrderFinalizedEvent) EventName() string { return "order.finalized" }

func NewOrderFinalizedEvent(o *Order) OrderFinalizedEvent {
	return OrderFinalizedEvent{
		OrderID:      o.ID,
		LineItems:    o.Len(),
		ItemTotal:    o.ItemTotal(),
		DeliveryFee:  o.DeliveryFee(),
		InsuranceFee: o.InsuranceFee(),
		GrandTotal:   o.GrandTotal(),
		Delivered:    o.HasDelivery(),
		Insured:      o.HasInsurance(),
		OccurredAt:   o.FinalizedAt,
	}
}
