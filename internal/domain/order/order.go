package order

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound               = errors.New("order: not found")
	ErrConflict               = errors.New("order: already exists")
	ErrInvalidID              = errors.New("order: id is required")
	ErrCustomerRequired       = errors.New("order: customer name is required")
	ErrInvalidCapacity        = errors.New("order: capacity must be greater than zero")
	ErrInvalidQuantity        = errors.New("order: quantity must be greater than zero")
	ErrInvalidPrice           = errors.New("order: unit price must be zero or greater")
	ErrCapacityExceeded       = errors.New("order: line item capacity exceeded")
	ErrUnsupportedDestination = errors.New("order: delivery destination not supported")
	ErrOrderFinalized         = errors.New("order: already finalized")
)

// DefaultCapacity is the number of purchases one order accepts unless overridden.
const DefaultCapacity = 6

type Status string

const (
	StatusOpen      Status = "open"
	StatusFinalized Status = "finalized"
)

type Customer struct {
	Name        string
	Address     string
	Country     string
	PhoneNumber string
}

// LineItem is a purchase with the price captured at the time it was recorded.
type LineItem struct {
	ProductID   string
	Description string
	UnitPrice   decimal.Decimal
	Quantity    int
}

func (li LineItem) Subtotal() decimal.Decimal {
	return li.UnitPrice.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// Order is the invoice being built for one customer.
// itemTotal always equals the sum of Subtotal over items.
type Order struct {
	ID          string
	Store       string
	Customer    Customer
	Capacity    int
	CreatedAt   time.Time
	FinalizedAt time.Time

	items        []LineItem
	itemTotal    decimal.Decimal
	deliveryFee  decimal.Decimal
	insuranceFee decimal.Decimal
	destination  string
	state        OrderState
}

type Option func(*Order)

func WithCapacity(n int) Option {
	return func(o *Order) { o.Capacity = n }
}

func WithStore(name string) Option {
	return func(o *Order) { o.Store = name }
}

func New(id string, customer Customer, createdAt time.Time, opts ...Option) (*Order, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrInvalidID
	}
	if strings.TrimSpace(customer.Name) == "" {
		return nil, ErrCustomerRequired
	}

	o := &Order{
		ID:           id,
		Customer:     customer,
		Capacity:     DefaultCapacity,
		CreatedAt:    createdAt,
		itemTotal:    decimal.Zero,
		deliveryFee:  decimal.Zero,
		insuranceFee: decimal.Zero,
		state:        openState{},
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.Capacity <= 0 {
		return nil, ErrInvalidCapacity
	}
	return o, nil
}

// RecordPurchase appends a line item and adds its subtotal to the item total.
// A failed call leaves the order untouched.
func (o *Order) RecordPurchase(productID string, quantity int, description string, unitPrice decimal.Decimal) error {
	next, err := o.current().OnPurchase(o)
	if err != nil {
		return err
	}
	if o.IsFull() {
		return ErrCapacityExceeded
	}
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	if unitPrice.IsNegative() {
		return ErrInvalidPrice
	}

	item := LineItem{
		ProductID:   productID,
		Description: description,
		UnitPrice:   unitPrice,
		Quantity:    quantity,
	}
	o.items = append(o.items, item)
	o.itemTotal = o.itemTotal.Add(item.Subtotal())
	o.state = next
	return nil
}

// ApplyDelivery prices delivery to country. An unsupported country turns the
// order into an in-store pickup and returns ErrUnsupportedDestination.
func (o *Order) ApplyDelivery(city, country string) error {
	next, err := o.current().OnSurcharge(o)
	if err != nil {
		return err
	}
	o.state = next

	fee, ok := LookupDeliveryFee(country)
	if !ok {
		o.deliveryFee = decimal.Zero
		o.destination = ""
		return ErrUnsupportedDestination
	}
	o.deliveryFee = fee
	o.destination = strings.TrimSpace(city) + " - " + strings.TrimSpace(country)
	return nil
}

func (o *Order) ApplyInsurance() error {
	next, err := o.current().OnSurcharge(o)
	if err != nil {
		return err
	}
	o.state = next
	o.insuranceFee = InsuranceFee
	return nil
}

// Finalize closes the order. No purchase or surcharge is accepted afterwards.
func (o *Order) Finalize(at time.Time) error {
	next, err := o.current().OnFinalize(o)
	if err != nil {
		return err
	}
	o.state = next
	o.FinalizedAt = at
	return nil
}

func (o *Order) Status() Status { return o.current().Status() }

func (o *Order) IsFinalized() bool { return o.Status() == StatusFinalized }

func (o *Order) Items() []LineItem { return append([]LineItem(nil), o.items...) }

func (o *Order) Len() int { return len(o.items) }

func (o *Order) Remaining() int {
	if n := o.Capacity - len(o.items); n > 0 {
		return n
	}
	return 0
}

func (o *Order) IsFull() bool { return len(o.items) >= o.Capacity }

func (o *Order) ItemTotal() decimal.Decimal { return o.itemTotal }

func (o *Order) DeliveryFee() decimal.Decimal { return o.deliveryFee }

func (o *Order) InsuranceFee() decimal.Decimal { return o.insuranceFee }

// Destination is the "city - country" text, empty for in-store pickup.
func (o *Order) Destination() string { return o.destination }

func (o *Order) HasDelivery() bool { return o.destination != "" }

func (o *Order) HasInsurance() bool { return o.insuranceFee.IsPositive() }

func (o *Order) GrandTotal() decimal.Decimal {
	return o.itemTotal.Add(o.deliveryFee).Add(o.insuranceFee)
}

// Clone returns a deep copy safe to hand across repository boundaries.
func (o *Order) Clone() *Order {
	if o == nil {
		return nil
	}
	clone := *o
	clone.items = o.Items()
	return &clone
}

func (o *Order) current() OrderState {
	if o.state == nil {
		o.state = openState{}
	}
	return o.state
}
