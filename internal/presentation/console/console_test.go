package console

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	appInventory "github.com/Zhima-Mochi/minishop-pos/internal/application/inventory"
	appOrder "github.com/Zhima-Mochi/minishop-pos/internal/application/order"
	dominv "github.com/Zhima-Mochi/minishop-pos/internal/domain/inventory"
	domorder "github.com/Zhima-Mochi/minishop-pos/internal/domain/order"
	"github.com/Zhima-Mochi/minishop-pos/internal/infrastructure/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedID string

func (f fixedID) NewID() string { return string(f) }

type terminal struct {
	catalog *memory.Catalog
	orders  *appOrder.Service
	out     *bytes.Buffer
}

func newTerminal(capacity int) terminal {
	catalog := memory.MustNewCatalog(dominv.SeedProducts())
	repo := memory.NewOrderRepository()
	addPurchase := appOrder.NewAddPurchaseUseCase(repo, catalog, nil, nil, 1)
	clock := appOrder.ClockFunc(func() time.Time {
		return time.Date(2024, time.June, 1, 9, 30, 0, 0, time.UTC)
	})
	orders := appOrder.NewService(repo, fixedID("INV-1"), clock, nil, addPurchase,
		appOrder.Settings{Store: dominv.DefaultStoreName, Capacity: capacity}, nil)
	return terminal{catalog: catalog, orders: orders, out: &bytes.Buffer{}}
}

func (tm terminal) run(t *testing.T, lines ...string) string {
	t.Helper()
	in := strings.NewReader(strings.Join(lines, "\n") + "\n")
	c := New(in, tm.out, tm.orders,
		appInventory.NewService(tm.catalog, nil),
		appInventory.NewRestockUseCase(tm.catalog, nil, nil))
	require.NoError(t, c.Run(context.Background()))
	return tm.out.String()
}

func TestConsole_DeliveredInsuredSale(t *testing.T) {
	tm := newTerminal(6)
	out := tm.run(t,
		"A", "Ava Smith", "1 George St", "Australia", "0400 000 000",
		"C", "p1", "2",
		"Y",
		"Y", "Australia", "Sydney",
		"Y",
	)

	assert.Contains(t, out, "Toy Universe Sales System")
	assert.Contains(t, out, "Invoice INV-1 started for Ava Smith")
	assert.Contains(t, out, "P1 | Lego City Garbage Truck")
	assert.Contains(t, out, "The stock has been ordered successfully")
	assert.Contains(t, out, "P1 - Quantity of stock remaining - 6")
	assert.Contains(t, out, "Australia - $9.95")
	assert.Contains(t, out, "Grand Total Cost:    $75.90")
	assert.Contains(t, out, "Delivery Location: Sydney - Australia")
	assert.Contains(t, out, "Invoices finalised: 1")
	assert.Contains(t, out, "Revenue: $75.90")
}

func TestConsole_PurchaseErrors(t *testing.T) {
	tm := newTerminal(6)
	out := tm.run(t,
		"C",
		"A", "Ava Smith", "1 George St", "Australia", "0400 000 000",
		"C", "P9", "1",
		"C", "P1", "many",
		"C", "P1", "0",
		"C", "P5", "3",
		"Q",
		"X",
	)

	assert.Contains(t, out, "There is no invoice yet, please start a new invoice first")
	assert.Contains(t, out, "Error, the product ID was invalid")
	assert.Equal(t, 2, strings.Count(out, "Error, you have entered an invalid quantity"))
	assert.Contains(t, out, "Error, the quantity entered exceeds Toy Universe's current stock levels")
	assert.Contains(t, out, "You have entered an invalid choice, please try again")
	assert.Contains(t, out, "Invoices finalised: 0")

	stock, err := tm.catalog.StockOf(context.Background(), "P5")
	require.NoError(t, err)
	assert.Equal(t, 1, stock)
}

func TestConsole_LowStockRestock(t *testing.T) {
	tm := newTerminal(6)
	out := tm.run(t,
		"A", "Ava Smith", "1 George St", "Australia", "0400 000 000",
		"C", "P4", "1",
		"Y", "10",
		"N",
		"X",
	)

	assert.Contains(t, out, "P4 - Quantity of stock remaining - 1")
	assert.Contains(t, out, "Would you like to order stock to replenish stock levels? (Y or N)")
	assert.Contains(t, out, "Stock was ordered successfully")
	assert.Contains(t, out, "P4 - Quantity of stock remaining - 11")

	stock, err := tm.catalog.StockOf(context.Background(), "P4")
	require.NoError(t, err)
	assert.Equal(t, 11, stock)
}

func TestConsole_FullOrderFinalizes(t *testing.T) {
	tm := newTerminal(1)
	out := tm.run(t,
		"A", "Ava Smith", "1 George St", "Australia", "0400 000 000",
		"C", "P2", "1",
		"Y", "Germany", "Berlin",
		"N",
	)

	assert.Contains(t, out, "The customer has ordered the maximum amount of items")
	assert.Contains(t, out, "Delivery is not available to Germany, the order will be picked up in-store")
	assert.Contains(t, out, "Pick up in-store")
	assert.Contains(t, out, "Grand Total Cost:    $50.00")
	assert.NotContains(t, out, "Is the customer ready to finalise their order?")
}

func TestConsole_ViewAndEOF(t *testing.T) {
	tm := newTerminal(6)
	out := tm.run(t,
		"B",
		"A", "Ava Smith", "1 George St", "Australia", "0400 000 000",
		"b",
	)

	assert.Contains(t, out, "No items purchased yet.")
	assert.Contains(t, out, "Invoice ID: INV-1")
	assert.Contains(t, out, "Thank you for using the Toy Universe Sales System")
}

func TestConsole_RestockOverflowKeepsStock(t *testing.T) {
	tm := newTerminal(6)
	out := tm.run(t,
		"A", "Ava Smith", "1 George St", "Australia", "0400 000 000",
		"C", "P4", "1",
		"Y", "9223372036854775807",
		"N",
		"X",
	)

	assert.Contains(t, out, "Error, that order would exceed the maximum stock level")
	assert.NotContains(t, out, "Stock was ordered successfully")

	stock, err := tm.catalog.StockOf(context.Background(), "P4")
	require.NoError(t, err)
	assert.Equal(t, 1, stock)
}

func TestConsole_NewInvoiceDiscardsUnfinished(t *testing.T) {
	tm := newTerminal(6)
	out := tm.run(t,
		"A", "Ava Smith", "1 George St", "Australia", "0400 000 000",
		"C", "P2", "1",
		"N",
		"A", "Bo Lee", "2 Pitt St", "Australia", "0400 111 111",
		"X",
	)

	assert.Contains(t, out, "Items that can still be added to this invoice - 5")
	assert.Contains(t, out, "Invoices finalised: 0")
	assert.Contains(t, out, "Invoices discarded: 1")
	assert.Contains(t, out, "Invoices left open: 1")
}

type brokenOrders struct{ *appOrder.Service }

func (brokenOrders) ActiveOrder(context.Context) (*domorder.Order, error) {
	return nil, errors.New("store unavailable")
}

func TestConsole_ActiveOrderFailureStopsSession(t *testing.T) {
	tm := newTerminal(6)
	c := New(strings.NewReader("C\n"), tm.out, brokenOrders{tm.orders},
		appInventory.NewService(tm.catalog, nil),
		appInventory.NewRestockUseCase(tm.catalog, nil, nil))

	err := c.Run(context.Background())
	require.EqualError(t, err, "store unavailable")
	assert.NotContains(t, tm.out.String(), "What ID does the customer want to purchase?")
}

func TestCatalogTable(t *testing.T) {
	lines := CatalogTable(dominv.SeedProducts()[:1]).Lines()
	require.Len(t, lines, 3)
	assert.Equal(t, "ID | Description             |  Price | Quantity", lines[0])
	assert.Equal(t, "P1 | Lego City Garbage Truck | $28.00 |        8", lines[2])
}
