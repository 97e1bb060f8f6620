// Package console is the line-based sales terminal.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	appInventory "github.com/Zhima-Mochi/minishop-pos/internal/application/inventory"
	appOrder "github.com/Zhima-Mochi/minishop-pos/internal/application/order"
	dominv "github.com/Zhima-Mochi/minishop-pos/internal/domain/inventory"
	domorder "github.com/Zhima-Mochi/minishop-pos/internal/domain/order"
	"github.com/Zhima-Mochi/minishop-pos/internal/observability"
	"github.com/Zhima-Mochi/minishop-pos/internal/pkg/textable"
)

// OrderService is the session API the terminal drives.
type OrderService interface {
	StartOrder(ctx context.Context, customer domorder.Customer) (*domorder.Order, error)
	ActiveOrder(ctx context.Context) (*domorder.Order, error)
	AddPurchase(ctx context.Context, productID string, quantity int) (*appOrder.AddPurchaseResult, error)
	ApplyDelivery(ctx context.Context, city, country string) (*domorder.Order, error)
	ApplyInsurance(ctx context.Context) (*domorder.Order, error)
	Preview(ctx context.Context) (string, error)
	Finalize(ctx context.Context) (*domorder.Order, error)
	Summary(ctx context.Context) (appOrder.Summary, error)
}

type CatalogService interface {
	Products(ctx context.Context) ([]dominv.Product, error)
}

type Restocker interface {
	Execute(ctx context.Context, cmd appInventory.RestockInput) (*appInventory.RestockResult, error)
}

type Console struct {
	in      *bufio.Scanner
	out     io.Writer
	orders  OrderService
	catalog CatalogService
	restock Restocker
	store   string
	log     observability.Logger
}

type Option func(*Console)

// WithStoreName sets the name used in the banner and messages.
func WithStoreName(name string) Option {
	return func(c *Console) { c.store = name }
}

func WithLogger(l observability.Logger) Option {
	return func(c *Console) {
		if l != nil {
			c.log = l
		}
	}
}

func New(in io.Reader, out io.Writer, orders OrderService, catalog CatalogService, restock Restocker, opts ...Option) *Console {
	c := &Console{
		in:      bufio.NewScanner(in),
		out:     out,
		orders:  orders,
		catalog: catalog,
		restock: restock,
		store:   dominv.DefaultStoreName,
		log:     observability.NopLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.With(observability.F("component", "console"))
	return c
}

// Run serves the menu until the operator exits, an order is finalized or the
// input ends. It always prints the session summary before returning.
func (c *Console) Run(ctx context.Context) (err error) {
	defer func() {
		if sumErr := c.printSummary(ctx); err == nil {
			err = sumErr
		}
	}()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		choice, err := c.prompt(c.menu())
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		done := false
		switch strings.ToUpper(choice) {
		case "A":
			err = c.startInvoice(ctx)
		case "B":
			err = c.viewInvoice(ctx)
		case "C":
			done, err = c.addPurchase(ctx)
		case "X":
			return nil
		default:
			c.println("You have entered an invalid choice, please try again")
			c.println()
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil || done {
			return err
		}
	}
}

func (c *Console) menu() string {
	return c.store + " Sales System\n" +
		"What would you like to do?\n" +
		"A) Start a new invoice\n" +
		"B) View purchase information\n" +
		"C) Add purchase\n" +
		"X) Exit sales system"
}

func (c *Console) startInvoice(ctx context.Context) error {
	var customer domorder.Customer
	var err error
	if customer.Name, err = c.prompt("What is the customers name"); err != nil {
		return err
	}
	if customer.Address, err = c.prompt("What is the customers address"); err != nil {
		return err
	}
	if customer.Country, err = c.prompt("What country does the customer live in"); err != nil {
		return err
	}
	if customer.PhoneNumber, err = c.prompt("What is the customers phone number"); err != nil {
		return err
	}
	c.println()

	o, err := c.orders.StartOrder(ctx, customer)
	switch {
	case errors.Is(err, domorder.ErrCustomerRequired):
		c.println("Error, the customer name is required")
	case err != nil:
		c.log.Error("start_invoice_failed", observability.Err(err))
		c.println("Error, the invoice could not be started")
	default:
		c.printf("Invoice %s started for %s\n", o.ID, o.Customer.Name)
	}
	c.println()
	return nil
}

func (c *Console) viewInvoice(ctx context.Context) error {
	receipt, err := c.orders.Preview(ctx)
	if errors.Is(err, appOrder.ErrNoActiveOrder) {
		c.println("There is no invoice yet, please start a new invoice first")
		c.println()
		return nil
	}
	if err != nil {
		return err
	}
	c.println(receipt)
	return nil
}

// addPurchase reports true when the order was finalized.
func (c *Console) addPurchase(ctx context.Context) (bool, error) {
	if _, err := c.orders.ActiveOrder(ctx); errors.Is(err, appOrder.ErrNoActiveOrder) {
		c.println("There is no invoice yet, please start a new invoice first")
		c.println()
		return false, nil
	} else if err != nil {
		return false, err
	}

	if err := c.printCatalog(ctx); err != nil {
		return false, err
	}

	productID, err := c.prompt("What ID does the customer want to purchase? (e.g. P1)")
	if err != nil {
		return false, err
	}
	quantity, err := c.promptInt("Quantity customer requires?")
	if errors.Is(err, errNotANumber) {
		c.println("Error, you have entered an invalid quantity")
		c.println()
		return false, nil
	}
	if err != nil {
		return false, err
	}

	res, err := c.orders.AddPurchase(ctx, productID, quantity)
	if err != nil {
		c.println(c.purchaseError(err))
		c.println()
		return false, nil
	}

	c.println("The stock has been ordered successfully")
	c.printf("%s - Quantity of stock remaining - %d\n", res.ProductID, res.Remaining)

	if res.LowStock {
		if err := c.reorder(ctx, res.ProductID, res.Remaining); err != nil {
			return false, err
		}
	}

	if res.OrderFull {
		c.println()
		c.println("The customer has ordered the maximum amount of items")
		c.println()
		return true, c.finalize(ctx)
	}

	c.printf("Items that can still be added to this invoice - %d\n", res.SlotsLeft)
	c.println()
	answer, err := c.prompt("Is the customer ready to finalise their order? (Y or N)")
	if err != nil {
		return false, err
	}
	if !isYes(answer) {
		return false, nil
	}
	return true, c.finalize(ctx)
}

func (c *Console) purchaseError(err error) string {
	switch {
	case errors.Is(err, dominv.ErrInvalidQuantity), errors.Is(err, domorder.ErrInvalidQuantity):
		return "Error, you have entered an invalid quantity"
	case errors.Is(err, dominv.ErrNotFound):
		return "Error, the product ID was invalid"
	case errors.Is(err, dominv.ErrInsufficientStock):
		return fmt.Sprintf("Error, the quantity entered exceeds %s's current stock levels", c.store)
	case errors.Is(err, domorder.ErrCapacityExceeded):
		return "Error, the invoice already holds the maximum amount of items"
	case errors.Is(err, domorder.ErrOrderFinalized):
		return "Error, this invoice has already been finalised"
	default:
		c.log.Error("add_purchase_failed", observability.Err(err))
		return "Error, the purchase could not be recorded"
	}
}

func (c *Console) reorder(ctx context.Context, productID string, remaining int) error {
	c.println()
	answer, err := c.prompt("Would you like to order stock to replenish stock levels? (Y or N)")
	if err != nil {
		return err
	}
	if !isYes(answer) {
		return nil
	}

	quantity, err := c.promptInt("How many units should be ordered?")
	if errors.Is(err, errNotANumber) {
		quantity = 0
	} else if err != nil {
		return err
	}

	res, err := c.restock.Execute(ctx, appInventory.RestockInput{ProductID: productID, Quantity: quantity})
	if err != nil {
		switch {
		case errors.Is(err, dominv.ErrInvalidQuantity):
			c.println("Error, you have entered an invalid quantity")
		case errors.Is(err, dominv.ErrStockOverflow):
			c.println("Error, that order would exceed the maximum stock level")
		default:
			c.log.Error("restock_failed", observability.Err(err))
			c.println("Error, the stock could not be ordered")
		}
		c.printf("%s - Quantity of stock remaining - %d\n", productID, remaining)
		return nil
	}

	c.println("Stock was ordered successfully")
	c.printf("%s - Quantity of stock remaining - %d\n", res.ProductID, res.StockLevel)
	return nil
}

func (c *Console) finalize(ctx context.Context) error {
	c.println("Delivery")
	regions := make([]string, 0, 3)
	for _, r := range domorder.DeliveryRates() {
		regions = append(regions, r.Region)
	}
	c.printf("Delivery is only available in %s\n", strings.Join(regions, "/"))
	c.println()
	for _, r := range domorder.DeliveryRates() {
		c.printf("%s - %s\n", r.Region, domorder.FormatMoney(r.Fee))
	}
	c.println()

	answer, err := c.prompt("Does the customer require delivery? (Y or N)")
	if err != nil {
		return err
	}
	if isYes(answer) {
		country, err := c.prompt("Enter the Country the customer would like the goods shipped to")
		if err != nil {
			return err
		}
		city, err := c.prompt("Enter the Town/City the customer would like the goods shipped to")
		if err != nil {
			return err
		}
		if _, err := c.orders.ApplyDelivery(ctx, city, country); errors.Is(err, domorder.ErrUnsupportedDestination) {
			c.printf("Delivery is not available to %s, the order will be picked up in-store\n", country)
		} else if err != nil {
			return err
		}
	}

	answer, err = c.prompt(fmt.Sprintf("For %s, would the customer like insurance for their purchase? (Y or N)",
		domorder.FormatMoney(domorder.InsuranceFee)))
	if err != nil {
		return err
	}
	if isYes(answer) {
		if _, err := c.orders.ApplyInsurance(ctx); err != nil {
			return err
		}
	}

	final, err := c.orders.Finalize(ctx)
	if err != nil {
		return err
	}
	c.println()
	c.println(final.Render())
	return nil
}

// CatalogTable lays out products as ID | Description | Price | Quantity.
func CatalogTable(products []dominv.Product) *textable.Table {
	t := textable.New([]textable.Column{
		{Header: "ID"},
		{Header: "Description"},
		{Header: "Price", Align: textable.AlignRight},
		{Header: "Quantity", Align: textable.AlignRight},
	})
	for _, p := range products {
		t.AddRow(p.ID, p.Description, domorder.FormatMoney(p.UnitPrice), strconv.Itoa(p.Stock))
	}
	return t
}

func (c *Console) printCatalog(ctx context.Context) error {
	products, err := c.catalog.Products(ctx)
	if err != nil {
		return err
	}
	c.printf("%s Inventory\n", c.store)
	c.println(CatalogTable(products).String())
	return nil
}

func (c *Console) printSummary(ctx context.Context) error {
	sum, err := c.orders.Summary(ctx)
	if err != nil {
		return err
	}
	c.println("Session summary")
	c.printf("Invoices finalised: %d\n", sum.Finalized)
	c.printf("Invoices discarded: %d\n", sum.Discarded)
	c.printf("Invoices left open: %d\n", sum.Open)
	c.printf("Revenue: %s\n", domorder.FormatMoney(sum.Revenue))
	c.printf("Thank you for using the %s Sales System\n", c.store)
	return nil
}

var errNotANumber = errors.New("console: not a number")

// prompt prints question and returns the trimmed answer, or io.EOF.
func (c *Console) prompt(question string) (string, error) {
	c.println(question)
	if !c.in.Scan() {
		if err := c.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(c.in.Text()), nil
}

func (c *Console) promptInt(question string) (int, error) {
	answer, err := c.prompt(question)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(answer)
	if err != nil {
		return 0, errNotANumber
	}
	return n, nil
}

func (c *Console) println(a ...any) {
	_, _ = fmt.Fprintln(c.out, a...)
}

func (c *Console) printf(format string, a ...any) {
	_, _ = fmt.Fprintf(c.out, format, a...)
}

func isYes(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "y" || s == "yes"
}
