package order

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Zhima-Mochi/minishop-pos/internal/pkg/textable"
	"github.com/shopspring/decimal"
)

// ReceiptTimeLayout renders timestamps as dd-MM-yyyy HH:mm.
const ReceiptTimeLayout = "02-01-2006 15:04"

// FormatMoney renders an amount with a dollar sign and two decimals.
func FormatMoney(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

// LineItemTable lays out the purchases of an order.
func LineItemTable(items []LineItem) *textable.Table {
	t := textable.New([]textable.Column{
		{Header: "Item No", Align: textable.AlignRight},
		{Header: "ID"},
		{Header: "Description"},
		{Header: "Price", Align: textable.AlignRight},
		{Header: "Quantity", Align: textable.AlignRight},
	})
	for i, it := range items {
		t.AddRow(
			strconv.Itoa(i+1),
			it.ProductID,
			it.Description,
			FormatMoney(it.UnitPrice),
			strconv.Itoa(it.Quantity),
		)
	}
	return t
}

// Render produces the receipt text. It does not change the order.
func (o *Order) Render() string {
	var b strings.Builder

	fmt.Fprintf(&b, "Invoice ID: %s\n", o.ID)
	if o.Store != "" {
		fmt.Fprintf(&b, "%s\n", o.Store)
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "Date and Time: %s\n", o.CreatedAt.Format(ReceiptTimeLayout))
	fmt.Fprintf(&b, "Customer Name: %s\n", o.Customer.Name)
	fmt.Fprintf(&b, "Customer Address: %s\n", o.Customer.Address)
	fmt.Fprintf(&b, "Customer Country: %s\n", o.Customer.Country)
	fmt.Fprintf(&b, "Customer Phone Number: %s\n", o.Customer.PhoneNumber)
	b.WriteString("\n")

	if len(o.items) == 0 {
		b.WriteString("No items purchased yet.\n")
	} else {
		b.WriteString(LineItemTable(o.items).String())
	}
	b.WriteString("\n")

	writeTotal(&b, "Total Cost of Items:", o.itemTotal)
	writeTotal(&b, "Delivery Cost:", o.deliveryFee)
	writeTotal(&b, "Insurance Cost:", o.insuranceFee)
	writeTotal(&b, "Grand Total Cost:", o.GrandTotal())
	b.WriteString("\n")

	if o.HasDelivery() {
		fmt.Fprintf(&b, "Delivery Location: %s\n", o.destination)
	} else {
		b.WriteString("Pick up in-store\n")
	}
	if o.IsFinalized() {
		fmt.Fprintf(&b, "Finalized: %s\n", o.FinalizedAt.Format(ReceiptTimeLayout))
	}
	b.WriteString("\n")

	if o.Store != "" {
		fmt.Fprintf(&b, "Thank you for shopping at %s!\n", o.Store)
	} else {
		b.WriteString("Thank you for shopping!\n")
	}
	return b.String()
}

func writeTotal(b *strings.Builder, label string, amount decimal.Decimal) {
	b.WriteString(textable.Pad(label, 21, textable.AlignLeft))
	b.WriteString(FormatMoney(amount))
	b.WriteString("\n")
}
