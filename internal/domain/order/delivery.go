package order

import (
	"strings"

	"github.com/shopspring/decimal"
)

// InsuranceFee is the flat charge for insuring an order.
var InsuranceFee = decimal.RequireFromString("9.95")

// DeliveryRate is one row of the delivery price table.
type DeliveryRate struct {
	Region  string
	Aliases []string
	Fee     decimal.Decimal
}

var deliveryRates = []DeliveryRate{
	{Region: "Australia", Aliases: []string{"australia", "aus"}, Fee: decimal.RequireFromString("9.95")},
	{Region: "New Zealand", Aliases: []string{"new zealand", "nz"}, Fee: decimal.RequireFromString("20.00")},
	{Region: "USA", Aliases: []string{"usa", "america", "united states of america"}, Fee: decimal.RequireFromString("37.96")},
}

// DeliveryRates lists the supported destinations in display order.
func DeliveryRates() []DeliveryRate {
	out := make([]DeliveryRate, len(deliveryRates))
	for i, r := range deliveryRates {
		r.Aliases = append([]string(nil), r.Aliases...)
		out[i] = r
	}
	return out
}

// LookupDeliveryFee matches country against the table ignoring case and extra whitespace.
func LookupDeliveryFee(country string) (decimal.Decimal, bool) {
	key := normalizeCountry(country)
	if key == "" {
		return decimal.Zero, false
	}
	for _, r := range deliveryRates {
		for _, alias := range r.Aliases {
			if alias == key {
				return r.Fee, true
			}
		}
	}
	return decimal.Zero, false
}

func normalizeCountry(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
