package inventory

import "github.com/shopspring/decimal"

// DefaultStoreName is the company the seed catalog belongs to.
const DefaultStoreName = "Toy Universe"

// SeedProducts returns the starting catalog in display order.
func SeedProducts() []Product {
	return []Product{
		{ID: "P1", Description: "Lego City Garbage Truck", UnitPrice: decimal.RequireFromString("28.00"), Stock: 8},
		{ID: "P2", Description: "Moana Adventure Doll", UnitPrice: decimal.RequireFromString("50.00"), Stock: 6},
		{ID: "P3", Description: "Grafix Mega Craft Jar - Pink", UnitPrice: decimal.RequireFromString("17.99"), Stock: 5},
		{ID: "P4", Description: "Rusty Rivets Rusty Botasaur", UnitPrice: decimal.RequireFromString("56.99"), Stock: 2},
		{ID: "P5", Description: "Scrabble Original Board Game", UnitPrice: decimal.RequireFromString("50.00"), Stock: 1},
		{ID: "P6", Description: "Jungle Pals Baby Playmat", UnitPrice: decimal.RequireFromString("39.99"), Stock: 4},
	}
}
