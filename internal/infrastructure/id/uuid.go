// Package id issues invoice identifiers.
package id

import (
	"strings"

	"github.com/google/uuid"
)

type UUIDGenerator struct {
	prefix string
}

// NewUUIDGenerator returns a generator of random v4 ids. A non-empty prefix is
// joined to each id with a dash.
func NewUUIDGenerator(prefix string) *UUIDGenerator {
	return &UUIDGenerator{prefix: strings.TrimSpace(prefix)}
}

func (g *UUIDGenerator) NewID() string {
	id := uuid.NewString()
	if g.prefix == "" {
		return id
	}
	return g.prefix + "-" + id
}
