package inventory

import (
	"context"
	"fmt"

	"github.com/Zhima-Mochi/minishop-pos/internal/application"
	dominv "github.com/Zhima-Mochi/minishop-pos/internal/domain/inventory"
	"github.com/Zhima-Mochi/minishop-pos/internal/observability"
	"go.opentelemetry.io/otel/attribute"
)

const (
	inventoryService    = "inventory-service"
	useCaseListProducts = "inventory.list_products"
)

// Service answers catalog questions for the terminal.
type Service struct {
	catalog dominv.Catalog
	tel     observability.Observability
	log     observability.Logger
}

func NewService(catalog dominv.Catalog, tel observability.Observability) *Service {
	baseLog := observability.NopLogger()
	if tel != nil {
		baseLog = tel.Logger()
	}
	return &Service{
		catalog: catalog,
		tel:     tel,
		log:     baseLog.With(observability.F("service", inventoryService)),
	}
}

// Products returns a snapshot of every product in display order.
func (s *Service) Products(ctx context.Context) (_ []dominv.Product, err error) {
	ctx, run := application.Begin(ctx, s.tel, s.log, useCaseListProducts, "ListProducts")
	defer func() { run.End(err) }()

	ids := s.catalog.ProductIDs(ctx)
	out := make([]dominv.Product, 0, len(ids))
	for _, id := range ids {
		p, err := s.catalog.Product(ctx, id)
		if err != nil {
			run.Fail("PRODUCT_LOAD_FAILED")
			return nil, fmt.Errorf("inventory: load %s: %w", id, err)
		}
		out = append(out, p)
	}

	run.Span().SetAttributes(attribute.Int("inventory.products", len(out)))
	return out, nil
}

// Product looks up one product after normalizing the operator's id.
func (s *Service) Product(ctx context.Context, id string) (dominv.Product, error) {
	return s.catalog.Product(ctx, dominv.NormalizeID(id))
}
