package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Zhima-Mochi/minishop-pos/internal/application"
	dominv "github.com/Zhima-Mochi/minishop-pos/internal/domain/inventory"
	domoutbox "github.com/Zhima-Mochi/minishop-pos/internal/domain/outbox"
	"github.com/Zhima-Mochi/minishop-pos/internal/observability"
	"go.opentelemetry.io/otel/attribute"
)

const (
	useCaseRestock = "inventory.restock"
	publishTimeout = 300 * time.Millisecond
)

var (
	ErrNotFound        = dominv.ErrNotFound
	ErrInvalidQuantity = dominv.ErrInvalidQuantity
)

var _ application.UseCase[RestockInput, *RestockResult] = (*RestockUseCase)(nil)

// RestockUseCase adds units to a product when the operator places a reorder.
type RestockUseCase struct {
	catalog   dominv.Catalog
	publisher domoutbox.Publisher
	tel       observability.Observability
	log       observability.Logger
}

func NewRestockUseCase(catalog dominv.Catalog, publisher domoutbox.Publisher, tel observability.Observability) *RestockUseCase {
	baseLog := observability.NopLogger()
	if tel != nil {
		baseLog = tel.Logger()
	}
	return &RestockUseCase{
		catalog:   catalog,
		publisher: publisher,
		tel:       tel,
		log:       baseLog.With(observability.F("service", inventoryService)),
	}
}

type RestockInput struct {
	ProductID string
	Quantity  int
}

type RestockResult struct {
	ProductID  string
	Quantity   int
	StockLevel int
}

func (uc *RestockUseCase) Execute(ctx context.Context, cmd RestockInput) (_ *RestockResult, err error) {
	productID := dominv.NormalizeID(cmd.ProductID)
	ctx, run := application.Begin(ctx, uc.tel, uc.log, useCaseRestock, "Restock",
		attribute.String("inventory.product_id", productID),
		attribute.Int("inventory.quantity", cmd.Quantity),
	)
	defer func() { run.End(err) }()

	if err := ctx.Err(); err != nil {
		run.Fail("CONTEXT_CANCELED")
		return nil, err
	}

	level, err := uc.catalog.AddStock(ctx, productID, cmd.Quantity)
	switch {
	case errors.Is(err, dominv.ErrInvalidQuantity):
		run.Fail("QUANTITY_INVALID")
		return nil, err
	case errors.Is(err, dominv.ErrNotFound):
		run.Fail("PRODUCT_NOT_FOUND")
		return nil, err
	case errors.Is(err, dominv.ErrStockOverflow):
		run.Fail("STOCK_OVERFLOW")
		return nil, err
	case err != nil:
		run.Fail("RESTOCK_FAILED")
		return nil, fmt.Errorf("inventory: restock: %w", err)
	}

	run.With(
		observability.F("product_id", productID),
		observability.F("stock_level", level),
	)
	run.Span().SetAttributes(attribute.Int("inventory.stock_level", level))

	if uc.publisher != nil {
		pubCtx, cancel := context.WithTimeout(ctx, publishTimeout)
		defer cancel()
		if pubErr := uc.publisher.Publish(pubCtx, dominv.NewRestockedEvent(productID, cmd.Quantity, level)); pubErr != nil {
			run.Span().RecordError(pubErr)
			run.Status("EVENT_PUBLISH_FAILED")
			run.With(observability.F("event_publish_error", pubErr.Error()))
		}
	}

	return &RestockResult{
		ProductID:  productID,
		Quantity:   cmd.Quantity,
		StockLevel: level,
	}, nil
}
