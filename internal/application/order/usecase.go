package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Zhima-Mochi/minishop-pos/internal/application"
	dominv "github.com/Zhima-Mochi/minishop-pos/internal/domain/inventory"
	domain "github.com/Zhima-Mochi/minishop-pos/internal/domain/order"
	domoutbox "github.com/Zhima-Mochi/minishop-pos/internal/domain/outbox"
	"github.com/Zhima-Mochi/minishop-pos/internal/observability"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	orderService       = "order-service"
	useCaseAddPurchase = "order.add_purchase"
	publishTimeout     = 300 * time.Millisecond
)

var (
	ErrNotFound   = domain.ErrNotFound
	ErrRepository = errors.New("order: repository failure")
)

// AddPurchaseUseCase moves stock from the catalog onto an order. Stock and
// order change together or not at all.
type AddPurchaseUseCase struct {
	repo      domain.Repository
	catalog   dominv.Catalog
	publisher domoutbox.Publisher
	tel       observability.Observability
	threshold int
	log       observability.Logger
}

// NewAddPurchaseUseCase wires the use case. A purchase leaving threshold or
// fewer units publishes an inventory.stock_low event.
func NewAddPurchaseUseCase(
	repo domain.Repository,
	catalog dominv.Catalog,
	publisher domoutbox.Publisher,
	tel observability.Observability,
	threshold int,
) *AddPurchaseUseCase {
	baseLog := observability.NopLogger()
	if tel != nil {
		baseLog = tel.Logger()
	}

	return &AddPurchaseUseCase{
		repo:      repo,
		catalog:   catalog,
		publisher: publisher,
		tel:       tel,
		threshold: threshold,
		log:       baseLog.With(observability.F("service", orderService)),
	}
}

type AddPurchaseInput struct {
	OrderID   string
	ProductID string
	Quantity  int
}

type AddPurchaseResult struct {
	OrderID     string
	LineNo      int
	ProductID   string
	Description string
	UnitPrice   decimal.Decimal
	Quantity    int
	Remaining   int
	LowStock    bool
	OrderFull   bool
	SlotsLeft   int
	ItemTotal   decimal.Decimal
}

// Execute performs the purchase flow.
func (uc *AddPurchaseUseCase) Execute(ctx context.Context, cmd AddPurchaseInput) (_ *AddPurchaseResult, err error) {
	ctx, run := application.Begin(ctx, uc.tel, uc.log, useCaseAddPurchase, "AddPurchase",
		attribute.String("order.id", cmd.OrderID),
		attribute.String("order.product_id", cmd.ProductID),
		attribute.Int("order.quantity", cmd.Quantity),
	)
	defer func() { run.End(err) }()
	run.With(
		observability.F("order_id", cmd.OrderID),
		observability.F("product_id", cmd.ProductID),
		observability.F("quantity", cmd.Quantity),
	)

	if err := ctx.Err(); err != nil {
		run.Fail("CONTEXT_CANCELED")
		return nil, err
	}

	entity, err := uc.repo.Get(ctx, cmd.OrderID)
	if err != nil {
		run.Fail("ORDER_LOAD_FAILED")
		return nil, wrapRepositoryError(err)
	}

	// Order-side rejections come first so stock is never touched for them.
	if entity.IsFinalized() {
		run.Reject("ORDER_FINALIZED")
		return nil, domain.ErrOrderFinalized
	}
	if entity.IsFull() {
		run.Reject("ORDER_FULL")
		return nil, domain.ErrCapacityExceeded
	}

	remaining, err := uc.catalog.RemoveStock(ctx, cmd.ProductID, cmd.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, dominv.ErrInvalidQuantity):
			run.Reject("QUANTITY_INVALID")
		case errors.Is(err, dominv.ErrNotFound):
			run.Reject("PRODUCT_NOT_FOUND")
		case errors.Is(err, dominv.ErrInsufficientStock):
			run.Reject("INSUFFICIENT_STOCK")
		default:
			run.Fail("STOCK_REMOVE_FAILED")
			err = fmt.Errorf("order: remove stock: %w", err)
		}
		return nil, err
	}
	run.Span().AddEvent("inventory.stock_removed",
		trace.WithAttributes(attribute.Int("inventory.remaining", remaining)),
	)

	product, err := uc.catalog.Product(ctx, cmd.ProductID)
	if err == nil {
		err = entity.RecordPurchase(product.ID, cmd.Quantity, product.Description, product.UnitPrice)
	}
	if err == nil {
		if updErr := uc.repo.Update(ctx, entity); updErr != nil {
			err = wrapRepositoryError(updErr)
		}
	}
	if err != nil {
		run.Fail("PURCHASE_RECORD_FAILED")
		if _, rbErr := uc.catalog.AddStock(ctx, cmd.ProductID, cmd.Quantity); rbErr != nil {
			run.Fail("STOCK_ROLLBACK_FAILED")
			run.Logger().Error("stock_rollback_failed",
				observability.F("product_id", cmd.ProductID),
				observability.F("quantity", cmd.Quantity),
				observability.F("error", rbErr.Error()),
			)
		} else {
			run.Span().AddEvent("inventory.stock_restored")
		}
		return nil, fmt.Errorf("order: record purchase: %w", err)
	}

	items := entity.Items()
	item := items[len(items)-1]
	low := remaining <= uc.threshold

	if uc.publisher != nil {
		events := []domoutbox.Event{
			dominv.NewStockRemovedEvent(entity.ID, item.ProductID, item.Quantity, remaining),
			domain.NewPurchaseRecordedEvent(entity, item),
		}
		if low {
			events = append(events, dominv.NewStockLowEvent(item.ProductID, remaining, uc.threshold))
		}
		if pubErr := uc.publish(ctx, events...); pubErr != nil {
			run.Span().RecordError(pubErr)
			run.Status("EVENT_PUBLISH_FAILED")
			run.With(observability.F("event_publish_error", pubErr.Error()))
		}
	}

	run.Span().SetAttributes(
		attribute.Int("order.line_items", entity.Len()),
		attribute.String("order.item_total", entity.ItemTotal().StringFixed(2)),
	)

	return &AddPurchaseResult{
		OrderID:     entity.ID,
		LineNo:      entity.Len(),
		ProductID:   item.ProductID,
		Description: item.Description,
		UnitPrice:   item.UnitPrice,
		Quantity:    item.Quantity,
		Remaining:   remaining,
		LowStock:    low,
		OrderFull:   entity.IsFull(),
		SlotsLeft:   entity.Remaining(),
		ItemTotal:   entity.ItemTotal(),
	}, nil
}

func (uc *AddPurchaseUseCase) publish(ctx context.Context, events ...domoutbox.Event) error {
	pubCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	var errs []error
	for _, e := range events {
		if err := uc.publisher.Publish(pubCtx, e); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", e.EventName(), err))
		}
	}
	return errors.Join(errs...)
}

func wrapRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrConflict) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrRepository, err)
}
