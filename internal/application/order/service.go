package order

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/Zhima-Mochi/minishop-pos/internal/application"
	dominv "github.com/Zhima-Mochi/minishop-pos/internal/domain/inventory"
	domain "github.com/Zhima-Mochi/minishop-pos/internal/domain/order"
	domoutbox "github.com/Zhima-Mochi/minishop-pos/internal/domain/outbox"
	"github.com/Zhima-Mochi/minishop-pos/internal/observability"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
)

// ErrNoActiveOrder is returned by operations that need an invoice before one was started.
var ErrNoActiveOrder = errors.New("order: no active order")

const (
	useCaseStartOrder     = "order.start"
	useCaseApplyDelivery  = "order.apply_delivery"
	useCaseApplyInsurance = "order.apply_insurance"
	useCaseFinalize       = "order.finalize"
)

// Settings shape every order the service starts.
type Settings struct {
	Store    string
	Capacity int
}

// Service holds the session state of one terminal: the order being built and
// the orders finished so far.
type Service struct {
	repo        domain.Repository
	idGenerator IDGenerator
	clock       Clock
	publisher   domoutbox.Publisher
	addPurchase application.UseCase[AddPurchaseInput, *AddPurchaseResult]
	settings    Settings
	tel         observability.Observability
	log         observability.Logger

	mu        sync.Mutex
	activeID  string
	discarded int
}

func NewService(
	repo domain.Repository,
	idGen IDGenerator,
	clock Clock,
	publisher domoutbox.Publisher,
	addPurchase application.UseCase[AddPurchaseInput, *AddPurchaseResult],
	settings Settings,
	tel observability.Observability,
) *Service {
	if clock == nil {
		clock = SystemClock
	}
	if settings.Capacity <= 0 {
		settings.Capacity = domain.DefaultCapacity
	}
	baseLog := observability.NopLogger()
	if tel != nil {
		baseLog = tel.Logger()
	}
	return &Service{
		repo:        repo,
		idGenerator: idGen,
		clock:       clock,
		publisher:   publisher,
		addPurchase: addPurchase,
		settings:    settings,
		tel:         tel,
		log:         baseLog.With(observability.F("service", orderService)),
	}
}

// StartOrder opens a new invoice and makes it the active one. An unfinalized
// order it replaces is discarded.
func (s *Service) StartOrder(ctx context.Context, customer domain.Customer) (_ *domain.Order, err error) {
	ctx, run := application.Begin(ctx, s.tel, s.log, useCaseStartOrder, "StartOrder")
	defer func() { run.End(err) }()

	entity, err := domain.New(s.idGenerator.NewID(), customer, s.clock.Now(),
		domain.WithCapacity(s.settings.Capacity),
		domain.WithStore(s.settings.Store),
	)
	if err != nil {
		run.Fail("DOMAIN_CONSTRUCTION_FAILED")
		return nil, err
	}
	if err := s.repo.Insert(ctx, entity); err != nil {
		run.Fail("REPO_INSERT_FAILED")
		return nil, wrapRepositoryError(err)
	}

	s.mu.Lock()
	previous := s.activeID
	s.activeID = entity.ID
	s.mu.Unlock()

	if previous != "" {
		s.discard(ctx, run, previous)
	}

	run.With(observability.F("order_id", entity.ID))
	run.Span().SetAttributes(attribute.String("order.id", entity.ID))
	s.publish(ctx, run, domain.NewOrderStartedEvent(entity))
	return entity, nil
}

// ActiveOrder returns a copy of the order being built.
func (s *Service) ActiveOrder(ctx context.Context) (*domain.Order, error) {
	id := s.activeOrderID()
	if id == "" {
		return nil, ErrNoActiveOrder
	}
	return s.repo.Get(ctx, id)
}

// AddPurchase sells quantity units of productID on the active order. The id
// is matched case-insensitively.
func (s *Service) AddPurchase(ctx context.Context, productID string, quantity int) (*AddPurchaseResult, error) {
	id := s.activeOrderID()
	if id == "" {
		return nil, ErrNoActiveOrder
	}
	return s.addPurchase.Execute(ctx, AddPurchaseInput{
		OrderID:   id,
		ProductID: dominv.NormalizeID(productID),
		Quantity:  quantity,
	})
}

// ApplyDelivery prices delivery on the active order. An unsupported country
// is saved as in-store pickup and reported with domain.ErrUnsupportedDestination.
func (s *Service) ApplyDelivery(ctx context.Context, city, country string) (_ *domain.Order, err error) {
	ctx, run := application.Begin(ctx, s.tel, s.log, useCaseApplyDelivery, "ApplyDelivery",
		attribute.String("order.country", country),
	)
	defer func() {
		if errors.Is(err, domain.ErrUnsupportedDestination) {
			run.Fail("DESTINATION_UNSUPPORTED")
		}
		run.End(err)
	}()

	return s.mutate(ctx, run, func(o *domain.Order) error {
		return o.ApplyDelivery(city, country)
	})
}

func (s *Service) ApplyInsurance(ctx context.Context) (_ *domain.Order, err error) {
	ctx, run := application.Begin(ctx, s.tel, s.log, useCaseApplyInsurance, "ApplyInsurance")
	defer func() { run.End(err) }()

	return s.mutate(ctx, run, func(o *domain.Order) error {
		return o.ApplyInsurance()
	})
}

// Preview renders the receipt of the active order.
func (s *Service) Preview(ctx context.Context) (string, error) {
	entity, err := s.ActiveOrder(ctx)
	if err != nil {
		return "", err
	}
	return entity.Render(), nil
}

// Finalize closes the active order and publishes its totals.
func (s *Service) Finalize(ctx context.Context) (_ *domain.Order, err error) {
	ctx, run := application.Begin(ctx, s.tel, s.log, useCaseFinalize, "Finalize")
	defer func() { run.End(err) }()

	at := s.clock.Now()
	entity, err := s.mutate(ctx, run, func(o *domain.Order) error {
		return o.Finalize(at)
	})
	if err != nil {
		return nil, err
	}

	run.With(
		observability.F("grand_total", entity.GrandTotal().StringFixed(2)),
		observability.F("line_items", entity.Len()),
	)
	s.publish(ctx, run, domain.NewOrderFinalizedEvent(entity))
	return entity, nil
}

// Summary totals the orders of this session. Open counts the unfinalized
// order still being built, Discarded the ones replaced before finalizing.
type Summary struct {
	Open      int
	Finalized int
	Discarded int
	Revenue   decimal.Decimal
}

func (s *Service) Summary(ctx context.Context) (Summary, error) {
	orders, err := s.repo.List(ctx)
	if err != nil {
		return Summary{}, wrapRepositoryError(err)
	}

	s.mu.Lock()
	sum := Summary{Discarded: s.discarded, Revenue: decimal.Zero}
	s.mu.Unlock()
	for _, o := range orders {
		if !o.IsFinalized() {
			sum.Open++
			continue
		}
		sum.Finalized++
		sum.Revenue = sum.Revenue.Add(o.GrandTotal())
	}
	return sum, nil
}

func (s *Service) activeOrderID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeID
}

// mutate loads the active order, applies fn and saves the result. A domain
// error from fn is still saved when fn changed the order, which is how an
// unsupported destination falls back to pickup.
func (s *Service) mutate(ctx context.Context, run *application.Run, fn func(*domain.Order) error) (*domain.Order, error) {
	id := s.activeOrderID()
	if id == "" {
		run.Fail("NO_ACTIVE_ORDER")
		return nil, ErrNoActiveOrder
	}
	run.With(observability.F("order_id", id))
	run.Span().SetAttributes(attribute.String("order.id", id))

	entity, err := s.repo.Get(ctx, id)
	if err != nil {
		run.Fail("ORDER_LOAD_FAILED")
		return nil, wrapRepositoryError(err)
	}

	fnErr := fn(entity)
	if errors.Is(fnErr, domain.ErrOrderFinalized) {
		run.Fail("ORDER_FINALIZED")
		return nil, fnErr
	}
	if fnErr != nil && !errors.Is(fnErr, domain.ErrUnsupportedDestination) {
		run.Fail("DOMAIN_REJECTED")
		return nil, fnErr
	}

	if err := s.repo.Update(ctx, entity); err != nil {
		run.Fail("REPO_UPDATE_FAILED")
		return nil, wrapRepositoryError(err)
	}
	return entity, fnErr
}

func (s *Service) publish(ctx context.Context, run *application.Run, e domoutbox.Event) {
	if s.publisher == nil {
		return
	}
	pubCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()
	if err := s.publisher.Publish(pubCtx, e); err != nil {
		run.Span().RecordError(err)
		run.Status("EVENT_PUBLISH_FAILED")
		run.With(observability.F("event_publish_error", fmt.Sprintf("%s: %v", e.EventName(), err)))
	}
}

// discard drops a replaced order unless it was already finalized.
func (s *Service) discard(ctx context.Context, run *application.Run, id string) {
	old, err := s.repo.Get(ctx, id)
	if err != nil || old.IsFinalized() {
		return
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		run.Span().RecordError(err)
		run.With(observability.F("discard_error", err.Error()))
		return
	}
	s.mu.Lock()
	s.discarded++
	s.mu.Unlock()
	run.With(observability.F("discarded_order_id", id))
}
