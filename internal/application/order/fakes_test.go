package order

import (
	"context"
	"errors"
	"sync"
	"time"

	dominv "github.com/Zhima-Mochi/minishop-pos/internal/domain/inventory"
	domain "github.com/Zhima-Mochi/minishop-pos/internal/domain/order"
	domoutbox "github.com/Zhima-Mochi/minishop-pos/internal/domain/outbox"
	"github.com/Zhima-Mochi/minishop-pos/internal/infrastructure/memory"
)

var testNow = time.Date(2024, time.June, 1, 9, 30, 0, 0, time.UTC)

type sequenceIDs struct {
	mu sync.Mutex
	n  int
}

func (s *sequenceIDs) NewID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	return "INV-" + string(rune('0'+s.n))
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []domoutbox.Event
}

func (p *recordingPublisher) Publish(_ context.Context, e domoutbox.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

func (p *recordingPublisher) names() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.EventName())
	}
	return out
}

// failingUpdates stores inserts but refuses every update.
type failingUpdates struct {
	*memory.OrderRepository
}

func (failingUpdates) Update(context.Context, *domain.Order) error {
	return errors.New("disk on fire")
}

type fixture struct {
	catalog *memory.Catalog
	repo    domain.Repository
	pub     *recordingPublisher
	svc     *Service
}

func newFixture(repo domain.Repository, capacity int) fixture {
	catalog := memory.MustNewCatalog(dominv.SeedProducts())
	pub := &recordingPublisher{}
	uc := NewAddPurchaseUseCase(repo, catalog, pub, nil, 1)
	svc := NewService(repo, &sequenceIDs{}, ClockFunc(func() time.Time { return testNow }), pub, uc,
		Settings{Store: "Toy Universe", Capacity: capacity}, nil)
	return fixture{catalog: catalog, repo: repo, pub: pub, svc: svc}
}
