// Package analytics implements the analytical query layer over the catalog
// entity graph. Operations are grouped the way the questions are asked:
// Customers, Orders, and Products answer single-collection questions,
// Insights answers cross-entity ones, and Report composes them into a flat
// sales report.
//
// Every operation re-fetches a fresh snapshot from its repositories, runs a
// full scan over it, and returns a value or an explicit absent result. No
// operation mutates the entity graph, caches across calls, or performs any
// I/O beyond the repository listing.
package analytics

import (
	"context"
	"time"

	"github.com/asaidimu/go-mercato/core/catalog"
	"go.uber.org/zap"
)

// Option configures an analytics service.
type Option func(*engine)

// WithLogger attaches a logger. Nil is replaced by a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(e *engine) {
		e.logger = logger
	}
}

// WithBus attaches an event bus for snapshot and report events. A nil bus
// disables emission.
func WithBus(bus *Bus) Option {
	return func(e *engine) {
		e.bus = bus
	}
}

// WithClock overrides the wall clock used by day-relative operations such
// as Insights.RecentOrders.
func WithClock(clock func() time.Time) Option {
	return func(e *engine) {
		e.clock = clock
	}
}

// engine carries what every service needs: the storage capabilities and
// the ambient collaborators. Services embed it.
type engine struct {
	repos  catalog.Repositories
	logger *zap.Logger
	bus    *Bus
	clock  func() time.Time
}

func newEngine(repos catalog.Repositories, opts ...Option) engine {
	e := engine{
		repos: repos,
		clock: time.Now,
	}
	for _, opt := range opts {
		opt(&e)
	}
	if e.logger == nil {
		e.logger = zap.NewNop()
	}
	if e.clock == nil {
		e.clock = time.Now
	}
	return e
}

// snapshot fetches a fresh view of all three collections. Every public
// operation starts here: the engine never reuses data across calls.
func (e *engine) snapshot(ctx context.Context) (*catalog.Snapshot, error) {
	return withEventEmission(e.bus, "snapshot.load",
		SnapshotLoadStart, SnapshotLoadSuccess, SnapshotLoadFailed,
		nil,
		func() (*catalog.Snapshot, error) {
			return catalog.Load(ctx, e.repos, e.logger)
		})
}

// Customers answers customer-centric analytical questions.
type Customers struct {
	engine
}

// NewCustomers creates the customer analytics service.
func NewCustomers(repos catalog.Repositories, opts ...Option) *Customers {
	return &Customers{engine: newEngine(repos, opts...)}
}

// Orders answers order-centric analytical questions.
type Orders struct {
	engine
}

// NewOrders creates the order analytics service.
func NewOrders(repos catalog.Repositories, opts ...Option) *Orders {
	return &Orders{engine: newEngine(repos, opts...)}
}

// Products answers product-centric analytical questions.
type Products struct {
	engine
}

// NewProducts creates the product analytics service.
func NewProducts(repos catalog.Repositories, opts ...Option) *Products {
	return &Products{engine: newEngine(repos, opts...)}
}

// Insights answers questions that span the whole entity graph.
type Insights struct {
	engine
}

// NewInsights creates the cross-entity analytics service.
func NewInsights(repos catalog.Repositories, opts ...Option) *Insights {
	return &Insights{engine: newEngine(repos, opts...)}
}
