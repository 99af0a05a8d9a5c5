package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Snapshot is one consistent, immutable view of the three entity
// collections, together with the derived relationship indices the
// traversal layer needs. A snapshot never mutates its entities; derived
// values such as order totals are computed at load time from the forward
// references and belong to the snapshot, not to the entities.
type Snapshot struct {
	ID        string
	Customers []Customer
	Orders    []Order
	Products  []Product

	customerByID     map[int64]Customer
	productByID      map[int64]Product
	ordersByCustomer map[int64][]Order
	ordersByProduct  map[int64][]Order
	totalByOrder     map[int64]float64
}

// Load fetches all three collections from the given repositories and builds
// a snapshot over them. Collection scan order is preserved: every derived
// index and traversal result is stable with respect to it.
func Load(ctx context.Context, repos Repositories, logger *zap.Logger) (*Snapshot, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	customers, err := repos.ListCustomers(ctx)
	if err != nil {
		return nil, fmt.Errorf("snapshot load: list customers: %w", err)
	}
	orders, err := repos.ListOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("snapshot load: list orders: %w", err)
	}
	products, err := repos.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("snapshot load: list products: %w", err)
	}

	snap := NewSnapshot(customers, orders, products)
	logger.Debug("Loaded snapshot",
		zap.String("snapshot", snap.ID),
		zap.Int("customers", len(customers)),
		zap.Int("orders", len(orders)),
		zap.Int("products", len(products)))
	return snap, nil
}

// NewSnapshot builds a snapshot directly from in-memory collections. The
// slices are adopted, not copied; callers must not mutate them afterwards.
func NewSnapshot(customers []Customer, orders []Order, products []Product) *Snapshot {
	snap := &Snapshot{
		ID:               uuid.New().String(),
		Customers:        customers,
		Orders:           orders,
		Products:         products,
		customerByID:     make(map[int64]Customer, len(customers)),
		productByID:      make(map[int64]Product, len(products)),
		ordersByCustomer: make(map[int64][]Order),
		ordersByProduct:  make(map[int64][]Order),
		totalByOrder:     make(map[int64]float64, len(orders)),
	}

	for _, c := range customers {
		snap.customerByID[c.ID] = c
	}
	for _, p := range products {
		snap.productByID[p.ID] = p
	}
	for _, o := range orders {
		if o.HasCustomer() {
			snap.ordersByCustomer[o.CustomerID] = append(snap.ordersByCustomer[o.CustomerID], o)
		}
		var total float64
		for _, id := range o.ProductIDs {
			p, ok := snap.productByID[id]
			if !ok {
				continue
			}
			total += p.Price
			snap.ordersByProduct[id] = append(snap.ordersByProduct[id], o)
		}
		snap.totalByOrder[o.ID] = total
	}
	return snap
}

// ProductsOf resolves an order's product references in attachment order.
// References to unknown products are skipped.
func (s *Snapshot) ProductsOf(o Order) []Product {
	products := make([]Product, 0, len(o.ProductIDs))
	for _, id := range o.ProductIDs {
		if p, ok := s.productByID[id]; ok {
			products = append(products, p)
		}
	}
	return products
}

// OrdersOf returns the orders placed by the customer, in order scan order.
func (s *Snapshot) OrdersOf(c Customer) []Order {
	return s.ordersByCustomer[c.ID]
}

// OrdersWithProduct returns the orders that include the product, in order
// scan order.
func (s *Snapshot) OrdersWithProduct(p Product) []Order {
	return s.ordersByProduct[p.ID]
}

// CustomerOf resolves an order's owning customer. Orders with no customer
// reference, or with a reference to an unknown customer, report false.
func (s *Snapshot) CustomerOf(o Order) (Customer, bool) {
	if !o.HasCustomer() {
		return Customer{}, false
	}
	c, ok := s.customerByID[o.CustomerID]
	return c, ok
}

// OrderTotal returns the sum of the order's product prices, 0.0 when the
// order has no products. Totals are computed once per snapshot so every
// operation that ranks or sums them agrees on the same figures.
func (s *Snapshot) OrderTotal(o Order) float64 {
	return s.totalByOrder[o.ID]
}

// ProductsOfOrders flattens the product sets of the given orders into one
// deduplicated slice, preserving first-occurrence order.
func (s *Snapshot) ProductsOfOrders(orders []Order) []Product {
	seen := make(map[Product]struct{})
	var products []Product
	for _, o := range orders {
		for _, p := range s.ProductsOf(o) {
			if _, ok := seen[p]; ok {
				continue
			}
			seen[p] = struct{}{}
			products = append(products, p)
		}
	}
	return products
}

// OrdersOfCustomers flattens the order sets of the given customers into one
// slice, preserving per-customer order scan order.
func (s *Snapshot) OrdersOfCustomers(customers []Customer) []Order {
	var orders []Order
	for _, c := range customers {
		orders = append(orders, s.OrdersOf(c)...)
	}
	return orders
}
