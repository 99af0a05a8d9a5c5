package analytics

import (
	"context"
	"time"

	"github.com/asaidimu/go-mercato/core/catalog"
	"github.com/asaidimu/go-mercato/core/query"
	"go.uber.org/zap"
)

// ByTier returns the customers of exactly the given tier.
func (s *Customers) ByTier(ctx context.Context, tier int) ([]catalog.Customer, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return query.Filter(snap.Customers, func(c catalog.Customer) bool {
		return c.Tier == tier
	}), nil
}

// ByName returns the customers whose name contains the given text,
// ignoring case.
func (s *Customers) ByName(ctx context.Context, name string) ([]catalog.Customer, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return query.Filter(snap.Customers, func(c catalog.Customer) bool {
		return query.ContainsFold(c.Name, name)
	}), nil
}

// WithOrders returns the customers that placed at least one order.
func (s *Customers) WithOrders(ctx context.Context) ([]catalog.Customer, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return query.Filter(snap.Customers, func(c catalog.Customer) bool {
		return len(snap.OrdersOf(c)) > 0
	}), nil
}

// WithoutOrders returns the customers that never placed an order.
func (s *Customers) WithoutOrders(ctx context.Context) ([]catalog.Customer, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return query.Filter(snap.Customers, func(c catalog.Customer) bool {
		return len(snap.OrdersOf(c)) == 0
	}), nil
}

// WithMostOrders returns the customer holding the most orders. The boolean
// is false when there are no customers; among equal counts the first
// customer in scan order wins.
func (s *Customers) WithMostOrders(ctx context.Context) (catalog.Customer, bool, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return catalog.Customer{}, false, err
	}
	best, ok := query.MaxBy(snap.Customers, func(c catalog.Customer) float64 {
		return float64(len(snap.OrdersOf(c)))
	})
	return best, ok, nil
}

// WhoOrderedCategory returns the customers with at least one order holding
// a product of exactly the given category. The match is case-sensitive.
func (s *Customers) WhoOrderedCategory(ctx context.Context, category string) ([]catalog.Customer, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return query.Filter(snap.Customers, func(c catalog.Customer) bool {
		return query.AnyMatch(snap.OrdersOf(c), func(o catalog.Order) bool {
			return query.AnyMatch(snap.ProductsOf(o), func(p catalog.Product) bool {
				return p.Category == category
			})
		})
	}), nil
}

// TotalSpent maps every customer with at least one order to the total price
// of all products across their orders. Customers without orders are
// excluded rather than reported as zero spenders.
func (s *Customers) TotalSpent(ctx context.Context) (map[catalog.Customer]float64, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	spent := make(map[catalog.Customer]float64)
	for _, c := range snap.Customers {
		orders := snap.OrdersOf(c)
		if len(orders) == 0 {
			continue
		}
		var total float64
		for _, o := range orders {
			total += snap.OrderTotal(o)
		}
		spent[c] = total
	}
	return spent, nil
}

// TopSpending returns the customer with the greatest total spend. Customers
// without orders are excluded from the ranking; the boolean is false when
// nobody qualifies.
func (s *Customers) TopSpending(ctx context.Context) (catalog.Customer, bool, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return catalog.Customer{}, false, err
	}
	ranked := query.Filter(snap.Customers, func(c catalog.Customer) bool {
		return len(snap.OrdersOf(c)) > 0
	})
	best, ok := query.MaxBy(ranked, func(c catalog.Customer) float64 {
		var total float64
		for _, o := range snap.OrdersOf(c) {
			total += snap.OrderTotal(o)
		}
		return total
	})
	return best, ok, nil
}

// Statistics assembles the customer-side figures: total count, counts with
// and without orders, and the tier distribution.
func (s *Customers) Statistics(ctx context.Context) (map[string]any, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	withOrders := 0
	for _, c := range snap.Customers {
		if len(snap.OrdersOf(c)) > 0 {
			withOrders++
		}
	}

	stats := map[string]any{
		"totalCustomers":        len(snap.Customers),
		"customersWithOrders":   withOrders,
		"customersWithoutOrders": len(snap.Customers) - withOrders,
		"tierDistribution": query.CountBy(snap.Customers, func(c catalog.Customer) int {
			return c.Tier
		}),
	}
	s.logger.Debug("Computed customer statistics", zap.Int("customers", len(snap.Customers)))
	return stats, nil
}

// ActiveBetween returns the customers with at least one order dated inside
// the closed interval [start, end]. Orders without a date never match.
func (s *Customers) ActiveBetween(ctx context.Context, start, end time.Time) ([]catalog.Customer, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return query.Filter(snap.Customers, func(c catalog.Customer) bool {
		return query.AnyMatch(snap.OrdersOf(c), func(o catalog.Order) bool {
			return query.DateWithin(o.OrderDate, start, end)
		})
	}), nil
}

// RecentlyActive returns up to limit customers ranked by the date of their
// most recent order, newest first. Customers without orders are excluded;
// equal dates keep customer scan order.
func (s *Customers) RecentlyActive(ctx context.Context, limit int) ([]catalog.Customer, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	active := query.Filter(snap.Customers, func(c catalog.Customer) bool {
		return len(snap.OrdersOf(c)) > 0
	})
	ranked := query.SortedByDesc(active, func(c catalog.Customer) float64 {
		var last time.Time
		for _, o := range snap.OrdersOf(c) {
			if o.OrderDate.After(last) {
				last = o.OrderDate
			}
		}
		return float64(last.Unix())
	})
	return query.Limit(ranked, limit), nil
}
