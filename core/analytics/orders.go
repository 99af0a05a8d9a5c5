package analytics

import (
	"context"
	"math"
	"time"

	"github.com/asaidimu/go-mercato/core/catalog"
	"github.com/asaidimu/go-mercato/core/query"
	"go.uber.org/zap"
)

// ProductCount pairs a product with how many orders' product sets it
// appears in. Results carrying it are ordered, most frequent first.
type ProductCount struct {
	Product catalog.Product `json:"product"`
	Count   int64           `json:"count"`
}

// ByCategory returns the orders holding at least one product of the given
// category, ignoring case. Orders with empty product sets are excluded.
func (s *Orders) ByCategory(ctx context.Context, category string) ([]catalog.Order, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return query.Filter(snap.Orders, func(o catalog.Order) bool {
		return query.AnyMatch(snap.ProductsOf(o), func(p catalog.Product) bool {
			return query.EqualFold(p.Category, category)
		})
	}), nil
}

// ByDate returns the orders placed on exactly the given date. Orders
// without a date never match.
func (s *Orders) ByDate(ctx context.Context, date time.Time) ([]catalog.Order, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return query.Filter(snap.Orders, func(o catalog.Order) bool {
		return query.DateEquals(o.OrderDate, date)
	}), nil
}

// ProductsOrderedOn returns the deduplicated products across all orders
// placed on the given date, logging each matching order on the way.
func (s *Orders) ProductsOrderedOn(ctx context.Context, date time.Time) ([]catalog.Product, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	matched := query.Filter(snap.Orders, func(o catalog.Order) bool {
		return query.DateEquals(o.OrderDate, date)
	})
	for _, o := range matched {
		s.logger.Info("Order matched date", zap.String("order", o.String()))
	}
	return snap.ProductsOfOrders(matched), nil
}

// Recent returns up to limit orders sorted by order date, newest first.
// Orders without a date sort last; equal dates keep scan order.
func (s *Orders) Recent(ctx context.Context, limit int) ([]catalog.Order, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	ranked := query.SortedByDesc(snap.Orders, func(o catalog.Order) float64 {
		if !o.HasOrderDate() {
			return math.Inf(-1)
		}
		return float64(o.OrderDate.Unix())
	})
	return query.Limit(ranked, limit), nil
}

// ByPeriod returns the orders dated inside the closed interval
// [start, end].
func (s *Orders) ByPeriod(ctx context.Context, start, end time.Time) ([]catalog.Order, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return query.Filter(snap.Orders, func(o catalog.Order) bool {
		return query.DateWithin(o.OrderDate, start, end)
	}), nil
}

// ByStatus returns the orders whose status equals the given label,
// ignoring case.
func (s *Orders) ByStatus(ctx context.Context, status string) ([]catalog.Order, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return query.Filter(snap.Orders, func(o catalog.Order) bool {
		return query.EqualFold(o.Status, status)
	}), nil
}

// ByCustomer returns the orders placed by the given customer. Orders with
// no customer reference are skipped, never dereferenced.
func (s *Orders) ByCustomer(ctx context.Context, customerID int64) ([]catalog.Order, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return query.Filter(snap.Orders, func(o catalog.Order) bool {
		return o.HasCustomer() && o.CustomerID == customerID
	}), nil
}

// ProductsByCustomerBetween returns the deduplicated products the customer
// ordered inside the closed date interval.
func (s *Orders) ProductsByCustomerBetween(ctx context.Context, customerID int64, start, end time.Time) ([]catalog.Product, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	matched := query.Filter(snap.Orders, func(o catalog.Order) bool {
		return o.HasCustomer() && o.CustomerID == customerID &&
			query.DateWithin(o.OrderDate, start, end)
	})
	return snap.ProductsOfOrders(matched), nil
}

// GroupedByCustomer maps every customer to the orders they placed. Orders
// whose customer reference is missing or unresolvable are omitted.
func (s *Orders) GroupedByCustomer(ctx context.Context) (map[catalog.Customer][]catalog.Order, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	groups := make(map[catalog.Customer][]catalog.Order)
	for _, o := range snap.Orders {
		c, ok := snap.CustomerOf(o)
		if !ok {
			continue
		}
		groups[c] = append(groups[c], o)
	}
	return groups, nil
}

// WithTotals maps every order to its total, keyed by the order's value
// identity.
func (s *Orders) WithTotals(ctx context.Context) (map[catalog.OrderKey]float64, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	totals := make(map[catalog.OrderKey]float64, len(snap.Orders))
	for _, o := range snap.Orders {
		totals[o.Key()] = snap.OrderTotal(o)
	}
	return totals, nil
}

// MostExpensive returns up to limit orders ranked by order total,
// largest first, stable among equal totals.
func (s *Orders) MostExpensive(ctx context.Context, limit int) ([]catalog.Order, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	ranked := query.SortedByDesc(snap.Orders, snap.OrderTotal)
	return query.Limit(ranked, limit), nil
}

// Cheapest returns up to limit orders ranked by order total, smallest
// first, stable among equal totals.
func (s *Orders) Cheapest(ctx context.Context, limit int) ([]catalog.Order, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	ranked := query.SortedByAsc(snap.Orders, snap.OrderTotal)
	return query.Limit(ranked, limit), nil
}

// AveragePrice returns the mean order total across all orders, 0.0 when
// there are none.
func (s *Orders) AveragePrice(ctx context.Context) (float64, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return 0, err
	}
	return query.Mean(query.Map(snap.Orders, snap.OrderTotal)), nil
}

// AveragePriceOn returns the mean total of the orders placed on the given
// date, 0.0 when none match.
func (s *Orders) AveragePriceOn(ctx context.Context, date time.Time) (float64, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return 0, err
	}
	matched := query.Filter(snap.Orders, func(o catalog.Order) bool {
		return query.DateEquals(o.OrderDate, date)
	})
	return query.Mean(query.Map(matched, snap.OrderTotal)), nil
}

// MostOrderedProducts returns up to limit products ranked by how many
// orders' product sets they appear in, most frequent first. A product
// bought in two different orders counts twice; ties keep first-seen order.
func (s *Orders) MostOrderedProducts(ctx context.Context, limit int) ([]ProductCount, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	occurrences := query.FlatMap(snap.Orders, snap.ProductsOf)
	counts := query.CountBy(occurrences, func(p catalog.Product) catalog.Product {
		return p
	})
	ranked := query.SortedByDesc(query.Distinct(occurrences), func(p catalog.Product) float64 {
		return float64(counts[p])
	})
	pairs := query.Map(ranked, func(p catalog.Product) ProductCount {
		return ProductCount{Product: p, Count: counts[p]}
	})
	return query.Limit(pairs, limit), nil
}

// CountByDate maps every order date to the number of orders placed on it.
// Orders without a date are excluded.
func (s *Orders) CountByDate(ctx context.Context) (map[time.Time]int64, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	dated := query.Filter(snap.Orders, catalog.Order.HasOrderDate)
	return query.CountBy(dated, func(o catalog.Order) time.Time {
		return o.OrderDate
	}), nil
}

// SumByMonth returns the total price of all products across the orders
// placed in the given calendar month.
func (s *Orders) SumByMonth(ctx context.Context, year int, month time.Month) (float64, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return 0, err
	}
	start := catalog.Date(year, month, 1)
	end := start.AddDate(0, 1, -1)
	matched := query.Filter(snap.Orders, func(o catalog.Order) bool {
		return query.DateWithin(o.OrderDate, start, end)
	})
	var sum float64
	for _, o := range matched {
		sum += snap.OrderTotal(o)
	}
	return sum, nil
}

// ProductCounts maps every order id to the size of its product set.
func (s *Orders) ProductCounts(ctx context.Context) (map[int64]int, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	counts := make(map[int64]int, len(snap.Orders))
	for _, o := range snap.Orders {
		counts[o.ID] = len(o.ProductIDs)
	}
	return counts, nil
}
