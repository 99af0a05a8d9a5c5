package analytics

import (
	"context"
	"time"

	"github.com/asaidimu/go-mercato/core/catalog"
	"github.com/asaidimu/go-mercato/core/query"
)

// CategoryCount pairs a category with the number of per-order product
// occurrences it accumulated. Results carrying it are ordered, most
// popular first.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}

// OrdersWithProductCategory returns the orders holding at least one
// product of the given category, ignoring case.
func (s *Insights) OrdersWithProductCategory(ctx context.Context, category string) ([]catalog.Order, error) {
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

// ProductsByCustomerTier returns the deduplicated products bought by
// customers of the given tier, walking customer → orders → products in
// scan order.
func (s *Insights) ProductsByCustomerTier(ctx context.Context, tier int) ([]catalog.Product, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	tiered := query.Filter(snap.Customers, func(c catalog.Customer) bool {
		return c.Tier == tier
	})
	return snap.ProductsOfOrders(snap.OrdersOfCustomers(tiered)), nil
}

// RecentOrders returns the orders placed strictly after now minus the
// given number of days. Orders without a date are excluded.
func (s *Insights) RecentOrders(ctx context.Context, days int) ([]catalog.Order, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	cutoff := s.clock().AddDate(0, 0, -days)
	return query.Filter(snap.Orders, func(o catalog.Order) bool {
		return query.DateAfter(o.OrderDate, cutoff)
	}), nil
}

// ProductsOrderedOn returns the deduplicated products across the orders
// placed on the given date.
func (s *Insights) ProductsOrderedOn(ctx context.Context, date time.Time) ([]catalog.Product, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	matched := query.Filter(snap.Orders, func(o catalog.Order) bool {
		return query.DateEquals(o.OrderDate, date)
	})
	return snap.ProductsOfOrders(matched), nil
}

// MostExpensiveOrder returns the order with the greatest total. The
// boolean is false when there are no orders; ties resolve to the first
// order in scan order.
func (s *Insights) MostExpensiveOrder(ctx context.Context) (catalog.Order, bool, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return catalog.Order{}, false, err
	}
	best, ok := query.MaxBy(snap.Orders, snap.OrderTotal)
	return best, ok, nil
}

// RevenueByDate maps every order date to the summed totals of the orders
// placed on it. Orders without a date are excluded.
func (s *Insights) RevenueByDate(ctx context.Context) (map[time.Time]float64, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	dated := query.Filter(snap.Orders, catalog.Order.HasOrderDate)
	return query.SumBy(dated,
		func(o catalog.Order) time.Time { return o.OrderDate },
		snap.OrderTotal), nil
}

// MostPopularCategories returns up to limit categories ranked by product
// occurrences across all orders' product sets. An order contributes once
// per distinct product it holds; a product bought in two orders counts
// twice. Ties keep the category's first-seen order.
func (s *Insights) MostPopularCategories(ctx context.Context, limit int) ([]CategoryCount, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return popularCategories(snap, limit), nil
}

// popularCategories is shared by the insights service and the report
// assembler so both rank from the same figures.
func popularCategories(snap *catalog.Snapshot, limit int) []CategoryCount {
	categories := query.Map(query.FlatMap(snap.Orders, snap.ProductsOf), func(p catalog.Product) string {
		return p.Category
	})
	counts := query.CountBy(categories, func(c string) string { return c })
	ranked := query.SortedByDesc(query.Distinct(categories), func(c string) float64 {
		return float64(counts[c])
	})
	pairs := query.Map(ranked, func(c string) CategoryCount {
		return CategoryCount{Category: c, Count: counts[c]}
	})
	return query.Limit(pairs, limit)
}

// CustomersWhoBoughtAllInCategory returns the customers whose purchase
// history covers every product of the given category. Matching ignores
// case; when the category has no products every customer trivially
// qualifies, as a universal quantification over nothing does.
func (s *Insights) CustomersWhoBoughtAllInCategory(ctx context.Context, category string) ([]catalog.Customer, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	wanted := query.Filter(snap.Products, func(p catalog.Product) bool {
		return query.EqualFold(p.Category, category)
	})
	return query.Filter(snap.Customers, func(c catalog.Customer) bool {
		bought := make(map[catalog.Product]struct{})
		for _, p := range snap.ProductsOfOrders(snap.OrdersOf(c)) {
			if query.EqualFold(p.Category, category) {
				bought[p] = struct{}{}
			}
		}
		for _, p := range wanted {
			if _, ok := bought[p]; !ok {
				return false
			}
		}
		return true
	}), nil
}
