package analytics

import (
	"context"

	"github.com/asaidimu/go-mercato/core/catalog"
	"github.com/asaidimu/go-mercato/core/query"
)

func productPrice(p catalog.Product) float64 {
	return p.Price
}

// ByCategoryAbovePrice returns the products of the given category priced
// strictly above the limit. Category matching ignores case.
func (s *Products) ByCategoryAbovePrice(ctx context.Context, category string, priceLimit float64) ([]catalog.Product, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	inCategory := func(p catalog.Product) bool { return query.EqualFold(p.Category, category) }
	aboveLimit := func(p catalog.Product) bool { return p.Price > priceLimit }
	return query.Filter(snap.Products, query.And(inCategory, aboveLimit)), nil
}

// ByCategory returns the products of the given category, ignoring case.
func (s *Products) ByCategory(ctx context.Context, category string) ([]catalog.Product, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return query.Filter(snap.Products, func(p catalog.Product) bool {
		return query.EqualFold(p.Category, category)
	}), nil
}

// ByCategoryDiscounted returns price-adjusted copies of the category's
// products, each discounted by the given fraction (0.1 means 10% off).
// The snapshot's products are left untouched.
func (s *Products) ByCategoryDiscounted(ctx context.Context, category string, discount float64) ([]catalog.Product, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	matched := query.Filter(snap.Products, func(p catalog.Product) bool {
		return query.EqualFold(p.Category, category)
	})
	return query.Map(matched, func(p catalog.Product) catalog.Product {
		return p.WithPrice(p.Price * (1 - discount))
	}), nil
}

// CheapestInCategory returns the lowest-priced product of the category.
// The boolean is false when the category is empty; ties resolve to the
// first product in scan order.
func (s *Products) CheapestInCategory(ctx context.Context, category string) (catalog.Product, bool, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return catalog.Product{}, false, err
	}
	matched := query.Filter(snap.Products, func(p catalog.Product) bool {
		return query.EqualFold(p.Category, category)
	})
	best, ok := query.MinBy(matched, productPrice)
	return best, ok, nil
}

// MostExpensiveInCategory returns the highest-priced product of the
// category, with the same absence and tie rules as CheapestInCategory.
func (s *Products) MostExpensiveInCategory(ctx context.Context, category string) (catalog.Product, bool, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return catalog.Product{}, false, err
	}
	matched := query.Filter(snap.Products, func(p catalog.Product) bool {
		return query.EqualFold(p.Category, category)
	})
	best, ok := query.MaxBy(matched, productPrice)
	return best, ok, nil
}

// MostExpensiveByCategory maps every category present in the snapshot to
// its highest-priced product. Categories group by exact value here, the
// way the grouping key is stored.
func (s *Products) MostExpensiveByCategory(ctx context.Context) (map[string]catalog.Product, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	result := make(map[string]catalog.Product)
	for category, group := range query.GroupBy(snap.Products, func(p catalog.Product) string {
		return p.Category
	}) {
		if best, ok := query.MaxBy(group, productPrice); ok {
			result[category] = best
		}
	}
	return result, nil
}

// Recent returns up to limit products ranked by id, newest (highest id)
// first.
func (s *Products) Recent(ctx context.Context, limit int) ([]catalog.Product, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	ranked := query.SortedByDesc(snap.Products, func(p catalog.Product) float64 {
		return float64(p.ID)
	})
	return query.Limit(ranked, limit), nil
}

// SumByCategory returns the total price of the category's products, 0.0
// when the category is empty.
func (s *Products) SumByCategory(ctx context.Context, category string) (float64, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return 0, err
	}
	var sum float64
	for _, p := range snap.Products {
		if query.EqualFold(p.Category, category) {
			sum += p.Price
		}
	}
	return sum, nil
}

// GroupByCategory partitions all products by their exact category value,
// preserving scan order within each group.
func (s *Products) GroupByCategory(ctx context.Context) (map[string][]catalog.Product, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return query.GroupBy(snap.Products, func(p catalog.Product) string {
		return p.Category
	}), nil
}

// PriceStatsInCategory computes sum, count, min, max, and average over the
// category's product prices in one pass. An empty category yields the
// zero summary rather than an error.
func (s *Products) PriceStatsInCategory(ctx context.Context, category string) (query.Summary, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return query.Summary{}, err
	}
	matched := query.Filter(snap.Products, func(p catalog.Product) bool {
		return query.EqualFold(p.Category, category)
	})
	return query.Summarize(query.Map(matched, productPrice)), nil
}

// SearchByName returns the products whose name contains the given text,
// ignoring case.
func (s *Products) SearchByName(ctx context.Context, name string) ([]catalog.Product, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return query.Filter(snap.Products, func(p catalog.Product) bool {
		return query.ContainsFold(p.Name, name)
	}), nil
}

// InPriceRange returns the products priced inside the closed interval
// [min, max].
func (s *Products) InPriceRange(ctx context.Context, min, max float64) ([]catalog.Product, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return query.Filter(snap.Products, func(p catalog.Product) bool {
		return p.Price >= min && p.Price <= max
	}), nil
}

// Categories returns the distinct category labels in first-seen order.
func (s *Products) Categories(ctx context.Context) ([]string, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return query.Distinct(query.Map(snap.Products, func(p catalog.Product) string {
		return p.Category
	})), nil
}

// CountByCategory maps every category to its product count.
func (s *Products) CountByCategory(ctx context.Context) (map[string]int64, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return query.CountBy(snap.Products, func(p catalog.Product) string {
		return p.Category
	}), nil
}
