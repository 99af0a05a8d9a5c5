package analytics

import (
	"context"
	"fmt"

	"github.com/asaidimu/go-mercato/core/catalog"
	"github.com/asaidimu/go-mercato/core/query"
	"github.com/asaidimu/go-mercato/utils"
	"go.uber.org/zap"
)

// topCategoriesInReport is how many popular categories the sales report
// carries, matching the original report shape.
const topCategoriesInReport = 5

// SalesReport is the composed output of the report assembler. Field names
// double as the keys of the flat map representation.
type SalesReport struct {
	TotalOrders           int64            `json:"totalOrders"`
	TotalCustomers        int64            `json:"totalCustomers"`
	TotalProducts         int64            `json:"totalProducts"`
	TotalRevenue          float64          `json:"totalRevenue"`
	AverageOrderValue     float64          `json:"averageOrderValue"`
	OrdersByStatus        map[string]int64 `json:"ordersByStatus"`
	MostPopularCategories []CategoryCount  `json:"mostPopularCategories"`
}

// Report assembles the sales report from the layers below. It performs no
// computation of its own beyond composition, and it fails as a whole when
// any sub-computation fails rather than reporting zeros.
type Report struct {
	engine
}

// NewReport creates the report assembler.
func NewReport(repos catalog.Repositories, opts ...Option) *Report {
	return &Report{engine: newEngine(repos, opts...)}
}

// Sales builds the sales report over a fresh snapshot. Entity totals come
// from the store's Counter capability when it offers one, and from the
// snapshot otherwise. Emits report events around the assembly.
func (r *Report) Sales(ctx context.Context) (*SalesReport, error) {
	return withEventEmission(r.bus, "report.sales",
		ReportSalesStart, ReportSalesSuccess, ReportSalesFailed,
		nil,
		func() (*SalesReport, error) {
			return r.assembleSales(ctx)
		})
}

// SalesMap builds the sales report and flattens it into a map keyed by
// report field name.
func (r *Report) SalesMap(ctx context.Context) (map[string]any, error) {
	report, err := r.Sales(ctx)
	if err != nil {
		return nil, err
	}
	flat, err := utils.StructToMap(report)
	if err != nil {
		return nil, fmt.Errorf("sales report: flatten: %w", err)
	}
	return flat, nil
}

func (r *Report) assembleSales(ctx context.Context) (*SalesReport, error) {
	snap, err := r.snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("sales report: %w", err)
	}

	report := &SalesReport{
		OrdersByStatus: query.CountBy(snap.Orders, func(o catalog.Order) string {
			return o.Status
		}),
		MostPopularCategories: popularCategories(snap, topCategoriesInReport),
	}

	report.TotalOrders, err = r.countOrFallback(ctx, catalog.KindOrder, len(snap.Orders))
	if err != nil {
		return nil, fmt.Errorf("sales report: count orders: %w", err)
	}
	report.TotalCustomers, err = r.countOrFallback(ctx, catalog.KindCustomer, len(snap.Customers))
	if err != nil {
		return nil, fmt.Errorf("sales report: count customers: %w", err)
	}
	report.TotalProducts, err = r.countOrFallback(ctx, catalog.KindProduct, len(snap.Products))
	if err != nil {
		return nil, fmt.Errorf("sales report: count products: %w", err)
	}

	totals := query.Map(snap.Orders, snap.OrderTotal)
	for _, t := range totals {
		report.TotalRevenue += t
	}
	report.AverageOrderValue = query.Mean(totals)

	r.logger.Info("Assembled sales report",
		zap.Int64("orders", report.TotalOrders),
		zap.Float64("revenue", report.TotalRevenue))
	return report, nil
}

// countOrFallback uses the store's Counter when available and the already
// materialized snapshot length otherwise.
func (r *Report) countOrFallback(ctx context.Context, kind catalog.Kind, listed int) (int64, error) {
	counter, ok := r.repos.(catalog.Counter)
	if !ok {
		return int64(listed), nil
	}
	return counter.Count(ctx, kind)
}
