package catalog

import (
	"context"
	"fmt"
)

// MemoryStore is a slice-backed implementation of the repository
// capabilities. It is the store of choice for tests and examples; the
// sqlite package provides the database-backed equivalent.
type MemoryStore struct {
	Customers []Customer
	Orders    []Order
	Products  []Product
}

var _ Repositories = (*MemoryStore)(nil)
var _ Counter = (*MemoryStore)(nil)

// ListCustomers returns the customer collection as-is.
func (m *MemoryStore) ListCustomers(ctx context.Context) ([]Customer, error) {
	return m.Customers, nil
}

// ListOrders returns the order collection as-is.
func (m *MemoryStore) ListOrders(ctx context.Context) ([]Order, error) {
	return m.Orders, nil
}

// ListProducts returns the product collection as-is.
func (m *MemoryStore) ListProducts(ctx context.Context) ([]Product, error) {
	return m.Products, nil
}

// Count reports the size of a collection without copying it.
func (m *MemoryStore) Count(ctx context.Context, kind Kind) (int64, error) {
	switch kind {
	case KindCustomer:
		return int64(len(m.Customers)), nil
	case KindOrder:
		return int64(len(m.Orders)), nil
	case KindProduct:
		return int64(len(m.Products)), nil
	default:
		return 0, fmt.Errorf("unknown entity kind: %s", kind)
	}
}
