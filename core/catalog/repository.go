package catalog

import "context"

// Kind identifies one of the three entity collections.
type Kind string

// Entity kinds understood by Counter implementations.
const (
	KindCustomer Kind = "customer"
	KindOrder    Kind = "order"
	KindProduct  Kind = "product"
)

// CustomerRepository is the storage capability for customers. The engine
// only ever lists the full collection; creation, identity assignment, and
// deletion belong to the storage collaborator.
type CustomerRepository interface {
	ListCustomers(ctx context.Context) ([]Customer, error)
}

// OrderRepository is the storage capability for orders.
type OrderRepository interface {
	ListOrders(ctx context.Context) ([]Order, error)
}

// ProductRepository is the storage capability for products.
type ProductRepository interface {
	ListProducts(ctx context.Context) ([]Product, error)
}

// Counter is an optional capability for counting a collection without
// materializing it. Stores that do not implement it fall back to listing.
type Counter interface {
	Count(ctx context.Context, kind Kind) (int64, error)
}

// Repositories bundles the three per-entity capabilities a snapshot load
// needs. Implementations may additionally satisfy Counter.
type Repositories interface {
	CustomerRepository
	OrderRepository
	ProductRepository
}
