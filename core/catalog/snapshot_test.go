package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSnapshot() *Snapshot {
	customers := []Customer{
		{ID: 1, Name: "Alice", Tier: 1},
		{ID: 2, Name: "Bob", Tier: 2},
		{ID: 3, Name: "Carol", Tier: 2},
	}
	products := []Product{
		{ID: 1, Name: "Go Basics", Category: "Books", Price: 10},
		{ID: 2, Name: "Mouse", Category: "Electronics", Price: 50},
		{ID: 3, Name: "Keyboard", Category: "Electronics", Price: 75},
	}
	orders := []Order{
		{ID: 1, OrderDate: Date(2021, time.March, 15), Status: "DELIVERED", CustomerID: 1, ProductIDs: []int64{2, 3}},
		{ID: 2, OrderDate: Date(2021, time.February, 10), Status: "PENDING", CustomerID: 2, ProductIDs: []int64{1}},
		{ID: 3, Status: "CANCELLED", ProductIDs: []int64{1}},
		{ID: 4, OrderDate: Date(2021, time.April, 1), Status: "PENDING", CustomerID: 1},
	}
	return NewSnapshot(customers, orders, products)
}

func TestLoad(t *testing.T) {
	snap := testSnapshot()
	store := &MemoryStore{Customers: snap.Customers, Orders: snap.Orders, Products: snap.Products}

	loaded, err := Load(context.Background(), store, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, loaded.ID)
	assert.Equal(t, snap.Customers, loaded.Customers)
	assert.Equal(t, snap.Orders, loaded.Orders)
	assert.Equal(t, snap.Products, loaded.Products)
}

type failingStore struct {
	MemoryStore
}

func (f *failingStore) ListOrders(ctx context.Context) ([]Order, error) {
	return nil, errors.New("boom")
}

func TestLoadPropagatesRepositoryErrors(t *testing.T) {
	_, err := Load(context.Background(), &failingStore{}, nil)
	assert.ErrorContains(t, err, "list orders")
}

func TestProductsOf(t *testing.T) {
	snap := testSnapshot()

	products := snap.ProductsOf(snap.Orders[0])
	require.Len(t, products, 2)
	assert.Equal(t, int64(2), products[0].ID, "attachment order preserved")
	assert.Equal(t, int64(3), products[1].ID)

	assert.Empty(t, snap.ProductsOf(snap.Orders[3]), "order without products")

	unknown := Order{ID: 9, ProductIDs: []int64{404}}
	assert.Empty(t, snap.ProductsOf(unknown), "unknown product references skipped")
}

func TestOrdersOf(t *testing.T) {
	snap := testSnapshot()

	orders := snap.OrdersOf(snap.Customers[0])
	require.Len(t, orders, 2)
	assert.Equal(t, int64(1), orders[0].ID)
	assert.Equal(t, int64(4), orders[1].ID)

	assert.Empty(t, snap.OrdersOf(snap.Customers[2]), "customer without orders")
}

func TestOrdersWithProduct(t *testing.T) {
	snap := testSnapshot()

	orders := snap.OrdersWithProduct(snap.Products[0])
	require.Len(t, orders, 2)
	assert.Equal(t, int64(2), orders[0].ID)
	assert.Equal(t, int64(3), orders[1].ID)
}

func TestCustomerOf(t *testing.T) {
	snap := testSnapshot()

	c, ok := snap.CustomerOf(snap.Orders[0])
	require.True(t, ok)
	assert.Equal(t, "Alice", c.Name)

	_, ok = snap.CustomerOf(snap.Orders[2])
	assert.False(t, ok, "order without customer reference")

	_, ok = snap.CustomerOf(Order{ID: 9, CustomerID: 404})
	assert.False(t, ok, "unresolvable customer reference")
}

func TestOrderTotal(t *testing.T) {
	snap := testSnapshot()

	assert.Equal(t, 125.0, snap.OrderTotal(snap.Orders[0]))
	assert.Equal(t, 10.0, snap.OrderTotal(snap.Orders[1]))
	assert.Equal(t, 0.0, snap.OrderTotal(snap.Orders[3]), "empty product set totals zero")
}

func TestProductsOfOrdersDeduplicates(t *testing.T) {
	snap := testSnapshot()

	// Product 1 appears in orders 2 and 3; it must come out once, in
	// first-occurrence order.
	products := snap.ProductsOfOrders(snap.Orders)
	require.Len(t, products, 3)
	assert.Equal(t, int64(2), products[0].ID)
	assert.Equal(t, int64(3), products[1].ID)
	assert.Equal(t, int64(1), products[2].ID)
}

func TestOrdersOfCustomers(t *testing.T) {
	snap := testSnapshot()

	orders := snap.OrdersOfCustomers(snap.Customers)
	require.Len(t, orders, 3, "customerless order not reachable through customers")
}

func TestMemoryStoreCount(t *testing.T) {
	store := &MemoryStore{
		Customers: []Customer{{ID: 1}},
		Products:  []Product{{ID: 1}, {ID: 2}},
	}
	ctx := context.Background()

	n, err := store.Count(ctx, KindCustomer)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = store.Count(ctx, KindProduct)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	n, err = store.Count(ctx, KindOrder)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)

	_, err = store.Count(ctx, Kind("widget"))
	assert.Error(t, err)
}
