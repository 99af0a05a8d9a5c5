// Package catalog defines the entity graph the analytics engine reads:
// customers, orders, and products, together with the snapshot type that
// materializes one consistent view of all three collections and the derived
// relationship indices needed to traverse them.
//
// Entities are plain values. Relationships are one-directional forward
// references (an Order knows its customer and product IDs); reverse lookups
// are derived per snapshot rather than stored as mutable back-references.
package catalog

import (
	"fmt"
	"time"
)

// Customer is a buyer. Value equality over (ID, Name, Tier) is the identity
// used for grouping and map keys; the struct is comparable by design and must
// stay free of relationship-valued fields.
type Customer struct {
	ID   int64
	Name string
	Tier int
}

func (c Customer) String() string {
	return fmt.Sprintf("Customer{id=%d, name=%q, tier=%d}", c.ID, c.Name, c.Tier)
}

// Order is a single purchase. OrderDate and DeliveryDate use the zero
// time.Time to mean "date absent"; CustomerID 0 means the order has no known
// customer. ProductIDs carries the many-to-many link with set semantics
// (no duplicates), preserving attachment order.
type Order struct {
	ID           int64
	OrderDate    time.Time
	DeliveryDate time.Time
	Status       string
	CustomerID   int64
	ProductIDs   []int64
}

// OrderKey is the comparable identity of an Order: its scalar fields with
// the relationship fields excluded. Use it wherever an order must serve as
// a map key.
type OrderKey struct {
	ID           int64
	OrderDate    time.Time
	DeliveryDate time.Time
	Status       string
}

// Key returns the order's value identity.
func (o Order) Key() OrderKey {
	return OrderKey{ID: o.ID, OrderDate: o.OrderDate, DeliveryDate: o.DeliveryDate, Status: o.Status}
}

// HasOrderDate reports whether the order carries an order date.
func (o Order) HasOrderDate() bool {
	return !o.OrderDate.IsZero()
}

// HasCustomer reports whether the order references a customer.
func (o Order) HasCustomer() bool {
	return o.CustomerID != 0
}

// AddProduct attaches a product to the order, keeping ProductIDs
// duplicate-free. Attachment order is preserved for traversal stability.
func (o *Order) AddProduct(productID int64) {
	for _, id := range o.ProductIDs {
		if id == productID {
			return
		}
	}
	o.ProductIDs = append(o.ProductIDs, productID)
}

// RemoveProduct detaches a product from the order. Detaching a product that
// is not attached is a no-op.
func (o *Order) RemoveProduct(productID int64) {
	for i, id := range o.ProductIDs {
		if id == productID {
			o.ProductIDs = append(o.ProductIDs[:i], o.ProductIDs[i+1:]...)
			return
		}
	}
}

func (o Order) String() string {
	return fmt.Sprintf("Order{id=%d, orderDate=%s, status=%q, customerId=%d, products=%d}",
		o.ID, formatDate(o.OrderDate), o.Status, o.CustomerID, len(o.ProductIDs))
}

// Product is a catalog item. Price is treated as non-negative; the engine
// does not validate it. The struct is comparable and carries no relationship
// fields, so it can key maps directly.
type Product struct {
	ID       int64
	Name     string
	Category string
	Price    float64
}

// WithPrice returns a copy of the product with its price replaced. The
// receiver is left untouched.
func (p Product) WithPrice(price float64) Product {
	p.Price = price
	return p
}

func (p Product) String() string {
	return fmt.Sprintf("Product{id=%d, name=%q, category=%q, price=%.2f}", p.ID, p.Name, p.Category, p.Price)
}

// ProductBuilder assembles a Product step by step. It mirrors the shape of
// construction call sites that set fields by name.
type ProductBuilder struct {
	product Product
}

// NewProductBuilder creates an empty product builder.
func NewProductBuilder() *ProductBuilder {
	return &ProductBuilder{}
}

// ID sets the product id.
func (b *ProductBuilder) ID(id int64) *ProductBuilder {
	b.product.ID = id
	return b
}

// Name sets the product name.
func (b *ProductBuilder) Name(name string) *ProductBuilder {
	b.product.Name = name
	return b
}

// Category sets the product category.
func (b *ProductBuilder) Category(category string) *ProductBuilder {
	b.product.Category = category
	return b
}

// Price sets the product price.
func (b *ProductBuilder) Price(price float64) *ProductBuilder {
	b.product.Price = price
	return b
}

// Build returns the assembled product.
func (b *ProductBuilder) Build() Product {
	return b.product
}

// Date constructs a calendar date at UTC midnight. All order and delivery
// dates handled by the engine are normalized this way so that time.Time
// value equality behaves as calendar-date equality.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "<none>"
	}
	return t.Format("2006-01-02")
}
