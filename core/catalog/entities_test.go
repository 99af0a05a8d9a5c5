package catalog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCustomerEquality(t *testing.T) {
	a := Customer{ID: 1, Name: "Alice", Tier: 1}
	b := Customer{ID: 1, Name: "Alice", Tier: 1}
	assert.Equal(t, a, b)

	m := map[Customer]int{a: 1}
	m[b]++
	assert.Equal(t, 2, m[a])
}

func TestOrderKeyExcludesRelationships(t *testing.T) {
	date := Date(2021, time.March, 15)
	a := Order{ID: 7, OrderDate: date, Status: "PENDING", CustomerID: 1, ProductIDs: []int64{1, 2}}
	b := Order{ID: 7, OrderDate: date, Status: "PENDING", CustomerID: 9, ProductIDs: []int64{3}}

	assert.Equal(t, a.Key(), b.Key())
}

func TestOrderAddProduct(t *testing.T) {
	var o Order
	o.AddProduct(3)
	o.AddProduct(1)
	o.AddProduct(3)
	assert.Equal(t, []int64{3, 1}, o.ProductIDs, "duplicates ignored, attachment order kept")
}

func TestOrderRemoveProduct(t *testing.T) {
	o := Order{ProductIDs: []int64{1, 2, 3}}
	o.RemoveProduct(2)
	assert.Equal(t, []int64{1, 3}, o.ProductIDs)

	o.RemoveProduct(99)
	assert.Equal(t, []int64{1, 3}, o.ProductIDs, "removing an unknown product is a no-op")
}

func TestOrderAbsentFields(t *testing.T) {
	var o Order
	assert.False(t, o.HasOrderDate())
	assert.False(t, o.HasCustomer())

	o.OrderDate = Date(2021, time.February, 1)
	o.CustomerID = 4
	assert.True(t, o.HasOrderDate())
	assert.True(t, o.HasCustomer())
}

func TestProductWithPrice(t *testing.T) {
	p := Product{ID: 1, Name: "Go Basics", Category: "Books", Price: 10}
	discounted := p.WithPrice(9)

	assert.Equal(t, 9.0, discounted.Price)
	assert.Equal(t, 10.0, p.Price, "original untouched")
	assert.Equal(t, p.ID, discounted.ID)
	assert.Equal(t, p.Category, discounted.Category)
}

func TestProductBuilder(t *testing.T) {
	p := NewProductBuilder().
		ID(5).
		Name("Keyboard").
		Category("Electronics").
		Price(75).
		Build()

	assert.Equal(t, Product{ID: 5, Name: "Keyboard", Category: "Electronics", Price: 75}, p)
}

func TestDate(t *testing.T) {
	d := Date(2021, time.March, 15)
	assert.Equal(t, time.Date(2021, time.March, 15, 0, 0, 0, 0, time.UTC), d)
	assert.True(t, Date(2021, time.March, 15).Equal(d))
}
