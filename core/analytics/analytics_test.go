package analytics

import (
	"time"

	"github.com/asaidimu/go-mercato/core/catalog"
)

// testStore builds the fixture dataset shared by the service tests:
//
//	customers: Alice (tier 1), Bob (tier 2), Carol (tier 2, no orders)
//	products:  three Books (10/20/30), two Electronics (50/75), one Kitchen (8)
//	orders:    #1 Alice  2021-03-15 DELIVERED {Mouse, Keyboard}   total 125
//	           #2 Bob    2021-02-10 PENDING   {Go Basics, Go Adv} total 30
//	           #3 Bob    2021-03-20 DELIVERED {Go Basics, Compilers} total 40
//	           #4 —      no date   CANCELLED {Mug}                total 8
//	           #5 Alice  2021-04-01 PENDING   {}                  total 0
func testStore() *catalog.MemoryStore {
	return &catalog.MemoryStore{
		Customers: []catalog.Customer{
			{ID: 1, Name: "Alice", Tier: 1},
			{ID: 2, Name: "Bob", Tier: 2},
			{ID: 3, Name: "Carol", Tier: 2},
		},
		Products: []catalog.Product{
			{ID: 1, Name: "Go Basics", Category: "Books", Price: 10},
			{ID: 2, Name: "Go Advanced", Category: "Books", Price: 20},
			{ID: 3, Name: "Compilers", Category: "Books", Price: 30},
			{ID: 4, Name: "Mouse", Category: "Electronics", Price: 50},
			{ID: 5, Name: "Keyboard", Category: "Electronics", Price: 75},
			{ID: 6, Name: "Mug", Category: "Kitchen", Price: 8},
		},
		Orders: []catalog.Order{
			{ID: 1, OrderDate: catalog.Date(2021, time.March, 15), Status: "DELIVERED", CustomerID: 1, ProductIDs: []int64{4, 5}},
			{ID: 2, OrderDate: catalog.Date(2021, time.February, 10), Status: "PENDING", CustomerID: 2, ProductIDs: []int64{1, 2}},
			{ID: 3, OrderDate: catalog.Date(2021, time.March, 20), Status: "DELIVERED", CustomerID: 2, ProductIDs: []int64{1, 3}},
			{ID: 4, Status: "CANCELLED", ProductIDs: []int64{6}},
			{ID: 5, OrderDate: catalog.Date(2021, time.April, 1), Status: "PENDING", CustomerID: 1},
		},
	}
}

func ids[T interface{ catalog.Customer | catalog.Order | catalog.Product }](items []T) []int64 {
	out := make([]int64, 0, len(items))
	for _, v := range items {
		switch e := any(v).(type) {
		case catalog.Customer:
			out = append(out, e.ID)
		case catalog.Order:
			out = append(out, e.ID)
		case catalog.Product:
			out = append(out, e.ID)
		}
	}
	return out
}
