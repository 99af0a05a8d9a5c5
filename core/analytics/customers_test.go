package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/asaidimu/go-mercato/core/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomersByTier(t *testing.T) {
	s := NewCustomers(testStore())
	ctx := context.Background()

	tier2, err := s.ByTier(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 3}, ids(tier2))

	tier9, err := s.ByTier(ctx, 9)
	require.NoError(t, err)
	assert.Empty(t, tier9, "unknown tier yields empty result, not an error")
}

func TestCustomersByName(t *testing.T) {
	s := NewCustomers(testStore())
	ctx := context.Background()

	t.Run("case-insensitive substring", func(t *testing.T) {
		matched, err := s.ByName(ctx, "ALI")
		require.NoError(t, err)
		assert.Equal(t, []int64{1}, ids(matched))
	})

	t.Run("no match", func(t *testing.T) {
		matched, err := s.ByName(ctx, "zelda")
		require.NoError(t, err)
		assert.Empty(t, matched)
	})
}

func TestCustomersWithAndWithoutOrders(t *testing.T) {
	s := NewCustomers(testStore())
	ctx := context.Background()

	with, err := s.WithOrders(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2}, ids(with))

	without, err := s.WithoutOrders(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{3}, ids(without))
}

func TestCustomerWithMostOrders(t *testing.T) {
	s := NewCustomers(testStore())

	// Alice and Bob both hold two orders; the first in scan order wins.
	best, ok, err := s.WithMostOrders(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Alice", best.Name)
}

func TestCustomerWithMostOrdersEmpty(t *testing.T) {
	s := NewCustomers(&catalog.MemoryStore{})

	_, ok, err := s.WithMostOrders(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCustomersWhoOrderedCategory(t *testing.T) {
	s := NewCustomers(testStore())
	ctx := context.Background()

	matched, err := s.WhoOrderedCategory(ctx, "Books")
	require.NoError(t, err)
	assert.Equal(t, []int64{2}, ids(matched))

	// This lookup is deliberately case-sensitive.
	matched, err = s.WhoOrderedCategory(ctx, "books")
	require.NoError(t, err)
	assert.Empty(t, matched)
}

func TestCustomerTotalSpent(t *testing.T) {
	s := NewCustomers(testStore())

	spent, err := s.TotalSpent(context.Background())
	require.NoError(t, err)

	require.Len(t, spent, 2, "customers without orders are excluded")
	assert.Equal(t, 125.0, spent[catalog.Customer{ID: 1, Name: "Alice", Tier: 1}])
	assert.Equal(t, 70.0, spent[catalog.Customer{ID: 2, Name: "Bob", Tier: 2}])
}

func TestTopSpendingCustomer(t *testing.T) {
	s := NewCustomers(testStore())

	best, ok, err := s.TopSpending(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Alice", best.Name)
}

func TestTopSpendingCustomerNobodyQualifies(t *testing.T) {
	store := &catalog.MemoryStore{
		Customers: []catalog.Customer{{ID: 1, Name: "Alice", Tier: 1}},
	}
	s := NewCustomers(store)

	_, ok, err := s.TopSpending(context.Background())
	require.NoError(t, err)
	assert.False(t, ok, "customers without orders are not ranked as zero spenders")
}

func TestCustomerStatistics(t *testing.T) {
	s := NewCustomers(testStore())

	stats, err := s.Statistics(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, stats["totalCustomers"])
	assert.Equal(t, 2, stats["customersWithOrders"])
	assert.Equal(t, 1, stats["customersWithoutOrders"])
	assert.Equal(t, map[int]int64{1: 1, 2: 2}, stats["tierDistribution"])
}

func TestCustomersActiveBetween(t *testing.T) {
	s := NewCustomers(testStore())
	ctx := context.Background()

	feb := catalog.Date(2021, time.February, 1)
	febEnd := catalog.Date(2021, time.February, 28)
	matched, err := s.ActiveBetween(ctx, feb, febEnd)
	require.NoError(t, err)
	assert.Equal(t, []int64{2}, ids(matched))

	// The interval is closed on both ends.
	matched, err = s.ActiveBetween(ctx, catalog.Date(2021, time.March, 15), catalog.Date(2021, time.March, 15))
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, ids(matched))
}

func TestRecentlyActiveCustomers(t *testing.T) {
	s := NewCustomers(testStore())

	ranked, err := s.RecentlyActive(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2}, ids(ranked), "Alice last ordered 04-01, Bob 03-20")

	one, err := s.RecentlyActive(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, ids(one))
}

func TestCustomersIdempotent(t *testing.T) {
	s := NewCustomers(testStore())
	ctx := context.Background()

	first, err := s.ByTier(ctx, 2)
	require.NoError(t, err)
	second, err := s.ByTier(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
