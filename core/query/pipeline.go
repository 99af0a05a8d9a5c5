package query

import "sort"

// Filter returns the elements that pass the predicate, preserving scan
// order. The input is never mutated.
func Filter[T any](items []T, p Predicate[T]) []T {
	var out []T
	for _, v := range items {
		if p(v) {
			out = append(out, v)
		}
	}
	return out
}

// Map projects each element through fn.
func Map[T, U any](items []T, fn func(T) U) []U {
	out := make([]U, 0, len(items))
	for _, v := range items {
		out = append(out, fn(v))
	}
	return out
}

// FlatMap projects each element to a slice and concatenates the results in
// scan order.
func FlatMap[T, U any](items []T, fn func(T) []U) []U {
	var out []U
	for _, v := range items {
		out = append(out, fn(v)...)
	}
	return out
}

// Distinct removes duplicates by value equality, keeping the first
// occurrence of each element.
func Distinct[T comparable](items []T) []T {
	seen := make(map[T]struct{}, len(items))
	var out []T
	for _, v := range items {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// AnyMatch reports whether at least one element passes the predicate.
func AnyMatch[T any](items []T, p Predicate[T]) bool {
	for _, v := range items {
		if p(v) {
			return true
		}
	}
	return false
}

// GroupBy partitions elements by key, preserving scan order within each
// group. Key uniqueness follows value equality of the comparable key type.
func GroupBy[T any, K comparable](items []T, key func(T) K) map[K][]T {
	groups := make(map[K][]T)
	for _, v := range items {
		k := key(v)
		groups[k] = append(groups[k], v)
	}
	return groups
}

// CountBy counts elements per key.
func CountBy[T any, K comparable](items []T, key func(T) K) map[K]int64 {
	counts := make(map[K]int64)
	for _, v := range items {
		counts[key(v)]++
	}
	return counts
}

// SumBy sums a projected value per key.
func SumBy[T any, K comparable](items []T, key func(T) K, value func(T) float64) map[K]float64 {
	sums := make(map[K]float64)
	for _, v := range items {
		sums[key(v)] += value(v)
	}
	return sums
}

// SortedByAsc returns a copy of items sorted ascending by the projected
// key. The sort is stable: elements with equal keys keep their scan order.
func SortedByAsc[T any](items []T, key func(T) float64) []T {
	out := make([]T, len(items))
	copy(out, items)
	sort.SliceStable(out, func(i, j int) bool {
		return key(out[i]) < key(out[j])
	})
	return out
}

// SortedByDesc returns a copy of items sorted descending by the projected
// key, stable with respect to scan order among equal keys.
func SortedByDesc[T any](items []T, key func(T) float64) []T {
	out := make([]T, len(items))
	copy(out, items)
	sort.SliceStable(out, func(i, j int) bool {
		return key(out[i]) > key(out[j])
	})
	return out
}

// Limit truncates items to at most n elements. A negative n yields nil.
func Limit[T any](items []T, n int) []T {
	if n < 0 {
		return nil
	}
	if len(items) <= n {
		return items
	}
	return items[:n]
}

// MaxBy returns the element with the greatest projected key. Among equal
// keys the first-seen element wins. The boolean is false for empty input.
func MaxBy[T any](items []T, key func(T) float64) (T, bool) {
	var best T
	if len(items) == 0 {
		return best, false
	}
	best = items[0]
	bestKey := key(best)
	for _, v := range items[1:] {
		if k := key(v); k > bestKey {
			best, bestKey = v, k
		}
	}
	return best, true
}

// MinBy returns the element with the smallest projected key, first-seen
// winning ties. The boolean is false for empty input.
func MinBy[T any](items []T, key func(T) float64) (T, bool) {
	var best T
	if len(items) == 0 {
		return best, false
	}
	best = items[0]
	bestKey := key(best)
	for _, v := range items[1:] {
		if k := key(v); k < bestKey {
			best, bestKey = v, k
		}
	}
	return best, true
}
