// Package query provides the composable building blocks the analytics
// services are written with: boolean predicates over entities, slice
// pipeline helpers (filter, flatten, group, rank), and a one-pass numeric
// summary. Everything here is pure: no I/O, no mutation of inputs, results
// stable with respect to input scan order.
package query

import (
	"strings"
	"time"
)

// Predicate is a boolean-valued function over one entity. Predicates are
// combined by plain function composition; And/Or/Not cover the logical
// connectives without any DSL machinery.
type Predicate[T any] func(T) bool

// And returns a predicate that passes when every given predicate passes.
// With no arguments it passes everything.
func And[T any](preds ...Predicate[T]) Predicate[T] {
	return func(v T) bool {
		for _, p := range preds {
			if !p(v) {
				return false
			}
		}
		return true
	}
}

// Or returns a predicate that passes when at least one given predicate
// passes. With no arguments it rejects everything.
func Or[T any](preds ...Predicate[T]) Predicate[T] {
	return func(v T) bool {
		for _, p := range preds {
			if p(v) {
				return true
			}
		}
		return false
	}
}

// Not negates a predicate.
func Not[T any](p Predicate[T]) Predicate[T] {
	return func(v T) bool {
		return !p(v)
	}
}

// EqualFold reports case-insensitive string equality. Category and status
// comparisons use it.
func EqualFold(a, b string) bool {
	return strings.EqualFold(a, b)
}

// ContainsFold reports whether s contains substr, ignoring case. Name
// searches use it.
func ContainsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// DateEquals reports calendar-date equality. An absent (zero) date never
// matches, even against another zero date.
func DateEquals(date, want time.Time) bool {
	return !date.IsZero() && date.Equal(want)
}

// DateWithin reports whether date falls inside the closed interval
// [start, end]. An absent date never matches.
func DateWithin(date, start, end time.Time) bool {
	if date.IsZero() {
		return false
	}
	return !date.Before(start) && !date.After(end)
}

// DateAfter reports whether date is strictly after cutoff. An absent date
// never matches.
func DateAfter(date, cutoff time.Time) bool {
	return !date.IsZero() && date.After(cutoff)
}
