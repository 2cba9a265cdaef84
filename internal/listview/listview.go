// Package listview implements the composable filter/aggregate view model
// shared by the dashboard list endpoints: case-insensitive text search ORed
// across fields, equality filters ANDed together, order-preserving filtering,
// aggregate derivations, and pure pagination slicing.
package listview

import (
	"strings"
)

// Predicate decides whether a record belongs to the filtered subset
type Predicate[T any] func(T) bool

// TextSearch matches records where ANY of the given fields contains term,
// case-insensitively. An empty term matches everything.
func TextSearch[T any](term string, fields ...func(T) string) Predicate[T] {
	term = strings.ToLower(strings.TrimSpace(term))
	return func(item T) bool {
		if term == "" {
			return true
		}
		for _, field := range fields {
			if strings.Contains(strings.ToLower(field(item)), term) {
				return true
			}
		}
		return false
	}
}

// Equals matches records whose field equals want. An empty want matches
// everything, so unset filters are no-ops.
func Equals[T any](want string, field func(T) string) Predicate[T] {
	return func(item T) bool {
		if want == "" {
			return true
		}
		return field(item) == want
	}
}

// OneOf matches records whose field equals any of the wanted values. An empty
// wanted set matches everything.
func OneOf[T any](wanted []string, field func(T) string) Predicate[T] {
	set := make(map[string]struct{}, len(wanted))
	for _, w := range wanted {
		if w != "" {
			set[w] = struct{}{}
		}
	}
	return func(item T) bool {
		if len(set) == 0 {
			return true
		}
		_, ok := set[field(item)]
		return ok
	}
}

// Filter returns the subset of items satisfying ALL predicates, preserving
// the original order. Independent predicates commute: applying them in any
// order, or in one pass, yields the same subset.
func Filter[T any](items []T, preds ...Predicate[T]) []T {
	if len(preds) == 0 {
		return items
	}
	out := make([]T, 0, len(items))
outer:
	for _, item := range items {
		for _, pred := range preds {
			if !pred(item) {
				continue outer
			}
		}
		out = append(out, item)
	}
	return out
}

// Count returns the number of items satisfying the predicate
func Count[T any](items []T, pred Predicate[T]) int {
	n := 0
	for _, item := range items {
		if pred(item) {
			n++
		}
	}
	return n
}

// Sum totals value over all items
func Sum[T any](items []T, value func(T) float64) float64 {
	var total float64
	for _, item := range items {
		total += value(item)
	}
	return total
}

// Average returns the mean of value over the items for which ok reports a
// usable value; the second return is false when no item contributed.
func Average[T any](items []T, value func(T) (float64, bool)) (float64, bool) {
	var total float64
	n := 0
	for _, item := range items {
		if v, ok := value(item); ok {
			total += v
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return total / float64(n), true
}

// PercentOfTotal returns the share (0..1) of items satisfying the predicate.
// Zero items yields zero, not NaN.
func PercentOfTotal[T any](items []T, pred Predicate[T]) float64 {
	if len(items) == 0 {
		return 0
	}
	return float64(Count(items, pred)) / float64(len(items))
}

// Page slices one page out of the (already filtered and sorted) collection.
// Pages are 1-based; an out-of-range page yields an empty slice. Concatenating
// all pages in order reconstructs the input exactly.
func Page[T any](items []T, page, pageSize int) []T {
	if page < 1 || pageSize < 1 {
		return []T{}
	}
	start := (page - 1) * pageSize
	if start >= len(items) {
		return []T{}
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
