// Package view derives read-only results from a snapshot of a collection.
// Nothing here keeps state; callers recompute whenever they need a fresh view.
package view

import "github.com/shopspring/decimal"

// Predicate is one independent filter condition. An inactive predicate
// contributes no constraint.
type Predicate[T any] struct {
	Active bool
	Match  func(T) bool
}

// When returns a predicate that is active only when active is true.
func When[T any](active bool, match func(T) bool) Predicate[T] {
	return Predicate[T]{Active: active, Match: match}
}

// Filter returns the items satisfying every active predicate, in input order.
func Filter[T any](items []T, preds ...Predicate[T]) []T {
	active := make([]Predicate[T], 0, len(preds))
	for _, p := range preds {
		if p.Active && p.Match != nil {
			active = append(active, p)
		}
	}
	out := make([]T, 0, len(items))
next:
	for _, item := range items {
		for _, p := range active {
			if !p.Match(item) {
				continue next
			}
		}
		out = append(out, item)
	}
	return out
}

// Window returns at most the first n items. A negative n keeps everything.
func Window[T any](items []T, n int) []T {
	if n < 0 || n >= len(items) {
		return items
	}
	return items[:n]
}

// Sum adds value over items with full decimal precision.
func Sum[T any](items []T, value func(T) decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(value(item))
	}
	return total
}

// Count returns the number of items matching match.
func Count[T any](items []T, match func(T) bool) int {
	n := 0
	for _, item := range items {
		if match(item) {
			n++
		}
	}
	return n
}
