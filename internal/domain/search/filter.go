// Package search is a pure predicate composer shared by every record kind.
// All active predicates combine with logical AND, so declaration order never
// changes the result, and Apply preserves the input's relative order.
package search

import "strings"

type Predicate[T any] func(T) bool

// Filter accumulates predicates for one entity kind.
type Filter[T any] struct {
	preds []Predicate[T]
}

func New[T any]() *Filter[T] {
	return &Filter[T]{}
}

// Text adds a case-insensitive substring match over the given string fields.
// An empty term matches everything.
func (f *Filter[T]) Text(term string, fields func(T) []string) *Filter[T] {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return f
	}
	f.preds = append(f.preds, func(item T) bool {
		for _, field := range fields(item) {
			if strings.Contains(strings.ToLower(field), term) {
				return true
			}
		}
		return false
	})
	return f
}

// Equals adds an exact categorical match. An empty want means "match all".
func (f *Filter[T]) Equals(want string, field func(T) string) *Filter[T] {
	if want == "" {
		return f
	}
	f.preds = append(f.preds, func(item T) bool {
		return field(item) == want
	})
	return f
}

// Where adds an arbitrary predicate when active is true.
func (f *Filter[T]) Where(active bool, pred Predicate[T]) *Filter[T] {
	if active {
		f.preds = append(f.preds, pred)
	}
	return f
}

// Apply returns a new slice of the items passing every predicate. The input
// is never mutated.
func (f *Filter[T]) Apply(items []T) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if f.match(item) {
			out = append(out, item)
		}
	}
	return out
}

func (f *Filter[T]) match(item T) bool {
	for _, pred := range f.preds {
		if !pred(item) {
			return false
		}
	}
	return true
}
