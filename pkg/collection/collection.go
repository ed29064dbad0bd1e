// Package collection holds the filtering, grouping and tallying shared by
// every list view. All functions are pure and never modify their input.
package collection

import (
	"strings"

	"github.com/mcclellann/branchdesk/pkg/models"
)

// AllOfficers disables the officer filter.
const AllOfficers = "ALL"

// AllStatuses disables the status filter.
const AllStatuses = "ALL"

// OtherOfficers is the catch-all group for officers missing from the roster.
const OtherOfficers = "Other Officers"

type Searchable interface {
	SearchValue(field models.SearchField) string
}

type Dated interface {
	DateKey() string
}

type Officered interface {
	OfficerName() string
}

type Stocked interface {
	InventoryState() models.InventoryStatus
}

type Predicate[T any] func(T) bool

// Filter keeps the items every predicate accepts, preserving order.
func Filter[T any](items []T, preds ...Predicate[T]) []T {
	out := make([]T, 0, len(items))
next:
	for _, item := range items {
		for _, p := range preds {
			if !p(item) {
				continue next
			}
		}
		out = append(out, item)
	}
	return out
}

// GroupBy buckets items by key, preserving order inside each bucket.
func GroupBy[T any, K comparable](items []T, key func(T) K) map[K][]T {
	groups := make(map[K][]T)
	for _, item := range items {
		k := key(item)
		groups[k] = append(groups[k], item)
	}
	return groups
}

// MatchSearch does a case-insensitive substring match on one field. An empty
// query matches everything.
func MatchSearch[T Searchable](field models.SearchField, text string) Predicate[T] {
	q := strings.ToLower(strings.TrimSpace(text))
	return func(item T) bool {
		if q == "" {
			return true
		}
		return strings.Contains(strings.ToLower(item.SearchValue(field)), q)
	}
}

// MatchDate matches items whose ISO date starts with prefix.
func MatchDate[T Dated](prefix string) Predicate[T] {
	return func(item T) bool {
		return prefix == "" || strings.HasPrefix(item.DateKey(), prefix)
	}
}

func MatchOfficer[T Officered](officer string) Predicate[T] {
	return func(item T) bool {
		return officerFilterOff(officer) || item.OfficerName() == officer
	}
}

func MatchStatus[T Stocked](status string) Predicate[T] {
	return func(item T) bool {
		return status == "" || status == AllStatuses || string(item.InventoryState()) == status
	}
}

func officerFilterOff(officer string) bool {
	return officer == "" || officer == AllOfficers
}
