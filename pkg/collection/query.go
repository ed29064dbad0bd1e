package collection

import (
	"strings"

	"github.com/mcclellann/branchdesk/pkg/models"
)

// Query is the filter state of a list view. Only one search field is active
// at a time.
type Query struct {
	Field   models.SearchField
	Text    string
	Date    string
	Officer string
	Status  string
}

func (q Query) Searching() bool {
	return strings.TrimSpace(q.Text) != ""
}

// Narrowing reports whether a search or an officer filter is in effect.
func (q Query) Narrowing() bool {
	return q.Searching() || !officerFilterOff(q.Officer)
}

type Record interface {
	Searchable
	Dated
}

type OfficerRecord interface {
	Record
	Officered
}

type StockRecord interface {
	OfficerRecord
	Stocked
}

// Select applies the search and date filters. A non-empty search ignores the
// date so that account and mobile lookups span every day.
func Select[T Record](items []T, q Query) []T {
	if q.Searching() {
		return Filter(items, MatchSearch[T](q.Field, q.Text))
	}
	return Filter(items, MatchDate[T](q.Date))
}

type Group[T any] struct {
	Officer string `json:"officer"`
	Items   []T    `json:"items"`
}

// GroupByOfficer selects items with q and buckets them by officer in roster
// order. Roster officers without items still get an (empty) group unless the
// view is narrowed by a search or officer filter. Items whose officer is not
// on the roster land in OtherOfficers, which only appears without an officer
// filter.
func GroupByOfficer[T OfficerRecord](items []T, roster []string, q Query) []Group[T] {
	matched := Filter(Select(items, q), MatchOfficer[T](q.Officer))
	byOfficer := GroupBy(matched, func(item T) string { return item.OfficerName() })
	narrowing := q.Narrowing()

	groups := make([]Group[T], 0, len(roster)+1)
	known := make(map[string]bool, len(roster))
	for _, name := range roster {
		known[name] = true
		found := byOfficer[name]
		if len(found) == 0 {
			if narrowing {
				continue
			}
			found = []T{}
		}
		groups = append(groups, Group[T]{Officer: name, Items: found})
	}

	if officerFilterOff(q.Officer) {
		var other []T
		for _, item := range matched {
			if !known[item.OfficerName()] {
				other = append(other, item)
			}
		}
		if len(other) > 0 {
			groups = append(groups, Group[T]{Officer: OtherOfficers, Items: other})
		}
	}
	return groups
}

type Tally struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Submitted int `json:"submitted"`
}

func Count[T Stocked](items []T) Tally {
	t := Tally{Total: len(items)}
	for _, item := range items {
		switch item.InventoryState() {
		case models.InventoryStatusPending:
			t.Pending++
		case models.InventoryStatusSubmitted:
			t.Submitted++
		}
	}
	return t
}

type InventoryView[T any] struct {
	Items  []T        `json:"items"`
	Groups []Group[T] `json:"groups"`
	Tally  Tally      `json:"tally"`
}

// Inventory narrows items by search (or received date) and officer, tallies
// them, and only then applies the status filter, so the counters show every
// status at once. The shown items are also grouped by officer in roster order.
func Inventory[T StockRecord](items []T, roster []string, q Query) InventoryView[T] {
	scoped := Filter(Select(items, q), MatchOfficer[T](q.Officer))
	shown := Filter(scoped, MatchStatus[T](q.Status))
	return InventoryView[T]{
		Items:  shown,
		Groups: GroupByOfficer(shown, roster, q),
		Tally:  Count(scoped),
	}
}
