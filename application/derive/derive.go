// Package derive computes read-only views from store state.
//
// Everything here is pure: inputs are snapshots, outputs are fresh values,
// nothing is mutated. The presentation layer recomputes these on demand
// instead of caching them.
package derive

import (
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"storefront/domain/cart"
	"storefront/domain/catalog"
)

// SortKey names a sortable lesson field. The zero value means "no sorting".
type SortKey string

const (
	SortNone     SortKey = ""
	SortSubject  SortKey = "subject"
	SortLocation SortKey = "location"
	SortPrice    SortKey = "price"
	SortSpaces   SortKey = "spaces"
	SortRating   SortKey = "rating"
)

// SortOrder is the sort direction
type SortOrder string

const (
	Ascending  SortOrder = "asc"
	Descending SortOrder = "desc"
)

// collator provides locale-aware comparison for string sort keys
var collator = collate.New(language.English)

// View filters the catalog by the search query, then sorts it by the sort
// key. The input slice is never mutated. Ties keep their relative catalog
// order (the sort is stable), and an empty query skips filtering entirely.
func View(lessons []*catalog.Lesson, query string, key SortKey, order SortOrder) []*catalog.Lesson {
	view := make([]*catalog.Lesson, 0, len(lessons))

	if query == "" {
		view = append(view, lessons...)
	} else {
		q := strings.ToLower(query)
		for _, l := range lessons {
			if matches(l, q) {
				view = append(view, l)
			}
		}
	}

	if key != SortNone {
		sort.SliceStable(view, func(i, j int) bool {
			c := compare(view[i], view[j], key)
			if order == Descending {
				return c > 0
			}
			return c < 0
		})
	}

	return view
}

// matches reports whether any of the lesson's searchable fields contains the
// lowercased query as a substring. Price and spaces match on their decimal
// string forms, so "1" matches a price of 10.
func matches(l *catalog.Lesson, q string) bool {
	return strings.Contains(strings.ToLower(l.Subject()), q) ||
		strings.Contains(strings.ToLower(l.Location()), q) ||
		strings.Contains(l.Price().String(), q) ||
		strings.Contains(strconv.Itoa(l.Spaces()), q)
}

// compare orders two lessons by the given key: collator comparison for the
// string fields, numeric difference for the rest.
func compare(a, b *catalog.Lesson, key SortKey) int {
	switch key {
	case SortSubject:
		return collator.CompareString(a.Subject(), b.Subject())
	case SortLocation:
		return collator.CompareString(a.Location(), b.Location())
	case SortPrice:
		return a.Price().Cmp(b.Price())
	case SortSpaces:
		return a.Spaces() - b.Spaces()
	case SortRating:
		switch {
		case a.Rating() < b.Rating():
			return -1
		case a.Rating() > b.Rating():
			return 1
		}
		return 0
	}
	return 0
}

// CartCount returns the number of entries in the cart
func CartCount(c *cart.Cart) int {
	return c.Len()
}

// CartTotal returns the exact sum of entry prices; an empty cart totals zero
func CartTotal(c *cart.Cart) decimal.Decimal {
	total := decimal.Zero
	for _, entry := range c.Entries() {
		total = total.Add(entry.Price())
	}
	return total
}

// CanCheckout reports whether an order may be submitted. Empty fields
// soft-pass validation (no error is shown for them) but still block checkout;
// both tests are needed here.
func CanCheckout(c *cart.Cart, name, phone string, nameValid, phoneValid bool) bool {
	return !c.IsEmpty() &&
		strings.TrimSpace(name) != "" &&
		strings.TrimSpace(phone) != "" &&
		nameValid &&
		phoneValid
}
