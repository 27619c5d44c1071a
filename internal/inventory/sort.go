package inventory

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"catalogadmin/internal/domain/models"
)

type SortField string

const (
	SortNone  SortField = "none"
	SortName  SortField = "name"
	SortPrice SortField = "price"
)

func ParseSortField(s string) (SortField, error) {
	switch SortField(strings.ToLower(strings.TrimSpace(s))) {
	case "", SortNone:
		return SortNone, nil
	case SortName:
		return SortName, nil
	case SortPrice:
		return SortPrice, nil
	}
	return SortNone, fmt.Errorf("unknown sort field %q (expected none|name|price)", s)
}

// Next cycles none -> name -> price -> none.
func (f SortField) Next() SortField {
	switch f {
	case SortNone, "":
		return SortName
	case SortName:
		return SortPrice
	default:
		return SortNone
	}
}

type SortDirection string

const (
	Ascending  SortDirection = "asc"
	Descending SortDirection = "desc"
)

func ParseSortDirection(s string) (SortDirection, error) {
	switch SortDirection(strings.ToLower(strings.TrimSpace(s))) {
	case "", Ascending:
		return Ascending, nil
	case Descending:
		return Descending, nil
	}
	return Ascending, fmt.Errorf("unknown sort direction %q (expected asc|desc)", s)
}

func (d SortDirection) Opposite() SortDirection {
	if d == Descending {
		return Ascending
	}
	return Descending
}

func (d SortDirection) Arrow() string {
	if d == Descending {
		return "↓"
	}
	return "↑"
}

// Sorter orders product lists. Titles compare with the locale's collation
// rules. Not safe for concurrent use.
type Sorter struct {
	coll *collate.Collator
}

func NewSorter(locale string) *Sorter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	return &Sorter{coll: collate.New(tag)}
}

// Sort returns a sorted copy. Equal keys keep arrival order in both
// directions; SortNone returns the input order.
func (s *Sorter) Sort(products []models.Product, field SortField, dir SortDirection) []models.Product {
	out := slices.Clone(products)
	if field == SortNone || field == "" {
		return out
	}

	slices.SortStableFunc(out, func(a, b models.Product) int {
		c := s.compare(field, a, b)
		if dir == Descending {
			return -c
		}
		return c
	})
	return out
}

func (s *Sorter) compare(field SortField, a, b models.Product) int {
	switch field {
	case SortName:
		return s.coll.CompareString(a.Title, b.Title)
	case SortPrice:
		return cmp.Compare(a.Price, b.Price)
	}
	return 0
}
