package inventory

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalogadmin/internal/domain/models"
)

func titles(products []models.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.Title
	}
	return out
}

func TestSort_NameUsesCollation(t *testing.T) {
	t.Parallel()

	in := []models.Product{{ID: 1, Title: "cherry"}, {ID: 2, Title: "Banana"}, {ID: 3, Title: "apple"}}
	got := NewSorter("en").Sort(in, SortName, Ascending)

	assert.Equal(t, []string{"apple", "Banana", "cherry"}, titles(got))
	assert.Equal(t, "cherry", in[0].Title, "input must not be reordered")
}

func TestSort_DescendingReversesDistinctKeys(t *testing.T) {
	t.Parallel()

	in := []models.Product{{ID: 1, Price: 5}, {ID: 2, Price: 1.5}, {ID: 3, Price: 99}, {ID: 4, Price: 12}}
	s := NewSorter("en")

	asc := s.Sort(in, SortPrice, Ascending)
	desc := s.Sort(in, SortPrice, Descending)

	reversed := slices.Clone(asc)
	slices.Reverse(reversed)
	assert.Equal(t, ids(reversed), ids(desc))
	assert.Equal(t, []int{2, 1, 4, 3}, ids(asc))
}

func TestSort_EqualKeysKeepArrivalOrder(t *testing.T) {
	t.Parallel()

	in := []models.Product{{ID: 1, Price: 3}, {ID: 2, Price: 1}, {ID: 3, Price: 3}, {ID: 4, Price: 1}}
	s := NewSorter("en")

	assert.Equal(t, []int{2, 4, 1, 3}, ids(s.Sort(in, SortPrice, Ascending)))
	assert.Equal(t, []int{1, 3, 2, 4}, ids(s.Sort(in, SortPrice, Descending)))
}

func TestSort_Idempotent(t *testing.T) {
	t.Parallel()

	in := []models.Product{{ID: 1, Title: "b"}, {ID: 2, Title: "a"}, {ID: 3, Title: "c"}}
	s := NewSorter("en")

	once := s.Sort(in, SortName, Descending)
	twice := s.Sort(once, SortName, Descending)
	assert.Equal(t, once, twice)
}

func TestSort_NoneKeepsOrder(t *testing.T) {
	t.Parallel()

	in := []models.Product{{ID: 3}, {ID: 1}, {ID: 2}}
	got := NewSorter("en").Sort(in, SortNone, Descending)
	assert.Equal(t, []int{3, 1, 2}, ids(got))
}

func TestSorter_BadLocaleFallsBack(t *testing.T) {
	t.Parallel()

	got := NewSorter("not a locale!!").Sort([]models.Product{{Title: "b"}, {Title: "a"}}, SortName, Ascending)
	assert.Equal(t, []string{"a", "b"}, titles(got))
}

func TestParseSort(t *testing.T) {
	t.Parallel()

	f, err := ParseSortField(" Price ")
	require.NoError(t, err)
	assert.Equal(t, SortPrice, f)

	f, err = ParseSortField("")
	require.NoError(t, err)
	assert.Equal(t, SortNone, f)

	_, err = ParseSortField("rating")
	assert.Error(t, err)

	d, err := ParseSortDirection("DESC")
	require.NoError(t, err)
	assert.Equal(t, Descending, d)

	_, err = ParseSortDirection("up")
	assert.Error(t, err)

	assert.Equal(t, SortName, SortNone.Next())
	assert.Equal(t, SortPrice, SortName.Next())
	assert.Equal(t, SortNone, SortPrice.Next())
}
