package inventory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalogadmin/internal/domain/models"
)

func TestCollect_FollowsPagesAndSorts(t *testing.T) {
	cat := pagedCatalog(50)
	c := newController(t, cat, &manualScheduler{})

	s, err := Collect(c, Query{SortField: SortPrice, SortDirection: Descending}, 10)
	require.NoError(t, err)

	assert.Len(t, s.Products, 50)
	assert.Equal(t, 50, s.Products[0].ID)
	assert.False(t, s.HasMore)
	assert.Equal(t, []string{
		"all skip=0 limit=20",
		"all skip=20 limit=20",
		"all skip=40 limit=20",
	}, cat.Calls())
}

func TestCollect_PagesLimitsRounds(t *testing.T) {
	cat := pagedCatalog(500)
	c := newController(t, cat, &manualScheduler{})

	s, err := Collect(c, Query{}, 2)
	require.NoError(t, err)
	assert.Len(t, s.Products, 40)
	assert.True(t, s.HasMore)
}

func TestCollect_SearchAndFailure(t *testing.T) {
	cat := pagedCatalog(20)
	cat.search = func(ctx context.Context, q string, limit int) (models.ProductsPage, error) {
		return page(makeProducts(q, 1, 3), limit), nil
	}
	c := newController(t, cat, &manualScheduler{})

	s, err := Collect(c, Query{Search: "phone"}, 1)
	require.NoError(t, err)
	assert.Len(t, s.Products, 3)
	assert.Equal(t, "phone", s.Search)

	failing := &fakeCatalog{
		byCategory: func(ctx context.Context, category string, limit int) (models.ProductsPage, error) {
			return models.ProductsPage{}, errors.New("down")
		},
	}
	c2 := newController(t, failing, &manualScheduler{})
	_, err = Collect(c2, Query{Category: "beauty"}, 1)
	assert.EqualError(t, err, "down")
}
