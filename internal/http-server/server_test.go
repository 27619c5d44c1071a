package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalogadmin/internal/apis/catalog"
	"catalogadmin/internal/apis/catalog/usecases"
	"catalogadmin/internal/domain/models"
	"catalogadmin/internal/http-server/middleware"
)

type fakeCatalog struct {
	err        error
	gotSkip    int
	gotLimit   int
	gotCat     string
	gotQuery   string
	categories []string
}

func (f *fakeCatalog) ListCategories(ctx context.Context) ([]string, error) {
	return f.categories, f.err
}

func (f *fakeCatalog) ListAllProducts(ctx context.Context, skip, limit int) (models.ProductsPage, error) {
	f.gotSkip, f.gotLimit = skip, limit
	if f.err != nil {
		return models.ProductsPage{}, f.err
	}
	ps := make([]models.Product, limit)
	for i := range ps {
		ps[i] = models.Product{ID: skip + i + 1}
	}
	return models.ProductsPage{Products: ps, Total: 194, Skip: skip, Limit: limit}, nil
}

func (f *fakeCatalog) ListProductsByCategory(ctx context.Context, category string, limit int) (models.ProductsPage, error) {
	f.gotCat, f.gotLimit = category, limit
	return models.ProductsPage{Products: []models.Product{{ID: 1, Category: category}}}, f.err
}

func (f *fakeCatalog) SearchProducts(ctx context.Context, q string, limit int) (models.ProductsPage, error) {
	f.gotQuery, f.gotLimit = q, limit
	return models.ProductsPage{Products: []models.Product{{ID: 9}}}, f.err
}

type fakeOverview struct {
	cards []usecases.CategoryCard
	err   error
}

func (f fakeOverview) Overview(ctx context.Context) ([]usecases.CategoryCard, error) {
	return f.cards, f.err
}

type fakeDetails struct {
	err error
}

func (f fakeDetails) Details(ctx context.Context, id int) (usecases.ProductDetails, error) {
	if f.err != nil {
		return usecases.ProductDetails{}, f.err
	}
	return usecases.ProductDetails{Product: models.Product{ID: id}, StockStatus: "In Stock"}, nil
}

func newTestServer(cat *fakeCatalog, ov fakeOverview, det fakeDetails) http.Handler {
	s := New(nil)
	s.RegisterRoutes(Deps{
		Categories: cat,
		Catalogue:  ov,
		Products:   cat,
		Details:    det,
	})
	return s.Handler()
}

func do(t *testing.T, h http.Handler, target string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return rec, body
}

func errorCode(body map[string]any) string {
	e, _ := body["error"].(map[string]any)
	code, _ := e["code"].(string)
	return code
}

func TestProducts_DefaultsAndHasMore(t *testing.T) {
	cat := &fakeCatalog{}
	h := newTestServer(cat, fakeOverview{}, fakeDetails{})

	rec, body := do(t, h, "/products")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, cat.gotSkip)
	assert.Equal(t, 20, cat.gotLimit)
	assert.Equal(t, true, body["has_more"])
	assert.EqualValues(t, 20, body["count"])
	assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))

	rec, _ = do(t, h, "/products?skip=40&limit=10")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 40, cat.gotSkip)
	assert.Equal(t, 10, cat.gotLimit)
}

func TestProducts_BadQuery(t *testing.T) {
	h := newTestServer(&fakeCatalog{}, fakeOverview{}, fakeDetails{})

	for _, target := range []string{
		"/products?skip=-1",
		"/products?limit=0",
		"/products?limit=abc",
		"/products/search",
		"/products/search?q=%20%20",
		"/products/abc",
		"/products/0",
	} {
		rec, body := do(t, h, target)
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
		assert.Equal(t, "bad_request", errorCode(body), target)
	}
}

func TestProducts_CategoryDecodesPath(t *testing.T) {
	cat := &fakeCatalog{}
	h := newTestServer(cat, fakeOverview{}, fakeDetails{})

	rec, body := do(t, h, "/products/category/home%20decoration%2Fwall")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "home decoration/wall", cat.gotCat)
	assert.Equal(t, 100, cat.gotLimit)
	assert.Equal(t, false, body["has_more"])

	_, _ = do(t, h, "/products/category/beauty?limit=5")
	assert.Equal(t, "beauty", cat.gotCat)
	assert.Equal(t, 5, cat.gotLimit)
}

func TestProducts_Search(t *testing.T) {
	cat := &fakeCatalog{}
	h := newTestServer(cat, fakeOverview{}, fakeDetails{})

	rec, _ := do(t, h, "/products/search?q=red+%26+blue")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "red & blue", cat.gotQuery)
	assert.Equal(t, 100, cat.gotLimit)
}

func TestProducts_DetailAndNotFound(t *testing.T) {
	h := newTestServer(&fakeCatalog{}, fakeOverview{}, fakeDetails{})
	rec, body := do(t, h, "/products/7")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, body, "details")

	nf := fmtErr(&catalog.NotFoundError{Resource: "product", ID: "7"})
	h = newTestServer(&fakeCatalog{}, fakeOverview{}, fakeDetails{err: nf})
	rec, body = do(t, h, "/products/7")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", errorCode(body))
	assert.Equal(t, "Product not found", body["error"].(map[string]any)["message"])
}

func fmtErr(err error) error {
	return errors.Join(errors.New("get product 7"), err)
}

func TestErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"timeout", &catalog.UpstreamError{Op: "x", Timeout: true}, http.StatusGatewayTimeout, "upstream_timeout"},
		{"upstream", &catalog.UpstreamError{Op: "x", Status: 503}, http.StatusBadGateway, "upstream_error"},
		{"malformed", &catalog.MalformedResponseError{Op: "x", Reason: "missing products array"}, http.StatusBadGateway, "upstream_error"},
		{"other", errors.New("boom"), http.StatusInternalServerError, "internal_error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := newTestServer(&fakeCatalog{err: tc.err}, fakeOverview{}, fakeDetails{})
			rec, body := do(t, h, "/products")
			assert.Equal(t, tc.status, rec.Code)
			assert.Equal(t, tc.code, errorCode(body))
		})
	}
}

func TestCategoriesAndCatalogue(t *testing.T) {
	cat := &fakeCatalog{categories: []string{"beauty", "tops"}}
	ov := fakeOverview{cards: []usecases.CategoryCard{{Slug: "beauty", DisplayName: "Beauty", Thumbnail: "b.png"}}}
	h := newTestServer(cat, ov, fakeDetails{})

	rec, body := do(t, h, "/categories")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []any{"beauty", "tops"}, body["categories"])

	rec, body = do(t, h, "/catalogue")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 1, body["count"])

	h = newTestServer(cat, fakeOverview{err: usecases.ErrNoCategories}, fakeDetails{})
	rec, _ = do(t, h, "/catalogue")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUnknownRouteAndMethod(t *testing.T) {
	h := newTestServer(&fakeCatalog{}, fakeOverview{}, fakeDetails{})

	rec, body := do(t, h, "/nope")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", errorCode(body))

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/products", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestRequestIDIsPropagated(t *testing.T) {
	h := newTestServer(&fakeCatalog{}, fakeOverview{}, fakeDetails{})

	req := httptest.NewRequest(http.MethodGet, "/categories", nil)
	req.Header.Set(middleware.RequestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get(middleware.RequestIDHeader))
}
