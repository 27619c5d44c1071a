package products

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"catalogadmin/internal/apis/catalog"
	"catalogadmin/internal/apis/catalog/usecases"
	"catalogadmin/internal/domain/models"
	"catalogadmin/internal/http-server/query"
	"catalogadmin/internal/http-server/respond"
	"catalogadmin/internal/repository"
)

type Lister interface {
	ListAllProducts(ctx context.Context, skip, limit int) (models.ProductsPage, error)
	ListProductsByCategory(ctx context.Context, category string, limit int) (models.ProductsPage, error)
	SearchProducts(ctx context.Context, query string, limit int) (models.ProductsPage, error)
}

type DetailsGetter interface {
	Details(ctx context.Context, id int) (usecases.ProductDetails, error)
}

type Options struct {
	Log     *slog.Logger
	Lister  Lister
	Details DetailsGetter
	Timeout time.Duration

	PageSize      int
	CategoryLimit int
	SearchLimit   int
}

type Handlers struct {
	opts Options
	log  *slog.Logger
}

func New(opts Options) *Handlers {
	if opts.Log == nil {
		opts.Log = slog.Default()
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.PageSize <= 0 {
		opts.PageSize = 20
	}
	if opts.CategoryLimit <= 0 {
		opts.CategoryLimit = 100
	}
	if opts.SearchLimit <= 0 {
		opts.SearchLimit = 100
	}
	return &Handlers{opts: opts, log: opts.Log}
}

// List serves GET /products?skip=&limit=.
func (h *Handlers) List(w http.ResponseWriter, r *http.Request) {
	skip, err := query.IntMin(r, "skip", 0, 0)
	if err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}
	limit, err := query.IntMin(r, "limit", h.opts.PageSize, 1)
	if err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.opts.Timeout)
	defer cancel()

	page, err := h.opts.Lister.ListAllProducts(ctx, skip, limit)
	if err != nil {
		respond.WriteCatalogError(w, h.log, "ListAllProducts", err)
		return
	}

	meta := repository.ListingMeta{Category: "all", Skip: skip, Limit: limit}
	respond.WriteJSON(w, http.StatusOK,
		repository.NewListingResult(meta, page.Products, page.Total, len(page.Products) >= limit))
}

// ByCategory serves GET /products/category/{category}?limit=.
func (h *Handlers) ByCategory(w http.ResponseWriter, r *http.Request) {
	category, err := pathParam(r, "category")
	if err != nil || category == "" {
		respond.WriteBadRequest(w, "category is required")
		return
	}
	limit, err := query.IntMin(r, "limit", h.opts.CategoryLimit, 1)
	if err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.opts.Timeout)
	defer cancel()

	page, err := h.opts.Lister.ListProductsByCategory(ctx, category, limit)
	if err != nil {
		respond.WriteCatalogError(w, h.log, "ListProductsByCategory", err)
		return
	}

	meta := repository.ListingMeta{Category: category, Limit: limit}
	respond.WriteJSON(w, http.StatusOK, repository.NewListingResult(meta, page.Products, page.Total, false))
}

// Search serves GET /products/search?q=&limit=.
func (h *Handlers) Search(w http.ResponseWriter, r *http.Request) {
	q := query.String(r, "q")
	if q == "" {
		respond.WriteBadRequest(w, "q is required")
		return
	}
	limit, err := query.IntMin(r, "limit", h.opts.SearchLimit, 1)
	if err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.opts.Timeout)
	defer cancel()

	page, err := h.opts.Lister.SearchProducts(ctx, q, limit)
	if err != nil {
		respond.WriteCatalogError(w, h.log, "SearchProducts", err)
		return
	}

	meta := repository.ListingMeta{Search: q, Limit: limit}
	respond.WriteJSON(w, http.StatusOK, repository.NewListingResult(meta, page.Products, page.Total, false))
}

// Get serves GET /products/{id}.
func (h *Handlers) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		respond.WriteBadRequest(w, "id must be a positive integer")
		return
	}
	if h.opts.Details == nil {
		h.log.Error("products handler misconfigured: details is nil")
		respond.WriteInternalError(w)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.opts.Timeout)
	defer cancel()

	d, err := h.opts.Details.Details(ctx, id)
	if err != nil {
		var nf *catalog.NotFoundError
		if errors.As(err, &nf) {
			respond.WriteError(w, http.StatusNotFound, "not_found", "Product not found")
			return
		}
		respond.WriteCatalogError(w, h.log, "GetProductByID", err)
		return
	}

	respond.WriteJSON(w, http.StatusOK, map[string]any{
		"fetched_at": repository.Now(),
		"details":    d,
	})
}

// pathParam decodes a route parameter. chi matches on RawPath when the
// request carried escapes such as %2F, so the value may still be encoded.
func pathParam(r *http.Request, key string) (string, error) {
	v := chi.URLParam(r, key)
	if r.URL.RawPath != "" {
		dec, err := url.PathUnescape(v)
		if err != nil {
			return "", err
		}
		v = dec
	}
	return strings.TrimSpace(v), nil
}
