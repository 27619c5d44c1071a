package catalog

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"catalogadmin/internal/apis/catalog/endpoints"
	"catalogadmin/internal/client"
	"catalogadmin/internal/domain/models"
)

const DefaultBaseURL = "https://dummyjson.com"

type Product = models.Product
type ProductsPage = models.ProductsPage

type UpstreamError = endpoints.UpstreamError
type NotFoundError = endpoints.NotFoundError
type MalformedResponseError = endpoints.MalformedResponseError

// Service is the read-only product catalog.
type Service interface {
	ListCategories(ctx context.Context) ([]string, error)
	ListAllProducts(ctx context.Context, skip, limit int) (ProductsPage, error)
	ListProductsByCategory(ctx context.Context, category string, limit int) (ProductsPage, error)
	GetProductByID(ctx context.Context, id int) (Product, error)
	SearchProducts(ctx context.Context, query string, limit int) (ProductsPage, error)
}

type service struct {
	api *endpoints.Client
	log *slog.Logger
}

func New(transport client.Transport, baseURL string, logger *slog.Logger) Service {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := &service{log: logger}
	s.api = endpoints.New(transport, baseURL, s.applyDefaultHeaders)
	return s
}

func (s *service) applyDefaultHeaders(req *http.Request) {
	req.Header.Set("User-Agent", "catalogadmin/1.0")
	req.Header.Set("Accept", "application/json")
}

func (s *service) ListCategories(ctx context.Context) ([]string, error) {
	start := time.Now()
	out, err := s.api.ListCategories(ctx)
	s.logCall("ListCategories", start, err, "count", len(out))
	return out, err
}

func (s *service) ListAllProducts(ctx context.Context, skip, limit int) (ProductsPage, error) {
	start := time.Now()
	page, err := s.api.ListProducts(ctx, skip, limit)
	s.logCall("ListAllProducts", start, err, "skip", skip, "limit", limit, "count", len(page.Products))
	return page, err
}

func (s *service) ListProductsByCategory(ctx context.Context, category string, limit int) (ProductsPage, error) {
	start := time.Now()
	page, err := s.api.ListProductsByCategory(ctx, category, limit)
	s.logCall("ListProductsByCategory", start, err, "category", category, "limit", limit, "count", len(page.Products))
	return page, err
}

func (s *service) GetProductByID(ctx context.Context, id int) (Product, error) {
	start := time.Now()
	p, err := s.api.GetProduct(ctx, id)
	s.logCall("GetProductByID", start, err, "id", id)
	return p, err
}

func (s *service) SearchProducts(ctx context.Context, query string, limit int) (ProductsPage, error) {
	start := time.Now()
	page, err := s.api.SearchProducts(ctx, query, limit)
	s.logCall("SearchProducts", start, err, "query", query, "limit", limit, "count", len(page.Products))
	return page, err
}

func (s *service) logCall(op string, start time.Time, err error, attrs ...any) {
	attrs = append(attrs, "op", op, "duration_ms", time.Since(start).Milliseconds())
	if err != nil {
		s.log.Warn("catalog call failed", append(attrs, "err", err)...)
		return
	}
	s.log.Debug("catalog call", attrs...)
}
