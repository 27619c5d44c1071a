package usecases

import (
	"context"
	"fmt"
	"log/slog"

	"catalogadmin/internal/apis/catalog"
	"catalogadmin/internal/domain/models"
)

const (
	DefaultRelatedLimit = 6
	DefaultRelatedCount = 5
)

type ProductDetails struct {
	Product     models.Product   `json:"product"`
	StockStatus string           `json:"stock_status"`
	Related     []models.Product `json:"related"`
}

type ProductDetailsService struct {
	catalog      catalog.Service
	log          *slog.Logger
	relatedLimit int
	relatedCount int
}

func NewProductDetailsService(svc catalog.Service, logger *slog.Logger, relatedLimit, relatedCount int) *ProductDetailsService {
	if logger == nil {
		logger = slog.Default()
	}
	if relatedLimit <= 0 {
		relatedLimit = DefaultRelatedLimit
	}
	if relatedCount <= 0 {
		relatedCount = DefaultRelatedCount
	}
	return &ProductDetailsService{
		catalog:      svc,
		log:          logger,
		relatedLimit: relatedLimit,
		relatedCount: relatedCount,
	}
}

// Details fetches one product plus up to relatedCount other products of its
// category. The related lookup never fails the call.
func (s *ProductDetailsService) Details(ctx context.Context, id int) (ProductDetails, error) {
	p, err := s.catalog.GetProductByID(ctx, id)
	if err != nil {
		return ProductDetails{}, fmt.Errorf("get product %d: %w", id, err)
	}

	out := ProductDetails{Product: p, StockStatus: p.StockStatus(), Related: []models.Product{}}
	if p.Category == "" {
		return out, nil
	}

	page, err := s.catalog.ListProductsByCategory(ctx, p.Category, s.relatedLimit)
	if err != nil {
		s.log.Warn("related products unavailable", "id", id, "category", p.Category, "err", err)
		return out, nil
	}

	for _, r := range page.Products {
		if r.ID == p.ID {
			continue
		}
		out.Related = append(out.Related, r)
		if len(out.Related) == s.relatedCount {
			break
		}
	}
	return out, nil
}
