package repository

import (
	"time"

	"catalogadmin/internal/apis/catalog/usecases"
	"catalogadmin/internal/domain/models"
)

type ListingMeta struct {
	Category      string `json:"category,omitempty"`
	Search        string `json:"search,omitempty"`
	SortField     string `json:"sort_field,omitempty"`
	SortDirection string `json:"sort_direction,omitempty"`
	Skip          int    `json:"skip"`
	Limit         int    `json:"limit,omitempty"`
}

// ListingResult is one product listing as served by the facade or written by
// an export.
type ListingResult struct {
	FetchedAt string           `json:"fetched_at"`
	Listing   ListingMeta      `json:"listing"`
	Products  []models.Product `json:"products"`
	Count     int              `json:"count"`
	Total     int              `json:"total,omitempty"`
	HasMore   bool             `json:"has_more"`
}

type CatalogueResult struct {
	FetchedAt  string                  `json:"fetched_at"`
	Categories []usecases.CategoryCard `json:"categories"`
	Count      int                     `json:"count"`
}

func NewListingResult(meta ListingMeta, products []models.Product, total int, hasMore bool) ListingResult {
	if products == nil {
		products = []models.Product{}
	}
	return ListingResult{
		FetchedAt: Now(),
		Listing:   meta,
		Products:  products,
		Count:     len(products),
		Total:     total,
		HasMore:   hasMore,
	}
}

func NewCatalogueResult(cards []usecases.CategoryCard) CatalogueResult {
	if cards == nil {
		cards = []usecases.CategoryCard{}
	}
	return CatalogueResult{FetchedAt: Now(), Categories: cards, Count: len(cards)}
}

func Now() string {
	return time.Now().UTC().Format(time.RFC3339)
}
