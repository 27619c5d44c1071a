package usecases

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"unicode"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"catalogadmin/internal/apis/catalog"
)

var ErrNoCategories = errors.New("no categories found")

// CategoryCard is one tile of the catalogue overview.
type CategoryCard struct {
	Slug        string `json:"slug"`
	DisplayName string `json:"display_name"`
	Thumbnail   string `json:"thumbnail,omitempty"`
}

type CatalogueService struct {
	catalog catalog.Service
	log     *slog.Logger
	workers int
}

func NewCatalogueService(svc catalog.Service, logger *slog.Logger, workers int) *CatalogueService {
	if logger == nil {
		logger = slog.Default()
	}
	if workers <= 0 {
		workers = 4
	}
	return &CatalogueService{catalog: svc, log: logger, workers: workers}
}

// Overview lists every category with a thumbnail taken from its first
// product. A category whose probe fails keeps an empty thumbnail.
func (s *CatalogueService) Overview(ctx context.Context) ([]CategoryCard, error) {
	cats, err := s.catalog.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	if len(cats) == 0 {
		return nil, ErrNoCategories
	}

	cards := make([]CategoryCard, len(cats))
	for i, c := range cats {
		cards[i] = CategoryCard{Slug: c, DisplayName: DisplayName(c)}
	}

	var g errgroup.Group
	g.SetLimit(s.workers)
	for i := range cards {
		g.Go(func() error {
			page, err := s.catalog.ListProductsByCategory(ctx, cards[i].Slug, 1)
			if err != nil {
				s.log.Debug("thumbnail probe failed", "category", cards[i].Slug, "err", err)
				return nil
			}
			if len(page.Products) > 0 {
				cards[i].Thumbnail = page.Products[0].Thumbnail
			}
			return nil
		})
	}
	g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.log.Info("catalogue overview built", "categories", len(cards))
	return cards, nil
}

// DisplayName upper-cases the first letter of a category identifier.
func DisplayName(category string) string {
	r, size := utf8.DecodeRuneInString(category)
	if r == utf8.RuneError {
		return category
	}
	return string(unicode.ToUpper(r)) + category[size:]
}
