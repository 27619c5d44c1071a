package categories

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"catalogadmin/internal/apis/catalog/usecases"
	"catalogadmin/internal/http-server/respond"
	"catalogadmin/internal/repository"
)

type Lister interface {
	ListCategories(ctx context.Context) ([]string, error)
}

type Overviewer interface {
	Overview(ctx context.Context) ([]usecases.CategoryCard, error)
}

type Options struct {
	Log       *slog.Logger
	Lister    Lister
	Catalogue Overviewer
	Timeout   time.Duration
}

func (o *Options) defaults() {
	if o.Log == nil {
		o.Log = slog.Default()
	}
	if o.Timeout <= 0 {
		o.Timeout = 30 * time.Second
	}
}

func NewListHandler(opts Options) http.HandlerFunc {
	opts.defaults()
	log := opts.Log

	return func(w http.ResponseWriter, r *http.Request) {
		if opts.Lister == nil {
			log.Error("categories handler misconfigured: lister is nil")
			respond.WriteInternalError(w)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), opts.Timeout)
		defer cancel()

		cats, err := opts.Lister.ListCategories(ctx)
		if err != nil {
			respond.WriteCatalogError(w, log, "ListCategories", err)
			return
		}
		if cats == nil {
			cats = []string{}
		}

		respond.WriteJSON(w, http.StatusOK, map[string]any{
			"fetched_at": repository.Now(),
			"count":      len(cats),
			"categories": cats,
		})
	}
}

func NewCatalogueHandler(opts Options) http.HandlerFunc {
	opts.defaults()
	log := opts.Log

	return func(w http.ResponseWriter, r *http.Request) {
		if opts.Catalogue == nil {
			log.Error("catalogue handler misconfigured: overview is nil")
			respond.WriteInternalError(w)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), opts.Timeout)
		defer cancel()

		cards, err := opts.Catalogue.Overview(ctx)
		if err != nil {
			if errors.Is(err, usecases.ErrNoCategories) {
				respond.WriteError(w, http.StatusNotFound, "not_found", err.Error())
				return
			}
			respond.WriteCatalogError(w, log, "Overview", err)
			return
		}

		respond.WriteJSON(w, http.StatusOK, repository.NewCatalogueResult(cards))
	}
}
