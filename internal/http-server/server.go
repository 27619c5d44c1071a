package httpserver

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"catalogadmin/internal/http-server/handlers/categories"
	"catalogadmin/internal/http-server/handlers/products"
	"catalogadmin/internal/http-server/middleware"
	"catalogadmin/internal/http-server/respond"
)

type Server struct {
	log    *slog.Logger
	router chi.Router
}

func New(log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}

	r := chi.NewRouter()
	r.Use(middleware.AccessLog(log))
	r.Use(middleware.RecoverPanic(log))
	r.Use(middleware.WithRequestID)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respond.WriteError(w, http.StatusNotFound, "not_found", "no such route")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respond.WriteError(w, http.StatusMethodNotAllowed, "method_not_allowed", "GET only")
	})

	return &Server{log: log, router: r}
}

func (s *Server) Handler() http.Handler {
	return s.router
}

type Deps struct {
	Categories categories.Lister
	Catalogue  categories.Overviewer
	Products   products.Lister
	Details    products.DetailsGetter
	Timeout    time.Duration

	PageSize      int
	CategoryLimit int
	SearchLimit   int
}

func (s *Server) RegisterRoutes(dep Deps) {
	catOpts := categories.Options{
		Log:       s.log,
		Lister:    dep.Categories,
		Catalogue: dep.Catalogue,
		Timeout:   dep.Timeout,
	}
	s.router.Get("/categories", categories.NewListHandler(catOpts))
	s.router.Get("/catalogue", categories.NewCatalogueHandler(catOpts))

	ph := products.New(products.Options{
		Log:           s.log,
		Lister:        dep.Products,
		Details:       dep.Details,
		Timeout:       dep.Timeout,
		PageSize:      dep.PageSize,
		CategoryLimit: dep.CategoryLimit,
		SearchLimit:   dep.SearchLimit,
	})
	s.router.Route("/products", func(r chi.Router) {
		r.Get("/", ph.List)
		r.Get("/search", ph.Search)
		r.Get("/category/{category}", ph.ByCategory)
		r.Get("/{id}", ph.Get)
	})
}
