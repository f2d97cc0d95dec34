package handlers

import (
	"ItemsAPI/internal/config"
	"ItemsAPI/internal/middleware"
	"ItemsAPI/internal/service"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

type Handler struct {
	Router chi.Router
}

// NewHandler разводящий для хендлеров
func NewHandler(
	itemService *service.ItemService,
	logger *zap.SugaredLogger,
	config *config.Config,
) *Handler {
	r := chi.NewRouter()

	r.Use(middleware.WithRequestID)
	r.Use(middleware.WithLogging)
	r.Use(chimw.Recoverer)
	r.Use(middleware.WithGzip)
	r.Use(middleware.NewRateLimiter(config.RateLimitPerMin).Handler)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeDetail(w, http.StatusNotFound, detailNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeDetail(w, http.StatusMethodNotAllowed, detailMethodNotAllowed)
	})

	// Handlers
	rootHandler := NewRootHandler(itemService, logger)
	itemHandler := NewItemHandler(itemService, logger)

	r.Get("/", rootHandler.Welcome)
	r.Get("/healthz", rootHandler.Health)

	// /items и /items/ обслуживаются одинаково
	r.Route("/items", func(r chi.Router) {
		r.Post("/", itemHandler.Create)
		r.Get("/", itemHandler.List)
		r.Get("/{item_id}", itemHandler.Get)
		r.Put("/{item_id}", itemHandler.Update)
		r.Delete("/{item_id}", itemHandler.Delete)
	})

	return &Handler{Router: r}
}
