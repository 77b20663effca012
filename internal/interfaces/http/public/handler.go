package public

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tastetrail/tastetrail-services/api/internal/catalog/application"
)

// Handler wires public HTTP endpoints to application services.
type Handler struct {
	logger    *log.Logger
	stores    application.StoreService
	discovery application.DiscoveryService
	reviews   application.ReviewService
	hearts    application.HeartService
}

// Config defines dependencies required by Handler.
type Config struct {
	Logger    *log.Logger
	Stores    application.StoreService
	Discovery application.DiscoveryService
	Reviews   application.ReviewService
	Hearts    application.HeartService
}

// NewHandler constructs a public HTTP handler set.
func NewHandler(cfg Config) *Handler {
	return &Handler{
		logger:    cfg.Logger,
		stores:    cfg.Stores,
		discovery: cfg.Discovery,
		reviews:   cfg.Reviews,
		hearts:    cfg.Hearts,
	}
}

// Register mounts all public routes onto the router. Static segments are
// registered alongside /stores/{slug}; chi resolves them ahead of the
// parameter route.
func (h *Handler) Register(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Get("/stores", h.storeListHandler())
	r.Get("/stores/top", h.topStoresHandler())
	r.Get("/stores/near", h.nearStoresHandler())
	r.Get("/stores/search", h.searchStoresHandler())
	r.Get("/stores/{slug}", h.storeDetailHandler())
	r.Get("/tags", h.tagListHandler())
	r.Get("/tags/{tag}", h.storesByTagHandler())

	r.With(authMiddleware).Post("/stores", h.storeCreateHandler())
	r.With(authMiddleware).Patch("/stores/{id}", h.storeUpdateHandler())
	r.With(authMiddleware).Post("/stores/{id}/reviews", h.reviewCreateHandler())
	r.With(authMiddleware).Post("/stores/{id}/heart", h.heartToggleHandler())
	r.With(authMiddleware).Get("/hearts", h.heartedStoresHandler())
}
