// internal/handlers/router.go
package handlers

import (
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"inventory-service/internal/common/auth"
	apperrors "inventory-service/internal/common/errors"
	"inventory-service/internal/common/logger"
	"inventory-service/internal/common/observability"
	"inventory-service/internal/schemas"
	"inventory-service/internal/store"
	"inventory-service/internal/validation"
)

// Dependencies is everything the HTTP layer is built from.
type Dependencies struct {
	Store         store.Store
	Registry      *schemas.Registry
	Validators    *validation.Validators
	Resolver      auth.Resolver
	Logger        logger.Logger
	Observability *observability.Observability
	Clients       []string
	MaxBodyBytes  int64
}

type handler struct {
	store        store.Store
	registry     *schemas.Registry
	validators   *validation.Validators
	log          logger.Logger
	obs          *observability.Observability
	errors       *apperrors.ErrorHandler
	maxBodyBytes int64
}

// NewRouter builds the inventory API.
func NewRouter(deps Dependencies) http.Handler {
	obs := deps.Observability
	if obs == nil {
		obs = &observability.Observability{}
	}

	h := &handler{
		store:        deps.Store,
		registry:     deps.Registry,
		validators:   deps.Validators,
		log:          deps.Logger,
		obs:          obs,
		errors:       apperrors.NewErrorHandler(deps.Logger),
		maxBodyBytes: deps.MaxBodyBytes,
	}

	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(requestLogger(deps.Logger, obs))
	r.Use(middleware.Recoverer)
	r.Use(cors(deps.Clients))

	r.Get("/status", h.handleStatus)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/org", func(r chi.Router) {
		r.Use(auth.Middleware(deps.Resolver, h.fail))

		r.Post("/", h.handleCreateOrg)
		r.Get("/", h.handleGetOrg)

		r.Get("/restaurant", h.handleGetRestaurant)
		r.Put("/restaurant", h.handleUpdateRestaurant)

		r.Route("/menu/sections", func(r chi.Router) {
			r.Post("/", h.handleCreateMenuSection)
			r.Get("/", h.handleGetMenuSections)
			r.Get("/{sectionID}", h.handleGetMenuSection)
			r.Put("/{sectionID}", h.handleUpdateMenuSection)
			r.Delete("/{sectionID}", h.handleDeleteMenuSection)
		})

		r.Route("/menu/items", func(r chi.Router) {
			r.Post("/", h.handleCreateMenuItem)
			r.Get("/", h.handleGetMenuItems)
			r.Get("/{itemID}", h.handleGetMenuItem)
			r.Put("/{itemID}", h.handleUpdateMenuItem)
			r.Delete("/{itemID}", h.handleDeleteMenuItem)
		})

		r.Route("/platforms", func(r chi.Router) {
			r.Get("/website", h.handleGetPlatformsWebsite)
			r.Put("/website", h.handleUpdatePlatformsWebsite)
			r.Get("/callcenter", h.handleGetPlatformsCallcenter)
			r.Put("/callcenter", h.handleUpdatePlatformsCallcenter)
			r.Get("/emailcenter", h.handleGetPlatformsEmailcenter)
			r.Put("/emailcenter", h.handleUpdatePlatformsEmailcenter)
		})
	})

	return r
}

func (h *handler) handleStatus(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
