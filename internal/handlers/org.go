// internal/handlers/org.go
package handlers

import (
	"net/http"

	"inventory-service/internal/schemas"
)

// handleCreateOrg is the HTTP handler for the POST /org route.
func (h *handler) handleCreateOrg(w http.ResponseWriter, r *http.Request) {
	raw, err := h.readBody(w, r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	req, err := h.validators.OrgCreation.Validate(raw)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	org, err := h.store.CreateOrg(r.Context(), userID(r), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.respond(w, r, http.StatusCreated, schemas.OrgResponse, "org", org)
}

// handleGetOrg is the HTTP handler for the GET /org route.
func (h *handler) handleGetOrg(w http.ResponseWriter, r *http.Request) {
	org, err := h.store.GetOrg(r.Context(), userID(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.respond(w, r, http.StatusOK, schemas.OrgResponse, "org", org)
}

// handleGetRestaurant is the HTTP handler for the GET /org/restaurant route.
func (h *handler) handleGetRestaurant(w http.ResponseWriter, r *http.Request) {
	restaurant, err := h.store.GetRestaurant(r.Context(), userID(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.respond(w, r, http.StatusOK, schemas.RestaurantResponse, "restaurant", restaurant)
}

// handleUpdateRestaurant is the HTTP handler for the PUT /org/restaurant route.
func (h *handler) handleUpdateRestaurant(w http.ResponseWriter, r *http.Request) {
	raw, err := h.readBody(w, r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	req, err := h.validators.RestaurantUpdate.Validate(raw)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	restaurant, err := h.store.UpdateRestaurant(r.Context(), userID(r), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.respond(w, r, http.StatusOK, schemas.RestaurantResponse, "restaurant", restaurant)
}
