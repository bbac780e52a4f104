// internal/handlers/platforms.go
package handlers

import (
	"net/http"

	"inventory-service/internal/schemas"
)

func (h *handler) handleGetPlatformsWebsite(w http.ResponseWriter, r *http.Request) {
	website, err := h.store.GetPlatformsWebsite(r.Context(), userID(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.respond(w, r, http.StatusOK, schemas.PlatformsWebsiteResponse, "platformsWebsite", website)
}

func (h *handler) handleUpdatePlatformsWebsite(w http.ResponseWriter, r *http.Request) {
	raw, err := h.readBody(w, r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	req, err := h.validators.PlatformsWebsite.Validate(raw)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	website, err := h.store.UpdatePlatformsWebsite(r.Context(), userID(r), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.respond(w, r, http.StatusOK, schemas.PlatformsWebsiteResponse, "platformsWebsite", website)
}

func (h *handler) handleGetPlatformsCallcenter(w http.ResponseWriter, r *http.Request) {
	callcenter, err := h.store.GetPlatformsCallcenter(r.Context(), userID(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.respond(w, r, http.StatusOK, schemas.PlatformsCallcenterResponse, "platformsCallcenter", callcenter)
}

func (h *handler) handleUpdatePlatformsCallcenter(w http.ResponseWriter, r *http.Request) {
	raw, err := h.readBody(w, r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	req, err := h.validators.PlatformsCallcenter.Validate(raw)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	callcenter, err := h.store.UpdatePlatformsCallcenter(r.Context(), userID(r), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.respond(w, r, http.StatusOK, schemas.PlatformsCallcenterResponse, "platformsCallcenter", callcenter)
}

func (h *handler) handleGetPlatformsEmailcenter(w http.ResponseWriter, r *http.Request) {
	emailcenter, err := h.store.GetPlatformsEmailcenter(r.Context(), userID(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.respond(w, r, http.StatusOK, schemas.PlatformsEmailcenterResponse, "platformsEmailcenter", emailcenter)
}

func (h *handler) handleUpdatePlatformsEmailcenter(w http.ResponseWriter, r *http.Request) {
	raw, err := h.readBody(w, r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	req, err := h.validators.PlatformsEmailcenter.Validate(raw)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	emailcenter, err := h.store.UpdatePlatformsEmailcenter(r.Context(), userID(r), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.respond(w, r, http.StatusOK, schemas.PlatformsEmailcenterResponse, "platformsEmailcenter", emailcenter)
}
