// internal/handlers/menu.go
package handlers

import (
	"net/http"

	"inventory-service/internal/schemas"
)

// ==========================
// Sections
// ==========================

// handleCreateMenuSection is the HTTP handler for the POST /org/menu/sections route.
func (h *handler) handleCreateMenuSection(w http.ResponseWriter, r *http.Request) {
	raw, err := h.readBody(w, r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	req, err := h.validators.MenuSectionCreation.Validate(raw)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	section, err := h.store.CreateMenuSection(r.Context(), userID(r), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.respond(w, r, http.StatusCreated, schemas.MenuSectionResponse, "menuSection", section)
}

// handleGetMenuSections is the HTTP handler for the GET /org/menu/sections route.
func (h *handler) handleGetMenuSections(w http.ResponseWriter, r *http.Request) {
	sections, err := h.store.GetMenuSections(r.Context(), userID(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.respond(w, r, http.StatusOK, schemas.MenuSectionsResponse, "menuSections", sections)
}

// handleGetMenuSection is the HTTP handler for the GET /org/menu/sections/{sectionID} route.
func (h *handler) handleGetMenuSection(w http.ResponseWriter, r *http.Request) {
	sectionID, err := h.pathID(r, "sectionID")
	if err != nil {
		h.fail(w, r, err)
		return
	}

	section, err := h.store.GetMenuSection(r.Context(), userID(r), sectionID)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.respond(w, r, http.StatusOK, schemas.MenuSectionResponse, "menuSection", section)
}

// handleUpdateMenuSection is the HTTP handler for the PUT /org/menu/sections/{sectionID} route.
func (h *handler) handleUpdateMenuSection(w http.ResponseWriter, r *http.Request) {
	sectionID, err := h.pathID(r, "sectionID")
	if err != nil {
		h.fail(w, r, err)
		return
	}

	raw, err := h.readBody(w, r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	req, err := h.validators.MenuSectionUpdate.Validate(raw)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	section, err := h.store.UpdateMenuSection(r.Context(), userID(r), sectionID, req)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.respond(w, r, http.StatusOK, schemas.MenuSectionResponse, "menuSection", section)
}

// handleDeleteMenuSection is the HTTP handler for the DELETE /org/menu/sections/{sectionID} route.
func (h *handler) handleDeleteMenuSection(w http.ResponseWriter, r *http.Request) {
	sectionID, err := h.pathID(r, "sectionID")
	if err != nil {
		h.fail(w, r, err)
		return
	}

	if err := h.store.DeleteMenuSection(r.Context(), userID(r), sectionID); err != nil {
		h.fail(w, r, err)
		return
	}

	h.noContent(w)
}

// ==========================
// Items
// ==========================

// handleCreateMenuItem is the HTTP handler for the POST /org/menu/items route.
func (h *handler) handleCreateMenuItem(w http.ResponseWriter, r *http.Request) {
	raw, err := h.readBody(w, r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	req, err := h.validators.MenuItemCreation.Validate(raw)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	item, err := h.store.CreateMenuItem(r.Context(), userID(r), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.respond(w, r, http.StatusCreated, schemas.MenuItemResponse, "menuItem", item)
}

// handleGetMenuItems is the HTTP handler for the GET /org/menu/items route.
func (h *handler) handleGetMenuItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.store.GetMenuItems(r.Context(), userID(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.respond(w, r, http.StatusOK, schemas.MenuItemsResponse, "menuItems", items)
}

// handleGetMenuItem is the HTTP handler for the GET /org/menu/items/{itemID} route.
func (h *handler) handleGetMenuItem(w http.ResponseWriter, r *http.Request) {
	itemID, err := h.pathID(r, "itemID")
	if err != nil {
		h.fail(w, r, err)
		return
	}

	item, err := h.store.GetMenuItem(r.Context(), userID(r), itemID)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.respond(w, r, http.StatusOK, schemas.MenuItemResponse, "menuItem", item)
}

// handleUpdateMenuItem is the HTTP handler for the PUT /org/menu/items/{itemID} route.
func (h *handler) handleUpdateMenuItem(w http.ResponseWriter, r *http.Request) {
	itemID, err := h.pathID(r, "itemID")
	if err != nil {
		h.fail(w, r, err)
		return
	}

	raw, err := h.readBody(w, r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	req, err := h.validators.MenuItemUpdate.Validate(raw)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	item, err := h.store.UpdateMenuItem(r.Context(), userID(r), itemID, req)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.respond(w, r, http.StatusOK, schemas.MenuItemResponse, "menuItem", item)
}

// handleDeleteMenuItem is the HTTP handler for the DELETE /org/menu/items/{itemID} route.
func (h *handler) handleDeleteMenuItem(w http.ResponseWriter, r *http.Request) {
	itemID, err := h.pathID(r, "itemID")
	if err != nil {
		h.fail(w, r, err)
		return
	}

	if err := h.store.DeleteMenuItem(r.Context(), userID(r), itemID); err != nil {
		h.fail(w, r, err)
		return
	}

	h.noContent(w)
}
