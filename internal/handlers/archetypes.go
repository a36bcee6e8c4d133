package handlers

import (
	"net/http"

	"github.com/latoulicious/setforge/pkg/catalog/shared"
)

type archetypeWritten struct {
	*shared.Archetype
	Message string `json:"message"`
}

// GET /api/sets/{setID}/archetypes
func (h *Handler) ListArchetypes(w http.ResponseWriter, r *http.Request) {
	setID, err := idParam(r, "setID")
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	archetypes, err := h.catalog.ListArchetypes(r.Context(), setID)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	ok(w, archetypes)
}

// POST /api/sets/{setID}/archetypes
func (h *Handler) CreateArchetype(w http.ResponseWriter, r *http.Request) {
	setID, err := idParam(r, "setID")
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	var input shared.ArchetypeInput
	if err := decode(w, r, &input); err != nil {
		badRequest(w, err.Error())
		return
	}

	archetype, err := h.catalog.CreateArchetype(r.Context(), setID, input)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	created(w, archetypeWritten{Archetype: archetype, Message: "Archetype created successfully"})
}

// GET /api/archetypes/{archetypeID}
func (h *Handler) GetArchetype(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "archetypeID")
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	archetype, err := h.catalog.GetArchetype(r.Context(), id)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	ok(w, archetype)
}

// PUT /api/archetypes/{archetypeID}
func (h *Handler) UpdateArchetype(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "archetypeID")
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	var patch shared.ArchetypePatch
	if err := decode(w, r, &patch); err != nil {
		badRequest(w, err.Error())
		return
	}

	archetype, err := h.catalog.UpdateArchetype(r.Context(), id, patch)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	ok(w, archetypeWritten{Archetype: archetype, Message: "Archetype updated successfully"})
}

// DeleteArchetype removes an archetype; its cards stay and lose the tag.
// DELETE /api/archetypes/{archetypeID}
func (h *Handler) DeleteArchetype(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "archetypeID")
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	if err := h.catalog.DeleteArchetype(r.Context(), id); err != nil {
		h.serviceError(w, r, err)
		return
	}
	message(w, "Archetype deleted successfully")
}
