package handlers

import (
	"net/http"

	"github.com/latoulicious/setforge/pkg/catalog/shared"
)

type setWritten struct {
	*shared.SetSummary
	Message string `json:"message"`
}

// ListSets returns every set with its card count.
// GET /api/sets
func (h *Handler) ListSets(w http.ResponseWriter, r *http.Request) {
	sets, err := h.catalog.ListSets(r.Context())
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	ok(w, sets)
}

// CreateSet creates a set.
// POST /api/sets
func (h *Handler) CreateSet(w http.ResponseWriter, r *http.Request) {
	var input shared.SetInput
	if err := decode(w, r, &input); err != nil {
		badRequest(w, err.Error())
		return
	}

	set, err := h.catalog.CreateSet(r.Context(), input)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	created(w, setWritten{SetSummary: set, Message: "Set created successfully"})
}

// GetSet returns a set with its archetypes and cards.
// GET /api/sets/{setID}
func (h *Handler) GetSet(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "setID")
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	set, err := h.catalog.GetSet(r.Context(), id)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	ok(w, set)
}

// UpdateSet changes the provided fields of a set.
// PUT /api/sets/{setID}
func (h *Handler) UpdateSet(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "setID")
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	var patch shared.SetPatch
	if err := decode(w, r, &patch); err != nil {
		badRequest(w, err.Error())
		return
	}

	set, err := h.catalog.UpdateSet(r.Context(), id, patch)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	ok(w, setWritten{SetSummary: set, Message: "Set updated successfully"})
}

// DeleteSet removes a set with its cards and archetypes.
// DELETE /api/sets/{setID}
func (h *Handler) DeleteSet(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "setID")
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	if err := h.catalog.DeleteSet(r.Context(), id); err != nil {
		h.serviceError(w, r, err)
		return
	}
	message(w, "Set deleted successfully")
}

// NumberCrunch returns the target versus actual distribution report.
// ?format=text returns the rendered table instead of JSON.
// GET /api/sets/{setID}/number-crunch
func (h *Handler) NumberCrunch(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "setID")
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	report, err := h.catalog.NumberCrunch(r.Context(), id)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	if r.URL.Query().Get("format") == "text" {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(h.renderer.Table(report)))
		return
	}
	ok(w, report)
}
