package handlers

import (
	"net/http"

	"github.com/latoulicious/setforge/pkg/catalog/shared"
)

type cardWritten struct {
	*shared.Card
	Message string `json:"message"`
}

type manaRequest struct {
	ManaCost string `json:"mana_cost"`
}

type manaResponse struct {
	ManaCost string   `json:"mana_cost"`
	Colors   []string `json:"colors"`
}

// CreateCard adds a card to a set.
// POST /api/sets/{setID}/cards
func (h *Handler) CreateCard(w http.ResponseWriter, r *http.Request) {
	setID, err := idParam(r, "setID")
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	var input shared.CardInput
	if err := decode(w, r, &input); err != nil {
		badRequest(w, err.Error())
		return
	}

	card, err := h.catalog.CreateCard(r.Context(), setID, input)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	created(w, cardWritten{Card: card, Message: "Card created successfully"})
}

// GET /api/cards/{cardID}
func (h *Handler) GetCard(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "cardID")
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	card, err := h.catalog.GetCard(r.Context(), id)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	ok(w, card)
}

// UpdateCard changes the provided fields of a card.
// PUT /api/cards/{cardID}
func (h *Handler) UpdateCard(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "cardID")
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	var patch shared.CardPatch
	if err := decode(w, r, &patch); err != nil {
		badRequest(w, err.Error())
		return
	}

	card, err := h.catalog.UpdateCard(r.Context(), id, patch)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	ok(w, cardWritten{Card: card, Message: "Card updated successfully"})
}

// DELETE /api/cards/{cardID}
func (h *Handler) DeleteCard(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "cardID")
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	if err := h.catalog.DeleteCard(r.Context(), id); err != nil {
		h.serviceError(w, r, err)
		return
	}
	message(w, "Card deleted successfully")
}

// DeriveColors previews the colors a mana cost would produce.
// POST /api/mana/colors
func (h *Handler) DeriveColors(w http.ResponseWriter, r *http.Request) {
	var req manaRequest
	if err := decode(w, r, &req); err != nil {
		badRequest(w, err.Error())
		return
	}
	ok(w, manaResponse{ManaCost: req.ManaCost, Colors: h.catalog.DeriveColors(req.ManaCost)})
}
