package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi"
	log "github.com/sirupsen/logrus"

	"github.com/nexcard/ecard-services/internal/cardsvc/export"
	"github.com/nexcard/ecard-services/internal/cardsvc/models"
	"github.com/nexcard/ecard-services/internal/cardsvc/render"
)

func (h *Handler) ListCardsHandler(w http.ResponseWriter, r *http.Request) {
	cards, err := h.cards.List(r.Context(), r.URL.Query().Get("ownerId"))
	if err != nil {
		h.ErrorResponse(w, err)
		return
	}

	h.CreateResponse(w, Response{Message: "ok", Code: http.StatusOK, Data: cards})
}

func (h *Handler) GetCardHandler(w http.ResponseWriter, r *http.Request) {
	card, err := h.cards.Get(r.Context(), r.URL.Query().Get("ownerId"), chi.URLParam(r, "id"))
	if err != nil {
		h.ErrorResponse(w, err)
		return
	}

	h.CreateResponse(w, Response{Message: "ok", Code: http.StatusOK, Data: card})
}

type upsertCardRequest struct {
	OwnerID string `json:"ownerId"`
	models.Card
}

func (h *Handler) UpsertCardHandler(w http.ResponseWriter, r *http.Request) {
	var req upsertCardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.CreateResponse(w, Response{Message: "invalid request body", Code: http.StatusBadRequest, Error: err.Error()})
		return
	}

	card, err := h.cards.Upsert(r.Context(), req.OwnerID, req.Card)
	if err != nil {
		h.ErrorResponse(w, err)
		return
	}

	h.CreateResponse(w, Response{Message: "saved", Code: http.StatusOK, Data: card})
}

func (h *Handler) DeleteCardHandler(w http.ResponseWriter, r *http.Request) {
	err := h.cards.Delete(r.Context(), r.URL.Query().Get("ownerId"), chi.URLParam(r, "id"))
	if err != nil {
		h.ErrorResponse(w, err)
		return
	}

	h.CreateResponse(w, Response{Message: "deleted", Code: http.StatusOK})
}

// serveCardHTML renders the card into the master template and writes
// the page.
func (h *Handler) serveCardHTML(w http.ResponseWriter, card *models.Card) {
	template, err := h.readTemplate()
	if err != nil {
		log.Errorf("failed to read template: %v", err)
		h.CreateResponse(w, Response{Message: "template not found", Code: http.StatusInternalServerError, Error: "template not found"})
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(render.Card(card, template)))
}

func (h *Handler) PreviewCardHandler(w http.ResponseWriter, r *http.Request) {
	card, err := h.cards.Get(r.Context(), r.URL.Query().Get("ownerId"), chi.URLParam(r, "id"))
	if err != nil {
		h.ErrorResponse(w, err)
		return
	}

	h.serveCardHTML(w, card)
}

func (h *Handler) PublicCardHandler(w http.ResponseWriter, r *http.Request) {
	card, err := h.cards.FindBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		h.ErrorResponse(w, err)
		return
	}

	h.serveCardHTML(w, card)
}

func (h *Handler) ExportCardHandler(w http.ResponseWriter, r *http.Request) {
	card, err := h.cards.Get(r.Context(), r.URL.Query().Get("ownerId"), chi.URLParam(r, "id"))
	if err != nil {
		h.ErrorResponse(w, err)
		return
	}

	template, err := h.readTemplate()
	if err != nil {
		log.Errorf("failed to read template: %v", err)
		h.CreateResponse(w, Response{Message: "template not found", Code: http.StatusInternalServerError, Error: "template not found"})
		return
	}

	rendered := render.Card(card, template)

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", "attachment; filename="+export.SafeName(card.DisplayName())+".zip")

	// Headers are gone once streaming starts; a failure here can only
	// cut the response short.
	if err := export.Archive(w, card, rendered, h.templateDir); err != nil {
		log.Errorf("failed to stream export archive for card %s: %v", card.ID, err)
	}
}
