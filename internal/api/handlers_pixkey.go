package api

import (
	"encoding/json"
	"net/http"

	"github.com/digibank/ledger-service/internal/domain"
)

// RegisterPixKeyHandler registers a PIX key for an owned account.
func (h *Handlers) RegisterPixKeyHandler(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.requireActor(w, r)
	if !ok {
		return
	}

	var req domain.RegisterPixKeyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	key, err := h.service.RegisterPixKey(r.Context(), actor, req)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, key)
}

// DeletePixKeyHandler removes a PIX key from an owned account.
func (h *Handlers) DeletePixKeyHandler(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.requireActor(w, r)
	if !ok {
		return
	}
	keyID, ok := h.pathUUID(w, r, "keyID")
	if !ok {
		return
	}

	if err := h.service.DeletePixKey(r.Context(), actor, keyID); err != nil {
		h.respondError(w, err)
		return
	}
	h.writeJSON(w, http.StatusNoContent, nil)
}
