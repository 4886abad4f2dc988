/**
 * @description
 * This file contains the HTTP handlers for accounts, transfers and
 * transaction history, plus the shared JSON/error-response helpers. Handlers
 * parse incoming requests, call the application service and write the HTTP
 * response; all business rules live in internal/app.
 *
 * @dependencies
 * - internal/app, internal/domain, internal/store: For service logic, models, and custom errors.
 */

package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/digibank/ledger-service/internal/app"
	"github.com/digibank/ledger-service/internal/domain"
	"github.com/digibank/ledger-service/internal/store"
)

// Handlers holds the application service that handlers will use.
type Handlers struct {
	service *app.Service
}

// NewHandlers creates the handler set over the application service.
func NewHandlers(service *app.Service) *Handlers {
	return &Handlers{service: service}
}

func (h *Handlers) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// writeError is a helper for writing JSON error responses.
func (h *Handlers) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}

// respondError maps service errors onto HTTP statuses. Rule-specific messages
// are passed through so the caller sees which rule was violated.
func (h *Handlers) respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrAccountNotFound),
		errors.Is(err, store.ErrPixKeyNotFound),
		errors.Is(err, store.ErrTransactionNotFound),
		errors.Is(err, store.ErrLoanNotFound),
		errors.Is(err, store.ErrStatementNotFound):
		h.writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, app.ErrForbidden):
		h.writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, store.ErrInsufficientFunds):
		h.writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, app.ErrTransferRateLimited):
		h.writeError(w, http.StatusTooManyRequests, err.Error())
	case errors.Is(err, store.ErrInvalidLoanState),
		errors.Is(err, store.ErrAccountInactive),
		errors.Is(err, store.ErrAccountNotEmpty),
		errors.Is(err, store.ErrPixKeyTaken),
		errors.Is(err, store.ErrAccountNumberTaken):
		h.writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, app.ErrInvalidData):
		h.writeError(w, http.StatusBadRequest, err.Error())
	default:
		h.writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

// requireActor extracts the authenticated actor or writes a 401.
func (h *Handlers) requireActor(w http.ResponseWriter, r *http.Request) (domain.Actor, bool) {
	actor, ok := GetActor(r.Context())
	if !ok {
		h.writeError(w, http.StatusUnauthorized, "could not resolve authenticated user")
	}
	return actor, ok
}

func (h *Handlers) pathUUID(w http.ResponseWriter, r *http.Request, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, param))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid "+param)
		return uuid.Nil, false
	}
	return id, true
}

// OpenAccountHandler creates a new account for the authenticated user.
func (h *Handlers) OpenAccountHandler(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.requireActor(w, r)
	if !ok {
		return
	}

	var req domain.OpenAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	account, err := h.service.OpenAccount(r.Context(), actor, req)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, account)
}

// ListAccountsHandler returns the authenticated user's accounts.
func (h *Handlers) ListAccountsHandler(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.requireActor(w, r)
	if !ok {
		return
	}

	accounts, err := h.service.ListAccounts(r.Context(), actor)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, accounts)
}

// GetAccountHandler returns a single owned account.
func (h *Handlers) GetAccountHandler(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.requireActor(w, r)
	if !ok {
		return
	}
	accountID, ok := h.pathUUID(w, r, "accountID")
	if !ok {
		return
	}

	account, err := h.service.GetAccount(r.Context(), actor, accountID)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, account)
}

// CloseAccountHandler closes an owned, zero-balance account.
func (h *Handlers) CloseAccountHandler(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.requireActor(w, r)
	if !ok {
		return
	}
	accountID, ok := h.pathUUID(w, r, "accountID")
	if !ok {
		return
	}

	if err := h.service.CloseAccount(r.Context(), actor, accountID); err != nil {
		h.respondError(w, err)
		return
	}
	h.writeJSON(w, http.StatusNoContent, nil)
}

// TransferHandler initiates a transfer from an owned account.
func (h *Handlers) TransferHandler(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.requireActor(w, r)
	if !ok {
		return
	}

	var req domain.TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	tx, err := h.service.Transfer(r.Context(), actor, req)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, tx)
}

// GetTransactionHandler returns a transaction the actor is a party to.
func (h *Handlers) GetTransactionHandler(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.requireActor(w, r)
	if !ok {
		return
	}
	transactionID, ok := h.pathUUID(w, r, "transactionID")
	if !ok {
		return
	}

	tx, err := h.service.GetTransaction(r.Context(), actor, transactionID)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, tx)
}

// AnnotateTransactionHandler applies a metadata-only correction to a
// transaction. It never re-runs balance effects.
func (h *Handlers) AnnotateTransactionHandler(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.requireActor(w, r)
	if !ok {
		return
	}
	transactionID, ok := h.pathUUID(w, r, "transactionID")
	if !ok {
		return
	}

	var req domain.AnnotateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	tx, err := h.service.AnnotateTransaction(r.Context(), actor, transactionID, req)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, tx)
}

// ListTransactionsHandler returns the transaction history of an owned account.
func (h *Handlers) ListTransactionsHandler(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.requireActor(w, r)
	if !ok {
		return
	}
	accountID, ok := h.pathUUID(w, r, "accountID")
	if !ok {
		return
	}

	transactions, err := h.service.ListTransactions(r.Context(), actor, accountID)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, transactions)
}
