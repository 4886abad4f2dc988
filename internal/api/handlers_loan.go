package api

import (
	"encoding/json"
	"net/http"

	"github.com/digibank/ledger-service/internal/domain"
)

// RequestLoanHandler originates a loan against an owned account.
func (h *Handlers) RequestLoanHandler(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.requireActor(w, r)
	if !ok {
		return
	}

	var req domain.LoanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	loan, err := h.service.RequestLoan(r.Context(), actor, req)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, loan)
}

// GetLoanHandler returns a single loan visible to the actor.
func (h *Handlers) GetLoanHandler(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.requireActor(w, r)
	if !ok {
		return
	}
	loanID, ok := h.pathUUID(w, r, "loanID")
	if !ok {
		return
	}

	loan, err := h.service.GetLoan(r.Context(), actor, loanID)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, loan)
}

// ListLoansHandler returns all loans against an owned account.
func (h *Handlers) ListLoansHandler(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.requireActor(w, r)
	if !ok {
		return
	}
	accountID, ok := h.pathUUID(w, r, "accountID")
	if !ok {
		return
	}

	loans, err := h.service.ListLoans(r.Context(), actor, accountID)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, loans)
}

// DecideLoanHandler is the admin approve/reject endpoint. The route is gated
// by role at the transport layer and the engine re-checks the capability.
func (h *Handlers) DecideLoanHandler(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.requireActor(w, r)
	if !ok {
		return
	}
	if !actor.IsAdmin() {
		h.writeError(w, http.StatusForbidden, "admin capability required")
		return
	}
	loanID, ok := h.pathUUID(w, r, "loanID")
	if !ok {
		return
	}

	var req domain.LoanDecisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	loan, err := h.service.DecideLoan(r.Context(), actor, loanID, req)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, loan)
}

// PayInstallmentHandler pays one installment of an approved loan.
func (h *Handlers) PayInstallmentHandler(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.requireActor(w, r)
	if !ok {
		return
	}
	loanID, ok := h.pathUUID(w, r, "loanID")
	if !ok {
		return
	}

	loan, err := h.service.PayInstallment(r.Context(), actor, loanID)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, loan)
}

// DeleteLoanHandler hard-deletes a pending or rejected loan.
func (h *Handlers) DeleteLoanHandler(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.requireActor(w, r)
	if !ok {
		return
	}
	loanID, ok := h.pathUUID(w, r, "loanID")
	if !ok {
		return
	}

	if err := h.service.DeleteLoan(r.Context(), actor, loanID); err != nil {
		h.respondError(w, err)
		return
	}
	h.writeJSON(w, http.StatusNoContent, nil)
}
