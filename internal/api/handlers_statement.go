package api

import (
	"encoding/json"
	"net/http"

	"github.com/digibank/ledger-service/internal/domain"
)

// GenerateStatementHandler generates a statement over a date range for an
// owned account.
func (h *Handlers) GenerateStatementHandler(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.requireActor(w, r)
	if !ok {
		return
	}

	var req domain.StatementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.service.GenerateStatement(r.Context(), actor, req)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, result)
}

// ListStatementsHandler returns an owned account's statements, optionally
// filtered by status via the `status` query parameter.
func (h *Handlers) ListStatementsHandler(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.requireActor(w, r)
	if !ok {
		return
	}
	accountID, ok := h.pathUUID(w, r, "accountID")
	if !ok {
		return
	}

	var (
		statements []domain.BankStatement
		err        error
	)
	if status := r.URL.Query().Get("status"); status != "" {
		statements, err = h.service.ListStatementsByStatus(r.Context(), actor, accountID, domain.StatementStatus(status))
	} else {
		statements, err = h.service.ListStatements(r.Context(), actor, accountID)
	}
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, statements)
}

type updateStatementStatusRequest struct {
	Status domain.StatementStatus `json:"status"`
}

// UpdateStatementStatusHandler moves a statement between GENERATED and VIEWED.
func (h *Handlers) UpdateStatementStatusHandler(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.requireActor(w, r)
	if !ok {
		return
	}
	statementID, ok := h.pathUUID(w, r, "statementID")
	if !ok {
		return
	}

	var req updateStatementStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	statement, err := h.service.UpdateStatementStatus(r.Context(), actor, statementID, req.Status)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, statement)
}

// DeleteStatementHandler removes a statement record.
func (h *Handlers) DeleteStatementHandler(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.requireActor(w, r)
	if !ok {
		return
	}
	statementID, ok := h.pathUUID(w, r, "statementID")
	if !ok {
		return
	}

	if err := h.service.DeleteStatement(r.Context(), actor, statementID); err != nil {
		h.respondError(w, err)
		return
	}
	h.writeJSON(w, http.StatusNoContent, nil)
}
