package api

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/digibank/ledger-service/internal/app"
	"github.com/digibank/ledger-service/internal/store"
)

func TestRespondErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{
			name:       "account not found",
			err:        store.ErrAccountNotFound,
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "wrapped loan not found",
			err:        fmt.Errorf("load loan: %w", store.ErrLoanNotFound),
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "forbidden",
			err:        app.ErrForbidden,
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "admin required maps to forbidden",
			err:        app.ErrAdminRequired,
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "insufficient funds",
			err:        store.ErrInsufficientFunds,
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "transfer rate limited",
			err:        app.ErrTransferRateLimited,
			wantStatus: http.StatusTooManyRequests,
		},
		{
			name:       "invalid loan state",
			err:        store.ErrInvalidLoanState,
			wantStatus: http.StatusConflict,
		},
		{
			name:       "account not empty",
			err:        store.ErrAccountNotEmpty,
			wantStatus: http.StatusConflict,
		},
		{
			name:       "pix key taken",
			err:        store.ErrPixKeyTaken,
			wantStatus: http.StatusConflict,
		},
		{
			name:       "rule violation maps to bad request",
			err:        app.ErrInvalidAmount,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unknown error is masked as internal",
			err:        fmt.Errorf("pg connection refused"),
			wantStatus: http.StatusInternalServerError,
		},
	}

	h := &Handlers{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.respondError(rec, tt.err)
			if rec.Code != tt.wantStatus {
				t.Fatalf("expected status=%d, got %d", tt.wantStatus, rec.Code)
			}
			if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
				t.Fatalf("expected json response, got %q", ct)
			}
		})
	}
}
