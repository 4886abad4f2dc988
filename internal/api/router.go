/**
 * @description
 * This file sets up the HTTP router for the ledger service. It defines the API
 * endpoints, associates them with their corresponding handlers, and applies any
 * necessary middleware, such as for authentication.
 *
 * @dependencies
 * - net/http: Standard Go library for HTTP functionality.
 * - github.com/go-chi/chi/v5: A lightweight and idiomatic router for Go.
 */

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// LedgerRoutes creates and returns a new router for the ledger service.
func LedgerRoutes(h *Handlers, jwtSecret string) http.Handler {
	r := chi.NewRouter()

	// Add standard middleware for logging, panic recovery, and timeouts.
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("healthy"))
	})

	// Group routes that require authentication.
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(jwtSecret))

		// Account ledger endpoints
		r.Post("/accounts", h.OpenAccountHandler)
		r.Get("/accounts", h.ListAccountsHandler)
		r.Get("/accounts/{accountID}", h.GetAccountHandler)
		r.Delete("/accounts/{accountID}", h.CloseAccountHandler)
		r.Get("/accounts/{accountID}/transactions", h.ListTransactionsHandler)
		r.Get("/accounts/{accountID}/loans", h.ListLoansHandler)
		r.Get("/accounts/{accountID}/statements", h.ListStatementsHandler)

		// PIX key endpoints
		r.Post("/pix-keys", h.RegisterPixKeyHandler)
		r.Delete("/pix-keys/{keyID}", h.DeletePixKeyHandler)

		// Transaction engine endpoints
		r.Post("/transfers", h.TransferHandler)
		r.Get("/transactions/{transactionID}", h.GetTransactionHandler)
		r.Patch("/transactions/{transactionID}", h.AnnotateTransactionHandler)

		// Loan engine endpoints
		r.Post("/loans", h.RequestLoanHandler)
		r.Get("/loans/{loanID}", h.GetLoanHandler)
		r.Post("/loans/{loanID}/decision", h.DecideLoanHandler)
		r.Post("/loans/{loanID}/installments", h.PayInstallmentHandler)
		r.Delete("/loans/{loanID}", h.DeleteLoanHandler)

		// Statement endpoints
		r.Post("/statements", h.GenerateStatementHandler)
		r.Patch("/statements/{statementID}", h.UpdateStatementStatusHandler)
		r.Delete("/statements/{statementID}", h.DeleteStatementHandler)
	})

	return r
}
