/**
 * @description
 * This file defines the loan model and its state machine:
 *
 *   PENDING -> APPROVED -> PAID
 *   PENDING -> REJECTED
 *
 * REJECTED and PAID are terminal. Interest rate and installment value are set
 * if and only if the loan has been approved.
 */

package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LoanStatus is the lifecycle state of a loan.
type LoanStatus string

const (
	LoanStatusPending  LoanStatus = "PENDING"
	LoanStatusApproved LoanStatus = "APPROVED"
	LoanStatusRejected LoanStatus = "REJECTED"
	LoanStatusPaid     LoanStatus = "PAID"
)

// LoanDecision is the admin verdict on a pending loan.
type LoanDecision string

const (
	LoanDecisionApproved LoanDecision = "APPROVED"
	LoanDecisionRejected LoanDecision = "REJECTED"
)

// Loan represents a loan against an account. PaidInstallments never exceeds
// Installments, and the loan is PAID exactly when the two are equal.
type Loan struct {
	ID               uuid.UUID        `json:"id"`
	AccountID        uuid.UUID        `json:"account_id"`
	Principal        int64            `json:"principal"` // in cents
	InterestRate     *decimal.Decimal `json:"interest_rate,omitempty"`
	Installments     int              `json:"installments"`
	PaidInstallments int              `json:"paid_installments"`
	InstallmentValue *int64           `json:"installment_value,omitempty"` // in cents
	Status           LoanStatus       `json:"status"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

// LoanRequest is the DTO for requesting a new loan.
type LoanRequest struct {
	AccountID    uuid.UUID `json:"account_id"`
	Principal    int64     `json:"principal"` // in cents
	Installments int       `json:"installments"`
}

// LoanDecisionRequest is the DTO for the admin approve/reject operation. The
// interest rate is required when the decision is APPROVED.
type LoanDecisionRequest struct {
	Decision     LoanDecision     `json:"decision"`
	InterestRate *decimal.Decimal `json:"interest_rate,omitempty"`
}
