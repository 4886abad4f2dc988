/**
 * @description
 * This file defines the bank statement model. A statement is a materialized
 * view over a bounded date range: it references the range, not the
 * transactions, and totals are recomputed on each read.
 */

package domain

import (
	"time"

	"github.com/google/uuid"
)

// StatementType distinguishes the standard monthly statement from an
// arbitrary custom range.
type StatementType string

const (
	StatementTypeMonthly StatementType = "MONTHLY"
	StatementTypeCustom  StatementType = "CUSTOM"
)

// StatementStatus tracks whether the holder has viewed the statement.
type StatementStatus string

const (
	StatementStatusGenerated StatementStatus = "GENERATED"
	StatementStatusViewed    StatementStatus = "VIEWED"
)

// BankStatement is the persisted statement record.
type BankStatement struct {
	ID          uuid.UUID       `json:"id"`
	AccountID   uuid.UUID       `json:"account_id"`
	StartDate   time.Time       `json:"start_date"`
	EndDate     time.Time       `json:"end_date"`
	Type        StatementType   `json:"type"`
	Status      StatementStatus `json:"status"`
	GeneratedAt time.Time       `json:"generated_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// StatementRequest is the DTO for generating a statement.
type StatementRequest struct {
	AccountID uuid.UUID     `json:"account_id"`
	StartDate time.Time     `json:"start_date"`
	EndDate   time.Time     `json:"end_date"`
	Type      StatementType `json:"type"`
}

// StatementResult is the statement record together with the recomputed totals
// and the transactions in range. CurrentBalance is the account's live
// balance, not a point-in-time reconstruction.
type StatementResult struct {
	Statement      BankStatement `json:"statement"`
	TotalIncoming  int64         `json:"total_incoming"`  // in cents
	TotalOutgoing  int64         `json:"total_outgoing"`  // in cents
	CurrentBalance int64         `json:"current_balance"` // in cents
	Transactions   []Transaction `json:"transactions"`
}
