/**
 * @description
 * This file defines the transaction model: the central ledger record for any
 * money movement between two accounts. Transactions are immutable once
 * created except for status and annotation metadata.
 */

package domain

import (
	"time"

	"github.com/google/uuid"
)

// TransactionType is the transfer rail used for a movement.
type TransactionType string

const (
	TransactionTypePix TransactionType = "PIX"
	TransactionTypeTed TransactionType = "TED"
	TransactionTypeDoc TransactionType = "DOC"
)

// Transaction statuses. A transaction is written with StatusSuccess after its
// balance effects commit; later metadata corrections may change the status
// string but never the amounts.
const (
	TransactionStatusSuccess = "SUCCESS"
	TransactionStatusVoided  = "VOIDED"
)

// Transaction records a completed movement of Amount cents from the origin
// account to the destination account.
type Transaction struct {
	ID                   uuid.UUID       `json:"id"`
	Amount               int64           `json:"amount"` // in cents, always > 0
	OriginAccountID      uuid.UUID       `json:"origin_account_id"`
	DestinationAccountID uuid.UUID       `json:"destination_account_id"`
	Type                 TransactionType `json:"type"`
	Status               string          `json:"status"`
	Annotation           *string         `json:"annotation,omitempty"`
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`
}

// TransferRequest is the DTO for initiating a transfer. The destination is
// selected either by PIX key (Type == PIX) or by agency plus account number
// (TED/DOC).
type TransferRequest struct {
	OriginAccountID   uuid.UUID       `json:"origin_account_id"`
	Amount            int64           `json:"amount"` // in cents
	Type              TransactionType `json:"type"`
	PixKey            string          `json:"pix_key,omitempty"`
	DestinationAgency string          `json:"destination_agency,omitempty"`
	DestinationNumber string          `json:"destination_number,omitempty"`
}

// AnnotateTransactionRequest is the DTO for the metadata-only correction of a
// persisted transaction. It never re-runs balance effects and is not a
// reversal.
type AnnotateTransactionRequest struct {
	Status     *string `json:"status,omitempty"`
	Annotation *string `json:"annotation,omitempty"`
}
