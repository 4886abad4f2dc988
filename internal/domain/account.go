/**
 * @description
 * This file defines the account model for the ledger service. Accounts are the
 * unit of money ownership: every transfer, loan disbursement and statement is
 * anchored to an account row.
 *
 * @notes
 * - Balances are stored as `int64` in the smallest currency unit (cents),
 *   which avoids floating-point inaccuracies with financial data.
 * - Balance mutation happens only inside the store's atomic operations; the
 *   structs here are plain data carriers.
 */

package domain

import (
	"time"

	"github.com/google/uuid"
)

// AccountType distinguishes checking from savings accounts.
type AccountType string

const (
	AccountTypeChecking AccountType = "CHECKING"
	AccountTypeSavings  AccountType = "SAVINGS"
)

// AccountStatus is the lifecycle state of an account.
type AccountStatus string

const (
	AccountStatusActive  AccountStatus = "ACTIVE"
	AccountStatusBlocked AccountStatus = "BLOCKED"
	AccountStatusClosed  AccountStatus = "CLOSED"
)

// Account represents a bank account row. The balance is never negative after
// a committed operation.
type Account struct {
	ID        uuid.UUID     `json:"id"`
	UserID    uuid.UUID     `json:"user_id"`
	Agency    string        `json:"agency"`
	Number    string        `json:"number"`
	Type      AccountType   `json:"type"`
	Balance   int64         `json:"balance"` // in cents
	Status    AccountStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// OpenAccountRequest is the DTO for opening a new account.
type OpenAccountRequest struct {
	Type AccountType `json:"type"`
}

// PixKeyType is the kind of alias registered for an account.
type PixKeyType string

const (
	PixKeyTypeEmail  PixKeyType = "EMAIL"
	PixKeyTypePhone  PixKeyType = "PHONE"
	PixKeyTypeRandom PixKeyType = "RANDOM"
)

// PixKey maps an alias string to an owning account.
type PixKey struct {
	ID        uuid.UUID  `json:"id"`
	AccountID uuid.UUID  `json:"account_id"`
	Type      PixKeyType `json:"type"`
	Value     string     `json:"value"`
	CreatedAt time.Time  `json:"created_at"`
}

// RegisterPixKeyRequest is the DTO for registering a new PIX key.
type RegisterPixKeyRequest struct {
	AccountID uuid.UUID  `json:"account_id"`
	Type      PixKeyType `json:"type"`
	Value     string     `json:"value"`
}

// Actor is the authenticated identity every engine operation receives. Role
// comes from the verified token; engines still re-validate resource ownership
// on top of it.
type Actor struct {
	UserID uuid.UUID
	Role   string
}

const RoleAdmin = "admin"

// IsAdmin reports whether the actor carries the admin capability.
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}
