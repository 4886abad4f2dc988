/**
 * @description
 * This file defines the `Repository` interface, the contract for all data
 * access the ledger service needs. The engines in internal/app depend only on
 * this interface, which keeps the business logic testable against in-memory
 * stubs and independent of PostgreSQL.
 *
 * Balance-mutating methods (TransferFunds, DisburseLoan, PayLoanInstallment,
 * CloseAccount) are atomic: the implementation must commit all of their
 * effects together or none of them.
 */

package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/digibank/ledger-service/internal/domain"
)

// Repository defines the set of methods for interacting with the database.
type Repository interface {
	// Account methods
	CreateAccount(ctx context.Context, account *domain.Account) error
	FindAccountByID(ctx context.Context, accountID uuid.UUID) (*domain.Account, error)
	FindAccountByNumber(ctx context.Context, agency, number string) (*domain.Account, error)
	FindAccountsByUserID(ctx context.Context, userID uuid.UUID) ([]domain.Account, error)
	// CloseAccount transitions the account to CLOSED only if its balance is
	// exactly zero; returns ErrAccountNotEmpty otherwise.
	CloseAccount(ctx context.Context, accountID uuid.UUID) error

	// PIX key methods
	CreatePixKey(ctx context.Context, key *domain.PixKey) error
	FindPixKeyByID(ctx context.Context, keyID uuid.UUID) (*domain.PixKey, error)
	ResolvePixKey(ctx context.Context, value string) (*domain.Account, error)
	DeletePixKey(ctx context.Context, keyID uuid.UUID) error

	// Transaction methods.
	// TransferFunds debits the origin, credits the destination and inserts the
	// transaction record in one serializable unit. The balance check runs
	// under row locks, so two concurrent over-drafts cannot both pass.
	TransferFunds(ctx context.Context, tx *domain.Transaction) error
	FindTransactionByID(ctx context.Context, transactionID uuid.UUID) (*domain.Transaction, error)
	FindTransactionsByAccountID(ctx context.Context, accountID uuid.UUID) ([]domain.Transaction, error)
	FindTransactionsByAccountIDAndDateBetween(ctx context.Context, accountID uuid.UUID, start, end time.Time) ([]domain.Transaction, error)
	SumTransactionTotals(ctx context.Context, accountID uuid.UUID, start, end time.Time) (incoming, outgoing int64, err error)
	UpdateTransactionMetadata(ctx context.Context, transactionID uuid.UUID, params UpdateTransactionMetadataParams) error

	// Loan methods.
	// DisburseLoan approves the loan (setting rate and installment value) and
	// credits the principal to the loan's account atomically.
	// PayLoanInstallment debits one installment and increments the paid
	// counter atomically, transitioning to PAID on the last installment.
	CreateLoan(ctx context.Context, loan *domain.Loan) error
	FindLoanByID(ctx context.Context, loanID uuid.UUID) (*domain.Loan, error)
	FindLoansByAccountID(ctx context.Context, accountID uuid.UUID) ([]domain.Loan, error)
	DisburseLoan(ctx context.Context, loanID uuid.UUID, rate decimal.Decimal, installmentValue int64) (*domain.Loan, error)
	RejectLoan(ctx context.Context, loanID uuid.UUID) (*domain.Loan, error)
	PayLoanInstallment(ctx context.Context, loanID uuid.UUID) (*domain.Loan, error)
	DeleteLoan(ctx context.Context, loanID uuid.UUID) error

	// Statement methods
	CreateStatement(ctx context.Context, statement *domain.BankStatement) error
	FindStatementByID(ctx context.Context, statementID uuid.UUID) (*domain.BankStatement, error)
	FindStatementsByAccountID(ctx context.Context, accountID uuid.UUID) ([]domain.BankStatement, error)
	FindStatementsByAccountIDAndStatus(ctx context.Context, accountID uuid.UUID, status domain.StatementStatus) ([]domain.BankStatement, error)
	UpdateStatementStatus(ctx context.Context, statementID uuid.UUID, status domain.StatementStatus) error
	DeleteStatement(ctx context.Context, statementID uuid.UUID) error
}

// UpdateTransactionMetadataParams carries the optional fields of a
// metadata-only transaction correction. Nil fields are left untouched.
type UpdateTransactionMetadataParams struct {
	Status     *string
	Annotation *string
}
