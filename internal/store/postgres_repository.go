/**
 * @description
 * This file provides the PostgreSQL implementation of the `Repository`
 * interface. All money movement runs inside a single database transaction
 * with `SELECT ... FOR UPDATE` row locks taken in account-id order, so
 * concurrent operations against the same accounts serialize and a balance
 * check can never be invalidated between validation and apply.
 *
 * @dependencies
 * - github.com/jackc/pgx/v5: The PostgreSQL driver for database operations.
 * - internal/domain: Contains the domain models used for data transfer.
 */

package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/digibank/ledger-service/internal/domain"
)

var (
	ErrAccountNotFound     = errors.New("account not found")
	ErrPixKeyNotFound      = errors.New("pix key not found")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrLoanNotFound        = errors.New("loan not found")
	ErrStatementNotFound   = errors.New("statement not found")
	ErrInsufficientFunds   = errors.New("insufficient funds")
	ErrAccountInactive     = errors.New("account is not active")
	ErrAccountNotEmpty     = errors.New("account balance is not zero")
	ErrInvalidLoanState    = errors.New("loan is not in a valid state for this operation")
	ErrPixKeyTaken         = errors.New("pix key already registered")
	ErrAccountNumberTaken  = errors.New("account number already in use")
)

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// PostgresRepository is a concrete implementation of the Repository interface for PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository creates a new instance of PostgresRepository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const accountColumns = "id, user_id, agency, number, type, balance, status, created_at, updated_at"

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var account domain.Account
	err := row.Scan(
		&account.ID, &account.UserID, &account.Agency, &account.Number,
		&account.Type, &account.Balance, &account.Status,
		&account.CreatedAt, &account.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return &account, nil
}

// CreateAccount inserts a new account row.
func (r *PostgresRepository) CreateAccount(ctx context.Context, account *domain.Account) error {
	query := `
		INSERT INTO accounts (id, user_id, agency, number, type, balance, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query,
		account.ID, account.UserID, account.Agency, account.Number,
		account.Type, account.Balance, account.Status,
	)
	if isUniqueViolation(err) {
		return ErrAccountNumberTaken
	}
	return err
}

// FindAccountByID retrieves an account by its identifier.
func (r *PostgresRepository) FindAccountByID(ctx context.Context, accountID uuid.UUID) (*domain.Account, error) {
	query := "SELECT " + accountColumns + " FROM accounts WHERE id = $1"
	return scanAccount(r.db.QueryRow(ctx, query, accountID))
}

// FindAccountByNumber retrieves an account by its agency and account number.
func (r *PostgresRepository) FindAccountByNumber(ctx context.Context, agency, number string) (*domain.Account, error) {
	query := "SELECT " + accountColumns + " FROM accounts WHERE agency = $1 AND number = $2"
	return scanAccount(r.db.QueryRow(ctx, query, agency, number))
}

// FindAccountsByUserID retrieves all accounts owned by a user.
func (r *PostgresRepository) FindAccountsByUserID(ctx context.Context, userID uuid.UUID) ([]domain.Account, error) {
	query := "SELECT " + accountColumns + " FROM accounts WHERE user_id = $1 ORDER BY created_at"
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []domain.Account
	for rows.Next() {
		var account domain.Account
		if err := rows.Scan(
			&account.ID, &account.UserID, &account.Agency, &account.Number,
			&account.Type, &account.Balance, &account.Status,
			&account.CreatedAt, &account.UpdatedAt,
		); err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}
	return accounts, rows.Err()
}

// CloseAccount transitions an account to CLOSED. The zero-balance check and
// the status change happen in one statement, so a concurrent credit cannot
// slip in between them.
func (r *PostgresRepository) CloseAccount(ctx context.Context, accountID uuid.UUID) error {
	query := `
		UPDATE accounts
		SET status = 'CLOSED', updated_at = NOW()
		WHERE id = $1 AND balance = 0 AND status <> 'CLOSED'
	`
	result, err := r.db.Exec(ctx, query, accountID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 1 {
		return nil
	}

	account, err := r.FindAccountByID(ctx, accountID)
	if err != nil {
		return err
	}
	if account.Balance != 0 {
		return ErrAccountNotEmpty
	}
	// Already closed; closing is idempotent.
	return nil
}

// CreatePixKey registers a new PIX key for an account.
func (r *PostgresRepository) CreatePixKey(ctx context.Context, key *domain.PixKey) error {
	query := `
		INSERT INTO pix_keys (id, account_id, type, value, created_at)
		VALUES ($1, $2, $3, $4, NOW())
	`
	_, err := r.db.Exec(ctx, query, key.ID, key.AccountID, key.Type, key.Value)
	if isUniqueViolation(err) {
		return ErrPixKeyTaken
	}
	return err
}

// FindPixKeyByID retrieves a PIX key by its identifier.
func (r *PostgresRepository) FindPixKeyByID(ctx context.Context, keyID uuid.UUID) (*domain.PixKey, error) {
	var key domain.PixKey
	query := `SELECT id, account_id, type, value, created_at FROM pix_keys WHERE id = $1`
	err := r.db.QueryRow(ctx, query, keyID).Scan(&key.ID, &key.AccountID, &key.Type, &key.Value, &key.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPixKeyNotFound
		}
		return nil, err
	}
	return &key, nil
}

// ResolvePixKey maps a key value to its owning account. Pure read.
func (r *PostgresRepository) ResolvePixKey(ctx context.Context, value string) (*domain.Account, error) {
	query := `
		SELECT a.id, a.user_id, a.agency, a.number, a.type, a.balance, a.status, a.created_at, a.updated_at
		FROM pix_keys k
		JOIN accounts a ON a.id = k.account_id
		WHERE k.value = $1
	`
	account, err := scanAccount(r.db.QueryRow(ctx, query, value))
	if errors.Is(err, ErrAccountNotFound) {
		return nil, ErrPixKeyNotFound
	}
	return account, err
}

// DeletePixKey removes a PIX key.
func (r *PostgresRepository) DeletePixKey(ctx context.Context, keyID uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM pix_keys WHERE id = $1`, keyID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrPixKeyNotFound
	}
	return nil
}

// lockedAccount is the slice of account state needed for balance validation
// under a row lock.
type lockedAccount struct {
	id      uuid.UUID
	balance int64
	status  domain.AccountStatus
}

// lockAccounts acquires FOR UPDATE locks on the given account rows. Rows are
// locked in id order regardless of transfer direction so two opposing
// transfers cannot deadlock.
func lockAccounts(ctx context.Context, tx pgx.Tx, ids ...uuid.UUID) (map[uuid.UUID]lockedAccount, error) {
	rows, err := tx.Query(ctx, `
		SELECT id, balance, status
		FROM accounts
		WHERE id = ANY($1)
		ORDER BY id
		FOR UPDATE
	`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	locked := make(map[uuid.UUID]lockedAccount, len(ids))
	for rows.Next() {
		var a lockedAccount
		if err := rows.Scan(&a.id, &a.balance, &a.status); err != nil {
			return nil, err
		}
		locked[a.id] = a
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, id := range ids {
		if _, ok := locked[id]; !ok {
			return nil, ErrAccountNotFound
		}
	}
	return locked, nil
}

// TransferFunds executes the debit/credit pair and records the transaction in
// a single database transaction. Failure at any step leaves both balances
// untouched.
func (r *PostgresRepository) TransferFunds(ctx context.Context, transfer *domain.Transaction) error {
	dbtx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transfer tx: %w", err)
	}
	defer dbtx.Rollback(ctx)

	locked, err := lockAccounts(ctx, dbtx, transfer.OriginAccountID, transfer.DestinationAccountID)
	if err != nil {
		return err
	}

	origin := locked[transfer.OriginAccountID]
	destination := locked[transfer.DestinationAccountID]
	if origin.status != domain.AccountStatusActive || destination.status != domain.AccountStatusActive {
		return ErrAccountInactive
	}
	if origin.balance < transfer.Amount {
		return ErrInsufficientFunds
	}

	if _, err := dbtx.Exec(ctx,
		`UPDATE accounts SET balance = balance - $1, updated_at = NOW() WHERE id = $2`,
		transfer.Amount, transfer.OriginAccountID,
	); err != nil {
		return fmt.Errorf("debit origin account: %w", err)
	}
	if _, err := dbtx.Exec(ctx,
		`UPDATE accounts SET balance = balance + $1, updated_at = NOW() WHERE id = $2`,
		transfer.Amount, transfer.DestinationAccountID,
	); err != nil {
		return fmt.Errorf("credit destination account: %w", err)
	}

	row := dbtx.QueryRow(ctx, `
		INSERT INTO transactions (id, amount, origin_account_id, destination_account_id, type, status, annotation, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING created_at, updated_at
	`, transfer.ID, transfer.Amount, transfer.OriginAccountID, transfer.DestinationAccountID,
		transfer.Type, transfer.Status, transfer.Annotation)
	if err := row.Scan(&transfer.CreatedAt, &transfer.UpdatedAt); err != nil {
		return fmt.Errorf("insert transaction record: %w", err)
	}

	return dbtx.Commit(ctx)
}

const transactionColumns = "id, amount, origin_account_id, destination_account_id, type, status, annotation, created_at, updated_at"

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var tx domain.Transaction
	err := row.Scan(
		&tx.ID, &tx.Amount, &tx.OriginAccountID, &tx.DestinationAccountID,
		&tx.Type, &tx.Status, &tx.Annotation, &tx.CreatedAt, &tx.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTransactionNotFound
		}
		return nil, err
	}
	return &tx, nil
}

// FindTransactionByID retrieves a transaction by its identifier.
func (r *PostgresRepository) FindTransactionByID(ctx context.Context, transactionID uuid.UUID) (*domain.Transaction, error) {
	query := "SELECT " + transactionColumns + " FROM transactions WHERE id = $1"
	return scanTransaction(r.db.QueryRow(ctx, query, transactionID))
}

func (r *PostgresRepository) queryTransactions(ctx context.Context, query string, args ...any) ([]domain.Transaction, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transactions []domain.Transaction
	for rows.Next() {
		var tx domain.Transaction
		if err := rows.Scan(
			&tx.ID, &tx.Amount, &tx.OriginAccountID, &tx.DestinationAccountID,
			&tx.Type, &tx.Status, &tx.Annotation, &tx.CreatedAt, &tx.UpdatedAt,
		); err != nil {
			return nil, err
		}
		transactions = append(transactions, tx)
	}
	return transactions, rows.Err()
}

// FindTransactionsByAccountID retrieves all transactions where the account is
// origin or destination, newest first.
func (r *PostgresRepository) FindTransactionsByAccountID(ctx context.Context, accountID uuid.UUID) ([]domain.Transaction, error) {
	query := "SELECT " + transactionColumns + ` FROM transactions
		WHERE origin_account_id = $1 OR destination_account_id = $1
		ORDER BY created_at DESC`
	return r.queryTransactions(ctx, query, accountID)
}

// FindTransactionsByAccountIDAndDateBetween retrieves the account's
// transactions inside [start, end], oldest first for statement rendering.
func (r *PostgresRepository) FindTransactionsByAccountIDAndDateBetween(ctx context.Context, accountID uuid.UUID, start, end time.Time) ([]domain.Transaction, error) {
	query := "SELECT " + transactionColumns + ` FROM transactions
		WHERE (origin_account_id = $1 OR destination_account_id = $1)
		  AND created_at >= $2 AND created_at <= $3
		ORDER BY created_at`
	return r.queryTransactions(ctx, query, accountID, start, end)
}

// SumTransactionTotals computes incoming and outgoing totals for an account
// over a date range in one pass. Statement reads run at the default isolation
// level; the live balance is read separately and is explicitly not a
// snapshot.
func (r *PostgresRepository) SumTransactionTotals(ctx context.Context, accountID uuid.UUID, start, end time.Time) (int64, int64, error) {
	var incoming, outgoing int64
	query := `
		SELECT
			COALESCE(SUM(amount) FILTER (WHERE destination_account_id = $1), 0),
			COALESCE(SUM(amount) FILTER (WHERE origin_account_id = $1), 0)
		FROM transactions
		WHERE (origin_account_id = $1 OR destination_account_id = $1)
		  AND created_at >= $2 AND created_at <= $3
	`
	if err := r.db.QueryRow(ctx, query, accountID, start, end).Scan(&incoming, &outgoing); err != nil {
		return 0, 0, err
	}
	return incoming, outgoing, nil
}

// UpdateTransactionMetadata applies a metadata-only correction to a persisted
// transaction. Amounts and account references are immutable; this never
// re-runs balance effects.
func (r *PostgresRepository) UpdateTransactionMetadata(ctx context.Context, transactionID uuid.UUID, params UpdateTransactionMetadataParams) error {
	query := `
		UPDATE transactions
		SET status = COALESCE($2, status),
		    annotation = COALESCE($3, annotation),
		    updated_at = NOW()
		WHERE id = $1
	`
	result, err := r.db.Exec(ctx, query, transactionID, params.Status, params.Annotation)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrTransactionNotFound
	}
	return nil
}

const loanColumns = "id, account_id, principal, interest_rate, installments, paid_installments, installment_value, status, created_at, updated_at"

func scanLoan(row pgx.Row) (*domain.Loan, error) {
	var (
		loan    domain.Loan
		rateStr *string
	)
	err := row.Scan(
		&loan.ID, &loan.AccountID, &loan.Principal, &rateStr,
		&loan.Installments, &loan.PaidInstallments, &loan.InstallmentValue,
		&loan.Status, &loan.CreatedAt, &loan.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrLoanNotFound
		}
		return nil, err
	}
	if rateStr != nil {
		rate, err := decimal.NewFromString(*rateStr)
		if err != nil {
			return nil, fmt.Errorf("parse stored interest rate: %w", err)
		}
		loan.InterestRate = &rate
	}
	return &loan, nil
}

// CreateLoan inserts a new PENDING loan. No ledger effect.
func (r *PostgresRepository) CreateLoan(ctx context.Context, loan *domain.Loan) error {
	query := `
		INSERT INTO loans (id, account_id, principal, installments, paid_installments, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query,
		loan.ID, loan.AccountID, loan.Principal,
		loan.Installments, loan.PaidInstallments, loan.Status,
	)
	return err
}

// FindLoanByID retrieves a loan by its identifier.
func (r *PostgresRepository) FindLoanByID(ctx context.Context, loanID uuid.UUID) (*domain.Loan, error) {
	query := "SELECT " + loanColumns + " FROM loans WHERE id = $1"
	return scanLoan(r.db.QueryRow(ctx, query, loanID))
}

// FindLoansByAccountID retrieves all loans taken against an account.
func (r *PostgresRepository) FindLoansByAccountID(ctx context.Context, accountID uuid.UUID) ([]domain.Loan, error) {
	query := "SELECT " + loanColumns + " FROM loans WHERE account_id = $1 ORDER BY created_at DESC"
	rows, err := r.db.Query(ctx, query, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var loans []domain.Loan
	for rows.Next() {
		loan, err := scanLoan(rows)
		if err != nil {
			return nil, err
		}
		loans = append(loans, *loan)
	}
	return loans, rows.Err()
}

// DisburseLoan approves a pending loan and credits the principal to its
// account as one atomic unit. The loan row is locked first so a concurrent
// decision on the same loan cannot double-disburse.
func (r *PostgresRepository) DisburseLoan(ctx context.Context, loanID uuid.UUID, rate decimal.Decimal, installmentValue int64) (*domain.Loan, error) {
	dbtx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin disburse tx: %w", err)
	}
	defer dbtx.Rollback(ctx)

	var (
		accountID uuid.UUID
		status    domain.LoanStatus
		principal int64
	)
	err = dbtx.QueryRow(ctx,
		`SELECT account_id, status, principal FROM loans WHERE id = $1 FOR UPDATE`,
		loanID,
	).Scan(&accountID, &status, &principal)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrLoanNotFound
		}
		return nil, err
	}
	if status != domain.LoanStatusPending {
		return nil, ErrInvalidLoanState
	}

	locked, err := lockAccounts(ctx, dbtx, accountID)
	if err != nil {
		return nil, err
	}
	if locked[accountID].status != domain.AccountStatusActive {
		return nil, ErrAccountInactive
	}

	if _, err := dbtx.Exec(ctx,
		`UPDATE accounts SET balance = balance + $1, updated_at = NOW() WHERE id = $2`,
		principal, accountID,
	); err != nil {
		return nil, fmt.Errorf("credit loan disbursement: %w", err)
	}

	loan, err := scanLoan(dbtx.QueryRow(ctx, `
		UPDATE loans
		SET status = $2, interest_rate = $3, installment_value = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING `+loanColumns,
		loanID, domain.LoanStatusApproved, rate.String(), installmentValue,
	))
	if err != nil {
		return nil, err
	}

	if err := dbtx.Commit(ctx); err != nil {
		return nil, err
	}
	return loan, nil
}

// RejectLoan transitions a pending loan to REJECTED. No ledger effect.
func (r *PostgresRepository) RejectLoan(ctx context.Context, loanID uuid.UUID) (*domain.Loan, error) {
	loan, err := scanLoan(r.db.QueryRow(ctx, `
		UPDATE loans
		SET status = $2, updated_at = NOW()
		WHERE id = $1 AND status = $3
		RETURNING `+loanColumns,
		loanID, domain.LoanStatusRejected, domain.LoanStatusPending,
	))
	if errors.Is(err, ErrLoanNotFound) {
		// Distinguish a missing loan from one in the wrong state.
		if _, findErr := r.FindLoanByID(ctx, loanID); findErr != nil {
			return nil, findErr
		}
		return nil, ErrInvalidLoanState
	}
	return loan, err
}

// PayLoanInstallment debits one installment from the loan's account and
// increments the paid counter in a single atomic unit, transitioning the loan
// to PAID when the final installment settles.
func (r *PostgresRepository) PayLoanInstallment(ctx context.Context, loanID uuid.UUID) (*domain.Loan, error) {
	dbtx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin installment tx: %w", err)
	}
	defer dbtx.Rollback(ctx)

	var (
		accountID        uuid.UUID
		status           domain.LoanStatus
		installments     int
		paidInstallments int
		installmentValue *int64
	)
	err = dbtx.QueryRow(ctx, `
		SELECT account_id, status, installments, paid_installments, installment_value
		FROM loans WHERE id = $1 FOR UPDATE
	`, loanID).Scan(&accountID, &status, &installments, &paidInstallments, &installmentValue)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrLoanNotFound
		}
		return nil, err
	}
	if status != domain.LoanStatusApproved || installmentValue == nil {
		return nil, ErrInvalidLoanState
	}

	locked, err := lockAccounts(ctx, dbtx, accountID)
	if err != nil {
		return nil, err
	}
	if locked[accountID].status != domain.AccountStatusActive {
		return nil, ErrAccountInactive
	}
	if locked[accountID].balance < *installmentValue {
		return nil, ErrInsufficientFunds
	}

	if _, err := dbtx.Exec(ctx,
		`UPDATE accounts SET balance = balance - $1, updated_at = NOW() WHERE id = $2`,
		*installmentValue, accountID,
	); err != nil {
		return nil, fmt.Errorf("debit installment: %w", err)
	}

	newStatus := domain.LoanStatusApproved
	if paidInstallments+1 == installments {
		newStatus = domain.LoanStatusPaid
	}
	loan, err := scanLoan(dbtx.QueryRow(ctx, `
		UPDATE loans
		SET paid_installments = paid_installments + 1, status = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING `+loanColumns,
		loanID, newStatus,
	))
	if err != nil {
		return nil, err
	}

	if err := dbtx.Commit(ctx); err != nil {
		return nil, err
	}
	return loan, nil
}

// DeleteLoan hard-deletes a loan row. State restrictions are enforced by the
// loan engine before this is called.
func (r *PostgresRepository) DeleteLoan(ctx context.Context, loanID uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM loans WHERE id = $1`, loanID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrLoanNotFound
	}
	return nil
}

const statementColumns = "id, account_id, start_date, end_date, type, status, generated_at, updated_at"

func scanStatement(row pgx.Row) (*domain.BankStatement, error) {
	var st domain.BankStatement
	err := row.Scan(
		&st.ID, &st.AccountID, &st.StartDate, &st.EndDate,
		&st.Type, &st.Status, &st.GeneratedAt, &st.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrStatementNotFound
		}
		return nil, err
	}
	return &st, nil
}

// CreateStatement inserts a new statement record.
func (r *PostgresRepository) CreateStatement(ctx context.Context, statement *domain.BankStatement) error {
	query := `
		INSERT INTO bank_statements (id, account_id, start_date, end_date, type, status, generated_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING generated_at, updated_at
	`
	return r.db.QueryRow(ctx, query,
		statement.ID, statement.AccountID, statement.StartDate, statement.EndDate,
		statement.Type, statement.Status,
	).Scan(&statement.GeneratedAt, &statement.UpdatedAt)
}

// FindStatementByID retrieves a statement by its identifier.
func (r *PostgresRepository) FindStatementByID(ctx context.Context, statementID uuid.UUID) (*domain.BankStatement, error) {
	query := "SELECT " + statementColumns + " FROM bank_statements WHERE id = $1"
	return scanStatement(r.db.QueryRow(ctx, query, statementID))
}

func (r *PostgresRepository) queryStatements(ctx context.Context, query string, args ...any) ([]domain.BankStatement, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var statements []domain.BankStatement
	for rows.Next() {
		st, err := scanStatement(rows)
		if err != nil {
			return nil, err
		}
		statements = append(statements, *st)
	}
	return statements, rows.Err()
}

// FindStatementsByAccountID retrieves all statements for an account.
func (r *PostgresRepository) FindStatementsByAccountID(ctx context.Context, accountID uuid.UUID) ([]domain.BankStatement, error) {
	query := "SELECT " + statementColumns + " FROM bank_statements WHERE account_id = $1 ORDER BY generated_at DESC"
	return r.queryStatements(ctx, query, accountID)
}

// FindStatementsByAccountIDAndStatus retrieves the account's statements in a
// given status.
func (r *PostgresRepository) FindStatementsByAccountIDAndStatus(ctx context.Context, accountID uuid.UUID, status domain.StatementStatus) ([]domain.BankStatement, error) {
	query := "SELECT " + statementColumns + " FROM bank_statements WHERE account_id = $1 AND status = $2 ORDER BY generated_at DESC"
	return r.queryStatements(ctx, query, accountID, status)
}

// UpdateStatementStatus updates the status of a statement.
func (r *PostgresRepository) UpdateStatementStatus(ctx context.Context, statementID uuid.UUID, status domain.StatementStatus) error {
	result, err := r.db.Exec(ctx,
		`UPDATE bank_statements SET status = $2, updated_at = NOW() WHERE id = $1`,
		statementID, status,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrStatementNotFound
	}
	return nil
}

// DeleteStatement removes a statement record.
func (r *PostgresRepository) DeleteStatement(ctx context.Context, statementID uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM bank_statements WHERE id = $1`, statementID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrStatementNotFound
	}
	return nil
}
