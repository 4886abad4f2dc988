/**
 * @description
 * This file contains the statement aggregator. A statement is a persisted
 * record referencing a bounded date range; incoming/outgoing totals are
 * recomputed from the transaction history on each generation, and the
 * reported balance is the account's live balance rather than a point-in-time
 * reconstruction.
 */

package app

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/digibank/ledger-service/internal/domain"
)

// GenerateStatement validates the date range, persists a GENERATED statement
// record and returns it with the recomputed totals and the transactions in
// range.
func (s *Service) GenerateStatement(ctx context.Context, actor domain.Actor, req domain.StatementRequest) (*domain.StatementResult, error) {
	if req.StartDate.After(req.EndDate) {
		return nil, ErrStartAfterEnd
	}
	if req.EndDate.After(time.Now()) {
		return nil, ErrEndInFuture
	}
	if req.EndDate.After(req.StartDate.AddDate(1, 0, 0)) {
		return nil, ErrRangeTooWide
	}
	statementType := req.Type
	if statementType == "" {
		statementType = domain.StatementTypeCustom
	}
	if statementType != domain.StatementTypeMonthly && statementType != domain.StatementTypeCustom {
		return nil, ErrInvalidStatementType
	}

	account, err := s.repo.FindAccountByID(ctx, req.AccountID)
	if err != nil {
		return nil, err
	}
	if account.UserID != actor.UserID {
		return nil, ErrForbidden
	}

	statement := &domain.BankStatement{
		ID:        uuid.New(),
		AccountID: account.ID,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Type:      statementType,
		Status:    domain.StatementStatusGenerated,
	}
	if err := s.repo.CreateStatement(ctx, statement); err != nil {
		return nil, err
	}

	incoming, outgoing, err := s.repo.SumTransactionTotals(ctx, account.ID, req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}
	transactions, err := s.repo.FindTransactionsByAccountIDAndDateBetween(ctx, account.ID, req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	return &domain.StatementResult{
		Statement:      *statement,
		TotalIncoming:  incoming,
		TotalOutgoing:  outgoing,
		CurrentBalance: account.Balance,
		Transactions:   transactions,
	}, nil
}

// ListStatements returns all statements of an owned account.
func (s *Service) ListStatements(ctx context.Context, actor domain.Actor, accountID uuid.UUID) ([]domain.BankStatement, error) {
	if err := s.authorizeAccountAccess(ctx, actor, accountID); err != nil {
		return nil, err
	}
	return s.repo.FindStatementsByAccountID(ctx, accountID)
}

// ListStatementsByStatus returns the owned account's statements in a given
// status.
func (s *Service) ListStatementsByStatus(ctx context.Context, actor domain.Actor, accountID uuid.UUID, status domain.StatementStatus) ([]domain.BankStatement, error) {
	if status != domain.StatementStatusGenerated && status != domain.StatementStatusViewed {
		return nil, ErrInvalidData
	}
	if err := s.authorizeAccountAccess(ctx, actor, accountID); err != nil {
		return nil, err
	}
	return s.repo.FindStatementsByAccountIDAndStatus(ctx, accountID, status)
}

// UpdateStatementStatus moves a statement between GENERATED and VIEWED.
func (s *Service) UpdateStatementStatus(ctx context.Context, actor domain.Actor, statementID uuid.UUID, status domain.StatementStatus) (*domain.BankStatement, error) {
	if status != domain.StatementStatusGenerated && status != domain.StatementStatusViewed {
		return nil, ErrInvalidData
	}
	statement, err := s.repo.FindStatementByID(ctx, statementID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeAccountAccess(ctx, actor, statement.AccountID); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateStatementStatus(ctx, statementID, status); err != nil {
		return nil, err
	}
	return s.repo.FindStatementByID(ctx, statementID)
}

// DeleteStatement removes a statement record. Statements are derived views,
// so deletion has no ledger effect.
func (s *Service) DeleteStatement(ctx context.Context, actor domain.Actor, statementID uuid.UUID) error {
	statement, err := s.repo.FindStatementByID(ctx, statementID)
	if err != nil {
		return err
	}
	if err := s.authorizeAccountAccess(ctx, actor, statement.AccountID); err != nil {
		return err
	}
	return s.repo.DeleteStatement(ctx, statementID)
}

func (s *Service) authorizeAccountAccess(ctx context.Context, actor domain.Actor, accountID uuid.UUID) error {
	account, err := s.repo.FindAccountByID(ctx, accountID)
	if err != nil {
		return err
	}
	if account.UserID != actor.UserID && !actor.IsAdmin() {
		return ErrForbidden
	}
	return nil
}
