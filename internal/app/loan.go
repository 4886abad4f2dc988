/**
 * @description
 * This file contains the loan engine: origination, the admin decision with
 * interest application and disbursement, installment repayment against the
 * ledger, and deletion.
 *
 * State machine: PENDING -> APPROVED -> PAID, PENDING -> REJECTED.
 * REJECTED and PAID are terminal.
 */

package app

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/digibank/ledger-service/internal/domain"
	"github.com/digibank/ledger-service/internal/store"
	"github.com/digibank/ledger-service/pkg/rabbitmq"
)

// RequestLoan originates a PENDING loan against an owned account. There is no
// ledger effect until the loan is approved.
func (s *Service) RequestLoan(ctx context.Context, actor domain.Actor, req domain.LoanRequest) (*domain.Loan, error) {
	if req.Principal <= 0 {
		return nil, ErrInvalidAmount
	}
	if req.Installments < 1 {
		return nil, ErrInvalidInstallments
	}

	account, err := s.repo.FindAccountByID(ctx, req.AccountID)
	if err != nil {
		return nil, err
	}
	if account.UserID != actor.UserID {
		return nil, ErrForbidden
	}
	if account.Status != domain.AccountStatusActive {
		return nil, store.ErrAccountInactive
	}

	loan := &domain.Loan{
		ID:               uuid.New(),
		AccountID:        account.ID,
		Principal:        req.Principal,
		Installments:     req.Installments,
		PaidInstallments: 0,
		Status:           domain.LoanStatusPending,
	}
	if err := s.repo.CreateLoan(ctx, loan); err != nil {
		return nil, err
	}
	return s.repo.FindLoanByID(ctx, loan.ID)
}

// DecideLoan is the admin approve/reject operation on a pending loan.
//
// APPROVED requires a non-negative interest rate; the engine computes the
// amortized installment value (half-up to cents) and the repository credits
// the principal to the account atomically with the state transition.
// REJECTED has no ledger effect. Any other decision is invalid data.
func (s *Service) DecideLoan(ctx context.Context, actor domain.Actor, loanID uuid.UUID, req domain.LoanDecisionRequest) (*domain.Loan, error) {
	// Transport-layer gating aside, the engine enforces the capability
	// itself so it stays correct when invoked directly.
	if !actor.IsAdmin() {
		return nil, ErrAdminRequired
	}

	loan, err := s.repo.FindLoanByID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	if loan.Status != domain.LoanStatusPending {
		return nil, store.ErrInvalidLoanState
	}

	switch req.Decision {
	case domain.LoanDecisionApproved:
		if req.InterestRate == nil || req.InterestRate.IsNegative() {
			return nil, ErrInterestRateRequired
		}
		value := installmentValue(loan.Principal, *req.InterestRate, loan.Installments)
		approved, err := s.repo.DisburseLoan(ctx, loanID, *req.InterestRate, value)
		if err != nil {
			return nil, err
		}
		s.publishLoanEvent(ctx, rabbitmq.RoutingKeyLoanApproved, approved)
		return approved, nil

	case domain.LoanDecisionRejected:
		rejected, err := s.repo.RejectLoan(ctx, loanID)
		if err != nil {
			return nil, err
		}
		s.publishLoanEvent(ctx, rabbitmq.RoutingKeyLoanRejected, rejected)
		return rejected, nil

	default:
		return nil, ErrInvalidDecision
	}
}

// PayInstallment debits one installment value from the loan's account and
// increments the paid counter; debit and increment commit together or not at
// all. Paying the final installment transitions the loan to PAID.
func (s *Service) PayInstallment(ctx context.Context, actor domain.Actor, loanID uuid.UUID) (*domain.Loan, error) {
	loan, err := s.repo.FindLoanByID(ctx, loanID)
	if err != nil {
		return nil, err
	}

	account, err := s.repo.FindAccountByID(ctx, loan.AccountID)
	if err != nil {
		return nil, err
	}
	if account.UserID != actor.UserID {
		return nil, ErrForbidden
	}
	if loan.Status != domain.LoanStatusApproved || loan.InstallmentValue == nil {
		return nil, ErrLoanNotApproved
	}
	// Early rejection only; the authoritative check runs under the
	// repository's row locks.
	if account.Balance < *loan.InstallmentValue {
		return nil, store.ErrInsufficientFunds
	}

	paid, err := s.repo.PayLoanInstallment(ctx, loanID)
	if err != nil {
		return nil, err
	}

	routingKey := rabbitmq.RoutingKeyLoanInstallmentPaid
	if paid.Status == domain.LoanStatusPaid {
		routingKey = rabbitmq.RoutingKeyLoanPaid
	}
	s.publishLoanEvent(ctx, routingKey, paid)

	return paid, nil
}

// GetLoan returns a loan after verifying the actor owns the loan's account.
// Admins may inspect any loan.
func (s *Service) GetLoan(ctx context.Context, actor domain.Actor, loanID uuid.UUID) (*domain.Loan, error) {
	loan, err := s.repo.FindLoanByID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeLoanAccess(ctx, actor, loan); err != nil {
		return nil, err
	}
	return loan, nil
}

// ListLoans returns all loans against an owned account.
func (s *Service) ListLoans(ctx context.Context, actor domain.Actor, accountID uuid.UUID) ([]domain.Loan, error) {
	account, err := s.repo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account.UserID != actor.UserID && !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	return s.repo.FindLoansByAccountID(ctx, accountID)
}

// DeleteLoan hard-deletes a loan. Only PENDING and REJECTED loans can be
// deleted: an approved loan is a live receivable and a paid one is a closed
// contract, and removing either would corrupt the repayment history.
func (s *Service) DeleteLoan(ctx context.Context, actor domain.Actor, loanID uuid.UUID) error {
	loan, err := s.repo.FindLoanByID(ctx, loanID)
	if err != nil {
		return err
	}
	if err := s.authorizeLoanAccess(ctx, actor, loan); err != nil {
		return err
	}
	if loan.Status != domain.LoanStatusPending && loan.Status != domain.LoanStatusRejected {
		return ErrLoanNotDeletable
	}
	return s.repo.DeleteLoan(ctx, loanID)
}

func (s *Service) authorizeLoanAccess(ctx context.Context, actor domain.Actor, loan *domain.Loan) error {
	if actor.IsAdmin() {
		return nil
	}
	account, err := s.repo.FindAccountByID(ctx, loan.AccountID)
	if err != nil {
		return err
	}
	if account.UserID != actor.UserID {
		return ErrForbidden
	}
	return nil
}

func (s *Service) publishLoanEvent(ctx context.Context, routingKey string, loan *domain.Loan) {
	event := rabbitmq.LoanNotification{
		LoanID:           loan.ID,
		AccountID:        loan.AccountID,
		Status:           string(loan.Status),
		Principal:        loan.Principal,
		PaidInstallments: loan.PaidInstallments,
		Installments:     loan.Installments,
		Timestamp:        time.Now().UTC(),
	}
	if loan.InstallmentValue != nil {
		event.InstallmentValue = *loan.InstallmentValue
	}
	s.publish(ctx, routingKey, event)
}
