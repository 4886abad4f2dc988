package app

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/digibank/ledger-service/internal/domain"
	"github.com/digibank/ledger-service/internal/store"
)

type loanRepoStub struct {
	store.Repository

	accounts map[uuid.UUID]*domain.Account
	loans    map[uuid.UUID]*domain.Loan

	createdLoan   *domain.Loan
	deletedLoanID uuid.UUID
}

func (s *loanRepoStub) FindAccountByID(ctx context.Context, accountID uuid.UUID) (*domain.Account, error) {
	account, ok := s.accounts[accountID]
	if !ok {
		return nil, store.ErrAccountNotFound
	}
	return account, nil
}

func (s *loanRepoStub) CreateLoan(ctx context.Context, loan *domain.Loan) error {
	s.createdLoan = loan
	if s.loans == nil {
		s.loans = make(map[uuid.UUID]*domain.Loan)
	}
	s.loans[loan.ID] = loan
	return nil
}

func (s *loanRepoStub) FindLoanByID(ctx context.Context, loanID uuid.UUID) (*domain.Loan, error) {
	loan, ok := s.loans[loanID]
	if !ok {
		return nil, store.ErrLoanNotFound
	}
	return loan, nil
}

func (s *loanRepoStub) DisburseLoan(ctx context.Context, loanID uuid.UUID, rate decimal.Decimal, installmentValue int64) (*domain.Loan, error) {
	loan := s.loans[loanID]
	if loan.Status != domain.LoanStatusPending {
		return nil, store.ErrInvalidLoanState
	}
	loan.Status = domain.LoanStatusApproved
	loan.InterestRate = &rate
	loan.InstallmentValue = &installmentValue
	s.accounts[loan.AccountID].Balance += loan.Principal
	return loan, nil
}

func (s *loanRepoStub) RejectLoan(ctx context.Context, loanID uuid.UUID) (*domain.Loan, error) {
	loan := s.loans[loanID]
	if loan.Status != domain.LoanStatusPending {
		return nil, store.ErrInvalidLoanState
	}
	loan.Status = domain.LoanStatusRejected
	return loan, nil
}

func (s *loanRepoStub) PayLoanInstallment(ctx context.Context, loanID uuid.UUID) (*domain.Loan, error) {
	loan := s.loans[loanID]
	account := s.accounts[loan.AccountID]
	if account.Balance < *loan.InstallmentValue {
		return nil, store.ErrInsufficientFunds
	}
	account.Balance -= *loan.InstallmentValue
	loan.PaidInstallments++
	if loan.PaidInstallments == loan.Installments {
		loan.Status = domain.LoanStatusPaid
	}
	return loan, nil
}

func (s *loanRepoStub) DeleteLoan(ctx context.Context, loanID uuid.UUID) error {
	s.deletedLoanID = loanID
	delete(s.loans, loanID)
	return nil
}

func newLoanFixture() (*loanRepoStub, *publisherStub, *Service, domain.Actor, *domain.Account) {
	userID := uuid.New()
	account := &domain.Account{
		ID:      uuid.New(),
		UserID:  userID,
		Agency:  "0001",
		Number:  "33333333",
		Type:    domain.AccountTypeChecking,
		Balance: 100000,
		Status:  domain.AccountStatusActive,
	}
	repo := &loanRepoStub{
		accounts: map[uuid.UUID]*domain.Account{account.ID: account},
		loans:    make(map[uuid.UUID]*domain.Loan),
	}
	pub := &publisherStub{}
	svc := NewService(repo, pub, "0001", 0)
	return repo, pub, svc, domain.Actor{UserID: userID}, account
}

func seedLoan(repo *loanRepoStub, account *domain.Account, status domain.LoanStatus) *domain.Loan {
	loan := &domain.Loan{
		ID:           uuid.New(),
		AccountID:    account.ID,
		Principal:    500000,
		Installments: 12,
		Status:       status,
	}
	repo.loans[loan.ID] = loan
	return loan
}

func TestRequestLoan(t *testing.T) {
	t.Run("creates a pending loan with no ledger effect", func(t *testing.T) {
		repo, _, svc, actor, account := newLoanFixture()

		loan, err := svc.RequestLoan(context.Background(), actor, domain.LoanRequest{
			AccountID:    account.ID,
			Principal:    500000,
			Installments: 12,
		})
		if err != nil {
			t.Fatalf("expected request to succeed, got %v", err)
		}
		if loan.Status != domain.LoanStatusPending {
			t.Fatalf("expected status=PENDING, got %s", loan.Status)
		}
		if loan.InterestRate != nil || loan.InstallmentValue != nil {
			t.Fatal("expected rate and installment value unset before approval")
		}
		if account.Balance != 100000 {
			t.Fatalf("expected balance untouched, got %d", account.Balance)
		}
		if repo.createdLoan == nil {
			t.Fatal("expected loan to be persisted")
		}
	})

	t.Run("validation", func(t *testing.T) {
		repo, _, svc, actor, account := newLoanFixture()
		blocked := &domain.Account{ID: uuid.New(), UserID: actor.UserID, Status: domain.AccountStatusBlocked}
		repo.accounts[blocked.ID] = blocked
		stranger := domain.Actor{UserID: uuid.New()}

		tests := []struct {
			name    string
			actor   domain.Actor
			req     domain.LoanRequest
			wantErr error
		}{
			{
				name:    "zero principal",
				actor:   actor,
				req:     domain.LoanRequest{AccountID: account.ID, Principal: 0, Installments: 12},
				wantErr: ErrInvalidAmount,
			},
			{
				name:    "zero installments",
				actor:   actor,
				req:     domain.LoanRequest{AccountID: account.ID, Principal: 1000, Installments: 0},
				wantErr: ErrInvalidInstallments,
			},
			{
				name:    "inactive account",
				actor:   actor,
				req:     domain.LoanRequest{AccountID: blocked.ID, Principal: 1000, Installments: 12},
				wantErr: store.ErrAccountInactive,
			},
			{
				name:    "actor does not own account",
				actor:   stranger,
				req:     domain.LoanRequest{AccountID: account.ID, Principal: 1000, Installments: 12},
				wantErr: ErrForbidden,
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := svc.RequestLoan(context.Background(), tt.actor, tt.req)
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
			})
		}
	})
}

func TestDecideLoan_ApproveDisbursesAndSetsInstallment(t *testing.T) {
	repo, pub, svc, _, account := newLoanFixture()
	loan := seedLoan(repo, account, domain.LoanStatusPending)
	admin := domain.Actor{UserID: uuid.New(), Role: domain.RoleAdmin}
	rate := decimal.RequireFromString("0.10")

	approved, err := svc.DecideLoan(context.Background(), admin, loan.ID, domain.LoanDecisionRequest{
		Decision:     domain.LoanDecisionApproved,
		InterestRate: &rate,
	})
	if err != nil {
		t.Fatalf("expected approval to succeed, got %v", err)
	}
	if approved.Status != domain.LoanStatusApproved {
		t.Fatalf("expected status=APPROVED, got %s", approved.Status)
	}
	if approved.InstallmentValue == nil || *approved.InstallmentValue != 45833 {
		t.Fatalf("expected installment value=45833, got %v", approved.InstallmentValue)
	}
	if account.Balance != 600000 {
		t.Fatalf("expected principal credited, balance=600000, got %d", account.Balance)
	}
	if len(pub.published) != 1 || pub.published[0] != "loan.approved" {
		t.Fatalf("expected one loan.approved event, got %v", pub.published)
	}
}

func TestDecideLoan_Reject(t *testing.T) {
	repo, pub, svc, _, account := newLoanFixture()
	loan := seedLoan(repo, account, domain.LoanStatusPending)
	admin := domain.Actor{UserID: uuid.New(), Role: domain.RoleAdmin}

	rejected, err := svc.DecideLoan(context.Background(), admin, loan.ID, domain.LoanDecisionRequest{
		Decision: domain.LoanDecisionRejected,
	})
	if err != nil {
		t.Fatalf("expected rejection to succeed, got %v", err)
	}
	if rejected.Status != domain.LoanStatusRejected {
		t.Fatalf("expected status=REJECTED, got %s", rejected.Status)
	}
	if account.Balance != 100000 {
		t.Fatalf("expected balance untouched, got %d", account.Balance)
	}
	if len(pub.published) != 1 || pub.published[0] != "loan.rejected" {
		t.Fatalf("expected one loan.rejected event, got %v", pub.published)
	}
}

func TestDecideLoan_Validation(t *testing.T) {
	repo, _, svc, actor, account := newLoanFixture()
	pending := seedLoan(repo, account, domain.LoanStatusPending)
	alreadyApproved := seedLoan(repo, account, domain.LoanStatusApproved)
	admin := domain.Actor{UserID: uuid.New(), Role: domain.RoleAdmin}
	rate := decimal.RequireFromString("0.10")
	negative := decimal.RequireFromString("-0.01")

	tests := []struct {
		name    string
		actor   domain.Actor
		loanID  uuid.UUID
		req     domain.LoanDecisionRequest
		wantErr error
	}{
		{
			name:    "non-admin cannot decide",
			actor:   actor,
			loanID:  pending.ID,
			req:     domain.LoanDecisionRequest{Decision: domain.LoanDecisionApproved, InterestRate: &rate},
			wantErr: ErrAdminRequired,
		},
		{
			name:    "already approved loan",
			actor:   admin,
			loanID:  alreadyApproved.ID,
			req:     domain.LoanDecisionRequest{Decision: domain.LoanDecisionRejected},
			wantErr: store.ErrInvalidLoanState,
		},
		{
			name:    "approval without interest rate",
			actor:   admin,
			loanID:  pending.ID,
			req:     domain.LoanDecisionRequest{Decision: domain.LoanDecisionApproved},
			wantErr: ErrInterestRateRequired,
		},
		{
			name:    "approval with negative interest rate",
			actor:   admin,
			loanID:  pending.ID,
			req:     domain.LoanDecisionRequest{Decision: domain.LoanDecisionApproved, InterestRate: &negative},
			wantErr: ErrInterestRateRequired,
		},
		{
			name:    "unknown decision",
			actor:   admin,
			loanID:  pending.ID,
			req:     domain.LoanDecisionRequest{Decision: "MAYBE"},
			wantErr: ErrInvalidDecision,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.DecideLoan(context.Background(), tt.actor, tt.loanID, tt.req)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestPayInstallment(t *testing.T) {
	approvedLoan := func(repo *loanRepoStub, account *domain.Account, paid int) *domain.Loan {
		loan := seedLoan(repo, account, domain.LoanStatusApproved)
		value := int64(45833)
		rate := decimal.RequireFromString("0.10")
		loan.InterestRate = &rate
		loan.InstallmentValue = &value
		loan.PaidInstallments = paid
		return loan
	}

	t.Run("debits one installment", func(t *testing.T) {
		repo, pub, svc, actor, account := newLoanFixture()
		loan := approvedLoan(repo, account, 0)

		paid, err := svc.PayInstallment(context.Background(), actor, loan.ID)
		if err != nil {
			t.Fatalf("expected payment to succeed, got %v", err)
		}
		if paid.PaidInstallments != 1 {
			t.Fatalf("expected paid=1, got %d", paid.PaidInstallments)
		}
		if account.Balance != 100000-45833 {
			t.Fatalf("expected balance=%d, got %d", 100000-45833, account.Balance)
		}
		if paid.Status != domain.LoanStatusApproved {
			t.Fatalf("expected loan still APPROVED, got %s", paid.Status)
		}
		if len(pub.published) != 1 || pub.published[0] != "loan.installment.paid" {
			t.Fatalf("expected one loan.installment.paid event, got %v", pub.published)
		}
	})

	t.Run("final installment transitions to paid", func(t *testing.T) {
		repo, pub, svc, actor, account := newLoanFixture()
		loan := approvedLoan(repo, account, 11)

		paid, err := svc.PayInstallment(context.Background(), actor, loan.ID)
		if err != nil {
			t.Fatalf("expected payment to succeed, got %v", err)
		}
		if paid.Status != domain.LoanStatusPaid {
			t.Fatalf("expected status=PAID, got %s", paid.Status)
		}
		if paid.PaidInstallments != paid.Installments {
			t.Fatalf("expected paid=%d, got %d", paid.Installments, paid.PaidInstallments)
		}
		if len(pub.published) != 1 || pub.published[0] != "loan.paid" {
			t.Fatalf("expected one loan.paid event, got %v", pub.published)
		}
	})

	t.Run("non-approved loan cannot be paid", func(t *testing.T) {
		repo, _, svc, actor, account := newLoanFixture()
		loan := seedLoan(repo, account, domain.LoanStatusPending)

		_, err := svc.PayInstallment(context.Background(), actor, loan.ID)
		if !errors.Is(err, ErrLoanNotApproved) {
			t.Fatalf("expected ErrLoanNotApproved, got %v", err)
		}
	})

	t.Run("insufficient funds", func(t *testing.T) {
		repo, _, svc, actor, account := newLoanFixture()
		loan := approvedLoan(repo, account, 0)
		account.Balance = 100

		_, err := svc.PayInstallment(context.Background(), actor, loan.ID)
		if !errors.Is(err, store.ErrInsufficientFunds) {
			t.Fatalf("expected ErrInsufficientFunds, got %v", err)
		}
		if account.Balance != 100 {
			t.Fatalf("expected balance untouched, got %d", account.Balance)
		}
	})

	t.Run("non-owner is forbidden", func(t *testing.T) {
		repo, _, svc, _, account := newLoanFixture()
		loan := approvedLoan(repo, account, 0)
		stranger := domain.Actor{UserID: uuid.New()}

		_, err := svc.PayInstallment(context.Background(), stranger, loan.ID)
		if !errors.Is(err, ErrForbidden) {
			t.Fatalf("expected ErrForbidden, got %v", err)
		}
	})
}

func TestDeleteLoan(t *testing.T) {
	tests := []struct {
		name    string
		status  domain.LoanStatus
		wantErr error
	}{
		{name: "pending loan can be deleted", status: domain.LoanStatusPending, wantErr: nil},
		{name: "rejected loan can be deleted", status: domain.LoanStatusRejected, wantErr: nil},
		{name: "approved loan is a live receivable", status: domain.LoanStatusApproved, wantErr: ErrLoanNotDeletable},
		{name: "paid loan is a closed contract", status: domain.LoanStatusPaid, wantErr: ErrLoanNotDeletable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, _, svc, actor, account := newLoanFixture()
			loan := seedLoan(repo, account, tt.status)

			err := svc.DeleteLoan(context.Background(), actor, loan.ID)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("expected deletion to succeed, got %v", err)
				}
				if repo.deletedLoanID != loan.ID {
					t.Fatalf("expected repository deletion of %v", loan.ID)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}

	t.Run("non-owner is forbidden", func(t *testing.T) {
		repo, _, svc, _, account := newLoanFixture()
		loan := seedLoan(repo, account, domain.LoanStatusPending)
		stranger := domain.Actor{UserID: uuid.New()}

		if err := svc.DeleteLoan(context.Background(), stranger, loan.ID); !errors.Is(err, ErrForbidden) {
			t.Fatalf("expected ErrForbidden, got %v", err)
		}
	})
}
