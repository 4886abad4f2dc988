/**
 * @description
 * This file defines the `Service` struct at the heart of the ledger service
 * and its account-facing operations. The Service orchestrates the engines
 * (transfers, loans, statements) over the persistence repository and the
 * notification producer.
 *
 * Key features:
 * - Every operation re-validates resource ownership against the requesting
 *   actor, independent of transport-layer authorization.
 * - Notification publication is fire-and-forget: a failed publish is logged
 *   and never rolls back a committed ledger operation.
 *
 * @dependencies
 * - internal/domain, internal/store: For domain models and data access.
 * - pkg/rabbitmq: For notification event publication.
 */

package app

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/digibank/ledger-service/internal/domain"
	"github.com/digibank/ledger-service/internal/store"
	"github.com/digibank/ledger-service/pkg/rabbitmq"
)

const accountNumberAttempts = 5

// Service provides the core business logic of the ledger service.
type Service struct {
	repo          store.Repository
	events        rabbitmq.Publisher
	limiter       TransferRateLimiter
	defaultAgency string

	transferRateLimitPerMinute int
}

// NewService creates a new ledger service instance.
func NewService(repo store.Repository, events rabbitmq.Publisher, defaultAgency string, transferRateLimitPerMinute int) *Service {
	return &Service{
		repo:                       repo,
		events:                     events,
		defaultAgency:              defaultAgency,
		transferRateLimitPerMinute: transferRateLimitPerMinute,
	}
}

// SetTransferRateLimiter installs a distributed rate limiter for transfer
// initiation. Without one, transfers are not rate limited.
func (s *Service) SetTransferRateLimiter(limiter TransferRateLimiter) {
	s.limiter = limiter
}

// publish sends a notification event. Failures are logged and swallowed: the
// originating ledger operation has already committed and must not fail.
func (s *Service) publish(ctx context.Context, routingKey string, body interface{}) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, routingKey, body); err != nil {
		log.Printf("level=warn component=service msg=\"notification publish failed\" routing_key=%s err=%v", routingKey, err)
	}
}

// OpenAccount creates a new ACTIVE account for the requesting user with a
// zero balance and a generated account number.
func (s *Service) OpenAccount(ctx context.Context, actor domain.Actor, req domain.OpenAccountRequest) (*domain.Account, error) {
	if req.Type != domain.AccountTypeChecking && req.Type != domain.AccountTypeSavings {
		return nil, ErrInvalidAccountType
	}

	var account *domain.Account
	for attempt := 0; attempt < accountNumberAttempts; attempt++ {
		candidate := &domain.Account{
			ID:      uuid.New(),
			UserID:  actor.UserID,
			Agency:  s.defaultAgency,
			Number:  generateAccountNumber(),
			Type:    req.Type,
			Balance: 0,
			Status:  domain.AccountStatusActive,
		}
		err := s.repo.CreateAccount(ctx, candidate)
		if err == nil {
			account = candidate
			break
		}
		if !errors.Is(err, store.ErrAccountNumberTaken) {
			return nil, fmt.Errorf("create account: %w", err)
		}
	}
	if account == nil {
		return nil, fmt.Errorf("create account: could not allocate a unique account number")
	}

	account, err := s.repo.FindAccountByID(ctx, account.ID)
	if err != nil {
		return nil, err
	}
	return account, nil
}

// GetAccount returns an account after verifying the actor owns it. Admins may
// inspect any account.
func (s *Service) GetAccount(ctx context.Context, actor domain.Actor, accountID uuid.UUID) (*domain.Account, error) {
	account, err := s.repo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account.UserID != actor.UserID && !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	return account, nil
}

// ListAccounts returns all accounts owned by the requesting user.
func (s *Service) ListAccounts(ctx context.Context, actor domain.Actor) ([]domain.Account, error) {
	return s.repo.FindAccountsByUserID(ctx, actor.UserID)
}

// CloseAccount closes an owned account. The account's balance must be exactly
// zero; the check and the status change are atomic in the repository.
func (s *Service) CloseAccount(ctx context.Context, actor domain.Actor, accountID uuid.UUID) error {
	account, err := s.repo.FindAccountByID(ctx, accountID)
	if err != nil {
		return err
	}
	if account.UserID != actor.UserID {
		return ErrForbidden
	}
	return s.repo.CloseAccount(ctx, accountID)
}

// generateAccountNumber derives an 8-digit account number from a fresh UUID.
// Collisions are handled by the unique constraint plus retry in OpenAccount.
func generateAccountNumber() string {
	id := uuid.New()
	n := binary.BigEndian.Uint32(id[0:4]) % 100_000_000
	return fmt.Sprintf("%08d", n)
}
