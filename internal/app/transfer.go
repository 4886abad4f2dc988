/**
 * @description
 * This file contains the transaction engine: money movement between two
 * accounts. A transfer debits the origin and credits the destination inside
 * one atomic repository operation; failure at any earlier step leaves both
 * balances untouched.
 */

package app

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/digibank/ledger-service/internal/domain"
	"github.com/digibank/ledger-service/internal/store"
	"github.com/digibank/ledger-service/pkg/rabbitmq"
)

// Transfer moves req.Amount cents from the actor's origin account to the
// destination selected by PIX key (PIX) or agency/account number (TED, DOC).
// On success the persisted transaction record is returned and both account
// holders are notified fire-and-forget.
func (s *Service) Transfer(ctx context.Context, actor domain.Actor, req domain.TransferRequest) (*domain.Transaction, error) {
	if req.Amount <= 0 {
		return nil, ErrInvalidAmount
	}
	switch req.Type {
	case domain.TransactionTypePix, domain.TransactionTypeTed, domain.TransactionTypeDoc:
	default:
		return nil, ErrInvalidTransferType
	}

	if err := s.consumeTransferRateLimit(ctx, actor); err != nil {
		return nil, err
	}

	origin, err := s.repo.FindAccountByID(ctx, req.OriginAccountID)
	if err != nil {
		return nil, err
	}
	if origin.UserID != actor.UserID {
		return nil, ErrForbidden
	}

	destination, err := s.resolveDestination(ctx, req)
	if err != nil {
		return nil, err
	}
	if destination.ID == origin.ID {
		return nil, ErrTransferToSelf
	}

	// Early rejection only; the authoritative balance check runs under the
	// repository's row locks.
	if origin.Balance < req.Amount {
		return nil, store.ErrInsufficientFunds
	}

	transfer := &domain.Transaction{
		ID:                   uuid.New(),
		Amount:               req.Amount,
		OriginAccountID:      origin.ID,
		DestinationAccountID: destination.ID,
		Type:                 req.Type,
		Status:               domain.TransactionStatusSuccess,
	}
	if err := s.repo.TransferFunds(ctx, transfer); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	s.publish(ctx, rabbitmq.RoutingKeyTransferCompleted, rabbitmq.TransferNotification{
		TransactionID:        transfer.ID,
		OriginUserID:         origin.UserID,
		DestinationUserID:    destination.UserID,
		OriginAccountID:      origin.ID,
		DestinationAccountID: destination.ID,
		Amount:               transfer.Amount,
		Timestamp:            now,
	})

	return transfer, nil
}

// resolveDestination picks the destination account from the request: a PIX
// key lookup for PIX transfers, a direct agency/account-number lookup for the
// other rails.
func (s *Service) resolveDestination(ctx context.Context, req domain.TransferRequest) (*domain.Account, error) {
	if req.Type == domain.TransactionTypePix {
		key := strings.TrimSpace(req.PixKey)
		if key == "" {
			return nil, ErrMissingDestination
		}
		return s.repo.ResolvePixKey(ctx, key)
	}

	agency := strings.TrimSpace(req.DestinationAgency)
	number := strings.TrimSpace(req.DestinationNumber)
	if agency == "" || number == "" {
		return nil, ErrMissingDestination
	}
	return s.repo.FindAccountByNumber(ctx, agency, number)
}

func (s *Service) consumeTransferRateLimit(ctx context.Context, actor domain.Actor) error {
	if s.limiter == nil || s.transferRateLimitPerMinute <= 0 {
		return nil
	}
	count, _, err := s.limiter.ConsumeRateLimit(ctx, "transfer", actor.UserID.String(), s.transferRateLimitPerMinute, time.Minute)
	if err != nil {
		// The limiter is protective infrastructure; its unavailability must
		// not block money movement.
		log.Printf("level=warn component=service msg=\"transfer rate limiter unavailable\" err=%v", err)
		return nil
	}
	if count > s.transferRateLimitPerMinute {
		return ErrTransferRateLimited
	}
	return nil
}

// GetTransaction returns a transaction visible to the actor: the actor must
// own the origin or the destination account.
func (s *Service) GetTransaction(ctx context.Context, actor domain.Actor, transactionID uuid.UUID) (*domain.Transaction, error) {
	tx, err := s.repo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeTransactionParty(ctx, actor, tx); err != nil {
		return nil, err
	}
	return tx, nil
}

// ListTransactions returns the transaction history of an owned account.
func (s *Service) ListTransactions(ctx context.Context, actor domain.Actor, accountID uuid.UUID) ([]domain.Transaction, error) {
	account, err := s.repo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account.UserID != actor.UserID && !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	return s.repo.FindTransactionsByAccountID(ctx, accountID)
}

// AnnotateTransaction applies a metadata-only correction (status and/or
// annotation) to a persisted transaction. This is a document-correction
// operation: it never re-runs balance effects and is not a reversal.
func (s *Service) AnnotateTransaction(ctx context.Context, actor domain.Actor, transactionID uuid.UUID, req domain.AnnotateTransactionRequest) (*domain.Transaction, error) {
	if req.Status == nil && req.Annotation == nil {
		return nil, ErrEmptyCorrection
	}

	tx, err := s.repo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeTransactionParty(ctx, actor, tx); err != nil {
		return nil, err
	}

	params := store.UpdateTransactionMetadataParams{
		Status:     req.Status,
		Annotation: req.Annotation,
	}
	if err := s.repo.UpdateTransactionMetadata(ctx, transactionID, params); err != nil {
		return nil, err
	}
	return s.repo.FindTransactionByID(ctx, transactionID)
}

func (s *Service) authorizeTransactionParty(ctx context.Context, actor domain.Actor, tx *domain.Transaction) error {
	if actor.IsAdmin() {
		return nil
	}
	origin, err := s.repo.FindAccountByID(ctx, tx.OriginAccountID)
	if err != nil {
		return err
	}
	if origin.UserID == actor.UserID {
		return nil
	}
	destination, err := s.repo.FindAccountByID(ctx, tx.DestinationAccountID)
	if err != nil {
		return err
	}
	if destination.UserID == actor.UserID {
		return nil
	}
	return ErrForbidden
}
