/**
 * @description
 * This file contains PIX key management: registering an alias for an owned
 * account, listing and deleting keys. Resolution of a key to its account is a
 * pure read used by the transaction engine.
 */

package app

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/digibank/ledger-service/internal/domain"
)

// RegisterPixKey registers a new alias for an owned account. RANDOM keys get
// a generated token value when none is supplied.
func (s *Service) RegisterPixKey(ctx context.Context, actor domain.Actor, req domain.RegisterPixKeyRequest) (*domain.PixKey, error) {
	switch req.Type {
	case domain.PixKeyTypeEmail, domain.PixKeyTypePhone, domain.PixKeyTypeRandom:
	default:
		return nil, ErrInvalidPixKeyType
	}

	value := strings.TrimSpace(req.Value)
	if value == "" {
		if req.Type != domain.PixKeyTypeRandom {
			return nil, ErrMissingPixKeyValue
		}
		value = uuid.NewString()
	}

	account, err := s.repo.FindAccountByID(ctx, req.AccountID)
	if err != nil {
		return nil, err
	}
	if account.UserID != actor.UserID {
		return nil, ErrForbidden
	}

	key := &domain.PixKey{
		ID:        uuid.New(),
		AccountID: account.ID,
		Type:      req.Type,
		Value:     value,
	}
	if err := s.repo.CreatePixKey(ctx, key); err != nil {
		return nil, err
	}
	return key, nil
}

// ResolvePixKey maps a key value to its owning account. Pure read, no side
// effects.
func (s *Service) ResolvePixKey(ctx context.Context, value string) (*domain.Account, error) {
	return s.repo.ResolvePixKey(ctx, strings.TrimSpace(value))
}

// DeletePixKey removes an alias from an owned account.
func (s *Service) DeletePixKey(ctx context.Context, actor domain.Actor, keyID uuid.UUID) error {
	key, err := s.repo.FindPixKeyByID(ctx, keyID)
	if err != nil {
		return err
	}
	account, err := s.repo.FindAccountByID(ctx, key.AccountID)
	if err != nil {
		return err
	}
	if account.UserID != actor.UserID {
		return ErrForbidden
	}
	return s.repo.DeletePixKey(ctx, keyID)
}
