// Package service implements the core operations behind the REST API:
// validation, the access policy, and the side effects the data model
// requires (version history, usage counts, the tag-delete scrub).
package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/promptvault/promptvault/internal/log"
	"github.com/promptvault/promptvault/internal/store"
)

// Service exposes the application's operations over a storage backend.
type Service struct {
	store  store.Store
	logger *log.Logger
}

// New builds a Service. logger may be nil.
func New(st store.Store, logger *log.Logger) *Service {
	return &Service{store: st, logger: logger}
}

// Ping verifies the storage backend is reachable.
func (s *Service) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}

// authorizeOwner applies the policy's decision order for a mutate or
// owner-scoped read of an existing resource: system-immutability first,
// then ownership. The order matters: a system resource is rejected even
// for its owner.
func authorizeOwner(isSystem bool, ownerID, callerID uuid.UUID) error {
	if isSystem {
		return ErrForbidden
	}
	if ownerID != callerID {
		return ErrForbidden
	}
	return nil
}
