package book

import (
	"context"

	"bookstore/internal/crud"
	"bookstore/internal/fingerprint"
)

// Service provides book CRUD plus the tenant book hash.
type Service struct {
	*crud.Service[Book, string, CreateUpdateInput]
	hasher *fingerprint.Service[Book]
}

// NewService creates a new book service.
func NewService(repo Repository) *Service {
	return &Service{
		Service: crud.NewService[Book, string, CreateUpdateInput](repo, ApplyInput),
		hasher:  fingerprint.NewService[Book](repo),
	}
}

// GetHash returns the uppercase hex SHA-1 of every book in the requested
// tenant, or "" when it has none. The caller's tenant scope is unaffected.
func (s *Service) GetHash(ctx context.Context, in GetHashInput) (string, error) {
	return s.hasher.ComputeFingerprint(ctx, in.TenantID)
}
