package book

import (
	"context"

	"bookstore/internal/crud"
)

//go:generate mockgen -source=ports.go -destination=mock_repository.go -package=book

// Repository defines the contract for book data storage. Every method is
// scoped to the tenant carried by ctx.
type Repository interface {
	crud.Repository[Book, string]
	// ListAll returns every book of the current tenant ordered by id.
	ListAll(ctx context.Context) ([]Book, error)
}
