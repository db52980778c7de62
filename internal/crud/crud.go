// Package crud provides entity-agnostic create/read/update/delete plumbing:
// a repository capability interface, a service composed over it, paging
// types and an HTTP handler.
package crud

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned when an entity is not visible in the current scope.
	ErrNotFound = errors.New("entity not found")
	// ErrInvalidSorting is returned when a sorting expression is not supported.
	ErrInvalidSorting = errors.New("invalid sorting")
	// ErrInvalidID is returned when an identifier cannot be parsed.
	ErrInvalidID = errors.New("invalid id")
)

const (
	DefaultMaxResultCount = 10
	MaxMaxResultCount     = 1000
)

// Entity is anything addressable by a key.
type Entity[K comparable] interface {
	GetID() K
}

// PageRequest selects a sorted window of a list.
type PageRequest struct {
	Sorting        string `json:"sorting,omitempty"`
	SkipCount      int    `json:"skip_count"`
	MaxResultCount int    `json:"max_result_count"`
}

// Normalize clamps the window to sane bounds.
func (p PageRequest) Normalize() PageRequest {
	if p.SkipCount < 0 {
		p.SkipCount = 0
	}
	if p.MaxResultCount <= 0 {
		p.MaxResultCount = DefaultMaxResultCount
	}
	if p.MaxResultCount > MaxMaxResultCount {
		p.MaxResultCount = MaxMaxResultCount
	}
	return p
}

// PagedResult is one page of a list plus the total number of matches.
type PagedResult[T any] struct {
	TotalCount int `json:"total_count"`
	Items      []T `json:"items"`
}

// Repository is the storage contract a CRUD service is composed over.
// Implementations scope every call to the tenant carried by ctx.
type Repository[T Entity[K], K comparable] interface {
	// Get returns ErrNotFound when id is not visible.
	Get(ctx context.Context, id K) (T, error)
	// Find returns nil, nil when id is not visible.
	Find(ctx context.Context, id K) (*T, error)
	List(ctx context.Context, p PageRequest) ([]T, int, error)
	Insert(ctx context.Context, e *T) error
	Update(ctx context.Context, e *T) error
	Delete(ctx context.Context, id K) error
	DeleteMany(ctx context.Context, ids []K) error
}

// ApplyFunc copies an input DTO onto an entity.
type ApplyFunc[T any, I any] func(in I, e *T)
