package crud

import (
	"context"
)

// Service implements the standard CRUD operations for one entity type.
type Service[T Entity[K], K comparable, I any] struct {
	repo  Repository[T, K]
	apply ApplyFunc[T, I]
}

// NewService creates a CRUD service over repo. apply maps create and update
// inputs onto the entity.
func NewService[T Entity[K], K comparable, I any](repo Repository[T, K], apply ApplyFunc[T, I]) *Service[T, K, I] {
	return &Service[T, K, I]{repo: repo, apply: apply}
}

// Get returns the entity with the given id.
func (s *Service[T, K, I]) Get(ctx context.Context, id K) (T, error) {
	return s.repo.Get(ctx, id)
}

// GetList returns a page of entities.
func (s *Service[T, K, I]) GetList(ctx context.Context, p PageRequest) (PagedResult[T], error) {
	items, total, err := s.repo.List(ctx, p.Normalize())
	if err != nil {
		return PagedResult[T]{}, err
	}
	if items == nil {
		items = []T{}
	}
	return PagedResult[T]{TotalCount: total, Items: items}, nil
}

// Create builds a new entity from in and stores it.
func (s *Service[T, K, I]) Create(ctx context.Context, in I) (T, error) {
	var e T
	s.apply(in, &e)
	if err := s.repo.Insert(ctx, &e); err != nil {
		var zero T
		return zero, err
	}
	return e, nil
}

// Update applies in to the stored entity with the given id.
func (s *Service[T, K, I]) Update(ctx context.Context, id K, in I) (T, error) {
	e, err := s.repo.Get(ctx, id)
	if err != nil {
		var zero T
		return zero, err
	}
	s.apply(in, &e)
	if err := s.repo.Update(ctx, &e); err != nil {
		var zero T
		return zero, err
	}
	return e, nil
}

// Delete removes the entity with the given id.
func (s *Service[T, K, I]) Delete(ctx context.Context, id K) error {
	return s.repo.Delete(ctx, id)
}

// DeleteMany removes every listed entity that is visible. Missing ids are ignored.
func (s *Service[T, K, I]) DeleteMany(ctx context.Context, ids []K) error {
	if len(ids) == 0 {
		return nil
	}
	return s.repo.DeleteMany(ctx, ids)
}
