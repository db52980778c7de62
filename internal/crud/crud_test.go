package crud

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"sync"
)

type widget struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

func (w widget) GetID() int { return w.ID }

type widgetInput struct {
	Name string `json:"name" validate:"required,max=20"`
}

func applyWidget(in widgetInput, w *widget) { w.Name = in.Name }

func parseWidgetID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidID, s)
	}
	return id, nil
}

// memRepo is an in-memory Repository ordered by id.
type memRepo struct {
	mu     sync.Mutex
	rows   map[int]widget
	nextID int
	err    error
}

func newMemRepo(names ...string) *memRepo {
	r := &memRepo{rows: map[int]widget{}}
	for _, n := range names {
		r.nextID++
		r.rows[r.nextID] = widget{ID: r.nextID, Name: n}
	}
	return r
}

func (r *memRepo) Get(_ context.Context, id int) (widget, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return widget{}, r.err
	}
	w, ok := r.rows[id]
	if !ok {
		return widget{}, ErrNotFound
	}
	return w, nil
}

func (r *memRepo) Find(ctx context.Context, id int) (*widget, error) {
	w, err := r.Get(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *memRepo) List(_ context.Context, p PageRequest) ([]widget, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, 0, r.err
	}
	if p.Sorting != "" && p.Sorting != "name" {
		return nil, 0, ErrInvalidSorting
	}
	all := make([]widget, 0, len(r.rows))
	for _, w := range r.rows {
		all = append(all, w)
	}
	sort.Slice(all, func(i, j int) bool {
		if p.Sorting == "name" {
			return all[i].Name < all[j].Name
		}
		return all[i].ID < all[j].ID
	})
	if p.SkipCount >= len(all) {
		return nil, len(all), nil
	}
	end := p.SkipCount + p.MaxResultCount
	if end > len(all) {
		end = len(all)
	}
	return all[p.SkipCount:end], len(all), nil
}

func (r *memRepo) Insert(_ context.Context, w *widget) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.nextID++
	w.ID = r.nextID
	r.rows[w.ID] = *w
	return nil
}

func (r *memRepo) Update(_ context.Context, w *widget) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[w.ID]; !ok {
		return ErrNotFound
	}
	r.rows[w.ID] = *w
	return nil
}

func (r *memRepo) Delete(_ context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[id]; !ok {
		return ErrNotFound
	}
	delete(r.rows, id)
	return nil
}

func (r *memRepo) DeleteMany(_ context.Context, ids []int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range ids {
		delete(r.rows, id)
	}
	return nil
}
