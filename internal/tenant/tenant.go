// Package tenant carries the active tenant scope on a context.Context.
//
// A nil tenant is the host (default) scope. Scopes are switched by deriving a
// new context with Change; the parent context keeps whatever scope it had, so
// leaving the callee restores the previous scope on every return path.
package tenant

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
)

// ErrInvalidID is returned when a tenant identifier cannot be parsed.
var ErrInvalidID = errors.New("invalid tenant id")

type contextKey struct{}

type scope struct {
	id *uuid.UUID
}

// Change returns a child of ctx scoped to id. A nil id selects the host scope.
func Change(ctx context.Context, id *uuid.UUID) context.Context {
	var s scope
	if id != nil {
		v := *id
		s.id = &v
	}
	return context.WithValue(ctx, contextKey{}, s)
}

// From returns the tenant active on ctx, or nil for the host scope.
func From(ctx context.Context) *uuid.UUID {
	s, ok := ctx.Value(contextKey{}).(scope)
	if !ok || s.id == nil {
		return nil
	}
	v := *s.id
	return &v
}

// Parse converts a textual tenant id. The empty string means host scope.
func Parse(raw string) (*uuid.UUID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, errors.Join(ErrInvalidID, err)
	}
	return &id, nil
}

// String renders id for logs; the host scope renders as "".
func String(id *uuid.UUID) string {
	if id == nil {
		return ""
	}
	return id.String()
}
