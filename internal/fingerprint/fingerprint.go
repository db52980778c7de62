// Package fingerprint derives content digests over ordered record sets.
package fingerprint

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"io"
	"strings"

	"bookstore/internal/tenant"

	"github.com/google/uuid"
)

// Record renders itself to the string that feeds a fingerprint.
type Record interface {
	Canonical() string
}

// Source lists every record visible in the tenant scope carried by ctx, in
// the order the fingerprint must observe.
type Source[R Record] interface {
	ListAll(ctx context.Context) ([]R, error)
}

// Compute concatenates parts with no separator and returns the SHA-1 digest
// of the result as uppercase hex. No parts yields "".
func Compute(parts []string) string {
	if len(parts) == 0 {
		return ""
	}
	h := sha1.New()
	for _, p := range parts {
		_, _ = io.WriteString(h, p)
	}
	return strings.ToUpper(hex.EncodeToString(h.Sum(nil)))
}

// Service computes tenant scoped fingerprints over a Source.
type Service[R Record] struct {
	src Source[R]
}

// NewService creates a fingerprint service reading from src.
func NewService[R Record](src Source[R]) *Service[R] {
	return &Service[R]{src: src}
}

// ComputeFingerprint hashes every record visible to tenantID. A nil tenantID
// selects the host scope. The scope switch only applies to the context handed
// to the source; ctx itself keeps its scope. Source errors are returned as is.
func (s *Service[R]) ComputeFingerprint(ctx context.Context, tenantID *uuid.UUID) (string, error) {
	records, err := s.src.ListAll(tenant.Change(ctx, tenantID))
	if err != nil {
		return "", err
	}

	parts := make([]string, len(records))
	for i, r := range records {
		parts[i] = r.Canonical()
	}
	return Compute(parts), nil
}
