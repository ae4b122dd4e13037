// Package registry persists issued tag identities. The store contract is
// deliberately small: an atomic check-and-insert keyed by cert ID, and a
// point lookup. Implementations must never overwrite an existing record and
// must only ever return fully-formed records to concurrent readers.
package registry

import (
	"context"

	"github.com/AVN-Software/skern-tag-system/internal/domain"
)

// Store is the issuance registry contract.
type Store interface {
	// Put inserts the record iff its cert ID is unclaimed. Returns
	// sentinel.ErrConflict (possibly wrapped) when the key already exists;
	// the caller regenerates with fresh randomness rather than overwriting.
	Put(ctx context.Context, record domain.RegistryRecord) error
	// Get returns the record for certID, or sentinel.ErrNotFound.
	Get(ctx context.Context, certID string) (*domain.RegistryRecord, error)
}
