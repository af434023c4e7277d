// Package store persists raw provider payloads and finalized enriched
// profiles. Postgres is the production backend; the in-memory implementation
// backs mock mode and tests.
package store

import (
	"context"

	"github.com/jonathan/lead-enricher/internal/types"
)

// Store is the persistence surface used by the pipeline and server.
type Store interface {
	// StoreRaw saves an unmodified provider payload for auditing.
	StoreRaw(ctx context.Context, email, source string, payload any) error

	// UpsertFinalized inserts or replaces the finalized record for an email.
	UpsertFinalized(ctx context.Context, record *types.FinalizedRecord) error

	// GetFinalized returns the finalized record for an email, or nil when
	// none exists.
	GetFinalized(ctx context.Context, email string) (*types.FinalizedRecord, error)

	Close()
}
