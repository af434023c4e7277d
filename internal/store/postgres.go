package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jonathan/lead-enricher/internal/types"
)

// Postgres wraps a PostgreSQL connection pool.
type Postgres struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Postgres{pool: pool}, nil
}

// Close closes the connection pool
func (s *Postgres) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// StoreRaw saves a raw provider payload keyed by a fresh row ID.
func (s *Postgres) StoreRaw(ctx context.Context, email, source string, payload any) error {
	jsonBytes, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal raw payload: %w", err)
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO raw_responses (id, email, source, payload)
		 VALUES ($1, $2, $3, $4)`,
		uuid.New(), email, source, jsonBytes,
	)
	if err != nil {
		return fmt.Errorf("failed to store raw payload from %s: %w", source, err)
	}
	return nil
}

// UpsertFinalized inserts or replaces the finalized record for an email.
func (s *Postgres) UpsertFinalized(ctx context.Context, record *types.FinalizedRecord) error {
	normalized, err := json.Marshal(record.NormalizedData)
	if err != nil {
		return fmt.Errorf("failed to marshal normalized data: %w", err)
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO finalized_profiles
		   (email, normalized_data, personalization_intro, personalization_cta, data_sources, resolved_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (email) DO UPDATE SET
		   normalized_data = $2,
		   personalization_intro = $3,
		   personalization_cta = $4,
		   data_sources = $5,
		   resolved_at = $6,
		   updated_at = NOW()`,
		record.Email, normalized, record.PersonalizationIntro,
		record.PersonalizationCTA, record.DataSources, record.ResolvedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert finalized profile: %w", err)
	}
	return nil
}

// GetFinalized retrieves the finalized record for an email.
func (s *Postgres) GetFinalized(ctx context.Context, email string) (*types.FinalizedRecord, error) {
	var record types.FinalizedRecord
	var normalized []byte
	err := s.pool.QueryRow(ctx,
		`SELECT email, normalized_data, personalization_intro, personalization_cta, data_sources, resolved_at
		 FROM finalized_profiles WHERE email = $1`,
		email,
	).Scan(&record.Email, &normalized, &record.PersonalizationIntro,
		&record.PersonalizationCTA, &record.DataSources, &record.ResolvedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get finalized profile: %w", err)
	}

	if len(normalized) > 0 {
		if err := json.Unmarshal(normalized, &record.NormalizedData); err != nil {
			return nil, fmt.Errorf("failed to unmarshal normalized data: %w", err)
		}
	}
	return &record, nil
}
