package registry

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/AVN-Software/skern-tag-system/internal/domain"
	"github.com/AVN-Software/skern-tag-system/pkg/platform/sentinel"
)

var postgresLookupDurationMs = promauto.NewHistogram(prometheus.HistogramOpts{
	Name:    "skern_registry_postgres_lookup_duration_ms",
	Help:    "Latency of registry lookups against PostgreSQL in milliseconds",
	Buckets: []float64{0.5, 1, 2.5, 5, 10, 25, 50, 100},
})

const schema = `
CREATE TABLE IF NOT EXISTS tag_registry (
    cert_id       TEXT PRIMARY KEY,
    batch_code    TEXT NOT NULL,
    guilloche_key TEXT NOT NULL,
    border_key    TEXT NOT NULL,
    serial_number TEXT NOT NULL,
    created_at    TIMESTAMPTZ NOT NULL,
    authentic     BOOLEAN NOT NULL
)`

// PostgresStore persists the registry in PostgreSQL. Insert-if-absent rides
// on the primary key, so the check-and-insert is atomic at the database and
// safe across processes.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Migrate creates the registry table when missing.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("migrate tag registry: %w", err)
	}
	return nil
}

func (s *PostgresStore) Put(ctx context.Context, record domain.RegistryRecord) error {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO tag_registry (cert_id, batch_code, guilloche_key, border_key, serial_number, created_at, authentic)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (cert_id) DO NOTHING`,
		record.CertID, record.BatchCode, record.GuillocheKey, record.BorderKey,
		record.SerialNumber, record.CreatedAt, record.Authentic,
	)
	if err != nil {
		return fmt.Errorf("insert registry record: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("insert registry record: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("cert id %s: %w", record.CertID, sentinel.ErrConflict)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, certID string) (*domain.RegistryRecord, error) {
	start := time.Now()
	defer func() {
		postgresLookupDurationMs.Observe(float64(time.Since(start).Microseconds()) / 1000.0)
	}()

	var record domain.RegistryRecord
	err := s.db.QueryRowContext(ctx, `
		SELECT cert_id, batch_code, guilloche_key, border_key, serial_number, created_at, authentic
		FROM tag_registry WHERE cert_id = $1`, certID,
	).Scan(&record.CertID, &record.BatchCode, &record.GuillocheKey, &record.BorderKey,
		&record.SerialNumber, &record.CreatedAt, &record.Authentic)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find registry record: %w", err)
	}
	return &record, nil
}
