package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/AVN-Software/skern-tag-system/internal/domain"
	"github.com/AVN-Software/skern-tag-system/pkg/platform/sentinel"
)

const registryKeyPrefix = "skern:tag:"

// RedisStore keeps the registry in Redis for distributed deployments where
// multiple issuer instances share one keyspace. SETNX gives the atomic
// check-and-insert; records are stored as JSON with no expiry since issuance
// is permanent.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Put(ctx context.Context, record domain.RegistryRecord) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal registry record: %w", err)
	}
	ok, err := s.client.SetNX(ctx, registryKeyPrefix+record.CertID, payload, 0).Result()
	if err != nil {
		return fmt.Errorf("insert registry record: %w", err)
	}
	if !ok {
		return fmt.Errorf("cert id %s: %w", record.CertID, sentinel.ErrConflict)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, certID string) (*domain.RegistryRecord, error) {
	payload, err := s.client.Get(ctx, registryKeyPrefix+certID).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find registry record: %w", err)
	}
	var record domain.RegistryRecord
	if err := json.Unmarshal(payload, &record); err != nil {
		return nil, fmt.Errorf("unmarshal registry record: %w", err)
	}
	return &record, nil
}
