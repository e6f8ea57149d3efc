package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"proposal-workers/internal/models"

	"github.com/redis/go-redis/v9"
)

// Ledger remembers which artifact a job already produced so a redelivered
// job can return it instead of writing a second copy.
type Ledger interface {
	Lookup(ctx context.Context, taskType string, jobKey int64) (*models.ExportArtifact, error)
	Record(ctx context.Context, taskType string, jobKey int64, artifact models.ExportArtifact) error
}

type RedisLedger struct {
	rdb    redis.Cmdable
	prefix string
	ttl    time.Duration
}

func NewRedisLedger(rdb redis.Cmdable, prefix string, ttl time.Duration) *RedisLedger {
	return &RedisLedger{rdb: rdb, prefix: prefix, ttl: ttl}
}

// Key is <prefix>:<taskType>:<jobKey>.
func (l *RedisLedger) Key(taskType string, jobKey int64) string {
	return fmt.Sprintf("%s:%s:%d", l.prefix, taskType, jobKey)
}

// Lookup returns nil without error when nothing was recorded.
func (l *RedisLedger) Lookup(ctx context.Context, taskType string, jobKey int64) (*models.ExportArtifact, error) {
	raw, err := l.rdb.Get(ctx, l.Key(taskType, jobKey)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("ledger lookup: %w", err)
	}

	var a models.ExportArtifact
	if err := json.Unmarshal(raw, &a); err != nil {
		return nil, fmt.Errorf("ledger entry %s: %w", l.Key(taskType, jobKey), err)
	}
	return &a, nil
}

// Record stores the artifact unless an entry already exists; the first
// writer wins.
func (l *RedisLedger) Record(ctx context.Context, taskType string, jobKey int64, artifact models.ExportArtifact) error {
	raw, err := json.Marshal(artifact)
	if err != nil {
		return fmt.Errorf("ledger encode: %w", err)
	}
	if err := l.rdb.SetNX(ctx, l.Key(taskType, jobKey), raw, l.ttl).Err(); err != nil {
		return fmt.Errorf("ledger record: %w", err)
	}
	return nil
}

// NopLedger never remembers anything.
type NopLedger struct{}

func (NopLedger) Lookup(context.Context, string, int64) (*models.ExportArtifact, error) {
	return nil, nil
}

func (NopLedger) Record(context.Context, string, int64, models.ExportArtifact) error {
	return nil
}
