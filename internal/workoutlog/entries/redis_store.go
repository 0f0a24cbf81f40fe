package entries

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/workoutlog/internal/telemetry/tracing"
)

// DefaultSnapshotKey is the key the entry collection is stored under.
const DefaultSnapshotKey = "workout-log-v1"

// RedisStore keeps the whole entry collection as one JSON array value.
type RedisStore struct {
	redisClient *redis.Client
	key         string
}

func NewRedisStore(redisClient *redis.Client, key string) *RedisStore {
	if key == "" {
		key = DefaultSnapshotKey
	}
	return &RedisStore{
		redisClient: redisClient,
		key:         key,
	}
}

func (s *RedisStore) ListAll(ctx context.Context) (_ []Entry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "redis.workoutlog.entries.listall")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	data, err := s.redisClient.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return []Entry{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get snapshot: %w", err)
	}

	list, skipped := DecodeSnapshot(data)
	if skipped > 0 {
		log.Warnf("workout entries snapshot [%s]: skipped %d invalid records", s.key, skipped)
	}
	span.SetAttributes(attribute.Int("entries.count", len(list)))

	return list, nil
}

func (s *RedisStore) Replace(ctx context.Context, list []Entry) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "redis.workoutlog.entries.replace")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("entries.count", len(list)))

	data, err := EncodeSnapshot(list)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	if err := s.redisClient.Set(ctx, s.key, data, 0).Err(); err != nil {
		return fmt.Errorf("set snapshot: %w", err)
	}
	return nil
}
