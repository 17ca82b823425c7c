package draft

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	backendRedis     = "redis"
	defaultKeyPrefix = "profile-print:"
)

// RedisConfig holds Redis connection configuration.
type RedisConfig struct {
	Addr      string
	Password  string
	DB        int
	KeyPrefix string
}

// RedisStore keeps the serialized draft under a single Redis key with no expiry,
// which lets several server instances share one slot. Last write wins.
type RedisStore struct {
	client *redis.Client
	key    string
}

// NewRedisStore connects to Redis and verifies the connection with PING.
func NewRedisStore(ctx context.Context, cfg RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return NewRedisStoreWithClient(client, cfg.KeyPrefix), nil
}

// NewRedisStoreWithClient creates a store with an existing client.
// An empty keyPrefix selects the default prefix.
func NewRedisStoreWithClient(client *redis.Client, keyPrefix string) *RedisStore {
	if keyPrefix == "" {
		keyPrefix = defaultKeyPrefix
	}
	return &RedisStore{client: client, key: keyPrefix + Key}
}

func (s *RedisStore) Save(ctx context.Context, d ProfileDraft) error {
	data, err := encodeDraft(d)
	if err == nil {
		if setErr := s.client.Set(ctx, s.key, data, 0).Err(); setErr != nil {
			err = fmt.Errorf("%w: %w", ErrSaveFailed, setErr)
		}
	}
	auditSave(ctx, backendRedis, err)
	return err
}

func (s *RedisStore) Load(ctx context.Context) (*ProfileDraft, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read draft: %w", err)
	}
	return decodeDraft(ctx, backendRedis, data)
}

// Close closes the underlying client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

// Compile-time interface check
var _ Store = (*RedisStore)(nil)
