// Package cache provides an optional Redis lookaside for resolved video
// metadata, so repeated collections don't hammer the lookup endpoints.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"clipfinder/captions"
)

type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

// ConnectRedis establishes a connection and verifies it with a ping.
func ConnectRedis(addr string, ttl time.Duration) (*Redis, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("connecting to redis: %w", err)
	}

	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Redis{client: client, ttl: ttl}, nil
}

func metadataKey(videoID string) string {
	return "clipfinder:meta:" + videoID
}

func (r *Redis) GetMetadata(ctx context.Context, videoID string) (captions.Metadata, bool, error) {
	data, err := r.client.Get(ctx, metadataKey(videoID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return captions.Metadata{}, false, nil
	}
	if err != nil {
		return captions.Metadata{}, false, fmt.Errorf("reading cached metadata: %w", err)
	}

	var m captions.Metadata
	if err := json.Unmarshal(data, &m); err != nil {
		return captions.Metadata{}, false, fmt.Errorf("decoding cached metadata: %w", err)
	}
	return m, true, nil
}

func (r *Redis) SetMetadata(ctx context.Context, videoID string, m captions.Metadata) error {
	data, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("encoding metadata for cache: %w", err)
	}
	if err := r.client.Set(ctx, metadataKey(videoID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("caching metadata: %w", err)
	}
	return nil
}

func (r *Redis) Close() error {
	return r.client.Close()
}
