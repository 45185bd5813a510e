package cache

import (
	"context"
	"crm-admin/internal/domain/formlink"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/vmihailenco/msgpack/v5"
)

const keyPrefix = "formlink:"

type RedisFormLinkCache struct {
	client *redis.Client
	logger *slog.Logger
}

var _ formlink.Cache = (*RedisFormLinkCache)(nil)

func NewRedisFormLinkCache(client *redis.Client, logger *slog.Logger) *RedisFormLinkCache {
	if client == nil {
		panic("redis client cannot be nil for RedisFormLinkCache")
	}
	return &RedisFormLinkCache{client: client, logger: logger.With("component", "RedisFormLinkCache")}
}

func (c *RedisFormLinkCache) Get(ctx context.Context, token string) (*formlink.FormLink, error) {
	res, err := c.client.Get(ctx, key(token)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read cached form link: %w", err)
	}
	return decode(res)
}

// Set stores the link only when no entry exists for its token.
func (c *RedisFormLinkCache) Set(ctx context.Context, link *formlink.FormLink, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	encoded, err := msgpack.Marshal(link)
	if err != nil {
		return fmt.Errorf("failed to encode form link: %w", err)
	}
	stored, err := c.client.SetNX(ctx, key(link.Token), encoded, ttl).Result()
	if err != nil {
		return fmt.Errorf("failed to cache form link: %w", err)
	}
	c.logger.DebugContext(ctx, "Form link cached", slog.Int64("linkID", link.ID), slog.Bool("stored", stored), slog.Duration("ttl", ttl))
	return nil
}

func (c *RedisFormLinkCache) Evict(ctx context.Context, token string) error {
	if err := c.client.Del(ctx, key(token)).Err(); err != nil {
		return fmt.Errorf("failed to evict form link: %w", err)
	}
	return nil
}

func decode(b []byte) (*formlink.FormLink, error) {
	var l formlink.FormLink
	if err := msgpack.Unmarshal(b, &l); err != nil {
		return nil, fmt.Errorf("failed to decode cached form link: %w", err)
	}
	return &l, nil
}

func key(token string) string {
	return keyPrefix + token
}
