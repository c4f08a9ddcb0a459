package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"linebook/internal/domain/line"
)

const documentKeyPrefix = "linebook:document:"

// RedisDocumentCache memoizes compiled documents by text digest.
type RedisDocumentCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisDocumentCache(client *redis.Client, ttl time.Duration) *RedisDocumentCache {
	return &RedisDocumentCache{
		client: client,
		ttl:    ttl,
	}
}

func (r *RedisDocumentCache) GetDocument(ctx context.Context, digest string) (*line.Document, bool, error) {
	v, err := r.client.Get(ctx, documentKeyPrefix+digest).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get: %w", err)
	}

	var doc line.Document
	if err = json.Unmarshal(v, &doc); err != nil {
		return nil, false, fmt.Errorf("decode cached document: %w", err)
	}
	return &doc, true, nil
}

func (r *RedisDocumentCache) PutDocument(ctx context.Context, digest string, doc *line.Document) error {
	v, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	return r.client.Set(ctx, documentKeyPrefix+digest, v, r.ttl).Err()
}
