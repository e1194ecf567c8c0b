// Package cache implements result caches backed by Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/accounting-office/backend/internal/application/adapter"
)

const (
	keyPrefix = "parametrization:validation"
	scanBatch = 100
)

// validationCache implements the adapter.ValidationCache interface.
type validationCache struct {
	client *redis.Client
}

// NewValidationCache creates a new Redis-backed validation cache.
func NewValidationCache(client *redis.Client) adapter.ValidationCache {
	return &validationCache{
		client: client,
	}
}

func reportKey(companyID uuid.UUID, year int) string {
	return fmt.Sprintf("%s:%s:%d", keyPrefix, companyID, year)
}

// indexKey holds the report keys of a company so they can be dropped together.
func indexKey(companyID uuid.UUID) string {
	return fmt.Sprintf("%s:%s:keys", keyPrefix, companyID)
}

// Get returns the cached report for a company and year.
func (c *validationCache) Get(ctx context.Context, companyID uuid.UUID, year int) (*adapter.ValidationReport, bool, error) {
	raw, err := c.client.Get(ctx, reportKey(companyID, year)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read cached report: %w", err)
	}

	var report adapter.ValidationReport
	if err := json.Unmarshal(raw, &report); err != nil {
		return nil, false, fmt.Errorf("failed to decode cached report: %w", err)
	}
	return &report, true, nil
}

// Set stores a report. A non-positive ttl disables caching.
func (c *validationCache) Set(ctx context.Context, report *adapter.ValidationReport, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	raw, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}

	key := reportKey(report.CompanyID, report.Year)
	idx := indexKey(report.CompanyID)
	_, err = c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, key, raw, ttl)
		pipe.SAdd(ctx, idx, key)
		pipe.Expire(ctx, idx, ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to cache report: %w", err)
	}
	return nil
}

// InvalidateCompany drops every cached report of a company.
func (c *validationCache) InvalidateCompany(ctx context.Context, companyID uuid.UUID) error {
	idx := indexKey(companyID)
	keys, err := c.client.SMembers(ctx, idx).Result()
	if err != nil {
		return fmt.Errorf("failed to list cached reports: %w", err)
	}

	keys = append(keys, idx)
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to drop cached reports: %w", err)
	}
	return nil
}

// InvalidateAll drops every report and index key under the cache prefix.
// Keys are collected before deleting so the scan cursor never skips any.
func (c *validationCache) InvalidateAll(ctx context.Context) error {
	var keys []string
	iter := c.client.Scan(ctx, 0, keyPrefix+":*", scanBatch).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan cached reports: %w", err)
	}

	for start := 0; start < len(keys); start += scanBatch {
		end := min(start+scanBatch, len(keys))
		if err := c.client.Del(ctx, keys[start:end]...).Err(); err != nil {
			return fmt.Errorf("failed to drop cached reports: %w", err)
		}
	}
	return nil
}
