package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/seribro/escrow-service/internal/domain/entities"
	"github.com/seribro/escrow-service/internal/usecase/interfaces"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const defaultSummaryTTL = 5 * time.Minute

// RedisSummaryCache caches the reporting projections in Redis. Every failure
// is treated as a miss: the ledger is always able to answer.

type RedisSummaryCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

var _ interfaces.ISummaryCache = (*RedisSummaryCache)(nil)

func NewRedisSummaryCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisSummaryCache {
	if ttl <= 0 {
		ttl = defaultSummaryTTL
	}
	return &RedisSummaryCache{client: client, ttl: ttl, logger: logger}
}

func companySummaryKey(companyID string) string  { return "escrow:summary:company:" + companyID }
func studentEarningsKey(studentID string) string { return "escrow:earnings:student:" + studentID }

func (c *RedisSummaryCache) GetCompanySummary(ctx context.Context, companyID string) (entities.CompanySummary, bool) {
	var summary entities.CompanySummary
	if !c.get(ctx, companySummaryKey(companyID), &summary) {
		return entities.CompanySummary{}, false
	}
	return summary, true
}

func (c *RedisSummaryCache) SetCompanySummary(ctx context.Context, summary entities.CompanySummary) {
	c.set(ctx, companySummaryKey(summary.CompanyID), summary)
}

func (c *RedisSummaryCache) GetStudentEarnings(ctx context.Context, studentID string) (entities.StudentEarnings, bool) {
	var earnings entities.StudentEarnings
	if !c.get(ctx, studentEarningsKey(studentID), &earnings) {
		return entities.StudentEarnings{}, false
	}
	return earnings, true
}

func (c *RedisSummaryCache) SetStudentEarnings(ctx context.Context, earnings entities.StudentEarnings) {
	c.set(ctx, studentEarningsKey(earnings.StudentID), earnings)
}

// Invalidate drops both parties' projections after a committed transition.
func (c *RedisSummaryCache) Invalidate(ctx context.Context, companyID, studentID string) {
	keys := make([]string, 0, 2)
	if companyID != "" {
		keys = append(keys, companySummaryKey(companyID))
	}
	if studentID != "" {
		keys = append(keys, studentEarningsKey(studentID))
	}
	if len(keys) == 0 {
		return
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.logger.Warn("cache invalidation failed", zap.Strings("keys", keys), zap.Error(err))
	}
}

func (c *RedisSummaryCache) get(ctx context.Context, key string, out interface{}) bool {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("cache read failed", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	if err := json.Unmarshal(raw, out); err != nil {
		c.logger.Warn("cache entry corrupted", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (c *RedisSummaryCache) set(ctx context.Context, key string, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		c.logger.Warn("cache marshal failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}
}
