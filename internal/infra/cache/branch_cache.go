package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-SalonAvailability/internal/domain"
)

const keyPrefix = "salon"

// BranchCache read-through кэш филиалов и календарей поверх redis.
// Ошибки redis не прерывают запрос: пишем в лог и идём в хранилище.
type BranchCache struct {
	inner  BranchSource
	redis  *redis.Client
	ttl    time.Duration
	logger Logger
}

func NewBranchCache(inner BranchSource, client *redis.Client, ttl time.Duration, logger Logger) *BranchCache {
	return &BranchCache{
		inner:  inner,
		redis:  client,
		ttl:    ttl,
		logger: logger,
	}
}

func branchKey(id string) string {
	return fmt.Sprintf("%s:branch:%s", keyPrefix, id)
}

func calendarKey(branchID string) string {
	return fmt.Sprintf("%s:calendar:%s", keyPrefix, branchID)
}

// GetBranch отдает филиал из кэша, при промахе читает хранилище и кладет результат в кэш
func (c *BranchCache) GetBranch(ctx context.Context, id string) (*domain.Branch, error) {
	key := branchKey(id)

	var branch domain.Branch
	if c.load(ctx, key, &branch) {
		return &branch, nil
	}

	result, err := c.inner.GetBranch(ctx, id)
	if err != nil {
		return nil, err
	}
	c.store(ctx, key, result)
	return result, nil
}

// GetBranchCalendar отдает одобренный календарь филиала из кэша или хранилища
func (c *BranchCache) GetBranchCalendar(ctx context.Context, branchID string) ([]domain.CalendarEntry, error) {
	key := calendarKey(branchID)

	var entries []domain.CalendarEntry
	if c.load(ctx, key, &entries) {
		return entries, nil
	}

	result, err := c.inner.GetBranchCalendar(ctx, branchID)
	if err != nil {
		return nil, err
	}
	c.store(ctx, key, result)
	return result, nil
}

// Invalidate удаляет филиал и его календарь из кэша
func (c *BranchCache) Invalidate(ctx context.Context, branchID string) error {
	if err := c.redis.Del(ctx, branchKey(branchID), calendarKey(branchID)).Err(); err != nil {
		return fmt.Errorf("%w: Invalidate branch_id=%s: %w", ErrCache, branchID, err)
	}
	return nil
}

func (c *BranchCache) load(ctx context.Context, key string, dst any) bool {
	raw, err := c.redis.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false
	}
	if err != nil {
		c.logger.Warn("cache: get key=%s failed: %v", key, err)
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		c.logger.Warn("cache: decode key=%s failed: %v", key, err)
		return false
	}
	return true
}

func (c *BranchCache) store(ctx context.Context, key string, val any) {
	raw, err := json.Marshal(val)
	if err != nil {
		c.logger.Warn("cache: encode key=%s failed: %v", key, err)
		return
	}
	if err := c.redis.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		c.logger.Warn("cache: set key=%s failed: %v", key, err)
	}
}
