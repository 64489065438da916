package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"diary-service/internal/availability"
)

// SlotCache keeps computed slot lists in Redis for a short TTL. Any mutation
// that can change a day's availability (booking, event, schedule or settings
// change, blocked date) invalidates the owner's whole day.
type SlotCache struct {
	RDB *redis.Client
	TTL time.Duration
}

func NewSlotCache(rdb *redis.Client) *SlotCache {
	return &SlotCache{RDB: rdb, TTL: time.Minute}
}

func key(ownerID, serviceID int64, date string) string {
	return fmt.Sprintf("slots:%d:%d:%s", ownerID, serviceID, date)
}

func dayPattern(ownerID int64, date string) string {
	return fmt.Sprintf("slots:%d:*:%s", ownerID, date)
}

func (c *SlotCache) Get(ctx context.Context, ownerID, serviceID int64, date string) (*availability.Result, bool) {
	if c == nil || c.RDB == nil {
		return nil, false
	}
	raw, err := c.RDB.Get(ctx, key(ownerID, serviceID, date)).Bytes()
	if err != nil {
		return nil, false
	}
	var res availability.Result
	if err := json.Unmarshal(raw, &res); err != nil {
		return nil, false
	}
	return &res, true
}

func (c *SlotCache) Set(ctx context.Context, ownerID, serviceID int64, date string, res availability.Result) {
	if c == nil || c.RDB == nil {
		return
	}
	raw, err := json.Marshal(res)
	if err != nil {
		return
	}
	c.RDB.Set(ctx, key(ownerID, serviceID, date), raw, c.TTL)
}

// InvalidateDay drops every cached service for the owner's date.
func (c *SlotCache) InvalidateDay(ctx context.Context, ownerID int64, date string) {
	if c == nil || c.RDB == nil {
		return
	}
	iter := c.RDB.Scan(ctx, 0, dayPattern(ownerID, date), 100).Iterator()
	for iter.Next(ctx) {
		c.RDB.Del(ctx, iter.Val())
	}
}

// InvalidateOwner drops everything cached for the owner, for mutations that
// affect more than one date (schedule rows, settings).
func (c *SlotCache) InvalidateOwner(ctx context.Context, ownerID int64) {
	if c == nil || c.RDB == nil {
		return
	}
	iter := c.RDB.Scan(ctx, 0, fmt.Sprintf("slots:%d:*", ownerID), 100).Iterator()
	for iter.Next(ctx) {
		c.RDB.Del(ctx, iter.Val())
	}
}
