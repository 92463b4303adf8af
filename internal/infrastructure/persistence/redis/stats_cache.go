package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// StatsCache 看板统计缓存
//
// 教学要点:
// 1. Cache-Aside:先查缓存,未命中再查数据库并回写
// 2. 一致性:上架/出库提交后删除缓存(不更新),下次查询重新加载
// 3. TTL兜底:即使删除失败,数据最多陈旧一个TTL
type StatsCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewStatsCache 创建看板缓存
func NewStatsCache(client *redis.Client, ttl time.Duration) *StatsCache {
	return &StatsCache{
		client: client,
		prefix: "warehouse:stats:",
		ttl:    ttl,
	}
}

// Get 读取缓存并反序列化到dest,未命中返回false
func (c *StatsCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	val, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil // 缓存未命中
		}
		return false, fmt.Errorf("获取缓存失败: %w", err)
	}

	if err := json.Unmarshal(val, dest); err != nil {
		return false, fmt.Errorf("反序列化失败: %w", err)
	}
	return true, nil
}

// Set 写入缓存(JSON)
func (c *StatsCache) Set(ctx context.Context, key string, value interface{}) error {
	val, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("序列化失败: %w", err)
	}
	if err := c.client.Set(ctx, c.prefix+key, val, c.ttl).Err(); err != nil {
		return fmt.Errorf("设置缓存失败: %w", err)
	}
	return nil
}

// Delete 删除缓存
func (c *StatsCache) Delete(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, c.prefix+key).Err(); err != nil {
		return fmt.Errorf("删除缓存失败: %w", err)
	}
	return nil
}
