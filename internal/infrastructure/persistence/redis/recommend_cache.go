package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/xiebiao/library/pkg/circuitbreaker"
	"github.com/xiebiao/library/pkg/logger"
)

const keyPrefix = "library:recommend:"

// commander RecommendCache用到的Redis命令,*redis.Client满足
type commander interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Incr(ctx context.Context, key string) *redis.IntCmd
}

// RecommendCache 推荐结果缓存（Cache-Aside）
//
// 设计说明：
// 1. 只缓存推荐出的图书ID,图书当前状态仍以内存目录为准
// 2. 上架、借书、还书都会让所有推荐失效,用代际号(generation)代替SCAN+UNLINK,失效只需一次INCR
// 3. key格式 library:recommend:{instance}:{gen}:{book_id},旧代际的key靠TTL过期
// 4. Redis故障时熔断,推荐退化为直接遍历图,不影响主流程
// 5. INCR失败后标记stale,在下一次INCR成功之前不读写缓存
// 6. instance每个缓存实例随机生成,多个进程共用一个Redis时互不可见(目录只在本进程内存中)
type RecommendCache struct {
	prefix  string
	client  commander
	ttl     time.Duration
	breaker *circuitbreaker.Breaker
	stale   atomic.Bool
}

// NewRecommendCache 创建推荐缓存
func NewRecommendCache(client *redis.Client, ttl time.Duration) *RecommendCache {
	return newRecommendCache(client, ttl, circuitbreaker.New(circuitbreaker.DefaultConfig("redis-recommend-cache")))
}

func newRecommendCache(client commander, ttl time.Duration, breaker *circuitbreaker.Breaker) *RecommendCache {
	return &RecommendCache{
		prefix:  keyPrefix + uuid.NewString() + ":",
		client:  client,
		ttl:     ttl,
		breaker: breaker,
	}
}

// Get 读取缓存,任何错误都视为未命中
func (c *RecommendCache) Get(ctx context.Context, bookID int) ([]int, bool) {
	if !c.ready(ctx) {
		return nil, false
	}

	var ids []int
	hit := false

	err := c.breaker.Execute(func() error {
		gen, err := c.generation(ctx)
		if err != nil {
			return err
		}

		val, err := c.client.Get(ctx, c.entryKey(gen, bookID)).Result()
		if errors.Is(err, redis.Nil) {
			return nil
		}
		if err != nil {
			return err
		}

		if err := json.Unmarshal([]byte(val), &ids); err != nil {
			return fmt.Errorf("反序列化失败: %w", err)
		}
		hit = true
		return nil
	})
	if err != nil {
		c.warn(ctx, err, "读取推荐缓存失败")
		return nil, false
	}
	return ids, hit
}

// Set 写入缓存
func (c *RecommendCache) Set(ctx context.Context, bookID int, ids []int) {
	if !c.ready(ctx) {
		return
	}

	err := c.breaker.Execute(func() error {
		gen, err := c.generation(ctx)
		if err != nil {
			return err
		}

		val, err := json.Marshal(ids)
		if err != nil {
			return fmt.Errorf("序列化失败: %w", err)
		}
		return c.client.Set(ctx, c.entryKey(gen, bookID), val, c.ttl).Err()
	})
	if err != nil {
		c.warn(ctx, err, "写入推荐缓存失败")
	}
}

// Invalidate 使所有推荐失效
func (c *RecommendCache) Invalidate(ctx context.Context) {
	err := c.breaker.Execute(func() error {
		return c.client.Incr(ctx, c.generationKey()).Err()
	})
	if err != nil {
		c.stale.Store(true)
		c.warn(ctx, err, "推荐缓存失效失败")
		return
	}
	c.stale.Store(false)
}

// ready 上次失效失败时先补一次失效
func (c *RecommendCache) ready(ctx context.Context) bool {
	if c.stale.Load() {
		c.Invalidate(ctx)
	}
	return !c.stale.Load()
}

// generation 当前代际号,key不存在时为0
func (c *RecommendCache) generation(ctx context.Context) (int64, error) {
	gen, err := c.client.Get(ctx, c.generationKey()).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

func (c *RecommendCache) generationKey() string {
	return c.prefix + "gen"
}

func (c *RecommendCache) entryKey(gen int64, bookID int) string {
	return fmt.Sprintf("%s%d:%d", c.prefix, gen, bookID)
}

// warn 熔断期间不重复刷日志
func (c *RecommendCache) warn(ctx context.Context, err error, msg string) {
	if circuitbreaker.IsRejected(err) {
		logger.Ctx(ctx).Debug().Err(err).Msg(msg)
		return
	}
	logger.Ctx(ctx).Warn().Err(err).Msg(msg)
}
