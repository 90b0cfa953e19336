package library

import (
	"context"
)

// RecommendationCache 推荐结果缓存
// 只缓存图书ID,命中后仍从目录读取当前状态
// 任何修改目录或借阅状态的操作都会调用Invalidate
type RecommendationCache interface {
	Get(ctx context.Context, bookID int) (ids []int, ok bool)
	Set(ctx context.Context, bookID int, ids []int)
	Invalidate(ctx context.Context)
}

// EventPublisher 借还事件发布者
type EventPublisher interface {
	Publish(ctx context.Context, event CirculationEvent) error
}

// NoopCache 不缓存
type NoopCache struct{}

func (NoopCache) Get(context.Context, int) ([]int, bool) { return nil, false }
func (NoopCache) Set(context.Context, int, []int)        {}
func (NoopCache) Invalidate(context.Context)             {}

// NoopPublisher 丢弃所有事件
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, CirculationEvent) error { return nil }
