package main

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/xiebiao/library/internal/application/library"
	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/student"
	"github.com/xiebiao/library/internal/infrastructure/config"
	"github.com/xiebiao/library/internal/infrastructure/messaging"
	"github.com/xiebiao/library/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/library/pkg/logger"
	"github.com/xiebiao/library/pkg/mq"
)

// App 组装好的应用
type App struct {
	Session *library.Session
	Engine  *gin.Engine
}

// provideRecommendationCache 启用Redis时创建推荐缓存
// Redis不可用时降级为不缓存,不阻止启动
func provideRecommendationCache(ctx context.Context, cfg *config.Config) (library.RecommendationCache, func(), error) {
	if !cfg.Redis.Enabled {
		return library.NoopCache{}, func() {}, nil
	}

	client, err := redis.NewClient(ctx, cfg.Redis)
	if err != nil {
		logger.Warn().Err(err).Msg("Redis不可用,推荐缓存已关闭")
		return library.NoopCache{}, func() {}, nil
	}

	cleanup := func() {
		if err := client.Close(); err != nil {
			logger.Warn().Err(err).Msg("关闭Redis连接失败")
		}
	}
	return redis.NewRecommendCache(client, cfg.Redis.CacheTTL), cleanup, nil
}

// provideEventPublisher 启用消息队列时创建借还事件发布者
// RabbitMQ不可用时降级为不发布
func provideEventPublisher(cfg *config.Config) (library.EventPublisher, func(), error) {
	if !cfg.MQ.Enabled {
		return library.NoopPublisher{}, func() {}, nil
	}

	pub, err := mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange, cfg.MQ.ExchangeType)
	if err != nil {
		logger.Warn().Err(err).Msg("RabbitMQ不可用,借还事件不再发布")
		return library.NoopPublisher{}, func() {}, nil
	}

	cleanup := func() {
		if err := pub.Close(); err != nil {
			logger.Warn().Err(err).Msg("关闭RabbitMQ连接失败")
		}
	}
	return messaging.NewCirculationPublisher(pub), cleanup, nil
}

// provideSessionOptions 从配置提取Session选项
func provideSessionOptions(cfg *config.Config, cache library.RecommendationCache, publisher library.EventPublisher) []library.Option {
	return []library.Option{
		library.WithStrictBookIDs(cfg.Catalog.StrictIDs),
		library.WithStrictStudentIDs(cfg.Roster.StrictIDs),
		library.WithCache(cache),
		library.WithPublisher(publisher),
	}
}

// provideSession 创建Session(wire不展开可变参数)
func provideSession(books book.Repository, students student.Repository, opts []library.Option) *library.Session {
	return library.NewSession(books, students, opts...)
}
