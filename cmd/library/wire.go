//go:build wireinject
// +build wireinject

// Wire依赖注入配置文件
//
// 修改Provider后运行 `wire gen ./cmd/library` 重新生成wire_gen.go

package main

import (
	"context"

	"github.com/google/wire"

	"github.com/xiebiao/library/internal/infrastructure/config"
	"github.com/xiebiao/library/internal/infrastructure/persistence/memory"
	"github.com/xiebiao/library/internal/interface/http/handler"
	"github.com/xiebiao/library/internal/interface/http/router"
)

// repositorySet 仓储层依赖(内存实现)
var repositorySet = wire.NewSet(
	memory.NewBookRepository,
	memory.NewStudentRepository,
)

// integrationSet 可选的外部依赖(Redis缓存、RabbitMQ事件)
var integrationSet = wire.NewSet(
	provideRecommendationCache,
	provideEventPublisher,
)

// applicationSet 应用层依赖
var applicationSet = wire.NewSet(
	provideSessionOptions,
	provideSession,
)

// handlerSet HTTP处理器依赖
var handlerSet = wire.NewSet(
	handler.NewBookHandler,
	handler.NewStudentHandler,
	handler.NewCirculationHandler,
	handler.NewRecommendHandler,
	wire.Struct(new(router.Handlers), "*"),
	router.New,
)

// InitializeApp 初始化整个应用
// 返回的cleanup关闭Redis和RabbitMQ连接
func InitializeApp(ctx context.Context, cfg *config.Config) (*App, func(), error) {
	wire.Build(
		repositorySet,
		integrationSet,
		applicationSet,
		handlerSet,
		wire.Struct(new(App), "*"),
	)
	return nil, nil, nil
}
