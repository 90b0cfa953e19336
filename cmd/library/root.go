package main

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/xiebiao/library/internal/infrastructure/config"
	"github.com/xiebiao/library/pkg/logger"
	"github.com/xiebiao/library/pkg/tracing"
)

var (
	// configPath --config参数,为空时按默认路径查找config.yaml
	configPath string

	// cfg 在PersistentPreRunE中加载,子命令直接使用
	cfg *config.Config

	logCloser       io.Closer
	shutdownTracing func(context.Context) error
)

var rootCmd = &cobra.Command{
	Use:   "library",
	Short: "Library - 图书馆藏、借阅与同类推荐",
	Long: `Library 是一个内存中的图书馆管理系统：
- 馆藏：上架图书、列出可借图书、按书名/作者/类型查询
- 学生：注册学生、查询在借图书
- 借还：借书、还书、借阅历史（最新的在前）
- 推荐：按类型关联做广度优先遍历，推荐可借的同类图书

提供交互式菜单（library shell）和HTTP API（library serve）两种入口。`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		teardown(cmd.Context())
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "",
		"配置文件路径（默认查找./config/config.yaml或./config.yaml）")

	rootCmd.AddCommand(serveCmd, shellCmd, eventsCmd)
}

// setup 加载配置、初始化日志和链路追踪
func setup(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(configPath)
	if err != nil {
		return err
	}

	logCloser, err = logger.Init(logger.Config{
		Level:        cfg.Log.Level,
		Format:       cfg.Log.Format,
		Output:       cfg.Log.Output,
		EnableCaller: cfg.Log.EnableCaller,
	})
	if err != nil {
		return err
	}

	if cfg.Tracing.Enabled {
		shutdownTracing, err = tracing.InitTracer(cfg.Tracing.ServiceName, cfg.Tracing.Endpoint)
		if err != nil {
			return err
		}
		logger.Info().Str("endpoint", cfg.Tracing.Endpoint).Msg("链路追踪已开启")
	}

	return nil
}

// teardown 刷新Span并关闭日志文件
func teardown(ctx context.Context) {
	if shutdownTracing != nil {
		if err := shutdownTracing(context.WithoutCancel(ctx)); err != nil {
			logger.Warn().Err(err).Msg("关闭链路追踪失败")
		}
	}
	if logCloser != nil {
		logCloser.Close()
	}
}
