// Package logger 基于zerolog的结构化日志
//
// 配置来自config.LogConfig：
//   - Level: debug | info | warn | error
//   - Format: console（开发环境，彩色可读）| json（生产环境，便于采集）
//   - Output: stdout | stderr | /path/to/file
//   - EnableCaller: 是否输出调用位置
//
// 用法：
//
//	logger.Init(logger.Config{Level: "info", Format: "json", Output: "stdout"})
//	logger.Info().Int("book_id", 1).Msg("图书已上架")
//	logger.Ctx(ctx).Warn().Err(err).Msg("推荐缓存不可用")
//
// 日志链必须以Msg()或Send()结尾，否则不会输出。
package logger

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Config 日志配置
type Config struct {
	Level        string
	Format       string
	Output       string
	EnableCaller bool
}

var (
	mu  sync.RWMutex
	log = zerolog.New(os.Stderr).With().Timestamp().Logger()
)

type ctxKey struct{}

// Init 按配置初始化全局Logger
// Output为文件路径时以追加方式打开，返回的io.Closer需在退出时关闭
func Init(cfg Config) (io.Closer, error) {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}

	var (
		out    io.Writer
		closer io.Closer = nopCloser{}
	)
	switch cfg.Output {
	case "", "stderr":
		out = os.Stderr
	case "stdout":
		out = os.Stdout
	default:
		f, err := os.OpenFile(cfg.Output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("打开日志文件失败: %w", err)
		}
		out, closer = f, f
	}

	if cfg.Format == "console" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.DateTime}
	}

	ctx := zerolog.New(out).Level(level).With().Timestamp()
	if cfg.EnableCaller {
		ctx = ctx.Caller()
	}

	Set(ctx.Logger())
	return closer, nil
}

// Set 替换全局Logger（测试中用于捕获输出）
func Set(l zerolog.Logger) {
	mu.Lock()
	defer mu.Unlock()
	log = l
}

// L 返回全局Logger的副本
func L() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return log
}

// WithContext 将带字段的Logger放入Context（如request_id）
func WithContext(ctx context.Context, l zerolog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// Ctx 从Context取出Logger，没有则返回全局Logger
func Ctx(ctx context.Context) *zerolog.Logger {
	if l, ok := ctx.Value(ctxKey{}).(zerolog.Logger); ok {
		return &l
	}
	l := L()
	return &l
}

func Debug() *zerolog.Event { l := L(); return l.Debug() }
func Info() *zerolog.Event  { l := L(); return l.Info() }
func Warn() *zerolog.Event  { l := L(); return l.Warn() }
func Error() *zerolog.Event { l := L(); return l.Error() }

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
