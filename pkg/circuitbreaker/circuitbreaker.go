// Package circuitbreaker 熔断器（基于sony/gobreaker）
//
// 用于保护可选的外部依赖（Redis推荐缓存、RabbitMQ事件发布）：
// 依赖故障时快速失败，主流程降级继续，不等待超时。
//
// 状态：
// - CLOSED：正常放行，统计连续失败次数
// - OPEN：快速失败，Timeout后转为HALF_OPEN
// - HALF_OPEN：放行MaxRequests个探测请求，成功则CLOSED，失败则回到OPEN
package circuitbreaker

import (
	"errors"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/xiebiao/library/pkg/logger"
	"github.com/xiebiao/library/pkg/metrics"
)

// ErrOpen 熔断器打开时返回的错误
var ErrOpen = gobreaker.ErrOpenState

// Config 熔断器配置
type Config struct {
	Name string

	// MaxRequests 半开状态下允许的最大请求数
	MaxRequests uint32

	// Interval CLOSED状态下清零统计的周期,0表示不清零
	Interval time.Duration

	// Timeout OPEN状态持续时间
	Timeout time.Duration

	// FailureThreshold 连续失败多少次后熔断
	FailureThreshold uint32
}

// DefaultConfig 默认配置
func DefaultConfig(name string) Config {
	return Config{
		Name:             name,
		MaxRequests:      1,
		Interval:         time.Minute,
		Timeout:          30 * time.Second,
		FailureThreshold: 5,
	}
}

// Breaker 熔断器
type Breaker struct {
	cb *gobreaker.CircuitBreaker[struct{}]
}

// New 创建熔断器
// 状态变化时记录日志并更新circuit_breaker_state指标
func New(cfg Config) *Breaker {
	metrics.InitMetrics()

	threshold := cfg.FailureThreshold
	if threshold == 0 {
		threshold = 1
	}

	settings := gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("熔断器状态变化")
			metrics.SetGaugeVec(metrics.CircuitBreakerState, map[string]string{"name": name}, float64(to))
		},
	}

	metrics.SetGaugeVec(metrics.CircuitBreakerState, map[string]string{"name": cfg.Name}, float64(gobreaker.StateClosed))
	return &Breaker{cb: gobreaker.NewCircuitBreaker[struct{}](settings)}
}

// Execute 在熔断器保护下执行fn
// 熔断器打开或半开限流时不调用fn,直接返回ErrOpen或gobreaker.ErrTooManyRequests
func (b *Breaker) Execute(fn func() error) error {
	_, err := b.cb.Execute(func() (struct{}, error) {
		return struct{}{}, fn()
	})
	return err
}

// State 当前状态
func (b *Breaker) State() gobreaker.State {
	return b.cb.State()
}

// Name 熔断器名称
func (b *Breaker) Name() string {
	return b.cb.Name()
}

// IsRejected 错误是否来自熔断器本身(而不是被保护的调用)
func IsRejected(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}
