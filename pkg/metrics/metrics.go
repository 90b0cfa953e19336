// Package metrics 提供基于Prometheus的指标收集
//
// 指标分三类：
//   - HTTP请求指标：请求数、耗时、处理中的请求数（由请求日志中间件记录）
//   - 流通业务指标：借阅/归还次数（按结果区分）、借阅历史长度、馆藏规模
//   - 外部依赖指标：推荐缓存命中、熔断器状态、消息发布数
//
// 使用示例：
//
//	metrics.InitMetrics()
//	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
//
//	metrics.IncCounterVec(metrics.CirculationTotal, map[string]string{
//	    "action": "borrow",
//	    "result": "success",
//	})
//
// 命名规范沿用Prometheus约定：Counter以_total结尾，Histogram以单位结尾。
// 标签只使用有限取值（action、result、source），不要用book_id、student_id做标签。
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// once 防止重复注册（promauto重复注册会panic）
	once sync.Once

	// HTTP请求相关指标

	// HTTPRequestsTotal HTTP请求总数
	// 标签：method、path（路由模板）、status
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPRequestDuration HTTP请求耗时
	HTTPRequestDuration *prometheus.HistogramVec

	// HTTPRequestsInProgress 正在处理的HTTP请求数
	HTTPRequestsInProgress prometheus.Gauge

	// 流通业务指标

	// CirculationTotal 借阅/归还操作总数
	// 标签：action（borrow/return）、result（success或错误码）
	CirculationTotal *prometheus.CounterVec

	// BorrowHistoryLength 借阅历史条数（只增不减）
	BorrowHistoryLength prometheus.Gauge

	// CatalogBooks 馆藏图书种数
	CatalogBooks prometheus.Gauge

	// RosterStudents 已注册学生数
	RosterStudents prometheus.Gauge

	// 推荐指标

	// RecommendationDuration 推荐计算耗时
	RecommendationDuration prometheus.Histogram

	// RecommendationsServedTotal 推荐请求总数
	// 标签：source（graph=实时遍历, cache=缓存命中）
	RecommendationsServedTotal *prometheus.CounterVec

	// 外部依赖指标

	// CircuitBreakerState 熔断器状态
	// 0=CLOSED, 1=HALF_OPEN, 2=OPEN（与gobreaker.State取值一致）
	CircuitBreakerState *prometheus.GaugeVec

	// MessagesPublishedTotal 消息发布总数
	// 标签：exchange、routing_key、result（success/failure）
	MessagesPublishedTotal *prometheus.CounterVec
)

// InitMetrics 初始化所有Prometheus指标
// 可重复调用，只有第一次生效
func InitMetrics() {
	once.Do(func() {
		HTTPRequestsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "HTTP请求总数",
			},
			[]string{"method", "path", "status"},
		)

		HTTPRequestDuration = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "http_request_duration_seconds",
				Help: "HTTP请求耗时（秒）",
				// 全内存操作，桶集中在毫秒级
				Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
			},
			[]string{"method", "path"},
		)

		HTTPRequestsInProgress = promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_progress",
				Help: "正在处理的HTTP请求数",
			},
		)

		CirculationTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "library_circulation_total",
				Help: "借阅/归还操作总数",
			},
			[]string{"action", "result"},
		)

		BorrowHistoryLength = promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "library_borrow_history_length",
				Help: "借阅历史条数",
			},
		)

		CatalogBooks = promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "library_catalog_books",
				Help: "馆藏图书种数",
			},
		)

		RosterStudents = promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "library_roster_students",
				Help: "已注册学生数",
			},
		)

		RecommendationDuration = promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "library_recommendation_duration_seconds",
				Help:    "推荐计算耗时（秒）",
				Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
			},
		)

		RecommendationsServedTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "library_recommendations_served_total",
				Help: "推荐请求总数",
			},
			[]string{"source"},
		)

		CircuitBreakerState = promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "circuit_breaker_state",
				Help: "熔断器状态（0=CLOSED, 1=HALF_OPEN, 2=OPEN）",
			},
			[]string{"name"},
		)

		MessagesPublishedTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "messages_published_total",
				Help: "消息发布总数",
			},
			[]string{"exchange", "routing_key", "result"},
		)
	})
}

// IncCounter 递增Counter（便捷函数）
func IncCounter(counter prometheus.Counter) {
	counter.Inc()
}

// IncCounterVec 递增CounterVec（带标签）
func IncCounterVec(counter *prometheus.CounterVec, labels map[string]string) {
	counter.With(labels).Inc()
}

// IncGauge 递增Gauge
func IncGauge(gauge prometheus.Gauge) {
	gauge.Inc()
}

// DecGauge 递减Gauge
func DecGauge(gauge prometheus.Gauge) {
	gauge.Dec()
}

// SetGauge 设置Gauge值
func SetGauge(gauge prometheus.Gauge, value float64) {
	gauge.Set(value)
}

// SetGaugeVec 设置GaugeVec值（带标签）
func SetGaugeVec(gauge *prometheus.GaugeVec, labels map[string]string, value float64) {
	gauge.With(labels).Set(value)
}

// ObserveHistogram 记录Histogram观测值
func ObserveHistogram(histogram prometheus.Histogram, value float64) {
	histogram.Observe(value)
}

// ObserveHistogramVec 记录HistogramVec观测值（带标签）
func ObserveHistogramVec(histogram *prometheus.HistogramVec, labels map[string]string, value float64) {
	histogram.With(labels).Observe(value)
}
