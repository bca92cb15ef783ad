// Package metrics 提供Prometheus监控指标
//
// 指标类型：
// - Counter：只增不减（请求总数、下单总数）
// - Gauge：可增可减（正在处理的请求数、熔断器状态）
// - Histogram：分布统计（请求耗时、下单耗时）
//
// 所有指标注册在独立的Registry上，通过Handler()暴露给/metrics
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry 本服务的指标注册表
var Registry = prometheus.NewRegistry()

var factory = promauto.With(Registry)

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

// ========== HTTP指标 ==========

var (
	HTTPRequestsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP请求总数",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP请求耗时（秒）",
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 10},
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInProgress = factory.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_progress",
			Help: "正在处理的HTTP请求数",
		},
	)
)

// ========== 订单指标 ==========

var (
	OrdersCreatedTotal = factory.NewCounter(
		prometheus.CounterOpts{
			Name: "orders_created_total",
			Help: "结算生成的订单总数",
		},
	)

	OrdersFailedTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "orders_failed_total",
			Help: "结算失败总数",
		},
		[]string{"reason"}, // insufficient_stock | variant_not_found | total_mismatch | discount_not_found | other
	)

	OrderLinesCreatedTotal = factory.NewCounter(
		prometheus.CounterOpts{
			Name: "order_lines_created_total",
			Help: "结算生成的订单明细总数",
		},
	)

	OrderCreationDuration = factory.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "order_creation_duration_seconds",
			Help:    "结算耗时（秒）",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10},
		},
	)

	OrdersInProgress = factory.NewGauge(
		prometheus.GaugeOpts{
			Name: "orders_in_progress",
			Help: "正在结算的请求数",
		},
	)

	OrderStatusChangesTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "order_status_changes_total",
			Help: "订单状态变更总数",
		},
		[]string{"to"},
	)

	StockRestoredTotal = factory.NewCounter(
		prometheus.CounterOpts{
			Name: "variant_stock_restored_units_total",
			Help: "取消订单回补的库存件数",
		},
	)
)

// ========== 基础设施指标 ==========

var (
	CircuitBreakerState = factory.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "熔断器状态（0=CLOSED, 1=OPEN, 2=HALF_OPEN）",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "熔断器请求总数",
		},
		[]string{"name", "result"}, // success | failure | rejected
	)

	EventsPublishedTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "events_published_total",
			Help: "变更事件广播总数",
		},
		[]string{"publisher", "result"},
	)

	CacheRequestsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_requests_total",
			Help: "缓存访问总数",
		},
		[]string{"cache", "result"}, // hit | miss | error
	)
)

// Handler 返回/metrics的HTTP处理器
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{Registry: Registry})
}

// ObserveSince 记录从start到现在的耗时
func ObserveSince(histogram prometheus.Observer, start time.Time) {
	histogram.Observe(time.Since(start).Seconds())
}
