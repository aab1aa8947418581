// Package metrics 提供基于Prometheus的指标收集
//
// 指标类型：
// - Counter（计数器）：只增不减，如HTTP请求总数、借阅总数
// - Gauge（仪表盘）：可增可减的瞬时值，如处理中的请求数
// - Histogram（直方图）：观测值分布，如HTTP请求耗时（自动计算P50/P90/P99）
//
// 指标通过/metrics端点暴露，由Prometheus Server定时抓取。
// 命名规范：Counter以_total结尾，Histogram以单位结尾（_seconds）。
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// initialized 标记是否已初始化（防止重复注册）
	initialized bool

	// HTTPRequestsTotal HTTP请求总数（Counter）
	// 标签：method、path、status
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPRequestDuration HTTP请求耗时（Histogram）
	HTTPRequestDuration *prometheus.HistogramVec

	// HTTPRequestsInProgress 正在处理的HTTP请求数（Gauge）
	HTTPRequestsInProgress prometheus.Gauge

	// BooksCreatedTotal 图书登记总数（Counter）
	BooksCreatedTotal prometheus.Counter

	// LoansCreatedTotal 借阅创建总数（Counter）
	LoansCreatedTotal prometheus.Counter

	// LoansReturnedTotal 归还总数（Counter）
	LoansReturnedTotal prometheus.Counter

	// LoanConflictsTotal 借阅冲突总数（Counter）
	// 重复借阅被拒绝的次数，用于观察热门图书的争用情况
	LoanConflictsTotal prometheus.Counter

	// MessagesPublishedTotal 消息发布总数（Counter）
	// 标签：exchange、routing_key
	MessagesPublishedTotal *prometheus.CounterVec
)

// InitMetrics 初始化所有Prometheus指标
// 必须在程序启动时调用一次，注册所有指标到默认Registry
func InitMetrics() {
	if initialized {
		return
	}
	initialized = true

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
			// 桶设置：1ms、10ms、100ms、500ms、1s、5s、10s
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 10},
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInProgress = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_progress",
			Help: "正在处理的HTTP请求数",
		},
	)

	BooksCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "books_created_total",
			Help: "图书登记总数",
		},
	)

	LoansCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "loans_created_total",
			Help: "借阅创建总数",
		},
	)

	LoansReturnedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "loans_returned_total",
			Help: "图书归还总数",
		},
	)

	LoanConflictsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "loan_conflicts_total",
			Help: "借阅冲突总数（图书已被借出）",
		},
	)

	MessagesPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "messages_published_total",
			Help: "消息发布总数",
		},
		[]string{"exchange", "routing_key"},
	)
}
