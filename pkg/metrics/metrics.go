// Package metrics 提供基于Prometheus的仓库指标
//
// # 指标分类
//
// 1. HTTP指标：请求总数、耗时、处理中的请求数（由middleware记录）
// 2. 上架指标：上架次数、上架件数
// 3. 出库指标：出库请求数（按结果full/partial/empty区分）、出库件数、未满足件数、耗时
// 4. 货架指标：货架容积利用率（Gauge，每次上架/出库后刷新）
// 5. 事件指标：日志事件发布失败次数
//
// # 命名规范
//
//   - Counter 以 `_total` 结尾
//   - Histogram 以单位结尾（`_seconds`）
//   - Gauge 使用当前状态命名（`rack_utilization_percent`）
//
// # 使用示例
//
//	metrics.InitMetrics()
//	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
//
//	metrics.RecordIssue(metrics.IssueResultPartial, fulfilled, unfulfilled, time.Since(start))
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// 出库结果标签值
const (
	IssueResultFull    = "full"    // 全部满足
	IssueResultPartial = "partial" // 部分满足
	IssueResultEmpty   = "empty"   // 无可用库存
)

var (
	// once 防止重复注册（promauto重复注册会panic）
	once sync.Once

	// HTTP请求相关指标

	// HTTPRequestsTotal HTTP请求总数（Counter）
	// 标签：method（GET/POST）、path（路由模板）、status（200/500）
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPRequestDuration HTTP请求耗时（Histogram）
	HTTPRequestDuration *prometheus.HistogramVec

	// HTTPRequestsInProgress 正在处理的HTTP请求数（Gauge）
	HTTPRequestsInProgress prometheus.Gauge

	// 上架指标

	// PlacementsCreatedTotal 上架记录创建总数
	PlacementsCreatedTotal prometheus.Counter

	// UnitsPlacedTotal 上架商品件数
	UnitsPlacedTotal prometheus.Counter

	// 出库指标

	// IssueRequestsTotal 出库请求总数
	// 标签：result（full/partial/empty）
	IssueRequestsTotal *prometheus.CounterVec

	// UnitsIssuedTotal 实际出库件数
	UnitsIssuedTotal prometheus.Counter

	// UnitsUnfulfilledTotal 未能满足的件数
	UnitsUnfulfilledTotal prometheus.Counter

	// IssueDuration 出库耗时（含事务）
	IssueDuration prometheus.Histogram

	// 货架指标

	// RackUtilization 货架容积利用率（0-100）
	// 标签：rack（货架名称，数量有限，不属于高基数标签）
	RackUtilization *prometheus.GaugeVec

	// 事件指标

	// JournalPublishFailuresTotal 日志事件发布失败次数
	JournalPublishFailuresTotal prometheus.Counter
)

// InitMetrics 初始化所有Prometheus指标
// 可重复调用，只有第一次生效
func InitMetrics() {
	once.Do(register)
}

func register() {
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP请求总数",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP请求耗时（秒）",
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

	PlacementsCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "placements_created_total",
			Help: "上架记录创建总数",
		},
	)

	UnitsPlacedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "units_placed_total",
			Help: "上架商品件数",
		},
	)

	IssueRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "issue_requests_total",
			Help: "出库请求总数",
		},
		[]string{"result"},
	)

	UnitsIssuedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "units_issued_total",
			Help: "实际出库件数",
		},
	)

	UnitsUnfulfilledTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "units_unfulfilled_total",
			Help: "出库请求中未能满足的件数",
		},
	)

	IssueDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "issue_duration_seconds",
			Help: "出库耗时（秒）",
			// 出库在一个事务内逐条扣减上架记录，通常在百毫秒以内
			Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
	)

	RackUtilization = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "rack_utilization_percent",
			Help: "货架容积利用率（百分比）",
		},
		[]string{"rack"},
	)

	JournalPublishFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "journal_publish_failures_total",
			Help: "仓库日志事件发布失败次数",
		},
	)
}

// RecordPlacement 记录一次上架
func RecordPlacement(quantity int) {
	InitMetrics()
	PlacementsCreatedTotal.Inc()
	UnitsPlacedTotal.Add(float64(quantity))
}

// RecordIssue 记录一次出库请求
func RecordIssue(result string, fulfilled, unfulfilled int, elapsed time.Duration) {
	InitMetrics()
	IssueRequestsTotal.With(prometheus.Labels{"result": result}).Inc()
	UnitsIssuedTotal.Add(float64(fulfilled))
	UnitsUnfulfilledTotal.Add(float64(unfulfilled))
	IssueDuration.Observe(elapsed.Seconds())
}

// SetRackUtilization 刷新货架利用率
func SetRackUtilization(rackName string, percent float64) {
	InitMetrics()
	RackUtilization.With(prometheus.Labels{"rack": rackName}).Set(percent)
}

// RecordPublishFailure 记录一次事件发布失败
func RecordPublishFailure() {
	InitMetrics()
	JournalPublishFailuresTotal.Inc()
}

// ObserveHTTPRequest 记录一次HTTP请求
func ObserveHTTPRequest(method, path, status string, elapsed time.Duration) {
	InitMetrics()
	HTTPRequestsTotal.With(prometheus.Labels{"method": method, "path": path, "status": status}).Inc()
	HTTPRequestDuration.With(prometheus.Labels{"method": method, "path": path}).Observe(elapsed.Seconds())
}
