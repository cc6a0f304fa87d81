// Package metrics 提供 Prometheus helper，覆盖 HTTP 与账本业务指标
package metrics

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics 指标集合
type Metrics struct {
	// HTTP 请求计数
	HTTPRequestsTotal prometheus.Counter
	// HTTP 请求耗时
	HTTPRequestDuration prometheus.Histogram

	// 账本操作计数，按操作类型划分（deposit/withdraw/transfer/topup）
	OperationsTotal *prometheus.CounterVec
	// 被拒绝的账本操作计数，按操作类型划分
	OperationsRejected *prometheus.CounterVec
	// 已注册账户数
	AccountsTotal prometheus.Counter
	// 登录计数，按结果划分（ok/failed）
	LoginsTotal *prometheus.CounterVec
}

// New 创建指标实例
func New(serviceName string) *Metrics {
	return &Metrics{
		HTTPRequestsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "banking",
			Subsystem: serviceName,
			Name:      "http_requests_total",
			Help:      "Total HTTP requests",
		}),
		HTTPRequestDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "banking",
			Subsystem: serviceName,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}),
		OperationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "banking",
			Subsystem: serviceName,
			Name:      "operations_total",
			Help:      "Total completed ledger operations",
		}, []string{"kind"}),
		OperationsRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "banking",
			Subsystem: serviceName,
			Name:      "operations_rejected_total",
			Help:      "Total rejected ledger operations",
		}, []string{"kind"}),
		AccountsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "banking",
			Subsystem: serviceName,
			Name:      "accounts_total",
			Help:      "Total accounts created",
		}),
		LoginsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "banking",
			Subsystem: serviceName,
			Name:      "logins_total",
			Help:      "Total login attempts",
		}, []string{"result"}),
	}
}

// Register 注册所有指标
func (m *Metrics) Register() error {
	collectors := []prometheus.Collector{
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.OperationsTotal,
		m.OperationsRejected,
		m.AccountsTotal,
		m.LoginsTotal,
	}
	for _, c := range collectors {
		if err := prometheus.DefaultRegisterer.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// StartHTTPServer 启动 Prometheus HTTP 服务器
func StartHTTPServer(port int, path string) error {
	if path == "" {
		path = "/metrics"
	}
	mux := http.NewServeMux()
	mux.Handle(path, promhttp.Handler())

	addr := fmt.Sprintf(":%d", port)
	slog.Info("starting metrics server", "addr", addr, "path", path)
	return http.ListenAndServe(addr, mux)
}
