// Package metrics はPrometheusメトリクスの記録を提供します。
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder は分類結果と外部API呼び出しのメトリクスを記録します。
type Recorder struct {
	decisions       *prometheus.CounterVec
	gatewayRequests *prometheus.CounterVec
	gatewayLatency  *prometheus.HistogramVec
	httpRequests    *prometheus.CounterVec
}

// New は reg に登録されたメトリクスを持つ Recorder を生成します。
// reg が nil の場合は新しいレジストリを使います（テスト用）。
func New(reg prometheus.Registerer) *Recorder {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	f := promauto.With(reg)
	return &Recorder{
		decisions: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tickertalk_classifier_decisions_total",
				Help: "Number of classifier decisions by chosen action",
			},
			[]string{"action"},
		),
		gatewayRequests: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tickertalk_gateway_requests_total",
				Help: "Number of market data gateway calls by operation and outcome",
			},
			[]string{"operation", "outcome"},
		),
		gatewayLatency: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "tickertalk_gateway_duration_seconds",
				Help:    "Duration of market data gateway calls in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		httpRequests: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tickertalk_http_requests_total",
				Help: "Number of inbound HTTP requests by route and status",
			},
			[]string{"route", "status"},
		),
	}
}

// RecordDecision は分類器が選んだアクションを記録します。空のアクションは "none" として記録します。
func (r *Recorder) RecordDecision(action string) {
	if action == "" {
		action = "none"
	}
	r.decisions.WithLabelValues(action).Inc()
}

// RecordGateway は外部API呼び出しの結果と所要時間を記録します。
func (r *Recorder) RecordGateway(operation, outcome string, elapsed time.Duration) {
	r.gatewayRequests.WithLabelValues(operation, outcome).Inc()
	r.gatewayLatency.WithLabelValues(operation).Observe(elapsed.Seconds())
}

// RecordHTTP は受信したHTTPリクエストを記録します。
func (r *Recorder) RecordHTTP(route, status string) {
	r.httpRequests.WithLabelValues(route, status).Inc()
}
