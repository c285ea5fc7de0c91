// Package metrics は Prometheus のコレクタをまとめます。
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/ogurasousui/hrms-lite/internal/core/coreerr"
	"github.com/ogurasousui/hrms-lite/internal/core/roster"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "hrms"

// 勤怠登録の結果ラベルです。
const (
	MarkOutcomeRecorded      = "recorded"
	MarkOutcomeAlreadyMarked = "already_marked"
	MarkOutcomeNotFound      = "employee_not_found"
	MarkOutcomeInvalid       = "invalid"
	MarkOutcomeError         = "error"
)

// Metrics はアプリケーションのコレクタと専用レジストリを保持します。
type Metrics struct {
	registry        *prometheus.Registry
	rpcRequests     *prometheus.CounterVec
	rpcDuration     *prometheus.HistogramVec
	marks           *prometheus.CounterVec
	inconsistencies *prometheus.CounterVec
}

// New はコレクタを生成し、専用レジストリへ登録します。
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		rpcRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "grpc",
			Name:      "requests_total",
			Help:      "Number of handled gRPC requests by method and status code.",
		}, []string{"method", "code"}),
		rpcDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "grpc",
			Name:      "request_duration_seconds",
			Help:      "Latency of handled gRPC requests.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"}),
		marks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "attendance",
			Name:      "marks_total",
			Help:      "Attendance mark attempts by outcome.",
		}, []string{"outcome"}),
		inconsistencies: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "roster",
			Name:      "inconsistencies_total",
			Help:      "Internal consistency violations detected while aggregating history.",
		}, []string{"reason"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.rpcRequests,
		m.rpcDuration,
		m.marks,
		m.inconsistencies,
	)
	return m
}

// Registry は専用レジストリを返します。
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler は /metrics 用の HTTP ハンドラを返します。
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveRPC は gRPC リクエストの結果を記録します。
func (m *Metrics) ObserveRPC(method, code string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.rpcRequests.WithLabelValues(method, code).Inc()
	m.rpcDuration.WithLabelValues(method).Observe(elapsed.Seconds())
}

// ObserveMark は勤怠登録の結果を記録します。
func (m *Metrics) ObserveMark(err error) {
	if m == nil {
		return
	}
	m.marks.WithLabelValues(MarkOutcome(err)).Inc()
}

// Report は roster の整合性違反を件数として記録します。
func (m *Metrics) Report(_ context.Context, inc roster.Inconsistency) {
	if m == nil {
		return
	}
	m.inconsistencies.WithLabelValues(string(inc.Reason)).Inc()
}

// MarkOutcome は勤怠登録のエラーを結果ラベルへ変換します。
func MarkOutcome(err error) string {
	if err == nil {
		return MarkOutcomeRecorded
	}
	switch kind := coreerr.KindOf(err); {
	case errors.Is(kind, coreerr.ErrAlreadyMarked):
		return MarkOutcomeAlreadyMarked
	case errors.Is(kind, coreerr.ErrNotFound):
		return MarkOutcomeNotFound
	case errors.Is(kind, coreerr.ErrValidation):
		return MarkOutcomeInvalid
	default:
		return MarkOutcomeError
	}
}
