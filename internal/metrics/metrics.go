// Package metrics собирает метрики сервиса в формате Prometheus.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics содержит счётчики сервиса в отдельном реестре.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
	recordsSaved *prometheus.CounterVec
	aiRequests   *prometheus.CounterVec
}

// New создаёт метрики и регистрирует их вместе с метриками процесса и рантайма Go.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "feedcalc_http_requests_total",
			Help: "Number of HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "feedcalc_http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		recordsSaved: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "feedcalc_records_saved_total",
			Help: "Number of saved history records by kind.",
		}, []string{"kind"}),
		aiRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "feedcalc_ai_requests_total",
			Help: "Number of AI assistant requests by result.",
		}, []string{"result"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequests,
		m.httpDuration,
		m.recordsSaved,
		m.aiRequests,
	)

	return m
}

// ObserveRequest учитывает завершённый HTTP-запрос.
func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// RecordSaved увеличивает счётчик сохранённых записей указанного вида.
func (m *Metrics) RecordSaved(kind string) {
	if m == nil {
		return
	}
	m.recordsSaved.WithLabelValues(kind).Inc()
}

// AIRequest учитывает обращение к AI-ассистенту с результатом "ok" или "error".
func (m *Metrics) AIRequest(ok bool) {
	if m == nil {
		return
	}
	result := "ok"
	if !ok {
		result = "error"
	}
	m.aiRequests.WithLabelValues(result).Inc()
}

// Handler отдаёт метрики реестра.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
