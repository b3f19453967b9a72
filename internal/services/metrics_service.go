package services

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService 指标服务
type MetricsService struct {
	documentsUploaded prometheus.Counter
	questionsTotal    *prometheus.CounterVec
	extractionsTotal  *prometheus.CounterVec
	pipelineDuration  *prometheus.HistogramVec
}

var (
	metricsOnce     sync.Once
	metricsInstance *MetricsService
)

// NewMetricsService 创建指标服务
// Prometheus指标只能注册一次，进程内共享同一实例
func NewMetricsService() *MetricsService {
	metricsOnce.Do(func() {
		metricsInstance = &MetricsService{
			documentsUploaded: promauto.NewCounter(prometheus.CounterOpts{
				Name: "documents_uploaded_total",
				Help: "Total number of documents uploaded and indexed",
			}),
			questionsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "questions_total",
					Help: "Total number of questions answered by outcome",
				},
				[]string{"outcome"}, // answered, not_found, low_confidence
			),
			extractionsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "extractions_total",
					Help: "Total number of structured extraction requests by status",
				},
				[]string{"status"}, // ok, degraded
			),
			pipelineDuration: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "pipeline_duration_seconds",
					Help:    "Duration of document pipeline stages",
					Buckets: prometheus.DefBuckets,
				},
				[]string{"stage"}, // upload, ask, extract
			),
		}
	})
	return metricsInstance
}

// Handler 返回Prometheus指标的HTTP处理器
func (ms *MetricsService) Handler() http.Handler {
	return promhttp.Handler()
}

// RecordUpload 记录一次文档入库
func (ms *MetricsService) RecordUpload(duration time.Duration) {
	ms.documentsUploaded.Inc()
	ms.pipelineDuration.WithLabelValues("upload").Observe(duration.Seconds())
}

// RecordQuestion 记录一次问答及其结果
func (ms *MetricsService) RecordQuestion(outcome string, duration time.Duration) {
	ms.questionsTotal.WithLabelValues(outcome).Inc()
	ms.pipelineDuration.WithLabelValues("ask").Observe(duration.Seconds())
}

// RecordExtraction 记录一次结构化抽取
func (ms *MetricsService) RecordExtraction(status string, duration time.Duration) {
	ms.extractionsTotal.WithLabelValues(status).Inc()
	ms.pipelineDuration.WithLabelValues("extract").Observe(duration.Seconds())
}
