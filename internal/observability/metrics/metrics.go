// Package metrics provides Prometheus metrics for observability.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "interview_analysis"

// Metrics holds all Prometheus metrics for the service.
type Metrics struct {
	// Analysis metrics
	AnalysesTotal    *prometheus.CounterVec
	AnalysesActive   prometheus.Gauge
	AnalysisDuration prometheus.Histogram
	CompositeScore   prometheus.Histogram

	// Transcription metrics
	TranscriptionAttempts *prometheus.CounterVec
	TranscriptionRoutes   *prometheus.CounterVec
	TranscriptionLatency  *prometheus.HistogramVec
	GenerationFallbacks   prometheus.Counter
	LowConfidenceResults  prometheus.Counter

	// Modality metrics
	VideoAnalyses   *prometheus.CounterVec
	ContentAnalyses *prometheus.CounterVec

	// Staging metrics
	StagedUploads        prometheus.Counter
	StagedDeleteFailures prometheus.Counter

	// Kafka publish metrics
	KafkaPublishTotal   *prometheus.CounterVec
	KafkaPublishErrors  *prometheus.CounterVec
	KafkaPublishLatency *prometheus.HistogramVec
}

// DefaultMetrics is the global metrics instance.
var DefaultMetrics = NewMetrics()

// NewMetrics creates and registers all Prometheus metrics.
func NewMetrics() *Metrics {
	return &Metrics{
		AnalysesTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "analyses_total",
			Help:      "Total number of analysis requests by outcome",
		}, []string{"outcome"}),
		AnalysesActive: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "analyses_active",
			Help:      "Number of analyses currently in flight",
		}),
		AnalysisDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "analysis_duration_seconds",
			Help:      "End-to-end analysis duration in seconds",
			Buckets:   []float64{1, 2, 5, 10, 30, 60, 120, 300, 600},
		}),
		CompositeScore: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "composite_score",
			Help:      "Distribution of composite scores",
			Buckets:   []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100},
		}),

		TranscriptionAttempts: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transcription_attempts_total",
			Help:      "Transcription attempts by backend, strategy and result",
		}, []string{"backend", "strategy", "result"}),
		TranscriptionRoutes: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transcription_routes_total",
			Help:      "Attempts routed to the inline or staged path",
		}, []string{"path"}),
		TranscriptionLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "transcription_latency_seconds",
			Help:      "Transcription attempt latency in seconds",
			Buckets:   []float64{0.5, 1, 2, 5, 10, 30, 60, 120, 300, 600},
		}, []string{"backend", "path"}),
		GenerationFallbacks: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transcription_generation_fallbacks_total",
			Help:      "Cascades that fell back to an older API generation",
		}),
		LowConfidenceResults: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transcription_low_confidence_total",
			Help:      "Transcriptions returned below the accept confidence",
		}),

		VideoAnalyses: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "video_analyses_total",
			Help:      "Video analyses by result (ok, degraded, skipped)",
		}, []string{"result"}),
		ContentAnalyses: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "content_analyses_total",
			Help:      "Content analyses by result",
		}, []string{"result"}),

		StagedUploads: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "staged_uploads_total",
			Help:      "Payloads uploaded to the staging area",
		}),
		StagedDeleteFailures: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "staged_delete_failures_total",
			Help:      "Best-effort staged object deletions that failed",
		}),

		KafkaPublishTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "kafka_publish_total",
			Help:      "Total number of Kafka messages published",
		}, []string{"topic", "event_type"}),
		KafkaPublishErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "kafka_publish_errors_total",
			Help:      "Total number of Kafka publish errors",
		}, []string{"topic", "event_type"}),
		KafkaPublishLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "kafka_publish_latency_seconds",
			Help:      "Kafka publish latency in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"topic"}),
	}
}

// RecordAnalysisStart records a new analysis starting.
func (m *Metrics) RecordAnalysisStart() {
	m.AnalysesActive.Inc()
}

// RecordAnalysisEnd records an analysis finishing with the given outcome.
func (m *Metrics) RecordAnalysisEnd(outcome string, durationSeconds float64) {
	m.AnalysesActive.Dec()
	m.AnalysesTotal.WithLabelValues(outcome).Inc()
	m.AnalysisDuration.Observe(durationSeconds)
}

// RecordAttempt records one transcription attempt.
func (m *Metrics) RecordAttempt(backend, strategy, result, path string, latencySeconds float64) {
	m.TranscriptionAttempts.WithLabelValues(backend, strategy, result).Inc()
	m.TranscriptionRoutes.WithLabelValues(path).Inc()
	m.TranscriptionLatency.WithLabelValues(backend, path).Observe(latencySeconds)
}

// RecordKafkaPublish records a Kafka publish attempt.
func (m *Metrics) RecordKafkaPublish(topic, eventType string, err error, latencySeconds float64) {
	m.KafkaPublishTotal.WithLabelValues(topic, eventType).Inc()
	m.KafkaPublishLatency.WithLabelValues(topic).Observe(latencySeconds)
	if err != nil {
		m.KafkaPublishErrors.WithLabelValues(topic, eventType).Inc()
	}
}
