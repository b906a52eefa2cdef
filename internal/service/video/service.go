package video

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"interview-analysis-service/internal/models"
	"interview-analysis-service/internal/observability/logging"
	"interview-analysis-service/internal/observability/metrics"
	"interview-analysis-service/internal/storage"
)

// Annotator runs the remote video annotation job against a staged URI.
type Annotator interface {
	Annotate(ctx context.Context, stagedURI string) (Annotations, error)
}

// Service stages a video payload, runs the remote annotation job and
// aggregates the result. Failures here are non-fatal for callers.
type Service struct {
	annotator Annotator
	stager    storage.Stager
	timeout   time.Duration
	metrics   *metrics.Metrics
	log       zerolog.Logger
}

// NewService builds a video analysis service.
func NewService(annotator Annotator, stager storage.Stager, timeout time.Duration) *Service {
	return &Service{
		annotator: annotator,
		stager:    stager,
		timeout:   timeout,
		metrics:   metrics.DefaultMetrics,
		log:       logging.WithComponent("video"),
	}
}

// Analyze uploads the recording, annotates it and returns normalized
// insights. The staged object is deleted best-effort afterwards.
func (s *Service) Analyze(ctx context.Context, media models.MediaPayload) (*models.VideoAnalysisResult, error) {
	uri, err := s.stager.Upload(ctx, media.Data, media.MIMEType)
	if err != nil {
		return nil, err
	}
	s.metrics.StagedUploads.Inc()
	defer func() {
		cleanupCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := s.stager.Delete(cleanupCtx, uri); err != nil {
			s.metrics.StagedDeleteFailures.Inc()
			s.log.Warn().Err(err).Str("uri", uri).Msg("Failed to delete staged video")
		}
	}()

	jobCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	ann, err := s.annotator.Annotate(jobCtx, uri)
	if err != nil {
		return nil, err
	}
	return Aggregate(ann), nil
}
