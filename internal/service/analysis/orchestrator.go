// Package analysis is the advanced-mode entry point: it fans out
// transcription and video analysis, joins the results, invokes content
// analysis and assembles the final report.
package analysis

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"interview-analysis-service/internal/models"
	"interview-analysis-service/internal/observability/logging"
	"interview-analysis-service/internal/observability/metrics"
	"interview-analysis-service/internal/service/content"
	"interview-analysis-service/internal/service/scoring"
	"interview-analysis-service/internal/service/speech"
)

// Transcriber produces a transcript from an audio payload.
type Transcriber interface {
	Transcribe(ctx context.Context, media models.MediaPayload, languageHint, domainID string) (*models.TranscriptionResult, error)
}

// VideoAnalyzer produces body-language insights from a video payload.
type VideoAnalyzer interface {
	Analyze(ctx context.Context, media models.MediaPayload) (*models.VideoAnalysisResult, error)
}

// ContentAnalyzer scores the substance of the transcript.
type ContentAnalyzer interface {
	Analyze(ctx context.Context, in content.Input) (models.ContentFeedback, error)
}

// Publisher emits analysis lifecycle events. Publishing is best-effort.
type Publisher interface {
	PublishCompleted(ctx context.Context, key string, event any) error
	PublishFailed(ctx context.Context, key string, event any) error
}

// Request is one advanced analysis invocation. All state is
// request-scoped and discarded on return.
type Request struct {
	Audio    models.MediaPayload
	Video    *models.MediaPayload
	Language string
	DomainID string
	Question string
}

// Orchestrator coordinates the full analysis pipeline. The video analyzer
// may be nil when the video service is unavailable; analyses then run
// audio-only.
type Orchestrator struct {
	transcriber Transcriber
	video       VideoAnalyzer
	content     ContentAnalyzer
	publisher   Publisher
	thresholds  QualityThresholds
	metrics     *metrics.Metrics
	log         zerolog.Logger
}

// NewOrchestrator wires the pipeline. All collaborators are injected;
// the orchestrator holds no ambient state.
func NewOrchestrator(t Transcriber, v VideoAnalyzer, c ContentAnalyzer, p Publisher, thresholds QualityThresholds) *Orchestrator {
	return &Orchestrator{
		transcriber: t,
		video:       v,
		content:     c,
		publisher:   p,
		thresholds:  thresholds,
		metrics:     metrics.DefaultMetrics,
		log:         logging.WithComponent("analysis"),
	}
}

type transcriptionOutcome struct {
	result *models.TranscriptionResult
	err    error
}

type videoOutcome struct {
	result *models.VideoAnalysisResult
	err    error
}

// Analyze runs the advanced analysis. Transcription failure is fatal;
// video failure degrades the request to audio-only scoring; content
// analysis failure propagates to the caller.
func (o *Orchestrator) Analyze(ctx context.Context, req Request) (*models.AnalysisReport, error) {
	analysisID := uuid.NewString()
	log := logging.WithAnalysis(analysisID)
	started := time.Now()
	o.metrics.RecordAnalysisStart()

	// Fan out. Transcription and video analysis are independent; each
	// goroutine writes only to its own channel.
	transcriptionCh := make(chan transcriptionOutcome, 1)
	go func() {
		res, err := o.transcriber.Transcribe(ctx, req.Audio, req.Language, req.DomainID)
		transcriptionCh <- transcriptionOutcome{result: res, err: err}
	}()

	videoCh := make(chan videoOutcome, 1)
	videoRequested := req.Video != nil && o.video != nil
	if videoRequested {
		media := *req.Video
		go func() {
			res, err := o.video.Analyze(ctx, media)
			videoCh <- videoOutcome{result: res, err: err}
		}()
	}
	log.Info().Bool("videoRequested", videoRequested).Msg("Analysis fanned out")

	// Join: the transcript is required before anything downstream runs.
	tr := <-transcriptionCh
	if tr.err != nil {
		o.finish(ctx, analysisID, "audio_failed", "transcription", tr.err, started)
		return nil, tr.err
	}

	var videoResult *models.VideoAnalysisResult
	if videoRequested {
		v := <-videoCh
		if v.err != nil {
			log.Warn().Err(v.err).Msg("Video analysis failed, continuing audio-only")
			o.metrics.VideoAnalyses.WithLabelValues("degraded").Inc()
		} else {
			videoResult = v.result
			o.metrics.VideoAnalyses.WithLabelValues("ok").Inc()
		}
	} else {
		o.metrics.VideoAnalyses.WithLabelValues("skipped").Inc()
	}

	speechMetrics := speech.Analyze(tr.result)

	feedback, err := o.content.Analyze(ctx, content.Input{
		Question:   req.Question,
		Transcript: tr.result.FullText,
		Speech:     speechMetrics,
		Video:      videoResult,
	})
	if err != nil {
		o.metrics.ContentAnalyses.WithLabelValues("failed").Inc()
		o.finish(ctx, analysisID, "content_failed", "content", err, started)
		return nil, err
	}
	o.metrics.ContentAnalyses.WithLabelValues("ok").Inc()

	score := scoring.Score(float64(feedback.Score), &speechMetrics, videoResult)
	o.metrics.CompositeScore.Observe(float64(score.Total))

	report := &models.AnalysisReport{
		AnalysisID:     analysisID,
		Content:        feedback,
		SpeechPatterns: speechMetrics,
		Video:          videoResult,
		Score:          score,
		Quality:        AssessQuality(tr.result, o.thresholds),
		Transcript:     tr.result.FullText,
		CreatedAt:      time.Now().UTC(),
	}

	if o.publisher != nil {
		event := models.AnalysisCompleted{
			EventType:    "interview.analysis.completed",
			AnalysisID:   analysisID,
			Timestamp:    time.Now().UnixMilli(),
			Total:        score.Total,
			QualityLevel: report.Quality.Level,
			VideoUsed:    videoResult != nil,
		}
		if err := o.publisher.PublishCompleted(ctx, analysisID, event); err != nil {
			log.Warn().Err(err).Msg("Failed to publish completion event")
		}
	}

	o.metrics.RecordAnalysisEnd("completed", time.Since(started).Seconds())
	log.Info().
		Int("total", score.Total).
		Str("quality", report.Quality.Level).
		Dur("elapsed", time.Since(started)).
		Msg("Analysis complete")
	return report, nil
}

// finish records a fatal outcome and publishes the failure event.
func (o *Orchestrator) finish(ctx context.Context, analysisID, outcome, stage string, cause error, started time.Time) {
	o.metrics.RecordAnalysisEnd(outcome, time.Since(started).Seconds())
	flog := logging.WithAnalysis(analysisID)
	flog.Error().Err(cause).Str("stage", stage).Msg("Analysis failed")

	if o.publisher == nil {
		return
	}
	event := models.AnalysisFailed{
		EventType:  "interview.analysis.failed",
		AnalysisID: analysisID,
		Timestamp:  time.Now().UnixMilli(),
		Stage:      stage,
		Reason:     cause.Error(),
	}
	if err := o.publisher.PublishFailed(ctx, analysisID, event); err != nil {
		flog.Warn().Err(err).Msg("Failed to publish failure event")
	}
}
