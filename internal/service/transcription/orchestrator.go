// Package transcription drives remote speech-to-text calls across an
// ordered list of backends and encoding strategies, returning the best
// available result even under degraded confidence.
package transcription

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"interview-analysis-service/internal/models"
	"interview-analysis-service/internal/observability/logging"
	"interview-analysis-service/internal/observability/metrics"
	"interview-analysis-service/internal/service/stt"
	"interview-analysis-service/internal/storage"
)

// ErrExhausted means every strategy against every backend generation
// failed or returned empty. Individual attempt failures are logged, never
// surfaced; only exhaustion of the whole cascade is an error.
var ErrExhausted = errors.New("transcription exhausted: no usable result from any strategy")

// Config holds the orchestrator's routing and acceptance parameters.
// The thresholds are empirically chosen and may need recalibration per
// deployment, so they are configuration rather than constants.
type Config struct {
	// InlineLimitBytes: below this, only the inline path is attempted.
	InlineLimitBytes int64
	// StagedFloorBytes: above this, only the staged path is attempted.
	StagedFloorBytes int64
	// AcceptConfidence stops the cascade when an attempt exceeds it.
	AcceptConfidence float64
	// Staged job deadline: TimeoutBase + TimeoutPerMB * sizeInMB,
	// capped at TimeoutCap.
	TimeoutBase  time.Duration
	TimeoutPerMB time.Duration
	TimeoutCap   time.Duration
	// DefaultLanguage is used when the caller gives no language hint.
	DefaultLanguage string
	// PhraseBoost is the weight applied to vocabulary phrase lists.
	PhraseBoost float32
}

// DefaultConfig returns the production defaults.
func DefaultConfig() Config {
	return Config{
		InlineLimitBytes: 1 << 20,
		StagedFloorBytes: 10 << 20,
		AcceptConfidence: 0.5,
		TimeoutBase:      300 * time.Second,
		TimeoutPerMB:     60 * time.Second,
		TimeoutCap:       600 * time.Second,
		DefaultLanguage:  "en-US",
		PhraseBoost:      15,
	}
}

// Orchestrator coordinates one transcription across backends (newest API
// generation first), encoding strategies, and the inline/staged routing.
type Orchestrator struct {
	backends   []stt.Backend
	strategies []stt.EncodingStrategy
	stager     storage.Stager
	vocab      *Vocabulary
	cfg        Config
	metrics    *metrics.Metrics
	log        zerolog.Logger
}

// NewOrchestrator builds an orchestrator over the given backends in
// priority order. All dependencies are injected; the orchestrator keeps
// no ambient state.
func NewOrchestrator(backends []stt.Backend, stager storage.Stager, cfg Config) *Orchestrator {
	return &Orchestrator{
		backends:   backends,
		strategies: stt.DefaultStrategies(),
		stager:     stager,
		vocab:      NewVocabulary(),
		cfg:        cfg,
		metrics:    metrics.DefaultMetrics,
		log:        logging.WithComponent("transcription"),
	}
}

// Transcribe turns a media payload into the best transcription the
// backends can produce. It fails with ErrExhausted only when every
// strategy against every backend produced no usable text.
func (o *Orchestrator) Transcribe(ctx context.Context, media models.MediaPayload, languageHint, domainID string) (*models.TranscriptionResult, error) {
	lang := languageHint
	if lang == "" {
		lang = o.cfg.DefaultLanguage
	}
	phrases := o.vocab.Phrases(domainID)

	sess := &stagingSession{stager: o.stager, media: media}
	defer sess.cleanup(o.log, o.metrics)

	for i, backend := range o.backends {
		if i > 0 {
			o.metrics.GenerationFallbacks.Inc()
			o.log.Warn().
				Str("backend", backend.Name()).
				Msg("Falling back to older API generation")
		}

		best := o.cascade(ctx, backend, media, lang, phrases, sess)
		if best == nil {
			continue
		}
		if best.OverallConfidence <= o.cfg.AcceptConfidence {
			o.metrics.LowConfidenceResults.Inc()
			o.log.Warn().
				Str("backend", backend.Name()).
				Float64("confidence", best.OverallConfidence).
				Msg("Returning best low-confidence candidate")
		}
		best.FullText = o.vocab.Correct(best.FullText, domainID)
		return best, nil
	}

	return nil, ErrExhausted
}

// cascade tries each encoding strategy once against one backend. It
// returns the accepted result, or the highest-confidence candidate, or
// nil when every attempt failed outright or came back empty.
func (o *Orchestrator) cascade(ctx context.Context, backend stt.Backend, media models.MediaPayload, lang string, phrases []string, sess *stagingSession) *models.TranscriptionResult {
	var best *models.TranscriptionResult

	for _, strat := range o.strategies {
		res, err := o.attempt(ctx, backend, strat, media, lang, phrases, sess)
		if err != nil {
			o.log.Warn().Err(err).
				Str("backend", backend.Name()).
				Str("strategy", strat.Description).
				Msg("Transcription attempt failed, trying next strategy")
			continue
		}
		if res == nil || res.FullText == "" {
			o.log.Debug().
				Str("backend", backend.Name()).
				Str("strategy", strat.Description).
				Msg("Transcription attempt returned zero results")
			continue
		}
		if res.OverallConfidence > o.cfg.AcceptConfidence {
			return res
		}
		if best == nil || res.OverallConfidence > best.OverallConfidence {
			best = res
		}
	}
	return best
}

// attempt routes one strategy by payload size: staged-only above the
// floor, inline-only below the limit, and inline with a staged fallback
// on a payload-too-long condition in between.
func (o *Orchestrator) attempt(ctx context.Context, backend stt.Backend, strat stt.EncodingStrategy, media models.MediaPayload, lang string, phrases []string, sess *stagingSession) (*models.TranscriptionResult, error) {
	req := stt.Request{
		Strategy:     strat,
		LanguageCode: lang,
		Phrases:      phrases,
		PhraseBoost:  o.cfg.PhraseBoost,
	}

	switch {
	case media.SizeBytes > o.cfg.StagedFloorBytes:
		return o.staged(ctx, backend, req, media, sess)
	case media.SizeBytes >= o.cfg.InlineLimitBytes:
		res, err := o.inline(ctx, backend, req, media)
		if err != nil && stt.CodeOf(err) == stt.CodePayloadTooLong {
			o.log.Info().
				Str("backend", backend.Name()).
				Int64("sizeBytes", media.SizeBytes).
				Msg("Inline path rejected payload size, rerouting to staged path")
			return o.staged(ctx, backend, req, media, sess)
		}
		return res, err
	default:
		return o.inline(ctx, backend, req, media)
	}
}

func (o *Orchestrator) inline(ctx context.Context, backend stt.Backend, req stt.Request, media models.MediaPayload) (*models.TranscriptionResult, error) {
	req.Audio = media.Data
	start := time.Now()
	res, err := backend.Recognize(ctx, req)
	o.record(backend, req.Strategy, "inline", res, err, time.Since(start))
	return res, err
}

func (o *Orchestrator) staged(ctx context.Context, backend stt.Backend, req stt.Request, media models.MediaPayload, sess *stagingSession) (*models.TranscriptionResult, error) {
	uri, err := sess.uri(ctx, o.metrics)
	if err != nil {
		return nil, stt.NewError(stt.CodeUnavailable, backend.Name(), err)
	}
	req.StagedURI = uri

	deadline := o.stagedTimeout(media.SizeBytes)
	jobCtx, cancel := context.WithTimeout(ctx, deadline)
	defer cancel()

	start := time.Now()
	res, err := backend.RecognizeStaged(jobCtx, req)
	o.record(backend, req.Strategy, "staged", res, err, time.Since(start))
	return res, err
}

// stagedTimeout computes the hard deadline for a staged job from payload
// size.
func (o *Orchestrator) stagedTimeout(sizeBytes int64) time.Duration {
	sizeMB := float64(sizeBytes) / float64(1<<20)
	t := o.cfg.TimeoutBase + time.Duration(sizeMB*float64(o.cfg.TimeoutPerMB))
	if t > o.cfg.TimeoutCap {
		t = o.cfg.TimeoutCap
	}
	return t
}

func (o *Orchestrator) record(backend stt.Backend, strat stt.EncodingStrategy, path string, res *models.TranscriptionResult, err error, elapsed time.Duration) {
	result := "accepted"
	switch {
	case err != nil:
		result = string(stt.CodeOf(err))
	case res == nil || res.FullText == "":
		result = "empty"
	case res.OverallConfidence <= o.cfg.AcceptConfidence:
		result = "low_confidence"
	}
	o.metrics.RecordAttempt(backend.Name(), string(strat.Codec), result, path, elapsed.Seconds())
}

// stagingSession lazily uploads the payload on first staged attempt and
// remembers the URI so the cascade stages at most once. Whoever uploaded
// the object deletes it; deletion is best-effort and only logged.
type stagingSession struct {
	stager    storage.Stager
	media     models.MediaPayload
	stagedURI string
}

func (s *stagingSession) uri(ctx context.Context, m *metrics.Metrics) (string, error) {
	if s.stagedURI != "" {
		return s.stagedURI, nil
	}
	if s.stager == nil {
		return "", errors.New("no staging store configured")
	}
	uri, err := s.stager.Upload(ctx, s.media.Data, s.media.MIMEType)
	if err != nil {
		return "", err
	}
	m.StagedUploads.Inc()
	s.stagedURI = uri
	return uri, nil
}

func (s *stagingSession) cleanup(log zerolog.Logger, m *metrics.Metrics) {
	if s.stagedURI == "" {
		return
	}
	// The request context may already be done; give the delete its own
	// short deadline.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := s.stager.Delete(ctx, s.stagedURI); err != nil {
		m.StagedDeleteFailures.Inc()
		log.Warn().Err(err).Str("uri", s.stagedURI).Msg("Failed to delete staged object")
	}
}
