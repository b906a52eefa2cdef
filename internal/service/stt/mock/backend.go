// Package mock provides a scripted speech-to-text backend for running the
// service without cloud credentials and for exercising the orchestrator's
// cascade logic in tests.
package mock

import (
	"context"
	"errors"
	"strings"
	"sync"

	"interview-analysis-service/internal/models"
	"interview-analysis-service/internal/service/stt"
)

// Outcome scripts the result of a single recognition attempt. Exactly one
// of Result or Err is used; a nil Result with nil Err simulates a provider
// call that succeeds with zero results.
type Outcome struct {
	Result *models.TranscriptionResult
	Err    error
}

// Backend implements stt.Backend with scripted outcomes. When the script
// is exhausted (or empty), it replays a canned interview answer.
type Backend struct {
	name   string
	script []Outcome

	mu          sync.Mutex
	calls       int
	InlineCalls int
	StagedCalls int
}

// New creates a mock backend replaying the given script in order.
func New(name string, script ...Outcome) *Backend {
	if name == "" {
		name = "mock"
	}
	return &Backend{name: name, script: script}
}

func (b *Backend) Name() string { return b.name }

// Recognize returns the next scripted outcome.
func (b *Backend) Recognize(ctx context.Context, req stt.Request) (*models.TranscriptionResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, stt.NewError(stt.CodeTimeout, b.name, err)
	}
	b.mu.Lock()
	b.InlineCalls++
	b.mu.Unlock()
	return b.next()
}

// RecognizeStaged returns the next scripted outcome.
func (b *Backend) RecognizeStaged(ctx context.Context, req stt.Request) (*models.TranscriptionResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, stt.NewError(stt.CodeTimeout, b.name, err)
	}
	b.mu.Lock()
	b.StagedCalls++
	b.mu.Unlock()
	return b.next()
}

func (b *Backend) Close() error { return nil }

// Calls reports how many recognition attempts were made in total.
func (b *Backend) Calls() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls
}

func (b *Backend) next() (*models.TranscriptionResult, error) {
	b.mu.Lock()
	idx := b.calls
	b.calls++
	b.mu.Unlock()

	if idx >= len(b.script) {
		return CannedResult(), nil
	}
	o := b.script[idx]
	if o.Err != nil {
		return nil, o.Err
	}
	if o.Result == nil {
		return &models.TranscriptionResult{}, nil
	}
	return o.Result, nil
}

// CannedResult returns a realistic interview answer with word timings, for
// dev mode and tests that only need a plausible transcript.
func CannedResult() *models.TranscriptionResult {
	text := "In my previous role I led the migration of our payment service to a message driven architecture"
	words := []models.TranscriptWord{}
	start := 0.0
	for _, w := range strings.Fields(text) {
		words = append(words, models.TranscriptWord{
			Text:         w,
			StartSeconds: start,
			EndSeconds:   start + 0.35,
			Confidence:   0.93,
		})
		start += 0.4
	}
	return &models.TranscriptionResult{
		FullText:          text,
		OverallConfidence: 0.93,
		Words:             words,
		DurationSeconds:   words[len(words)-1].EndSeconds,
		WordCount:         len(words),
	}
}

// FailOutright is a helper for scripting an attempt that errors.
func FailOutright(backend string) Outcome {
	return Outcome{Err: stt.NewError(stt.CodeInternal, backend, errors.New("simulated provider failure"))}
}

// WithConfidence returns an outcome carrying a short result at the given
// overall confidence.
func WithConfidence(confidence float64) Outcome {
	r := CannedResult()
	r.OverallConfidence = confidence
	for i := range r.Words {
		r.Words[i].Confidence = confidence
	}
	return Outcome{Result: r}
}
