// Package stt defines the interface for speech-to-text backends.
package stt

import (
	"context"

	"interview-analysis-service/internal/models"
)

// Request carries everything a backend needs for one recognition attempt.
// Exactly one of Audio or StagedURI is set: Audio for inline calls,
// StagedURI for long-running staged jobs.
type Request struct {
	Audio        []byte
	StagedURI    string
	Strategy     EncodingStrategy
	LanguageCode string
	Phrases      []string
	PhraseBoost  float32
}

// Backend is a single generation of a speech-to-text provider API
// (Google Speech v2, Google Speech v1, mock, ...). The transcription
// orchestrator iterates a prioritized list of backends and is otherwise
// backend-agnostic.
type Backend interface {
	// Name identifies the backend in logs and metrics.
	Name() string

	// Recognize performs a synchronous inline recognition of req.Audio.
	Recognize(ctx context.Context, req Request) (*models.TranscriptionResult, error)

	// RecognizeStaged runs a long-running recognition job against
	// req.StagedURI. Callers bound it with a context deadline.
	RecognizeStaged(ctx context.Context, req Request) (*models.TranscriptionResult, error)

	// Close releases provider connections.
	Close() error
}
