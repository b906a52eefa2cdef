package transcription

import (
	"context"
	"errors"
	"testing"
	"time"

	"interview-analysis-service/internal/models"
	"interview-analysis-service/internal/service/stt"
	"interview-analysis-service/internal/service/stt/mock"
	"interview-analysis-service/internal/storage"
)

func smallPayload() models.MediaPayload {
	data := make([]byte, 64*1024)
	return models.MediaPayload{Data: data, MIMEType: "audio/webm", SizeBytes: int64(len(data))}
}

func payloadOfSize(size int64) models.MediaPayload {
	// Tests never read the bytes, only the declared size matters.
	return models.MediaPayload{Data: []byte("audio"), MIMEType: "audio/webm", SizeBytes: size}
}

func TestTranscribe_SmallPayloadUsesInlineOnly(t *testing.T) {
	backend := mock.New("primary")
	stager := storage.NewMemory()
	o := NewOrchestrator([]stt.Backend{backend}, stager, DefaultConfig())

	res, err := o.Transcribe(context.Background(), smallPayload(), "", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.FullText == "" {
		t.Error("expected non-empty transcript")
	}
	if backend.InlineCalls != 1 {
		t.Errorf("expected 1 inline call, got %d", backend.InlineCalls)
	}
	if backend.StagedCalls != 0 {
		t.Errorf("expected 0 staged calls, got %d", backend.StagedCalls)
	}
	if stager.Uploads != 0 {
		t.Errorf("expected no staged uploads, got %d", stager.Uploads)
	}
}

func TestTranscribe_LargePayloadNeverInline(t *testing.T) {
	backend := mock.New("primary")
	stager := storage.NewMemory()
	o := NewOrchestrator([]stt.Backend{backend}, stager, DefaultConfig())

	_, err := o.Transcribe(context.Background(), payloadOfSize(11<<20), "", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if backend.InlineCalls != 0 {
		t.Errorf("expected 0 inline calls for an 11MB payload, got %d", backend.InlineCalls)
	}
	if backend.StagedCalls != 1 {
		t.Errorf("expected 1 staged call, got %d", backend.StagedCalls)
	}
	if stager.Uploads != 1 {
		t.Errorf("expected 1 upload, got %d", stager.Uploads)
	}
	if stager.Deletes != 1 {
		t.Errorf("expected the staged object to be deleted, got %d deletes", stager.Deletes)
	}
	if stager.Len() != 0 {
		t.Errorf("expected no leftover staged objects, got %d", stager.Len())
	}
}

func TestTranscribe_CascadeStopsOnAcceptedResult(t *testing.T) {
	backend := mock.New("primary",
		mock.FailOutright("primary"),
		mock.FailOutright("primary"),
		mock.WithConfidence(0.9),
	)
	o := NewOrchestrator([]stt.Backend{backend}, storage.NewMemory(), DefaultConfig())

	res, err := o.Transcribe(context.Background(), smallPayload(), "", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.OverallConfidence != 0.9 {
		t.Errorf("expected confidence 0.9, got %v", res.OverallConfidence)
	}
	if backend.Calls() != 3 {
		t.Errorf("expected exactly 3 attempts, got %d", backend.Calls())
	}
}

func TestTranscribe_KeepsBestLowConfidenceCandidate(t *testing.T) {
	backend := mock.New("primary",
		mock.WithConfidence(0.3),
		mock.WithConfidence(0.45),
		mock.WithConfidence(0.2),
	)
	fallback := mock.New("fallback")
	o := NewOrchestrator([]stt.Backend{backend, fallback}, storage.NewMemory(), DefaultConfig())

	res, err := o.Transcribe(context.Background(), smallPayload(), "", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.OverallConfidence != 0.45 {
		t.Errorf("expected best candidate 0.45, got %v", res.OverallConfidence)
	}
	if backend.Calls() != 3 {
		t.Errorf("expected every strategy to be tried, got %d attempts", backend.Calls())
	}
	// A low-confidence candidate is still a result; the older generation
	// must not be consulted.
	if fallback.Calls() != 0 {
		t.Errorf("expected no fallback calls, got %d", fallback.Calls())
	}
}

func TestTranscribe_FallsBackToOlderGeneration(t *testing.T) {
	primary := mock.New("primary",
		mock.FailOutright("primary"),
		mock.FailOutright("primary"),
		mock.FailOutright("primary"),
	)
	fallback := mock.New("fallback", mock.WithConfidence(0.8))
	o := NewOrchestrator([]stt.Backend{primary, fallback}, storage.NewMemory(), DefaultConfig())

	res, err := o.Transcribe(context.Background(), smallPayload(), "", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.OverallConfidence != 0.8 {
		t.Errorf("expected fallback result, got confidence %v", res.OverallConfidence)
	}
	if primary.Calls() != 3 {
		t.Errorf("expected primary to exhaust all strategies, got %d", primary.Calls())
	}
	if fallback.Calls() != 1 {
		t.Errorf("expected 1 fallback attempt, got %d", fallback.Calls())
	}
}

func TestTranscribe_Exhausted(t *testing.T) {
	primary := mock.New("primary",
		mock.FailOutright("primary"), mock.FailOutright("primary"), mock.FailOutright("primary"),
	)
	fallback := mock.New("fallback",
		mock.FailOutright("fallback"), mock.FailOutright("fallback"), mock.FailOutright("fallback"),
	)
	o := NewOrchestrator([]stt.Backend{primary, fallback}, storage.NewMemory(), DefaultConfig())

	_, err := o.Transcribe(context.Background(), smallPayload(), "", "")
	if !errors.Is(err, ErrExhausted) {
		t.Fatalf("expected ErrExhausted, got %v", err)
	}
}

func TestTranscribe_EmptyResultsDoNotWinOverFailures(t *testing.T) {
	// Zero-result responses are not usable output.
	backend := mock.New("primary",
		mock.Outcome{Result: &models.TranscriptionResult{}},
		mock.Outcome{Result: &models.TranscriptionResult{}},
		mock.Outcome{Result: &models.TranscriptionResult{}},
	)
	o := NewOrchestrator([]stt.Backend{backend}, storage.NewMemory(), DefaultConfig())

	_, err := o.Transcribe(context.Background(), smallPayload(), "", "")
	if !errors.Is(err, ErrExhausted) {
		t.Fatalf("expected ErrExhausted for all-empty results, got %v", err)
	}
}

func TestTranscribe_MidSizeReroutesOnPayloadTooLong(t *testing.T) {
	tooLong := stt.NewError(stt.CodePayloadTooLong, "primary", errors.New("payload exceeds inline limit"))
	backend := mock.New("primary",
		mock.Outcome{Err: tooLong},
		mock.WithConfidence(0.9),
	)
	stager := storage.NewMemory()
	o := NewOrchestrator([]stt.Backend{backend}, stager, DefaultConfig())

	res, err := o.Transcribe(context.Background(), payloadOfSize(2<<20), "", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.OverallConfidence != 0.9 {
		t.Errorf("expected the staged retry result, got confidence %v", res.OverallConfidence)
	}
	if backend.InlineCalls != 1 {
		t.Errorf("expected 1 inline attempt, got %d", backend.InlineCalls)
	}
	if backend.StagedCalls != 1 {
		t.Errorf("expected 1 staged attempt, got %d", backend.StagedCalls)
	}
	if stager.Uploads != 1 {
		t.Errorf("expected 1 upload, got %d", stager.Uploads)
	}
}

func TestTranscribe_StagesAtMostOnce(t *testing.T) {
	backend := mock.New("primary",
		mock.FailOutright("primary"),
		mock.WithConfidence(0.9),
	)
	stager := storage.NewMemory()
	o := NewOrchestrator([]stt.Backend{backend}, stager, DefaultConfig())

	_, err := o.Transcribe(context.Background(), payloadOfSize(20<<20), "", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if backend.StagedCalls != 2 {
		t.Errorf("expected 2 staged attempts, got %d", backend.StagedCalls)
	}
	if stager.Uploads != 1 {
		t.Errorf("expected the payload to be uploaded once, got %d", stager.Uploads)
	}
	if stager.Deletes != 1 {
		t.Errorf("expected 1 delete, got %d", stager.Deletes)
	}
}

func TestTranscribe_AppliesVocabularyCorrections(t *testing.T) {
	raw := mock.WithConfidence(0.9)
	raw.Result.FullText = "I wrote java script against my sequel and built the road map"
	backend := mock.New("primary", raw)
	o := NewOrchestrator([]stt.Backend{backend}, storage.NewMemory(), DefaultConfig())

	res, err := o.Transcribe(context.Background(), smallPayload(), "", "product-management")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "I wrote JavaScript against MySQL and built the roadmap"
	if res.FullText != want {
		t.Errorf("expected %q, got %q", want, res.FullText)
	}
}

func TestStagedTimeout(t *testing.T) {
	o := NewOrchestrator(nil, nil, DefaultConfig())

	tests := []struct {
		name      string
		sizeBytes int64
		want      time.Duration
	}{
		{"2MB", 2 << 20, 420 * time.Second},
		{"4MB", 4 << 20, 540 * time.Second},
		{"5MB hits cap", 5 << 20, 600 * time.Second},
		{"50MB stays capped", 50 << 20, 600 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := o.stagedTimeout(tt.sizeBytes); got != tt.want {
				t.Errorf("stagedTimeout(%d) = %v, want %v", tt.sizeBytes, got, tt.want)
			}
		})
	}
}
