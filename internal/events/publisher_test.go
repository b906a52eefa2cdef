package events

import (
	"context"
	"testing"

	"interview-analysis-service/internal/models"
)

func TestNew_DisabledMode(t *testing.T) {
	tests := []struct {
		name string
		cfg  *Config
	}{
		{"nil config", nil},
		{"disabled", &Config{Enabled: false, Brokers: []string{"localhost:9092"}}},
		{"no brokers", &Config{Enabled: true, Brokers: []string{}}},
		{"nil brokers", &Config{Enabled: true, Brokers: nil}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(tt.cfg)
			if p == nil {
				t.Fatal("expected non-nil publisher")
			}
			if p.enabled {
				t.Error("expected publisher to be disabled")
			}
			if p.writerCompleted != nil {
				t.Error("expected nil completed writer when disabled")
			}
			if p.writerFailed != nil {
				t.Error("expected nil failed writer when disabled")
			}
		})
	}
}

func TestNew_ConfigValues(t *testing.T) {
	cfg := &Config{
		Enabled:        false,
		Brokers:        []string{"localhost:9092"},
		TopicCompleted: "test.completed",
		TopicFailed:    "test.failed",
		Principal:      "test-principal",
	}

	p := New(cfg)

	if p.principal != "test-principal" {
		t.Errorf("expected principal 'test-principal', got %s", p.principal)
	}
	if p.topicCompleted != "test.completed" {
		t.Errorf("expected topic completed 'test.completed', got %s", p.topicCompleted)
	}
	if p.topicFailed != "test.failed" {
		t.Errorf("expected topic failed 'test.failed', got %s", p.topicFailed)
	}
}

func TestPublish_Disabled(t *testing.T) {
	p := New(&Config{Enabled: false})

	completed := models.AnalysisCompleted{
		EventType:  "interview.analysis.completed",
		AnalysisID: "a-1",
		Total:      82,
	}
	if err := p.PublishCompleted(context.Background(), "a-1", completed); err != nil {
		t.Errorf("expected log-only publish to succeed, got %v", err)
	}

	failed := models.AnalysisFailed{
		EventType:  "interview.analysis.failed",
		AnalysisID: "a-1",
		Stage:      "transcription",
	}
	if err := p.PublishFailed(context.Background(), "a-1", failed); err != nil {
		t.Errorf("expected log-only publish to succeed, got %v", err)
	}
}

func TestClose_Disabled(t *testing.T) {
	p := New(&Config{Enabled: false})
	if err := p.Close(); err != nil {
		t.Errorf("expected close to succeed when disabled, got %v", err)
	}
}
