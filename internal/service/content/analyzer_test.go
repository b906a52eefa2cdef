package content

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"interview-analysis-service/internal/models"
	"interview-analysis-service/internal/upstream/openai"
)

type stubChat struct {
	reply   string
	err     error
	lastReq openai.ChatCompletionRequest
}

func (s *stubChat) ChatCompletion(_ context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	s.lastReq = req
	if s.err != nil {
		return openai.ChatCompletionResponse{}, s.err
	}
	return openai.ChatCompletionResponse{Content: s.reply}, nil
}

const wellFormedReply = `SCORE: 82
STRENGTHS:
- Concrete example with measurable impact
- Clear chronological structure
IMPROVEMENTS:
- Quantify the outcome
SUMMARY: A strong answer that would benefit from harder numbers.`

func TestParseFeedback(t *testing.T) {
	fb, err := ParseFeedback(wellFormedReply)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fb.Score != 82 {
		t.Errorf("expected score 82, got %d", fb.Score)
	}
	if len(fb.Strengths) != 2 {
		t.Errorf("expected 2 strengths, got %v", fb.Strengths)
	}
	if len(fb.Improvements) != 1 {
		t.Errorf("expected 1 improvement, got %v", fb.Improvements)
	}
	if fb.Summary != "A strong answer that would benefit from harder numbers." {
		t.Errorf("unexpected summary %q", fb.Summary)
	}
}

func TestParseFeedback_MultilineSummary(t *testing.T) {
	raw := "SCORE: 60\nSUMMARY: First sentence.\nSecond sentence."
	fb, err := ParseFeedback(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fb.Summary != "First sentence. Second sentence." {
		t.Errorf("unexpected summary %q", fb.Summary)
	}
}

func TestParseFeedback_Malformed(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty reply", ""},
		{"prose only", "The candidate did fine overall."},
		{"non-numeric score", "SCORE: excellent"},
		{"score too high", "SCORE: 140"},
		{"negative score", "SCORE: -5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseFeedback(tt.raw); err == nil {
				t.Error("expected a parse error")
			}
		})
	}
}

func TestAnalyze(t *testing.T) {
	chat := &stubChat{reply: wellFormedReply}
	a := NewAnalyzer(chat, "test-model", 5*time.Second)

	fb, err := a.Analyze(context.Background(), Input{
		Question:   "Tell me about a hard bug.",
		Transcript: "I once chased a race condition for a week.",
		Speech:     models.SpeechPatternMetrics{TotalWords: 9, DurationSeconds: 4},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fb.Score != 82 {
		t.Errorf("expected score 82, got %d", fb.Score)
	}
	if chat.lastReq.Model != "test-model" {
		t.Errorf("expected configured model, got %q", chat.lastReq.Model)
	}
	if len(chat.lastReq.Messages) != 2 {
		t.Fatalf("expected system and user messages, got %d", len(chat.lastReq.Messages))
	}
	user := chat.lastReq.Messages[1].Content
	if !strings.Contains(user, "Tell me about a hard bug.") {
		t.Error("expected the question in the prompt")
	}
	if !strings.Contains(user, "race condition") {
		t.Error("expected the transcript in the prompt")
	}
	if strings.Contains(user, "ON-CAMERA CONTEXT") {
		t.Error("expected no on-camera context without video insights")
	}
}

func TestAnalyze_IncludesVideoContext(t *testing.T) {
	chat := &stubChat{reply: wellFormedReply}
	a := NewAnalyzer(chat, "test-model", 5*time.Second)

	_, err := a.Analyze(context.Background(), Input{
		Transcript: "answer",
		Video: &models.VideoAnalysisResult{
			BodyLanguageInsights: models.BodyLanguageInsights{EyeContact: "Good", Movement: "Minimal"},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(chat.lastReq.Messages[1].Content, "eye contact Good") {
		t.Error("expected on-camera context in the prompt")
	}
}

func TestAnalyze_WrapsErrors(t *testing.T) {
	tests := []struct {
		name string
		chat *stubChat
	}{
		{"upstream failure", &stubChat{err: errors.New("502 bad gateway")}},
		{"unparseable reply", &stubChat{reply: "I refuse to use the format."}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewAnalyzer(tt.chat, "test-model", 5*time.Second)
			_, err := a.Analyze(context.Background(), Input{Transcript: "answer"})
			if !errors.Is(err, ErrContentAnalysis) {
				t.Fatalf("expected ErrContentAnalysis, got %v", err)
			}
		})
	}
}
