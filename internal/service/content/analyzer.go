// Package content scores the substance of an answer by prompting a
// generative model and parsing its structured reply.
package content

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"interview-analysis-service/internal/models"
	"interview-analysis-service/internal/upstream/openai"
)

// ErrContentAnalysis wraps any content-scoring failure. It is fatal for
// the request: a composite score without a content judgment is
// meaningless, so there is no silent fallback.
var ErrContentAnalysis = fmt.Errorf("content analysis failed")

const systemPrompt = `You are an experienced interview coach evaluating a candidate's answer.
Judge substance only: structure, specificity, relevance and evidence of impact.
Reply with EXACTLY this format and nothing else:

SCORE: <integer 0-100>
STRENGTHS:
- <strength>
IMPROVEMENTS:
- <improvement>
SUMMARY: <one or two sentences>`

// ChatClient is the slice of the upstream client this package needs.
type ChatClient interface {
	ChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Input is everything available to build the scoring prompt.
type Input struct {
	Question   string
	Transcript string
	Speech     models.SpeechPatternMetrics
	Video      *models.VideoAnalysisResult
}

// Analyzer invokes the content analysis service and parses its reply.
type Analyzer struct {
	client  ChatClient
	model   string
	timeout time.Duration
}

// NewAnalyzer builds a content analyzer.
func NewAnalyzer(client ChatClient, model string, timeout time.Duration) *Analyzer {
	return &Analyzer{client: client, model: model, timeout: timeout}
}

// Analyze scores a transcript. Parse failures are this system's
// responsibility and surface as ErrContentAnalysis.
func (a *Analyzer) Analyze(ctx context.Context, in Input) (models.ContentFeedback, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	resp, err := a.client.ChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       a.model,
		Temperature: 0.2,
		Messages: []openai.ChatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: buildPrompt(in)},
		},
	})
	if err != nil {
		return models.ContentFeedback{}, fmt.Errorf("%w: %v", ErrContentAnalysis, err)
	}

	feedback, err := ParseFeedback(resp.Content)
	if err != nil {
		return models.ContentFeedback{}, fmt.Errorf("%w: %v", ErrContentAnalysis, err)
	}
	return feedback, nil
}

func buildPrompt(in Input) string {
	var b strings.Builder
	if in.Question != "" {
		fmt.Fprintf(&b, "QUESTION: %s\n\n", in.Question)
	}
	fmt.Fprintf(&b, "ANSWER TRANSCRIPT:\n%s\n\n", in.Transcript)
	fmt.Fprintf(&b, "DELIVERY CONTEXT: %d words in %.0f seconds, %d filler words.\n",
		in.Speech.TotalWords, in.Speech.DurationSeconds, in.Speech.FillerWordCount)
	if in.Video != nil {
		fmt.Fprintf(&b, "ON-CAMERA CONTEXT: eye contact %s, movement %s.\n",
			in.Video.BodyLanguageInsights.EyeContact, in.Video.BodyLanguageInsights.Movement)
	}
	return b.String()
}

// ParseFeedback extracts the SCORE/STRENGTHS/IMPROVEMENTS/SUMMARY block
// from a model reply.
func ParseFeedback(raw string) (models.ContentFeedback, error) {
	fb := models.ContentFeedback{}
	scoreFound := false
	section := ""

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "SCORE:"):
			value := strings.TrimSpace(strings.TrimPrefix(line, "SCORE:"))
			score, err := strconv.Atoi(value)
			if err != nil {
				return fb, fmt.Errorf("malformed score %q", value)
			}
			if score < 0 || score > 100 {
				return fb, fmt.Errorf("score %d out of range", score)
			}
			fb.Score = score
			scoreFound = true
			section = ""
		case strings.HasPrefix(line, "STRENGTHS:"):
			section = "strengths"
		case strings.HasPrefix(line, "IMPROVEMENTS:"):
			section = "improvements"
		case strings.HasPrefix(line, "SUMMARY:"):
			fb.Summary = strings.TrimSpace(strings.TrimPrefix(line, "SUMMARY:"))
			section = "summary"
		case strings.HasPrefix(line, "-"):
			item := strings.TrimSpace(strings.TrimPrefix(line, "-"))
			if item == "" {
				continue
			}
			switch section {
			case "strengths":
				fb.Strengths = append(fb.Strengths, item)
			case "improvements":
				fb.Improvements = append(fb.Improvements, item)
			}
		case line != "" && section == "summary":
			fb.Summary = strings.TrimSpace(fb.Summary + " " + line)
		}
	}

	if !scoreFound {
		return fb, fmt.Errorf("no SCORE block in reply")
	}
	return fb, nil
}
