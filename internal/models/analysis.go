// Package models defines the data structures exchanged between the
// analysis pipeline stages and returned to callers.
package models

import "time"

// MediaPayload is a raw recording handed to the pipeline. It is owned by
// the invocation that received it and is never persisted.
type MediaPayload struct {
	Data      []byte
	MIMEType  string
	SizeBytes int64
}

// TranscriptWord is a single recognized word with timing and confidence.
type TranscriptWord struct {
	Text         string  `json:"text"`
	StartSeconds float64 `json:"startSeconds"`
	EndSeconds   float64 `json:"endSeconds"`
	Confidence   float64 `json:"confidence"`
}

// TranscriptionResult is the outcome of one successful transcription
// attempt. DurationSeconds is always set when Words is non-empty; when the
// provider omits an explicit duration it is derived from the last word's
// end time.
type TranscriptionResult struct {
	FullText          string           `json:"fullText"`
	OverallConfidence float64          `json:"overallConfidence"`
	Words             []TranscriptWord `json:"words"`
	DurationSeconds   float64          `json:"durationSeconds"`
	WordCount         int              `json:"wordCount"`
}

// SpeechPatternMetrics captures delivery characteristics derived from
// word-level transcription output.
type SpeechPatternMetrics struct {
	WordsPerMinute       int     `json:"wordsPerMinute"`
	FillerWordCount      int     `json:"fillerWordCount"`
	FillerWordPercentage float64 `json:"fillerWordPercentage"`
	AveragePauseSeconds  float64 `json:"averagePauseSeconds"`
	LongPauseCount       int     `json:"longPauseCount"`
	ConfidencePercentage float64 `json:"confidencePercentage"`
	TotalWords           int     `json:"totalWords"`
	DurationSeconds      float64 `json:"durationSeconds"`
}

// DetectionSummary reports whether a detection feature found anything and
// how confident the provider was.
type DetectionSummary struct {
	Detected   bool    `json:"detected"`
	Confidence float64 `json:"confidence"`
	TrackCount int     `json:"trackCount,omitempty"`
}

// BodyLanguageInsights is the normalized interpretation of the video
// annotations.
type BodyLanguageInsights struct {
	EyeContact      string   `json:"eyeContact"`
	Movement        string   `json:"movement"`
	OverallPresence string   `json:"overallPresence"`
	Score           int      `json:"score"`
	Confidence      float64  `json:"confidence"`
	Recommendations []string `json:"recommendations"`
}

// VideoAnalysisResult is the normalized output of the video insight
// aggregator. A nil VideoAnalysisResult is a valid, expected state.
type VideoAnalysisResult struct {
	PersonDetection      DetectionSummary     `json:"personDetection"`
	FaceDetection        DetectionSummary     `json:"faceDetection"`
	BodyLanguageInsights BodyLanguageInsights `json:"bodyLanguageInsights"`
}

// ScoreWeights is the weight split applied by the composite scoring
// engine. The three weights always sum to 1.0.
type ScoreWeights struct {
	Content      float64 `json:"content"`
	Delivery     float64 `json:"delivery"`
	BodyLanguage float64 `json:"bodyLanguage"`
}

// CompositeScoreBreakdown is the blended score with its inputs.
type CompositeScoreBreakdown struct {
	Content      float64      `json:"content"`
	Delivery     float64      `json:"delivery"`
	BodyLanguage float64      `json:"bodyLanguage"`
	Total        int          `json:"total"`
	WeightsUsed  ScoreWeights `json:"weightsUsed"`
}

// Quality levels for a transcription quality assessment.
const (
	QualityError    = "error"
	QualityCritical = "critical"
	QualityWarning  = "warning"
	QualityInfo     = "info"
	QualitySuccess  = "success"
)

// TranscriptionQualityAssessment explains how trustworthy the transcript
// is so callers can surface low-confidence results instead of failing
// silently.
type TranscriptionQualityAssessment struct {
	Level       string   `json:"level"`
	Message     string   `json:"message"`
	Suggestions []string `json:"suggestions,omitempty"`
}

// ContentFeedback is the parsed output of the content analysis service.
type ContentFeedback struct {
	Score        int      `json:"score"`
	Strengths    []string `json:"strengths"`
	Improvements []string `json:"improvements"`
	Summary      string   `json:"summary,omitempty"`
}

// AnalysisReport is the terminal artifact of an advanced analysis.
type AnalysisReport struct {
	AnalysisID     string                         `json:"analysisId"`
	Content        ContentFeedback                `json:"content"`
	SpeechPatterns SpeechPatternMetrics           `json:"speechPatterns"`
	Video          *VideoAnalysisResult           `json:"video,omitempty"`
	Score          CompositeScoreBreakdown        `json:"score"`
	Quality        TranscriptionQualityAssessment `json:"quality"`
	Transcript     string                         `json:"transcript"`
	CreatedAt      time.Time                      `json:"createdAt"`
}
