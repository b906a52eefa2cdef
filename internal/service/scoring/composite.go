// Package scoring blends content, delivery and body-language sub-scores
// into one weighted result, reweighting when a modality is missing.
package scoring

import (
	"math"

	"interview-analysis-service/internal/models"
)

var (
	weightsWithVideo = models.ScoreWeights{Content: 0.60, Delivery: 0.25, BodyLanguage: 0.15}
	weightsAudioOnly = models.ScoreWeights{Content: 0.70, Delivery: 0.30, BodyLanguage: 0}
)

// Score computes the composite breakdown. delivery may be nil when no
// speech metrics exist; video may be nil when the modality was absent or
// degraded, in which case body language contributes nothing and the
// remaining weights rebalance.
func Score(content float64, delivery *models.SpeechPatternMetrics, video *models.VideoAnalysisResult) models.CompositeScoreBreakdown {
	weights := weightsAudioOnly
	if video != nil {
		weights = weightsWithVideo
	}

	deliveryScore := 0.0
	if delivery != nil {
		deliveryScore = deliverySubScore(*delivery)
	}

	bodyLanguage := 0.0
	if video != nil {
		bodyLanguage = float64(video.BodyLanguageInsights.Score)
	}

	total := content*weights.Content + deliveryScore*weights.Delivery + bodyLanguage*weights.BodyLanguage

	return models.CompositeScoreBreakdown{
		Content:      clamp(content),
		Delivery:     clamp(deliveryScore),
		BodyLanguage: clamp(bodyLanguage),
		Total:        int(math.Round(clamp(total))),
		WeightsUsed:  weights,
	}
}

// deliverySubScore starts at 100 and applies pace, filler and pause
// penalties, then blends in recognition confidence.
func deliverySubScore(m models.SpeechPatternMetrics) float64 {
	score := 100.0

	wpm := float64(m.WordsPerMinute)
	switch {
	case wpm < 100 || wpm > 180:
		score -= 15
	case wpm < 120 || wpm > 160:
		score -= 5
	}

	if m.FillerWordPercentage > 5 {
		score -= math.Min(20, m.FillerWordPercentage*2)
	}

	if m.LongPauseCount > 3 {
		score -= math.Min(15, float64(m.LongPauseCount)*3)
	}

	return clamp(score*0.7 + m.ConfidencePercentage*0.3)
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
