package analysis

import (
	"fmt"

	"interview-analysis-service/internal/models"
)

// QualityThresholds are the confidence tiers for the transcription
// quality assessment. Empirically chosen; configurable per deployment.
type QualityThresholds struct {
	Critical     float64 // below: level critical
	Warning      float64 // below: level warning
	LowWordCount int     // below: level info
}

// DefaultQualityThresholds returns the production defaults.
func DefaultQualityThresholds() QualityThresholds {
	return QualityThresholds{Critical: 0.7, Warning: 0.85, LowWordCount: 20}
}

// AssessQuality derives a quality assessment from a transcription result
// so callers can explain low-confidence results to the end user instead
// of presenting a silent failure.
func AssessQuality(res *models.TranscriptionResult, t QualityThresholds) models.TranscriptionQualityAssessment {
	if res == nil || res.FullText == "" {
		return models.TranscriptionQualityAssessment{
			Level:   models.QualityError,
			Message: "No speech could be transcribed from the recording.",
			Suggestions: []string{
				"Check that the microphone was recording.",
				"Re-record in a quieter environment.",
			},
		}
	}

	switch {
	case res.OverallConfidence < t.Critical:
		return models.TranscriptionQualityAssessment{
			Level: models.QualityCritical,
			Message: fmt.Sprintf("Transcription confidence is very low (%.0f%%); the analysis may not reflect what was actually said.",
				res.OverallConfidence*100),
			Suggestions: []string{
				"Re-record closer to the microphone.",
				"Reduce background noise.",
				"Speak a little slower and more clearly.",
			},
		}
	case res.OverallConfidence < t.Warning:
		return models.TranscriptionQualityAssessment{
			Level: models.QualityWarning,
			Message: fmt.Sprintf("Transcription confidence is moderate (%.0f%%); some words may be misrecognized.",
				res.OverallConfidence*100),
			Suggestions: []string{
				"Review the transcript for misheard technical terms.",
			},
		}
	case res.WordCount < t.LowWordCount:
		return models.TranscriptionQualityAssessment{
			Level:   models.QualityInfo,
			Message: fmt.Sprintf("The answer is very short (%d words); scores on brief answers are less meaningful.", res.WordCount),
			Suggestions: []string{
				"Aim for at least a minute of speaking time per answer.",
			},
		}
	default:
		return models.TranscriptionQualityAssessment{
			Level:   models.QualitySuccess,
			Message: "Transcription quality is good.",
		}
	}
}
