// Package speech derives delivery metrics from word-level transcription
// output. Pure computation, no I/O, no failure mode.
package speech

import (
	"math"
	"strings"

	"interview-analysis-service/internal/models"
)

// fillerWords are matched case-insensitively as whole words or phrases.
var fillerWords = []string{
	"um", "uh", "like", "you know", "basically", "actually", "so",
	"well", "i mean",
}

const longPauseSeconds = 2.0

// Analyze computes speech pattern metrics from a transcription result.
// It returns all-zero metrics when there are no words or no duration and
// never divides by zero.
func Analyze(res *models.TranscriptionResult) models.SpeechPatternMetrics {
	if res == nil || len(res.Words) == 0 {
		return models.SpeechPatternMetrics{}
	}

	m := models.SpeechPatternMetrics{
		TotalWords:      len(res.Words),
		DurationSeconds: res.DurationSeconds,
	}

	if res.DurationSeconds > 0 {
		m.WordsPerMinute = int(math.Round(float64(len(res.Words)) / res.DurationSeconds * 60))
	}

	m.FillerWordCount = countFillers(res.Words)
	m.FillerWordPercentage = float64(m.FillerWordCount) / float64(len(res.Words)) * 100

	var pauseSum float64
	var pauseCount int
	for i := 1; i < len(res.Words); i++ {
		pause := res.Words[i].StartSeconds - res.Words[i-1].EndSeconds
		if pause <= 0 {
			continue
		}
		pauseSum += pause
		pauseCount++
		if pause > longPauseSeconds {
			m.LongPauseCount++
		}
	}
	if pauseCount > 0 {
		m.AveragePauseSeconds = pauseSum / float64(pauseCount)
	}

	var confidenceSum float64
	for _, w := range res.Words {
		confidenceSum += w.Confidence
	}
	m.ConfidencePercentage = confidenceSum / float64(len(res.Words)) * 100

	return m
}

// countFillers counts case-insensitive whole-word and phrase matches
// against the filler vocabulary. Multi-word fillers consume their words
// so "you know" is one filler, not one plus a stray "know".
func countFillers(words []models.TranscriptWord) int {
	tokens := make([]string, len(words))
	for i, w := range words {
		tokens[i] = normalizeToken(w.Text)
	}

	phrases := [][]string{}
	singles := map[string]bool{}
	for _, f := range fillerWords {
		parts := strings.Fields(f)
		if len(parts) > 1 {
			phrases = append(phrases, parts)
		} else {
			singles[f] = true
		}
	}

	count := 0
	i := 0
	for i < len(tokens) {
		matched := 0
		for _, p := range phrases {
			if matchesAt(tokens, i, p) {
				matched = len(p)
				break
			}
		}
		if matched > 0 {
			count++
			i += matched
			continue
		}
		if singles[tokens[i]] {
			count++
		}
		i++
	}
	return count
}

func matchesAt(tokens []string, i int, phrase []string) bool {
	if i+len(phrase) > len(tokens) {
		return false
	}
	for j, p := range phrase {
		if tokens[i+j] != p {
			return false
		}
	}
	return true
}

func normalizeToken(s string) string {
	return strings.Trim(strings.ToLower(s), ".,!?;:'\"")
}
