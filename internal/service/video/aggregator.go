// Package video normalizes remote video-analysis annotations into body
// language insights.
package video

import (
	"math"

	"interview-analysis-service/internal/models"
)

// Track is a detection track mapped from the vendor response at the
// boundary; internal logic never touches vendor types.
type Track struct {
	Confidence float64
}

// Annotations is the internal shape of a remote video annotation result.
type Annotations struct {
	PersonTracks []Track
	FaceTracks   []Track
}

// Label values for modalities the provider found nothing for.
const notAvailable = "Not Available"

// Aggregate turns raw annotations into an eye-contact score, a movement
// score and an overall presence assessment. It never fails: missing
// person or face tracks yield "Not Available" labels contributing zero.
func Aggregate(ann Annotations) *models.VideoAnalysisResult {
	res := &models.VideoAnalysisResult{}

	faceConfidence := maxConfidence(ann.FaceTracks)
	res.FaceDetection = models.DetectionSummary{
		Detected:   len(ann.FaceTracks) > 0,
		Confidence: faceConfidence,
	}

	personConfidence := maxConfidence(ann.PersonTracks)
	res.PersonDetection = models.DetectionSummary{
		Detected:   len(ann.PersonTracks) > 0,
		Confidence: personConfidence,
		TrackCount: len(ann.PersonTracks),
	}

	eyeScore, eyeLabel := eyeContact(res.FaceDetection)
	moveScore, moveLabel := movement(res.PersonDetection)

	numeric := int(math.Round(eyeScore*0.6 + moveScore*0.4))

	insights := models.BodyLanguageInsights{
		EyeContact: eyeLabel,
		Movement:   moveLabel,
		Score:      numeric,
		Confidence: math.Max(faceConfidence, personConfidence),
	}
	insights.OverallPresence = presenceLabel(numeric, res)
	insights.Recommendations = recommendations(eyeLabel, moveLabel)

	res.BodyLanguageInsights = insights
	return res
}

// eyeContact scores sustained camera focus from face detection
// confidence.
func eyeContact(face models.DetectionSummary) (float64, string) {
	if !face.Detected {
		return 0, notAvailable
	}
	switch {
	case face.Confidence > 0.8:
		return 100, "Excellent"
	case face.Confidence > 0.6:
		return 80, "Good"
	case face.Confidence > 0.4:
		return 60, "Fair"
	default:
		return 40, "Needs Improvement"
	}
}

// movement scores motion from person track-count variance. Excessive
// motion is penalized; a moderate amount reads as natural engagement.
func movement(person models.DetectionSummary) (float64, string) {
	if !person.Detected {
		return 0, notAvailable
	}
	var base float64
	var label string
	switch {
	case person.TrackCount > 5:
		base, label = 60, "Very Active"
	case person.TrackCount >= 2:
		base, label = 90, "Moderate"
	default:
		base, label = 70, "Minimal"
	}
	return base * person.Confidence, label
}

func presenceLabel(score int, res *models.VideoAnalysisResult) string {
	if !res.FaceDetection.Detected && !res.PersonDetection.Detected {
		return notAvailable
	}
	switch {
	case score > 85:
		return "Strong"
	case score > 70:
		return "Good"
	case score > 50:
		return "Fair"
	default:
		return "Needs Improvement"
	}
}

func recommendations(eyeLabel, moveLabel string) []string {
	recs := []string{}
	switch eyeLabel {
	case "Needs Improvement", "Fair":
		recs = append(recs, "Look directly at the camera more consistently to build rapport.")
	case notAvailable:
		recs = append(recs, "Position the camera so your face is clearly visible.")
	}
	switch moveLabel {
	case "Very Active":
		recs = append(recs, "Reduce fidgeting and large movements; steady posture reads as confidence.")
	case "Minimal":
		recs = append(recs, "Use natural hand gestures to emphasize key points.")
	}
	if len(recs) == 0 {
		recs = append(recs, "Strong on-camera presence; keep doing what you are doing.")
	}
	return recs
}

func maxConfidence(tracks []Track) float64 {
	var max float64
	for _, t := range tracks {
		if t.Confidence > max {
			max = t.Confidence
		}
	}
	return max
}
