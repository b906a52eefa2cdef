package google

import (
	"context"
	"fmt"
	"strings"

	speechv1 "cloud.google.com/go/speech/apiv1"
	speechpb "cloud.google.com/go/speech/apiv1/speechpb"

	"interview-analysis-service/internal/models"
	"interview-analysis-service/internal/service/stt"
)

const v1Name = "google-speech-v1"

// V1Backend implements stt.Backend against the Speech v1 API. It is the
// fallback generation used when the whole v2 cascade fails outright.
type V1Backend struct {
	client *speechv1.Client
}

// NewV1 creates a Speech v1 backend.
func NewV1(ctx context.Context) (*V1Backend, error) {
	c, err := speechv1.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("speech v1 client: %w", err)
	}
	return &V1Backend{client: c}, nil
}

func (b *V1Backend) Name() string { return v1Name }

// Recognize performs a synchronous inline recognition.
func (b *V1Backend) Recognize(ctx context.Context, req stt.Request) (*models.TranscriptionResult, error) {
	resp, err := b.client.Recognize(ctx, &speechpb.RecognizeRequest{
		Config: recognitionConfigV1(req),
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{Content: req.Audio},
		},
	})
	if err != nil {
		return nil, classifyInline(v1Name, err)
	}
	return resultFromV1(resp.GetResults()), nil
}

// RecognizeStaged runs a long-running recognition job against a staged URI
// and waits for it, honoring the deadline on ctx.
func (b *V1Backend) RecognizeStaged(ctx context.Context, req stt.Request) (*models.TranscriptionResult, error) {
	op, err := b.client.LongRunningRecognize(ctx, &speechpb.LongRunningRecognizeRequest{
		Config: recognitionConfigV1(req),
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Uri{Uri: req.StagedURI},
		},
	})
	if err != nil {
		return nil, classifyStaged(v1Name, err)
	}
	resp, err := op.Wait(ctx)
	if err != nil {
		return nil, classifyStaged(v1Name, err)
	}
	return resultFromV1(resp.GetResults()), nil
}

// Close releases the underlying client connection.
func (b *V1Backend) Close() error { return b.client.Close() }

func recognitionConfigV1(req stt.Request) *speechpb.RecognitionConfig {
	cfg := &speechpb.RecognitionConfig{
		Encoding:                   encodingV1(req.Strategy.Codec),
		LanguageCode:               req.LanguageCode,
		EnableAutomaticPunctuation: true,
		EnableWordTimeOffsets:      true,
		EnableWordConfidence:       true,
	}
	if req.Strategy.SampleRateHertz > 0 {
		cfg.SampleRateHertz = req.Strategy.SampleRateHertz
	}
	if len(req.Phrases) > 0 {
		cfg.SpeechContexts = []*speechpb.SpeechContext{
			{Phrases: req.Phrases, Boost: req.PhraseBoost},
		}
	}
	return cfg
}

func encodingV1(c stt.Codec) speechpb.RecognitionConfig_AudioEncoding {
	switch c {
	case stt.CodecWebmOpus:
		return speechpb.RecognitionConfig_WEBM_OPUS
	case stt.CodecOggOpus:
		return speechpb.RecognitionConfig_OGG_OPUS
	case stt.CodecFlac:
		return speechpb.RecognitionConfig_FLAC
	default:
		return speechpb.RecognitionConfig_LINEAR16
	}
}

func resultFromV1(results []*speechpb.SpeechRecognitionResult) *models.TranscriptionResult {
	out := &models.TranscriptionResult{}
	var confidenceSum float64
	var scored int

	for _, r := range results {
		if len(r.GetAlternatives()) == 0 {
			continue
		}
		alt := r.GetAlternatives()[0]
		if out.FullText != "" {
			out.FullText += " "
		}
		out.FullText += alt.GetTranscript()
		confidenceSum += float64(alt.GetConfidence())
		scored++

		for _, w := range alt.GetWords() {
			out.Words = append(out.Words, models.TranscriptWord{
				Text:         w.GetWord(),
				StartSeconds: w.GetStartTime().AsDuration().Seconds(),
				EndSeconds:   w.GetEndTime().AsDuration().Seconds(),
				Confidence:   float64(w.GetConfidence()),
			})
		}
	}

	if scored > 0 {
		out.OverallConfidence = confidenceSum / float64(scored)
	}
	finalize(out)
	return out
}

// finalize fills the derived fields shared by both generations. Duration
// falls back to the last word's end time when the provider omits it.
func finalize(res *models.TranscriptionResult) {
	if len(res.Words) > 0 {
		res.WordCount = len(res.Words)
		if res.DurationSeconds == 0 {
			res.DurationSeconds = res.Words[len(res.Words)-1].EndSeconds
		}
	} else {
		res.WordCount = len(strings.Fields(res.FullText))
	}
}
