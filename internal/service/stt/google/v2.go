// Package google provides Google Cloud Speech-to-Text backends for both
// API generations: v2 (newer, higher nominal accuracy) and v1 (older,
// more conservative).
package google

import (
	"context"
	"fmt"

	speechv2 "cloud.google.com/go/speech/apiv2"
	speechpb "cloud.google.com/go/speech/apiv2/speechpb"

	"interview-analysis-service/internal/models"
	"interview-analysis-service/internal/service/stt"
)

const v2Name = "google-speech-v2"

// V2Backend implements stt.Backend against the Speech v2 API.
// Requires GOOGLE_APPLICATION_CREDENTIALS to be set.
type V2Backend struct {
	client     *speechv2.Client
	recognizer string
	model      string
}

// NewV2 creates a Speech v2 backend bound to the ad-hoc recognizer of the
// given project and location.
func NewV2(ctx context.Context, projectID, location, model string) (*V2Backend, error) {
	c, err := speechv2.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("speech v2 client: %w", err)
	}
	if location == "" {
		location = "global"
	}
	if model == "" {
		model = "latest_long"
	}
	return &V2Backend{
		client:     c,
		recognizer: fmt.Sprintf("projects/%s/locations/%s/recognizers/_", projectID, location),
		model:      model,
	}, nil
}

func (b *V2Backend) Name() string { return v2Name }

// Recognize performs a synchronous inline recognition.
func (b *V2Backend) Recognize(ctx context.Context, req stt.Request) (*models.TranscriptionResult, error) {
	resp, err := b.client.Recognize(ctx, &speechpb.RecognizeRequest{
		Recognizer: b.recognizer,
		Config:     b.recognitionConfig(req),
		AudioSource: &speechpb.RecognizeRequest_Content{
			Content: req.Audio,
		},
	})
	if err != nil {
		return nil, classifyInline(v2Name, err)
	}
	return resultFromV2(resp.GetResults()), nil
}

// RecognizeStaged runs a batch recognition job against a staged URI and
// waits for it, honoring the deadline on ctx.
func (b *V2Backend) RecognizeStaged(ctx context.Context, req stt.Request) (*models.TranscriptionResult, error) {
	op, err := b.client.BatchRecognize(ctx, &speechpb.BatchRecognizeRequest{
		Recognizer: b.recognizer,
		Config:     b.recognitionConfig(req),
		Files: []*speechpb.BatchRecognizeFileMetadata{
			{AudioSource: &speechpb.BatchRecognizeFileMetadata_Uri{Uri: req.StagedURI}},
		},
		RecognitionOutputConfig: &speechpb.RecognitionOutputConfig{
			Output: &speechpb.RecognitionOutputConfig_InlineResponseConfig{
				InlineResponseConfig: &speechpb.InlineOutputConfig{},
			},
		},
	})
	if err != nil {
		return nil, classifyStaged(v2Name, err)
	}
	resp, err := op.Wait(ctx)
	if err != nil {
		return nil, classifyStaged(v2Name, err)
	}

	fileResult, ok := resp.GetResults()[req.StagedURI]
	if !ok {
		return resultFromV2(nil), nil
	}
	if s := fileResult.GetError(); s != nil && s.GetCode() != 0 {
		return nil, stt.NewError(stt.CodeInternal, v2Name, fmt.Errorf("batch file result: %s", s.GetMessage()))
	}
	return resultFromV2(fileResult.GetInlineResult().GetTranscript().GetResults()), nil
}

// Close releases the underlying client connection.
func (b *V2Backend) Close() error { return b.client.Close() }

func (b *V2Backend) recognitionConfig(req stt.Request) *speechpb.RecognitionConfig {
	cfg := &speechpb.RecognitionConfig{
		Model:         b.model,
		LanguageCodes: []string{req.LanguageCode},
		Features: &speechpb.RecognitionFeatures{
			EnableAutomaticPunctuation: true,
			EnableWordTimeOffsets:      true,
			EnableWordConfidence:       true,
		},
	}

	if req.Strategy.SampleRateHertz > 0 {
		cfg.DecodingConfig = &speechpb.RecognitionConfig_ExplicitDecodingConfig{
			ExplicitDecodingConfig: &speechpb.ExplicitDecodingConfig{
				Encoding:          encodingV2(req.Strategy.Codec),
				SampleRateHertz:   req.Strategy.SampleRateHertz,
				AudioChannelCount: 1,
			},
		}
	} else {
		cfg.DecodingConfig = &speechpb.RecognitionConfig_AutoDecodingConfig{
			AutoDecodingConfig: &speechpb.AutoDetectDecodingConfig{},
		}
	}

	if len(req.Phrases) > 0 {
		phrases := make([]*speechpb.PhraseSet_Phrase, 0, len(req.Phrases))
		for _, p := range req.Phrases {
			phrases = append(phrases, &speechpb.PhraseSet_Phrase{Value: p, Boost: req.PhraseBoost})
		}
		cfg.Adaptation = &speechpb.SpeechAdaptation{
			PhraseSets: []*speechpb.SpeechAdaptation_AdaptationPhraseSet{
				{
					Value: &speechpb.SpeechAdaptation_AdaptationPhraseSet_InlinePhraseSet{
						InlinePhraseSet: &speechpb.PhraseSet{Phrases: phrases},
					},
				},
			},
		}
	}
	return cfg
}

func encodingV2(c stt.Codec) speechpb.ExplicitDecodingConfig_AudioEncoding {
	switch c {
	case stt.CodecWebmOpus:
		return speechpb.ExplicitDecodingConfig_WEBM_OPUS
	case stt.CodecOggOpus:
		return speechpb.ExplicitDecodingConfig_OGG_OPUS
	case stt.CodecFlac:
		return speechpb.ExplicitDecodingConfig_FLAC
	default:
		return speechpb.ExplicitDecodingConfig_LINEAR16
	}
}

func resultFromV2(results []*speechpb.SpeechRecognitionResult) *models.TranscriptionResult {
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
				StartSeconds: w.GetStartOffset().AsDuration().Seconds(),
				EndSeconds:   w.GetEndOffset().AsDuration().Seconds(),
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
