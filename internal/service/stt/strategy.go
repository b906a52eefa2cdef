package stt

// Codec identifies an audio encoding understood by the backends.
type Codec string

const (
	CodecWebmOpus Codec = "WEBM_OPUS"
	CodecOggOpus  Codec = "OGG_OPUS"
	CodecLinear16 Codec = "LINEAR16"
	CodecFlac     Codec = "FLAC"
)

// EncodingStrategy is one (codec, sample rate) candidate tried during the
// transcription cascade. SampleRateHertz of 0 lets the provider detect
// the rate from the container.
type EncodingStrategy struct {
	Codec           Codec
	SampleRateHertz int32
	Description     string
}

// DefaultStrategies returns the cascade order: the browser-native codec at
// its recorded rate first, a container fallback at the same rate, then the
// primary codec at a reduced rate for recordings with broken headers.
// The list is fixed; consumers treat it as read-only.
func DefaultStrategies() []EncodingStrategy {
	return []EncodingStrategy{
		{Codec: CodecWebmOpus, SampleRateHertz: 48000, Description: "WebM Opus at native 48kHz"},
		{Codec: CodecOggOpus, SampleRateHertz: 48000, Description: "Ogg Opus at native 48kHz"},
		{Codec: CodecWebmOpus, SampleRateHertz: 16000, Description: "WebM Opus downsampled to 16kHz"},
	}
}
