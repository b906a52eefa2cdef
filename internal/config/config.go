// Package config loads service configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"time"

	cenv "github.com/caarlos0/env/v11"

	"interview-analysis-service/internal/service/analysis"
	"interview-analysis-service/internal/service/transcription"
)

// Configuration is the full service configuration.
type Configuration struct {
	Service ServiceConfig `envPrefix:"SERVICE_"`
	Log     LogConfig     `envPrefix:"LOG_"`
	STT     STTConfig     `envPrefix:"STT_"`
	Quality QualityConfig `envPrefix:"QUALITY_"`
	Video   VideoConfig   `envPrefix:"VIDEO_"`
	Content ContentConfig `envPrefix:"CONTENT_"`
	Storage StorageConfig `envPrefix:"STORAGE_"`
	Kafka   KafkaConfig   `envPrefix:"KAFKA_"`
}

// ServiceConfig holds process-level settings.
type ServiceConfig struct {
	Principal      string `env:"PRINCIPAL" envDefault:"svc-interview-analysis"`
	HTTPAddr       string `env:"HTTP_ADDR" envDefault:":8080"`
	ObsAddr        string `env:"OBS_ADDR" envDefault:":9090"`
	MaxUploadBytes int64  `env:"MAX_UPLOAD_BYTES" envDefault:"104857600"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `env:"LEVEL" envDefault:"info"`
	Format string `env:"FORMAT" envDefault:"json"`
}

// STTConfig holds transcription settings. The thresholds and the staged
// timeout formula are deployment-tunable.
type STTConfig struct {
	Provider            string  `env:"PROVIDER" envDefault:"mock"`
	ProjectID           string  `env:"PROJECT_ID"`
	Location            string  `env:"LOCATION" envDefault:"global"`
	Model               string  `env:"MODEL" envDefault:"latest_long"`
	LanguageCode        string  `env:"LANGUAGE_CODE" envDefault:"en-US"`
	AcceptConfidence    float64 `env:"ACCEPT_CONFIDENCE" envDefault:"0.5"`
	InlineLimitBytes    int64   `env:"INLINE_LIMIT_BYTES" envDefault:"1048576"`
	StagedFloorBytes    int64   `env:"STAGED_FLOOR_BYTES" envDefault:"10485760"`
	TimeoutBaseSeconds  int     `env:"TIMEOUT_BASE_SECONDS" envDefault:"300"`
	TimeoutPerMBSeconds int     `env:"TIMEOUT_PER_MB_SECONDS" envDefault:"60"`
	TimeoutCapSeconds   int     `env:"TIMEOUT_CAP_SECONDS" envDefault:"600"`
	PhraseBoost         float32 `env:"PHRASE_BOOST" envDefault:"15"`
}

// QualityConfig holds the transcription quality assessment tiers.
type QualityConfig struct {
	Critical     float64 `env:"CRITICAL" envDefault:"0.7"`
	Warning      float64 `env:"WARNING" envDefault:"0.85"`
	LowWordCount int     `env:"LOW_WORD_COUNT" envDefault:"20"`
}

// VideoConfig holds video analysis settings.
type VideoConfig struct {
	Enabled        bool `env:"ENABLED" envDefault:"false"`
	TimeoutSeconds int  `env:"TIMEOUT_SECONDS" envDefault:"300"`
}

// ContentConfig holds content analysis settings.
type ContentConfig struct {
	BaseURL        string `env:"BASE_URL" envDefault:"https://api.groq.com/openai/v1"`
	APIKey         string `env:"API_KEY"`
	Model          string `env:"MODEL" envDefault:"meta-llama/llama-4-scout-17b-16e-instruct"`
	TimeoutSeconds int    `env:"TIMEOUT_SECONDS" envDefault:"45"`
}

// StorageConfig holds the staging bucket settings.
type StorageConfig struct {
	Bucket string `env:"BUCKET"`
	Prefix string `env:"PREFIX" envDefault:"staging"`
}

// KafkaConfig holds event publishing settings.
type KafkaConfig struct {
	Enabled        bool     `env:"ENABLED" envDefault:"false"`
	Brokers        []string `env:"BROKERS" envSeparator:","`
	TopicCompleted string   `env:"TOPIC_COMPLETED" envDefault:"interview.analysis.completed"`
	TopicFailed    string   `env:"TOPIC_FAILED" envDefault:"interview.analysis.failed"`
}

// Load parses the environment and validates the result.
func Load() (*Configuration, error) {
	var cfg Configuration
	if err := cenv.Parse(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate fails fast on configuration that would only break at request
// time.
func (c *Configuration) Validate() error {
	switch c.STT.Provider {
	case "mock":
	case "google":
		if c.STT.ProjectID == "" {
			return errors.New("STT_PROJECT_ID is required for the google provider")
		}
		if c.Storage.Bucket == "" {
			return errors.New("STORAGE_BUCKET is required for the google provider")
		}
		if c.Content.APIKey == "" {
			return errors.New("CONTENT_API_KEY is required for the google provider")
		}
	default:
		return fmt.Errorf("unknown STT provider %q", c.STT.Provider)
	}

	if c.STT.AcceptConfidence < 0 || c.STT.AcceptConfidence > 1 {
		return errors.New("STT_ACCEPT_CONFIDENCE must be within [0,1]")
	}
	if c.STT.InlineLimitBytes <= 0 || c.STT.StagedFloorBytes <= c.STT.InlineLimitBytes {
		return errors.New("staged floor must be greater than the inline limit")
	}
	if c.Quality.Critical >= c.Quality.Warning {
		return errors.New("QUALITY_CRITICAL must be below QUALITY_WARNING")
	}
	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		return errors.New("KAFKA_BROKERS is required when Kafka is enabled")
	}
	if c.Service.MaxUploadBytes <= 0 {
		return errors.New("SERVICE_MAX_UPLOAD_BYTES must be > 0")
	}
	return nil
}

// TranscriptionConfig maps the STT section onto the orchestrator's
// config.
func (c *Configuration) TranscriptionConfig() transcription.Config {
	return transcription.Config{
		InlineLimitBytes: c.STT.InlineLimitBytes,
		StagedFloorBytes: c.STT.StagedFloorBytes,
		AcceptConfidence: c.STT.AcceptConfidence,
		TimeoutBase:      time.Duration(c.STT.TimeoutBaseSeconds) * time.Second,
		TimeoutPerMB:     time.Duration(c.STT.TimeoutPerMBSeconds) * time.Second,
		TimeoutCap:       time.Duration(c.STT.TimeoutCapSeconds) * time.Second,
		DefaultLanguage:  c.STT.LanguageCode,
		PhraseBoost:      c.STT.PhraseBoost,
	}
}

// QualityThresholds maps the quality section onto the analysis
// orchestrator's thresholds.
func (c *Configuration) QualityThresholds() analysis.QualityThresholds {
	return analysis.QualityThresholds{
		Critical:     c.Quality.Critical,
		Warning:      c.Quality.Warning,
		LowWordCount: c.Quality.LowWordCount,
	}
}
