package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"interview-analysis-service/internal/app"
	"interview-analysis-service/internal/config"
	"interview-analysis-service/internal/events"
	httpapi "interview-analysis-service/internal/http"
	"interview-analysis-service/internal/observability"
	"interview-analysis-service/internal/service/analysis"
	"interview-analysis-service/internal/service/content"
	"interview-analysis-service/internal/service/stt"
	sttgoogle "interview-analysis-service/internal/service/stt/google"
	sttmock "interview-analysis-service/internal/service/stt/mock"
	"interview-analysis-service/internal/service/transcription"
	"interview-analysis-service/internal/service/video"
	videogoogle "interview-analysis-service/internal/service/video/google"
	"interview-analysis-service/internal/storage"
	"interview-analysis-service/internal/upstream/openai"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Configuration error")
	}

	application := app.New(cfg)
	application.Start()

	ctx := context.Background()

	// Remote clients are constructed once here and passed down; a client
	// that cannot be built aborts startup.
	var backends []stt.Backend
	var stager storage.Stager
	var videoAnalyzer analysis.VideoAnalyzer

	switch cfg.STT.Provider {
	case "google":
		v2, err := sttgoogle.NewV2(ctx, cfg.STT.ProjectID, cfg.STT.Location, cfg.STT.Model)
		if err != nil {
			log.Fatal().Err(err).Msg("Speech v2 backend init failed")
		}
		defer v2.Close()
		v1, err := sttgoogle.NewV1(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("Speech v1 backend init failed")
		}
		defer v1.Close()
		backends = []stt.Backend{v2, v1}

		gcs, err := storage.NewGCS(ctx, cfg.Storage.Bucket, cfg.Storage.Prefix)
		if err != nil {
			log.Fatal().Err(err).Msg("Staging store init failed")
		}
		defer gcs.Close()
		stager = gcs

		if cfg.Video.Enabled {
			annotator, err := videogoogle.New(ctx)
			if err != nil {
				log.Fatal().Err(err).Msg("Video intelligence client init failed")
			}
			defer annotator.Close()
			videoAnalyzer = video.NewService(annotator, gcs,
				time.Duration(cfg.Video.TimeoutSeconds)*time.Second)
		}
	default:
		backends = []stt.Backend{sttmock.New("mock")}
		stager = storage.NewMemory()
	}

	transcriber := transcription.NewOrchestrator(backends, stager, cfg.TranscriptionConfig())

	llm := openai.New(cfg.Content.BaseURL, cfg.Content.APIKey, nil)
	contentAnalyzer := content.NewAnalyzer(llm, cfg.Content.Model,
		time.Duration(cfg.Content.TimeoutSeconds)*time.Second)

	publisher := events.New(&events.Config{
		Enabled:        cfg.Kafka.Enabled,
		Brokers:        cfg.Kafka.Brokers,
		TopicCompleted: cfg.Kafka.TopicCompleted,
		TopicFailed:    cfg.Kafka.TopicFailed,
		Principal:      cfg.Service.Principal,
	})
	defer publisher.Close()

	orchestrator := analysis.NewOrchestrator(
		transcriber, videoAnalyzer, contentAnalyzer, publisher, cfg.QualityThresholds())

	var ready observability.ReadyCheck
	if cfg.STT.Provider == "google" {
		ready = llm.CheckModels
	}
	obs := observability.NewServer(cfg.Service.ObsAddr, ready)
	obs.Start()

	router := httpapi.NewRouter(httpapi.Dependencies{
		Analyzer:       orchestrator,
		MaxUploadBytes: cfg.Service.MaxUploadBytes,
	})
	server := &http.Server{
		Addr:              cfg.Service.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		log.Info().Str("addr", cfg.Service.HTTPAddr).Msg("Interview analysis service started")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP serve failed")
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP shutdown error")
	}
	if err := obs.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Observability shutdown error")
	}
	application.Shutdown()
}
