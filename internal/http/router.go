// Package http exposes the analysis pipeline over a JSON/multipart API.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"interview-analysis-service/internal/models"
	"interview-analysis-service/internal/observability/logging"
	"interview-analysis-service/internal/service/analysis"
	"interview-analysis-service/internal/service/content"
	"interview-analysis-service/internal/service/transcription"
)

// Analyzer runs one advanced analysis.
type Analyzer interface {
	Analyze(ctx context.Context, req analysis.Request) (*models.AnalysisReport, error)
}

// Dependencies are the collaborators the router needs.
type Dependencies struct {
	Analyzer       Analyzer
	MaxUploadBytes int64
}

type server struct {
	analyzer       Analyzer
	maxUploadBytes int64
	log            zerolog.Logger
}

// NewRouter constructs the HTTP router for the service.
func NewRouter(deps Dependencies) http.Handler {
	s := &server{
		analyzer:       deps.Analyzer,
		maxUploadBytes: deps.MaxUploadBytes,
		log:            logging.WithComponent("http"),
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/v1/liveness", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/v1/readiness", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	r.Route("/v1", func(r chi.Router) {
		r.Post("/analyses", s.handleCreateAnalysis)
	})

	return r
}

// handleCreateAnalysis accepts a multipart form with an `audio` part,
// an optional `video` part and `language`, `domain_id` and `question`
// fields, and returns the assembled analysis report.
func (s *server) handleCreateAnalysis(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		s.writeError(w, r, http.StatusBadRequest, "invalid_multipart", "could not parse multipart form")
		return
	}

	audio, ok := s.readPart(w, r, "audio", true)
	if !ok {
		return
	}
	video, ok := s.readPart(w, r, "video", false)
	if !ok {
		return
	}

	req := analysis.Request{
		Audio:    *audio,
		Video:    video,
		Language: r.FormValue("language"),
		DomainID: r.FormValue("domain_id"),
		Question: r.FormValue("question"),
	}

	report, err := s.analyzer.Analyze(r.Context(), req)
	if err != nil {
		s.writeAnalysisError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(report); err != nil {
		s.log.Error().Err(err).Msg("Failed to encode report")
	}
}

// readPart extracts one uploaded file as a media payload. The bool is
// false when the response has already been written.
func (s *server) readPart(w http.ResponseWriter, r *http.Request, name string, required bool) (*models.MediaPayload, bool) {
	file, header, err := r.FormFile(name)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			if required {
				s.writeError(w, r, http.StatusBadRequest, "missing_"+name, "the "+name+" part is required")
				return nil, false
			}
			return nil, true
		}
		s.writeError(w, r, http.StatusBadRequest, "invalid_"+name, "could not read the "+name+" part")
		return nil, false
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, "invalid_"+name, "could not read the "+name+" part")
		return nil, false
	}
	if len(data) == 0 {
		if required {
			s.writeError(w, r, http.StatusBadRequest, "empty_"+name, "the "+name+" part is empty")
			return nil, false
		}
		return nil, true
	}

	return &models.MediaPayload{
		Data:      data,
		MIMEType:  header.Header.Get("Content-Type"),
		SizeBytes: int64(len(data)),
	}, true
}

func (s *server) writeAnalysisError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, transcription.ErrExhausted):
		s.writeError(w, r, http.StatusUnprocessableEntity, "transcription_exhausted",
			"no usable transcript could be produced from the recording")
	case errors.Is(err, content.ErrContentAnalysis):
		s.writeError(w, r, http.StatusBadGateway, "content_analysis_failed",
			"the content analysis service failed")
	case errors.Is(err, context.DeadlineExceeded):
		s.writeError(w, r, http.StatusGatewayTimeout, "timeout", "the analysis timed out")
	default:
		s.log.Error().Err(err).Msg("Analysis failed")
		s.writeError(w, r, http.StatusInternalServerError, "internal", "the analysis failed")
	}
}

func (s *server) writeError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	resp := models.ErrorResponse{
		Error:     models.APIError{Code: code, Message: message},
		RequestID: middleware.GetReqID(r.Context()),
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}
