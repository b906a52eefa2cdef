package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"interview-analysis-service/internal/models"
	"interview-analysis-service/internal/service/analysis"
	"interview-analysis-service/internal/service/content"
	"interview-analysis-service/internal/service/transcription"
)

type stubAnalyzer struct {
	report  *models.AnalysisReport
	err     error
	lastReq analysis.Request
}

func (s *stubAnalyzer) Analyze(_ context.Context, req analysis.Request) (*models.AnalysisReport, error) {
	s.lastReq = req
	return s.report, s.err
}

type formPart struct {
	field, filename, content string
}

func multipartBody(t *testing.T, files []formPart, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	for _, f := range files {
		part, err := w.CreateFormFile(f.field, f.filename)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := part.Write([]byte(f.content)); err != nil {
			t.Fatalf("write form file: %v", err)
		}
	}
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return buf, w.FormDataContentType()
}

func newTestRouter(a Analyzer) http.Handler {
	return NewRouter(Dependencies{Analyzer: a, MaxUploadBytes: 1 << 20})
}

func TestHealthEndpoints(t *testing.T) {
	router := newTestRouter(&stubAnalyzer{})

	for _, path := range []string{"/v1/liveness", "/v1/readiness"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Errorf("%s: expected 200, got %d", path, rec.Code)
		}
	}
}

func TestCreateAnalysis_Success(t *testing.T) {
	stub := &stubAnalyzer{report: &models.AnalysisReport{
		AnalysisID: "a-1",
		Score:      models.CompositeScoreBreakdown{Total: 84},
	}}
	router := newTestRouter(stub)

	body, contentType := multipartBody(t,
		[]formPart{{"audio", "answer.webm", "fake audio bytes"}},
		map[string]string{
			"question":  "Why Go?",
			"domain_id": "software-engineering",
			"language":  "en-GB",
		})
	req := httptest.NewRequest(http.MethodPost, "/v1/analyses", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var report models.AnalysisReport
	if err := json.NewDecoder(rec.Body).Decode(&report); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	if report.AnalysisID != "a-1" || report.Score.Total != 84 {
		t.Errorf("unexpected report %+v", report)
	}

	if stub.lastReq.Question != "Why Go?" {
		t.Errorf("expected question to pass through, got %q", stub.lastReq.Question)
	}
	if stub.lastReq.DomainID != "software-engineering" {
		t.Errorf("expected domain id to pass through, got %q", stub.lastReq.DomainID)
	}
	if stub.lastReq.Language != "en-GB" {
		t.Errorf("expected language to pass through, got %q", stub.lastReq.Language)
	}
	if string(stub.lastReq.Audio.Data) != "fake audio bytes" {
		t.Error("expected audio payload to pass through")
	}
	if stub.lastReq.Video != nil {
		t.Error("expected no video payload")
	}
}

func TestCreateAnalysis_WithVideo(t *testing.T) {
	stub := &stubAnalyzer{report: &models.AnalysisReport{AnalysisID: "a-2"}}
	router := newTestRouter(stub)

	body, contentType := multipartBody(t, []formPart{
		{"audio", "answer.webm", "audio"},
		{"video", "answer.mp4", "video bytes"},
	}, nil)
	req := httptest.NewRequest(http.MethodPost, "/v1/analyses", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if stub.lastReq.Video == nil {
		t.Fatal("expected a video payload")
	}
	if string(stub.lastReq.Video.Data) != "video bytes" {
		t.Error("expected video payload to pass through")
	}
}

func TestCreateAnalysis_MissingAudio(t *testing.T) {
	router := newTestRouter(&stubAnalyzer{})

	body, contentType := multipartBody(t, nil, map[string]string{"question": "Why?"})
	req := httptest.NewRequest(http.MethodPost, "/v1/analyses", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var resp models.ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	if resp.Error.Code != "missing_audio" {
		t.Errorf("expected code missing_audio, got %q", resp.Error.Code)
	}
}

func TestCreateAnalysis_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"exhausted", transcription.ErrExhausted, http.StatusUnprocessableEntity, "transcription_exhausted"},
		{"content failed", content.ErrContentAnalysis, http.StatusBadGateway, "content_analysis_failed"},
		{"timeout", context.DeadlineExceeded, http.StatusGatewayTimeout, "timeout"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "internal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(&stubAnalyzer{err: tt.err})
			body, contentType := multipartBody(t,
				[]formPart{{"audio", "a.webm", "audio"}}, nil)
			req := httptest.NewRequest(http.MethodPost, "/v1/analyses", body)
			req.Header.Set("Content-Type", contentType)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, rec.Code)
			}
			var resp models.ErrorResponse
			if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
				t.Fatalf("decode error response: %v", err)
			}
			if resp.Error.Code != tt.wantCode {
				t.Errorf("expected code %q, got %q", tt.wantCode, resp.Error.Code)
			}
		})
	}
}

func TestCreateAnalysis_NotMultipart(t *testing.T) {
	router := newTestRouter(&stubAnalyzer{})

	req := httptest.NewRequest(http.MethodPost, "/v1/analyses", bytes.NewBufferString(`{"audio":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for a non-multipart body, got %d", rec.Code)
	}
}
