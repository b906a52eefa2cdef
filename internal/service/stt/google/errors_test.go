package google

import (
	"context"
	"errors"
	"testing"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"interview-analysis-service/internal/service/stt"
)

func TestClassifyInline(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want stt.Code
	}{
		{"invalid argument is too long", status.Error(codes.InvalidArgument, "audio exceeds limit"), stt.CodePayloadTooLong},
		{"out of range is too long", status.Error(codes.OutOfRange, "too much audio"), stt.CodePayloadTooLong},
		{"deadline exceeded", status.Error(codes.DeadlineExceeded, "deadline"), stt.CodeTimeout},
		{"context deadline", context.DeadlineExceeded, stt.CodeTimeout},
		{"canceled", status.Error(codes.Canceled, "canceled"), stt.CodeTimeout},
		{"unavailable", status.Error(codes.Unavailable, "down"), stt.CodeUnavailable},
		{"unauthenticated", status.Error(codes.Unauthenticated, "no creds"), stt.CodeUnavailable},
		{"quota", status.Error(codes.ResourceExhausted, "quota"), stt.CodeUnavailable},
		{"anything else", errors.New("boom"), stt.CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifyInline("google-speech-v2", tt.err)
			if got.Code != tt.want {
				t.Errorf("expected code %q, got %q", tt.want, got.Code)
			}
			if got.Backend != "google-speech-v2" {
				t.Errorf("expected backend name on the error, got %q", got.Backend)
			}
		})
	}
}

func TestClassifyStaged_SizeNeverTooLong(t *testing.T) {
	// The staged path has no payload size limit to bounce off; an
	// InvalidArgument there is a genuine request bug.
	got := classifyStaged("google-speech-v2", status.Error(codes.InvalidArgument, "bad recognizer"))
	if got.Code != stt.CodeInternal {
		t.Errorf("expected internal, got %q", got.Code)
	}

	if got := classifyStaged("google-speech-v2", status.Error(codes.DeadlineExceeded, "slow")); got.Code != stt.CodeTimeout {
		t.Errorf("expected timeout, got %q", got.Code)
	}
	if got := classifyStaged("google-speech-v2", status.Error(codes.Unavailable, "down")); got.Code != stt.CodeUnavailable {
		t.Errorf("expected unavailable, got %q", got.Code)
	}
}
