package storage

import (
	"context"
	"strings"
	"testing"
)

func TestMemory_UploadDelete(t *testing.T) {
	m := NewMemory()

	uri, err := m.Upload(context.Background(), []byte("payload"), "audio/webm")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(uri, "mem://") {
		t.Errorf("expected a mem:// URI, got %q", uri)
	}
	if m.Len() != 1 {
		t.Errorf("expected 1 staged object, got %d", m.Len())
	}

	if err := m.Delete(context.Background(), uri); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Len() != 0 {
		t.Errorf("expected 0 staged objects, got %d", m.Len())
	}

	if err := m.Delete(context.Background(), uri); err == nil {
		t.Error("expected an error deleting a missing object")
	}
}

func TestMemory_UniqueURIs(t *testing.T) {
	m := NewMemory()
	seen := map[string]bool{}
	for i := 0; i < 10; i++ {
		uri, err := m.Upload(context.Background(), []byte("x"), "audio/webm")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if seen[uri] {
			t.Fatalf("duplicate URI %q", uri)
		}
		seen[uri] = true
	}
}

func TestParseGSURI(t *testing.T) {
	tests := []struct {
		uri        string
		bucket     string
		object     string
		expectFail bool
	}{
		{uri: "gs://media-staging/staging/abc.webm", bucket: "media-staging", object: "staging/abc.webm"},
		{uri: "gs://b/o", bucket: "b", object: "o"},
		{uri: "http://b/o", expectFail: true},
		{uri: "gs://bucket-only", expectFail: true},
		{uri: "", expectFail: true},
	}

	for _, tt := range tests {
		t.Run(tt.uri, func(t *testing.T) {
			bucket, object, err := parseGSURI(tt.uri)
			if tt.expectFail {
				if err == nil {
					t.Error("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if bucket != tt.bucket || object != tt.object {
				t.Errorf("got %q/%q, want %q/%q", bucket, object, tt.bucket, tt.object)
			}
		})
	}
}
