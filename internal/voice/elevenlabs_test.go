package voice

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestSynthesize(t *testing.T) {
	var gotPath, gotKey string
	var gotBody ttsRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("xi-api-key")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "audio/mpeg")
		_, _ = w.Write([]byte("fake-mp3"))
	}))
	defer srv.Close()

	client := NewClientWithEndpoint("test-key", "voice-1", srv.URL)
	audio, err := client.Synthesize(context.Background(), "olá mundo")
	if err != nil {
		t.Fatalf("Synthesize failed: %v", err)
	}

	if string(audio) != "fake-mp3" {
		t.Errorf("audio = %q, want fake-mp3", audio)
	}
	if !strings.HasSuffix(gotPath, "/voice-1") {
		t.Errorf("path = %q, want voice id suffix", gotPath)
	}
	if gotKey != "test-key" {
		t.Errorf("api key header = %q", gotKey)
	}
	if gotBody.Text != "olá mundo" {
		t.Errorf("text = %q", gotBody.Text)
	}
	if gotBody.ModelID != DefaultModelID {
		t.Errorf("model = %q, want %q", gotBody.ModelID, DefaultModelID)
	}
	if gotBody.VoiceSettings.Stability != 0.4 || gotBody.VoiceSettings.SimilarityBoost != 1.0 {
		t.Errorf("voice settings = %+v", gotBody.VoiceSettings)
	}
}

func TestSynthesizeNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"quota exceeded"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := NewClientWithEndpoint("test-key", "voice-1", srv.URL)
	audio, err := client.Synthesize(context.Background(), "texto")
	if err == nil {
		t.Fatal("expected error for non-200 response")
	}
	if audio != nil {
		t.Errorf("audio should be nil on failure, got %d bytes", len(audio))
	}
}

func TestSynthesizeMissingCredentials(t *testing.T) {
	client := NewClient("", "voice-1")
	if _, err := client.Synthesize(context.Background(), "texto"); err == nil {
		t.Fatal("expected error for missing API key")
	}
}

func TestSynthesizeEmptyBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewClientWithEndpoint("test-key", "voice-1", srv.URL)
	if _, err := client.Synthesize(context.Background(), "texto"); err == nil {
		t.Fatal("expected error for empty audio stream")
	}
}
