// Package voice provides text-to-speech synthesis via the ElevenLabs API.
package voice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	// DefaultModelID is the ElevenLabs turbo model, tuned for fast delivery.
	DefaultModelID = "eleven_turbo_v2_5"

	// DefaultEndpoint is the ElevenLabs text-to-speech endpoint; the voice id
	// is appended per request.
	DefaultEndpoint = "https://api.elevenlabs.io/v1/text-to-speech"

	// Synthesis parameters: lower stability makes delivery faster and more
	// dynamic, full similarity keeps the voice tone from drifting.
	defaultStability  = 0.4
	defaultSimilarity = 1.0
)

// Client calls the ElevenLabs text-to-speech API with a fixed voice and
// fixed synthesis parameters.
type Client struct {
	apiKey   string
	voiceID  string
	endpoint string
	client   *http.Client
}

// NewClient creates a synthesis client. apiKey may be empty; synthesis then
// fails at call time, which the orchestrator converts to a no-audio outcome.
func NewClient(apiKey, voiceID string) *Client {
	return &Client{
		apiKey:   apiKey,
		voiceID:  voiceID,
		endpoint: DefaultEndpoint,
		client:   &http.Client{Timeout: 30 * time.Second},
	}
}

// NewClientWithEndpoint creates a client against a custom endpoint (tests).
func NewClientWithEndpoint(apiKey, voiceID, endpoint string) *Client {
	c := NewClient(apiKey, voiceID)
	c.endpoint = endpoint
	return c
}

// ttsRequest is the request format for the ElevenLabs API.
type ttsRequest struct {
	Text          string        `json:"text"`
	ModelID       string        `json:"model_id"`
	VoiceSettings voiceSettings `json:"voice_settings"`
}

type voiceSettings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
}

// Synthesize converts text to an MP3 byte stream. Any failure (missing
// credentials, non-success status, transport error) is returned as an error;
// callers on the request path treat it as an explicit no-audio result.
func (c *Client) Synthesize(ctx context.Context, text string) ([]byte, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("ElevenLabs API key not configured")
	}

	reqBody := ttsRequest{
		Text:    text,
		ModelID: DefaultModelID,
		VoiceSettings: voiceSettings{
			Stability:       defaultStability,
			SimilarityBoost: defaultSimilarity,
		},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/%s", c.endpoint, c.voiceID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("xi-api-key", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(body))
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read audio stream: %w", err)
	}
	if len(audio) == 0 {
		return nil, fmt.Errorf("empty audio stream")
	}

	return audio, nil
}
