// Package backend talks to an optional local text model for richer
// scripts. Every failure is soft: callers get (nil, false) and fall back
// to the template generator.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"shortform-pipeline/config"
	"shortform-pipeline/formats"
	"shortform-pipeline/types"
)

// Client calls an Ollama-compatible generate endpoint.
type Client struct {
	url        string
	model      string
	httpClient *http.Client
	limiter    *rate.Limiter
}

func New(cfg config.BackendConfig) *Client {
	return &Client{
		url:        strings.TrimSuffix(cfg.URL, "/"),
		model:      cfg.Model,
		httpClient: &http.Client{Timeout: time.Duration(cfg.TimeoutSec) * time.Second},
		limiter:    rate.NewLimiter(rate.Every(time.Duration(cfg.MinIntervalSec)*time.Second), 1),
	}
}

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type generateResponse struct {
	Response string `json:"response"`
}

// scriptJSON is the reply shape the model is asked for.
type scriptJSON struct {
	Hook     string   `json:"hook"`
	Segments []struct {
		Timing string `json:"timing"`
		Text   string `json:"text"`
		Visual string `json:"visual"`
	} `json:"segments"`
	Caption   string   `json:"caption"`
	Hashtags  []string `json:"hashtags"`
	CTA       string   `json:"cta"`
	SoundMood string   `json:"sound_mood"`
}

// GenerateScript asks the model for a full script. The bool result is
// false on any timeout, transport or parse failure; this path never
// returns an error past its own boundary.
func (c *Client) GenerateScript(ctx context.Context, topic, formatKey, id string) (*types.Script, bool) {
	f, err := formats.Lookup(formatKey)
	if err != nil {
		return nil, false
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, false
	}

	body, err := json.Marshal(generateRequest{
		Model:  c.model,
		Prompt: buildPrompt(topic, f),
		Stream: false,
	})
	if err != nil {
		return nil, false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return nil, false
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Printf("[backend] request failed: %v — falling back to templates", err)
		return nil, false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("[backend] unexpected status %d — falling back to templates", resp.StatusCode)
		return nil, false
	}

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, false
	}

	var gen generateResponse
	if err := json.Unmarshal(respBytes, &gen); err != nil {
		log.Printf("[backend] bad envelope: %v", err)
		return nil, false
	}

	var raw scriptJSON
	if err := json.Unmarshal([]byte(cleanJSON(gen.Response)), &raw); err != nil {
		log.Printf("[backend] bad script JSON: %v", err)
		return nil, false
	}
	if raw.Hook == "" || len(raw.Segments) == 0 {
		log.Printf("[backend] reply missing hook or segments")
		return nil, false
	}

	segments := make([]types.Segment, 0, len(raw.Segments))
	for _, seg := range raw.Segments {
		segments = append(segments, types.Segment{
			Timing:          seg.Timing,
			Role:            "llm_generated",
			Text:            seg.Text,
			VisualDirection: seg.Visual,
		})
	}

	soundMood := raw.SoundMood
	if soundMood == "" {
		soundMood = f.SoundMood
	}

	return &types.Script{
		ID:          id,
		Topic:       topic,
		FormatKey:   formatKey,
		Hook:        raw.Hook,
		Segments:    segments,
		Caption:     raw.Caption,
		Hashtags:    raw.Hashtags,
		SoundMood:   soundMood,
		CTA:         raw.CTA,
		DurationSec: 60,
		CreatedAt:   time.Now().UTC().Format(time.RFC3339),
		Metadata: map[string]interface{}{
			"source": "ollama",
			"model":  c.model,
		},
	}, true
}

func buildPrompt(topic string, f formats.Format) string {
	var sb strings.Builder
	sb.WriteString("You are a viral short-form content strategist for tech creators.\n\n")
	fmt.Fprintf(&sb, "Topic: %s\n", topic)
	fmt.Fprintf(&sb, "Format: %s\n", f.Label)
	sb.WriteString("Target duration: 45-60 seconds\n\n")
	sb.WriteString("Generate a complete short-form video script with:\n")
	sb.WriteString("1. A killer hook (first 3 seconds) that stops the scroll\n")
	sb.WriteString("2. Timed segments with spoken text and visual directions\n")
	sb.WriteString("3. A strong call-to-action that drives comments\n")
	sb.WriteString("4. A post caption\n")
	sb.WriteString("5. 8-12 relevant hashtags\n\n")
	sb.WriteString("Return ONLY valid JSON matching this structure:\n")
	sb.WriteString(`{"hook": "...", "segments": [{"timing": "0-3s", "text": "...", ` +
		`"visual": "..."}], "caption": "...", "hashtags": ["#..."], ` +
		`"cta": "...", "sound_mood": "..."}` + "\n")
	return sb.String()
}

// cleanJSON strips markdown fences if the model wraps its reply.
func cleanJSON(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
