package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shortform-pipeline/config"
)

func testCfg(url string) config.BackendConfig {
	return config.BackendConfig{
		URL:            url,
		Model:          "llama3",
		TimeoutSec:     5,
		MinIntervalSec: 1,
	}
}

func TestGenerateScriptSuccess(t *testing.T) {
	reply := `{"hook": "Stop doing docker wrong", "segments": [` +
		`{"timing": "0-3s", "text": "Stop doing docker wrong", "visual": "close up"},` +
		`{"timing": "3-10s", "text": "Here is why", "visual": "b-roll"}],` +
		`"caption": "the truth", "hashtags": ["#docker"], "cta": "comment below", "sound_mood": "intense"}`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/generate", r.URL.Path)
		var req generateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "llama3", req.Model)
		assert.False(t, req.Stream)
		assert.Contains(t, req.Prompt, "docker")

		json.NewEncoder(w).Encode(generateResponse{Response: "```json\n" + reply + "\n```"})
	}))
	defer srv.Close()

	c := New(testCfg(srv.URL))
	s, ok := c.GenerateScript(context.Background(), "docker", "hot_take", "id-b")
	require.True(t, ok)

	assert.Equal(t, "id-b", s.ID)
	assert.Equal(t, "Stop doing docker wrong", s.Hook)
	require.Len(t, s.Segments, 2)
	assert.Equal(t, "llm_generated", s.Segments[0].Role)
	assert.Equal(t, "close up", s.Segments[0].VisualDirection)
	assert.Equal(t, "comment below", s.CTA)
	assert.Equal(t, "intense", s.SoundMood)
	assert.Equal(t, "ollama", s.Metadata["source"])
}

func TestGenerateScriptSoundMoodFallsBackToFormat(t *testing.T) {
	reply := `{"hook": "h", "segments": [{"timing": "0-3s", "text": "t"}], "cta": "c"}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(generateResponse{Response: reply})
	}))
	defer srv.Close()

	s, ok := New(testCfg(srv.URL)).GenerateScript(context.Background(), "docker", "hot_take", "id")
	require.True(t, ok)
	assert.Equal(t, "intense / dramatic buildup", s.SoundMood)
}

func TestGenerateScriptFailures(t *testing.T) {
	t.Run("malformed script json", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(generateResponse{Response: "definitely not json"})
		}))
		defer srv.Close()
		s, ok := New(testCfg(srv.URL)).GenerateScript(context.Background(), "docker", "hot_take", "id")
		assert.False(t, ok)
		assert.Nil(t, s)
	})

	t.Run("missing hook", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(generateResponse{Response: `{"segments": [{"timing": "0-3s", "text": "t"}]}`})
		}))
		defer srv.Close()
		_, ok := New(testCfg(srv.URL)).GenerateScript(context.Background(), "docker", "hot_take", "id")
		assert.False(t, ok)
	})

	t.Run("http error status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "overloaded", http.StatusServiceUnavailable)
		}))
		defer srv.Close()
		_, ok := New(testCfg(srv.URL)).GenerateScript(context.Background(), "docker", "hot_take", "id")
		assert.False(t, ok)
	})

	t.Run("connection refused", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close()
		_, ok := New(testCfg(srv.URL)).GenerateScript(context.Background(), "docker", "hot_take", "id")
		assert.False(t, ok)
	})

	t.Run("unknown format", func(t *testing.T) {
		_, ok := New(testCfg("http://localhost:1")).GenerateScript(context.Background(), "docker", "nope", "id")
		assert.False(t, ok)
	})
}

func TestCleanJSON(t *testing.T) {
	assert.Equal(t, `{"a":1}`, cleanJSON("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, cleanJSON("```\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, cleanJSON(`{"a":1}`))
}
