package site

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shortform-pipeline/config"
	"shortform-pipeline/types"
)

func writeScript(t *testing.T, dir string, s *types.Script) {
	t.Helper()
	data, err := json.Marshal(s)
	require.NoError(t, err)
	name := types.Slugify(s.Topic) + "-" + s.FormatKey + ".json"
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), data, 0644))
}

func testPublisher(t *testing.T) (*Publisher, string, string, string) {
	t.Helper()
	base := t.TempDir()
	scripts := filepath.Join(base, "scripts")
	videos := filepath.Join(base, "videos")
	siteDir := filepath.Join(base, "site")
	require.NoError(t, os.MkdirAll(scripts, 0755))
	require.NoError(t, os.MkdirAll(videos, 0755))

	cfg := config.SiteConfig{Title: "Test Clips", BaseURL: "https://example.test/clips"}
	p := NewPublisher(cfg, scripts, videos, siteDir)
	p.now = func() time.Time { return time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC) }
	return p, scripts, videos, siteDir
}

func TestRebuildEmpty(t *testing.T) {
	p, _, _, siteDir := testPublisher(t)
	require.NoError(t, p.Rebuild())

	assert.FileExists(t, filepath.Join(siteDir, "index.html"))
	assert.FileExists(t, filepath.Join(siteDir, "feed.xml"))
	assert.FileExists(t, filepath.Join(siteDir, "sitemap.xml"))
}

func TestRebuildWithContent(t *testing.T) {
	p, scripts, videos, siteDir := testPublisher(t)

	withVideo := &types.Script{
		ID:          "a",
		Topic:       "docker explained",
		FormatKey:   "tutorial",
		Hook:        "Learn docker in under 60 seconds.",
		Caption:     "docker caption",
		Hashtags:    []string{"#docker", "#tech"},
		DurationSec: 55,
		CreatedAt:   "2026-08-30T10:00:00Z",
	}
	noVideo := &types.Script{
		ID:          "b",
		Topic:       "rust hype",
		FormatKey:   "hot_take",
		Hook:        "Hot take: rust is NOT what you think.",
		Caption:     "rust caption",
		DurationSec: 55,
		CreatedAt:   "2026-08-31T10:00:00Z",
	}
	writeScript(t, scripts, withVideo)
	writeScript(t, scripts, noVideo)
	require.NoError(t, os.WriteFile(
		filepath.Join(videos, "docker-explained-tutorial.mp4"), []byte("mp4 bytes"), 0644))

	require.NoError(t, p.Rebuild())

	index, err := os.ReadFile(filepath.Join(siteDir, "index.html"))
	require.NoError(t, err)
	html := string(index)
	assert.Contains(t, html, "Test Clips")
	assert.Contains(t, html, "Learn docker in under 60 seconds.")
	assert.Contains(t, html, "videos/docker-explained-tutorial.mp4")
	// Newest first.
	assert.Less(t, strings.Index(html, "rust is NOT"), strings.Index(html, "Learn docker"))

	feed, err := os.ReadFile(filepath.Join(siteDir, "feed.xml"))
	require.NoError(t, err)
	xml := string(feed)
	assert.Contains(t, xml, "<enclosure")
	assert.Contains(t, xml, "docker-explained-tutorial.mp4")
	assert.Contains(t, xml, "rust caption")

	sitemap, err := os.ReadFile(filepath.Join(siteDir, "sitemap.xml"))
	require.NoError(t, err)
	assert.Contains(t, string(sitemap), "https://example.test/clips/#docker-explained")
	assert.Contains(t, string(sitemap), "2026-08-30")
}

func TestRebuildListsArticles(t *testing.T) {
	p, _, _, siteDir := testPublisher(t)
	postsDir := filepath.Join(siteDir, "posts")
	require.NoError(t, os.MkdirAll(postsDir, 0755))
	require.NoError(t, os.WriteFile(
		filepath.Join(postsDir, "docker-vs-podman.md"),
		[]byte("# Docker vs Podman\n\nBody text.\n"), 0644))

	require.NoError(t, p.Rebuild())

	index, err := os.ReadFile(filepath.Join(siteDir, "index.html"))
	require.NoError(t, err)
	assert.Contains(t, string(index), "Docker vs Podman")
	assert.Contains(t, string(index), "posts/docker-vs-podman.md")

	sitemap, err := os.ReadFile(filepath.Join(siteDir, "sitemap.xml"))
	require.NoError(t, err)
	assert.Contains(t, string(sitemap), "https://example.test/clips/posts/docker-vs-podman.md")
}

func TestRebuildSkipsCorruptScripts(t *testing.T) {
	p, scripts, _, siteDir := testPublisher(t)
	require.NoError(t, os.WriteFile(filepath.Join(scripts, "broken.json"), []byte("{nope"), 0644))

	require.NoError(t, p.Rebuild())
	assert.FileExists(t, filepath.Join(siteDir, "index.html"))
}
