package script

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shortform-pipeline/formats"
)

func TestGenerateDeterministic(t *testing.T) {
	g := NewGenerator()
	topic := "Python vs JavaScript for your first language"

	a, err := g.Generate(topic, "hot_take", "id-1")
	require.NoError(t, err)
	b, err := g.Generate(topic, "hot_take", "id-1")
	require.NoError(t, err)

	assert.Equal(t, a.Hook, b.Hook)
	assert.Equal(t, a.CTA, b.CTA)
	assert.Equal(t, a.Caption, b.Caption)
	assert.Equal(t, a.Hashtags, b.Hashtags)
	assert.Equal(t, a.Segments, b.Segments)
}

func TestGenerateHotTake(t *testing.T) {
	g := NewGenerator()
	topic := "Python vs JavaScript for your first language"

	s, err := g.Generate(topic, "hot_take", "id-1")
	require.NoError(t, err)

	assert.Contains(t, s.Hook, topic, "hook template should embed the topic")
	assert.Len(t, s.Segments, 6)
	assert.Equal(t, 55, s.DurationSec)
	assert.Equal(t, "hot_take", s.FormatKey)
	assert.Equal(t, s.Hook, s.Segments[0].Text)
	assert.Equal(t, s.CTA, s.Segments[len(s.Segments)-1].Text)

	f, err := formats.Lookup("hot_take")
	require.NoError(t, err)
	found := false
	for _, tmpl := range f.CTATemplates {
		if s.CTA == strings.ReplaceAll(tmpl, "{topic}", topic) {
			found = true
		}
	}
	assert.True(t, found, "CTA %q should come from the format's templates", s.CTA)

	require.GreaterOrEqual(t, len(s.Hashtags), 3)
	assert.LessOrEqual(t, len(s.Hashtags), 12)
	seen := map[string]bool{}
	for _, tag := range s.Hashtags {
		assert.True(t, strings.HasPrefix(tag, "#"), "tag %q", tag)
		assert.False(t, seen[tag], "duplicate tag %q", tag)
		seen[tag] = true
	}
	// Topic mentions python and javascript, so the matching niche tags win.
	assert.Contains(t, s.Hashtags, "#python")

	assert.Equal(t, "template", s.Metadata["source"])
	assert.NotEmpty(t, s.Caption)
}

func TestGenerateUnknownFormat(t *testing.T) {
	g := NewGenerator()
	_, err := g.Generate("anything", "no_such_format", "id-1")
	assert.ErrorIs(t, err, formats.ErrUnknownFormat)
}

func TestRoleTextFallback(t *testing.T) {
	got := roleText("mystery_role", "hot_take", "docker", "h", "c")
	assert.Equal(t, "[mystery_role: talk about docker]", got)
}

func TestCareerHashtags(t *testing.T) {
	g := NewGenerator()
	s, err := g.Generate("developer salary negotiation secrets", "listicle", "id-2")
	require.NoError(t, err)

	career := map[string]bool{}
	for _, tag := range hashtagBank["career"] {
		career[tag] = true
	}
	hits := 0
	for _, tag := range s.Hashtags {
		if career[tag] {
			hits++
		}
	}
	assert.GreaterOrEqual(t, hits, 1, "career topic should pull career tags, got %v", s.Hashtags)
}

func TestMakeIDStable(t *testing.T) {
	a := MakeID("docker", "hot_take")
	b := MakeID("docker", "hot_take")
	c := MakeID("docker", "tutorial")
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}
