package video

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEscapeDrawText(t *testing.T) {
	assert.Equal(t, `it'\\''s`, escapeDrawText("it's"))
	assert.Equal(t, `a\:b`, escapeDrawText("a:b"))
	assert.Equal(t, `100\%`, escapeDrawText("100%"))
	assert.Equal(t, "plain text", escapeDrawText("plain text"))
}

func TestBurnCaptions(t *testing.T) {
	calls := mockFFmpeg(t)
	dir := t.TempDir()
	out := filepath.Join(dir, "captioned.mp4")

	e := NewEditor(40)
	entries := []CaptionEntry{
		{Text: "first line", Start: 0, End: 3},
		{Text: "second line", Start: 3, End: 10},
	}
	require.True(t, e.BurnCaptions(context.Background(), "in.mp4", entries, out))
	assert.FileExists(t, out)

	require.Len(t, *calls, 1)
	call := (*calls)[0]
	assert.Contains(t, call, "drawtext=text='first line'")
	assert.Contains(t, call, "enable='between(t,3.00,10.00)'")
	assert.Contains(t, call, "fontsize=40")
}

func TestBurnCaptionsEmpty(t *testing.T) {
	mockFFmpeg(t)
	e := NewEditor(40)
	assert.False(t, e.BurnCaptions(context.Background(), "in.mp4", nil, "out.mp4"))
}

func TestTrim(t *testing.T) {
	calls := mockFFmpeg(t)
	dir := t.TempDir()
	out := filepath.Join(dir, "trim.mp4")

	e := NewEditor(40)
	require.True(t, e.Trim(context.Background(), "in.mp4", 2, 8, out))
	require.Len(t, *calls, 1)
	assert.Contains(t, (*calls)[0], "-ss 2.00")
	assert.Contains(t, (*calls)[0], "-to 8.00")

	assert.False(t, e.Trim(context.Background(), "in.mp4", 8, 2, out), "inverted window")
}

func TestChangeSpeed(t *testing.T) {
	calls := mockFFmpeg(t)
	dir := t.TempDir()
	out := filepath.Join(dir, "fast.mp4")

	e := NewEditor(40)
	require.True(t, e.ChangeSpeed(context.Background(), "in.mp4", 2, out))
	require.Len(t, *calls, 1)
	assert.Contains(t, (*calls)[0], "setpts=0.5000*PTS")

	assert.False(t, e.ChangeSpeed(context.Background(), "in.mp4", 0, out))
}

func TestOverlayTextPositions(t *testing.T) {
	calls := mockFFmpeg(t)
	dir := t.TempDir()
	e := NewEditor(40)

	require.True(t, e.OverlayText(context.Background(), "in.mp4", "hello", "top", 0, 0, filepath.Join(dir, "a.mp4")))
	require.True(t, e.OverlayText(context.Background(), "in.mp4", "hello", "bottom", 1, 4, filepath.Join(dir, "b.mp4")))
	require.True(t, e.OverlayText(context.Background(), "in.mp4", "hello", "center", 0, 0, filepath.Join(dir, "c.mp4")))

	require.Len(t, *calls, 3)
	assert.Contains(t, (*calls)[0], "y=h*0.08")
	assert.NotContains(t, (*calls)[0], "enable=", "whole-video overlay has no window")
	assert.Contains(t, (*calls)[1], "y=h*0.85")
	assert.Contains(t, (*calls)[1], "enable='between(t,1.00,4.00)'")
	assert.Contains(t, (*calls)[2], "y=(h-text_h)/2")
}
