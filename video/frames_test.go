package video

import (
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// charWidth is a fake measurer: every character is 10px wide.
func charWidth(s string) float64 { return float64(len(s)) * 10 }

func TestWrapLines(t *testing.T) {
	lines := wrapLines(charWidth, "one two three four", 90)
	assert.Equal(t, []string{"one two", "three", "four"}, lines)

	// Re-joining reproduces the word sequence.
	assert.Equal(t, "one two three four", strings.Join(strings.Fields(strings.Join(lines, " ")), " "))
}

func TestWrapLinesOverwideWord(t *testing.T) {
	lines := wrapLines(charWidth, "hi supercalifragilistic go", 100)
	assert.Equal(t, []string{"hi", "supercalifragilistic", "go"}, lines)
}

func TestWrapLinesEmpty(t *testing.T) {
	assert.Equal(t, []string{""}, wrapLines(charWidth, "", 100))
	assert.Equal(t, []string{""}, wrapLines(charWidth, "   ", 100))
}

func TestPaletteFor(t *testing.T) {
	assert.Equal(t, palettes["neon"], PaletteFor("hot_take"))
	assert.Equal(t, palettes["ice"], PaletteFor("quick_fact"))
	assert.Equal(t, palettes["dark"], PaletteFor("never_heard_of_it"))
}

func renderedPNG(t *testing.T, path string) (int, int) {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	b := img.Bounds()
	return b.Dx(), b.Dy()
}

func TestRenderText(t *testing.T) {
	dir := t.TempDir()
	g := NewFrameGenerator("hot_take")

	for _, style := range []string{"hook", "body", "accent", "code", "cta", "nonsense"} {
		out := filepath.Join(dir, style+".png")
		require.NoError(t, g.RenderText("Stop doing docker wrong", style, out))
		w, h := renderedPNG(t, out)
		assert.Equal(t, Width, w)
		assert.Equal(t, Height, h)
	}
}

func TestRenderSplit(t *testing.T) {
	dir := t.TempDir()
	g := NewFrameGenerator("this_or_that")
	out := filepath.Join(dir, "split.png")

	require.NoError(t, g.RenderSplit("tabs every day", "spaces forever", out))
	w, h := renderedPNG(t, out)
	assert.Equal(t, Width, w)
	assert.Equal(t, Height, h)
}

func TestRenderLabel(t *testing.T) {
	dir := t.TempDir()
	g := NewFrameGenerator("quick_fact")
	out := filepath.Join(dir, "label.png")

	require.NoError(t, g.RenderLabel("did you know?", "The fact itself goes here", out))
	w, h := renderedPNG(t, out)
	assert.Equal(t, Width, w)
	assert.Equal(t, Height, h)
}
