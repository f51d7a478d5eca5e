package video

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockFFmpeg swaps the exec seams for a helper process that records its
// args and creates the output file (the last argument), restoring the
// real seams on cleanup.
func mockFFmpeg(t *testing.T) *[]string {
	t.Helper()
	var calls []string

	origExec := execCommandContext
	origLook := lookPath
	execCommandContext = func(ctx context.Context, name string, args ...string) *exec.Cmd {
		calls = append(calls, name+" "+strings.Join(args, " "))
		cs := append([]string{"-test.run=TestHelperProcess", "--", name}, args...)
		cmd := exec.CommandContext(ctx, os.Args[0], cs...)
		cmd.Env = append(os.Environ(), "GO_WANT_HELPER_PROCESS=1")
		return cmd
	}
	lookPath = func(string) (string, error) { return "/usr/bin/ffmpeg", nil }
	t.Cleanup(func() {
		execCommandContext = origExec
		lookPath = origLook
	})
	return &calls
}

// TestHelperProcess is the fake ffmpeg. It touches the output path so
// downstream stages find the file they expect.
func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}
	args := os.Args
	for i, a := range args {
		if a == "--" {
			args = args[i+1:]
			break
		}
	}
	if len(args) > 1 {
		out := args[len(args)-1]
		_ = os.WriteFile(out, []byte("fake media"), 0644)
	}
	os.Exit(0)
}

func TestParseTiming(t *testing.T) {
	cases := []struct {
		in         string
		start, end float64
	}{
		{"0-3s", 0, 3},
		{"12-18s", 12, 18},
		{" 3 - 10s ", 3, 10},
		{"5s", 5, 8},
		{"garbage", 0, 3},
		{"7-bad", 0, 3},
		{"9-4s", 9, 12},
	}
	for _, tc := range cases {
		start, end := ParseTiming(tc.in)
		assert.Equal(t, tc.start, start, "start of %q", tc.in)
		assert.Equal(t, tc.end, end, "end of %q", tc.in)
	}
}

func TestHasFFmpeg(t *testing.T) {
	mockFFmpeg(t)
	assert.True(t, HasFFmpeg())

	lookPath = func(string) (string, error) { return "", exec.ErrNotFound }
	assert.False(t, HasFFmpeg())
}

func TestFrameToClip(t *testing.T) {
	calls := mockFFmpeg(t)
	dir := t.TempDir()
	out := filepath.Join(dir, "clip.mp4")

	a := NewAssembler()
	ok := a.FrameToClip(context.Background(), "frame.png", 5, "zoom_in", out)
	require.True(t, ok)
	assert.FileExists(t, out)

	require.Len(t, *calls, 1)
	call := (*calls)[0]
	assert.Contains(t, call, "-loop 1")
	assert.Contains(t, call, "zoompan")
	assert.Contains(t, call, "-t 5.00")
	assert.Contains(t, call, "libx264")
}

func TestMotionFilters(t *testing.T) {
	assert.Contains(t, motionFilter("zoom_in", 3), "min(1+on/90*0.15,1.15)")
	assert.Contains(t, motionFilter("zoom_out", 3), "if(eq(on,1),1.15")
	assert.Contains(t, motionFilter("fade_in", 3), "fade=t=in:st=0:d=0.50")
	assert.Contains(t, motionFilter("fade_in", 0.6), "d=0.30")
	assert.Contains(t, motionFilter("shake", 3), "crop=w=1060:h=1900")
	assert.Contains(t, motionFilter("ken_burns", 3), "0.08")
	assert.Equal(t, "format=yuv420p", motionFilter("", 3))
	assert.Equal(t, "format=yuv420p", motionFilter("unknown", 3))
}

func TestConcatenateSingleClip(t *testing.T) {
	calls := mockFFmpeg(t)
	dir := t.TempDir()
	src := filepath.Join(dir, "only.mp4")
	require.NoError(t, os.WriteFile(src, []byte("clip"), 0644))
	out := filepath.Join(dir, "out.mp4")

	a := NewAssembler()
	require.True(t, a.Concatenate(context.Background(), []string{src}, out))
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "clip", string(data))
	assert.Empty(t, *calls, "single clip should not invoke ffmpeg")
}

func TestConcatenateMultipleClips(t *testing.T) {
	calls := mockFFmpeg(t)
	dir := t.TempDir()
	var clips []string
	for i := 0; i < 3; i++ {
		p := filepath.Join(dir, fmt.Sprintf("c%d.mp4", i))
		require.NoError(t, os.WriteFile(p, []byte("clip"), 0644))
		clips = append(clips, p)
	}
	out := filepath.Join(dir, "out.mp4")

	a := NewAssembler()
	require.True(t, a.Concatenate(context.Background(), clips, out))
	assert.FileExists(t, out)

	require.Len(t, *calls, 1)
	assert.Contains(t, (*calls)[0], "-f concat")
	assert.Contains(t, (*calls)[0], "+faststart")

	leftover, err := filepath.Glob(filepath.Join(dir, "concat-*.txt"))
	require.NoError(t, err)
	assert.Empty(t, leftover, "manifest should be cleaned up")
}

func TestConcatenateEmpty(t *testing.T) {
	mockFFmpeg(t)
	a := NewAssembler()
	assert.False(t, a.Concatenate(context.Background(), nil, "out.mp4"))
}

func TestAddSilentAudio(t *testing.T) {
	calls := mockFFmpeg(t)
	dir := t.TempDir()
	out := filepath.Join(dir, "audio.mp4")

	a := NewAssembler()
	require.True(t, a.AddSilentAudio(context.Background(), "in.mp4", 42.5, out))
	assert.FileExists(t, out)
	require.Len(t, *calls, 1)
	assert.Contains(t, (*calls)[0], "anullsrc=r=44100:cl=stereo:d=42.50")
	assert.Contains(t, (*calls)[0], "-shortest")
}
