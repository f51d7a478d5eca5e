package video

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"
)

// CaptionEntry is one timed on-screen caption.
type CaptionEntry struct {
	Text  string
	Start float64
	End   float64
}

// Editor applies post-production edits to finished videos. Every
// operation is fail-soft and reports success via its bool result.
type Editor struct {
	assembler    *Assembler
	fontSize     int
	captionsFont string
}

func NewEditor(captionFontSize int) *Editor {
	if captionFontSize <= 0 {
		captionFontSize = 48
	}
	return &Editor{
		assembler:    NewAssembler(),
		fontSize:     captionFontSize,
		captionsFont: findFontFile("bold"),
	}
}

// Trim cuts the video to the [start, end] window.
func (e *Editor) Trim(ctx context.Context, inPath string, start, end float64, outPath string) bool {
	if end <= start {
		log.Printf("[edit] trim window %.2f-%.2f is empty", start, end)
		return false
	}
	return e.assembler.run(ctx, 60*time.Second,
		"-y",
		"-ss", fmt.Sprintf("%.2f", start),
		"-to", fmt.Sprintf("%.2f", end),
		"-i", inPath,
		"-c:v", "libx264",
		"-preset", "fast",
		"-pix_fmt", "yuv420p",
		outPath,
	)
}

// ChangeSpeed re-times the video by factor (2.0 = twice as fast).
func (e *Editor) ChangeSpeed(ctx context.Context, inPath string, factor float64, outPath string) bool {
	if factor <= 0 {
		log.Printf("[edit] invalid speed factor %.2f", factor)
		return false
	}
	return e.assembler.run(ctx, 120*time.Second,
		"-y",
		"-i", inPath,
		"-vf", fmt.Sprintf("setpts=%.4f*PTS", 1/factor),
		"-r", fmt.Sprintf("%d", FPS),
		"-an",
		"-c:v", "libx264",
		"-preset", "fast",
		"-pix_fmt", "yuv420p",
		outPath,
	)
}

// OverlayText burns a single text overlay. Position is one of center,
// top, bottom. A start/end window of (0, 0) shows it for the whole
// video.
func (e *Editor) OverlayText(ctx context.Context, inPath, text, position string, start, end float64, outPath string) bool {
	var yExpr string
	switch position {
	case "top":
		yExpr = "h*0.08"
	case "bottom":
		yExpr = "h*0.85"
	default:
		yExpr = "(h-text_h)/2"
	}

	filter := fmt.Sprintf(
		"drawtext=text='%s':fontsize=%d:fontcolor=white:borderw=3:bordercolor=black:x=(w-text_w)/2:y=%s",
		escapeDrawText(text), e.fontSize+12, yExpr)
	if e.captionsFont != "" {
		filter += ":fontfile=" + e.captionsFont
	}
	if end > start {
		filter += fmt.Sprintf(":enable='between(t,%.2f,%.2f)'", start, end)
	}

	return e.assembler.run(ctx, 120*time.Second,
		"-y",
		"-i", inPath,
		"-vf", filter,
		"-c:v", "libx264",
		"-preset", "fast",
		"-pix_fmt", "yuv420p",
		outPath,
	)
}

// BurnCaptions renders the timed caption track into the video as a
// chain of drawtext filters.
func (e *Editor) BurnCaptions(ctx context.Context, inPath string, entries []CaptionEntry, outPath string) bool {
	if len(entries) == 0 {
		log.Printf("[edit] no captions to burn")
		return false
	}

	filters := make([]string, 0, len(entries))
	for _, entry := range entries {
		f := fmt.Sprintf(
			"drawtext=text='%s':fontsize=%d:fontcolor=white:borderw=3:bordercolor=black:x=(w-text_w)/2:y=h*0.82:enable='between(t,%.2f,%.2f)'",
			escapeDrawText(entry.Text), e.fontSize, entry.Start, entry.End)
		if e.captionsFont != "" {
			f += ":fontfile=" + e.captionsFont
		}
		filters = append(filters, f)
	}

	return e.assembler.run(ctx, 120*time.Second,
		"-y",
		"-i", inPath,
		"-vf", strings.Join(filters, ","),
		"-c:v", "libx264",
		"-preset", "fast",
		"-pix_fmt", "yuv420p",
		outPath,
	)
}

// escapeDrawText escapes drawtext metacharacters. Single quotes need
// the shell-style close-escape-reopen dance; colons split filter args.
func escapeDrawText(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "'", `'\\''`)
	s = strings.ReplaceAll(s, ":", `\:`)
	s = strings.ReplaceAll(s, "%", `\%`)
	return s
}
