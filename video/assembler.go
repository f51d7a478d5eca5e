package video

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Swappable for tests.
var (
	execCommandContext = exec.CommandContext
	lookPath           = exec.LookPath
)

// HasFFmpeg reports whether the ffmpeg binary is on PATH.
func HasFFmpeg() bool {
	_, err := lookPath("ffmpeg")
	return err == nil
}

// ParseTiming parses a segment timing like "0-3s" or "12-18s" into
// start and end seconds. A missing end defaults to start+3; anything
// unparseable yields (0, 3) so a clip is always produced.
func ParseTiming(timing string) (float64, float64) {
	s := strings.ReplaceAll(strings.TrimSpace(timing), "s", "")
	s = strings.ReplaceAll(s, " ", "")
	parts := strings.Split(s, "-")

	start, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return 0, 3
	}
	if len(parts) < 2 {
		return start, start + 3
	}
	end, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return 0, 3
	}
	if end <= start {
		return start, start + 3
	}
	return start, end
}

// Assembler drives ffmpeg to turn still frames into motion clips and
// stitch them into a final video.
type Assembler struct{}

func NewAssembler() *Assembler {
	return &Assembler{}
}

func (a *Assembler) run(ctx context.Context, timeout time.Duration, args ...string) bool {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := execCommandContext(ctx, "ffmpeg", args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := stderr.String()
		if len(msg) > 300 {
			msg = msg[len(msg)-300:]
		}
		log.Printf("[assemble] ffmpeg failed: %v: %s", err, msg)
		return false
	}
	return true
}

// motionFilter returns the ffmpeg -vf expression for an effect over a
// clip of the given duration. Zoompan frame counts are duration*fps.
func motionFilter(effect string, duration float64) string {
	frames := int(duration * FPS)
	if frames < 1 {
		frames = 1
	}
	switch effect {
	case "zoom_in":
		return fmt.Sprintf(
			"zoompan=z='min(1+on/%d*0.15,1.15)':x='iw/2-(iw/zoom/2)':y='ih/2-(ih/zoom/2)':d=%d:s=%dx%d:fps=%d",
			frames, frames, Width, Height, FPS)
	case "zoom_out":
		return fmt.Sprintf(
			"zoompan=z='if(eq(on,1),1.15,max(zoom-0.15/%d,1.0))':x='iw/2-(iw/zoom/2)':y='ih/2-(ih/zoom/2)':d=%d:s=%dx%d:fps=%d",
			frames, frames, Width, Height, FPS)
	case "fade_in":
		fade := 0.5
		if duration/2 < fade {
			fade = duration / 2
		}
		return fmt.Sprintf("format=yuv420p,fade=t=in:st=0:d=%.2f", fade)
	case "shake":
		return fmt.Sprintf(
			"crop=w=%d:h=%d:x='5+random(1)*10':y='5+random(1)*10',scale=%d:%d",
			Width-20, Height-20, Width, Height)
	case "ken_burns":
		return fmt.Sprintf(
			"zoompan=z='min(1+on/%d*0.08,1.08)':x='iw/10*on/%d':y='ih/2-(ih/zoom/2)':d=%d:s=%dx%d:fps=%d",
			frames, frames, frames, Width, Height, FPS)
	default:
		return "format=yuv420p"
	}
}

// FrameToClip loops a still frame into a video clip with an optional
// motion effect.
func (a *Assembler) FrameToClip(ctx context.Context, framePath string, duration float64, effect, outPath string) bool {
	if duration <= 0 {
		duration = 3
	}
	return a.run(ctx, 60*time.Second,
		"-y",
		"-loop", "1",
		"-i", framePath,
		"-t", fmt.Sprintf("%.2f", duration),
		"-vf", motionFilter(effect, duration),
		"-c:v", "libx264",
		"-preset", "fast",
		"-pix_fmt", "yuv420p",
		"-r", strconv.Itoa(FPS),
		outPath,
	)
}

// Concatenate joins clips in order via the concat demuxer. A single
// clip is copied as-is.
func (a *Assembler) Concatenate(ctx context.Context, clipPaths []string, outPath string) bool {
	if len(clipPaths) == 0 {
		return false
	}
	if len(clipPaths) == 1 {
		if err := copyFile(clipPaths[0], outPath); err != nil {
			log.Printf("[assemble] copy single clip: %v", err)
			return false
		}
		return true
	}

	list, err := os.CreateTemp(filepath.Dir(outPath), "concat-*.txt")
	if err != nil {
		log.Printf("[assemble] concat list: %v", err)
		return false
	}
	defer os.Remove(list.Name())
	for _, p := range clipPaths {
		fmt.Fprintf(list, "file '%s'\n", p)
	}
	if err := list.Close(); err != nil {
		log.Printf("[assemble] concat list: %v", err)
		return false
	}

	return a.run(ctx, 120*time.Second,
		"-y",
		"-f", "concat",
		"-safe", "0",
		"-i", list.Name(),
		"-c:v", "libx264",
		"-preset", "fast",
		"-pix_fmt", "yuv420p",
		"-movflags", "+faststart",
		"-r", strconv.Itoa(FPS),
		outPath,
	)
}

// AddSilentAudio muxes a silent stereo AAC track so platforms that
// reject audio-less uploads accept the file.
func (a *Assembler) AddSilentAudio(ctx context.Context, videoPath string, duration float64, outPath string) bool {
	return a.run(ctx, 60*time.Second,
		"-y",
		"-i", videoPath,
		"-f", "lavfi",
		"-i", fmt.Sprintf("anullsrc=r=44100:cl=stereo:d=%.2f", duration),
		"-c:v", "copy",
		"-c:a", "aac",
		"-shortest",
		outPath,
	)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()
	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}
