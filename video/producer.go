package video

import (
	"context"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"strings"

	"shortform-pipeline/config"
	"shortform-pipeline/types"
)

// Production outcome states.
const (
	StateProduced = "produced"
	StateSkipped  = "skipped"
	StateFailed   = "failed"
)

// Result describes what happened to one script's production run.
type Result struct {
	State     string
	Reason    string
	VideoPath string
}

// Motion effect per segment role. Unlisted roles get a static frame.
var roleEffects = map[string]string{
	"hook":          "zoom_in",
	"hook_text":     "zoom_in",
	"bomb_drop":     "zoom_in",
	"text_hook":     "fade_in",
	"punchline":     "shake",
	"take_drop":     "shake",
	"fact_drop":     "zoom_out",
	"reveal":        "zoom_in",
	"result":        "zoom_out",
	"result_flash":  "zoom_out",
	"cta":           "fade_in",
	"end_card":      "fade_in",
	"text_cta":      "fade_in",
	"transition":    "fade_in",
	"tension_build": "shake",
	"setup":         "ken_burns",
	"context":       "ken_burns",
	"before":        "ken_burns",
	"after":         "zoom_in",
}

// Frame style per segment role.
var roleFrameStyles = map[string]string{
	"hook":          "hook",
	"hook_text":     "hook",
	"text_hook":     "hook",
	"bomb_drop":     "hook",
	"hold":          "hook",
	"stare_out":     "hook",
	"tension_build": "hook",
	"punchline":     "accent",
	"take_drop":     "accent",
	"fact_drop":     "accent",
	"discovery":     "accent",
	"payoff":        "accent",
	"after":         "accent",
	"result_flash":  "accent",
	"reveal":        "accent",
	"your_pick":     "accent",
	"text_punch":    "accent",
	"result":        "accent",
	"reaction_beat": "accent",
	"bonus":         "accent",
	"demo_flash":    "code",
	"cta":           "cta",
	"end_card":      "cta",
	"text_cta":      "cta",
	"smirk_out":     "cta",
}

// Formats whose opening frame carries a pill label.
var labeledFormats = map[string]string{
	"hot_take_snap": "HOT TAKE",
	"ratio_bait":    "HOT TAKE",
	"quick_fact":    "DID YOU KNOW?",
}

var labelRoles = map[string]bool{
	"hook_text": true,
	"bomb_drop": true,
	"text_hook": true,
}

// Producer turns an approved script into a finished MP4.
type Producer struct {
	cfg       config.VideoConfig
	outputDir string
	assembler *Assembler
	editor    *Editor
}

func NewProducer(cfg config.VideoConfig, outputDir string) *Producer {
	return &Producer{
		cfg:       cfg,
		outputDir: outputDir,
		assembler: NewAssembler(),
		editor:    NewEditor(cfg.CaptionFontSize),
	}
}

// Produce renders, assembles and finishes one video. Missing tooling
// skips rather than fails; a panic anywhere in the chain is reported as
// a failure rather than taking down the run.
func (p *Producer) Produce(ctx context.Context, s *types.Script) (result Result) {
	if !HasFFmpeg() {
		log.Printf("[produce] ffmpeg not found, skipping %s", s.ID)
		return Result{State: StateSkipped, Reason: "missing dependencies"}
	}

	workDir, err := os.MkdirTemp("", "shortform-prod-")
	if err != nil {
		return Result{State: StateFailed, Reason: fmt.Sprintf("temp dir: %v", err)}
	}
	defer os.RemoveAll(workDir)

	defer func() {
		if r := recover(); r != nil {
			log.Printf("[produce] panic while producing %s: %v", s.ID, r)
			result = Result{State: StateFailed, Reason: fmt.Sprintf("panic: %v", r)}
		}
	}()

	frames := NewFrameGenerator(s.FormatKey)
	label := labeledFormats[s.FormatKey]

	var clips []string
	totalDuration := 0.0
	for i, seg := range s.Segments {
		start, end := ParseTiming(seg.Timing)
		// Same clamp as the caption track, so the clip, audio and
		// caption clocks stay in step on sub-half-second timings.
		duration := math.Max(end-start, 0.5)
		totalDuration += duration

		framePath := filepath.Join(workDir, fmt.Sprintf("frame-%02d.png", i))
		if err := p.renderSegment(frames, seg, label, framePath); err != nil {
			log.Printf("[produce] frame %d of %s: %v", i, s.ID, err)
			continue
		}

		clipPath := filepath.Join(workDir, fmt.Sprintf("clip-%02d.mp4", i))
		if !p.assembler.FrameToClip(ctx, framePath, duration, roleEffects[seg.Role], clipPath) {
			log.Printf("[produce] clip %d of %s failed, dropping segment", i, s.ID)
			continue
		}
		clips = append(clips, clipPath)
	}

	if len(clips) == 0 {
		return Result{State: StateSkipped, Reason: "no clips produced"}
	}

	assembled := filepath.Join(workDir, "assembled.mp4")
	if !p.assembler.Concatenate(ctx, clips, assembled) {
		return Result{State: StateSkipped, Reason: "concatenation failed"}
	}
	current := assembled

	if p.cfg.BurnCaptions {
		entries := BuildCaptionTrack(s)
		captioned := filepath.Join(workDir, "captioned.mp4")
		if p.editor.BurnCaptions(ctx, current, entries, captioned) {
			current = captioned
		} else {
			log.Printf("[produce] captions for %s failed, keeping clean cut", s.ID)
		}
	}

	withAudio := filepath.Join(workDir, "final.mp4")
	if p.assembler.AddSilentAudio(ctx, current, totalDuration, withAudio) {
		current = withAudio
	} else {
		log.Printf("[produce] silent track for %s failed, shipping without audio", s.ID)
	}

	if err := os.MkdirAll(p.outputDir, 0755); err != nil {
		return Result{State: StateFailed, Reason: fmt.Sprintf("output dir: %v", err)}
	}
	outPath := filepath.Join(p.outputDir, fmt.Sprintf("%s-%s.mp4", types.Slugify(s.Topic), s.FormatKey))
	if err := copyFile(current, outPath); err != nil {
		return Result{State: StateFailed, Reason: fmt.Sprintf("copy output: %v", err)}
	}

	log.Printf("[produce] %s -> %s", s.ID, outPath)
	return Result{State: StateProduced, VideoPath: outPath}
}

func (p *Producer) renderSegment(frames *FrameGenerator, seg types.Segment, label, framePath string) error {
	if seg.Role == "versus_reveal" {
		left, right := splitVersus(seg.Text)
		return frames.RenderSplit(left, right, framePath)
	}
	if label != "" && labelRoles[seg.Role] {
		return frames.RenderLabel(label, seg.Text, framePath)
	}
	style, ok := roleFrameStyles[seg.Role]
	if !ok {
		style = "body"
	}
	return frames.RenderText(seg.Text, style, framePath)
}

// splitVersus breaks "Left: a. Right: b" text into its two sides.
// Without the marker everything stays on the left.
func splitVersus(text string) (string, string) {
	if idx := strings.Index(text, "Right:"); idx >= 0 {
		left := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(text[:idx]), "Left:"))
		right := strings.TrimSpace(text[idx+len("Right:"):])
		return left, right
	}
	return strings.TrimSpace(text), ""
}

// BuildCaptionTrack converts spoken segments into timed captions.
// Bracketed stage directions are skipped but still advance the clock,
// since their clips occupy screen time.
func BuildCaptionTrack(s *types.Script) []CaptionEntry {
	var entries []CaptionEntry
	elapsed := 0.0
	for _, seg := range s.Segments {
		start, end := ParseTiming(seg.Timing)
		duration := math.Max(end-start, 0.5)

		text := strings.TrimSpace(seg.Text)
		if strings.HasPrefix(text, "[") && strings.HasSuffix(text, "]") {
			elapsed += duration
			continue
		}
		if len(text) > 80 {
			text = text[:80] + "..."
		}
		entries = append(entries, CaptionEntry{
			Text:  text,
			Start: round2(elapsed),
			End:   round2(elapsed + duration),
		})
		elapsed += duration
	}
	return entries
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
