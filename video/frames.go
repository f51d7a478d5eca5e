// Package video turns scripts into upload-ready MP4 files: frame
// rendering, FFmpeg clip assembly, post-production edits and the
// end-to-end producer. Output is 9:16 portrait 1080x1920 at 30 fps.
package video

import (
	"fmt"
	"image/color"
	"os"
	"strings"

	"github.com/fogleman/gg"
)

const (
	Width  = 1080
	Height = 1920
	FPS    = 30
)

// Palette is a mood-keyed color set applied per format.
type Palette struct {
	BG        color.RGBA
	Text      color.RGBA
	Accent    color.RGBA
	Secondary color.RGBA
}

var palettes = map[string]Palette{
	"dark": {
		BG:        color.RGBA{13, 17, 23, 255},
		Text:      color.RGBA{240, 246, 252, 255},
		Accent:    color.RGBA{88, 166, 255, 255},
		Secondary: color.RGBA{125, 133, 144, 255},
	},
	"neon": {
		BG:        color.RGBA{10, 10, 10, 255},
		Text:      color.RGBA{0, 255, 136, 255},
		Accent:    color.RGBA{255, 0, 110, 255},
		Secondary: color.RGBA{0, 200, 255, 255},
	},
	"warm": {
		BG:        color.RGBA{30, 20, 15, 255},
		Text:      color.RGBA{255, 237, 209, 255},
		Accent:    color.RGBA{255, 159, 67, 255},
		Secondary: color.RGBA{255, 107, 107, 255},
	},
	"ice": {
		BG:        color.RGBA{15, 20, 35, 255},
		Text:      color.RGBA{220, 235, 255, 255},
		Accent:    color.RGBA{0, 180, 255, 255},
		Secondary: color.RGBA{100, 220, 255, 255},
	},
	"hacker": {
		BG:        color.RGBA{0, 0, 0, 255},
		Text:      color.RGBA{0, 255, 65, 255},
		Accent:    color.RGBA{0, 200, 50, 255},
		Secondary: color.RGBA{0, 150, 40, 255},
	},
}

var formatPalettes = map[string]string{
	"hot_take":      "neon",
	"myth_bust":     "warm",
	"tutorial":      "dark",
	"storytime":     "warm",
	"listicle":      "ice",
	"pov":           "neon",
	"before_after":  "ice",
	"quick_fact":    "ice",
	"hot_take_snap": "neon",
	"code_flash":    "hacker",
	"this_or_that":  "neon",
	"ratio_bait":    "neon",
	"text_story":    "dark",
}

// PaletteFor maps a format key to its mood palette, defaulting to dark.
func PaletteFor(formatKey string) Palette {
	name, ok := formatPalettes[formatKey]
	if !ok {
		name = "dark"
	}
	return palettes[name]
}

type frameStyle struct {
	fontKind string
	fontSize float64
	colorOf  func(Palette) color.RGBA
	yCenter  float64
}

var frameStyles = map[string]frameStyle{
	"hook":   {"bold", 80, func(p Palette) color.RGBA { return p.Text }, 0.42},
	"body":   {"regular", 56, func(p Palette) color.RGBA { return p.Text }, 0.45},
	"accent": {"bold", 72, func(p Palette) color.RGBA { return p.Accent }, 0.45},
	"code":   {"mono", 52, func(p Palette) color.RGBA { return p.Accent }, 0.45},
	"cta":    {"bold", 64, func(p Palette) color.RGBA { return p.Accent }, 0.55},
	"label":  {"bold", 40, func(p Palette) color.RGBA { return p.Secondary }, 0.30},
}

// Candidate font paths per family, tried in order. If none exist the
// renderer keeps gg's built-in face, so rendering never fails outright.
var fontCandidates = map[string][]string{
	"bold": {
		"/usr/share/fonts/truetype/dejavu/DejaVuSans-Bold.ttf",
		"/usr/share/fonts/truetype/freefont/FreeSansBold.ttf",
		"/usr/share/fonts/truetype/liberation/LiberationSans-Bold.ttf",
		"/System/Library/Fonts/Helvetica.ttc",
		"C:/Windows/Fonts/arialbd.ttf",
	},
	"regular": {
		"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
		"/usr/share/fonts/truetype/freefont/FreeSans.ttf",
		"/usr/share/fonts/truetype/liberation/LiberationSans-Regular.ttf",
		"/System/Library/Fonts/Helvetica.ttc",
		"C:/Windows/Fonts/arial.ttf",
	},
	"mono": {
		"/usr/share/fonts/truetype/dejavu/DejaVuSansMono.ttf",
		"/usr/share/fonts/truetype/freefont/FreeMonoBold.ttf",
		"/usr/share/fonts/truetype/liberation/LiberationMono-Bold.ttf",
		"C:/Windows/Fonts/consola.ttf",
	},
}

func findFontFile(kind string) string {
	for _, p := range fontCandidates[kind] {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// FrameGenerator renders styled 1080x1920 text frames as PNG stills.
type FrameGenerator struct {
	palette   Palette
	fontPaths map[string]string
}

func NewFrameGenerator(formatKey string) *FrameGenerator {
	paths := make(map[string]string, len(fontCandidates))
	for kind := range fontCandidates {
		paths[kind] = findFontFile(kind)
	}
	return &FrameGenerator{palette: PaletteFor(formatKey), fontPaths: paths}
}

func (g *FrameGenerator) newCanvas() *gg.Context {
	dc := gg.NewContext(Width, Height)
	dc.SetColor(g.palette.BG)
	dc.Clear()
	return dc
}

// setFont loads a font face, silently keeping gg's default face when no
// system font exists.
func (g *FrameGenerator) setFont(dc *gg.Context, kind string, size float64) {
	if path := g.fontPaths[kind]; path != "" {
		_ = dc.LoadFontFace(path, size)
	}
}

// wrapLines greedily word-wraps text to fit maxWidth measured pixels.
// A single word wider than the limit still becomes its own line, so the
// loop can't stall; re-joining the lines reproduces the word sequence.
func wrapLines(measure func(string) float64, text string, maxWidth float64) []string {
	var lines []string
	current := ""
	for _, word := range strings.Fields(text) {
		test := word
		if current != "" {
			test = current + " " + word
		}
		if measure(test) <= maxWidth {
			current = test
			continue
		}
		if current != "" {
			lines = append(lines, current)
		}
		current = word
	}
	if current != "" {
		lines = append(lines, current)
	}
	if len(lines) == 0 {
		return []string{""}
	}
	return lines
}

// drawWrapped renders a centered, vertically-anchored text block and
// returns the y coordinate just below it.
func drawWrapped(dc *gg.Context, text string, maxWidth, centerX, yCenter, fontSize float64, fill color.RGBA) float64 {
	measure := func(s string) float64 {
		w, _ := dc.MeasureString(s)
		return w
	}
	lines := wrapLines(measure, text, maxWidth)

	_, lineH := dc.MeasureString("Ag")
	spacing := fontSize * 0.45
	total := lineH*float64(len(lines)) + spacing*float64(len(lines)-1)
	y := Height*yCenter - total/2

	dc.SetColor(fill)
	for _, line := range lines {
		dc.DrawStringAnchored(line, centerX, y, 0.5, 1)
		y += lineH + spacing
	}
	return y
}

// RenderText renders a single styled text frame.
// Styles: hook, body, accent, code, cta, label.
func (g *FrameGenerator) RenderText(text, style, outPath string) error {
	cfg, ok := frameStyles[style]
	if !ok {
		cfg = frameStyles["body"]
	}

	dc := g.newCanvas()
	g.setFont(dc, cfg.fontKind, cfg.fontSize)
	drawWrapped(dc, text, Width*0.82, Width/2, cfg.yCenter, cfg.fontSize, cfg.colorOf(g.palette))

	// Accent bar under hook and CTA frames.
	if style == "hook" || style == "cta" {
		barW := float64(Width) * 0.3
		dc.SetColor(g.palette.Accent)
		dc.DrawRectangle((Width-barW)/2, Height*0.72, barW, 4)
		dc.Fill()
	}

	if err := dc.SavePNG(outPath); err != nil {
		return fmt.Errorf("save frame: %w", err)
	}
	return nil
}

// RenderSplit renders a split-screen comparison frame: divider, "VS"
// badge, left text in primary and right text in accent color.
func (g *FrameGenerator) RenderSplit(leftText, rightText, outPath string) error {
	dc := g.newCanvas()

	midX := float64(Width) / 2
	dc.SetColor(g.palette.Secondary)
	dc.SetLineWidth(3)
	dc.DrawLine(midX, Height*0.25, midX, Height*0.75)
	dc.Stroke()

	// VS badge on the divider.
	g.setFont(dc, "bold", 48)
	vsW, vsH := dc.MeasureString("VS")
	pad := 20.0
	radius := vsW/2 + pad
	if vsH/2+pad > radius {
		radius = vsH/2 + pad
	}
	dc.SetColor(g.palette.Accent)
	dc.DrawCircle(midX, Height/2, radius)
	dc.Fill()
	dc.SetColor(g.palette.BG)
	dc.DrawStringAnchored("VS", midX, Height/2, 0.5, 0.35)

	sideWidth := float64(Width) * 0.38
	measure := func(s string) float64 {
		w, _ := dc.MeasureString(s)
		return w
	}
	_, lineH := dc.MeasureString("Ag")
	advance := lineH * 1.4

	dc.SetColor(g.palette.Text)
	y := Height * 0.38
	for _, line := range wrapLines(measure, leftText, sideWidth) {
		dc.DrawStringAnchored(line, midX/2, y, 0.5, 1)
		y += advance
	}

	dc.SetColor(g.palette.Accent)
	y = Height * 0.38
	for _, line := range wrapLines(measure, rightText, sideWidth) {
		dc.DrawStringAnchored(line, midX+midX/2, y, 0.5, 1)
		y += advance
	}

	if err := dc.SavePNG(outPath); err != nil {
		return fmt.Errorf("save split frame: %w", err)
	}
	return nil
}

// RenderLabel renders a rounded pill label above the main text block.
func (g *FrameGenerator) RenderLabel(label, mainText, outPath string) error {
	dc := g.newCanvas()

	g.setFont(dc, "bold", 36)
	upper := strings.ToUpper(label)
	lw, lh := dc.MeasureString(upper)
	labelY := Height * 0.32
	pillPadX, pillPadY := 24.0, 10.0

	dc.SetColor(g.palette.Accent)
	dc.DrawRoundedRectangle((Width-lw)/2-pillPadX, labelY-pillPadY, lw+2*pillPadX, lh+2*pillPadY, 20)
	dc.Fill()
	dc.SetColor(g.palette.BG)
	dc.DrawStringAnchored(upper, Width/2, labelY+lh, 0.5, 0)

	g.setFont(dc, "bold", 68)
	drawWrapped(dc, mainText, Width*0.82, Width/2, 0.5, 68, g.palette.Text)

	if err := dc.SavePNG(outPath); err != nil {
		return fmt.Errorf("save label frame: %w", err)
	}
	return nil
}
