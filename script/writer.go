package script

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"shortform-pipeline/types"
)

// Writer persists generated scripts as machine-readable JSON and a
// human-readable teleprompter document.
type Writer struct {
	outputDir string
}

func NewWriter(outputDir string) (*Writer, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("create script output dir: %w", err)
	}
	return &Writer{outputDir: outputDir}, nil
}

// WriteJSON writes the full script contents as indented JSON.
func (w *Writer) WriteJSON(s *types.Script) (string, error) {
	path := filepath.Join(w.outputDir, fmt.Sprintf("%s-%s.json", types.Slugify(s.Topic), s.FormatKey))
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal script: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write script json: %w", err)
	}
	return path, nil
}

// WriteDoc writes a teleprompter-friendly markdown rendering of the script.
func (w *Writer) WriteDoc(s *types.Script) (string, error) {
	path := filepath.Join(w.outputDir, fmt.Sprintf("%s-%s.md", types.Slugify(s.Topic), s.FormatKey))

	label := s.FormatKey
	if l, ok := s.Metadata["format_label"].(string); ok && l != "" {
		label = l
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Script: %s\n", s.Topic)
	fmt.Fprintf(&b, "**Format:** %s\n", label)
	fmt.Fprintf(&b, "**Duration:** ~%ds\n", s.DurationSec)
	fmt.Fprintf(&b, "**Sound/Music:** %s\n\n---\n\n", s.SoundMood)
	b.WriteString("## HOOK (first 3 seconds — this is EVERYTHING)\n\n")
	fmt.Fprintf(&b, "> %s\n\n---\n\n## FULL SCRIPT\n\n", s.Hook)

	for _, seg := range s.Segments {
		fmt.Fprintf(&b, "### [%s] — %s\n\n", seg.Timing, strings.ToUpper(seg.Role))
		fmt.Fprintf(&b, "**Say:** %s\n\n", seg.Text)
		fmt.Fprintf(&b, "*Camera/Visual:* %s\n\n", seg.VisualDirection)
	}

	b.WriteString("---\n\n## POST DETAILS\n\n")
	fmt.Fprintf(&b, "**Caption:** %s\n\n", s.Caption)
	fmt.Fprintf(&b, "**Hashtags:** %s\n\n", strings.Join(s.Hashtags, " "))
	fmt.Fprintf(&b, "**CTA:** %s\n", s.CTA)

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return "", fmt.Errorf("write script doc: %w", err)
	}
	return path, nil
}
