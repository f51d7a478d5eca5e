package types

import "strings"

// Segment is one timed beat of a script: what to say and what to show.
// Timing keeps the "A-Bs" wire form from the format structure; the video
// assembler parses it when clips are cut.
type Segment struct {
	Timing          string `json:"timing"`
	Role            string `json:"role"`
	Text            string `json:"text"`
	VisualDirection string `json:"visual_direction"`
}

// Script is a complete, ready-to-film short-form video script.
// Produced once by the generator and immutable afterwards.
type Script struct {
	ID          string                 `json:"id"`
	Topic       string                 `json:"topic"`
	FormatKey   string                 `json:"format"`
	Hook        string                 `json:"hook"`
	Segments    []Segment              `json:"segments"`
	Caption     string                 `json:"caption"`
	Hashtags    []string               `json:"hashtags"`
	SoundMood   string                 `json:"sound_mood"`
	CTA         string                 `json:"cta"`
	DurationSec int                    `json:"estimated_duration_sec"`
	CreatedAt   string                 `json:"created_at"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
}

// WordCount counts spoken words across all segments.
func (s *Script) WordCount() int {
	total := 0
	for _, seg := range s.Segments {
		total += len(strings.Fields(seg.Text))
	}
	return total
}

// ValidationResult is the validator's verdict on a script.
// Issues preserve detection order.
type ValidationResult struct {
	Script   *Script  `json:"-"`
	Approved bool     `json:"approved"`
	Score    int      `json:"score"`
	Issues   []string `json:"issues"`
}

// Topic is one backlog entry: a topic/format pair waiting to be produced.
type Topic struct {
	ID        string `json:"id"`
	Topic     string `json:"topic"`
	Format    string `json:"format"`
	Status    string `json:"status"` // new | selected | published
	CreatedAt string `json:"created_at"`
}

// PublishedScript records one script that made it through the full run.
type PublishedScript struct {
	ID          string `json:"id"`
	Topic       string `json:"topic"`
	Format      string `json:"format"`
	Score       int    `json:"score"`
	JSONPath    string `json:"json_path"`
	DocPath     string `json:"doc_path"`
	VideoPath   string `json:"video_path,omitempty"`
	VideoState  string `json:"video_state"`
	DurationSec int    `json:"duration_sec"`
}

// RunState tracks one full pipeline run, saved as JSON next to its outputs.
type RunState struct {
	RunID            string            `json:"run_id"`
	StartedAt        string            `json:"started_at"`
	CompletedAt      string            `json:"completed_at"`
	TopicsDiscovered int               `json:"topics_discovered"`
	ScriptsWritten   int               `json:"scripts_written"`
	ScriptsRejected  int               `json:"scripts_rejected"`
	VideosProduced   int               `json:"videos_produced"`
	Published        []PublishedScript `json:"published"`
	Error            string            `json:"error,omitempty"`
}

// Slugify turns free text into a filesystem and URL safe slug,
// capped at 60 characters.
func Slugify(text string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(text) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteByte('-')
		}
	}
	slug := b.String()
	for strings.Contains(slug, "--") {
		slug = strings.ReplaceAll(slug, "--", "-")
	}
	slug = strings.Trim(slug, "-")
	if len(slug) > 60 {
		slug = slug[:60]
	}
	return slug
}
