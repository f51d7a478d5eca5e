package script

import (
	"strings"

	"shortform-pipeline/config"
	"shortform-pipeline/types"
)

// Validator scores scripts against a deduction rubric. Scoring starts at
// 100, every applicable deduction is taken independently, the score is
// clamped at 0, and approval means score >= the configured threshold.
type Validator struct {
	rubric config.Rubric
}

func NewValidator(rubric config.Rubric) *Validator {
	return &Validator{rubric: rubric}
}

// Validate is a pure function of the script. Issue order is fixed so
// results are deterministic.
func (v *Validator) Validate(s *types.Script) types.ValidationResult {
	r := v.rubric
	score := 100
	var issues []string

	if s.Hook == "" {
		issues = append(issues, "missing hook")
		score -= r.MissingHook
	} else if len(strings.Fields(s.Hook)) > r.MaxHookWords {
		issues = append(issues, "hook too long — should be short and punchy for impact")
		score -= r.HookTooLong
	}

	if len(s.Segments) < r.MinSegments {
		issues = append(issues, "too few segments — needs at least 3 for proper pacing")
		score -= r.TooFewSegments
	}

	if s.DurationSec < r.MinDurationSec {
		issues = append(issues, "too short — under 15 seconds won't perform well")
		score -= r.TooShort
	} else if s.DurationSec > r.MaxDurationSec {
		issues = append(issues, "too long — over 90 seconds loses retention")
		score -= r.TooLong
	}

	if len(s.Hashtags) < r.MinHashtags {
		issues = append(issues, "too few hashtags — aim for 8-12")
		score -= r.TooFewHashtags
	}

	if s.CTA == "" {
		issues = append(issues, "missing call-to-action")
		score -= r.MissingCTA
	}

	if s.Caption == "" {
		issues = append(issues, "missing caption")
		score -= r.MissingCaption
	}

	duration := s.DurationSec
	if duration < 1 {
		duration = 1
	}
	if float64(s.WordCount())/float64(duration) > r.MaxWordsPerSecond {
		issues = append(issues, "script too dense — may be hard to deliver naturally")
		score -= r.TooDense
	}

	if score < 0 {
		score = 0
	}
	return types.ValidationResult{
		Script:   s,
		Approved: score >= r.MinScore,
		Score:    score,
		Issues:   issues,
	}
}
