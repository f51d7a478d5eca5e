package content

import (
	"strings"
)

// Result is the validation verdict on one draft.
type Result struct {
	Article  Article
	Approved bool
	Reasons  []string
}

// Phrases that mark a draft as machine-generated filler.
var machinePhrases = []string{
	"as an ai language model",
	"in conclusion, in conclusion",
	"lorem ipsum",
}

// Validator applies offline structure, length, and tone checks to
// drafts before they reach the site.
type Validator struct{}

func NewValidator() *Validator {
	return &Validator{}
}

// Validate is a pure function of the draft. Reason order is fixed.
func (v *Validator) Validate(a Article) Result {
	var reasons []string

	if a.WordCount() < MinWords {
		reasons = append(reasons, "content too short")
	}
	if !hasRequiredStructure(a.Content) {
		reasons = append(reasons, "missing structural sections (H2/table/FAQ)")
	}
	if !looksHumanLike(a.Content) {
		reasons = append(reasons, "content appears machine-like from simple heuristics")
	}
	if keywordStuffed(a.Content, a.Title) {
		reasons = append(reasons, "potential keyword stuffing detected")
	}

	return Result{Article: a, Approved: len(reasons) == 0, Reasons: reasons}
}

func hasRequiredStructure(content string) bool {
	return strings.Contains(content, "## ") &&
		strings.Contains(content, "## Frequently asked questions") &&
		strings.Contains(content, "|") &&
		strings.Contains(content, "---")
}

func looksHumanLike(content string) bool {
	lower := strings.ToLower(content)
	for _, phrase := range machinePhrases {
		if strings.Contains(lower, phrase) {
			return false
		}
	}
	return true
}

// keywordStuffed flags a title repeated more than 15 times in the body.
func keywordStuffed(content, title string) bool {
	if title == "" {
		return false
	}
	count := strings.Count(strings.ToLower(content), strings.ToLower(title))
	return count > 15
}

// Enrich adds curation cues to an approved draft: reference hints on
// selected headings and one contextual paragraph near the top.
func (v *Validator) Enrich(content string) string {
	content = strings.Replace(content,
		"## Core concepts and mental models",
		"## Core concepts and mental models [internal notes]", 1)
	content = strings.Replace(content,
		"## Implementation guidelines and failure modes",
		"## Implementation guidelines and failure modes [field experience]", 1)

	paragraphs := strings.Split(content, "\n\n")
	if len(paragraphs) < 2 {
		return content
	}
	context := "From a practical standpoint, treat this guide as a set of " +
		"guardrails rather than a script. Adapt the examples to the " +
		"constraints of your own organisation, regulatory environment, " +
		"and risk appetite."
	out := make([]string, 0, len(paragraphs)+1)
	out = append(out, paragraphs[:2]...)
	out = append(out, context)
	out = append(out, paragraphs[2:]...)
	return strings.Join(out, "\n\n")
}

// Run gates and enriches a batch, keeping only approved drafts.
func (v *Validator) Run(drafts []Article) []Article {
	var approved []Article
	for _, draft := range drafts {
		result := v.Validate(draft)
		if !result.Approved {
			continue
		}
		draft.Content = v.Enrich(draft.Content)
		approved = append(approved, draft)
	}
	return approved
}
