// Package formats holds the static catalog of short-form content formats.
// Each format is a proven content pattern: hook and CTA phrasing plus a
// timed segment structure. The catalog is read-only after process start.
package formats

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Slot is one timed position in a format's structure.
type Slot struct {
	Timing    string // "A-Bs"
	Role      string
	Direction string
}

// Format is a named content pattern.
type Format struct {
	Key           string
	Label         string
	HookTemplates []string
	CTATemplates  []string
	Structure     []Slot
	SoundMood     string
}

// ErrUnknownFormat is returned by Lookup for keys not in the catalog.
var ErrUnknownFormat = errors.New("unknown format")

// DurationSec parses the end time of the final structure slot.
// Falls back to 60 when the timing cannot be parsed.
func (f Format) DurationSec() int {
	if len(f.Structure) == 0 {
		return 60
	}
	last := f.Structure[len(f.Structure)-1].Timing
	parts := strings.Split(strings.TrimSuffix(strings.TrimSpace(last), "s"), "-")
	end, err := strconv.Atoi(parts[len(parts)-1])
	if err != nil {
		return 60
	}
	return end
}

// Lookup returns the format for key.
func Lookup(key string) (Format, error) {
	f, ok := catalog[key]
	if !ok {
		return Format{}, fmt.Errorf("%w: %q", ErrUnknownFormat, key)
	}
	return f, nil
}

// Keys returns all catalog keys in sorted order.
func Keys() []string {
	keys := make([]string, 0, len(catalog))
	for k := range catalog {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

var catalog = map[string]Format{
	"hot_take": {
		Key:   "hot_take",
		Label: "Hot Take / Unpopular Opinion",
		HookTemplates: []string{
			"Unpopular opinion: {topic} is completely overrated.",
			"I'm gonna get hate for this, but {topic}...",
			"Nobody talks about the dark side of {topic}.",
			"Hot take: {topic} is NOT what you think.",
			"Stop doing {topic} wrong — here's the truth.",
		},
		Structure: []Slot{
			{"0-3s", "hook", "Face close to camera. Bold text overlay."},
			{"3-10s", "setup", "Step back. Explain the mainstream take you disagree with."},
			{"10-25s", "argument", "Walk and talk or use B-roll. 2-3 punchy reasons."},
			{"25-35s", "proof", "Show evidence: screen recording, stat, or side-by-side."},
			{"35-45s", "flip", "Acknowledge the counter-argument briefly — builds trust."},
			{"45-55s", "cta", "Direct to camera. Ask for comments. Controversial question."},
		},
		SoundMood: "intense / dramatic buildup",
		CTATemplates: []string{
			"Comment your hottest {topic} take — let's debate.",
			"Am I wrong? Drop your opinion below.",
			"Follow for more takes that actually matter.",
		},
	},
	"myth_bust": {
		Key:   "myth_bust",
		Label: "Myth Busting",
		HookTemplates: []string{
			"STOP believing this about {topic}.",
			"This {topic} myth is ruining your workflow.",
			"Everyone gets {topic} wrong — here's proof.",
			"3 {topic} myths that are holding you back.",
			"The biggest lie about {topic}, debunked.",
		},
		Structure: []Slot{
			{"0-3s", "hook", "Big text: 'MYTH vs REALITY'. Dramatic zoom."},
			{"3-12s", "myth_statement", "State the myth clearly. Use finger-count or list."},
			{"12-30s", "debunk", "Break it down with evidence. Screen share or whiteboard."},
			{"30-40s", "reality", "Show what actually works. Quick demo if possible."},
			{"40-50s", "cta", "Ask: which myth surprised you most? Follow for part 2."},
		},
		SoundMood: "revelation / suspenseful then upbeat",
		CTATemplates: []string{
			"Which myth surprised you? Comment below.",
			"Save this before it gets buried in your feed.",
			"Part 2? Follow so you don't miss it.",
		},
	},
	"tutorial": {
		Key:   "tutorial",
		Label: "Quick Tutorial / How-To",
		HookTemplates: []string{
			"Learn {topic} in under 60 seconds.",
			"Here's a {topic} trick nobody taught you.",
			"The fastest way to {topic} — watch this.",
			"{topic} tutorial that actually makes sense.",
			"You're overcomplicating {topic}. Do this instead.",
		},
		Structure: []Slot{
			{"0-3s", "hook", "Show end result first. Text: 'Here's how'."},
			{"3-8s", "context", "Quick 1-sentence setup: who this is for."},
			{"8-15s", "step_1", "Step 1 with screen recording or demo."},
			{"15-25s", "step_2", "Step 2. Keep transitions snappy."},
			{"25-35s", "step_3", "Step 3. Show the result building."},
			{"35-45s", "result", "Final result reveal. Satisfying moment."},
			{"45-55s", "cta", "Follow for more tutorials. Drop a comment."},
		},
		SoundMood: "upbeat / productivity lo-fi",
		CTATemplates: []string{
			"Save this for later — you'll need it.",
			"Follow for daily {topic} tips.",
			"What tutorial should I make next? Comment.",
		},
	},
	"storytime": {
		Key:   "storytime",
		Label: "Storytime / Personal Experience",
		HookTemplates: []string{
			"The time {topic} completely changed my perspective...",
			"I wasted 6 months on {topic} before I learned this.",
			"Story time: how {topic} almost cost me everything.",
			"Nobody warned me about this {topic} trap.",
			"What happened when I went all-in on {topic}...",
		},
		Structure: []Slot{
			{"0-3s", "hook", "Lean into camera. Start mid-story for tension."},
			{"3-12s", "setup", "Set the scene. When, where, what you were doing."},
			{"12-25s", "conflict", "The problem / mistake / unexpected twist."},
			{"25-40s", "turning_point", "What changed. The insight or discovery."},
			{"40-50s", "lesson", "The takeaway. What you'd tell your past self."},
			{"50-60s", "cta", "Ask: has this happened to you? Share your story."},
		},
		SoundMood: "emotional / storytelling ambient",
		CTATemplates: []string{
			"Has this happened to you? Tell me in the comments.",
			"Follow for more real stories — no fluff.",
			"Like if you learned this the hard way too.",
		},
	},
	"listicle": {
		Key:   "listicle",
		Label: "Things You Didn't Know / Listicle",
		HookTemplates: []string{
			"5 {topic} facts that will blow your mind.",
			"Things about {topic} they don't teach you.",
			"3 {topic} secrets most people never discover.",
			"You're sleeping on these {topic} features.",
			"The top {topic} tricks pros use daily.",
		},
		Structure: []Slot{
			{"0-3s", "hook", "Number count on screen. Fast zoom."},
			{"3-12s", "item_1", "Item 1 — quick hit. Visual proof or demo."},
			{"12-22s", "item_2", "Item 2 — slightly more surprising."},
			{"22-32s", "item_3", "Item 3 — the one that gets shared."},
			{"32-42s", "bonus", "Bonus item — 'but wait, there's more' energy."},
			{"42-50s", "cta", "Which one was new to you? Comment the number."},
		},
		SoundMood: "energetic / countdown beats",
		CTATemplates: []string{
			"Which number was new to you? Comment below.",
			"Share this with someone who needs to know.",
			"Follow for part 2 — I have 5 more.",
		},
	},
	"pov": {
		Key:   "pov",
		Label: "POV / Relatable Skit",
		HookTemplates: []string{
			"POV: you just discovered {topic} for the first time.",
			"POV: your boss asks you to explain {topic}.",
			"POV: {topic} finally clicks after months of struggling.",
			"POV: you realise {topic} was the answer all along.",
		},
		Structure: []Slot{
			{"0-3s", "hook", "POV text overlay. Relatable facial expression."},
			{"3-10s", "setup", "Act out the before state. Frustration or confusion."},
			{"10-20s", "discovery", "The moment of realisation. Transition effect."},
			{"20-35s", "payoff", "Show the better way. Confidence and satisfaction."},
			{"35-45s", "cta", "Break character. Talk directly. Follow CTA."},
		},
		SoundMood: "trending audio / comedic timing beat",
		CTATemplates: []string{
			"Tag someone who needs this realisation.",
			"Follow if this was you last week.",
			"Duet this with your reaction.",
		},
	},
	"before_after": {
		Key:   "before_after",
		Label: "Before / After Transformation",
		HookTemplates: []string{
			"My {topic} workflow: before vs after.",
			"{topic} beginner vs {topic} pro — the difference is insane.",
			"I upgraded my {topic} setup and the results speak for themselves.",
			"What {topic} looks like after 1 year of practice.",
		},
		Structure: []Slot{
			{"0-3s", "hook", "Split screen preview or 'wait for it' text."},
			{"3-12s", "before", "Show the messy / slow / painful before state."},
			{"12-15s", "transition", "Sharp cut or wipe transition. Sound effect."},
			{"15-30s", "after", "Satisfying after state. Clean, fast, impressive."},
			{"30-40s", "breakdown", "Quick explanation of what changed."},
			{"40-50s", "cta", "Want the full breakdown? Follow + comment."},
		},
		SoundMood: "transformation / glow-up trending audio",
		CTATemplates: []string{
			"Want the full breakdown? Comment 'HOW'.",
			"Follow for more transformations like this.",
			"Save this for your own glow-up.",
		},
	},
	"hot_take_snap": {
		Key:   "hot_take_snap",
		Label: "Hot Take Snap (text-only)",
		HookTemplates: []string{
			"This {topic} opinion will get me cancelled.",
			"Nobody is ready for this {topic} take.",
			"Reading this {topic} take out loud so you don't have to.",
		},
		Structure: []Slot{
			{"0-3s", "hook_text", "Full-screen label card. No talking."},
			{"3-10s", "take_drop", "The take lands as bold text. Hold for reading."},
			{"10-16s", "text_cta", "Text CTA card. Arrow to comments."},
		},
		SoundMood: "single dramatic hit / silence",
		CTATemplates: []string{
			"Unfollow if you disagree. Comment if you don't.",
			"Rate this take 1-10 in the comments.",
			"Screenshot this and send it to a dev friend.",
		},
	},
	"quick_fact": {
		Key:   "quick_fact",
		Label: "Quick Fact Drop",
		HookTemplates: []string{
			"A {topic} fact 99% of devs don't know.",
			"This {topic} fact sounds fake but isn't.",
			"File this {topic} fact under 'should be taught in school'.",
		},
		Structure: []Slot{
			{"0-3s", "text_hook", "Label card: 'DID YOU KNOW?'. Quick fade."},
			{"3-12s", "fact_drop", "The fact as large text. Let it breathe."},
			{"12-20s", "result_flash", "Why it matters, one punchy line."},
			{"20-26s", "end_card", "End card with follow CTA."},
		},
		SoundMood: "curious / minimal pluck loop",
		CTATemplates: []string{
			"Follow for one fact like this every day.",
			"Did you know this one? Be honest.",
			"Send this to someone who'd argue about it.",
		},
	},
	"this_or_that": {
		Key:   "this_or_that",
		Label: "This or That Showdown",
		HookTemplates: []string{
			"{topic} — settled in 30 seconds.",
			"The {topic} debate ends today.",
			"Everyone argues about {topic}. Here's the real answer.",
		},
		Structure: []Slot{
			{"0-3s", "hook", "Face to camera. 'We need to talk.'"},
			{"3-14s", "versus_reveal", "Split screen showdown. Left vs right."},
			{"14-22s", "your_pick", "Declare the winner. Own the choice."},
			{"22-30s", "cta", "Ask viewers to defend their side."},
		},
		SoundMood: "boxing bell / versus battle beat",
		CTATemplates: []string{
			"Team left or team right? Comment your side.",
			"Defend your pick in the comments.",
			"Tag the friend you argue about {topic} with.",
		},
	},
}
