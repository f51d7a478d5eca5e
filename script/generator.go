// Package script generates, validates and writes short-form video scripts.
package script

import (
	"fmt"
	"hash/fnv"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"shortform-pipeline/formats"
	"shortform-pipeline/types"
)

// Hashtag banks, grouped so generated tag lists read naturally.
var hashtagBank = map[string][]string{
	"core": {
		"#tech", "#coding", "#programming", "#developer", "#software",
		"#learntocode", "#coder", "#webdev", "#devlife", "#techtok",
	},
	"viral": {
		"#fyp", "#foryou", "#foryoupage", "#viral", "#trending",
		"#blowthisup", "#xyzbca",
	},
	"engagement": {
		"#learnontiktok", "#edutok", "#todayilearned", "#lifehack",
		"#didyouknow", "#howto", "#tutorial",
	},
	"niche": {
		"#python", "#javascript", "#webdevelopment", "#linux", "#opensource",
		"#ai", "#machinelearning", "#cybersecurity", "#startup", "#react",
		"#rust", "#golang", "#docker", "#git", "#vscode",
	},
	"career": {
		"#techjobs", "#remotework", "#careertok", "#salarytransparency",
		"#jobsearch", "#freelancer", "#sidehustle",
	},
}

var careerKeywords = []string{
	"job", "salary", "freelanc", "career", "interview", "remote", "hire", "layoff",
}

var captionTemplates = []string{
	"%[1]s Full breakdown in this video. Save for later.",
	"Talking about %[2]s because someone needed to say it. Agree or disagree?",
	"The honest truth about %[2]s that nobody is telling you.",
	"%[2]s — explained in a way that actually makes sense.",
	"I wish someone told me this about %[2]s sooner.",
}

// Generator builds complete scripts from a topic and a format key.
// Template-based and fully deterministic: the same inputs always yield
// the same script, so re-runs are idempotent.
type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// seed derives a stable 64-bit seed from the generation inputs.
// The stdlib string hash is not stable across processes; FNV-1a is.
func seed(topic, formatKey string) int64 {
	h := fnv.New64a()
	h.Write([]byte(topic))
	h.Write([]byte{0})
	h.Write([]byte(formatKey))
	return int64(h.Sum64())
}

// Generate builds a script for topic in the given format.
// Returns formats.ErrUnknownFormat for keys outside the catalog.
func (g *Generator) Generate(topic, formatKey, id string) (*types.Script, error) {
	f, err := formats.Lookup(formatKey)
	if err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(seed(topic, formatKey)))

	hook := fillTopic(f.HookTemplates[rng.Intn(len(f.HookTemplates))], topic)
	cta := fillTopic(f.CTATemplates[rng.Intn(len(f.CTATemplates))], topic)
	segments := buildSegments(f, topic, hook, cta)
	hashtags := selectHashtags(topic, rng)
	caption := fmt.Sprintf(captionTemplates[rng.Intn(len(captionTemplates))], hook, topic)

	script := &types.Script{
		ID:          id,
		Topic:       topic,
		FormatKey:   formatKey,
		Hook:        hook,
		Segments:    segments,
		Caption:     caption,
		Hashtags:    hashtags,
		SoundMood:   f.SoundMood,
		CTA:         cta,
		DurationSec: f.DurationSec(),
		CreatedAt:   time.Now().UTC().Format(time.RFC3339),
		Metadata: map[string]interface{}{
			"format_label": f.Label,
			"source":       "template",
		},
	}
	script.Metadata["word_count"] = script.WordCount()
	return script, nil
}

func fillTopic(template, topic string) string {
	return strings.ReplaceAll(template, "{topic}", topic)
}

func buildSegments(f formats.Format, topic, hook, cta string) []types.Segment {
	segments := make([]types.Segment, 0, len(f.Structure))
	for _, slot := range f.Structure {
		segments = append(segments, types.Segment{
			Timing:          slot.Timing,
			Role:            slot.Role,
			Text:            roleText(slot.Role, f.Key, topic, hook, cta),
			VisualDirection: slot.Direction,
		})
	}
	return segments
}

// roleText dispatches a segment role to its text generator. Unknown roles
// fall back to a bracketed placeholder for manual authoring.
func roleText(role, formatKey, topic, hook, cta string) string {
	switch role {
	case "hook", "hook_text", "text_hook":
		return hook
	case "cta", "text_cta", "end_card":
		return cta
	case "setup":
		return setupText(formatKey, topic)
	case "argument":
		return fmt.Sprintf("First — the learning curve for %[1]s is way steeper than people admit. " +
			"Second — the ecosystem is fragmented and the docs assume you already know everything. " +
			"Third — the alternatives that nobody talks about are genuinely competitive now.", topic)
	case "proof":
		return fmt.Sprintf("Look at this — [show screen recording or stat]. " +
			"When you actually benchmark %s against the alternatives, " +
			"the gap is nowhere near as big as the influencers claim.", topic)
	case "flip":
		return fmt.Sprintf("Now, to be fair — %s does have genuine strengths. " +
			"If you're in a specific niche where it shines, absolutely use it. " +
			"But for the majority of people watching this? There are better options.", topic)
	case "myth_statement":
		return fmt.Sprintf("Myth number one: you need years of experience for %[1]s. " +
			"Myth number two: %[1]s is only for big companies. " +
			"Myth number three: the expensive option is always the best for %[1]s.", topic)
	case "debunk":
		return fmt.Sprintf("Let's break these down. The experience myth? Most people overestimate " +
			"the barrier to entry for %[1]s. The fundamentals take weeks, not years. " +
			"The 'big companies only' myth? Some of the best %[1]s implementations " +
			"come from solo developers and small teams.", topic)
	case "reality":
		return fmt.Sprintf("The reality is — %s is accessible to anyone willing to put " +
			"in focused practice. Start small, build projects, and you'll outperform " +
			"90%% of people who just watch tutorials without doing the work.", topic)
	case "context":
		return fmt.Sprintf("This is for anyone who's been wanting to get into %s " +
			"but keeps getting overwhelmed by all the options.", topic)
	case "step_1":
		return fmt.Sprintf("Step one: open up your setup and start with the absolute basics of %s. Don't overthink it.", topic)
	case "step_2":
		return fmt.Sprintf("Step two: now apply it to a real problem. This is where %s starts clicking.", topic)
	case "step_3":
		return "Step three: clean it up and make it production-ready. This is where beginners stop and pros keep going."
	case "result":
		return fmt.Sprintf("And that's it. You just did %s in under a minute. " +
			"See how simple that was? Now imagine what you can build with this.", topic)
	case "conflict":
		return fmt.Sprintf("Then everything went sideways. The thing about %s that nobody " +
			"warns you about is the hidden complexity. What looked simple on the " +
			"surface had layers of problems underneath.", topic)
	case "turning_point":
		return fmt.Sprintf("But then I found the one thing that changed everything. " +
			"Instead of fighting against %s, I started working with it differently. " +
			"I simplified. I focused on fundamentals instead of fancy tricks.", topic)
	case "lesson":
		return fmt.Sprintf("If I could go back and tell myself one thing about %s, " +
			"it would be this: stop chasing perfection and start shipping. " +
			"The people who succeed aren't smarter — they just iterate faster.", topic)
	case "item_1":
		return fmt.Sprintf("Number one — most people don't know that %s has a hidden feature " +
			"that saves hours of work. Seriously, look this up.", topic)
	case "item_2":
		return fmt.Sprintf("Number two — there's a free alternative for %s that the expensive " +
			"tools don't want you to know about.", topic)
	case "item_3":
		return fmt.Sprintf("Number three — the biggest mistake with %s is starting too " +
			"complicated. The pros keep it dead simple.", topic)
	case "bonus":
		return fmt.Sprintf("Bonus: if you combine this %s knowledge with one other " +
			"skill, you become basically unstoppable. I'll tell you which " +
			"skill in part 2 — make sure you're following.", topic)
	case "discovery":
		return fmt.Sprintf("[Transition effect] That moment when %s suddenly makes sense. " +
			"Everything you struggled with before — it all clicks into place. " +
			"This is the 'aha' moment everyone talks about.", topic)
	case "payoff":
		return fmt.Sprintf("Now look at the difference. What used to take hours with %s " +
			"takes minutes. What used to be confusing is now second nature. " +
			"This is the power of actually understanding the fundamentals.", topic)
	case "before":
		return fmt.Sprintf("Before: struggling with %s. Slow, messy, full of errors. " +
			"Spending hours on things that should take minutes. " +
			"We've all been there.", topic)
	case "transition":
		return "[SHARP CUT — transition effect + sound effect]"
	case "after":
		return fmt.Sprintf("After: clean, fast, professional. %s working exactly how it should. " +
			"Same person, same project — completely different result.", topic)
	case "breakdown":
		return fmt.Sprintf("What changed? Three things: I learned the right fundamentals of %s, " +
			"I stopped copying tutorials without understanding them, " +
			"and I built real projects instead of toy examples.", topic)
	case "take_drop":
		return fmt.Sprintf("The loudest voices about %s have the least production experience. " +
			"The people actually shipping are too busy to argue online.", topic)
	case "fact_drop":
		return fmt.Sprintf("Most teams adopt %s for the wrong reason — and the data backs it up. " +
			"The deciding factor is almost never the one in the marketing.", topic)
	case "result_flash":
		return fmt.Sprintf("Knowing this changes how you evaluate %s entirely. " +
			"You stop following the crowd and start asking the right question.", topic)
	case "versus_reveal":
		return fmt.Sprintf("Left: %[1]s the way the tutorials sell it. " +
			"Right: %[1]s the way it actually goes in production.", topic)
	case "your_pick":
		return fmt.Sprintf("My pick? The boring option. With %s, boring means battle-tested, " +
			"and battle-tested means you sleep at night.", topic)
	default:
		return fmt.Sprintf("[%s: talk about %s]", role, topic)
	}
}

func setupText(formatKey, topic string) string {
	switch formatKey {
	case "hot_take":
		return fmt.Sprintf("Everyone on this app keeps saying %s is amazing, that " +
			"it's the future, that you absolutely need it. But let me tell " +
			"you what actually happens when you use it in the real world.", topic)
	case "storytime":
		return fmt.Sprintf("So a few months ago I decided to go all-in on %s. " +
			"I had seen all the hype, read the tutorials, and thought " +
			"I was ready. Spoiler: I was not ready.", topic)
	default:
		return fmt.Sprintf("Here's the thing about %s that most people completely miss. " +
			"Whether you're a beginner or experienced, this matters.", topic)
	}
}

// selectHashtags picks a natural-looking mix of tags, capped at 12:
// 3 core + 2 viral + 2 engagement, then niche tags matched against the
// topic (random niche if none match), then career tags when the topic
// mentions career keywords. Duplicates removed preserving first use.
func selectHashtags(topic string, rng *rand.Rand) []string {
	var tags []string
	tags = append(tags, sample(rng, hashtagBank["core"], 3)...)
	tags = append(tags, sample(rng, hashtagBank["viral"], 2)...)
	tags = append(tags, sample(rng, hashtagBank["engagement"], 2)...)

	topicLower := strings.ToLower(topic)
	var relevant []string
	for _, tag := range hashtagBank["niche"] {
		if strings.Contains(topicLower, strings.TrimPrefix(tag, "#")) {
			relevant = append(relevant, tag)
		}
	}
	if len(relevant) > 0 {
		if len(relevant) > 2 {
			relevant = relevant[:2]
		}
		tags = append(tags, relevant...)
	} else {
		tags = append(tags, sample(rng, hashtagBank["niche"], 2)...)
	}

	for _, kw := range careerKeywords {
		if strings.Contains(topicLower, kw) {
			tags = append(tags, sample(rng, hashtagBank["career"], 2)...)
			break
		}
	}

	seen := make(map[string]bool, len(tags))
	unique := tags[:0]
	for _, tag := range tags {
		if !seen[tag] {
			seen[tag] = true
			unique = append(unique, tag)
		}
	}
	if len(unique) > 12 {
		unique = unique[:12]
	}
	return unique
}

// sample returns n elements drawn without replacement.
func sample(rng *rand.Rand, pool []string, n int) []string {
	if n > len(pool) {
		n = len(pool)
	}
	out := make([]string, 0, n)
	for _, idx := range rng.Perm(len(pool))[:n] {
		out = append(out, pool[idx])
	}
	return out
}

// MakeID derives the stable backlog id for a topic/format pair.
func MakeID(topic, formatKey string) string {
	h := fnv.New64a()
	h.Write([]byte("short-" + formatKey + "-" + topic))
	return strconv.FormatUint(h.Sum64(), 16)
}
