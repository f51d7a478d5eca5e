package discovery

import (
	"context"
	"log"
	"math/rand"
	"strconv"
	"time"

	"shortform-pipeline/formats"
	"shortform-pipeline/script"
	"shortform-pipeline/types"
)

// Seed topics tuned for short-form tech content.
var topicSeeds = []string{
	// Dev life & culture
	"switching from Windows to Linux as a developer",
	"why senior devs hate unnecessary meetings",
	"the mass layoffs in tech and how to survive",
	"working from home vs return-to-office as a developer",
	"developer burnout and how to actually fix it",
	"why coding bootcamps don't tell you the full truth",
	"the one skill that separates junior from senior developers",
	// Tools & productivity
	"VS Code extensions that feel like cheating",
	"terminal commands every developer should know",
	"Git tricks that will save your career one day",
	"AI coding assistants and whether they actually help",
	"the best free developer tools in 2026",
	"Docker explained so simply your manager could understand",
	"Linux commands that make you look like a hacker",
	"keyboard shortcuts that 10x your coding speed",
	// Languages & frameworks
	"Python vs JavaScript for your first language",
	"why Rust is taking over systems programming",
	"React vs Vue vs Svelte in 60 seconds",
	"the programming language that pays the most in 2026",
	"TypeScript tricks that feel illegal",
	"why Go is quietly winning the backend race",
	// Career & money
	"how to mass-apply to developer jobs the smart way",
	"developer salary negotiation secrets",
	"side projects that actually make money as a developer",
	"freelancing as a developer — the truth nobody shares",
	"the tech interview process is broken — here's why",
	"remote developer jobs that pay six figures",
	// AI & trending tech
	"building your first AI app with zero experience",
	"the AI tools replacing developers — should you worry",
	"open source AI models you can run on your laptop",
	"the rise of AI agents and what it means for your job",
	"machine learning explained in 60 seconds",
	// Security & privacy
	"your phone is tracking you — here's how to stop it",
	"password managers and why you need one yesterday",
	"the easiest way hackers get into your accounts",
	"two-factor authentication mistakes everyone makes",
}

// TrendingSource supplies extra topic candidates from an external feed.
type TrendingSource interface {
	Trending(ctx context.Context) ([]string, error)
}

// Agent crosses seed topics with format keys to propose new backlog
// entries. Seeded by the current date, so each day yields fresh combos
// while repeated runs on the same day are no-ops.
type Agent struct {
	store    *Store
	trending TrendingSource
	now      func() time.Time
}

func NewAgent(store *Store, trending TrendingSource) *Agent {
	return &Agent{store: store, trending: trending, now: time.Now}
}

// Run proposes up to maxNew topic/format pairs, appends them to the
// backlog with status "selected", and returns them.
func (a *Agent) Run(ctx context.Context, maxNew int) ([]types.Topic, error) {
	existing := a.store.Load()
	existingIDs := make(map[string]bool, len(existing))
	for _, t := range existing {
		existingIDs[t.ID] = true
	}

	daySeed, _ := strconv.ParseInt(a.now().UTC().Format("20060102"), 10, 64)
	rng := rand.New(rand.NewSource(daySeed))

	pool := a.topicPool(ctx)
	rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	formatPool := formats.Keys()
	rng.Shuffle(len(formatPool), func(i, j int) { formatPool[i], formatPool[j] = formatPool[j], formatPool[i] })

	now := a.now().UTC().Format(time.RFC3339)
	var selected []types.Topic
	for _, topic := range pool {
		if len(selected) >= maxNew {
			break
		}
		// One format per topic per run.
		for _, fmtKey := range formatPool {
			id := script.MakeID(topic, fmtKey)
			if existingIDs[id] {
				continue
			}
			entry := types.Topic{
				ID:        id,
				Topic:     topic,
				Format:    fmtKey,
				Status:    "selected",
				CreatedAt: now,
			}
			selected = append(selected, entry)
			existing = append(existing, entry)
			existingIDs[id] = true
			break
		}
	}

	if err := a.store.Save(existing); err != nil {
		return nil, err
	}
	log.Printf("[discovery] %d new topics selected", len(selected))
	return selected, nil
}

// topicPool returns seed topics, prefixed by trending ones when a
// trending source is configured. Trending failures degrade to seeds.
func (a *Agent) topicPool(ctx context.Context) []string {
	pool := make([]string, 0, len(topicSeeds)+16)
	if a.trending != nil {
		trending, err := a.trending.Trending(ctx)
		if err != nil {
			log.Printf("[discovery] trending source warning: %v — using seeds only", err)
		} else {
			pool = append(pool, trending...)
		}
	}
	return append(pool, topicSeeds...)
}

// Unprocessed returns backlog entries still waiting for production.
func (a *Agent) Unprocessed() []types.Topic {
	var out []types.Topic
	for _, t := range a.store.Load() {
		if t.Status == "new" || t.Status == "selected" {
			out = append(out, t)
		}
	}
	return out
}
