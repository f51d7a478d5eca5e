// Package pipeline orchestrates a full production run: discover
// topics, generate and validate scripts, produce videos, publish the
// site and persist run state.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"shortform-pipeline/backend"
	"shortform-pipeline/config"
	"shortform-pipeline/content"
	"shortform-pipeline/discovery"
	"shortform-pipeline/script"
	"shortform-pipeline/site"
	"shortform-pipeline/types"
	"shortform-pipeline/video"
)

// producer is the video production seam, swapped out in tests.
type producer interface {
	Produce(ctx context.Context, s *types.Script) video.Result
}

// textBackend is the optional remote script source.
type textBackend interface {
	GenerateScript(ctx context.Context, topic, formatKey, id string) (*types.Script, bool)
}

// Pipeline wires every stage together for one run.
type Pipeline struct {
	cfg       *config.Config
	store     *discovery.Store
	agent     *discovery.Agent
	generator *script.Generator
	validator *script.Validator
	writer    *script.Writer
	producer  producer
	backend   textBackend
	publisher *site.Publisher
}

func New(cfg *config.Config) (*Pipeline, error) {
	store, err := discovery.NewStore(cfg.Paths.Data)
	if err != nil {
		return nil, fmt.Errorf("topic store: %w", err)
	}

	var trending discovery.TrendingSource
	if len(cfg.Discovery.Subreddits) > 0 {
		src, err := discovery.NewRedditSource(cfg.Discovery.Subreddits)
		if err != nil {
			log.Printf("[pipeline] reddit source unavailable: %v", err)
		} else {
			trending = src
		}
	}

	writer, err := script.NewWriter(cfg.Paths.Scripts)
	if err != nil {
		return nil, fmt.Errorf("script writer: %w", err)
	}

	p := &Pipeline{
		cfg:       cfg,
		store:     store,
		agent:     discovery.NewAgent(store, trending),
		generator: script.NewGenerator(),
		validator: script.NewValidator(cfg.Rubric),
		writer:    writer,
		producer:  video.NewProducer(cfg.Video, cfg.Paths.Videos),
		publisher: site.NewPublisher(cfg.Site, cfg.Paths.Scripts, cfg.Paths.Videos, cfg.Paths.Site),
	}
	if cfg.Backend.Enabled {
		p.backend = backend.New(cfg.Backend)
	}
	return p, nil
}

// Run executes one full pipeline pass over at most max topics.
func (p *Pipeline) Run(ctx context.Context, max int) (*types.RunState, error) {
	runID := uuid.NewString()[:8]
	state := &types.RunState{
		RunID:     runID,
		StartedAt: time.Now().UTC().Format(time.RFC3339),
	}
	log.Printf("[pipeline] run %s started", runID)

	selected, err := p.agent.Run(ctx, p.cfg.Discovery.MaxNew)
	if err != nil {
		log.Printf("[pipeline] discovery warning: %v", err)
	}
	state.TopicsDiscovered = len(selected)

	todo := p.agent.Unprocessed()
	if max > 0 && len(todo) > max {
		todo = todo[:max]
	}

	var publishedIDs []string
	for _, topic := range todo {
		published, err := p.processTopic(ctx, topic, state)
		if err != nil {
			log.Printf("[pipeline] topic %s: %v", topic.ID, err)
			continue
		}
		if published {
			publishedIDs = append(publishedIDs, topic.ID)
		}
	}

	if err := p.store.MarkStatus(publishedIDs, "published"); err != nil {
		log.Printf("[pipeline] mark published: %v", err)
	}

	if err := p.publisher.Rebuild(); err != nil {
		log.Printf("[pipeline] site rebuild: %v", err)
		state.Error = err.Error()
	}

	state.CompletedAt = time.Now().UTC().Format(time.RFC3339)
	if err := p.saveRunState(state); err != nil {
		log.Printf("[pipeline] save run state: %v", err)
	}
	if err := p.updatePerformance(state); err != nil {
		log.Printf("[pipeline] update performance: %v", err)
	}

	log.Printf("[pipeline] run %s done: %d written, %d rejected, %d videos",
		runID, state.ScriptsWritten, state.ScriptsRejected, state.VideosProduced)
	return state, nil
}

func (p *Pipeline) processTopic(ctx context.Context, topic types.Topic, state *types.RunState) (bool, error) {
	s := p.generate(ctx, topic)
	if s == nil {
		return false, fmt.Errorf("no script generated")
	}

	verdict := p.validator.Validate(s)
	if !verdict.Approved {
		state.ScriptsRejected++
		log.Printf("[pipeline] rejected %s (score %d): %v", s.ID, verdict.Score, verdict.Issues)
		return false, nil
	}

	jsonPath, err := p.writer.WriteJSON(s)
	if err != nil {
		return false, fmt.Errorf("write json: %w", err)
	}
	docPath, err := p.writer.WriteDoc(s)
	if err != nil {
		return false, fmt.Errorf("write doc: %w", err)
	}
	state.ScriptsWritten++

	result := p.producer.Produce(ctx, s)
	if result.State == video.StateProduced {
		state.VideosProduced++
	}

	state.Published = append(state.Published, types.PublishedScript{
		ID:          s.ID,
		Topic:       s.Topic,
		Format:      s.FormatKey,
		Score:       verdict.Score,
		JSONPath:    jsonPath,
		DocPath:     docPath,
		VideoPath:   result.VideoPath,
		VideoState:  result.State,
		DurationSec: s.DurationSec,
	})
	return true, nil
}

// generate prefers the remote backend when enabled and falls back to
// the deterministic template generator on any backend failure.
func (p *Pipeline) generate(ctx context.Context, topic types.Topic) *types.Script {
	id := script.MakeID(topic.Topic, topic.Format)
	if p.backend != nil {
		if s, ok := p.backend.GenerateScript(ctx, topic.Topic, topic.Format, id); ok {
			return s
		}
	}
	s, err := p.generator.Generate(topic.Topic, topic.Format, id)
	if err != nil {
		log.Printf("[pipeline] generate %s: %v", topic.ID, err)
		return nil
	}
	return s
}

func (p *Pipeline) saveRunState(state *types.RunState) error {
	dir := filepath.Join(p.cfg.Paths.Data, "runs")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, state.RunID+".json"), data, 0644)
}

// performance.json keeps running totals across all runs.
type performance struct {
	Runs             int    `json:"runs"`
	ScriptsPublished int    `json:"scripts_published"`
	VideosProduced   int    `json:"videos_produced"`
	LastRun          string `json:"last_run"`
	Errors           int    `json:"errors"`
}

func (p *Pipeline) updatePerformance(state *types.RunState) error {
	path := filepath.Join(p.cfg.Paths.Data, "performance.json")
	var perf performance
	if data, err := os.ReadFile(path); err == nil {
		_ = json.Unmarshal(data, &perf)
	}
	perf.Runs++
	perf.ScriptsPublished += state.ScriptsWritten
	perf.VideosProduced += state.VideosProduced
	perf.LastRun = state.CompletedAt
	if state.Error != "" {
		perf.Errors++
	}
	data, err := json.MarshalIndent(perf, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Discover runs topic discovery only.
func (p *Pipeline) Discover(ctx context.Context) ([]types.Topic, error) {
	return p.agent.Run(ctx, p.cfg.Discovery.MaxNew)
}

// GenerateOne generates, validates and writes a single script for an
// explicit topic/format pair.
func (p *Pipeline) GenerateOne(ctx context.Context, topic, formatKey string) (*types.Script, types.ValidationResult, error) {
	s := p.generate(ctx, types.Topic{Topic: topic, Format: formatKey})
	if s == nil {
		return nil, types.ValidationResult{}, fmt.Errorf("generate script for %q", topic)
	}
	verdict := p.validator.Validate(s)
	if _, err := p.writer.WriteJSON(s); err != nil {
		return nil, verdict, err
	}
	if _, err := p.writer.WriteDoc(s); err != nil {
		return nil, verdict, err
	}
	return s, verdict, nil
}

// ProduceOne generates a script and produces its video.
func (p *Pipeline) ProduceOne(ctx context.Context, topic, formatKey string) (video.Result, error) {
	s, verdict, err := p.GenerateOne(ctx, topic, formatKey)
	if err != nil {
		return video.Result{}, err
	}
	if !verdict.Approved {
		return video.Result{State: video.StateSkipped, Reason: "script rejected"},
			fmt.Errorf("script scored %d, below approval threshold", verdict.Score)
	}
	return p.producer.Produce(ctx, s), nil
}

// WriteArticle generates, gates and publishes one long-form article
// into the site's posts directory, then rebuilds the site.
func (p *Pipeline) WriteArticle(topic, category, intent string) (string, error) {
	gen := content.NewGenerator()
	draft := gen.Generate(script.MakeID(topic, "article"), topic, category, intent)

	v := content.NewValidator()
	verdict := v.Validate(draft)
	if !verdict.Approved {
		return "", fmt.Errorf("article rejected: %s", strings.Join(verdict.Reasons, "; "))
	}
	draft.Content = v.Enrich(draft.Content)

	path, err := content.WriteMarkdown(filepath.Join(p.cfg.Paths.Site, "posts"), draft)
	if err != nil {
		return "", err
	}
	if err := p.publisher.Rebuild(); err != nil {
		log.Printf("[pipeline] site rebuild after article: %v", err)
	}
	return path, nil
}

// PublishSite rebuilds the static site from current outputs.
func (p *Pipeline) PublishSite() error {
	return p.publisher.Rebuild()
}
