package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"shortform-pipeline/config"
	"shortform-pipeline/pipeline"
	"shortform-pipeline/video"
)

var (
	cfgPath  string
	maxItems int
	topic    string
	format   string
	category string
	intent   string
)

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("[main] no config at %s, using defaults", cfgPath)
			return config.Default(), nil
		}
		return nil, err
	}
	return cfg, nil
}

func newPipeline() (*pipeline.Pipeline, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return pipeline.New(cfg)
}

func main() {
	// .env is optional; real env vars win either way.
	_ = godotenv.Load()

	root := &cobra.Command{
		Use:          "shortform",
		Short:        "Short-form video script and production pipeline",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&cfgPath, "config", "config.yaml", "path to config file")

	runCmd := &cobra.Command{
		Use:   "pipeline",
		Short: "Run the full pipeline: discover, script, produce, publish",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := newPipeline()
			if err != nil {
				return err
			}
			state, err := p.Run(cmd.Context(), maxItems)
			if err != nil {
				return err
			}
			fmt.Printf("run %s: %d scripts, %d videos, %d rejected\n",
				state.RunID, state.ScriptsWritten, state.VideosProduced, state.ScriptsRejected)
			return nil
		},
	}
	runCmd.Flags().IntVar(&maxItems, "max", 0, "max topics to process (0 = all pending)")

	discoverCmd := &cobra.Command{
		Use:   "discover",
		Short: "Propose new topics into the backlog",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := newPipeline()
			if err != nil {
				return err
			}
			selected, err := p.Discover(cmd.Context())
			if err != nil {
				return err
			}
			for _, t := range selected {
				fmt.Printf("%s  [%s]  %s\n", t.ID, t.Format, t.Topic)
			}
			return nil
		},
	}

	scriptCmd := &cobra.Command{
		Use:   "script",
		Short: "Generate a single script for a topic and format",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := newPipeline()
			if err != nil {
				return err
			}
			s, verdict, err := p.GenerateOne(cmd.Context(), topic, format)
			if err != nil {
				return err
			}
			fmt.Printf("%s  score %d  approved=%v\n", s.ID, verdict.Score, verdict.Approved)
			for _, issue := range verdict.Issues {
				fmt.Printf("  issue: %s\n", issue)
			}
			return nil
		},
	}
	scriptCmd.Flags().StringVar(&topic, "topic", "", "topic to script")
	scriptCmd.Flags().StringVar(&format, "format", "hot_take", "format key")
	_ = scriptCmd.MarkFlagRequired("topic")

	produceCmd := &cobra.Command{
		Use:   "produce",
		Short: "Generate a script and produce its video",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := newPipeline()
			if err != nil {
				return err
			}
			result, err := p.ProduceOne(cmd.Context(), topic, format)
			if err != nil {
				return err
			}
			switch result.State {
			case video.StateProduced:
				fmt.Printf("produced %s\n", result.VideoPath)
			default:
				fmt.Printf("%s: %s\n", result.State, result.Reason)
			}
			return nil
		},
	}
	produceCmd.Flags().StringVar(&topic, "topic", "", "topic to produce")
	produceCmd.Flags().StringVar(&format, "format", "hot_take", "format key")
	_ = produceCmd.MarkFlagRequired("topic")

	articleCmd := &cobra.Command{
		Use:   "article",
		Short: "Generate and publish a long-form article for a topic",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := newPipeline()
			if err != nil {
				return err
			}
			path, err := p.WriteArticle(topic, category, intent)
			if err != nil {
				return err
			}
			fmt.Printf("published %s\n", path)
			return nil
		},
	}
	articleCmd.Flags().StringVar(&topic, "topic", "", "article topic")
	articleCmd.Flags().StringVar(&category, "category", "", "topic category")
	articleCmd.Flags().StringVar(&intent, "intent", "", "search intent")
	_ = articleCmd.MarkFlagRequired("topic")

	siteCmd := &cobra.Command{
		Use:   "site",
		Short: "Rebuild the static site from existing outputs",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := newPipeline()
			if err != nil {
				return err
			}
			return p.PublishSite()
		},
	}

	root.AddCommand(runCmd, discoverCmd, scriptCmd, produceCmd, articleCmd, siteCmd)

	if err := root.ExecuteContext(context.Background()); err != nil {
		log.Fatalf("[main] %v", err)
	}
}
