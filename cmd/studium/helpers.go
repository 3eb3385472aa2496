package main

import (
	"fmt"

	"github.com/aknishi/studium/internal/config"
	"github.com/aknishi/studium/internal/content"
	"github.com/aknishi/studium/internal/inference"
	"github.com/aknishi/studium/internal/inference/openai"
	"github.com/aknishi/studium/internal/study"
)

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

func newOpenAIClient(cfg *config.Config) (*openai.Client, error) {
	if cfg.OpenAI.APIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY environment variable is required")
	}
	return openai.NewClient(cfg.OpenAI.APIKey, cfg.OpenAI.Model, inference.DefaultMaxRetryAttempts), nil
}

func newWorkflow(cfg *config.Config, client inference.Client) (*content.Workflow, error) {
	registry, err := content.NewRegistry(cfg.Templates.PromptDirectory)
	if err != nil {
		return nil, fmt.Errorf("content.NewRegistry() > %w", err)
	}
	return content.NewWorkflow(registry, client), nil
}

func loadProfile(cfg *config.Config) (study.Profile, error) {
	profile, err := study.LoadProfile(cfg.Study.ProfileFile)
	if err != nil {
		return study.Profile{}, fmt.Errorf("study.LoadProfile(%s) > %w", cfg.Study.ProfileFile, err)
	}
	return profile, nil
}

// buildSelection turns the --unit and --topic flags into a selection,
// enforcing that only one of the two is used.
func buildSelection(unit string, topics []string) (study.TopicSelection, error) {
	if unit != "" && len(topics) > 0 {
		return study.TopicSelection{}, fmt.Errorf("use either --unit or --topic, not both")
	}

	var selection study.TopicSelection
	if unit != "" {
		selection.SelectUnit(unit)
		return selection, nil
	}
	for _, topic := range topics {
		if err := selection.SelectTopic(topic); err != nil {
			return study.TopicSelection{}, err
		}
	}
	return selection, nil
}
