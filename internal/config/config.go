package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Templates TemplatesConfig `mapstructure:"templates"`
	Outputs   OutputsConfig   `mapstructure:"outputs"`
	Study     StudyConfig     `mapstructure:"study"`
	OpenAI    OpenAIConfig    `mapstructure:"openai"`
}

type ServerConfig struct {
	Port            int      `mapstructure:"port" validate:"gte=1,lte=65535"`
	StaticDirectory string   `mapstructure:"static_directory"`
	AllowedOrigins  []string `mapstructure:"allowed_origins" validate:"min=1,dive,required"`
}

type TemplatesConfig struct {
	// PromptDirectory overrides the embedded prompt templates when set.
	PromptDirectory string `mapstructure:"prompt_directory" validate:"omitempty,dir"`
}

type OutputsConfig struct {
	Directory string `mapstructure:"directory" validate:"required"`
}

type StudyConfig struct {
	ProfileFile         string `mapstructure:"profile_file"`
	FlashcardsDirectory string `mapstructure:"flashcards_directory"`
	PlanFile            string `mapstructure:"plan_file"`
}

type OpenAIConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model" validate:"required"`
}

func Load(configFile string) (*Config, error) {
	v := viper.New()

	v.SetConfigType("yaml")

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/studium")
	}

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.static_directory", filepath.Join("web", "static"))
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})
	v.SetDefault("outputs.directory", "outputs")
	v.SetDefault("study.profile_file", "profile.yaml")
	v.SetDefault("study.flashcards_directory", "flashcards")
	v.SetDefault("study.plan_file", "plan.yaml")
	v.SetDefault("openai.model", "gpt-4o-mini")

	// OpenAI credentials come from environment variables only, never the file
	if err := v.BindEnv("openai.api_key", "OPENAI_API_KEY"); err != nil {
		return nil, fmt.Errorf("failed to bind OPENAI_API_KEY environment variable: %w", err)
	}
	if err := v.BindEnv("openai.model", "OPENAI_MODEL"); err != nil {
		return nil, fmt.Errorf("failed to bind OPENAI_MODEL environment variable: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("cfg.Validate() > %w", err)
	}

	return &cfg, nil
}

// Validate checks the loaded configuration and reports every violation in a
// single error message.
func (c *Config) Validate() error {
	validate, trans, err := newValidator()
	if err != nil {
		return fmt.Errorf("newValidator() > %w", err)
	}

	if err := validate.Struct(c); err != nil {
		var validationErrors validator.ValidationErrors
		if !errors.As(err, &validationErrors) {
			return fmt.Errorf("validate.Struct() > %w", err)
		}

		messages := make([]string, 0, len(validationErrors))
		for _, fieldError := range validationErrors {
			messages = append(messages, fieldError.Translate(trans))
		}
		return fmt.Errorf("invalid configuration: %s", strings.Join(messages, "; "))
	}
	return nil
}
