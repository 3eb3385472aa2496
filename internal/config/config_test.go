package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name              string
		configContent     string
		env               map[string]string
		wantErr           bool
		wantErrorContains []string
		want              func(dir string) *Config
	}{
		{
			name: "valid config file with custom values",
			configContent: `server:
  port: 9090
  static_directory: custom/static
  allowed_origins:
    - http://localhost:5173
outputs:
  directory: custom/outputs
study:
  profile_file: me.yaml
  flashcards_directory: decks
  plan_file: schedule.yaml
`,
			want: func(dir string) *Config {
				return &Config{
					Server: ServerConfig{
						Port:            9090,
						StaticDirectory: "custom/static",
						AllowedOrigins:  []string{"http://localhost:5173"},
					},
					Outputs: OutputsConfig{Directory: "custom/outputs"},
					Study: StudyConfig{
						ProfileFile:         "me.yaml",
						FlashcardsDirectory: "decks",
						PlanFile:            "schedule.yaml",
					},
					OpenAI: OpenAIConfig{Model: "gpt-4o-mini"},
				}
			},
		},
		{
			name:          "defaults apply when the file is empty",
			configContent: "",
			want: func(dir string) *Config {
				return &Config{
					Server: ServerConfig{
						Port:            8080,
						StaticDirectory: filepath.Join("web", "static"),
						AllowedOrigins:  []string{"http://localhost:3000"},
					},
					Outputs: OutputsConfig{Directory: "outputs"},
					Study: StudyConfig{
						ProfileFile:         "profile.yaml",
						FlashcardsDirectory: "flashcards",
						PlanFile:            "plan.yaml",
					},
					OpenAI: OpenAIConfig{Model: "gpt-4o-mini"},
				}
			},
		},
		{
			name: "environment variables override the model and supply the key",
			env: map[string]string{
				"OPENAI_API_KEY": "sk-test",
				"OPENAI_MODEL":   "gpt-4o",
			},
			configContent: "",
			want: func(dir string) *Config {
				return &Config{
					Server: ServerConfig{
						Port:            8080,
						StaticDirectory: filepath.Join("web", "static"),
						AllowedOrigins:  []string{"http://localhost:3000"},
					},
					Outputs: OutputsConfig{Directory: "outputs"},
					Study: StudyConfig{
						ProfileFile:         "profile.yaml",
						FlashcardsDirectory: "flashcards",
						PlanFile:            "plan.yaml",
					},
					OpenAI: OpenAIConfig{APIKey: "sk-test", Model: "gpt-4o"},
				}
			},
		},
		{
			name: "invalid YAML format",
			configContent: `server:
  port: [unclosed
`,
			wantErr:           true,
			wantErrorContains: []string{"could not be read"},
		},
		{
			name: "out-of-range port fails validation",
			configContent: `server:
  port: 99999
`,
			wantErr:           true,
			wantErrorContains: []string{"port"},
		},
		{
			name: "missing template override directory fails validation",
			configContent: `templates:
  prompt_directory: /does/not/exist
`,
			wantErr:           true,
			wantErrorContains: []string{"must be an existing directory"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for key, value := range tt.env {
				t.Setenv(key, value)
			}

			dir := t.TempDir()
			configFile := filepath.Join(dir, "config.yaml")
			require.NoError(t, os.WriteFile(configFile, []byte(tt.configContent), 0o644))

			got, err := Load(configFile)
			if tt.wantErr {
				require.Error(t, err)
				for _, substr := range tt.wantErrorContains {
					assert.Contains(t, err.Error(), substr)
				}
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want(dir), got)
		})
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	got, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 8080, got.Server.Port)
	assert.Equal(t, "gpt-4o-mini", got.OpenAI.Model)
}

func TestConfig_Validate_TemplateOverride(t *testing.T) {
	cfg := &Config{
		Server: ServerConfig{
			Port:           8080,
			AllowedOrigins: []string{"http://localhost:3000"},
		},
		Templates: TemplatesConfig{PromptDirectory: t.TempDir()},
		Outputs:   OutputsConfig{Directory: "outputs"},
		OpenAI:    OpenAIConfig{Model: "gpt-4o-mini"},
	}
	assert.NoError(t, cfg.Validate())
}
