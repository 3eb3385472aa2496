// Package testutil provides shared test helpers for creating config files and
// study fixtures.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/aknishi/studium/internal/study"
)

// SetupTestConfig creates a minimal config file and all required directories
// for testing. Returns the path to the generated config file.
func SetupTestConfig(t *testing.T, tmpDir string) string {
	t.Helper()

	dirs := []string{"outputs", "flashcards", "templates", "static"}
	for _, d := range dirs {
		require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, d), 0o755))
	}

	configContent := fmt.Sprintf(`server:
  port: 8080
  static_directory: %s
outputs:
  directory: %s
study:
  profile_file: %s
  flashcards_directory: %s
  plan_file: %s
`,
		filepath.Join(tmpDir, "static"),
		filepath.Join(tmpDir, "outputs"),
		filepath.Join(tmpDir, "profile.yaml"),
		filepath.Join(tmpDir, "flashcards"),
		filepath.Join(tmpDir, "plan.yaml"),
	)

	configPath := filepath.Join(tmpDir, "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0o644))
	return configPath
}

// WriteDeckFile writes a flashcard deck fixture and returns its path.
func WriteDeckFile(t *testing.T, dir string, name string, deck []study.Flashcard) string {
	t.Helper()

	encoded, err := yaml.Marshal(deck)
	require.NoError(t, err)

	path := filepath.Join(dir, name+".yaml")
	require.NoError(t, os.WriteFile(path, encoded, 0o644))
	return path
}

// WriteProfileFile writes a profile fixture and returns its path.
func WriteProfileFile(t *testing.T, dir string, profile study.Profile) string {
	t.Helper()

	encoded, err := yaml.Marshal(profile)
	require.NoError(t, err)

	path := filepath.Join(dir, "profile.yaml")
	require.NoError(t, os.WriteFile(path, encoded, 0o644))
	return path
}

// WritePlanFile writes a study plan fixture and returns its path.
func WritePlanFile(t *testing.T, dir string, entries []study.PlanEntry) string {
	t.Helper()

	encoded, err := yaml.Marshal(entries)
	require.NoError(t, err)

	path := filepath.Join(dir, "plan.yaml")
	require.NoError(t, os.WriteFile(path, encoded, 0o644))
	return path
}
