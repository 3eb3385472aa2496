package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aknishi/studium/internal/study"
	"github.com/aknishi/studium/internal/testutil"
)

func TestLoadConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configFile = testutil.SetupTestConfig(t, tmpDir)
	t.Cleanup(func() { configFile = "" })

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.NotEmpty(t, cfg.Outputs.Directory)
	assert.NotEmpty(t, cfg.Study.FlashcardsDirectory)
}

func TestLoadProfile(t *testing.T) {
	tmpDir := t.TempDir()
	configFile = testutil.SetupTestConfig(t, tmpDir)
	t.Cleanup(func() { configFile = "" })

	cfg, err := loadConfig()
	require.NoError(t, err)

	want := study.Profile{AcademicLevel: "graduate", Specialization: "economics"}
	testutil.WriteProfileFile(t, tmpDir, want)

	got, err := loadProfile(cfg)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
