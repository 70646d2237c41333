package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		configContent := `
server:
  listen: ":9090"
  timeout: 45s

llm:
  provider: ollama
  endpoint: http://localhost:11434
  model: dolphin-mistral
  models_dir: /models

tts:
  endpoint: http://localhost:8880/v1

room:
  ttl: 15m
`
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "test-config.yml")
		err := os.WriteFile(configPath, []byte(configContent), 0o644)
		require.NoError(t, err)

		cfg, err := Load(configPath)
		require.NoError(t, err)
		require.NotNil(t, cfg)

		assert.Equal(t, ":9090", cfg.Server.Listen)
		assert.Equal(t, 45*time.Second, cfg.Server.Timeout)
		assert.Equal(t, "ollama", cfg.LLM.Provider)
		assert.Equal(t, "dolphin-mistral", cfg.LLM.Model)
		assert.Equal(t, "/models", cfg.LLM.ModelsDir)
		assert.Equal(t, "http://localhost:8880/v1", cfg.TTS.Endpoint)
		assert.Equal(t, 15*time.Minute, cfg.Room.TTL)
	})

	t.Run("defaults", func(t *testing.T) {
		configContent := `
llm:
  model: dolphin-mistral
`
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "test-config.yml")
		err := os.WriteFile(configPath, []byte(configContent), 0o644)
		require.NoError(t, err)

		cfg, err := Load(configPath)
		require.NoError(t, err)
		require.NotNil(t, cfg)

		// check server defaults
		assert.Equal(t, ":8080", cfg.Server.Listen)
		assert.Equal(t, 30*time.Second, cfg.Server.Timeout)

		// check llm defaults
		assert.Equal(t, "ollama", cfg.LLM.Provider)
		assert.Equal(t, "http://localhost:11434", cfg.LLM.Endpoint)
		assert.Equal(t, 300*time.Second, cfg.LLM.Timeout)

		// check room and archive defaults
		assert.Equal(t, 30*time.Minute, cfg.Room.TTL)
		assert.Equal(t, time.Minute, cfg.Room.PruneInterval)
		assert.Equal(t, 50, cfg.Archive.MaxScenarios)
	})

	t.Run("env var expansion", func(t *testing.T) {
		t.Setenv("TEST_LLM_KEY", "secret-key")
		configContent := `
llm:
  provider: openai
  endpoint: https://api.openai.com/v1
  api_key: ${TEST_LLM_KEY}
  model: gpt-4o
`
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "test-config.yml")
		err := os.WriteFile(configPath, []byte(configContent), 0o644)
		require.NoError(t, err)

		cfg, err := Load(configPath)
		require.NoError(t, err)
		assert.Equal(t, "secret-key", cfg.LLM.APIKey)
	})

	t.Run("file not found", func(t *testing.T) {
		cfg, err := Load("/non/existent/file.yml")
		require.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "read config file")
	})

	t.Run("invalid yaml", func(t *testing.T) {
		configContent := `
invalid yaml content
  with bad indentation
    and no structure
`
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "invalid.yml")
		err := os.WriteFile(configPath, []byte(configContent), 0o644)
		require.NoError(t, err)

		cfg, err := Load(configPath)
		require.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "parse config")
	})

	t.Run("missing model", func(t *testing.T) {
		configContent := `
llm:
  provider: ollama
`
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "test-config.yml")
		err := os.WriteFile(configPath, []byte(configContent), 0o644)
		require.NoError(t, err)

		cfg, err := Load(configPath)
		require.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "llm.model is required")
	})

	t.Run("openai requires api key", func(t *testing.T) {
		configContent := `
llm:
  provider: openai
  model: gpt-4o
`
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "test-config.yml")
		err := os.WriteFile(configPath, []byte(configContent), 0o644)
		require.NoError(t, err)

		_, err = Load(configPath)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "llm.api_key is required")
	})

	t.Run("unknown provider", func(t *testing.T) {
		configContent := `
llm:
  provider: mystery
  model: m
`
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "test-config.yml")
		err := os.WriteFile(configPath, []byte(configContent), 0o644)
		require.NoError(t, err)

		_, err = Load(configPath)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "llm.provider must be ollama or openai")
	})
}

func TestConfig_GetServerConfig(t *testing.T) {
	cfg := &Config{}
	cfg.Server.Listen = ":9090"
	cfg.Server.Timeout = 45 * time.Second

	listen, timeout := cfg.GetServerConfig()
	assert.Equal(t, ":9090", listen)
	assert.Equal(t, 45*time.Second, timeout)
}

func TestGenerateSchema(t *testing.T) {
	schema, err := GenerateSchema()
	require.NoError(t, err)
	require.NotNil(t, schema)
}
