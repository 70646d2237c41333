package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:generate go run ../../cmd/schema/main.go schema.json

// Config holds the application configuration
type Config struct {
	Server struct {
		Listen  string        `yaml:"listen" json:"listen" jsonschema:"default=:8080,description=HTTP server listen address"`
		Timeout time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=HTTP server timeout"`
	} `yaml:"server" json:"server" jsonschema:"description=Server configuration"`

	Database struct {
		DSN             string `yaml:"dsn" json:"dsn" jsonschema:"default=file:scenarch.db?cache=shared&mode=rwc,description=Database connection string"`
		MaxOpenConns    int    `yaml:"max_open_conns" json:"max_open_conns" jsonschema:"default=10,description=Maximum number of open connections"`
		MaxIdleConns    int    `yaml:"max_idle_conns" json:"max_idle_conns" jsonschema:"default=5,description=Maximum number of idle connections"`
		ConnMaxLifetime int    `yaml:"conn_max_lifetime" json:"conn_max_lifetime" jsonschema:"default=3600,description=Connection maximum lifetime in seconds"`
	} `yaml:"database" json:"database" jsonschema:"description=Database configuration"`

	Room struct {
		TTL           time.Duration `yaml:"ttl" json:"ttl" jsonschema:"default=30m,description=Idle time before a room expires"`
		PruneInterval time.Duration `yaml:"prune_interval" json:"prune_interval" jsonschema:"default=1m,description=How often expired rooms are pruned"`
	} `yaml:"room" json:"room" jsonschema:"description=Rendezvous room configuration"`

	Archive struct {
		MaxScenarios int `yaml:"max_scenarios" json:"max_scenarios" jsonschema:"default=50,description=Maximum saved scenarios before the oldest is evicted"`
	} `yaml:"archive" json:"archive" jsonschema:"description=Scenario archive configuration"`

	LLM LLMConfig `yaml:"llm" json:"llm" jsonschema:"description=LLM configuration for scene generation"`

	TTS SpeechConfig `yaml:"tts" json:"tts" jsonschema:"description=Text-to-speech service configuration"`

	STT SpeechConfig `yaml:"stt" json:"stt" jsonschema:"description=Speech-to-text service configuration"`
}

// LLMConfig holds the generation backend settings
type LLMConfig struct {
	Provider  string        `yaml:"provider" json:"provider" jsonschema:"default=ollama,enum=ollama,enum=openai,description=Generation provider"`
	Endpoint  string        `yaml:"endpoint" json:"endpoint" jsonschema:"default=http://localhost:11434,description=Provider base URL"`
	APIKey    string        `yaml:"api_key" json:"api_key" jsonschema:"description=API key (can use environment variable)"`
	Model     string        `yaml:"model" json:"model" jsonschema:"required,description=Default model name (e.g. dolphin-mistral)"`
	Timeout   time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=300s,description=Generation request timeout"`
	ModelsDir string        `yaml:"models_dir" json:"models_dir" jsonschema:"description=Directory with local GGUF files available for loading"`
}

// SpeechConfig holds one audio service endpoint
type SpeechConfig struct {
	Endpoint string `yaml:"endpoint" json:"endpoint" jsonschema:"description=OpenAI-compatible service base URL, empty disables the service"`
	Model    string `yaml:"model" json:"model" jsonschema:"description=Model name the service expects"`
	APIKey   string `yaml:"api_key" json:"api_key" jsonschema:"description=API key if the service requires one"`
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// expand environment variables
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	// set defaults for server
	if cfg.Server.Listen == "" {
		cfg.Server.Listen = ":8080"
	}
	if cfg.Server.Timeout == 0 {
		cfg.Server.Timeout = 30 * time.Second
	}

	// set defaults for database
	if cfg.Database.DSN == "" {
		cfg.Database.DSN = "file:scenarch.db?cache=shared&mode=rwc&_txlock=immediate"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 10
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = 3600
	}

	// set defaults for rooms
	if cfg.Room.TTL == 0 {
		cfg.Room.TTL = 30 * time.Minute
	}
	if cfg.Room.PruneInterval == 0 {
		cfg.Room.PruneInterval = time.Minute
	}

	// set defaults for archive
	if cfg.Archive.MaxScenarios == 0 {
		cfg.Archive.MaxScenarios = 50
	}

	// set defaults for LLM
	if cfg.LLM.Provider == "" {
		cfg.LLM.Provider = "ollama"
	}
	if cfg.LLM.Endpoint == "" {
		cfg.LLM.Endpoint = "http://localhost:11434"
	}
	if cfg.LLM.Timeout == 0 {
		cfg.LLM.Timeout = 300 * time.Second
	}

	// validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	// verify against embedded schema
	if err := VerifyAgainstEmbeddedSchema(&cfg); err != nil {
		// log warning but don't fail - schema validation is supplementary
		fmt.Printf("warning: schema validation failed: %v\n", err)
	}

	return &cfg, nil
}

// validate checks configuration for correctness
func validate(cfg *Config) error {

	// validate LLM config
	if cfg.LLM.Provider != "ollama" && cfg.LLM.Provider != "openai" {
		return fmt.Errorf("llm.provider must be ollama or openai")
	}
	if cfg.LLM.Model == "" {
		return fmt.Errorf("llm.model is required")
	}
	if cfg.LLM.Provider == "openai" && cfg.LLM.APIKey == "" {
		return fmt.Errorf("llm.api_key is required for the openai provider")
	}

	// validate room config
	if cfg.Room.TTL < 0 {
		return fmt.Errorf("room.ttl must be non-negative")
	}
	if cfg.Room.PruneInterval < time.Second {
		return fmt.Errorf("room.prune_interval must be at least 1 second")
	}

	// validate archive config
	if cfg.Archive.MaxScenarios < 1 {
		return fmt.Errorf("archive.max_scenarios must be at least 1")
	}

	// validate server config
	if cfg.Server.Timeout < time.Second {
		return fmt.Errorf("server timeout must be at least 1 second")
	}

	return nil
}

// GetServerConfig returns server configuration
func (c *Config) GetServerConfig() (listen string, timeout time.Duration) {
	return c.Server.Listen, c.Server.Timeout
}

// GetLLMConfig returns LLM configuration
func (c *Config) GetLLMConfig() LLMConfig {
	return c.LLM
}

// ModelsDir returns the directory holding local GGUF files
func (c *Config) ModelsDir() string {
	return c.LLM.ModelsDir
}

// DefaultModel returns the model used when a request names none
func (c *Config) DefaultModel() string {
	return c.LLM.Model
}
