package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var DefaultConfigYAML []byte

type Config struct {
	Sources    Sources    `yaml:"sources"`
	LLM        LLM        `yaml:"llm"`
	Pipeline   Pipeline   `yaml:"pipeline"`
	Cache      Cache      `yaml:"cache"`
	Rubric     Rubric     `yaml:"rubric"`
	Evaluation Evaluation `yaml:"evaluation"`
	Output     Output     `yaml:"output"`
	Server     Server     `yaml:"server"`
	Logging    Logging    `yaml:"logging"`
}

type Sources struct {
	Feeds    []Feed   `yaml:"feeds"`
	Keywords []string `yaml:"keywords"`
}

type Feed struct {
	URL  string `yaml:"url"`
	Name string `yaml:"name"`
}

type LLM struct {
	Provider       string `yaml:"provider"`
	Model          string `yaml:"model"`
	OllamaURL      string `yaml:"ollama_url"`
	OpenAIModel    string `yaml:"openai_model"`
	APIKeyEnv      string `yaml:"api_key_env"`
	MaxTokens      int    `yaml:"max_tokens"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	MaxRetries     int    `yaml:"max_retries"`
}

type Pipeline struct {
	Concurrency  int `yaml:"concurrency"`
	LookbackDays int `yaml:"lookback_days"`
}

type Cache struct {
	OperationTTLHours int `yaml:"operation_ttl_hours"`
	ArticleTTLHours   int `yaml:"article_ttl_hours"`
	MaxEntries        int `yaml:"max_entries"`
}

// Rubric holds the takeaway rubric text plus the structural bounds enforced
// deterministically alongside it. The text is embedded verbatim in prompts;
// the bounds back the local word/sentence checks.
type Rubric struct {
	Text         string `yaml:"text"`
	MinWords     int    `yaml:"min_words"`
	MaxWords     int    `yaml:"max_words"`
	MinSentences int    `yaml:"min_sentences"`
	MaxSentences int    `yaml:"max_sentences"`
}

type Evaluation struct {
	Companies          []string `yaml:"companies"`
	Tools              []string `yaml:"tools"`
	RetailTerms        []string `yaml:"retail_terms"`
	ROIPattern         string   `yaml:"roi_pattern"`
	OutcomeTerms       []string `yaml:"outcome_terms"`
	PromotionalPattern string   `yaml:"promotional_pattern"`
	DeploymentTerms    []string `yaml:"deployment_terms"`
	MajorPlatforms     []string `yaml:"major_platforms"`
	CategoryFramework  string   `yaml:"category_framework"`
}

type Output struct {
	DataDir string `yaml:"data_dir"`
}

type Server struct {
	Port int `yaml:"port"`
}

type Logging struct {
	Level string `yaml:"level"`
}

// ConfigDir returns the XDG config directory for retailscope.
func ConfigDir() string {
	return filepath.Join(homeDir(), ".config", "retailscope")
}

// DataDir returns the XDG data directory for retailscope.
func DataDir() string {
	return filepath.Join(homeDir(), ".local", "share", "retailscope")
}

// ResolveConfigPath finds the config file following priority:
// explicit path > ~/.config/retailscope/config.yaml > ./config.yaml
func ResolveConfigPath(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("config file not found: %s", explicit)
		}
		return explicit, nil
	}

	xdgConfig := filepath.Join(ConfigDir(), "config.yaml")
	if _, err := os.Stat(xdgConfig); err == nil {
		return xdgConfig, nil
	}

	cwdConfig := "config.yaml"
	if _, err := os.Stat(cwdConfig); err == nil {
		return cwdConfig, nil
	}

	return "", fmt.Errorf(
		"no config file found; searched:\n  %s\n  ./config.yaml\n\nRun 'retailscope init' to create a default config",
		xdgConfig,
	)
}

// Load reads and parses a config YAML file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return parse(data)
}

// Default returns the built-in configuration used when no config file is
// reachable, so evaluation can always proceed.
func Default() *Config {
	cfg, err := parse(nil)
	if err != nil {
		// parse(nil) only applies hard-coded defaults; it cannot fail.
		panic(err)
	}
	return cfg
}

// parse parses YAML bytes into a Config, applying defaults for anything the
// file leaves unset.
func parse(data []byte) (*Config, error) {
	cfg := &Config{
		LLM: LLM{
			Provider:       "openai",
			Model:          "qwen2.5:7b",
			OllamaURL:      "http://localhost:11434",
			OpenAIModel:    "gpt-4o",
			APIKeyEnv:      "OPENAI_API_KEY",
			MaxTokens:      2000,
			TimeoutSeconds: 30,
			MaxRetries:     2,
		},
		Pipeline: Pipeline{Concurrency: 3, LookbackDays: 7},
		Cache: Cache{
			OperationTTLHours: 6,
			ArticleTTLHours:   24,
			MaxEntries:        1024,
		},
		Rubric: Rubric{
			Text:         DefaultRubricText,
			MinWords:     70,
			MaxWords:     90,
			MinSentences: 3,
			MaxSentences: 4,
		},
		Server:  Server{Port: 8000},
		Logging: Logging{Level: "info"},
	}

	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
	}

	applyEvaluationDefaults(&cfg.Evaluation)

	if cfg.Rubric.Text == "" {
		cfg.Rubric.Text = DefaultRubricText
	}
	return cfg, nil
}

// GetDataDir returns the effective data directory from config or XDG default.
func (c *Config) GetDataDir() string {
	if c.Output.DataDir != "" {
		return c.Output.DataDir
	}
	return DataDir()
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
