package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds the wikibot configuration. Built once at startup and passed by value.
type Config struct {
	HTTP    HTTPConfig    `yaml:"http"`
	Search  SearchConfig  `yaml:"search"`
	Chat    ChatConfig    `yaml:"chat"`
	Answer  AnswerConfig  `yaml:"answer"`
	UI      UIConfig      `yaml:"ui"`
	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
	File  string `yaml:"file"`  // used by the TUI so log lines do not corrupt the screen
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// SearchConfig holds the Azure AI Search connection and request shaping.
type SearchConfig struct {
	Endpoint              string `yaml:"endpoint"`
	APIKey                string `yaml:"api_key"`
	Index                 string `yaml:"index"`
	APIVersion            string `yaml:"api_version"`
	Highlight             bool   `yaml:"highlight"`
	Semantic              bool   `yaml:"semantic"`
	SemanticConfiguration string `yaml:"semantic_configuration"`
	TimeoutSec            int    `yaml:"timeout_sec"`
}

// ChatConfig holds the chat-completion provider settings.
type ChatConfig struct {
	Provider   string  `yaml:"provider"` // azure (default) | openai
	Endpoint   string  `yaml:"endpoint"`
	APIKey     string  `yaml:"api_key"`
	APIVersion string  `yaml:"api_version"`
	Deployment string  `yaml:"deployment"`
	// Temp is the sampling temperature. 0 means unset and becomes DefaultTemperature;
	// go-openai omits a zero temperature from the request anyway, so 0 cannot be sent.
	Temp       float32 `yaml:"temperature"`
	TimeoutSec int     `yaml:"timeout_sec"`
}

// AnswerConfig holds context assembly and prompt settings.
type AnswerConfig struct {
	ContextBudget int    `yaml:"context_budget"` // characters of snippet text sent to the model
	Language      string `yaml:"language"`       // language the model is told to answer in
}

// UIConfig holds presentation defaults shared by the TUI and the CLI.
type UIConfig struct {
	DefaultQuery string   `yaml:"default_query"`
	DefaultTop   int      `yaml:"default_top"`
	Categories   []string `yaml:"categories"`
	Checklist    []string `yaml:"checklist"`
}

// Defaults applied by ApplyDefaults.
const (
	DefaultSearchAPIVersion = "2023-11-01"
	DefaultChatAPIVersion   = "2024-02-15-preview"
	DefaultDeployment       = "gpt-4o-mini"
	DefaultTemperature      = 0.7
	DefaultContextBudget    = 1000
	DefaultTop              = 3
	DefaultLanguage         = "English"
)

// DefaultCategories and DefaultChecklist fill the TUI side panel when unset.
var (
	DefaultCategories = []string{
		"HR / personnel",
		"Working hours & leave",
		"Pay & benefits",
		"Family event support",
		"Training & onboarding",
		"Work process",
		"Safety, ethics & compliance",
		"FAQ",
	}
	DefaultChecklist = []string{
		"Employee ID issued and HR registration",
		"E-approval account created",
		"Orientation attended",
		"Security / ethics training completed",
		"Benefits mall account activated",
	}
)

// Load reads configuration for the environment name (local, dev, prod).
// A .env file in the working directory is loaded first. When no config file
// exists for env, the built-in template is used so that the process can be
// configured from environment variables alone.
func Load(env string) (Config, error) {
	_ = godotenv.Load()

	data, err := readConfig(env)
	if err != nil {
		return Config{}, err
	}

	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

func readConfig(env string) ([]byte, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []byte(envTemplate), nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}
	return data, nil
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.Port == 0 {
		c.HTTP.Port = 8080
	}
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 120
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Search.APIVersion == "" {
		c.Search.APIVersion = DefaultSearchAPIVersion
	}
	if c.Search.TimeoutSec <= 0 {
		c.Search.TimeoutSec = 30
	}
	if c.Chat.Provider == "" {
		c.Chat.Provider = "azure"
	}
	if c.Chat.APIKey == "" {
		c.Chat.APIKey = firstEnv("AZURE_OPENAI_API_KEY", "OPENAI_API_KEY")
	}
	if c.Chat.APIVersion == "" {
		c.Chat.APIVersion = firstEnv("OPENAI_API_VERSION")
	}
	if c.Chat.APIVersion == "" {
		c.Chat.APIVersion = DefaultChatAPIVersion
	}
	if c.Chat.Deployment == "" {
		c.Chat.Deployment = DefaultDeployment
	}
	if c.Chat.Temp == 0 {
		c.Chat.Temp = DefaultTemperature
	}
	if c.Chat.TimeoutSec <= 0 {
		c.Chat.TimeoutSec = 120
	}
	if c.Answer.ContextBudget <= 0 {
		c.Answer.ContextBudget = DefaultContextBudget
	}
	if c.Answer.Language == "" {
		c.Answer.Language = DefaultLanguage
	}
	if c.UI.DefaultTop <= 0 {
		c.UI.DefaultTop = DefaultTop
	}
	if c.UI.DefaultQuery == "" {
		c.UI.DefaultQuery = "I'm expecting a baby. Are there any pregnancy or childbirth benefits?"
	}
	if len(c.UI.Categories) == 0 {
		c.UI.Categories = append([]string(nil), DefaultCategories...)
	}
	if len(c.UI.Checklist) == 0 {
		c.UI.Checklist = append([]string(nil), DefaultChecklist...)
	}
}

// Validate checks the configuration for structural correctness.
// Absent credentials are not an error here: see Missing.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	switch c.Chat.Provider {
	case "azure", "openai":
	default:
		return fmt.Errorf("chat.provider must be \"azure\" or \"openai\", got %q", c.Chat.Provider)
	}
	if c.Chat.Temp < 0 || c.Chat.Temp > 2 {
		return fmt.Errorf("chat.temperature must be between 0 and 2, got %g", c.Chat.Temp)
	}
	if c.Search.Semantic && c.Search.SemanticConfiguration == "" {
		return fmt.Errorf("search.semantic_configuration is required when search.semantic is enabled")
	}
	if c.UI.DefaultTop > 8 {
		return fmt.Errorf("ui.default_top must be between 1 and 8, got %d", c.UI.DefaultTop)
	}
	return nil
}

// Missing returns the names of required settings that are empty.
// A non-empty result disables every search- and answer-backed action.
func (c *Config) Missing() []string {
	required := []struct {
		name  string
		value string
	}{
		{"SEARCH_ENDPOINT", c.Search.Endpoint},
		{"SEARCH_API_KEY", c.Search.APIKey},
		{"INDEX_NAME", c.Search.Index},
		{"AOAI_ENDPOINT", c.Chat.Endpoint},
		{"AOAI_KEY", c.Chat.APIKey},
		{"AOAI_VERSION", c.Chat.APIVersion},
		{"AOAI_DEPLOYMENT", c.Chat.Deployment},
	}
	var missing []string
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			missing = append(missing, r.name)
		}
	}
	return missing
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func firstEnv(names ...string) string {
	for _, n := range names {
		if v := os.Getenv(n); v != "" {
			return v
		}
	}
	return ""
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
