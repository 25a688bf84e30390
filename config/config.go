package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const ENV_FILE = ".env"
const CONFIG_FILE = "config.yaml"

type AppConfig struct {
	Logging LoggingConfig `yaml:"logging"`
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
	LLM     LLMConfig     `yaml:"llm"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// StorageConfig selects and configures the chat store backend.
// Engine is "sqlite" (default) or "mongo". Path is the sqlite database
// file path; MongoURI/MongoDBName are used only by the mongo engine.
type StorageConfig struct {
	Engine      string `yaml:"engine"`
	Path        string `yaml:"path"`
	MongoURI    string `yaml:"mongo_uri"`
	MongoDBName string `yaml:"mongo_db"`
}

// LLMConfig holds per-request defaults for the reply engine.
// API keys are never read from yaml; they come from the environment
// (OPENAI_API_KEY, GEMINI_API_KEY).
type LLMConfig struct {
	// DefaultProvider is used when a chat request does not name one.
	// "demo" selects the local rule responder.
	DefaultProvider string `yaml:"default_provider"`

	DefaultModel string  `yaml:"default_model"`
	Temperature  float64 `yaml:"temperature"`
	MaxTokens    int     `yaml:"max_tokens"`

	// RequestTimeoutSeconds bounds a single provider call. A provider
	// that never answers is converted into a demo fallback instead of
	// hanging the turn. 0 falls back to 30.
	RequestTimeoutSeconds int `yaml:"request_timeout_seconds"`
}

func (c LLMConfig) WithDefaults() LLMConfig {
	if c.DefaultProvider == "" {
		c.DefaultProvider = "demo"
	}
	if c.DefaultModel == "" {
		c.DefaultModel = "gpt-4o-mini"
	}
	if c.Temperature == 0 {
		c.Temperature = 0.2
	}
	if c.MaxTokens <= 0 {
		c.MaxTokens = 300
	}
	if c.RequestTimeoutSeconds <= 0 {
		c.RequestTimeoutSeconds = 30
	}
	return c
}

var config *AppConfig

func InitApp() {
	// load environment variables
	godotenv.Load(filepath.Join(GetBasePath(), ENV_FILE))

	// load configuration file
	data, err := os.ReadFile(filepath.Join(GetBasePath(), CONFIG_FILE))
	if err != nil {
		panic(err)
	}

	var c AppConfig
	err = yaml.Unmarshal(data, &c)
	if err != nil {
		panic(err)
	}
	config = &c
}

func GetConfig() AppConfig {
	if config == nil {
		InitApp()
	}

	return *config
}

func GetBasePath() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	dir := cwd
	for {
		cfgPath := filepath.Join(dir, CONFIG_FILE)
		if info, err := os.Stat(cfgPath); err == nil && !info.IsDir() {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}
