package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"roga/internal/logger"
)

type Config struct {
	Server struct {
		Port int    `yaml:"port"`
		Mode string `yaml:"mode"` // gin mode: debug, release, test
	} `yaml:"server"`

	LLM struct {
		Provider       string `yaml:"provider"` // gemini or openai
		Model          string `yaml:"model"`
		TimeoutSeconds int    `yaml:"timeoutSeconds"`
	} `yaml:"llm"`

	Gemini struct {
		ApiKey string `yaml:"apiKey"`
	} `yaml:"gemini"`

	Openai struct {
		GptApiKey string `yaml:"gptApiKey"`
		BaseURL   string `yaml:"baseUrl"`
	} `yaml:"openai"`

	Database struct {
		URI string `yaml:"uri"`
	} `yaml:"database"`

	Redis struct {
		Addr            string `yaml:"addr"`
		Password        string `yaml:"password"`
		DB              int    `yaml:"db"`
		CacheTTLSeconds int    `yaml:"cacheTtlSeconds"`
	} `yaml:"redis"`

	JWT struct {
		Secret   string `yaml:"secret"`
		Expiry   int    `yaml:"expiry"` // minutes
		Required bool   `yaml:"required"`
	} `yaml:"jwt"`

	CORS struct {
		AllowOrigins []string `yaml:"allowOrigins"`
	} `yaml:"cors"`

	Scoring struct {
		RateLimitPerMinute int    `yaml:"rateLimitPerMinute"`
		MaxFeedbackWords   int    `yaml:"maxFeedbackWords"`
		MentorMaxSentences int    `yaml:"mentorMaxSentences"`
		KnowledgeBase      string `yaml:"knowledgeBase"` // optional override of the embedded QI KB
	} `yaml:"scoring"`

	Log logger.Config `yaml:"log"`
}

// environment overrides applied after the YAML file, mostly secrets that
// should not live in the config file.
type environment struct {
	Port         int    `env:"PORT"`
	LLMProvider  string `env:"ROGA_LLM_PROVIDER"`
	LLMModel     string `env:"ROGA_LLM_MODEL"`
	GeminiAPIKey string `env:"GEMINI_API_KEY"`
	OpenAIAPIKey string `env:"OPENAI_API_KEY"`
	OpenAIBase   string `env:"OPENAI_BASE_URL"`
	MongoURI     string `env:"MONGODB_URI"`
	RedisAddr    string `env:"REDIS_ADDR"`
	RedisPass    string `env:"REDIS_PASSWORD"`
	JWTSecret    string `env:"JWT_SECRET"`
	LogLevel     string `env:"LOG_LEVEL"`
}

// Default returns a configuration that runs with in-memory storage and no
// Redis.
func Default() *Config {
	var cfg Config
	cfg.Server.Port = 8000
	cfg.Server.Mode = "release"
	cfg.LLM.Provider = "gemini"
	cfg.LLM.TimeoutSeconds = 30
	cfg.Redis.CacheTTLSeconds = 3600
	cfg.JWT.Expiry = 24 * 60
	cfg.CORS.AllowOrigins = []string{"http://localhost:3000"}
	cfg.Scoring.RateLimitPerMinute = 30
	cfg.Scoring.MaxFeedbackWords = 120
	cfg.Scoring.MentorMaxSentences = 4
	cfg.Log = logger.DefaultConfig()
	return &cfg
}

// LoadConfig reads the configuration file on top of Default, then applies
// .env and environment overrides. An empty path skips the file.
func LoadConfig(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal yaml: %w", err)
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}
	if err := cfg.applyEnvironment(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnvironment() error {
	var e environment
	if err := env.Parse(&e); err != nil {
		return fmt.Errorf("failed to parse environment: %w", err)
	}

	if e.Port != 0 {
		c.Server.Port = e.Port
	}
	setIf(&c.LLM.Provider, e.LLMProvider)
	setIf(&c.LLM.Model, e.LLMModel)
	setIf(&c.Gemini.ApiKey, e.GeminiAPIKey)
	setIf(&c.Openai.GptApiKey, e.OpenAIAPIKey)
	setIf(&c.Openai.BaseURL, e.OpenAIBase)
	setIf(&c.Database.URI, e.MongoURI)
	setIf(&c.Redis.Addr, e.RedisAddr)
	setIf(&c.Redis.Password, e.RedisPass)
	setIf(&c.JWT.Secret, e.JWTSecret)
	setIf(&c.Log.Level, e.LogLevel)
	return nil
}

func setIf(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
