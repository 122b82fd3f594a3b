// Package llm wraps the hosted language models Roga delegates scoring and
// mentoring to. Callers depend on Generator; providers live behind it.
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrNotConfigured is returned when a provider has no credentials.
var ErrNotConfigured = errors.New("llm: provider not configured")

// ErrEmptyResponse is returned when the provider answered with no text.
var ErrEmptyResponse = errors.New("llm: empty response")

// Request is a single-turn prompt.
type Request struct {
	System      string
	Prompt      string
	Temperature float32
	Seed        *int
	// SchemaName and Schema, when set, ask the provider for JSON output
	// matching Schema.
	SchemaName string
	Schema     *Schema
}

// Generator produces text for a prompt.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// Config selects and configures a provider.
type Config struct {
	Provider    string `yaml:"provider"`
	Model       string `yaml:"model"`
	GeminiKey   string `yaml:"geminiApiKey"`
	OpenAIKey   string `yaml:"openaiApiKey"`
	OpenAIBase  string `yaml:"openaiBaseUrl"`
	TimeoutSecs int    `yaml:"timeoutSeconds"`
}

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// New builds the configured provider. Gemini is the default. A positive
// TimeoutSecs bounds every call.
func New(ctx context.Context, cfg Config) (Generator, error) {
	var (
		gen Generator
		err error
	)
	switch strings.ToLower(cfg.Provider) {
	case "", ProviderGemini:
		var g *GeminiGenerator
		if g, err = NewGemini(ctx, cfg.GeminiKey, cfg.Model); err == nil {
			gen = g
		}
	case ProviderOpenAI:
		var g *OpenAIGenerator
		if g, err = NewOpenAI(cfg.OpenAIKey, cfg.OpenAIBase, cfg.Model); err == nil {
			gen = g
		}
	default:
		err = fmt.Errorf("llm: unknown provider %q", cfg.Provider)
	}
	if err != nil {
		return nil, err
	}
	if cfg.TimeoutSecs > 0 {
		gen = WithTimeout(gen, time.Duration(cfg.TimeoutSecs)*time.Second)
	}
	return gen, nil
}

// WithTimeout bounds each Generate call on gen by d.
func WithTimeout(gen Generator, d time.Duration) Generator {
	return timeoutGenerator{gen: gen, timeout: d}
}

type timeoutGenerator struct {
	gen     Generator
	timeout time.Duration
}

func (t timeoutGenerator) Generate(ctx context.Context, req Request) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.gen.Generate(ctx, req)
}

// Seed returns a pointer for Request.Seed.
func Seed(v int) *int { return &v }

// CleanOutput strips markdown code fences models sometimes wrap JSON in.
func CleanOutput(text string) string {
	cleaned := strings.TrimSpace(text)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```JSON")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	return strings.TrimSpace(cleaned)
}
