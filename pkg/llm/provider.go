// Package llm talks to the generative language model behind the chat endpoint.
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/chlyn/COSC369-Final-Project/config"
)

// ErrGeneration covers every way a completion can fail: transport, quota,
// timeout or an unusable response body.
var ErrGeneration = errors.New("generation failed")

// Option tunes a single call.
type Option func(*Options)

type Options struct {
	Temperature *float64
	Model       string
}

func WithTemperature(temp float64) Option {
	return func(o *Options) {
		o.Temperature = &temp
	}
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

// Provider is an opaque text-completion function.
type Provider interface {
	Generate(ctx context.Context, prompt string, options ...Option) (string, error)
}

// New builds the provider named by cfg.Provider.
func New(cfg *config.LLMConfig) (Provider, error) {
	switch strings.ToLower(cfg.Provider) {
	case "", "gemini":
		return NewGemini(cfg), nil
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
}
