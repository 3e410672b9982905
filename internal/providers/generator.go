package providers

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/taaha3244/quicktools/internal/logger"
)

// NoResponseText is returned when a provider answers with no text.
const NoResponseText = "No response generated."

// RequestObserver receives one observation per provider call.
type RequestObserver interface {
	ObserveAIRequest(provider, status string)
}

type GeneratorConfig struct {
	Model             string
	MaxTokens         int
	Temperature       float64
	Timeout           time.Duration
	RequestsPerMinute float64
}

// Generator turns a prompt and an optional system instruction into text
// using one provider.
type Generator struct {
	provider Provider
	cfg      GeneratorConfig
	limiter  *rate.Limiter
	observer RequestObserver
}

type GeneratorOption func(*Generator)

func WithRequestObserver(o RequestObserver) GeneratorOption {
	return func(g *Generator) { g.observer = o }
}

// NewGenerator wraps provider. A nil provider yields a generator that fails
// every call with ErrMissingAPIKey.
func NewGenerator(provider Provider, cfg GeneratorConfig, opts ...GeneratorOption) *Generator {
	g := &Generator{provider: provider, cfg: cfg}
	if cfg.RequestsPerMinute > 0 {
		g.limiter = rate.NewLimiter(rate.Every(time.Duration(float64(time.Minute)/cfg.RequestsPerMinute)), 1)
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *Generator) ProviderName() string {
	if g.provider == nil {
		return "none"
	}
	return g.provider.Name()
}

func (g *Generator) Model() string {
	return g.cfg.Model
}

func (g *Generator) Generate(ctx context.Context, prompt, system string) (text string, err error) {
	name := g.ProviderName()
	defer func() {
		if g.observer == nil {
			return
		}
		status := "success"
		if err != nil {
			status = "error"
		}
		g.observer.ObserveAIRequest(name, status)
	}()

	if g.provider == nil {
		return "", ErrMissingAPIKey
	}

	if g.limiter != nil {
		if err := g.limiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("rate limit wait: %w", err)
		}
	}

	if g.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.cfg.Timeout)
		defer cancel()
	}

	start := time.Now()
	resp, err := g.provider.Generate(ctx, &GenerateRequest{
		Model:       g.cfg.Model,
		Prompt:      prompt,
		System:      system,
		MaxTokens:   g.cfg.MaxTokens,
		Temperature: g.cfg.Temperature,
	})
	if err != nil {
		logger.FromContext(ctx).Warn("ai request failed",
			zap.String("provider", name),
			zap.String("model", g.cfg.Model),
			zap.Error(err))
		return "", err
	}

	fields := []zap.Field{
		zap.String("provider", name),
		zap.String("model", g.cfg.Model),
		zap.Duration("duration", time.Since(start)),
	}
	if resp.Usage != nil {
		fields = append(fields, zap.Int("total_tokens", resp.Usage.TotalTokens))
	}
	logger.FromContext(ctx).Debug("ai request completed", fields...)

	if resp.Text == "" {
		return NoResponseText, nil
	}
	return resp.Text, nil
}
