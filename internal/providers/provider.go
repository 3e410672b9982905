package providers

import (
	"context"
	"errors"
	"time"
)

const DefaultTimeout = 60 * time.Second

// ErrMissingAPIKey is returned when a hosted provider has no credentials.
var ErrMissingAPIKey = errors.New("API Key missing")

// Provider generates a single completion for a prompt.
type Provider interface {
	Generate(ctx context.Context, req *GenerateRequest) (*GenerateResponse, error)
	ListModels(ctx context.Context) ([]Model, error)
	Name() string
}

type GenerateRequest struct {
	Model       string
	Prompt      string
	System      string
	MaxTokens   int
	Temperature float64
}

type GenerateResponse struct {
	Text  string
	Model string
	Usage *Usage
}

type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

type Model struct {
	ID          string
	Name        string
	Provider    string
	ContextSize int
	Pricing     ModelPricing
}

type ModelPricing struct {
	InputPer1M  float64
	OutputPer1M float64
	CachedPer1M float64
}
