package anthropic

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/taaha3244/quicktools/internal/providers"
)

const defaultMaxTokens = 2048

type Client struct {
	client anthropic.Client
}

func New(apiKey string, opts ...option.RequestOption) (*Client, error) {
	if apiKey == "" {
		return nil, providers.ErrMissingAPIKey
	}

	opts = append([]option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithRequestTimeout(providers.DefaultTimeout),
	}, opts...)

	return &Client{client: anthropic.NewClient(opts...)}, nil
}

func (c *Client) Name() string {
	return "anthropic"
}

func (c *Client) ListModels(ctx context.Context) ([]providers.Model, error) {
	return []providers.Model{
		{
			ID:          "claude-opus-4-5",
			Name:        "Claude Opus 4.5",
			Provider:    "anthropic",
			ContextSize: 200000,
			Pricing: providers.ModelPricing{
				InputPer1M:  5.00,
				OutputPer1M: 25.00,
			},
		},
		{
			ID:          "claude-sonnet-4-5",
			Name:        "Claude Sonnet 4.5",
			Provider:    "anthropic",
			ContextSize: 200000,
			Pricing: providers.ModelPricing{
				InputPer1M:  3.00,
				OutputPer1M: 15.00,
			},
		},
		{
			ID:          "claude-haiku-4-5",
			Name:        "Claude Haiku 4.5",
			Provider:    "anthropic",
			ContextSize: 200000,
			Pricing: providers.ModelPricing{
				InputPer1M:  1.00,
				OutputPer1M: 5.00,
			},
		},
	}, nil
}

func (c *Client) Generate(ctx context.Context, req *providers.GenerateRequest) (*providers.GenerateResponse, error) {
	resp, err := c.client.Messages.New(ctx, buildParams(req))
	if err != nil {
		return nil, fmt.Errorf("anthropic: %w", err)
	}

	var text strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}

	return &providers.GenerateResponse{
		Text:  text.String(),
		Model: string(resp.Model),
		Usage: &providers.Usage{
			InputTokens:  int(resp.Usage.InputTokens),
			OutputTokens: int(resp.Usage.OutputTokens),
			TotalTokens:  int(resp.Usage.InputTokens + resp.Usage.OutputTokens),
		},
	}, nil
}

func buildParams(req *providers.GenerateRequest) anthropic.MessageNewParams {
	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(req.Model),
		MaxTokens: int64(maxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.Prompt)),
		},
	}

	if req.System != "" {
		params.System = []anthropic.TextBlockParam{{Text: req.System}}
	}
	if req.Temperature > 0 {
		params.Temperature = anthropic.Float(req.Temperature)
	}

	return params
}
