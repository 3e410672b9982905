package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/taaha3244/quicktools/internal/providers"
)

const defaultEndpoint = "https://api.openai.com/v1/chat/completions"

type Client struct {
	apiKey       string
	organization string
	endpoint     string
	client       *http.Client
}

func New(apiKey, organization string) (*Client, error) {
	if apiKey == "" {
		return nil, providers.ErrMissingAPIKey
	}

	return &Client{
		apiKey:       apiKey,
		organization: organization,
		endpoint:     defaultEndpoint,
		client:       &http.Client{Timeout: providers.DefaultTimeout},
	}, nil
}

// WithEndpoint points the client at an OpenAI-compatible chat completions
// URL.
func (c *Client) WithEndpoint(endpoint string) *Client {
	if endpoint != "" {
		c.endpoint = endpoint
	}
	return c
}

func (c *Client) Name() string {
	return "openai"
}

func (c *Client) ListModels(ctx context.Context) ([]providers.Model, error) {
	return []providers.Model{
		{
			ID:          "gpt-5",
			Name:        "GPT-5",
			Provider:    "openai",
			ContextSize: 200000,
			Pricing: providers.ModelPricing{
				InputPer1M:  5.00,
				OutputPer1M: 15.00,
			},
		},
		{
			ID:          "gpt-5-mini",
			Name:        "GPT-5 Mini",
			Provider:    "openai",
			ContextSize: 200000,
			Pricing: providers.ModelPricing{
				InputPer1M:  0.30,
				OutputPer1M: 1.20,
			},
		},
		{
			ID:          "gpt-4.1",
			Name:        "GPT-4.1",
			Provider:    "openai",
			ContextSize: 1000000,
			Pricing: providers.ModelPricing{
				InputPer1M:  2.00,
				OutputPer1M: 8.00,
			},
		},
	}, nil
}

type completionResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

func (c *Client) Generate(ctx context.Context, req *providers.GenerateRequest) (*providers.GenerateResponse, error) {
	body, err := json.Marshal(c.buildRequest(req))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	if c.organization != "" {
		httpReq.Header.Set("OpenAI-Organization", c.organization)
	}

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("API error (status %d): %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var result completionResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	var text strings.Builder
	for _, choice := range result.Choices {
		text.WriteString(choice.Message.Content)
	}

	return &providers.GenerateResponse{
		Text:  text.String(),
		Model: result.Model,
		Usage: &providers.Usage{
			InputTokens:  result.Usage.PromptTokens,
			OutputTokens: result.Usage.CompletionTokens,
			TotalTokens:  result.Usage.TotalTokens,
		},
	}, nil
}

func (c *Client) buildRequest(req *providers.GenerateRequest) map[string]interface{} {
	apiReq := map[string]interface{}{
		"model": req.Model,
	}

	if req.MaxTokens > 0 {
		apiReq["max_completion_tokens"] = req.MaxTokens
	}

	if req.Temperature > 0 {
		apiReq["temperature"] = req.Temperature
	}

	messages := make([]map[string]interface{}, 0, 2)
	if req.System != "" {
		messages = append(messages, map[string]interface{}{
			"role":    "system",
			"content": req.System,
		})
	}
	messages = append(messages, map[string]interface{}{
		"role":    "user",
		"content": req.Prompt,
	})

	apiReq["messages"] = messages
	return apiReq
}
