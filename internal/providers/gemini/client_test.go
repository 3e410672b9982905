package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taaha3244/quicktools/internal/providers"
)

func TestNew(t *testing.T) {
	_, err := New("", "")
	assert.True(t, errors.Is(err, providers.ErrMissingAPIKey))
	assert.Equal(t, "API Key missing", err.Error())

	client, err := New("key", "")
	require.NoError(t, err)
	assert.Equal(t, defaultEndpoint, client.endpoint)
	assert.Equal(t, "gemini", client.Name())
}

func TestClient_Generate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models/gemini-2.5-flash:generateContent", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("X-Goog-Api-Key"))

		var req generateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Contents, 1)
		assert.Equal(t, "Fix my grammar", req.Contents[0].Parts[0].Text)
		require.NotNil(t, req.SystemInstruction)
		assert.Equal(t, "You are a grammar checker.", req.SystemInstruction.Parts[0].Text)
		assert.Nil(t, req.GenerationConfig)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"candidates": [{"content": {"role": "model", "parts": [{"text": "Fixed "}, {"text": "grammar."}]}, "finishReason": "STOP"}],
			"usageMetadata": {"promptTokenCount": 8, "candidatesTokenCount": 3, "totalTokenCount": 11},
			"modelVersion": "gemini-2.5-flash"
		}`))
	}))
	defer server.Close()

	client, err := New("test-key", server.URL)
	require.NoError(t, err)

	resp, err := client.Generate(context.Background(), &providers.GenerateRequest{
		Prompt: "Fix my grammar",
		System: "You are a grammar checker.",
	})
	require.NoError(t, err)
	assert.Equal(t, "Fixed grammar.", resp.Text)
	assert.Equal(t, "gemini-2.5-flash", resp.Model)
	assert.Equal(t, 11, resp.Usage.TotalTokens)
}

func TestClient_Generate_NoCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates": []}`))
	}))
	defer server.Close()

	client, _ := New("k", server.URL)
	resp, err := client.Generate(context.Background(), &providers.GenerateRequest{Model: "gemini-2.5-pro", Prompt: "x"})
	require.NoError(t, err)
	assert.Empty(t, resp.Text)
	assert.Equal(t, "gemini-2.5-pro", resp.Model)
}

func TestClient_Generate_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error": {"code": 400, "message": "API key not valid. Please pass a valid API key.", "status": "INVALID_ARGUMENT"}}`))
	}))
	defer server.Close()

	client, _ := New("bad", server.URL)
	_, err := client.Generate(context.Background(), &providers.GenerateRequest{Prompt: "x"})
	require.Error(t, err)
	assert.Equal(t, "API error (status 400): API key not valid. Please pass a valid API key.", err.Error())
}

func TestClient_ListModels(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models", r.URL.Path)
		w.Write([]byte(`{"models": [
			{"name": "models/gemini-2.5-flash", "displayName": "Gemini 2.5 Flash", "inputTokenLimit": 1048576, "supportedGenerationMethods": ["generateContent", "countTokens"]},
			{"name": "models/text-embedding-004", "displayName": "Text Embedding 004", "inputTokenLimit": 2048, "supportedGenerationMethods": ["embedContent"]}
		]}`))
	}))
	defer server.Close()

	client, _ := New("k", server.URL)
	models, err := client.ListModels(context.Background())
	require.NoError(t, err)
	require.Len(t, models, 1)
	assert.Equal(t, "gemini-2.5-flash", models[0].ID)
	assert.Equal(t, "Gemini 2.5 Flash", models[0].Name)
	assert.Equal(t, 1048576, models[0].ContextSize)
}

func TestBuildRequest_GenerationConfig(t *testing.T) {
	req := buildRequest(&providers.GenerateRequest{Prompt: "p", MaxTokens: 256, Temperature: 0.4})
	require.NotNil(t, req.GenerationConfig)
	assert.Equal(t, 256, req.GenerationConfig.MaxOutputTokens)
	require.NotNil(t, req.GenerationConfig.Temperature)
	assert.Equal(t, 0.4, *req.GenerationConfig.Temperature)
	assert.Nil(t, req.SystemInstruction)
}
