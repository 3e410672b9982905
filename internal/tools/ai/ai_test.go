package ai

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taaha3244/quicktools/internal/catalog"
	"github.com/taaha3244/quicktools/internal/tools"
)

type fakeGenerator struct {
	calls  int
	prompt string
	system string
	text   string
	err    error
}

func (f *fakeGenerator) Generate(_ context.Context, prompt, system string) (string, error) {
	f.calls++
	f.prompt, f.system = prompt, system
	return f.text, f.err
}

var summarizer = catalog.Descriptor{
	Slug:         "ai-summarizer",
	SystemPrompt: "stale",
	Action:       catalog.AIText{SystemPrompt: "You are a professional summarizer."},
}

func TestExecute_Success(t *testing.T) {
	gen := &fakeGenerator{text: "Short."}
	res := New(gen, false).Execute(context.Background(), summarizer, tools.Values{"prompt": "A long article"})

	assert.Equal(t, tools.Result{Success: true, Text: "Short."}, res)
	assert.Equal(t, "A long article", gen.prompt)
	assert.Equal(t, "You are a professional summarizer.", gen.system)
}

func TestExecute_PromptRequired(t *testing.T) {
	for _, values := range []tools.Values{{}, {"prompt": ""}, {"prompt": 42}} {
		gen := &fakeGenerator{text: "unused"}
		res := New(gen, false).Execute(context.Background(), summarizer, values)

		assert.False(t, res.Success)
		assert.Equal(t, "Prompt is required", res.Error)
		assert.Zero(t, gen.calls, "generator must not be called")
		assert.ErrorIs(t, New(gen, false).CheckInputs(summarizer, values), errPromptRequired)
	}

	assert.NoError(t, New(&fakeGenerator{}, false).CheckInputs(summarizer, tools.Values{"prompt": "x"}))
}

func TestExecute_Errors(t *testing.T) {
	tests := []struct {
		name   string
		legacy bool
		err    error
		want   tools.Result
	}{
		{"failure result", false, errors.New("API Key missing"), tools.Result{Error: "API Key missing"}},
		{"legacy text", true, errors.New("API Key missing"), tools.Result{Success: true, Text: "Error: API Key missing"}},
		{"legacy fallback message", true, errors.New(""), tools.Result{Success: true, Text: "Error: Failed to generate content."}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := New(&fakeGenerator{err: tt.err}, tt.legacy).Execute(context.Background(), summarizer, tools.Values{"prompt": "p"})
			assert.Equal(t, tt.want, res)
		})
	}
}

func TestExecute_ImageDescriptionUsesActionPrompt(t *testing.T) {
	gen := &fakeGenerator{text: "ok"}
	tool := catalog.Descriptor{Slug: "ai-vision", Action: catalog.AIImage{SystemPrompt: "Describe images."}}

	New(gen, false).Execute(context.Background(), tool, tools.Values{"prompt": "a cat"})
	assert.Equal(t, "Describe images.", gen.system)
}

func TestExecute_FallsBackToDescriptorPrompt(t *testing.T) {
	gen := &fakeGenerator{text: "ok"}
	tool := catalog.Descriptor{Slug: "x", SystemPrompt: "Be nice."}

	New(gen, false).Execute(context.Background(), tool, tools.Values{"prompt": "hi"})
	assert.Equal(t, "Be nice.", gen.system)
	assert.Equal(t, catalog.KindAI, New(gen, false).Kind())
}
