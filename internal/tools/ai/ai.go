// Package ai runs the text and image-description tools through a language
// model.
package ai

import (
	"context"
	"errors"

	"github.com/taaha3244/quicktools/internal/catalog"
	"github.com/taaha3244/quicktools/internal/tools"
)

const fallbackErrorText = "Failed to generate content."

var errPromptRequired = errors.New("Prompt is required")

type TextGenerator interface {
	Generate(ctx context.Context, prompt, system string) (string, error)
}

type Executor struct {
	gen TextGenerator
	// legacyErrors reports generation failures as successful "Error: ..."
	// text instead of failed results.
	legacyErrors bool
}

func New(gen TextGenerator, legacyErrorText bool) *Executor {
	return &Executor{gen: gen, legacyErrors: legacyErrorText}
}

func (e *Executor) Kind() catalog.Kind {
	return catalog.KindAI
}

func (e *Executor) CheckInputs(_ catalog.Descriptor, values tools.Values) error {
	if values.String("prompt") == "" {
		return errPromptRequired
	}
	return nil
}

func (e *Executor) Execute(ctx context.Context, tool catalog.Descriptor, values tools.Values) tools.Result {
	if err := e.CheckInputs(tool, values); err != nil {
		return tools.NewErrorResult(err.Error())
	}

	text, err := e.gen.Generate(ctx, values.String("prompt"), systemPrompt(tool))
	if err != nil {
		msg := err.Error()
		if msg == "" {
			msg = fallbackErrorText
		}
		if e.legacyErrors {
			return tools.NewResult("Error: " + msg)
		}
		return tools.NewErrorResult(msg)
	}

	return tools.NewResult(text)
}

func systemPrompt(tool catalog.Descriptor) string {
	switch a := tool.Action.(type) {
	case catalog.AIText:
		return a.SystemPrompt
	case catalog.AIImage:
		return a.SystemPrompt
	}
	return tool.SystemPrompt
}
