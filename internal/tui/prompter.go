package tui

import (
	"context"

	"github.com/taaha3244/quicktools/internal/catalog"
	"github.com/taaha3244/quicktools/internal/permissions"
)

type promptRequest struct {
	kind  catalog.Kind
	tool  string
	reply chan permissions.Decision
}

// Prompter forwards permission questions from running tools to the TUI and
// waits for the user's answer.
type Prompter struct {
	ctx      context.Context
	requests chan promptRequest
}

func NewPrompter(ctx context.Context) *Prompter {
	return &Prompter{
		ctx:      ctx,
		requests: make(chan promptRequest),
	}
}

// Prompt has the permissions.PromptFunc signature.
func (p *Prompter) Prompt(kind catalog.Kind, tool, details string) (permissions.Decision, error) {
	req := promptRequest{kind: kind, tool: details, reply: make(chan permissions.Decision, 1)}
	if req.tool == "" {
		req.tool = tool
	}

	select {
	case p.requests <- req:
	case <-p.ctx.Done():
		return permissions.DecisionDenyOnce, p.ctx.Err()
	}

	select {
	case d := <-req.reply:
		return d, nil
	case <-p.ctx.Done():
		return permissions.DecisionDenyOnce, p.ctx.Err()
	}
}
