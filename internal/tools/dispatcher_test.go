package tools

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taaha3244/quicktools/internal/catalog"
	"github.com/taaha3244/quicktools/internal/logger"
	"github.com/taaha3244/quicktools/internal/permissions"
)

type gateFunc func(kind catalog.Kind, tool, details string) (*permissions.CheckResult, error)

func (f gateFunc) Check(kind catalog.Kind, tool, details string) (*permissions.CheckResult, error) {
	return f(kind, tool, details)
}

type observation struct {
	kind   catalog.Kind
	status string
}

type fakeObserver struct {
	seen []observation
}

func (f *fakeObserver) ObserveExecution(kind catalog.Kind, status string, _ time.Duration) {
	f.seen = append(f.seen, observation{kind, status})
}

type panicExecutor struct{}

func (panicExecutor) Kind() catalog.Kind { return catalog.KindImage }
func (panicExecutor) Execute(context.Context, catalog.Descriptor, Values) Result {
	panic("decoder exploded")
}

type checkingExecutor struct {
	mockExecutor
	err error
}

func (c *checkingExecutor) CheckInputs(catalog.Descriptor, Values) error {
	return c.err
}

func mustTool(t *testing.T, slug string) catalog.Descriptor {
	t.Helper()
	store, err := catalog.NewDefaultStore()
	require.NoError(t, err)
	tool, err := store.Get(slug)
	require.NoError(t, err)
	return tool
}

func TestDispatcher_RoutesByKind(t *testing.T) {
	calc := &mockExecutor{kind: catalog.KindCalculation, result: NewResult("8 CGPA = 76.00%")}
	ai := &mockExecutor{kind: catalog.KindAI, result: NewResult("ok")}

	reg := NewRegistry()
	reg.Register(calc)
	reg.Register(ai)
	d := NewDispatcher(reg)

	res := d.Execute(logger.NopContext(), mustTool(t, "cgpa-percentage"), Values{"value": "8"})
	assert.Equal(t, NewResult("8 CGPA = 76.00%"), res)
	assert.Equal(t, 1, calc.calls)
	assert.Zero(t, ai.calls)
	assert.Equal(t, "8", calc.last.String("value"))
}

func TestDispatcher_NoActionIsSilentNoop(t *testing.T) {
	obs := &fakeObserver{}
	d := NewDispatcher(NewRegistry(), WithObserver(obs))

	tool := catalog.Descriptor{Slug: "mystery", ActionType: "unknown"}
	res := d.Execute(logger.NopContext(), tool, Values{})

	assert.Equal(t, Result{}, res)
	assert.False(t, res.Success)
	assert.Empty(t, res.Error)
	assert.Equal(t, []observation{{catalog.KindNone, StatusNoop}}, obs.seen)
}

func TestDispatcher_MissingExecutor(t *testing.T) {
	d := NewDispatcher(NewRegistry())

	res := d.Execute(logger.NopContext(), mustTool(t, "pdf-compressor"), Values{})
	assert.Equal(t, NewErrorResult("pdf tools are not available"), res)
}

func TestDispatcher_GateDenies(t *testing.T) {
	exec := &mockExecutor{kind: catalog.KindAI, result: NewResult("unused")}
	reg := NewRegistry()
	reg.Register(exec)

	var gotTool string
	gate := gateFunc(func(kind catalog.Kind, tool, _ string) (*permissions.CheckResult, error) {
		gotTool = tool
		return &permissions.CheckResult{Allowed: false, Reason: "denied by configuration"}, nil
	})

	res := NewDispatcher(reg, WithGate(gate)).Execute(logger.NopContext(), mustTool(t, "ai-summarizer"), Values{"prompt": "x"})

	assert.Equal(t, NewErrorResult("ai tools are disabled: denied by configuration"), res)
	assert.Equal(t, "ai-summarizer", gotTool)
	assert.Zero(t, exec.calls)
}

func TestDispatcher_InputCheckRunsBeforeGate(t *testing.T) {
	exec := &checkingExecutor{
		mockExecutor: mockExecutor{kind: catalog.KindImage, result: NewResult("unused")},
		err:          ErrFileRequired,
	}
	reg := NewRegistry()
	reg.Register(exec)

	gated := 0
	gate := gateFunc(func(catalog.Kind, string, string) (*permissions.CheckResult, error) {
		gated++
		return &permissions.CheckResult{Allowed: true}, nil
	})
	d := NewDispatcher(reg, WithGate(gate))

	res := d.Execute(logger.NopContext(), mustTool(t, "image-resize"), Values{})
	assert.Equal(t, NewErrorResult("File required"), res)
	assert.Zero(t, gated)
	assert.Zero(t, exec.calls)

	exec.err = nil
	res = d.Execute(logger.NopContext(), mustTool(t, "image-resize"), Values{})
	assert.Equal(t, NewResult("unused"), res)
	assert.Equal(t, 1, gated)
	assert.Equal(t, 1, exec.calls)
}

func TestDispatcher_GateError(t *testing.T) {
	reg := NewRegistry()
	reg.Register(&mockExecutor{kind: catalog.KindAI})

	gate := gateFunc(func(catalog.Kind, string, string) (*permissions.CheckResult, error) {
		return nil, errors.New("failed to get permission: stdin closed")
	})

	res := NewDispatcher(reg, WithGate(gate)).Execute(logger.NopContext(), mustTool(t, "ai-summarizer"), Values{"prompt": "x"})
	assert.Equal(t, NewErrorResult("failed to get permission: stdin closed"), res)
}

func TestDispatcher_RecoversPanics(t *testing.T) {
	reg := NewRegistry()
	reg.Register(panicExecutor{})
	obs := &fakeObserver{}

	ctx, logs := logger.TestContext()
	res := NewDispatcher(reg, WithObserver(obs)).Execute(ctx, mustTool(t, "image-resize"), Values{})

	assert.Equal(t, NewErrorResult("decoder exploded"), res)
	assert.Equal(t, []observation{{catalog.KindImage, StatusError}}, obs.seen)
	assert.Equal(t, 1, logs.FilterMessage("tool execution panicked").Len())
}

func TestDispatcher_LogsAndObserves(t *testing.T) {
	reg := NewRegistry()
	reg.Register(&mockExecutor{kind: catalog.KindCalculation, result: NewErrorResult("Invalid Number")})
	obs := &fakeObserver{}

	ctx, logs := logger.TestContext()
	NewDispatcher(reg, WithObserver(obs)).Execute(ctx, mustTool(t, "cgpa-percentage"), Values{"value": "abc"})

	assert.Equal(t, []observation{{catalog.KindCalculation, StatusError}}, obs.seen)

	entries := logs.FilterMessage("tool executed").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "cgpa-percentage", fields["tool"])
	assert.Equal(t, "calculation", fields["kind"])
	assert.Equal(t, StatusError, fields["status"])
	assert.Equal(t, "Invalid Number", fields["error"])
}
