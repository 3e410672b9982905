package tui

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taaha3244/quicktools/internal/catalog"
	"github.com/taaha3244/quicktools/internal/permissions"
	"github.com/taaha3244/quicktools/internal/tools"
)

type fakeRunner struct {
	mu     sync.Mutex
	calls  int
	values tools.Values
	result tools.Result
}

func (f *fakeRunner) Execute(_ context.Context, _ catalog.Descriptor, values tools.Values) tools.Result {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.values = values
	return f.result
}

func newTestModel(t *testing.T, runner Runner) Model {
	t.Helper()
	store, err := catalog.NewDefaultStore()
	require.NoError(t, err)
	return New(Options{Store: store, Runner: runner, OutputDir: t.TempDir()})
}

func key(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok)
	return model, cmd
}

func typeText(t *testing.T, m Model, s string) Model {
	t.Helper()
	for _, r := range s {
		m, _ = update(t, m, runes(string(r)))
	}
	return m
}

func visibleSlugs(m Model) []string {
	out := make([]string, len(m.visible))
	for i, d := range m.visible {
		out[i] = d.Slug
	}
	return out
}

func TestHome_ShowsAllToolsInitially(t *testing.T) {
	m := newTestModel(t, &fakeRunner{})

	assert.Len(t, m.visible, 10)
	assert.Contains(t, m.View(), "PDF Compressor")
}

func TestHome_TabsFilterByCategory(t *testing.T) {
	m := newTestModel(t, &fakeRunner{})

	m, _ = update(t, m, key(tea.KeyTab))
	assert.Equal(t, []string{"pdf-compressor", "pdf-to-jpg"}, visibleSlugs(m))

	m, _ = update(t, m, key(tea.KeyTab))
	m, _ = update(t, m, key(tea.KeyTab))
	assert.Len(t, m.visible, 4)

	m, _ = update(t, m, key(tea.KeyShiftTab))
	m, _ = update(t, m, key(tea.KeyShiftTab))
	m, _ = update(t, m, key(tea.KeyShiftTab))
	assert.Len(t, m.visible, 10)

	m, _ = update(t, m, key(tea.KeyShiftTab))
	assert.Equal(t, []string{"cgpa-percentage", "age-calculator"}, visibleSlugs(m))
}

func TestHome_SearchFilters(t *testing.T) {
	m := newTestModel(t, &fakeRunner{})

	m = typeText(t, m, "resize")
	assert.Equal(t, []string{"image-resize"}, visibleSlugs(m))

	m = typeText(t, m, "zzz")
	assert.Empty(t, m.visible)
	assert.Contains(t, m.View(), "No tools found")
}

func TestHome_CursorStaysInBounds(t *testing.T) {
	m := newTestModel(t, &fakeRunner{})

	m, _ = update(t, m, key(tea.KeyUp))
	assert.Equal(t, 0, m.cursor)

	for i := 0; i < 20; i++ {
		m, _ = update(t, m, key(tea.KeyDown))
	}
	assert.Equal(t, 9, m.cursor)

	m = typeText(t, m, "age")
	assert.Equal(t, 0, m.cursor)
}

func openSlug(t *testing.T, m Model, search string) Model {
	t.Helper()
	m = typeText(t, m, search)
	require.NotEmpty(t, m.visible)
	m, _ = update(t, m, key(tea.KeyEnter))
	require.Equal(t, screenTool, m.screen)
	return m
}

func TestTool_SubmitRunsAndRendersText(t *testing.T) {
	runner := &fakeRunner{result: tools.NewResult("8 CGPA = 76.00%")}
	m := openSlug(t, newTestModel(t, runner), "cgpa")
	assert.Equal(t, "cgpa-percentage", m.tool.Slug)

	m = typeText(t, m, "8")
	m, cmd := update(t, m, key(tea.KeyEnter))
	require.NotNil(t, cmd)
	assert.True(t, m.loading)
	assert.Contains(t, m.View(), "Processing...")

	m, _ = update(t, m, cmd())
	assert.False(t, m.loading)
	assert.Equal(t, 1, runner.calls)
	assert.Equal(t, "8", runner.values.String("value"))
	assert.Contains(t, m.View(), "76.00%")
}

func TestTool_SubmitDisabledWhileLoading(t *testing.T) {
	runner := &fakeRunner{result: tools.NewResult("done")}
	m := openSlug(t, newTestModel(t, runner), "calculator")

	m, first := update(t, m, key(tea.KeyCtrlS))
	require.NotNil(t, first)

	m, second := update(t, m, key(tea.KeyCtrlS))
	assert.Nil(t, second)
	m, third := update(t, m, key(tea.KeyEnter))
	assert.Nil(t, third)

	m, _ = update(t, m, first())
	assert.Equal(t, 1, runner.calls)
	assert.False(t, m.loading)
}

func TestTool_ErrorResult(t *testing.T) {
	runner := &fakeRunner{result: tools.NewErrorResult("Invalid Number")}
	m := openSlug(t, newTestModel(t, runner), "cgpa")

	m, cmd := update(t, m, key(tea.KeyEnter))
	m, _ = update(t, m, cmd())
	assert.Contains(t, m.View(), "Invalid Number")
}

func TestTool_FileResultIsSaved(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "in.png")
	require.NoError(t, os.WriteFile(input, []byte("png bytes"), 0644))

	runner := &fakeRunner{result: tools.NewFileResult([]byte("resized"), "processed-in.png", "image/png")}
	m := openSlug(t, newTestModel(t, runner), "resize")

	m = typeText(t, m, input)
	m, _ = update(t, m, key(tea.KeyTab))
	m = typeText(t, m, "100")
	m, _ = update(t, m, key(tea.KeyTab))
	m, _ = update(t, m, key(tea.KeyTab))

	m, cmd := update(t, m, key(tea.KeyCtrlS))
	require.NotNil(t, cmd)
	m, _ = update(t, m, cmd())

	file := runner.values.File("file")
	require.NotNil(t, file)
	assert.Equal(t, "in.png", file.Name)
	assert.Equal(t, "image/png", file.MimeType)
	assert.Equal(t, "100", runner.values.String("width"))

	saved := filepath.Join(m.opts.OutputDir, "processed-in.png")
	assert.Equal(t, saved, m.saved)
	data, err := os.ReadFile(saved)
	require.NoError(t, err)
	assert.Equal(t, []byte("resized"), data)
}

func TestTool_MissingInputFile(t *testing.T) {
	runner := &fakeRunner{}
	m := openSlug(t, newTestModel(t, runner), "resize")

	m = typeText(t, m, filepath.Join(t.TempDir(), "missing.png"))
	m, cmd := update(t, m, key(tea.KeyCtrlS))

	assert.Nil(t, cmd)
	assert.False(t, m.loading)
	assert.Error(t, m.err)
	assert.Zero(t, runner.calls)
}

func TestTool_EscReturnsHome(t *testing.T) {
	m := openSlug(t, newTestModel(t, &fakeRunner{}), "calculator")

	m, _ = update(t, m, key(tea.KeyEsc))
	assert.Equal(t, screenHome, m.screen)
	assert.Nil(t, m.fields)
}

func TestPrompter_RoundTrip(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	prompter := NewPrompter(ctx)
	store, err := catalog.NewDefaultStore()
	require.NoError(t, err)
	m := New(Options{Store: store, Runner: &fakeRunner{}, Prompter: prompter})

	type answer struct {
		d   permissions.Decision
		err error
	}
	answered := make(chan answer, 1)
	go func() {
		d, err := prompter.Prompt(catalog.KindAI, "ai-summarizer", "AI Summarizer")
		answered <- answer{d, err}
	}()

	m, _ = update(t, m, m.waitForPrompt()())
	require.NotNil(t, m.pending)
	assert.Contains(t, m.View(), `Run ai tool "AI Summarizer"?`)

	m, _ = update(t, m, runes("x"))
	require.NotNil(t, m.pending)

	m, next := update(t, m, runes("a"))
	assert.Nil(t, m.pending)
	assert.NotNil(t, next)

	select {
	case got := <-answered:
		require.NoError(t, got.err)
		assert.Equal(t, permissions.DecisionAllow, got.d)
	case <-time.After(2 * time.Second):
		t.Fatal("prompt was not answered")
	}
}

func TestPrompter_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	d, err := NewPrompter(ctx).Prompt(catalog.KindImage, "image-resize", "Image Resize")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, permissions.DecisionDenyOnce, d)
}

func TestRenderMarkdown_FallsBackToPlainWrap(t *testing.T) {
	out := RenderMarkdown("**bold** words here", 40)
	assert.Contains(t, out, "bold")
	assert.Contains(t, out, "words here")

	assert.Equal(t, "one two\nthree", wrap("one two three", 8))
	assert.Equal(t, "unchanged", wrap("unchanged", 0))
}
