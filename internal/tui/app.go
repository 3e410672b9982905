package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/taaha3244/quicktools/internal/catalog"
	"github.com/taaha3244/quicktools/internal/permissions"
	"github.com/taaha3244/quicktools/internal/tools"
	"github.com/taaha3244/quicktools/internal/tui/styles"
)

// Runner executes one tool. *tools.Dispatcher satisfies it.
type Runner interface {
	Execute(ctx context.Context, tool catalog.Descriptor, values tools.Values) tools.Result
}

type screen int

const (
	screenHome screen = iota
	screenTool
)

var tabs = []catalog.Category{
	catalog.CategoryAll,
	catalog.CategoryPDF,
	catalog.CategoryImage,
	catalog.CategoryAI,
	catalog.CategoryStudent,
}

type Options struct {
	Store    *catalog.Store
	Runner   Runner
	Prompter *Prompter
	// OutputDir receives binary results. Empty means the working directory.
	OutputDir string
	Status    string
	Context   context.Context
}

type Model struct {
	opts Options

	screen screen
	width  int
	height int

	search  textinput.Model
	tab     int
	cursor  int
	visible []catalog.Descriptor

	tool     catalog.Descriptor
	fields   []textinput.Model
	focus    int
	loading  bool
	result   *tools.Result
	saved    string
	err      error
	viewport viewport.Model

	pending *promptRequest
}

type runFinishedMsg struct {
	result tools.Result
	saved  string
	err    error
}

type promptMsg struct {
	req promptRequest
}

func New(opts Options) Model {
	if opts.Context == nil {
		opts.Context = context.Background()
	}

	search := textinput.New()
	search.Placeholder = "Search tools..."
	search.Prompt = "/ "
	search.CharLimit = 100
	search.Focus()

	m := Model{
		opts:     opts,
		width:    80,
		height:   24,
		search:   search,
		viewport: viewport.New(76, 10),
	}
	m.refilter()
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.waitForPrompt())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = max(msg.Width-4, 10)
		m.viewport.Height = max(msg.Height-len(m.fields)*2-10, 3)
		m.renderResult()
		return m, nil

	case promptMsg:
		m.pending = &msg.req
		return m, nil

	case runFinishedMsg:
		m.loading = false
		m.result = &msg.result
		m.saved = msg.saved
		m.err = msg.err
		m.renderResult()
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.pending != nil {
			return m.handlePromptKey(msg)
		}
		if m.screen == screenTool {
			return m.updateTool(msg)
		}
		return m.updateHome(msg)
	}

	if m.screen == screenTool && m.result != nil {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updateHome(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		return m, tea.Quit

	case tea.KeyTab:
		m.tab = (m.tab + 1) % len(tabs)
		m.refilter()
		return m, nil

	case tea.KeyShiftTab:
		m.tab = (m.tab + len(tabs) - 1) % len(tabs)
		m.refilter()
		return m, nil

	case tea.KeyUp, tea.KeyCtrlP:
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case tea.KeyDown, tea.KeyCtrlN:
		if m.cursor < len(m.visible)-1 {
			m.cursor++
		}
		return m, nil

	case tea.KeyEnter:
		if len(m.visible) == 0 {
			return m, nil
		}
		cmd := m.openTool(m.visible[m.cursor])
		return m, cmd
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != before {
		m.refilter()
	}
	return m, cmd
}

func (m Model) updateTool(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.screen = screenHome
		m.fields = nil
		m.result = nil
		m.err = nil
		m.refilter()
		cmd := m.search.Focus()
		return m, cmd

	case tea.KeyTab, tea.KeyDown:
		cmd := m.focusField(m.focus + 1)
		return m, cmd

	case tea.KeyShiftTab, tea.KeyUp:
		cmd := m.focusField(m.focus - 1)
		return m, cmd

	case tea.KeyEnter:
		if m.focus < len(m.fields)-1 {
			cmd := m.focusField(m.focus + 1)
			return m, cmd
		}
		return m.submit()

	case tea.KeyCtrlS:
		return m.submit()

	case tea.KeyPgUp, tea.KeyPgDown:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	if len(m.fields) == 0 {
		return m, nil
	}
	var cmd tea.Cmd
	m.fields[m.focus], cmd = m.fields[m.focus].Update(msg)
	return m, cmd
}

func (m Model) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var decision permissions.Decision
	switch strings.ToLower(msg.String()) {
	case "y":
		decision = permissions.DecisionAllowOnce
	case "n", "esc":
		decision = permissions.DecisionDenyOnce
	case "a":
		decision = permissions.DecisionAllow
	case "v":
		decision = permissions.DecisionDeny
	default:
		return m, nil
	}

	m.pending.reply <- decision
	m.pending = nil
	return m, m.waitForPrompt()
}

func (m *Model) refilter() {
	m.visible = m.opts.Store.Filter(tabs[m.tab], strings.TrimSpace(m.search.Value()))
	m.cursor = 0
}

func (m *Model) openTool(tool catalog.Descriptor) tea.Cmd {
	m.screen = screenTool
	m.tool = tool
	m.result = nil
	m.saved = ""
	m.err = nil
	m.search.Blur()

	m.fields = make([]textinput.Model, len(tool.Inputs))
	for i, in := range tool.Inputs {
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = 0
		ti.Width = max(m.width-6, 10)
		ti.Placeholder = in.Placeholder
		switch {
		case in.Type == catalog.InputFile:
			ti.Placeholder = "path to file"
			if in.Accept != "" {
				ti.Placeholder += " (" + in.Accept + ")"
			}
		case len(in.Options) > 0:
			ti.Placeholder = strings.Join(in.Options, " | ")
		}
		m.fields[i] = ti
	}

	m.focus = 0
	if len(m.fields) == 0 {
		return nil
	}
	return m.fields[0].Focus()
}

func (m *Model) focusField(i int) tea.Cmd {
	if len(m.fields) == 0 {
		return nil
	}
	i = (i + len(m.fields)) % len(m.fields)
	m.fields[m.focus].Blur()
	m.focus = i
	return m.fields[i].Focus()
}

// submit starts a run unless one is already in flight.
func (m Model) submit() (tea.Model, tea.Cmd) {
	if m.loading {
		return m, nil
	}

	values := tools.Values{}
	for i, in := range m.tool.Inputs {
		raw := m.fields[i].Value()
		if in.Type != catalog.InputFile {
			values[in.Name] = raw
			continue
		}
		if strings.TrimSpace(raw) == "" {
			continue
		}
		file, err := tools.ReadFile(expandHome(strings.TrimSpace(raw)))
		if err != nil {
			m.result = nil
			m.err = err
			m.renderResult()
			return m, nil
		}
		values[in.Name] = file
	}

	m.loading = true
	m.result = nil
	m.err = nil
	return m, m.run(m.tool, values)
}

func (m Model) run(tool catalog.Descriptor, values tools.Values) tea.Cmd {
	runner := m.opts.Runner
	ctx := m.opts.Context
	outDir := m.opts.OutputDir

	return func() tea.Msg {
		res := runner.Execute(ctx, tool, values)
		if !res.IsFile() {
			return runFinishedMsg{result: res}
		}

		path := filepath.Join(outDir, res.DownloadName)
		if err := os.WriteFile(path, res.Data, 0644); err != nil {
			return runFinishedMsg{result: res, err: fmt.Errorf("failed to write %s: %w", path, err)}
		}
		return runFinishedMsg{result: res, saved: path}
	}
}

func (m Model) waitForPrompt() tea.Cmd {
	if m.opts.Prompter == nil {
		return nil
	}
	requests := m.opts.Prompter.requests
	return func() tea.Msg {
		return promptMsg{req: <-requests}
	}
}

func (m *Model) renderResult() {
	width := max(m.viewport.Width-2, 10)

	var content string
	switch {
	case m.err != nil:
		content = styles.ErrorMessage.Render("Error: " + m.err.Error())
	case m.result == nil:
		content = ""
	case m.saved != "":
		content = styles.SuccessMessage.Render("✓ Saved ") + m.saved +
			styles.Hint.Render(fmt.Sprintf(" (%s, %d bytes)", m.result.MimeType, len(m.result.Data)))
	case m.result.Success:
		content = RenderMarkdown(m.result.Text, width)
	case m.result.Error != "":
		content = styles.ErrorMessage.Render(wrap(m.result.Error, width))
	default:
		content = styles.Hint.Render("This tool has no action yet.")
	}

	m.viewport.SetContent(content)
	m.viewport.GotoTop()
}

func (m Model) View() string {
	var body string
	if m.screen == screenTool {
		body = m.renderTool()
	} else {
		body = m.renderHome()
	}

	view := lipgloss.JoinVertical(lipgloss.Left, m.renderStatusBar(), body)
	if m.pending != nil {
		view = lipgloss.JoinVertical(lipgloss.Left, view, m.renderConfirmPrompt())
	}
	return view
}

func (m Model) renderStatusBar() string {
	left := "QuickTools"
	if m.opts.Status != "" {
		left += " | " + m.opts.Status
	}
	right := fmt.Sprintf("%d tools", m.opts.Store.Len())

	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(right)-2, 1)
	return styles.StatusBar.Width(m.width).Render(left + strings.Repeat(" ", gap) + right)
}

func (m Model) renderTabs() string {
	rendered := make([]string, len(tabs))
	for i, c := range tabs {
		label := string(c)
		if c != catalog.CategoryAll {
			label = c.Info().Label
		}
		if i == m.tab {
			rendered[i] = styles.ActiveTab.Render(label)
		} else {
			rendered[i] = styles.Tab.Render(label)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m Model) renderHome() string {
	var b strings.Builder
	b.WriteString(m.renderTabs() + "\n\n")
	b.WriteString(m.search.View() + "\n\n")

	if len(m.visible) == 0 {
		b.WriteString(styles.Hint.Render("No tools found"))
		return b.String()
	}

	perPage := max((m.height-8)/3, 1)
	start := 0
	if m.cursor >= perPage {
		start = m.cursor - perPage + 1
	}
	end := min(start+perPage, len(m.visible))

	descWidth := max(m.width-6, 20)
	for i := start; i < end; i++ {
		tool := m.visible[i]
		info := tool.Category.Info()

		marker := "  "
		name := styles.ToolName.Render(tool.Icon.Glyph() + " " + tool.Name)
		if i == m.cursor {
			marker = styles.InputPrompt.Render("> ")
			name = styles.SelectedTool.Render(tool.Icon.Glyph() + " " + tool.Name)
		}

		b.WriteString(marker + name + "  " + styles.Category(info.Color).Render(info.Label) + "\n")
		for _, line := range strings.Split(wrap(tool.Description, descWidth), "\n") {
			b.WriteString("    " + styles.Description.Render(line) + "\n")
		}
	}

	b.WriteString("\n" + styles.Hint.Render("tab category • ↑/↓ select • enter open • esc quit"))
	return b.String()
}

func (m Model) renderTool() string {
	var b strings.Builder
	info := m.tool.Category.Info()

	b.WriteString(styles.ToolName.Render(m.tool.Icon.Glyph()+" "+m.tool.Name) + "  " +
		styles.Category(info.Color).Render(info.Label) + "\n")
	b.WriteString(styles.Description.Render(wrap(m.tool.Description, max(m.width-2, 20))) + "\n\n")

	for i, in := range m.tool.Inputs {
		b.WriteString(styles.Label.Render(in.Label) + "\n")
		b.WriteString(styles.BorderedBox.Render(m.fields[i].View()) + "\n")
	}

	switch {
	case m.loading:
		b.WriteString(styles.Loading.Render("Processing...") + "\n")
	default:
		b.WriteString(styles.Hint.Render("tab next field • enter/ctrl+s run • esc back") + "\n")
	}

	if m.result != nil || m.err != nil {
		b.WriteString("\n" + m.viewport.View())
	}
	return b.String()
}

func (m Model) renderConfirmPrompt() string {
	yKey := styles.ConfirmKey.Render("y")
	nKey := styles.ConfirmKey.Render("n")
	aKey := styles.ConfirmKey.Render("a")
	vKey := styles.ConfirmKey.Render("v")

	prompt := fmt.Sprintf("Run %s tool %q?  %s yes  %s no  %s always  %s never",
		m.pending.kind, m.pending.tool, yKey, nKey, aKey, vKey)
	return styles.ConfirmPrompt.Width(m.width).Render(prompt)
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}

func Run(opts Options) error {
	p := tea.NewProgram(
		New(opts),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}

	return nil
}
