// Package tui is the interactive terminal front end of the question pipeline.
package tui

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kailas-cloud/wikibot/internal/domain"
	"github.com/kailas-cloud/wikibot/internal/domain/search/request"
	"github.com/kailas-cloud/wikibot/internal/usecase/qa"
)

// Pipeline is the TUI-facing subset of the question pipeline.
type Pipeline interface {
	Run(ctx context.Context, query string, top int) (qa.Result, error)
	Ready() error
}

// Options configure the side panel and input defaults.
type Options struct {
	Title        string
	DefaultQuery string
	DefaultTop   int
	Categories   []string
	Checklist    []string
}

// answeredMsg carries the outcome of one pipeline run.
type answeredMsg struct {
	query  string
	result qa.Result
	err    error
}

// Model is the Bubble Tea model for the TUI application.
type Model struct {
	pipeline Pipeline
	opts     Options
	keymap   *KeyMap
	ctx      context.Context

	input    textinput.Model
	viewport viewport.Model
	spinner  spinner.Model

	top      int
	busy     bool
	ready    bool
	width    int
	height   int
	notReady error

	lastQuery string
	result    *qa.Result
	err       error
	selected  int
	expanded  map[int]bool
}

// New creates a TUI model. A pipeline that is not ready puts the model in a
// blocking state where every ask is refused.
func New(pipeline Pipeline, opts Options) Model {
	ti := textinput.New()
	ti.Prompt = "? "
	ti.Placeholder = "Type a question and press Enter"
	ti.CharLimit = request.MaxQueryLength
	ti.SetValue(opts.DefaultQuery)
	ti.CursorEnd()
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = selectStyle

	if opts.Title == "" {
		opts.Title = "HR Guidebook"
	}

	return Model{
		pipeline: pipeline,
		opts:     opts,
		keymap:   DefaultKeyMap(),
		ctx:      context.Background(),
		input:    ti,
		viewport: viewport.New(0, 0),
		spinner:  sp,
		top:      request.ClampTop(opts.DefaultTop),
		notReady: pipeline.Ready(),
		expanded: map[int]bool{},
	}
}

// WithContext sets the context passed to pipeline runs.
func (m Model) WithContext(ctx context.Context) Model {
	m.ctx = ctx
	return m
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Top returns the current result count selection.
func (m Model) Top() int { return m.top }

// Busy reports whether a pipeline run is in flight.
func (m Model) Busy() bool { return m.busy }

// Update handles key, window and pipeline events.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		m.refresh()
		return m, nil

	case answeredMsg:
		m.busy = false
		m.lastQuery = msg.query
		m.err = msg.err
		res := msg.result
		m.result = &res
		m.selected = 0
		m.expanded = map[int]bool{}
		for _, d := range res.Details {
			if d.Expanded {
				m.expanded[d.Index-1] = true
			}
		}
		m.input.Blur()
		m.refresh()
		m.viewport.GotoTop()
		return m, nil

	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	km := m.keymap
	typing := m.input.Focused()
	s := msg.String()

	switch {
	case key.Matches(msg, km.ForceQuit):
		return m, tea.Quit
	case key.Matches(msg, km.Ask) && typing:
		return m.ask()
	case key.Matches(msg, km.TopUp) && (!typing || s != "+"):
		m.top = min(m.top+1, request.MaxTop)
		return m, nil
	case key.Matches(msg, km.TopDown) && (!typing || s != "-"):
		m.top = max(m.top-1, request.MinTop)
		return m, nil
	case key.Matches(msg, km.Results) && typing:
		m.input.Blur()
		return m, nil
	}

	if typing {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, km.Quit):
		return m, tea.Quit
	case key.Matches(msg, km.Edit):
		cmd := m.input.Focus()
		return m, cmd
	case key.Matches(msg, km.Next):
		if n := m.detailCount(); n > 0 {
			m.selected = (m.selected + 1) % n
			m.refresh()
		}
		return m, nil
	case key.Matches(msg, km.Toggle):
		if m.detailCount() > 0 {
			m.expanded[m.selected] = !m.expanded[m.selected]
			m.refresh()
		}
		return m, nil
	case key.Matches(msg, km.Ask):
		return m.ask()
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// ask starts one pipeline run unless one is already in flight or the pipeline is not configured.
func (m Model) ask() (tea.Model, tea.Cmd) {
	if m.busy {
		return m, nil
	}
	if m.notReady != nil {
		m.err = m.notReady
		m.refresh()
		return m, nil
	}

	m.busy = true
	m.err = nil
	query := m.input.Value()
	top := m.top
	ctx := m.ctx
	pipeline := m.pipeline

	run := func() tea.Msg {
		res, err := pipeline.Run(ctx, query, top)
		return answeredMsg{query: query, result: res, err: err}
	}
	return m, tea.Batch(m.spinner.Tick, run)
}

func (m Model) detailCount() int {
	if m.result == nil {
		return 0
	}
	return len(m.result.Details)
}

func (m *Model) resize() {
	_, ih := inputBoxStyle.GetFrameSize()
	rw, rh := resultBoxStyle.GetFrameSize()
	sw, _ := sideBoxStyle.GetFrameSize()

	reserved := 1 + 1 + (1 + ih) + 1 // header, top selector, input box, status
	if m.notReady != nil {
		reserved += 3
	}

	m.viewport.Width = max(20, m.width-sidePanelWidth-sw-rw)
	m.viewport.Height = max(3, m.height-reserved-rh)
	m.input.Width = max(10, m.width-8)
}

func (m *Model) refresh() {
	m.viewport.SetContent(m.renderBody())
}

// notConfigured reports whether asking is blocked by missing settings.
func (m Model) notConfigured() bool {
	return errors.Is(m.notReady, domain.ErrNotConfigured)
}
