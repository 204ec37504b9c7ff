// Package model holds the Bubble Tea models behind interactive commands.
package model

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/dragkit/internal/application/usecase"
	"github.com/bnema/dragkit/internal/cli/styles"
)

// JournalLister loads recent journal entries.
type JournalLister interface {
	Execute(ctx context.Context, limit int) (usecase.ListJournalOutput, error)
}

var _ JournalLister = (*usecase.ListJournalUseCase)(nil)

// JournalModel browses the drag journal in a table.
type JournalModel struct {
	ctx    context.Context
	theme  *styles.Theme
	lister JournalLister
	limit  int

	out     usecase.ListJournalOutput
	table   table.Model
	spinner spinner.Model
	help    help.Model
	keys    styles.JournalKeyMap
	loading bool
	err     error
	width   int
	height  int
}

// NewJournalModel creates a journal browser showing up to limit entries.
func NewJournalModel(ctx context.Context, theme *styles.Theme, lister JournalLister, limit int) JournalModel {
	return JournalModel{
		ctx:     ctx,
		theme:   theme,
		lister:  lister,
		limit:   limit,
		spinner: styles.NewStyledSpinner(theme),
		help:    styles.NewStyledHelp(theme),
		keys:    styles.DefaultJournalKeyMap(),
		loading: true,
		width:   100,
		height:  24,
	}
}

type journalLoadedMsg struct {
	out usecase.ListJournalOutput
	err error
}

// Init implements tea.Model.
func (m JournalModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.load)
}

func (m JournalModel) load() tea.Msg {
	out, err := m.lister.Execute(m.ctx, m.limit)
	return journalLoadedMsg{out: out, err: err}
}

// Update implements tea.Model.
func (m JournalModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.buildTable()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Refresh):
			m.loading = true
			return m, tea.Batch(m.spinner.Tick, m.load)
		}
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd

	case journalLoadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.out = msg.out
			m.buildTable()
		}

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *JournalModel) buildTable() {
	rows := make([]table.Row, len(m.out.Entries))
	for i, e := range m.out.Entries {
		rows[i] = styles.JournalRow(e)
	}

	height := len(rows)
	if height > m.height-8 {
		height = m.height - 8
	}
	if height < 3 {
		height = 3
	}
	m.table = styles.NewStyledTable(m.theme, styles.JournalTableColumns(), rows, m.width-4, height)
}

// View implements tea.Model.
func (m JournalModel) View() string {
	t := m.theme

	if m.loading {
		return t.Box.Render(m.spinner.View() + " " + t.Subtle.Render("Loading journal..."))
	}
	if m.err != nil {
		return t.Box.Render(t.ErrorStyle.Render("Error: " + m.err.Error()))
	}

	header := lipgloss.JoinHorizontal(
		lipgloss.Top,
		t.Title.Render("Drag journal"),
		" ",
		t.CountBadge(m.out.Committed, "commit"),
		" ",
		t.CountBadge(m.out.Cancelled, "cancel"),
	)

	body := m.table.View()
	if len(m.out.Entries) == 0 {
		body = t.Subtle.Render("No drags recorded yet")
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		"",
		body,
		"",
		m.help.View(m.keys),
	)
}

// Selected returns the index of the highlighted entry, or -1 when empty.
func (m JournalModel) Selected() int {
	if len(m.out.Entries) == 0 {
		return -1
	}
	return m.table.Cursor()
}
