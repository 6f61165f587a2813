package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"pickterm/internal/engine"
	"pickterm/internal/model"
	"pickterm/internal/roster"
)

// panelState is the per-panel UI state layered over the engine: the search
// input, whether it is capturing keys, and the cursor position within the
// flattened row list.
type panelState struct {
	input     textinput.Model
	searching bool
	cursor    int
}

type AppModel struct {
	store  *engine.Store
	source roster.Source
	logger *zap.Logger

	focus  model.Panel
	panels map[model.Panel]*panelState

	status string
	Err    error

	width, height int
}

func NewAppModel(src roster.Source, logger *zap.Logger) AppModel {
	newPanel := func(placeholder string) *panelState {
		ti := textinput.New()
		ti.Placeholder = placeholder
		ti.Prompt = "/ "
		return &panelState{input: ti}
	}
	return AppModel{
		store:  engine.NewStore(),
		source: src,
		logger: logger,
		focus:  model.PanelAvailable,
		panels: map[model.Panel]*panelState{
			model.PanelAvailable: newPanel("search available"),
			model.PanelSelected:  newPanel("search selected"),
		},
		status: "Loading roster...",
	}
}

func (m *AppModel) Init() tea.Cmd {
	return tea.Batch(m.loadRosterCmd(false), textinput.Blink)
}

func (m *AppModel) loadRosterCmd(reload bool) tea.Cmd {
	src := m.source
	return func() tea.Msg {
		recs, err := src.Load(context.Background())
		return rosterLoadedMsg{recs: recs, reload: reload, err: err}
	}
}

func (m *AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		for _, ps := range m.panels {
			ps.input.Width = m.panelWidth() - 6
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case RosterChangedMsg:
		m.status = "Roster changed, reloading..."
		return m, m.loadRosterCmd(true)

	case rosterLoadedMsg:
		if msg.err != nil {
			if !msg.reload {
				m.Err = msg.err
				return m, tea.Quit
			}
			m.logger.Warn("roster reload failed", zap.Error(msg.err))
			m.status = fmt.Sprintf("Reload failed: %v", msg.err)
			return m, clearStatusAfter(3 * time.Second)
		}
		m.store.Ingest(msg.recs)
		m.clampCursors()
		m.logger.Info("roster ingested",
			zap.Int("records", len(msg.recs)),
			zap.String("source", m.source.String()))
		m.status = fmt.Sprintf("Loaded %d recipients (%s)", len(msg.recs), m.source.String())
		return m, clearStatusAfter(2 * time.Second)

	case statusMsg:
		if string(msg) == "" {
			m.status = ""
		}
		return m, nil
	}

	// Delegate whatever is left (cursor blink ticks) to the focused search
	// input.
	if ps := m.panels[m.focus]; ps.searching {
		var cmd tea.Cmd
		ps.input, cmd = ps.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *AppModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		return m, tea.Quit
	}

	ps := m.panels[m.focus]

	// While the search input has focus it owns the keyboard; every
	// keystroke updates the engine's search string immediately.
	if ps.searching {
		switch key {
		case "esc":
			ps.searching = false
			ps.input.Blur()
			ps.input.SetValue("")
			m.store.SetSearch(m.focus, "")
			m.clampCursors()
			return m, nil
		case "enter":
			ps.searching = false
			ps.input.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		ps.input, cmd = ps.input.Update(msg)
		m.store.SetSearch(m.focus, ps.input.Value())
		m.clampCursors()
		return m, cmd
	}

	switch key {
	case "q":
		return m, tea.Quit
	case "tab":
		if m.focus == model.PanelAvailable {
			m.focus = model.PanelSelected
		} else {
			m.focus = model.PanelAvailable
		}
		return m, nil
	case "/":
		ps.searching = true
		return m, ps.input.Focus()
	case "up", "k":
		if ps.cursor > 0 {
			ps.cursor--
		}
		return m, nil
	case "down", "j":
		if ps.cursor < len(panelRows(m.store, m.focus))-1 {
			ps.cursor++
		}
		return m, nil
	case "enter", " ":
		return m.activateRow()
	case "a":
		return m.moveDomain()
	case "r":
		m.status = "Reloading..."
		return m, m.loadRosterCmd(true)
	}

	return m, nil
}

// activateRow toggles a group header or moves a recipient to the other
// panel.
func (m *AppModel) activateRow() (tea.Model, tea.Cmd) {
	r, ok := m.currentRow()
	if !ok {
		return m, nil
	}
	if r.kind == rowGroup {
		m.store.ToggleExpand(m.focus, r.domain)
		m.clampCursors()
		return m, nil
	}

	if m.focus == model.PanelAvailable {
		m.store.SelectRecipient(r.recipient.ID)
		m.status = "Added " + r.recipient.Email
	} else {
		m.store.RemoveRecipient(r.recipient.ID)
		m.status = "Removed " + r.recipient.Email
	}
	m.clampCursors()
	return m, clearStatusAfter(2 * time.Second)
}

// moveDomain moves every recipient of the current row's domain across.
func (m *AppModel) moveDomain() (tea.Model, tea.Cmd) {
	r, ok := m.currentRow()
	if !ok || r.domain == "" {
		return m, nil
	}
	if m.focus == model.PanelAvailable {
		m.store.SelectDomainRecipients(r.domain)
		m.status = "Added all of " + r.domain
	} else {
		m.store.RemoveDomainRecipients(r.domain)
		m.status = "Removed all of " + r.domain
	}
	m.clampCursors()
	return m, clearStatusAfter(2 * time.Second)
}

func (m *AppModel) currentRow() (row, bool) {
	rows := panelRows(m.store, m.focus)
	cursor := m.panels[m.focus].cursor
	if cursor < 0 || cursor >= len(rows) {
		return row{}, false
	}
	return rows[cursor], true
}

// clampCursors keeps both cursors inside their (possibly shrunken) row
// lists after moves, filters, and reloads.
func (m *AppModel) clampCursors() {
	for p, ps := range m.panels {
		n := len(panelRows(m.store, p))
		if ps.cursor >= n {
			ps.cursor = n - 1
		}
		if ps.cursor < 0 {
			ps.cursor = 0
		}
	}
}

func clearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return statusMsg("")
	})
}
