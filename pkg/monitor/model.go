// Package monitor implements the live sync dashboard TUI for qc.
package monitor

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/quiclick/qc/internal/engine"
	"github.com/quiclick/qc/internal/models"
	"github.com/quiclick/qc/internal/store"
)

// snapshot is one refresh of everything the dashboard renders.
type snapshot struct {
	Auth      models.AuthState
	Sync      models.SyncState
	Queue     []engine.QueueOp
	Bookmarks int
	Folders   int
	Err       error
}

type tickMsg time.Time
type refreshMsg snapshot
type syncDoneMsg struct{ err error }

// Model is the bubbletea model for the sync dashboard.
type Model struct {
	store   store.Store
	engine  *engine.Engine
	version string

	interval time.Duration
	spinner  spinner.Model
	snap     snapshot
	syncing  bool
	lastSync time.Time
	lastErr  error
	width    int
	height   int
}

// NewModel builds the dashboard model.
func NewModel(s store.Store, eng *engine.Engine, interval time.Duration, version string) Model {
	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = spinnerStyle
	return Model{
		store:    s,
		engine:   eng,
		version:  version,
		interval: interval,
		spinner:  sp,
	}
}

// Init starts the spinner, the refresh ticker, and an immediate sync.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.refreshCmd(), m.syncCmd(), m.tickCmd())
}

func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// refreshCmd reads a fresh snapshot from the store.
func (m Model) refreshCmd() tea.Cmd {
	s := m.store
	return func() tea.Msg {
		var snap snapshot
		var err error
		if snap.Auth, err = store.AuthState(s); err != nil {
			snap.Err = err
			return refreshMsg(snap)
		}
		if snap.Sync, err = store.SyncState(s); err != nil {
			snap.Err = err
			return refreshMsg(snap)
		}
		bookmarks, err := store.Bookmarks(s)
		if err != nil {
			snap.Err = err
			return refreshMsg(snap)
		}
		folders, err := store.Folders(s)
		if err != nil {
			snap.Err = err
			return refreshMsg(snap)
		}
		snap.Bookmarks = len(bookmarks)
		snap.Folders = len(folders)
		snap.Queue, snap.Err = engine.Queue(s)
		return refreshMsg(snap)
	}
}

// syncCmd runs one pull+drain cycle off the UI goroutine.
func (m Model) syncCmd() tea.Cmd {
	eng := m.engine
	return func() tea.Msg {
		return syncDoneMsg{err: eng.Sync(context.Background())}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "s", "r":
			if !m.syncing {
				m.syncing = true
				return m, m.syncCmd()
			}
			return m, nil
		}

	case tickMsg:
		cmds := []tea.Cmd{m.refreshCmd(), m.tickCmd()}
		if !m.syncing {
			m.syncing = true
			cmds = append(cmds, m.syncCmd())
		}
		return m, tea.Batch(cmds...)

	case refreshMsg:
		m.snap = snapshot(msg)
		return m, nil

	case syncDoneMsg:
		m.syncing = false
		m.lastSync = time.Now()
		m.lastErr = msg.err
		return m, m.refreshCmd()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}
