package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-sync-engine/internal/adapter"
	"github.com/MKhiriev/go-sync-engine/models"
)

const (
	statusNoticeTTL   = 2 * time.Second
	failedListVisible = 10
)

type monitorModel struct {
	ctx     context.Context
	api     adapter.ControlAPI
	refresh time.Duration
	copy    func(string) error

	status  models.EngineStatus
	failed  []models.LocalChange
	idx     int
	loading bool
	busy    bool
	spinner spinner.Model

	notice  string
	overlay *errorOverlayModel
	confirm *confirmModel
}

func newMonitorModel(ctx context.Context, api adapter.ControlAPI, refresh time.Duration) monitorModel {
	s := spinner.New()
	s.Spinner = spinner.MiniDot

	return monitorModel{
		ctx:     ctx,
		api:     api,
		refresh: refresh,
		copy:    clipboard.WriteAll,
		loading: true,
		spinner: s,
	}
}

func (m monitorModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.cmdSnapshot(true))
}

func (m monitorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case snapshotMsg:
		m.loading = false
		var next tea.Cmd
		if msg.poll {
			next = tea.Tick(m.refresh, func(time.Time) tea.Msg { return tickMsg{} })
		}
		if msg.err != nil {
			m.notice = humanizeControlAPIError(msg.err)
			return m, next
		}
		m.status = msg.status
		m.failed = msg.failed
		m.idx = min(m.idx, max(len(m.failed)-1, 0))
		return m, next

	case tickMsg:
		return m, m.cmdSnapshot(true)

	case actionDoneMsg:
		m.busy = false
		if msg.err != nil {
			m.overlay = &errorOverlayModel{message: msg.action + ": " + humanizeControlAPIError(msg.err)}
			return m, nil
		}
		m.notice = msg.action + " done"
		return m, tea.Batch(m.cmdSnapshot(false), clearStatusAfter())

	case copiedMsg:
		if msg.err != nil {
			m.overlay = &errorOverlayModel{message: "copy to clipboard: " + msg.err.Error()}
			return m, nil
		}
		m.notice = "client id copied"
		return m, clearStatusAfter()

	case clearStatusMsg:
		m.notice = ""
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m monitorModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	if m.overlay != nil {
		if key.Matches(msg, keys.esc) || key.Matches(msg, keys.enter) {
			m.overlay = nil
		}
		return m, nil
	}

	if m.confirm != nil {
		switch {
		case key.Matches(msg, keys.yes):
			m.confirm = nil
			return m.run("resync", m.api.Resync)
		case key.Matches(msg, keys.no):
			m.confirm = nil
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, keys.quit):
		return m, tea.Quit
	case key.Matches(msg, keys.up):
		if m.idx > 0 {
			m.idx--
		}
	case key.Matches(msg, keys.down):
		if m.idx < len(m.failed)-1 {
			m.idx++
		}
	case key.Matches(msg, keys.refresh):
		return m, m.cmdSnapshot(false)
	case key.Matches(msg, keys.connect):
		return m.run("connect", m.api.Connect)
	case key.Matches(msg, keys.disconnect):
		return m.run("disconnect", m.api.Disconnect)
	case key.Matches(msg, keys.flush):
		return m.run("flush", m.api.Flush)
	case key.Matches(msg, keys.retry):
		return m.run("retry", func(ctx context.Context) error {
			_, err := m.api.RetryFailed(ctx)
			return err
		})
	case key.Matches(msg, keys.resync):
		m.confirm = &confirmModel{message: "Discard the client identity and download everything again?"}
	case key.Matches(msg, keys.copyID):
		if m.status.ClientID != "" {
			return m, m.cmdCopy(m.status.ClientID)
		}
	}

	return m, nil
}

// run executes one control command unless another is still in progress.
func (m monitorModel) run(action string, fn func(context.Context) error) (tea.Model, tea.Cmd) {
	if m.busy {
		return m, nil
	}
	m.busy = true

	ctx := m.ctx
	return m, func() tea.Msg {
		return actionDoneMsg{action: action, err: fn(ctx)}
	}
}

func (m monitorModel) cmdSnapshot(poll bool) tea.Cmd {
	ctx, api := m.ctx, m.api
	return func() tea.Msg {
		status, err := api.Status(ctx)
		if err != nil {
			return snapshotMsg{poll: poll, err: err}
		}
		failed, err := api.FailedChanges(ctx)
		if err != nil {
			return snapshotMsg{poll: poll, err: err}
		}
		return snapshotMsg{status: status, failed: failed, poll: poll}
	}
}

func (m monitorModel) cmdCopy(text string) tea.Cmd {
	copyFn := m.copy
	return func() tea.Msg {
		return copiedMsg{err: copyFn(text)}
	}
}

func clearStatusAfter() tea.Cmd {
	return tea.Tick(statusNoticeTTL, func(time.Time) tea.Msg { return clearStatusMsg{} })
}

func (m monitorModel) View() string {
	if m.overlay != nil {
		return appStyle.Render(m.overlay.View())
	}
	if m.confirm != nil {
		return appStyle.Render(m.confirm.View())
	}

	title := "Sync engine"
	if m.busy {
		title += "  " + m.spinner.View()
	}

	hotKeys := "c connect  d disconnect  f flush  t retry failed  x resync  i copy id  r refresh"
	return appStyle.Render(renderPage(title, m.body(), hotKeys))
}

func (m monitorModel) body() string {
	if m.loading {
		return "Loading..."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "State:       %s\n", stateLabel(m.status.State))
	fmt.Fprintf(&b, "Connection:  %s\n", valueOrDash(string(m.status.Connection)))
	fmt.Fprintf(&b, "Client ID:   %s\n", valueOrDash(m.status.ClientID))
	fmt.Fprintf(&b, "LSN:         %s\n", valueOrDash(string(m.status.LSN)))
	fmt.Fprintf(&b, "Pending:     %d (in flight %d)\n", m.status.PendingChanges, m.status.InFlight)
	fmt.Fprintf(&b, "Last sync:   %s\n", timeOrNever(m.status.LastSyncTime))

	fmt.Fprintf(&b, "\nFailed changes: %d\n", len(m.failed))
	start := max(0, m.idx-failedListVisible+1)
	end := min(len(m.failed), start+failedListVisible)
	for i := start; i < end; i++ {
		c := m.failed[i]
		cursor := "  "
		if i == m.idx {
			cursor = "> "
		}
		fmt.Fprintf(&b, "%s%-6s %-12s %s\n", cursor, c.Operation, fitText(c.Table, 12), fitText(c.Error, 48))
	}

	if m.notice != "" {
		b.WriteString("\n" + m.notice + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func stateLabel(state models.SyncState) string {
	if state == "" {
		return "-"
	}
	if state == models.SyncStateLive {
		return liveStyle.Render(string(state))
	}
	if state == models.SyncStateDisconnected {
		return offlineStyle.Render(string(state))
	}
	return string(state)
}
