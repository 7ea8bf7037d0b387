package tui

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-sync-engine/internal/adapter"
	"github.com/MKhiriev/go-sync-engine/internal/mock"
	"github.com/MKhiriev/go-sync-engine/models"
)

func newTestMonitor(t *testing.T) (monitorModel, *mock.MockControlAPI) {
	t.Helper()
	api := mock.NewMockControlAPI(gomock.NewController(t))
	return newMonitorModel(context.Background(), api, time.Second), api
}

func press(m monitorModel, k string) (monitorModel, tea.Cmd) {
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)})
	return next.(monitorModel), cmd
}

func feed(m monitorModel, msg tea.Msg) (monitorModel, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(monitorModel), cmd
}

func liveSnapshot() snapshotMsg {
	return snapshotMsg{
		status: models.EngineStatus{
			State:          models.SyncStateLive,
			ClientID:       "client-1",
			LSN:            "0/2A",
			Connection:     models.ConnectionConnected,
			PendingChanges: 3,
			InFlight:       1,
		},
		failed: []models.LocalChange{
			{ID: "c1", Table: "tasks", Operation: models.OperationUpdate, Error: "NOT NULL constraint failed"},
			{ID: "c2", Table: "projects", Operation: models.OperationDelete, Error: "rejected"},
		},
		poll: true,
	}
}

// ── snapshots ────────────────────────────────────────────────────────────────

func TestMonitor_SnapshotRendersStatus(t *testing.T) {
	m, _ := newTestMonitor(t)
	assert.Contains(t, m.View(), "Loading...")

	m, cmd := feed(m, liveSnapshot())

	assert.NotNil(t, cmd, "a polled snapshot schedules the next tick")
	view := m.View()
	assert.Contains(t, view, "live")
	assert.Contains(t, view, "client-1")
	assert.Contains(t, view, "0/2A")
	assert.Contains(t, view, "Pending:     3 (in flight 1)")
	assert.Contains(t, view, "Failed changes: 2")
	assert.Contains(t, view, "NOT NULL constraint failed")
}

func TestMonitor_SnapshotCommandQueriesAPI(t *testing.T) {
	m, api := newTestMonitor(t)
	api.EXPECT().Status(gomock.Any()).Return(models.EngineStatus{ClientID: "client-9"}, nil)
	api.EXPECT().FailedChanges(gomock.Any()).Return(nil, nil)

	msg := m.cmdSnapshot(false)()

	snap, ok := msg.(snapshotMsg)
	require.True(t, ok)
	assert.NoError(t, snap.err)
	assert.False(t, snap.poll)
	assert.Equal(t, "client-9", snap.status.ClientID)
}

func TestMonitor_SnapshotErrorKeepsPolling(t *testing.T) {
	m, _ := newTestMonitor(t)

	m, cmd := feed(m, snapshotMsg{poll: true, err: errors.New("dial tcp 127.0.0.1:7420: connection refused")})

	assert.NotNil(t, cmd)
	assert.Contains(t, m.View(), "control API is unreachable")
}

func TestMonitor_ManualSnapshotDoesNotSchedule(t *testing.T) {
	m, _ := newTestMonitor(t)
	snap := liveSnapshot()
	snap.poll = false

	_, cmd := feed(m, snap)

	assert.Nil(t, cmd)
}

// ── commands ─────────────────────────────────────────────────────────────────

func TestMonitor_ConnectKey(t *testing.T) {
	m, api := newTestMonitor(t)
	api.EXPECT().Connect(gomock.Any()).Return(nil)

	m, cmd := press(m, "c")
	require.NotNil(t, cmd)
	assert.True(t, m.busy)

	// a second command is ignored while the first runs
	_, again := press(m, "f")
	assert.Nil(t, again)

	done := cmd().(actionDoneMsg)
	assert.Equal(t, "connect", done.action)
	assert.NoError(t, done.err)

	m, _ = feed(m, done)
	assert.False(t, m.busy)
	assert.Equal(t, "connect done", m.notice)
}

func TestMonitor_CommandKeys(t *testing.T) {
	tests := []struct {
		key    string
		action string
		expect func(api *mock.MockControlAPI)
	}{
		{key: "d", action: "disconnect", expect: func(api *mock.MockControlAPI) { api.EXPECT().Disconnect(gomock.Any()).Return(nil) }},
		{key: "f", action: "flush", expect: func(api *mock.MockControlAPI) { api.EXPECT().Flush(gomock.Any()).Return(nil) }},
		{key: "t", action: "retry", expect: func(api *mock.MockControlAPI) { api.EXPECT().RetryFailed(gomock.Any()).Return(int64(2), nil) }},
	}

	for _, tt := range tests {
		t.Run(tt.action, func(t *testing.T) {
			m, api := newTestMonitor(t)
			tt.expect(api)

			_, cmd := press(m, tt.key)
			require.NotNil(t, cmd)

			done := cmd().(actionDoneMsg)
			assert.Equal(t, tt.action, done.action)
			assert.NoError(t, done.err)
		})
	}
}

func TestMonitor_CommandErrorShowsOverlay(t *testing.T) {
	m, _ := newTestMonitor(t)
	m.busy = true

	m, _ = feed(m, actionDoneMsg{action: "connect", err: errors.New("client unauthorized: bad token")})

	require.NotNil(t, m.overlay)
	assert.Contains(t, m.View(), "connect: client unauthorized: bad token")

	// other keys are swallowed by the overlay
	m, cmd := press(m, "c")
	assert.Nil(t, cmd)
	require.NotNil(t, m.overlay)

	m, _ = feed(m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Nil(t, m.overlay)
}

func TestMonitor_ResyncNeedsConfirmation(t *testing.T) {
	m, api := newTestMonitor(t)

	m, cmd := press(m, "x")
	assert.Nil(t, cmd)
	require.NotNil(t, m.confirm)
	assert.Contains(t, m.View(), "y yes")

	m, cmd = press(m, "n")
	assert.Nil(t, cmd)
	assert.Nil(t, m.confirm)

	api.EXPECT().Resync(gomock.Any()).Return(nil)
	m, _ = press(m, "x")
	m, cmd = press(m, "y")
	require.NotNil(t, cmd)
	assert.Nil(t, m.confirm)

	done := cmd().(actionDoneMsg)
	assert.Equal(t, "resync", done.action)
}

func TestMonitor_CopyClientID(t *testing.T) {
	m, _ := newTestMonitor(t)
	var copied string
	m.copy = func(s string) error {
		copied = s
		return nil
	}

	_, cmd := press(m, "i")
	assert.Nil(t, cmd, "nothing to copy before the first snapshot")

	m, _ = feed(m, liveSnapshot())
	m, cmd = press(m, "i")
	require.NotNil(t, cmd)

	m, _ = feed(m, cmd())
	assert.Equal(t, "client-1", copied)
	assert.Equal(t, "client id copied", m.notice)

	m, _ = feed(m, clearStatusMsg{})
	assert.Empty(t, m.notice)
}

func TestMonitor_Navigation(t *testing.T) {
	m, _ := newTestMonitor(t)
	m, _ = feed(m, liveSnapshot())

	m, _ = press(m, "j")
	assert.Equal(t, 1, m.idx)
	m, _ = press(m, "j")
	assert.Equal(t, 1, m.idx)
	m, _ = press(m, "k")
	assert.Equal(t, 0, m.idx)

	// shrinking list clamps the cursor
	m.idx = 1
	m, _ = feed(m, snapshotMsg{status: models.EngineStatus{State: models.SyncStateLive}})
	assert.Equal(t, 0, m.idx)
}

func TestMonitor_Quit(t *testing.T) {
	m, _ := newTestMonitor(t)

	_, cmd := press(m, "q")
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	_, cmd = feed(m, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestHumanizeControlAPIError(t *testing.T) {
	assert.Empty(t, humanizeControlAPIError(nil))
	assert.Equal(t, "boom", humanizeControlAPIError(errors.New("boom")))
	assert.Contains(t, humanizeControlAPIError(errors.New("Get: context deadline exceeded")), "unreachable")
	assert.Equal(t, "sync engine is not started yet",
		humanizeControlAPIError(fmt.Errorf("%w: not started", adapter.ErrServiceUnavailable)))
}

func TestFitText(t *testing.T) {
	assert.Equal(t, "abc", fitText("abc", 5))
	assert.Equal(t, "ab...", fitText("abcdefgh", 5))
	assert.Equal(t, "ab", fitText("abcdefgh", 2))
}
