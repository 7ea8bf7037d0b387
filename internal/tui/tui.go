// Package tui implements a terminal monitor for a running sync engine. It
// polls the engine's control API and exposes its connection commands as
// hot keys.
package tui

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-sync-engine/internal/adapter"
	"github.com/MKhiriev/go-sync-engine/internal/logger"
)

const defaultRefreshInterval = time.Second

type TUI struct {
	api     adapter.ControlAPI
	refresh time.Duration
	logger  *logger.Logger
}

// New returns a monitor polling api every refresh.
func New(api adapter.ControlAPI, refresh time.Duration, logger *logger.Logger) *TUI {
	if refresh <= 0 {
		refresh = defaultRefreshInterval
	}
	return &TUI{api: api, refresh: refresh, logger: logger}
}

// Run blocks until the user quits or ctx is cancelled.
func (t *TUI) Run(ctx context.Context) error {
	model := newMonitorModel(ctx, t.api, t.refresh)

	_, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil && errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	if err != nil {
		t.logger.Err(err).Msg("monitor stopped")
	}
	return err
}
