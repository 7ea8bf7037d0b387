// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package connection

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/MKhiriev/go-sync-engine/internal/events"
	"github.com/MKhiriev/go-sync-engine/internal/logger"
	"github.com/MKhiriev/go-sync-engine/models"
	"github.com/gorilla/websocket"
)

// link is one open socket together with the channel that stops its
// keepalive loop.
type link struct {
	conn *websocket.Conn
	done chan struct{}
	once sync.Once
}

func (l *link) teardown() {
	l.once.Do(func() {
		close(l.done)
		_ = l.conn.Close()
	})
}

// Manager owns the single duplex socket to the sync server. It dials with
// the parameters returned by its HandshakeFunc, reconnects with exponential
// backoff after a non-clean close, and relays every inbound frame to the
// bus as a TopicConnectionMessage event.
type Manager struct {
	cfg       Config
	handshake HandshakeFunc
	dialer    *websocket.Dialer
	bus       *events.Bus
	logger    *logger.Logger

	lifeCtx    context.Context
	lifeCancel context.CancelFunc

	mu            sync.Mutex
	active        *link
	status        models.ConnectionStatus
	attempt       int
	dialing       bool
	stopped       bool
	closed        bool
	sessionCtx    context.Context
	sessionCancel context.CancelFunc
	timer         *time.Timer

	writeMu sync.Mutex
	wg      sync.WaitGroup
}

// NewManager creates a manager in the disconnected state. Nothing is dialed
// until Connect is called.
func NewManager(cfg Config, handshake HandshakeFunc, bus *events.Bus, log *logger.Logger) *Manager {
	cfg = cfg.withDefaults()
	lifeCtx, lifeCancel := context.WithCancel(context.Background())

	return &Manager{
		cfg:       cfg,
		handshake: handshake,
		dialer: &websocket.Dialer{
			Proxy:            http.ProxyFromEnvironment,
			HandshakeTimeout: cfg.HandshakeTimeout,
		},
		bus:        bus,
		logger:     log.WithComponent("connection"),
		lifeCtx:    lifeCtx,
		lifeCancel: lifeCancel,
		status:     models.ConnectionDisconnected,
		stopped:    true,
	}
}

// Connect starts a connection session and performs the first dial
// synchronously. Only authentication failures are returned; transport
// failures are reported as status events and retried in the background.
func (m *Manager) Connect(ctx context.Context) error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return ErrClosed
	}
	if m.active != nil || m.dialing {
		m.mu.Unlock()
		return nil
	}
	m.stopTimerLocked()
	if m.sessionCancel != nil {
		m.sessionCancel()
	}
	m.sessionCtx, m.sessionCancel = context.WithCancel(m.lifeCtx)
	m.stopped = false
	m.attempt = 0
	session := m.sessionCtx
	m.mu.Unlock()

	dialCtx, cancel := context.WithCancel(session)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	return m.dial(dialCtx)
}

// Disconnect closes the socket cleanly and suppresses any reconnection until
// the next Connect. Pending reconnect timers and in-flight dials are
// cancelled.
func (m *Manager) Disconnect() {
	m.mu.Lock()
	m.stopped = true
	m.stopTimerLocked()
	if m.sessionCancel != nil {
		m.sessionCancel()
	}
	l := m.active
	m.active = nil
	prev := m.status
	m.status = models.ConnectionDisconnected
	m.attempt = 0
	m.mu.Unlock()

	if l != nil {
		msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "client disconnect")
		_ = l.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(m.cfg.WriteTimeout))
		l.teardown()

		m.logger.Info().Msg("connection closed by client")
		m.publish(events.TopicConnectionClose, events.ConnectionCloseEvent{
			Code:  websocket.CloseNormalClosure,
			Clean: true,
		})
	}

	if prev != models.ConnectionDisconnected {
		m.publish(events.TopicConnectionStatus, events.ConnectionStatusEvent{
			Status: models.ConnectionDisconnected,
		})
	}
}

// NotifyOnline reports that the host regained network connectivity. Unless
// the session was stopped explicitly or by an authentication failure, the
// attempt counter is reset and a dial is started immediately.
func (m *Manager) NotifyOnline() {
	m.mu.Lock()
	if m.closed || m.stopped || m.active != nil || m.dialing {
		m.mu.Unlock()
		return
	}
	m.stopTimerLocked()
	m.attempt = 0
	session := m.sessionCtx
	m.mu.Unlock()

	m.logger.Info().Msg("network online, reconnecting now")
	go func() {
		_ = m.dial(session)
	}()
}

// Send writes msg to the socket as a JSON text frame.
func (m *Manager) Send(ctx context.Context, msg *models.Message) error {
	m.mu.Lock()
	l := m.active
	m.mu.Unlock()

	if l == nil {
		return ErrNotConnected
	}

	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEncodeMessage, err)
	}

	deadline := time.Now().Add(m.cfg.WriteTimeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	m.writeMu.Lock()
	_ = l.conn.SetWriteDeadline(deadline)
	err = l.conn.WriteMessage(websocket.TextMessage, data)
	m.writeMu.Unlock()

	if err != nil {
		m.logger.Err(err).Str("message_type", string(msg.Type)).Msg("send failed, dropping connection")
		// the read pump observes the closed socket and schedules a reconnect
		_ = l.conn.Close()
		return fmt.Errorf("%w: %w", ErrWriteMessage, err)
	}

	return nil
}

// IsConnected reports whether a socket is currently open.
func (m *Manager) IsConnected() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.active != nil
}

// Status returns the current connection status.
func (m *Manager) Status() models.ConnectionStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.status
}

// Attempt returns the number of consecutive failed reconnects.
func (m *Manager) Attempt() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.attempt
}

// Close disconnects and waits for the socket goroutines to exit. The manager
// cannot be reused afterwards.
func (m *Manager) Close() {
	m.Disconnect()

	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()

	m.lifeCancel()
	m.wg.Wait()
}

func (m *Manager) dial(ctx context.Context) error {
	attempt, ok := m.beginDial()
	if !ok {
		return nil
	}
	m.publish(events.TopicConnectionStatus, events.ConnectionStatusEvent{
		Status:  models.ConnectionConnecting,
		Attempt: attempt,
	})

	conn, params, err := m.open(ctx)
	if err != nil {
		m.endDial()
		if errors.Is(err, ErrAuthentication) || errors.Is(err, ErrInvalidURL) {
			return m.fail(err)
		}
		m.logger.Warn().Err(err).Int("attempt", attempt).Msg("dial failed")
		m.scheduleReconnect(err)
		return nil
	}

	m.mu.Lock()
	m.dialing = false
	if m.closed || m.stopped {
		m.mu.Unlock()
		_ = conn.Close()
		return nil
	}
	l := &link{conn: conn, done: make(chan struct{})}
	m.active = l
	m.attempt = 0
	m.status = models.ConnectionConnected
	m.mu.Unlock()

	m.keepalive(conn)

	m.logger.Info().
		Str("client_id", params.ClientID).
		Str("lsn", params.LSN.String()).
		Msg("connection established")

	m.publish(events.TopicConnectionStatus, events.ConnectionStatusEvent{
		Status: models.ConnectionConnected,
	})
	m.publish(events.TopicConnectionOpen, events.ConnectionOpenEvent{
		ClientID: params.ClientID,
		LSN:      params.LSN,
	})

	// pumps start after the open event so subscribers see it before any
	// inbound message
	m.wg.Add(2)
	go m.readPump(l)
	go m.pingLoop(l)

	return nil
}

// open resolves the handshake parameters and dials. It does not touch the
// manager state.
func (m *Manager) open(ctx context.Context) (*websocket.Conn, Params, error) {
	params, err := m.handshake(ctx)
	if err != nil {
		return nil, Params{}, fmt.Errorf("%w: %w", ErrAuthentication, err)
	}

	target, err := buildURL(m.cfg.URL, params)
	if err != nil {
		return nil, Params{}, err
	}

	header := http.Header{}
	if params.Token != "" {
		header.Set("Authorization", "Bearer "+params.Token)
	}

	dialCtx, cancel := context.WithTimeout(ctx, m.cfg.HandshakeTimeout)
	defer cancel()

	conn, resp, err := m.dialer.DialContext(dialCtx, target, header)
	if err != nil {
		if resp != nil && (resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden) {
			return nil, Params{}, fmt.Errorf("%w: server responded with %d", ErrAuthentication, resp.StatusCode)
		}
		return nil, Params{}, err
	}

	return conn, params, nil
}

func (m *Manager) keepalive(conn *websocket.Conn) {
	pongWait := 2 * m.cfg.PingInterval
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
}

func (m *Manager) readPump(l *link) {
	defer m.wg.Done()

	pongWait := 2 * m.cfg.PingInterval
	for {
		_, data, err := l.conn.ReadMessage()
		if err != nil {
			m.handleClose(l, err)
			return
		}
		_ = l.conn.SetReadDeadline(time.Now().Add(pongWait))

		var msg models.Message
		if err := json.Unmarshal(data, &msg); err != nil {
			m.logger.Warn().Err(err).Int("size", len(data)).Msg("dropping undecodable frame")
			continue
		}

		m.publish(events.TopicConnectionMessage, &msg)
	}
}

func (m *Manager) pingLoop(l *link) {
	defer m.wg.Done()

	ticker := time.NewTicker(m.cfg.PingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-l.done:
			return
		case <-m.lifeCtx.Done():
			return
		case <-ticker.C:
			err := l.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(m.cfg.WriteTimeout))
			if err != nil {
				m.logger.Debug().Err(err).Msg("ping failed")
				return
			}
		}
	}
}

// handleClose runs when the read pump observes a closed socket. Sockets
// already detached by Disconnect are ignored.
func (m *Manager) handleClose(l *link, cause error) {
	m.mu.Lock()
	if m.active != l {
		m.mu.Unlock()
		l.teardown()
		return
	}
	m.active = nil
	m.status = models.ConnectionDisconnected
	m.mu.Unlock()

	l.teardown()

	code := websocket.CloseAbnormalClosure
	var closeErr *websocket.CloseError
	if errors.As(cause, &closeErr) {
		code = closeErr.Code
	}

	m.logger.Warn().Err(cause).Int("code", code).Msg("connection lost")
	m.publish(events.TopicConnectionClose, events.ConnectionCloseEvent{
		Code: code,
		Err:  cause,
	})
	m.publish(events.TopicConnectionStatus, events.ConnectionStatusEvent{
		Status: models.ConnectionDisconnected,
		Err:    cause,
	})

	m.scheduleReconnect(cause)
}

func (m *Manager) scheduleReconnect(cause error) {
	m.mu.Lock()
	if m.closed || m.stopped {
		m.mu.Unlock()
		return
	}

	if m.attempt >= m.cfg.MaxReconnectAttempts {
		m.status = models.ConnectionFailed
		attempts := m.attempt
		m.mu.Unlock()

		m.logger.Error().Err(cause).Int("attempts", attempts).Msg("giving up reconnecting")
		m.publish(events.TopicConnectionStatus, events.ConnectionStatusEvent{
			Status:  models.ConnectionFailed,
			Attempt: attempts,
			Err:     cause,
		})
		m.publish(events.TopicConnectionGiveUp, events.ConnectionGiveUpEvent{
			Attempts: attempts,
			Err:      cause,
		})
		return
	}

	delay := m.backoff(m.attempt)
	m.attempt++
	attempt := m.attempt
	m.status = models.ConnectionReconnecting
	session := m.sessionCtx
	m.stopTimerLocked()
	m.timer = time.AfterFunc(delay, func() {
		if session.Err() != nil {
			return
		}
		_ = m.dial(session)
	})
	m.mu.Unlock()

	m.logger.Info().Int("attempt", attempt).Dur("delay", delay).Msg("reconnect scheduled")
	m.publish(events.TopicConnectionStatus, events.ConnectionStatusEvent{
		Status:  models.ConnectionReconnecting,
		Attempt: attempt,
		Err:     cause,
	})
}

// fail stops the session after an unrecoverable dial error. NotifyOnline
// does not revive it; only a new Connect does.
func (m *Manager) fail(err error) error {
	m.mu.Lock()
	m.status = models.ConnectionFailed
	m.stopped = true
	m.stopTimerLocked()
	attempts := m.attempt
	m.mu.Unlock()

	m.logger.Err(err).Msg("connection rejected")
	m.publish(events.TopicConnectionStatus, events.ConnectionStatusEvent{
		Status:  models.ConnectionFailed,
		Attempt: attempts,
		Err:     err,
	})
	m.publish(events.TopicConnectionGiveUp, events.ConnectionGiveUpEvent{
		Attempts:   attempts,
		AuthFailed: errors.Is(err, ErrAuthentication),
		Err:        err,
	})
	m.publish(events.TopicSyncError, events.ErrorEvent{
		Code:    "connection_rejected",
		Message: err.Error(),
		Err:     err,
	})

	return err
}

func (m *Manager) beginDial() (int, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed || m.stopped || m.active != nil || m.dialing {
		return 0, false
	}
	m.dialing = true
	m.status = models.ConnectionConnecting
	return m.attempt, true
}

func (m *Manager) endDial() {
	m.mu.Lock()
	m.dialing = false
	m.mu.Unlock()
}

func (m *Manager) stopTimerLocked() {
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
}

// backoff returns base * 1.5^attempt.
func (m *Manager) backoff(attempt int) time.Duration {
	return time.Duration(float64(m.cfg.ReconnectBaseDelay) * math.Pow(reconnectMultiplier, float64(attempt)))
}

func (m *Manager) publish(topic events.Topic, payload any) {
	m.bus.Publish(m.lifeCtx, topic, payload)
}

func buildURL(raw string, p Params) (string, error) {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "", fmt.Errorf("%w: %q", ErrInvalidURL, raw)
	}

	switch u.Scheme {
	case "ws", "wss":
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	default:
		return "", fmt.Errorf("%w: unsupported scheme %q", ErrInvalidURL, u.Scheme)
	}

	q := u.Query()
	q.Set("clientId", p.ClientID)
	q.Set("lsn", p.LSN.String())
	u.RawQuery = q.Encode()

	return u.String(), nil
}
