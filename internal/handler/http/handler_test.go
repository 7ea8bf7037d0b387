// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-sync-engine/internal/app"
	"github.com/MKhiriev/go-sync-engine/internal/logger"
	"github.com/MKhiriev/go-sync-engine/internal/mock"
	"github.com/MKhiriev/go-sync-engine/internal/service"
	"github.com/MKhiriev/go-sync-engine/internal/store"
	"github.com/MKhiriev/go-sync-engine/models"
)

type handlerMocks struct {
	coordinator *mock.MockSyncCoordinator
	outgoing    *mock.MockOutgoingProcessor
	applier     *mock.MockChangeApplier
	router      http.Handler
}

func newHandlerMocks(t *testing.T) *handlerMocks {
	t.Helper()

	ctrl := gomock.NewController(t)
	m := &handlerMocks{
		coordinator: mock.NewMockSyncCoordinator(ctrl),
		outgoing:    mock.NewMockOutgoingProcessor(ctrl),
		applier:     mock.NewMockChangeApplier(ctrl),
	}

	h := NewHandler(&service.ClientServices{
		Coordinator: m.coordinator,
		Outgoing:    m.outgoing,
		Applier:     m.applier,
	}, "1.4.0", logger.Nop())
	m.router = h.Init()

	return m
}

func (m *handlerMocks) do(method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	m.router.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), rr.Body.String())
	return v
}

// ─────────────────────────────────────────────
// status / connection control
// ─────────────────────────────────────────────

func TestGetVersion(t *testing.T) {
	m := newHandlerMocks(t)

	rr := m.do(http.MethodGet, "/api/version", "")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "1.4.0", rr.Body.String())
	assert.NotEmpty(t, rr.Header().Get(traceIDHeader))
}

func TestGetStatus(t *testing.T) {
	m := newHandlerMocks(t)
	synced := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	m.coordinator.EXPECT().Status(gomock.Any()).Return(models.EngineStatus{
		State:          models.SyncStateLive,
		ClientID:       "client-1",
		LSN:            "0/1F",
		Connection:     models.ConnectionConnected,
		PendingChanges: 3,
		InFlight:       1,
		LastSyncTime:   &synced,
	}, nil)

	rr := m.do(http.MethodGet, "/api/sync/status", "")

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{
		"state": "live",
		"clientId": "client-1",
		"lsn": "0/1F",
		"connection": "connected",
		"pendingChanges": 3,
		"inFlight": 1,
		"lastSyncTime": "2026-05-01T10:00:00Z"
	}`, rr.Body.String())
}

func TestGetStatus_Error(t *testing.T) {
	m := newHandlerMocks(t)
	m.coordinator.EXPECT().Status(gomock.Any()).Return(models.EngineStatus{}, store.ErrExecutingQuery)

	rr := m.do(http.MethodGet, "/api/sync/status", "")

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestConnectionControl(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		setup      func(m *handlerMocks)
		wantStatus int
	}{
		{
			name:       "connect",
			path:       "/api/sync/connect",
			setup:      func(m *handlerMocks) { m.coordinator.EXPECT().Connect(gomock.Any()).Return(nil) },
			wantStatus: http.StatusAccepted,
		},
		{
			name: "connect rejected credentials",
			path: "/api/sync/connect",
			setup: func(m *handlerMocks) {
				m.coordinator.EXPECT().Connect(gomock.Any()).Return(fmt.Errorf("%w: 401", service.ErrAuthentication))
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "connect before start",
			path:       "/api/sync/connect",
			setup:      func(m *handlerMocks) { m.coordinator.EXPECT().Connect(gomock.Any()).Return(service.ErrNotStarted) },
			wantStatus: http.StatusServiceUnavailable,
		},
		{
			name:       "disconnect",
			path:       "/api/sync/disconnect",
			setup:      func(m *handlerMocks) { m.coordinator.EXPECT().Disconnect(gomock.Any()).Return(nil) },
			wantStatus: http.StatusNoContent,
		},
		{
			name:       "resync",
			path:       "/api/sync/resync",
			setup:      func(m *handlerMocks) { m.coordinator.EXPECT().Resync(gomock.Any()).Return(nil) },
			wantStatus: http.StatusAccepted,
		},
		{
			name:       "flush",
			path:       "/api/sync/flush",
			setup:      func(m *handlerMocks) { m.outgoing.EXPECT().ProcessQueuedChanges(gomock.Any()).Return(nil) },
			wantStatus: http.StatusAccepted,
		},
		{
			name: "flush failure",
			path: "/api/sync/flush",
			setup: func(m *handlerMocks) {
				m.outgoing.EXPECT().ProcessQueuedChanges(gomock.Any()).Return(assert.AnError)
			},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newHandlerMocks(t)
			tt.setup(m)

			rr := m.do(http.MethodPost, tt.path, "")

			assert.Equal(t, tt.wantStatus, rr.Code)
		})
	}
}

// ─────────────────────────────────────────────
// change queue
// ─────────────────────────────────────────────

func TestTrackChange(t *testing.T) {
	m := newHandlerMocks(t)
	m.outgoing.EXPECT().
		TrackChange(gomock.Any(), "tasks", models.OperationUpdate,
			map[string]any{"id": "t1", "title": "new"},
			map[string]any{"id": "t1", "title": "old"}).
		Return("chg-1", nil)

	rr := m.do(http.MethodPost, "/api/sync/changes", `{
		"table": "tasks",
		"operation": "update",
		"data": {"id": "t1", "title": "new"},
		"previous": {"id": "t1", "title": "old"}
	}`)

	require.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "chg-1", decode[models.TrackChangeResponse](t, rr).ChangeID)
}

func TestTrackChange_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
	}{
		{name: "invalid json", body: `{"table":`, wantStatus: http.StatusBadRequest},
		{name: "missing id", body: `{"table":"tasks","operation":"insert","data":{}}`, err: service.ErrMissingEntityID, wantStatus: http.StatusBadRequest},
		{name: "table not synced", body: `{"table":"x","operation":"insert","data":{"id":1}}`, err: service.ErrTableNotSynced, wantStatus: http.StatusBadRequest},
		{name: "store failure", body: `{"table":"tasks","operation":"insert","data":{"id":1}}`, err: store.ErrExecutingStatement, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newHandlerMocks(t)
			if tt.err != nil {
				m.outgoing.EXPECT().TrackChange(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return("", fmt.Errorf("wrapped: %w", tt.err))
			}

			rr := m.do(http.MethodPost, "/api/sync/changes", tt.body)

			assert.Equal(t, tt.wantStatus, rr.Code)
		})
	}
}

func TestGetPendingChanges(t *testing.T) {
	m := newHandlerMocks(t)
	created := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	m.outgoing.EXPECT().GetPendingChanges(gomock.Any()).Return([]models.LocalChange{
		{ID: "c1", Table: "tasks", Operation: models.OperationInsert, Data: map[string]any{"id": "t1"}, CreatedAt: created, UpdatedAt: created, Status: models.SyncStatusPending},
	}, nil)
	m.outgoing.EXPECT().GetInFlightChanges().Return([]models.InFlightChange{
		{ChangeID: "c0", BatchID: "b1", SentAt: created},
	})

	rr := m.do(http.MethodGet, "/api/sync/changes/pending", "")

	require.Equal(t, http.StatusOK, rr.Code)
	resp := decode[models.ChangesResponse](t, rr)
	assert.Equal(t, 1, resp.Length)
	require.Len(t, resp.Changes, 1)
	assert.Equal(t, "c1", resp.Changes[0].ID)
	require.Len(t, resp.InFlight, 1)
	assert.Equal(t, "b1", resp.InFlight[0].BatchID)
}

func TestGetFailedChanges_Empty(t *testing.T) {
	m := newHandlerMocks(t)
	m.outgoing.EXPECT().GetFailedChanges(gomock.Any()).Return(nil, nil)

	rr := m.do(http.MethodGet, "/api/sync/changes/failed", "")

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"changes": [], "length": 0}`, rr.Body.String())
}

func TestRetryFailedChanges(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantIDs []string
	}{
		{name: "selected ids", body: `{"ids":["c1","c2"]}`, wantIDs: []string{"c1", "c2"}},
		{name: "empty body retries all", body: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newHandlerMocks(t)
			m.outgoing.EXPECT().RetryFailedChanges(gomock.Any(), tt.wantIDs).Return(int64(2), nil)

			rr := m.do(http.MethodPost, "/api/sync/changes/retry", tt.body)

			require.Equal(t, http.StatusOK, rr.Code)
			assert.EqualValues(t, 2, decode[models.CountResponse](t, rr).Count)
		})
	}
}

func TestRetryFailedChanges_InvalidJSON(t *testing.T) {
	m := newHandlerMocks(t)

	rr := m.do(http.MethodPost, "/api/sync/changes/retry", `[1,2`)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, app.MsgInvalidJSON, strings.TrimSpace(rr.Body.String()))
}

func TestClearChanges(t *testing.T) {
	m := newHandlerMocks(t)
	m.outgoing.EXPECT().ClearUnprocessedChanges(gomock.Any()).Return(int64(7), nil)

	rr := m.do(http.MethodDelete, "/api/sync/changes", "")

	require.Equal(t, http.StatusOK, rr.Code)
	assert.EqualValues(t, 7, decode[models.CountResponse](t, rr).Count)
}

// ─────────────────────────────────────────────
// incoming audit
// ─────────────────────────────────────────────

func TestGetFailedServerChanges(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantLimit  int
		wantStatus int
	}{
		{name: "default limit", wantLimit: defaultFailedServerChangesLimit, wantStatus: http.StatusOK},
		{name: "explicit limit", query: "?limit=5", wantLimit: 5, wantStatus: http.StatusOK},
		{name: "bad limit", query: "?limit=many", wantStatus: http.StatusBadRequest},
		{name: "negative limit", query: "?limit=-1", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newHandlerMocks(t)
			if tt.wantStatus == http.StatusOK {
				m.applier.EXPECT().GetFailedServerChanges(gomock.Any(), tt.wantLimit).Return([]models.ServerChangeRecord{
					{ID: "r1", BatchID: "b1", EntityType: "tasks", EntityID: "t1", Operation: models.OperationInsert, Error: "NOT NULL constraint failed"},
				}, nil)
			}

			rr := m.do(http.MethodGet, "/api/sync/server-changes/failed"+tt.query, "")

			require.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantStatus == http.StatusOK {
				resp := decode[models.ServerChangesResponse](t, rr)
				assert.Equal(t, 1, resp.Length)
				assert.Equal(t, "b1", resp.Records[0].BatchID)
			}
		})
	}
}

// ─────────────────────────────────────────────
// routing
// ─────────────────────────────────────────────

func TestRoutes_WrongMethodIsNotFound(t *testing.T) {
	m := newHandlerMocks(t)

	for _, tc := range []struct{ method, path string }{
		{http.MethodPost, "/api/sync/status"},
		{http.MethodGet, "/api/sync/connect"},
		{http.MethodPut, "/api/sync/changes"},
		{http.MethodGet, "/api/unknown"},
	} {
		rr := m.do(tc.method, tc.path, "")
		assert.Equal(t, http.StatusNotFound, rr.Code, "%s %s", tc.method, tc.path)
	}
}

func TestStatusFromError(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, statusFromError(fmt.Errorf("x: %w", service.ErrInvalidOperation)))
	assert.Equal(t, http.StatusNotFound, statusFromError(store.ErrLocalChangeNotFound))
	assert.Equal(t, http.StatusInternalServerError, statusFromError(assert.AnError))
}
