// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-sync-engine/internal/events"
	"github.com/MKhiriev/go-sync-engine/internal/logger"
	"github.com/MKhiriev/go-sync-engine/internal/mock"
	"github.com/MKhiriev/go-sync-engine/internal/store"
	"github.com/MKhiriev/go-sync-engine/internal/validators"
	"github.com/MKhiriev/go-sync-engine/models"
)

// sentLog records messages passed to the mocked connection.
type sentLog struct {
	mu   sync.Mutex
	msgs []*models.Message

	pauseType models.MessageType
	paused    chan struct{}
	resume    chan struct{}
}

func (l *sentLog) record(_ context.Context, msg *models.Message) error {
	l.mu.Lock()
	l.msgs = append(l.msgs, msg)
	hold := l.pauseType != "" && msg.Type == l.pauseType
	paused, resume := l.paused, l.resume
	if hold {
		l.pauseType = ""
	}
	l.mu.Unlock()

	if hold {
		close(paused)
		<-resume
	}
	return nil
}

// pause blocks the next send of typ until resume is called. paused is closed
// once that send is blocked.
func (l *sentLog) pause(typ models.MessageType) (paused <-chan struct{}, resume func()) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.pauseType = typ
	l.paused = make(chan struct{})
	l.resume = make(chan struct{})
	return l.paused, sync.OnceFunc(func() { close(l.resume) })
}

func (l *sentLog) all() []*models.Message {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]*models.Message(nil), l.msgs...)
}

type outgoingFixture struct {
	proc     *outgoingProcessor
	conn     *mock.MockConnectionManager
	storages *store.ClientStorages
	bus      *events.Bus
	sent     *sentLog
	clock    time.Time
}

func newOutgoingFixture(t *testing.T, connected bool) *outgoingFixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	conn := mock.NewMockConnectionManager(ctrl)
	storages := newTestStorages(t)
	bus := events.NewBus()
	t.Cleanup(bus.Close)

	f := &outgoingFixture{
		conn:     conn,
		storages: storages,
		bus:      bus,
		sent:     &sentLog{},
		clock:    time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}

	f.proc = NewOutgoingProcessor(storages.LocalChanges, conn, bus, func() string { return "client-1" },
		testSyncConfig(), logger.Nop()).(*outgoingProcessor)
	f.proc.now = func() time.Time {
		f.clock = f.clock.Add(time.Millisecond)
		return f.clock
	}
	t.Cleanup(f.proc.Close)

	conn.EXPECT().IsConnected().Return(connected).AnyTimes()
	conn.EXPECT().Send(gomock.Any(), gomock.Any()).DoAndReturn(f.sent.record).AnyTimes()

	return f
}

// ── TrackChange ──────────────────────────────────────────────────────────────

func TestOutgoing_TrackChange_Validation(t *testing.T) {
	f := newOutgoingFixture(t, false)
	f.proc.validator = validators.NewChangeValidator([]string{"tasks"}, "id")
	ctx := context.Background()

	_, err := f.proc.TrackChange(ctx, "tasks", "upsert", map[string]any{"id": "t1"}, nil)
	assert.ErrorIs(t, err, ErrInvalidOperation)

	_, err = f.proc.TrackChange(ctx, "secrets", models.OperationInsert, map[string]any{"id": "t1"}, nil)
	assert.ErrorIs(t, err, ErrTableNotSynced)

	_, err = f.proc.TrackChange(ctx, "tasks", models.OperationInsert, map[string]any{"title": "X"}, nil)
	assert.ErrorIs(t, err, ErrMissingEntityID)

	_, err = f.proc.TrackChange(ctx, "tasks", models.OperationDelete, map[string]any{}, nil)
	assert.ErrorIs(t, err, ErrMissingEntityID)
}

func TestOutgoing_TrackChange_StoresDiffOnly(t *testing.T) {
	f := newOutgoingFixture(t, false)
	ctx := context.Background()

	id, err := f.proc.TrackChange(ctx, "tasks", models.OperationUpdate,
		map[string]any{"id": "t1", "title": "new", "done": true},
		map[string]any{"id": "t1", "title": "old", "done": true})
	require.NoError(t, err)

	change, err := f.storages.LocalChanges.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"id": "t1", "title": "new"}, change.Data)
	assert.Equal(t, models.SyncStatusPending, change.Status)
}

func TestOutgoing_TrackChange_NoDiffIsNoop(t *testing.T) {
	f := newOutgoingFixture(t, false)
	ctx := context.Background()

	id, err := f.proc.TrackChange(ctx, "tasks", models.OperationUpdate,
		map[string]any{"id": "t1", "title": "same"},
		map[string]any{"id": "t1", "title": "same"})
	require.NoError(t, err)
	assert.Equal(t, "t1", id)

	count, err := f.proc.GetPendingChangesCount(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestOutgoing_TrackChange_PublishesPendingCount(t *testing.T) {
	f := newOutgoingFixture(t, false)
	sub := f.bus.Subscribe(4, events.TopicPendingChanges)

	_, err := f.proc.TrackChange(context.Background(), "tasks", models.OperationInsert, map[string]any{"id": "t1"}, nil)
	require.NoError(t, err)

	ev := receiveEvent(t, sub)
	assert.Equal(t, events.PendingChangesEvent{Count: 1}, ev.Payload)
}

// ── ProcessQueuedChanges ─────────────────────────────────────────────────────

func TestOutgoing_Process_InsertThenUpdateSendsOneInsert(t *testing.T) {
	f := newOutgoingFixture(t, true)
	ctx := context.Background()

	first, err := f.proc.TrackChange(ctx, "tasks", models.OperationInsert, map[string]any{"id": "t1", "title": "X"}, nil)
	require.NoError(t, err)
	_, err = f.proc.TrackChange(ctx, "tasks", models.OperationUpdate, map[string]any{"id": "t1", "title": "Y"}, nil)
	require.NoError(t, err)

	require.NoError(t, f.proc.ProcessQueuedChanges(ctx))

	sent := f.sent.all()
	require.Len(t, sent, 1)
	msg := sent[0]
	assert.Equal(t, models.MessageSendChanges, msg.Type)
	assert.Equal(t, "client-1", msg.ClientID)
	assert.NotEmpty(t, msg.MessageID)
	require.Len(t, msg.Changes, 1)
	assert.Equal(t, first, msg.Changes[0].ID)
	assert.Equal(t, models.OperationInsert, msg.Changes[0].Operation)
	assert.Equal(t, map[string]any{"id": "t1", "title": "Y"}, msg.Changes[0].Data)

	// the superseded record is gone and the sent one is in flight
	all, err := f.storages.LocalChanges.ListByStatus(ctx, models.SyncStatusPending, 0)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, first, all[0].ID)

	pending, err := f.proc.GetPendingChanges(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)

	inFlight := f.proc.GetInFlightChanges()
	require.Len(t, inFlight, 1)
	assert.Equal(t, first, inFlight[0].ChangeID)
	assert.Equal(t, msg.MessageID, inFlight[0].BatchID)
}

func TestOutgoing_Process_InsertUpdateDeleteSendsNothing(t *testing.T) {
	f := newOutgoingFixture(t, true)
	ctx := context.Background()

	first, err := f.proc.TrackChange(ctx, "tasks", models.OperationInsert, map[string]any{"id": "t1", "title": "X"}, nil)
	require.NoError(t, err)
	_, err = f.proc.TrackChange(ctx, "tasks", models.OperationUpdate, map[string]any{"id": "t1", "title": "Y"}, nil)
	require.NoError(t, err)
	_, err = f.proc.TrackChange(ctx, "tasks", models.OperationDelete, map[string]any{"id": "t1"}, nil)
	require.NoError(t, err)

	require.NoError(t, f.proc.ProcessQueuedChanges(ctx))

	assert.Empty(t, f.sent.all())

	change, err := f.storages.LocalChanges.Get(ctx, first)
	require.NoError(t, err)
	assert.Equal(t, models.SyncStatusProcessed, change.Status)

	count, err := f.proc.GetPendingChangesCount(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

// faultyQueue fails the first rewrite and every standalone status update.
type faultyQueue struct {
	store.LocalChangeRepository
	rewrites int
}

func (q *faultyQueue) Rewrite(ctx context.Context, updated []models.LocalChange, removedIDs, droppedIDs []string) error {
	q.rewrites++
	if q.rewrites == 1 {
		return errors.New("disk I/O error")
	}
	return q.LocalChangeRepository.Rewrite(ctx, updated, removedIDs, droppedIDs)
}

func (q *faultyQueue) MarkStatus(context.Context, []string, models.SyncStatus, string) (int64, error) {
	return 0, errors.New("disk I/O error")
}

func TestOutgoing_Process_FailedFoldNeverSendsVanishedEntity(t *testing.T) {
	ctrl := gomock.NewController(t)
	conn := mock.NewMockConnectionManager(ctrl)
	storages := newTestStorages(t)
	bus := events.NewBus()
	defer bus.Close()
	sent := &sentLog{}

	queue := &faultyQueue{LocalChangeRepository: storages.LocalChanges}
	proc := NewOutgoingProcessor(queue, conn, bus, func() string { return "c" }, testSyncConfig(), logger.Nop())
	defer proc.Close()
	ctx := context.Background()

	conn.EXPECT().IsConnected().Return(true).AnyTimes()
	conn.EXPECT().Send(gomock.Any(), gomock.Any()).DoAndReturn(sent.record).AnyTimes()

	_, err := proc.TrackChange(ctx, "tasks", models.OperationInsert, map[string]any{"id": "t1", "title": "X"}, nil)
	require.NoError(t, err)
	_, err = proc.TrackChange(ctx, "tasks", models.OperationDelete, map[string]any{"id": "t1"}, nil)
	require.NoError(t, err)

	assert.ErrorContains(t, proc.ProcessQueuedChanges(ctx), "disk I/O error")

	pending, err := storages.LocalChanges.ListByStatus(ctx, models.SyncStatusPending, 0)
	require.NoError(t, err)
	assert.Len(t, pending, 2, "a failed fold leaves the queue as it was")

	require.NoError(t, proc.ProcessQueuedChanges(ctx))

	assert.Empty(t, sent.all())
	count, err := proc.GetPendingChangesCount(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestOutgoing_Process_BatchesBySize(t *testing.T) {
	f := newOutgoingFixture(t, true)
	f.proc.batchSize = 2
	ctx := context.Background()

	for _, id := range []string{"t1", "t2", "t3", "t4", "t5"} {
		_, err := f.proc.TrackChange(ctx, "tasks", models.OperationInsert, map[string]any{"id": id}, nil)
		require.NoError(t, err)
	}

	require.NoError(t, f.proc.ProcessQueuedChanges(ctx))

	sent := f.sent.all()
	require.Len(t, sent, 3)
	assert.Len(t, sent[0].Changes, 2)
	assert.Len(t, sent[1].Changes, 2)
	assert.Len(t, sent[2].Changes, 1)
	assert.Equal(t, "t1", sent[0].Changes[0].Data["id"])
	assert.Equal(t, "t5", sent[2].Changes[0].Data["id"])
}

func TestOutgoing_Process_NotConnectedKeepsQueue(t *testing.T) {
	f := newOutgoingFixture(t, false)
	ctx := context.Background()

	_, err := f.proc.TrackChange(ctx, "tasks", models.OperationInsert, map[string]any{"id": "t1"}, nil)
	require.NoError(t, err)

	require.NoError(t, f.proc.ProcessQueuedChanges(ctx))

	assert.Empty(t, f.sent.all())
	pending, err := f.proc.GetPendingChanges(ctx)
	require.NoError(t, err)
	assert.Len(t, pending, 1)
}

func TestOutgoing_Process_SendFailureKeepsQueue(t *testing.T) {
	ctrl := gomock.NewController(t)
	conn := mock.NewMockConnectionManager(ctrl)
	storages := newTestStorages(t)
	bus := events.NewBus()
	defer bus.Close()

	proc := NewOutgoingProcessor(storages.LocalChanges, conn, bus, func() string { return "c" }, testSyncConfig(), logger.Nop())
	defer proc.Close()
	ctx := context.Background()

	conn.EXPECT().IsConnected().Return(true)
	conn.EXPECT().Send(gomock.Any(), gomock.Any()).Return(errors.New("broken pipe"))

	_, err := proc.TrackChange(ctx, "tasks", models.OperationInsert, map[string]any{"id": "t1"}, nil)
	require.NoError(t, err)

	assert.ErrorContains(t, proc.ProcessQueuedChanges(ctx), "broken pipe")
	assert.Empty(t, proc.GetInFlightChanges())

	pending, err := proc.GetPendingChanges(ctx)
	require.NoError(t, err)
	assert.Len(t, pending, 1)
}

// ── srv_changes_applied ──────────────────────────────────────────────────────

// sendThree queues three inserts and sends them as one batch.
func sendThree(t *testing.T, f *outgoingFixture) (*models.Message, []string) {
	t.Helper()
	ctx := context.Background()

	var ids []string
	for _, id := range []string{"t1", "t2", "t3"} {
		changeID, err := f.proc.TrackChange(ctx, "tasks", models.OperationInsert, map[string]any{"id": id}, nil)
		require.NoError(t, err)
		ids = append(ids, changeID)
	}
	require.NoError(t, f.proc.ProcessQueuedChanges(ctx))

	sent := f.sent.all()
	require.Len(t, sent, 1)
	return sent[0], ids
}

func TestOutgoing_ChangesApplied_Success(t *testing.T) {
	f := newOutgoingFixture(t, true)
	ctx := context.Background()
	batch, ids := sendThree(t, f)

	err := f.proc.HandleChangesApplied(ctx, &models.Message{
		Type:           models.MessageServerChangesApplied,
		InReplyTo:      batch.MessageID,
		AppliedChanges: ids,
		Success:        ptr(true),
	})
	require.NoError(t, err)

	processed, err := f.storages.LocalChanges.ListByStatus(ctx, models.SyncStatusProcessed, 0)
	require.NoError(t, err)
	assert.Len(t, processed, 3)
	assert.Empty(t, f.proc.GetInFlightChanges())
}

func TestOutgoing_ChangesApplied_UsesBatchWhenIDsMissing(t *testing.T) {
	f := newOutgoingFixture(t, true)
	ctx := context.Background()
	batch, _ := sendThree(t, f)

	require.NoError(t, f.proc.HandleChangesApplied(ctx, &models.Message{
		Type:      models.MessageServerChangesApplied,
		InReplyTo: batch.MessageID,
	}))

	count, err := f.storages.LocalChanges.CountByStatus(ctx, models.SyncStatusProcessed)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestOutgoing_ChangesApplied_FailureFailsWholeBatch(t *testing.T) {
	f := newOutgoingFixture(t, true)
	ctx := context.Background()
	batch, ids := sendThree(t, f)

	require.NoError(t, f.proc.HandleChangesApplied(ctx, &models.Message{
		Type:      models.MessageServerChangesApplied,
		InReplyTo: batch.MessageID,
		Success:   ptr(false),
		Error:     "schema mismatch",
	}))

	failed, err := f.proc.GetFailedChanges(ctx)
	require.NoError(t, err)
	require.Len(t, failed, 3)
	for _, c := range failed {
		assert.Equal(t, "schema mismatch", c.Error)
	}
	assert.ElementsMatch(t, ids, []string{failed[0].ID, failed[1].ID, failed[2].ID})

	pending, err := f.proc.GetPendingChanges(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestOutgoing_ChangesApplied_FailureNamesOffenders(t *testing.T) {
	f := newOutgoingFixture(t, true)
	ctx := context.Background()
	batch, ids := sendThree(t, f)

	require.NoError(t, f.proc.HandleChangesApplied(ctx, &models.Message{
		Type:          models.MessageServerChangesApplied,
		InReplyTo:     batch.MessageID,
		Success:       ptr(false),
		FailedChanges: []string{ids[1]},
		Error:         "constraint violation",
	}))

	failed, err := f.proc.GetFailedChanges(ctx)
	require.NoError(t, err)
	require.Len(t, failed, 1)
	assert.Equal(t, ids[1], failed[0].ID)

	pending, err := f.proc.GetPendingChanges(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, ids[0], pending[0].ID)
	assert.Equal(t, 1, pending[0].Attempts)
	assert.Equal(t, ids[2], pending[1].ID)
}

func TestOutgoing_ChangesApplied_LateReplyLeavesResentBatchAlone(t *testing.T) {
	f := newOutgoingFixture(t, true)
	ctx := context.Background()
	first, ids := sendThree(t, f)

	f.clock = f.clock.Add(2 * time.Minute)
	n, err := f.proc.RequeueExpired(ctx)
	require.NoError(t, err)
	require.Equal(t, 3, n)
	require.NoError(t, f.proc.ProcessQueuedChanges(ctx))

	sent := f.sent.all()
	require.Len(t, sent, 2)
	resent := sent[1]

	// the reply to the expired batch arrives after the resend
	require.NoError(t, f.proc.HandleChangesApplied(ctx, &models.Message{
		Type:           models.MessageServerChangesApplied,
		InReplyTo:      first.MessageID,
		AppliedChanges: []string{ids[0]},
		Success:        ptr(true),
	}))
	assert.Len(t, f.proc.GetInFlightChanges(), 3)

	require.NoError(t, f.proc.HandleChangesApplied(ctx, &models.Message{
		Type:      models.MessageServerChangesApplied,
		InReplyTo: resent.MessageID,
		Success:   ptr(false),
		Error:     "schema mismatch",
	}))

	failed, err := f.proc.GetFailedChanges(ctx)
	require.NoError(t, err)
	assert.Len(t, failed, 3)
	assert.Empty(t, f.proc.GetInFlightChanges())
}

// ── Requeue ──────────────────────────────────────────────────────────────────

func TestOutgoing_RequeueExpired_ReappearsInPending(t *testing.T) {
	f := newOutgoingFixture(t, true)
	ctx := context.Background()
	_, ids := sendThree(t, f)

	n, err := f.proc.RequeueExpired(ctx)
	require.NoError(t, err)
	assert.Zero(t, n, "nothing expires before the ack timeout")

	f.clock = f.clock.Add(2 * time.Minute)

	n, err = f.proc.RequeueExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	pending, err := f.proc.GetPendingChanges(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 3)
	assert.Equal(t, ids[0], pending[0].ID)
	assert.Equal(t, 1, pending[0].Attempts)
	assert.Empty(t, f.proc.GetInFlightChanges())
}

func TestOutgoing_RequeueInFlight(t *testing.T) {
	f := newOutgoingFixture(t, true)
	ctx := context.Background()
	sendThree(t, f)

	n, err := f.proc.RequeueInFlight(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	count, err := f.proc.GetPendingChangesCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	n, err = f.proc.RequeueInFlight(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

// ── Failed changes ───────────────────────────────────────────────────────────

func TestOutgoing_RetryFailedChanges(t *testing.T) {
	f := newOutgoingFixture(t, true)
	ctx := context.Background()
	batch, ids := sendThree(t, f)

	require.NoError(t, f.proc.HandleChangesApplied(ctx, &models.Message{
		InReplyTo: batch.MessageID,
		Success:   ptr(false),
		Error:     "rejected",
	}))

	n, err := f.proc.RetryFailedChanges(ctx, []string{ids[0], "unknown"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	n, err = f.proc.RetryFailedChanges(ctx, nil)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	pending, err := f.proc.GetPendingChanges(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 3)
	assert.Empty(t, pending[0].Error)
}

func TestOutgoing_ClearUnprocessedChanges(t *testing.T) {
	f := newOutgoingFixture(t, true)
	ctx := context.Background()
	sendThree(t, f)

	_, err := f.proc.TrackChange(ctx, "tasks", models.OperationInsert, map[string]any{"id": "t9"}, nil)
	require.NoError(t, err)

	removed, err := f.proc.ClearUnprocessedChanges(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 4, removed)
	assert.Empty(t, f.proc.GetInFlightChanges())

	count, err := f.proc.GetPendingChangesCount(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}
