// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/go-sync-engine/internal/config"
	"github.com/MKhiriev/go-sync-engine/internal/events"
	"github.com/MKhiriev/go-sync-engine/internal/logger"
	"github.com/MKhiriev/go-sync-engine/internal/store"
	"github.com/MKhiriev/go-sync-engine/internal/utils"
	"github.com/MKhiriev/go-sync-engine/internal/validators"
	"github.com/MKhiriev/go-sync-engine/models"
)

const (
	defaultBatchSize     = 50
	defaultBatchDebounce = 50 * time.Millisecond
	defaultAckTimeout    = 5 * time.Minute
)

const serverRejectedChange = "rejected by server"

type outgoingProcessor struct {
	changes  store.LocalChangeRepository
	conn     ConnectionManager
	bus      *events.Bus
	clientID func() string

	batchSize  int
	debounce   time.Duration
	ackTimeout time.Duration
	idField    string
	validator  validators.Validator

	now   func() time.Time
	newID func() string

	// sendMu allows one fold-and-send pass at a time.
	sendMu sync.Mutex

	mu       sync.Mutex
	inFlight map[string]models.InFlightChange
	batches  map[string][]string
	timer    *time.Timer
	closed   bool

	logger *logger.Logger
}

// NewOutgoingProcessor creates an [OutgoingProcessor] over the local change
// queue. clientID is read for every outgoing message so a resync takes
// effect without rebuilding the processor.
func NewOutgoingProcessor(
	changes store.LocalChangeRepository,
	conn ConnectionManager,
	bus *events.Bus,
	clientID func() string,
	cfg config.ClientSync,
	logger *logger.Logger,
) OutgoingProcessor {
	p := &outgoingProcessor{
		changes:    changes,
		conn:       conn,
		bus:        bus,
		clientID:   clientID,
		batchSize:  cfg.BatchSize,
		debounce:   cfg.BatchDebounce,
		ackTimeout: cfg.AckTimeout,
		idField:    cfg.EntityIDField,
		now:        time.Now,
		newID:      utils.NewID,
		inFlight:   make(map[string]models.InFlightChange),
		batches:    make(map[string][]string),
		logger:     logger.WithComponent("outgoing"),
	}

	if p.batchSize <= 0 {
		p.batchSize = defaultBatchSize
	}
	if p.debounce <= 0 {
		p.debounce = defaultBatchDebounce
	}
	if p.ackTimeout <= 0 {
		p.ackTimeout = defaultAckTimeout
	}
	if p.idField == "" {
		p.idField = models.DefaultEntityIDField
	}
	p.validator = validators.NewChangeValidator(cfg.Tables, p.idField)

	return p
}

func (p *outgoingProcessor) TrackChange(ctx context.Context, table string, op models.Operation, data, previous map[string]any) (string, error) {
	candidate := models.LocalChange{Table: table, Operation: op, Data: data}
	err := p.validator.Validate(ctx, candidate, validators.FieldOperation, validators.FieldTable, validators.FieldEntityID)
	if err != nil {
		return "", err
	}

	entityID := models.FormatEntityID(data[p.idField])

	data = maps.Clone(data)
	if op == models.OperationUpdate && previous != nil {
		diff := diffFields(data, previous, p.idField)
		if len(diff) == 0 {
			p.logger.Debug().Str("table", table).Str("entity_id", entityID).Msg("update changes nothing, skipped")
			return entityID, nil
		}
		diff[p.idField] = data[p.idField]
		data = diff
	}

	now := p.now().UTC()
	change := models.LocalChange{
		ID:        p.newID(),
		Table:     table,
		Operation: op,
		Data:      data,
		CreatedAt: now,
		UpdatedAt: now,
		Status:    models.SyncStatusPending,
	}
	if err := p.changes.Create(ctx, change); err != nil {
		return "", fmt.Errorf("track change: %w", err)
	}

	p.logger.Debug().
		Str("change_id", change.ID).
		Str("table", table).
		Str("operation", string(op)).
		Str("entity_id", entityID).
		Msg("local change tracked")

	p.schedule()
	p.publishPending(ctx)

	return change.ID, nil
}

// diffFields returns the fields of data that are missing from previous or
// differ from it.
func diffFields(data, previous map[string]any, idField string) map[string]any {
	diff := make(map[string]any)
	for k, v := range data {
		if k == idField {
			continue
		}
		old, ok := previous[k]
		if !ok || !reflect.DeepEqual(old, v) {
			diff[k] = v
		}
	}
	return diff
}

func (p *outgoingProcessor) schedule() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed || p.timer != nil {
		return
	}
	p.timer = time.AfterFunc(p.debounce, func() {
		p.mu.Lock()
		p.timer = nil
		p.mu.Unlock()

		if err := p.ProcessQueuedChanges(context.Background()); err != nil {
			p.logger.Warn().Err(err).Msg("queued changes not sent")
		}
	})
}

func (p *outgoingProcessor) ProcessQueuedChanges(ctx context.Context) error {
	p.sendMu.Lock()
	defer p.sendMu.Unlock()

	if !p.conn.IsConnected() {
		p.logger.Debug().Msg("not connected, changes stay queued")
		return nil
	}

	queued, err := p.GetPendingChanges(ctx)
	if err != nil {
		return err
	}
	if len(queued) == 0 {
		return nil
	}

	folded := optimizeChanges(queued, p.idField)
	if err = p.changes.Rewrite(ctx, folded.Updated, folded.Removed, folded.Dropped); err != nil {
		return fmt.Errorf("store folded queue: %w", err)
	}

	p.logger.Debug().
		Int("queued", len(queued)).
		Int("send", len(folded.Send)).
		Int("dropped", len(folded.Dropped)).
		Msg("queue folded")

	defer p.publishPending(ctx)

	for batch := range slices.Chunk(folded.Send, p.batchSize) {
		if err = p.sendBatch(ctx, batch); err != nil {
			return err
		}
	}

	return nil
}

func (p *outgoingProcessor) sendBatch(ctx context.Context, batch []models.LocalChange) error {
	msg := &models.Message{
		Type:      models.MessageSendChanges,
		ClientID:  p.clientID(),
		MessageID: p.newID(),
		Timestamp: p.now().UTC(),
		Changes:   make([]models.TableChange, 0, len(batch)),
	}

	ids := make([]string, 0, len(batch))
	for _, change := range batch {
		msg.Changes = append(msg.Changes, change.ToTableChange())
		ids = append(ids, change.ID)
	}

	sentAt := p.now()
	p.mu.Lock()
	for _, id := range ids {
		p.inFlight[id] = models.InFlightChange{ChangeID: id, BatchID: msg.MessageID, SentAt: sentAt}
	}
	p.batches[msg.MessageID] = ids
	p.mu.Unlock()

	if err := p.conn.Send(ctx, msg); err != nil {
		p.mu.Lock()
		p.forgetLocked(ids)
		p.mu.Unlock()
		return fmt.Errorf("send changes: %w", err)
	}

	p.logger.Info().
		Str("message_id", msg.MessageID).
		Int("changes", len(ids)).
		Msg("changes sent")
	return nil
}

func (p *outgoingProcessor) GetPendingChanges(ctx context.Context) ([]models.LocalChange, error) {
	changes, err := p.changes.ListByStatus(ctx, models.SyncStatusPending, 0)
	if err != nil {
		return nil, fmt.Errorf("list pending changes: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	return slices.DeleteFunc(changes, func(c models.LocalChange) bool {
		_, sent := p.inFlight[c.ID]
		return sent
	}), nil
}

func (p *outgoingProcessor) GetPendingChangesCount(ctx context.Context) (int, error) {
	count, err := p.changes.CountByStatus(ctx, models.SyncStatusPending)
	if err != nil {
		return 0, fmt.Errorf("count pending changes: %w", err)
	}

	p.mu.Lock()
	count -= len(p.inFlight)
	p.mu.Unlock()

	return max(count, 0), nil
}

func (p *outgoingProcessor) ClearUnprocessedChanges(ctx context.Context) (int64, error) {
	p.sendMu.Lock()
	defer p.sendMu.Unlock()

	removed, err := p.changes.DeleteByStatus(ctx, models.SyncStatusPending, models.SyncStatusFailed)
	if err != nil {
		return 0, fmt.Errorf("clear unprocessed changes: %w", err)
	}

	p.mu.Lock()
	clear(p.inFlight)
	clear(p.batches)
	p.mu.Unlock()

	p.logger.Info().Int64("removed", removed).Msg("unprocessed changes cleared")
	p.publishPending(ctx)

	return removed, nil
}

func (p *outgoingProcessor) GetFailedChanges(ctx context.Context) ([]models.LocalChange, error) {
	changes, err := p.changes.ListByStatus(ctx, models.SyncStatusFailed, 0)
	if err != nil {
		return nil, fmt.Errorf("list failed changes: %w", err)
	}
	return changes, nil
}

func (p *outgoingProcessor) RetryFailedChanges(ctx context.Context, ids []string) (int64, error) {
	var (
		failed []models.LocalChange
		err    error
	)
	if len(ids) == 0 {
		failed, err = p.changes.ListByStatus(ctx, models.SyncStatusFailed, 0)
	} else {
		failed, err = p.changes.ListByIDs(ctx, ids)
	}
	if err != nil {
		return 0, fmt.Errorf("load failed changes: %w", err)
	}

	retry := make([]string, 0, len(failed))
	for _, change := range failed {
		if change.Status == models.SyncStatusFailed {
			retry = append(retry, change.ID)
		}
	}
	if len(retry) == 0 {
		return 0, nil
	}

	n, err := p.changes.MarkStatus(ctx, retry, models.SyncStatusPending, "")
	if err != nil {
		return 0, fmt.Errorf("retry failed changes: %w", err)
	}

	p.logger.Info().Int64("changes", n).Msg("failed changes requeued")
	p.schedule()
	p.publishPending(ctx)

	return n, nil
}

func (p *outgoingProcessor) GetInFlightChanges() []models.InFlightChange {
	p.mu.Lock()
	out := slices.Collect(maps.Values(p.inFlight))
	p.mu.Unlock()

	slices.SortFunc(out, func(a, b models.InFlightChange) int {
		if c := a.SentAt.Compare(b.SentAt); c != 0 {
			return c
		}
		return strings.Compare(a.ChangeID, b.ChangeID)
	})
	return out
}

func (p *outgoingProcessor) HandleChangesReceived(_ context.Context, msg *models.Message) error {
	p.logger.Debug().
		Str("in_reply_to", msg.InReplyTo).
		Int("changes", len(msg.ChangeIDs)).
		Msg("server received changes")
	return nil
}

func (p *outgoingProcessor) HandleChangesApplied(ctx context.Context, msg *models.Message) error {
	p.mu.Lock()
	ids := slices.Concat(p.batches[msg.InReplyTo], p.ownedLocked(msg.InReplyTo, msg.AppliedChanges))
	failed := p.ownedLocked(msg.InReplyTo, msg.FailedChanges)
	p.mu.Unlock()
	slices.Sort(ids)
	ids = slices.Compact(ids)
	if len(ids) == 0 {
		p.logger.Warn().Str("in_reply_to", msg.InReplyTo).Msg("applied notice for unknown batch")
		return nil
	}

	if !msg.Succeeded() && len(msg.FailedChanges) == 0 {
		failed = ids
	}
	failedSet := make(map[string]struct{}, len(failed))
	for _, id := range failed {
		failedSet[id] = struct{}{}
	}
	var rest []string
	for _, id := range ids {
		if _, ok := failedSet[id]; !ok {
			rest = append(rest, id)
		}
	}

	p.mu.Lock()
	p.forgetLocked(ids)
	p.forgetLocked(failed)
	p.mu.Unlock()

	defer p.publishPending(ctx)

	if len(failed) > 0 {
		reason := msg.Error
		if reason == "" {
			reason = msg.ErrorMessage
		}
		if reason == "" {
			reason = serverRejectedChange
		}
		if _, err := p.changes.MarkStatus(ctx, failed, models.SyncStatusFailed, reason); err != nil {
			return fmt.Errorf("mark changes failed: %w", err)
		}
		p.logger.Warn().
			Str("in_reply_to", msg.InReplyTo).
			Strs("change_ids", failed).
			Str("error", reason).
			Msg("server rejected changes")
	}

	if len(rest) == 0 {
		return nil
	}

	if msg.Succeeded() {
		if _, err := p.changes.MarkStatus(ctx, rest, models.SyncStatusProcessed, ""); err != nil {
			return fmt.Errorf("mark changes processed: %w", err)
		}
		p.logger.Info().Str("in_reply_to", msg.InReplyTo).Int("changes", len(rest)).Msg("changes confirmed")
		return nil
	}

	// co-batched changes the server did not blame go out again
	if err := p.changes.IncrementAttempts(ctx, rest); err != nil {
		return fmt.Errorf("requeue co-batched changes: %w", err)
	}
	p.schedule()
	return nil
}

func (p *outgoingProcessor) RequeueInFlight(ctx context.Context) (int, error) {
	p.mu.Lock()
	ids := slices.Collect(maps.Keys(p.inFlight))
	clear(p.inFlight)
	clear(p.batches)
	p.mu.Unlock()

	return p.requeue(ctx, ids, "connection closed")
}

func (p *outgoingProcessor) RequeueExpired(ctx context.Context) (int, error) {
	deadline := p.now().Add(-p.ackTimeout)

	p.mu.Lock()
	var ids []string
	for id, f := range p.inFlight {
		if !f.SentAt.After(deadline) {
			ids = append(ids, id)
		}
	}
	p.forgetLocked(ids)
	p.mu.Unlock()

	n, err := p.requeue(ctx, ids, "ack timeout")
	if n > 0 {
		p.schedule()
	}
	return n, err
}

func (p *outgoingProcessor) requeue(ctx context.Context, ids []string, reason string) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	slices.Sort(ids)

	if err := p.changes.IncrementAttempts(ctx, ids); err != nil {
		return 0, fmt.Errorf("requeue changes: %w", err)
	}

	p.logger.Info().Int("changes", len(ids)).Str("reason", reason).Msg("unacknowledged changes requeued")
	p.publishPending(ctx)

	return len(ids), nil
}

func (p *outgoingProcessor) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.closed = true
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
}

// ownedLocked filters ids down to those not in flight under a batch other
// than batchID. A change requeued after an ack timeout and sent again is
// settled by the reply to its latest batch only.
func (p *outgoingProcessor) ownedLocked(batchID string, ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if f, ok := p.inFlight[id]; ok && f.BatchID != batchID {
			p.logger.Debug().
				Str("change_id", id).
				Str("in_reply_to", batchID).
				Str("batch_id", f.BatchID).
				Msg("change belongs to a newer batch, reply ignored for it")
			continue
		}
		out = append(out, id)
	}
	return out
}

// forgetLocked drops ids from the in-flight set and from their batches.
func (p *outgoingProcessor) forgetLocked(ids []string) {
	for _, id := range ids {
		f, ok := p.inFlight[id]
		if !ok {
			continue
		}
		delete(p.inFlight, id)

		rest := slices.DeleteFunc(p.batches[f.BatchID], func(s string) bool { return s == id })
		if len(rest) == 0 {
			delete(p.batches, f.BatchID)
		} else {
			p.batches[f.BatchID] = rest
		}
	}
}

func (p *outgoingProcessor) publishPending(ctx context.Context) {
	count, err := p.GetPendingChangesCount(ctx)
	if err != nil {
		p.logger.Warn().Err(err).Msg("pending count unavailable")
		return
	}
	p.bus.Publish(ctx, events.TopicPendingChanges, events.PendingChangesEvent{Count: count})
}
