// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/go-sync-engine/internal/adapter"
	"github.com/MKhiriev/go-sync-engine/internal/connection"
	"github.com/MKhiriev/go-sync-engine/internal/events"
	"github.com/MKhiriev/go-sync-engine/internal/logger"
	"github.com/MKhiriev/go-sync-engine/internal/utils"
	"github.com/MKhiriev/go-sync-engine/models"
)

// transitions lists the states reachable from each state. Disconnected is
// reachable from everywhere.
var transitions = map[models.SyncState][]models.SyncState{
	models.SyncStateDisconnected: {models.SyncStateConnecting},
	models.SyncStateConnecting:   {models.SyncStateInitial, models.SyncStateCatchup, models.SyncStateLive},
	models.SyncStateInitial:      {models.SyncStateCatchup, models.SyncStateLive},
	models.SyncStateCatchup:      {models.SyncStateLive},
	models.SyncStateLive:         {models.SyncStateInitial, models.SyncStateCatchup},
}

func canTransition(from, to models.SyncState) bool {
	if to == models.SyncStateDisconnected {
		return true
	}
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

type syncCoordinator struct {
	conn      ConnectionManager
	persister StatePersister
	outgoing  OutgoingProcessor
	applier   ChangeApplier
	bus       *events.Bus

	now   func() time.Time
	newID func() string

	// mu guards the state fields and is held across the matching persister
	// save so a transition and its write do not interleave with another.
	mu    sync.Mutex
	state models.SyncState
	lsn   models.LSN
	// epoch counts resyncs. Messages of a session opened before the latest
	// resync are dropped.
	epoch uint64

	// owned by the loop goroutine
	openEpoch uint64
	msgEpoch  uint64

	lifeMu         sync.Mutex
	started        bool
	cancel         context.CancelFunc
	sub            *events.Subscription
	stopPersisting func()
	wg             sync.WaitGroup

	logger *logger.Logger
}

// NewSyncCoordinator creates a [SyncCoordinator]. It consumes the
// connection events published on bus once started.
func NewSyncCoordinator(
	conn ConnectionManager,
	persister StatePersister,
	outgoing OutgoingProcessor,
	applier ChangeApplier,
	bus *events.Bus,
	logger *logger.Logger,
) SyncCoordinator {
	return &syncCoordinator{
		conn:      conn,
		persister: persister,
		outgoing:  outgoing,
		applier:   applier,
		bus:       bus,
		now:       time.Now,
		newID:     utils.NewID,
		state:     models.SyncStateDisconnected,
		lsn:       models.OriginLSN,
		logger:    logger.WithComponent("coordinator"),
	}
}

// NewHandshake returns the [connection.HandshakeFunc] dialing with the
// persisted client id and LSN and a token from tokens.
func NewHandshake(persister StatePersister, tokens adapter.TokenProvider) connection.HandshakeFunc {
	return func(ctx context.Context) (connection.Params, error) {
		meta := persister.Current()
		if meta.ClientID == "" {
			return connection.Params{}, ErrNoClientID
		}

		token, err := tokens.GetToken(ctx)
		if err != nil {
			return connection.Params{}, fmt.Errorf("acquire sync token: %w", mapAdapterError(err))
		}

		lsn := meta.CurrentLSN
		if lsn == "" {
			lsn = models.OriginLSN
		}

		return connection.Params{
			ClientID: meta.ClientID,
			LSN:      lsn,
			Token:    token.SignedString,
		}, nil
	}
}

func (c *syncCoordinator) Start(ctx context.Context) error {
	c.lifeMu.Lock()
	defer c.lifeMu.Unlock()

	if c.started {
		return nil
	}

	meta, err := c.persister.Load(ctx)
	if err != nil {
		return fmt.Errorf("start coordinator: %w", err)
	}

	c.mu.Lock()
	c.state = models.SyncStateDisconnected
	c.lsn = meta.CurrentLSN
	state := c.state
	err = c.persister.Save(ctx, models.SyncMetadataPatch{SyncState: &state})
	c.mu.Unlock()
	if err != nil {
		return fmt.Errorf("start coordinator: %w", err)
	}

	c.sub = c.bus.Subscribe(events.DefaultBuffer,
		events.TopicConnectionOpen,
		events.TopicConnectionMessage,
		events.TopicConnectionClose,
		events.TopicConnectionGiveUp,
	)
	c.stopPersisting = c.bus.SubscribeFunc(events.TopicPendingChanges, c.persistPendingCount)

	loopCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	c.cancel = cancel
	c.started = true

	c.wg.Add(1)
	go c.loop(loopCtx, c.sub)

	c.logger.Info().
		Str("client_id", meta.ClientID).
		Str("lsn", meta.CurrentLSN.String()).
		Msg("sync coordinator started")
	return nil
}

func (c *syncCoordinator) Stop(ctx context.Context) error {
	c.lifeMu.Lock()
	if !c.started {
		c.lifeMu.Unlock()
		return nil
	}
	c.started = false
	cancel, sub, stopPersisting := c.cancel, c.sub, c.stopPersisting
	c.lifeMu.Unlock()

	c.sendDisconnect(ctx)
	c.conn.Disconnect()

	cancel()
	sub.Unsubscribe()
	c.wg.Wait()
	stopPersisting()

	if _, err := c.outgoing.RequeueInFlight(ctx); err != nil {
		c.logger.Err(err).Msg("error requeueing in-flight changes")
	}
	c.transition(ctx, models.SyncStateDisconnected)

	if err := c.persister.Flush(ctx); err != nil {
		return fmt.Errorf("stop coordinator: %w", err)
	}

	c.logger.Info().Msg("sync coordinator stopped")
	return nil
}

func (c *syncCoordinator) Connect(ctx context.Context) error {
	if !c.isStarted() {
		return ErrNotStarted
	}

	c.transition(ctx, models.SyncStateConnecting)

	if err := c.conn.Connect(ctx); err != nil {
		c.transition(ctx, models.SyncStateDisconnected)
		if errors.Is(err, connection.ErrAuthentication) {
			return fmt.Errorf("%w: %w", ErrAuthentication, err)
		}
		return fmt.Errorf("connect: %w", err)
	}

	return nil
}

func (c *syncCoordinator) Disconnect(ctx context.Context) error {
	if !c.isStarted() {
		return ErrNotStarted
	}

	c.sendDisconnect(ctx)
	c.conn.Disconnect()
	c.transition(ctx, models.SyncStateDisconnected)

	if err := c.persister.Flush(ctx); err != nil {
		return fmt.Errorf("disconnect: %w", err)
	}
	return nil
}

func (c *syncCoordinator) Resync(ctx context.Context) error {
	if err := c.Disconnect(ctx); err != nil {
		return err
	}

	c.mu.Lock()
	prev := c.lsn
	meta, err := c.persister.Reset(ctx)
	if err == nil {
		c.lsn = meta.CurrentLSN
		c.state = models.SyncStateDisconnected
		c.epoch++
	}
	c.mu.Unlock()
	if err != nil {
		return fmt.Errorf("resync: %w", err)
	}

	c.logger.Info().Str("client_id", meta.ClientID).Msg("resync requested, starting initial sync")
	c.bus.Publish(ctx, events.TopicLSNUpdate, events.LSNUpdateEvent{Previous: prev, Current: meta.CurrentLSN})

	return c.Connect(ctx)
}

func (c *syncCoordinator) Status(ctx context.Context) (models.EngineStatus, error) {
	meta := c.persister.Current()

	pending, err := c.outgoing.GetPendingChangesCount(ctx)
	if err != nil {
		return models.EngineStatus{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	return models.EngineStatus{
		State:          c.state,
		ClientID:       meta.ClientID,
		LSN:            c.lsn,
		Connection:     c.conn.Status(),
		PendingChanges: pending,
		InFlight:       len(c.outgoing.GetInFlightChanges()),
		LastSyncTime:   meta.LastSyncTime,
	}, nil
}

func (c *syncCoordinator) currentEpoch() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.epoch
}

func (c *syncCoordinator) isStarted() bool {
	c.lifeMu.Lock()
	defer c.lifeMu.Unlock()
	return c.started
}

// loop is the only consumer of connection events. It must never call
// Connect or Disconnect on the manager: both publish into sub.
func (c *syncCoordinator) loop(ctx context.Context, sub *events.Subscription) {
	defer c.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case <-sub.Done():
			return
		case ev := <-sub.C:
			c.handleEvent(ctx, ev)
		}
	}
}

func (c *syncCoordinator) handleEvent(ctx context.Context, ev events.Event) {
	switch ev.Topic {
	case events.TopicConnectionOpen:
		c.openEpoch = c.currentEpoch()
		c.transition(ctx, models.SyncStateConnecting)

	case events.TopicConnectionClose:
		c.transition(ctx, models.SyncStateDisconnected)
		if _, err := c.outgoing.RequeueInFlight(ctx); err != nil {
			c.logger.Err(err).Msg("error requeueing in-flight changes")
		}

	case events.TopicConnectionGiveUp:
		payload, _ := ev.Payload.(events.ConnectionGiveUpEvent)
		c.logger.Warn().
			Err(payload.Err).
			Int("attempts", payload.Attempts).
			Bool("auth_failed", payload.AuthFailed).
			Msg("connection given up")
		c.transition(ctx, models.SyncStateDisconnected)

	case events.TopicConnectionMessage:
		msg, ok := ev.Payload.(*models.Message)
		if !ok || msg == nil {
			return
		}
		epoch := c.currentEpoch()
		if c.openEpoch != epoch {
			c.logger.Debug().
				Str("message_type", string(msg.Type)).
				Str("message_id", msg.MessageID).
				Msg("message from a session before resync dropped")
			return
		}
		c.msgEpoch = epoch
		c.handleMessage(ctx, msg)
	}
}

func (c *syncCoordinator) handleMessage(ctx context.Context, msg *models.Message) {
	log := c.logger.With().Str("message_type", string(msg.Type)).Str("message_id", msg.MessageID).Logger()
	log.Debug().Msg("message received")

	switch msg.Type {
	case models.MessageServerInitStart:
		c.transition(ctx, models.SyncStateInitial)
		if !msg.Resume {
			c.advanceLSN(ctx, msg.ServerLSN)
		}

	case models.MessageServerInitChanges:
		result, ok := c.apply(ctx, msg)
		if !ok {
			return
		}
		c.acknowledge(ctx, result, &models.Message{
			Type:      models.MessageInitReceived,
			InReplyTo: msg.MessageID,
			Table:     msg.SequenceTable(),
			Chunk:     msg.SequenceChunk(),
		})

	case models.MessageServerInitComplete:
		c.advanceLSN(ctx, msg.ServerLSN)
		c.send(ctx, &models.Message{Type: models.MessageInitProcessed, InReplyTo: msg.MessageID})
		c.transition(ctx, models.SyncStateCatchup)

	case models.MessageServerCatchupChanges:
		c.transition(ctx, models.SyncStateCatchup)
		result, ok := c.apply(ctx, msg)
		if !ok {
			return
		}
		acked := c.acknowledge(ctx, result, &models.Message{
			Type:      models.MessageCatchupReceived,
			InReplyTo: msg.MessageID,
			Chunk:     msg.SequenceChunk(),
			LSN:       msg.LastLSN,
		})
		if acked {
			c.advanceLSN(ctx, msg.LastLSN)
		}

	case models.MessageServerCatchupCompleted:
		c.advanceLSN(ctx, msg.LastLSN)
		c.goLive(ctx)

	case models.MessageServerLiveStart:
		c.advanceLSN(ctx, msg.FinalLSN)
		c.goLive(ctx)

	case models.MessageServerLiveChanges:
		result, ok := c.apply(ctx, msg)
		if !ok {
			return
		}
		ids := msg.ChangeIDs
		if len(ids) == 0 {
			for _, change := range msg.Changes {
				if change.ID != "" {
					ids = append(ids, change.ID)
				}
			}
		}
		acked := c.acknowledge(ctx, result, &models.Message{
			Type:      models.MessageChangesReceived,
			InReplyTo: msg.MessageID,
			ChangeIDs: ids,
			LastLSN:   msg.LastLSN,
		})
		if acked {
			c.advanceLSN(ctx, msg.LastLSN)
		}

	case models.MessageServerChangesReceived:
		if err := c.outgoing.HandleChangesReceived(ctx, msg); err != nil {
			log.Err(err).Msg("error handling changes received")
		}

	case models.MessageServerChangesApplied:
		if err := c.outgoing.HandleChangesApplied(ctx, msg); err != nil {
			log.Err(err).Msg("error handling changes applied")
		}

	case models.MessageServerError:
		code := ""
		if msg.ErrorCode != nil {
			code = fmt.Sprint(msg.ErrorCode)
		}
		log.Error().
			Str("error_code", code).
			Str("original_message_id", msg.OriginalMessageID).
			Msg(msg.ErrorMessage)
		c.bus.Publish(ctx, events.TopicSyncError, events.ErrorEvent{
			Code:      code,
			Message:   msg.ErrorMessage,
			MessageID: msg.OriginalMessageID,
		})

	case models.MessageServerStateChange:
		if !msg.State.IsValid() {
			log.Warn().Str("state", string(msg.State)).Msg("unknown server state ignored")
			return
		}
		if msg.State == models.SyncStateLive {
			c.goLive(ctx)
			return
		}
		c.transition(ctx, msg.State)

	case models.MessageServerLSNUpdate:
		c.advanceLSN(ctx, msg.LSN)

	default:
		log.Warn().Msg("unknown message type ignored")
	}
}

// apply hands the batch to the applier. A failed batch is not acknowledged
// so the server redelivers it from the last confirmed LSN.
func (c *syncCoordinator) apply(ctx context.Context, msg *models.Message) (models.ApplyResult, bool) {
	result, err := c.applier.ApplyChanges(ctx, msg.Changes)
	if err != nil {
		c.logger.Err(err).
			Str("message_type", string(msg.Type)).
			Str("message_id", msg.MessageID).
			Msg("incoming batch not applied, withholding ack")
		return result, false
	}
	return result, true
}

func (c *syncCoordinator) acknowledge(ctx context.Context, result models.ApplyResult, ack *models.Message) bool {
	if !c.send(ctx, ack) {
		return false
	}
	if err := c.applier.MarkAcknowledged(ctx, result.BatchID); err != nil {
		c.logger.Warn().Err(err).Str("batch_id", result.BatchID).Msg("batch ack not recorded")
	}
	return true
}

func (c *syncCoordinator) send(ctx context.Context, msg *models.Message) bool {
	msg.ClientID = c.persister.Current().ClientID
	msg.MessageID = c.newID()
	msg.Timestamp = c.now().UTC()

	if err := c.conn.Send(ctx, msg); err != nil {
		c.logger.Warn().Err(err).Str("message_type", string(msg.Type)).Msg("protocol message not sent")
		return false
	}
	return true
}

func (c *syncCoordinator) sendDisconnect(ctx context.Context) {
	if !c.conn.IsConnected() {
		return
	}
	c.send(ctx, &models.Message{Type: models.MessageDisconnect})
}

func (c *syncCoordinator) goLive(ctx context.Context) {
	now := c.now().UTC()
	if !c.transition(ctx, models.SyncStateLive) {
		return
	}
	if err := c.persister.Save(ctx, models.SyncMetadataPatch{LastSyncTime: &now}); err != nil {
		c.logger.Warn().Err(err).Msg("last sync time not saved")
	}
	if err := c.outgoing.ProcessQueuedChanges(ctx); err != nil {
		c.logger.Warn().Err(err).Msg("queued changes not flushed")
	}
}

// transition moves to state `to` if allowed and reports whether the
// coordinator is now in that state.
func (c *syncCoordinator) transition(ctx context.Context, to models.SyncState) bool {
	c.mu.Lock()
	from := c.state
	if from == to {
		c.mu.Unlock()
		return true
	}
	if !canTransition(from, to) {
		c.mu.Unlock()
		c.logger.Warn().Str("from", from.String()).Str("to", to.String()).Msg("state transition ignored")
		return false
	}
	c.state = to
	if err := c.persister.Save(ctx, models.SyncMetadataPatch{SyncState: &to}); err != nil {
		c.logger.Warn().Err(err).Msg("sync state not saved")
	}
	c.mu.Unlock()

	c.logger.Info().Str("from", from.String()).Str("to", to.String()).Msg("sync state changed")
	c.bus.Publish(ctx, events.TopicStateChange, events.StateChangeEvent{From: from, To: to})
	return true
}

// advanceLSN moves the LSN forward. Empty values, regressions and positions
// of a message received before a resync are ignored.
func (c *syncCoordinator) advanceLSN(ctx context.Context, lsn models.LSN) bool {
	if lsn == "" {
		return false
	}

	c.mu.Lock()
	if c.msgEpoch != c.epoch {
		c.mu.Unlock()
		c.logger.Debug().Str("lsn", lsn.String()).Msg("lsn of a session before resync ignored")
		return false
	}
	prev := c.lsn
	if !lsn.After(prev) {
		c.mu.Unlock()
		if lsn.Compare(prev) < 0 {
			c.logger.Warn().Str("lsn", lsn.String()).Str("current", prev.String()).Msg("lsn regression ignored")
		}
		return false
	}
	c.lsn = lsn
	if err := c.persister.Save(ctx, models.SyncMetadataPatch{CurrentLSN: &lsn}); err != nil {
		c.logger.Warn().Err(err).Msg("lsn not saved")
	}
	c.mu.Unlock()

	c.logger.Debug().Str("previous", prev.String()).Str("lsn", lsn.String()).Msg("lsn advanced")
	c.bus.Publish(ctx, events.TopicLSNUpdate, events.LSNUpdateEvent{Previous: prev, Current: lsn})
	return true
}

func (c *syncCoordinator) persistPendingCount(ev events.Event) {
	payload, ok := ev.Payload.(events.PendingChangesEvent)
	if !ok {
		return
	}
	count := payload.Count
	if err := c.persister.Save(context.Background(), models.SyncMetadataPatch{PendingChangesCount: &count}); err != nil {
		c.logger.Warn().Err(err).Msg("pending count not saved")
	}
}
