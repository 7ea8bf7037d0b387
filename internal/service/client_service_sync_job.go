package service

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-sync-engine/internal/logger"
)

const defaultAckSweepInterval = 30 * time.Second

type ackSweepJob struct {
	outgoing OutgoingProcessor
	logger   *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewAckSweepJob creates an ackSweepJob that calls outgoing.RequeueExpired
// on a ticker. The job is idle until Start is called.
func NewAckSweepJob(outgoing OutgoingProcessor, logger *logger.Logger) AckSweepJob {
	return &ackSweepJob{
		outgoing: outgoing,
		logger:   logger.WithComponent("ack-sweep"),
	}
}

// Start implements AckSweepJob. It stops any previously running sweep, then
// launches a background goroutine that requeues timed-out changes every
// interval. If interval is zero or negative it defaults to 30 seconds. The
// goroutine exits when ctx is cancelled or Stop is called.
func (j *ackSweepJob) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = defaultAckSweepInterval
	}

	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				if _, err := j.outgoing.RequeueExpired(jobCtx); err != nil {
					j.logger.Warn().Err(err).Msg("ack sweep failed")
				}
			}
		}
	}()
}

// Stop implements AckSweepJob. It cancels the background goroutine's context
// and blocks until the goroutine has fully exited. Safe to call when the job
// is not running.
func (j *ackSweepJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}
