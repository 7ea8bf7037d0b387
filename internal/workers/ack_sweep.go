package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-sync-engine/internal/service"
)

type ackSweepWorker struct {
	job      service.AckSweepJob
	interval time.Duration
}

// NewAckSweepWorker runs job every interval for the lifetime of the worker.
func NewAckSweepWorker(job service.AckSweepJob, interval time.Duration) Worker {
	return &ackSweepWorker{job: job, interval: interval}
}

func (w *ackSweepWorker) Run(ctx context.Context) {
	w.job.Start(ctx, w.interval)
}

func (w *ackSweepWorker) Stop() {
	w.job.Stop()
}
