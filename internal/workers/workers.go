package workers

import (
	"context"
	"slices"

	"github.com/MKhiriev/go-sync-engine/internal/adapter"
	"github.com/MKhiriev/go-sync-engine/internal/config"
	"github.com/MKhiriev/go-sync-engine/internal/logger"
	"github.com/MKhiriev/go-sync-engine/internal/service"
)

type Workers struct {
	workers []Worker
}

// NewWorkers builds the workers enabled by cfg. The network probe is only
// added when probe is not nil.
func NewWorkers(
	services *service.ClientServices,
	probe adapter.NetworkProbe,
	notifier OnlineNotifier,
	cfg config.ClientWorkers,
	logger *logger.Logger,
) *Workers {
	w := &Workers{}
	w.workers = append(w.workers, NewAckSweepWorker(services.AckSweepJob, cfg.AckSweepInterval))

	if probe != nil {
		w.workers = append(w.workers, NewNetworkProbeWorker(probe, notifier, cfg.ProbeInterval, logger))
	}

	return w
}

func (w *Workers) Run(ctx context.Context) {
	for _, worker := range w.workers {
		worker.Run(ctx)
	}
}

// Stop stops the workers in reverse start order.
func (w *Workers) Stop() {
	for _, worker := range slices.Backward(w.workers) {
		worker.Stop()
	}
}
