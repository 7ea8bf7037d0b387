// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-sync-engine/internal/adapter"
	"github.com/MKhiriev/go-sync-engine/internal/logger"
)

const defaultProbeInterval = 15 * time.Second

type networkProbeWorker struct {
	probe    adapter.NetworkProbe
	notifier OnlineNotifier
	interval time.Duration

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
	online bool

	logger *logger.Logger
}

// NewNetworkProbeWorker polls probe every interval and calls
// notifier.NotifyOnline on every offline to online transition. The network
// is assumed up until the first failed probe.
func NewNetworkProbeWorker(probe adapter.NetworkProbe, notifier OnlineNotifier, interval time.Duration, logger *logger.Logger) Worker {
	if interval <= 0 {
		interval = defaultProbeInterval
	}
	return &networkProbeWorker{
		probe:    probe,
		notifier: notifier,
		interval: interval,
		online:   true,
		logger:   logger.WithComponent("network-probe"),
	}
}

func (w *networkProbeWorker) Run(ctx context.Context) {
	w.Stop()

	w.mu.Lock()
	ctx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	w.wg.Add(1)
	w.mu.Unlock()

	go func() {
		defer w.wg.Done()
		t := time.NewTicker(w.interval)
		defer t.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				w.check(ctx)
			}
		}
	}()
}

func (w *networkProbeWorker) check(ctx context.Context) {
	probeCtx, cancel := context.WithTimeout(ctx, w.interval)
	reachable := w.probe.Reachable(probeCtx)
	cancel()

	if ctx.Err() != nil {
		return
	}

	w.mu.Lock()
	cameBack := reachable && !w.online
	changed := reachable != w.online
	w.online = reachable
	w.mu.Unlock()

	if changed {
		w.logger.Info().Bool("online", reachable).Msg("network status changed")
	}
	if cameBack {
		w.notifier.NotifyOnline()
	}
}

func (w *networkProbeWorker) Stop() {
	w.mu.Lock()
	cancel := w.cancel
	w.cancel = nil
	w.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	w.wg.Wait()
}
