// Package workers runs the background jobs of a sync engine process next
// to the coordinator: the in-flight ack sweeper and the network probe.
package workers

import "context"

// Worker is a background job started once per process.
//
// Run must not block: implementations start their own goroutine and keep it
// alive until ctx is cancelled or Stop is called. Stop blocks until that
// goroutine has exited.
//
// Example implementation:
//
//	type tickWorker struct{ cancel context.CancelFunc }
//
//	func (w *tickWorker) Run(ctx context.Context) {
//	    ctx, w.cancel = context.WithCancel(ctx)
//	    go loop(ctx)
//	}
type Worker interface {
	Run(ctx context.Context)
	Stop()
}

// OnlineNotifier is told when the network comes back after an outage.
type OnlineNotifier interface {
	NotifyOnline()
}
