package server

import "context"

// Server defines the lifecycle contract for the control API server.
type Server interface {
	// RunServer binds the listener and serves requests until ctx is
	// cancelled, then shuts down gracefully. A bind or serve failure is
	// returned.
	RunServer(ctx context.Context) error

	// Shutdown gracefully stops the server, waiting for active requests
	// until ctx expires.
	Shutdown(ctx context.Context) error
}
