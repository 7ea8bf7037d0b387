package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID, withLogging)

	router.Get("/api/version", h.getVersion)

	router.Route("/api/sync", func(r chi.Router) {
		r.Get("/status", h.getStatus)
		r.Post("/connect", h.connect)
		r.Post("/disconnect", h.disconnect)
		r.Post("/resync", h.resync)
		r.Post("/flush", h.flush)

		r.Post("/changes", h.trackChange)
		r.Delete("/changes", h.clearChanges)
		r.Get("/changes/pending", h.getPendingChanges)
		r.Get("/changes/failed", h.getFailedChanges)
		r.Post("/changes/retry", h.retryFailedChanges)

		r.Get("/server-changes/failed", h.getFailedServerChanges)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
