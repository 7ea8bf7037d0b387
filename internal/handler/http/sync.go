package http

import (
	"net/http"

	"github.com/MKhiriev/go-sync-engine/internal/app"
	"github.com/MKhiriev/go-sync-engine/internal/logger"
	"github.com/MKhiriev/go-sync-engine/internal/utils"
)

func (h *Handler) getStatus(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	status, err := h.services.Coordinator.Status(r.Context())
	if err != nil {
		log.Err(err).Str("func", "*Handler.getStatus").Msg(app.MsgStatusUnavailable)
		http.Error(w, app.MsgStatusUnavailable, statusFromError(err))
		return
	}

	utils.WriteJSON(w, status, http.StatusOK)
}

func (h *Handler) connect(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	if err := h.services.Coordinator.Connect(r.Context()); err != nil {
		log.Err(err).Str("func", "*Handler.connect").Msg("error connecting")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	w.WriteHeader(http.StatusAccepted)
}

func (h *Handler) disconnect(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	if err := h.services.Coordinator.Disconnect(r.Context()); err != nil {
		log.Err(err).Str("func", "*Handler.disconnect").Msg("error disconnecting")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) resync(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	if err := h.services.Coordinator.Resync(r.Context()); err != nil {
		log.Err(err).Str("func", "*Handler.resync").Msg("error starting resync")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	w.WriteHeader(http.StatusAccepted)
}

func (h *Handler) flush(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	if err := h.services.Outgoing.ProcessQueuedChanges(r.Context()); err != nil {
		log.Err(err).Str("func", "*Handler.flush").Msg(app.MsgFlushFailed)
		http.Error(w, app.MsgFlushFailed, statusFromError(err))
		return
	}

	w.WriteHeader(http.StatusAccepted)
}
