// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/MKhiriev/go-sync-engine/internal/app"
	"github.com/MKhiriev/go-sync-engine/internal/logger"
	"github.com/MKhiriev/go-sync-engine/internal/utils"
	"github.com/MKhiriev/go-sync-engine/models"
)

const defaultFailedServerChangesLimit = 100

func (h *Handler) trackChange(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var req models.TrackChangeRequest
	if err := utils.ReadJSON(r, &req); err != nil {
		log.Err(err).Str("func", "*Handler.trackChange").Msg(app.MsgInvalidJSON)
		http.Error(w, app.MsgInvalidJSON, http.StatusBadRequest)
		return
	}

	id, err := h.services.Outgoing.TrackChange(r.Context(), req.Table, req.Operation, req.Data, req.Previous)
	if err != nil {
		log.Err(err).Str("func", "*Handler.trackChange").Str("table", req.Table).Msg("error tracking change")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, models.TrackChangeResponse{ChangeID: id}, http.StatusCreated)
}

func (h *Handler) getPendingChanges(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	changes, err := h.services.Outgoing.GetPendingChanges(r.Context())
	if err != nil {
		log.Err(err).Str("func", "*Handler.getPendingChanges").Msg(app.MsgListPendingFailed)
		http.Error(w, app.MsgListPendingFailed, statusFromError(err))
		return
	}

	utils.WriteJSON(w, models.ChangesResponse{
		Changes:  nonNil(changes),
		InFlight: h.services.Outgoing.GetInFlightChanges(),
		Length:   len(changes),
	}, http.StatusOK)
}

func (h *Handler) getFailedChanges(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	changes, err := h.services.Outgoing.GetFailedChanges(r.Context())
	if err != nil {
		log.Err(err).Str("func", "*Handler.getFailedChanges").Msg(app.MsgListFailedFailed)
		http.Error(w, app.MsgListFailedFailed, statusFromError(err))
		return
	}

	utils.WriteJSON(w, models.ChangesResponse{Changes: nonNil(changes), Length: len(changes)}, http.StatusOK)
}

func (h *Handler) retryFailedChanges(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	// an empty body retries everything
	var req models.RetryRequest
	if err := utils.ReadJSON(r, &req); err != nil && !errors.Is(err, utils.ErrEmptyBody) {
		log.Err(err).Str("func", "*Handler.retryFailedChanges").Msg(app.MsgInvalidJSON)
		http.Error(w, app.MsgInvalidJSON, http.StatusBadRequest)
		return
	}

	n, err := h.services.Outgoing.RetryFailedChanges(r.Context(), req.IDs)
	if err != nil {
		log.Err(err).Str("func", "*Handler.retryFailedChanges").Msg(app.MsgRetryFailed)
		http.Error(w, app.MsgRetryFailed, statusFromError(err))
		return
	}

	utils.WriteJSON(w, models.CountResponse{Count: n}, http.StatusOK)
}

func (h *Handler) clearChanges(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	n, err := h.services.Outgoing.ClearUnprocessedChanges(r.Context())
	if err != nil {
		log.Err(err).Str("func", "*Handler.clearChanges").Msg(app.MsgClearFailed)
		http.Error(w, app.MsgClearFailed, statusFromError(err))
		return
	}

	utils.WriteJSON(w, models.CountResponse{Count: n}, http.StatusOK)
}

func (h *Handler) getFailedServerChanges(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	limit := defaultFailedServerChangesLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			http.Error(w, app.MsgInvalidLimit, http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	records, err := h.services.Applier.GetFailedServerChanges(r.Context(), limit)
	if err != nil {
		log.Err(err).Str("func", "*Handler.getFailedServerChanges").Msg(app.MsgListServerChangesFailed)
		http.Error(w, app.MsgListServerChangesFailed, statusFromError(err))
		return
	}
	if records == nil {
		records = []models.ServerChangeRecord{}
	}

	utils.WriteJSON(w, models.ServerChangesResponse{Records: records, Length: len(records)}, http.StatusOK)
}

func nonNil(changes []models.LocalChange) []models.LocalChange {
	if changes == nil {
		return []models.LocalChange{}
	}
	return changes
}
