package models

// ChangesResponse lists queued local changes.
type ChangesResponse struct {
	Changes []LocalChange `json:"changes"`

	// InFlight holds the changes sent and awaiting acknowledgement. Only set
	// on the pending listing.
	InFlight []InFlightChange `json:"inFlight,omitempty"`

	// Length is the number of entries in Changes.
	Length int `json:"length"`
}

// ServerChangesResponse lists audit records of incoming changes.
type ServerChangesResponse struct {
	Records []ServerChangeRecord `json:"records"`
	Length  int                  `json:"length"`
}

// TrackChangeResponse returns the queue id of a tracked change. For an update
// that changed nothing it is the entity id instead.
type TrackChangeResponse struct {
	ChangeID string `json:"changeId"`
}

// CountResponse reports how many records an operation touched.
type CountResponse struct {
	Count int64 `json:"count"`
}
