package models

// TrackChangeRequest is the body of a local mutation reported through the
// control API.
type TrackChangeRequest struct {
	Table     string         `json:"table"`
	Operation Operation      `json:"operation"`
	Data      map[string]any `json:"data"`

	// Previous is the row before an update. When set, only the fields that
	// differ from it are queued.
	Previous map[string]any `json:"previous,omitempty"`
}

// RetryRequest selects failed changes to send again. An empty list retries
// every failed change.
type RetryRequest struct {
	IDs []string `json:"ids,omitempty"`
}
