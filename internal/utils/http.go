package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// maxJSONBody caps request bodies read by [ReadJSON].
const maxJSONBody = 1 << 20

// ErrEmptyBody is returned by [ReadJSON] for a request without a body.
var ErrEmptyBody = errors.New("request body is empty")

// WriteJSON writes data as a JSON response with statusCode. When data cannot
// be marshaled a 500 is written instead and the error returned.
func WriteJSON(w http.ResponseWriter, data any, statusCode int) (int, error) {
	body, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "error writing data to JSON", http.StatusInternalServerError)
		return 0, fmt.Errorf("error writing data to JSON: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	return w.Write(body)
}

// ReadJSON decodes the request body into v. Bodies larger than 1 MiB are
// rejected; an absent body gives [ErrEmptyBody].
func ReadJSON(r *http.Request, v any) error {
	if r.Body == nil {
		return ErrEmptyBody
	}

	dec := json.NewDecoder(io.LimitReader(r.Body, maxJSONBody+1))
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return ErrEmptyBody
		}
		return fmt.Errorf("decode request body: %w", err)
	}
	if dec.InputOffset() > maxJSONBody {
		return fmt.Errorf("decode request body: larger than %d bytes", maxJSONBody)
	}
	return nil
}
