package sociavault

import (
	"encoding/json"
	"fmt"
)

// Envelope is the standard SociaVault response wrapper: a success flag, an
// optional error message and an endpoint-specific data object. A few endpoints
// (plain comment lists) skip the wrapper and return a bare array instead.
type Envelope struct {
	Success bool            `json:"success"`
	Error   string          `json:"error,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

func unmarshal(body []byte, v any) error {
	return json.Unmarshal(body, v)
}

// DecodeEnvelope parses a wrapped response and returns its data payload.
// An explicit success=false is reported as an error.
func DecodeEnvelope(body []byte) (json.RawMessage, error) {
	var env Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("parse response envelope: %w", err)
	}
	if !env.Success {
		msg := env.Error
		if msg == "" {
			msg = "unknown error"
		}
		return nil, fmt.Errorf("api returned error: %s", msg)
	}
	return env.Data, nil
}

// ItemCollection decodes a collection that the API serves either as an object
// keyed by id or as a plain array, and flattens it to a slice of raw items.
// Both shapes occur across endpoints (subreddit posts are keyed by id, tweets
// are usually an array).
func ItemCollection(raw json.RawMessage) ([]json.RawMessage, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	var asList []json.RawMessage
	if err := json.Unmarshal(raw, &asList); err == nil {
		return asList, nil
	}

	var asMap map[string]json.RawMessage
	if err := json.Unmarshal(raw, &asMap); err != nil {
		return nil, fmt.Errorf("collection is neither array nor object: %w", err)
	}

	items := make([]json.RawMessage, 0, len(asMap))
	for _, v := range asMap {
		items = append(items, v)
	}
	return items, nil
}

// Cursor holds a continuation token that the API returns either as a string
// or as a number. The zero value means end-of-results.
type Cursor string

func (c *Cursor) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*c = Cursor(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("cursor is neither string nor number: %s", data)
	}
	*c = Cursor(n.String())
	return nil
}

// Terminal reports whether the cursor signals end-of-results. The TikTok
// search endpoint uses 0 as its terminal marker, others omit the field.
func (c Cursor) Terminal() bool {
	return c == "" || c == "0" || c == "null"
}
