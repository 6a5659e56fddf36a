package domain

import "encoding/json"

// UpstreamEnvelope is the normalized shape of every gRust API response:
// {success, data?, error?}. Some upstream endpoints return bare payloads
// without the envelope, so Success is a pointer — absent and false are
// different answers.
type UpstreamEnvelope struct {
	Success *bool           `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
	Message string          `json:"message,omitempty"`

	// Raw is the entire response body, kept for pass-through endpoints
	// whose payload is not wrapped in the envelope.
	Raw json.RawMessage `json:"-"`
}

// Ok reports an explicit success:true. Mutating operations and who-am-I
// require it.
func (e *UpstreamEnvelope) Ok() bool {
	return e.Success != nil && *e.Success
}

// Failed reports an explicit success:false. Listing endpoints treat an
// absent success field as a bare payload, not a failure.
func (e *UpstreamEnvelope) Failed() bool {
	return e.Success != nil && !*e.Success
}

// Payload returns the data field when present, otherwise the whole body.
func (e *UpstreamEnvelope) Payload() json.RawMessage {
	if len(e.Data) > 0 {
		return e.Data
	}
	return e.Raw
}
