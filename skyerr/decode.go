package skyerr

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// envelope mirrors the service's uniform response wrapper. Exactly one
// of the two members is expected to be present and non-null.
type envelope struct {
	Result json.RawMessage `json:"result"`
	Error  json.RawMessage `json:"error"`
}

// Decode parses a response body and returns the raw value under
// "result", or an error decoded from the "error" member. HTTP status is
// never consulted here; callers that want status-aware handling of
// unparseable bodies use DecodeStatus.
func Decode(body []byte) (json.RawMessage, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToDecode, err)
	}
	return decodeEnvelope(env)
}

// DecodeStatus parses a response body taking the HTTP status into
// account: a body that is not a JSON object maps to a StatusError when
// the status is outside [200,300), and to ErrFailedToDecode otherwise.
// A parseable body is decoded exactly like Decode, status ignored.
func DecodeStatus(statusCode int, body []byte) (json.RawMessage, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		if statusCode < 200 || statusCode >= 300 {
			return nil, &StatusError{StatusCode: statusCode}
		}
		return nil, fmt.Errorf("%w: %v", ErrFailedToDecode, err)
	}
	return decodeEnvelope(env)
}

func decodeEnvelope(env envelope) (json.RawMessage, error) {
	if truthy(env.Result) {
		return env.Result, nil
	}
	if truthy(env.Error) {
		return nil, decodeError(env.Error)
	}
	return nil, ErrMalformedEnvelope
}

// decodeError turns the raw "error" member into a structured *Error.
// An error member that itself fails to decode is a malformed envelope.
func decodeError(raw json.RawMessage) error {
	var fields struct {
		Name    string         `json:"name"`
		Reason  string         `json:"reason"`
		Message string         `json:"message"`
		Code    int            `json:"code"`
		Info    map[string]any `json:"info"`
	}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return ErrMalformedEnvelope
	}
	if fields.Name == "" && fields.Reason == "" {
		return ErrMalformedEnvelope
	}
	return newError(fields.Name, fields.Reason, fields.Message, fields.Code, fields.Info)
}

// truthy reports whether a raw JSON member is present and usable as a
// value: absent, null, false, 0 and "" are not. Objects and arrays are
// always usable, empty or not.
func truthy(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	switch {
	case len(trimmed) == 0:
		return false
	case bytes.Equal(trimmed, []byte("null")),
		bytes.Equal(trimmed, []byte("false")),
		bytes.Equal(trimmed, []byte("0")),
		bytes.Equal(trimmed, []byte(`""`)):
		return false
	}
	return true
}
