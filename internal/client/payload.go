package client

import (
	"bytes"
	"encoding/json"
	"io"
)

// Payload is a JSON object returned by the API
type Payload map[string]any

// String returns the value of a top level string field, or "" if the field is missing or not a string
func (p Payload) String(key string) string {
	s, _ := p[key].(string)
	return s
}

// HasError reports whether the payload carries an error field.
// null, false, "" and 0 are treated as absent.
func (p Payload) HasError() bool {
	v, ok := p["error"]
	if !ok || v == nil {
		return false
	}
	switch e := v.(type) {
	case string:
		return e != ""
	case bool:
		return e
	case json.Number:
		f, err := e.Float64()
		return err != nil || f != 0
	}
	return true
}

// parseBody decodes a response body, keeping the decoded value as is.
// Objects are returned as a Payload. Bodies that are not valid JSON are treated as an empty object.
func parseBody(body []byte) any {
	var value any

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(&value); err != nil {
		return Payload{}
	}

	// trailing data after the value means the body was not valid JSON
	if _, err := dec.Token(); err != io.EOF {
		return Payload{}
	}

	if obj, ok := value.(map[string]any); ok {
		return Payload(obj)
	}
	return value
}

// payloadOf returns the object view of a decoded body used to look up the error fields.
// Arrays, strings, numbers, booleans and null have no fields.
func payloadOf(body any) Payload {
	if p, ok := body.(Payload); ok {
		return p
	}
	return Payload{}
}
