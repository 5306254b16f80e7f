package fivehundredpx

import (
	"encoding/json"

	"github.com/tidwall/gjson"
)

// Response is a successful API response
type Response struct {
	StatusCode int
	// URL is the request URL, including the query string for GET requests
	URL string
	// Raw is the response body as received
	Raw json.RawMessage
	// Data is the decoded body: map[string]any, []any or a scalar.
	// Numbers are decoded as json.Number.
	Data any
}

// Get returns the value at a gjson path, e.g. "photos.#.name"
func (r *Response) Get(path string) gjson.Result {
	return gjson.GetBytes(r.Raw, path)
}

// Decode unmarshals the body into v
func (r *Response) Decode(v any) error {
	return json.Unmarshal(r.Raw, v)
}
