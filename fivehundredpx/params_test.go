package fivehundredpx

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParamsEncode(t *testing.T) {
	tests := []struct {
		name     string
		params   Params
		expected string
	}{
		{
			name:     "empty",
			params:   nil,
			expected: "",
		},
		{
			name:     "scalars",
			params:   Params{"term": "hello world", "rpp": 10, "ratio": 1.5},
			expected: "ratio=1.5&rpp=10&term=hello+world",
		},
		{
			name:     "bools",
			params:   Params{"include_store": true, "include_states": false},
			expected: "include_states=0&include_store=1",
		},
		{
			name:     "nil omitted",
			params:   Params{"term": "cats", "geo": nil},
			expected: "term=cats",
		},
		{
			name:     "string slice",
			params:   Params{"image_size": []string{"2", "4"}},
			expected: "image_size%5B0%5D=2&image_size%5B1%5D=4",
		},
		{
			name:     "int array",
			params:   Params{"ids": [2]int{7, 9}},
			expected: "ids%5B0%5D=7&ids%5B1%5D=9",
		},
		{
			name:     "nested map",
			params:   Params{"filter": map[string]any{"camera": "Nikon D750"}},
			expected: "filter%5Bcamera%5D=Nikon+D750",
		},
		{
			name:     "json number",
			params:   Params{"photo_id": json.Number("123456789012")},
			expected: "photo_id=123456789012",
		},
		{
			name:     "reserved characters",
			params:   Params{"term": "a&b=c"},
			expected: "term=a%26b%3Dc",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.params.Encode())
		})
	}
}

func TestParamsMerge(t *testing.T) {
	user := Params{"tag": "cats", "consumer_key": "spoofed"}
	defaults := Params{"consumer_key": "key", "consumer_secret": "secret"}

	merged := user.merge(defaults)
	assert.Equal(t, Params{
		"tag":             "cats",
		"consumer_key":    "key",
		"consumer_secret": "secret",
	}, merged)

	// inputs are not modified
	assert.Equal(t, "spoofed", user["consumer_key"])
	assert.Len(t, defaults, 2)

	var empty Params
	assert.Equal(t, defaults, empty.merge(defaults))
}
