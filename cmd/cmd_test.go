package cmd

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/pxpub/config"
	"github.com/s0up4200/pxpub/filter"
	"github.com/s0up4200/pxpub/fivehundredpx"
)

func newTestAPI(t *testing.T, handler http.HandlerFunc) *fivehundredpx.Client {
	t.Helper()
	logger = zerolog.Nop()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	c, err := newClient(&config.Config{
		API: config.APIConfig{
			Key:     "test-key",
			Secret:  "test-secret",
			Version: 1,
			BaseURL: server.URL,
			Timeout: 5 * time.Second,
		},
	}, zerolog.Nop())
	require.NoError(t, err)
	return c
}

func TestParseParams(t *testing.T) {
	tests := []struct {
		name     string
		pairs    []string
		expected fivehundredpx.Params
		wantErr  bool
	}{
		{
			name:     "single values",
			pairs:    []string{"term=mountains", "rpp=10"},
			expected: fivehundredpx.Params{"term": "mountains", "rpp": "10"},
		},
		{
			name:     "repeated key becomes list",
			pairs:    []string{"image_size=2", "image_size=4", "image_size=440"},
			expected: fivehundredpx.Params{"image_size": []string{"2", "4", "440"}},
		},
		{
			name:     "value containing equals",
			pairs:    []string{"term=a=b"},
			expected: fivehundredpx.Params{"term": "a=b"},
		},
		{
			name:     "empty value",
			pairs:    []string{"only="},
			expected: fivehundredpx.Params{"only": ""},
		},
		{
			name:    "missing equals",
			pairs:   []string{"term"},
			wantErr: true,
		},
		{
			name:    "empty key",
			pairs:   []string{"=value"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params, err := parseParams(tt.pairs)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "expected key=value")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, params)
		})
	}
}

func TestCallEndpoints(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.URL.Query().Get("consumer_key"))
		assert.True(t, strings.HasPrefix(r.Header.Get("User-Agent"), "pxpub/"))
		json.NewEncoder(w).Encode(map[string]string{
			"path": r.URL.Path,
			"term": r.URL.Query().Get("term"),
		})
	})

	endpoints := []string{"photos/search", "photos", "users/show", "galleries"}
	results, err := callEndpoints(context.Background(), api, endpoints, fivehundredpx.Params{"term": "x"}, "GET", 2)
	require.NoError(t, err)
	require.Len(t, results, len(endpoints))

	for i, endpoint := range endpoints {
		assert.Equal(t, "/v1/"+endpoint, results[i].Get("path").String())
		assert.Equal(t, "x", results[i].Get("term").String())
	}
}

func TestCallEndpointsFailure(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/v1/photos/0" {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"error": "Not Found"}`))
			return
		}
		w.Write([]byte(`{}`))
	})

	results, err := callEndpoints(context.Background(), api, []string{"photos", "photos/0"}, nil, "GET", 4)
	require.Error(t, err)
	assert.Nil(t, results)
	assert.Contains(t, err.Error(), "photos/0: ")
	assert.Contains(t, err.Error(), "Not Found")
	assert.ErrorIs(t, err, fivehundredpx.ErrResponse)
}

func TestFormatResponse(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"feature":"popular","photos":[{"id":1,"name":"A"},{"id":2,"name":"B"}]}`))
	})

	resp, err := api.Get(context.Background(), "photos", nil)
	require.NoError(t, err)

	out, err := formatResponse(resp, "")
	require.NoError(t, err)
	assert.Contains(t, out, "\n  \"feature\": \"popular\"")

	out, err = formatResponse(resp, "feature")
	require.NoError(t, err)
	assert.Equal(t, "popular", out)

	out, err = formatResponse(resp, "photos.#.name")
	require.NoError(t, err)
	assert.JSONEq(t, `["A","B"]`, out)

	_, err = formatResponse(resp, "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestSelectPhotos(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"photos":[
			{"id":1,"name":"Dawn","rating":95.1,"tags":["sunrise"]},
			{"id":2,"name":"Dusk","rating":60,"tags":["sunset"]},
			{"id":3,"name":"Noon","rating":88,"tags":["sunset","city"]}
		]}`))
	})

	resp, err := api.SearchPhotos(context.Background(), fivehundredpx.PhotoSearchOptions{Term: "sky"})
	require.NoError(t, err)

	all := selectPhotos(resp, nil)
	assert.Len(t, all, 3)

	f, err := filter.NewExprCompiler().Compile(`rating > 80 and hasTag("sunset")`)
	require.NoError(t, err)

	matched := selectPhotos(resp, f)
	require.Len(t, matched, 1)
	assert.Equal(t, "Noon", matched[0]["name"])
	assert.Equal(t, "• Noon (ID: 3) rating 88", describePhoto(matched[0]))
}

func TestDescribePhoto(t *testing.T) {
	photo := filter.Item{
		"id":     json.Number("7"),
		"name":   "",
		"rating": json.Number("70.5"),
		"user":   map[string]any{"username": "jdoe"},
	}
	assert.Equal(t, "• Untitled (ID: 7) rating 70.5 by jdoe", describePhoto(photo))
}

func TestVersionString(t *testing.T) {
	assert.Equal(t, "v1.2.3", versionString("1.2.3"))
	assert.Equal(t, "v1.2.3", versionString("v1.2.3"))
	assert.Equal(t, "dev", versionString("dev"))
}

func TestNewClientTraceParams(t *testing.T) {
	var buf strings.Builder
	log := zerolog.New(&buf).Level(zerolog.DebugLevel)
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	c, err := newClient(&config.Config{
		API: config.APIConfig{
			Key:     "test-key",
			Secret:  "test-secret",
			Version: 2,
			BaseURL: server.URL,
			Timeout: time.Second,
		},
		Logging: config.LoggingConfig{TraceParams: true},
	}, log)
	require.NoError(t, err)
	assert.Equal(t, 2, c.Version())

	_, err = c.Get(context.Background(), "photos", nil)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), fivehundredpx.LabelRequestParams)
	assert.NotContains(t, buf.String(), "test-secret")
}
