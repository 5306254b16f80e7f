package fivehundredpx

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

const (
	// DefaultBaseURL is the 500px API host
	DefaultBaseURL = "https://api.500px.com"
	// DefaultVersion is the API version used when Config.Version is zero
	DefaultVersion = 1
	// DefaultTimeout is the HTTP client timeout used when none is configured
	DefaultTimeout = 30 * time.Second

	msgInvalidResponse = "Invalid Response received"
)

// Config holds the credentials and settings of a Client
type Config struct {
	// Key is the application's consumer key (required)
	Key string
	// Secret is the application's consumer secret (required)
	Secret string
	// Version selects the /v<version>/ path segment; zero means DefaultVersion
	Version int
	// Logger receives diagnostic events; nil disables them
	Logger LogFunc
}

// Client calls the public 500px API.
// It is safe for concurrent use: nothing is mutated after New returns.
type Client struct {
	baseURL       string
	version       int
	userAgent     string
	defaultParams Params
	httpClient    *http.Client
	logFunc       LogFunc
}

// New creates a new 500px client
func New(cfg Config, opts ...Option) (*Client, error) {
	if cfg.Key == "" {
		return nil, configError("500px consumer key is required")
	}
	if cfg.Secret == "" {
		return nil, configError("500px consumer secret is required")
	}

	version := cfg.Version
	if version == 0 {
		version = DefaultVersion
	}
	if version < 0 {
		return nil, configError(fmt.Sprintf("invalid 500px API version: %d", cfg.Version))
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	httpClient := o.httpClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: o.timeout}
	}

	return &Client{
		baseURL:   o.baseURL,
		version:   version,
		userAgent: o.userAgent,
		defaultParams: Params{
			paramConsumerKey:    cfg.Key,
			paramConsumerSecret: cfg.Secret,
		},
		httpClient: httpClient,
		logFunc:    cfg.Logger,
	}, nil
}

// Version returns the API version the client targets
func (c *Client) Version() int {
	return c.version
}

// DefaultParams returns a copy of the credential parameters sent with every request
func (c *Client) DefaultParams() Params {
	return c.defaultParams.clone()
}

// Get performs a GET request against endpoint
func (c *Client) Get(ctx context.Context, endpoint string, params Params) (*Response, error) {
	return c.Call(ctx, endpoint, params, http.MethodGet)
}

// Post performs a POST request against endpoint
func (c *Client) Post(ctx context.Context, endpoint string, params Params) (*Response, error) {
	return c.Call(ctx, endpoint, params, http.MethodPost)
}

// Call performs a single API request and returns the decoded JSON body.
//
// params are merged with the consumer credentials, which always take
// precedence. For GET the merged set is sent as the query string, for POST as
// a form-encoded body. An empty method means GET. Only a 200 response counts
// as success; every failure is returned as an *APIError.
func (c *Client) Call(ctx context.Context, endpoint string, params Params, method string) (*Response, error) {
	method = strings.ToUpper(method)
	if method == "" {
		method = http.MethodGet
	}
	if method != http.MethodGet && method != http.MethodPost {
		return nil, configError(fmt.Sprintf("unsupported HTTP method: %s", method))
	}

	c.logMessage(LabelDefaultParams, c.defaultParams)
	args := params.merge(c.defaultParams)
	c.logMessage(LabelRequestParams, args)

	requestURL := c.endpointURL(endpoint)

	var body io.Reader
	if method == http.MethodGet {
		requestURL += "?" + args.Encode()
	} else {
		body = strings.NewReader(args.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, requestURL, body)
	if err != nil {
		return nil, &APIError{
			Kind:    KindConfig,
			Message: fmt.Sprintf("failed to create request: %v", err),
			URL:     requestURL,
			Err:     err,
		}
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, transportError(requestURL, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, transportError(requestURL, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, responseError(resp.StatusCode, requestURL, raw)
	}

	return decodeResponse(resp.StatusCode, requestURL, raw)
}

// endpointURL builds <base>/v<version>/<endpoint>
func (c *Client) endpointURL(endpoint string) string {
	return fmt.Sprintf("%s/v%d/%s", c.baseURL, c.version, strings.TrimLeft(endpoint, "/"))
}

func transportError(requestURL string, err error) *APIError {
	return &APIError{
		Kind:    KindTransport,
		Message: msgInvalidResponse,
		URL:     requestURL,
		Err:     err,
	}
}

// responseError describes a non-200 response, appending the API's "error"
// field when the body carries one
func responseError(status int, requestURL string, raw []byte) *APIError {
	msg := fmt.Sprintf("Response error - Error encountered: [%d] (Request: %s)", status, requestURL)
	if len(bytes.TrimSpace(raw)) > 0 && gjson.ValidBytes(raw) {
		if upstream := gjson.GetBytes(raw, "error"); upstream.Exists() {
			msg += " " + upstream.String()
		}
	}

	return &APIError{
		Kind:       KindResponse,
		Message:    msg,
		StatusCode: status,
		URL:        requestURL,
	}
}

func decodeResponse(status int, requestURL string, raw []byte) (*Response, error) {
	parseErr := func(err error) *APIError {
		return &APIError{
			Kind:       KindParse,
			Message:    fmt.Sprintf("invalid JSON in response (Request: %s)", requestURL),
			StatusCode: status,
			URL:        requestURL,
			Err:        err,
		}
	}

	if !gjson.ValidBytes(raw) {
		return nil, parseErr(nil)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var data any
	if err := dec.Decode(&data); err != nil {
		return nil, parseErr(err)
	}

	return &Response{
		StatusCode: status,
		URL:        requestURL,
		Raw:        json.RawMessage(raw),
		Data:       data,
	}, nil
}
