package fivehundredpx

import (
	"context"
	"fmt"

	"github.com/google/go-querystring/query"
)

// PhotoSearchOptions are the documented parameters of photos/search.
// At least one of Term, Tags or Geo is required by the API.
type PhotoSearchOptions struct {
	Term           string   `url:"term,omitempty"`
	Tags           []string `url:"tag,comma,omitempty"`
	Geo            string   `url:"geo,omitempty"`
	Only           string   `url:"only,omitempty"`
	Exclude        string   `url:"exclude,omitempty"`
	Sort           string   `url:"sort,omitempty"`
	SortDirection  string   `url:"sort_direction,omitempty"`
	ImageSize      []int    `url:"image_size,comma,omitempty"`
	ResultsPerPage int      `url:"rpp,omitempty"`
	Page           int      `url:"page,omitempty"`
}

// Params converts the options into request parameters
func (o PhotoSearchOptions) Params() (Params, error) {
	values, err := query.Values(o)
	if err != nil {
		return nil, err
	}

	params := make(Params, len(values))
	for key, v := range values {
		if len(v) == 1 {
			params[key] = v[0]
		} else {
			params[key] = v
		}
	}
	return params, nil
}

// SearchPhotos calls photos/search
func (c *Client) SearchPhotos(ctx context.Context, opts PhotoSearchOptions) (*Response, error) {
	if opts.Term == "" && len(opts.Tags) == 0 && opts.Geo == "" {
		return nil, configError("photo search requires a term, tag or geo")
	}

	params, err := opts.Params()
	if err != nil {
		return nil, &APIError{
			Kind:    KindConfig,
			Message: fmt.Sprintf("failed to encode search options: %v", err),
			Err:     err,
		}
	}

	return c.Get(ctx, "photos/search", params)
}

// Photos calls the photos stream endpoint for a feature such as "popular"
// or "fresh_today"
func (c *Client) Photos(ctx context.Context, feature string, params Params) (*Response, error) {
	if feature == "" {
		return nil, configError("photo feature is required")
	}
	return c.Get(ctx, "photos", params.merge(Params{"feature": feature}))
}

// Photo fetches a single photo by ID
func (c *Client) Photo(ctx context.Context, id int64, params Params) (*Response, error) {
	if id <= 0 {
		return nil, configError(fmt.Sprintf("invalid photo ID: %d", id))
	}
	return c.Get(ctx, fmt.Sprintf("photos/%d", id), params)
}
