package fivehundredpx

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPhotoSearchOptionsParams(t *testing.T) {
	opts := PhotoSearchOptions{
		Term:           "Search Term",
		Tags:           []string{"landscape", "sunset"},
		ImageSize:      []int{2, 440},
		ResultsPerPage: 40,
	}

	params, err := opts.Params()
	require.NoError(t, err)
	assert.Equal(t, Params{
		"term":       "Search Term",
		"tag":        "landscape,sunset",
		"image_size": "2,440",
		"rpp":        "40",
	}, params)
}

func TestSearchPhotos(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/photos/search", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "cats,kittens", q.Get("tag"))
		assert.Equal(t, "20", q.Get("rpp"))
		assert.Equal(t, "rating", q.Get("sort"))
		assert.Equal(t, "test-key", q.Get("consumer_key"))
		assert.False(t, q.Has("page"))

		w.Write([]byte(`{"current_page": 1, "photos": [{"id": 1, "name": "Tabby"}]}`))
	}, Config{})

	resp, err := client.SearchPhotos(context.Background(), PhotoSearchOptions{
		Tags:           []string{"cats", "kittens"},
		Sort:           "rating",
		ResultsPerPage: 20,
	})
	require.NoError(t, err)
	assert.Equal(t, "Tabby", resp.Get("photos.0.name").String())
	assert.Equal(t, int64(1), resp.Get("current_page").Int())
}

func TestSearchPhotosRequiresCriteria(t *testing.T) {
	client, err := New(Config{Key: "key", Secret: "secret"})
	require.NoError(t, err)

	_, err = client.SearchPhotos(context.Background(), PhotoSearchOptions{ResultsPerPage: 10})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConfig)
}

func TestPhotos(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/photos", r.URL.Path)
		assert.Equal(t, "popular", r.URL.Query().Get("feature"))
		assert.Equal(t, "5", r.URL.Query().Get("rpp"))
		w.Write([]byte(`{"feature": "popular", "photos": []}`))
	}, Config{})

	resp, err := client.Photos(context.Background(), "popular", Params{"rpp": 5})
	require.NoError(t, err)
	assert.Equal(t, "popular", resp.Get("feature").String())

	_, err = client.Photos(context.Background(), "", nil)
	assert.ErrorIs(t, err, ErrConfig)
}

func TestPhoto(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/photos/4928401", r.URL.Path)
		w.Write([]byte(`{"photo": {"id": 4928401, "name": "Sunrise"}}`))
	}, Config{})

	resp, err := client.Photo(context.Background(), 4928401, nil)
	require.NoError(t, err)

	var body struct {
		Photo struct {
			ID   int64  `json:"id"`
			Name string `json:"name"`
		} `json:"photo"`
	}
	require.NoError(t, resp.Decode(&body))
	assert.Equal(t, int64(4928401), body.Photo.ID)
	assert.Equal(t, "Sunrise", body.Photo.Name)

	_, err = client.Photo(context.Background(), 0, nil)
	assert.ErrorIs(t, err, ErrConfig)
}
