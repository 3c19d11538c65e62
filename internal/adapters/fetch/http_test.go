package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPFetcher_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/ev-1/photo.jpg", r.URL.Path)
		_, _ = w.Write([]byte("jpeg-bytes"))
	}))
	defer srv.Close()

	fetcher := NewHTTPFetcher(srv.Client())
	data, err := fetcher.Fetch(context.Background(), srv.URL+"/ev-1/photo.jpg")
	require.NoError(t, err)
	assert.Equal(t, []byte("jpeg-bytes"), data)
}

func TestHTTPFetcher_Fetch_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	fetcher := NewHTTPFetcher(srv.Client())
	_, err := fetcher.Fetch(context.Background(), srv.URL+"/missing.jpg")
	require.ErrorContains(t, err, "404")
}

func TestHTTPFetcher_Fetch_Cancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	fetcher := NewHTTPFetcher(srv.Client())
	_, err := fetcher.Fetch(ctx, srv.URL+"/slow.jpg")
	require.Error(t, err)
}
