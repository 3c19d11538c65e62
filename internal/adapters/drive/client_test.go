package drive

import (
	"context"
	"encoding/json"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDriveClient_CreateFolder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/drive/v3/files", r.URL.Path)
		assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
		assert.Contains(t, r.URL.RawQuery, "fields=id")

		var meta map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&meta))
		assert.Equal(t, "Memoir - Ana & Leo", meta["name"])
		assert.Equal(t, "application/vnd.google-apps.folder", meta["mimeType"])

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{
			"id":          "folder-1",
			"webViewLink": "https://drive.google.com/folder-1",
		})
	}))
	defer srv.Close()

	client := NewClient(srv.Client(), srv.URL)
	folder, err := client.CreateFolder(context.Background(), "tok-1", "Memoir - Ana & Leo")
	require.NoError(t, err)
	assert.Equal(t, "folder-1", folder.ID)
	assert.Equal(t, "https://drive.google.com/folder-1", folder.Link)
}

func TestDriveClient_CreateFolder_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	}))
	defer srv.Close()

	client := NewClient(srv.Client(), srv.URL)
	_, err := client.CreateFolder(context.Background(), "bad-token", "Memoir - X")
	require.ErrorContains(t, err, "403")
}

func TestDriveClient_CreateFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/upload/drive/v3/files", r.URL.Path)
		assert.Contains(t, r.URL.RawQuery, "uploadType=multipart")
		assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))

		mediaType, params, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
		require.NoError(t, err)
		require.Equal(t, "multipart/related", mediaType)

		mr := multipart.NewReader(r.Body, params["boundary"])

		metaPart, err := mr.NextPart()
		require.NoError(t, err)
		var meta map[string]any
		require.NoError(t, json.NewDecoder(metaPart).Decode(&meta))
		assert.Equal(t, "Mia-1718355600000.jpg", meta["name"])
		assert.Equal(t, []any{"folder-1"}, meta["parents"])

		mediaPart, err := mr.NextPart()
		require.NoError(t, err)
		assert.Equal(t, "image/jpeg", mediaPart.Header.Get("Content-Type"))
		data, err := io.ReadAll(mediaPart)
		require.NoError(t, err)
		assert.Equal(t, []byte("jpeg-bytes"), data)

		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewClient(srv.Client(), srv.URL)
	err := client.CreateFile(context.Background(), "tok-1", "folder-1", "Mia-1718355600000.jpg", "image/jpeg", []byte("jpeg-bytes"))
	require.NoError(t, err)
}

func TestDriveClient_CreateFile_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := NewClient(srv.Client(), srv.URL)
	err := client.CreateFile(context.Background(), "tok-1", "folder-1", "x.jpg", "image/jpeg", nil)
	require.ErrorContains(t, err, "429")
}
