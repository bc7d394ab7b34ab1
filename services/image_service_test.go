package services

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImgBBUploaderSuccess(t *testing.T) {
	var gotKey, gotImage string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		gotKey = r.PostFormValue("key")
		gotImage = r.PostFormValue("image")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"data":{"url":"https://i.ibb.co/abc/pic.png"}}`))
	}))
	defer server.Close()

	uploader := &ImgBBUploader{APIKey: "test-key", Endpoint: server.URL, Client: server.Client()}

	url, err := uploader.Upload(context.Background(), []byte("image-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "https://i.ibb.co/abc/pic.png", url)
	assert.Equal(t, "test-key", gotKey)
	assert.Equal(t, base64.StdEncoding.EncodeToString([]byte("image-bytes")), gotImage)
}

func TestImgBBUploaderAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"success":false,"error":{"message":"Invalid API key"}}`))
	}))
	defer server.Close()

	uploader := &ImgBBUploader{APIKey: "bad-key", Endpoint: server.URL, Client: server.Client()}

	url, err := uploader.Upload(context.Background(), []byte("image-bytes"))
	assert.Error(t, err)
	assert.Empty(t, url)
	assert.Contains(t, err.Error(), "Invalid API key")
}

func TestImgBBUploaderHostUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	uploader := &ImgBBUploader{APIKey: "test-key", Endpoint: server.URL, Client: http.DefaultClient}

	_, err := uploader.Upload(context.Background(), []byte("image-bytes"))
	assert.Error(t, err)
}

func TestImgBBUploaderMissingKey(t *testing.T) {
	uploader := &ImgBBUploader{Endpoint: "http://unused", Client: http.DefaultClient}

	_, err := uploader.Upload(context.Background(), []byte("image-bytes"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}
