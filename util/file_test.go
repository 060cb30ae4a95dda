package util

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewNRGBA(image.Rect(0, 0, 3, 2))))
	return buf.Bytes()
}

func TestOpenImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "img.png")
	require.NoError(t, os.WriteFile(path, pngBytes(t), 0644))

	img, err := OpenImage(path)
	require.NoError(t, err)
	assert.Equal(t, 3, img.Bounds().Dx())
	assert.Equal(t, 2, img.Bounds().Dy())

	_, err = OpenImage(filepath.Join(t.TempDir(), "missing.png"))
	assert.Error(t, err)
}

func TestFetchAndDownloadImage(t *testing.T) {
	data := pngBytes(t)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}))
	defer server.Close()

	got, err := Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, data, got)

	img, err := DownloadImage(server.URL)
	require.NoError(t, err)
	assert.Equal(t, 3, img.Bounds().Dx())
}

func TestDownloadImageBadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := DownloadImage(server.URL)
	assert.Error(t, err)
}
