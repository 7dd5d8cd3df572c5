package services

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"altura-admin/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func apkUpstream(t *testing.T, h http.HandlerFunc) *APKProxy {
	t.Helper()
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)
	return NewAPKProxy(ts.URL+"/api/apk/download", ts.Client())
}

func TestAPKProxyOpenStreamsBody(t *testing.T) {
	p := apkUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "no-cache", r.Header.Get("Cache-Control"))
		assert.Contains(t, r.Header.Get("Accept"), APKContentType)
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		_, _ = w.Write([]byte("PK\x03\x04apk-bytes"))
	})

	dl, err := p.Open(context.Background(), "req-1")
	require.NoError(t, err)
	defer dl.Close()

	body, err := io.ReadAll(dl.Body)
	require.NoError(t, err)
	assert.Equal(t, "PK\x03\x04apk-bytes", string(body))
	assert.Equal(t, int64(len(body)), dl.ContentLength)
}

func TestAPKProxyOpenEmpty(t *testing.T) {
	p := apkUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	_, err := p.Open(context.Background(), "")
	require.Error(t, err)
	status, msg := DownloadError(err)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "APK file is empty", msg)
}

func TestAPKProxyOpenUpstreamStatus(t *testing.T) {
	p := apkUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	})

	_, err := p.Open(context.Background(), "")
	status, msg := DownloadError(err)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Server error: 404 Not Found", msg)
}

func TestAPKProxyOpenNetworkError(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close()

	_, err := NewAPKProxy(url, nil).Open(context.Background(), "")
	_, isUpstream := domain.AsUpstream(err)
	assert.True(t, isUpstream)
	status, msg := DownloadError(err)
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "Failed to download APK", msg)
}

func TestAPKProxyProbe(t *testing.T) {
	p := apkUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodHead, r.Method)
		w.Header().Set("Content-Type", APKContentType)
		w.WriteHeader(http.StatusOK)
	})

	_, ok := p.LastProbe()
	assert.False(t, ok)

	res := p.Probe(context.Background())
	assert.True(t, res.OK)
	assert.Equal(t, http.StatusOK, res.Status)
	assert.Equal(t, "OK", res.StatusText)
	assert.Equal(t, APKContentType, res.Headers["content-type"])
	assert.Empty(t, res.Error)

	last, ok := p.LastProbe()
	require.True(t, ok)
	assert.Equal(t, res.Timestamp, last.Timestamp)
}

func TestAPKProxyProbeFailure(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close()

	res := NewAPKProxy(url, nil).Probe(context.Background())
	assert.False(t, res.OK)
	assert.NotEmpty(t, res.Error)
	assert.False(t, res.Timestamp.IsZero())
}
