package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAudioFetcherUsesDeclaredAudioType(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "audio/mpeg; charset=binary")
		_, _ = w.Write([]byte("ID3-bytes"))
	}))
	defer srv.Close()

	data, err := NewAudioFetcher(srv.Client(), "", 0).Fetch(context.Background(), srv.URL+"/a.mp3")
	require.NoError(t, err)
	assert.Equal(t, "audio/mpeg", data.MIMEType)
	assert.Equal(t, []byte("ID3-bytes"), data.Data)
}

func TestAudioFetcherFallsBackToDefaultType(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/octet-stream")
		_, _ = w.Write([]byte("webm"))
	}))
	defer srv.Close()

	data, err := NewAudioFetcher(srv.Client(), "audio/ogg", 0).Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "audio/ogg", data.MIMEType)
}

func TestAudioFetcherRejectsErrorsAndOversize(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write(make([]byte, 64))
	}))
	defer srv.Close()

	fetcher := NewAudioFetcher(srv.Client(), "audio/webm", 16)
	_, err := fetcher.Fetch(context.Background(), srv.URL+"/missing")
	assert.ErrorContains(t, err, "404")

	_, err = fetcher.Fetch(context.Background(), srv.URL+"/big")
	assert.ErrorContains(t, err, "exceeds")
}

func TestAudioFetcherRestrictsHosts(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		_, _ = w.Write([]byte("webm"))
	}))
	defer srv.Close()
	srvURL, err := url.Parse(srv.URL)
	require.NoError(t, err)

	fetcher := NewAudioFetcher(srv.Client(), "", 0).WithAllowedHosts(srvURL.Host)
	_, err = fetcher.Fetch(context.Background(), srv.URL+"/ok.webm")
	require.NoError(t, err)

	_, err = fetcher.Fetch(context.Background(), "http://169.254.169.254/latest/meta-data")
	assert.ErrorIs(t, err, ErrAudioHostNotAllowed)
	_, err = fetcher.Fetch(context.Background(), "file:///etc/passwd")
	assert.ErrorIs(t, err, ErrAudioHostNotAllowed)
	assert.Equal(t, 1, hits)
}

func TestAudioFetcherBlocksRedirectToOtherHost(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "http://internal.invalid/secret", http.StatusFound)
	}))
	defer srv.Close()
	srvURL, err := url.Parse(srv.URL)
	require.NoError(t, err)

	_, err = NewAudioFetcher(srv.Client(), "", 0).WithAllowedHosts(srvURL.Host).Fetch(context.Background(), srv.URL)
	assert.ErrorIs(t, err, ErrAudioHostNotAllowed)
}
