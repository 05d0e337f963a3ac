package downloader

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProbeExtractsOGTitle(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><head>
			<meta property="og:title" content="My Great Talk">
			<title>My Great Talk - YouTube</title>
		</head><body></body></html>`))
	}))
	defer server.Close()

	title, err := NewProber().Probe(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, "My Great Talk", title)
}

func TestProbeFallsBackToTitleElement(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><head><title> Plain Title </title></head><body></body></html>`))
	}))
	defer server.Close()

	title, err := NewProber().Probe(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, "Plain Title", title)
}

func TestProbeNon200IsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := NewProber().Probe(context.Background(), server.URL)
	assert.Error(t, err)
}

func TestProbeUnreachableHost(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // shut down before probing

	_, err := NewProber().Probe(context.Background(), server.URL)
	assert.Error(t, err)
}
