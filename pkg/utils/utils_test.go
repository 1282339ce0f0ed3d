package utils

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	date, err := ParseDate("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), date)

	_, err = ParseDate("")
	assert.ErrorIs(t, err, ErrEmptyDate)

	_, err = ParseDate("2023-02-29")
	assert.Error(t, err)
}

func TestGenerateID(t *testing.T) {
	first, err := GenerateID()
	require.NoError(t, err)
	second, err := GenerateID()
	require.NoError(t, err)

	assert.Len(t, first, idLength)
	assert.NotEqual(t, first, second)
	assert.Regexp(t, "^[a-z0-9]+$", first)
}

func TestDoRequest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":"slow down"}`))
	}))
	defer server.Close()

	req, err := http.NewRequest(http.MethodGet, server.URL, nil)
	require.NoError(t, err)

	body, status, err := DoRequest(server.Client(), req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusTooManyRequests, status)
	assert.JSONEq(t, `{"error":"slow down"}`, string(body))
	assert.False(t, IsSuccessStatus(status))
	assert.True(t, IsSuccessStatus(http.StatusNoContent))
}

func TestDoRequest_TransportErrorHidesQuery(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, _, err := w.(http.Hijacker).Hijack()
		require.NoError(t, err)
		_ = conn.Close()
	}))
	defer server.Close()

	req, err := http.NewRequest(http.MethodGet, server.URL+"/v1/resource?access_token=top-secret&client_secret=app-secret", nil)
	require.NoError(t, err)

	_, status, err := DoRequest(server.Client(), req)
	require.Error(t, err)
	assert.Zero(t, status)
	assert.Contains(t, err.Error(), "GET /v1/resource")
	assert.NotContains(t, err.Error(), "top-secret")
	assert.NotContains(t, err.Error(), "app-secret")
}

func TestDoRequest_KeepsContextError(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "http://127.0.0.1:1/?access_token=top-secret", nil)
	require.NoError(t, err)

	_, _, err = DoRequest(http.DefaultClient, req)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.NotContains(t, err.Error(), "top-secret")
}
