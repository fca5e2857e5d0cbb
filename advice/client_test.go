package advice

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComplete_Success(t *testing.T) {
	var got completionRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"completion":"  Pay a little extra each month.  "}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "secret", time.Second)
	text, err := c.Complete(context.Background(), []Message{
		{Role: "system", Content: "coach"},
		{Role: "user", Content: "tip please"},
	})

	require.NoError(t, err)
	assert.Equal(t, "Pay a little extra each month.", text)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "user", got.Messages[1].Role)
}

func TestComplete_NoAPIKeyOmitsHeader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"completion":"ok"}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, "", time.Second).Complete(context.Background(), nil)
	require.NoError(t, err)
}

func TestComplete_Non2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, "", time.Second).Complete(context.Background(), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Contains(t, err.Error(), "503")
}

func TestComplete_EmptyCompletion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"completion":"   "}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, "", time.Second).Complete(context.Background(), nil)
	assert.ErrorIs(t, err, ErrEmptyCompletion)
}

func TestComplete_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, "", time.Second).Complete(context.Background(), nil)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestComplete_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	_, err := NewClient(srv.URL, "", 50*time.Millisecond).Complete(context.Background(), nil)
	assert.ErrorIs(t, err, ErrTimeout)
}

func TestComplete_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := NewClient(url, "", time.Second).Complete(context.Background(), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.False(t, errors.Is(err, ErrTimeout))
}
