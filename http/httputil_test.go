package http

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResponder_EncodeFailureUsesHandlerLogger(t *testing.T) {
	var logs bytes.Buffer
	rs := newResponder(slog.New(slog.NewTextHandler(&logs, nil)))

	w := httptest.NewRecorder()
	rs.writeJSON(w, http.StatusOK, map[string]any{"bad": make(chan int)})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, logs.String(), "encoding response")
}

func TestResponder_NilLoggerFallsBackToDefault(t *testing.T) {
	rs := newResponder(nil)
	assert.NotNil(t, rs.logger)

	w := httptest.NewRecorder()
	rs.writeError(w, http.StatusTeapot, "TEAPOT", "short and stout")
	assert.Equal(t, http.StatusTeapot, w.Code)
	assert.JSONEq(t, `{"error": "short and stout", "code": "TEAPOT"}`, w.Body.String())
}
