package http

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"mime"
	"net"
	"net/http"

	"fincalc/finance"
)

const maxRequestBytes = 1 << 20

type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// validationBody carries the zero-valued result alongside the failure so
// clients can render it unchanged.
type validationBody struct {
	Error    string `json:"error"`
	Code     string `json:"code"`
	Field    string `json:"field"`
	Fallback any    `json:"fallback"`
}

// responder writes JSON responses and reports encode and write failures
// to the handler's logger.
type responder struct {
	logger *slog.Logger
}

func newResponder(logger *slog.Logger) responder {
	if logger == nil {
		logger = slog.Default()
	}
	return responder{logger: logger}
}

// writeJSON encodes into a buffer first so a failed encode can still
// produce a 500.
func (rs responder) writeJSON(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		rs.logger.Error("encoding response", "err", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		rs.logger.Debug("writing response", "err", err)
	}
}

func (rs responder) writeError(w http.ResponseWriter, status int, code, message string) {
	rs.writeJSON(w, status, errorBody{Error: message, Code: code})
}

func (rs responder) writeValidationError(w http.ResponseWriter, verr *finance.ValidationError, fallback any) {
	rs.writeJSON(w, http.StatusUnprocessableEntity, validationBody{
		Error:    verr.Error(),
		Code:     "VALIDATION_ERROR",
		Field:    verr.Field,
		Fallback: fallback,
	})
}

// decodeJSON decodes the request body into v and writes a 400 or 415 on
// failure.
func (rs responder) decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if ct := r.Header.Get("Content-Type"); ct != "" {
		mt, _, err := mime.ParseMediaType(ct)
		if err != nil || mt != "application/json" {
			rs.writeError(w, http.StatusUnsupportedMediaType, "UNSUPPORTED_MEDIA_TYPE", "Content-Type must be application/json")
			return false
		}
	}
	defer r.Body.Close()
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes)).Decode(v); err != nil {
		rs.writeError(w, http.StatusBadRequest, "INVALID_JSON", "invalid request body")
		return false
	}
	return true
}

func clientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
