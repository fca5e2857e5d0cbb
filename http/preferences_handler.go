package http

import (
	"log/slog"
	"net/http"

	"fincalc/service"
)

type PreferencesHandler struct {
	responder
	service *service.PreferencesService
}

func NewPreferencesHandler(service *service.PreferencesService, logger *slog.Logger) *PreferencesHandler {
	return &PreferencesHandler{responder: newResponder(logger), service: service}
}

type themeBody struct {
	Theme string `json:"theme"`
}

// savedTheme echoes the requested theme. Saved is false when the store
// rejected the write; the theme still applies for the caller's session.
type savedTheme struct {
	themeBody
	Saved bool `json:"saved"`
}

func (h *PreferencesHandler) GetTheme(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, themeBody{Theme: string(h.service.Theme(r.Context()))})
}

func (h *PreferencesHandler) SetTheme(w http.ResponseWriter, r *http.Request) {
	var body themeBody
	if !h.decodeJSON(w, r, &body) {
		return
	}
	theme, err := service.ParseTheme(body.Theme)
	if err != nil {
		h.writeJSON(w, http.StatusUnprocessableEntity, validationBody{
			Error:    err.Error(),
			Code:     "VALIDATION_ERROR",
			Field:    "theme",
			Fallback: themeBody{Theme: string(service.ThemeSystem)},
		})
		return
	}
	saved := true
	if err := h.service.SetTheme(r.Context(), theme); err != nil {
		h.logger.Warn("theme not persisted", "theme", theme, "err", err)
		saved = false
	}
	h.writeJSON(w, http.StatusOK, savedTheme{themeBody: themeBody{Theme: string(theme)}, Saved: saved})
}
