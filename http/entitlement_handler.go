package http

import (
	"errors"
	"log/slog"
	"net/http"

	"fincalc/domain"
	"fincalc/service"
)

type EntitlementHandler struct {
	responder
	service *service.EntitlementService
}

func NewEntitlementHandler(service *service.EntitlementService, logger *slog.Logger) *EntitlementHandler {
	return &EntitlementHandler{responder: newResponder(logger), service: service}
}

type trialFailure struct {
	Error  string                   `json:"error"`
	Code   string                   `json:"code"`
	Status domain.EntitlementStatus `json:"status"`
}

// GET /v1/entitlement
func (h *EntitlementHandler) Status(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.service.CheckStatus(r.Context()))
}

// GET /v1/entitlement/quota
func (h *EntitlementHandler) Quota(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.service.Quota(r.Context()))
}

// StartTrial answers 409 with the unchanged status when the trial was
// already used, and 503 when the stored trial date could not be read.
// POST /v1/entitlement/trial
func (h *EntitlementHandler) StartTrial(w http.ResponseWriter, r *http.Request) {
	st, err := h.service.StartTrial(r.Context())
	switch {
	case err == nil:
		h.writeJSON(w, http.StatusOK, st)
	case errors.Is(err, service.ErrTrialAlreadyUsed):
		h.writeJSON(w, http.StatusConflict, trialFailure{err.Error(), "TRIAL_ALREADY_USED", st})
	case errors.Is(err, service.ErrTrialUnverified):
		h.logger.Warn("trial not started", "err", err)
		h.writeJSON(w, http.StatusServiceUnavailable, trialFailure{"trial state is temporarily unavailable", "STORE_UNAVAILABLE", st})
	default:
		h.logger.Error("starting trial", "err", err)
		h.writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}

// POST /v1/entitlement/upgrade
func (h *EntitlementHandler) UpgradeToPro(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.service.UpgradeToPro(r.Context()))
}
