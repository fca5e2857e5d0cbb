package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"fincalc/domain"
	"fincalc/finance"
	"fincalc/service"
)

type AdviceHandler struct {
	responder
	service *service.AdviceService
}

func NewAdviceHandler(service *service.AdviceService, logger *slog.Logger) *AdviceHandler {
	return &AdviceHandler{responder: newResponder(logger), service: service}
}

// tipRequest asks for a tip about a mortgage, a car loan or a free-form
// question. Kind selects which of the fields is read.
type tipRequest struct {
	Kind     domain.CalculationKind `json:"kind"`
	Mortgage *domain.MortgageInputs `json:"mortgage,omitempty"`
	CarLoan  *domain.CarLoanInputs  `json:"carLoan,omitempty"`
	Prompt   string                 `json:"prompt,omitempty"`
}

type tipFailure struct {
	Error    string               `json:"error"`
	Code     string               `json:"code"`
	Decision domain.UsageDecision `json:"decision"`
}

// POST /v1/advice/tips
func (h *AdviceHandler) Tip(w http.ResponseWriter, r *http.Request) {
	var req tipRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	var (
		tip service.Tip
		err error
	)
	switch {
	case req.Kind == domain.KindMortgage && req.Mortgage != nil:
		tip, err = h.service.MortgageTip(r.Context(), *req.Mortgage)
	case req.Kind == domain.KindCarLoan && req.CarLoan != nil:
		tip, err = h.service.CarLoanTip(r.Context(), *req.CarLoan)
	case strings.TrimSpace(req.Prompt) != "":
		tip, err = h.service.Tip(r.Context(), req.Kind, req.Prompt)
	default:
		h.writeError(w, http.StatusBadRequest, "INVALID_REQUEST", "provide mortgage inputs, car loan inputs or a prompt")
		return
	}

	var verr *finance.ValidationError
	switch {
	case err == nil:
		h.writeJSON(w, http.StatusOK, tip)
	case errors.As(err, &verr):
		h.writeValidationError(w, verr, service.Tip{})
	case errors.Is(err, service.ErrQuotaExceeded):
		h.writeJSON(w, http.StatusTooManyRequests, tipFailure{
			Error:    service.UserMessage(err, tip.Decision),
			Code:     "QUOTA_EXCEEDED",
			Decision: tip.Decision,
		})
	case errors.Is(err, service.ErrAdviceUnavailable):
		h.writeJSON(w, http.StatusBadGateway, tipFailure{
			Error:    service.UserMessage(err, tip.Decision),
			Code:     "ADVICE_UNAVAILABLE",
			Decision: tip.Decision,
		})
	default:
		h.logger.Error("advice tip", "err", err)
		h.writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}
