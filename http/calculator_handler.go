package http

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"fincalc/finance"
	"fincalc/service"
)

const maxHistoryLimit = 500

type CalculatorHandler struct {
	responder
	service *service.CalculatorService
}

func NewCalculatorHandler(service *service.CalculatorService, logger *slog.Logger) *CalculatorHandler {
	return &CalculatorHandler{responder: newResponder(logger), service: service}
}

// POST /v1/loan
func (h *CalculatorHandler) CalculateLoan(w http.ResponseWriter, r *http.Request) {
	serveCalculation(h.responder, w, r, h.service.CalculateLoan)
}

// POST /v1/mortgage
func (h *CalculatorHandler) CalculateMortgage(w http.ResponseWriter, r *http.Request) {
	serveCalculation(h.responder, w, r, h.service.CalculateMortgage)
}

// POST /v1/car-loan
func (h *CalculatorHandler) CalculateCarLoan(w http.ResponseWriter, r *http.Request) {
	serveCalculation(h.responder, w, r, h.service.CalculateCarLoan)
}

// POST /v1/amortization
func (h *CalculatorHandler) AmortizationSchedule(w http.ResponseWriter, r *http.Request) {
	serveCalculation(h.responder, w, r, h.service.AmortizationSchedule)
}

// POST /v1/loan-terms
func (h *CalculatorHandler) CompareLoanTerms(w http.ResponseWriter, r *http.Request) {
	serveCalculation(h.responder, w, r, h.service.CompareLoanTerms)
}

func (h *CalculatorHandler) CalculateInvestment(w http.ResponseWriter, r *http.Request) {
	serveCalculation(h.responder, w, r, h.service.CalculateInvestment)
}

func (h *CalculatorHandler) CalculateSavingsGoal(w http.ResponseWriter, r *http.Request) {
	serveCalculation(h.responder, w, r, h.service.CalculateSavingsGoal)
}

func (h *CalculatorHandler) CalculateAffordability(w http.ResponseWriter, r *http.Request) {
	serveCalculation(h.responder, w, r, h.service.CalculateLoanAffordability)
}

func (h *CalculatorHandler) CalculateBreakEven(w http.ResponseWriter, r *http.Request) {
	serveCalculation(h.responder, w, r, h.service.CalculateBreakEvenPoint)
}

// History lists saved calculations, newest first.
// GET /v1/history?limit=N
func (h *CalculatorHandler) History(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			h.writeError(w, http.StatusBadRequest, "INVALID_LIMIT", "limit must be a positive integer")
			return
		}
		limit = min(n, maxHistoryLimit)
	}

	records, err := h.service.History(r.Context(), limit)
	if err != nil {
		h.logger.Error("listing history", "err", err)
		h.writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{"calculations": records})
}

func serveCalculation[I, T any](rs responder, w http.ResponseWriter, r *http.Request, calc func(context.Context, I) finance.Result[T]) {
	var in I
	if !rs.decodeJSON(w, r, &in) {
		return
	}
	res := calc(r.Context(), in)
	if !res.OK() {
		rs.writeValidationError(w, res.Err, res.Fallback())
		return
	}
	rs.writeJSON(w, http.StatusOK, res.Value)
}
