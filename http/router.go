package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"fincalc/service"
)

// Services are the dependencies served by the router. Ping, when set,
// backs the health check.
type Services struct {
	Calculator   *service.CalculatorService
	Entitlements *service.EntitlementService
	Advice       *service.AdviceService
	Preferences  *service.PreferencesService
	Ping         func(context.Context) error
}

// NewRouter mounts the /v1 API and /healthz. A nil limiter disables rate
// limiting. Advice tips are charged against both ScopeAPI and ScopeAdvice.
func NewRouter(svc Services, limiter *RateLimiter, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	calc := NewCalculatorHandler(svc.Calculator, logger)
	ent := NewEntitlementHandler(svc.Entitlements, logger)
	adv := NewAdviceHandler(svc.Advice, logger)
	prefs := NewPreferencesHandler(svc.Preferences, logger)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", healthz(svc.Ping, newResponder(logger)))

	r.Route("/v1", func(r chi.Router) {
		if limiter != nil {
			r.Use(RateLimitMiddleware(limiter, ScopeAPI, logger))
		}

		r.Post("/loan", calc.CalculateLoan)
		r.Post("/mortgage", calc.CalculateMortgage)
		r.Post("/car-loan", calc.CalculateCarLoan)
		r.Post("/amortization", calc.AmortizationSchedule)
		r.Post("/loan-terms", calc.CompareLoanTerms)
		r.Post("/investment", calc.CalculateInvestment)
		r.Post("/savings-goal", calc.CalculateSavingsGoal)
		r.Post("/affordability", calc.CalculateAffordability)
		r.Post("/break-even", calc.CalculateBreakEven)
		r.Get("/history", calc.History)

		r.With(adviceLimit(limiter, logger)).Post("/advice/tips", adv.Tip)

		r.Route("/entitlement", func(r chi.Router) {
			r.Get("/", ent.Status)
			r.Get("/quota", ent.Quota)
			r.Post("/trial", ent.StartTrial)
			r.Post("/upgrade", ent.UpgradeToPro)
		})

		r.Get("/preferences/theme", prefs.GetTheme)
		r.Put("/preferences/theme", prefs.SetTheme)
	})
	return r
}

func healthz(ping func(context.Context) error, rs responder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if ping != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := ping(ctx); err != nil {
				rs.writeError(w, http.StatusServiceUnavailable, "STORE_UNAVAILABLE", err.Error())
				return
			}
		}
		rs.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

// adviceLimit applies the tighter advice budget on top of the API budget.
func adviceLimit(limiter *RateLimiter, logger *slog.Logger) func(http.Handler) http.Handler {
	if limiter == nil {
		return func(next http.Handler) http.Handler { return next }
	}
	return RateLimitMiddleware(limiter, ScopeAdvice, logger)
}

func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			logger.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}
