package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fincalc/advice"
	"fincalc/domain"
	"fincalc/repository"
	"fincalc/service"
)

type stubAdvice struct {
	text string
	err  error
}

func (s *stubAdvice) Complete(context.Context, []advice.Message) (string, error) {
	return s.text, s.err
}

type testServer struct {
	handler http.Handler
	store   *repository.MemoryStore
}

func newTestServer(t *testing.T, client service.AdviceClient, limiter *RateLimiter) *testServer {
	t.Helper()
	store := repository.NewMemoryStore()
	return &testServer{handler: newTestRouter(t, store, client, limiter), store: store}
}

// newTestRouter wires the services over kv; history always goes to memory.
func newTestRouter(t *testing.T, kv repository.KeyValueStore, client service.AdviceClient, limiter *RateLimiter) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	clock := func() time.Time { return time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC) }
	ent := service.NewEntitlementService(kv, logger, service.WithClock(clock))

	svc := Services{
		Calculator:   service.NewCalculatorService(repository.NewMemoryStore(), logger),
		Entitlements: ent,
		Advice:       service.NewAdviceService(client, ent, logger),
		Preferences:  service.NewPreferencesService(kv, logger),
	}
	return NewRouter(svc, limiter, logger)
}

var errDown = errors.New("store unavailable")

// downStore fails every read and write.
type downStore struct{}

func (downStore) Get(context.Context, string) (string, bool, error) { return "", false, errDown }

func (downStore) Set(context.Context, string, string) error { return errDown }

func (s *testServer) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.handler.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

const mortgageBody = `{
	"homePrice": 450000,
	"downPayment": 90000,
	"interestRate": 7.25,
	"loanTerm": 30,
	"propertyTaxRate": 1.2,
	"homeInsuranceRate": 0.5,
	"pmiRate": 0.5,
	"hoaFees": 0
}`

func TestMortgageHandler_OK(t *testing.T) {
	srv := newTestServer(t, nil, nil)

	w := srv.do(t, http.MethodPost, "/v1/mortgage", mortgageBody)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	got := decode[domain.MortgageCalculation](t, w)
	assert.Equal(t, 360000.0, got.LoanAmount)
	assert.Equal(t, 80.0, got.LoanToValue)
	assert.Equal(t, 2455.83, got.MonthlyPayment)
	assert.False(t, got.RequiresPMI)
}

func TestMortgageHandler_ValidationError(t *testing.T) {
	srv := newTestServer(t, nil, nil)

	w := srv.do(t, http.MethodPost, "/v1/mortgage", `{"homePrice": 100000, "downPayment": 100000, "interestRate": 5, "loanTerm": 30}`)

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	body := decode[struct {
		Error    string                     `json:"error"`
		Field    string                     `json:"field"`
		Fallback domain.MortgageCalculation `json:"fallback"`
	}](t, w)
	assert.Equal(t, "downPayment", body.Field)
	assert.NotEmpty(t, body.Error)
	assert.Equal(t, domain.MortgageCalculation{}, body.Fallback)
}

func TestCalculationHandler_BadJSON(t *testing.T) {
	srv := newTestServer(t, nil, nil)

	w := srv.do(t, http.MethodPost, "/v1/car-loan", `{"vehiclePrice":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCalculationHandler_WrongContentType(t *testing.T) {
	srv := newTestServer(t, nil, nil)

	req := httptest.NewRequest(http.MethodPost, "/v1/loan", bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "text/plain")
	w := httptest.NewRecorder()
	srv.handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)
}

func TestCalculationHandler_MethodNotAllowed(t *testing.T) {
	srv := newTestServer(t, nil, nil)

	w := srv.do(t, http.MethodGet, "/v1/loan", "")
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestAmortizationHandler(t *testing.T) {
	srv := newTestServer(t, nil, nil)

	w := srv.do(t, http.MethodPost, "/v1/amortization",
		`{"loanAmount": 360000, "interestRate": 7.25, "termYears": 30, "monthlyPayment": 2455.83}`)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	entries := decode[[]domain.AmortizationEntry](t, w)
	require.Len(t, entries, 360)
	assert.Equal(t, 0.0, entries[len(entries)-1].Balance)
}

func TestHistoryHandler(t *testing.T) {
	srv := newTestServer(t, nil, nil)

	srv.do(t, http.MethodPost, "/v1/mortgage", mortgageBody)
	srv.do(t, http.MethodPost, "/v1/loan", `{"amount": 10000, "interestRate": 12, "termMonths": 24}`)

	w := srv.do(t, http.MethodGet, "/v1/history?limit=1", "")
	require.Equal(t, http.StatusOK, w.Code)
	body := decode[struct {
		Calculations []domain.CalculationRecord `json:"calculations"`
	}](t, w)
	require.Len(t, body.Calculations, 1)
	assert.Equal(t, domain.KindLoan, body.Calculations[0].Kind)

	assert.Equal(t, http.StatusBadRequest, srv.do(t, http.MethodGet, "/v1/history?limit=zero", "").Code)
}

func TestEntitlementHandlers(t *testing.T) {
	srv := newTestServer(t, nil, nil)

	w := srv.do(t, http.MethodGet, "/v1/entitlement", "")
	require.Equal(t, http.StatusOK, w.Code)
	st := decode[domain.EntitlementStatus](t, w)
	assert.Equal(t, domain.SubscriptionFree, st.SubscriptionType)
	assert.Equal(t, 3, st.Quota.DailyLimit)

	w = srv.do(t, http.MethodPost, "/v1/entitlement/trial", "")
	require.Equal(t, http.StatusOK, w.Code)
	st = decode[domain.EntitlementStatus](t, w)
	assert.Equal(t, domain.SubscriptionTrial, st.SubscriptionType)
	assert.Equal(t, 7, st.DaysLeft)

	w = srv.do(t, http.MethodPost, "/v1/entitlement/trial", "")
	assert.Equal(t, http.StatusConflict, w.Code)

	w = srv.do(t, http.MethodPost, "/v1/entitlement/upgrade", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decode[domain.EntitlementStatus](t, w).IsPro)

	w = srv.do(t, http.MethodGet, "/v1/entitlement/quota", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decode[domain.UsageQuota](t, w).Unlimited)
}

func TestAdviceHandler_QuotaEnforced(t *testing.T) {
	srv := newTestServer(t, &stubAdvice{text: "Pay extra toward principal."}, nil)
	body := `{"kind": "mortgage", "mortgage": ` + mortgageBody + `}`

	for i := range 3 {
		w := srv.do(t, http.MethodPost, "/v1/advice/tips", body)
		require.Equal(t, http.StatusOK, w.Code, "tip %d: %s", i+1, w.Body.String())
		tip := decode[service.Tip](t, w)
		assert.Equal(t, "Pay extra toward principal.", tip.Text)
		assert.Equal(t, 2-i, tip.Decision.Remaining)
	}

	w := srv.do(t, http.MethodPost, "/v1/advice/tips", body)
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	failure := decode[tipFailure](t, w)
	assert.Equal(t, "QUOTA_EXCEEDED", failure.Code)
	assert.False(t, failure.Decision.Allowed)
	assert.NotEmpty(t, failure.Error)
}

func TestAdviceHandler_UpstreamFailure(t *testing.T) {
	srv := newTestServer(t, &stubAdvice{err: errors.Join(advice.ErrUnavailable, errors.New("503"))}, nil)

	w := srv.do(t, http.MethodPost, "/v1/advice/tips", `{"kind": "loan", "prompt": "Should I refinance?"}`)

	require.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, "ADVICE_UNAVAILABLE", decode[tipFailure](t, w).Code)

	q := decode[domain.UsageQuota](t, srv.do(t, http.MethodGet, "/v1/entitlement/quota", ""))
	assert.Zero(t, q.DailyCount)
}

func TestAdviceHandler_InvalidInputs(t *testing.T) {
	srv := newTestServer(t, &stubAdvice{text: "tip"}, nil)

	w := srv.do(t, http.MethodPost, "/v1/advice/tips", `{"kind": "car_loan", "carLoan": {"vehiclePrice": 0}}`)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = srv.do(t, http.MethodPost, "/v1/advice/tips", `{"kind": "mortgage"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPreferencesHandler(t *testing.T) {
	srv := newTestServer(t, nil, nil)

	w := srv.do(t, http.MethodGet, "/v1/preferences/theme", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "system", decode[themeBody](t, w).Theme)

	w = srv.do(t, http.MethodPut, "/v1/preferences/theme", `{"theme": "dark"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = srv.do(t, http.MethodGet, "/v1/preferences/theme", "")
	assert.Equal(t, "dark", decode[themeBody](t, w).Theme)

	w = srv.do(t, http.MethodPut, "/v1/preferences/theme", `{"theme": "neon"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t, nil, nil)
	assert.Equal(t, http.StatusOK, srv.do(t, http.MethodGet, "/healthz", "").Code)
}

func TestRateLimit(t *testing.T) {
	limiter := NewRateLimiter(map[Scope]Limit{ScopeAPI: {Burst: 2, Window: time.Minute}})
	defer limiter.Stop()
	srv := newTestServer(t, nil, limiter)

	assert.Equal(t, http.StatusOK, srv.do(t, http.MethodGet, "/v1/entitlement", "").Code)
	assert.Equal(t, http.StatusOK, srv.do(t, http.MethodGet, "/v1/entitlement", "").Code)

	w := srv.do(t, http.MethodGet, "/v1/entitlement", "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "30", w.Header().Get("Retry-After"))
	assert.Equal(t, "RATE_LIMITED", decode[errorBody](t, w).Code)

	assert.Equal(t, http.StatusOK, srv.do(t, http.MethodGet, "/healthz", "").Code)
}

func TestRateLimit_AdviceHasItsOwnBudget(t *testing.T) {
	limiter := NewRateLimiter(map[Scope]Limit{
		ScopeAPI:    {Burst: 100, Window: time.Minute},
		ScopeAdvice: {Burst: 1, Window: time.Minute},
	})
	defer limiter.Stop()
	srv := newTestServer(t, &stubAdvice{text: "tip"}, limiter)
	body := `{"kind": "loan", "prompt": "Should I refinance?"}`

	require.Equal(t, http.StatusOK, srv.do(t, http.MethodPost, "/v1/advice/tips", body).Code)

	w := srv.do(t, http.MethodPost, "/v1/advice/tips", body)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "60", w.Header().Get("Retry-After"))

	q := decode[domain.UsageQuota](t, srv.do(t, http.MethodGet, "/v1/entitlement/quota", ""))
	assert.Equal(t, 1, q.DailyCount, "a rate-limited tip is not counted")
	assert.Equal(t, http.StatusOK, srv.do(t, http.MethodPost, "/v1/mortgage", mortgageBody).Code)
}

func TestEntitlementHandler_TrialUnverifiable(t *testing.T) {
	h := newTestRouter(t, downStore{}, nil, nil)

	req := httptest.NewRequest(http.MethodPost, "/v1/entitlement/trial", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	body := decode[trialFailure](t, w)
	assert.Equal(t, "STORE_UNAVAILABLE", body.Code)
	assert.Equal(t, domain.SubscriptionFree, body.Status.SubscriptionType)
}

func TestPreferencesHandler_StoreDownKeepsTheme(t *testing.T) {
	h := newTestRouter(t, downStore{}, nil, nil)

	req := httptest.NewRequest(http.MethodPut, "/v1/preferences/theme", bytes.NewBufferString(`{"theme": "dark"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decode[savedTheme](t, w)
	assert.Equal(t, "dark", body.Theme)
	assert.False(t, body.Saved)
}
