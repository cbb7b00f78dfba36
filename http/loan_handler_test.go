package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"refi-advisor/config"
	"refi-advisor/domain"
	"refi-advisor/repository"
	"refi-advisor/service"
)

func newTestRouter(t *testing.T, capacity int, trustProxy bool) http.Handler {
	t.Helper()

	policy, err := config.DefaultPolicy()
	if err != nil {
		t.Fatalf("default policy: %v", err)
	}

	refinance := service.NewRefinanceService(
		policy,
		repository.NewAdvisoryRepositoryMemory(service.MaxHistoryLimit),
		repository.NewMemoryCache(),
		service.NewTemplateExplainer(policy.Refinance),
		time.Hour,
	)

	limiter := NewRateLimiter(capacity, time.Minute)
	t.Cleanup(limiter.Stop)

	return NewRouter(Handlers{
		Refinance:      NewRefinanceHandler(refinance),
		Loan:           NewLoanHandler(service.NewLoanService(policy.Bounds)),
		EarlyRepayment: NewEarlyRepaymentHandler(service.NewEarlyRepaymentService(policy)),
	}, limiter, trustProxy)
}

func postJSON(router http.Handler, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCalculatePaymentHandler_OK(t *testing.T) {

	router := newTestRouter(t, 30, false)

	w := postJSON(router, "/loan/payment", `{
		"principal": 1200,
		"annual_rate": 0,
		"years": 1
	}`)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body)
	}

	var result domain.PaymentResult
	if err := json.NewDecoder(w.Body).Decode(&result); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if result.MonthlyPayment != 100 || result.TermMonths != 12 {
		t.Errorf("unexpected result %+v", result)
	}
}

func TestCalculatePaymentHandler_MethodNotAllowed(t *testing.T) {

	router := newTestRouter(t, 30, false)

	req := httptest.NewRequest(http.MethodGet, "/loan/payment", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %d", w.Code)
	}
}

func TestCalculatePaymentHandler_BadRequest(t *testing.T) {

	router := newTestRouter(t, 30, false)

	w := postJSON(router, "/loan/payment", `{invalid-json}`)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestCalculatePaymentHandler_UnsupportedMediaType(t *testing.T) {

	router := newTestRouter(t, 30, false)

	req := httptest.NewRequest(http.MethodPost, "/loan/payment", bytes.NewBufferString(`{}`))
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnsupportedMediaType {
		t.Errorf("expected 415, got %d", w.Code)
	}
}

func TestScheduleHandler_OK(t *testing.T) {

	router := newTestRouter(t, 30, false)

	w := postJSON(router, "/loan/schedule", `{"principal": 300000, "annual_rate": 4.5, "years": 15}`)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body)
	}

	var body struct {
		Years []domain.AmortizationRow `json:"years"`
	}
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Years) != 15 {
		t.Errorf("expected 15 rows, got %d", len(body.Years))
	}
}

func TestEvaluateHandler_OK(t *testing.T) {

	router := newTestRouter(t, 30, false)

	w := postJSON(router, "/refinance/evaluate", `{
		"balance": 1000000,
		"current_rate": 5.5,
		"new_rate": 3.5,
		"years": 25,
		"costs": 10000
	}`)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body)
	}

	var evaluation domain.RefinanceEvaluation
	if err := json.NewDecoder(w.Body).Decode(&evaluation); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !evaluation.Result.IsWorthwhile || evaluation.Formatted.Headline != service.HeadlineWorthwhile {
		t.Errorf("unexpected evaluation %+v", evaluation)
	}

	req := httptest.NewRequest(http.MethodGet, "/refinance/history?limit=5", nil)
	hw := httptest.NewRecorder()
	router.ServeHTTP(hw, req)

	var history struct {
		Records []domain.AdvisoryRecord `json:"records"`
	}
	if err := json.NewDecoder(hw.Body).Decode(&history); err != nil {
		t.Fatalf("decode history: %v", err)
	}
	if len(history.Records) != 1 || history.Records[0].ID != evaluation.ID {
		t.Errorf("expected the evaluation in history, got %+v", history.Records)
	}
}

func TestEvaluateHandler_ValidationErrors(t *testing.T) {

	router := newTestRouter(t, 30, false)

	w := postJSON(router, "/refinance/evaluate", `{"balance": 500000, "current_rate": 4, "new_rate": 4.5}`)

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", w.Code)
	}

	var body struct {
		Errors []service.FieldError `json:"errors"`
	}
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	verrs := service.ValidationErrors(body.Errors)
	if !verrs.Has(service.FieldYears, service.KindMissingRequiredField) ||
		!verrs.Has(service.FieldNewRate, service.KindInvalidRelationship) {
		t.Errorf("unexpected errors %+v", body.Errors)
	}
}

func TestHistoryHandler_InvalidLimit(t *testing.T) {

	router := newTestRouter(t, 30, false)

	req := httptest.NewRequest(http.MethodGet, "/refinance/history?limit=abc", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestEarlyRepaymentHandlers(t *testing.T) {

	router := newTestRouter(t, 30, false)

	w := postJSON(router, "/early-repayment/estimate", `{"principal": 1000000, "current_rate": 6, "years_left": 12}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body)
	}
	var result domain.EarlyRepaymentResult
	if err := json.NewDecoder(w.Body).Decode(&result); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if result.Track != service.TrackFixedUnlinked || result.FormattedFee != "₪2,640" {
		t.Errorf("unexpected result %+v", result)
	}

	req := httptest.NewRequest(http.MethodGet, "/early-repayment/rates", nil)
	rw := httptest.NewRecorder()
	router.ServeHTTP(rw, req)

	var rates struct {
		Rates []service.MarketRate `json:"rates"`
	}
	if err := json.NewDecoder(rw.Body).Decode(&rates); err != nil {
		t.Fatalf("decode rates: %v", err)
	}
	if len(rates.Rates) != 5 {
		t.Errorf("expected 5 tracks, got %d", len(rates.Rates))
	}
}

func TestRouter_RateLimited(t *testing.T) {

	router := newTestRouter(t, 2, false)
	body := `{"principal": 1200, "annual_rate": 0, "years": 1}`

	for i := 0; i < 2; i++ {
		if w := postJSON(router, "/loan/payment", body); w.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i, w.Code)
		}
	}

	w := postJSON(router, "/loan/payment", body)
	if w.Code != http.StatusTooManyRequests {
		t.Errorf("expected 429, got %d", w.Code)
	}
	if got := w.Header().Get("Retry-After"); got != "30" {
		t.Errorf("expected Retry-After of one refill interval (30s), got %q", got)
	}

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	hw := httptest.NewRecorder()
	router.ServeHTTP(hw, req)
	if hw.Code != http.StatusOK {
		t.Errorf("health should not be rate limited, got %d", hw.Code)
	}
}

func postFrom(router http.Handler, forwardedFor, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/loan/payment", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Forwarded-For", forwardedFor)
	req.RemoteAddr = "198.51.100.7:41234"
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRouter_ForwardedForIgnoredByDefault(t *testing.T) {

	router := newTestRouter(t, 2, false)
	body := `{"principal": 1200, "annual_rate": 0, "years": 1}`

	allowed := 0
	for i := 0; i < 10; i++ {
		if postFrom(router, fmt.Sprintf("203.0.113.%d", i), body).Code == http.StatusOK {
			allowed++
		}
	}

	if allowed != 2 {
		t.Errorf("one peer should share one bucket whatever X-Forwarded-For says, %d/10 allowed", allowed)
	}
}

func TestRouter_ForwardedForTrustedBehindProxy(t *testing.T) {

	router := newTestRouter(t, 1, true)
	body := `{"principal": 1200, "annual_rate": 0, "years": 1}`

	for i := 0; i < 3; i++ {
		if w := postFrom(router, fmt.Sprintf("203.0.113.%d", i), body); w.Code != http.StatusOK {
			t.Errorf("client %d: expected its own bucket, got %d", i, w.Code)
		}
	}
	if w := postFrom(router, "203.0.113.0", body); w.Code != http.StatusTooManyRequests {
		t.Errorf("repeated client: expected 429, got %d", w.Code)
	}
}
