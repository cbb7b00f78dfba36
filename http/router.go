package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type Handlers struct {
	Refinance      *RefinanceHandler
	Loan           *LoanHandler
	EarlyRepayment *EarlyRepaymentHandler
}

// NewRouter mounts the calculator API. Calculation endpoints are rate
// limited per client; read-only endpoints are not. Forwarding headers
// (X-Forwarded-For, X-Real-IP) only identify the client when trustProxy
// is set; otherwise the TCP peer does.
func NewRouter(h Handlers, limiter *RateLimiter, trustProxy bool) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	if trustProxy {
		r.Use(middleware.RealIP)
	}
	r.Use(RequestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/health", Health)
	r.Get("/refinance/policy", h.Refinance.Policy)
	r.Get("/refinance/history", h.Refinance.History)
	r.Get("/early-repayment/rates", h.EarlyRepayment.Rates)

	r.Group(func(r chi.Router) {
		r.Use(func(next http.Handler) http.Handler {
			return RateLimitMiddleware(limiter, next)
		})

		r.Post("/refinance/evaluate", h.Refinance.Evaluate)
		r.Post("/loan/payment", h.Loan.CalculatePayment)
		r.Post("/loan/schedule", h.Loan.Schedule)
		r.Post("/early-repayment/estimate", h.EarlyRepayment.Estimate)
	})

	return r
}

func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
