package http

import (
	"net/http"

	"refi-advisor/domain"
	"refi-advisor/service"
)

type LoanHandler struct {
	service *service.LoanService
}

func NewLoanHandler(service *service.LoanService) *LoanHandler {
	return &LoanHandler{service: service}
}

func (h *LoanHandler) CalculatePayment(w http.ResponseWriter, r *http.Request) {
	var req domain.LoanRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.service.CalculatePayment(req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *LoanHandler) Schedule(w http.ResponseWriter, r *http.Request) {
	var req domain.LoanRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	rows, err := h.service.Schedule(req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"years": rows})
}
