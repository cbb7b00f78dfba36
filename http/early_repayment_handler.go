package http

import (
	"net/http"

	"refi-advisor/domain"
	"refi-advisor/service"
)

type EarlyRepaymentHandler struct {
	service *service.EarlyRepaymentService
}

func NewEarlyRepaymentHandler(service *service.EarlyRepaymentService) *EarlyRepaymentHandler {
	return &EarlyRepaymentHandler{service: service}
}

func (h *EarlyRepaymentHandler) Estimate(w http.ResponseWriter, r *http.Request) {
	var req domain.EarlyRepaymentRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.service.Estimate(req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *EarlyRepaymentHandler) Rates(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"rates": h.service.MarketRates()})
}
