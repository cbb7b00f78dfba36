package http

import (
	"net/http"
	"strconv"

	"refi-advisor/domain"
	"refi-advisor/service"
)

type RefinanceHandler struct {
	service *service.RefinanceService
}

func NewRefinanceHandler(service *service.RefinanceService) *RefinanceHandler {
	return &RefinanceHandler{service: service}
}

func (h *RefinanceHandler) Evaluate(w http.ResponseWriter, r *http.Request) {
	var req domain.RefinanceRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	evaluation, err := h.service.Evaluate(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, evaluation)
}

func (h *RefinanceHandler) History(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			http.Error(w, "limit must be a non-negative integer", http.StatusBadRequest)
			return
		}
		limit = n
	}

	records, err := h.service.History(r.Context(), limit)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if records == nil {
		records = []domain.AdvisoryRecord{}
	}

	writeJSON(w, http.StatusOK, map[string]any{"records": records})
}

func (h *RefinanceHandler) Policy(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.Policy())
}
