package http

import (
	"net/http"

	"career-roi/domain"
	"career-roi/service"
)

// financingRequest either names a principal directly or a catalog education path whose
// total cost is borrowed.
type financingRequest struct {
	Principal     float64              `json:"principal" validate:"gte=0"`
	CareerID      string               `json:"careerId"`
	EducationType domain.EducationType `json:"educationType" validate:"required_with=CareerID"`
	AnnualRate    float64              `json:"annualRate" validate:"gte=0"`
	TermMonths    int                  `json:"termMonths" validate:"gt=0"`
}

type financingResponse struct {
	Input  domain.FinancingInput  `json:"input"`
	Result domain.FinancingResult `json:"result"`
}

type FinancingHandler struct {
	service *service.FinancingService
}

func NewFinancingHandler(service *service.FinancingService) *FinancingHandler {
	return &FinancingHandler{service: service}
}

// Calculate handles POST /roi/financing.
func (h *FinancingHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	ctx := r.Context()

	var req financingRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	var resp financingResponse
	if req.CareerID != "" {
		in, result, err := h.service.FinanceEducation(ctx, req.CareerID, req.EducationType, req.AnnualRate, req.TermMonths)
		if err != nil {
			writeError(ctx, w, err)
			return
		}
		resp = financingResponse{Input: in, Result: result}
	} else {
		in := domain.FinancingInput{Principal: req.Principal, AnnualRate: req.AnnualRate, TermMonths: req.TermMonths}
		result, err := h.service.Calculate(ctx, in)
		if err != nil {
			writeError(ctx, w, err)
			return
		}
		resp = financingResponse{Input: in, Result: result}
	}

	writeJSON(ctx, w, http.StatusOK, resp)
}
