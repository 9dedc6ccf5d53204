package http

import (
	"fmt"
	"net/http"

	"career-roi/domain"
	"career-roi/service"
)

type careerSummary struct {
	domain.CareerProfile
	EducationTypes []domain.EducationType `json:"educationTypes"`
}

type educationOption struct {
	domain.EducationCost
	TotalCost float64 `json:"totalCost"`
}

type CatalogHandler struct {
	catalog domain.Catalog
}

func NewCatalogHandler(catalog domain.Catalog) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// Careers handles GET /careers.
func (h *CatalogHandler) Careers(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	careers := h.catalog.Careers()
	out := make([]careerSummary, 0, len(careers))
	for _, career := range careers {
		options := h.catalog.EducationOptions(career.CareerID)
		types := make([]domain.EducationType, 0, len(options))
		for _, option := range options {
			types = append(types, option.Type)
		}
		out = append(out, careerSummary{CareerProfile: career, EducationTypes: types})
	}

	writeJSON(r.Context(), w, http.StatusOK, out)
}

// Education handles GET /careers/education?careerId=.
func (h *CatalogHandler) Education(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	ctx := r.Context()

	careerID := r.URL.Query().Get("careerId")
	if careerID == "" {
		writeError(ctx, w, domain.NewValidationError("careerId", "is required"))
		return
	}
	if _, ok := h.catalog.Career(careerID); !ok {
		writeError(ctx, w, fmt.Errorf("career %q: %w", careerID, domain.ErrCareerNotFound))
		return
	}

	options := h.catalog.EducationOptions(careerID)
	out := make([]educationOption, 0, len(options))
	for _, option := range options {
		out = append(out, educationOption{EducationCost: option, TotalCost: service.TotalEducationCost(option)})
	}

	writeJSON(ctx, w, http.StatusOK, out)
}
