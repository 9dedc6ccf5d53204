package http

import (
	"net/http"
	"strconv"

	"golang.org/x/text/language"

	"career-roi/domain"
	"career-roi/logger"
	"career-roi/service"
)

const maxHistoryLimit = 100

// Defaults fill in request fields the caller left out.
type Defaults struct {
	CurrentSalary    float64
	Location         string
	TimeHorizonYears int
	HistoryLimit     int
	Language         language.Tag
}

// DefaultDefaults mirrors the engine's documented defaults.
func DefaultDefaults() Defaults {
	return Defaults{
		CurrentSalary:    service.DefaultCurrentSalary,
		Location:         service.DefaultLocation,
		TimeHorizonYears: service.DefaultTimeHorizonYears,
		HistoryLimit:     20,
		Language:         language.AmericanEnglish,
	}
}

// withDefaults fills the caller's situation from d where the request left it out.
func withDefaults(d Defaults, currentSalary *float64, location string, timeHorizonYears *int) (float64, string, int) {
	salary, loc, horizon := d.CurrentSalary, d.Location, d.TimeHorizonYears
	if currentSalary != nil {
		salary = *currentSalary
	}
	if location != "" {
		loc = location
	}
	if timeHorizonYears != nil {
		horizon = *timeHorizonYears
	}
	return salary, loc, horizon
}

// calculateRequest names either a catalog career (and optionally an education type)
// or an inline education path and career profile.
type calculateRequest struct {
	CareerID      string                `json:"careerId" validate:"required_without_all=Education Career"`
	EducationType domain.EducationType  `json:"educationType"`
	Education     *domain.EducationCost `json:"education" validate:"required_with=Career"`
	Career        *domain.CareerProfile `json:"career" validate:"required_with=Education"`

	CurrentSalary    *float64 `json:"currentSalary" validate:"omitempty,gte=0"`
	Location         string   `json:"location"`
	TimeHorizonYears *int     `json:"timeHorizonYears" validate:"omitempty,gte=0,lte=40"`
}

type calculateResponse struct {
	Input domain.ROIInput `json:"input"`
	domain.ROIReport
}

type compareRequest struct {
	CareerID         string   `json:"careerId" validate:"required"`
	CurrentSalary    *float64 `json:"currentSalary" validate:"omitempty,gte=0"`
	Location         string   `json:"location"`
	TimeHorizonYears *int     `json:"timeHorizonYears" validate:"omitempty,gte=0,lte=40"`
}

type ROIHandler struct {
	service  *service.ROIService
	defaults Defaults
}

func NewROIHandler(service *service.ROIService, defaults Defaults) *ROIHandler {
	return &ROIHandler{service: service, defaults: defaults}
}

// Calculate handles POST /roi/calculate.
func (h *ROIHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	ctx := r.Context()

	var req calculateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	salary, location, horizon := withDefaults(h.defaults, req.CurrentSalary, req.Location, req.TimeHorizonYears)

	var in domain.ROIInput
	if req.Education != nil && req.Career != nil {
		in = domain.ROIInput{
			Education:        *req.Education,
			Career:           *req.Career,
			CurrentSalary:    salary,
			Location:         location,
			TimeHorizonYears: horizon,
		}
	} else {
		resolved, err := h.service.ResolveInput(domain.CareerROIRequest{
			CareerID:         req.CareerID,
			EducationType:    req.EducationType,
			CurrentSalary:    salary,
			Location:         location,
			TimeHorizonYears: horizon,
		})
		if err != nil {
			writeError(ctx, w, err)
			return
		}
		in = resolved
	}

	calc, err := h.service.Calculate(ctx, in)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	f := service.NewFormatter(ResolveTag(r, h.defaults.Language))
	writeJSON(ctx, w, http.StatusOK, calculateResponse{Input: in, ROIReport: f.Report(calc)})
}

// Compare handles POST /roi/compare.
func (h *ROIHandler) Compare(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	ctx := r.Context()

	var req compareRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	salary, location, horizon := withDefaults(h.defaults, req.CurrentSalary, req.Location, req.TimeHorizonYears)

	ctx = logger.WithFields(ctx, "career_id", req.CareerID)
	result, err := h.service.ComparePaths(ctx, domain.PathComparisonInput{
		CareerID:         req.CareerID,
		CurrentSalary:    salary,
		Location:         location,
		TimeHorizonYears: horizon,
	}, service.NewFormatter(ResolveTag(r, h.defaults.Language)))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, result)
}

// History handles GET /roi/history?careerId=&limit=.
func (h *ROIHandler) History(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	ctx := r.Context()

	limit := h.defaults.HistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > maxHistoryLimit {
			writeError(ctx, w, domain.NewValidationError("limit", "must be between 1 and "+strconv.Itoa(maxHistoryLimit)))
			return
		}
		limit = n
	}

	records, err := h.service.History(ctx, r.URL.Query().Get("careerId"), limit)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, records)
}
