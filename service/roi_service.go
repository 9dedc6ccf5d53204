package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/bytedance/sonic"
	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"career-roi/domain"
	"career-roi/logger"
	"career-roi/repository"
)

// ROIService runs ROI calculations against the injected catalog, caching results and
// recording every calculation in the history repository.
type ROIService struct {
	catalog   domain.Catalog
	history   repository.CalculationRepository
	cache     repository.Cache
	cacheTTL  time.Duration
	explainer *ExplanationService
	now       func() time.Time
}

func NewROIService(
	catalog domain.Catalog,
	history repository.CalculationRepository,
	cache repository.Cache,
	explainer *ExplanationService,
	cacheTTL time.Duration,
) *ROIService {
	return &ROIService{
		catalog:   catalog,
		history:   history,
		cache:     cache,
		cacheTTL:  cacheTTL,
		explainer: explainer,
		now:       time.Now,
	}
}

func (s *ROIService) Catalog() domain.Catalog {
	return s.catalog
}

// Calculate evaluates one fully specified input.
func (s *ROIService) Calculate(ctx context.Context, in domain.ROIInput) (domain.ROICalculation, error) {
	ctx = logger.WithFields(ctx, "career_id", in.Career.CareerID, "education_type", in.Education.Type)

	key, err := cacheKey(in)
	if err != nil {
		return domain.ROICalculation{}, err
	}

	calc, hit := s.cached(ctx, key)
	if !hit {
		calc, err = CalculateROI(in.Education, in.Career, in.CurrentSalary, in.Location, in.TimeHorizonYears)
		if err != nil {
			return domain.ROICalculation{}, err
		}
		s.store(ctx, key, calc)
	}

	record := domain.CalculationRecord{
		ID:            uuid.New(),
		CareerID:      in.Career.CareerID,
		EducationType: in.Education.Type,
		Input:         in,
		Result:        calc,
		CreatedAt:     s.now().UTC(),
	}
	if err := s.history.Save(ctx, record); err != nil {
		logger.Warnf(ctx, "failed to save calculation %s: %v", record.ID, err)
	}

	return calc, nil
}

// ResolveInput looks up the career and education path a request refers to.
func (s *ROIService) ResolveInput(req domain.CareerROIRequest) (domain.ROIInput, error) {
	career, ok := s.catalog.Career(req.CareerID)
	if !ok {
		return domain.ROIInput{}, fmt.Errorf("career %q: %w", req.CareerID, domain.ErrCareerNotFound)
	}

	var education domain.EducationCost
	if req.EducationType == "" {
		options := s.catalog.EducationOptions(req.CareerID)
		if len(options) == 0 {
			return domain.ROIInput{}, fmt.Errorf("career %q: %w", req.CareerID, domain.ErrNoEducationOptions)
		}
		education = options[0]
	} else if education, ok = s.catalog.EducationOption(req.CareerID, req.EducationType); !ok {
		return domain.ROIInput{}, fmt.Errorf("%s path for %q: %w", req.EducationType, req.CareerID, domain.ErrEducationNotFound)
	}

	return domain.ROIInput{
		Education:        education,
		Career:           career,
		CurrentSalary:    req.CurrentSalary,
		Location:         req.Location,
		TimeHorizonYears: req.TimeHorizonYears,
	}, nil
}

func (s *ROIService) CalculateForCareer(ctx context.Context, req domain.CareerROIRequest) (domain.ROIInput, domain.ROICalculation, error) {
	in, err := s.ResolveInput(req)
	if err != nil {
		return domain.ROIInput{}, domain.ROICalculation{}, err
	}
	calc, err := s.Calculate(ctx, in)
	if err != nil {
		return domain.ROIInput{}, domain.ROICalculation{}, err
	}
	return in, calc, nil
}

func (s *ROIService) History(ctx context.Context, careerID string, limit int) ([]domain.CalculationRecord, error) {
	return s.history.Recent(ctx, careerID, limit)
}

// ComparePaths evaluates every education path of a career in parallel, ranks them by
// score and explains the winner. Options keep catalog order when scores tie.
func (s *ROIService) ComparePaths(
	ctx context.Context,
	in domain.PathComparisonInput,
	f *Formatter,
) (domain.PathComparisonResult, error) {
	career, ok := s.catalog.Career(in.CareerID)
	if !ok {
		return domain.PathComparisonResult{}, fmt.Errorf("career %q: %w", in.CareerID, domain.ErrCareerNotFound)
	}
	options := s.catalog.EducationOptions(in.CareerID)
	if len(options) == 0 {
		return domain.PathComparisonResult{}, fmt.Errorf("career %q: %w", in.CareerID, domain.ErrNoEducationOptions)
	}

	calcs := make([]domain.ROICalculation, len(options))
	g, gctx := errgroup.WithContext(ctx)
	for i, education := range options {
		i, education := i, education
		g.Go(func() error {
			calc, err := s.Calculate(gctx, domain.ROIInput{
				Education:        education,
				Career:           career,
				CurrentSalary:    in.CurrentSalary,
				Location:         in.Location,
				TimeHorizonYears: in.TimeHorizonYears,
			})
			if err != nil {
				return fmt.Errorf("%s path: %w", education.Type, err)
			}
			calcs[i] = calc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return domain.PathComparisonResult{}, err
	}

	scores := scoreOptions(calcs)
	ranked := make([]domain.PathOption, len(options))
	for i, education := range options {
		report := f.Report(calcs[i])
		ranked[i] = domain.PathOption{
			Education: education,
			Report:    report,
			Score:     scores[i],
			Reason:    optionReason(report),
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	explanation := s.explainer.Explain(ctx, career, ranked[0], ranked[1:])
	ranked[0].Reason = explanation

	return domain.PathComparisonResult{
		CareerID:        career.CareerID,
		CareerTitle:     career.Title,
		RecommendedType: ranked[0].Education.Type,
		Options:         ranked,
		Explanation:     explanation,
	}, nil
}

// scoreOptions rates each calculation from 0 to 10: half on NPV relative to the other
// options, 30% on how early it breaks even and 20% on the risk-adjusted return.
func scoreOptions(calcs []domain.ROICalculation) []float64 {
	minNPV, maxNPV := math.Inf(1), math.Inf(-1)
	for _, calc := range calcs {
		minNPV = math.Min(minNPV, calc.NetPresentValue)
		maxNPV = math.Max(maxNPV, calc.NetPresentValue)
	}

	scores := make([]float64, len(calcs))
	for i, calc := range calcs {
		npvScore := 10.0
		if spread := maxNPV - minNPV; spread > 0 {
			npvScore = 10 * (calc.NetPresentValue - minNPV) / spread
		}

		paybackScore := 0.0
		if years, ok := calc.PaybackPeriod.Years(); ok {
			paybackScore = 10 * (1 - float64(years-1)/CareerYears)
		}

		riskScore := 10 * math.Max(0, math.Min(1, calc.RiskAdjustedReturn.Float64()/riskScoreCeiling))

		scores[i] = roundTo2Decimals(0.5*npvScore + 0.3*paybackScore + 0.2*riskScore)
	}
	return scores
}

// riskAdjustedReturn at or above this earns the full risk score.
const riskScoreCeiling = 0.15

func optionReason(report domain.ROIReport) string {
	f := report.Formatted
	if !report.Result.PaybackPeriod.Reached() {
		return fmt.Sprintf("%s: never breaks even, NPV %s", f.Recommendation, f.NetPresentValue)
	}
	return fmt.Sprintf("%s: breaks even after %s, NPV %s", f.Recommendation, f.TimeToBreakeven, f.NetPresentValue)
}

func roundTo2Decimals(value float64) float64 {
	return math.Round(value*100) / 100
}

func cacheKey(in domain.ROIInput) (string, error) {
	payload, err := sonic.Marshal(in)
	if err != nil {
		return "", fmt.Errorf("encode cache key: %w", err)
	}
	return fmt.Sprintf("roi:%016x", xxhash.Sum64(payload)), nil
}

func (s *ROIService) cached(ctx context.Context, key string) (domain.ROICalculation, bool) {
	raw, ok := s.cache.Get(ctx, key)
	if !ok {
		return domain.ROICalculation{}, false
	}
	var calc domain.ROICalculation
	if err := sonic.UnmarshalString(raw, &calc); err != nil {
		logger.Warnf(ctx, "discarding unreadable cache entry %s: %v", key, err)
		return domain.ROICalculation{}, false
	}
	return calc, true
}

func (s *ROIService) store(ctx context.Context, key string, calc domain.ROICalculation) {
	raw, err := sonic.MarshalString(calc)
	if err != nil {
		logger.Warnf(ctx, "failed to encode calculation for cache: %v", err)
		return
	}
	if err := s.cache.Set(ctx, key, raw, s.cacheTTL); err != nil {
		logger.Warnf(ctx, "failed to cache calculation %s: %v", key, err)
	}
}
