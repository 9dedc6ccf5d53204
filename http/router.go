package http

import "net/http"

type Handlers struct {
	ROI       *ROIHandler
	Financing *FinancingHandler
	Catalog   *CatalogHandler
}

// NewRouter mounts every endpoint. Health checks bypass the rate limiter.
func NewRouter(h Handlers, limiter *RateLimiter) http.Handler {
	limited := func(fn http.HandlerFunc) http.Handler {
		return RateLimitMiddleware(limiter, fn)
	}

	mux := http.NewServeMux()
	mux.Handle("/roi/calculate", limited(h.ROI.Calculate))
	mux.Handle("/roi/compare", limited(h.ROI.Compare))
	mux.Handle("/roi/history", limited(h.ROI.History))
	mux.Handle("/roi/financing", limited(h.Financing.Calculate))
	mux.Handle("/careers", limited(h.Catalog.Careers))
	mux.Handle("/careers/education", limited(h.Catalog.Education))
	mux.HandleFunc("/health", Health)

	return RequestMiddleware(mux)
}
