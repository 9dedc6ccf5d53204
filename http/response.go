package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"career-roi/domain"
	"career-roi/logger"
	"career-roi/service"
)

const maxBodyBytes = 1 << 20

var (
	errMethodNotAllowed = domain.NewCodedError(http.StatusMethodNotAllowed, "method not allowed")
	errUnsupportedMedia = domain.NewCodedError(http.StatusUnsupportedMediaType, "Content-Type must be application/json")
	errInvalidBody      = domain.NewCodedError(http.StatusBadRequest, "invalid request body")
	errRateLimited      = domain.NewCodedError(http.StatusTooManyRequests, "rate limit exceeded")
	errInternal         = domain.NewCodedError(http.StatusInternalServerError, "internal server error")
)

type errorResponse struct {
	Error string `json:"error"`
}

// writeJSON encodes into a buffer first so a failed encode never leaves a half-written 200.
func writeJSON(ctx context.Context, w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		logger.Errorf(ctx, "encode response: %v", err)
		writeError(ctx, w, errInternal)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		logger.Warnf(ctx, "write response: %v", err)
	}
}

// writeError maps err to the status of the first CodedError in its chain. Errors
// without a code are logged and reported as 500 without their details.
func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	status, msg := http.StatusInternalServerError, errInternal.Error()
	var coded *domain.CodedError
	if errors.As(err, &coded) {
		status = coded.Code()
		if status < http.StatusInternalServerError {
			msg = err.Error()
		}
	}

	if status >= http.StatusInternalServerError {
		logger.Errorf(ctx, "request failed: %v", err)
	}

	var buf bytes.Buffer
	_ = json.NewEncoder(&buf).Encode(errorResponse{Error: msg})
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func requireMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		w.Header().Set("Allow", method)
		writeError(r.Context(), w, errMethodNotAllowed)
		return false
	}
	return true
}

// decodeJSON reads a JSON body into dst and checks its validate tags.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	if !strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		return errUnsupportedMedia
	}

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		logger.Debugf(r.Context(), "decode request body: %v", err)
		return errInvalidBody
	}
	return service.ValidateRequest(dst)
}
