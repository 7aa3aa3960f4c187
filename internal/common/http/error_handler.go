package http

import (
	"net/http"
	"strconv"

	commonerrors "github.com/techchallenge/vehicle-api/internal/common/errors"
	"github.com/techchallenge/vehicle-api/internal/common/httpmetrics"
	"github.com/techchallenge/vehicle-api/internal/common/logger"
	"github.com/techchallenge/vehicle-api/internal/observability/metrics"
)

type ErrorHandler struct {
	log *logger.Logger
}

func NewErrorHandler(log *logger.Logger) *ErrorHandler {
	return &ErrorHandler{log: log}
}

// HandleError writes err as an ErrorEnvelope. Domain errors keep their code
// and status; anything else is logged and becomes a 500.
func (h *ErrorHandler) HandleError(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		return
	}

	if domainErr, ok := commonerrors.AsDomainError(err); ok {
		h.handleDomainError(w, r, domainErr)
		return
	}

	ctx := r.Context()
	h.log.WithFields(ctx, logger.Fields{
		"path":   r.URL.Path,
		"action": "unhandled_error",
	}).Errorf("unhandled error: %v", err)

	metrics.HTTPErrorsTotal.WithLabelValues(
		strconv.Itoa(http.StatusInternalServerError),
		httpmetrics.NormalizePath(r.URL.Path),
		httpmetrics.NormalizeMethod(r.Method),
	).Inc()

	WriteErrorEnvelope(w, http.StatusInternalServerError, CodeInternalError, "internal server error", nil, TraceIDFromContext(ctx))
}

func (h *ErrorHandler) handleDomainError(w http.ResponseWriter, r *http.Request, err commonerrors.DomainError) {
	ctx := r.Context()
	status := err.HTTPStatus()

	fields := logger.Fields{
		"error_code": err.Code(),
		"category":   string(err.Category()),
		"status":     status,
		"action":     "domain_error",
	}
	if status >= http.StatusInternalServerError {
		h.log.WithFields(ctx, fields).Errorf("domain error: %v", err)
	} else if h.log.ShouldLog(logger.DEBUG) {
		h.log.WithFields(ctx, fields).Debugf("domain error: %v", err)
	}

	metrics.DomainErrorsTotal.WithLabelValues(
		string(err.Category()),
		err.Code(),
		strconv.Itoa(status),
	).Inc()

	metrics.HTTPErrorsTotal.WithLabelValues(
		strconv.Itoa(status),
		httpmetrics.NormalizePath(r.URL.Path),
		httpmetrics.NormalizeMethod(r.Method),
	).Inc()

	if status == http.StatusUnauthorized {
		w.Header().Set("WWW-Authenticate", "Bearer")
	}

	WriteErrorEnvelope(w, status, err.Code(), err.Message(), err.Details(), TraceIDFromContext(ctx))
}
