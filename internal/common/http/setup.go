package http

import (
	"net/http"

	"github.com/techchallenge/vehicle-api/internal/common/constants"
	"github.com/techchallenge/vehicle-api/internal/common/httpmetrics"
	"github.com/techchallenge/vehicle-api/internal/common/logger"
)

// BuildBaseHandler wraps handler in the middleware every route shares. The
// trace id is assigned before recovery so panics are logged and answered
// with it.
func BuildBaseHandler(log *logger.Logger, handler http.Handler) http.Handler {
	collector := httpmetrics.New()
	recovery := RecoveryMiddleware(log)
	maxRequestSize := MaxRequestSizeMiddleware(constants.DefaultMaxRequestSize)

	return SecurityHeadersMiddleware(TraceIDMiddleware(recovery(maxRequestSize(collector.Wrap(handler)))))
}
