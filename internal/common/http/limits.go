package http

import (
	"net/http"

	"github.com/techchallenge/vehicle-api/internal/common/constants"
	commonerrors "github.com/techchallenge/vehicle-api/internal/common/errors"
)

func MaxRequestSizeMiddleware(maxBytes int64) func(http.Handler) http.Handler {
	if maxBytes <= 0 {
		maxBytes = constants.DefaultMaxRequestSize
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > maxBytes {
				tooLarge := commonerrors.ErrRequestTooLarge
				WriteErrorEnvelope(w, tooLarge.HTTPStatus(), tooLarge.Code(), tooLarge.Message(), nil, TraceIDFromContext(r.Context()))
				return
			}

			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}
