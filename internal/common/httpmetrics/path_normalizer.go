package httpmetrics

import (
	"net/http"

	"github.com/techchallenge/vehicle-api/internal/common/constants"
)

// Label values for anything outside the served route and method sets. Raw
// request paths never become label values.
const (
	OtherPath   = "other"
	OtherMethod = "OTHER"
)

var knownRoutes = map[string]struct{}{
	constants.RouteHealth:   {},
	constants.RouteMetrics:  {},
	constants.RouteRegister: {},
	constants.RouteLogin:    {},
	constants.RouteMe:       {},
}

var knownMethods = map[string]struct{}{
	http.MethodGet:     {},
	http.MethodHead:    {},
	http.MethodPost:    {},
	http.MethodPut:     {},
	http.MethodPatch:   {},
	http.MethodDelete:  {},
	http.MethodOptions: {},
}

// NormalizePath maps path to a bounded metric label.
func NormalizePath(path string) string {
	if _, ok := knownRoutes[path]; ok {
		return path
	}
	return OtherPath
}

func NormalizeMethod(method string) string {
	if _, ok := knownMethods[method]; ok {
		return method
	}
	return OtherMethod
}
