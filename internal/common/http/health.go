package http

import (
	"net/http"
)

type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

func HealthHandler(serviceName string) http.HandlerFunc {
	return RequireMethod(http.MethodGet)(func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, http.StatusOK, HealthResponse{Status: "healthy", Service: serviceName})
	})
}
