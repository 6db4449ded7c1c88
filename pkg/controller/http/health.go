package http

import (
	"encoding/json"
	"net/http"

	"github.com/m-mizutani/appassoc/pkg/domain/model"
	"github.com/m-mizutani/appassoc/pkg/domain/types"
	"github.com/m-mizutani/appassoc/pkg/utils/ctxlog"
)

// handleHealth handles health check requests
func handleHealth(w http.ResponseWriter, r *http.Request) {
	status := &model.HealthStatus{
		Status:  "healthy",
		Service: "appassoc",
		Version: types.Version,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(status); err != nil {
		ctxlog.From(r.Context()).Error("Failed to encode health response", "error", err)
	}
}
