package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	applog "github.com/janisto/profile-print/internal/platform/logging"
	"github.com/janisto/profile-print/internal/service/draft"
)

const storeProbeTimeout = 2 * time.Second

// Health states
const (
	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"
)

// Response is the payload for the health endpoint.
type Response struct {
	Status     string `json:"status"`
	Version    string `json:"version,omitempty"`
	DraftStore string `json:"draftStore,omitempty"`
	Exporter   string `json:"exporter,omitempty"`
}

// Handler reports liveness and the active backends. The draft store is probed
// with a read: an empty or corrupted slot is fine, an unreachable store answers 503.
func Handler(version, draftStore, exporter string, store draft.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body := Response{Status: StatusHealthy, Version: version, DraftStore: draftStore, Exporter: exporter}
		status := http.StatusOK

		ctx, cancel := context.WithTimeout(r.Context(), storeProbeTimeout)
		defer cancel()
		if _, err := store.Load(ctx); err != nil && !errors.Is(err, draft.ErrNotFound) {
			applog.LogWarn(r.Context(), "draft store probe failed", zap.String("draftStore", draftStore), zap.Error(err))
			body.Status = StatusUnhealthy
			status = http.StatusServiceUnavailable
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	}
}
