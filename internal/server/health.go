package server

import (
	"net/http"
	"sync/atomic"

	"github.com/bytedance/sonic"
)

type probeStatus struct {
	Status string `json:"status"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := sonic.Marshal(v)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(body)
}

// HealthHandler returns a liveness probe handler that always returns 200 OK.
func HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, probeStatus{Status: "ok"})
	}
}

// ReadinessHandler returns a readiness probe handler reporting ready while
// ready is set. A nil flag is always ready.
func ReadinessHandler(ready *atomic.Bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if ready != nil && !ready.Load() {
			writeJSON(w, http.StatusServiceUnavailable, probeStatus{Status: "not_ready"})
			return
		}
		writeJSON(w, http.StatusOK, probeStatus{Status: "ready"})
	}
}
