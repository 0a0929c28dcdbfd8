package metrics

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// UnmatchedRoute labels requests that no route pattern matched.
const UnmatchedRoute = "unmatched"

// OtherMethod labels requests with a non-standard method.
const OtherMethod = "OTHER"

// RouteLabel returns the chi route pattern r was served by. Raw paths are
// never used as label values so that arbitrary URLs cannot create series.
// Only meaningful after the router has dispatched r.
func RouteLabel(r *http.Request) string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return UnmatchedRoute
	}
	if pattern := rctx.RoutePattern(); pattern != "" {
		return pattern
	}
	return UnmatchedRoute
}

// MethodLabel returns r.Method for standard methods and OtherMethod otherwise.
func MethodLabel(r *http.Request) string {
	switch r.Method {
	case http.MethodGet, http.MethodHead, http.MethodPost, http.MethodPut, http.MethodPatch,
		http.MethodDelete, http.MethodConnect, http.MethodOptions, http.MethodTrace:
		return r.Method
	}
	return OtherMethod
}
