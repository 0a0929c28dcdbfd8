package server

import "net/http"

// HelloHandler answers every request with greeting as plain text.
func HelloHandler(greeting string) http.HandlerFunc {
	body := []byte(greeting)
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write(body)
	}
}
