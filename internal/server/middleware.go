package server

import (
	"net/http"
	"runtime/debug"
)

// allowAnyOrigin sets a wildcard CORS origin on every response, including
// errors and requests without an Origin header.
func allowAnyOrigin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		next.ServeHTTP(w, r)
	})
}

// recoverer turns a panic into a generic JSON 500. Details are only logged.
func (s *Server) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rvr := recover()
			if rvr == nil {
				return
			}
			if rvr == http.ErrAbortHandler {
				panic(rvr)
			}
			s.logger.ErrorContext(r.Context(), "Panic while serving request",
				"panic", rvr, "path", r.URL.Path, "stack", string(debug.Stack()))
			w.Header().Set("Access-Control-Allow-Origin", "*")
			respondError(w, http.StatusInternalServerError, "Internal server error")
		}()
		next.ServeHTTP(w, r)
	})
}
