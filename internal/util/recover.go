package util

import (
	"net/http"
	"runtime/debug"
)

// WithRecover turns a panicking handler into a 500 response so one bad
// request cannot take the process down. onPanic writes the response.
func WithRecover(onPanic func(w http.ResponseWriter, r *http.Request), next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if p := recover(); p != nil {
				if p == http.ErrAbortHandler {
					panic(p)
				}
				LoggerFromContext(r.Context()).Error("handler panic", "panic", p, "stack", string(debug.Stack()))
				onPanic(w, r)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
